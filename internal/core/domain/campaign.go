package domain

import "time"

// Campaign is a request for funding. Amounts are stored in the token's
// smallest unit.
type Campaign struct {
	ID              uint64
	Owner           Address
	Goal            uint64
	Deadline        time.Time
	MetadataURI     string
	AmountCollected uint64 // sum of contributions not yet refunded
	AmountRefunded  uint64
	Withdrawn       bool
	CreatedAt       time.Time
}

// Contribution is the cumulative, unrefunded amount a donor gave to one
// campaign.
type Contribution struct {
	CampaignID uint64
	Donor      Address
	Amount     uint64
}

// CampaignStatus is derived from time and amounts; it is never stored.
type CampaignStatus string

const (
	CampaignStatusOpen      CampaignStatus = "open"
	CampaignStatusSucceeded CampaignStatus = "succeeded"
	CampaignStatusCollected CampaignStatus = "collected"
	CampaignStatusFailed    CampaignStatus = "failed"
	CampaignStatusRefunded  CampaignStatus = "refunded"
)

// TotalRaised is everything donors ever put in, refunded or not.
func (c *Campaign) TotalRaised() uint64 {
	return c.AmountCollected + c.AmountRefunded
}

// GoalMet reports whether donations reached the goal. Refunds only happen
// after a goal-miss, so the answer is stable once the deadline passes.
func (c *Campaign) GoalMet() bool {
	return c.TotalRaised() >= c.Goal
}

// IsOpen reports whether donations are still accepted at now.
func (c *Campaign) IsOpen(now time.Time) bool {
	return now.Before(c.Deadline)
}

// Status derives the lifecycle state of the campaign at now.
func (c *Campaign) Status(now time.Time) CampaignStatus {
	switch {
	case c.IsOpen(now):
		return CampaignStatusOpen
	case c.Withdrawn:
		return CampaignStatusCollected
	case c.GoalMet():
		return CampaignStatusSucceeded
	case c.AmountCollected == 0 && c.AmountRefunded > 0:
		return CampaignStatusRefunded
	default:
		return CampaignStatusFailed
	}
}
