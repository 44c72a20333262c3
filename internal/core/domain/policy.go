package domain

import "time"

const (
	// DefaultMinDonation is the smallest donation accepted, in base units.
	DefaultMinDonation uint64 = 10
	// DefaultMinDeadlineLead is how far past creation a deadline must be.
	DefaultMinDeadlineLead = 60 * time.Second
)

// DefaultCustodyAddress is the account holding donated tokens until they are
// collected or refunded.
var DefaultCustodyAddress = MustParseAddress("0x0000000000000000000000000000000000cf0001")

// Policy holds the tunable rules of the campaign ledger.
type Policy struct {
	MinDonation     uint64
	MinDeadlineLead time.Duration
	// CollectRequiresGoal gates the owner's collection on the goal being
	// met. When false the owner may collect whatever was raised once the
	// deadline passes, and refunds close as soon as that happens.
	CollectRequiresGoal bool
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MinDonation:         DefaultMinDonation,
		MinDeadlineLead:     DefaultMinDeadlineLead,
		CollectRequiresGoal: true,
	}
}

// ValidDeadline reports whether deadline is acceptable for a campaign created
// at now. The deadline must lie strictly in the future and at least
// MinDeadlineLead ahead.
func (p Policy) ValidDeadline(now, deadline time.Time) bool {
	if !deadline.After(now) {
		return false
	}
	return !deadline.Before(now.Add(p.MinDeadlineLead))
}
