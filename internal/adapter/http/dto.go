package httpadapter

import (
	"time"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// Request and response bodies of the /api/v1 routes. The CLI client decodes
// the same types.

type TimeResponse struct {
	Now time.Time `json:"now"`
}

// LedgerInfoResponse describes the rules of the ledger and the custody
// account donors approve.
type LedgerInfoResponse struct {
	Now                 time.Time      `json:"now"`
	Custody             domain.Address `json:"custody"`
	MinDonation         uint64         `json:"min_donation"`
	MinDeadlineLead     string         `json:"min_deadline_lead"`
	CollectRequiresGoal bool           `json:"collect_requires_goal"`
}

// CreateCampaignRequest creates a campaign. Owner defaults to the caller.
type CreateCampaignRequest struct {
	Owner       *domain.Address `json:"owner,omitempty"`
	Goal        uint64          `json:"goal"`
	Deadline    time.Time       `json:"deadline"`
	MetadataURI string          `json:"metadata_uri"`
}

type CreateCampaignResponse struct {
	ID     uint64 `json:"id"`
	DryRun bool   `json:"dry_run,omitempty"`
}

type CampaignResponse struct {
	ID              uint64                `json:"id"`
	Owner           domain.Address        `json:"owner"`
	Goal            uint64                `json:"goal"`
	Deadline        time.Time             `json:"deadline"`
	MetadataURI     string                `json:"metadata_uri"`
	AmountCollected uint64                `json:"amount_collected"`
	AmountRefunded  uint64                `json:"amount_refunded"`
	Withdrawn       bool                  `json:"withdrawn"`
	CreatedAt       time.Time             `json:"created_at"`
	Status          domain.CampaignStatus `json:"status"`
}

func newCampaignResponse(c *domain.Campaign, now time.Time) CampaignResponse {
	return CampaignResponse{
		ID:              c.ID,
		Owner:           c.Owner,
		Goal:            c.Goal,
		Deadline:        c.Deadline,
		MetadataURI:     c.MetadataURI,
		AmountCollected: c.AmountCollected,
		AmountRefunded:  c.AmountRefunded,
		Withdrawn:       c.Withdrawn,
		CreatedAt:       c.CreatedAt,
		Status:          c.Status(now),
	}
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

type WithdrawalResponse struct {
	CampaignID uint64         `json:"campaign_id"`
	Account    domain.Address `json:"account"`
	Amount     uint64         `json:"amount"`
}

type ContributionResponse struct {
	CampaignID uint64         `json:"campaign_id"`
	Donor      domain.Address `json:"donor"`
	Amount     uint64         `json:"amount"`
}

type SupplyResponse struct {
	TotalSupply uint64 `json:"total_supply"`
}

type BalanceResponse struct {
	Account domain.Address `json:"account"`
	Balance uint64         `json:"balance"`
}

type AllowanceResponse struct {
	Owner     domain.Address `json:"owner"`
	Spender   domain.Address `json:"spender"`
	Allowance uint64         `json:"allowance"`
}

type ApproveRequest struct {
	Spender domain.Address `json:"spender"`
	Amount  uint64         `json:"amount"`
}

type TransferRequest struct {
	To     domain.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string  `json:"error"`
	Code       string  `json:"code"`
	CampaignID *uint64 `json:"campaign_id,omitempty"`
}
