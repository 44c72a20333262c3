package port

import (
	"context"
	"time"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// CrowdfundingUseCase defines the business operations of the campaign ledger.
// This interface represents the primary port into the application domain.
// State-changing operations take the acting principal explicitly; failures
// are *domain.CampaignError values wrapping the domain sentinel errors.
type CrowdfundingUseCase interface {
	// CreateCampaign validates req, stores a new campaign under the next
	// sequential id and returns that id.
	CreateCampaign(ctx context.Context, caller domain.Address, req CreateCampaignReq) (uint64, error)

	// SimulateCreateCampaign runs CreateCampaign without committing and
	// returns the id the campaign would receive.
	SimulateCreateCampaign(ctx context.Context, caller domain.Address, req CreateCampaignReq) (uint64, error)

	// DonateToCampaign pulls amount from the caller through its allowance to
	// the ledger's custody account and credits the campaign.
	DonateToCampaign(ctx context.Context, caller domain.Address, id uint64, amount uint64) error

	// WithdrawCollectedFunds pays everything collected to the owner once the
	// deadline passed with the goal met. It succeeds at most once.
	WithdrawCollectedFunds(ctx context.Context, caller domain.Address, id uint64) (uint64, error)

	// WithdrawDonatedFunds refunds the caller's contribution once the
	// deadline passed with the goal missed.
	WithdrawDonatedFunds(ctx context.Context, caller domain.Address, id uint64) (uint64, error)

	GetCampaignByID(ctx context.Context, id uint64) (*domain.Campaign, error)
	CampaignCount(ctx context.Context) (uint64, error)
	ListCampaigns(ctx context.Context, offset, limit uint64) ([]domain.Campaign, error)
	GetContribution(ctx context.Context, id uint64, donor domain.Address) (uint64, error)
	ListContributions(ctx context.Context, id uint64) ([]domain.Contribution, error)
	ListEvents(ctx context.Context, id uint64) ([]domain.Event, error)

	// Now returns the ledger clock reading used for deadline checks.
	Now() time.Time
	// Custody returns the account donors must approve before donating.
	Custody() domain.Address
	Policy() domain.Policy
}

// CreateCampaignReq carries the immutable attributes of a new campaign.
type CreateCampaignReq struct {
	Owner       domain.Address
	Goal        uint64
	Deadline    time.Time
	MetadataURI string
}
