package port

import (
	"context"
	"errors"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

var ErrReadOnly = errors.New("write attempted in a read-only transaction")

// LedgerStore is the persistence layer of the ledger. It is an outbound port
// in hexagonal architecture. Implementations must serialize Update calls and
// apply each one all-or-nothing: when fn returns an error none of its writes
// become visible. Update may invoke fn more than once when the backend
// detects a conflicting concurrent transaction.
type LedgerStore interface {
	// Update runs fn in a read-write transaction and commits it when fn
	// returns nil.
	Update(ctx context.Context, fn func(tx LedgerTx) error) error
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the view of the ledger inside one transaction.
type LedgerTx interface {
	CampaignRepository
	TokenStore
	EventLog
}

// CampaignRepository stores campaigns and per-donor contributions.
type CampaignRepository interface {
	// NextCampaignID returns the id the next inserted campaign receives. It
	// also equals the number of campaigns created so far.
	NextCampaignID(ctx context.Context) (uint64, error)
	// InsertCampaign stores c under c.ID and advances the id counter past it.
	InsertCampaign(ctx context.Context, c *domain.Campaign) error
	// GetCampaign returns nil and no error when the campaign does not exist.
	GetCampaign(ctx context.Context, id uint64) (*domain.Campaign, error)
	// UpdateCampaign persists the mutable fields of c.
	UpdateCampaign(ctx context.Context, c *domain.Campaign) error
	// ListCampaigns returns campaigns ordered by id.
	ListCampaigns(ctx context.Context, offset, limit uint64) ([]domain.Campaign, error)

	GetContribution(ctx context.Context, campaignID uint64, donor domain.Address) (uint64, error)
	SetContribution(ctx context.Context, campaignID uint64, donor domain.Address, amount uint64) error
	// ListContributions returns the non-zero contributions of a campaign.
	ListContributions(ctx context.Context, campaignID uint64) ([]domain.Contribution, error)
}

// TokenStore holds raw token balances and allowances. Accounting rules live
// in the token ledger built on top of it.
type TokenStore interface {
	Balance(ctx context.Context, account domain.Address) (uint64, error)
	SetBalance(ctx context.Context, account domain.Address, amount uint64) error
	Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error)
	SetAllowance(ctx context.Context, owner, spender domain.Address, amount uint64) error
	TotalSupply(ctx context.Context) (uint64, error)
	SetTotalSupply(ctx context.Context, amount uint64) error
}

// EventLog is the append-only record of committed ledger events.
type EventLog interface {
	// AppendEvent assigns e.Seq and stores the event.
	AppendEvent(ctx context.Context, e *domain.Event) error
	ListEvents(ctx context.Context, campaignID uint64) ([]domain.Event, error)
}
