package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/memory"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

var (
	treasury = domain.MustParseAddress("0x0000000000000000000000000000000000cf0002")
	creator  = domain.MustParseAddress("0x00000000000000000000000000000000000c4ea7")
	donor1   = domain.MustParseAddress("0x00000000000000000000000000000000000d0001")
	donor2   = domain.MustParseAddress("0x00000000000000000000000000000000000d0002")
	stranger = domain.MustParseAddress("0x000000000000000000000000000000000005a1e5")
	custody  = domain.DefaultCustodyAddress
)

const (
	genesisSupply uint64 = 1_000_000
	perAccount    uint64 = 10_000
)

// fakeClock is a port.Clock that only moves when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ledger is a campaign ledger over a funded in-memory store.
type ledger struct {
	store  *memory.Store
	clock  *fakeClock
	svc    *CrowdfundingUseCase
	tokens *TokenUseCase
}

func newLedger(t *testing.T, publisher port.EventPublisher, opts ...Option) *ledger {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	clock := newFakeClock()
	tokens := NewTokenUseCase(store, custody)
	applied, err := tokens.ApplyGenesis(ctx, Genesis{
		Treasury:   treasury,
		Supply:     genesisSupply,
		Accounts:   []domain.Address{creator, donor1, donor2},
		PerAccount: perAccount,
	})
	require.NoError(t, err)
	require.True(t, applied)

	opts = append([]Option{WithClock(clock), WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return &ledger{
		store:  store,
		clock:  clock,
		svc:    NewCrowdfundingUseCase(store, publisher, opts...),
		tokens: tokens,
	}
}

func (l *ledger) create(t *testing.T, goal uint64, lead time.Duration) uint64 {
	t.Helper()
	id, err := l.svc.CreateCampaign(context.Background(), creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        goal,
		Deadline:    l.clock.Now().Add(lead),
		MetadataURI: "SampleURI",
	})
	require.NoError(t, err)
	return id
}

// donate approves the custody account for amount and donates it.
func (l *ledger) donate(t *testing.T, donor domain.Address, id, amount uint64) error {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, l.tokens.Approve(ctx, donor, custody, amount))
	return l.svc.DonateToCampaign(ctx, donor, id, amount)
}

func (l *ledger) balance(t *testing.T, account domain.Address) uint64 {
	t.Helper()
	b, err := l.tokens.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return b
}

func (l *ledger) campaign(t *testing.T, id uint64) *domain.Campaign {
	t.Helper()
	c, err := l.svc.GetCampaignByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

// requireConserved checks that balances add up to the total supply.
func (l *ledger) requireConserved(t *testing.T) {
	t.Helper()
	var sum uint64
	for _, b := range l.store.Balances() {
		sum += b
	}
	supply, err := l.tokens.TotalSupply(context.Background())
	require.NoError(t, err)
	require.Equal(t, supply, sum, "balances must add up to the total supply")
}
