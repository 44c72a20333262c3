// Package memory implements port.LedgerStore in process memory. It is the
// default backend and the one tests run against.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

type allowanceKey struct {
	owner, spender domain.Address
}

// state is one version of the whole ledger.
type state struct {
	campaigns     []domain.Campaign
	contributions map[uint64]map[domain.Address]uint64
	balances      map[domain.Address]uint64
	allowances    map[allowanceKey]uint64
	supply        uint64
	events        []domain.Event
}

func newState() *state {
	return &state{
		contributions: make(map[uint64]map[domain.Address]uint64),
		balances:      make(map[domain.Address]uint64),
		allowances:    make(map[allowanceKey]uint64),
	}
}

// clone copies everything a transaction may modify. The event slice is
// append-only, so capping its capacity is enough to keep appends private.
func (s *state) clone() *state {
	c := &state{
		campaigns:     slices.Clone(s.campaigns),
		contributions: make(map[uint64]map[domain.Address]uint64, len(s.contributions)),
		balances:      maps.Clone(s.balances),
		allowances:    maps.Clone(s.allowances),
		supply:        s.supply,
		events:        s.events[:len(s.events):len(s.events)],
	}
	for id, donors := range s.contributions {
		c.contributions[id] = maps.Clone(donors)
	}
	return c
}

// Store keeps the ledger in memory. Update takes an exclusive lock and works
// on a private copy that replaces the current state only when fn succeeds.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore returns an empty ledger.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Update implements port.LedgerStore.
func (s *Store) Update(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	if err := fn(&tx{st: next}); err != nil {
		return err
	}
	s.st = next
	return nil
}

// View implements port.LedgerStore.
func (s *Store) View(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&tx{st: s.st, readOnly: true})
}

// tx implements port.LedgerTx over one state version.
type tx struct {
	st       *state
	readOnly bool
}

func (t *tx) writable() error {
	if t.readOnly {
		return port.ErrReadOnly
	}
	return nil
}

func (t *tx) NextCampaignID(_ context.Context) (uint64, error) {
	return uint64(len(t.st.campaigns)), nil
}

func (t *tx) InsertCampaign(_ context.Context, c *domain.Campaign) error {
	if err := t.writable(); err != nil {
		return err
	}
	if c.ID != uint64(len(t.st.campaigns)) {
		return fmt.Errorf("insert campaign %d: next id is %d", c.ID, len(t.st.campaigns))
	}
	t.st.campaigns = append(t.st.campaigns, *c)
	return nil
}

func (t *tx) GetCampaign(_ context.Context, id uint64) (*domain.Campaign, error) {
	if id >= uint64(len(t.st.campaigns)) {
		return nil, nil
	}
	c := t.st.campaigns[id]
	return &c, nil
}

func (t *tx) UpdateCampaign(_ context.Context, c *domain.Campaign) error {
	if err := t.writable(); err != nil {
		return err
	}
	if c.ID >= uint64(len(t.st.campaigns)) {
		return domain.ErrCampaignNotFound
	}
	t.st.campaigns[c.ID] = *c
	return nil
}

func (t *tx) ListCampaigns(_ context.Context, offset, limit uint64) ([]domain.Campaign, error) {
	n := uint64(len(t.st.campaigns))
	if offset >= n {
		return []domain.Campaign{}, nil
	}
	end := n
	if limit > 0 {
		end = offset + min(limit, n-offset)
	}
	return slices.Clone(t.st.campaigns[offset:end]), nil
}

func (t *tx) GetContribution(_ context.Context, campaignID uint64, donor domain.Address) (uint64, error) {
	return t.st.contributions[campaignID][donor], nil
}

func (t *tx) SetContribution(_ context.Context, campaignID uint64, donor domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	donors, ok := t.st.contributions[campaignID]
	if !ok {
		donors = make(map[domain.Address]uint64)
		t.st.contributions[campaignID] = donors
	}
	if amount == 0 {
		delete(donors, donor)
		return nil
	}
	donors[donor] = amount
	return nil
}

func (t *tx) ListContributions(_ context.Context, campaignID uint64) ([]domain.Contribution, error) {
	donors := t.st.contributions[campaignID]
	list := make([]domain.Contribution, 0, len(donors))
	for donor, amount := range donors {
		list = append(list, domain.Contribution{CampaignID: campaignID, Donor: donor, Amount: amount})
	}
	slices.SortFunc(list, func(a, b domain.Contribution) int {
		return bytes.Compare(a.Donor[:], b.Donor[:])
	})
	return list, nil
}

func (t *tx) Balance(_ context.Context, account domain.Address) (uint64, error) {
	return t.st.balances[account], nil
}

func (t *tx) SetBalance(_ context.Context, account domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if amount == 0 {
		delete(t.st.balances, account)
		return nil
	}
	t.st.balances[account] = amount
	return nil
}

func (t *tx) Allowance(_ context.Context, owner, spender domain.Address) (uint64, error) {
	return t.st.allowances[allowanceKey{owner, spender}], nil
}

func (t *tx) SetAllowance(_ context.Context, owner, spender domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	key := allowanceKey{owner, spender}
	if amount == 0 {
		delete(t.st.allowances, key)
		return nil
	}
	t.st.allowances[key] = amount
	return nil
}

func (t *tx) TotalSupply(_ context.Context) (uint64, error) {
	return t.st.supply, nil
}

func (t *tx) SetTotalSupply(_ context.Context, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.st.supply = amount
	return nil
}

func (t *tx) AppendEvent(_ context.Context, e *domain.Event) error {
	if err := t.writable(); err != nil {
		return err
	}
	e.Seq = uint64(len(t.st.events)) + 1
	t.st.events = append(t.st.events, *e)
	return nil
}

func (t *tx) ListEvents(_ context.Context, campaignID uint64) ([]domain.Event, error) {
	list := make([]domain.Event, 0)
	for _, e := range t.st.events {
		if e.CampaignID == campaignID {
			list = append(list, e)
		}
	}
	return list, nil
}

// Balances returns a copy of every non-zero balance. It exists for
// conservation checks in tests and diagnostics.
func (s *Store) Balances() map[domain.Address]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.st.balances)
}
