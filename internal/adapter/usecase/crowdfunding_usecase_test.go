package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port/mocks"
)

func TestCreateCampaign_ReturnsStoredAttributes(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()

	deadline := l.clock.Now().Add(10 * time.Minute)
	id, err := l.svc.CreateCampaign(ctx, creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    deadline,
		MetadataURI: "SampleURI",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	c := l.campaign(t, id)
	assert.Equal(t, creator, c.Owner)
	assert.Equal(t, uint64(500), c.Goal)
	assert.True(t, deadline.Equal(c.Deadline))
	assert.Equal(t, "SampleURI", c.MetadataURI)
	assert.Zero(t, c.AmountCollected)
	assert.False(t, c.Withdrawn)

	n, err := l.svc.CampaignCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestCreateCampaign_AssignsSequentialIDs(t *testing.T) {
	l := newLedger(t, nil)
	for want := uint64(0); want < 3; want++ {
		assert.Equal(t, want, l.create(t, 100, time.Hour))
	}
}

func TestCreateCampaign_RejectsInvalidOwner(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()

	for name, owner := range map[string]domain.Address{
		"null":    domain.ZeroAddress,
		"custody": custody,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := l.svc.CreateCampaign(ctx, creator, port.CreateCampaignReq{
				Owner:       owner,
				Goal:        500,
				Deadline:    l.clock.Now().Add(time.Hour),
				MetadataURI: "SampleURI",
			})
			require.ErrorIs(t, err, domain.ErrInvalidOwner)
		})
	}

	n, err := l.svc.CampaignCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateCampaign_RejectsDeadline(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	now := l.clock.Now()

	tests := []struct {
		name     string
		deadline time.Time
	}{
		{name: "in the past", deadline: now.Add(-time.Hour)},
		{name: "now", deadline: now},
		{name: "inside the lead time", deadline: now.Add(59 * time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.svc.CreateCampaign(ctx, creator, port.CreateCampaignReq{
				Owner:       creator,
				Goal:        500,
				Deadline:    tt.deadline,
				MetadataURI: "SampleURI",
			})
			require.ErrorIs(t, err, domain.ErrInvalidDeadline)
		})
	}

	n, err := l.svc.CampaignCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Exactly the lead time is accepted.
	_, err = l.svc.CreateCampaign(ctx, creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    now.Add(domain.DefaultMinDeadlineLead),
		MetadataURI: "SampleURI",
	})
	require.NoError(t, err)
}

func TestCreateCampaign_RejectsEmptyMetadata(t *testing.T) {
	l := newLedger(t, nil)
	_, err := l.svc.CreateCampaign(context.Background(), creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    l.clock.Now().Add(time.Hour),
		MetadataURI: "  ",
	})
	require.ErrorIs(t, err, domain.ErrInvalidMetadataURI)
}

func TestCreateCampaign_PublishesEvent(t *testing.T) {
	publisher := mocks.NewMockEventPublisher(t)
	publisher.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
			return e.Kind == domain.EventCampaignCreation && e.CampaignID == 0 && e.Account == creator
		})).
		Return(nil).
		Once()

	l := newLedger(t, publisher)
	id := l.create(t, 500, time.Hour)

	events, err := l.svc.ListEvents(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventCampaignCreation, events[0].Kind)
}

func TestCreateCampaign_PublishFailureIsNotReturned(t *testing.T) {
	publisher := mocks.NewMockEventPublisher(t)
	publisher.EXPECT().
		Publish(mock.Anything, mock.Anything).
		Return(errors.New("redis: connection refused"))

	l := newLedger(t, publisher)
	id := l.create(t, 500, time.Hour)
	assert.Equal(t, uint64(0), id)
}

func TestCreateCampaign_StoreFailureSkipsPublish(t *testing.T) {
	store := mocks.NewMockLedgerStore(t)
	store.EXPECT().
		Update(mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))
	// No expectations: any Publish call fails the test.
	publisher := mocks.NewMockEventPublisher(t)

	svc := NewCrowdfundingUseCase(store, publisher)
	_, err := svc.CreateCampaign(context.Background(), creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    time.Now().Add(time.Hour),
		MetadataURI: "SampleURI",
	})
	require.EqualError(t, err, "connection reset")
}

func TestSimulateCreateCampaign_MatchesNextID(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	l.create(t, 100, time.Hour)

	req := port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    l.clock.Now().Add(time.Hour),
		MetadataURI: "SampleURI",
	}
	simulated, err := l.svc.SimulateCreateCampaign(ctx, creator, req)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), simulated)

	n, err := l.svc.CampaignCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n, "a simulation must not store the campaign")

	id, err := l.svc.CreateCampaign(ctx, creator, req)
	require.NoError(t, err)
	assert.Equal(t, simulated, id)
}

// appendCountingStore counts the events appended through its transactions,
// including those of transactions that are later rolled back.
type appendCountingStore struct {
	port.LedgerStore
	appends int
}

func (s *appendCountingStore) Update(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	return s.LedgerStore.Update(ctx, func(tx port.LedgerTx) error {
		return fn(appendCountingTx{LedgerTx: tx, appends: &s.appends})
	})
}

type appendCountingTx struct {
	port.LedgerTx
	appends *int
}

func (tx appendCountingTx) AppendEvent(ctx context.Context, e *domain.Event) error {
	*tx.appends++
	return tx.LedgerTx.AppendEvent(ctx, e)
}

func TestSimulateCreateCampaign_SkipsEventLog(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	store := &appendCountingStore{LedgerStore: l.store}
	svc := NewCrowdfundingUseCase(store, nil, WithClock(l.clock))

	req := port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    l.clock.Now().Add(time.Hour),
		MetadataURI: "SampleURI",
	}
	_, err := svc.SimulateCreateCampaign(ctx, creator, req)
	require.NoError(t, err)
	assert.Zero(t, store.appends)

	id, err := svc.CreateCampaign(ctx, creator, req)
	require.NoError(t, err)
	assert.Equal(t, 1, store.appends)

	events, err := svc.ListEvents(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(1), events[0].Seq)
}

func TestSimulateCreateCampaign_ReportsValidationErrors(t *testing.T) {
	l := newLedger(t, nil)
	_, err := l.svc.SimulateCreateCampaign(context.Background(), creator, port.CreateCampaignReq{
		Owner:       creator,
		Goal:        500,
		Deadline:    l.clock.Now(),
		MetadataURI: "SampleURI",
	})
	require.ErrorIs(t, err, domain.ErrInvalidDeadline)
}

func TestDonateToCampaign_Accumulates(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)

	var total uint64
	for _, amount := range []uint64{10, 25, 40} {
		require.NoError(t, l.donate(t, donor1, id, amount))
		total += amount

		assert.Equal(t, total, l.campaign(t, id).AmountCollected)
		contribution, err := l.svc.GetContribution(ctx, id, donor1)
		require.NoError(t, err)
		assert.Equal(t, total, contribution)
	}

	assert.Equal(t, perAccount-total, l.balance(t, donor1))
	assert.Equal(t, total, l.balance(t, custody))
	l.requireConserved(t)
}

func TestDonateToCampaign_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		donor   domain.Address
		id      uint64
		amount  uint64
		approve uint64
		after   time.Duration
		wantErr error
	}{
		{name: "below minimum", donor: donor1, amount: 9, approve: 9, wantErr: domain.ErrBelowMinimumDonation},
		{name: "at deadline", donor: donor1, amount: 50, approve: 50, after: time.Hour, wantErr: domain.ErrDeadlinePassed},
		{name: "after deadline", donor: donor1, amount: 50, approve: 50, after: 2 * time.Hour, wantErr: domain.ErrDeadlinePassed},
		{name: "unknown campaign", donor: donor1, id: 7, amount: 50, approve: 50, wantErr: domain.ErrCampaignNotFound},
		{name: "insufficient allowance", donor: donor1, amount: 50, approve: 49, wantErr: domain.ErrInsufficientAllowance},
		{name: "insufficient balance", donor: stranger, amount: 50, approve: 50, wantErr: domain.ErrInsufficientBalance},
		{name: "custody account", donor: custody, amount: 50, approve: 50, wantErr: domain.ErrCustodyDonation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t, nil)
			ctx := context.Background()
			l.create(t, 500, time.Hour)
			l.clock.Advance(tt.after)

			require.NoError(t, l.tokens.Approve(ctx, tt.donor, custody, tt.approve))
			err := l.svc.DonateToCampaign(ctx, tt.donor, tt.id, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			var ce *domain.CampaignError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.id, ce.CampaignID)

			if tt.id == 0 {
				assert.Zero(t, l.campaign(t, 0).AmountCollected)
			}
			allowance, err := l.tokens.Allowance(ctx, tt.donor, custody)
			require.NoError(t, err)
			assert.Equal(t, tt.approve, allowance, "a failed donation must not spend the allowance")
			l.requireConserved(t)
		})
	}
}

func TestDonateToCampaign_TokenFailureRollsBack(t *testing.T) {
	tokens := mocks.NewMockTokenLedger(t)
	tokens.EXPECT().
		TransferFrom(mock.Anything, custody, donor1, custody, uint64(50)).
		Return(domain.ErrInsufficientBalance)

	l := newLedger(t, nil, WithTokenLedger(func(port.TokenStore) port.TokenLedger { return tokens }))
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)

	err := l.svc.DonateToCampaign(ctx, donor1, id, 50)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assert.Zero(t, l.campaign(t, id).AmountCollected)
	contribution, err := l.svc.GetContribution(ctx, id, donor1)
	require.NoError(t, err)
	assert.Zero(t, contribution)

	events, err := l.svc.ListEvents(ctx, id)
	require.NoError(t, err)
	assert.Len(t, events, 1, "only the creation event is recorded")
}

func TestDonateToCampaign_Concurrent(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 100_000, time.Hour)

	const donations = 50
	require.NoError(t, l.tokens.Approve(ctx, donor1, custody, donations*10))
	require.NoError(t, l.tokens.Approve(ctx, donor2, custody, donations*10))

	var wg sync.WaitGroup
	errs := make(chan error, 2*donations)
	for i := 0; i < donations; i++ {
		for _, donor := range []domain.Address{donor1, donor2} {
			wg.Add(1)
			go func(donor domain.Address) {
				defer wg.Done()
				errs <- l.svc.DonateToCampaign(ctx, donor, id, 10)
			}(donor)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, uint64(2*donations*10), l.campaign(t, id).AmountCollected)
	assert.Equal(t, uint64(2*donations*10), l.balance(t, custody))
	l.requireConserved(t)
}

func TestWithdrawCollectedFunds_BeforeDeadline(t *testing.T) {
	l := newLedger(t, nil)
	id := l.create(t, 100, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 200))

	_, err := l.svc.WithdrawCollectedFunds(context.Background(), creator, id)
	require.ErrorIs(t, err, domain.ErrDeadlineNotReached)
	assert.Equal(t, perAccount, l.balance(t, creator))
}

func TestWithdrawCollectedFunds_OnlyOwner(t *testing.T) {
	l := newLedger(t, nil)
	id := l.create(t, 100, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 100))
	l.clock.Advance(2 * time.Hour)

	_, err := l.svc.WithdrawCollectedFunds(context.Background(), donor1, id)
	require.ErrorIs(t, err, domain.ErrNotCampaignOwner)
	assert.False(t, l.campaign(t, id).Withdrawn)
}

func TestWithdrawCollectedFunds_GoalNotMet(t *testing.T) {
	l := newLedger(t, nil)
	id := l.create(t, 500, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 100))
	l.clock.Advance(2 * time.Hour)

	_, err := l.svc.WithdrawCollectedFunds(context.Background(), creator, id)
	require.ErrorIs(t, err, domain.ErrGoalNotMet)
	assert.Equal(t, uint64(100), l.balance(t, custody))
}

func TestWithdrawCollectedFunds_Twice(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 100, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 60))
	require.NoError(t, l.donate(t, donor2, id, 40))
	l.clock.Advance(2 * time.Hour)

	amount, err := l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount)
	assert.True(t, l.campaign(t, id).Withdrawn)
	balance := l.balance(t, creator)
	assert.Equal(t, perAccount+100, balance)

	_, err = l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.ErrorIs(t, err, domain.ErrAlreadyWithdrawn)
	assert.Equal(t, balance, l.balance(t, creator))

	_, err = l.svc.WithdrawDonatedFunds(ctx, donor1, id)
	require.ErrorIs(t, err, domain.ErrGoalMet)
	l.requireConserved(t)
}

func TestWithdrawCollectedFunds_TokenFailureRollsBack(t *testing.T) {
	var failing bool
	tokens := mocks.NewMockTokenLedger(t)
	tokens.EXPECT().
		Transfer(mock.Anything, custody, creator, uint64(100)).
		Return(errors.New("disk full"))

	l := newLedger(t, nil, WithTokenLedger(func(s port.TokenStore) port.TokenLedger {
		if failing {
			return tokens
		}
		return NewTokenLedger(s)
	}))
	id := l.create(t, 100, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 100))
	l.clock.Advance(2 * time.Hour)

	failing = true
	_, err := l.svc.WithdrawCollectedFunds(context.Background(), creator, id)
	require.EqualError(t, err, "withdraw collected funds from campaign 0: disk full")
	assert.False(t, l.campaign(t, id).Withdrawn)
}

func TestWithdrawDonatedFunds(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 30))
	require.NoError(t, l.donate(t, donor2, id, 70))

	_, err := l.svc.WithdrawDonatedFunds(ctx, donor1, id)
	require.ErrorIs(t, err, domain.ErrDeadlineNotReached)

	l.clock.Advance(2 * time.Hour)

	_, err = l.svc.WithdrawDonatedFunds(ctx, stranger, id)
	require.ErrorIs(t, err, domain.ErrNothingToWithdraw)

	amount, err := l.svc.WithdrawDonatedFunds(ctx, donor1, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), amount)

	c := l.campaign(t, id)
	assert.Equal(t, uint64(70), c.AmountCollected)
	assert.Equal(t, uint64(30), c.AmountRefunded)
	other, err := l.svc.GetContribution(ctx, id, donor2)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), other, "a refund leaves other donors alone")
	l.requireConserved(t)
}

func TestWithdrawDonatedFunds_UnknownCampaign(t *testing.T) {
	l := newLedger(t, nil)
	_, err := l.svc.WithdrawDonatedFunds(context.Background(), donor1, 3)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestWithdrawDonatedFunds_ClosedAfterCollection(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.CollectRequiresGoal = false
	l := newLedger(t, nil, WithPolicy(policy))
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 100))
	l.clock.Advance(2 * time.Hour)

	_, err := l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.NoError(t, err)

	_, err = l.svc.WithdrawDonatedFunds(ctx, donor1, id)
	require.ErrorIs(t, err, domain.ErrAlreadyWithdrawn)
	l.requireConserved(t)
}

func TestWithdrawCollectedFunds_ClosedAfterRefund(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.CollectRequiresGoal = false
	l := newLedger(t, nil, WithPolicy(policy))
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 100))
	require.NoError(t, l.donate(t, donor2, id, 50))
	l.clock.Advance(2 * time.Hour)

	_, err := l.svc.WithdrawDonatedFunds(ctx, donor1, id)
	require.NoError(t, err)

	_, err = l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.ErrorIs(t, err, domain.ErrRefundsStarted)
	assert.False(t, l.campaign(t, id).Withdrawn)

	amount, err := l.svc.WithdrawDonatedFunds(ctx, donor2, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), amount)
	assert.Zero(t, l.balance(t, custody))
	l.requireConserved(t)
}

func TestCustodyAccountCannotMoveEscrow(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 100, 10*time.Minute)
	require.NoError(t, l.donate(t, donor1, id, 60))
	require.NoError(t, l.donate(t, donor2, id, 60))

	require.ErrorIs(t, l.tokens.Transfer(ctx, custody, stranger, 120), domain.ErrCustodyAccount)
	require.ErrorIs(t, l.tokens.Approve(ctx, custody, stranger, 120), domain.ErrCustodyAccount)
	assert.Zero(t, l.balance(t, stranger))
	allowance, err := l.tokens.Allowance(ctx, custody, stranger)
	require.NoError(t, err)
	assert.Zero(t, allowance)

	l.clock.Advance(10 * time.Minute)
	amount, err := l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(120), amount)
	assert.Zero(t, l.balance(t, custody))
	l.requireConserved(t)
}

func TestScenario_OwnerCollects(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.CollectRequiresGoal = false
	l := newLedger(t, nil, WithPolicy(policy))
	ctx := context.Background()

	id := l.create(t, 500, 10*time.Minute)
	require.NoError(t, l.donate(t, donor1, id, 50))
	require.NoError(t, l.donate(t, donor2, id, 50))
	before := l.balance(t, creator)

	l.clock.Advance(10 * time.Minute)
	amount, err := l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount)
	assert.Equal(t, before+100, l.balance(t, creator))

	events, err := l.svc.ListEvents(ctx, id)
	require.NoError(t, err)
	kinds := make([]domain.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []domain.EventKind{
		domain.EventCampaignCreation,
		domain.EventDonation,
		domain.EventDonation,
		domain.EventCollectionWithdrawal,
	}, kinds)
	l.requireConserved(t)
}

func TestScenario_OwnerCollectsReachedGoal(t *testing.T) {
	l := newLedger(t, nil)
	id := l.create(t, 100, 10*time.Minute)
	require.NoError(t, l.donate(t, donor1, id, 50))
	require.NoError(t, l.donate(t, donor2, id, 50))
	before := l.balance(t, creator)

	l.clock.Advance(10 * time.Minute)
	amount, err := l.svc.WithdrawCollectedFunds(context.Background(), creator, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), amount)
	assert.Equal(t, before+100, l.balance(t, creator))
	assert.Zero(t, l.balance(t, custody))
}

func TestScenario_DonorsRefunded(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 500, 10*time.Minute)
	require.NoError(t, l.donate(t, donor1, id, 50))
	require.NoError(t, l.donate(t, donor1, id, 20))
	require.NoError(t, l.donate(t, donor2, id, 50))

	l.clock.Advance(10 * time.Minute)
	for donor, want := range map[domain.Address]uint64{donor1: 70, donor2: 50} {
		amount, err := l.svc.WithdrawDonatedFunds(ctx, donor, id)
		require.NoError(t, err)
		assert.Equal(t, want, amount)
		assert.Equal(t, perAccount, l.balance(t, donor))

		contribution, err := l.svc.GetContribution(ctx, id, donor)
		require.NoError(t, err)
		assert.Zero(t, contribution)

		_, err = l.svc.WithdrawDonatedFunds(ctx, donor, id)
		require.ErrorIs(t, err, domain.ErrNothingToWithdraw)
	}

	c := l.campaign(t, id)
	assert.Zero(t, c.AmountCollected)
	assert.Equal(t, domain.CampaignStatusRefunded, c.Status(l.clock.Now()))

	_, err := l.svc.WithdrawCollectedFunds(ctx, creator, id)
	require.ErrorIs(t, err, domain.ErrGoalNotMet)
	l.requireConserved(t)
}

func TestListCampaigns(t *testing.T) {
	l := newLedger(t, nil)
	for i := 0; i < 5; i++ {
		l.create(t, uint64(100+i), time.Hour)
	}

	list, err := l.svc.ListCampaigns(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(1), list[0].ID)
	assert.Equal(t, uint64(102), list[1].Goal)
}

func TestListContributions(t *testing.T) {
	l := newLedger(t, nil)
	ctx := context.Background()
	id := l.create(t, 500, time.Hour)
	require.NoError(t, l.donate(t, donor1, id, 10))
	require.NoError(t, l.donate(t, donor2, id, 20))

	list, err := l.svc.ListContributions(ctx, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Contribution{
		{CampaignID: id, Donor: donor1, Amount: 10},
		{CampaignID: id, Donor: donor2, Amount: 20},
	}, list)

	_, err = l.svc.ListContributions(ctx, 9)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestGetCampaignByID_NotFound(t *testing.T) {
	l := newLedger(t, nil)
	_, err := l.svc.GetCampaignByID(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
	require.EqualError(t, err, "get campaign 0: campaign does not exist")
}
