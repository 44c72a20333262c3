package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// errDryRun aborts the transaction of a simulated operation after it
// succeeded so that nothing is committed.
var errDryRun = errors.New("dry run")

// CrowdfundingUseCase is the campaign ledger. It implements
// port.CrowdfundingUseCase and moves every token through the asset ledger
// bound to the current store transaction.
type CrowdfundingUseCase struct {
	store     port.LedgerStore
	publisher port.EventPublisher
	clock     port.Clock
	policy    domain.Policy
	custody   domain.Address
	tokens    func(port.TokenStore) port.TokenLedger
	logger    *slog.Logger
}

// Option customises a CrowdfundingUseCase.
type Option func(*CrowdfundingUseCase)

// WithClock replaces the system clock.
func WithClock(clock port.Clock) Option {
	return func(u *CrowdfundingUseCase) { u.clock = clock }
}

// WithPolicy replaces the default ledger rules.
func WithPolicy(policy domain.Policy) Option {
	return func(u *CrowdfundingUseCase) { u.policy = policy }
}

// WithCustody sets the account that holds donations.
func WithCustody(custody domain.Address) Option {
	return func(u *CrowdfundingUseCase) { u.custody = custody }
}

// WithTokenLedger replaces the asset ledger built for each transaction.
func WithTokenLedger(tokens func(port.TokenStore) port.TokenLedger) Option {
	return func(u *CrowdfundingUseCase) { u.tokens = tokens }
}

// WithLogger sets the logger used for post-commit failures.
func WithLogger(logger *slog.Logger) Option {
	return func(u *CrowdfundingUseCase) { u.logger = logger }
}

// NewCrowdfundingUseCase creates the campaign ledger over store. publisher may
// be nil when nobody subscribes to events.
func NewCrowdfundingUseCase(store port.LedgerStore, publisher port.EventPublisher, opts ...Option) *CrowdfundingUseCase {
	u := &CrowdfundingUseCase{
		store:     store,
		publisher: publisher,
		clock:     SystemClock{},
		policy:    domain.DefaultPolicy(),
		custody:   domain.DefaultCustodyAddress,
		tokens: func(s port.TokenStore) port.TokenLedger {
			return NewTokenLedger(s)
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateCampaign stores a new campaign and returns its id.
func (u *CrowdfundingUseCase) CreateCampaign(ctx context.Context, caller domain.Address, req port.CreateCampaignReq) (id uint64, err error) {
	ctx, span := startSpan(ctx, "CreateCampaign", attribute.String("caller", caller.String()))
	defer func() { endSpan(span, err) }()

	err = u.update(ctx, func(tx port.LedgerTx, rec *eventRecorder) error {
		id, err = u.createCampaign(ctx, tx, rec, req)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SimulateCreateCampaign returns the id CreateCampaign would assign for the
// current ledger state without storing anything.
func (u *CrowdfundingUseCase) SimulateCreateCampaign(ctx context.Context, caller domain.Address, req port.CreateCampaignReq) (id uint64, err error) {
	ctx, span := startSpan(ctx, "SimulateCreateCampaign", attribute.String("caller", caller.String()))
	defer func() { endSpan(span, err) }()

	err = u.store.Update(ctx, func(tx port.LedgerTx) error {
		rec := &eventRecorder{tx: tx, dryRun: true}
		if id, err = u.createCampaign(ctx, tx, rec, req); err != nil {
			return err
		}
		return errDryRun
	})
	if errors.Is(err, errDryRun) {
		return id, nil
	}
	if err == nil {
		err = errors.New("simulated create campaign was committed")
	}
	return 0, err
}

func (u *CrowdfundingUseCase) createCampaign(ctx context.Context, tx port.LedgerTx, rec *eventRecorder, req port.CreateCampaignReq) (uint64, error) {
	now := u.now()
	deadline := req.Deadline.UTC().Truncate(time.Second)

	if req.Owner.IsZero() || req.Owner == u.custody {
		return 0, fmt.Errorf("create campaign: %w", domain.ErrInvalidOwner)
	}
	if !u.policy.ValidDeadline(now, deadline) {
		return 0, fmt.Errorf("create campaign: %w: %s is less than %s after %s",
			domain.ErrInvalidDeadline, deadline.Format(time.RFC3339), u.policy.MinDeadlineLead, now.Format(time.RFC3339))
	}
	if strings.TrimSpace(req.MetadataURI) == "" {
		return 0, fmt.Errorf("create campaign: %w", domain.ErrInvalidMetadataURI)
	}

	id, err := tx.NextCampaignID(ctx)
	if err != nil {
		return 0, fmt.Errorf("create campaign: next id: %w", err)
	}
	c := &domain.Campaign{
		ID:          id,
		Owner:       req.Owner,
		Goal:        req.Goal,
		Deadline:    deadline,
		MetadataURI: req.MetadataURI,
		CreatedAt:   now,
	}
	if err = tx.InsertCampaign(ctx, c); err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	err = rec.emit(ctx, domain.Event{
		Kind:       domain.EventCampaignCreation,
		CampaignID: id,
		Account:    req.Owner,
		At:         now,
	})
	if err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	return id, nil
}

// DonateToCampaign moves amount from the caller into custody for campaign id.
// The caller must have approved at least amount to the custody account.
func (u *CrowdfundingUseCase) DonateToCampaign(ctx context.Context, caller domain.Address, id uint64, amount uint64) (err error) {
	ctx, span := startSpan(ctx, "DonateToCampaign",
		attribute.String("caller", caller.String()),
		attribute.Int64("campaign_id", int64(id)),
		attribute.String("amount", strconv.FormatUint(amount, 10)),
	)
	defer func() { endSpan(span, err) }()

	err = u.update(ctx, func(tx port.LedgerTx, rec *eventRecorder) error {
		c, err := loadCampaign(ctx, tx, id)
		if err != nil {
			return err
		}
		now := u.now()
		if !c.IsOpen(now) {
			return domain.ErrDeadlinePassed
		}
		if caller == u.custody {
			return domain.ErrCustodyDonation
		}
		if amount < u.policy.MinDonation {
			return fmt.Errorf("%w: %d < %d", domain.ErrBelowMinimumDonation, amount, u.policy.MinDonation)
		}
		collected, err := domain.AddAmounts(c.AmountCollected, amount)
		if err != nil {
			return err
		}
		contribution, err := tx.GetContribution(ctx, id, caller)
		if err != nil {
			return err
		}
		if contribution, err = domain.AddAmounts(contribution, amount); err != nil {
			return err
		}

		if err = u.tokens(tx).TransferFrom(ctx, u.custody, caller, u.custody, amount); err != nil {
			return err
		}

		c.AmountCollected = collected
		if err = tx.UpdateCampaign(ctx, c); err != nil {
			return err
		}
		if err = tx.SetContribution(ctx, id, caller, contribution); err != nil {
			return err
		}
		return rec.emit(ctx, domain.Event{
			Kind:       domain.EventDonation,
			CampaignID: id,
			Account:    caller,
			Amount:     amount,
			At:         now,
		})
	})
	return wrapCampaignErr("donate to", id, err)
}

// WithdrawCollectedFunds pays the collected amount to the owner after a
// successful campaign and returns the amount paid.
func (u *CrowdfundingUseCase) WithdrawCollectedFunds(ctx context.Context, caller domain.Address, id uint64) (amount uint64, err error) {
	ctx, span := startSpan(ctx, "WithdrawCollectedFunds",
		attribute.String("caller", caller.String()),
		attribute.Int64("campaign_id", int64(id)),
	)
	defer func() { endSpan(span, err) }()

	err = u.update(ctx, func(tx port.LedgerTx, rec *eventRecorder) error {
		c, err := loadCampaign(ctx, tx, id)
		if err != nil {
			return err
		}
		now := u.now()
		switch {
		case caller != c.Owner:
			return domain.ErrNotCampaignOwner
		case c.IsOpen(now):
			return domain.ErrDeadlineNotReached
		case c.Withdrawn:
			return domain.ErrAlreadyWithdrawn
		case u.policy.CollectRequiresGoal && !c.GoalMet():
			return fmt.Errorf("%w: raised %d of %d", domain.ErrGoalNotMet, c.TotalRaised(), c.Goal)
		case c.AmountRefunded > 0:
			return fmt.Errorf("%w: %d refunded", domain.ErrRefundsStarted, c.AmountRefunded)
		}

		amount = c.AmountCollected
		if err = u.tokens(tx).Transfer(ctx, u.custody, c.Owner, amount); err != nil {
			return err
		}
		c.Withdrawn = true
		if err = tx.UpdateCampaign(ctx, c); err != nil {
			return err
		}
		return rec.emit(ctx, domain.Event{
			Kind:       domain.EventCollectionWithdrawal,
			CampaignID: id,
			Account:    c.Owner,
			Amount:     amount,
			At:         now,
		})
	})
	if err != nil {
		return 0, wrapCampaignErr("withdraw collected funds from", id, err)
	}
	return amount, nil
}

// WithdrawDonatedFunds refunds the caller's contribution after a failed
// campaign and returns the amount refunded.
func (u *CrowdfundingUseCase) WithdrawDonatedFunds(ctx context.Context, caller domain.Address, id uint64) (amount uint64, err error) {
	ctx, span := startSpan(ctx, "WithdrawDonatedFunds",
		attribute.String("caller", caller.String()),
		attribute.Int64("campaign_id", int64(id)),
	)
	defer func() { endSpan(span, err) }()

	err = u.update(ctx, func(tx port.LedgerTx, rec *eventRecorder) error {
		c, err := loadCampaign(ctx, tx, id)
		if err != nil {
			return err
		}
		now := u.now()
		if c.IsOpen(now) {
			return domain.ErrDeadlineNotReached
		}
		if c.GoalMet() {
			return domain.ErrGoalMet
		}
		if c.Withdrawn {
			return domain.ErrAlreadyWithdrawn
		}
		amount, err = tx.GetContribution(ctx, id, caller)
		if err != nil {
			return err
		}
		if amount == 0 {
			return domain.ErrNothingToWithdraw
		}

		if err = u.tokens(tx).Transfer(ctx, u.custody, caller, amount); err != nil {
			return err
		}
		if err = tx.SetContribution(ctx, id, caller, 0); err != nil {
			return err
		}
		c.AmountCollected -= amount
		c.AmountRefunded += amount
		if err = tx.UpdateCampaign(ctx, c); err != nil {
			return err
		}
		return rec.emit(ctx, domain.Event{
			Kind:       domain.EventDonationWithdrawal,
			CampaignID: id,
			Account:    caller,
			Amount:     amount,
			At:         now,
		})
	})
	if err != nil {
		return 0, wrapCampaignErr("withdraw donated funds from", id, err)
	}
	return amount, nil
}

// GetCampaignByID returns a snapshot of campaign id.
func (u *CrowdfundingUseCase) GetCampaignByID(ctx context.Context, id uint64) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		c, err = loadCampaign(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, wrapCampaignErr("get", id, err)
	}
	return c, nil
}

// CampaignCount returns how many campaigns were created.
func (u *CrowdfundingUseCase) CampaignCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		n, err = tx.NextCampaignID(ctx)
		return err
	})
	return n, err
}

// ListCampaigns returns up to limit campaigns starting at offset, by id.
func (u *CrowdfundingUseCase) ListCampaigns(ctx context.Context, offset, limit uint64) ([]domain.Campaign, error) {
	var list []domain.Campaign
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		list, err = tx.ListCampaigns(ctx, offset, limit)
		return err
	})
	return list, err
}

// GetContribution returns the unrefunded amount donor gave to campaign id.
func (u *CrowdfundingUseCase) GetContribution(ctx context.Context, id uint64, donor domain.Address) (uint64, error) {
	var amount uint64
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		if _, err := loadCampaign(ctx, tx, id); err != nil {
			return err
		}
		var err error
		amount, err = tx.GetContribution(ctx, id, donor)
		return err
	})
	if err != nil {
		return 0, wrapCampaignErr("get contribution to", id, err)
	}
	return amount, nil
}

// ListContributions returns every outstanding contribution to campaign id.
func (u *CrowdfundingUseCase) ListContributions(ctx context.Context, id uint64) ([]domain.Contribution, error) {
	var list []domain.Contribution
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		if _, err := loadCampaign(ctx, tx, id); err != nil {
			return err
		}
		var err error
		list, err = tx.ListContributions(ctx, id)
		return err
	})
	if err != nil {
		return nil, wrapCampaignErr("list contributions to", id, err)
	}
	return list, nil
}

// ListEvents returns the events recorded for campaign id in commit order.
func (u *CrowdfundingUseCase) ListEvents(ctx context.Context, id uint64) ([]domain.Event, error) {
	var list []domain.Event
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		if _, err := loadCampaign(ctx, tx, id); err != nil {
			return err
		}
		var err error
		list, err = tx.ListEvents(ctx, id)
		return err
	})
	if err != nil {
		return nil, wrapCampaignErr("list events of", id, err)
	}
	return list, nil
}

// Now returns the ledger clock reading.
func (u *CrowdfundingUseCase) Now() time.Time {
	return u.now()
}

// Custody returns the account that holds donations.
func (u *CrowdfundingUseCase) Custody() domain.Address {
	return u.custody
}

// Policy returns the rules the ledger enforces.
func (u *CrowdfundingUseCase) Policy() domain.Policy {
	return u.policy
}

func (u *CrowdfundingUseCase) now() time.Time {
	return u.clock.Now().UTC()
}

// update runs fn in one store transaction and publishes the events it
// recorded once the transaction has committed. The recorder is rebuilt for
// every attempt because the store may retry fn.
func (u *CrowdfundingUseCase) update(ctx context.Context, fn func(tx port.LedgerTx, rec *eventRecorder) error) error {
	var rec *eventRecorder
	err := u.store.Update(ctx, func(tx port.LedgerTx) error {
		rec = &eventRecorder{tx: tx}
		return fn(tx, rec)
	})
	if err != nil {
		return err
	}
	if rec != nil {
		u.publish(ctx, rec.events)
	}
	return nil
}

func (u *CrowdfundingUseCase) publish(ctx context.Context, events []domain.Event) {
	if u.publisher == nil || len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		u.logger.WarnContext(ctx, "publish ledger events",
			slog.Int("count", len(events)),
			slog.Any("error", err),
		)
	}
}

// eventRecorder appends events to the transaction's event log and remembers
// them for publication after commit. A dry-run recorder never touches the
// log, so simulated operations do not consume event sequence numbers.
type eventRecorder struct {
	tx     port.EventLog
	dryRun bool
	events []domain.Event
}

func (r *eventRecorder) emit(ctx context.Context, e domain.Event) error {
	if r.dryRun {
		r.events = append(r.events, e)
		return nil
	}
	if err := r.tx.AppendEvent(ctx, &e); err != nil {
		return fmt.Errorf("append %s event: %w", e.Kind, err)
	}
	r.events = append(r.events, e)
	return nil
}

func loadCampaign(ctx context.Context, tx port.CampaignRepository, id uint64) (*domain.Campaign, error) {
	c, err := tx.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

func wrapCampaignErr(op string, id uint64, err error) error {
	if err == nil {
		return nil
	}
	return &domain.CampaignError{Op: op, CampaignID: id, Err: err}
}
