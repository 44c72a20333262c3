package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

const (
	counterNextCampaignID = "next_campaign_id"
	counterTotalSupply    = "total_supply"

	// SQLSTATE codes of transactions that lost a conflict and may be rerun.
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// LedgerStore implements port.LedgerStore using pgxpool for PostgreSQL.
// Writes run in SERIALIZABLE transactions that are retried with exponential
// backoff when Postgres aborts them for a serialization conflict.
type LedgerStore struct {
	pool     *pgxpool.Pool
	maxTries uint
}

// NewLedgerStore returns a new store instance. maxTries bounds the attempts
// of one Update; zero means 5.
func NewLedgerStore(pool *pgxpool.Pool, maxTries uint) *LedgerStore {
	if maxTries == 0 {
		maxTries = 5
	}
	return &LedgerStore{pool: pool, maxTries: maxTries}
}

// Update implements port.LedgerStore.
func (s *LedgerStore) Update(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	operation := func() (struct{}, error) {
		err := s.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, false, fn)
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(b), backoff.WithMaxTries(s.maxTries))
	return err
}

// View implements port.LedgerStore.
func (s *LedgerStore) View(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	return s.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, true, fn)
}

func (s *LedgerStore) run(ctx context.Context, opts pgx.TxOptions, readOnly bool, fn func(tx port.LedgerTx) error) (err error) {
	pgTx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = pgTx.Rollback(ctx)
			return
		}
		err = pgTx.Commit(ctx)
	}()
	return fn(&ledgerTx{q: pgTx, readOnly: readOnly})
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}

// ledgerTx implements port.LedgerTx inside one pgx transaction. Reads of
// rows that are about to be rewritten lock them in write transactions.
type ledgerTx struct {
	q        pgx.Tx
	readOnly bool
}

func (t *ledgerTx) forUpdate() string {
	if t.readOnly {
		return ""
	}
	return " FOR UPDATE"
}

func (t *ledgerTx) writable() error {
	if t.readOnly {
		return port.ErrReadOnly
	}
	return nil
}

func (t *ledgerTx) counter(ctx context.Context, name string) (uint64, error) {
	var v int64
	err := t.q.QueryRow(ctx, `SELECT value FROM ledger_counters WHERE name = $1`+t.forUpdate(), name).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return uint64(v), nil
}

func (t *ledgerTx) NextCampaignID(ctx context.Context) (uint64, error) {
	return t.counter(ctx, counterNextCampaignID)
}

func (t *ledgerTx) InsertCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := t.writable(); err != nil {
		return err
	}
	id, err := toInt64(c.ID)
	if err != nil {
		return err
	}
	goal, err := toInt64(c.Goal)
	if err != nil {
		return err
	}
	tag, err := t.q.Exec(ctx, `UPDATE ledger_counters SET value = value + 1 WHERE name = $1 AND value = $2`, counterNextCampaignID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("insert campaign %d: id is not the next one", c.ID)
	}
	_, err = t.q.Exec(ctx, `INSERT INTO campaigns (id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at) VALUES ($1,$2,$3,$4,$5,0,0,FALSE,$6)`,
		id, c.Owner.String(), goal, c.Deadline.UTC(), c.MetadataURI, c.CreatedAt.UTC())
	return err
}

func (t *ledgerTx) GetCampaign(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if id > math.MaxInt64 {
		return nil, nil
	}
	row := t.q.QueryRow(ctx, `SELECT id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at FROM campaigns WHERE id = $1`+t.forUpdate(), int64(id))
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (t *ledgerTx) UpdateCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := t.writable(); err != nil {
		return err
	}
	collected, err := toInt64(c.AmountCollected)
	if err != nil {
		return err
	}
	refunded, err := toInt64(c.AmountRefunded)
	if err != nil {
		return err
	}
	tag, err := t.q.Exec(ctx, `UPDATE campaigns SET amount_collected = $1, amount_refunded = $2, withdrawn = $3 WHERE id = $4`,
		collected, refunded, c.Withdrawn, int64(c.ID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (t *ledgerTx) ListCampaigns(ctx context.Context, offset, limit uint64) ([]domain.Campaign, error) {
	if limit == 0 || limit > math.MaxInt64 {
		limit = math.MaxInt64
	}
	if offset > math.MaxInt64 {
		return []domain.Campaign{}, nil
	}
	rows, err := t.q.Query(ctx, `SELECT id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at FROM campaigns ORDER BY id OFFSET $1 LIMIT $2`,
		int64(offset), int64(limit))
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Campaign{}
	}
	return list, nil
}

func (t *ledgerTx) GetContribution(ctx context.Context, campaignID uint64, donor domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRow(ctx, `SELECT amount FROM contributions WHERE campaign_id = $1 AND donor = $2`+t.forUpdate(),
		int64(campaignID), donor.String()).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(amount), nil
}

func (t *ledgerTx) SetContribution(ctx context.Context, campaignID uint64, donor domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if amount == 0 {
		_, err := t.q.Exec(ctx, `DELETE FROM contributions WHERE campaign_id = $1 AND donor = $2`, int64(campaignID), donor.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `INSERT INTO contributions (campaign_id, donor, amount) VALUES ($1,$2,$3)
ON CONFLICT (campaign_id, donor) DO UPDATE SET amount = EXCLUDED.amount`, int64(campaignID), donor.String(), v)
	return err
}

func (t *ledgerTx) ListContributions(ctx context.Context, campaignID uint64) ([]domain.Contribution, error) {
	rows, err := t.q.Query(ctx, `SELECT donor, amount FROM contributions WHERE campaign_id = $1 ORDER BY donor`, int64(campaignID))
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contribution, error) {
		var (
			donor  string
			amount int64
		)
		if err := row.Scan(&donor, &amount); err != nil {
			return domain.Contribution{}, err
		}
		addr, err := domain.ParseAddress(donor)
		if err != nil {
			return domain.Contribution{}, err
		}
		return domain.Contribution{CampaignID: campaignID, Donor: addr, Amount: uint64(amount)}, nil
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Contribution{}
	}
	return list, nil
}

func (t *ledgerTx) Balance(ctx context.Context, account domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRow(ctx, `SELECT amount FROM token_balances WHERE account = $1`+t.forUpdate(), account.String()).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(amount), nil
}

func (t *ledgerTx) SetBalance(ctx context.Context, account domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if amount == 0 {
		_, err := t.q.Exec(ctx, `DELETE FROM token_balances WHERE account = $1`, account.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `INSERT INTO token_balances (account, amount) VALUES ($1,$2)
ON CONFLICT (account) DO UPDATE SET amount = EXCLUDED.amount`, account.String(), v)
	return err
}

func (t *ledgerTx) Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRow(ctx, `SELECT amount FROM token_allowances WHERE owner = $1 AND spender = $2`+t.forUpdate(),
		owner.String(), spender.String()).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(amount), nil
}

func (t *ledgerTx) SetAllowance(ctx context.Context, owner, spender domain.Address, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if amount == 0 {
		_, err := t.q.Exec(ctx, `DELETE FROM token_allowances WHERE owner = $1 AND spender = $2`, owner.String(), spender.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `INSERT INTO token_allowances (owner, spender, amount) VALUES ($1,$2,$3)
ON CONFLICT (owner, spender) DO UPDATE SET amount = EXCLUDED.amount`, owner.String(), spender.String(), v)
	return err
}

func (t *ledgerTx) TotalSupply(ctx context.Context) (uint64, error) {
	return t.counter(ctx, counterTotalSupply)
}

func (t *ledgerTx) SetTotalSupply(ctx context.Context, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `UPDATE ledger_counters SET value = $1 WHERE name = $2`, v, counterTotalSupply)
	return err
}

func (t *ledgerTx) AppendEvent(ctx context.Context, e *domain.Event) error {
	if err := t.writable(); err != nil {
		return err
	}
	amount, err := toInt64(e.Amount)
	if err != nil {
		return err
	}
	var seq int64
	err = t.q.QueryRow(ctx, `INSERT INTO ledger_events (kind, campaign_id, account, amount, at) VALUES ($1,$2,$3,$4,$5) RETURNING seq`,
		string(e.Kind), int64(e.CampaignID), e.Account.String(), amount, e.At.UTC()).Scan(&seq)
	if err != nil {
		return err
	}
	e.Seq = uint64(seq)
	return nil
}

func (t *ledgerTx) ListEvents(ctx context.Context, campaignID uint64) ([]domain.Event, error) {
	rows, err := t.q.Query(ctx, `SELECT seq, kind, campaign_id, account, amount, at FROM ledger_events WHERE campaign_id = $1 ORDER BY seq`, int64(campaignID))
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		var (
			e               domain.Event
			seq, id, amount int64
			kind, account   string
		)
		if err := row.Scan(&seq, &kind, &id, &account, &amount, &e.At); err != nil {
			return domain.Event{}, err
		}
		addr, err := domain.ParseAddress(account)
		if err != nil {
			return domain.Event{}, err
		}
		e.Seq, e.Kind, e.CampaignID, e.Account, e.Amount = uint64(seq), domain.EventKind(kind), uint64(id), addr, uint64(amount)
		e.At = e.At.UTC()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Event{}
	}
	return list, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                             domain.Campaign
		id, goal, collected, refunded int64
		owner                         string
	)
	err := row.Scan(&id, &owner, &goal, &c.Deadline, &c.MetadataURI, &collected, &refunded, &c.Withdrawn, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.Owner, err = domain.ParseAddress(owner); err != nil {
		return nil, err
	}
	c.ID, c.Goal, c.AmountCollected, c.AmountRefunded = uint64(id), uint64(goal), uint64(collected), uint64(refunded)
	c.Deadline = c.Deadline.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// toInt64 converts an amount for a BIGINT column.
func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, domain.ErrAmountOverflow
	}
	return int64(v), nil
}
