// Package sqlite implements port.LedgerStore on an embedded SQLite file
// through modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

const (
	counterNextCampaignID = "next_campaign_id"
	counterTotalSupply    = "total_supply"
)

// LedgerStore provides SQLite-backed persistence for the ledger. The
// database handle must be limited to one open connection, which serializes
// every transaction.
type LedgerStore struct {
	sqlDB *sql.DB
}

// NewLedgerStore wraps an opened and migrated database.
func NewLedgerStore(sqlDB *sql.DB) *LedgerStore {
	return &LedgerStore{sqlDB: sqlDB}
}

// Close closes the underlying SQLite database.
func (s *LedgerStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Update implements port.LedgerStore.
func (s *LedgerStore) Update(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	return s.run(ctx, false, fn)
}

// View implements port.LedgerStore.
func (s *LedgerStore) View(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	return s.run(ctx, true, fn)
}

func (s *LedgerStore) run(ctx context.Context, readOnly bool, fn func(tx port.LedgerTx) error) (err error) {
	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
			return
		}
		if err = sqlTx.Commit(); err != nil {
			err = fmt.Errorf("commit tx: %w", err)
		}
	}()
	return fn(&ledgerTx{q: sqlTx, readOnly: readOnly})
}

type ledgerTx struct {
	q        *sql.Tx
	readOnly bool
}

func (t *ledgerTx) writable() error {
	if t.readOnly {
		return port.ErrReadOnly
	}
	return nil
}

func (t *ledgerTx) counter(ctx context.Context, name string) (uint64, error) {
	var v int64
	if err := t.q.QueryRowContext(ctx, `SELECT value FROM ledger_counters WHERE name = ?`, name).Scan(&v); err != nil {
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
	res, err := t.q.ExecContext(ctx, `UPDATE ledger_counters SET value = value + 1 WHERE name = ? AND value = ?`, counterNextCampaignID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return fmt.Errorf("insert campaign %d: id is not the next one", c.ID)
	}
	_, err = t.q.ExecContext(ctx, `INSERT INTO campaigns (id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at) VALUES (?, ?, ?, ?, ?, 0, 0, 0, ?)`,
		id, c.Owner.String(), goal, toNanos(c.Deadline), c.MetadataURI, toNanos(c.CreatedAt))
	return err
}

func (t *ledgerTx) GetCampaign(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if id > math.MaxInt64 {
		return nil, nil
	}
	row := t.q.QueryRowContext(ctx, `SELECT id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at FROM campaigns WHERE id = ?`, int64(id))
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
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
	res, err := t.q.ExecContext(ctx, `UPDATE campaigns SET amount_collected = ?, amount_refunded = ?, withdrawn = ? WHERE id = ?`,
		collected, refunded, c.Withdrawn, int64(c.ID))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (t *ledgerTx) ListCampaigns(ctx context.Context, offset, limit uint64) ([]domain.Campaign, error) {
	if offset > math.MaxInt64 {
		return []domain.Campaign{}, nil
	}
	// SQLite treats a negative LIMIT as no limit.
	lim := int64(-1)
	if limit > 0 && limit <= math.MaxInt64 {
		lim = int64(limit)
	}
	rows, err := t.q.QueryContext(ctx, `SELECT id, owner, goal, deadline, metadata_uri, amount_collected, amount_refunded, withdrawn, created_at FROM campaigns ORDER BY id LIMIT ? OFFSET ?`,
		lim, int64(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

func (t *ledgerTx) GetContribution(ctx context.Context, campaignID uint64, donor domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRowContext(ctx, `SELECT amount FROM contributions WHERE campaign_id = ? AND donor = ?`,
		int64(campaignID), donor.String()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
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
		_, err := t.q.ExecContext(ctx, `DELETE FROM contributions WHERE campaign_id = ? AND donor = ?`, int64(campaignID), donor.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.ExecContext(ctx, `INSERT INTO contributions (campaign_id, donor, amount) VALUES (?, ?, ?)
ON CONFLICT (campaign_id, donor) DO UPDATE SET amount = excluded.amount`, int64(campaignID), donor.String(), v)
	return err
}

func (t *ledgerTx) ListContributions(ctx context.Context, campaignID uint64) ([]domain.Contribution, error) {
	rows, err := t.q.QueryContext(ctx, `SELECT donor, amount FROM contributions WHERE campaign_id = ? ORDER BY donor`, int64(campaignID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.Contribution{}
	for rows.Next() {
		var (
			donor  string
			amount int64
		)
		if err := rows.Scan(&donor, &amount); err != nil {
			return nil, err
		}
		addr, err := domain.ParseAddress(donor)
		if err != nil {
			return nil, err
		}
		list = append(list, domain.Contribution{CampaignID: campaignID, Donor: addr, Amount: uint64(amount)})
	}
	return list, rows.Err()
}

func (t *ledgerTx) Balance(ctx context.Context, account domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRowContext(ctx, `SELECT amount FROM token_balances WHERE account = ?`, account.String()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
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
		_, err := t.q.ExecContext(ctx, `DELETE FROM token_balances WHERE account = ?`, account.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.ExecContext(ctx, `INSERT INTO token_balances (account, amount) VALUES (?, ?)
ON CONFLICT (account) DO UPDATE SET amount = excluded.amount`, account.String(), v)
	return err
}

func (t *ledgerTx) Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error) {
	var amount int64
	err := t.q.QueryRowContext(ctx, `SELECT amount FROM token_allowances WHERE owner = ? AND spender = ?`,
		owner.String(), spender.String()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
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
		_, err := t.q.ExecContext(ctx, `DELETE FROM token_allowances WHERE owner = ? AND spender = ?`, owner.String(), spender.String())
		return err
	}
	v, err := toInt64(amount)
	if err != nil {
		return err
	}
	_, err = t.q.ExecContext(ctx, `INSERT INTO token_allowances (owner, spender, amount) VALUES (?, ?, ?)
ON CONFLICT (owner, spender) DO UPDATE SET amount = excluded.amount`, owner.String(), spender.String(), v)
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
	_, err = t.q.ExecContext(ctx, `UPDATE ledger_counters SET value = ? WHERE name = ?`, v, counterTotalSupply)
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
	res, err := t.q.ExecContext(ctx, `INSERT INTO ledger_events (kind, campaign_id, account, amount, at) VALUES (?, ?, ?, ?, ?)`,
		string(e.Kind), int64(e.CampaignID), e.Account.String(), amount, toNanos(e.At))
	if err != nil {
		return err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.Seq = uint64(seq)
	return nil
}

func (t *ledgerTx) ListEvents(ctx context.Context, campaignID uint64) ([]domain.Event, error) {
	rows, err := t.q.QueryContext(ctx, `SELECT seq, kind, campaign_id, account, amount, at FROM ledger_events WHERE campaign_id = ? ORDER BY seq`, int64(campaignID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.Event{}
	for rows.Next() {
		var (
			seq, id, amount, at int64
			kind, account       string
		)
		if err := rows.Scan(&seq, &kind, &id, &account, &amount, &at); err != nil {
			return nil, err
		}
		addr, err := domain.ParseAddress(account)
		if err != nil {
			return nil, err
		}
		list = append(list, domain.Event{
			Seq:        uint64(seq),
			Kind:       domain.EventKind(kind),
			CampaignID: uint64(id),
			Account:    addr,
			Amount:     uint64(amount),
			At:         fromNanos(at),
		})
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	var (
		c                             domain.Campaign
		id, goal, collected, refunded int64
		deadline, createdAt           int64
		owner                         string
	)
	err := row.Scan(&id, &owner, &goal, &deadline, &c.MetadataURI, &collected, &refunded, &c.Withdrawn, &createdAt)
	if err != nil {
		return nil, err
	}
	if c.Owner, err = domain.ParseAddress(owner); err != nil {
		return nil, err
	}
	c.ID, c.Goal, c.AmountCollected, c.AmountRefunded = uint64(id), uint64(goal), uint64(collected), uint64(refunded)
	c.Deadline = fromNanos(deadline)
	c.CreatedAt = fromNanos(createdAt)
	return &c, nil
}

func toNanos(value time.Time) int64 {
	return value.UTC().UnixNano()
}

func fromNanos(value int64) time.Time {
	return time.Unix(0, value).UTC()
}

func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, domain.ErrAmountOverflow
	}
	return int64(v), nil
}
