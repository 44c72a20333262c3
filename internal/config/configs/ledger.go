package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// Store backends selectable with LEDGER_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Ledger holds the campaign rules, the custody account and the genesis
// distribution of the token.
type Ledger struct {
	Store string `env:"STORE" envDefault:"memory"`

	MinDonation         uint64        `env:"MIN_DONATION" envDefault:"10"`
	MinDeadlineLead     time.Duration `env:"MIN_DEADLINE_LEAD" envDefault:"60s"`
	CollectRequiresGoal bool          `env:"COLLECT_REQUIRES_GOAL" envDefault:"true"`

	CustodyAddress  domain.Address `env:"CUSTODY_ADDRESS" envDefault:"0x0000000000000000000000000000000000cf0001"`
	TreasuryAddress domain.Address `env:"TREASURY_ADDRESS" envDefault:"0x0000000000000000000000000000000000cf0002"`
	InitialSupply   uint64         `env:"INITIAL_SUPPLY" envDefault:"10000000"`

	GenesisAccounts   []domain.Address `env:"GENESIS_ACCOUNTS" envSeparator:","`
	GenesisPerAccount uint64           `env:"GENESIS_PER_ACCOUNT" envDefault:"10000"`
}

// Policy converts the rule settings into a domain.Policy.
func (c Ledger) Policy() domain.Policy {
	return domain.Policy{
		MinDonation:         c.MinDonation,
		MinDeadlineLead:     c.MinDeadlineLead,
		CollectRequiresGoal: c.CollectRequiresGoal,
	}
}

// StoreKind validates and normalises the store selection.
func (c Ledger) StoreKind() (string, error) {
	switch kind := strings.ToLower(strings.TrimSpace(c.Store)); kind {
	case StoreMemory, StorePostgres, StoreSQLite:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown ledger store %q", c.Store)
	}
}

// Validate rejects settings the ledger cannot run with.
func (c Ledger) Validate() error {
	if c.CustodyAddress.IsZero() {
		return fmt.Errorf("custody address: %w", domain.ErrInvalidAddress)
	}
	if c.TreasuryAddress.IsZero() {
		return fmt.Errorf("treasury address: %w", domain.ErrInvalidAddress)
	}
	if c.CustodyAddress == c.TreasuryAddress {
		return fmt.Errorf("custody and treasury must be different accounts")
	}
	if c.MinDeadlineLead < 0 {
		return fmt.Errorf("negative minimum deadline lead %s", c.MinDeadlineLead)
	}
	_, err := c.StoreKind()
	return err
}
