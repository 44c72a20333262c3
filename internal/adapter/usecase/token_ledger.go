package usecase

import (
	"context"
	"fmt"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// TokenLedger implements port.TokenLedger on top of a port.TokenStore. It
// holds the accounting rules only; atomicity comes from the transaction the
// store belongs to, so a failed call must abort the enclosing transaction.
type TokenLedger struct {
	store port.TokenStore
}

// NewTokenLedger returns a ledger that reads and writes through store.
func NewTokenLedger(store port.TokenStore) *TokenLedger {
	return &TokenLedger{store: store}
}

// BalanceOf returns the balance of account.
func (l *TokenLedger) BalanceOf(ctx context.Context, account domain.Address) (uint64, error) {
	return l.store.Balance(ctx, account)
}

// Allowance returns how much spender may still move out of owner's balance.
func (l *TokenLedger) Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error) {
	return l.store.Allowance(ctx, owner, spender)
}

// TotalSupply returns the number of tokens in existence.
func (l *TokenLedger) TotalSupply(ctx context.Context) (uint64, error) {
	return l.store.TotalSupply(ctx)
}

// Transfer moves amount from from to to. A transfer to oneself only checks
// the balance.
func (l *TokenLedger) Transfer(ctx context.Context, from, to domain.Address, amount uint64) error {
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}
	fromBalance, err := l.store.Balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: balance %d, amount %d", domain.ErrInsufficientBalance, fromBalance, amount)
	}
	if from == to || amount == 0 {
		return nil
	}
	toBalance, err := l.store.Balance(ctx, to)
	if err != nil {
		return err
	}
	toBalance, err = domain.AddAmounts(toBalance, amount)
	if err != nil {
		return err
	}
	if err = l.store.SetBalance(ctx, from, fromBalance-amount); err != nil {
		return err
	}
	return l.store.SetBalance(ctx, to, toBalance)
}

// Approve replaces the allowance owner grants to spender.
func (l *TokenLedger) Approve(ctx context.Context, owner, spender domain.Address, amount uint64) error {
	if spender.IsZero() {
		return domain.ErrInvalidSpender
	}
	return l.store.SetAllowance(ctx, owner, spender, amount)
}

// TransferFrom spends spender's allowance on from to move amount to to.
func (l *TokenLedger) TransferFrom(ctx context.Context, spender, from, to domain.Address, amount uint64) error {
	allowance, err := l.store.Allowance(ctx, from, spender)
	if err != nil {
		return err
	}
	if allowance < amount {
		return fmt.Errorf("%w: allowance %d, amount %d", domain.ErrInsufficientAllowance, allowance, amount)
	}
	if err = l.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	return l.store.SetAllowance(ctx, from, spender, allowance-amount)
}

// Mint credits amount new tokens to to and grows the supply.
func (l *TokenLedger) Mint(ctx context.Context, to domain.Address, amount uint64) error {
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}
	supply, err := l.store.TotalSupply(ctx)
	if err != nil {
		return err
	}
	if supply, err = domain.AddAmounts(supply, amount); err != nil {
		return err
	}
	balance, err := l.store.Balance(ctx, to)
	if err != nil {
		return err
	}
	if balance, err = domain.AddAmounts(balance, amount); err != nil {
		return err
	}
	if err = l.store.SetTotalSupply(ctx, supply); err != nil {
		return err
	}
	return l.store.SetBalance(ctx, to, balance)
}
