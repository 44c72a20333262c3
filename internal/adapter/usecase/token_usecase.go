package usecase

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// TokenUseCase exposes the asset ledger to callers outside the campaign
// ledger, e.g. donors approving the custody account. It implements
// port.TokenUseCase.
type TokenUseCase struct {
	store   port.LedgerStore
	custody domain.Address
}

// NewTokenUseCase returns token operations backed by store. custody holds
// campaign donations and cannot transfer or approve on its own behalf.
func NewTokenUseCase(store port.LedgerStore, custody domain.Address) *TokenUseCase {
	return &TokenUseCase{store: store, custody: custody}
}

// BalanceOf returns the balance of account.
func (u *TokenUseCase) BalanceOf(ctx context.Context, account domain.Address) (uint64, error) {
	var balance uint64
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		balance, err = NewTokenLedger(tx).BalanceOf(ctx, account)
		return err
	})
	return balance, err
}

// Allowance returns what spender may still move out of owner's balance.
func (u *TokenUseCase) Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error) {
	var allowance uint64
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		allowance, err = NewTokenLedger(tx).Allowance(ctx, owner, spender)
		return err
	})
	return allowance, err
}

// TotalSupply returns the number of tokens in existence.
func (u *TokenUseCase) TotalSupply(ctx context.Context) (uint64, error) {
	var supply uint64
	err := u.store.View(ctx, func(tx port.LedgerTx) error {
		var err error
		supply, err = NewTokenLedger(tx).TotalSupply(ctx)
		return err
	})
	return supply, err
}

// Transfer moves amount from caller to to.
func (u *TokenUseCase) Transfer(ctx context.Context, caller, to domain.Address, amount uint64) (err error) {
	ctx, span := startSpan(ctx, "Transfer",
		attribute.String("caller", caller.String()),
		attribute.String("to", to.String()),
		attribute.String("amount", strconv.FormatUint(amount, 10)),
	)
	defer func() { endSpan(span, err) }()

	if caller == u.custody {
		return domain.ErrCustodyAccount
	}

	return u.store.Update(ctx, func(tx port.LedgerTx) error {
		return NewTokenLedger(tx).Transfer(ctx, caller, to, amount)
	})
}

// Approve sets the allowance caller grants to spender.
func (u *TokenUseCase) Approve(ctx context.Context, caller, spender domain.Address, amount uint64) (err error) {
	ctx, span := startSpan(ctx, "Approve",
		attribute.String("caller", caller.String()),
		attribute.String("spender", spender.String()),
		attribute.String("amount", strconv.FormatUint(amount, 10)),
	)
	defer func() { endSpan(span, err) }()

	if caller == u.custody {
		return domain.ErrCustodyAccount
	}

	return u.store.Update(ctx, func(tx port.LedgerTx) error {
		return NewTokenLedger(tx).Approve(ctx, caller, spender, amount)
	})
}

// Genesis describes the initial token distribution of a fresh ledger.
type Genesis struct {
	Treasury   domain.Address
	Supply     uint64
	Accounts   []domain.Address
	PerAccount uint64
}

// ApplyGenesis mints Supply to Treasury and funds every account with
// PerAccount from it. It does nothing and returns false when tokens already
// exist, so it is safe to run on every start.
func (u *TokenUseCase) ApplyGenesis(ctx context.Context, g Genesis) (applied bool, err error) {
	ctx, span := startSpan(ctx, "ApplyGenesis", attribute.String("supply", strconv.FormatUint(g.Supply, 10)))
	defer func() { endSpan(span, err) }()

	err = u.store.Update(ctx, func(tx port.LedgerTx) error {
		applied = false
		tokens := NewTokenLedger(tx)
		supply, err := tokens.TotalSupply(ctx)
		if err != nil {
			return err
		}
		if supply > 0 || g.Supply == 0 {
			return nil
		}
		if err = tokens.Mint(ctx, g.Treasury, g.Supply); err != nil {
			return fmt.Errorf("mint genesis supply: %w", err)
		}
		for _, account := range g.Accounts {
			if err = tokens.Transfer(ctx, g.Treasury, account, g.PerAccount); err != nil {
				return fmt.Errorf("fund %s: %w", account, err)
			}
		}
		applied = true
		return nil
	})
	return applied, err
}
