package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonman369/Crowd-Funding-Contract/internal/adapter/memory"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// inTx runs fn against a token ledger in one committed transaction.
func inTx(t *testing.T, store *memory.Store, fn func(l *TokenLedger) error) error {
	t.Helper()
	return store.Update(context.Background(), func(tx port.LedgerTx) error {
		return fn(NewTokenLedger(tx))
	})
}

func TestTokenLedger_Mint(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, inTx(t, store, func(l *TokenLedger) error {
		if err := l.Mint(ctx, treasury, 1000); err != nil {
			return err
		}
		supply, err := l.TotalSupply(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), supply)
		balance, err := l.BalanceOf(ctx, treasury)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), balance)
		return nil
	}))

	err := inTx(t, store, func(l *TokenLedger) error { return l.Mint(ctx, domain.ZeroAddress, 1) })
	require.ErrorIs(t, err, domain.ErrInvalidRecipient)

	err = inTx(t, store, func(l *TokenLedger) error { return l.Mint(ctx, donor1, math.MaxUint64) })
	require.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestTokenLedger_Transfer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		from, to domain.Address
		amount   uint64
		wantErr  error
		wantFrom uint64
		wantTo   uint64
	}{
		{name: "moves tokens", from: treasury, to: donor1, amount: 400, wantFrom: 600, wantTo: 400},
		{name: "whole balance", from: treasury, to: donor1, amount: 1000, wantFrom: 0, wantTo: 1000},
		{name: "zero amount", from: treasury, to: donor1, amount: 0, wantFrom: 1000, wantTo: 0},
		{name: "to self", from: treasury, to: treasury, amount: 300, wantFrom: 1000, wantTo: 1000},
		{name: "exceeds balance", from: treasury, to: donor1, amount: 1001, wantErr: domain.ErrInsufficientBalance, wantFrom: 1000},
		{name: "null recipient", from: treasury, to: domain.ZeroAddress, amount: 1, wantErr: domain.ErrInvalidRecipient, wantFrom: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			require.NoError(t, inTx(t, store, func(l *TokenLedger) error { return l.Mint(ctx, treasury, 1000) }))

			err := inTx(t, store, func(l *TokenLedger) error { return l.Transfer(ctx, tt.from, tt.to, tt.amount) })
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			balances := store.Balances()
			assert.Equal(t, tt.wantFrom, balances[tt.from])
			if !tt.to.IsZero() {
				assert.Equal(t, tt.wantTo, balances[tt.to])
			}
		})
	}
}

func TestTokenLedger_TransferFrom(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, inTx(t, store, func(l *TokenLedger) error {
		if err := l.Mint(ctx, donor1, 100); err != nil {
			return err
		}
		return l.Approve(ctx, donor1, custody, 60)
	}))

	require.NoError(t, inTx(t, store, func(l *TokenLedger) error {
		return l.TransferFrom(ctx, custody, donor1, custody, 40)
	}))

	err := inTx(t, store, func(l *TokenLedger) error {
		return l.TransferFrom(ctx, custody, donor1, custody, 21)
	})
	require.ErrorIs(t, err, domain.ErrInsufficientAllowance)

	err = inTx(t, store, func(l *TokenLedger) error {
		return l.TransferFrom(ctx, stranger, donor1, stranger, 1)
	})
	require.ErrorIs(t, err, domain.ErrInsufficientAllowance)

	require.NoError(t, store.View(ctx, func(tx port.LedgerTx) error {
		l := NewTokenLedger(tx)
		allowance, err := l.Allowance(ctx, donor1, custody)
		require.NoError(t, err)
		assert.Equal(t, uint64(20), allowance)
		balance, err := l.BalanceOf(ctx, custody)
		require.NoError(t, err)
		assert.Equal(t, uint64(40), balance)
		return nil
	}))
}

func TestTokenLedger_Approve(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := inTx(t, store, func(l *TokenLedger) error { return l.Approve(ctx, donor1, domain.ZeroAddress, 5) })
	require.ErrorIs(t, err, domain.ErrInvalidSpender)

	// Approve replaces rather than adds.
	require.NoError(t, inTx(t, store, func(l *TokenLedger) error { return l.Approve(ctx, donor1, custody, 50) }))
	require.NoError(t, inTx(t, store, func(l *TokenLedger) error { return l.Approve(ctx, donor1, custody, 5) }))
	require.NoError(t, store.View(ctx, func(tx port.LedgerTx) error {
		allowance, err := NewTokenLedger(tx).Allowance(ctx, donor1, custody)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), allowance)
		return nil
	}))
}
