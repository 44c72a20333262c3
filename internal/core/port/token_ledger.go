package port

import (
	"context"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// TokenLedger is the fungible asset ledger the campaign ledger settles
// through. Every movement names its acting account explicitly.
type TokenLedger interface {
	BalanceOf(ctx context.Context, account domain.Address) (uint64, error)
	Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	// Transfer moves amount from the caller's balance to to.
	Transfer(ctx context.Context, from, to domain.Address, amount uint64) error
	// Approve sets the amount spender may move out of owner's balance.
	Approve(ctx context.Context, owner, spender domain.Address, amount uint64) error
	// TransferFrom moves amount from from to to on behalf of spender and
	// consumes that much of the allowance from granted to spender.
	TransferFrom(ctx context.Context, spender, from, to domain.Address, amount uint64) error
	// Mint creates amount new tokens in to's balance.
	Mint(ctx context.Context, to domain.Address, amount uint64) error
}

// TokenUseCase exposes the asset ledger to external callers. Each call is its
// own transaction.
type TokenUseCase interface {
	BalanceOf(ctx context.Context, account domain.Address) (uint64, error)
	Allowance(ctx context.Context, owner, spender domain.Address) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	Transfer(ctx context.Context, caller, to domain.Address, amount uint64) error
	Approve(ctx context.Context, caller, spender domain.Address, amount uint64) error
}
