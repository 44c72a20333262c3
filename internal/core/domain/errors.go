package domain

import (
	"errors"
	"fmt"
)

// Campaign ledger errors.
var (
	ErrInvalidOwner         = errors.New("owner cannot be the null address")
	ErrInvalidDeadline      = errors.New("deadline is not far enough in the future")
	ErrInvalidMetadataURI   = errors.New("metadata uri must not be empty")
	ErrCampaignNotFound     = errors.New("campaign does not exist")
	ErrDeadlinePassed       = errors.New("cannot fund campaign after deadline")
	ErrDeadlineNotReached   = errors.New("cannot withdraw funds before deadline")
	ErrBelowMinimumDonation = errors.New("donation is below the minimum amount")
	ErrGoalNotMet           = errors.New("campaign goal was not met")
	ErrGoalMet              = errors.New("campaign goal was met, donations are not refundable")
	ErrAlreadyWithdrawn     = errors.New("collected funds were already withdrawn")
	ErrNothingToWithdraw    = errors.New("no donated funds to withdraw")
	ErrNotCampaignOwner     = errors.New("only the owner can withdraw collected funds")
	ErrCustodyDonation      = errors.New("the custody account cannot donate")
	ErrRefundsStarted       = errors.New("donors already withdrew refunds from the campaign")
)

// Token ledger errors.
var (
	ErrInsufficientBalance   = errors.New("transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidRecipient      = errors.New("cannot transfer to the null address")
	ErrInvalidSpender        = errors.New("cannot approve the null address")
	ErrCustodyAccount        = errors.New("the custody account only moves tokens through campaigns")
)

var (
	ErrAmountOverflow = errors.New("amount overflows uint64")
	ErrInvalidAddress = errors.New("invalid address")
)

// CampaignError ties a ledger failure to the operation and campaign it
// happened on. Use errors.Is against the sentinel errors above to inspect it.
type CampaignError struct {
	Op         string
	CampaignID uint64
	Err        error
}

func (e *CampaignError) Error() string {
	return fmt.Sprintf("%s campaign %d: %v", e.Op, e.CampaignID, e.Err)
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

// AddAmounts returns a+b or ErrAmountOverflow.
func AddAmounts(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}
