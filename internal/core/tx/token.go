package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// TokenTransfer moves ALDN from the caller to a recipient, charging the
// tax and liquidity fees unless a party is fee-excluded.
type TokenTransfer struct {
	BaseOp
	To     types.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *TokenTransfer) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.To.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// TokenApprove sets the caller's allowance for a spender.
type TokenApprove struct {
	BaseOp
	Spender types.Address `json:"spender"`
	Amount  *uint256.Int  `json:"amount"`
}

func (op *TokenApprove) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Spender.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil {
		return errZeroAmount
	}
	return nil
}

// TokenTransferFrom spends an allowance granted to the caller.
type TokenTransferFrom struct {
	BaseOp
	From   types.Address `json:"from"`
	To     types.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *TokenTransferFrom) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.From.IsZero() || op.To.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// TokenDeliver reflect-burns the caller's tokens: the amount leaves the
// caller's balance and shrinks the scaled supply, raising everyone
// else's balance. Reward-excluded callers cannot deliver.
type TokenDeliver struct {
	BaseOp
	Amount *uint256.Int `json:"amount"`
}

func (op *TokenDeliver) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// TokenDelegate points the caller's voting power at a delegate. The
// caller's current balance moves from the previous delegate's
// checkpoints to the new one.
type TokenDelegate struct {
	BaseOp
	Delegatee types.Address `json:"delegatee"`
}

func (op *TokenDelegate) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Delegatee.IsZero() {
		return errZeroAddress
	}
	return nil
}

// TokenSetTaxFee sets the reflected tax percent. Owner only.
type TokenSetTaxFee struct {
	BaseOp
	Percent uint64 `json:"percent"`
}

func (op *TokenSetTaxFee) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Percent > 100 {
		return errBadPercent
	}
	return nil
}

// TokenSetLiquidityFee sets the liquidity fee percent. Owner only.
type TokenSetLiquidityFee struct {
	BaseOp
	Percent uint64 `json:"percent"`
}

func (op *TokenSetLiquidityFee) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Percent > 100 {
		return errBadPercent
	}
	return nil
}

// TokenSetMaxTxPercent sets maxTxAmount to tTotal*percent/100. Owner
// only.
type TokenSetMaxTxPercent struct {
	BaseOp
	Percent uint64 `json:"percent"`
}

func (op *TokenSetMaxTxPercent) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Percent == 0 || op.Percent > 100 {
		return errBadPercent
	}
	return nil
}

// TokenSetExclusion covers the six exclude/include admin switches; the
// concrete operation type selects the flag and direction.
type TokenSetExclusion struct {
	BaseOp
	Account types.Address `json:"account"`
}

func (op *TokenSetExclusion) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Account.IsZero() {
		return errZeroAddress
	}
	return nil
}

// TokenSetSwapAddress wires the recipient of liquidity fees. Owner only.
// The zero address disables liquidity collection.
type TokenSetSwapAddress struct {
	BaseOp
	Account types.Address `json:"account"`
}

func (op *TokenSetSwapAddress) Validate() error {
	return op.BaseOp.Validate()
}

// TokenSetSwapEnabled toggles automatic liquification. Owner only.
type TokenSetSwapEnabled struct {
	BaseOp
	Enabled bool `json:"enabled"`
}

func (op *TokenSetSwapEnabled) Validate() error {
	return op.BaseOp.Validate()
}

// TokenAuthorizeOwnership nominates a new module owner; ownership moves
// only when the nominee assumes it.
type TokenAuthorizeOwnership struct {
	BaseOp
	NewOwner types.Address `json:"newOwner"`
}

func (op *TokenAuthorizeOwnership) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.NewOwner.IsZero() {
		return errZeroAddress
	}
	return nil
}

// TokenAssumeOwnership completes a two-step ownership transfer.
type TokenAssumeOwnership struct {
	BaseOp
}

func (op *TokenAssumeOwnership) Validate() error {
	return op.BaseOp.Validate()
}
