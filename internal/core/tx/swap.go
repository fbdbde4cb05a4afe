package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// SwapInitialize wires the swap module to its token and router. Owner
// only, once.
type SwapInitialize struct {
	BaseOp
	Token  types.Address `json:"token"`
	Router types.Address `json:"router"`
}

func (op *SwapInitialize) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.Router.IsZero() {
		return errZeroAddress
	}
	return nil
}

// SwapInitializeLiquidity seeds the pool with tokens from the caller
// and the attached native value. Owner only.
type SwapInitializeLiquidity struct {
	BaseOp
	TokenAmount *uint256.Int `json:"tokenAmount"`
}

func (op *SwapInitializeLiquidity) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.TokenAmount == nil || op.TokenAmount.IsZero() {
		return errZeroAmount
	}
	if op.Value == nil || op.Value.IsZero() {
		return errZeroAmount
	}
	return nil
}

// SwapLiquify converts accrued fee tokens into pool liquidity: half is
// swapped for native currency, then both halves are deposited. Owner
// only.
type SwapLiquify struct {
	BaseOp
	Amount *uint256.Int `json:"amount"`
}

func (op *SwapLiquify) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// SwapAuthorizeOwnership nominates a new swap module owner.
type SwapAuthorizeOwnership struct {
	BaseOp
	NewOwner types.Address `json:"newOwner"`
}

func (op *SwapAuthorizeOwnership) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.NewOwner.IsZero() {
		return errZeroAddress
	}
	return nil
}

// SwapAssumeOwnership completes a two-step ownership transfer.
type SwapAssumeOwnership struct {
	BaseOp
}

func (op *SwapAssumeOwnership) Validate() error {
	return op.BaseOp.Validate()
}
