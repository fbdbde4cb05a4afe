package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// AssetTransfer moves a plain registry fungible balance from the caller
// to a recipient.
type AssetTransfer struct {
	BaseOp
	Token  types.Address `json:"token"`
	To     types.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *AssetTransfer) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.To.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// AssetApprove sets the caller's allowance for a spender under a
// registry fungible. A zero amount clears the allowance.
type AssetApprove struct {
	BaseOp
	Token   types.Address `json:"token"`
	Spender types.Address `json:"spender"`
	Amount  *uint256.Int  `json:"amount"`
}

func (op *AssetApprove) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.Spender.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil {
		return errZeroAmount
	}
	return nil
}

// AssetTransferFrom spends a registry fungible allowance granted to the
// caller.
type AssetTransferFrom struct {
	BaseOp
	Token  types.Address `json:"token"`
	From   types.Address `json:"from"`
	To     types.Address `json:"to"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *AssetTransferFrom) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.From.IsZero() || op.To.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// NFTTransfer moves a non-fungible token. The caller must own it or
// hold a blanket approval from the owner.
type NFTTransfer struct {
	BaseOp
	Token types.Address `json:"token"`
	To    types.Address `json:"to"`
	ID    uint64        `json:"id"`
}

func (op *NFTTransfer) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.To.IsZero() {
		return errZeroAddress
	}
	return nil
}

// NFTSetApprovalForAll grants or revokes an operator's blanket approval
// over every token the caller owns under a contract.
type NFTSetApprovalForAll struct {
	BaseOp
	Token    types.Address `json:"token"`
	Operator types.Address `json:"operator"`
	Approved bool          `json:"approved"`
}

func (op *NFTSetApprovalForAll) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.Operator.IsZero() {
		return errZeroAddress
	}
	if op.Operator == op.Caller {
		return errSelfTarget
	}
	return nil
}

// MultiTransfer moves a per-id multi-token balance from the caller to a
// recipient.
type MultiTransfer struct {
	BaseOp
	Token  types.Address `json:"token"`
	To     types.Address `json:"to"`
	ID     uint64        `json:"id"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *MultiTransfer) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Token.IsZero() || op.To.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// NativeTransfer moves the attached native value from the caller to a
// recipient.
type NativeTransfer struct {
	BaseOp
	To types.Address `json:"to"`
}

func (op *NativeTransfer) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.To.IsZero() {
		return errZeroAddress
	}
	if op.Value == nil || op.Value.IsZero() {
		return errZeroAmount
	}
	return nil
}
