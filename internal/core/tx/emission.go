package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// secondsPerDay is the accrual granularity: rewards vest in whole-day
// steps, partial days accrue nothing.
const secondsPerDay = 86400

// EmissionSet installs or overwrites a collection's emission schedule.
// Owner only. End is derived as start + duration.
type EmissionSet struct {
	BaseOp
	Collection       types.Address `json:"collection"`
	Active           bool          `json:"active"`
	InitialAllotment *uint256.Int  `json:"initialAllotment"`
	Multiplier       uint64        `json:"multiplier"`
	Start            uint64        `json:"start"`
	Duration         uint64        `json:"duration"`
	PerDay           *uint256.Int  `json:"perDay"`
}

func (op *EmissionSet) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Collection.IsZero() {
		return errZeroAddress
	}
	if op.InitialAllotment == nil || op.PerDay == nil {
		return errZeroAmount
	}
	if op.Duration == 0 {
		return errBadRange
	}
	return nil
}

// EmissionSetClaimFloor sets a collection's minimum claimable amount;
// accruals below it read as zero. Owner only.
type EmissionSetClaimFloor struct {
	BaseOp
	Collection types.Address `json:"collection"`
	Floor      *uint256.Int  `json:"floor"`
}

func (op *EmissionSetClaimFloor) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Collection.IsZero() {
		return errZeroAddress
	}
	if op.Floor == nil {
		return errZeroAmount
	}
	return nil
}

// EmissionClaim collects the accrued rewards of the caller's tokens and
// mints the total to the caller.
type EmissionClaim struct {
	BaseOp
	Collection types.Address `json:"collection"`
	IDs        []uint64      `json:"ids"`
}

func (op *EmissionClaim) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Collection.IsZero() {
		return errZeroAddress
	}
	if len(op.IDs) == 0 {
		return errBadRange
	}
	return nil
}

// EmissionAuthorizeOwnership nominates a new emission module owner.
type EmissionAuthorizeOwnership struct {
	BaseOp
	NewOwner types.Address `json:"newOwner"`
}

func (op *EmissionAuthorizeOwnership) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.NewOwner.IsZero() {
		return errZeroAddress
	}
	return nil
}

// EmissionAssumeOwnership completes a two-step ownership transfer.
type EmissionAssumeOwnership struct {
	BaseOp
}

func (op *EmissionAssumeOwnership) Validate() error {
	return op.BaseOp.Validate()
}
