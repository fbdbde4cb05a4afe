package tx

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Validation sentinels. Validate implementations return these (possibly
// wrapped); the engine maps them to the matching Result code.
var (
	ErrUnknownOperationType = errors.New("unknown operation type")

	errMissingCaller = errors.New("caller is required")
	errZeroAmount    = errors.New("amount must be positive")
	errZeroAddress   = errors.New("address must be non-zero")
	errEmptyName     = errors.New("name must be non-empty")
	errBadRange      = errors.New("range is empty or inverted")
	errBadQuantity   = errors.New("quantity out of range")
	errBadPercent    = errors.New("percent out of range")
	errRedundant     = errors.New("operation is redundant")
	errSelfTarget    = errors.New("destination may not be source")
)

// Operation is the interface all operation types implement.
type Operation interface {
	// OpType returns the operation type.
	OpType() Type

	// Base returns the common operation fields.
	Base() *BaseOp

	// Validate checks the operation without reading ledger state.
	Validate() error
}

// Appliable is implemented by operation types that can apply themselves
// to ledger state. Every registered type implements it.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// BaseOp carries the fields common to all operations.
type BaseOp struct {
	// Caller is the account the operation acts as.
	Caller types.Address `json:"caller"`

	// Value is the native currency attached to a payable operation.
	// Nil means no attachment.
	Value *uint256.Int `json:"value,omitempty"`

	opType Type
}

// OpType returns the operation type.
func (b *BaseOp) OpType() Type {
	return b.opType
}

// Base returns the common operation fields.
func (b *BaseOp) Base() *BaseOp {
	return b
}

// Validate validates the common fields.
func (b *BaseOp) Validate() error {
	if b.Caller.IsZero() {
		return errMissingCaller
	}
	return nil
}

// AttachedValue returns the attached native value, zero if none.
func (b *BaseOp) AttachedValue() *uint256.Int {
	if b.Value == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(b.Value)
}

// NewBaseOp creates the embedded base for an operation of the given type.
func NewBaseOp(t Type, caller types.Address) BaseOp {
	return BaseOp{Caller: caller, opType: t}
}

// resultFromValidation maps a Validate error onto its Result code.
func resultFromValidation(err error) Result {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, errMissingCaller), errors.Is(err, errZeroAddress):
		return ErrBadAddress
	case errors.Is(err, errZeroAmount):
		return ErrBadAmount
	case errors.Is(err, errEmptyName):
		return ErrBadName
	case errors.Is(err, errBadRange):
		return ErrBadRange
	case errors.Is(err, errBadQuantity):
		return ErrBadQuantity
	case errors.Is(err, errBadPercent):
		return ErrBadPercent
	case errors.Is(err, errRedundant):
		return ErrRedundant
	case errors.Is(err, errSelfTarget):
		return ErrSameWallet
	default:
		return ErrMalformed
	}
}
