package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// ApplyContext provides all the state and helpers needed to apply an
// operation. It is passed to Appliable.Apply() instead of individual
// parameters.
type ApplyContext struct {
	// View is the buffering state table for this operation.
	View LedgerView

	// Caller is the account the operation acts as.
	Caller types.Address

	// Value is the attached native currency (never nil, zero if none).
	Value *uint256.Int

	// Config holds engine configuration (height, time, module addresses).
	Config EngineConfig

	// Engine provides access to the surrounding engine.
	Engine *Engine
}

// Now returns the execution timestamp in unix seconds.
func (ctx *ApplyContext) Now() uint64 {
	return ctx.Config.Timestamp
}

// Block returns the execution block height.
func (ctx *ApplyContext) Block() uint64 {
	return ctx.Config.BlockHeight
}

// collectValue moves the attached payment from the caller to a module
// address. Payable operations call it exactly once, before any other
// state change, so a later failure rolls the payment back with the rest.
func (ctx *ApplyContext) collectValue(module types.Address) Result {
	if ctx.Value.IsZero() {
		return Success
	}
	return moveNative(ctx.View, ctx.Caller, module, ctx.Value)
}
