package tx

import (
	"github.com/magiclamp-finance/lampd/internal/core/amm"
	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// LedgerView provides read/write access to ledger state.
type LedgerView interface {
	// Read reads a ledger entry, nil if absent.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists.
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry.
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry.
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry.
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries.
	// If fn returns false, iteration stops early.
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// EngineConfig holds configuration for the operation engine.
type EngineConfig struct {
	// BlockHeight is the height the operation executes at.
	BlockHeight uint64

	// Timestamp is the execution time in unix seconds. It never moves
	// backwards between operations.
	Timestamp uint64

	// Module addresses. Balances owed to a module are held under its
	// address like any other account's.
	Token      types.Address // ALDN reflected governance token
	Emitter    types.Address // GNI emission token
	Collection types.Address // MagicLamps
	Vault      types.Address // MagicLampWallet
	Swap       types.Address // SwapAndLiquify

	// Backend is the liquidity backend the swap module drives.
	Backend amm.Backend
}

// ApplyResult contains the result of applying an operation.
type ApplyResult struct {
	// Result is the operation result code.
	Result Result

	// Applied indicates if the operation reached the ledger.
	Applied bool

	// Message is a human-readable result message.
	Message string
}

// Engine processes operations against a ledger, strictly serially.
type Engine struct {
	view   LedgerView
	config EngineConfig

	// applying guards against an operation submitting another operation
	// while its own state table is open.
	applying bool
}

// NewEngine creates a new operation engine.
func NewEngine(view LedgerView, config EngineConfig) *Engine {
	return &Engine{
		view:   view,
		config: config,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// View returns the underlying ledger view.
func (e *Engine) View() LedgerView {
	return e.view
}

// SetEnvironment advances the execution environment. Height and time
// are clamped monotonic.
func (e *Engine) SetEnvironment(height, timestamp uint64) {
	if height > e.config.BlockHeight {
		e.config.BlockHeight = height
	}
	if timestamp > e.config.Timestamp {
		e.config.Timestamp = timestamp
	}
}

// Apply processes an operation. All state reached during apply goes
// through one ApplyStateTable, committed only on Success: a failing
// operation leaves no trace, including its attached payment.
func (e *Engine) Apply(op Operation) ApplyResult {
	if e.applying {
		return ApplyResult{
			Result:  ErrReentrancy,
			Applied: false,
			Message: ErrReentrancy.Message(),
		}
	}
	e.applying = true
	defer func() { e.applying = false }()

	// Step 1: preflight (stateless validation).
	if err := op.Validate(); err != nil {
		result := resultFromValidation(err)
		return ApplyResult{
			Result:  result,
			Applied: false,
			Message: result.Message(),
		}
	}

	// Step 2: apply against a buffering table.
	table := NewApplyStateTable(e.view)
	ctx := &ApplyContext{
		View:   table,
		Caller: op.Base().Caller,
		Value:  op.Base().AttachedValue(),
		Config: e.config,
		Engine: e,
	}

	var result Result
	if appliable, ok := op.(Appliable); ok {
		result = appliable.Apply(ctx)
	} else {
		result = ErrMalformed
	}

	// Step 3: commit on success, discard otherwise.
	if result.IsSuccess() {
		if err := table.Apply(); err != nil {
			return ApplyResult{
				Result:  ErrInternal,
				Applied: false,
				Message: "failed to apply state changes: " + err.Error(),
			}
		}
	}

	return ApplyResult{
		Result:  result,
		Applied: result.IsSuccess(),
		Message: result.Message(),
	}
}
