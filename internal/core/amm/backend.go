// Package amm abstracts the external liquidity backend the swap module
// drives. The real exchange is out of scope; the engine treats it as a
// black box honouring the add-liquidity and swap contracts below, with
// the concrete implementation selected at configuration time (a
// versioned capability, not a runtime redirection).
package amm

import (
	"errors"

	"github.com/holiman/uint256"
)

// Errors a backend may return; the engine maps any backend failure to a
// whole-operation revert.
var (
	ErrNoLiquidity = errors.New("amm: pool has no liquidity")
	ErrBadAmount   = errors.New("amm: zero amount")
)

// Backend is the capability surface the swap module needs. Amounts are
// exact-in; pricing is entirely the backend's business.
type Backend interface {
	// Version identifies the capability revision of the implementation.
	Version() string

	// AddLiquidity deposits tokenAmount and nativeAmount into the pool
	// and returns the liquidity units minted for the caller.
	AddLiquidity(tokenAmount, nativeAmount *uint256.Int) (*uint256.Int, error)

	// SwapExactTokensForNative trades tokenAmount for native currency at
	// the backend's price and returns the native amount out.
	SwapExactTokensForNative(tokenAmount *uint256.Int) (*uint256.Int, error)

	// PairBalance reports the liquidity units held for the module.
	PairBalance() *uint256.Int
}
