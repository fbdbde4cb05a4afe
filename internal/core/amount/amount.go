// Package amount provides 256-bit integer arithmetic for token balances.
//
// Real ("t-space") token amounts fit comfortably in 78 decimal digits, but
// the reflection engine works in a scaled "r-space" whose total is just
// below 2^256, so every balance computation runs on uint256 words. All
// helpers here are non-mutating: they allocate their result and never
// alias their inputs.
package amount

import (
	"github.com/holiman/uint256"
)

// Amount is a non-negative 256-bit integer quantity. The zero value is a
// usable zero amount.
type Amount = uint256.Int

// New returns an Amount holding the given uint64.
func New(v uint64) *Amount {
	return uint256.NewInt(v)
}

// Zero returns a fresh zero Amount.
func Zero() *Amount {
	return new(Amount)
}

// MustDecimal parses a base-10 amount literal, panicking on malformed
// input. Intended for genesis constants and tests.
func MustDecimal(s string) *Amount {
	return uint256.MustFromDecimal(s)
}

// Clone returns an independent copy of a.
func Clone(a *Amount) *Amount {
	return new(Amount).Set(a)
}

// Add returns a + b.
func Add(a, b *Amount) *Amount {
	return new(Amount).Add(a, b)
}

// Sub returns a - b. The caller must have established a >= b; balance
// paths do so with Cmp checks before mutating state.
func Sub(a, b *Amount) *Amount {
	return new(Amount).Sub(a, b)
}

// Mul returns a * b, truncated mod 2^256 like the EVM. Fee math never
// approaches the boundary because r-space amounts are bounded by rTotal.
func Mul(a, b *Amount) *Amount {
	return new(Amount).Mul(a, b)
}

// Div returns floor(a / b); division by zero yields zero, matching EVM
// semantics for the degenerate-rate guard paths.
func Div(a, b *Amount) *Amount {
	return new(Amount).Div(a, b)
}

// Percent returns floor(a * pct / 100), the fee-engine rate formula.
func Percent(a *Amount, pct uint64) *Amount {
	return Div(Mul(a, New(pct)), New(100))
}

// Permyriad returns floor(a * bp / 10000) for basis-point rates such as
// the NFT referral reward.
func Permyriad(a *Amount, bp uint64) *Amount {
	return Div(Mul(a, New(bp)), New(10000))
}

// MaxUint256 returns 2^256 - 1.
func MaxUint256() *Amount {
	return new(Amount).SetAllOne()
}
