package amm

import (
	"sync"

	"github.com/holiman/uint256"
)

// ConstantProduct is a self-contained x*y=k pool. It exists so the swap
// module has a complete backend without an external exchange: every
// liquify cycle prices against the pool's own reserves.
type ConstantProduct struct {
	mu sync.Mutex

	tokenReserve  uint256.Int
	nativeReserve uint256.Int
	units         uint256.Int
}

// NewConstantProduct returns an empty pool. Reserves grow from the
// first AddLiquidity call.
func NewConstantProduct() *ConstantProduct {
	return &ConstantProduct{}
}

func (p *ConstantProduct) Version() string { return "constant-product/1" }

// AddLiquidity mints units proportional to the token side once the pool
// is seeded; the first deposit mints units equal to the token amount.
func (p *ConstantProduct) AddLiquidity(tokenAmount, nativeAmount *uint256.Int) (*uint256.Int, error) {
	if tokenAmount.IsZero() || nativeAmount.IsZero() {
		return nil, ErrBadAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	minted := new(uint256.Int)
	if p.units.IsZero() {
		minted.Set(tokenAmount)
	} else {
		minted.Mul(tokenAmount, &p.units)
		minted.Div(minted, &p.tokenReserve)
	}
	p.tokenReserve.Add(&p.tokenReserve, tokenAmount)
	p.nativeReserve.Add(&p.nativeReserve, nativeAmount)
	p.units.Add(&p.units, minted)
	return minted, nil
}

// SwapExactTokensForNative applies the constant-product formula with no
// fee: out = nativeReserve*in / (tokenReserve+in).
func (p *ConstantProduct) SwapExactTokensForNative(tokenAmount *uint256.Int) (*uint256.Int, error) {
	if tokenAmount.IsZero() {
		return nil, ErrBadAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tokenReserve.IsZero() || p.nativeReserve.IsZero() {
		return nil, ErrNoLiquidity
	}
	num := new(uint256.Int).Mul(&p.nativeReserve, tokenAmount)
	den := new(uint256.Int).Add(&p.tokenReserve, tokenAmount)
	out := num.Div(num, den)

	p.tokenReserve.Add(&p.tokenReserve, tokenAmount)
	p.nativeReserve.Sub(&p.nativeReserve, out)
	return out, nil
}

func (p *ConstantProduct) PairBalance() *uint256.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return new(uint256.Int).Set(&p.units)
}
