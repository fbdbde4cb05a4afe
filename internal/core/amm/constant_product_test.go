package amm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantProductFirstDeposit(t *testing.T) {
	p := NewConstantProduct()

	minted, err := p.AddLiquidity(uint256.NewInt(1000), uint256.NewInt(500))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1000), minted)
	assert.Equal(t, uint256.NewInt(1000), p.PairBalance())
}

func TestConstantProductProportionalDeposit(t *testing.T) {
	p := NewConstantProduct()

	_, err := p.AddLiquidity(uint256.NewInt(1000), uint256.NewInt(500))
	require.NoError(t, err)

	// Half the token reserve mints half the outstanding units.
	minted, err := p.AddLiquidity(uint256.NewInt(500), uint256.NewInt(250))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(500), minted)
	assert.Equal(t, uint256.NewInt(1500), p.PairBalance())
}

func TestConstantProductSwap(t *testing.T) {
	p := NewConstantProduct()

	_, err := p.AddLiquidity(uint256.NewInt(100), uint256.NewInt(1000))
	require.NoError(t, err)

	// out = 1000*100 / (100+100) = 500.
	out, err := p.SwapExactTokensForNative(uint256.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(500), out)

	// Reserves moved: a second identical swap pays less.
	out, err = p.SwapExactTokensForNative(uint256.NewInt(100))
	require.NoError(t, err)
	assert.True(t, out.Lt(uint256.NewInt(500)))
}

func TestConstantProductErrors(t *testing.T) {
	p := NewConstantProduct()

	_, err := p.SwapExactTokensForNative(uint256.NewInt(10))
	assert.ErrorIs(t, err, ErrNoLiquidity)

	_, err = p.SwapExactTokensForNative(new(uint256.Int))
	assert.ErrorIs(t, err, ErrBadAmount)

	_, err = p.AddLiquidity(new(uint256.Int), uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrBadAmount)
	_, err = p.AddLiquidity(uint256.NewInt(1), new(uint256.Int))
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestConstantProductVersion(t *testing.T) {
	assert.Equal(t, "constant-product/1", NewConstantProduct().Version())
}
