package tx

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/amm"
	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/types"
	"github.com/magiclamp-finance/lampd/internal/ledger"
	"github.com/magiclamp-finance/lampd/internal/storage/statestore"
)

// Fixed genesis layout shared by the engine tests.
var (
	testOwner      = testAddr(0x01)
	testTokenAddr  = testAddr(0xa1)
	testEmitter    = testAddr(0xa2)
	testCollection = testAddr(0xa3)
	testVault      = testAddr(0xa4)
	testSwap       = testAddr(0xa5)

	testLiquidityFund = testAddr(0xf1)
	testPrizeFund     = testAddr(0xf2)
	testTreasuryFund  = testAddr(0xf3)

	alice = testAddr(0x11)
	bob   = testAddr(0x12)
	carol = testAddr(0x13)
)

const testSaleStart uint64 = 1623751121

func testAddr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

// newTestEngine builds an engine over a fresh in-memory ledger seeded
// with the genesis state of all five modules.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	led, err := ledger.New(statestore.NewMemoryBackend(), 0)
	require.NoError(t, err)

	err = ledger.Initialize(led, ledger.Genesis{
		Owner:         testOwner,
		Token:         testTokenAddr,
		Emitter:       testEmitter,
		Collection:    testCollection,
		Vault:         testVault,
		Swap:          testSwap,
		LiquidityFund: testLiquidityFund,
		PrizeFund:     testPrizeFund,
		TreasuryFund:  testTreasuryFund,
		SaleStart:     testSaleStart,
		BaseURI:       "https://lamps.test/meta/",
	})
	require.NoError(t, err)

	return NewEngine(led, EngineConfig{
		BlockHeight: 1,
		Timestamp:   testSaleStart + 3600,
		Token:       testTokenAddr,
		Emitter:     testEmitter,
		Collection:  testCollection,
		Vault:       testVault,
		Swap:        testSwap,
		Backend:     amm.NewConstantProduct(),
	})
}

// apply submits an operation and requires the given result code.
func apply(t *testing.T, e *Engine, op Operation, want Result) ApplyResult {
	t.Helper()
	res := e.Apply(op)
	require.Equal(t, want, res.Result, "got %s: %s", res.Result, res.Message)
	return res
}

// units converts whole ALDN to nine-decimal base units.
func units(n uint64) *uint256.Int {
	u := uint256.NewInt(n)
	return u.Mul(u, uint256.NewInt(1_000_000_000))
}

// coins converts whole native coins to eighteen-decimal base units.
func coins(n uint64) *uint256.Int {
	u := uint256.NewInt(n)
	return u.Mul(u, new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18)))
}

// seedNative credits native currency directly, standing in for a
// deposit from outside the suite.
func seedNative(t *testing.T, e *Engine, addr types.Address, amt *uint256.Int) {
	t.Helper()
	k := keylet.Native(addr)
	current, res := loadAmount(e.view, k)
	require.True(t, res.IsSuccess())
	res = storeAmount(e.view, k, current.Add(current, amt))
	require.True(t, res.IsSuccess())
}

// mintLamps funds the caller with the exact tiered price and mints.
func mintLamps(t *testing.T, e *Engine, caller types.Address, quantity uint64, referrer types.Address) {
	t.Helper()
	price, res := e.EstimatePurchase(quantity)
	require.True(t, res.IsSuccess())
	seedNative(t, e, caller, price)
	op := &LampMint{
		BaseOp:   NewBaseOp(TypeLampMint, caller),
		Quantity: quantity,
		Referrer: referrer,
	}
	op.Value = price
	apply(t, e, op, Success)
}

// seedTokens funds an account with ALDN by a fee-free transfer from the
// genesis owner.
func seedTokens(t *testing.T, e *Engine, to types.Address, amt *uint256.Int) {
	t.Helper()
	op := &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, testOwner),
		To:     to,
		Amount: amt,
	}
	apply(t, e, op, Success)
}

// balanceOf reads an ALDN balance, failing the test on error.
func balanceOf(t *testing.T, e *Engine, addr types.Address) *uint256.Int {
	t.Helper()
	bal, res := e.BalanceOf(addr)
	require.True(t, res.IsSuccess())
	return bal
}

func nativeOf(t *testing.T, e *Engine, addr types.Address) *uint256.Int {
	t.Helper()
	bal, res := e.NativeBalance(addr)
	require.True(t, res.IsSuccess())
	return bal
}
