package tx

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// tenthCoin is 0.1 native coin, the first price tier.
func tenthCoin(n uint64) *uint256.Int {
	u := uint256.NewInt(n)
	return u.Mul(u, new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(17)))
}

func TestLampPriceTiers(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		id   uint64
		want *uint256.Int
	}{
		{0, tenthCoin(1)},
		{1199, tenthCoin(1)},
		{1200, tenthCoin(2)},
		{3200, tenthCoin(5)},
		{6200, coins(1)},
		{9200, coins(2)},
		{11200, coins(5)},
		{11400, coins(10)},
		{11450, coins(100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.MintPrice(tt.id), "id %d", tt.id)
	}

	price, res := e.EstimatePurchase(3)
	require.True(t, res.IsSuccess())
	assert.Equal(t, tenthCoin(3), price)

	_, res = e.EstimatePurchase(0)
	assert.Equal(t, ErrBadQuantity, res)
	_, res = e.EstimatePurchase(LampBatchLimit + 1)
	assert.Equal(t, ErrBadQuantity, res)
}

func TestLampMint(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 3, types.ZeroAddress)

	supply, res := e.CollectionSupply()
	require.True(t, res.IsSuccess())
	assert.Equal(t, uint64(3), supply)

	for id := uint64(0); id < 3; id++ {
		owner, res := e.OwnerOf(testCollection, id)
		require.True(t, res.IsSuccess())
		assert.Equal(t, alice, owner)
	}

	// The full payment sits on the collection.
	assert.Equal(t, tenthCoin(3), nativeOf(t, e, testCollection))
	assert.True(t, nativeOf(t, e, alice).IsZero())

	_, res = e.OwnerOf(testCollection, 3)
	assert.Equal(t, ErrNotFound, res)
}

func TestLampMintValidate(t *testing.T) {
	e := newTestEngine(t)

	res := e.Apply(&LampMint{BaseOp: NewBaseOp(TypeLampMint, alice), Quantity: 0})
	assert.Equal(t, ErrBadQuantity, res.Result)

	res = e.Apply(&LampMint{BaseOp: NewBaseOp(TypeLampMint, alice), Quantity: LampBatchLimit + 1})
	assert.Equal(t, ErrBadQuantity, res.Result)
}

func TestLampMintIncorrectPayment(t *testing.T) {
	e := newTestEngine(t)
	seedNative(t, e, alice, coins(1))

	op := &LampMint{BaseOp: NewBaseOp(TypeLampMint, alice), Quantity: 1}
	op.Value = tenthCoin(2)
	res := e.Apply(op)
	assert.Equal(t, ErrIncorrectPayment, res.Result)

	// Nothing moved.
	assert.Equal(t, coins(1), nativeOf(t, e, alice))
	supply, qres := e.CollectionSupply()
	require.True(t, qres.IsSuccess())
	assert.Zero(t, supply)
}

func TestLampMintBeforeSale(t *testing.T) {
	e := newTestEngine(t)
	cfg := e.Config()
	cfg.Timestamp = testSaleStart - 10
	pre := NewEngine(e.View(), cfg)

	seedNative(t, e, alice, tenthCoin(1))
	op := &LampMint{BaseOp: NewBaseOp(TypeLampMint, alice), Quantity: 1}
	op.Value = tenthCoin(1)
	res := pre.Apply(op)
	assert.Equal(t, ErrSaleNotStarted, res.Result)
}

func TestLampMintReferral(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 2, bob)

	// Both sides of the referral earn 10% of the purchase.
	reward := new(uint256.Int).Div(tenthCoin(2), uint256.NewInt(10))
	pending, res := e.PendingReferral(bob)
	require.True(t, res.IsSuccess())
	assert.Equal(t, reward, pending)

	pending, res = e.PendingReferral(alice)
	require.True(t, res.IsSuccess())
	assert.Equal(t, reward, pending)
}

func TestLampMintSelfReferral(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, alice)

	pending, res := e.PendingReferral(alice)
	require.True(t, res.IsSuccess())
	assert.True(t, pending.IsZero())
}

func TestLampMintReserveReward(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, testCollection, units(LampMaxSupply))

	mintLamps(t, e, alice, 1, types.ZeroAddress)

	// One unminted lamp's share of the reserve pays out per purchase.
	assert.Equal(t, units(1), balanceOf(t, e, alice))
}

func TestLampChangeName(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 2, types.ZeroAddress)

	apply(t, e, &LampChangeName{
		BaseOp: NewBaseOp(TypeLampChangeName, alice),
		ID:     0,
		Name:   "Genie Lamp",
	}, Success)

	name, res := e.TokenName(0)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "Genie Lamp", name)

	// Reservations are case insensitive.
	reserved, res := e.IsNameReserved("genie lamp")
	require.True(t, res.IsSuccess())
	assert.True(t, reserved)

	res = e.Apply(&LampChangeName{
		BaseOp: NewBaseOp(TypeLampChangeName, alice),
		ID:     1,
		Name:   "GENIE lamp",
	}).Result
	assert.Equal(t, ErrNameTaken, res)

	// Renaming releases the old reservation.
	apply(t, e, &LampChangeName{
		BaseOp: NewBaseOp(TypeLampChangeName, alice),
		ID:     0,
		Name:   "Carpet",
	}, Success)

	reserved, res = e.IsNameReserved("genie lamp")
	require.True(t, res.IsSuccess())
	assert.False(t, reserved)
}

func TestLampChangeNameAuthorization(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 1, types.ZeroAddress)

	res := e.Apply(&LampChangeName{
		BaseOp: NewBaseOp(TypeLampChangeName, bob),
		ID:     0,
		Name:   "Stolen",
	})
	assert.Equal(t, ErrNotTokenHolder, res.Result)

	res = e.Apply(&LampChangeName{
		BaseOp: NewBaseOp(TypeLampChangeName, alice),
		ID:     7,
		Name:   "Ghost",
	})
	assert.Equal(t, ErrNotFound, res.Result)
}

func TestValidLampName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "Aladdin", true},
		{"interior space", "Genie Lamp", true},
		{"digits", "Lamp 42", true},
		{"single char", "a", true},
		{"leading space", " Lamp", false},
		{"trailing space", "Lamp ", false},
		{"double space", "Genie  Lamp", false},
		{"punctuation", "Lamp!", false},
		{"too long", "abcdefghijklmnopqrstuvwxyz", false},
		{"max length", "abcdefghijklmnopqrstuvwxy", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validLampName(tt.input))
		})
	}
}

func TestLampDistributeReferral(t *testing.T) {
	e := newTestEngine(t)

	mintLamps(t, e, alice, 2, bob)
	mintLamps(t, e, bob, 1, types.ZeroAddress)

	op := &LampDistributeReferral{
		BaseOp: NewBaseOp(TypeLampDistributeReferral, testOwner),
		FromID: 0,
		ToID:   100,
	}
	res := e.Apply(op)
	assert.Equal(t, ErrWalletNotSet, res.Result)

	apply(t, e, &LampInitWallet{
		BaseOp: NewBaseOp(TypeLampInitWallet, testOwner),
		Wallet: testVault,
	}, Success)

	res = e.Apply(op)
	assert.Equal(t, ErrNotSupported, res.Result)

	apply(t, e, &VaultSupport{
		BaseOp:     NewBaseOp(TypeVaultSupport, testOwner),
		Collection: testCollection,
	}, Success)

	apply(t, e, op, Success)

	// Each owner's pending total lands in their lowest lamp's wallet.
	reward := new(uint256.Int).Div(tenthCoin(2), uint256.NewInt(10))

	bal, qres := e.WalletBNB(WalletRef{Collection: testCollection, ID: 0})
	require.True(t, qres.IsSuccess())
	assert.Equal(t, reward, bal)

	bal, qres = e.WalletBNB(WalletRef{Collection: testCollection, ID: 1})
	require.True(t, qres.IsSuccess())
	assert.True(t, bal.IsZero())

	bal, qres = e.WalletBNB(WalletRef{Collection: testCollection, ID: 2})
	require.True(t, qres.IsSuccess())
	assert.Equal(t, reward, bal)

	pending, qres := e.PendingReferral(alice)
	require.True(t, qres.IsSuccess())
	assert.True(t, pending.IsZero())
}

func TestLampWithdrawFund(t *testing.T) {
	e := newTestEngine(t)
	mintLamps(t, e, alice, 2, bob)

	// Sale proceeds 0.2, outstanding referrals 0.04, free 0.16.
	apply(t, e, &LampWithdrawFund{
		BaseOp: NewBaseOp(TypeLampWithdrawFund, testOwner),
	}, Success)

	tenth := uint256.MustFromDecimal("16000000000000000")
	rest := uint256.MustFromDecimal("128000000000000000")

	assert.Equal(t, tenth, nativeOf(t, e, testLiquidityFund))
	assert.Equal(t, tenth, nativeOf(t, e, testPrizeFund))
	assert.Equal(t, rest, nativeOf(t, e, testTreasuryFund))

	// Only the referral reserve stays behind.
	outstanding := new(uint256.Int).Div(tenthCoin(4), uint256.NewInt(10))
	assert.Equal(t, outstanding, nativeOf(t, e, testCollection))
}

func TestLampWithdrawFundEmpty(t *testing.T) {
	e := newTestEngine(t)

	// Nothing to split is not an error.
	apply(t, e, &LampWithdrawFund{
		BaseOp: NewBaseOp(TypeLampWithdrawFund, testOwner),
	}, Success)

	res := e.Apply(&LampWithdrawFund{BaseOp: NewBaseOp(TypeLampWithdrawFund, alice)})
	assert.Equal(t, ErrNotOwner, res.Result)
}

func TestLampSetBaseURI(t *testing.T) {
	e := newTestEngine(t)

	res := e.Apply(&LampSetBaseURI{
		BaseOp: NewBaseOp(TypeLampSetBaseURI, alice),
		URI:    "https://evil.example/",
	})
	assert.Equal(t, ErrNotOwner, res.Result)

	apply(t, e, &LampSetBaseURI{
		BaseOp: NewBaseOp(TypeLampSetBaseURI, testOwner),
		URI:    "ipfs://lamps/",
	}, Success)
}

func TestLampOwnershipHandover(t *testing.T) {
	e := newTestEngine(t)

	apply(t, e, &LampAuthorizeOwnership{
		BaseOp:   NewBaseOp(TypeLampAuthorizeOwnership, testOwner),
		NewOwner: bob,
	}, Success)

	res := e.Apply(&LampAssumeOwnership{BaseOp: NewBaseOp(TypeLampAssumeOwnership, carol)})
	assert.Equal(t, ErrNotPendingOwner, res.Result)

	apply(t, e, &LampAssumeOwnership{BaseOp: NewBaseOp(TypeLampAssumeOwnership, bob)}, Success)

	apply(t, e, &LampSetBaseURI{
		BaseOp: NewBaseOp(TypeLampSetBaseURI, bob),
		URI:    "ipfs://lamps/",
	}, Success)
}
