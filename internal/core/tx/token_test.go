package tx

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

func TestTokenTransferValidate(t *testing.T) {
	tests := []struct {
		name string
		op   *TokenTransfer
		want Result
	}{
		{
			name: "missing caller",
			op: &TokenTransfer{
				BaseOp: NewBaseOp(TypeTokenTransfer, types.ZeroAddress),
				To:     bob,
				Amount: units(1),
			},
			want: ErrBadAddress,
		},
		{
			name: "zero recipient",
			op: &TokenTransfer{
				BaseOp: NewBaseOp(TypeTokenTransfer, alice),
				Amount: units(1),
			},
			want: ErrBadAddress,
		},
		{
			name: "nil amount",
			op: &TokenTransfer{
				BaseOp: NewBaseOp(TypeTokenTransfer, alice),
				To:     bob,
			},
			want: ErrBadAmount,
		},
		{
			name: "zero amount",
			op: &TokenTransfer{
				BaseOp: NewBaseOp(TypeTokenTransfer, alice),
				To:     bob,
				Amount: new(uint256.Int),
			},
			want: ErrBadAmount,
		},
	}

	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Apply(tt.op)
			assert.Equal(t, tt.want, res.Result)
			assert.False(t, res.Applied)
		})
	}
}

func TestTokenTransferTaxed(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(10000))

	ownerBefore := balanceOf(t, e, testOwner)

	op := &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(1000),
	}
	apply(t, e, op, Success)

	// 5% tax is reflected, 5% moves to the liquidity collector, the
	// remaining 90% reaches the recipient.
	assert.Equal(t, units(900), balanceOf(t, e, bob))
	assert.Equal(t, units(8000), balanceOf(t, e, alice))
	assert.Equal(t, units(50), balanceOf(t, e, testSwap))

	fees, res := e.TotalFees()
	require.True(t, res.IsSuccess())
	assert.Equal(t, units(50), fees)

	// The reflected tax lands on the largest holder.
	assert.True(t, balanceOf(t, e, testOwner).Gt(ownerBefore))
}

func TestTokenTransferFeeExcluded(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenExcludeFromFee, testOwner),
		Account: alice,
	}, Success)

	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(1000),
	}, Success)

	assert.Equal(t, units(1000), balanceOf(t, e, bob))
	assert.True(t, balanceOf(t, e, alice).IsZero())

	fees, res := e.TotalFees()
	require.True(t, res.IsSuccess())
	assert.True(t, fees.IsZero())
}

func TestTokenTransferMaxTx(t *testing.T) {
	e := newTestEngine(t)

	// Genesis cap is half a percent of supply.
	cap := new(uint256.Int).Mul(units(5), uint256.NewInt(1_000_000_000_000))
	over := new(uint256.Int).Add(cap, uint256.NewInt(1))

	seedTokens(t, e, alice, new(uint256.Int).Mul(over, uint256.NewInt(2)))

	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: over,
	}, ErrMaxTxExceeded)

	// At the cap exactly the transfer goes through.
	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: cap,
	}, Success)
}

func TestTokenTransferInsufficientFunds(t *testing.T) {
	e := newTestEngine(t)

	res := e.Apply(&TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(1),
	})
	assert.Equal(t, ErrInsufficientFunds, res.Result)
	assert.False(t, res.Applied)

	// The failed transfer left no trace.
	assert.True(t, balanceOf(t, e, bob).IsZero())
}

func TestTokenApproveAndTransferFrom(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	apply(t, e, &TokenApprove{
		BaseOp:  NewBaseOp(TypeTokenApprove, alice),
		Spender: bob,
		Amount:  units(500),
	}, Success)

	allowance, res := e.Allowance(alice, bob)
	require.True(t, res.IsSuccess())
	assert.Equal(t, units(500), allowance)

	apply(t, e, &TokenTransferFrom{
		BaseOp: NewBaseOp(TypeTokenTransferFrom, bob),
		From:   alice,
		To:     carol,
		Amount: units(300),
	}, Success)

	// Fees apply to the delegated transfer like any other.
	assert.Equal(t, units(270), balanceOf(t, e, carol))

	allowance, res = e.Allowance(alice, bob)
	require.True(t, res.IsSuccess())
	assert.Equal(t, units(200), allowance)

	apply(t, e, &TokenTransferFrom{
		BaseOp: NewBaseOp(TypeTokenTransferFrom, bob),
		From:   alice,
		To:     carol,
		Amount: units(300),
	}, ErrInsufficientAllowance)
}

func TestTokenDeliver(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))
	seedTokens(t, e, bob, units(1000))

	bobBefore := balanceOf(t, e, bob)

	apply(t, e, &TokenDeliver{
		BaseOp: NewBaseOp(TypeTokenDeliver, alice),
		Amount: units(500),
	}, Success)

	// The delivery is gone from the caller and reflected to everyone
	// else.
	aliceAfter := balanceOf(t, e, alice)
	assert.True(t, aliceAfter.Lt(units(501)))
	assert.True(t, balanceOf(t, e, bob).Cmp(bobBefore) >= 0)

	fees, res := e.TotalFees()
	require.True(t, res.IsSuccess())
	assert.Equal(t, units(500), fees)
}

func TestTokenDeliverRewardExcluded(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenExcludeFromReward, testOwner),
		Account: alice,
	}, Success)

	apply(t, e, &TokenDeliver{
		BaseOp: NewBaseOp(TypeTokenDeliver, alice),
		Amount: units(100),
	}, ErrRewardExcluded)
}

func TestTokenRewardExclusionRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	// Excluding snapshots the real balance.
	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenExcludeFromReward, testOwner),
		Account: alice,
	}, Success)
	assert.Equal(t, units(1000), balanceOf(t, e, alice))

	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenExcludeFromReward, testOwner),
		Account: alice,
	}, ErrAlreadyExcluded)

	// Transfers keep working against the snapshotted balance.
	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(100),
	}, Success)
	assert.Equal(t, units(900), balanceOf(t, e, alice))
	assert.Equal(t, units(90), balanceOf(t, e, bob))

	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenIncludeInReward, testOwner),
		Account: alice,
	}, Success)
	assert.Equal(t, units(900), balanceOf(t, e, alice))

	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenIncludeInReward, testOwner),
		Account: alice,
	}, ErrNotExcluded)
}

func TestTokenAdminRequiresOwner(t *testing.T) {
	e := newTestEngine(t)

	ops := []Operation{
		&TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, alice), Percent: 3},
		&TokenSetLiquidityFee{BaseOp: NewBaseOp(TypeTokenSetLiquidityFee, alice), Percent: 3},
		&TokenSetMaxTxPercent{BaseOp: NewBaseOp(TypeTokenSetMaxTxPercent, alice), Percent: 1},
		&TokenSetExclusion{BaseOp: NewBaseOp(TypeTokenExcludeFromFee, alice), Account: bob},
		&TokenSetSwapAddress{BaseOp: NewBaseOp(TypeTokenSetSwapAddress, alice), Account: bob},
		&TokenSetSwapEnabled{BaseOp: NewBaseOp(TypeTokenSetSwapEnabled, alice), Enabled: false},
		&TokenAuthorizeOwnership{BaseOp: NewBaseOp(TypeTokenAuthorizeOwnership, alice), NewOwner: bob},
	}
	for _, op := range ops {
		res := e.Apply(op)
		assert.Equal(t, ErrNotOwner, res.Result, "type %s", op.OpType())
	}
}

func TestTokenSetFees(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	apply(t, e, &TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, testOwner), Percent: 0}, Success)
	apply(t, e, &TokenSetLiquidityFee{BaseOp: NewBaseOp(TypeTokenSetLiquidityFee, testOwner), Percent: 10}, Success)

	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(100),
	}, Success)

	assert.Equal(t, units(90), balanceOf(t, e, bob))
	assert.Equal(t, units(10), balanceOf(t, e, testSwap))

	res := e.Apply(&TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, testOwner), Percent: 101})
	assert.Equal(t, ErrBadPercent, res.Result)
}

func TestTokenClearSwapAddressSkipsLiquidityFee(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	apply(t, e, &TokenSetSwapAddress{
		BaseOp:  NewBaseOp(TypeTokenSetSwapAddress, testOwner),
		Account: types.ZeroAddress,
	}, Success)

	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(100),
	}, Success)

	// Only the 5% reflected tax applies without a liquidity recipient.
	assert.Equal(t, units(95), balanceOf(t, e, bob))
}

func TestTokenOwnershipHandover(t *testing.T) {
	e := newTestEngine(t)

	apply(t, e, &TokenAuthorizeOwnership{
		BaseOp:   NewBaseOp(TypeTokenAuthorizeOwnership, testOwner),
		NewOwner: bob,
	}, Success)

	// Nomination alone changes nothing.
	res := e.Apply(&TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, bob), Percent: 3})
	assert.Equal(t, ErrNotOwner, res.Result)

	res = e.Apply(&TokenAssumeOwnership{BaseOp: NewBaseOp(TypeTokenAssumeOwnership, carol)})
	assert.Equal(t, ErrNotPendingOwner, res.Result)

	apply(t, e, &TokenAssumeOwnership{BaseOp: NewBaseOp(TypeTokenAssumeOwnership, bob)}, Success)
	apply(t, e, &TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, bob), Percent: 3}, Success)

	// The old owner is out.
	res = e.Apply(&TokenSetTaxFee{BaseOp: NewBaseOp(TypeTokenSetTaxFee, testOwner), Percent: 5})
	assert.Equal(t, ErrNotOwner, res.Result)
}

func TestTokenTotalSupplyConstant(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(50000))

	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(20000),
	}, Success)

	supply, res := e.TotalSupply()
	require.True(t, res.IsSuccess())
	want := new(uint256.Int).Mul(uint256.NewInt(1_000_000_000), units(1_000_000))
	assert.Equal(t, want, supply)
}

// Summing every holder's balance after taxed transfers must account for
// the whole supply, short of at most one base unit of floor rounding
// per holder.
func TestTokenBalanceSumConservation(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(50000))
	seedTokens(t, e, bob, units(30000))

	holders := []types.Address{testOwner, alice, bob, carol, testSwap, testTokenAddr}
	sumBalances := func() *uint256.Int {
		sum := new(uint256.Int)
		for _, h := range holders {
			sum.Add(sum, balanceOf(t, e, h))
		}
		return sum
	}
	supply, res := e.TotalSupply()
	require.True(t, res.IsSuccess())

	transfers := []struct {
		from, to types.Address
		amount   *uint256.Int
	}{
		{alice, bob, units(1000)},
		{bob, carol, units(12345)},
		{carol, alice, units(777)},
		{alice, carol, units(4321)},
		{bob, alice, units(999)},
	}
	for _, tr := range transfers {
		apply(t, e, &TokenTransfer{
			BaseOp: NewBaseOp(TypeTokenTransfer, tr.from),
			To:     tr.to,
			Amount: tr.amount,
		}, Success)
		sum := sumBalances()
		require.LessOrEqual(t, sum.Cmp(supply), 0)
		drift := new(uint256.Int).Sub(supply, sum)
		require.True(t, drift.LtUint64(uint64(len(holders))), "drift %s", drift.Dec())
	}

	// A reward-excluded holder keeps the books balanced too.
	apply(t, e, &TokenSetExclusion{
		BaseOp:  NewBaseOp(TypeTokenExcludeFromReward, testOwner),
		Account: carol,
	}, Success)
	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     carol,
		Amount: units(500),
	}, Success)
	apply(t, e, &TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, carol),
		To:     bob,
		Amount: units(200),
	}, Success)

	sum := sumBalances()
	require.LessOrEqual(t, sum.Cmp(supply), 0)
	drift := new(uint256.Int).Sub(supply, sum)
	require.True(t, drift.LtUint64(uint64(len(holders))), "drift %s", drift.Dec())
}

func TestTokenTransferRateFloor(t *testing.T) {
	e := newTestEngine(t)
	seedTokens(t, e, alice, units(1000))

	// Drive the scaled supply to its floor: any further reflection would
	// push the rate under one.
	ts, res := loadTokenState(e.view, testTokenAddr)
	require.True(t, res.IsSuccess())
	ts.RTotal.Set(&ts.TTotal)
	require.True(t, storeTokenState(e.view, testTokenAddr, ts).IsSuccess())

	ares := e.Apply(&TokenTransfer{
		BaseOp: NewBaseOp(TypeTokenTransfer, alice),
		To:     bob,
		Amount: units(100),
	})
	assert.Equal(t, ErrRateFloor, ares.Result)

	// Rejected whole: scaled supply, fee tally and balances untouched.
	after, res := loadTokenState(e.view, testTokenAddr)
	require.True(t, res.IsSuccess())
	assert.Equal(t, &after.TTotal, &after.RTotal)
	assert.True(t, after.TFeeTotal.IsZero())
	assert.True(t, balanceOf(t, e, bob).IsZero())
}
