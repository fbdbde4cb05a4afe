package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Reflection accounting. Balances live in two unit spaces: the fixed
// real supply tTotal and a scaled supply rTotal just below 2^256. Fees
// shrink rTotal, which raises every included holder's real balance
// without touching any account entry. Reward-excluded accounts are
// carved out of both supplies when deriving the rate, so reflections
// pass them by.

// currentSupply returns the effective (rSupply, tSupply) pair after
// removing reward-excluded accounts. When the excluded set would push
// the ratio below rTotal/tTotal the full supplies are used instead.
func currentSupply(v LedgerView, token types.Address, ts *sle.TokenState) (*uint256.Int, *uint256.Int, Result) {
	rSupply := new(uint256.Int).Set(&ts.RTotal)
	tSupply := new(uint256.Int).Set(&ts.TTotal)

	for _, addr := range ts.RewardExcluded {
		acct, res := loadTokenAccount(v, token, addr)
		if !res.IsSuccess() {
			return nil, nil, res
		}
		if acct.ROwned.Gt(rSupply) || acct.TOwned.Gt(tSupply) {
			return new(uint256.Int).Set(&ts.RTotal), new(uint256.Int).Set(&ts.TTotal), Success
		}
		rSupply.Sub(rSupply, &acct.ROwned)
		tSupply.Sub(tSupply, &acct.TOwned)
	}

	// floor(rSupply/tSupply) below floor(rTotal/tTotal) means the carve
	// out has degenerated; fall back to the raw supplies.
	floor := new(uint256.Int).Div(&ts.RTotal, &ts.TTotal)
	if tSupply.IsZero() || new(uint256.Int).Div(rSupply, tSupply).Lt(floor) {
		return new(uint256.Int).Set(&ts.RTotal), new(uint256.Int).Set(&ts.TTotal), Success
	}
	return rSupply, tSupply, Success
}

// currentRate returns floor(rSupply / tSupply).
func currentRate(v LedgerView, token types.Address, ts *sle.TokenState) (*uint256.Int, Result) {
	rSupply, tSupply, res := currentSupply(v, token, ts)
	if !res.IsSuccess() {
		return nil, res
	}
	return rSupply.Div(rSupply, tSupply), Success
}

// tokenFromReflection converts a scaled amount to real units at rate.
func tokenFromReflection(rAmount, rate *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(rAmount, rate)
}

// reflectionFromToken converts a real amount to scaled units at rate.
func reflectionFromToken(tAmount, rate *uint256.Int) *uint256.Int {
	return new(uint256.Int).Mul(tAmount, rate)
}

// accountBalance returns the holder's real balance: tOwned when reward
// excluded, rOwned at the current rate otherwise.
func accountBalance(acct *sle.TokenAccount, rate *uint256.Int) *uint256.Int {
	if acct.RewardExcluded {
		return new(uint256.Int).Set(&acct.TOwned)
	}
	return tokenFromReflection(&acct.ROwned, rate)
}

// transferValues holds both unit spaces of a fee-bearing transfer.
type transferValues struct {
	tTransfer  *uint256.Int // real amount credited to the receiver
	tFee       *uint256.Int // real tax, reflected
	tLiquidity *uint256.Int // real liquidity fee, paid out

	rAmount    *uint256.Int // scaled gross, debited from the sender
	rTransfer  *uint256.Int // scaled amount credited to the receiver
	rFee       *uint256.Int
	rLiquidity *uint256.Int
}

// computeValues splits a gross transfer amount into net, tax and
// liquidity portions in both unit spaces. taxFee and liquidityFee are
// whole percents; pass zero for fee-free transfers.
func computeValues(tAmount, rate *uint256.Int, taxFee, liquidityFee uint64) transferValues {
	hundred := uint256.NewInt(100)
	tFee := new(uint256.Int).Mul(tAmount, uint256.NewInt(taxFee))
	tFee.Div(tFee, hundred)
	tLiquidity := new(uint256.Int).Mul(tAmount, uint256.NewInt(liquidityFee))
	tLiquidity.Div(tLiquidity, hundred)

	tTransfer := new(uint256.Int).Sub(tAmount, tFee)
	tTransfer.Sub(tTransfer, tLiquidity)

	rAmount := reflectionFromToken(tAmount, rate)
	rFee := reflectionFromToken(tFee, rate)
	rLiquidity := reflectionFromToken(tLiquidity, rate)
	rTransfer := new(uint256.Int).Sub(rAmount, rFee)
	rTransfer.Sub(rTransfer, rLiquidity)

	return transferValues{
		tTransfer:  tTransfer,
		tFee:       tFee,
		tLiquidity: tLiquidity,
		rAmount:    rAmount,
		rTransfer:  rTransfer,
		rFee:       rFee,
		rLiquidity: rLiquidity,
	}
}

// reflectFee burns rFee from the scaled supply and tallies tFee. The
// scaled supply may never drop below the real supply: past that point
// the rate would fall under one and every conversion would corrupt.
func reflectFee(ts *sle.TokenState, rFee, tFee *uint256.Int) Result {
	next := new(uint256.Int).Sub(&ts.RTotal, rFee)
	if rFee.Gt(&ts.RTotal) || next.Lt(&ts.TTotal) {
		return ErrRateFloor
	}
	ts.RTotal.Set(next)
	ts.TFeeTotal.Add(&ts.TFeeTotal, tFee)
	return Success
}
