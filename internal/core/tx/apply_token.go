package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// subClamp subtracts b from a in place, clamping at zero. Scaled
// balances of reward-excluded accounts and vote checkpoints can lag the
// real balance by reflection gains, so a strict subtraction is wrong.
func subClamp(a, b *uint256.Int) {
	if a.Lt(b) {
		a.Clear()
		return
	}
	a.Sub(a, b)
}

// decVotes lowers a delegate's checkpointed power at the current block.
func decVotes(v LedgerView, token, delegate types.Address, amount *uint256.Int, block uint64) Result {
	if delegate.IsZero() || amount.IsZero() {
		return Success
	}
	hist, res := loadVotes(v, token, delegate)
	if !res.IsSuccess() {
		return res
	}
	next := hist.Current()
	subClamp(next, amount)
	hist.Write(block, next)
	return storeVotes(v, token, delegate, hist)
}

// incVotes raises a delegate's checkpointed power at the current block.
func incVotes(v LedgerView, token, delegate types.Address, amount *uint256.Int, block uint64) Result {
	if delegate.IsZero() || amount.IsZero() {
		return Success
	}
	hist, res := loadVotes(v, token, delegate)
	if !res.IsSuccess() {
		return res
	}
	next := hist.Current()
	next.Add(next, amount)
	hist.Write(block, next)
	return storeVotes(v, token, delegate, hist)
}

// tokenTransfer is the shared ALDN movement path: fee computation, the
// four reward-exclusion arithmetic paths, liquidity payout, reflection
// and voting-power attribution. Conversion: transfer, transferFrom, the
// mint reward payout and vault movements all come through here.
func tokenTransfer(v LedgerView, cfg EngineConfig, from, to types.Address, tAmount *uint256.Int) Result {
	if tAmount.IsZero() {
		return Success
	}
	ts, res := loadTokenState(v, cfg.Token)
	if !res.IsSuccess() {
		return res
	}

	fromAcct, res := loadTokenAccount(v, cfg.Token, from)
	if !res.IsSuccess() {
		return res
	}
	toAcct := fromAcct
	if to != from {
		if toAcct, res = loadTokenAccount(v, cfg.Token, to); !res.IsSuccess() {
			return res
		}
	}

	if !fromAcct.MaxTxExcluded && !toAcct.MaxTxExcluded && tAmount.Gt(&ts.MaxTxAmount) {
		return ErrMaxTxExceeded
	}

	rate, res := currentRate(v, cfg.Token, ts)
	if !res.IsSuccess() {
		return res
	}

	taxFee, liquidityFee := ts.TaxFeePercent, ts.LiquidityFeePercent
	if fromAcct.FeeExcluded || toAcct.FeeExcluded {
		taxFee, liquidityFee = 0, 0
	}
	// No liquidity recipient means the fee is skipped, not reverted.
	if ts.SwapAndLiquifyAddress.IsZero() {
		liquidityFee = 0
	}
	vals := computeValues(tAmount, rate, taxFee, liquidityFee)

	if fromAcct.RewardExcluded {
		if fromAcct.TOwned.Lt(tAmount) {
			return ErrInsufficientFunds
		}
		fromAcct.TOwned.Sub(&fromAcct.TOwned, tAmount)
		subClamp(&fromAcct.ROwned, vals.rAmount)
	} else {
		if fromAcct.ROwned.Lt(vals.rAmount) {
			return ErrInsufficientFunds
		}
		fromAcct.ROwned.Sub(&fromAcct.ROwned, vals.rAmount)
	}

	if toAcct.RewardExcluded {
		toAcct.TOwned.Add(&toAcct.TOwned, vals.tTransfer)
	}
	toAcct.ROwned.Add(&toAcct.ROwned, vals.rTransfer)

	if res := storeTokenAccount(v, cfg.Token, from, fromAcct); !res.IsSuccess() {
		return res
	}
	if to != from {
		if res := storeTokenAccount(v, cfg.Token, to, toAcct); !res.IsSuccess() {
			return res
		}
	}

	if !vals.tLiquidity.IsZero() {
		swapAddr := ts.SwapAndLiquifyAddress
		var swapAcct *sle.TokenAccount
		switch swapAddr {
		case from:
			swapAcct = fromAcct
		case to:
			swapAcct = toAcct
		default:
			if swapAcct, res = loadTokenAccount(v, cfg.Token, swapAddr); !res.IsSuccess() {
				return res
			}
		}
		swapAcct.ROwned.Add(&swapAcct.ROwned, vals.rLiquidity)
		if swapAcct.RewardExcluded {
			swapAcct.TOwned.Add(&swapAcct.TOwned, vals.tLiquidity)
		}
		if res := storeTokenAccount(v, cfg.Token, swapAddr, swapAcct); !res.IsSuccess() {
			return res
		}
	}

	if !vals.tFee.IsZero() {
		if res := reflectFee(ts, vals.rFee, vals.tFee); !res.IsSuccess() {
			return res
		}
	}
	if res := storeTokenState(v, cfg.Token, ts); !res.IsSuccess() {
		return res
	}

	// Voting power follows the transfer: the sender's delegate loses the
	// gross amount, the receiver's delegate gains the net amount.
	srcDel, dstDel := types.ZeroAddress, types.ZeroAddress
	if fromAcct.DelegateSet {
		srcDel = fromAcct.Delegate
	}
	if toAcct.DelegateSet {
		dstDel = toAcct.Delegate
	}
	if srcDel == dstDel && !srcDel.IsZero() {
		shrink := new(uint256.Int).Sub(tAmount, vals.tTransfer)
		return decVotes(v, cfg.Token, srcDel, shrink, cfg.BlockHeight)
	}
	if res := decVotes(v, cfg.Token, srcDel, tAmount, cfg.BlockHeight); !res.IsSuccess() {
		return res
	}
	return incVotes(v, cfg.Token, dstDel, vals.tTransfer, cfg.BlockHeight)
}

func (op *TokenTransfer) Apply(ctx *ApplyContext) Result {
	return tokenTransfer(ctx.View, ctx.Config, ctx.Caller, op.To, op.Amount)
}

func (op *TokenApprove) Apply(ctx *ApplyContext) Result {
	k := keylet.Allowance(ctx.Config.Token, ctx.Caller, op.Spender)
	return storeAmount(ctx.View, k, op.Amount)
}

func (op *TokenTransferFrom) Apply(ctx *ApplyContext) Result {
	k := keylet.Allowance(ctx.Config.Token, op.From, ctx.Caller)
	allowance, res := loadAmount(ctx.View, k)
	if !res.IsSuccess() {
		return res
	}
	if allowance.Lt(op.Amount) {
		return ErrInsufficientAllowance
	}
	if res := tokenTransfer(ctx.View, ctx.Config, op.From, op.To, op.Amount); !res.IsSuccess() {
		return res
	}
	return storeAmount(ctx.View, k, allowance.Sub(allowance, op.Amount))
}

func (op *TokenDeliver) Apply(ctx *ApplyContext) Result {
	ts, res := loadTokenState(ctx.View, ctx.Config.Token)
	if !res.IsSuccess() {
		return res
	}
	acct, res := loadTokenAccount(ctx.View, ctx.Config.Token, ctx.Caller)
	if !res.IsSuccess() {
		return res
	}
	if acct.RewardExcluded {
		return ErrRewardExcluded
	}
	rate, res := currentRate(ctx.View, ctx.Config.Token, ts)
	if !res.IsSuccess() {
		return res
	}
	rAmount := reflectionFromToken(op.Amount, rate)
	if acct.ROwned.Lt(rAmount) {
		return ErrInsufficientFunds
	}
	acct.ROwned.Sub(&acct.ROwned, rAmount)
	if res := reflectFee(ts, rAmount, op.Amount); !res.IsSuccess() {
		return res
	}
	if res := storeTokenAccount(ctx.View, ctx.Config.Token, ctx.Caller, acct); !res.IsSuccess() {
		return res
	}
	if res := storeTokenState(ctx.View, ctx.Config.Token, ts); !res.IsSuccess() {
		return res
	}
	// The delivered amount left the caller's balance for good.
	if acct.DelegateSet {
		return decVotes(ctx.View, ctx.Config.Token, acct.Delegate, op.Amount, ctx.Block())
	}
	return Success
}

func (op *TokenDelegate) Apply(ctx *ApplyContext) Result {
	ts, res := loadTokenState(ctx.View, ctx.Config.Token)
	if !res.IsSuccess() {
		return res
	}
	acct, res := loadTokenAccount(ctx.View, ctx.Config.Token, ctx.Caller)
	if !res.IsSuccess() {
		return res
	}
	rate, res := currentRate(ctx.View, ctx.Config.Token, ts)
	if !res.IsSuccess() {
		return res
	}
	balance := accountBalance(acct, rate)

	prev := types.ZeroAddress
	if acct.DelegateSet {
		prev = acct.Delegate
	}
	if prev == op.Delegatee {
		return Success
	}
	if res := decVotes(ctx.View, ctx.Config.Token, prev, balance, ctx.Block()); !res.IsSuccess() {
		return res
	}
	if res := incVotes(ctx.View, ctx.Config.Token, op.Delegatee, balance, ctx.Block()); !res.IsSuccess() {
		return res
	}
	acct.Delegate = op.Delegatee
	acct.DelegateSet = true
	return storeTokenAccount(ctx.View, ctx.Config.Token, ctx.Caller, acct)
}

// requireTokenOwner loads the token state and checks the caller is its
// owner.
func requireTokenOwner(ctx *ApplyContext) (*sle.TokenState, Result) {
	ts, res := loadTokenState(ctx.View, ctx.Config.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	if ts.Owner != ctx.Caller {
		return nil, ErrNotOwner
	}
	return ts, Success
}

func (op *TokenSetTaxFee) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ts.TaxFeePercent = op.Percent
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

func (op *TokenSetLiquidityFee) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ts.LiquidityFeePercent = op.Percent
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

func (op *TokenSetMaxTxPercent) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	max := new(uint256.Int).Mul(&ts.TTotal, uint256.NewInt(op.Percent))
	max.Div(max, uint256.NewInt(100))
	ts.MaxTxAmount.Set(max)
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

// applyFeeExclusion flips one of the per-account boolean exclusion
// flags according to the operation type.
func (op *TokenSetExclusion) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	acct, res := loadTokenAccount(ctx.View, ctx.Config.Token, op.Account)
	if !res.IsSuccess() {
		return res
	}

	switch op.OpType() {
	case TypeTokenExcludeFromFee:
		acct.FeeExcluded = true
	case TypeTokenIncludeInFee:
		acct.FeeExcluded = false
	case TypeTokenExcludeFromMaxTx:
		acct.MaxTxExcluded = true
	case TypeTokenIncludeInMaxTx:
		acct.MaxTxExcluded = false

	case TypeTokenExcludeFromReward:
		if acct.RewardExcluded {
			return ErrAlreadyExcluded
		}
		if !acct.ROwned.IsZero() {
			rate, res := currentRate(ctx.View, ctx.Config.Token, ts)
			if !res.IsSuccess() {
				return res
			}
			acct.TOwned.Set(tokenFromReflection(&acct.ROwned, rate))
		}
		acct.RewardExcluded = true
		ts.AddRewardExcluded(op.Account)
		if res := storeTokenState(ctx.View, ctx.Config.Token, ts); !res.IsSuccess() {
			return res
		}

	case TypeTokenIncludeInReward:
		if !acct.RewardExcluded {
			return ErrNotExcluded
		}
		acct.TOwned.Clear()
		acct.RewardExcluded = false
		ts.RemoveRewardExcluded(op.Account)
		if res := storeTokenState(ctx.View, ctx.Config.Token, ts); !res.IsSuccess() {
			return res
		}

	default:
		return ErrMalformed
	}

	return storeTokenAccount(ctx.View, ctx.Config.Token, op.Account, acct)
}

func (op *TokenSetSwapAddress) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ts.SwapAndLiquifyAddress = op.Account
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

func (op *TokenSetSwapEnabled) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ts.SwapAndLiquifyEnabled = op.Enabled
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

func (op *TokenAuthorizeOwnership) Apply(ctx *ApplyContext) Result {
	ts, res := requireTokenOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ts.PendingOwner = op.NewOwner
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}

func (op *TokenAssumeOwnership) Apply(ctx *ApplyContext) Result {
	ts, res := loadTokenState(ctx.View, ctx.Config.Token)
	if !res.IsSuccess() {
		return res
	}
	if ts.PendingOwner.IsZero() || ts.PendingOwner != ctx.Caller {
		return ErrNotPendingOwner
	}
	ts.Owner = ctx.Caller
	ts.PendingOwner = types.ZeroAddress
	return storeTokenState(ctx.View, ctx.Config.Token, ts)
}
