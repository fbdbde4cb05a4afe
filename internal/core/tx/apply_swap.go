package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// requireSwapOwner loads the swap state and checks the caller is its
// owner.
func requireSwapOwner(ctx *ApplyContext) (*sle.SwapState, Result) {
	ss, res := loadSwapState(ctx.View, ctx.Config.Swap)
	if !res.IsSuccess() {
		return nil, res
	}
	if ss.Owner != ctx.Caller {
		return nil, ErrNotOwner
	}
	return ss, Success
}

func (op *SwapInitialize) Apply(ctx *ApplyContext) Result {
	ss, res := requireSwapOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	if ss.Initialized {
		return ErrAlreadyInitialized
	}
	ss.Initialized = true
	ss.Token = op.Token
	ss.Router = op.Router
	return storeSwapState(ctx.View, ctx.Config.Swap, ss)
}

func (op *SwapInitializeLiquidity) Apply(ctx *ApplyContext) Result {
	ss, res := requireSwapOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	if !ss.Initialized {
		return ErrNotInitialized
	}
	if ctx.Config.Backend == nil {
		return ErrNotInitialized
	}

	// Both sides move to the module first, then out to the pool; a
	// backend failure unwinds the lot.
	if res := ctx.collectValue(ctx.Config.Swap); !res.IsSuccess() {
		return res
	}
	if res := tokenTransfer(ctx.View, ctx.Config, ctx.Caller, ctx.Config.Swap, op.TokenAmount); !res.IsSuccess() {
		return res
	}

	minted, err := ctx.Config.Backend.AddLiquidity(op.TokenAmount, ctx.Value)
	if err != nil {
		return ErrBackendFailed
	}
	if res := poolDeposit(ctx, ss, op.TokenAmount, ctx.Value); !res.IsSuccess() {
		return res
	}

	ss.PairUnits.Add(&ss.PairUnits, minted)
	return storeSwapState(ctx.View, ctx.Config.Swap, ss)
}

func (op *SwapLiquify) Apply(ctx *ApplyContext) Result {
	ss, res := requireSwapOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	if !ss.Initialized {
		return ErrNotInitialized
	}
	if ctx.Config.Backend == nil {
		return ErrNotInitialized
	}

	held, res := aldnBalance(ctx.View, ctx.Config, ctx.Config.Swap)
	if !res.IsSuccess() {
		return res
	}
	if held.Lt(op.Amount) {
		return ErrInsufficientFunds
	}

	half := new(uint256.Int).Div(op.Amount, uint256.NewInt(2))
	rest := new(uint256.Int).Sub(op.Amount, half)

	native, err := ctx.Config.Backend.SwapExactTokensForNative(half)
	if err != nil {
		return ErrBackendFailed
	}
	minted, err := ctx.Config.Backend.AddLiquidity(rest, native)
	if err != nil {
		return ErrBackendFailed
	}
	// The swapped-out native comes back from the pool's books before
	// going straight back in with the second half.
	if res := moveNative(ctx.View, ss.Router, ctx.Config.Swap, native); !res.IsSuccess() {
		return res
	}
	if res := poolDeposit(ctx, ss, op.Amount, native); !res.IsSuccess() {
		return res
	}

	ss.PairUnits.Add(&ss.PairUnits, minted)
	return storeSwapState(ctx.View, ctx.Config.Swap, ss)
}

// poolDeposit hands module assets over to the pool, booked on the
// router's address so supply conservation survives liquification.
func poolDeposit(ctx *ApplyContext, ss *sle.SwapState, tokens, native *uint256.Int) Result {
	if tokens != nil && !tokens.IsZero() {
		if res := tokenTransfer(ctx.View, ctx.Config, ctx.Config.Swap, ss.Router, tokens); !res.IsSuccess() {
			return res
		}
	}
	if native != nil && !native.IsZero() {
		if res := moveNative(ctx.View, ctx.Config.Swap, ss.Router, native); !res.IsSuccess() {
			return res
		}
	}
	return Success
}

func (op *SwapAuthorizeOwnership) Apply(ctx *ApplyContext) Result {
	ss, res := requireSwapOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	ss.PendingOwner = op.NewOwner
	return storeSwapState(ctx.View, ctx.Config.Swap, ss)
}

func (op *SwapAssumeOwnership) Apply(ctx *ApplyContext) Result {
	ss, res := loadSwapState(ctx.View, ctx.Config.Swap)
	if !res.IsSuccess() {
		return res
	}
	if ss.PendingOwner.IsZero() || ss.PendingOwner != ctx.Caller {
		return ErrNotPendingOwner
	}
	ss.Owner = ctx.Caller
	ss.PendingOwner = types.ZeroAddress
	return storeSwapState(ctx.View, ctx.Config.Swap, ss)
}
