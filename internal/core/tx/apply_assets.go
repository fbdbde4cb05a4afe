package tx

import (
	"github.com/magiclamp-finance/lampd/internal/core/keylet"
)

func (op *AssetTransfer) Apply(ctx *ApplyContext) Result {
	return moveRegistryFungible(ctx.View, op.Token, ctx.Caller, op.To, op.Amount)
}

func (op *AssetApprove) Apply(ctx *ApplyContext) Result {
	k := keylet.Allowance(op.Token, ctx.Caller, op.Spender)
	return storeAmount(ctx.View, k, op.Amount)
}

func (op *AssetTransferFrom) Apply(ctx *ApplyContext) Result {
	k := keylet.Allowance(op.Token, op.From, ctx.Caller)
	allowance, res := loadAmount(ctx.View, k)
	if !res.IsSuccess() {
		return res
	}
	if allowance.Lt(op.Amount) {
		return ErrInsufficientAllowance
	}
	if res := moveRegistryFungible(ctx.View, op.Token, op.From, op.To, op.Amount); !res.IsSuccess() {
		return res
	}
	return storeAmount(ctx.View, k, allowance.Sub(allowance, op.Amount))
}

func (op *NFTTransfer) Apply(ctx *ApplyContext) Result {
	owner, res := nftOwner(ctx.View, op.Token, op.ID)
	if !res.IsSuccess() {
		return res
	}
	if owner.IsZero() {
		return ErrNotFound
	}
	if owner != ctx.Caller {
		approved, res := hasFlag(ctx.View, keylet.ApprovalForAll(op.Token, owner, ctx.Caller))
		if !res.IsSuccess() {
			return res
		}
		if !approved {
			return ErrNotApproved
		}
	}
	return setNFTOwner(ctx.View, op.Token, op.ID, op.To)
}

func (op *NFTSetApprovalForAll) Apply(ctx *ApplyContext) Result {
	k := keylet.ApprovalForAll(op.Token, ctx.Caller, op.Operator)
	if op.Approved {
		return setFlag(ctx.View, k)
	}
	return clearFlag(ctx.View, k)
}

func (op *MultiTransfer) Apply(ctx *ApplyContext) Result {
	return moveMultiToken(ctx.View, op.Token, op.ID, ctx.Caller, op.To, op.Amount)
}

func (op *NativeTransfer) Apply(ctx *ApplyContext) Result {
	return moveNative(ctx.View, ctx.Caller, op.To, ctx.Value)
}
