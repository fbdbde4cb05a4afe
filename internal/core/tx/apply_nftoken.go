package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// requireCollectionOwner loads the collection state and checks the
// caller is its owner.
func requireCollectionOwner(ctx *ApplyContext) (*sle.CollectionState, Result) {
	cs, res := loadCollectionState(ctx.View, ctx.Config.Collection)
	if !res.IsSuccess() {
		return nil, res
	}
	if cs.Owner != ctx.Caller {
		return nil, ErrNotOwner
	}
	return cs, Success
}

// aldnBalance returns an address's real ALDN balance.
func aldnBalance(v LedgerView, cfg EngineConfig, addr types.Address) (*uint256.Int, Result) {
	ts, res := loadTokenState(v, cfg.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	acct, res := loadTokenAccount(v, cfg.Token, addr)
	if !res.IsSuccess() {
		return nil, res
	}
	rate, res := currentRate(v, cfg.Token, ts)
	if !res.IsSuccess() {
		return nil, res
	}
	return accountBalance(acct, rate), Success
}

func (op *LampMint) Apply(ctx *ApplyContext) Result {
	collection := ctx.Config.Collection
	cs, res := loadCollectionState(ctx.View, collection)
	if !res.IsSuccess() {
		return res
	}
	if ctx.Now() < cs.SaleStart {
		return ErrSaleNotStarted
	}
	if cs.TotalSupply+op.Quantity > LampMaxSupply {
		return ErrSoldOut
	}

	price := lampPurchaseAmount(cs.TotalSupply, op.Quantity)
	if !ctx.Value.Eq(price) {
		return ErrIncorrectPayment
	}
	if res := ctx.collectValue(collection); !res.IsSuccess() {
		return res
	}

	// A valid referrer earns the reward for both sides of the edge. The
	// rewards stay inside the collection's native balance until
	// distributed, tracked by the outstanding total.
	if !op.Referrer.IsZero() && op.Referrer != ctx.Caller {
		reward := new(uint256.Int).Mul(price, uint256.NewInt(referralRewardBP))
		reward.Div(reward, uint256.NewInt(10000))
		if !reward.IsZero() {
			for _, beneficiary := range []types.Address{op.Referrer, ctx.Caller} {
				rk := keylet.Referral(collection, beneficiary)
				pending, res := loadAmount(ctx.View, rk)
				if !res.IsSuccess() {
					return res
				}
				if res := storeAmount(ctx.View, rk, pending.Add(pending, reward)); !res.IsSuccess() {
					return res
				}
				cs.ReferralOutstanding.Add(&cs.ReferralOutstanding, reward)
			}
			if res := setFlag(ctx.View, keylet.ReferralStatus(collection, op.Referrer, ctx.Caller)); !res.IsSuccess() {
				return res
			}
		}
	}

	// Each purchase drains a slice of the collection's remaining ALDN
	// reserve, proportional to the unminted supply.
	reserve, res := aldnBalance(ctx.View, ctx.Config, collection)
	if !res.IsSuccess() {
		return res
	}
	if !reserve.IsZero() {
		reward := new(uint256.Int).Mul(reserve, uint256.NewInt(op.Quantity))
		reward.Div(reward, uint256.NewInt(LampMaxSupply-cs.TotalSupply))
		if !reward.IsZero() {
			if res := tokenTransfer(ctx.View, ctx.Config, collection, ctx.Caller, reward); !res.IsSuccess() {
				return res
			}
		}
	}

	for i := uint64(0); i < op.Quantity; i++ {
		if res := setNFTOwner(ctx.View, collection, cs.TotalSupply+i, ctx.Caller); !res.IsSuccess() {
			return res
		}
	}
	cs.TotalSupply += op.Quantity
	return storeCollectionState(ctx.View, collection, cs)
}

func (op *LampChangeName) Apply(ctx *ApplyContext) Result {
	collection := ctx.Config.Collection
	owner, res := nftOwner(ctx.View, collection, op.ID)
	if !res.IsSuccess() {
		return res
	}
	if owner.IsZero() {
		return ErrNotFound
	}
	if owner != ctx.Caller {
		return ErrNotTokenHolder
	}
	if !validLampName(op.Name) {
		return ErrBadName
	}

	lower := lowerLampName(op.Name)
	taken, res := hasFlag(ctx.View, keylet.NameClaim(collection, lower))
	if !res.IsSuccess() {
		return res
	}
	if taken {
		return ErrNameTaken
	}

	mk := keylet.NFTMeta(collection, op.ID)
	var meta sle.NFTMeta
	res = loadEntry(ctx.View, mk, &meta)
	if !res.IsSuccess() && res != ErrNotFound {
		return res
	}
	if meta.Name != "" {
		if res := clearFlag(ctx.View, keylet.NameClaim(collection, lowerLampName(meta.Name))); !res.IsSuccess() {
			return res
		}
	}
	meta.Name = op.Name
	if res := storeEntry(ctx.View, mk, &meta); !res.IsSuccess() {
		return res
	}
	return setFlag(ctx.View, keylet.NameClaim(collection, lower))
}

func (op *LampDistributeReferral) Apply(ctx *ApplyContext) Result {
	collection := ctx.Config.Collection
	cs, res := requireCollectionOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	if cs.Wallet.IsZero() {
		return ErrWalletNotSet
	}
	vs, res := loadVaultState(ctx.View, ctx.Config.Vault)
	if !res.IsSuccess() {
		return res
	}
	if !vs.IsSupported(collection) {
		return ErrNotSupported
	}

	to := op.ToID
	if to > cs.TotalSupply {
		to = cs.TotalSupply
	}
	for id := op.FromID; id < to; id++ {
		owner, res := nftOwner(ctx.View, collection, id)
		if !res.IsSuccess() {
			return res
		}
		rk := keylet.Referral(collection, owner)
		pending, res := loadAmount(ctx.View, rk)
		if !res.IsSuccess() {
			return res
		}
		if pending.IsZero() {
			continue
		}
		if res := storeAmount(ctx.View, rk, new(uint256.Int)); !res.IsSuccess() {
			return res
		}
		subClamp(&cs.ReferralOutstanding, pending)

		if res := moveNative(ctx.View, collection, ctx.Config.Vault, pending); !res.IsSuccess() {
			return res
		}
		sub, res := loadSubAccount(ctx.View, ctx.Config.Vault, collection, id)
		if !res.IsSuccess() {
			return res
		}
		sub.Native.Add(&sub.Native, pending)
		if res := storeSubAccount(ctx.View, ctx.Config.Vault, collection, id, sub); !res.IsSuccess() {
			return res
		}
	}
	return storeCollectionState(ctx.View, collection, cs)
}

func (op *LampWithdrawFund) Apply(ctx *ApplyContext) Result {
	collection := ctx.Config.Collection
	cs, res := requireCollectionOwner(ctx)
	if !res.IsSuccess() {
		return res
	}

	balance, res := loadAmount(ctx.View, keylet.Native(collection))
	if !res.IsSuccess() {
		return res
	}
	// Outstanding referral rewards stay behind for distribution.
	if balance.Lt(&cs.ReferralOutstanding) {
		return ErrInsufficientFunds
	}
	eta := new(uint256.Int).Sub(balance, &cs.ReferralOutstanding)
	if eta.IsZero() {
		return Success
	}

	tenth := new(uint256.Int).Div(eta, uint256.NewInt(10))
	rest := new(uint256.Int).Sub(eta, tenth)
	rest.Sub(rest, tenth)

	if res := moveNative(ctx.View, collection, cs.LiquidityFund, tenth); !res.IsSuccess() {
		return res
	}
	if res := moveNative(ctx.View, collection, cs.PrizeFund, tenth); !res.IsSuccess() {
		return res
	}
	return moveNative(ctx.View, collection, cs.TreasuryFund, rest)
}

func (op *LampSetBaseURI) Apply(ctx *ApplyContext) Result {
	cs, res := requireCollectionOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	cs.BaseURI = op.URI
	return storeCollectionState(ctx.View, ctx.Config.Collection, cs)
}

func (op *LampInitWallet) Apply(ctx *ApplyContext) Result {
	cs, res := requireCollectionOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	cs.Wallet = op.Wallet
	return storeCollectionState(ctx.View, ctx.Config.Collection, cs)
}

func (op *LampAuthorizeOwnership) Apply(ctx *ApplyContext) Result {
	cs, res := requireCollectionOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	cs.PendingOwner = op.NewOwner
	return storeCollectionState(ctx.View, ctx.Config.Collection, cs)
}

func (op *LampAssumeOwnership) Apply(ctx *ApplyContext) Result {
	cs, res := loadCollectionState(ctx.View, ctx.Config.Collection)
	if !res.IsSuccess() {
		return res
	}
	if cs.PendingOwner.IsZero() || cs.PendingOwner != ctx.Caller {
		return ErrNotPendingOwner
	}
	cs.Owner = ctx.Caller
	cs.PendingOwner = types.ZeroAddress
	return storeCollectionState(ctx.View, ctx.Config.Collection, cs)
}
