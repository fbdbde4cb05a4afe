package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// requireVaultOwner loads the vault state and checks the caller is its
// admin.
func requireVaultOwner(ctx *ApplyContext) (*sle.VaultState, Result) {
	vs, res := loadVaultState(ctx.View, ctx.Config.Vault)
	if !res.IsSuccess() {
		return nil, res
	}
	if vs.Owner != ctx.Caller {
		return nil, ErrNotOwner
	}
	return vs, Success
}

// requireSupported checks a wallet's keying collection is admitted.
func requireSupported(ctx *ApplyContext, w WalletRef) Result {
	vs, res := loadVaultState(ctx.View, ctx.Config.Vault)
	if !res.IsSuccess() {
		return res
	}
	if !vs.IsSupported(w.Collection) {
		return ErrNotSupported
	}
	return Success
}

// openWallet loads a wallet sub-account after checking its collection
// is supported.
func openWallet(ctx *ApplyContext, w WalletRef) (*sle.SubAccount, Result) {
	if res := requireSupported(ctx, w); !res.IsSuccess() {
		return nil, res
	}
	return loadSubAccount(ctx.View, ctx.Config.Vault, w.Collection, w.ID)
}

// openOwnedWallet additionally checks the caller owns the keying NFT
// and the wallet is not locked. Every withdraw, transfer and lock path
// goes through it.
func openOwnedWallet(ctx *ApplyContext, w WalletRef, wantUnlocked bool) (*sle.SubAccount, Result) {
	owner, res := nftOwner(ctx.View, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	if owner.IsZero() {
		return nil, ErrNotFound
	}
	if owner != ctx.Caller {
		return nil, ErrNotWalletOwner
	}
	sub, res := openWallet(ctx, w)
	if !res.IsSuccess() {
		return nil, res
	}
	if wantUnlocked && sub.LockEnd > ctx.Now() {
		return nil, ErrWalletLocked
	}
	return sub, Success
}

func storeWallet(ctx *ApplyContext, w WalletRef, sub *sle.SubAccount) Result {
	return storeSubAccount(ctx.View, ctx.Config.Vault, w.Collection, w.ID, sub)
}

// moveFungibleAsset moves a fungible balance between addresses,
// dispatching on the asset: ALDN goes through the reflected-token
// engine, everything else through the plain registry.
func moveFungibleAsset(ctx *ApplyContext, token types.Address, from, to types.Address, amt *uint256.Int) Result {
	if token == ctx.Config.Token {
		return tokenTransfer(ctx.View, ctx.Config, from, to, amt)
	}
	return moveRegistryFungible(ctx.View, token, from, to, amt)
}

func (op *VaultSupport) Apply(ctx *ApplyContext) Result {
	vs, res := requireVaultOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	if vs.IsSupported(op.Collection) {
		return ErrAlreadySupported
	}
	vs.Supported = append(vs.Supported, op.Collection)
	return storeVaultState(ctx.View, ctx.Config.Vault, vs)
}

func (op *VaultDepositBNB) Apply(ctx *ApplyContext) Result {
	sub, res := openWallet(ctx, op.Wallet)
	if !res.IsSuccess() {
		return res
	}
	if res := ctx.collectValue(ctx.Config.Vault); !res.IsSuccess() {
		return res
	}
	sub.Native.Add(&sub.Native, ctx.Value)
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultDepositBEP20) Apply(ctx *ApplyContext) Result {
	sub, res := openWallet(ctx, op.Wallet)
	if !res.IsSuccess() {
		return res
	}
	if res := moveFungibleAsset(ctx, op.Token, ctx.Caller, ctx.Config.Vault, op.Amount); !res.IsSuccess() {
		return res
	}
	sub.CreditERC20(op.Token, op.Amount)
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultDepositERC721) Apply(ctx *ApplyContext) Result {
	// A wallet keyed by a collection token may not swallow tokens of
	// that same collection; its own key could end up inside itself.
	if op.Token == op.Wallet.Collection {
		return ErrSelfDeposit
	}
	sub, res := openWallet(ctx, op.Wallet)
	if !res.IsSuccess() {
		return res
	}
	for _, id := range op.TokenIDs {
		owner, res := nftOwner(ctx.View, op.Token, id)
		if !res.IsSuccess() {
			return res
		}
		if owner != ctx.Caller {
			return ErrNotTokenHolder
		}
		if res := setNFTOwner(ctx.View, op.Token, id, ctx.Config.Vault); !res.IsSuccess() {
			return res
		}
		sub.AddERC721(op.Token, id)
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultDepositERC1155) Apply(ctx *ApplyContext) Result {
	sub, res := openWallet(ctx, op.Wallet)
	if !res.IsSuccess() {
		return res
	}
	if res := moveMultiToken(ctx.View, op.Token, op.TokenID, ctx.Caller, ctx.Config.Vault, op.Amount); !res.IsSuccess() {
		return res
	}
	sub.CreditMulti(op.Token, op.TokenID, op.Amount)
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultWithdrawBNB) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	if sub.Native.Lt(op.Amount) {
		return ErrInsufficientFunds
	}
	sub.Native.Sub(&sub.Native, op.Amount)
	if res := moveNative(ctx.View, ctx.Config.Vault, ctx.Caller, op.Amount); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultWithdrawBEP20) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	if !sub.DebitERC20(op.Token, op.Amount) {
		return ErrInsufficientFunds
	}
	if res := moveFungibleAsset(ctx, op.Token, ctx.Config.Vault, ctx.Caller, op.Amount); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultWithdrawERC721) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	for _, id := range op.TokenIDs {
		if !sub.RemoveERC721(op.Token, id) {
			return ErrNotFound
		}
		if res := setNFTOwner(ctx.View, op.Token, id, ctx.Caller); !res.IsSuccess() {
			return res
		}
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultWithdrawERC1155) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	if !sub.DebitMulti(op.Token, op.TokenID, op.Amount) {
		return ErrInsufficientFunds
	}
	if res := moveMultiToken(ctx.View, op.Token, op.TokenID, ctx.Config.Vault, ctx.Caller, op.Amount); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultWithdrawAll) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}

	if !sub.Native.IsZero() {
		if res := moveNative(ctx.View, ctx.Config.Vault, ctx.Caller, &sub.Native); !res.IsSuccess() {
			return res
		}
		sub.Native.Clear()
	}
	for _, h := range sub.ERC20 {
		if res := moveFungibleAsset(ctx, h.Contract, ctx.Config.Vault, ctx.Caller, &h.Amount); !res.IsSuccess() {
			return res
		}
	}
	sub.ERC20 = nil
	for _, h := range sub.ERC721 {
		for _, id := range h.IDs {
			if res := setNFTOwner(ctx.View, h.Contract, id, ctx.Caller); !res.IsSuccess() {
				return res
			}
		}
	}
	sub.ERC721 = nil
	for _, h := range sub.ERC1155 {
		if res := moveMultiToken(ctx.View, h.Contract, h.ID, ctx.Config.Vault, ctx.Caller, &h.Amount); !res.IsSuccess() {
			return res
		}
	}
	sub.ERC1155 = nil

	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultTransferBNB) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	dst, res := openWallet(ctx, op.To)
	if !res.IsSuccess() {
		return res
	}
	if sub.Native.Lt(op.Amount) {
		return ErrInsufficientFunds
	}
	sub.Native.Sub(&sub.Native, op.Amount)
	dst.Native.Add(&dst.Native, op.Amount)
	if res := storeWallet(ctx, op.Wallet, sub); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.To, dst)
}

func (op *VaultTransferBEP20) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	dst, res := openWallet(ctx, op.To)
	if !res.IsSuccess() {
		return res
	}
	if !sub.DebitERC20(op.Token, op.Amount) {
		return ErrInsufficientFunds
	}
	dst.CreditERC20(op.Token, op.Amount)
	if res := storeWallet(ctx, op.Wallet, sub); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.To, dst)
}

func (op *VaultTransferERC721) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	dst, res := openWallet(ctx, op.To)
	if !res.IsSuccess() {
		return res
	}
	for _, id := range op.TokenIDs {
		if !sub.RemoveERC721(op.Token, id) {
			return ErrNotFound
		}
		dst.AddERC721(op.Token, id)
	}
	if res := storeWallet(ctx, op.Wallet, sub); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.To, dst)
}

func (op *VaultTransferERC1155) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	dst, res := openWallet(ctx, op.To)
	if !res.IsSuccess() {
		return res
	}
	if !sub.DebitMulti(op.Token, op.TokenID, op.Amount) {
		return ErrInsufficientFunds
	}
	dst.CreditMulti(op.Token, op.TokenID, op.Amount)
	if res := storeWallet(ctx, op.Wallet, sub); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.To, dst)
}

func (op *VaultTransferAll) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, true)
	if !res.IsSuccess() {
		return res
	}
	dst, res := openWallet(ctx, op.To)
	if !res.IsSuccess() {
		return res
	}

	dst.Native.Add(&dst.Native, &sub.Native)
	sub.Native.Clear()
	for _, h := range sub.ERC20 {
		dst.CreditERC20(h.Contract, &h.Amount)
	}
	sub.ERC20 = nil
	for _, h := range sub.ERC721 {
		for _, id := range h.IDs {
			dst.AddERC721(h.Contract, id)
		}
	}
	sub.ERC721 = nil
	for _, h := range sub.ERC1155 {
		dst.CreditMulti(h.Contract, h.ID, &h.Amount)
	}
	sub.ERC1155 = nil

	if res := storeWallet(ctx, op.Wallet, sub); !res.IsSuccess() {
		return res
	}
	return storeWallet(ctx, op.To, dst)
}

func (op *VaultLock) Apply(ctx *ApplyContext) Result {
	sub, res := openOwnedWallet(ctx, op.Wallet, false)
	if !res.IsSuccess() {
		return res
	}
	if next := ctx.Now() + op.Duration; next > sub.LockEnd {
		sub.LockEnd = next
	}
	return storeWallet(ctx, op.Wallet, sub)
}

func (op *VaultAuthorizeOwnership) Apply(ctx *ApplyContext) Result {
	vs, res := requireVaultOwner(ctx)
	if !res.IsSuccess() {
		return res
	}
	vs.PendingOwner = op.NewOwner
	return storeVaultState(ctx.View, ctx.Config.Vault, vs)
}

func (op *VaultAssumeOwnership) Apply(ctx *ApplyContext) Result {
	vs, res := loadVaultState(ctx.View, ctx.Config.Vault)
	if !res.IsSuccess() {
		return res
	}
	if vs.PendingOwner.IsZero() || vs.PendingOwner != ctx.Caller {
		return ErrNotPendingOwner
	}
	vs.Owner = ctx.Caller
	vs.PendingOwner = types.ZeroAddress
	return storeVaultState(ctx.View, ctx.Config.Vault, vs)
}
