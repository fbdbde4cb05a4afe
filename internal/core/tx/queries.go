package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Read-only views over the current ledger state. Queries never open a
// state table; they read the committed view directly.

// BalanceOf returns an address's reflected-token balance.
func (e *Engine) BalanceOf(addr types.Address) (*uint256.Int, Result) {
	return aldnBalance(e.view, e.config, addr)
}

// TotalSupply returns the reflected token's fixed total supply.
func (e *Engine) TotalSupply() (*uint256.Int, Result) {
	ts, res := loadTokenState(e.view, e.config.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	return new(uint256.Int).Set(&ts.TTotal), Success
}

// TotalFees returns the cumulative reflected tax collected.
func (e *Engine) TotalFees() (*uint256.Int, Result) {
	ts, res := loadTokenState(e.view, e.config.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	return new(uint256.Int).Set(&ts.TFeeTotal), Success
}

// Allowance returns an (owner, spender) reflected-token allowance.
func (e *Engine) Allowance(owner, spender types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.Allowance(e.config.Token, owner, spender))
}

// ReflectionFromToken converts a token amount into reflected units at
// the current rate, optionally with the transfer fee deducted first.
func (e *Engine) ReflectionFromToken(tAmount *uint256.Int, deductFees bool) (*uint256.Int, Result) {
	ts, res := loadTokenState(e.view, e.config.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	rate, res := currentRate(e.view, e.config.Token, ts)
	if !res.IsSuccess() {
		return nil, res
	}
	if !deductFees {
		return reflectionFromToken(tAmount, rate), Success
	}
	v := computeValues(tAmount, rate, ts.TaxFeePercent, ts.LiquidityFeePercent)
	return v.rTransfer, Success
}

// TokenFromReflection converts reflected units into a token amount at
// the current rate.
func (e *Engine) TokenFromReflection(rAmount *uint256.Int) (*uint256.Int, Result) {
	ts, res := loadTokenState(e.view, e.config.Token)
	if !res.IsSuccess() {
		return nil, res
	}
	rate, res := currentRate(e.view, e.config.Token, ts)
	if !res.IsSuccess() {
		return nil, res
	}
	return tokenFromReflection(rAmount, rate), Success
}

// Delegates returns the delegate an address points its votes at, the
// zero address if it has never delegated.
func (e *Engine) Delegates(holder types.Address) (types.Address, Result) {
	acct, res := loadTokenAccount(e.view, e.config.Token, holder)
	if !res.IsSuccess() {
		return types.ZeroAddress, res
	}
	return acct.Delegate, Success
}

// CurrentVotes returns a delegate's present voting power.
func (e *Engine) CurrentVotes(delegate types.Address) (*uint256.Int, Result) {
	h, res := loadVotes(e.view, e.config.Token, delegate)
	if !res.IsSuccess() {
		return nil, res
	}
	return h.Current(), Success
}

// PriorVotes returns a delegate's voting power as of a finalized block.
// The block must be strictly below the current height.
func (e *Engine) PriorVotes(delegate types.Address, block uint64) (*uint256.Int, Result) {
	if block >= e.config.BlockHeight {
		return nil, ErrBlockNotMined
	}
	h, res := loadVotes(e.view, e.config.Token, delegate)
	if !res.IsSuccess() {
		return nil, res
	}
	return h.At(block), Success
}

// Accumulated returns a collection token's claimable emission reward at
// the current time.
func (e *Engine) Accumulated(collection types.Address, id uint64) (*uint256.Int, Result) {
	var sched sle.EmissionSchedule
	if res := loadEntry(e.view, keylet.Schedule(e.config.Emitter, collection), &sched); !res.IsSuccess() {
		return nil, res
	}
	var cp sle.ClaimCheckpoint
	res := loadEntry(e.view, keylet.Claim(e.config.Emitter, collection, id), &cp)
	if !res.IsSuccess() && res != ErrNotFound {
		return nil, res
	}
	return accruedAmount(&sched, cp.LastClaim, e.config.Timestamp), Success
}

// EmissionBalance returns an address's emission-token balance.
func (e *Engine) EmissionBalance(addr types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.Fungible(e.config.Emitter, addr))
}

// OwnerOf returns the owner of a non-fungible token. Missing tokens
// resolve to ErrNotFound.
func (e *Engine) OwnerOf(contract types.Address, id uint64) (types.Address, Result) {
	owner, res := nftOwner(e.view, contract, id)
	if !res.IsSuccess() {
		return types.ZeroAddress, res
	}
	if owner.IsZero() {
		return types.ZeroAddress, ErrNotFound
	}
	return owner, Success
}

// IsApprovedForAll reports whether an operator holds a blanket approval
// from an owner under a contract.
func (e *Engine) IsApprovedForAll(contract, owner, operator types.Address) (bool, Result) {
	return hasFlag(e.view, keylet.ApprovalForAll(contract, owner, operator))
}

// CollectionSupply returns the number of lamps minted so far.
func (e *Engine) CollectionSupply() (uint64, Result) {
	cs, res := loadCollectionState(e.view, e.config.Collection)
	if !res.IsSuccess() {
		return 0, res
	}
	return cs.TotalSupply, Success
}

// TokenName returns a lamp's given name, empty if never named.
func (e *Engine) TokenName(id uint64) (string, Result) {
	var meta sle.NFTMeta
	res := loadEntry(e.view, keylet.NFTMeta(e.config.Collection, id), &meta)
	if res == ErrNotFound {
		return "", Success
	}
	if !res.IsSuccess() {
		return "", res
	}
	return meta.Name, Success
}

// IsNameReserved reports whether a lamp name is taken, ignoring case.
func (e *Engine) IsNameReserved(name string) (bool, Result) {
	return hasFlag(e.view, keylet.NameClaim(e.config.Collection, lowerLampName(name)))
}

// MintPrice returns the tier price of a single token id.
func (e *Engine) MintPrice(id uint64) *uint256.Int {
	return lampPrice(id)
}

// EstimatePurchase returns the exact payment a mint of the given
// quantity requires at the current supply.
func (e *Engine) EstimatePurchase(quantity uint64) (*uint256.Int, Result) {
	if quantity == 0 || quantity > LampBatchLimit {
		return nil, ErrBadQuantity
	}
	cs, res := loadCollectionState(e.view, e.config.Collection)
	if !res.IsSuccess() {
		return nil, res
	}
	if cs.TotalSupply+quantity > LampMaxSupply {
		return nil, ErrSoldOut
	}
	return lampPurchaseAmount(cs.TotalSupply, quantity), Success
}

// PendingReferral returns an address's referral reward not yet pushed
// into its wallet sub-account.
func (e *Engine) PendingReferral(addr types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.Referral(e.config.Collection, addr))
}

// NativeBalance returns an address's native-currency balance.
func (e *Engine) NativeBalance(addr types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.Native(addr))
}

// RegistryBalance returns an address's plain fungible balance under a
// contract.
func (e *Engine) RegistryBalance(contract, holder types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.Fungible(contract, holder))
}

// MultiBalance returns an address's (contract, id) multi-token balance.
func (e *Engine) MultiBalance(contract types.Address, id uint64, holder types.Address) (*uint256.Int, Result) {
	return loadAmount(e.view, keylet.MultiToken(contract, id, holder))
}

// VaultSupports reports whether the wallet module admits a collection.
func (e *Engine) VaultSupports(collection types.Address) (bool, Result) {
	vs, res := loadVaultState(e.view, e.config.Vault)
	if !res.IsSuccess() {
		return false, res
	}
	return vs.IsSupported(collection), Success
}

// WalletLockedUntil returns a wallet's lock deadline, zero if unlocked.
func (e *Engine) WalletLockedUntil(w WalletRef) (uint64, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return 0, res
	}
	return sub.LockEnd, Success
}

// WalletIsLocked reports whether a wallet is locked at the current time.
func (e *Engine) WalletIsLocked(w WalletRef) (bool, Result) {
	end, res := e.WalletLockedUntil(w)
	if !res.IsSuccess() {
		return false, res
	}
	return end > e.config.Timestamp, Success
}

// WalletBNB returns a wallet's held native balance.
func (e *Engine) WalletBNB(w WalletRef) (*uint256.Int, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	return new(uint256.Int).Set(&sub.Native), Success
}

// WalletBEP20 returns a wallet's held balance in a fungible contract.
func (e *Engine) WalletBEP20(w WalletRef, token types.Address) (*uint256.Int, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	return sub.ERC20Balance(token), Success
}

// WalletERC721 returns the ids a wallet holds under an NFT contract.
func (e *Engine) WalletERC721(w WalletRef, token types.Address) ([]uint64, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	for i := range sub.ERC721 {
		if sub.ERC721[i].Contract == token {
			out := make([]uint64, len(sub.ERC721[i].IDs))
			copy(out, sub.ERC721[i].IDs)
			return out, Success
		}
	}
	return nil, Success
}

// WalletERC1155 returns a wallet's held (contract, id) balance.
func (e *Engine) WalletERC1155(w WalletRef, token types.Address, id uint64) (*uint256.Int, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	return sub.MultiBalance(token, id), Success
}

// WalletCounts tallies a wallet's holdings by asset class: a 0/1 native
// presence flag, distinct fungible contracts, total non-fungible ids and
// distinct multi-token positions.
type WalletCounts struct {
	Native  uint64
	ERC20   uint64
	ERC721  uint64
	ERC1155 uint64
}

// WalletTokensCount counts what a wallet holds without naming it.
func (e *Engine) WalletTokensCount(w WalletRef) (WalletCounts, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return WalletCounts{}, res
	}
	var c WalletCounts
	if !sub.Native.IsZero() {
		c.Native = 1
	}
	c.ERC20 = uint64(len(sub.ERC20))
	for i := range sub.ERC721 {
		c.ERC721 += uint64(len(sub.ERC721[i].IDs))
	}
	c.ERC1155 = uint64(len(sub.ERC1155))
	return c, Success
}

// WalletBEP20Tokens returns every fungible holding in a wallet.
func (e *Engine) WalletBEP20Tokens(w WalletRef) ([]sle.FungibleHolding, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	out := make([]sle.FungibleHolding, len(sub.ERC20))
	copy(out, sub.ERC20)
	return out, Success
}

// WalletERC721Tokens returns every non-fungible holding in a wallet.
func (e *Engine) WalletERC721Tokens(w WalletRef) ([]sle.NFTHolding, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	out := make([]sle.NFTHolding, len(sub.ERC721))
	for i := range sub.ERC721 {
		out[i].Contract = sub.ERC721[i].Contract
		out[i].IDs = make([]uint64, len(sub.ERC721[i].IDs))
		copy(out[i].IDs, sub.ERC721[i].IDs)
	}
	return out, Success
}

// WalletERC1155Balances returns every multi-token position in a wallet.
func (e *Engine) WalletERC1155Balances(w WalletRef) ([]sle.MultiHolding, Result) {
	sub, res := loadSubAccount(e.view, e.config.Vault, w.Collection, w.ID)
	if !res.IsSuccess() {
		return nil, res
	}
	out := make([]sle.MultiHolding, len(sub.ERC1155))
	copy(out, sub.ERC1155)
	return out, Success
}

// SwapInfo returns the swap module's bound token, router and the pair
// units it has accumulated.
func (e *Engine) SwapInfo() (*sle.SwapState, Result) {
	ss, res := loadSwapState(e.view, e.config.Swap)
	if !res.IsSuccess() {
		return nil, res
	}
	out := *ss
	return &out, Success
}
