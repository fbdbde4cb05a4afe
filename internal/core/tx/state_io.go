package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Typed accessors between ledger bytes and sle entries. Load helpers
// return ErrNotFound for missing singletons and ErrInternal for codec or
// storage faults; store helpers insert or update as needed.

func loadEntry(v LedgerView, k keylet.Keylet, out any) Result {
	data, err := v.Read(k)
	if err != nil {
		return ErrInternal
	}
	if data == nil {
		return ErrNotFound
	}
	if err := sle.Unmarshal(data, out); err != nil {
		return ErrInternal
	}
	return Success
}

func storeEntry(v LedgerView, k keylet.Keylet, in any) Result {
	data, err := sle.Marshal(in)
	if err != nil {
		return ErrInternal
	}
	exists, err := v.Exists(k)
	if err != nil {
		return ErrInternal
	}
	if exists {
		err = v.Update(k, data)
	} else {
		err = v.Insert(k, data)
	}
	if err != nil {
		return ErrInternal
	}
	return Success
}

func loadTokenState(v LedgerView, token types.Address) (*sle.TokenState, Result) {
	var ts sle.TokenState
	if res := loadEntry(v, keylet.TokenState(token), &ts); !res.IsSuccess() {
		return nil, res
	}
	return &ts, Success
}

func storeTokenState(v LedgerView, token types.Address, ts *sle.TokenState) Result {
	return storeEntry(v, keylet.TokenState(token), ts)
}

// loadTokenAccount returns the holder's account, a zero-value account
// if none exists yet.
func loadTokenAccount(v LedgerView, token, holder types.Address) (*sle.TokenAccount, Result) {
	var acct sle.TokenAccount
	res := loadEntry(v, keylet.TokenAccount(token, holder), &acct)
	if res == ErrNotFound {
		return &sle.TokenAccount{}, Success
	}
	if !res.IsSuccess() {
		return nil, res
	}
	return &acct, Success
}

func storeTokenAccount(v LedgerView, token, holder types.Address, acct *sle.TokenAccount) Result {
	return storeEntry(v, keylet.TokenAccount(token, holder), acct)
}

func loadVotes(v LedgerView, token, delegate types.Address) (*sle.VoteHistory, Result) {
	var h sle.VoteHistory
	res := loadEntry(v, keylet.Votes(token, delegate), &h)
	if res == ErrNotFound {
		return &sle.VoteHistory{}, Success
	}
	if !res.IsSuccess() {
		return nil, res
	}
	return &h, Success
}

func storeVotes(v LedgerView, token, delegate types.Address, h *sle.VoteHistory) Result {
	return storeEntry(v, keylet.Votes(token, delegate), h)
}

func loadEmitterState(v LedgerView, emitter types.Address) (*sle.EmitterState, Result) {
	var es sle.EmitterState
	if res := loadEntry(v, keylet.Emitter(emitter), &es); !res.IsSuccess() {
		return nil, res
	}
	return &es, Success
}

func storeEmitterState(v LedgerView, emitter types.Address, es *sle.EmitterState) Result {
	return storeEntry(v, keylet.Emitter(emitter), es)
}

func loadCollectionState(v LedgerView, collection types.Address) (*sle.CollectionState, Result) {
	var cs sle.CollectionState
	if res := loadEntry(v, keylet.Collection(collection), &cs); !res.IsSuccess() {
		return nil, res
	}
	return &cs, Success
}

func storeCollectionState(v LedgerView, collection types.Address, cs *sle.CollectionState) Result {
	return storeEntry(v, keylet.Collection(collection), cs)
}

func loadVaultState(v LedgerView, vault types.Address) (*sle.VaultState, Result) {
	var vs sle.VaultState
	if res := loadEntry(v, keylet.VaultState(vault), &vs); !res.IsSuccess() {
		return nil, res
	}
	return &vs, Success
}

func storeVaultState(v LedgerView, vault types.Address, vs *sle.VaultState) Result {
	return storeEntry(v, keylet.VaultState(vault), vs)
}

// loadSubAccount returns the vault partition, an empty partition if it
// has never been touched.
func loadSubAccount(v LedgerView, vault, collection types.Address, id uint64) (*sle.SubAccount, Result) {
	var sub sle.SubAccount
	res := loadEntry(v, keylet.SubAccount(vault, collection, id), &sub)
	if res == ErrNotFound {
		return &sle.SubAccount{}, Success
	}
	if !res.IsSuccess() {
		return nil, res
	}
	return &sub, Success
}

func storeSubAccount(v LedgerView, vault, collection types.Address, id uint64, sub *sle.SubAccount) Result {
	return storeEntry(v, keylet.SubAccount(vault, collection, id), sub)
}

func loadSwapState(v LedgerView, swap types.Address) (*sle.SwapState, Result) {
	var ss sle.SwapState
	if res := loadEntry(v, keylet.SwapState(swap), &ss); !res.IsSuccess() {
		return nil, res
	}
	return &ss, Success
}

func storeSwapState(v LedgerView, swap types.Address, ss *sle.SwapState) Result {
	return storeEntry(v, keylet.SwapState(swap), ss)
}

// loadAmount reads a single-amount entry, zero if absent.
func loadAmount(v LedgerView, k keylet.Keylet) (*uint256.Int, Result) {
	var b sle.Balance
	res := loadEntry(v, k, &b)
	if res == ErrNotFound {
		return new(uint256.Int), Success
	}
	if !res.IsSuccess() {
		return nil, res
	}
	return new(uint256.Int).Set(&b.Amount), Success
}

// storeAmount writes a single-amount entry, erasing it at zero.
func storeAmount(v LedgerView, k keylet.Keylet, amt *uint256.Int) Result {
	if amt.IsZero() {
		exists, err := v.Exists(k)
		if err != nil {
			return ErrInternal
		}
		if exists {
			if err := v.Erase(k); err != nil {
				return ErrInternal
			}
		}
		return Success
	}
	var b sle.Balance
	b.Amount.Set(amt)
	return storeEntry(v, k, &b)
}

// hasFlag reports whether a presence-only entry exists.
func hasFlag(v LedgerView, k keylet.Keylet) (bool, Result) {
	exists, err := v.Exists(k)
	if err != nil {
		return false, ErrInternal
	}
	return exists, Success
}

// setFlag creates a presence-only entry; clearFlag removes it.
func setFlag(v LedgerView, k keylet.Keylet) Result {
	exists, err := v.Exists(k)
	if err != nil {
		return ErrInternal
	}
	if exists {
		return Success
	}
	return storeEntry(v, k, &sle.Flag{Set: true})
}

func clearFlag(v LedgerView, k keylet.Keylet) Result {
	exists, err := v.Exists(k)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return Success
	}
	if err := v.Erase(k); err != nil {
		return ErrInternal
	}
	return Success
}

// moveNative moves native currency between addresses.
func moveNative(v LedgerView, from, to types.Address, amt *uint256.Int) Result {
	if amt.IsZero() {
		return Success
	}
	fromBal, res := loadAmount(v, keylet.Native(from))
	if !res.IsSuccess() {
		return res
	}
	if fromBal.Lt(amt) {
		return ErrInsufficientFunds
	}
	toBal, res := loadAmount(v, keylet.Native(to))
	if !res.IsSuccess() {
		return res
	}
	if res := storeAmount(v, keylet.Native(from), fromBal.Sub(fromBal, amt)); !res.IsSuccess() {
		return res
	}
	return storeAmount(v, keylet.Native(to), toBal.Add(toBal, amt))
}

// moveRegistryFungible moves a plain registry fungible balance.
func moveRegistryFungible(v LedgerView, contract types.Address, from, to types.Address, amt *uint256.Int) Result {
	if amt.IsZero() {
		return Success
	}
	fromBal, res := loadAmount(v, keylet.Fungible(contract, from))
	if !res.IsSuccess() {
		return res
	}
	if fromBal.Lt(amt) {
		return ErrInsufficientFunds
	}
	toBal, res := loadAmount(v, keylet.Fungible(contract, to))
	if !res.IsSuccess() {
		return res
	}
	if res := storeAmount(v, keylet.Fungible(contract, from), fromBal.Sub(fromBal, amt)); !res.IsSuccess() {
		return res
	}
	return storeAmount(v, keylet.Fungible(contract, to), toBal.Add(toBal, amt))
}

// mintRegistryFungible credits a registry fungible balance from nothing.
// Only the emission engine uses it.
func mintRegistryFungible(v LedgerView, contract, to types.Address, amt *uint256.Int) Result {
	if amt.IsZero() {
		return Success
	}
	bal, res := loadAmount(v, keylet.Fungible(contract, to))
	if !res.IsSuccess() {
		return res
	}
	return storeAmount(v, keylet.Fungible(contract, to), bal.Add(bal, amt))
}

// nftOwner returns the owner of (contract, id), the zero address if the
// token does not exist.
func nftOwner(v LedgerView, contract types.Address, id uint64) (types.Address, Result) {
	var own sle.NFTOwnership
	res := loadEntry(v, keylet.NFTOwner(contract, id), &own)
	if res == ErrNotFound {
		return types.ZeroAddress, Success
	}
	if !res.IsSuccess() {
		return types.ZeroAddress, res
	}
	return own.Owner, Success
}

// setNFTOwner records the owner of (contract, id).
func setNFTOwner(v LedgerView, contract types.Address, id uint64, owner types.Address) Result {
	return storeEntry(v, keylet.NFTOwner(contract, id), &sle.NFTOwnership{Owner: owner})
}

// moveMultiToken moves a (contract, id) multi-token balance.
func moveMultiToken(v LedgerView, contract types.Address, id uint64, from, to types.Address, amt *uint256.Int) Result {
	if amt.IsZero() {
		return Success
	}
	fromBal, res := loadAmount(v, keylet.MultiToken(contract, id, from))
	if !res.IsSuccess() {
		return res
	}
	if fromBal.Lt(amt) {
		return ErrInsufficientFunds
	}
	toBal, res := loadAmount(v, keylet.MultiToken(contract, id, to))
	if !res.IsSuccess() {
		return res
	}
	if res := storeAmount(v, keylet.MultiToken(contract, id, from), fromBal.Sub(fromBal, amt)); !res.IsSuccess() {
		return res
	}
	return storeAmount(v, keylet.MultiToken(contract, id, to), toBal.Add(toBal, amt))
}
