// Package keylet computes addressable locations in the ledger state.
//
// Every state entry lives under a 32-byte key derived from a one-byte
// namespace and the identifying fields of the entry. The namespace byte
// keeps unrelated entry families from ever colliding, and the hash keeps
// keys uniform for the underlying store.
package keylet

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Namespace identifiers for keylet generation.
const (
	spaceTokenState   byte = 'T' // reflected-token singleton
	spaceTokenAccount byte = 'a' // per-holder reflected balances
	spaceAllowance    byte = 'w' // (contract, owner, spender) allowance
	spaceVotes        byte = 'v' // per-address delegation + checkpoints
	spaceEmitter      byte = 'G' // emission module singleton
	spaceSchedule     byte = 'E' // per-collection emission schedule
	spaceClaim        byte = 'c' // per-(collection, id) claim checkpoint
	spaceCollection   byte = 'C' // NFT collection singleton
	spaceNFTOwner     byte = 'n' // (contract, id) ownership
	spaceNFTMeta      byte = 'm' // (collection, id) name and metadata
	spaceNameClaim    byte = 'N' // reserved lowercased NFT names
	spaceReferral     byte = 'r' // (collection, address) referral ledger
	spaceRefStatus    byte = 's' // (collection, referrer, referee) edge
	spaceFungible     byte = 'f' // (contract, holder) plain balances
	spaceMultiToken   byte = 'q' // (contract, id, holder) balances
	spaceNative       byte = 'b' // per-address native currency
	spaceVaultState   byte = 'V' // vault singleton
	spaceSubAccount   byte = 'u' // (collection, id) vault sub-account
	spaceSwapState    byte = 'S' // swap-and-liquify singleton
	spaceApprovalAll  byte = 'A' // (contract, owner, operator) NFT approval
)

// Keylet is a typed 32-byte state key.
type Keylet struct {
	Key [32]byte
}

func indexHash(space byte, data ...[]byte) Keylet {
	h := sha256.New()
	h.Write([]byte{space})
	for _, d := range data {
		h.Write(d)
	}
	var k Keylet
	h.Sum(k.Key[:0])
	return k
}

func u64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// TokenState returns the keylet of the reflected-token singleton for the
// given token contract address.
func TokenState(token types.Address) Keylet {
	return indexHash(spaceTokenState, token[:])
}

// TokenAccount returns the keylet of a holder's reflected-token account.
func TokenAccount(token, holder types.Address) Keylet {
	return indexHash(spaceTokenAccount, token[:], holder[:])
}

// Allowance returns the keylet of an (owner, spender) allowance under a
// fungible contract.
func Allowance(contract, owner, spender types.Address) Keylet {
	return indexHash(spaceAllowance, contract[:], owner[:], spender[:])
}

// Votes returns the keylet of an address's delegation edge and voting
// checkpoint history.
func Votes(token, addr types.Address) Keylet {
	return indexHash(spaceVotes, token[:], addr[:])
}

// Emitter returns the keylet of the emission module singleton.
func Emitter(emitter types.Address) Keylet {
	return indexHash(spaceEmitter, emitter[:])
}

// Schedule returns the keylet of a collection's emission schedule.
func Schedule(emitter, collection types.Address) Keylet {
	return indexHash(spaceSchedule, emitter[:], collection[:])
}

// Claim returns the keylet of a token id's last-claim checkpoint.
func Claim(emitter, collection types.Address, id uint64) Keylet {
	return indexHash(spaceClaim, emitter[:], collection[:], u64(id))
}

// Collection returns the keylet of an NFT collection's singleton state.
func Collection(collection types.Address) Keylet {
	return indexHash(spaceCollection, collection[:])
}

// NFTOwner returns the keylet of a non-fungible token's ownership entry.
func NFTOwner(contract types.Address, id uint64) Keylet {
	return indexHash(spaceNFTOwner, contract[:], u64(id))
}

// NFTMeta returns the keylet of a collection token's metadata entry.
func NFTMeta(collection types.Address, id uint64) Keylet {
	return indexHash(spaceNFTMeta, collection[:], u64(id))
}

// NameClaim returns the keylet reserving a lowercased token name.
func NameClaim(collection types.Address, lower string) Keylet {
	return indexHash(spaceNameClaim, collection[:], []byte(lower))
}

// Referral returns the keylet of an address's pending referral rewards
// under a collection.
func Referral(collection, addr types.Address) Keylet {
	return indexHash(spaceReferral, collection[:], addr[:])
}

// ReferralStatus returns the keylet of a (referrer, referee) edge.
func ReferralStatus(collection, referrer, referee types.Address) Keylet {
	return indexHash(spaceRefStatus, collection[:], referrer[:], referee[:])
}

// Fungible returns the keylet of a plain fungible balance.
func Fungible(contract, holder types.Address) Keylet {
	return indexHash(spaceFungible, contract[:], holder[:])
}

// MultiToken returns the keylet of a multi-token (per-id) balance.
func MultiToken(contract types.Address, id uint64, holder types.Address) Keylet {
	return indexHash(spaceMultiToken, contract[:], u64(id), holder[:])
}

// Native returns the keylet of an address's native-currency balance.
func Native(holder types.Address) Keylet {
	return indexHash(spaceNative, holder[:])
}

// VaultState returns the keylet of the vault module singleton.
func VaultState(vault types.Address) Keylet {
	return indexHash(spaceVaultState, vault[:])
}

// SubAccount returns the keylet of a vault sub-account.
func SubAccount(vault, collection types.Address, id uint64) Keylet {
	return indexHash(spaceSubAccount, vault[:], collection[:], u64(id))
}

// SwapState returns the keylet of the swap-and-liquify singleton.
func SwapState(swap types.Address) Keylet {
	return indexHash(spaceSwapState, swap[:])
}

// ApprovalForAll returns the keylet of an (owner, operator) blanket NFT
// approval under a contract.
func ApprovalForAll(contract, owner, operator types.Address) Keylet {
	return indexHash(spaceApprovalAll, contract[:], owner[:], operator[:])
}
