package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// VaultState is the wallet module singleton: its admin and the set of
// NFT collections whose token ids may key sub-accounts.
type VaultState struct {
	Owner        types.Address
	PendingOwner types.Address
	Supported    []types.Address
}

// IsSupported reports whether a collection has been admitted.
func (v *VaultState) IsSupported(collection types.Address) bool {
	for _, c := range v.Supported {
		if c == collection {
			return true
		}
	}
	return false
}

// FungibleHolding is a sub-account's balance in one fungible contract.
type FungibleHolding struct {
	Contract types.Address
	Amount   uint256.Int
}

// NFTHolding is the set of ids a sub-account holds under one
// non-fungible contract.
type NFTHolding struct {
	Contract types.Address
	IDs      []uint64
}

// MultiHolding is a sub-account's balance in one (contract, id)
// multi-token position.
type MultiHolding struct {
	Contract types.Address
	ID       uint64
	Amount   uint256.Int
}

// SubAccount is a vault partition keyed by an externally-owned token id.
// Created lazily on first deposit; never destroyed, holdings simply
// drain to empty. Holdings are kept in slices (not maps) so the entry
// serializes deterministically.
type SubAccount struct {
	Native  uint256.Int
	ERC20   []FungibleHolding
	ERC721  []NFTHolding
	ERC1155 []MultiHolding

	// LockEnd of zero means unlocked. Repeated locks only ever extend
	// the deadline.
	LockEnd uint64
}

// ERC20Balance returns the held balance for a fungible contract.
func (s *SubAccount) ERC20Balance(contract types.Address) *uint256.Int {
	for i := range s.ERC20 {
		if s.ERC20[i].Contract == contract {
			return new(uint256.Int).Set(&s.ERC20[i].Amount)
		}
	}
	return new(uint256.Int)
}

// CreditERC20 adds to a fungible holding, creating it when absent.
func (s *SubAccount) CreditERC20(contract types.Address, amt *uint256.Int) {
	for i := range s.ERC20 {
		if s.ERC20[i].Contract == contract {
			s.ERC20[i].Amount.Add(&s.ERC20[i].Amount, amt)
			return
		}
	}
	var h FungibleHolding
	h.Contract = contract
	h.Amount.Set(amt)
	s.ERC20 = append(s.ERC20, h)
}

// DebitERC20 removes from a fungible holding, dropping it at zero.
// Returns false when the balance is insufficient.
func (s *SubAccount) DebitERC20(contract types.Address, amt *uint256.Int) bool {
	for i := range s.ERC20 {
		if s.ERC20[i].Contract == contract {
			if s.ERC20[i].Amount.Lt(amt) {
				return false
			}
			s.ERC20[i].Amount.Sub(&s.ERC20[i].Amount, amt)
			if s.ERC20[i].Amount.IsZero() {
				s.ERC20 = append(s.ERC20[:i], s.ERC20[i+1:]...)
			}
			return true
		}
	}
	return false
}

// HasERC721 reports whether the sub-account holds (contract, id).
func (s *SubAccount) HasERC721(contract types.Address, id uint64) bool {
	for i := range s.ERC721 {
		if s.ERC721[i].Contract == contract {
			for _, held := range s.ERC721[i].IDs {
				if held == id {
					return true
				}
			}
		}
	}
	return false
}

// AddERC721 records (contract, id) as held.
func (s *SubAccount) AddERC721(contract types.Address, id uint64) {
	for i := range s.ERC721 {
		if s.ERC721[i].Contract == contract {
			s.ERC721[i].IDs = append(s.ERC721[i].IDs, id)
			return
		}
	}
	s.ERC721 = append(s.ERC721, NFTHolding{Contract: contract, IDs: []uint64{id}})
}

// RemoveERC721 drops (contract, id); returns false when not held.
func (s *SubAccount) RemoveERC721(contract types.Address, id uint64) bool {
	for i := range s.ERC721 {
		if s.ERC721[i].Contract != contract {
			continue
		}
		for j, held := range s.ERC721[i].IDs {
			if held == id {
				s.ERC721[i].IDs = append(s.ERC721[i].IDs[:j], s.ERC721[i].IDs[j+1:]...)
				if len(s.ERC721[i].IDs) == 0 {
					s.ERC721 = append(s.ERC721[:i], s.ERC721[i+1:]...)
				}
				return true
			}
		}
	}
	return false
}

// MultiBalance returns the held amount for (contract, id).
func (s *SubAccount) MultiBalance(contract types.Address, id uint64) *uint256.Int {
	for i := range s.ERC1155 {
		if s.ERC1155[i].Contract == contract && s.ERC1155[i].ID == id {
			return new(uint256.Int).Set(&s.ERC1155[i].Amount)
		}
	}
	return new(uint256.Int)
}

// CreditMulti adds to a multi-token holding, creating it when absent.
func (s *SubAccount) CreditMulti(contract types.Address, id uint64, amt *uint256.Int) {
	for i := range s.ERC1155 {
		if s.ERC1155[i].Contract == contract && s.ERC1155[i].ID == id {
			s.ERC1155[i].Amount.Add(&s.ERC1155[i].Amount, amt)
			return
		}
	}
	var h MultiHolding
	h.Contract = contract
	h.ID = id
	h.Amount.Set(amt)
	s.ERC1155 = append(s.ERC1155, h)
}

// DebitMulti removes from a multi-token holding, dropping it at zero.
// Returns false when the balance is insufficient.
func (s *SubAccount) DebitMulti(contract types.Address, id uint64, amt *uint256.Int) bool {
	for i := range s.ERC1155 {
		if s.ERC1155[i].Contract == contract && s.ERC1155[i].ID == id {
			if s.ERC1155[i].Amount.Lt(amt) {
				return false
			}
			s.ERC1155[i].Amount.Sub(&s.ERC1155[i].Amount, amt)
			if s.ERC1155[i].Amount.IsZero() {
				s.ERC1155 = append(s.ERC1155[:i], s.ERC1155[i+1:]...)
			}
			return true
		}
	}
	return false
}

// Empty reports whether every asset class has drained.
func (s *SubAccount) Empty() bool {
	return s.Native.IsZero() && len(s.ERC20) == 0 && len(s.ERC721) == 0 && len(s.ERC1155) == 0
}
