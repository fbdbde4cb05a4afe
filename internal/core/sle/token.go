package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// TokenState is the reflected-token singleton. Supplies live in two unit
// spaces: TTotal is the fixed real supply, RTotal the mutable scaled
// supply from which the reflection rate is derived. RTotal only ever
// decreases (fee reflection and deliver burns).
type TokenState struct {
	Name     string
	Symbol   string
	Decimals uint8

	TTotal    uint256.Int
	RTotal    uint256.Int
	TFeeTotal uint256.Int

	TaxFeePercent       uint64
	LiquidityFeePercent uint64
	MaxTxAmount         uint256.Int

	Owner        types.Address
	PendingOwner types.Address

	SwapAndLiquifyAddress types.Address
	SwapAndLiquifyEnabled bool

	// RewardExcluded mirrors the per-account flag so the effective-rate
	// computation can visit every excluded account without a full scan.
	RewardExcluded []types.Address
}

// IsRewardExcluded reports membership in the reward-exclusion set.
func (s *TokenState) IsRewardExcluded(addr types.Address) bool {
	for _, a := range s.RewardExcluded {
		if a == addr {
			return true
		}
	}
	return false
}

// AddRewardExcluded appends addr to the exclusion set; the caller checks
// membership first.
func (s *TokenState) AddRewardExcluded(addr types.Address) {
	s.RewardExcluded = append(s.RewardExcluded, addr)
}

// RemoveRewardExcluded drops addr from the exclusion set.
func (s *TokenState) RemoveRewardExcluded(addr types.Address) {
	for i, a := range s.RewardExcluded {
		if a == addr {
			s.RewardExcluded = append(s.RewardExcluded[:i], s.RewardExcluded[i+1:]...)
			return
		}
	}
}

// TokenAccount is a per-holder reflected-token account. Exactly one of
// ROwned/TOwned is authoritative at any time, selected by RewardExcluded:
// included holders are tracked in scaled units only, excluded holders
// carry both (TOwned authoritative, ROwned retained so the effective-rate
// subtraction stays exact, as in the reference reflection design).
type TokenAccount struct {
	ROwned uint256.Int
	TOwned uint256.Int

	RewardExcluded bool
	FeeExcluded    bool
	MaxTxExcluded  bool

	// Delegate is the single-hop voting delegate; DelegateSet
	// distinguishes "never delegated" from an explicit self-delegation.
	Delegate    types.Address
	DelegateSet bool
}
