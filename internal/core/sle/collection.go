package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// CollectionState is the MagicLamps collection singleton.
type CollectionState struct {
	Name   string
	Symbol string

	Owner        types.Address
	PendingOwner types.Address

	TotalSupply uint64
	BaseURI     string

	SaleStart uint64
	Reveal    uint64

	AladdinToken types.Address
	GenieToken   types.Address
	Wallet       types.Address

	LiquidityFund types.Address
	PrizeFund     types.Address
	TreasuryFund  types.Address

	// ReferralOutstanding is the total of pending referral rewards not
	// yet pushed into wallet sub-accounts; withdrawFund must leave it
	// untouched in the collection's native balance.
	ReferralOutstanding uint256.Int
}

// NFTMeta carries a collection token's mutable metadata.
type NFTMeta struct {
	Name string
}

// Flag is a presence-only entry (reserved names, referral edges, blanket
// NFT approvals). The entry existing is the information.
type Flag struct {
	Set bool
}
