package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// SwapState is the swap-and-liquify module singleton. The module is a
// plain component: the backend implementation it drives is chosen at
// configuration time, so the only runtime state is its wiring and the
// liquidity units it has been credited.
type SwapState struct {
	Owner        types.Address
	PendingOwner types.Address

	Initialized bool
	Token       types.Address
	Router      types.Address

	// PairUnits are the liquidity-pool units credited by the backend for
	// liquidity this module added.
	PairUnits uint256.Int
}
