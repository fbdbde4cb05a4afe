package sle

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Balance is the generic single-amount entry used for native currency,
// plain fungible balances, multi-token balances and allowances. Zero
// balances are erased rather than stored.
type Balance struct {
	Amount uint256.Int
}

// NFTOwnership records the current owner of a (contract, id) token.
type NFTOwnership struct {
	Owner types.Address
}
