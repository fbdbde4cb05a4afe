package tx

import (
	"strings"

	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Collection constants.
const (
	// LampMaxSupply is the total number of mintable lamps.
	LampMaxSupply = 11451

	// LampBatchLimit caps the quantity of a single mint.
	LampBatchLimit = 50

	// referralRewardBP is the referral reward in basis points, granted
	// to both the referrer and the minter.
	referralRewardBP = 1000
)

// lampPrice returns the mint price of a token id in native units
// (18 decimals). Pricing rises in fixed tiers up to the final lamp.
func lampPrice(id uint64) *uint256.Int {
	switch {
	case id < 1200:
		return uint256.MustFromDecimal("100000000000000000") // 0.1
	case id < 3200:
		return uint256.MustFromDecimal("200000000000000000") // 0.2
	case id < 6200:
		return uint256.MustFromDecimal("500000000000000000") // 0.5
	case id < 9200:
		return uint256.MustFromDecimal("1000000000000000000") // 1
	case id < 11200:
		return uint256.MustFromDecimal("2000000000000000000") // 2
	case id < 11400:
		return uint256.MustFromDecimal("5000000000000000000") // 5
	case id < 11450:
		return uint256.MustFromDecimal("10000000000000000000") // 10
	default:
		return uint256.MustFromDecimal("100000000000000000000") // 100
	}
}

// lampPurchaseAmount sums the tier prices of quantity ids starting at
// the current supply.
func lampPurchaseAmount(supply, quantity uint64) *uint256.Int {
	total := new(uint256.Int)
	for i := uint64(0); i < quantity; i++ {
		total.Add(total, lampPrice(supply+i))
	}
	return total
}

// validLampName reports whether a lamp name is acceptable: 1-25
// characters, alphanumerics and single interior spaces only.
func validLampName(name string) bool {
	if len(name) == 0 || len(name) > 25 {
		return false
	}
	if name[0] == ' ' || name[len(name)-1] == ' ' {
		return false
	}
	prevSpace := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == ' ':
			if prevSpace {
				return false
			}
			prevSpace = true
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			prevSpace = false
		default:
			return false
		}
	}
	return true
}

// lowerLampName normalizes a name for the case-insensitive reservation
// set.
func lowerLampName(name string) string {
	return strings.ToLower(name)
}

// LampMint purchases lamps. The attached value must equal the tiered
// purchase price exactly; a valid referrer earns both parties a 10%
// referral reward, and each mint pays out a share of the collection's
// remaining ALDN reserve.
type LampMint struct {
	BaseOp
	Quantity uint64        `json:"quantity"`
	Referrer types.Address `json:"referrer,omitempty"`
}

func (op *LampMint) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Quantity == 0 || op.Quantity > LampBatchLimit {
		return errBadQuantity
	}
	return nil
}

// LampChangeName names a lamp. Token owner only; names are unique
// case-insensitively across the collection.
type LampChangeName struct {
	BaseOp
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (op *LampChangeName) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Name == "" {
		return errEmptyName
	}
	return nil
}

// LampDistributeReferral pushes the pending referral rewards of the
// owners of ids in [FromID, ToID) into their lamps' wallet
// sub-accounts. Owner only.
type LampDistributeReferral struct {
	BaseOp
	FromID uint64 `json:"fromId"`
	ToID   uint64 `json:"toId"`
}

func (op *LampDistributeReferral) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.FromID >= op.ToID {
		return errBadRange
	}
	return nil
}

// LampWithdrawFund splits the collection's free native balance (sale
// proceeds minus outstanding referral rewards) between the liquidity,
// prize and treasury funds. Owner only.
type LampWithdrawFund struct {
	BaseOp
}

func (op *LampWithdrawFund) Validate() error {
	return op.BaseOp.Validate()
}

// LampSetBaseURI sets the metadata base URI. Owner only.
type LampSetBaseURI struct {
	BaseOp
	URI string `json:"uri"`
}

func (op *LampSetBaseURI) Validate() error {
	return op.BaseOp.Validate()
}

// LampInitWallet wires the collection to its wallet module. Owner only.
type LampInitWallet struct {
	BaseOp
	Wallet types.Address `json:"wallet"`
}

func (op *LampInitWallet) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Wallet.IsZero() {
		return errZeroAddress
	}
	return nil
}

// LampAuthorizeOwnership nominates a new collection owner.
type LampAuthorizeOwnership struct {
	BaseOp
	NewOwner types.Address `json:"newOwner"`
}

func (op *LampAuthorizeOwnership) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.NewOwner.IsZero() {
		return errZeroAddress
	}
	return nil
}

// LampAssumeOwnership completes a two-step ownership transfer.
type LampAssumeOwnership struct {
	BaseOp
}

func (op *LampAssumeOwnership) Validate() error {
	return op.BaseOp.Validate()
}
