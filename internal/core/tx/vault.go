package tx

import (
	"github.com/holiman/uint256"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// WalletRef identifies a vault sub-account by its keying NFT.
type WalletRef struct {
	Collection types.Address `json:"collection"`
	ID         uint64        `json:"id"`
}

func (w WalletRef) validate() error {
	if w.Collection.IsZero() {
		return errZeroAddress
	}
	return nil
}

// VaultSupport admits an NFT collection so its token ids can key
// sub-accounts. Owner only.
type VaultSupport struct {
	BaseOp
	Collection types.Address `json:"collection"`
}

func (op *VaultSupport) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.Collection.IsZero() {
		return errZeroAddress
	}
	return nil
}

// VaultDepositBNB deposits the attached native value into a wallet.
// Anyone may deposit into any wallet.
type VaultDepositBNB struct {
	BaseOp
	Wallet WalletRef `json:"wallet"`
}

func (op *VaultDepositBNB) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Value == nil || op.Value.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultDepositBEP20 deposits fungible tokens into a wallet.
type VaultDepositBEP20 struct {
	BaseOp
	Wallet WalletRef     `json:"wallet"`
	Token  types.Address `json:"token"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *VaultDepositBEP20) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultDepositERC721 deposits non-fungible tokens into a wallet. Tokens
// of the wallet's own keying collection are rejected.
type VaultDepositERC721 struct {
	BaseOp
	Wallet   WalletRef     `json:"wallet"`
	Token    types.Address `json:"token"`
	TokenIDs []uint64      `json:"tokenIds"`
}

func (op *VaultDepositERC721) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if len(op.TokenIDs) == 0 {
		return errBadRange
	}
	return nil
}

// VaultDepositERC1155 deposits multi-token units into a wallet.
type VaultDepositERC1155 struct {
	BaseOp
	Wallet  WalletRef     `json:"wallet"`
	Token   types.Address `json:"token"`
	TokenID uint64        `json:"tokenId"`
	Amount  *uint256.Int  `json:"amount"`
}

func (op *VaultDepositERC1155) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultWithdrawBNB withdraws native currency to the wallet owner.
type VaultWithdrawBNB struct {
	BaseOp
	Wallet WalletRef    `json:"wallet"`
	Amount *uint256.Int `json:"amount"`
}

func (op *VaultWithdrawBNB) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultWithdrawBEP20 withdraws fungible tokens to the wallet owner.
type VaultWithdrawBEP20 struct {
	BaseOp
	Wallet WalletRef     `json:"wallet"`
	Token  types.Address `json:"token"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *VaultWithdrawBEP20) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultWithdrawERC721 withdraws non-fungible tokens to the wallet owner.
type VaultWithdrawERC721 struct {
	BaseOp
	Wallet   WalletRef     `json:"wallet"`
	Token    types.Address `json:"token"`
	TokenIDs []uint64      `json:"tokenIds"`
}

func (op *VaultWithdrawERC721) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if len(op.TokenIDs) == 0 {
		return errBadRange
	}
	return nil
}

// VaultWithdrawERC1155 withdraws multi-token units to the wallet owner.
type VaultWithdrawERC1155 struct {
	BaseOp
	Wallet  WalletRef     `json:"wallet"`
	Token   types.Address `json:"token"`
	TokenID uint64        `json:"tokenId"`
	Amount  *uint256.Int  `json:"amount"`
}

func (op *VaultWithdrawERC1155) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultWithdrawAll drains every asset class of a wallet to its owner in
// one operation.
type VaultWithdrawAll struct {
	BaseOp
	Wallet WalletRef `json:"wallet"`
}

func (op *VaultWithdrawAll) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	return op.Wallet.validate()
}

// VaultTransferBNB moves native currency between wallets.
type VaultTransferBNB struct {
	BaseOp
	Wallet WalletRef    `json:"wallet"`
	To     WalletRef    `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

func (op *VaultTransferBNB) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if err := op.To.validate(); err != nil {
		return err
	}
	if op.Wallet == op.To {
		return errSelfTarget
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultTransferBEP20 moves fungible tokens between wallets.
type VaultTransferBEP20 struct {
	BaseOp
	Wallet WalletRef     `json:"wallet"`
	To     WalletRef     `json:"to"`
	Token  types.Address `json:"token"`
	Amount *uint256.Int  `json:"amount"`
}

func (op *VaultTransferBEP20) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if err := op.To.validate(); err != nil {
		return err
	}
	if op.Wallet == op.To {
		return errSelfTarget
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultTransferERC721 moves non-fungible tokens between wallets.
type VaultTransferERC721 struct {
	BaseOp
	Wallet   WalletRef     `json:"wallet"`
	To       WalletRef     `json:"to"`
	Token    types.Address `json:"token"`
	TokenIDs []uint64      `json:"tokenIds"`
}

func (op *VaultTransferERC721) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if err := op.To.validate(); err != nil {
		return err
	}
	if op.Wallet == op.To {
		return errSelfTarget
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if len(op.TokenIDs) == 0 {
		return errBadRange
	}
	return nil
}

// VaultTransferERC1155 moves multi-token units between wallets.
type VaultTransferERC1155 struct {
	BaseOp
	Wallet  WalletRef     `json:"wallet"`
	To      WalletRef     `json:"to"`
	Token   types.Address `json:"token"`
	TokenID uint64        `json:"tokenId"`
	Amount  *uint256.Int  `json:"amount"`
}

func (op *VaultTransferERC1155) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if err := op.To.validate(); err != nil {
		return err
	}
	if op.Wallet == op.To {
		return errSelfTarget
	}
	if op.Token.IsZero() {
		return errZeroAddress
	}
	if op.Amount == nil || op.Amount.IsZero() {
		return errZeroAmount
	}
	return nil
}

// VaultTransferAll moves every asset class of a wallet into another
// wallet in one operation.
type VaultTransferAll struct {
	BaseOp
	Wallet WalletRef `json:"wallet"`
	To     WalletRef `json:"to"`
}

func (op *VaultTransferAll) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if err := op.To.validate(); err != nil {
		return err
	}
	if op.Wallet == op.To {
		return errSelfTarget
	}
	return nil
}

// VaultLock freezes a wallet's withdrawals and transfers for a
// duration. Repeated locks only ever extend the deadline.
type VaultLock struct {
	BaseOp
	Wallet   WalletRef `json:"wallet"`
	Duration uint64    `json:"duration"`
}

func (op *VaultLock) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if err := op.Wallet.validate(); err != nil {
		return err
	}
	if op.Duration == 0 {
		return errBadRange
	}
	return nil
}

// VaultAuthorizeOwnership nominates a new vault module owner.
type VaultAuthorizeOwnership struct {
	BaseOp
	NewOwner types.Address `json:"newOwner"`
}

func (op *VaultAuthorizeOwnership) Validate() error {
	if err := op.BaseOp.Validate(); err != nil {
		return err
	}
	if op.NewOwner.IsZero() {
		return errZeroAddress
	}
	return nil
}

// VaultAssumeOwnership completes a two-step ownership transfer.
type VaultAssumeOwnership struct {
	BaseOp
}

func (op *VaultAssumeOwnership) Validate() error {
	return op.BaseOp.Validate()
}
