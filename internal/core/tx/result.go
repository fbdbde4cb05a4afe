package tx

import "fmt"

// Result is an operation result code.
type Result int

// Result codes are organized by category: success (0), validation
// (100-199), authorization (200-299), funds and locks (300-399),
// business rules (400-499), invariants and internal faults (500-599).
const (
	Success Result = 0

	// Validation (100-199): the operation is malformed on its face.
	ErrMalformed   Result = 100
	ErrBadAmount   Result = 101
	ErrBadAddress  Result = 102
	ErrBadName     Result = 103
	ErrBadRange    Result = 104
	ErrBadQuantity Result = 105
	ErrSelfDeposit Result = 106
	ErrSameWallet  Result = 107
	ErrBadPercent  Result = 108
	ErrRedundant   Result = 109

	// Authorization (200-299): the caller may not perform the operation.
	ErrNotOwner        Result = 200
	ErrNotPendingOwner Result = 201
	ErrNotTokenHolder  Result = 202
	ErrNotWalletOwner  Result = 203
	ErrRewardExcluded  Result = 204
	ErrNotApproved     Result = 205

	// Funds and locks (300-399): state does not cover the movement.
	ErrInsufficientFunds     Result = 300
	ErrInsufficientAllowance Result = 301
	ErrInsufficientPayment   Result = 302
	ErrWalletLocked          Result = 303
	ErrNotFound              Result = 304

	// Business rules (400-499): a module precondition does not hold.
	ErrMaxTxExceeded      Result = 400
	ErrIncorrectPayment   Result = 401
	ErrSaleNotStarted     Result = 402
	ErrSoldOut            Result = 403
	ErrNameTaken          Result = 404
	ErrAlreadyExcluded    Result = 405
	ErrNotExcluded        Result = 406
	ErrNotSupported       Result = 407
	ErrAlreadySupported   Result = 408
	ErrWalletNotSet       Result = 409
	ErrBlockNotMined      Result = 410
	ErrNotInitialized     Result = 411
	ErrAlreadyInitialized Result = 412
	ErrBatchLimit         Result = 413
	ErrBackendFailed      Result = 414

	// Invariants and internal faults (500-599). These indicate a bug or
	// corrupted state, never a caller mistake.
	ErrRateFloor  Result = 500
	ErrInternal   Result = 501
	ErrReentrancy Result = 502
)

// String returns the canonical name of the result code.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case ErrMalformed:
		return "errMALFORMED"
	case ErrBadAmount:
		return "errBAD_AMOUNT"
	case ErrBadAddress:
		return "errBAD_ADDRESS"
	case ErrBadName:
		return "errBAD_NAME"
	case ErrBadRange:
		return "errBAD_RANGE"
	case ErrBadQuantity:
		return "errBAD_QUANTITY"
	case ErrSelfDeposit:
		return "errSELF_DEPOSIT"
	case ErrSameWallet:
		return "errSAME_WALLET"
	case ErrBadPercent:
		return "errBAD_PERCENT"
	case ErrRedundant:
		return "errREDUNDANT"
	case ErrNotOwner:
		return "errNOT_OWNER"
	case ErrNotPendingOwner:
		return "errNOT_PENDING_OWNER"
	case ErrNotTokenHolder:
		return "errNOT_TOKEN_HOLDER"
	case ErrNotWalletOwner:
		return "errNOT_WALLET_OWNER"
	case ErrRewardExcluded:
		return "errREWARD_EXCLUDED"
	case ErrNotApproved:
		return "errNOT_APPROVED"
	case ErrInsufficientFunds:
		return "errINSUFFICIENT_FUNDS"
	case ErrInsufficientAllowance:
		return "errINSUFFICIENT_ALLOWANCE"
	case ErrInsufficientPayment:
		return "errINSUFFICIENT_PAYMENT"
	case ErrWalletLocked:
		return "errWALLET_LOCKED"
	case ErrNotFound:
		return "errNOT_FOUND"
	case ErrMaxTxExceeded:
		return "errMAX_TX_EXCEEDED"
	case ErrIncorrectPayment:
		return "errINCORRECT_PAYMENT"
	case ErrSaleNotStarted:
		return "errSALE_NOT_STARTED"
	case ErrSoldOut:
		return "errSOLD_OUT"
	case ErrNameTaken:
		return "errNAME_TAKEN"
	case ErrAlreadyExcluded:
		return "errALREADY_EXCLUDED"
	case ErrNotExcluded:
		return "errNOT_EXCLUDED"
	case ErrNotSupported:
		return "errNOT_SUPPORTED"
	case ErrAlreadySupported:
		return "errALREADY_SUPPORTED"
	case ErrWalletNotSet:
		return "errWALLET_NOT_SET"
	case ErrBlockNotMined:
		return "errBLOCK_NOT_MINED"
	case ErrNotInitialized:
		return "errNOT_INITIALIZED"
	case ErrAlreadyInitialized:
		return "errALREADY_INITIALIZED"
	case ErrBatchLimit:
		return "errBATCH_LIMIT"
	case ErrBackendFailed:
		return "errBACKEND_FAILED"
	case ErrRateFloor:
		return "errRATE_FLOOR"
	case ErrInternal:
		return "errINTERNAL"
	case ErrReentrancy:
		return "errREENTRANCY"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return r == Success
}

// IsValidation returns true for malformed-operation codes.
func (r Result) IsValidation() bool {
	return r >= 100 && r < 200
}

// IsAuthorization returns true for permission-denied codes.
func (r Result) IsAuthorization() bool {
	return r >= 200 && r < 300
}

// IsFunds returns true for insufficient-funds and lock codes.
func (r Result) IsFunds() bool {
	return r >= 300 && r < 400
}

// IsBusinessRule returns true for module-precondition codes.
func (r Result) IsBusinessRule() bool {
	return r >= 400 && r < 500
}

// IsInternal returns true for invariant and internal-fault codes.
func (r Result) IsInternal() bool {
	return r >= 500 && r < 600
}

// Message returns a human-readable message for the result.
func (r Result) Message() string {
	switch r {
	case Success:
		return "The operation was applied."
	case ErrBadAmount:
		return "Amounts must be positive."
	case ErrBadName:
		return "Token names are 1-25 alphanumeric characters with single interior spaces."
	case ErrBadQuantity:
		return "Mint quantity must be between 1 and the batch limit."
	case ErrSelfDeposit:
		return "A wallet cannot hold tokens of its own keying collection."
	case ErrSameWallet:
		return "Source and destination wallets are the same."
	case ErrNotOwner:
		return "Caller is not the module owner."
	case ErrNotPendingOwner:
		return "Caller is not the pending owner."
	case ErrNotTokenHolder:
		return "Caller does not own the token."
	case ErrNotWalletOwner:
		return "Caller does not own the keying token of the wallet."
	case ErrRewardExcluded:
		return "Reward-excluded accounts cannot deliver."
	case ErrInsufficientFunds:
		return "Balance does not cover the amount."
	case ErrInsufficientAllowance:
		return "Allowance does not cover the amount."
	case ErrWalletLocked:
		return "The wallet is locked."
	case ErrMaxTxExceeded:
		return "Transfer exceeds the maximum transaction amount."
	case ErrIncorrectPayment:
		return "Attached payment does not match the purchase price."
	case ErrSaleNotStarted:
		return "The sale has not started."
	case ErrSoldOut:
		return "The collection is sold out."
	case ErrNameTaken:
		return "The name is already reserved."
	case ErrNotSupported:
		return "The collection is not supported by the wallet."
	case ErrWalletNotSet:
		return "The wallet address has not been initialised."
	case ErrBlockNotMined:
		return "The requested block has not been mined."
	case ErrRateFloor:
		return "Reflection would push the rate below one."
	case ErrReentrancy:
		return "An operation is already being applied."
	default:
		return r.String()
	}
}
