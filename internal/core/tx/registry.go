package tx

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// NewFromType constructs an empty operation of the given type. The
// caller is left zero; decode or assign it afterwards.
func NewFromType(t Type) (Operation, error) {
	var op Operation
	switch t {
	case TypeTokenTransfer:
		op = &TokenTransfer{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenApprove:
		op = &TokenApprove{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenTransferFrom:
		op = &TokenTransferFrom{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenDeliver:
		op = &TokenDeliver{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenDelegate:
		op = &TokenDelegate{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenSetTaxFee:
		op = &TokenSetTaxFee{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenSetLiquidityFee:
		op = &TokenSetLiquidityFee{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenSetMaxTxPercent:
		op = &TokenSetMaxTxPercent{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenExcludeFromFee, TypeTokenIncludeInFee,
		TypeTokenExcludeFromMaxTx, TypeTokenIncludeInMaxTx,
		TypeTokenExcludeFromReward, TypeTokenIncludeInReward:
		op = &TokenSetExclusion{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenSetSwapAddress:
		op = &TokenSetSwapAddress{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenSetSwapEnabled:
		op = &TokenSetSwapEnabled{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenAuthorizeOwnership:
		op = &TokenAuthorizeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeTokenAssumeOwnership:
		op = &TokenAssumeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	case TypeEmissionSet:
		op = &EmissionSet{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeEmissionSetClaimFloor:
		op = &EmissionSetClaimFloor{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeEmissionClaim:
		op = &EmissionClaim{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeEmissionAuthorizeOwnership:
		op = &EmissionAuthorizeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeEmissionAssumeOwnership:
		op = &EmissionAssumeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	case TypeLampMint:
		op = &LampMint{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampChangeName:
		op = &LampChangeName{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampDistributeReferral:
		op = &LampDistributeReferral{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampWithdrawFund:
		op = &LampWithdrawFund{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampSetBaseURI:
		op = &LampSetBaseURI{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampInitWallet:
		op = &LampInitWallet{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampAuthorizeOwnership:
		op = &LampAuthorizeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeLampAssumeOwnership:
		op = &LampAssumeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	case TypeVaultSupport:
		op = &VaultSupport{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultDepositBNB:
		op = &VaultDepositBNB{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultDepositBEP20:
		op = &VaultDepositBEP20{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultDepositERC721:
		op = &VaultDepositERC721{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultDepositERC1155:
		op = &VaultDepositERC1155{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultWithdrawBNB:
		op = &VaultWithdrawBNB{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultWithdrawBEP20:
		op = &VaultWithdrawBEP20{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultWithdrawERC721:
		op = &VaultWithdrawERC721{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultWithdrawERC1155:
		op = &VaultWithdrawERC1155{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultWithdrawAll:
		op = &VaultWithdrawAll{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultTransferBNB:
		op = &VaultTransferBNB{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultTransferBEP20:
		op = &VaultTransferBEP20{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultTransferERC721:
		op = &VaultTransferERC721{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultTransferERC1155:
		op = &VaultTransferERC1155{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultTransferAll:
		op = &VaultTransferAll{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultLock:
		op = &VaultLock{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultAuthorizeOwnership:
		op = &VaultAuthorizeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeVaultAssumeOwnership:
		op = &VaultAssumeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	case TypeSwapInitialize:
		op = &SwapInitialize{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeSwapInitializeLiquidity:
		op = &SwapInitializeLiquidity{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeSwapLiquify:
		op = &SwapLiquify{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeSwapAuthorizeOwnership:
		op = &SwapAuthorizeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeSwapAssumeOwnership:
		op = &SwapAssumeOwnership{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	case TypeAssetTransfer:
		op = &AssetTransfer{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeAssetApprove:
		op = &AssetApprove{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeAssetTransferFrom:
		op = &AssetTransferFrom{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeNFTTransfer:
		op = &NFTTransfer{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeNFTSetApprovalForAll:
		op = &NFTSetApprovalForAll{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeMultiTransfer:
		op = &MultiTransfer{BaseOp: NewBaseOp(t, types.ZeroAddress)}
	case TypeNativeTransfer:
		op = &NativeTransfer{BaseOp: NewBaseOp(t, types.ZeroAddress)}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperationType, t)
	}
	return op, nil
}

type opEnvelope struct {
	Type string `json:"type"`
}

// FromJSON decodes an operation from its JSON form. The payload carries
// a "type" field naming the operation; the remaining fields decode into
// the concrete struct.
func FromJSON(data []byte) (Operation, error) {
	var env opEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding operation envelope: %w", err)
	}
	t, ok := TypeFromName(env.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperationType, env.Type)
	}
	op, err := NewFromType(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, op); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", env.Type, err)
	}
	return op, nil
}

// ToJSON encodes an operation with its type name in the envelope.
func ToJSON(op Operation) ([]byte, error) {
	fields, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, err
	}
	name, err := json.Marshal(op.OpType().String())
	if err != nil {
		return nil, err
	}
	m["type"] = name
	return json.Marshal(m)
}

// SupportedTypes returns the canonical names of every operation type,
// sorted.
func SupportedTypes() []string {
	names := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
