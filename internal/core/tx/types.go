package tx

// Type identifies an operation type.
type Type int

const (
	TypeUnknown Type = iota

	// ALDN reflected governance token.
	TypeTokenTransfer
	TypeTokenApprove
	TypeTokenTransferFrom
	TypeTokenDeliver
	TypeTokenDelegate
	TypeTokenSetTaxFee
	TypeTokenSetLiquidityFee
	TypeTokenSetMaxTxPercent
	TypeTokenExcludeFromFee
	TypeTokenIncludeInFee
	TypeTokenExcludeFromMaxTx
	TypeTokenIncludeInMaxTx
	TypeTokenExcludeFromReward
	TypeTokenIncludeInReward
	TypeTokenSetSwapAddress
	TypeTokenSetSwapEnabled
	TypeTokenAuthorizeOwnership
	TypeTokenAssumeOwnership

	// GNI emission token.
	TypeEmissionSet
	TypeEmissionSetClaimFloor
	TypeEmissionClaim
	TypeEmissionAuthorizeOwnership
	TypeEmissionAssumeOwnership

	// MagicLamps collection.
	TypeLampMint
	TypeLampChangeName
	TypeLampDistributeReferral
	TypeLampWithdrawFund
	TypeLampSetBaseURI
	TypeLampInitWallet
	TypeLampAuthorizeOwnership
	TypeLampAssumeOwnership

	// MagicLampWallet vault.
	TypeVaultSupport
	TypeVaultDepositBNB
	TypeVaultDepositBEP20
	TypeVaultDepositERC721
	TypeVaultDepositERC1155
	TypeVaultWithdrawBNB
	TypeVaultWithdrawBEP20
	TypeVaultWithdrawERC721
	TypeVaultWithdrawERC1155
	TypeVaultWithdrawAll
	TypeVaultTransferBNB
	TypeVaultTransferBEP20
	TypeVaultTransferERC721
	TypeVaultTransferERC1155
	TypeVaultTransferAll
	TypeVaultLock
	TypeVaultAuthorizeOwnership
	TypeVaultAssumeOwnership

	// SwapAndLiquify.
	TypeSwapInitialize
	TypeSwapInitializeLiquidity
	TypeSwapLiquify
	TypeSwapAuthorizeOwnership
	TypeSwapAssumeOwnership

	// Generic asset registries.
	TypeAssetTransfer
	TypeAssetApprove
	TypeAssetTransferFrom
	TypeNFTTransfer
	TypeNFTSetApprovalForAll
	TypeMultiTransfer
	TypeNativeTransfer
)

var typeNames = map[Type]string{
	TypeTokenTransfer:           "TokenTransfer",
	TypeTokenApprove:            "TokenApprove",
	TypeTokenTransferFrom:       "TokenTransferFrom",
	TypeTokenDeliver:            "TokenDeliver",
	TypeTokenDelegate:           "TokenDelegate",
	TypeTokenSetTaxFee:          "TokenSetTaxFee",
	TypeTokenSetLiquidityFee:    "TokenSetLiquidityFee",
	TypeTokenSetMaxTxPercent:    "TokenSetMaxTxPercent",
	TypeTokenExcludeFromFee:     "TokenExcludeFromFee",
	TypeTokenIncludeInFee:       "TokenIncludeInFee",
	TypeTokenExcludeFromMaxTx:   "TokenExcludeFromMaxTx",
	TypeTokenIncludeInMaxTx:     "TokenIncludeInMaxTx",
	TypeTokenExcludeFromReward:  "TokenExcludeFromReward",
	TypeTokenIncludeInReward:    "TokenIncludeInReward",
	TypeTokenSetSwapAddress:     "TokenSetSwapAddress",
	TypeTokenSetSwapEnabled:     "TokenSetSwapEnabled",
	TypeTokenAuthorizeOwnership: "TokenAuthorizeOwnership",
	TypeTokenAssumeOwnership:    "TokenAssumeOwnership",

	TypeEmissionSet:                "EmissionSet",
	TypeEmissionSetClaimFloor:      "EmissionSetClaimFloor",
	TypeEmissionClaim:              "EmissionClaim",
	TypeEmissionAuthorizeOwnership: "EmissionAuthorizeOwnership",
	TypeEmissionAssumeOwnership:    "EmissionAssumeOwnership",

	TypeLampMint:               "LampMint",
	TypeLampChangeName:         "LampChangeName",
	TypeLampDistributeReferral: "LampDistributeReferral",
	TypeLampWithdrawFund:       "LampWithdrawFund",
	TypeLampSetBaseURI:         "LampSetBaseURI",
	TypeLampInitWallet:         "LampInitWallet",
	TypeLampAuthorizeOwnership: "LampAuthorizeOwnership",
	TypeLampAssumeOwnership:    "LampAssumeOwnership",

	TypeVaultSupport:            "VaultSupport",
	TypeVaultDepositBNB:         "VaultDepositBNB",
	TypeVaultDepositBEP20:       "VaultDepositBEP20",
	TypeVaultDepositERC721:      "VaultDepositERC721",
	TypeVaultDepositERC1155:     "VaultDepositERC1155",
	TypeVaultWithdrawBNB:        "VaultWithdrawBNB",
	TypeVaultWithdrawBEP20:      "VaultWithdrawBEP20",
	TypeVaultWithdrawERC721:     "VaultWithdrawERC721",
	TypeVaultWithdrawERC1155:    "VaultWithdrawERC1155",
	TypeVaultWithdrawAll:        "VaultWithdrawAll",
	TypeVaultTransferBNB:        "VaultTransferBNB",
	TypeVaultTransferBEP20:      "VaultTransferBEP20",
	TypeVaultTransferERC721:     "VaultTransferERC721",
	TypeVaultTransferERC1155:    "VaultTransferERC1155",
	TypeVaultTransferAll:        "VaultTransferAll",
	TypeVaultLock:               "VaultLock",
	TypeVaultAuthorizeOwnership: "VaultAuthorizeOwnership",
	TypeVaultAssumeOwnership:    "VaultAssumeOwnership",

	TypeSwapInitialize:          "SwapInitialize",
	TypeSwapInitializeLiquidity: "SwapInitializeLiquidity",
	TypeSwapLiquify:             "SwapLiquify",
	TypeSwapAuthorizeOwnership:  "SwapAuthorizeOwnership",
	TypeSwapAssumeOwnership:     "SwapAssumeOwnership",

	TypeAssetTransfer:        "AssetTransfer",
	TypeAssetApprove:         "AssetApprove",
	TypeAssetTransferFrom:    "AssetTransferFrom",
	TypeNFTTransfer:          "NFTTransfer",
	TypeNFTSetApprovalForAll: "NFTSetApprovalForAll",
	TypeMultiTransfer:        "MultiTransfer",
	TypeNativeTransfer:       "NativeTransfer",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the canonical operation type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// TypeFromName resolves a canonical name back to its Type.
func TypeFromName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}
