package ledger

import (
	"fmt"

	"github.com/magiclamp-finance/lampd/internal/core/amount"
	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/sle"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Genesis fixes the initial state of every module.
type Genesis struct {
	// Owner receives the full token supply and the admin role of every
	// module.
	Owner types.Address

	// Module contract addresses.
	Token      types.Address
	Emitter    types.Address
	Collection types.Address
	Vault      types.Address
	Swap       types.Address

	// Collection fund recipients.
	LiquidityFund types.Address
	PrizeFund     types.Address
	TreasuryFund  types.Address

	// SaleStart is the unix second minting opens; the reveal follows
	// three weeks later.
	SaleStart uint64

	// BaseURI is the collection's initial metadata root.
	BaseURI string
}

// Genesis parameters of the token suite.
const (
	tokenName     = "Aladdin"
	tokenSymbol   = "ALDN"
	tokenDecimals = 9

	collectionName   = "MagicLamps"
	collectionSymbol = "ML"

	// revealDelay is three weeks in seconds.
	revealDelay = 21 * 24 * 60 * 60

	taxFeePercent       = 5
	liquidityFeePercent = 5
)

// tokenSupply is the fixed real supply: one billion units at nine
// decimals.
func tokenSupply() *amount.Amount {
	return amount.MustDecimal("1000000000000000000000000")
}

// Initialize writes the genesis entries for every module. The ledger
// must be empty.
func Initialize(l *Ledger, g Genesis) error {
	// RTotal is the largest multiple of TTotal below 2^256 so the
	// initial rate divides evenly.
	tTotal := tokenSupply()
	rTotal := amount.Sub(amount.MaxUint256(), new(amount.Amount).Mod(amount.MaxUint256(), tTotal))

	var ts sle.TokenState
	ts.Name = tokenName
	ts.Symbol = tokenSymbol
	ts.Decimals = tokenDecimals
	ts.TTotal.Set(tTotal)
	ts.RTotal.Set(rTotal)
	ts.TaxFeePercent = taxFeePercent
	ts.LiquidityFeePercent = liquidityFeePercent
	// Transfers are capped at half a percent of supply until the owner
	// raises it.
	ts.MaxTxAmount.Set(amount.Div(amount.Mul(tTotal, amount.New(5)), amount.New(1000)))
	ts.Owner = g.Owner
	ts.SwapAndLiquifyAddress = g.Swap
	ts.SwapAndLiquifyEnabled = true
	ts.AddRewardExcluded(g.Token)
	if err := insert(l, keylet.TokenState(g.Token), &ts); err != nil {
		return err
	}

	// The owner starts with the whole supply in scaled units.
	var owner sle.TokenAccount
	owner.ROwned.Set(rTotal)
	owner.FeeExcluded = true
	owner.MaxTxExcluded = true
	if err := insert(l, keylet.TokenAccount(g.Token, g.Owner), &owner); err != nil {
		return err
	}

	// The token module's account carries the reward exclusion recorded
	// in the singleton above; module accounts never pay fees.
	tokenAcct := sle.TokenAccount{RewardExcluded: true, FeeExcluded: true, MaxTxExcluded: true}
	if err := insert(l, keylet.TokenAccount(g.Token, g.Token), &tokenAcct); err != nil {
		return err
	}
	for _, module := range []types.Address{g.Emitter, g.Collection, g.Vault, g.Swap} {
		acct := sle.TokenAccount{FeeExcluded: true, MaxTxExcluded: true}
		if err := insert(l, keylet.TokenAccount(g.Token, module), &acct); err != nil {
			return err
		}
	}

	es := sle.EmitterState{Owner: g.Owner}
	if err := insert(l, keylet.Emitter(g.Emitter), &es); err != nil {
		return err
	}

	var cs sle.CollectionState
	cs.Name = collectionName
	cs.Symbol = collectionSymbol
	cs.Owner = g.Owner
	cs.BaseURI = g.BaseURI
	cs.SaleStart = g.SaleStart
	cs.Reveal = g.SaleStart + revealDelay
	cs.AladdinToken = g.Token
	cs.GenieToken = g.Emitter
	cs.LiquidityFund = g.LiquidityFund
	cs.PrizeFund = g.PrizeFund
	cs.TreasuryFund = g.TreasuryFund
	if err := insert(l, keylet.Collection(g.Collection), &cs); err != nil {
		return err
	}

	vs := sle.VaultState{Owner: g.Owner}
	if err := insert(l, keylet.VaultState(g.Vault), &vs); err != nil {
		return err
	}

	ss := sle.SwapState{Owner: g.Owner}
	if err := insert(l, keylet.SwapState(g.Swap), &ss); err != nil {
		return err
	}

	return nil
}

func insert(l *Ledger, k keylet.Keylet, entry any) error {
	data, err := sle.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding genesis entry: %w", err)
	}
	if err := l.Insert(k, data); err != nil {
		return fmt.Errorf("writing genesis entry: %w", err)
	}
	return nil
}
