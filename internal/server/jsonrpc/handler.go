package jsonrpc

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/magiclamp-finance/lampd/internal/core/tx"
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Handler dispatches JSON-RPC methods against the operation engine.
// The engine applies operations strictly serially, so every method runs
// under one mutex.
type Handler struct {
	mu     sync.Mutex
	engine *tx.Engine

	methods map[string]func(json.RawMessage) (any, error)
}

// NewHandler builds the method table over an engine.
func NewHandler(engine *tx.Engine) *Handler {
	h := &Handler{engine: engine}
	h.methods = map[string]func(json.RawMessage) (any, error){
		"submit": h.handleSubmit,

		"balance_of":       h.handleBalanceOf,
		"total_supply":     h.handleTotalSupply,
		"total_fees":       h.handleTotalFees,
		"allowance":        h.handleAllowance,
		"delegates":        h.handleDelegates,
		"current_votes":    h.handleCurrentVotes,
		"prior_votes":      h.handlePriorVotes,
		"native_balance":   h.handleNativeBalance,
		"registry_balance": h.handleRegistryBalance,

		"accumulated":      h.handleAccumulated,
		"emission_balance": h.handleEmissionBalance,

		"owner_of":          h.handleOwnerOf,
		"collection_supply": h.handleCollectionSupply,
		"token_name":        h.handleTokenName,
		"is_name_reserved":  h.handleIsNameReserved,
		"estimate_purchase": h.handleEstimatePurchase,
		"pending_referral":  h.handlePendingReferral,

		"wallet_locked":  h.handleWalletLocked,
		"wallet_bnb":     h.handleWalletBNB,
		"wallet_bep20":   h.handleWalletBEP20,
		"wallet_erc721":  h.handleWalletERC721,
		"wallet_erc1155": h.handleWalletERC1155,

		"wallet_tokens_count":     h.handleWalletTokensCount,
		"wallet_bep20_tokens":     h.handleWalletBEP20Tokens,
		"wallet_erc721_tokens":    h.handleWalletERC721Tokens,
		"wallet_erc1155_balances": h.handleWalletERC1155Balances,

		"vault_supports": h.handleVaultSupports,

		"swap_info": h.handleSwapInfo,

		"supported_operations": h.handleSupportedOperations,
		"ping":                 h.handlePing,
	}
	return h
}

// Handle dispatches a method by name.
func (h *Handler) Handle(method string, params json.RawMessage) (any, error) {
	fn, ok := h.methods[method]
	if !ok {
		return nil, &RPCError{Code: CodeMethodNotFound, Message: fmt.Sprintf("method %q not found", method)}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(params)
}

// resultError converts a non-success engine result into an RPC error.
func resultError(res tx.Result) error {
	return &RPCError{
		Code:    CodeOperationFailed,
		Message: res.Message(),
		Data:    res.String(),
	}
}

func invalidParams(err error) error {
	return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
}

func decode[T any](params json.RawMessage) (T, error) {
	var p T
	if len(params) == 0 {
		return p, &RPCError{Code: CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return p, invalidParams(err)
	}
	return p, nil
}

func (h *Handler) handleSubmit(params json.RawMessage) (any, error) {
	op, err := tx.FromJSON(params)
	if err != nil {
		return nil, invalidParams(err)
	}
	// Each submission runs in its own block at wall-clock time, so
	// voting checkpoints and time-bounded modules see both advance.
	h.engine.SetEnvironment(h.engine.Config().BlockHeight+1, uint64(time.Now().Unix()))
	applied := h.engine.Apply(op)
	if !applied.Result.IsSuccess() {
		return nil, resultError(applied.Result)
	}
	return map[string]any{
		"result":  applied.Result.String(),
		"applied": applied.Applied,
		"message": applied.Message,
	}, nil
}

type accountParams struct {
	Account types.Address `json:"account"`
}

func (h *Handler) handleBalanceOf(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.BalanceOf(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleTotalSupply(json.RawMessage) (any, error) {
	supply, res := h.engine.TotalSupply()
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"total_supply": supply.Dec()}, nil
}

func (h *Handler) handleTotalFees(json.RawMessage) (any, error) {
	fees, res := h.engine.TotalFees()
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"total_fees": fees.Dec()}, nil
}

func (h *Handler) handleAllowance(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Owner   types.Address `json:"owner"`
		Spender types.Address `json:"spender"`
	}](params)
	if err != nil {
		return nil, err
	}
	allowance, res := h.engine.Allowance(p.Owner, p.Spender)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"allowance": allowance.Dec()}, nil
}

func (h *Handler) handleDelegates(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	delegate, res := h.engine.Delegates(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"delegate": delegate.String()}, nil
}

func (h *Handler) handleCurrentVotes(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	votes, res := h.engine.CurrentVotes(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"votes": votes.Dec()}, nil
}

func (h *Handler) handlePriorVotes(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Account types.Address `json:"account"`
		Block   uint64        `json:"block"`
	}](params)
	if err != nil {
		return nil, err
	}
	votes, res := h.engine.PriorVotes(p.Account, p.Block)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"votes": votes.Dec()}, nil
}

func (h *Handler) handleNativeBalance(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.NativeBalance(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleRegistryBalance(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Contract types.Address `json:"contract"`
		Account  types.Address `json:"account"`
	}](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.RegistryBalance(p.Contract, p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleAccumulated(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Collection types.Address `json:"collection"`
		ID         uint64        `json:"id"`
	}](params)
	if err != nil {
		return nil, err
	}
	accrued, res := h.engine.Accumulated(p.Collection, p.ID)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"accumulated": accrued.Dec()}, nil
}

func (h *Handler) handleEmissionBalance(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.EmissionBalance(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

type nftParams struct {
	Contract types.Address `json:"contract"`
	ID       uint64        `json:"id"`
}

func (h *Handler) handleOwnerOf(params json.RawMessage) (any, error) {
	p, err := decode[nftParams](params)
	if err != nil {
		return nil, err
	}
	owner, res := h.engine.OwnerOf(p.Contract, p.ID)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"owner": owner.String()}, nil
}

func (h *Handler) handleCollectionSupply(json.RawMessage) (any, error) {
	supply, res := h.engine.CollectionSupply()
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]uint64{"total_supply": supply}, nil
}

func (h *Handler) handleTokenName(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		ID uint64 `json:"id"`
	}](params)
	if err != nil {
		return nil, err
	}
	name, res := h.engine.TokenName(p.ID)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"name": name}, nil
}

func (h *Handler) handleIsNameReserved(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Name string `json:"name"`
	}](params)
	if err != nil {
		return nil, err
	}
	reserved, res := h.engine.IsNameReserved(p.Name)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]bool{"reserved": reserved}, nil
}

func (h *Handler) handleEstimatePurchase(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Quantity uint64 `json:"quantity"`
	}](params)
	if err != nil {
		return nil, err
	}
	price, res := h.engine.EstimatePurchase(p.Quantity)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"price": price.Dec()}, nil
}

func (h *Handler) handlePendingReferral(params json.RawMessage) (any, error) {
	p, err := decode[accountParams](params)
	if err != nil {
		return nil, err
	}
	pending, res := h.engine.PendingReferral(p.Account)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"pending": pending.Dec()}, nil
}

type walletParams struct {
	Wallet tx.WalletRef `json:"wallet"`
}

func (h *Handler) handleWalletLocked(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	locked, res := h.engine.WalletIsLocked(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	until, res := h.engine.WalletLockedUntil(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]any{"locked": locked, "until": until}, nil
}

func (h *Handler) handleWalletBNB(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.WalletBNB(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleWalletBEP20(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Wallet tx.WalletRef  `json:"wallet"`
		Token  types.Address `json:"token"`
	}](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.WalletBEP20(p.Wallet, p.Token)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleWalletERC721(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Wallet tx.WalletRef  `json:"wallet"`
		Token  types.Address `json:"token"`
	}](params)
	if err != nil {
		return nil, err
	}
	ids, res := h.engine.WalletERC721(p.Wallet, p.Token)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	if ids == nil {
		ids = []uint64{}
	}
	return map[string][]uint64{"ids": ids}, nil
}

func (h *Handler) handleWalletERC1155(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Wallet tx.WalletRef  `json:"wallet"`
		Token  types.Address `json:"token"`
		ID     uint64        `json:"id"`
	}](params)
	if err != nil {
		return nil, err
	}
	balance, res := h.engine.WalletERC1155(p.Wallet, p.Token, p.ID)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]string{"balance": balance.Dec()}, nil
}

func (h *Handler) handleWalletTokensCount(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	counts, res := h.engine.WalletTokensCount(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]uint64{
		"bnb":     counts.Native,
		"bep20":   counts.ERC20,
		"erc721":  counts.ERC721,
		"erc1155": counts.ERC1155,
	}, nil
}

func (h *Handler) handleWalletBEP20Tokens(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	holdings, res := h.engine.WalletBEP20Tokens(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	out := make([]map[string]string, 0, len(holdings))
	for i := range holdings {
		out = append(out, map[string]string{
			"token":   holdings[i].Contract.String(),
			"balance": holdings[i].Amount.Dec(),
		})
	}
	return map[string]any{"tokens": out}, nil
}

func (h *Handler) handleWalletERC721Tokens(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	holdings, res := h.engine.WalletERC721Tokens(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	out := make([]map[string]any, 0, len(holdings))
	for i := range holdings {
		out = append(out, map[string]any{
			"token": holdings[i].Contract.String(),
			"ids":   holdings[i].IDs,
		})
	}
	return map[string]any{"tokens": out}, nil
}

func (h *Handler) handleWalletERC1155Balances(params json.RawMessage) (any, error) {
	p, err := decode[walletParams](params)
	if err != nil {
		return nil, err
	}
	holdings, res := h.engine.WalletERC1155Balances(p.Wallet)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	out := make([]map[string]any, 0, len(holdings))
	for i := range holdings {
		out = append(out, map[string]any{
			"token":   holdings[i].Contract.String(),
			"id":      holdings[i].ID,
			"balance": holdings[i].Amount.Dec(),
		})
	}
	return map[string]any{"tokens": out}, nil
}

func (h *Handler) handleVaultSupports(params json.RawMessage) (any, error) {
	p, err := decode[struct {
		Collection types.Address `json:"collection"`
	}](params)
	if err != nil {
		return nil, err
	}
	supported, res := h.engine.VaultSupports(p.Collection)
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]bool{"supported": supported}, nil
}

func (h *Handler) handleSwapInfo(json.RawMessage) (any, error) {
	ss, res := h.engine.SwapInfo()
	if !res.IsSuccess() {
		return nil, resultError(res)
	}
	return map[string]any{
		"initialized": ss.Initialized,
		"token":       ss.Token.String(),
		"router":      ss.Router.String(),
		"pair_units":  ss.PairUnits.Dec(),
	}, nil
}

func (h *Handler) handleSupportedOperations(json.RawMessage) (any, error) {
	return map[string][]string{"operations": tx.SupportedTypes()}, nil
}

func (h *Handler) handlePing(json.RawMessage) (any, error) {
	return map[string]string{"status": "ok"}, nil
}
