package jsonrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magiclamp-finance/lampd/internal/core/amm"
	"github.com/magiclamp-finance/lampd/internal/core/tx"
	"github.com/magiclamp-finance/lampd/internal/core/types"
	"github.com/magiclamp-finance/lampd/internal/ledger"
	"github.com/magiclamp-finance/lampd/internal/storage/statestore"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[19] = b
	return a
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	led, err := ledger.New(statestore.NewMemoryBackend(), 0)
	require.NoError(t, err)

	g := ledger.Genesis{
		Owner:         testAddr(0x01),
		Token:         testAddr(0xa1),
		Emitter:       testAddr(0xa2),
		Collection:    testAddr(0xa3),
		Vault:         testAddr(0xa4),
		Swap:          testAddr(0xa5),
		LiquidityFund: testAddr(0xf1),
		PrizeFund:     testAddr(0xf2),
		TreasuryFund:  testAddr(0xf3),
		SaleStart:     1623751121,
		BaseURI:       "https://lamps.test/meta/",
	}
	require.NoError(t, ledger.Initialize(led, g))

	engine := tx.NewEngine(led, tx.EngineConfig{
		BlockHeight: 1,
		Timestamp:   g.SaleStart,
		Token:       g.Token,
		Emitter:     g.Emitter,
		Collection:  g.Collection,
		Vault:       g.Vault,
		Swap:        g.Swap,
		Backend:     amm.NewConstantProduct(),
	})
	return NewHandler(engine)
}

func TestHandlePing(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle("ping", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "ok"}, result)
}

func TestHandleUnknownMethod(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Handle("teleport", nil)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeMethodNotFound, rpcErr.Code)
}

func TestHandleSupportedOperations(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle("supported_operations", nil)
	require.NoError(t, err)

	ops := result.(map[string][]string)["operations"]
	assert.Contains(t, ops, "TokenTransfer")
	assert.Contains(t, ops, "LampMint")
	assert.Contains(t, ops, "SwapLiquify")
}

func TestHandleTotalSupply(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle("total_supply", nil)
	require.NoError(t, err)
	assert.Equal(t,
		map[string]string{"total_supply": "1000000000000000000000000"},
		result)
}

func TestHandleSubmitAndBalance(t *testing.T) {
	h := newTestHandler(t)

	submit := []byte(`{
		"type": "TokenTransfer",
		"caller": "0x0000000000000000000000000000000000000001",
		"to": "0x0000000000000000000000000000000000000011",
		"amount": "0x3b9aca00"
	}`)
	result, err := h.Handle("submit", submit)
	require.NoError(t, err)

	applied := result.(map[string]any)
	assert.Equal(t, "Success", applied["result"])
	assert.Equal(t, true, applied["applied"])

	// The owner is fee excluded, the full amount arrives.
	result, err = h.Handle("balance_of", []byte(`{"account": "0x0000000000000000000000000000000000000011"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"balance": "1000000000"}, result)
}

func TestHandleSubmitFailure(t *testing.T) {
	h := newTestHandler(t)

	// An unfunded caller cannot pay.
	submit := []byte(`{
		"type": "TokenTransfer",
		"caller": "0x0000000000000000000000000000000000000011",
		"to": "0x0000000000000000000000000000000000000012",
		"amount": "0x01"
	}`)
	_, err := h.Handle("submit", submit)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeOperationFailed, rpcErr.Code)
	assert.Equal(t, "errINSUFFICIENT_FUNDS", rpcErr.Data)
}

func TestHandleSubmitUnknownType(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Handle("submit", []byte(`{"type": "Teleport"}`))
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeInvalidParams, rpcErr.Code)
}

func TestHandleWalletViews(t *testing.T) {
	h := newTestHandler(t)

	params := json.RawMessage(`{"wallet": {"collection": "0x00000000000000000000000000000000000000a3", "id": 0}}`)

	result, err := h.Handle("wallet_tokens_count", params)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"bnb": 0, "bep20": 0, "erc721": 0, "erc1155": 0}, result)

	result, err = h.Handle("wallet_bep20_tokens", params)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tokens": []map[string]string{}}, result)

	result, err = h.Handle("wallet_erc721_tokens", params)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tokens": []map[string]any{}}, result)

	result, err = h.Handle("wallet_erc1155_balances", params)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tokens": []map[string]any{}}, result)
}

func TestHandleInvalidParams(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Handle("balance_of", []byte(`{"account": 7}`))
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeInvalidParams, rpcErr.Code)

	_, err = h.Handle("balance_of", nil)
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeInvalidParams, rpcErr.Code)
}

func TestServerHTTP(t *testing.T) {
	s := NewServer(newTestHandler(t))

	// Only POST is served.
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// A well-formed request round-trips with its id.
	body := `{"jsonrpc": "2.0", "method": "ping", "id": 7}`
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, float64(7), resp.ID)
	assert.Nil(t, resp.Error)

	// Unparseable payloads come back as parse errors.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope")))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParseError, resp.Error.Code)

	// A missing method is an invalid request.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"jsonrpc": "2.0", "id": 1}`)))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)
}
