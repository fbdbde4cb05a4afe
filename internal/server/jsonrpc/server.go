package jsonrpc

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Server serves JSON-RPC 2.0 over HTTP POST.
type Server struct {
	handler *Handler
}

// NewServer creates a server around a handler.
func NewServer(handler *Handler) *Server {
	return &Server{handler: handler}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, Response{
			JSONRPC: "2.0",
			Error:   &RPCError{Code: CodeParseError, Message: "parse error"},
		})
		return
	}
	if req.Method == "" {
		writeResponse(w, Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &RPCError{Code: CodeInvalidRequest, Message: "missing method"},
		})
		return
	}

	result, err := s.handler.Handle(req.Method, req.Params)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = &RPCError{Code: CodeInternalError, Message: err.Error()}
		}
		writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr})
		return
	}
	writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Error implements the error interface so handlers can return RPCError
// values directly.
func (e *RPCError) Error() string {
	return e.Message
}
