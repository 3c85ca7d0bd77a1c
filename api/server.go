// Package api exposes the ledger operations and the activity feed over an
// HTTP JSON interface. The wallet collaborator supplies the caller address
// in the X-Caller header; the core performs no authentication of its own.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetlab-xyz/go-assetledger/eventlog"
	"github.com/assetlab-xyz/go-assetledger/ledger"
)

// callerHeader carries the address the execution environment attributes to
// the invocation.
const callerHeader = "X-Caller"

// Server serves the ledger HTTP API.
type Server struct {
	registry *ledger.Registry
	token    *ledger.Token
	nft      *ledger.NFT
	feed     *eventlog.Log
	logger   zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLedger attaches the registry, token, and NFT ledgers.
func WithLedger(registry *ledger.Registry, token *ledger.Token, nft *ledger.NFT) Option {
	return func(s *Server) {
		s.registry = registry
		s.token = token
		s.nft = nft
	}
}

// WithFeed attaches the activity log backing GET /v1/activity.
func WithFeed(feed *eventlog.Log) Option {
	return func(s *Server) { s.feed = feed }
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a server with the given options.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.ServeHTTP)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

	s.route(sw, r)

	s.logger.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", sw.status).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	case path == "/v1/assets" && r.Method == http.MethodPost:
		s.handleRegister(w, r)
	case path == "/v1/assets" && r.Method == http.MethodGet:
		s.handleListAssets(w, r)
	case path == "/v1/assets/verify" && r.Method == http.MethodPost:
		s.handleVerify(w, r)
	case path == "/v1/assets/transfer" && r.Method == http.MethodPost:
		s.handleTransferOwnership(w, r)
	case strings.HasPrefix(path, "/v1/assets/") && r.Method == http.MethodGet:
		s.handleGetAsset(w, r, strings.TrimPrefix(path, "/v1/assets/"))
	case path == "/v1/tokens/mint" && r.Method == http.MethodPost:
		s.handleMintTokens(w, r)
	case path == "/v1/tokens/transfer" && r.Method == http.MethodPost:
		s.handleTransfer(w, r)
	case path == "/v1/tokens/transfer-from" && r.Method == http.MethodPost:
		s.handleTransferFrom(w, r)
	case path == "/v1/tokens/approve" && r.Method == http.MethodPost:
		s.handleApprove(w, r)
	case path == "/v1/tokens/burn" && r.Method == http.MethodPost:
		s.handleBurn(w, r)
	case path == "/v1/tokens/balance" && r.Method == http.MethodGet:
		s.handleBalance(w, r)
	case path == "/v1/tokens/supply" && r.Method == http.MethodGet:
		s.handleSupply(w, r)
	case path == "/v1/nft/mint" && r.Method == http.MethodPost:
		s.handleNFTMint(w, r)
	case path == "/v1/nft/transfer" && r.Method == http.MethodPost:
		s.handleNFTTransfer(w, r)
	case path == "/v1/nft/owner" && r.Method == http.MethodGet:
		s.handleNFTOwner(w, r)
	case path == "/v1/nft/assets" && r.Method == http.MethodGet:
		s.handleNFTAssets(w, r)
	case path == "/v1/activity" && r.Method == http.MethodGet:
		s.handleActivity(w, r)
	default:
		writeError(w, http.StatusNotFound, "unknown", "no such operation")
	}
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// caller extracts the caller address, failing the request if absent.
func caller(w http.ResponseWriter, r *http.Request) (ledger.Address, bool) {
	addr := ledger.Address(r.Header.Get(callerHeader))
	if addr.IsZero() {
		writeError(w, http.StatusBadRequest, "validation", "missing "+callerHeader+" header")
		return "", false
	}
	return addr, true
}

// decode parses a JSON request body.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "kind": kind})
}

// writeLedgerError maps an error kind to an HTTP status so the UI can render
// specific guidance.
func writeLedgerError(w http.ResponseWriter, err error) {
	kind, status := "internal", http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrValidation):
		kind, status = "validation", http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		kind, status = "not_found", http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		kind, status = "unauthorized", http.StatusForbidden
	case errors.Is(err, ledger.ErrPrecondition):
		kind, status = "precondition", http.StatusConflict
	case errors.Is(err, ledger.ErrAlreadyExists):
		kind, status = "already_exists", http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientBalance):
		kind, status = "insufficient_balance", http.StatusUnprocessableEntity
	}
	writeError(w, status, kind, err.Error())
}
