// Package queryserver exposes the four point-lookup query methods over
// net/http/JSON.
package queryserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/store"
)

// Server wraps a Store with per-request deadlines and a generic wire error
// shape that never leaks internal error types.
type Server struct {
	store   store.Store
	log     *slog.Logger
	timeout time.Duration
	mux     *http.ServeMux
}

func New(s store.Store, log *slog.Logger, timeout time.Duration) *Server {
	srv := &Server{store: s, log: log, timeout: timeout, mux: http.NewServeMux()}
	srv.mux.HandleFunc("/v1/block_by_height", srv.handleBlockByHeight)
	srv.mux.HandleFunc("/v1/block_by_block_hash", srv.handleBlockByBlockHash)
	srv.mux.HandleFunc("/v1/tx_by_block_height_and_tx_idx_in_block", srv.handleTxByHeightAndIdx)
	srv.mux.HandleFunc("/v1/tx_by_tx_hash", srv.handleTxByHash)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type errWrapper struct {
	Msg string `json:"msg"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrAddress), errors.Is(err, domain.ErrBech32Address),
		errors.Is(err, domain.ErrHeight), errors.Is(err, domain.ErrBlockHash), errors.Is(err, domain.ErrOther):
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errWrapper{Msg: err.Error()})
}

// withDeadline derives a context bounded by the server's per-request
// timeout, which the handlers pass to the store call. It does not select on
// the deadline or produce ErrTimeout itself: on expiry the handler reports
// whatever error the store call returns.
func (s *Server) withDeadline(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}
