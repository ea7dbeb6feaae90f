package queryserver

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hubcycle/imbibe/internal/domain"
)

type blockByHeightRequest struct {
	Height int64 `json:"height"`
}

func (s *Server) handleBlockByHeight(w http.ResponseWriter, r *http.Request) {
	var req blockByHeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode request: %w", domain.ErrOther))
		return
	}
	if req.Height <= 0 {
		s.writeError(w, fmt.Errorf("height must be positive: %w", domain.ErrHeight))
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	block, err := s.store.FetchBlockByHeight(ctx, req.Height)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, toWireBlock(block))
}

type blockByHashRequest struct {
	Hash string `json:"hash"`
}

func (s *Server) handleBlockByBlockHash(w http.ResponseWriter, r *http.Request) {
	var req blockByHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode request: %w", domain.ErrOther))
		return
	}
	hashBz, err := hex.DecodeString(req.Hash)
	if err != nil {
		s.writeError(w, fmt.Errorf("hash must be hex: %w", domain.ErrBlockHash))
		return
	}
	hash, err := domain.NewSha256(hashBz)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	block, err := s.store.FetchBlockByBlockHash(ctx, hash)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, toWireBlock(block))
}

type txByHeightAndIdxRequest struct {
	Height int64  `json:"height"`
	Idx    uint32 `json:"tx_idx_in_block"`
}

func (s *Server) handleTxByHeightAndIdx(w http.ResponseWriter, r *http.Request) {
	var req txByHeightAndIdxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode request: %w", domain.ErrOther))
		return
	}
	if req.Height <= 0 {
		s.writeError(w, fmt.Errorf("height must be positive: %w", domain.ErrHeight))
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	tx, err := s.store.FetchTxByBlockHeightAndTxIdxInBlock(ctx, req.Height, req.Idx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, toWireTx(tx))
}

type txByHashRequest struct {
	Hash string `json:"hash"`
}

func (s *Server) handleTxByHash(w http.ResponseWriter, r *http.Request) {
	var req txByHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode request: %w", domain.ErrOther))
		return
	}
	hashBz, err := hex.DecodeString(req.Hash)
	if err != nil {
		s.writeError(w, fmt.Errorf("hash must be hex: %w", domain.ErrBlockHash))
		return
	}
	hash, err := domain.NewSha256(hashBz)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	tx, err := s.store.FetchTxByTxHash(ctx, hash)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, toWireTx(tx))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
