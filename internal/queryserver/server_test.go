package queryserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/store"
)

type fakeStore struct {
	block domain.Block
	tx    domain.Transaction
	err   error
}

func (f *fakeStore) SaveBlockWithTxs(ctx context.Context, block domain.Block, txs []domain.Transaction) error {
	return nil
}
func (f *fakeStore) SaveBlocksWithTxs(ctx context.Context, pairs []store.BlockWithTxs) error {
	return nil
}
func (f *fakeStore) FetchMissingBlockHeights(ctx context.Context, lo, hi int64) (<-chan store.HeightOrError, error) {
	return nil, nil
}
func (f *fakeStore) FetchBlockByHeight(ctx context.Context, height int64) (domain.Block, error) {
	return f.block, f.err
}
func (f *fakeStore) FetchBlockByBlockHash(ctx context.Context, hash domain.Sha256) (domain.Block, error) {
	return f.block, f.err
}
func (f *fakeStore) FetchTxByBlockHeightAndTxIdxInBlock(ctx context.Context, height int64, idx uint32) (domain.Transaction, error) {
	return f.tx, f.err
}
func (f *fakeStore) FetchTxByTxHash(ctx context.Context, hash domain.Sha256) (domain.Transaction, error) {
	return f.tx, f.err
}
func (f *fakeStore) Close() {}

func testHeader(height int64) domain.Header {
	return domain.Header{ChainID: "test-chain", Height: height}
}

func TestHandleBlockByHeightSuccess(t *testing.T) {
	block, err := domain.NewBlock(testHeader(5), domain.Sha256{}, nil, 0)
	if err != nil {
		t.Fatalf("build block: %v", err)
	}
	srv := New(&fakeStore{block: block}, slog.Default(), time.Second)

	body, _ := json.Marshal(blockByHeightRequest{Height: 5})
	req := httptest.NewRequest(http.MethodPost, "/v1/block_by_height", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got wireBlock
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Header.Height != 5 {
		t.Errorf("expected height 5, got %d", got.Header.Height)
	}
}

func TestHandleBlockByHeightRejectsNonPositiveHeight(t *testing.T) {
	srv := New(&fakeStore{}, slog.Default(), time.Second)

	body, _ := json.Marshal(blockByHeightRequest{Height: 0})
	req := httptest.NewRequest(http.MethodPost, "/v1/block_by_height", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleBlockByHeightNotFoundMapsTo404(t *testing.T) {
	srv := New(&fakeStore{err: &domain.NotFoundError{Resource: "block", Key: "5"}}, slog.Default(), time.Second)

	body, _ := json.Marshal(blockByHeightRequest{Height: 5})
	req := httptest.NewRequest(http.MethodPost, "/v1/block_by_height", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var got errWrapper
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if got.Msg == "" {
		t.Error("expected non-empty error message")
	}
}

func TestHandleBlockByBlockHashRejectsNonHex(t *testing.T) {
	srv := New(&fakeStore{}, slog.Default(), time.Second)

	body, _ := json.Marshal(blockByHashRequest{Hash: "not-hex!!"})
	req := httptest.NewRequest(http.MethodPost, "/v1/block_by_block_hash", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
