// Package store is the read/write façade over the relational schema: it
// owns connection pooling, the multi-table insert transaction, the gap
// query, and point lookups.
package store

import (
	"context"

	"github.com/hubcycle/imbibe/internal/domain"
)

// Store is the persistence façade the indexers and query server depend on.
type Store interface {
	SaveBlockWithTxs(ctx context.Context, block domain.Block, txs []domain.Transaction) error
	SaveBlocksWithTxs(ctx context.Context, pairs []BlockWithTxs) error

	FetchMissingBlockHeights(ctx context.Context, lo, hi int64) (<-chan HeightOrError, error)

	FetchBlockByHeight(ctx context.Context, height int64) (domain.Block, error)
	FetchBlockByBlockHash(ctx context.Context, hash domain.Sha256) (domain.Block, error)
	FetchTxByBlockHeightAndTxIdxInBlock(ctx context.Context, height int64, idx uint32) (domain.Transaction, error)
	FetchTxByTxHash(ctx context.Context, hash domain.Sha256) (domain.Transaction, error)

	Close()
}

// BlockWithTxs pairs a block with its transactions for the batch write
// path.
type BlockWithTxs struct {
	Block domain.Block
	Txs   []domain.Transaction
}

// HeightOrError is one element of the missing-height stream; Err is set
// only on a terminal query failure.
type HeightOrError struct {
	Height int64
	Err    error
}
