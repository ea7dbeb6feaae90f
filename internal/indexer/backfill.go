package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/normalizer"
	"github.com/hubcycle/imbibe/internal/rpcclient"
	"github.com/hubcycle/imbibe/internal/store"
)

// Backfill streams missing heights in a closed range, fetches, normalizes,
// chunks and persists them with bounded worker concurrency.
type Backfill struct {
	store      store.Store
	client     *rpcclient.Client
	normalizer *normalizer.Normalizer
	chainID    string
	batch      int
	workers    int
	lo, hi     int64
	log        *slog.Logger
}

// NewBackfill validates the construction invariants at builder time: batch
// and workers positive, lo < hi strictly.
func NewBackfill(s store.Store, c *rpcclient.Client, n *normalizer.Normalizer, chainID string, batch, workers int, lo, hi int64, log *slog.Logger) (*Backfill, error) {
	if batch <= 0 {
		return nil, fmt.Errorf("batch must be positive: %w", domain.ErrOther)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("workers must be positive: %w", domain.ErrOther)
	}
	if lo >= hi {
		return nil, fmt.Errorf("hi must be strictly greater than lo: %w", domain.ErrOther)
	}
	return &Backfill{store: s, client: c, normalizer: n, chainID: chainID, batch: batch, workers: workers, lo: lo, hi: hi, log: log}, nil
}

type blockTxsPair struct {
	block domain.Block
	txs   []domain.Transaction
}

// Run drives the gap source → fetch → normalize → chunk → persist
// pipeline. Completes when the missing-height stream is drained and every
// in-flight persist task finishes; any stage error cancels the rest.
func (b *Backfill) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	heights, err := b.store.FetchMissingBlockHeights(ctx, b.lo, b.hi)
	if err != nil {
		return fmt.Errorf("fetch missing heights: %w", err)
	}

	normalized := make(chan blockTxsPair)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(normalized)
		for ho := range heights {
			if ho.Err != nil {
				return ho.Err
			}
			pair, err := b.fetchAndNormalize(gctx, ho.Height)
			if err != nil {
				return fmt.Errorf("height %d: %w", ho.Height, err)
			}
			select {
			case normalized <- pair:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	chunks := make(chan []blockTxsPair)
	g.Go(func() error {
		defer close(chunks)
		buf := make([]blockTxsPair, 0, b.batch)
		for pair := range normalized {
			buf = append(buf, pair)
			if len(buf) == b.batch {
				select {
				case chunks <- buf:
				case <-gctx.Done():
					return gctx.Err()
				}
				buf = make([]blockTxsPair, 0, b.batch)
			}
		}
		if len(buf) > 0 {
			select {
			case chunks <- buf:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// persistGroup's own context would only stop other persist workers on
	// failure; cancel is called directly so a persist failure also stops
	// the fetch/normalize/chunk stage under g instead of letting it drain
	// the whole range first.
	persistGroup, persistCtx := errgroup.WithContext(gctx)
	persistGroup.SetLimit(b.workers)
	for chunk := range chunks {
		chunk := chunk
		persistGroup.Go(func() error {
			if err := b.persistChunk(persistCtx, chunk); err != nil {
				cancel()
				return err
			}
			return nil
		})
	}
	if err := persistGroup.Wait(); err != nil {
		return fmt.Errorf("persist chunk: %w", err)
	}

	return g.Wait()
}

func (b *Backfill) fetchAndNormalize(ctx context.Context, height int64) (blockTxsPair, error) {
	blk, blockIDHash, err := b.client.Block(ctx, height)
	if err != nil {
		return blockTxsPair{}, err
	}
	results, err := b.client.BlockResults(ctx, height)
	if err != nil {
		return blockTxsPair{}, err
	}

	hin := normalizer.HeaderInput{
		ChainID:            b.chainID,
		Height:             blk.Height,
		TimeUnixNano:       blk.Time.UnixNano(),
		ValidatorsHash:     blk.ValidatorsHash,
		NextValidatorsHash: blk.NextValidatorsHash,
		ConsensusHash:      blk.ConsensusHash,
		AppHash:            blk.AppHash,
		Proposer:           blk.ProposerAddress,
		LastCommitHash:     blk.LastCommitHash,
		DataHash:           blk.DataHash,
		LastResultsHash:    blk.LastResultsHash,
		EvidenceHash:       blk.EvidenceHash,
	}

	raw := make([][]byte, 0, len(blk.Txs))
	for _, t := range blk.Txs {
		raw = append(raw, t)
	}
	execResults := make([]normalizer.ExecResult, 0, len(results))
	for _, r := range results {
		execResults = append(execResults, normalizer.ExecResult{
			Code:      r.Code,
			Codespace: r.Codespace,
			GasWanted: r.GasWanted,
			GasUsed:   r.GasUsed,
			Data:      r.Data,
		})
	}

	block, txs, err := b.normalizer.ProcessBlock(hin, blockIDHash, raw, execResults)
	if err != nil {
		return blockTxsPair{}, err
	}
	return blockTxsPair{block: block, txs: txs}, nil
}

func (b *Backfill) persistChunk(ctx context.Context, chunk []blockTxsPair) error {
	pairs := make([]store.BlockWithTxs, 0, len(chunk))
	for _, p := range chunk {
		pairs = append(pairs, store.BlockWithTxs{Block: p.block, Txs: p.txs})
	}
	if err := b.store.SaveBlocksWithTxs(ctx, pairs); err != nil {
		return fmt.Errorf("save %d blocks: %w", len(pairs), err)
	}
	b.log.Info("persisted backfill chunk", slog.Int("count", len(pairs)))
	return nil
}
