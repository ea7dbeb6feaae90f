// Package indexer implements the live tail and bounded-range backfill
// indexers plus the coordinator that sequences them.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/normalizer"
	"github.com/hubcycle/imbibe/internal/rpcclient"
	"github.com/hubcycle/imbibe/internal/store"
)

// blockSubscriber is the subset of *rpcclient.Client the live indexer
// depends on, narrowed so tests can substitute a fake event source.
type blockSubscriber interface {
	Subscribe(ctx context.Context) (<-chan rpcclient.NewBlockEvent, error)
}

// Live subscribes to NewBlock events, normalizes and persists each, and
// publishes the first observed height exactly once over a capacity-1
// channel.
type Live struct {
	store       store.Store
	client      blockSubscriber
	normalizeFn func(rpcclient.NewBlockEvent) (domain.Block, []domain.Transaction, error)
	firstSeen   chan<- int64
	log         *slog.Logger
}

func NewLive(s store.Store, c *rpcclient.Client, n *normalizer.Normalizer, chainID string, firstSeen chan<- int64, log *slog.Logger) *Live {
	return &Live{
		store:       s,
		client:      c,
		normalizeFn: func(ev rpcclient.NewBlockEvent) (domain.Block, []domain.Transaction, error) { return normalizeBlockEvent(n, chainID, ev) },
		firstSeen:   firstSeen,
		log:         log,
	}
}

// Run consumes the NewBlock subscription until it ends or an error occurs.
// Any normalization or persistence error is fatal.
func (l *Live) Run(ctx context.Context) error {
	events, err := l.client.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	first := true
	for ev := range events {
		block, txs, err := l.normalizeFn(ev)
		if err != nil {
			return fmt.Errorf("normalize live block: %w", err)
		}

		if first {
			first = false
			height := block.Header.Height
			select {
			case l.firstSeen <- height:
			default:
				l.log.Warn("first-height receiver dropped", slog.Int64("height", height))
			}
		}

		if err := l.store.SaveBlockWithTxs(ctx, block, txs); err != nil {
			return fmt.Errorf("persist live block %d: %w", block.Header.Height, err)
		}
	}

	l.log.Info("indexing finished")
	return nil
}

func normalizeBlockEvent(n *normalizer.Normalizer, chainID string, ev rpcclient.NewBlockEvent) (domain.Block, []domain.Transaction, error) {
	hin := normalizer.HeaderInput{
		ChainID:            chainID,
		Height:             ev.Block.Height,
		TimeUnixNano:       ev.Block.Time.UnixNano(),
		ValidatorsHash:     ev.Block.ValidatorsHash,
		NextValidatorsHash: ev.Block.NextValidatorsHash,
		ConsensusHash:      ev.Block.ConsensusHash,
		AppHash:            ev.Block.AppHash,
		Proposer:           ev.Block.ProposerAddress,
		LastCommitHash:     ev.Block.LastCommitHash,
		DataHash:           ev.Block.DataHash,
		LastResultsHash:    ev.Block.LastResultsHash,
		EvidenceHash:       ev.Block.EvidenceHash,
	}

	raw := make([][]byte, 0, len(ev.Block.Txs))
	for _, t := range ev.Block.Txs {
		raw = append(raw, t)
	}

	results := make([]normalizer.ExecResult, 0, len(ev.ExecResults))
	for _, r := range ev.ExecResults {
		results = append(results, normalizer.ExecResult{
			Code:      r.Code,
			Codespace: r.Codespace,
			GasWanted: r.GasWanted,
			GasUsed:   r.GasUsed,
			Data:      r.Data,
		})
	}

	return n.ProcessBlock(hin, ev.BlockIDHash, raw, results)
}
