package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hubcycle/imbibe/internal/normalizer"
	"github.com/hubcycle/imbibe/internal/rpcclient"
	"github.com/hubcycle/imbibe/internal/store"
)

// Coordinator starts the live indexer, waits for its first-height signal,
// then launches a backfill bounded above by first_live_height - 1.
type Coordinator struct {
	store      store.Store
	client     *rpcclient.Client
	normalizer *normalizer.Normalizer
	chainID    string
	batch      int
	workers    int
	log        *slog.Logger
}

func NewCoordinator(s store.Store, c *rpcclient.Client, n *normalizer.Normalizer, chainID string, batch, workers int, log *slog.Logger) *Coordinator {
	return &Coordinator{store: s, client: c, normalizer: n, chainID: chainID, batch: batch, workers: workers, log: log}
}

// Run blocks until the live subscription ends or either indexer fails
// fatally.
func (co *Coordinator) Run(ctx context.Context) error {
	firstSeen := make(chan int64, 1)
	live := NewLive(co.store, co.client, co.normalizer, co.chainID, firstSeen, co.log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return live.Run(gctx)
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case height := <-firstSeen:
			hi := height - 1
			if hi <= 1 {
				co.log.Info("no backfill range below first live height", slog.Int64("first_seen", height))
				return nil
			}
			backfill, err := NewBackfill(co.store, co.client, co.normalizer, co.chainID, co.batch, co.workers, 1, hi, co.log)
			if err != nil {
				return fmt.Errorf("construct backfill: %w", err)
			}
			return backfill.Run(gctx)
		}
	})

	return g.Wait()
}
