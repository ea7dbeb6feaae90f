package indexer

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/rpcclient"
	"github.com/hubcycle/imbibe/internal/store"
)

type fakeSubscriber struct {
	events chan rpcclient.NewBlockEvent
}

func (f *fakeSubscriber) Subscribe(ctx context.Context) (<-chan rpcclient.NewBlockEvent, error) {
	return f.events, nil
}

type fakeStore struct {
	saved []domain.Block
}

func (f *fakeStore) SaveBlockWithTxs(ctx context.Context, block domain.Block, txs []domain.Transaction) error {
	f.saved = append(f.saved, block)
	return nil
}
func (f *fakeStore) SaveBlocksWithTxs(ctx context.Context, pairs []store.BlockWithTxs) error {
	return nil
}
func (f *fakeStore) FetchMissingBlockHeights(ctx context.Context, lo, hi int64) (<-chan store.HeightOrError, error) {
	return nil, nil
}
func (f *fakeStore) FetchBlockByHeight(ctx context.Context, height int64) (domain.Block, error) {
	return domain.Block{}, nil
}
func (f *fakeStore) FetchBlockByBlockHash(ctx context.Context, hash domain.Sha256) (domain.Block, error) {
	return domain.Block{}, nil
}
func (f *fakeStore) FetchTxByBlockHeightAndTxIdxInBlock(ctx context.Context, height int64, idx uint32) (domain.Transaction, error) {
	return domain.Transaction{}, nil
}
func (f *fakeStore) FetchTxByTxHash(ctx context.Context, hash domain.Sha256) (domain.Transaction, error) {
	return domain.Transaction{}, nil
}
func (f *fakeStore) Close() {}

func testBlock(height int64) domain.Block {
	h := domain.Header{ChainID: "test", Height: height}
	b, _ := domain.NewBlock(h, domain.Sha256{}, nil, 0)
	return b
}

func TestLiveSignalsFirstHeightExactlyOnce(t *testing.T) {
	events := make(chan rpcclient.NewBlockEvent, 3)
	events <- rpcclient.NewBlockEvent{}
	events <- rpcclient.NewBlockEvent{}
	events <- rpcclient.NewBlockEvent{}
	close(events)

	heights := []int64{7, 8, 9}
	call := 0
	fs := &fakeStore{}
	firstSeen := make(chan int64, 1)

	l := &Live{
		store:  fs,
		client: &fakeSubscriber{events: events},
		normalizeFn: func(ev rpcclient.NewBlockEvent) (domain.Block, []domain.Transaction, error) {
			b := testBlock(heights[call])
			call++
			return b, nil, nil
		},
		firstSeen: firstSeen,
		log:       slog.Default(),
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case h := <-firstSeen:
		if h != 7 {
			t.Errorf("expected first-seen height 7, got %d", h)
		}
	default:
		t.Fatal("expected first-seen signal to have been sent")
	}

	select {
	case h := <-firstSeen:
		t.Fatalf("expected exactly one first-seen signal, got a second: %d", h)
	default:
	}

	if len(fs.saved) != 3 {
		t.Fatalf("expected all 3 blocks persisted, got %d", len(fs.saved))
	}
}
