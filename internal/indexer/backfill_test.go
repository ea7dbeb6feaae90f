package indexer

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/hubcycle/imbibe/internal/domain"
)

func TestNewBackfillRejectsLoEqualHi(t *testing.T) {
	_, err := NewBackfill(nil, nil, nil, "test-chain", 10, 1, 5, 5, slog.Default())
	if !errors.Is(err, domain.ErrOther) {
		t.Fatalf("expected ErrOther for lo==hi, got %v", err)
	}
}

func TestNewBackfillRejectsLoGreaterThanHi(t *testing.T) {
	_, err := NewBackfill(nil, nil, nil, "test-chain", 10, 1, 10, 5, slog.Default())
	if !errors.Is(err, domain.ErrOther) {
		t.Fatalf("expected ErrOther for lo>hi, got %v", err)
	}
}

func TestNewBackfillRejectsNonPositiveBatch(t *testing.T) {
	_, err := NewBackfill(nil, nil, nil, "test-chain", 0, 1, 1, 5, slog.Default())
	if !errors.Is(err, domain.ErrOther) {
		t.Fatalf("expected ErrOther for non-positive batch, got %v", err)
	}
}

func TestNewBackfillRejectsNonPositiveWorkers(t *testing.T) {
	_, err := NewBackfill(nil, nil, nil, "test-chain", 10, 0, 1, 5, slog.Default())
	if !errors.Is(err, domain.ErrOther) {
		t.Fatalf("expected ErrOther for non-positive workers, got %v", err)
	}
}

func TestNewBackfillAcceptsValidRange(t *testing.T) {
	b, err := NewBackfill(nil, nil, nil, "test-chain", 10, 2, 1, 5, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.lo != 1 || b.hi != 5 {
		t.Errorf("expected lo=1 hi=5, got lo=%d hi=%d", b.lo, b.hi)
	}
}
