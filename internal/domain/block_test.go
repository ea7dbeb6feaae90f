package domain

import "testing"

func TestNewBlockRejectsEmptyTxBytes(t *testing.T) {
	h := Header{ChainID: "test", Height: 1}
	_, err := NewBlock(h, Sha256{}, [][]byte{{}}, 0)
	if err == nil {
		t.Fatal("expected error for empty tx bytes")
	}
}

func TestNewBlockAllowsEmptyTxList(t *testing.T) {
	h := Header{ChainID: "test", Height: 42}
	b, err := NewBlock(h, Sha256{}, nil, 0)
	if err != nil {
		t.Fatalf("empty tx list block should be valid: %v", err)
	}
	if len(b.Data) != 0 {
		t.Errorf("expected empty data, got %d", len(b.Data))
	}
}
