package store

import (
	"testing"

	"github.com/hubcycle/imbibe/internal/domain"
)

func TestSignersJSONRoundTrip(t *testing.T) {
	tx := domain.Transaction{
		SignerAnys: []domain.Msg{
			{TypeURL: "/cosmos.crypto.secp256k1.PubKey", Value: []byte{0x01, 0x02, 0x03}},
			{TypeURL: "/cosmos.crypto.ed25519.PubKey", Value: []byte{0xff, 0x00}},
		},
	}

	raw, err := signersToJSON(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := signersFromJSON(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != len(tx.SignerAnys) {
		t.Fatalf("expected %d entries, got %d", len(tx.SignerAnys), len(got))
	}
	for i, want := range tx.SignerAnys {
		if got[i].TypeURL != want.TypeURL {
			t.Errorf("entry %d: type_url mismatch: got %s want %s", i, got[i].TypeURL, want.TypeURL)
		}
		if string(got[i].Value) != string(want.Value) {
			t.Errorf("entry %d: value mismatch: got %x want %x", i, got[i].Value, want.Value)
		}
	}
}

func TestSignersFromJSONEmptyInput(t *testing.T) {
	got, err := signersFromJSON(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result for empty input, got %v", got)
	}
}

func TestSignersToJSONEmptyTransaction(t *testing.T) {
	raw, err := signersToJSON(domain.Transaction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := signersFromJSON(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestSignersFromJSONRejectsMalformed(t *testing.T) {
	_, err := signersFromJSON([]byte("not json"))
	if err == nil {
		t.Fatal("expected error for malformed json")
	}
}
