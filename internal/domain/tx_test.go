package domain

import "testing"

func TestNewTransactionComputesHashFromRawBytes(t *testing.T) {
	raw := []byte("a raw tx payload")
	tx, err := NewTransaction(TransactionInput{
		BlockHeight: 1,
		Msgs:        []Msg{{TypeURL: "/cosmos.bank.v1beta1.MsgSend", Value: []byte("x")}},
		TxBz:        raw,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Sha256Of(raw)
	if tx.TxHash != want {
		t.Errorf("tx_hash != SHA256(tx_bz): got %s want %s", tx.TxHash, want)
	}
}

func TestNewTransactionRejectsEmptyMsgs(t *testing.T) {
	_, err := NewTransaction(TransactionInput{BlockHeight: 1, TxBz: []byte("x")})
	if err == nil {
		t.Fatal("expected error for empty msgs")
	}
}

func TestNewTransactionRejectsNonPositiveHeight(t *testing.T) {
	_, err := NewTransaction(TransactionInput{
		BlockHeight: 0,
		Msgs:        []Msg{{TypeURL: "/x", Value: []byte("x")}},
		TxBz:        []byte("x"),
	})
	if err == nil {
		t.Fatal("expected error for non-positive block height")
	}
}
