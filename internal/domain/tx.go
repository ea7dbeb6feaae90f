package domain

import "fmt"

// Msg is an opaque (type_url, value_bytes) message pair, the Any container
// of the glossary.
type Msg struct {
	TypeURL string
	Value   []byte
}

// Coin is a single fee entry.
type Coin struct {
	Amount string
	Denom  string
}

// Transaction is the canonical persisted transaction record.
type Transaction struct {
	BlockHeight   int64
	TxIdxInBlock  uint32
	TxHash        Sha256
	Msgs          []Msg
	Memo          *string
	TimeoutHeight *int64
	Signatures    [][]byte
	Signers       [][]byte // value bytes of each SignerAnys entry, type URL dropped
	SignerAnys    []Msg
	Fees          []Coin
	Payer         Address
	Granter       *Address
	Code          uint32
	Codespace     *string
	GasLimit      uint64
	GasWanted     uint64
	GasUsed       uint64
	DataBz        []byte
	TxBz          []byte
}

// TransactionInput carries the fields a transaction is validated and built
// from.
type TransactionInput struct {
	BlockHeight   int64
	TxIdxInBlock  uint32
	Msgs          []Msg
	Memo          string
	TimeoutHeight int64
	Signatures    [][]byte
	SignerAnys    []Msg
	Fees          []Coin
	Payer         Address
	Granter       []byte
	Code          uint32
	Codespace     string
	GasLimit      uint64
	GasWanted     uint64
	GasUsed       uint64
	DataBz        []byte
	TxBz          []byte
}

func NewTransaction(in TransactionInput) (Transaction, error) {
	if in.BlockHeight <= 0 {
		return Transaction{}, fmt.Errorf("block_height must be positive: %w", ErrHeight)
	}
	if len(in.Msgs) == 0 {
		return Transaction{}, fmt.Errorf("tx has no messages: %w", ErrTxMsgsMissing)
	}
	if len(in.TxBz) == 0 {
		return Transaction{}, fmt.Errorf("tx_bz empty: %w", ErrBlockData)
	}

	t := Transaction{
		BlockHeight:  in.BlockHeight,
		TxIdxInBlock: in.TxIdxInBlock,
		TxHash:       Sha256Of(in.TxBz),
		Msgs:         in.Msgs,
		Signatures:   in.Signatures,
		SignerAnys:   in.SignerAnys,
		Fees:         in.Fees,
		Payer:        in.Payer,
		Code:         in.Code,
		GasLimit:     in.GasLimit,
		GasWanted:    in.GasWanted,
		GasUsed:      in.GasUsed,
		DataBz:       in.DataBz,
		TxBz:         in.TxBz,
	}
	if in.Memo != "" {
		memo := in.Memo
		t.Memo = &memo
	}
	if in.TimeoutHeight > 0 {
		th := in.TimeoutHeight
		t.TimeoutHeight = &th
	}
	if in.Codespace != "" {
		cs := in.Codespace
		t.Codespace = &cs
	}
	if len(in.Granter) > 0 {
		g, err := NewAddress(in.Granter)
		if err != nil {
			return Transaction{}, fmt.Errorf("granter: %w", err)
		}
		t.Granter = &g
	}
	for _, sa := range in.SignerAnys {
		// Signers keeps each public-key Any's value bytes (the protobuf-encoded
		// key message) without its type URL; the signers column is written
		// from SignerAnys, not from this slice.
		t.Signers = append(t.Signers, sa.Value)
	}
	return t, nil
}
