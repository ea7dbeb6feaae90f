package domain

import "fmt"

// Block is the canonical persisted block: a header, its identity hash, the
// ordered raw transaction bytes, and the aggregate gas used across its
// transactions. len(Data) must equal the number of persisted transactions.
type Block struct {
	Header  Header
	Hash    Sha256
	Data    [][]byte
	GasUsed uint64
}

func NewBlock(header Header, hash Sha256, data [][]byte, gasUsed uint64) (Block, error) {
	for i, d := range data {
		if len(d) == 0 {
			return Block{}, fmt.Errorf("tx bytes at index %d empty: %w", i, ErrBlockData)
		}
	}
	return Block{Header: header, Hash: hash, Data: data, GasUsed: gasUsed}, nil
}
