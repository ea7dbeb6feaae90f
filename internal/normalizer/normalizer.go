// Package normalizer converts raw consensus payloads into the canonical
// domain model, resolving each transaction's payer along the way.
package normalizer

import (
	"fmt"
	"math"

	"github.com/cosmos/cosmos-sdk/client"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/signer"
)

// ExecResult is the subset of a consensus execTxResult this package needs.
type ExecResult struct {
	Code      uint32
	Codespace string
	GasWanted int64
	GasUsed   int64
	Data      []byte
}

// HeaderInput is the subset of consensus header fields needed to build a
// domain.Header.
type HeaderInput struct {
	ChainID            string
	Height             int64
	TimeUnixNano       int64
	ValidatorsHash     []byte
	NextValidatorsHash []byte
	ConsensusHash      []byte
	AppHash            []byte
	Proposer           []byte
	LastCommitHash     []byte
	DataHash           []byte
	LastResultsHash    []byte
	EvidenceHash       []byte
}

// Normalizer converts a (header, hash, rawTxBytes[], execResults[]) tuple
// into a domain Block plus its domain Transactions.
type Normalizer struct {
	txConfig client.TxConfig
	signers  *signer.Registry
	addrOpts signer.Options
}

func New(txConfig client.TxConfig, signers *signer.Registry, addrOpts signer.Options) *Normalizer {
	return &Normalizer{txConfig: txConfig, signers: signers, addrOpts: addrOpts}
}

// ProcessBlock validates that raw tx bytes and results line up, builds the
// header, normalizes every transaction and aggregates gas used.
func (n *Normalizer) ProcessBlock(hin HeaderInput, blockHash []byte, rawTxBytes [][]byte, results []ExecResult) (domain.Block, []domain.Transaction, error) {
	if len(rawTxBytes) != len(results) {
		return domain.Block{}, nil, fmt.Errorf("len(rawTxBytes)=%d != len(results)=%d: %w", len(rawTxBytes), len(results), domain.ErrBlockData)
	}

	header, err := domain.NewHeader(domain.HeaderInput{
		ChainID:            hin.ChainID,
		HeightRaw:          hin.Height,
		TimeUnixNano:       hin.TimeUnixNano,
		ValidatorsHash:     hin.ValidatorsHash,
		NextValidatorsHash: hin.NextValidatorsHash,
		ConsensusHash:      hin.ConsensusHash,
		AppHash:            hin.AppHash,
		Proposer:           hin.Proposer,
		LastCommitHash:     hin.LastCommitHash,
		DataHash:           hin.DataHash,
		LastResultsHash:    hin.LastResultsHash,
		EvidenceHash:       hin.EvidenceHash,
	})
	if err != nil {
		return domain.Block{}, nil, err
	}

	txs := make([]domain.Transaction, 0, len(rawTxBytes))
	var totalGas uint64
	for i, raw := range rawTxBytes {
		if len(raw) == 0 {
			return domain.Block{}, nil, fmt.Errorf("tx %d bytes empty: %w", i, domain.ErrBlockData)
		}
		if i > math.MaxUint32 {
			return domain.Block{}, nil, fmt.Errorf("tx index %d overflows u32: %w", i, domain.ErrTxsInBlock)
		}
		tx, err := n.makeTx(hin.Height, uint32(i), raw, results[i])
		if err != nil {
			return domain.Block{}, nil, fmt.Errorf("tx %d: %w", i, err)
		}
		newTotal := totalGas + tx.GasUsed
		if newTotal < totalGas {
			return domain.Block{}, nil, fmt.Errorf("gas_used overflow at tx %d: %w", i, domain.ErrGas)
		}
		totalGas = newTotal
		txs = append(txs, tx)
	}

	hash, err := domain.NewSha256(blockHash)
	if err != nil {
		return domain.Block{}, nil, fmt.Errorf("block hash: %w", domain.ErrBlockHash)
	}
	block, err := domain.NewBlock(header, hash, rawTxBytes, totalGas)
	if err != nil {
		return domain.Block{}, nil, err
	}
	return block, txs, nil
}

func (n *Normalizer) makeTx(height int64, idx uint32, raw []byte, result ExecResult) (domain.Transaction, error) {
	sdkTx, err := n.txConfig.TxDecoder()(raw)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decode tx: %w", domain.ErrTxDecodeError)
	}

	fields, err := decodeTxFields(sdkTx, raw)
	if err != nil {
		return domain.Transaction{}, err
	}

	payer, err := resolvePayer(n.signers, n.addrOpts, fields.feePayer, fields.signerAnys, fields.msgs)
	if err != nil {
		return domain.Transaction{}, err
	}

	var dataBz []byte
	if len(result.Data) > 0 {
		dataBz = result.Data
	}

	return domain.NewTransaction(domain.TransactionInput{
		BlockHeight:   height,
		TxIdxInBlock:  idx,
		Msgs:          fields.msgs,
		Memo:          fields.memo,
		TimeoutHeight: int64(fields.timeoutHeight),
		Signatures:    fields.signatures,
		SignerAnys:    fields.signerAnys,
		Fees:          fields.fees,
		Payer:         payer,
		Granter:       fields.granter,
		Code:          result.Code,
		Codespace:     result.Codespace,
		GasLimit:      fields.gasLimit,
		GasWanted:     uint64(result.GasWanted),
		GasUsed:       uint64(result.GasUsed),
		DataBz:        dataBz,
		TxBz:          raw,
	})
}
