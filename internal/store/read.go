package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hubcycle/imbibe/internal/domain"
)

func (p *Postgres) FetchBlockByHeight(ctx context.Context, height int64) (domain.Block, error) {
	return p.fetchBlock(ctx, "height = $1", height)
}

func (p *Postgres) FetchBlockByBlockHash(ctx context.Context, hash domain.Sha256) (domain.Block, error) {
	return p.fetchBlock(ctx, "block_hash = $1", hash.Bytes())
}

func (p *Postgres) fetchBlock(ctx context.Context, predicate string, arg any) (domain.Block, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT height, block_hash, chain_id, time, app_hash, validators_hash,
			next_validators_hash, consensus_hash, proposer, gas_used,
			last_commit_hash, data_hash, last_results_hash, evidence_hash
		FROM block WHERE `+predicate, arg)

	var (
		height                                                                int64
		blockHash, appHash, validatorsHash, nextValidatorsHash, consensusHash []byte
		proposer                                                              []byte
		gasUsed                                                               uint64
		chainID                                                               string
		blockTime                                                             time.Time
		lastCommitHash, dataHash, lastResultsHash, evidenceHash               []byte
	)

	if err := row.Scan(&height, &blockHash, &chainID, &blockTime, &appHash, &validatorsHash,
		&nextValidatorsHash, &consensusHash, &proposer, &gasUsed,
		&lastCommitHash, &dataHash, &lastResultsHash, &evidenceHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Block{}, &domain.NotFoundError{Resource: "block", Key: fmt.Sprintf("%v", arg)}
		}
		return domain.Block{}, fmt.Errorf("fetch block: %w", domain.ErrStore)
	}

	txBz, err := p.fetchOrderedTxBz(ctx, height)
	if err != nil {
		return domain.Block{}, err
	}

	header, err := domain.NewHeader(domain.HeaderInput{
		ChainID:            chainID,
		HeightRaw:          height,
		TimeUnixNano:       blockTime.UnixNano(),
		ValidatorsHash:     validatorsHash,
		NextValidatorsHash: nextValidatorsHash,
		ConsensusHash:      consensusHash,
		AppHash:            appHash,
		Proposer:           proposer,
		LastCommitHash:     lastCommitHash,
		DataHash:           dataHash,
		LastResultsHash:    lastResultsHash,
		EvidenceHash:       evidenceHash,
	})
	if err != nil {
		return domain.Block{}, err
	}

	h, err := domain.NewSha256(blockHash)
	if err != nil {
		return domain.Block{}, fmt.Errorf("block hash: %w", domain.ErrBlockHash)
	}
	return domain.NewBlock(header, h, txBz, gasUsed)
}

func (p *Postgres) fetchOrderedTxBz(ctx context.Context, height int64) ([][]byte, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT tx_bz FROM tx WHERE block_height = $1 ORDER BY tx_idx_in_block ASC
	`, height)
	if err != nil {
		return nil, fmt.Errorf("fetch tx_bz for block %d: %w", height, domain.ErrStore)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var bz []byte
		if err := rows.Scan(&bz); err != nil {
			return nil, fmt.Errorf("scan tx_bz: %w", domain.ErrStore)
		}
		out = append(out, bz)
	}
	return out, rows.Err()
}

func (p *Postgres) FetchTxByBlockHeightAndTxIdxInBlock(ctx context.Context, height int64, idx uint32) (domain.Transaction, error) {
	return p.fetchTx(ctx, "block_height = $1 AND tx_idx_in_block = $2", height, idx)
}

func (p *Postgres) FetchTxByTxHash(ctx context.Context, hash domain.Sha256) (domain.Transaction, error) {
	return p.fetchTx(ctx, "tx_hash = $1", hash.Bytes())
}

// fetchTx assembles a transaction by first querying its tx row, then
// loading signatures, fees and msgs ordered by their sub-indices.
func (p *Postgres) fetchTx(ctx context.Context, predicate string, args ...any) (domain.Transaction, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT block_height, tx_idx_in_block, tx_hash, memo, timeout_height, signers,
			payer, granter, gas_limit, gas_wanted, gas_used, code, codespace, data_bz, tx_bz
		FROM tx WHERE `+predicate, args...)

	var (
		blockHeight                    int64
		txIdx                          uint32
		txHash                         []byte
		memo                           *string
		timeoutHeight                  *int64
		signersRaw                     []byte
		payer, granter                 []byte
		gasLimit, gasWanted, gasUsed   uint64
		code                           uint32
		codespace                      *string
		dataBz, txBz                   []byte
	)

	if err := row.Scan(&blockHeight, &txIdx, &txHash, &memo, &timeoutHeight, &signersRaw,
		&payer, &granter, &gasLimit, &gasWanted, &gasUsed, &code, &codespace, &dataBz, &txBz); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Transaction{}, &domain.NotFoundError{Resource: "tx", Key: fmt.Sprintf("%v", args)}
		}
		return domain.Transaction{}, fmt.Errorf("fetch tx: %w", domain.ErrStore)
	}

	signatures, err := p.fetchOrderedSignatures(ctx, blockHeight, txIdx)
	if err != nil {
		return domain.Transaction{}, err
	}
	fees, err := p.fetchOrderedFees(ctx, blockHeight, txIdx)
	if err != nil {
		return domain.Transaction{}, err
	}
	msgs, err := p.fetchOrderedMsgs(ctx, blockHeight, txIdx)
	if err != nil {
		return domain.Transaction{}, err
	}
	signerAnys, err := signersFromJSON(signersRaw)
	if err != nil {
		return domain.Transaction{}, err
	}

	in := domain.TransactionInput{
		BlockHeight:   blockHeight,
		TxIdxInBlock:  txIdx,
		Msgs:          msgs,
		Signatures:    signatures,
		SignerAnys:    signerAnys,
		Fees:          fees,
		Code:          code,
		GasLimit:      gasLimit,
		GasWanted:     gasWanted,
		GasUsed:       gasUsed,
		DataBz:        dataBz,
		TxBz:          txBz,
	}
	if memo != nil {
		in.Memo = *memo
	}
	if timeoutHeight != nil {
		in.TimeoutHeight = *timeoutHeight
	}
	if codespace != nil {
		in.Codespace = *codespace
	}
	if granter != nil {
		in.Granter = granter
	}
	payerAddr, err := domain.NewAddress(payer)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("payer: %w", err)
	}
	in.Payer = payerAddr

	t, err := domain.NewTransaction(in)
	if err != nil {
		return domain.Transaction{}, err
	}
	// tx_hash is recomputed by NewTransaction from tx_bz per invariant 3;
	// the stored value is scanned but neither compared nor returned.
	_ = txHash
	return t, nil
}

func (p *Postgres) fetchOrderedSignatures(ctx context.Context, height int64, idx uint32) ([][]byte, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT bz FROM signature WHERE block_height = $1 AND tx_idx_in_block = $2
		ORDER BY signature_idx_in_tx ASC
	`, height, idx)
	if err != nil {
		return nil, fmt.Errorf("fetch signatures: %w", domain.ErrStore)
	}
	defer rows.Close()
	var out [][]byte
	for rows.Next() {
		var bz []byte
		if err := rows.Scan(&bz); err != nil {
			return nil, fmt.Errorf("scan signature: %w", domain.ErrStore)
		}
		out = append(out, bz)
	}
	return out, rows.Err()
}

func (p *Postgres) fetchOrderedFees(ctx context.Context, height int64, idx uint32) ([]domain.Coin, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT amount, denom FROM fee WHERE block_height = $1 AND tx_idx_in_block = $2
		ORDER BY fee_idx_in_tx ASC
	`, height, idx)
	if err != nil {
		return nil, fmt.Errorf("fetch fees: %w", domain.ErrStore)
	}
	defer rows.Close()
	var out []domain.Coin
	for rows.Next() {
		var c domain.Coin
		if err := rows.Scan(&c.Amount, &c.Denom); err != nil {
			return nil, fmt.Errorf("scan fee: %w", domain.ErrStore)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) fetchOrderedMsgs(ctx context.Context, height int64, idx uint32) ([]domain.Msg, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT type_url, value FROM msg WHERE block_height = $1 AND tx_idx_in_block = $2
		ORDER BY msg_idx_in_tx ASC
	`, height, idx)
	if err != nil {
		return nil, fmt.Errorf("fetch msgs: %w", domain.ErrStore)
	}
	defer rows.Close()
	var out []domain.Msg
	for rows.Next() {
		var m domain.Msg
		if err := rows.Scan(&m.TypeURL, &m.Value); err != nil {
			return nil, fmt.Errorf("scan msg: %w", domain.ErrStore)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
