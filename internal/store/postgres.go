package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hubcycle/imbibe/internal/domain"
)

// Postgres is the pgx-backed Store implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, url string, maxConns int32) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", domain.ErrDbPool)
	}
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open db pool: %w", domain.ErrDbPool)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// SaveBlockWithTxs persists one block and its transactions, delegating to
// the batch path with a single pair so both share one insert-order
// discipline.
func (p *Postgres) SaveBlockWithTxs(ctx context.Context, block domain.Block, txs []domain.Transaction) error {
	return p.SaveBlocksWithTxs(ctx, []BlockWithTxs{{Block: block, Txs: txs}})
}

// SaveBlocksWithTxs inserts every (block, txs) pair inside one database
// transaction, in order block, tx, signature, fee, msg.
func (p *Postgres) SaveBlocksWithTxs(ctx context.Context, pairs []BlockWithTxs) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", domain.ErrDbPool)
	}
	defer tx.Rollback(ctx)

	for _, pair := range pairs {
		if err := insertBlock(ctx, tx, pair.Block); err != nil {
			return err
		}
		for _, t := range pair.Txs {
			if err := insertTx(ctx, tx, t); err != nil {
				return err
			}
			if err := insertSignatures(ctx, tx, t); err != nil {
				return err
			}
			if err := insertFees(ctx, tx, t); err != nil {
				return err
			}
			if err := insertMsgs(ctx, tx, t); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", domain.ErrStore)
	}
	return nil
}

func insertBlock(ctx context.Context, tx pgx.Tx, b domain.Block) error {
	h := b.Header
	_, err := tx.Exec(ctx, `
		INSERT INTO block (height, block_hash, chain_id, time, app_hash, validators_hash,
			next_validators_hash, consensus_hash, proposer, gas_used,
			last_commit_hash, data_hash, last_results_hash, evidence_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		h.Height, b.Hash.Bytes(), h.ChainID, h.Time, h.AppHash, h.ValidatorsHash.Bytes(),
		h.NextValidatorsHash.Bytes(), h.ConsensusHash.Bytes(), h.Proposer.Bytes(), b.GasUsed,
		optionalBytes(h.LastCommitHash), optionalBytes(h.DataHash), optionalBytes(h.LastResultsHash), optionalBytes(h.EvidenceHash),
	)
	if err != nil {
		return fmt.Errorf("insert block %d: %w", h.Height, domain.ErrStore)
	}
	return nil
}

func insertTx(ctx context.Context, tx pgx.Tx, t domain.Transaction) error {
	signersJSON, err := signersToJSON(t)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO tx (block_height, tx_idx_in_block, tx_hash, memo, timeout_height, signers,
			payer, granter, gas_limit, gas_wanted, gas_used, code, codespace, data_bz, tx_bz)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		t.BlockHeight, t.TxIdxInBlock, t.TxHash.Bytes(), t.Memo, t.TimeoutHeight, signersJSON,
		t.Payer.Bytes(), optionalAddress(t.Granter), t.GasLimit, t.GasWanted, t.GasUsed, t.Code, t.Codespace, t.DataBz, t.TxBz,
	)
	if err != nil {
		return fmt.Errorf("insert tx %d/%d: %w", t.BlockHeight, t.TxIdxInBlock, domain.ErrStore)
	}
	return nil
}

func insertSignatures(ctx context.Context, tx pgx.Tx, t domain.Transaction) error {
	for i, sig := range t.Signatures {
		if _, err := tx.Exec(ctx, `
			INSERT INTO signature (block_height, tx_idx_in_block, signature_idx_in_tx, bz)
			VALUES ($1,$2,$3,$4)
		`, t.BlockHeight, t.TxIdxInBlock, i, sig); err != nil {
			return fmt.Errorf("insert signature %d for tx %d/%d: %w", i, t.BlockHeight, t.TxIdxInBlock, domain.ErrStore)
		}
	}
	return nil
}

func insertFees(ctx context.Context, tx pgx.Tx, t domain.Transaction) error {
	for i, fee := range t.Fees {
		if _, err := tx.Exec(ctx, `
			INSERT INTO fee (block_height, tx_idx_in_block, fee_idx_in_tx, amount, denom)
			VALUES ($1,$2,$3,$4,$5)
		`, t.BlockHeight, t.TxIdxInBlock, i, fee.Amount, fee.Denom); err != nil {
			return fmt.Errorf("insert fee %d for tx %d/%d: %w", i, t.BlockHeight, t.TxIdxInBlock, domain.ErrStore)
		}
	}
	return nil
}

func insertMsgs(ctx context.Context, tx pgx.Tx, t domain.Transaction) error {
	for i, m := range t.Msgs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO msg (block_height, tx_idx_in_block, msg_idx_in_tx, type_url, value)
			VALUES ($1,$2,$3,$4,$5)
		`, t.BlockHeight, t.TxIdxInBlock, i, m.TypeURL, m.Value); err != nil {
			return fmt.Errorf("insert msg %d for tx %d/%d: %w", i, t.BlockHeight, t.TxIdxInBlock, domain.ErrStore)
		}
	}
	return nil
}

func optionalBytes(h *domain.Sha256) []byte {
	if h == nil {
		return nil
	}
	return h.Bytes()
}

func optionalAddress(a *domain.Address) []byte {
	if a == nil {
		return nil
	}
	return a.Bytes()
}
