// Package rpcclient is a thin wrapper over the cometbft RPC client,
// exposing the subset of the consensus-node RPC the indexers consume: a
// NewBlock subscription and the block/block_results pull queries.
package rpcclient

import (
	"context"
	"fmt"

	cmthttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/hubcycle/imbibe/internal/domain"
)

const newBlockQuery = "tm.event='NewBlock'"

// Client wraps *cmthttp.HTTP, shareable by cheap clone: every clone
// multiplexes over the same underlying websocket.
type Client struct {
	http *cmthttp.HTTP
}

func Dial(nodeURL string) (*Client, error) {
	c, err := cmthttp.New(nodeURL, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", nodeURL, domain.ErrRpc)
	}
	return &Client{http: c}, nil
}

func (c *Client) Start(ctx context.Context) error {
	if err := c.http.Start(); err != nil {
		return fmt.Errorf("start rpc client: %w", domain.ErrRpc)
	}
	return nil
}

func (c *Client) Stop() error {
	return c.http.Stop()
}

// NewBlockEvent is the accepted shape of a NewBlock subscription payload:
// a block, a block-id hash, and finalize-block results. An event is
// accepted only with a block, a non-empty block-id hash, and one result
// per block transaction.
type NewBlockEvent struct {
	Block       *cmttypes.Block
	BlockIDHash []byte
	ExecResults []ExecTxResult
}

// ExecTxResult is the subset of an execution result the normalizer needs.
type ExecTxResult struct {
	Code      uint32
	Codespace string
	GasWanted int64
	GasUsed   int64
	Data      []byte
}

// Subscribe opens the NewBlock subscription and returns a channel of
// accepted events: events whose payload lacks a block or a block-id hash,
// or whose finalize-block results do not match the block's tx count, are
// dropped silently.
func (c *Client) Subscribe(ctx context.Context) (<-chan NewBlockEvent, error) {
	out, err := c.http.Subscribe(ctx, "imbibe-indexer", newBlockQuery)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", domain.ErrRpc)
	}

	events := make(chan NewBlockEvent)
	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-out:
				if !ok {
					return
				}
				ev, ok := decodeNewBlockEvent(res)
				if !ok {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

func decodeNewBlockEvent(res coretypes.ResultEvent) (NewBlockEvent, bool) {
	data, ok := res.Data.(cmttypes.EventDataNewBlock)
	if !ok {
		return NewBlockEvent{}, false
	}
	// A missing block or block-id hash is a structurally incomplete event; a
	// TxResults count that disagrees with the block's tx count means the two
	// halves of the event don't describe the same block. An empty block (no
	// txs, no results) is valid and must not be dropped here.
	if data.Block == nil || len(data.BlockID.Hash) == 0 || len(data.ResultFinalizeBlock.TxResults) != len(data.Block.Txs) {
		return NewBlockEvent{}, false
	}

	execResults := make([]ExecTxResult, 0, len(data.ResultFinalizeBlock.TxResults))
	for _, r := range data.ResultFinalizeBlock.TxResults {
		execResults = append(execResults, ExecTxResult{
			Code:      r.Code,
			Codespace: r.Codespace,
			GasWanted: r.GasWanted,
			GasUsed:   r.GasUsed,
			Data:      r.Data,
		})
	}

	return NewBlockEvent{
		Block:       data.Block,
		BlockIDHash: data.BlockID.Hash,
		ExecResults: execResults,
	}, true
}

// ToRpcHeight converts a store height into the pointer form the cometbft
// client expects, rejecting negative heights.
func ToRpcHeight(height int64) (*int64, error) {
	if height < 0 {
		return nil, fmt.Errorf("height %d is negative: %w", height, domain.ErrRpcHeight)
	}
	h := height
	return &h, nil
}

// Block fetches a single block by height.
func (c *Client) Block(ctx context.Context, height int64) (*cmttypes.Block, []byte, error) {
	h, err := ToRpcHeight(height)
	if err != nil {
		return nil, nil, err
	}
	res, err := c.http.Block(ctx, h)
	if err != nil {
		return nil, nil, fmt.Errorf("block(%d): %w", height, domain.ErrRpc)
	}
	return res.Block, res.BlockID.Hash, nil
}

// BlockResults fetches the execution results for a block by height,
// treating an absent set of results as an empty list.
func (c *Client) BlockResults(ctx context.Context, height int64) ([]ExecTxResult, error) {
	h, err := ToRpcHeight(height)
	if err != nil {
		return nil, err
	}
	res, err := c.http.BlockResults(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("block_results(%d): %w", height, domain.ErrRpc)
	}
	if res.TxsResults == nil {
		return nil, nil
	}
	out := make([]ExecTxResult, 0, len(res.TxsResults))
	for _, r := range res.TxsResults {
		out = append(out, ExecTxResult{
			Code:      r.Code,
			Codespace: r.Codespace,
			GasWanted: r.GasWanted,
			GasUsed:   r.GasUsed,
			Data:      r.Data,
		})
	}
	return out, nil
}
