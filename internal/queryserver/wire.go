package queryserver

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/hubcycle/imbibe/internal/domain"
)

type wireHeader struct {
	ChainID            string  `json:"chain_id"`
	Height             int64   `json:"height"`
	Time               string  `json:"time"`
	ValidatorsHash     string  `json:"validators_hash"`
	NextValidatorsHash string  `json:"next_validators_hash"`
	ConsensusHash      string  `json:"consensus_hash"`
	AppHash            string  `json:"app_hash"`
	Proposer           string  `json:"proposer"`
	LastCommitHash     *string `json:"last_commit_hash,omitempty"`
	DataHash           *string `json:"data_hash,omitempty"`
	LastResultsHash    *string `json:"last_results_hash,omitempty"`
	EvidenceHash       *string `json:"evidence_hash,omitempty"`
}

type wireBlock struct {
	Header  wireHeader `json:"header"`
	Hash    string     `json:"hash"`
	Data    []string   `json:"data"`
	GasUsed uint64     `json:"gas_used"`
}

type wireMsg struct {
	TypeURL string `json:"type_url"`
	Value   string `json:"value"`
}

type wireCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type wireTx struct {
	BlockHeight   int64      `json:"block_height"`
	TxIdxInBlock  uint32     `json:"tx_idx_in_block"`
	TxHash        string     `json:"tx_hash"`
	Msgs          []wireMsg  `json:"msgs"`
	Memo          *string    `json:"memo,omitempty"`
	TimeoutHeight *int64     `json:"timeout_height,omitempty"`
	Signatures    []string   `json:"signatures"`
	Fees          []wireCoin `json:"fees,omitempty"`
	Payer         string     `json:"payer"`
	Granter       *string    `json:"granter,omitempty"`
	Code          uint32     `json:"code"`
	Codespace     *string    `json:"codespace,omitempty"`
	GasLimit      uint64     `json:"gas_limit"`
	GasWanted     uint64     `json:"gas_wanted"`
	GasUsed       uint64     `json:"gas_used"`
	DataBz        *string    `json:"data_bz,omitempty"`
	TxBz          string     `json:"tx_bz"`
}

func toWireBlock(b domain.Block) wireBlock {
	h := b.Header
	wh := wireHeader{
		ChainID:            h.ChainID,
		Height:             h.Height,
		Time:               h.Time.Format("2006-01-02T15:04:05.999999999Z07:00"),
		ValidatorsHash:     hex.EncodeToString(h.ValidatorsHash.Bytes()),
		NextValidatorsHash: hex.EncodeToString(h.NextValidatorsHash.Bytes()),
		ConsensusHash:      hex.EncodeToString(h.ConsensusHash.Bytes()),
		AppHash:            hex.EncodeToString(h.AppHash),
		Proposer:           hex.EncodeToString(h.Proposer.Bytes()),
		LastCommitHash:     optionalHex(h.LastCommitHash),
		DataHash:           optionalHex(h.DataHash),
		LastResultsHash:    optionalHex(h.LastResultsHash),
		EvidenceHash:       optionalHex(h.EvidenceHash),
	}

	data := make([]string, 0, len(b.Data))
	for _, d := range b.Data {
		data = append(data, base64.StdEncoding.EncodeToString(d))
	}

	return wireBlock{Header: wh, Hash: hex.EncodeToString(b.Hash.Bytes()), Data: data, GasUsed: b.GasUsed}
}

func toWireTx(t domain.Transaction) wireTx {
	msgs := make([]wireMsg, 0, len(t.Msgs))
	for _, m := range t.Msgs {
		msgs = append(msgs, wireMsg{TypeURL: m.TypeURL, Value: base64.StdEncoding.EncodeToString(m.Value)})
	}
	sigs := make([]string, 0, len(t.Signatures))
	for _, s := range t.Signatures {
		sigs = append(sigs, base64.StdEncoding.EncodeToString(s))
	}
	fees := make([]wireCoin, 0, len(t.Fees))
	for _, f := range t.Fees {
		fees = append(fees, wireCoin{Amount: f.Amount, Denom: f.Denom})
	}

	w := wireTx{
		BlockHeight:  t.BlockHeight,
		TxIdxInBlock: t.TxIdxInBlock,
		TxHash:       hex.EncodeToString(t.TxHash.Bytes()),
		Msgs:         msgs,
		Signatures:   sigs,
		Fees:         fees,
		Payer:        hex.EncodeToString(t.Payer.Bytes()),
		Code:         t.Code,
		GasLimit:     t.GasLimit,
		GasWanted:    t.GasWanted,
		GasUsed:      t.GasUsed,
		TxBz:         base64.StdEncoding.EncodeToString(t.TxBz),
	}
	w.Memo = t.Memo
	w.Codespace = t.Codespace
	if t.TimeoutHeight != nil {
		w.TimeoutHeight = t.TimeoutHeight
	}
	if t.Granter != nil {
		g := hex.EncodeToString(t.Granter.Bytes())
		w.Granter = &g
	}
	if len(t.DataBz) > 0 {
		d := base64.StdEncoding.EncodeToString(t.DataBz)
		w.DataBz = &d
	}
	return w
}

func optionalHex(h *domain.Sha256) *string {
	if h == nil {
		return nil
	}
	s := hex.EncodeToString(h.Bytes())
	return &s
}
