package domain

import (
	"fmt"
	"time"
)

// Header is the canonical block header. validators_hash, next_validators_hash,
// consensus_hash and app_hash are required; last_commit_hash, data_hash,
// last_results_hash and evidence_hash are optional and nil when the node
// reports "no hash".
type Header struct {
	ChainID             string
	Height              int64
	Time                time.Time
	ValidatorsHash      Sha256
	NextValidatorsHash  Sha256
	ConsensusHash       Sha256
	AppHash             []byte
	Proposer            Address
	LastCommitHash      *Sha256
	DataHash            *Sha256
	LastResultsHash     *Sha256
	EvidenceHash        *Sha256
}

// HeaderInput carries the raw fields a header is built from, with hashes
// expressed as possibly-empty byte slices ("no hash" is an empty slice).
type HeaderInput struct {
	ChainID             string
	HeightRaw           int64
	TimeUnixNano        int64
	ValidatorsHash      []byte
	NextValidatorsHash  []byte
	ConsensusHash       []byte
	AppHash             []byte
	Proposer            []byte
	LastCommitHash      []byte
	DataHash            []byte
	LastResultsHash     []byte
	EvidenceHash        []byte
}

func NewHeader(in HeaderInput) (Header, error) {
	if in.ChainID == "" {
		return Header{}, fmt.Errorf("chain_id empty: %w", ErrBlockData)
	}
	if in.HeightRaw <= 0 {
		return Header{}, fmt.Errorf("height must be positive, got %d: %w", in.HeightRaw, ErrHeight)
	}

	vh, err := NewSha256(in.ValidatorsHash)
	if err != nil {
		return Header{}, fmt.Errorf("validators_hash: %w", ErrValidatorsHash)
	}
	nvh, err := NewSha256(in.NextValidatorsHash)
	if err != nil {
		return Header{}, fmt.Errorf("next_validators_hash: %w", ErrNextValidatorsHash)
	}
	ch, err := NewSha256(in.ConsensusHash)
	if err != nil {
		return Header{}, fmt.Errorf("consensus_hash: %w", ErrConsensusHash)
	}
	if len(in.AppHash) == 0 {
		return Header{}, fmt.Errorf("app_hash empty: %w", ErrBlockData)
	}
	proposer, err := NewAddress(in.Proposer)
	if err != nil {
		return Header{}, fmt.Errorf("proposer: %w", err)
	}

	h := Header{
		ChainID:            in.ChainID,
		Height:             in.HeightRaw,
		Time:               time.Unix(0, in.TimeUnixNano).UTC(),
		ValidatorsHash:     vh,
		NextValidatorsHash: nvh,
		ConsensusHash:      ch,
		AppHash:            in.AppHash,
		Proposer:           proposer,
	}
	h.LastCommitHash, err = optionalSha256(in.LastCommitHash)
	if err != nil {
		return Header{}, fmt.Errorf("last_commit_hash: %w", err)
	}
	h.DataHash, err = optionalSha256(in.DataHash)
	if err != nil {
		return Header{}, fmt.Errorf("data_hash: %w", err)
	}
	h.LastResultsHash, err = optionalSha256(in.LastResultsHash)
	if err != nil {
		return Header{}, fmt.Errorf("last_results_hash: %w", err)
	}
	h.EvidenceHash, err = optionalSha256(in.EvidenceHash)
	if err != nil {
		return Header{}, fmt.Errorf("evidence_hash: %w", err)
	}
	return h, nil
}

// optionalSha256 treats an empty slice as "absent" but propagates any error
// from a malformed non-empty hash rather than swallowing it.
func optionalSha256(b []byte) (*Sha256, error) {
	if len(b) == 0 {
		return nil, nil
	}
	s, err := NewSha256(b)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
