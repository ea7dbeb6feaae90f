package domain

import (
	"crypto/sha256"
	"fmt"
)

// Sha256 is a canonical 32-byte SHA-256 identifier (block hash or tx hash).
type Sha256 [32]byte

func NewSha256(b []byte) (Sha256, error) {
	if len(b) != 32 {
		return Sha256{}, fmt.Errorf("sha256 must be 32 bytes, got %d: %w", len(b), ErrBlockHash)
	}
	var h Sha256
	copy(h[:], b)
	return h, nil
}

func Sha256Of(raw []byte) Sha256 {
	return sha256.Sum256(raw)
}

func (h Sha256) Bytes() []byte { return h[:] }

func (h Sha256) String() string { return fmt.Sprintf("%x", h[:]) }

// Address is a 20-byte account identifier, the raw payload of a bech32
// address with the human-readable prefix discarded.
type Address [20]byte

func NewAddress(b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, fmt.Errorf("address must be 20 bytes, got %d: %w", len(b), ErrAddress)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) String() string { return fmt.Sprintf("%x", a[:]) }
