package signer

import (
	"fmt"

	evmcrypto "github.com/cosmos/evm/crypto/ethsecp256k1"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/hubcycle/imbibe/internal/domain"
)

// Options controls optional capabilities of address derivation.
type Options struct {
	// EthSupport enables ethsecp256k1 (Ethereum-style) public keys. When
	// false, those keys fail with ErrUnsupportedPublicKey.
	EthSupport bool
}

// AddressFromPubKeyAny derives a 20-byte account address from an Any-encoded
// public key: secp256k1 and ed25519 use their standard cosmos-sdk Address()
// derivation, ethsecp256k1 (behind EthSupport) uses Keccak256-based Ethereum
// derivation, anything else is unsupported.
func AddressFromPubKeyAny(opts Options, typeURL string, value []byte) (domain.Address, error) {
	switch typeURL {
	case "/cosmos.crypto.secp256k1.PubKey":
		pk := &secp256k1.PubKey{}
		if err := pk.Unmarshal(value); err != nil {
			return domain.Address{}, fmt.Errorf("unmarshal secp256k1 pubkey: %w", domain.ErrUnsupportedPublicKey)
		}
		return fromCryptoPubKey(pk)
	case "/cosmos.crypto.ed25519.PubKey":
		pk := &ed25519.PubKey{}
		if err := pk.Unmarshal(value); err != nil {
			return domain.Address{}, fmt.Errorf("unmarshal ed25519 pubkey: %w", domain.ErrUnsupportedPublicKey)
		}
		return fromCryptoPubKey(pk)
	case "/ethermint.crypto.v1.ethsecp256k1.PubKey", "/cosmos.evm.crypto.v1.ethsecp256k1.PubKey":
		if !opts.EthSupport {
			return domain.Address{}, fmt.Errorf("ethsecp256k1 support disabled: %w", domain.ErrUnsupportedPublicKey)
		}
		pk := &evmcrypto.PubKey{}
		if err := pk.Unmarshal(value); err != nil {
			return domain.Address{}, fmt.Errorf("unmarshal ethsecp256k1 pubkey: %w", domain.ErrUnsupportedPublicKey)
		}
		return fromCryptoPubKey(pk)
	default:
		return domain.Address{}, fmt.Errorf("%s: %w", typeURL, domain.ErrUnsupportedPublicKey)
	}
}

func fromCryptoPubKey(pk cryptotypes.PubKey) (domain.Address, error) {
	return domain.NewAddress(pk.Address())
}

// Bech32ToAddress decodes a bech32 address string into its raw 20-byte
// payload, discarding the human-readable prefix: only the payload is
// persisted.
func Bech32ToAddress(s string) (domain.Address, error) {
	_, bz, err := bech32.DecodeAndConvert(s)
	if err != nil {
		return domain.Address{}, fmt.Errorf("bech32 decode %q: %w", s, domain.ErrBech32Address)
	}
	return domain.NewAddress(bz)
}
