package signer

import (
	"errors"
	"testing"

	evmcrypto "github.com/cosmos/evm/crypto/ethsecp256k1"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/hubcycle/imbibe/internal/domain"
)

func TestAddressFromPubKeyAnySecp256k1(t *testing.T) {
	priv := secp256k1.GenPrivKey()
	pub := priv.PubKey().(*secp256k1.PubKey)
	value, err := pub.Marshal()
	if err != nil {
		t.Fatalf("marshal pubkey: %v", err)
	}

	addr, err := AddressFromPubKeyAny(Options{}, "/cosmos.crypto.secp256k1.PubKey", value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := domain.NewAddress(pub.Address())
	if err != nil {
		t.Fatalf("build expected address: %v", err)
	}
	if addr != want {
		t.Errorf("address mismatch: got %s want %s", addr, want)
	}
}

func TestAddressFromPubKeyAnyEd25519(t *testing.T) {
	priv := ed25519.GenPrivKey()
	pub := priv.PubKey().(*ed25519.PubKey)
	value, err := pub.Marshal()
	if err != nil {
		t.Fatalf("marshal pubkey: %v", err)
	}

	addr, err := AddressFromPubKeyAny(Options{}, "/cosmos.crypto.ed25519.PubKey", value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := domain.NewAddress(pub.Address())
	if err != nil {
		t.Fatalf("build expected address: %v", err)
	}
	if addr != want {
		t.Errorf("address mismatch: got %s want %s", addr, want)
	}
}

func TestAddressFromPubKeyAnyEthRejectedWhenDisabled(t *testing.T) {
	priv, err := evmcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate eth key: %v", err)
	}
	pub := priv.PubKey().(*evmcrypto.PubKey)
	value, err := pub.Marshal()
	if err != nil {
		t.Fatalf("marshal pubkey: %v", err)
	}

	_, err = AddressFromPubKeyAny(Options{EthSupport: false}, "/cosmos.evm.crypto.v1.ethsecp256k1.PubKey", value)
	if !errors.Is(err, domain.ErrUnsupportedPublicKey) {
		t.Fatalf("expected ErrUnsupportedPublicKey, got %v", err)
	}
}

func TestAddressFromPubKeyAnyEthAcceptedWhenEnabled(t *testing.T) {
	priv, err := evmcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate eth key: %v", err)
	}
	pub := priv.PubKey().(*evmcrypto.PubKey)
	value, err := pub.Marshal()
	if err != nil {
		t.Fatalf("marshal pubkey: %v", err)
	}

	addr, err := AddressFromPubKeyAny(Options{EthSupport: true}, "/cosmos.evm.crypto.v1.ethsecp256k1.PubKey", value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := domain.NewAddress(pub.Address())
	if err != nil {
		t.Fatalf("build expected address: %v", err)
	}
	if addr != want {
		t.Errorf("address mismatch: got %s want %s", addr, want)
	}
}

func TestAddressFromPubKeyAnyUnsupportedType(t *testing.T) {
	_, err := AddressFromPubKeyAny(Options{}, "/some.unknown.PubKey", []byte("x"))
	if !errors.Is(err, domain.ErrUnsupportedPublicKey) {
		t.Fatalf("expected ErrUnsupportedPublicKey, got %v", err)
	}
}

func TestBech32ToAddressRoundTrip(t *testing.T) {
	raw := make([]byte, 20)
	raw[0] = 0x42
	encoded, err := bech32.ConvertAndEncode("cosmos", raw)
	if err != nil {
		t.Fatalf("encode bech32: %v", err)
	}

	addr, err := Bech32ToAddress(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Bytes()[0] != 0x42 {
		t.Errorf("expected decoded address to preserve payload, got %x", addr.Bytes())
	}
}

func TestBech32ToAddressRejectsInvalid(t *testing.T) {
	_, err := Bech32ToAddress("not-a-valid-bech32-address")
	if !errors.Is(err, domain.ErrBech32Address) {
		t.Fatalf("expected ErrBech32Address, got %v", err)
	}
}
