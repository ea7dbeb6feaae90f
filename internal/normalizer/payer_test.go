package normalizer

import (
	"errors"
	"testing"

	signingtypes "cosmossdk.io/x/tx/signing"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/signer"
)

func newTestRegistry(t *testing.T) *signer.Registry {
	t.Helper()
	ir := codectypes.NewInterfaceRegistry()
	ctx, err := signingtypes.NewContext(signingtypes.Options{
		AddressCodec:          addresscodec.NewBech32Codec("cosmos"),
		ValidatorAddressCodec: addresscodec.NewBech32Codec("cosmosvaloper"),
		FileResolver:          ir,
		TypeResolver:          ir,
	})
	if err != nil {
		t.Fatalf("build signing context: %v", err)
	}
	return signer.NewRegistry(ctx, ir)
}

func TestResolvePayerUsesExplicitFeePayer(t *testing.T) {
	payer := make([]byte, 20)
	payer[0] = 0xAB
	addr, err := resolvePayer(nil, signer.Options{}, payer, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Bytes()[0] != 0xAB {
		t.Errorf("expected explicit fee payer to win")
	}
}

func TestResolvePayerFailsWhenSignerHasNoPubKey(t *testing.T) {
	signerAnys := []domain.Msg{{TypeURL: "", Value: nil}}
	_, err := resolvePayer(nil, signer.Options{}, nil, signerAnys, nil)
	if !errors.Is(err, domain.ErrSigner) {
		t.Fatalf("expected ErrSigner, got %v", err)
	}
}

func TestResolvePayerFailsWhenNoMessageYieldsSigner(t *testing.T) {
	reg := newTestRegistry(t)
	msgs := []domain.Msg{{TypeURL: "/does.not.Exist", Value: []byte("x")}}
	_, err := resolvePayer(reg, signer.Options{}, nil, nil, msgs)
	if !errors.Is(err, domain.ErrSigner) {
		t.Fatalf("expected ErrSigner when no message yields a signer, got %v", err)
	}
}
