package normalizer

import (
	"fmt"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/signer"
)

// resolvePayer determines who pays gas for a transaction: an explicit fee
// payer wins, else the first signer's public key, else (a signer info
// exists but carries no public key) a hard error, else a fallback over
// msgs in declaration order, taking the first signer yielded by the first
// message that yields any.
func resolvePayer(reg *signer.Registry, opts signer.Options, feePayer []byte, signerAnys []domain.Msg, msgs []domain.Msg) (domain.Address, error) {
	if len(feePayer) > 0 {
		addr, err := domain.NewAddress(feePayer)
		if err != nil {
			return domain.Address{}, fmt.Errorf("fee payer: %w", err)
		}
		return addr, nil
	}

	if len(signerAnys) > 0 {
		first := signerAnys[0]
		if first.TypeURL == "" {
			return domain.Address{}, fmt.Errorf("signer must have public key: %w", domain.ErrSigner)
		}
		addr, err := signer.AddressFromPubKeyAny(opts, first.TypeURL, first.Value)
		if err != nil {
			return domain.Address{}, err
		}
		return addr, nil
	}

	for _, msg := range msgs {
		addrs, err := reg.Signers(msg.TypeURL, msg.Value)
		if err != nil {
			return domain.Address{}, fmt.Errorf("resolve signers for %s: %w", msg.TypeURL, domain.ErrSigner)
		}
		if len(addrs) == 0 {
			continue
		}
		return domain.NewAddress(addrs[0])
	}

	return domain.Address{}, fmt.Errorf("at least one msg must contain signer when no signer info provided: %w", domain.ErrSigner)
}
