package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/hubcycle/imbibe/internal/domain"
)

// anyJSON is the Any-encoding of a public key as stored in the tx.signers
// jsonb column: {type_url, value: base64}.
type anyJSON struct {
	TypeURL string `json:"type_url"`
	Value   string `json:"value"`
}

func signersToJSON(t domain.Transaction) ([]byte, error) {
	entries := make([]anyJSON, 0, len(t.SignerAnys))
	for _, s := range t.SignerAnys {
		entries = append(entries, anyJSON{
			TypeURL: s.TypeURL,
			Value:   base64.StdEncoding.EncodeToString(s.Value),
		})
	}
	bz, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal signers: %w", domain.ErrStore)
	}
	return bz, nil
}

func signersFromJSON(raw []byte) ([]domain.Msg, error) {
	var entries []anyJSON
	if len(raw) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal signers: %w", domain.ErrStore)
	}
	out := make([]domain.Msg, 0, len(entries))
	for _, e := range entries {
		value, err := base64.StdEncoding.DecodeString(e.Value)
		if err != nil {
			return nil, fmt.Errorf("decode signer value: %w", domain.ErrStore)
		}
		out = append(out, domain.Msg{TypeURL: e.TypeURL, Value: value})
	}
	return out, nil
}
