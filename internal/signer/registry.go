// Package signer resolves the accounts authorizing a transaction message,
// driven by the cosmos.msg.v1.signer protobuf option exposed through the
// cosmos-sdk's runtime signing context rather than a custom build-time
// table — the descriptor set is already loaded by the SDK's proto registry
// at process start.
package signer

import (
	"fmt"

	signingtypes "cosmossdk.io/x/tx/signing"
	"github.com/cosmos/cosmos-sdk/codec/types"
	"google.golang.org/protobuf/proto"
)

// Registry extracts signer addresses from opaque (type_url, value) message
// pairs, backed by the cosmos-sdk signing context built over the process's
// registered proto types. Unknown type-URLs yield no signers.
type Registry struct {
	ctx      *signingtypes.Context
	registry types.InterfaceRegistry
}

func NewRegistry(ctx *signingtypes.Context, registry types.InterfaceRegistry) *Registry {
	return &Registry{ctx: ctx, registry: registry}
}

// Signers decodes value as the message named by typeURL and returns the
// raw 20-byte signer addresses in declaration order, per the message's
// registered cosmos.msg.v1.signer fields. A type-URL absent from the
// registry, or one resolvable but carrying no signer option, yields
// (nil, nil): the caller's fallback skips it silently and moves on.
func (r *Registry) Signers(typeURL string, value []byte) ([][]byte, error) {
	msg, err := r.decode(typeURL, value)
	if err != nil {
		return nil, nil
	}
	signers, err := r.ctx.GetSigners(msg)
	if err != nil {
		return nil, nil
	}
	return signers, nil
}

func (r *Registry) decode(typeURL string, value []byte) (proto.Message, error) {
	msg, err := r.registry.Resolve(typeURL)
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(value, msg); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", typeURL, err)
	}
	return msg, nil
}
