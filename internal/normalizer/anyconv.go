package normalizer

import (
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	proto "github.com/cosmos/gogoproto/proto"
)

func sdkMsgToAny(m proto.Message) (*codectypes.Any, error) {
	return codectypes.NewAnyWithValue(m)
}

func pubKeyToAny(pk cryptotypes.PubKey) (*codectypes.Any, error) {
	return codectypes.NewAnyWithValue(pk)
}
