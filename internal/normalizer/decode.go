package normalizer

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"

	"github.com/hubcycle/imbibe/internal/domain"
	"github.com/hubcycle/imbibe/internal/signer"
)

type txFields struct {
	msgs          []domain.Msg
	memo          string
	timeoutHeight uint64
	signatures    [][]byte
	signerAnys    []domain.Msg
	fees          []domain.Coin
	feePayer      []byte
	granter       []byte
	gasLimit      uint64
}

// decodeTxFields pulls the auth_info/body fields a transaction is
// normalized from out of a decoded SDK transaction. raw is the same bytes
// the transaction was decoded from, re-read here for auth_info.fee.payer:
// sdk.FeeTx.FeePayer() falls back to the first message signer when the
// field is unset, which would mask step 2 of the payer cascade.
func decodeTxFields(tx sdk.Tx, raw []byte) (txFields, error) {
	var out txFields

	for _, m := range tx.GetMsgs() {
		any, err := sdkMsgToAny(m)
		if err != nil {
			return txFields{}, err
		}
		out.msgs = append(out.msgs, domain.Msg{TypeURL: any.TypeURL, Value: any.Value})
	}

	if memoTx, ok := tx.(interface{ GetMemo() string }); ok {
		out.memo = memoTx.GetMemo()
	}
	if toTx, ok := tx.(interface{ GetTimeoutHeight() uint64 }); ok {
		out.timeoutHeight = toTx.GetTimeoutHeight()
	}
	if feeTx, ok := tx.(sdk.FeeTx); ok {
		out.gasLimit = feeTx.GetGas()
		out.granter = feeTx.FeeGranter()
		for _, c := range feeTx.GetFee() {
			out.fees = append(out.fees, domain.Coin{Amount: c.Amount.String(), Denom: c.Denom})
		}
	}

	var rawTx txtypes.Tx
	if err := rawTx.Unmarshal(raw); err == nil && rawTx.AuthInfo != nil && rawTx.AuthInfo.Fee != nil && rawTx.AuthInfo.Fee.Payer != "" {
		if payerAddr, err := signer.Bech32ToAddress(rawTx.AuthInfo.Fee.Payer); err == nil {
			out.feePayer = payerAddr.Bytes()
		}
	}

	if sigTx, ok := tx.(authsigning.SigVerifiableTx); ok {
		sigsV2, err := sigTx.GetSignaturesV2()
		if err == nil {
			for _, s := range sigsV2 {
				if s.PubKey != nil {
					any, err := pubKeyToAny(s.PubKey)
					if err == nil {
						out.signerAnys = append(out.signerAnys, domain.Msg{TypeURL: any.TypeURL, Value: any.Value})
					}
				}
				if single, ok := s.Data.(*signing.SingleSignatureData); ok {
					out.signatures = append(out.signatures, single.Signature)
				}
			}
		}
	}

	return out, nil
}
