package domain

import "errors"

// Sentinel errors for the input-shape, decoding and I/O taxonomy. Callers
// wrap these with fmt.Errorf("...: %w", ErrX) to attach context and test
// with errors.Is.
var (
	ErrBlockData            = errors.New("block data")
	ErrHeight               = errors.New("height")
	ErrGas                  = errors.New("gas overflow")
	ErrBlockHash            = errors.New("block hash")
	ErrValidatorsHash       = errors.New("validators hash")
	ErrNextValidatorsHash   = errors.New("next validators hash")
	ErrConsensusHash        = errors.New("consensus hash")
	ErrAddress              = errors.New("address")
	ErrBech32Address        = errors.New("bech32 address")
	ErrTxMsgsMissing        = errors.New("tx msgs missing")
	ErrTxsInBlock           = errors.New("txs in block index overflow")
	ErrRpcHeight            = errors.New("rpc height overflow")
	ErrTxDecodeError        = errors.New("tx decode error")
	ErrTxDataDecodeError    = errors.New("tx data decode error")
	ErrUnsupportedPublicKey = errors.New("unsupported public key")
	ErrSigner               = errors.New("signer")
	ErrRpc                  = errors.New("rpc")
	ErrStore                = errors.New("store")
	ErrDbPool               = errors.New("db pool")
	ErrTimeout              = errors.New("timeout")
	ErrOther                = errors.New("other")
)

// NotFoundError distinguishes a missing row from other store errors.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + e.Key
}

func (e *NotFoundError) Unwrap() error { return ErrStore }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
