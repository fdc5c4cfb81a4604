package wire

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/docbridge/errors"
)

// MaxMessageSize bounds decoded byte strings and arrays.
const MaxMessageSize = 64 << 20

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxArrayElements: MaxMessageSize / 4,
		MaxMapPairs:      64,
		MaxNestedLevels:  8,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes a Request or Response deterministically.
func Marshal(v any) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseTransport, errors.KindInvalidData, err, "encode")
	}
	return b, nil
}

// Unmarshal decodes a Request or Response.
func Unmarshal(b []byte, v any) error {
	if len(b) > MaxMessageSize {
		return errors.InvalidData(errors.PhaseTransport, "message exceeds size limit")
	}
	if err := decMode.Unmarshal(b, v); err != nil {
		return errors.Wrap(errors.PhaseTransport, errors.KindInvalidData, err, "decode")
	}
	return nil
}
