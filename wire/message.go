package wire

import (
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
)

// Op identifies the Dispatcher operation a Request performs.
type Op uint8

const (
	OpNewObject Op = iota + 1
	OpCallMethod
	OpCallStatic
	OpGetField
	OpGetStaticField
	OpNewArray
	OpArrayLength
	OpSetByteRegion
	OpGetByteRegion
	OpSetFloatRegion
	OpNewString
	OpGetString
)

var opNames = map[Op]string{
	OpNewObject:      "new",
	OpCallMethod:     "call",
	OpCallStatic:     "static",
	OpGetField:       "field",
	OpGetStaticField: "static-field",
	OpNewArray:       "new-array",
	OpArrayLength:    "array-length",
	OpSetByteRegion:  "set-byte-region",
	OpGetByteRegion:  "get-byte-region",
	OpSetFloatRegion: "set-float-region",
	OpNewString:      "new-string",
	OpGetString:      "get-string",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "unknown"
}

// Value is a foreign.Value on the wire. Objects travel as Ref, primitives
// as their raw bits.
type Value struct {
	Kind byte   `cbor:"1,keyasint"`
	Bits uint64 `cbor:"2,keyasint,omitempty"`
	Ref  uint32 `cbor:"3,keyasint,omitempty"`
}

// Request is one Dispatcher operation. Fields not used by Op are omitted.
type Request struct {
	Class  string    `cbor:"2,keyasint,omitempty"`
	Member string    `cbor:"3,keyasint,omitempty"`
	Sig    string    `cbor:"4,keyasint,omitempty"`
	Str    string    `cbor:"10,keyasint,omitempty"`
	Args   []Value   `cbor:"6,keyasint,omitempty"`
	Bytes  []byte    `cbor:"11,keyasint,omitempty"`
	Floats []float32 `cbor:"12,keyasint,omitempty"`
	Obj    uint32    `cbor:"5,keyasint,omitempty"`
	Length int32     `cbor:"8,keyasint,omitempty"`
	Start  int32     `cbor:"9,keyasint,omitempty"`
	Op     Op        `cbor:"1,keyasint"`
	Elem   byte      `cbor:"7,keyasint,omitempty"`
}

// Response answers one Request. A non-nil Fault means the operation failed
// and every other field is zero.
type Response struct {
	Fault  *Fault `cbor:"1,keyasint,omitempty"`
	Value  *Value `cbor:"2,keyasint,omitempty"`
	Str    string `cbor:"5,keyasint,omitempty"`
	Bytes  []byte `cbor:"6,keyasint,omitempty"`
	Ref    uint32 `cbor:"3,keyasint,omitempty"`
	Length int32  `cbor:"4,keyasint,omitempty"`
}

// Fault is an *errors.Error on the wire.
type Fault struct {
	Phase     string `cbor:"1,keyasint"`
	Kind      string `cbor:"2,keyasint"`
	Class     string `cbor:"3,keyasint,omitempty"`
	Member    string `cbor:"4,keyasint,omitempty"`
	Signature string `cbor:"5,keyasint,omitempty"`
	Exception string `cbor:"6,keyasint,omitempty"`
	Message   string `cbor:"7,keyasint,omitempty"`
}

// NewFault converts err to its wire form. Errors that are not *errors.Error
// become exceptions carrying the error text.
func NewFault(err error) *Fault {
	var e *errors.Error
	if !errors.As(err, &e) {
		return &Fault{
			Phase:   string(errors.PhaseInvoke),
			Kind:    string(errors.KindException),
			Message: err.Error(),
		}
	}
	return &Fault{
		Phase:     string(e.Phase),
		Kind:      string(e.Kind),
		Class:     e.Class,
		Member:    e.Member,
		Signature: e.Signature,
		Exception: e.Exception,
		Message:   e.Detail,
	}
}

// Err rebuilds the fault as an *errors.Error.
func (f *Fault) Err() *errors.Error {
	return &errors.Error{
		Phase:     errors.Phase(f.Phase),
		Kind:      errors.Kind(f.Kind),
		Class:     f.Class,
		Member:    f.Member,
		Signature: f.Signature,
		Exception: f.Exception,
		Detail:    f.Message,
	}
}

// FromValue encodes v.
func FromValue(v foreign.Value) Value {
	if v.Kind() == foreign.KindObject {
		return Value{Kind: byte(foreign.KindObject), Ref: uint32(v.Ref())}
	}
	return Value{Kind: byte(v.Kind()), Bits: v.Bits()}
}

// Decode rebuilds the foreign.Value. Object values carry no context.
func (v Value) Decode() foreign.Value {
	switch foreign.Kind(v.Kind) {
	case foreign.KindObject:
		return foreign.RefValue(foreign.Ref(v.Ref))
	case foreign.KindVoid:
		return foreign.Void
	}
	return foreign.FromBits(foreign.Kind(v.Kind), v.Bits)
}

func encodeArgs(args []foreign.Value) []Value {
	if len(args) == 0 {
		return nil
	}
	out := make([]Value, len(args))
	for i, a := range args {
		out[i] = FromValue(a)
	}
	return out
}

func decodeArgs(args []Value) []foreign.Value {
	if len(args) == 0 {
		return nil
	}
	out := make([]foreign.Value, len(args))
	for i, a := range args {
		out[i] = a.Decode()
	}
	return out
}
