package foreign

import (
	"fmt"
	"math"

	"github.com/wippyai/docbridge/errors"
)

// Ref is a raw reference into the foreign runtime's object space.
// Ref 0 is the null reference.
type Ref uint32

// Kind identifies the type of a value using descriptor letters.
type Kind byte

const (
	KindVoid    Kind = 'V'
	KindBoolean Kind = 'Z'
	KindByte    Kind = 'B'
	KindChar    Kind = 'C'
	KindShort   Kind = 'S'
	KindInt     Kind = 'I'
	KindLong    Kind = 'J'
	KindFloat   Kind = 'F'
	KindDouble  Kind = 'D'
	KindObject  Kind = 'L'
	KindArray   Kind = '['
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%q)", byte(k))
	}
}

// IsPrimitive reports whether k is one of the eight primitive kinds.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindBoolean, KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	}
	return false
}

// Value is an argument to or a result of a foreign call.
// Primitive payloads are stored as raw bits; object payloads as a Handle.
// Arrays travel as object values.
type Value struct {
	obj  Handle
	bits uint64
	kind Kind
}

// Void is the result of a call whose descriptor returns V.
var Void = Value{kind: KindVoid}

// Null is the null object reference.
var Null = Value{kind: KindObject}

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBoolean, bits: 1}
	}
	return Value{kind: KindBoolean}
}

func Byte(b int8) Value     { return Value{kind: KindByte, bits: uint64(uint8(b))} }
func Char(c uint16) Value   { return Value{kind: KindChar, bits: uint64(c)} }
func Short(s int16) Value   { return Value{kind: KindShort, bits: uint64(uint16(s))} }
func Int(i int32) Value     { return Value{kind: KindInt, bits: uint64(uint32(i))} }
func Long(l int64) Value    { return Value{kind: KindLong, bits: uint64(l)} }
func Float(f float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(f))} }
func Double(d float64) Value {
	return Value{kind: KindDouble, bits: math.Float64bits(d)}
}

// Obj passes a wrapped object as an argument. A nil Referent, or a nil
// pointer to a wrapper, is the null reference.
func Obj(r Referent) Value {
	if nilReferent(r) {
		return Null
	}
	return Value{kind: KindObject, obj: r.Foreign()}
}

// FromBits rebuilds a primitive value from its raw bits.
// Dispatchers use it when decoding values that crossed a process or guest boundary.
func FromBits(k Kind, bits uint64) Value {
	return Value{kind: k, bits: bits}
}

// RefValue is an object value that carries no context yet.
// Dispatchers return it; the Env stamps its own context on the way out.
func RefValue(r Ref) Value {
	return Value{kind: KindObject, obj: Handle{ref: r}}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Bits() uint64 { return v.bits }

// Ref returns the raw reference of an object value, 0 for anything else.
func (v Value) Ref() Ref { return v.obj.ref }

// IsNull reports whether v is an object value holding the null reference.
func (v Value) IsNull() bool { return v.kind == KindObject && v.obj.ref == 0 }

func (v Value) want(k Kind) error {
	if v.kind != k {
		return errors.TypeMismatch(errors.PhaseDecode, k.String(), v.kind.String())
	}
	return nil
}

func (v Value) Boolean() (bool, error) {
	if err := v.want(KindBoolean); err != nil {
		return false, err
	}
	return v.bits != 0, nil
}

func (v Value) Byte() (int8, error) {
	if err := v.want(KindByte); err != nil {
		return 0, err
	}
	return int8(uint8(v.bits)), nil
}

func (v Value) Char() (uint16, error) {
	if err := v.want(KindChar); err != nil {
		return 0, err
	}
	return uint16(v.bits), nil
}

func (v Value) Short() (int16, error) {
	if err := v.want(KindShort); err != nil {
		return 0, err
	}
	return int16(uint16(v.bits)), nil
}

func (v Value) Int() (int32, error) {
	if err := v.want(KindInt); err != nil {
		return 0, err
	}
	return int32(uint32(v.bits)), nil
}

func (v Value) Long() (int64, error) {
	if err := v.want(KindLong); err != nil {
		return 0, err
	}
	return int64(v.bits), nil
}

func (v Value) Float() (float32, error) {
	if err := v.want(KindFloat); err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v.bits)), nil
}

func (v Value) Double() (float64, error) {
	if err := v.want(KindDouble); err != nil {
		return 0, err
	}
	return math.Float64frombits(v.bits), nil
}

// Object returns the handle of an object value.
func (v Value) Object() (Handle, error) {
	if err := v.want(KindObject); err != nil {
		return Handle{}, err
	}
	return v.obj, nil
}

func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBoolean:
		return fmt.Sprintf("%t", v.bits != 0)
	case KindByte:
		return fmt.Sprintf("%d", int8(uint8(v.bits)))
	case KindChar:
		return fmt.Sprintf("%q", rune(uint16(v.bits)))
	case KindShort:
		return fmt.Sprintf("%d", int16(uint16(v.bits)))
	case KindInt:
		return fmt.Sprintf("%d", int32(uint32(v.bits)))
	case KindLong:
		return fmt.Sprintf("%d", int64(v.bits))
	case KindFloat:
		return fmt.Sprintf("%g", math.Float32frombits(uint32(v.bits)))
	case KindDouble:
		return fmt.Sprintf("%g", math.Float64frombits(v.bits))
	case KindObject:
		return v.obj.String()
	default:
		return "invalid"
	}
}
