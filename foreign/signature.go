package foreign

import (
	"strings"

	"github.com/wippyai/docbridge/errors"
)

// Descriptor parsing for method and field signatures.
// Method descriptors look like "(FFLjava/lang/String;[B)V"; field descriptors
// are a single type such as "Lcom/itextpdf/kernel/geom/PageSize;" or "I".

// Type is one parsed descriptor type.
type Type struct {
	Elem  *Type  // element type for KindArray
	Class string // slash-separated class name for KindObject
	Kind  Kind
}

// IsReference reports whether values of t travel as object references.
func (t Type) IsReference() bool {
	return t.Kind == KindObject || t.Kind == KindArray
}

// ValueKind returns the Value kind that carries t.
func (t Type) ValueKind() Kind {
	if t.IsReference() {
		return KindObject
	}
	return t.Kind
}

// String renders t back into descriptor form.
func (t Type) String() string {
	switch t.Kind {
	case KindObject:
		return "L" + t.Class + ";"
	case KindArray:
		if t.Elem == nil {
			return "["
		}
		return "[" + t.Elem.String()
	default:
		return string(rune(t.Kind))
	}
}

// Signature is a parsed method descriptor.
type Signature struct {
	Params []Type
	Return Type
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range s.Params {
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	b.WriteString(s.Return.String())
	return b.String()
}

// ParseSignature parses a method descriptor.
func ParseSignature(desc string) (Signature, error) {
	if len(desc) < 3 || desc[0] != '(' {
		return Signature{}, invalidDescriptor(desc, "method descriptor must start with '('")
	}
	var sig Signature
	pos := 1
	for {
		if pos >= len(desc) {
			return Signature{}, invalidDescriptor(desc, "unterminated parameter list")
		}
		if desc[pos] == ')' {
			pos++
			break
		}
		t, next, err := parseType(desc, pos, false)
		if err != nil {
			return Signature{}, err
		}
		sig.Params = append(sig.Params, t)
		pos = next
	}
	ret, next, err := parseType(desc, pos, true)
	if err != nil {
		return Signature{}, err
	}
	if next != len(desc) {
		return Signature{}, invalidDescriptor(desc, "trailing characters after return type")
	}
	sig.Return = ret
	return sig, nil
}

// ParseFieldType parses a field descriptor.
func ParseFieldType(desc string) (Type, error) {
	t, next, err := parseType(desc, 0, false)
	if err != nil {
		return Type{}, err
	}
	if next != len(desc) {
		return Type{}, invalidDescriptor(desc, "trailing characters after field type")
	}
	return t, nil
}

func parseType(desc string, pos int, allowVoid bool) (Type, int, error) {
	if pos >= len(desc) {
		return Type{}, pos, invalidDescriptor(desc, "missing type")
	}
	switch k := Kind(desc[pos]); k {
	case KindBoolean, KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return Type{Kind: k}, pos + 1, nil
	case KindVoid:
		if !allowVoid {
			return Type{}, pos, invalidDescriptor(desc, "void is only valid as a return type")
		}
		return Type{Kind: KindVoid}, pos + 1, nil
	case KindObject:
		end := strings.IndexByte(desc[pos:], ';')
		if end <= 1 {
			return Type{}, pos, invalidDescriptor(desc, "unterminated class name")
		}
		return Type{Kind: KindObject, Class: desc[pos+1 : pos+end]}, pos + end + 1, nil
	case KindArray:
		elem, next, err := parseType(desc, pos+1, false)
		if err != nil {
			return Type{}, pos, err
		}
		return Type{Kind: KindArray, Elem: &elem}, next, nil
	default:
		return Type{}, pos, invalidDescriptor(desc, "unknown type letter "+string(desc[pos]))
	}
}

func invalidDescriptor(desc, detail string) *errors.Error {
	return errors.New(errors.PhaseInvoke, errors.KindSignatureMismatch).
		Member("", "", desc).
		Detail("%s", detail).
		Build()
}
