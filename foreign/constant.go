package foreign

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Constant is a closed Go enumeration whose variants name static fields of
// a foreign class.
type Constant interface {
	// String returns the variant name in PascalCase, e.g. "DarkGray".
	String() string
	// ConstantClass is the class holding the fields.
	ConstantClass() string
	// ConstantDescriptor is the field descriptor shared by all variants.
	ConstantDescriptor() string
}

// FieldNamer overrides the derived field name for constants whose foreign
// name does not follow from the variant name.
type FieldNamer interface {
	FieldName() string
}

// ConstantName converts a PascalCase variant name to the SCREAMING_SNAKE_CASE
// used for foreign constants. A word boundary falls before an upper-case
// letter that follows a lower-case letter or digit, and before the last
// capital of an acronym that is followed by lower case. Digits never start a
// word, so "Cp1252" becomes "CP1252" and "IdentityH" becomes "IDENTITY_H".
// Underscores, dashes and spaces are treated as separators.
func ConstantName(name string) string {
	rs := []rune(name)
	var b strings.Builder
	b.Grow(len(rs) + 4)
	pendingSep := false
	for i, r := range rs {
		if r == '_' || r == '-' || r == ' ' {
			pendingSep = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			boundary := pendingSep
			if unicode.IsUpper(r) && i > 0 {
				prev := rs[i-1]
				switch {
				case unicode.IsLower(prev) || unicode.IsDigit(prev):
					boundary = true
				case unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
					boundary = true
				}
			}
			if boundary {
				b.WriteByte('_')
			}
		}
		pendingSep = false
		b.WriteRune(r)
	}
	// casers keep state and are not safe for concurrent use
	return cases.Upper(language.Und).String(b.String())
}

// FieldName returns the foreign field a constant resolves to.
func FieldName(c Constant) string {
	if n, ok := c.(FieldNamer); ok {
		return n.FieldName()
	}
	return ConstantName(c.String())
}

// ResolveConstant reads the static field behind c. Each call performs one
// live lookup unless the Env was created WithConstantCache.
func ResolveConstant(env *Env, c Constant) (Value, error) {
	class, field := c.ConstantClass(), FieldName(c)
	if v, ok := env.cachedConstant(class, field); ok {
		return v, nil
	}
	v, err := env.GetStaticField(class, field, c.ConstantDescriptor())
	if err != nil {
		return Value{}, err
	}
	env.storeConstant(class, field, v)
	return v, nil
}

// ResolveObject resolves an object-typed constant to its handle.
func ResolveObject(env *Env, c Constant) (Handle, error) {
	v, err := ResolveConstant(env, c)
	if err != nil {
		return Handle{}, err
	}
	return v.Object()
}

// ResolveInt resolves an int-typed constant.
func ResolveInt(env *Env, c Constant) (int32, error) {
	v, err := ResolveConstant(env, c)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// ResolveString resolves a String-typed constant and reads its contents.
func ResolveString(env *Env, c Constant) (string, error) {
	v, err := ResolveConstant(env, c)
	if err != nil {
		return "", err
	}
	return StringResult(env, v)
}

func (e *Env) cachedConstant(class, field string) (Value, bool) {
	if e.consts == nil {
		return Value{}, false
	}
	if e.detached.Load() {
		return Value{}, false
	}
	e.constsMu.Lock()
	defer e.constsMu.Unlock()
	v, ok := e.consts[constKey{class: class, field: field}]
	return v, ok
}

func (e *Env) storeConstant(class, field string, v Value) {
	if e.consts == nil {
		return
	}
	e.constsMu.Lock()
	e.consts[constKey{class: class, field: field}] = v
	e.constsMu.Unlock()
}
