package foreign

import (
	"strings"
	"testing"

	"github.com/wippyai/docbridge/errors"
)

func TestParseSignature(t *testing.T) {
	tests := []struct {
		desc   string
		params []Kind
		ret    Kind
	}{
		{"()V", nil, KindVoid},
		{"(FFF)Lcom/itextpdf/layout/IPropertyContainer;", []Kind{KindFloat, KindFloat, KindFloat}, KindObject},
		{"([F)V", []Kind{KindArray}, KindVoid},
		{"(Lcom/itextpdf/kernel/pdf/PdfDocument;Lcom/itextpdf/kernel/geom/PageSize;Z)V", []Kind{KindObject, KindObject, KindBoolean}, KindVoid},
		{"()[B", nil, KindArray},
		{"(IJDSCB)I", []Kind{KindInt, KindLong, KindDouble, KindShort, KindChar, KindByte}, KindInt},
	}

	for _, tt := range tests {
		sig, err := ParseSignature(tt.desc)
		if err != nil {
			t.Errorf("ParseSignature(%q): %v", tt.desc, err)
			continue
		}
		if len(sig.Params) != len(tt.params) {
			t.Errorf("%q: got %d params, want %d", tt.desc, len(sig.Params), len(tt.params))
			continue
		}
		for i, k := range tt.params {
			if sig.Params[i].Kind != k {
				t.Errorf("%q param %d: got %v, want %v", tt.desc, i, sig.Params[i].Kind, k)
			}
		}
		if sig.Return.Kind != tt.ret {
			t.Errorf("%q return: got %v, want %v", tt.desc, sig.Return.Kind, tt.ret)
		}
		if sig.String() != tt.desc {
			t.Errorf("String() = %q, want %q", sig.String(), tt.desc)
		}
	}
}

func TestParseSignature_Invalid(t *testing.T) {
	for _, desc := range []string{
		"",
		"V",
		"(",
		"(I",
		"(V)V",
		"(Ljava/lang/String)V",
		"(L;)V",
		"(I)",
		"(I)VX",
		"(Q)V",
		"([)V",
	} {
		_, err := ParseSignature(desc)
		if err == nil {
			t.Errorf("ParseSignature(%q) should fail", desc)
			continue
		}
		if !errors.Is(err, &errors.Error{Kind: errors.KindSignatureMismatch}) {
			t.Errorf("ParseSignature(%q): want signature_mismatch, got %v", desc, err)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	typ, err := ParseFieldType("Lcom/itextpdf/kernel/colors/Color;")
	if err != nil {
		t.Fatal(err)
	}
	if typ.Kind != KindObject || typ.Class != "com/itextpdf/kernel/colors/Color" {
		t.Fatalf("unexpected type %+v", typ)
	}
	if typ.ValueKind() != KindObject {
		t.Fatal("object field should carry object values")
	}

	arr, err := ParseFieldType("[[B")
	if err != nil {
		t.Fatal(err)
	}
	if arr.Kind != KindArray || arr.Elem.Kind != KindArray || arr.Elem.Elem.Kind != KindByte {
		t.Fatalf("unexpected type %s", arr)
	}
	if !arr.IsReference() {
		t.Fatal("arrays are references")
	}

	if _, err := ParseFieldType("V"); err == nil {
		t.Fatal("void field should fail")
	}
	if _, err := ParseFieldType("II"); err == nil {
		t.Fatal("trailing characters should fail")
	}
}

func TestParseSignature_DetailIsLiteral(t *testing.T) {
	_, err := ParseSignature("(%)V")
	var e *errors.Error
	if !errors.As(err, &e) {
		t.Fatalf("want *errors.Error, got %v", err)
	}
	if !strings.HasSuffix(e.Detail, "unknown type letter %") {
		t.Errorf("detail = %q", e.Detail)
	}
}
