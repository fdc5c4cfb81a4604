package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseInvoke,
				Kind:      KindException,
				Class:     "com/itextpdf/layout/Document",
				Member:    "add",
				Signature: "(Lcom/itextpdf/layout/element/IBlockElement;)Lcom/itextpdf/layout/IPropertyContainer;",
				Exception: "com/itextpdf/kernel/PdfException",
				Detail:    "document was closed",
			},
			contains: []string{"[invoke]", "exception", "com/itextpdf/layout/Document.add(", "PdfException", "document was closed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseField,
				Kind:  KindFieldNotFound,
			},
			contains: []string{"[field]", "field_not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTransport,
				Kind:   KindTransport,
				Detail: "guest trapped",
				Cause:  errors.New("unreachable"),
			},
			contains: []string{"[transport]", "transport", "guest trapped", "caused by", "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseTransport,
		Kind:  KindTransport,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := MethodNotFound(PhaseInvoke, "a/B", "c", "()V")

	if !err.Is(&Error{Phase: PhaseInvoke, Kind: KindMethodNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseConstruct, Kind: KindMethodNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseInvoke, Kind: KindFieldNotFound}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, &Error{Kind: KindMethodNotFound}) {
		t.Error("empty phase should match any phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConstruct, KindException).
		Member("com/itextpdf/layout/element/Table", "<init>", "([F)V").
		Exception("java/lang/IllegalArgumentException").
		Value(0).
		Cause(cause).
		Detail("%d columns", 0).
		Build()

	if err.Phase != PhaseConstruct || err.Kind != KindException {
		t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
	}
	if err.Class != "com/itextpdf/layout/element/Table" || err.Member != "<init>" || err.Signature != "([F)V" {
		t.Errorf("member = %s %s %s", err.Class, err.Member, err.Signature)
	}
	if err.Exception != "java/lang/IllegalArgumentException" {
		t.Errorf("Exception = %v", err.Exception)
	}
	if err.Value != 0 {
		t.Errorf("Value = %v, want 0", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "0 columns" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ClassNotFound", func(t *testing.T) {
		err := ClassNotFound(PhaseConstruct, "a/Missing")
		if err.Kind != KindClassNotFound || err.Class != "a/Missing" {
			t.Errorf("got %v", err)
		}
	})

	t.Run("FieldNotFound", func(t *testing.T) {
		err := FieldNotFound(PhaseField, "a/B", "C", "I")
		if err.Kind != KindFieldNotFound || err.Exception != "java/lang/NoSuchFieldError" {
			t.Errorf("got %v", err)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseArray, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("CrossContext", func(t *testing.T) {
		err := CrossContext(1, 2)
		if err.Phase != PhaseContext || err.Kind != KindCrossContext {
			t.Errorf("got %v", err)
		}
		if !strings.Contains(err.Detail, "context 1") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseArray, "byte[]", -1)
		if err.Kind != KindAllocation || !strings.Contains(err.Detail, "-1") {
			t.Errorf("got %v", err)
		}
	})
}

func TestWithMember(t *testing.T) {
	bare := Exception(PhaseInvoke, "java/lang/IllegalStateException", "boom")
	annotated := WithMember(bare, PhaseInvoke, "a/B", "run", "()V")
	if annotated.Class != "a/B" || annotated.Member != "run" {
		t.Errorf("annotation missing: %v", annotated)
	}
	if bare.Class != "" {
		t.Error("WithMember must not mutate its input")
	}

	already := MethodNotFound(PhaseInvoke, "x/Y", "z", "()V")
	if got := WithMember(already, PhaseInvoke, "a/B", "run", "()V"); got != already {
		t.Error("WithMember should keep an existing target")
	}

	plain := errors.New("plain")
	wrapped := WithMember(plain, PhaseConstruct, "a/B", "<init>", "()V")
	if wrapped.Kind != KindException || !errors.Is(wrapped, plain) {
		t.Errorf("plain error not wrapped: %v", wrapped)
	}
}
