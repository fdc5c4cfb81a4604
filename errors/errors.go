package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which step of a foreign call failed
type Phase string

const (
	PhaseConstruct Phase = "construct" // object construction
	PhaseInvoke    Phase = "invoke"    // instance and static method calls
	PhaseField     Phase = "field"     // static and instance field lookups
	PhaseArray     Phase = "array"     // array allocation and region copies
	PhaseString    Phase = "string"    // string allocation and reads
	PhaseResolve   Phase = "resolve"   // enum to foreign constant resolution
	PhaseContext   Phase = "context"   // execution context checks
	PhaseTransport Phase = "transport" // wire and guest exchange
	PhaseDecode    Phase = "decode"    // foreign value to Go value
	PhaseBundle    Phase = "bundle"    // dependency archive handling
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseLoad      Phase = "load"      // guest module loading
)

// Kind categorizes the error
type Kind string

const (
	KindClassNotFound     Kind = "class_not_found"
	KindMethodNotFound    Kind = "method_not_found"
	KindFieldNotFound     Kind = "field_not_found"
	KindSignatureMismatch Kind = "signature_mismatch"
	KindTypeMismatch      Kind = "type_mismatch"
	KindException         Kind = "exception"
	KindAllocation        Kind = "allocation"
	KindNullReference     Kind = "null_reference"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindCrossContext      Kind = "cross_context"
	KindContextBusy       Kind = "context_busy"
	KindDetached          Kind = "detached"
	KindClosed            Kind = "closed"
	KindTransport         Kind = "transport"
	KindInvalidData       Kind = "invalid_data"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
)

// Error is the fault type surfaced by every foreign call.
// Callers match on it with errors.Is using a Phase/Kind template.
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Class     string
	Member    string
	Signature string
	Exception string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Class != "" || e.Member != "" {
		b.WriteString(" at ")
		b.WriteString(e.Class)
		if e.Member != "" {
			if e.Class != "" {
				b.WriteByte('.')
			}
			b.WriteString(e.Member)
		}
		b.WriteString(e.Signature)
	}

	if e.Exception != "" {
		b.WriteString(": ")
		b.WriteString(e.Exception)
	}

	if e.Detail != "" {
		if e.Exception != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase in the target matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return (t.Phase == "" || e.Phase == t.Phase) && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Member sets the class and member the call targeted
func (b *Builder) Member(class, member, sig string) *Builder {
	b.err.Class = class
	b.err.Member = member
	b.err.Signature = sig
	return b
}

// Exception sets the foreign exception class
func (b *Builder) Exception(class string) *Builder {
	b.err.Exception = class
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ClassNotFound creates a missing class error
func ClassNotFound(phase Phase, class string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindClassNotFound,
		Class:     class,
		Exception: "java/lang/NoClassDefFoundError",
	}
}

// MethodNotFound creates a missing method error.
// A signature that matches no overload is reported the same way.
func MethodNotFound(phase Phase, class, name, sig string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindMethodNotFound,
		Class:     class,
		Member:    name,
		Signature: sig,
		Exception: "java/lang/NoSuchMethodError",
	}
}

// FieldNotFound creates a missing field error
func FieldNotFound(phase Phase, class, name, sig string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindFieldNotFound,
		Class:     class,
		Member:    name,
		Signature: sig,
		Exception: "java/lang/NoSuchFieldError",
	}
}

// SignatureMismatch creates an error for arguments or results that do not
// fit the descriptor they were dispatched with
func SignatureMismatch(phase Phase, class, name, sig, detail string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindSignatureMismatch,
		Class:     class,
		Member:    name,
		Signature: sig,
		Detail:    detail,
	}
}

// TypeMismatch creates an error for a value read as the wrong kind
func TypeMismatch(phase Phase, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

// Exception creates an error for an exception thrown inside the foreign runtime
func Exception(phase Phase, exception, message string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindException,
		Exception: exception,
		Detail:    message,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, what string, length int) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindAllocation,
		Exception: "java/lang/OutOfMemoryError",
		Detail:    fmt.Sprintf("failed to allocate %s of length %d", what, length),
	}
}

// NullReference creates an error for a call on the null reference
func NullReference(phase Phase, class, name string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNullReference,
		Class:     class,
		Member:    name,
		Exception: "java/lang/NullPointerException",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Exception: "java/lang/ArrayIndexOutOfBoundsException",
		Detail:    fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:     index,
	}
}

// CrossContext creates an error for a handle used outside the context that produced it
func CrossContext(owner, current uint64) *Error {
	return &Error{
		Phase:  PhaseContext,
		Kind:   KindCrossContext,
		Detail: fmt.Sprintf("handle belongs to context %d, used in context %d", owner, current),
		Value:  owner,
	}
}

// ContextBusy creates an error for a call entered while another is in flight
func ContextBusy(id uint64) *Error {
	return &Error{
		Phase:  PhaseContext,
		Kind:   KindContextBusy,
		Detail: fmt.Sprintf("context %d already has a call in flight", id),
		Value:  id,
	}
}

// Detached creates an error for a call on a detached context
func Detached(id uint64) *Error {
	return &Error{
		Phase:  PhaseContext,
		Kind:   KindDetached,
		Detail: fmt.Sprintf("context %d is detached", id),
		Value:  id,
	}
}

// Closed creates an error for an operation on a finalized object
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s already closed", what),
	}
}

// Transport creates an error for a failed request exchange
func Transport(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseTransport,
		Kind:   KindTransport,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a guest loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// WithMember returns a copy of err annotated with the call target when the
// fault did not already carry one. Non-*Error values are wrapped as exceptions.
func WithMember(err error, phase Phase, class, member, sig string) *Error {
	e, ok := err.(*Error)
	if !ok {
		return &Error{
			Phase:     phase,
			Kind:      KindException,
			Class:     class,
			Member:    member,
			Signature: sig,
			Cause:     err,
		}
	}
	if e.Class != "" || e.Member != "" {
		return e
	}
	cp := *e
	cp.Class = class
	cp.Member = member
	cp.Signature = sig
	return &cp
}
