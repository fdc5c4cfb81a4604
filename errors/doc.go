// Package errors provides the structured fault type for foreign calls.
//
// Every failure raised while talking to the foreign runtime is an *Error:
// a missing class, a member whose descriptor matches no overload, an
// exception thrown inside the runtime, an allocation failure, or a misuse of
// the execution context. The binding layer never recovers from these; it
// returns them unchanged to the caller.
//
// Errors are categorized by Phase (which step of the call failed) and Kind
// (error category), and record the class, member and descriptor involved.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseInvoke, errors.KindException).
//		Member("com/itextpdf/layout/Document", "add", sig).
//		Exception("com/itextpdf/kernel/PdfException").
//		Detail("document was closed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MethodNotFound(errors.PhaseInvoke, class, "setWidth", "(I)V")
//	err := errors.CrossContext(owner, current)
//
// All errors implement the standard error interface and support errors.Is/As.
// A template with an empty Phase matches the Kind in any phase:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindCrossContext}) { ... }
package errors
