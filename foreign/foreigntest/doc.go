// Package foreigntest provides an in-process reference runtime that
// implements foreign.Dispatcher.
//
// The runtime simulates the subset of the java.io, javax.imageio and iText
// class library that the wrapper catalog binds. Objects live in a heap.Table;
// classes are Go values built with NewClass and registered by New:
//
//	rt := foreigntest.New()
//	env := foreign.NewEnv(ctx, rt)
//	baos, _ := env.NewObject("java/io/ByteArrayOutputStream", "()V")
//
// Member lookup is by name and descriptor and follows the superclass chain.
// Object arguments are checked for assignability, and a failure surfaces as a
// java/lang/ClassCastException fault. Layout setters record their values as
// element properties that tests read back with Property and Children.
//
// A PdfDocument writes its header when constructed. The body, cross-reference
// table and trailer are written on close, so output read before close is
// not a complete PDF.
package foreigntest
