// Package foreign provides the handle model and marshaling conventions for
// objects that live in an external managed runtime.
//
// # Handles
//
// A Handle is one foreign reference plus the id of the execution context
// that produced it. It never owns the referenced object; the foreign runtime
// reclaims it. Typed wrappers embed Handle:
//
//	type Rectangle struct{ foreign.Handle }
//
// # Execution Context
//
// Every operation goes through an *Env attached to a Dispatcher:
//
//	env := foreign.NewEnv(ctx, dispatcher, foreign.WithLogger(log))
//	h, err := env.NewObject("java/io/ByteArrayOutputStream", "()V")
//	v, err := env.CallMethod(h, "size", "()I")
//
// An Env admits one call at a time and rejects handles from other contexts:
//
//	KindContextBusy   a call was entered while another is in flight
//	KindCrossContext  a handle produced by another Env was passed in
//	KindDetached      the Env was detached
//
// Arguments are checked against the descriptor before dispatch, and the
// returned value's kind is checked after it. A mismatch is a fault.
//
// # Marshaling
//
// Byte buffers cross the boundary by copy with an unsigned/signed
// reinterpretation:
//
//	arr, err := foreign.NewByteArray(env, data)
//	back, err := foreign.ReadByteArray(env, arr)
//
// Enumerations implement Constant and resolve to static fields:
//
//	type Align int
//	func (a Align) ConstantClass() string      { return "com/example/Align" }
//	func (a Align) ConstantDescriptor() string { return "Lcom/example/Align;" }
//
//	h, err := foreign.ResolveObject(env, AlignCenter) // reads Align.CENTER
//
// Resolution performs a live lookup on every call unless the Env was created
// with WithConstantCache.
package foreign
