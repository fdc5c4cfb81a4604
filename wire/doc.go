// Package wire carries foreign calls across a byte boundary.
//
// Every Dispatcher operation is encoded as a CBOR Request, handed to an
// Exchanger and answered by a CBOR Response. A Server decodes requests and
// applies them to any foreign.Dispatcher; a Client implements
// foreign.Dispatcher on top of any Exchanger:
//
//	srv := wire.NewServer(runtime)
//	client := wire.NewClient(srv) // in-process loopback
//	env := foreign.NewEnv(ctx, client)
//
// The engine package provides an Exchanger backed by a WebAssembly guest.
//
// Faults cross the boundary as Fault records and are rebuilt as
// *errors.Error with the same phase, kind and exception. Transport and
// decoding failures are reported with errors.PhaseTransport.
package wire
