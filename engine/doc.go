// Package engine runs a WebAssembly build of the foreign library under
// wazero and exposes it as a request/response Exchanger.
//
// # Guest ABI
//
// A guest is a core module that exports:
//
//	memory                        linear memory
//	allocate(size i32) i32        buffer for an incoming request
//	invoke(ptr i32, len i32) i64  handle one request, return ptr<<32 | len
//	deallocate(ptr i32, len i32)  optional, releases either buffer
//
// cabi_realloc and cabi_free are accepted in place of allocate and
// deallocate. Requests and responses are opaque to this package; the wire
// package defines their encoding.
//
// # Lifecycle
//
//	eng, _ := engine.NewEngine(ctx, &engine.Config{CacheDir: dir})
//	mod, _ := eng.LoadModule(ctx, wasmBytes)
//	guest, _ := mod.Instantiate(ctx, nil)
//	resp, _ := guest.Exchange(ctx, req)
//
// WASI preview1 is instantiated once per engine, only for modules that
// import it. Compiled code is shared through a compilation cache, which can
// be persisted with Config.CacheDir.
//
// # Thread Safety
//
// Engine and Module are safe for concurrent use. A Guest has one linear
// memory; Exchange holds a mutex for the whole round trip.
package engine
