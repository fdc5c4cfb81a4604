// Package runtime attaches execution contexts to a foreign runtime.
//
// # Quick Start
//
//	ctx := context.Background()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt, err := runtime.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	env := rt.Attach(ctx)
//	out, err := jdk.NewByteArrayOutputStream(env)
//
// # Backends
//
//	New(ctx, wasm, cfg)      - WebAssembly guest under wazero, wire protocol
//	Open(ctx, cfg)           - New with the guest from config or the bundle
//	NewWithDispatcher(d)     - any foreign.Dispatcher, e.g. foreigntest.Runtime
//
// # Contexts
//
// An Env admits one call at a time. Goroutines that work in parallel must
// each Attach their own; handles cannot move between them. Close detaches
// every context, after which their calls fail with errors.KindDetached.
package runtime
