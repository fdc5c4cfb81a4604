package engine

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/wippyai/docbridge/errors"
)

// echoWasm exports memory, allocate (always 1024) and invoke, which returns
// its own arguments packed, so the response is the request.
var echoWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// types: (i32) -> i32, (i32, i32) -> i64
	0x01, 0x0c, 0x02, 0x60, 0x01, 0x7f, 0x01, 0x7f, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	// functions
	0x03, 0x03, 0x02, 0x00, 0x01,
	// memory: 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// exports
	0x07, 0x1e, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x00,
	0x06, 'i', 'n', 'v', 'o', 'k', 'e', 0x00, 0x01,
	// code
	0x0a, 0x14, 0x02,
	0x05, 0x00, 0x41, 0x80, 0x08, 0x0b,
	0x0c, 0x00, 0x20, 0x00, 0xad, 0x42, 0x20, 0x86, 0x20, 0x01, 0xad, 0x84, 0x0b,
}

// trapWasm exports allocate (always 1024), an invoke that traps, and a
// deallocate that counts its calls in the exported global "frees".
var trapWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// types: (i32) -> i32, (i32, i32) -> i64, (i32, i32) -> ()
	0x01, 0x11, 0x03,
	0x60, 0x01, 0x7f, 0x01, 0x7f,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	0x60, 0x02, 0x7f, 0x7f, 0x00,
	// functions
	0x03, 0x04, 0x03, 0x00, 0x01, 0x02,
	// memory: 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// globals: mut i32 = 0
	0x06, 0x06, 0x01, 0x7f, 0x01, 0x41, 0x00, 0x0b,
	// exports
	0x07, 0x33, 0x05,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x00,
	0x06, 'i', 'n', 'v', 'o', 'k', 'e', 0x00, 0x01,
	0x0a, 'd', 'e', 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x02,
	0x05, 'f', 'r', 'e', 'e', 's', 0x03, 0x00,
	// code
	0x0a, 0x15, 0x03,
	0x05, 0x00, 0x41, 0x80, 0x08, 0x0b,
	0x03, 0x00, 0x00, 0x0b,
	0x09, 0x00, 0x23, 0x00, 0x41, 0x01, 0x6a, 0x24, 0x00, 0x0b,
}

// emptyWasm is a valid module with no exports.
var emptyWasm = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func newGuest(t *testing.T, cfg *Config) *Guest {
	t.Helper()
	return loadGuest(t, cfg, echoWasm)
}

func loadGuest(t *testing.T, cfg *Config, wasm []byte) *Guest {
	t.Helper()
	ctx := context.Background()

	eng, err := NewEngine(ctx, cfg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })

	mod, err := eng.LoadModule(ctx, wasm)
	if err != nil {
		t.Fatalf("LoadModule failed: %v", err)
	}
	g, err := mod.Instantiate(ctx, nil)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	return g
}

func TestPackUnpack(t *testing.T) {
	tests := []struct {
		ptr, length uint32
	}{
		{0, 0},
		{1024, 5},
		{0xFFFFFFFF, 0xFFFFFFFF},
	}
	for _, tc := range tests {
		p, l := Unpack(Pack(tc.ptr, tc.length))
		if p != tc.ptr || l != tc.length {
			t.Errorf("Unpack(Pack(%d, %d)) = %d, %d", tc.ptr, tc.length, p, l)
		}
	}
}

func TestNewEngine(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		cfg  *Config
		name string
	}{
		{nil, "nil config"},
		{&Config{}, "default config"},
		{&Config{MemoryLimitPages: 256}, "16MB limit"},
		{&Config{CacheDir: t.TempDir()}, "disk cache"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng, err := NewEngine(ctx, tc.cfg)
			if err != nil {
				t.Fatalf("NewEngine failed: %v", err)
			}
			if eng.runtime == nil {
				t.Error("engine runtime should not be nil")
			}
			if err := eng.Close(ctx); err != nil {
				t.Errorf("Close failed: %v", err)
			}
		})
	}
}

func TestInitWASI_Idempotent(t *testing.T) {
	ctx := context.Background()
	eng, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- eng.InitWASI(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("InitWASI failed: %v", err)
		}
	}
}

func TestLoadModule_MissingExports(t *testing.T) {
	ctx := context.Background()
	eng, err := NewEngine(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	_, err = eng.LoadModule(ctx, emptyWasm)
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Errorf("expected load/not_found, got %v", err)
	}

	_, err = eng.LoadModule(ctx, []byte("not wasm"))
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData}) {
		t.Errorf("expected load/invalid_data, got %v", err)
	}
}

func TestGuest_Exchange(t *testing.T) {
	g := newGuest(t, nil)
	ctx := context.Background()

	for _, req := range [][]byte{[]byte("hello"), {}, bytes.Repeat([]byte{0xAB}, 4096)} {
		resp, err := g.Exchange(ctx, req)
		if err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}
		if !bytes.Equal(resp, req) {
			t.Errorf("Exchange returned %d bytes, want %d", len(resp), len(req))
		}
	}

	if g.Memory().Size() != 65536 {
		t.Errorf("memory size = %d, want 65536", g.Memory().Size())
	}
}

func TestGuest_ExchangeOutOfBounds(t *testing.T) {
	g := newGuest(t, nil)

	_, err := g.Exchange(context.Background(), make([]byte, 70000))
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseTransport, Kind: errors.KindTransport}) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestGuest_ExchangeFailureFreesRequest(t *testing.T) {
	g := loadGuest(t, nil, trapWasm)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		_, err := g.Exchange(ctx, []byte("request"))
		if !errors.Is(err, &errors.Error{Phase: errors.PhaseTransport, Kind: errors.KindTransport}) {
			t.Fatalf("expected transport error, got %v", err)
		}
		if frees := g.instance.ExportedGlobal("frees").Get(); frees != uint64(i) {
			t.Errorf("after %d failed exchanges deallocate ran %d times", i, frees)
		}
	}
}

func TestGuest_Concurrent(t *testing.T) {
	g := newGuest(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := bytes.Repeat([]byte{byte(i)}, 64+i)
			resp, err := g.Exchange(ctx, req)
			if err != nil {
				t.Errorf("Exchange failed: %v", err)
				return
			}
			if !bytes.Equal(resp, req) {
				t.Errorf("goroutine %d got a foreign response", i)
			}
		}(i)
	}
	wg.Wait()
}

func TestGuest_Close(t *testing.T) {
	g := newGuest(t, nil)
	ctx := context.Background()

	if err := g.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := g.Close(ctx); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	_, err := g.Exchange(ctx, []byte("x"))
	if !errors.Is(err, &errors.Error{Kind: errors.KindClosed}) {
		t.Errorf("expected closed error, got %v", err)
	}
}
