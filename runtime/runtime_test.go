package runtime

import (
	"context"
	"sync"
	"testing"

	"github.com/wippyai/docbridge/config"
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/foreign/foreigntest"
)

// echoWasm answers every request with the request bytes.
var echoWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x0c, 0x02, 0x60, 0x01, 0x7f, 0x01, 0x7f, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	0x03, 0x03, 0x02, 0x00, 0x01,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x1e, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x00,
	0x06, 'i', 'n', 'v', 'o', 'k', 'e', 0x00, 0x01,
	0x0a, 0x14, 0x02,
	0x05, 0x00, 0x41, 0x80, 0x08, 0x0b,
	0x0c, 0x00, 0x20, 0x00, 0xad, 0x42, 0x20, 0x86, 0x20, 0x01, 0xad, 0x84, 0x0b,
}

func TestAttachIsolatesContexts(t *testing.T) {
	ctx := context.Background()
	rt := NewWithDispatcher(foreigntest.New())
	defer rt.Close(ctx)

	a := rt.Attach(ctx)
	b := rt.Attach(ctx)
	if a.ID() == b.ID() {
		t.Fatalf("contexts share id %d", a.ID())
	}

	h, err := a.NewObject("java/io/ByteArrayOutputStream", "()V")
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.CallMethod(h, "size", "()I")
	if !errors.Is(err, &errors.Error{Kind: errors.KindCrossContext}) {
		t.Errorf("expected cross_context, got %v", err)
	}
}

func TestParallelContexts(t *testing.T) {
	ctx := context.Background()
	rt := NewWithDispatcher(foreigntest.New())
	defer rt.Close(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env := rt.Attach(ctx)
			arr, err := foreign.NewByteArray(env, []byte{1, 2, 200})
			if err != nil {
				t.Error(err)
				return
			}
			if n, err := env.ArrayLength(arr); err != nil || n != 3 {
				t.Errorf("length = %d, %v", n, err)
			}
		}()
	}
	wg.Wait()
}

func TestCloseDetaches(t *testing.T) {
	ctx := context.Background()
	rt := NewWithDispatcher(foreigntest.New())
	env := rt.Attach(ctx)

	if err := rt.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rt.Close(ctx); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if !env.Detached() {
		t.Error("context still attached after Close")
	}
	_, err := env.NewString("x")
	if !errors.Is(err, &errors.Error{Kind: errors.KindDetached}) {
		t.Errorf("expected detached, got %v", err)
	}
	if late := rt.Attach(ctx); !late.Detached() {
		t.Error("Attach after Close returned a live context")
	}
}

func TestDetachForgetsContext(t *testing.T) {
	ctx := context.Background()
	rt := NewWithDispatcher(foreigntest.New())
	defer rt.Close(ctx)

	envs := make([]*foreign.Env, 100)
	for i := range envs {
		envs[i] = rt.Attach(ctx)
	}
	if n := rt.Attached(); n != 100 {
		t.Fatalf("Attached() = %d, want 100", n)
	}
	for _, env := range envs[1:] {
		env.Detach()
		env.Detach()
	}
	if n := rt.Attached(); n != 1 {
		t.Errorf("Attached() = %d after detaching, want 1", n)
	}
	if _, err := envs[0].NewString("still attached"); err != nil {
		t.Errorf("live context failed: %v", err)
	}
}

func TestNewWithGuest(t *testing.T) {
	ctx := context.Background()
	rt, err := New(ctx, echoWasm, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer rt.Close(ctx)

	// the echo guest returns the request, which is not a valid response
	_, err = rt.Attach(ctx).NewString("x")
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseTransport, Kind: errors.KindInvalidData}) {
		t.Errorf("expected transport/invalid_data, got %v", err)
	}
}

func TestOpenWithoutGuest(t *testing.T) {
	cfg := &config.Config{}
	_, err := Open(context.Background(), cfg)
	if err == nil {
		t.Skip("built with a bundled guest")
	}
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}) {
		t.Errorf("expected config/invalid_input, got %v", err)
	}
}

func TestOpenMissingGuestFile(t *testing.T) {
	cfg := &config.Config{GuestPath: "/nonexistent/guest.wasm"}
	_, err := Open(context.Background(), cfg)
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData}) {
		t.Errorf("expected load error, got %v", err)
	}
}
