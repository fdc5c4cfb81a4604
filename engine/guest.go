package engine

import (
	"context"
	"io"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
)

// Module is a compiled guest.
type Module struct {
	engine   *Engine
	compiled wazero.CompiledModule
}

// InstanceConfig holds configuration for module instantiation
type InstanceConfig struct {
	Stdout io.Writer
	Stderr io.Writer
	Name   string
	Args   []string
	Env    map[string]string
}

func (m *Module) needsWASI() bool {
	for _, f := range m.compiled.ImportedFunctions() {
		if mod, _, ok := f.Import(); ok && mod == wasi_snapshot_preview1.ModuleName {
			return true
		}
	}
	return false
}

// Instantiate starts a guest instance. WASI is instantiated first when the
// module imports it.
func (m *Module) Instantiate(ctx context.Context, cfg *InstanceConfig) (*Guest, error) {
	if cfg == nil {
		cfg = &InstanceConfig{}
	}
	if m.needsWASI() {
		if err := m.engine.InitWASI(ctx); err != nil {
			return nil, err
		}
	}

	// anonymous so several guests can run side by side
	modConfig := wazero.NewModuleConfig().WithName(cfg.Name).WithStartFunctions("_initialize")
	if cfg.Stdout != nil {
		modConfig = modConfig.WithStdout(cfg.Stdout)
	}
	if cfg.Stderr != nil {
		modConfig = modConfig.WithStderr(cfg.Stderr)
	}
	if len(cfg.Args) > 0 {
		modConfig = modConfig.WithArgs(cfg.Args...)
	}
	for k, v := range cfg.Env {
		modConfig = modConfig.WithEnv(k, v)
	}

	instance, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, modConfig)
	if err != nil {
		return nil, errors.Load("instantiate failed", err)
	}

	g := &Guest{
		instance: instance,
		memory:   &Memory{mem: instance.Memory()},
		invokeFn: instance.ExportedFunction(ExportInvoke),
		stackBuf: make([]uint64, 4),
	}
	if fn := instance.ExportedFunction(ExportAllocate); fn != nil {
		g.allocFn = fn
	} else {
		g.allocFn = instance.ExportedFunction(altAlloc)
		g.reallocStyle = true
	}
	if fn := instance.ExportedFunction(ExportDeallocate); fn != nil {
		g.freeFn = fn
	} else {
		g.freeFn = instance.ExportedFunction(altFree)
	}
	return g, nil
}

// Close releases the compiled module.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// Guest is a running instance that answers encoded requests. It implements
// wire.Exchanger. One instance has a single linear memory, so Exchange
// serialises callers.
type Guest struct {
	allocFn      api.Function
	freeFn       api.Function
	invokeFn     api.Function
	instance     api.Module
	memory       *Memory
	stackBuf     []uint64
	mu           sync.Mutex
	reallocStyle bool
}

// Memory exposes the guest's linear memory.
func (g *Guest) Memory() *Memory { return g.memory }

func (g *Guest) alloc(ctx context.Context, size uint32) (uint32, error) {
	if g.reallocStyle {
		// cabi_realloc(old_ptr, old_size, align, new_size)
		g.stackBuf[0], g.stackBuf[1], g.stackBuf[2], g.stackBuf[3] = 0, 0, 1, uint64(size)
		if err := g.allocFn.CallWithStack(ctx, g.stackBuf[:4]); err != nil {
			return 0, err
		}
		return uint32(g.stackBuf[0]), nil
	}
	g.stackBuf[0] = uint64(size)
	if err := g.allocFn.CallWithStack(ctx, g.stackBuf[:1]); err != nil {
		return 0, err
	}
	return uint32(g.stackBuf[0]), nil
}

func (g *Guest) free(ctx context.Context, ptr, size uint32) {
	if g.freeFn == nil || ptr == 0 {
		return
	}
	def := g.freeFn.Definition()
	params := len(def.ParamTypes())
	if params < 1 || max(params, len(def.ResultTypes())) > len(g.stackBuf) {
		return
	}
	// deallocate(ptr, size) or cabi_free(ptr, size, align)
	g.stackBuf[0], g.stackBuf[1], g.stackBuf[2] = uint64(ptr), uint64(size), 1
	if err := g.freeFn.CallWithStack(ctx, g.stackBuf); err != nil {
		Logger().Warn("free failed", zap.Uint32("ptr", ptr), zap.Uint32("size", size), zap.Error(err))
	}
}

// Exchange copies req into guest memory, calls invoke and copies the
// response out. Guest buffers are released when the guest exports a
// deallocator.
func (g *Guest) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.instance == nil {
		return nil, errors.Closed(errors.PhaseTransport, "guest")
	}

	size := uint32(len(req))
	ptr, err := g.alloc(ctx, size)
	if err != nil {
		return nil, errors.Transport("allocate request buffer", err)
	}
	defer g.free(ctx, ptr, size)

	if err := g.memory.Write(ptr, req); err != nil {
		return nil, errors.Transport("write request", err)
	}

	g.stackBuf[0], g.stackBuf[1] = uint64(ptr), uint64(size)
	if err := g.invokeFn.CallWithStack(ctx, g.stackBuf[:2]); err != nil {
		return nil, errors.Transport("invoke", err)
	}
	outPtr, outLen := Unpack(g.stackBuf[0])

	data, err := g.memory.Read(outPtr, outLen)
	if err != nil {
		return nil, errors.Transport("read response", err)
	}
	resp := make([]byte, len(data))
	copy(resp, data)

	if outPtr != ptr {
		g.free(ctx, outPtr, outLen)
	}

	Logger().Debug("exchange", zap.Int("request", len(req)), zap.Int("response", len(resp)))
	return resp, nil
}

// Close stops the instance. Further exchanges fail with KindClosed.
func (g *Guest) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.instance == nil {
		return nil
	}
	err := g.instance.Close(ctx)
	g.instance = nil
	g.memory = nil
	return err
}
