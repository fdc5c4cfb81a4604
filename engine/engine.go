package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
)

// Engine owns a wazero runtime and the compilation cache its modules share.
type Engine struct {
	runtime      wazero.Runtime
	cache        wazero.CompilationCache
	wasiInitMu   sync.Mutex
	wasiInitDone atomic.Bool
}

// Config holds configuration for engine creation
type Config struct {
	// CacheDir persists compiled modules across processes. Empty keeps the
	// cache in memory.
	CacheDir string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// EnableThreads enables the WebAssembly threads proposal (experimental).
	EnableThreads bool
}

// NewEngine creates an engine. A nil cfg uses defaults.
func NewEngine(ctx context.Context, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	var cache wazero.CompilationCache
	if cfg.CacheDir != "" {
		c, err := wazero.NewCompilationCacheWithDir(cfg.CacheDir)
		if err != nil {
			return nil, errors.Load("open compilation cache", err)
		}
		cache = c
	} else {
		cache = wazero.NewCompilationCache()
	}

	runtimeCfg := wazero.NewRuntimeConfig().
		WithCompilationCache(cache).
		WithCloseOnContextDone(true)
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	if cfg.EnableThreads {
		runtimeCfg = runtimeCfg.WithCoreFeatures(api.CoreFeaturesV2 | experimental.CoreFeaturesThreads)
	}

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		cache:   cache,
	}, nil
}

// InitWASI instantiates WASI preview1 once for this engine's runtime.
// Safe for concurrent calls.
func (e *Engine) InitWASI(ctx context.Context) error {
	if e.wasiInitDone.Load() {
		return nil
	}

	e.wasiInitMu.Lock()
	defer e.wasiInitMu.Unlock()

	if e.wasiInitDone.Load() {
		return nil
	}
	if e.runtime.Module(wasi_snapshot_preview1.ModuleName) == nil {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
			return errors.Load("instantiate WASI", err)
		}
	}
	e.wasiInitDone.Store(true)
	return nil
}

// LoadModule compiles a guest and checks that it exports the call surface.
func (e *Engine) LoadModule(ctx context.Context, wasmBytes []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile failed", err)
	}

	exports := compiled.ExportedFunctions()
	if _, ok := compiled.ExportedMemories()[ExportMemory]; !ok {
		_ = compiled.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", ExportMemory)
	}
	if exports[ExportAllocate] == nil && exports[altAlloc] == nil {
		_ = compiled.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", ExportAllocate)
	}
	inv := exports[ExportInvoke]
	if inv == nil {
		_ = compiled.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", ExportInvoke)
	}
	if !sameTypes(inv.ParamTypes(), api.ValueTypeI32, api.ValueTypeI32) || !sameTypes(inv.ResultTypes(), api.ValueTypeI64) {
		_ = compiled.Close(ctx)
		return nil, errors.InvalidData(errors.PhaseLoad, "invoke must have type (i32, i32) -> i64")
	}

	Logger().Debug("module compiled", zap.Int("bytes", len(wasmBytes)), zap.Int("exports", len(exports)))
	return &Module{engine: e, compiled: compiled}, nil
}

// Close releases the runtime and every module instantiated from it.
func (e *Engine) Close(ctx context.Context) error {
	err := e.runtime.Close(ctx)
	if cerr := e.cache.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

func sameTypes(got []api.ValueType, want ...api.ValueType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
