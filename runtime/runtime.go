package runtime

import (
	"context"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wippyai/docbridge/bundle"
	"github.com/wippyai/docbridge/config"
	"github.com/wippyai/docbridge/engine"
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/wire"
)

// Runtime hands out execution contexts bound to one dispatcher.
type Runtime struct {
	dispatcher foreign.Dispatcher
	engine     *engine.Engine
	guest      *engine.Guest
	logger     *zap.Logger
	tracer     trace.Tracer
	envs       map[uint64]*foreign.Env
	mu         sync.Mutex
	cacheConst bool
	closed     bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger given to attached contexts.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithTracer traces every foreign call made through attached contexts.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runtime) { r.tracer = t }
}

// WithConstantCache enables constant caching on attached contexts.
func WithConstantCache() Option {
	return func(r *Runtime) { r.cacheConst = true }
}

// NewWithDispatcher wraps an existing dispatcher.
func NewWithDispatcher(d foreign.Dispatcher, opts ...Option) *Runtime {
	r := &Runtime{dispatcher: d, logger: Logger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New loads a guest build of the foreign library and talks to it over the
// wire protocol.
func New(ctx context.Context, wasm []byte, cfg *engine.Config, opts ...Option) (*Runtime, error) {
	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mod, err := eng.LoadModule(ctx, wasm)
	if err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}
	guest, err := mod.Instantiate(ctx, &engine.InstanceConfig{Stderr: os.Stderr})
	if err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}

	r := NewWithDispatcher(nil, opts...)
	r.dispatcher = wire.NewClient(guest, wire.WithClientLogger(r.logger))
	r.engine = eng
	r.guest = guest
	return r, nil
}

// Open builds a runtime from configuration. The guest is read from
// cfg.GuestPath, or from the embedded bundle when no path is set.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	wasm, err := guestBytes(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.ConstantCache {
		opts = append(opts, WithConstantCache())
	}
	return New(ctx, wasm, &engine.Config{
		CacheDir:         cfg.CacheDir,
		MemoryLimitPages: cfg.MemoryLimitPages,
	}, opts...)
}

func guestBytes(cfg *config.Config) ([]byte, error) {
	if cfg.GuestPath != "" {
		b, err := os.ReadFile(cfg.GuestPath)
		if err != nil {
			return nil, errors.Load("read guest", err)
		}
		return b, nil
	}
	if !bundle.Available() {
		return nil, errors.InvalidInput(errors.PhaseConfig, "no guest configured and no bundled guest")
	}
	if cfg.InstallDir != "" {
		path, err := bundle.Install(bundle.Dependencies, cfg.InstallDir, "guest.wasm")
		if err != nil {
			return nil, err
		}
		Logger().Debug("using installed guest", zap.String("path", path))
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Load("read installed guest", err)
		}
		return b, nil
	}
	return bundle.Load()
}

// Dispatcher returns the underlying call surface.
func (r *Runtime) Dispatcher() foreign.Dispatcher { return r.dispatcher }

// Attach returns a new execution context. Each goroutine needs its own.
// After Close, the returned context is already detached. A context is
// forgotten by the runtime once it detaches.
func (r *Runtime) Attach(ctx context.Context) *foreign.Env {
	opts := []foreign.Option{foreign.WithLogger(r.logger), foreign.WithDetachHook(r.forget)}
	if r.tracer != nil {
		opts = append(opts, foreign.WithTracer(r.tracer))
	}
	if r.cacheConst {
		opts = append(opts, foreign.WithConstantCache())
	}
	env := foreign.NewEnv(ctx, r.dispatcher, opts...)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		env.Detach()
		return env
	}
	if r.envs == nil {
		r.envs = make(map[uint64]*foreign.Env)
	}
	r.envs[env.ID()] = env
	r.mu.Unlock()

	r.logger.Debug("context attached", zap.Uint64("env", env.ID()))
	return env
}

func (r *Runtime) forget(env *foreign.Env) {
	r.mu.Lock()
	delete(r.envs, env.ID())
	r.mu.Unlock()
}

// Attached returns the number of live contexts.
func (r *Runtime) Attached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.envs)
}

// Close detaches every context and releases the guest.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	envs := r.envs
	r.envs = nil
	r.mu.Unlock()

	for _, env := range envs {
		env.Detach()
	}

	var firstErr error
	if r.guest != nil {
		firstErr = r.guest.Close(ctx)
	}
	if r.engine != nil {
		if err := r.engine.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
