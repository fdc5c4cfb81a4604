package foreign

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
)

var nextEnvID atomic.Uint64

// Env is the execution context every foreign operation runs under.
//
// An Env admits one call at a time. A second call entered while one is in
// flight, from another goroutine or reentrantly, fails with KindContextBusy
// instead of interleaving. Handles carry the id of the Env that produced
// them and are rejected by every other Env with KindCrossContext.
//
// Goroutines that need to talk to the same runtime concurrently attach
// their own Env each.
type Env struct {
	ctx      context.Context
	d        Dispatcher
	logger   *zap.Logger
	tracer   trace.Tracer
	consts   map[constKey]Value
	onDetach func(*Env)
	constsMu sync.Mutex
	id       uint64
	busy     atomic.Bool
	detached atomic.Bool
}

type constKey struct {
	class string
	field string
}

// Option configures an Env.
type Option func(*Env)

// WithLogger sets the logger for dispatch tracing at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// WithTracer records one span per foreign call.
func WithTracer(t trace.Tracer) Option {
	return func(e *Env) { e.tracer = t }
}

// WithConstantCache memoizes constant resolution per (class, field) for the
// lifetime of the Env. Off by default: every resolution is a live lookup.
func WithConstantCache() Option {
	return func(e *Env) { e.consts = make(map[constKey]Value) }
}

// WithDetachHook runs fn once, on the first Detach.
func WithDetachHook(fn func(*Env)) Option {
	return func(e *Env) { e.onDetach = fn }
}

// NewEnv attaches a new execution context to d. ctx is passed to every
// dispatcher call made through the context.
func NewEnv(ctx context.Context, d Dispatcher, opts ...Option) *Env {
	e := &Env{
		ctx: ctx,
		d:   d,
		id:  nextEnvID.Add(1),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = Logger()
	}
	e.logger = e.logger.With(zap.Uint64("env", e.id))
	return e
}

// ID returns the context id stamped on handles produced by e.
func (e *Env) ID() uint64 { return e.id }

// Context returns the context passed to the dispatcher.
func (e *Env) Context() context.Context { return e.ctx }

// Detach makes e unusable. Handles produced by e stay valid references in
// the foreign runtime but can no longer be used through any context.
func (e *Env) Detach() {
	if e.detached.CompareAndSwap(false, true) && e.onDetach != nil {
		e.onDetach(e)
	}
}

// Detached reports whether Detach was called.
func (e *Env) Detached() bool { return e.detached.Load() }

// Owns reports whether h may be used with e.
func (e *Env) Owns(h Handle) bool {
	return h.ref == 0 || h.ctx == e.id
}

func (e *Env) own(h Handle) error {
	if e.Owns(h) {
		return nil
	}
	return errors.CrossContext(h.ctx, e.id)
}

func (e *Env) stamp(r Ref) Handle {
	if r == 0 {
		return Handle{}
	}
	return Handle{ref: r, ctx: e.id}
}

func (e *Env) enter() error {
	if e.detached.Load() {
		return errors.Detached(e.id)
	}
	if !e.busy.CompareAndSwap(false, true) {
		return errors.ContextBusy(e.id)
	}
	return nil
}

func (e *Env) leave() {
	e.busy.Store(false)
}

// dispatch runs fn as one foreign call, with logging, tracing and fault annotation.
func (e *Env) dispatch(op string, phase errors.Phase, class, member, sig string, fn func(ctx context.Context) error) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	ctx := e.ctx
	var span trace.Span
	if e.tracer != nil {
		ctx, span = e.tracer.Start(ctx, "foreign."+op, trace.WithAttributes(
			attribute.String("foreign.class", class),
			attribute.String("foreign.member", member),
			attribute.String("foreign.signature", sig),
		))
		defer span.End()
	}

	if ce := e.logger.Check(zap.DebugLevel, "foreign call"); ce != nil {
		ce.Write(zap.String("op", op), zap.String("class", class), zap.String("member", member), zap.String("sig", sig))
	}

	if err := fn(ctx); err != nil {
		fault := errors.WithMember(err, phase, class, member, sig)
		e.logger.Debug("foreign fault", zap.String("op", op), zap.String("member", member), zap.Error(fault))
		if span != nil {
			span.RecordError(fault)
			span.SetStatus(codes.Error, string(fault.Kind))
		}
		return fault
	}
	return nil
}

func (e *Env) checkArgs(phase errors.Phase, class, member, desc string, args []Value) (Signature, error) {
	sig, err := ParseSignature(desc)
	if err != nil {
		return Signature{}, errors.WithMember(err, phase, class, member, desc)
	}
	if len(args) != len(sig.Params) {
		return Signature{}, errors.SignatureMismatch(phase, class, member, desc, "argument count does not match descriptor")
	}
	for i, a := range args {
		p := sig.Params[i]
		if a.kind != p.ValueKind() {
			return Signature{}, errors.SignatureMismatch(phase, class, member, desc,
				"argument "+strconv.Itoa(i)+" is "+a.kind.String()+", descriptor wants "+p.String())
		}
		if a.kind == KindObject {
			if err := e.own(a.obj); err != nil {
				return Signature{}, err
			}
		}
	}
	return sig, nil
}

func (e *Env) checkResult(phase errors.Phase, class, member, desc string, want Type, v Value) (Value, error) {
	if v.kind != want.ValueKind() {
		return Value{}, errors.SignatureMismatch(phase, class, member, desc,
			"runtime returned "+v.kind.String()+", descriptor wants "+want.String())
	}
	if v.kind == KindObject {
		v.obj = e.stamp(v.obj.ref)
	}
	return v, nil
}

func (e *Env) receiver(phase errors.Phase, obj Referent, member string) (Handle, error) {
	if nilReferent(obj) {
		return Handle{}, errors.NullReference(phase, "", member)
	}
	h := obj.Foreign()
	if h.ref == 0 {
		return Handle{}, errors.NullReference(phase, "", member)
	}
	if err := e.own(h); err != nil {
		return Handle{}, err
	}
	return h, nil
}

// NewObject constructs an instance of class with the constructor matching sig.
// A failed construction leaves no handle.
func (e *Env) NewObject(class, sig string, args ...Value) (Handle, error) {
	s, err := e.checkArgs(errors.PhaseConstruct, class, "<init>", sig, args)
	if err != nil {
		return Handle{}, err
	}
	if s.Return.Kind != KindVoid {
		return Handle{}, errors.SignatureMismatch(errors.PhaseConstruct, class, "<init>", sig, "constructor descriptor must return V")
	}
	var ref Ref
	err = e.dispatch("new", errors.PhaseConstruct, class, "<init>", sig, func(ctx context.Context) error {
		var derr error
		ref, derr = e.d.NewObject(ctx, class, sig, args)
		return derr
	})
	if err != nil {
		return Handle{}, err
	}
	if ref == 0 {
		return Handle{}, errors.NullReference(errors.PhaseConstruct, class, "<init>")
	}
	return e.stamp(ref), nil
}

// CallMethod invokes an instance method on obj.
func (e *Env) CallMethod(obj Referent, name, sig string, args ...Value) (Value, error) {
	h, err := e.receiver(errors.PhaseInvoke, obj, name)
	if err != nil {
		return Value{}, err
	}
	s, err := e.checkArgs(errors.PhaseInvoke, "", name, sig, args)
	if err != nil {
		return Value{}, err
	}
	var v Value
	err = e.dispatch("call", errors.PhaseInvoke, "", name, sig, func(ctx context.Context) error {
		var derr error
		v, derr = e.d.CallMethod(ctx, h.ref, name, sig, args)
		return derr
	})
	if err != nil {
		return Value{}, err
	}
	return e.checkResult(errors.PhaseInvoke, "", name, sig, s.Return, v)
}

// CallStaticMethod invokes a static method of class.
func (e *Env) CallStaticMethod(class, name, sig string, args ...Value) (Value, error) {
	s, err := e.checkArgs(errors.PhaseInvoke, class, name, sig, args)
	if err != nil {
		return Value{}, err
	}
	var v Value
	err = e.dispatch("static", errors.PhaseInvoke, class, name, sig, func(ctx context.Context) error {
		var derr error
		v, derr = e.d.CallStaticMethod(ctx, class, name, sig, args)
		return derr
	})
	if err != nil {
		return Value{}, err
	}
	return e.checkResult(errors.PhaseInvoke, class, name, sig, s.Return, v)
}

// GetField reads an instance field of obj.
func (e *Env) GetField(obj Referent, name, sig string) (Value, error) {
	h, err := e.receiver(errors.PhaseField, obj, name)
	if err != nil {
		return Value{}, err
	}
	t, err := ParseFieldType(sig)
	if err != nil {
		return Value{}, errors.WithMember(err, errors.PhaseField, "", name, sig)
	}
	var v Value
	err = e.dispatch("field", errors.PhaseField, "", name, sig, func(ctx context.Context) error {
		var derr error
		v, derr = e.d.GetField(ctx, h.ref, name, sig)
		return derr
	})
	if err != nil {
		return Value{}, err
	}
	return e.checkResult(errors.PhaseField, "", name, sig, t, v)
}

// GetStaticField reads a static field of class.
func (e *Env) GetStaticField(class, name, sig string) (Value, error) {
	t, err := ParseFieldType(sig)
	if err != nil {
		return Value{}, errors.WithMember(err, errors.PhaseField, class, name, sig)
	}
	var v Value
	err = e.dispatch("static-field", errors.PhaseField, class, name, sig, func(ctx context.Context) error {
		var derr error
		v, derr = e.d.GetStaticField(ctx, class, name, sig)
		return derr
	})
	if err != nil {
		return Value{}, err
	}
	return e.checkResult(errors.PhaseField, class, name, sig, t, v)
}

// NewArray allocates a primitive array of the given element kind.
func (e *Env) NewArray(elem Kind, length int32) (Handle, error) {
	if !elem.IsPrimitive() {
		return Handle{}, errors.InvalidInput(errors.PhaseArray, "array element must be primitive, got "+elem.String())
	}
	if length < 0 {
		return Handle{}, errors.AllocationFailed(errors.PhaseArray, elem.String()+"[]", int(length))
	}
	var ref Ref
	err := e.dispatch("new-array", errors.PhaseArray, "["+string(rune(elem)), "", "", func(ctx context.Context) error {
		var derr error
		ref, derr = e.d.NewArray(ctx, elem, length)
		return derr
	})
	if err != nil {
		return Handle{}, err
	}
	if ref == 0 {
		return Handle{}, errors.AllocationFailed(errors.PhaseArray, elem.String()+"[]", int(length))
	}
	return e.stamp(ref), nil
}

// ArrayLength returns the length of a foreign array.
func (e *Env) ArrayLength(arr Referent) (int32, error) {
	h, err := e.receiver(errors.PhaseArray, arr, "length")
	if err != nil {
		return 0, err
	}
	var n int32
	err = e.dispatch("array-length", errors.PhaseArray, "", "length", "", func(ctx context.Context) error {
		var derr error
		n, derr = e.d.ArrayLength(ctx, h.ref)
		return derr
	})
	return n, err
}

// SetByteArrayRegion copies buf into arr starting at start.
func (e *Env) SetByteArrayRegion(arr Referent, start int32, buf []int8) error {
	h, err := e.receiver(errors.PhaseArray, arr, "setRegion")
	if err != nil {
		return err
	}
	return e.dispatch("set-byte-region", errors.PhaseArray, "[B", "setRegion", "", func(ctx context.Context) error {
		return e.d.SetByteArrayRegion(ctx, h.ref, start, buf)
	})
}

// GetByteArrayRegion copies len(buf) elements of arr starting at start into buf.
func (e *Env) GetByteArrayRegion(arr Referent, start int32, buf []int8) error {
	h, err := e.receiver(errors.PhaseArray, arr, "getRegion")
	if err != nil {
		return err
	}
	return e.dispatch("get-byte-region", errors.PhaseArray, "[B", "getRegion", "", func(ctx context.Context) error {
		return e.d.GetByteArrayRegion(ctx, h.ref, start, buf)
	})
}

// SetFloatArrayRegion copies buf into arr starting at start.
func (e *Env) SetFloatArrayRegion(arr Referent, start int32, buf []float32) error {
	h, err := e.receiver(errors.PhaseArray, arr, "setRegion")
	if err != nil {
		return err
	}
	return e.dispatch("set-float-region", errors.PhaseArray, "[F", "setRegion", "", func(ctx context.Context) error {
		return e.d.SetFloatArrayRegion(ctx, h.ref, start, buf)
	})
}

// NewString allocates a new foreign string. Strings are never interned.
func (e *Env) NewString(s string) (Handle, error) {
	var ref Ref
	err := e.dispatch("new-string", errors.PhaseString, "java/lang/String", "<init>", "", func(ctx context.Context) error {
		var derr error
		ref, derr = e.d.NewString(ctx, s)
		return derr
	})
	if err != nil {
		return Handle{}, err
	}
	if ref == 0 {
		return Handle{}, errors.AllocationFailed(errors.PhaseString, "java/lang/String", len(s))
	}
	return e.stamp(ref), nil
}

// GetString reads the contents of a foreign string.
func (e *Env) GetString(str Referent) (string, error) {
	h, err := e.receiver(errors.PhaseString, str, "toString")
	if err != nil {
		return "", err
	}
	var s string
	err = e.dispatch("get-string", errors.PhaseString, "java/lang/String", "toString", "", func(ctx context.Context) error {
		var derr error
		s, derr = e.d.GetString(ctx, h.ref)
		return derr
	})
	return s, err
}

