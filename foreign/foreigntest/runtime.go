package foreigntest

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/heap"
)

// Runtime is an in-process foreign runtime that simulates the part of the
// document class library the catalog binds. It implements foreign.Dispatcher.
//
// Members are looked up by exact name and descriptor, walking the superclass
// chain; a descriptor that matches nothing raises NoSuchMethodError. Object
// arguments are checked for assignability to the declared parameter class.
type Runtime struct {
	heap      *heap.Table
	classes   map[string]*Class
	constants map[string]foreign.Ref
	logger    *zap.Logger
	mu        sync.Mutex
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger logs heap activity at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// New creates a runtime with the standard class set loaded.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		heap:      heap.NewTable(),
		classes:   make(map[string]*Class),
		constants: make(map[string]foreign.Ref),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.heap.Subscribe(heap.LogObserver{Logger: r.logger})

	defineLang(r)
	defineIO(r)
	defineImageIO(r)
	defineFonts(r)
	defineKernel(r)
	defineLayout(r)
	defineBarcodes(r)
	return r
}

// Define registers c, replacing any class of the same name.
func (r *Runtime) Define(c *Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[c.Name] = c
}

// Heap exposes the object table.
func (r *Runtime) Heap() *heap.Table { return r.heap }

// Close finalizes every object.
func (r *Runtime) Close() error { return r.heap.Close() }

// Len returns the number of live objects.
func (r *Runtime) Len() int { return r.heap.Len() }

// ClassOf returns the runtime class of ref.
func (r *Runtime) ClassOf(ref foreign.Ref) string {
	c, _ := r.heap.Class(ref)
	return c
}

// Property reads a layout property recorded on an element.
// Object-valued properties are reported as foreign.Ref, 0 meaning null.
func (r *Runtime) Property(ref foreign.Ref, name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props(ref)
	if !ok {
		return nil, false
	}
	v, ok := p.props[name]
	return v, ok
}

// Children returns the elements added to a container, in order.
func (r *Runtime) Children(ref foreign.Ref) []foreign.Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props(ref)
	if !ok {
		return nil
	}
	return append([]foreign.Ref(nil), p.children...)
}

func (r *Runtime) props(ref foreign.Ref) (*element, bool) {
	v, ok := r.heap.Get(ref)
	if !ok {
		return nil, false
	}
	h, ok := v.(hasElement)
	if !ok {
		return nil, false
	}
	return h.elem(), true
}

func (r *Runtime) class(name string, phase errors.Phase) (*Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, errors.ClassNotFound(phase, name)
	}
	return c, nil
}

// alloc stores v as a new instance of class.
func (r *Runtime) alloc(class string, v any) foreign.Ref {
	return r.heap.Insert(class, v)
}

func (r *Runtime) deref(ref foreign.Ref, phase errors.Phase, member string) (string, any, error) {
	if ref == 0 {
		return "", nil, errors.NullReference(phase, "", member)
	}
	class, ok := r.heap.Class(ref)
	if !ok {
		return "", nil, errors.Exception(phase, "java/lang/IllegalStateException", fmt.Sprintf("stale reference %d", ref))
	}
	v, _ := r.heap.Get(ref)
	return class, v, nil
}

// IsAssignable reports whether an instance of class can be used where want is declared.
func (r *Runtime) IsAssignable(class, want string) bool {
	if class == want || want == "java/lang/Object" {
		return true
	}
	seen := map[string]bool{}
	var walk func(string) bool
	walk = func(name string) bool {
		if name == "" || seen[name] {
			return false
		}
		seen[name] = true
		if name == want {
			return true
		}
		c, ok := r.classes[name]
		if !ok {
			return false
		}
		for _, i := range c.Interfaces {
			if walk(i) {
				return true
			}
		}
		return walk(c.Super)
	}
	return walk(class)
}

func (r *Runtime) checkArgs(phase errors.Phase, class, name, desc string, params []foreign.Type, args []foreign.Value) error {
	if len(params) != len(args) {
		return errors.SignatureMismatch(phase, class, name, desc, "argument count does not match descriptor")
	}
	for i, p := range params {
		if !p.IsReference() || args[i].IsNull() {
			continue
		}
		got, ok := r.heap.Class(args[i].Ref())
		if !ok {
			return errors.Exception(phase, "java/lang/IllegalStateException", fmt.Sprintf("stale reference %d", args[i].Ref()))
		}
		want := p.Class
		if p.Kind == foreign.KindArray {
			want = p.String()
		}
		if !r.IsAssignable(got, want) {
			return errors.Exception(phase, "java/lang/ClassCastException",
				fmt.Sprintf("argument %d: %s cannot be cast to %s", i, got, want))
		}
	}
	return nil
}

func (r *Runtime) NewObject(_ context.Context, class, sig string, args []foreign.Value) (foreign.Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.class(class, errors.PhaseConstruct)
	if err != nil {
		return 0, err
	}
	if c.Abstract {
		return 0, errors.Exception(errors.PhaseConstruct, "java/lang/InstantiationException", class)
	}
	ctor, ok := c.ctors[sig]
	if !ok {
		return 0, errors.MethodNotFound(errors.PhaseConstruct, class, "<init>", sig)
	}
	s, err := foreign.ParseSignature(sig)
	if err != nil {
		return 0, err
	}
	if err := r.checkArgs(errors.PhaseConstruct, class, "<init>", sig, s.Params, args); err != nil {
		return 0, err
	}
	v, err := ctor(&Call{rt: r, Class: class, Args: args, phase: errors.PhaseConstruct})
	if err != nil {
		return 0, err
	}
	return r.alloc(class, v), nil
}

func (r *Runtime) CallMethod(_ context.Context, obj foreign.Ref, name, sig string, args []foreign.Value) (foreign.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, this, err := r.deref(obj, errors.PhaseInvoke, name)
	if err != nil {
		return foreign.Value{}, err
	}
	m, ok := r.findMethod(class, name+sig)
	if !ok {
		return foreign.Value{}, errors.MethodNotFound(errors.PhaseInvoke, class, name, sig)
	}
	s, err := foreign.ParseSignature(sig)
	if err != nil {
		return foreign.Value{}, err
	}
	if err := r.checkArgs(errors.PhaseInvoke, class, name, sig, s.Params, args); err != nil {
		return foreign.Value{}, err
	}
	return m(&Call{rt: r, Class: class, Self: obj, This: this, Args: args})
}

func (r *Runtime) findMethod(class, key string) (Method, bool) {
	for name := class; name != ""; {
		c, ok := r.classes[name]
		if !ok {
			return nil, false
		}
		if m, ok := c.methods[key]; ok {
			return m, true
		}
		name = c.Super
	}
	return nil, false
}

func (r *Runtime) CallStaticMethod(_ context.Context, class, name, sig string, args []foreign.Value) (foreign.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.class(class, errors.PhaseInvoke)
	if err != nil {
		return foreign.Value{}, err
	}
	m, ok := c.statics[name+sig]
	if !ok {
		return foreign.Value{}, errors.MethodNotFound(errors.PhaseInvoke, class, name, sig)
	}
	s, err := foreign.ParseSignature(sig)
	if err != nil {
		return foreign.Value{}, err
	}
	if err := r.checkArgs(errors.PhaseInvoke, class, name, sig, s.Params, args); err != nil {
		return foreign.Value{}, err
	}
	return m(&Call{rt: r, Class: class, Args: args})
}

func (r *Runtime) GetField(_ context.Context, obj foreign.Ref, name, sig string) (foreign.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, this, err := r.deref(obj, errors.PhaseField, name)
	if err != nil {
		return foreign.Value{}, err
	}
	for cn := class; cn != ""; {
		c, ok := r.classes[cn]
		if !ok {
			break
		}
		if f, ok := c.fields[name]; ok && f.sig == sig {
			return f.get(&Call{rt: r, Class: class, Self: obj, This: this, phase: errors.PhaseField})
		}
		cn = c.Super
	}
	return foreign.Value{}, errors.FieldNotFound(errors.PhaseField, class, name, sig)
}

func (r *Runtime) GetStaticField(_ context.Context, class, name, sig string) (foreign.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.class(class, errors.PhaseField)
	if err != nil {
		return foreign.Value{}, err
	}
	f, ok := c.staticFields[name]
	if !ok || f.sig != sig {
		return foreign.Value{}, errors.FieldNotFound(errors.PhaseField, class, name, sig)
	}
	key := class + "." + name
	if ref, ok := r.constants[key]; ok {
		return foreign.RefValue(ref), nil
	}
	v, err := f.get(&Call{rt: r, Class: class, phase: errors.PhaseField})
	if err != nil {
		return foreign.Value{}, err
	}
	// static final object fields are singletons
	if v.Kind() == foreign.KindObject && !v.IsNull() {
		r.constants[key] = v.Ref()
		r.heap.Pin(v.Ref())
	}
	return v, nil
}

func (r *Runtime) NewArray(_ context.Context, elem foreign.Kind, length int32) (foreign.Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if length < 0 {
		return 0, errors.Exception(errors.PhaseArray, "java/lang/NegativeArraySizeException", fmt.Sprint(length))
	}
	if length > maxArrayLength {
		return 0, errors.AllocationFailed(errors.PhaseArray, elem.String()+"[]", int(length))
	}
	a := &array{elem: elem}
	switch elem {
	case foreign.KindByte:
		a.bytes = make([]int8, length)
	case foreign.KindFloat:
		a.floats = make([]float32, length)
	default:
		a.other = make([]uint64, length)
	}
	return r.alloc("["+string(rune(elem)), a), nil
}

// maxArrayLength bounds simulated allocations.
const maxArrayLength = 64 << 20

func (r *Runtime) array(ref foreign.Ref, elem foreign.Kind) (*array, error) {
	if ref == 0 {
		return nil, errors.NullReference(errors.PhaseArray, "", "array")
	}
	a, ok := heap.Lookup[*array](r.heap, ref)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseArray, "array", r.ClassOf(ref))
	}
	if elem != 0 && a.elem != elem {
		return nil, errors.TypeMismatch(errors.PhaseArray, "["+string(rune(elem)), "["+string(rune(a.elem)))
	}
	return a, nil
}

func (r *Runtime) ArrayLength(_ context.Context, arr foreign.Ref) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.array(arr, 0)
	if err != nil {
		return 0, err
	}
	return int32(a.len()), nil
}

func region(start int32, n, length int) error {
	if start < 0 || int(start)+n > length {
		return errors.OutOfBounds(errors.PhaseArray, int(start)+n, length)
	}
	return nil
}

func (r *Runtime) SetByteArrayRegion(_ context.Context, arr foreign.Ref, start int32, buf []int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.array(arr, foreign.KindByte)
	if err != nil {
		return err
	}
	if err := region(start, len(buf), len(a.bytes)); err != nil {
		return err
	}
	copy(a.bytes[start:], buf)
	return nil
}

func (r *Runtime) GetByteArrayRegion(_ context.Context, arr foreign.Ref, start int32, buf []int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.array(arr, foreign.KindByte)
	if err != nil {
		return err
	}
	if err := region(start, len(buf), len(a.bytes)); err != nil {
		return err
	}
	copy(buf, a.bytes[start:])
	return nil
}

func (r *Runtime) SetFloatArrayRegion(_ context.Context, arr foreign.Ref, start int32, buf []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.array(arr, foreign.KindFloat)
	if err != nil {
		return err
	}
	if err := region(start, len(buf), len(a.floats)); err != nil {
		return err
	}
	copy(a.floats[start:], buf)
	return nil
}

func (r *Runtime) NewString(_ context.Context, s string) (foreign.Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alloc(classString, s), nil
}

func (r *Runtime) GetString(_ context.Context, str foreign.Ref) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if str == 0 {
		return "", errors.NullReference(errors.PhaseString, classString, "toString")
	}
	s, ok := heap.Lookup[string](r.heap, str)
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseString, classString, r.ClassOf(str))
	}
	return s, nil
}

var _ foreign.Dispatcher = (*Runtime)(nil)
