package foreigntest

import (
	"fmt"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/heap"
)

// Ctor builds the Go state of a new instance.
type Ctor func(c *Call) (any, error)

// Method implements an instance or static method.
type Method func(c *Call) (foreign.Value, error)

type field struct {
	get Method
	sig string
}

// Class describes one simulated foreign class.
type Class struct {
	ctors        map[string]Ctor
	methods      map[string]Method
	statics      map[string]Method
	fields       map[string]field
	staticFields map[string]field
	Name         string
	Super        string
	Interfaces   []string
	Abstract     bool
}

// NewClass starts a class definition. Super defaults to java/lang/Object.
func NewClass(name, super string, interfaces ...string) *Class {
	if super == "" && name != classObject {
		super = classObject
	}
	return &Class{
		Name:         name,
		Super:        super,
		Interfaces:   interfaces,
		ctors:        make(map[string]Ctor),
		methods:      make(map[string]Method),
		statics:      make(map[string]Method),
		fields:       make(map[string]field),
		staticFields: make(map[string]field),
	}
}

// Interface starts an interface definition.
func Interface(name string, extends ...string) *Class {
	c := NewClass(name, "", extends...)
	c.Super = ""
	c.Abstract = true
	return c
}

// AbstractClass marks c as not instantiable.
func (c *Class) AbstractClass() *Class {
	c.Abstract = true
	return c
}

// Ctor adds a constructor.
func (c *Class) Ctor(sig string, fn Ctor) *Class {
	c.ctors[sig] = fn
	return c
}

// Method adds an instance method.
func (c *Class) Method(name, sig string, fn Method) *Class {
	c.methods[name+sig] = fn
	return c
}

// Static adds a static method.
func (c *Class) Static(name, sig string, fn Method) *Class {
	c.statics[name+sig] = fn
	return c
}

// Field adds an instance field.
func (c *Class) Field(name, sig string, fn Method) *Class {
	c.fields[name] = field{sig: sig, get: fn}
	return c
}

// StaticField adds a static field. Object values are created once and pinned.
func (c *Class) StaticField(name, sig string, fn Method) *Class {
	c.staticFields[name] = field{sig: sig, get: fn}
	return c
}

// Call is the state visible to a member implementation.
type Call struct {
	rt    *Runtime
	This  any
	phase errors.Phase
	Class string
	Args  []foreign.Value
	Self  foreign.Ref
}

// Runtime returns the runtime executing the call.
func (c *Call) Runtime() *Runtime { return c.rt }

func (c *Call) Float(i int) float32 {
	f, _ := c.Args[i].Float()
	return f
}

func (c *Call) Int(i int) int32 {
	n, _ := c.Args[i].Int()
	return n
}

func (c *Call) Bool(i int) bool {
	b, _ := c.Args[i].Boolean()
	return b
}

func (c *Call) Ref(i int) foreign.Ref {
	return c.Args[i].Ref()
}

// Obj returns the Go state of object argument i, nil for null.
func (c *Call) Obj(i int) any {
	v, _ := c.rt.heap.Get(c.Args[i].Ref())
	return v
}

// String reads string argument i. Null reads as "" with ok false.
func (c *Call) String(i int) (string, bool) {
	s, ok := heap.Lookup[string](c.rt.heap, c.Args[i].Ref())
	return s, ok
}

// Bytes copies byte[] argument i.
func (c *Call) Bytes(i int) ([]byte, bool) {
	a, ok := heap.Lookup[*array](c.rt.heap, c.Args[i].Ref())
	if !ok || a.elem != foreign.KindByte {
		return nil, false
	}
	return foreign.UnsignedBytes(a.bytes), true
}

// New allocates an object from inside a member implementation.
func (c *Call) New(class string, v any) foreign.Value {
	return foreign.RefValue(c.rt.alloc(class, v))
}

// NewString allocates a string result.
func (c *Call) NewString(s string) foreign.Value {
	return c.New(classString, s)
}

// NewBytes allocates a byte[] result holding a copy of b.
func (c *Call) NewBytes(b []byte) foreign.Value {
	return c.New("[B", &array{elem: foreign.KindByte, bytes: foreign.SignedBytes(b)})
}

// Throw raises a foreign exception from the current member.
func (c *Call) Throw(exception, format string, args ...any) error {
	phase := c.phase
	if phase == "" {
		phase = errors.PhaseInvoke
	}
	return errors.Exception(phase, exception, fmt.Sprintf(format, args...))
}

// Return yields the receiver, for fluent setters.
func (c *Call) Return() foreign.Value {
	return foreign.RefValue(c.Self)
}

type array struct {
	bytes  []int8
	floats []float32
	other  []uint64
	elem   foreign.Kind
}

func (a *array) len() int {
	switch a.elem {
	case foreign.KindByte:
		return len(a.bytes)
	case foreign.KindFloat:
		return len(a.floats)
	default:
		return len(a.other)
	}
}

// element is the property bag shared by layout objects.
type element struct {
	props    map[string]any
	children []foreign.Ref
}

func newElement() *element {
	return &element{props: make(map[string]any)}
}

func (e *element) elem() *element { return e }

type hasElement interface {
	elem() *element
}
