package heap

import (
	"sync"

	"github.com/wippyai/docbridge/foreign"
)

// Table is the object space of an in-process foreign runtime.
//
// Each object is stored with its class name under a foreign.Ref. Ref 0 is
// never issued. Released refs are reused, the way a collector reuses slots.
// Pinned objects survive Collect.
type Table struct {
	entries   []entry
	freeList  []foreign.Ref
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	class string
	pins  uint32
	valid bool
}

// NewTable creates an empty object table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]foreign.Ref, 0, 16),
	}
}

// Insert stores value as an instance of class and returns its reference.
// It returns 0 once the table is closed.
func (t *Table) Insert(class string, value any) foreign.Ref {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	e := entry{class: class, value: value, valid: true}
	var ref foreign.Ref
	if n := len(t.freeList); n > 0 {
		ref = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[ref-1] = e
	} else {
		t.entries = append(t.entries, e)
		ref = foreign.Ref(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventAllocated, Ref: ref, Class: class, Value: value})
	return ref
}

func (t *Table) lookup(ref foreign.Ref) (*entry, bool) {
	if ref == 0 {
		return nil, false
	}
	idx := int(ref) - 1
	if idx >= len(t.entries) {
		return nil, false
	}
	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e, true
}

// Get retrieves the value behind ref.
func (t *Table) Get(ref foreign.Ref) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.lookup(ref)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Class returns the class an object was allocated as.
func (t *Table) Class(ref foreign.Ref) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.lookup(ref)
	if !ok {
		return "", false
	}
	return e.class, true
}

// Lookup returns the value only if it is of type T.
func Lookup[T any](t *Table, ref foreign.Ref) (T, bool) {
	var zero T
	v, ok := t.Get(ref)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Pin keeps ref alive across Collect until a matching Unpin.
func (t *Table) Pin(ref foreign.Ref) bool {
	t.mu.Lock()
	e, ok := t.lookup(ref)
	if ok {
		e.pins++
	}
	class := ""
	if ok {
		class = e.class
	}
	t.mu.Unlock()
	if ok {
		t.notify(Event{Type: EventPinned, Ref: ref, Class: class})
	}
	return ok
}

// Unpin releases one pin taken with Pin.
func (t *Table) Unpin(ref foreign.Ref) bool {
	t.mu.Lock()
	e, ok := t.lookup(ref)
	if ok && e.pins == 0 {
		ok = false
	}
	class := ""
	if ok {
		e.pins--
		class = e.class
	}
	t.mu.Unlock()
	if ok {
		t.notify(Event{Type: EventUnpinned, Ref: ref, Class: class})
	}
	return ok
}

// Release frees ref and returns its value. Pinned objects cannot be released.
func (t *Table) Release(ref foreign.Ref) (any, bool) {
	t.mu.Lock()
	e, ok := t.lookup(ref)
	if !ok || e.pins > 0 {
		t.mu.Unlock()
		return nil, false
	}
	value, class := e.value, e.class
	*e = entry{}
	t.freeList = append(t.freeList, ref)
	t.mu.Unlock()

	if f, ok := value.(Finalizer); ok {
		f.Finalize()
	}
	t.notify(Event{Type: EventReleased, Ref: ref, Class: class, Value: value})
	return value, true
}

// Collect releases every unpinned object that keep does not retain and
// returns how many were released.
func (t *Table) Collect(keep func(foreign.Ref) bool) int {
	var victims []foreign.Ref
	t.Each(func(ref foreign.Ref, _ string, _ any) bool {
		if keep == nil || !keep(ref) {
			victims = append(victims, ref)
		}
		return true
	})
	n := 0
	for _, ref := range victims {
		if _, ok := t.Release(ref); ok {
			n++
		}
	}
	return n
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over live objects until fn returns false.
// fn must not call back into the table.
func (t *Table) Each(fn func(foreign.Ref, string, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, e := range t.entries {
		if e.valid {
			if !fn(foreign.Ref(i+1), e.class, e.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Close finalizes every object and stops accepting allocations.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	for i := range t.entries {
		if t.entries[i].valid {
			if f, ok := t.entries[i].value.(Finalizer); ok {
				f.Finalize()
			}
		}
	}
	t.entries = nil
	t.freeList = nil
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHeapEvent(e)
	}
}
