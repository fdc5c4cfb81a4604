package heap

import (
	"testing"

	"github.com/wippyai/docbridge/foreign"
)

type finalizable struct {
	done bool
}

func (f *finalizable) Finalize() { f.done = true }

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	ref := table.Insert("java/lang/String", "test")
	if ref == 0 {
		t.Fatal("Expected non-zero ref")
	}

	val, ok := table.Get(ref)
	if !ok || val != "test" {
		t.Fatalf("Get = %v, %v", val, ok)
	}

	class, ok := table.Class(ref)
	if !ok || class != "java/lang/String" {
		t.Fatalf("Class = %q, %v", class, ok)
	}

	if _, ok := Lookup[string](table, ref); !ok {
		t.Fatal("Lookup with correct type failed")
	}
	if _, ok := Lookup[int](table, ref); ok {
		t.Fatal("Lookup with wrong type should fail")
	}

	val, ok = table.Release(ref)
	if !ok || val != "test" {
		t.Fatalf("Release = %v, %v", val, ok)
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Release")
	}
	if _, ok := table.Get(ref); ok {
		t.Fatal("released ref should be gone")
	}
}

func TestTable_NullRef(t *testing.T) {
	table := NewTable()
	if _, ok := table.Get(0); ok {
		t.Fatal("ref 0 is null")
	}
	if _, ok := table.Get(99); ok {
		t.Fatal("unknown ref should fail")
	}
	if table.Pin(0) {
		t.Fatal("cannot pin null")
	}
}

func TestTable_ReuseAfterRelease(t *testing.T) {
	table := NewTable()
	a := table.Insert("A", 1)
	table.Release(a)
	b := table.Insert("B", 2)
	if a != b {
		t.Fatalf("expected slot reuse, got %d and %d", a, b)
	}
	class, _ := table.Class(b)
	if class != "B" {
		t.Fatalf("reused slot kept stale class %q", class)
	}
}

func TestTable_Pinning(t *testing.T) {
	table := NewTable()
	kept := table.Insert("A", 1)
	dropped := table.Insert("A", 2)

	if !table.Pin(kept) {
		t.Fatal("Pin failed")
	}
	if _, ok := table.Release(kept); ok {
		t.Fatal("pinned object must not be released")
	}

	if n := table.Collect(nil); n != 1 {
		t.Fatalf("Collect released %d, want 1", n)
	}
	if _, ok := table.Get(dropped); ok {
		t.Fatal("unpinned object should be collected")
	}
	if _, ok := table.Get(kept); !ok {
		t.Fatal("pinned object should survive")
	}

	if !table.Unpin(kept) {
		t.Fatal("Unpin failed")
	}
	if table.Unpin(kept) {
		t.Fatal("Unpin without pin should fail")
	}
	if n := table.Collect(func(foreign.Ref) bool { return true }); n != 0 {
		t.Fatalf("keep-all collect released %d", n)
	}
	if n := table.Collect(nil); n != 1 {
		t.Fatalf("Collect released %d, want 1", n)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	var c Counter
	var seen []Event
	table.Subscribe(&c)
	table.Subscribe(ObserverFunc(func(e Event) { seen = append(seen, e) }))
	table.Subscribe(LogObserver{})

	ref := table.Insert("A", "x")
	table.Pin(ref)
	table.Unpin(ref)
	table.Release(ref)

	if c.Count(EventAllocated) != 1 || c.Count(EventPinned) != 1 ||
		c.Count(EventUnpinned) != 1 || c.Count(EventReleased) != 1 {
		t.Fatalf("unexpected counts %+v", c.counts)
	}
	if len(seen) != 4 || seen[0].Ref != ref || seen[0].Class != "A" {
		t.Fatalf("unexpected events %+v", seen)
	}
}

func TestTable_Finalize(t *testing.T) {
	table := NewTable()
	a, b := &finalizable{}, &finalizable{}
	ra := table.Insert("A", a)
	table.Insert("B", b)

	table.Release(ra)
	if !a.done {
		t.Fatal("Release should finalize")
	}

	if err := table.Close(); err != nil {
		t.Fatal(err)
	}
	if !b.done {
		t.Fatal("Close should finalize live objects")
	}
	if table.Insert("C", 1) != 0 {
		t.Fatal("closed table must refuse inserts")
	}
	if err := table.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}
}
