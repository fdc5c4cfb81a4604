// Package heap provides the object table of an in-process foreign runtime.
//
// Objects are stored with their class name and addressed by foreign.Ref:
//
//	t := heap.NewTable()
//	ref := t.Insert("java/io/ByteArrayOutputStream", buf)
//	v, ok := t.Get(ref)
//	class, _ := t.Class(ref)
//	out, ok := heap.Lookup[*Stream](t, ref)
//
// # Collection
//
// Handles on the host side never free objects. The runtime decides when an
// object goes away; Collect releases every object a keep function does not
// retain, except pinned ones:
//
//	t.Pin(ref)
//	t.Collect(nil) // ref survives
//	t.Unpin(ref)
//
// Values implementing Finalizer are finalized on release and on Close.
//
// # Observers
//
//	t.Subscribe(heap.LogObserver{Logger: log})
//	t.Subscribe(heap.ObserverFunc(func(e heap.Event) { ... }))
package heap
