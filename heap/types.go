package heap

import "github.com/wippyai/docbridge/foreign"

// EventType identifies an object lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventReleased
	EventPinned
	EventUnpinned
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventReleased:
		return "released"
	case EventPinned:
		return "pinned"
	case EventUnpinned:
		return "unpinned"
	default:
		return "unknown"
	}
}

// Event represents an object lifecycle event.
type Event struct {
	Value any
	Class string
	Ref   foreign.Ref
	Type  EventType
}

// Observer receives notifications about object lifecycle events.
type Observer interface {
	OnHeapEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHeapEvent(e Event) { f(e) }

// Finalizer is optionally implemented by heap values that release
// resources when the object is collected.
type Finalizer interface {
	Finalize()
}
