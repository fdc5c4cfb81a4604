package heap

import "go.uber.org/zap"

// LogObserver logs every lifecycle event at debug level.
type LogObserver struct {
	Logger *zap.Logger
}

func (o LogObserver) OnHeapEvent(e Event) {
	l := o.Logger
	if l == nil {
		l = Logger()
	}
	if ce := l.Check(zap.DebugLevel, "heap event"); ce != nil {
		ce.Write(zap.Stringer("event", e.Type), zap.Uint32("ref", uint32(e.Ref)), zap.String("class", e.Class))
	}
}

// Counter tallies lifecycle events by type.
type Counter struct {
	counts [4]int
}

func (c *Counter) OnHeapEvent(e Event) {
	if int(e.Type) < len(c.counts) {
		c.counts[e.Type]++
	}
}

// Count returns how many events of type t were seen.
func (c *Counter) Count(t EventType) int {
	if int(t) >= len(c.counts) {
		return 0
	}
	return c.counts[t]
}
