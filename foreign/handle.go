package foreign

import (
	"fmt"
	"reflect"
)

// Handle wraps one reference into the foreign runtime together with the id
// of the execution context that produced it.
//
// A Handle owns nothing but those two numbers. The object it points at
// belongs to the foreign runtime and is reclaimed by that runtime; dropping
// a Handle never frees it. Typed wrappers embed Handle and add no state of
// their own beyond what they need locally.
type Handle struct {
	ref Ref
	ctx uint64
}

// Referent is implemented by every wrapper that can be passed as an object
// argument. Embedding Handle provides it.
type Referent interface {
	Foreign() Handle
}

// Foreign returns the handle itself, for use as an argument.
func (h Handle) Foreign() Handle { return h }

// Ref returns the raw foreign reference.
func (h Handle) Ref() Ref { return h.ref }

// Context returns the id of the Env that produced the handle, 0 for null.
func (h Handle) Context() uint64 { return h.ctx }

// IsNull reports whether h is the null reference.
func (h Handle) IsNull() bool { return h.ref == 0 }

func (h Handle) String() string {
	if h.ref == 0 {
		return "null"
	}
	return fmt.Sprintf("ref#%d@%d", h.ref, h.ctx)
}

// nilReferent reports whether r is nil, including a nil pointer to a
// wrapper, whose promoted Foreign would dereference it.
func nilReferent(r Referent) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
