package foreign

import "context"

// Dispatcher is the foreign call surface: the boundary that performs
// construction, method, field, array and string operations against the
// foreign runtime.
//
// Classes are named with slash-separated binary names
// ("com/itextpdf/layout/Document"); members are identified by name and
// descriptor. A descriptor that matches no member is a fault, never a
// coercion. Object arguments arrive as Values whose Ref is meaningful to the
// dispatcher; object results are returned with RefValue.
//
// Implementations are not required to be safe for concurrent use. Env
// guarantees at most one call in flight per context.
type Dispatcher interface {
	NewObject(ctx context.Context, class, sig string, args []Value) (Ref, error)
	CallMethod(ctx context.Context, obj Ref, name, sig string, args []Value) (Value, error)
	CallStaticMethod(ctx context.Context, class, name, sig string, args []Value) (Value, error)
	GetField(ctx context.Context, obj Ref, name, sig string) (Value, error)
	GetStaticField(ctx context.Context, class, name, sig string) (Value, error)

	NewArray(ctx context.Context, elem Kind, length int32) (Ref, error)
	ArrayLength(ctx context.Context, arr Ref) (int32, error)
	SetByteArrayRegion(ctx context.Context, arr Ref, start int32, buf []int8) error
	GetByteArrayRegion(ctx context.Context, arr Ref, start int32, buf []int8) error
	SetFloatArrayRegion(ctx context.Context, arr Ref, start int32, buf []float32) error

	NewString(ctx context.Context, s string) (Ref, error)
	GetString(ctx context.Context, str Ref) (string, error)
}
