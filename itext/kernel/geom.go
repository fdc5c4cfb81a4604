package kernel

import "github.com/wippyai/docbridge/foreign"

const (
	classRectangle = "com/itextpdf/kernel/geom/Rectangle"
	classPageSize  = "com/itextpdf/kernel/geom/PageSize"
)

// Rectangle is an axis-aligned box in points.
type Rectangle struct{ foreign.Handle }

// NewRectangle builds a rectangle from its lower-left corner and size.
func NewRectangle(env *foreign.Env, x, y, width, height float32) (*Rectangle, error) {
	h, err := env.NewObject(classRectangle, "(FFFF)V",
		foreign.Float(x), foreign.Float(y), foreign.Float(width), foreign.Float(height))
	if err != nil {
		return nil, err
	}
	return &Rectangle{h}, nil
}

func (r *Rectangle) X(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getX", "()F"))
}

func (r *Rectangle) Y(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getY", "()F"))
}

func (r *Rectangle) Width(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getWidth", "()F"))
}

func (r *Rectangle) Height(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getHeight", "()F"))
}

func (r *Rectangle) Left(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getLeft", "()F"))
}

func (r *Rectangle) Bottom(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getBottom", "()F"))
}

func (r *Rectangle) Right(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getRight", "()F"))
}

func (r *Rectangle) Top(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(r, "getTop", "()F"))
}

// PageSize is a Rectangle anchored at the origin.
type PageSize struct{ Rectangle }

func wrapPageSize(h foreign.Handle) *PageSize {
	return &PageSize{Rectangle{h}}
}

// NewPageSize builds a custom page size in points.
func NewPageSize(env *foreign.Env, width, height float32) (*PageSize, error) {
	h, err := env.NewObject(classPageSize, "(FF)V", foreign.Float(width), foreign.Float(height))
	if err != nil {
		return nil, err
	}
	return wrapPageSize(h), nil
}

// PageSizeFromRectangle copies the size of r.
func PageSizeFromRectangle(env *foreign.Env, r *Rectangle) (*PageSize, error) {
	h, err := env.NewObject(classPageSize, "(Lcom/itextpdf/kernel/geom/Rectangle;)V", foreign.Obj(r))
	if err != nil {
		return nil, err
	}
	return wrapPageSize(h), nil
}

// Rotate returns a new page size with width and height swapped.
func (p *PageSize) Rotate(env *foreign.Env) (*PageSize, error) {
	h, err := object(env.CallMethod(p, "rotate", "()"+descPageSize))
	if err != nil {
		return nil, err
	}
	return wrapPageSize(h), nil
}

// PageSizePreset names a PageSize static field.
type PageSizePreset int

const (
	A0 PageSizePreset = iota
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	A9
	A10
	B0
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	B9
	B10
	Executive
	Ledger
	Legal
	Letter
	Tabloid
)

var presetNames = [...]string{
	"A0", "A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10",
	"B0", "B1", "B2", "B3", "B4", "B5", "B6", "B7", "B8", "B9", "B10",
	"Executive", "Ledger", "Legal", "Letter", "Tabloid",
}

// PageSizePresets lists every preset in declaration order.
func PageSizePresets() []PageSizePreset {
	out := make([]PageSizePreset, len(presetNames))
	for i := range out {
		out[i] = PageSizePreset(i)
	}
	return out
}

// ParsePageSizePreset accepts a preset name in any case.
func ParsePageSizePreset(name string) (PageSizePreset, bool) {
	want := foreign.ConstantName(name)
	for i, n := range presetNames {
		if foreign.ConstantName(n) == want {
			return PageSizePreset(i), true
		}
	}
	return 0, false
}

func (p PageSizePreset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return "PageSizePreset(?)"
	}
	return presetNames[p]
}

func (PageSizePreset) ConstantClass() string      { return classPageSize }
func (PageSizePreset) ConstantDescriptor() string { return descPageSize }

// Get resolves the preset.
func (p PageSizePreset) Get(env *foreign.Env) (*PageSize, error) {
	h, err := foreign.ResolveObject(env, p)
	if err != nil {
		return nil, err
	}
	return wrapPageSize(h), nil
}
