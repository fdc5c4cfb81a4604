package layout

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/kernel"
)

const (
	descContainer  = "Lcom/itextpdf/layout/IPropertyContainer;"
	descElement    = "Lcom/itextpdf/layout/element/IElement;"
	descBlock      = "Lcom/itextpdf/layout/element/IBlockElement;"
	descImage      = "Lcom/itextpdf/layout/element/Image;"
	descBorder     = "Lcom/itextpdf/layout/borders/Border;"
	descColor      = "Lcom/itextpdf/kernel/colors/Color;"
	descPdfFont    = "Lcom/itextpdf/kernel/font/PdfFont;"
	descHAlignment = "Lcom/itextpdf/layout/property/HorizontalAlignment;"
	descVAlignment = "Lcom/itextpdf/layout/property/VerticalAlignment;"
	descTAlignment = "Lcom/itextpdf/layout/property/TextAlignment;"
)

// Stylable is any element with the property capability.
type Stylable interface {
	foreign.Referent
	propertyContainer()
}

// Block is an element that can be added to a root or a container.
type Block interface {
	Stylable
	blockElement()
}

// Root is a top-level container: Document or Canvas.
type Root interface {
	Stylable
	rootElement()
}

// Element is any layout element that is not a root.
type Element interface {
	foreign.Referent
	element()
}

// Leaf is an inline element a Paragraph accepts.
type Leaf interface {
	Element
	leafElement()
}

func ret[T any](self T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return self, nil
}

func call(env *foreign.Env, obj foreign.Referent, name, sig string, args ...foreign.Value) error {
	_, err := env.CallMethod(obj, name, sig, args...)
	return err
}

// PropertyContainer provides the styling setters of ElementPropertyContainer.
type PropertyContainer[T foreign.Referent] struct{ self T }

func (PropertyContainer[T]) propertyContainer() {}

// SetFixedPosition pins the element at (left, bottom) with the given width.
func (p PropertyContainer[T]) SetFixedPosition(env *foreign.Env, left, bottom, width float32) (T, error) {
	return ret(p.self, setFixedPosition(env, p.self, left, bottom, width))
}

// SetBorder sets all four borders. NoBorder removes them.
func (p PropertyContainer[T]) SetBorder(env *foreign.Env, b Border) (T, error) {
	return ret(p.self, setBorder(env, p.self, "", b))
}

func (p PropertyContainer[T]) SetBorderTop(env *foreign.Env, b Border) (T, error) {
	return ret(p.self, setBorder(env, p.self, "Top", b))
}

func (p PropertyContainer[T]) SetBorderRight(env *foreign.Env, b Border) (T, error) {
	return ret(p.self, setBorder(env, p.self, "Right", b))
}

func (p PropertyContainer[T]) SetBorderBottom(env *foreign.Env, b Border) (T, error) {
	return ret(p.self, setBorder(env, p.self, "Bottom", b))
}

func (p PropertyContainer[T]) SetBorderLeft(env *foreign.Env, b Border) (T, error) {
	return ret(p.self, setBorder(env, p.self, "Left", b))
}

func (p PropertyContainer[T]) SetHorizontalAlignment(env *foreign.Env, a HorizontalAlignment) (T, error) {
	return ret(p.self, setConstant(env, p.self, "setHorizontalAlignment", descHAlignment, descContainer, a))
}

func (p PropertyContainer[T]) SetTextAlignment(env *foreign.Env, a TextAlignment) (T, error) {
	return ret(p.self, setConstant(env, p.self, "setTextAlignment", descTAlignment, descContainer, a))
}

func (p PropertyContainer[T]) SetBold(env *foreign.Env) (T, error) {
	return ret(p.self, call(env, p.self, "setBold", "()"+descContainer))
}

func (p PropertyContainer[T]) SetItalic(env *foreign.Env) (T, error) {
	return ret(p.self, call(env, p.self, "setItalic", "()"+descContainer))
}

func (p PropertyContainer[T]) SetUnderline(env *foreign.Env) (T, error) {
	return ret(p.self, call(env, p.self, "setUnderline", "()"+descContainer))
}

func (p PropertyContainer[T]) SetFontSize(env *foreign.Env, size float32) (T, error) {
	return ret(p.self, call(env, p.self, "setFontSize", "(F)"+descContainer, foreign.Float(size)))
}

func (p PropertyContainer[T]) SetFontColor(env *foreign.Env, c *kernel.Color) (T, error) {
	return ret(p.self, call(env, p.self, "setFontColor", "("+descColor+")"+descContainer, foreign.Obj(c)))
}

func (p PropertyContainer[T]) SetFontColorWithOpacity(env *foreign.Env, c *kernel.Color, opacity float32) (T, error) {
	return ret(p.self, call(env, p.self, "setFontColor", "("+descColor+"F)"+descContainer, foreign.Obj(c), foreign.Float(opacity)))
}

func (p PropertyContainer[T]) SetFont(env *foreign.Env, f *kernel.PdfFont) (T, error) {
	return ret(p.self, call(env, p.self, "setFont", "("+descPdfFont+")"+descContainer, foreign.Obj(f)))
}

func (p PropertyContainer[T]) SetBackgroundColor(env *foreign.Env, c *kernel.Color) (T, error) {
	return ret(p.self, call(env, p.self, "setBackgroundColor", "("+descColor+")"+descContainer, foreign.Obj(c)))
}

func (p PropertyContainer[T]) SetCharacterSpacing(env *foreign.Env, spacing float32) (T, error) {
	return ret(p.self, call(env, p.self, "setCharacterSpacing", "(F)"+descContainer, foreign.Float(spacing)))
}

func setFixedPosition(env *foreign.Env, obj foreign.Referent, left, bottom, width float32) error {
	return call(env, obj, "setFixedPosition", "(FFF)"+descContainer,
		foreign.Float(left), foreign.Float(bottom), foreign.Float(width))
}

func setBorder(env *foreign.Env, obj foreign.Referent, side string, b Border) error {
	v, err := borderValue(env, b)
	if err != nil {
		return err
	}
	return call(env, obj, "setBorder"+side, "("+descBorder+")"+descContainer, v)
}

func setConstant(env *foreign.Env, obj foreign.Referent, name, arg, result string, c foreign.Constant) error {
	v, err := foreign.ResolveConstant(env, c)
	if err != nil {
		return err
	}
	return call(env, obj, name, "("+arg+")"+result, v)
}

// BlockElement provides the sizing setters of iText's BlockElement.
type BlockElement[T foreign.Referent] struct{ self T }

func (BlockElement[T]) blockElement() {}
func (BlockElement[T]) element()      {}

func (b BlockElement[T]) SetWidth(env *foreign.Env, width float32) (T, error) {
	return ret(b.self, call(env, b.self, "setWidth", "(F)"+descElement, foreign.Float(width)))
}

func (b BlockElement[T]) SetHeight(env *foreign.Env, height float32) (T, error) {
	return ret(b.self, call(env, b.self, "setHeight", "(F)"+descElement, foreign.Float(height)))
}

func (b BlockElement[T]) SetMarginTop(env *foreign.Env, m float32) (T, error) {
	return ret(b.self, call(env, b.self, "setMarginTop", "(F)"+descElement, foreign.Float(m)))
}

func (b BlockElement[T]) SetMarginRight(env *foreign.Env, m float32) (T, error) {
	return ret(b.self, call(env, b.self, "setMarginRight", "(F)"+descElement, foreign.Float(m)))
}

func (b BlockElement[T]) SetMarginBottom(env *foreign.Env, m float32) (T, error) {
	return ret(b.self, call(env, b.self, "setMarginBottom", "(F)"+descElement, foreign.Float(m)))
}

func (b BlockElement[T]) SetMarginLeft(env *foreign.Env, m float32) (T, error) {
	return ret(b.self, call(env, b.self, "setMarginLeft", "(F)"+descElement, foreign.Float(m)))
}

// SetMargins sets the four margins in CSS order.
func (b BlockElement[T]) SetMargins(env *foreign.Env, top, right, bottom, left float32) (T, error) {
	return ret(b.self, call(env, b.self, "setMargins", "(FFFF)"+descElement,
		foreign.Float(top), foreign.Float(right), foreign.Float(bottom), foreign.Float(left)))
}

// SetPadding sets the same padding on all four sides.
func (b BlockElement[T]) SetPadding(env *foreign.Env, p float32) (T, error) {
	return ret(b.self, call(env, b.self, "setPadding", "(F)"+descElement, foreign.Float(p)))
}

func (b BlockElement[T]) SetVerticalAlignment(env *foreign.Env, a VerticalAlignment) (T, error) {
	return ret(b.self, setConstant(env, b.self, "setVerticalAlignment", descVAlignment, descElement, a))
}

// RootElement provides Add for Document and Canvas.
type RootElement[T foreign.Referent] struct{ self T }

func (RootElement[T]) rootElement() {}

// Add appends a block. Adding to a closed root fails.
func (r RootElement[T]) Add(env *foreign.Env, b Block) (T, error) {
	return ret(r.self, call(env, r.self, "add", "("+descBlock+")"+descContainer, foreign.Obj(b)))
}

// AddImage appends an image.
func (r RootElement[T]) AddImage(env *foreign.Env, img *Image) (T, error) {
	return ret(r.self, call(env, r.self, "add", "("+descImage+")"+descContainer, foreign.Obj(img)))
}
