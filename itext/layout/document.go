package layout

import (
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/kernel"
)

const (
	classDocument = "com/itextpdf/layout/Document"
	classCanvas   = "com/itextpdf/layout/Canvas"
	descPdfDoc    = "Lcom/itextpdf/kernel/pdf/PdfDocument;"
	descRectangle = "Lcom/itextpdf/kernel/geom/Rectangle;"
)

// Document lays elements out over the pages of a PdfDocument. Closing it
// closes the PdfDocument.
type Document struct {
	foreign.Handle
	PropertyContainer[*Document]
	RootElement[*Document]
	closed bool
}

func wrapDocument(h foreign.Handle) *Document {
	d := &Document{Handle: h}
	d.PropertyContainer = PropertyContainer[*Document]{d}
	d.RootElement = RootElement[*Document]{d}
	return d
}

// NewDocument uses the PdfDocument's default page size and 36pt margins.
func NewDocument(env *foreign.Env, pdf *kernel.PdfDocument) (*Document, error) {
	h, err := env.NewObject(classDocument, "("+descPdfDoc+")V", foreign.Obj(pdf))
	if err != nil {
		return nil, err
	}
	return wrapDocument(h), nil
}

// NewDocumentWithPageSize sets the default page size. With immediateFlush
// false, content stays in memory until Close and Relayout is available.
func NewDocumentWithPageSize(env *foreign.Env, pdf *kernel.PdfDocument, size *kernel.PageSize, immediateFlush bool) (*Document, error) {
	h, err := env.NewObject(classDocument, "("+descPdfDoc+"Lcom/itextpdf/kernel/geom/PageSize;Z)V",
		foreign.Obj(pdf), foreign.Obj(size), foreign.Bool(immediateFlush))
	if err != nil {
		return nil, err
	}
	return wrapDocument(h), nil
}

// SetMargins sets the page margins in CSS order.
func (d *Document) SetMargins(env *foreign.Env, top, right, bottom, left float32) (*Document, error) {
	return ret(d, call(env, d, "setMargins", "(FFFF)V",
		foreign.Float(top), foreign.Float(right), foreign.Float(bottom), foreign.Float(left)))
}

func (d *Document) TopMargin(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(d, "getTopMargin", "()F"))
}

func (d *Document) RightMargin(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(d, "getRightMargin", "()F"))
}

func (d *Document) BottomMargin(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(d, "getBottomMargin", "()F"))
}

func (d *Document) LeftMargin(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(d, "getLeftMargin", "()F"))
}

// PdfDocument returns the underlying low-level document.
func (d *Document) PdfDocument(env *foreign.Env) (*kernel.PdfDocument, error) {
	v, err := env.CallMethod(d, "getPdfDocument", "()"+descPdfDoc)
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return kernel.WrapPdfDocument(h), nil
}

// Relayout lays out every child again. It fails when the document was
// created with immediate flush.
func (d *Document) Relayout(env *foreign.Env) error {
	return call(env, d, "relayout", "()V")
}

// Close finishes layout and closes the PdfDocument. A second Close on the
// same wrapper fails with KindClosed without reaching the runtime.
func (d *Document) Close(env *foreign.Env) error {
	if d.closed {
		return errors.Closed(errors.PhaseInvoke, "Document")
	}
	if err := call(env, d, "close", "()V"); err != nil {
		return err
	}
	d.closed = true
	return nil
}

// Canvas lays elements out inside a fixed area of one page.
type Canvas struct {
	foreign.Handle
	PropertyContainer[*Canvas]
	RootElement[*Canvas]
}

func wrapCanvas(h foreign.Handle) *Canvas {
	c := &Canvas{Handle: h}
	c.PropertyContainer = PropertyContainer[*Canvas]{c}
	c.RootElement = RootElement[*Canvas]{c}
	return c
}

func NewCanvas(env *foreign.Env, pc *kernel.PdfCanvas, area *kernel.Rectangle) (*Canvas, error) {
	h, err := env.NewObject(classCanvas, "(Lcom/itextpdf/kernel/pdf/canvas/PdfCanvas;"+descRectangle+")V",
		foreign.Obj(pc), foreign.Obj(area))
	if err != nil {
		return nil, err
	}
	return wrapCanvas(h), nil
}

// NewCanvasFlush is NewCanvas with an explicit immediate flush choice.
func NewCanvasFlush(env *foreign.Env, pc *kernel.PdfCanvas, area *kernel.Rectangle, immediateFlush bool) (*Canvas, error) {
	h, err := env.NewObject(classCanvas, "(Lcom/itextpdf/kernel/pdf/canvas/PdfCanvas;"+descRectangle+"Z)V",
		foreign.Obj(pc), foreign.Obj(area), foreign.Bool(immediateFlush))
	if err != nil {
		return nil, err
	}
	return wrapCanvas(h), nil
}

func NewCanvasFromPage(env *foreign.Env, page *kernel.PdfPage, area *kernel.Rectangle) (*Canvas, error) {
	h, err := env.NewObject(classCanvas, "(Lcom/itextpdf/kernel/pdf/PdfPage;"+descRectangle+")V",
		foreign.Obj(page), foreign.Obj(area))
	if err != nil {
		return nil, err
	}
	return wrapCanvas(h), nil
}

func (c *Canvas) RootArea(env *foreign.Env) (*kernel.Rectangle, error) {
	v, err := env.CallMethod(c, "getRootArea", "()"+descRectangle)
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return &kernel.Rectangle{Handle: h}, nil
}

// Relayout recalculates the element flow of every child on the canvas.
func (c *Canvas) Relayout(env *foreign.Env) (*Canvas, error) {
	return ret(c, call(env, c, "relayout", "()V"))
}

// Close writes the canvas content to its page.
func (c *Canvas) Close(env *foreign.Env) error {
	return call(env, c, "close", "()V")
}

func floatResult(v foreign.Value, err error) (float32, error) {
	if err != nil {
		return 0, err
	}
	return v.Float()
}
