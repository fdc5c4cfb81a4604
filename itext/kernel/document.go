package kernel

import (
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/jdk"
)

const (
	classPdfWriter   = "com/itextpdf/kernel/pdf/PdfWriter"
	classPdfDocument = "com/itextpdf/kernel/pdf/PdfDocument"
	classPdfCanvas   = "com/itextpdf/kernel/pdf/canvas/PdfCanvas"
	descPageSize     = "Lcom/itextpdf/kernel/geom/PageSize;"
	descPdfPage      = "Lcom/itextpdf/kernel/pdf/PdfPage;"
)

// PdfWriter serialises a PdfDocument into an output stream.
type PdfWriter struct{ foreign.Handle }

// NewPdfWriter writes into out.
func NewPdfWriter(env *foreign.Env, out *jdk.ByteArrayOutputStream) (*PdfWriter, error) {
	h, err := env.NewObject(classPdfWriter, "(Ljava/io/OutputStream;)V", foreign.Obj(out))
	if err != nil {
		return nil, err
	}
	return &PdfWriter{h}, nil
}

// PdfDocument is the low-level document. Close must be called before the
// output is read.
type PdfDocument struct {
	foreign.Handle
	closed bool
}

// NewPdfDocument opens a document on w. A writer serves one document.
func NewPdfDocument(env *foreign.Env, w *PdfWriter) (*PdfDocument, error) {
	h, err := env.NewObject(classPdfDocument, "(Lcom/itextpdf/kernel/pdf/PdfWriter;)V", foreign.Obj(w))
	if err != nil {
		return nil, err
	}
	return &PdfDocument{Handle: h}, nil
}

// WrapPdfDocument adopts a document handle returned by another call.
func WrapPdfDocument(h foreign.Handle) *PdfDocument {
	return &PdfDocument{Handle: h}
}

func (d *PdfDocument) DefaultPageSize(env *foreign.Env) (*PageSize, error) {
	h, err := object(env.CallMethod(d, "getDefaultPageSize", "()"+descPageSize))
	if err != nil {
		return nil, err
	}
	return wrapPageSize(h), nil
}

func (d *PdfDocument) SetDefaultPageSize(env *foreign.Env, size *PageSize) error {
	_, err := env.CallMethod(d, "setDefaultPageSize", "("+descPageSize+")V", foreign.Obj(size))
	return err
}

// AddNewPage appends a page of the default size.
func (d *PdfDocument) AddNewPage(env *foreign.Env) (*PdfPage, error) {
	h, err := object(env.CallMethod(d, "addNewPage", "()"+descPdfPage))
	if err != nil {
		return nil, err
	}
	return &PdfPage{h}, nil
}

// AddNewPageSized appends a page of the given size.
func (d *PdfDocument) AddNewPageSized(env *foreign.Env, size *PageSize) (*PdfPage, error) {
	h, err := object(env.CallMethod(d, "addNewPage", "("+descPageSize+")"+descPdfPage, foreign.Obj(size)))
	if err != nil {
		return nil, err
	}
	return &PdfPage{h}, nil
}

func (d *PdfDocument) NumberOfPages(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(d, "getNumberOfPages", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Page returns page n, counting from 1.
func (d *PdfDocument) Page(env *foreign.Env, n int32) (*PdfPage, error) {
	h, err := object(env.CallMethod(d, "getPage", "(I)"+descPdfPage, foreign.Int(n)))
	if err != nil {
		return nil, err
	}
	return &PdfPage{h}, nil
}

// IsClosed asks the foreign document whether it has been closed.
func (d *PdfDocument) IsClosed(env *foreign.Env) (bool, error) {
	v, err := env.CallMethod(d, "isClosed", "()Z")
	if err != nil {
		return false, err
	}
	return v.Boolean()
}

// Close finishes the document and flushes it to the writer. Closing the
// same wrapper twice fails with KindClosed without reaching the runtime.
func (d *PdfDocument) Close(env *foreign.Env) error {
	if d.closed {
		return errors.Closed(errors.PhaseInvoke, "PdfDocument")
	}
	if _, err := env.CallMethod(d, "close", "()V"); err != nil {
		return err
	}
	d.closed = true
	return nil
}

// PdfPage is one page of a PdfDocument.
type PdfPage struct{ foreign.Handle }

// PageSize returns the page's media box.
func (p *PdfPage) PageSize(env *foreign.Env) (*Rectangle, error) {
	h, err := object(env.CallMethod(p, "getPageSize", "()Lcom/itextpdf/kernel/geom/Rectangle;"))
	if err != nil {
		return nil, err
	}
	return &Rectangle{h}, nil
}

// Document returns the owning document.
func (p *PdfPage) Document(env *foreign.Env) (*PdfDocument, error) {
	h, err := object(env.CallMethod(p, "getDocument", "()Lcom/itextpdf/kernel/pdf/PdfDocument;"))
	if err != nil {
		return nil, err
	}
	return WrapPdfDocument(h), nil
}

// PdfCanvas draws directly on a page's content stream.
type PdfCanvas struct{ foreign.Handle }

func NewPdfCanvas(env *foreign.Env, page *PdfPage) (*PdfCanvas, error) {
	h, err := env.NewObject(classPdfCanvas, "(Lcom/itextpdf/kernel/pdf/PdfPage;)V", foreign.Obj(page))
	if err != nil {
		return nil, err
	}
	return &PdfCanvas{h}, nil
}
