package kernel

import "github.com/wippyai/docbridge/foreign"

const classPdfFormXObject = "com/itextpdf/kernel/pdf/xobject/PdfFormXObject"

// PdfFormXObject is a reusable piece of page content, e.g. a rendered barcode.
type PdfFormXObject struct{ foreign.Handle }

// NewPdfFormXObject creates an empty form with the given bounding box.
func NewPdfFormXObject(env *foreign.Env, bbox *Rectangle) (*PdfFormXObject, error) {
	h, err := env.NewObject(classPdfFormXObject, "(Lcom/itextpdf/kernel/geom/Rectangle;)V", foreign.Obj(bbox))
	if err != nil {
		return nil, err
	}
	return &PdfFormXObject{h}, nil
}

func (x *PdfFormXObject) Width(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(x, "getWidth", "()F"))
}

func (x *PdfFormXObject) Height(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(x, "getHeight", "()F"))
}
