// Package barcode wraps com.itextpdf.barcodes.
package barcode

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/kernel"
)

const classBarcodeEAN = "com/itextpdf/barcodes/BarcodeEAN"

// BarcodeType selects an EAN/UPC symbology. The values name BarcodeEAN's
// static int fields and are resolved at the point of use.
type BarcodeType int

const (
	Ean13 BarcodeType = iota
	Ean8
	Upca
	Upce
	Supp2
	Supp5
)

var typeNames = [...]string{"Ean13", "Ean8", "Upca", "Upce", "Supp2", "Supp5"}

func (t BarcodeType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "BarcodeType(?)"
	}
	return typeNames[t]
}

func (BarcodeType) ConstantClass() string      { return classBarcodeEAN }
func (BarcodeType) ConstantDescriptor() string { return "I" }

// BarcodeEAN renders EAN-13, EAN-8, UPC-A, UPC-E and the 2 and 5 digit
// supplements.
type BarcodeEAN struct{ foreign.Handle }

// New creates an EAN-13 barcode bound to pdf.
func New(env *foreign.Env, pdf *kernel.PdfDocument) (*BarcodeEAN, error) {
	h, err := env.NewObject(classBarcodeEAN, "(Lcom/itextpdf/kernel/pdf/PdfDocument;)V", foreign.Obj(pdf))
	if err != nil {
		return nil, err
	}
	return &BarcodeEAN{h}, nil
}

// SetCodeType resolves t and applies it.
func (b *BarcodeEAN) SetCodeType(env *foreign.Env, t BarcodeType) (*BarcodeEAN, error) {
	n, err := foreign.ResolveInt(env, t)
	if err != nil {
		return nil, err
	}
	if _, err := env.CallMethod(b, "setCodeType", "(I)V", foreign.Int(n)); err != nil {
		return nil, err
	}
	return b, nil
}

// CodeType returns the raw type value.
func (b *BarcodeEAN) CodeType(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(b, "getCodeType", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// SetCode sets the digits to encode. They are validated on render.
func (b *BarcodeEAN) SetCode(env *foreign.Env, code string) (*BarcodeEAN, error) {
	s, err := foreign.NewStringValue(env, code)
	if err != nil {
		return nil, err
	}
	if _, err := env.CallMethod(b, "setCode", "(Ljava/lang/String;)V", s); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BarcodeEAN) Code(env *foreign.Env) (string, error) {
	v, err := env.CallMethod(b, "getCode", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	return foreign.StringResult(env, v)
}

func (b *BarcodeEAN) SetX(env *foreign.Env, x float32) error {
	_, err := env.CallMethod(b, "setX", "(F)V", foreign.Float(x))
	return err
}

func (b *BarcodeEAN) SetBarHeight(env *foreign.Env, h float32) error {
	_, err := env.CallMethod(b, "setBarHeight", "(F)V", foreign.Float(h))
	return err
}

// Size returns the rendered size in points.
func (b *BarcodeEAN) Size(env *foreign.Env) (*kernel.Rectangle, error) {
	v, err := env.CallMethod(b, "getBarcodeSize", "()Lcom/itextpdf/kernel/geom/Rectangle;")
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return &kernel.Rectangle{Handle: h}, nil
}

// CreateFormXObject renders the barcode into a form of pdf, which must be
// the document the barcode was created with. Nil colors use the default.
func (b *BarcodeEAN) CreateFormXObject(env *foreign.Env, bar, text *kernel.Color, pdf *kernel.PdfDocument) (*kernel.PdfFormXObject, error) {
	v, err := env.CallMethod(b, "createFormXObject",
		"(Lcom/itextpdf/kernel/colors/Color;Lcom/itextpdf/kernel/colors/Color;Lcom/itextpdf/kernel/pdf/PdfDocument;)Lcom/itextpdf/kernel/pdf/xobject/PdfFormXObject;",
		foreign.Obj(bar), foreign.Obj(text), foreign.Obj(pdf))
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return &kernel.PdfFormXObject{Handle: h}, nil
}
