package foreigntest

import (
	"unicode"

	"github.com/wippyai/docbridge/foreign"
)

const (
	classBarcode1D  = "com/itextpdf/barcodes/Barcode1D"
	classBarcodeEAN = "com/itextpdf/barcodes/BarcodeEAN"
)

// EAN code types, as the BarcodeEAN static int fields.
const (
	eanEAN13 int32 = iota + 1
	eanEAN8
	eanUPCA
	eanUPCE
	eanSUPP2
	eanSUPP5
)

type eanKind struct {
	field   string
	modules float32
	digits  []int
}

var eanTypes = map[int32]eanKind{
	eanEAN13: {field: "EAN13", modules: 95, digits: []int{12, 13}},
	eanEAN8:  {field: "EAN8", modules: 67, digits: []int{8}},
	eanUPCA:  {field: "UPCA", modules: 95, digits: []int{12}},
	eanUPCE:  {field: "UPCE", modules: 51, digits: []int{8}},
	eanSUPP2: {field: "SUPP2", modules: 20, digits: []int{2}},
	eanSUPP5: {field: "SUPP5", modules: 47, digits: []int{5}},
}

type barcodeEAN struct {
	doc       *pdfDocument
	code      string
	codeType  int32
	x         float32
	barHeight float32
}

func (b *barcodeEAN) size() rect {
	return rect{w: eanTypes[b.codeType].modules * b.x, h: b.barHeight}
}

func validCode(codeType int32, code string) bool {
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	for _, n := range eanTypes[codeType].digits {
		if len(code) == n {
			return true
		}
	}
	return false
}

func defineBarcodes(r *Runtime) {
	r.classes[classBarcode1D] = NewClass(classBarcode1D, "").AbstractClass().
		Method("setX", "(F)V", func(c *Call) (foreign.Value, error) {
			c.This.(*barcodeEAN).x = c.Float(0)
			return foreign.Void, nil
		}).
		Method("getX", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*barcodeEAN).x), nil
		}).
		Method("setBarHeight", "(F)V", func(c *Call) (foreign.Value, error) {
			c.This.(*barcodeEAN).barHeight = c.Float(0)
			return foreign.Void, nil
		}).
		Method("getBarHeight", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*barcodeEAN).barHeight), nil
		})

	ean := NewClass(classBarcodeEAN, classBarcode1D).
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfDocument;)V", func(c *Call) (any, error) {
			d, ok := c.Obj(0).(*pdfDocument)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &barcodeEAN{doc: d, codeType: eanEAN13, x: 0.8, barHeight: 32}, nil
		}).
		Method("setCodeType", "(I)V", func(c *Call) (foreign.Value, error) {
			t := c.Int(0)
			if _, ok := eanTypes[t]; !ok {
				return foreign.Value{}, c.Throw("java/lang/IllegalArgumentException", "Invalid code type %d", t)
			}
			c.This.(*barcodeEAN).codeType = t
			return foreign.Void, nil
		}).
		Method("getCodeType", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(c.This.(*barcodeEAN).codeType), nil
		}).
		Method("setCode", "(Ljava/lang/String;)V", func(c *Call) (foreign.Value, error) {
			s, _ := c.String(0)
			c.This.(*barcodeEAN).code = s
			return foreign.Void, nil
		}).
		Method("getCode", "()Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(c.This.(*barcodeEAN).code), nil
		}).
		Method("getBarcodeSize", "()Lcom/itextpdf/kernel/geom/Rectangle;", func(c *Call) (foreign.Value, error) {
			size := c.This.(*barcodeEAN).size()
			return c.New(classRectangle, &size), nil
		}).
		Method("createFormXObject", "(Lcom/itextpdf/kernel/colors/Color;Lcom/itextpdf/kernel/colors/Color;Lcom/itextpdf/kernel/pdf/PdfDocument;)Lcom/itextpdf/kernel/pdf/xobject/PdfFormXObject;", func(c *Call) (foreign.Value, error) {
			b := c.This.(*barcodeEAN)
			if d, ok := c.Obj(2).(*pdfDocument); !ok || d != b.doc {
				return foreign.Value{}, c.Throw(exPdf, msgPdfIndirectRefs)
			}
			if !validCode(b.codeType, b.code) {
				return foreign.Value{}, c.Throw("java/lang/IllegalArgumentException", "Invalid code %q for %s", b.code, eanTypes[b.codeType].field)
			}
			return c.New(classPdfFormXObj, &formXObject{bbox: b.size(), kind: "barcode"}), nil
		})
	for t, et := range eanTypes {
		ean.StaticField(et.field, "I", func(*Call) (foreign.Value, error) {
			return foreign.Int(t), nil
		})
	}
	r.classes[classBarcodeEAN] = ean
}
