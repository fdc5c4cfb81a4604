package foreigntest

import (
	"github.com/wippyai/docbridge/foreign"
)

const (
	classPdfWriter     = "com/itextpdf/kernel/pdf/PdfWriter"
	classPdfDocument   = "com/itextpdf/kernel/pdf/PdfDocument"
	classPdfPage       = "com/itextpdf/kernel/pdf/PdfPage"
	classPdfCanvas     = "com/itextpdf/kernel/pdf/canvas/PdfCanvas"
	classRectangle     = "com/itextpdf/kernel/geom/Rectangle"
	classPageSize      = "com/itextpdf/kernel/geom/PageSize"
	classColor         = "com/itextpdf/kernel/colors/Color"
	classDeviceRgb     = "com/itextpdf/kernel/colors/DeviceRgb"
	classColorConsts   = "com/itextpdf/kernel/colors/ColorConstants"
	classLineDrawer    = "com/itextpdf/kernel/pdf/canvas/draw/ILineDrawer"
	classSolidLine     = "com/itextpdf/kernel/pdf/canvas/draw/SolidLine"
	classDashedLine    = "com/itextpdf/kernel/pdf/canvas/draw/DashedLine"
	classDottedLine    = "com/itextpdf/kernel/pdf/canvas/draw/DottedLine"
	classPdfFont       = "com/itextpdf/kernel/font/PdfFont"
	classPdfType1Font  = "com/itextpdf/kernel/font/PdfType1Font"
	classPdfTrueType   = "com/itextpdf/kernel/font/PdfTrueTypeFont"
	classPdfType0Font  = "com/itextpdf/kernel/font/PdfType0Font"
	classPdfFontFact   = "com/itextpdf/kernel/font/PdfFontFactory"
	classPdfFormXObj   = "com/itextpdf/kernel/pdf/xobject/PdfFormXObject"
	exPdf              = "com/itextpdf/kernel/PdfException"
	msgDocumentClosed  = "Document was closed. It is impossible to execute action."
	msgPdfIndirectRefs = "Pdf indirect object belongs to other PDF document."
)

type rect struct {
	x, y, w, h float32
}

// pageSizes holds the preset page sizes in points.
var pageSizes = map[string]rect{
	"A0":        {w: 2384, h: 3370},
	"A1":        {w: 1684, h: 2384},
	"A2":        {w: 1190, h: 1684},
	"A3":        {w: 842, h: 1190},
	"A4":        {w: 595, h: 842},
	"A5":        {w: 420, h: 595},
	"A6":        {w: 297, h: 420},
	"A7":        {w: 210, h: 297},
	"A8":        {w: 148, h: 210},
	"A9":        {w: 105, h: 148},
	"A10":       {w: 74, h: 105},
	"B0":        {w: 2834, h: 4008},
	"B1":        {w: 2004, h: 2834},
	"B2":        {w: 1417, h: 2004},
	"B3":        {w: 1000, h: 1417},
	"B4":        {w: 708, h: 1000},
	"B5":        {w: 498, h: 708},
	"B6":        {w: 354, h: 498},
	"B7":        {w: 249, h: 354},
	"B8":        {w: 175, h: 249},
	"B9":        {w: 124, h: 175},
	"B10":       {w: 87, h: 124},
	"LETTER":    {w: 612, h: 792},
	"LEGAL":     {w: 612, h: 1008},
	"TABLOID":   {w: 792, h: 1224},
	"LEDGER":    {w: 1224, h: 792},
	"EXECUTIVE": {w: 522, h: 756},
}

// colorConstants holds the ColorConstants values as 0-255 RGB.
var colorConstants = map[string][3]int32{
	"BLACK":      {0, 0, 0},
	"BLUE":       {0, 0, 255},
	"CYAN":       {0, 255, 255},
	"DARK_GRAY":  {64, 64, 64},
	"GRAY":       {128, 128, 128},
	"GREEN":      {0, 255, 0},
	"LIGHT_GRAY": {192, 192, 192},
	"MAGENTA":    {255, 0, 255},
	"ORANGE":     {255, 200, 0},
	"PINK":       {255, 175, 175},
	"RED":        {255, 0, 0},
	"WHITE":      {255, 255, 255},
	"YELLOW":     {255, 255, 0},
}

type pdfWriter struct {
	out    *OutputStream
	doc    *pdfDocument
	closed bool
}

type pdfDocument struct {
	writer      *pdfWriter
	pages       []*pdfPage
	defaultSize rect
	closed      bool
}

type pdfPage struct {
	doc  *pdfDocument
	text []string
	size rect
}

type pdfCanvas struct {
	page *pdfPage
}

type color struct {
	rgb [3]float32
}

type lineDrawer struct {
	color foreign.Ref
	width float32
	style string
}

type pdfFont struct {
	program  *fontProgram
	encoding string
	embedded bool
}

type formXObject struct {
	bbox rect
	kind string
}

func clamp01(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func (d *pdfDocument) addPage(size rect) *pdfPage {
	p := &pdfPage{doc: d, size: size}
	d.pages = append(d.pages, p)
	return p
}

func rectMethods(c *Class) *Class {
	get := func(fn func(rect) float32) Method {
		return func(call *Call) (foreign.Value, error) {
			return foreign.Float(fn(*call.This.(*rect))), nil
		}
	}
	return c.
		Method("getX", "()F", get(func(r rect) float32 { return r.x })).
		Method("getY", "()F", get(func(r rect) float32 { return r.y })).
		Method("getWidth", "()F", get(func(r rect) float32 { return r.w })).
		Method("getHeight", "()F", get(func(r rect) float32 { return r.h })).
		Method("getLeft", "()F", get(func(r rect) float32 { return r.x })).
		Method("getBottom", "()F", get(func(r rect) float32 { return r.y })).
		Method("getRight", "()F", get(func(r rect) float32 { return r.x + r.w })).
		Method("getTop", "()F", get(func(r rect) float32 { return r.y + r.h }))
}

func lineDrawerClass(name, style string, width float32) *Class {
	return NewClass(name, "", classLineDrawer).
		Ctor("()V", func(*Call) (any, error) {
			return &lineDrawer{width: width, style: style}, nil
		}).
		Ctor("(F)V", func(c *Call) (any, error) {
			return &lineDrawer{width: c.Float(0), style: style}, nil
		}).
		Method("getLineWidth", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*lineDrawer).width), nil
		}).
		Method("setLineWidth", "(F)V", func(c *Call) (foreign.Value, error) {
			c.This.(*lineDrawer).width = c.Float(0)
			return foreign.Void, nil
		}).
		Method("getColor", "()Lcom/itextpdf/kernel/colors/Color;", func(c *Call) (foreign.Value, error) {
			return foreign.RefValue(c.This.(*lineDrawer).color), nil
		}).
		Method("setColor", "(Lcom/itextpdf/kernel/colors/Color;)V", func(c *Call) (foreign.Value, error) {
			c.This.(*lineDrawer).color = c.Ref(0)
			return foreign.Void, nil
		})
}

func newFont(c *Call, program *fontProgram, encoding string, embedded bool) (foreign.Value, error) {
	if !isKnownEncoding(encoding) {
		return foreign.Value{}, c.Throw(exPdf, "Unsupported encoding %s", encoding)
	}
	f := &pdfFont{program: program, encoding: encoding, embedded: embedded}
	switch {
	case encoding == "Identity-H" || encoding == "Identity-V":
		if program.standard {
			return foreign.Value{}, c.Throw(exPdf, "Cannot create Type0 font with %s font", program.name)
		}
		f.embedded = true
		return c.New(classPdfType0Font, f), nil
	case program.standard:
		f.embedded = false
		return c.New(classPdfType1Font, f), nil
	default:
		return c.New(classPdfTrueType, f), nil
	}
}

func defineKernel(r *Runtime) {
	r.classes[classPdfWriter] = NewClass(classPdfWriter, classOutputStream).
		Ctor("(Ljava/io/OutputStream;)V", func(c *Call) (any, error) {
			out, ok := c.Obj(0).(*OutputStream)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &pdfWriter{out: out}, nil
		})

	r.classes[classPdfDocument] = NewClass(classPdfDocument, "").
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfWriter;)V", func(c *Call) (any, error) {
			w, ok := c.Obj(0).(*pdfWriter)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			if w.doc != nil {
				return nil, c.Throw(exPdf, msgPdfIndirectRefs)
			}
			d := &pdfDocument{writer: w, defaultSize: pageSizes["A4"]}
			w.doc = d
			writeHeader(w.out)
			return d, nil
		}).
		Method("getDefaultPageSize", "()Lcom/itextpdf/kernel/geom/PageSize;", func(c *Call) (foreign.Value, error) {
			size := c.This.(*pdfDocument).defaultSize
			return c.New(classPageSize, &size), nil
		}).
		Method("setDefaultPageSize", "(Lcom/itextpdf/kernel/geom/PageSize;)V", func(c *Call) (foreign.Value, error) {
			size, ok := c.Obj(0).(*rect)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			c.This.(*pdfDocument).defaultSize = *size
			return foreign.Void, nil
		}).
		Method("addNewPage", "()Lcom/itextpdf/kernel/pdf/PdfPage;", func(c *Call) (foreign.Value, error) {
			d := c.This.(*pdfDocument)
			if d.closed {
				return foreign.Value{}, c.Throw(exPdf, msgDocumentClosed)
			}
			return c.New(classPdfPage, d.addPage(d.defaultSize)), nil
		}).
		Method("addNewPage", "(Lcom/itextpdf/kernel/geom/PageSize;)Lcom/itextpdf/kernel/pdf/PdfPage;", func(c *Call) (foreign.Value, error) {
			d := c.This.(*pdfDocument)
			if d.closed {
				return foreign.Value{}, c.Throw(exPdf, msgDocumentClosed)
			}
			size, ok := c.Obj(0).(*rect)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			return c.New(classPdfPage, d.addPage(*size)), nil
		}).
		Method("getNumberOfPages", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(len(c.This.(*pdfDocument).pages))), nil
		}).
		Method("getPage", "(I)Lcom/itextpdf/kernel/pdf/PdfPage;", func(c *Call) (foreign.Value, error) {
			d := c.This.(*pdfDocument)
			n := int(c.Int(0))
			if n < 1 || n > len(d.pages) {
				return foreign.Value{}, c.Throw("java/lang/IndexOutOfBoundsException", "Requested page number %d is out of bounds.", n)
			}
			return c.New(classPdfPage, d.pages[n-1]), nil
		}).
		Method("isClosed", "()Z", func(c *Call) (foreign.Value, error) {
			return foreign.Bool(c.This.(*pdfDocument).closed), nil
		}).
		Method("close", "()V", func(c *Call) (foreign.Value, error) {
			c.This.(*pdfDocument).close()
			return foreign.Void, nil
		})

	r.classes[classPdfPage] = NewClass(classPdfPage, "").
		Method("getPageSize", "()Lcom/itextpdf/kernel/geom/Rectangle;", func(c *Call) (foreign.Value, error) {
			size := c.This.(*pdfPage).size
			return c.New(classRectangle, &size), nil
		}).
		Method("getDocument", "()Lcom/itextpdf/kernel/pdf/PdfDocument;", func(c *Call) (foreign.Value, error) {
			return c.rt.refOf(c.This.(*pdfPage).doc), nil
		})

	r.classes[classPdfCanvas] = NewClass(classPdfCanvas, "").
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfPage;)V", func(c *Call) (any, error) {
			p, ok := c.Obj(0).(*pdfPage)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			if p.doc.closed {
				return nil, c.Throw(exPdf, msgDocumentClosed)
			}
			return &pdfCanvas{page: p}, nil
		})

	r.classes[classRectangle] = rectMethods(NewClass(classRectangle, "").
		Ctor("(FFFF)V", func(c *Call) (any, error) {
			return &rect{x: c.Float(0), y: c.Float(1), w: c.Float(2), h: c.Float(3)}, nil
		}).
		Ctor("(FF)V", func(c *Call) (any, error) {
			return &rect{w: c.Float(0), h: c.Float(1)}, nil
		}))

	pageSize := NewClass(classPageSize, classRectangle).
		Ctor("(FF)V", func(c *Call) (any, error) {
			return &rect{w: c.Float(0), h: c.Float(1)}, nil
		}).
		Ctor("(Lcom/itextpdf/kernel/geom/Rectangle;)V", func(c *Call) (any, error) {
			src, ok := c.Obj(0).(*rect)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			cp := *src
			return &cp, nil
		}).
		Method("rotate", "()Lcom/itextpdf/kernel/geom/PageSize;", func(c *Call) (foreign.Value, error) {
			r := c.This.(*rect)
			return c.New(classPageSize, &rect{w: r.h, h: r.w}), nil
		})
	for name, size := range pageSizes {
		pageSize.StaticField(name, "Lcom/itextpdf/kernel/geom/PageSize;", func(c *Call) (foreign.Value, error) {
			cp := size
			return c.New(classPageSize, &cp), nil
		})
	}
	r.classes[classPageSize] = pageSize

	r.classes[classColor] = NewClass(classColor, "").AbstractClass().
		Method("getColorValue", "()[F", func(c *Call) (foreign.Value, error) {
			rgb := c.This.(*color).rgb
			return c.New("[F", &array{elem: foreign.KindFloat, floats: rgb[:]}), nil
		})
	r.classes[classDeviceRgb] = NewClass(classDeviceRgb, classColor).
		Ctor("(III)V", func(c *Call) (any, error) {
			return &color{rgb: [3]float32{
				clamp01(float32(c.Int(0)) / 255),
				clamp01(float32(c.Int(1)) / 255),
				clamp01(float32(c.Int(2)) / 255),
			}}, nil
		}).
		Ctor("(FFF)V", func(c *Call) (any, error) {
			return &color{rgb: [3]float32{clamp01(c.Float(0)), clamp01(c.Float(1)), clamp01(c.Float(2))}}, nil
		})

	constants := NewClass(classColorConsts, "")
	for name, v := range colorConstants {
		constants.StaticField(name, "Lcom/itextpdf/kernel/colors/Color;", func(c *Call) (foreign.Value, error) {
			return c.New(classDeviceRgb, &color{rgb: [3]float32{
				float32(v[0]) / 255, float32(v[1]) / 255, float32(v[2]) / 255,
			}}), nil
		})
	}
	r.classes[classColorConsts] = constants

	r.classes[classLineDrawer] = Interface(classLineDrawer)
	r.classes[classSolidLine] = lineDrawerClass(classSolidLine, "solid", 1)
	r.classes[classDashedLine] = lineDrawerClass(classDashedLine, "dashed", 1)
	r.classes[classDottedLine] = lineDrawerClass(classDottedLine, "dotted", 1)

	r.classes[classPdfFont] = NewClass(classPdfFont, "").AbstractClass().
		Method("isEmbedded", "()Z", func(c *Call) (foreign.Value, error) {
			return foreign.Bool(c.This.(*pdfFont).embedded), nil
		}).
		Method("getFontProgram", "()Lcom/itextpdf/io/font/FontProgram;", func(c *Call) (foreign.Value, error) {
			p := c.This.(*pdfFont).program
			class := classTrueTypeFont
			if p.standard {
				class = classType1Font
			}
			return c.New(class, p), nil
		})
	r.classes[classPdfType1Font] = NewClass(classPdfType1Font, classPdfFont)
	r.classes[classPdfTrueType] = NewClass(classPdfTrueType, classPdfFont)
	r.classes[classPdfType0Font] = NewClass(classPdfType0Font, classPdfFont)

	r.classes[classPdfFontFact] = NewClass(classPdfFontFact, "").
		Static("createFont", "()Lcom/itextpdf/kernel/font/PdfFont;", func(c *Call) (foreign.Value, error) {
			return newFont(c, &fontProgram{name: "Helvetica", standard: true}, "", false)
		}).
		Static("createFont", "(Ljava/lang/String;)Lcom/itextpdf/kernel/font/PdfFont;", func(c *Call) (foreign.Value, error) {
			name, _ := c.String(0)
			if !isStandardFont(name) {
				return foreign.Value{}, c.Throw(exIO, "Font file %s not found.", name)
			}
			return newFont(c, &fontProgram{name: name, standard: true}, "", false)
		}).
		Static("createFont", "(Lcom/itextpdf/io/font/FontProgram;)Lcom/itextpdf/kernel/font/PdfFont;", func(c *Call) (foreign.Value, error) {
			p, ok := c.Obj(0).(*fontProgram)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			return newFont(c, p, "", false)
		}).
		Static("createFont", "(Lcom/itextpdf/io/font/FontProgram;Ljava/lang/String;)Lcom/itextpdf/kernel/font/PdfFont;", func(c *Call) (foreign.Value, error) {
			p, ok := c.Obj(0).(*fontProgram)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			enc, _ := c.String(1)
			return newFont(c, p, enc, false)
		}).
		Static("createFont", "(Lcom/itextpdf/io/font/FontProgram;Ljava/lang/String;Z)Lcom/itextpdf/kernel/font/PdfFont;", func(c *Call) (foreign.Value, error) {
			p, ok := c.Obj(0).(*fontProgram)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			enc, _ := c.String(1)
			return newFont(c, p, enc, c.Bool(2))
		})

	r.classes[classPdfFormXObj] = NewClass(classPdfFormXObj, "").
		Ctor("(Lcom/itextpdf/kernel/geom/Rectangle;)V", func(c *Call) (any, error) {
			b, ok := c.Obj(0).(*rect)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &formXObject{bbox: *b}, nil
		}).
		Method("getWidth", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*formXObject).bbox.w), nil
		}).
		Method("getHeight", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*formXObject).bbox.h), nil
		})
}

// refOf finds the reference holding v, allocating none.
func (r *Runtime) refOf(v any) foreign.Value {
	var found foreign.Ref
	r.heap.Each(func(ref foreign.Ref, _ string, obj any) bool {
		if obj == v {
			found = ref
			return false
		}
		return true
	})
	return foreign.RefValue(found)
}
