package foreigntest

import (
	"fmt"
	"strings"

	"github.com/wippyai/docbridge/foreign"
)

const (
	classIPropertyContainer = "com/itextpdf/layout/IPropertyContainer"
	classIElement           = "com/itextpdf/layout/element/IElement"
	classIBlockElement      = "com/itextpdf/layout/element/IBlockElement"
	classILeafElement       = "com/itextpdf/layout/element/ILeafElement"
	classPropertyContainer  = "com/itextpdf/layout/ElementPropertyContainer"
	classRootElement        = "com/itextpdf/layout/RootElement"
	classDocument           = "com/itextpdf/layout/Document"
	classCanvas             = "com/itextpdf/layout/Canvas"
	classAbstractElement    = "com/itextpdf/layout/element/AbstractElement"
	classBlockElement       = "com/itextpdf/layout/element/BlockElement"
	classParagraph          = "com/itextpdf/layout/element/Paragraph"
	classText               = "com/itextpdf/layout/element/Text"
	classTable              = "com/itextpdf/layout/element/Table"
	classCell               = "com/itextpdf/layout/element/Cell"
	classDiv                = "com/itextpdf/layout/element/Div"
	classLineSeparator      = "com/itextpdf/layout/element/LineSeparator"
	classImage              = "com/itextpdf/layout/element/Image"
	classBorder             = "com/itextpdf/layout/borders/Border"
	classHAlign             = "com/itextpdf/layout/property/HorizontalAlignment"
	classVAlign             = "com/itextpdf/layout/property/VerticalAlignment"
	classTAlign             = "com/itextpdf/layout/property/TextAlignment"

	retContainer = "Lcom/itextpdf/layout/IPropertyContainer;"
	retElement   = "Lcom/itextpdf/layout/element/IElement;"
	argBorder    = "(Lcom/itextpdf/layout/borders/Border;)"
	argColor     = "(Lcom/itextpdf/kernel/colors/Color;)"
	argBlock     = "(Lcom/itextpdf/layout/element/IBlockElement;)"
	argImage     = "(Lcom/itextpdf/layout/element/Image;)"
)

// Border type codes as reported by Border.getType.
const (
	borderSolid int32 = iota
	borderDashed
	borderDotted
	borderDouble
)

type root struct {
	*element
	doc            *pdfDocument
	page           *pdfPage
	area           rect
	margins        [4]float32
	immediateFlush bool
	canvas         bool
	closed         bool
	relayouts      int
}

type paragraph struct {
	*element
	text []string
}

type text struct {
	*element
	value string
}

type table struct {
	*element
	widths  []float32
	columns int
	row     int
	col     int
	rows    int
	headers int
}

type cell struct {
	*element
	rowspan, colspan int32
}

type div struct {
	*element
}

type lineSeparator struct {
	*element
	drawer foreign.Ref
}

type layoutImage struct {
	*element
	width, height float32
}

type border struct {
	color foreign.Ref
	width float32
	kind  int32
}

func elemOf(c *Call) *element {
	return c.This.(hasElement).elem()
}

// setter records a property and returns the receiver.
func setter(fn func(c *Call, e *element)) Method {
	return func(c *Call) (foreign.Value, error) {
		fn(c, elemOf(c))
		return c.Return(), nil
	}
}

func setRef(name string) Method {
	return setter(func(c *Call, e *element) { e.props[name] = c.Ref(0) })
}

func setFloat(name string) Method {
	return setter(func(c *Call, e *element) { e.props[name] = c.Float(0) })
}

func setFlag(name string) Method {
	return setter(func(_ *Call, e *element) { e.props[name] = true })
}

func propertyContainer() *Class {
	p := NewClass(classPropertyContainer, "", classIPropertyContainer).AbstractClass().
		Method("setFixedPosition", "(FFF)"+retContainer, setter(func(c *Call, e *element) {
			e.props["position"] = "fixed"
			e.props["left"] = c.Float(0)
			e.props["bottom"] = c.Float(1)
			e.props["width"] = c.Float(2)
		})).
		Method("setBorder", argBorder+retContainer, setRef("border")).
		Method("setBorderTop", argBorder+retContainer, setRef("borderTop")).
		Method("setBorderRight", argBorder+retContainer, setRef("borderRight")).
		Method("setBorderBottom", argBorder+retContainer, setRef("borderBottom")).
		Method("setBorderLeft", argBorder+retContainer, setRef("borderLeft")).
		Method("setHorizontalAlignment", "(L"+classHAlign+";)"+retContainer, setRef("horizontalAlignment")).
		Method("setTextAlignment", "(L"+classTAlign+";)"+retContainer, setRef("textAlignment")).
		Method("setBold", "()"+retContainer, setFlag("bold")).
		Method("setItalic", "()"+retContainer, setFlag("italic")).
		Method("setUnderline", "()"+retContainer, setFlag("underline")).
		Method("setFontSize", "(F)"+retContainer, setter(func(c *Call, e *element) {
			e.props["fontSize"] = c.Float(0)
		})).
		Method("setFontColor", argColor+retContainer, setter(func(c *Call, e *element) {
			e.props["fontColor"] = c.Ref(0)
			e.props["opacity"] = float32(1)
		})).
		Method("setFontColor", "(Lcom/itextpdf/kernel/colors/Color;F)"+retContainer, setter(func(c *Call, e *element) {
			e.props["fontColor"] = c.Ref(0)
			e.props["opacity"] = c.Float(1)
		})).
		Method("setFont", "(Lcom/itextpdf/kernel/font/PdfFont;)"+retContainer, setRef("font")).
		Method("setBackgroundColor", argColor+retContainer, setRef("backgroundColor")).
		Method("setCharacterSpacing", "(F)"+retContainer, setFloat("characterSpacing"))
	return p
}

func blockElement() *Class {
	return NewClass(classBlockElement, classAbstractElement, classIBlockElement).AbstractClass().
		Method("setWidth", "(F)"+retElement, setFloat("width")).
		Method("setHeight", "(F)"+retElement, setFloat("height")).
		Method("setMarginTop", "(F)"+retElement, setFloat("marginTop")).
		Method("setMarginRight", "(F)"+retElement, setFloat("marginRight")).
		Method("setMarginBottom", "(F)"+retElement, setFloat("marginBottom")).
		Method("setMarginLeft", "(F)"+retElement, setFloat("marginLeft")).
		Method("setMargins", "(FFFF)"+retElement, setter(func(c *Call, e *element) {
			e.props["marginTop"] = c.Float(0)
			e.props["marginRight"] = c.Float(1)
			e.props["marginBottom"] = c.Float(2)
			e.props["marginLeft"] = c.Float(3)
		})).
		Method("setPadding", "(F)"+retElement, setter(func(c *Call, e *element) {
			for _, side := range []string{"paddingTop", "paddingRight", "paddingBottom", "paddingLeft"} {
				e.props[side] = c.Float(0)
			}
		})).
		Method("setVerticalAlignment", "(L"+classVAlign+";)"+retElement, setRef("verticalAlignment"))
}

// appendChild adds an element to a container that has not been closed.
func appendChild(c *Call) (foreign.Value, error) {
	if r, ok := c.This.(*root); ok {
		if r.closed || (r.doc != nil && r.doc.closed) {
			return foreign.Value{}, c.Throw(exPdf, msgDocumentClosed)
		}
	}
	if c.Ref(0) == 0 {
		return foreign.Value{}, c.Throw("java/lang/NullPointerException", "element is null")
	}
	e := elemOf(c)
	e.children = append(e.children, c.Ref(0))
	return c.Return(), nil
}

func borderClass(name string, kind int32) *Class {
	return NewClass(name, classBorder).
		Ctor("(F)V", func(c *Call) (any, error) {
			return &border{width: c.Float(0), kind: kind}, nil
		}).
		Ctor("(Lcom/itextpdf/kernel/colors/Color;F)V", func(c *Call) (any, error) {
			return &border{color: c.Ref(0), width: c.Float(1), kind: kind}, nil
		})
}

func defineLayout(r *Runtime) {
	r.classes[classIPropertyContainer] = Interface(classIPropertyContainer)
	r.classes[classIElement] = Interface(classIElement, classIPropertyContainer)
	r.classes[classIBlockElement] = Interface(classIBlockElement, classIElement)
	r.classes[classILeafElement] = Interface(classILeafElement, classIElement)

	r.classes[classPropertyContainer] = propertyContainer()
	r.classes[classAbstractElement] = NewClass(classAbstractElement, classPropertyContainer, classIElement).AbstractClass()
	r.classes[classBlockElement] = blockElement()

	r.classes[classRootElement] = NewClass(classRootElement, classPropertyContainer).AbstractClass().
		Method("add", argBlock+retContainer, appendChild).
		Method("add", argImage+retContainer, appendChild)

	r.classes[classDocument] = NewClass(classDocument, classRootElement).
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfDocument;)V", func(c *Call) (any, error) {
			d, ok := c.Obj(0).(*pdfDocument)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &root{element: newElement(), doc: d, margins: [4]float32{36, 36, 36, 36}, immediateFlush: true}, nil
		}).
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfDocument;Lcom/itextpdf/kernel/geom/PageSize;Z)V", func(c *Call) (any, error) {
			d, ok := c.Obj(0).(*pdfDocument)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			if size, ok := c.Obj(1).(*rect); ok {
				d.defaultSize = *size
			}
			return &root{element: newElement(), doc: d, margins: [4]float32{36, 36, 36, 36}, immediateFlush: c.Bool(2)}, nil
		}).
		Method("setMargins", "(FFFF)V", func(c *Call) (foreign.Value, error) {
			c.This.(*root).margins = [4]float32{c.Float(0), c.Float(1), c.Float(2), c.Float(3)}
			return foreign.Void, nil
		}).
		Method("getTopMargin", "()F", margin(0)).
		Method("getRightMargin", "()F", margin(1)).
		Method("getBottomMargin", "()F", margin(2)).
		Method("getLeftMargin", "()F", margin(3)).
		Method("getPdfDocument", "()Lcom/itextpdf/kernel/pdf/PdfDocument;", func(c *Call) (foreign.Value, error) {
			return c.rt.refOf(c.This.(*root).doc), nil
		}).
		Method("relayout", "()V", relayout).
		Method("close", "()V", func(c *Call) (foreign.Value, error) {
			d := c.This.(*root)
			if d.closed {
				return foreign.Void, nil
			}
			d.closed = true
			if len(d.doc.pages) == 0 && !d.doc.closed {
				d.doc.addPage(d.doc.defaultSize)
			}
			if len(d.doc.pages) > 0 {
				page := d.doc.pages[len(d.doc.pages)-1]
				page.text = append(page.text, c.rt.lines(d.children)...)
			}
			d.doc.close()
			return foreign.Void, nil
		})

	r.classes[classCanvas] = NewClass(classCanvas, classRootElement).
		Ctor("(Lcom/itextpdf/kernel/pdf/canvas/PdfCanvas;Lcom/itextpdf/kernel/geom/Rectangle;)V", func(c *Call) (any, error) {
			return newCanvas(c, true)
		}).
		Ctor("(Lcom/itextpdf/kernel/pdf/canvas/PdfCanvas;Lcom/itextpdf/kernel/geom/Rectangle;Z)V", func(c *Call) (any, error) {
			return newCanvas(c, c.Bool(2))
		}).
		Ctor("(Lcom/itextpdf/kernel/pdf/PdfPage;Lcom/itextpdf/kernel/geom/Rectangle;)V", func(c *Call) (any, error) {
			return newCanvas(c, true)
		}).
		Method("getRootArea", "()Lcom/itextpdf/kernel/geom/Rectangle;", func(c *Call) (foreign.Value, error) {
			area := c.This.(*root).area
			return c.New(classRectangle, &area), nil
		}).
		Method("relayout", "()V", relayout).
		Method("close", "()V", func(c *Call) (foreign.Value, error) {
			cv := c.This.(*root)
			if cv.closed {
				return foreign.Void, nil
			}
			cv.closed = true
			cv.page.text = append(cv.page.text, c.rt.lines(cv.children)...)
			return foreign.Void, nil
		})

	r.classes[classParagraph] = NewClass(classParagraph, classBlockElement).
		Ctor("()V", func(*Call) (any, error) {
			return &paragraph{element: newElement()}, nil
		}).
		Ctor("(Ljava/lang/String;)V", func(c *Call) (any, error) {
			s, ok := c.String(0)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			p := &paragraph{element: newElement(), text: []string{s}}
			p.props["text"] = s
			return p, nil
		}).
		Method("add", "(Ljava/lang/String;)Lcom/itextpdf/layout/element/Paragraph;", func(c *Call) (foreign.Value, error) {
			s, _ := c.String(0)
			p := c.This.(*paragraph)
			p.text = append(p.text, s)
			p.props["text"] = strings.Join(p.text, "")
			return c.Return(), nil
		}).
		Method("add", "(Lcom/itextpdf/layout/element/ILeafElement;)Lcom/itextpdf/layout/element/Paragraph;", appendChild).
		Method("setMultipliedLeading", "(F)Lcom/itextpdf/layout/element/Paragraph;", setFloat("multipliedLeading")).
		Method("setFixedLeading", "(F)Lcom/itextpdf/layout/element/Paragraph;", setFloat("fixedLeading")).
		Method("setFirstLineIndent", "(F)Lcom/itextpdf/layout/element/Paragraph;", setFloat("firstLineIndent"))

	r.classes[classText] = NewClass(classText, classAbstractElement, classILeafElement).
		Ctor("(Ljava/lang/String;)V", func(c *Call) (any, error) {
			s, ok := c.String(0)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &text{element: newElement(), value: s}, nil
		}).
		Method("getText", "()Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(c.This.(*text).value), nil
		})

	r.classes[classTable] = NewClass(classTable, classBlockElement).
		Ctor("([F)V", func(c *Call) (any, error) {
			a, ok := c.Obj(0).(*array)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			if len(a.floats) == 0 {
				return nil, c.Throw("java/lang/IllegalArgumentException", "The widths array in table constructor can not have zero length.")
			}
			return &table{element: newElement(), widths: append([]float32(nil), a.floats...), columns: len(a.floats)}, nil
		}).
		Ctor("(I)V", func(c *Call) (any, error) {
			if c.Int(0) <= 0 {
				return nil, c.Throw("java/lang/IllegalArgumentException", "The number of columns in Table constructor must be greater than zero")
			}
			return &table{element: newElement(), columns: int(c.Int(0))}, nil
		}).
		Method("startNewRow", "()Lcom/itextpdf/layout/element/Table;", func(c *Call) (foreign.Value, error) {
			t := c.This.(*table)
			if t.col > 0 {
				t.row++
				t.col = 0
			}
			return c.Return(), nil
		}).
		Method("addCell", "(Lcom/itextpdf/layout/element/Cell;)Lcom/itextpdf/layout/element/Table;", func(c *Call) (foreign.Value, error) {
			t := c.This.(*table)
			cl, ok := c.Obj(0).(*cell)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			span := int(cl.colspan)
			if span > t.columns {
				span = t.columns
			}
			if t.col+span > t.columns {
				t.row++
				t.col = 0
			}
			if end := t.row + int(cl.rowspan); end > t.rows {
				t.rows = end
			}
			t.col += span
			t.children = append(t.children, c.Ref(0))
			return c.Return(), nil
		}).
		Method("addHeaderCell", "(Lcom/itextpdf/layout/element/Cell;)Lcom/itextpdf/layout/element/Table;", func(c *Call) (foreign.Value, error) {
			if c.Ref(0) == 0 {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			c.This.(*table).headers++
			return c.Return(), nil
		}).
		Method("useAllAvailableWidth", "()Lcom/itextpdf/layout/element/Table;", setter(func(_ *Call, e *element) {
			e.props["widthPercent"] = float32(100)
		})).
		Method("setFixedLayout", "()Lcom/itextpdf/layout/element/Table;", setter(func(_ *Call, e *element) {
			e.props["layout"] = "fixed"
		})).
		Method("getNumberOfColumns", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.This.(*table).columns)), nil
		}).
		Method("getNumberOfRows", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.This.(*table).rows)), nil
		})

	r.classes[classCell] = NewClass(classCell, classBlockElement).
		Ctor("()V", func(*Call) (any, error) {
			return &cell{element: newElement(), rowspan: 1, colspan: 1}, nil
		}).
		Ctor("(II)V", func(c *Call) (any, error) {
			rs, cs := c.Int(0), c.Int(1)
			if rs < 1 {
				rs = 1
			}
			if cs < 1 {
				cs = 1
			}
			return &cell{element: newElement(), rowspan: rs, colspan: cs}, nil
		}).
		Method("add", argBlock+"Lcom/itextpdf/layout/element/Cell;", appendChild).
		Method("add", argImage+"Lcom/itextpdf/layout/element/Cell;", appendChild).
		Method("getRowspan", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(c.This.(*cell).rowspan), nil
		}).
		Method("getColspan", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(c.This.(*cell).colspan), nil
		})

	r.classes[classDiv] = NewClass(classDiv, classBlockElement).
		Ctor("()V", func(*Call) (any, error) {
			return &div{element: newElement()}, nil
		}).
		Method("add", argBlock+"Lcom/itextpdf/layout/element/Div;", appendChild).
		Method("add", argImage+"Lcom/itextpdf/layout/element/Div;", appendChild)

	r.classes[classLineSeparator] = NewClass(classLineSeparator, classBlockElement).
		Ctor("(Lcom/itextpdf/kernel/pdf/canvas/draw/ILineDrawer;)V", func(c *Call) (any, error) {
			if c.Ref(0) == 0 {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &lineSeparator{element: newElement(), drawer: c.Ref(0)}, nil
		})

	imageSetter := func(name string) Method {
		return func(c *Call) (foreign.Value, error) {
			img := c.This.(*layoutImage)
			img.props[name] = c.Float(0)
			return c.Return(), nil
		}
	}
	r.classes[classImage] = NewClass(classImage, classAbstractElement, classILeafElement).
		Ctor("(Lcom/itextpdf/io/image/ImageData;)V", func(c *Call) (any, error) {
			d, ok := c.Obj(0).(*imageData)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &layoutImage{element: newElement(), width: d.width, height: d.height}, nil
		}).
		Ctor("(Lcom/itextpdf/kernel/pdf/xobject/PdfFormXObject;)V", func(c *Call) (any, error) {
			x, ok := c.Obj(0).(*formXObject)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &layoutImage{element: newElement(), width: x.bbox.w, height: x.bbox.h}, nil
		}).
		Method("setWidth", "(F)Lcom/itextpdf/layout/element/Image;", imageSetter("width")).
		Method("setHeight", "(F)Lcom/itextpdf/layout/element/Image;", imageSetter("height")).
		Method("scaleToFit", "(FF)Lcom/itextpdf/layout/element/Image;", func(c *Call) (foreign.Value, error) {
			img := c.This.(*layoutImage)
			fw, fh := c.Float(0), c.Float(1)
			if img.width > 0 && img.height > 0 {
				scale := fw / img.width
				if s := fh / img.height; s < scale {
					scale = s
				}
				img.props["width"] = img.width * scale
				img.props["height"] = img.height * scale
			}
			return c.Return(), nil
		}).
		Method("setAutoScale", "(Z)Lcom/itextpdf/layout/element/Image;", func(c *Call) (foreign.Value, error) {
			c.This.(*layoutImage).props["autoScale"] = c.Bool(0)
			return c.Return(), nil
		}).
		Method("getImageWidth", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*layoutImage).width), nil
		}).
		Method("getImageHeight", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*layoutImage).height), nil
		})

	r.classes[classBorder] = NewClass(classBorder, "").AbstractClass().
		StaticField("NO_BORDER", "Lcom/itextpdf/layout/borders/Border;", func(*Call) (foreign.Value, error) {
			return foreign.Null, nil
		}).
		Method("getWidth", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*border).width), nil
		}).
		Method("getType", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(c.This.(*border).kind), nil
		}).
		Method("getColor", "()Lcom/itextpdf/kernel/colors/Color;", func(c *Call) (foreign.Value, error) {
			if ref := c.This.(*border).color; ref != 0 {
				return foreign.RefValue(ref), nil
			}
			return c.New(classDeviceRgb, &color{}), nil
		})
	for name, kind := range map[string]int32{
		"com/itextpdf/layout/borders/SolidBorder":  borderSolid,
		"com/itextpdf/layout/borders/DashedBorder": borderDashed,
		"com/itextpdf/layout/borders/DottedBorder": borderDotted,
		"com/itextpdf/layout/borders/DoubleBorder": borderDouble,
	} {
		r.classes[name] = borderClass(name, kind)
	}

	defineEnum(r, classHAlign, "LEFT", "CENTER", "RIGHT")
	defineEnum(r, classVAlign, "TOP", "MIDDLE", "BOTTOM")
	defineEnum(r, classTAlign, "LEFT", "CENTER", "RIGHT", "JUSTIFIED", "JUSTIFIED_ALL")
}

func margin(i int) Method {
	return func(c *Call) (foreign.Value, error) {
		return foreign.Float(c.This.(*root).margins[i]), nil
	}
}

func relayout(c *Call) (foreign.Value, error) {
	r := c.This.(*root)
	if r.immediateFlush {
		return foreign.Value{}, c.Throw("java/lang/IllegalStateException", "Operation not supported with immediate flush")
	}
	r.relayouts++
	r.props["relayouts"] = r.relayouts
	return foreign.Void, nil
}

func newCanvas(c *Call, immediateFlush bool) (any, error) {
	var page *pdfPage
	switch v := c.Obj(0).(type) {
	case *pdfCanvas:
		page = v.page
	case *pdfPage:
		page = v
	default:
		return nil, c.Throw("java/lang/NullPointerException", "")
	}
	area, ok := c.Obj(1).(*rect)
	if !ok {
		return nil, c.Throw("java/lang/NullPointerException", "")
	}
	return &root{element: newElement(), doc: page.doc, page: page, area: *area, immediateFlush: immediateFlush, canvas: true}, nil
}

// lines renders the text content of elements for the page stream.
func (r *Runtime) lines(refs []foreign.Ref) []string {
	var out []string
	for _, ref := range refs {
		v, ok := r.heap.Get(ref)
		if !ok {
			continue
		}
		switch e := v.(type) {
		case *paragraph:
			s := strings.Join(e.text, "")
			for _, child := range r.lines(e.children) {
				s += child
			}
			out = append(out, s)
		case *text:
			out = append(out, e.value)
		case *layoutImage:
			out = append(out, fmt.Sprintf("[image %gx%g]", e.width, e.height))
		case *lineSeparator:
			out = append(out, "----")
		case hasElement:
			out = append(out, r.lines(e.elem().children)...)
		}
	}
	return out
}
