package layout

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/iodata"
	"github.com/wippyai/docbridge/itext/kernel"
)

const (
	classParagraph     = "com/itextpdf/layout/element/Paragraph"
	classText          = "com/itextpdf/layout/element/Text"
	classTable         = "com/itextpdf/layout/element/Table"
	classCell          = "com/itextpdf/layout/element/Cell"
	classDiv           = "com/itextpdf/layout/element/Div"
	classLineSeparator = "com/itextpdf/layout/element/LineSeparator"
	classImage         = "com/itextpdf/layout/element/Image"
	descParagraph      = "Lcom/itextpdf/layout/element/Paragraph;"
	descTable          = "Lcom/itextpdf/layout/element/Table;"
	descCell           = "Lcom/itextpdf/layout/element/Cell;"
	descDiv            = "Lcom/itextpdf/layout/element/Div;"
)

// Paragraph is a block of inline text and leaf elements.
type Paragraph struct {
	foreign.Handle
	PropertyContainer[*Paragraph]
	BlockElement[*Paragraph]
}

func wrapParagraph(h foreign.Handle) *Paragraph {
	p := &Paragraph{Handle: h}
	p.PropertyContainer = PropertyContainer[*Paragraph]{p}
	p.BlockElement = BlockElement[*Paragraph]{p}
	return p
}

func NewParagraph(env *foreign.Env) (*Paragraph, error) {
	h, err := env.NewObject(classParagraph, "()V")
	if err != nil {
		return nil, err
	}
	return wrapParagraph(h), nil
}

// NewParagraphText creates a paragraph holding text. The string is copied
// into a fresh foreign string.
func NewParagraphText(env *foreign.Env, text string) (*Paragraph, error) {
	s, err := foreign.NewStringValue(env, text)
	if err != nil {
		return nil, err
	}
	h, err := env.NewObject(classParagraph, "(Ljava/lang/String;)V", s)
	if err != nil {
		return nil, err
	}
	return wrapParagraph(h), nil
}

// AddString appends a run of plain text.
func (p *Paragraph) AddString(env *foreign.Env, text string) (*Paragraph, error) {
	s, err := foreign.NewStringValue(env, text)
	if err != nil {
		return nil, err
	}
	return ret(p, call(env, p, "add", "(Ljava/lang/String;)"+descParagraph, s))
}

// Add appends a Text or Image.
func (p *Paragraph) Add(env *foreign.Env, leaf Leaf) (*Paragraph, error) {
	return ret(p, call(env, p, "add", "(Lcom/itextpdf/layout/element/ILeafElement;)"+descParagraph, foreign.Obj(leaf)))
}

func (p *Paragraph) SetMultipliedLeading(env *foreign.Env, leading float32) (*Paragraph, error) {
	return ret(p, call(env, p, "setMultipliedLeading", "(F)"+descParagraph, foreign.Float(leading)))
}

func (p *Paragraph) SetFixedLeading(env *foreign.Env, leading float32) (*Paragraph, error) {
	return ret(p, call(env, p, "setFixedLeading", "(F)"+descParagraph, foreign.Float(leading)))
}

func (p *Paragraph) SetFirstLineIndent(env *foreign.Env, indent float32) (*Paragraph, error) {
	return ret(p, call(env, p, "setFirstLineIndent", "(F)"+descParagraph, foreign.Float(indent)))
}

// Text is a styled run inside a Paragraph.
type Text struct {
	foreign.Handle
	PropertyContainer[*Text]
}

func (*Text) element()     {}
func (*Text) leafElement() {}

func NewText(env *foreign.Env, text string) (*Text, error) {
	s, err := foreign.NewStringValue(env, text)
	if err != nil {
		return nil, err
	}
	h, err := env.NewObject(classText, "(Ljava/lang/String;)V", s)
	if err != nil {
		return nil, err
	}
	t := &Text{Handle: h}
	t.PropertyContainer = PropertyContainer[*Text]{t}
	return t, nil
}

func (t *Text) Text(env *foreign.Env) (string, error) {
	v, err := env.CallMethod(t, "getText", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	return foreign.StringResult(env, v)
}

// Table arranges cells in rows. Cells fill the current row left to right and
// wrap to the next row when it is full.
type Table struct {
	foreign.Handle
	PropertyContainer[*Table]
	BlockElement[*Table]
}

func wrapTable(h foreign.Handle) *Table {
	t := &Table{Handle: h}
	t.PropertyContainer = PropertyContainer[*Table]{t}
	t.BlockElement = BlockElement[*Table]{t}
	return t
}

// NewTable creates a table with one column per width, in points. The widths
// are copied into a foreign float[] first.
func NewTable(env *foreign.Env, columnWidths []float32) (*Table, error) {
	arr, err := foreign.NewFloatArray(env, columnWidths)
	if err != nil {
		return nil, err
	}
	h, err := env.NewObject(classTable, "([F)V", foreign.Obj(arr))
	if err != nil {
		return nil, err
	}
	return wrapTable(h), nil
}

// NewTableColumns creates a table of n equal columns.
func NewTableColumns(env *foreign.Env, n int32) (*Table, error) {
	h, err := env.NewObject(classTable, "(I)V", foreign.Int(n))
	if err != nil {
		return nil, err
	}
	return wrapTable(h), nil
}

func (t *Table) StartNewRow(env *foreign.Env) (*Table, error) {
	return ret(t, call(env, t, "startNewRow", "()"+descTable))
}

func (t *Table) AddCell(env *foreign.Env, c *Cell) (*Table, error) {
	return ret(t, call(env, t, "addCell", "("+descCell+")"+descTable, foreign.Obj(c)))
}

func (t *Table) AddHeaderCell(env *foreign.Env, c *Cell) (*Table, error) {
	return ret(t, call(env, t, "addHeaderCell", "("+descCell+")"+descTable, foreign.Obj(c)))
}

func (t *Table) UseAllAvailableWidth(env *foreign.Env) (*Table, error) {
	return ret(t, call(env, t, "useAllAvailableWidth", "()"+descTable))
}

func (t *Table) SetFixedLayout(env *foreign.Env) (*Table, error) {
	return ret(t, call(env, t, "setFixedLayout", "()"+descTable))
}

func (t *Table) NumberOfColumns(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(t, "getNumberOfColumns", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

func (t *Table) NumberOfRows(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(t, "getNumberOfRows", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

type Cell struct {
	foreign.Handle
	PropertyContainer[*Cell]
	BlockElement[*Cell]
}

func wrapCell(h foreign.Handle) *Cell {
	c := &Cell{Handle: h}
	c.PropertyContainer = PropertyContainer[*Cell]{c}
	c.BlockElement = BlockElement[*Cell]{c}
	return c
}

func NewCell(env *foreign.Env) (*Cell, error) {
	h, err := env.NewObject(classCell, "()V")
	if err != nil {
		return nil, err
	}
	return wrapCell(h), nil
}

// NewCellSpan creates a cell spanning rows and columns. Spans below 1 are
// raised to 1.
func NewCellSpan(env *foreign.Env, rowspan, colspan int32) (*Cell, error) {
	h, err := env.NewObject(classCell, "(II)V", foreign.Int(rowspan), foreign.Int(colspan))
	if err != nil {
		return nil, err
	}
	return wrapCell(h), nil
}

func (c *Cell) Add(env *foreign.Env, b Block) (*Cell, error) {
	return ret(c, call(env, c, "add", "("+descBlock+")"+descCell, foreign.Obj(b)))
}

func (c *Cell) AddImage(env *foreign.Env, img *Image) (*Cell, error) {
	return ret(c, call(env, c, "add", "("+descImage+")"+descCell, foreign.Obj(img)))
}

func (c *Cell) Rowspan(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(c, "getRowspan", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

func (c *Cell) Colspan(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(c, "getColspan", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Div groups blocks so they can be styled and positioned together.
type Div struct {
	foreign.Handle
	PropertyContainer[*Div]
	BlockElement[*Div]
}

func NewDiv(env *foreign.Env) (*Div, error) {
	h, err := env.NewObject(classDiv, "()V")
	if err != nil {
		return nil, err
	}
	d := &Div{Handle: h}
	d.PropertyContainer = PropertyContainer[*Div]{d}
	d.BlockElement = BlockElement[*Div]{d}
	return d, nil
}

func (d *Div) Add(env *foreign.Env, b Block) (*Div, error) {
	return ret(d, call(env, d, "add", "("+descBlock+")"+descDiv, foreign.Obj(b)))
}

func (d *Div) AddImage(env *foreign.Env, img *Image) (*Div, error) {
	return ret(d, call(env, d, "add", "("+descImage+")"+descDiv, foreign.Obj(img)))
}

// LineSeparator is a horizontal rule.
type LineSeparator struct {
	foreign.Handle
	PropertyContainer[*LineSeparator]
	BlockElement[*LineSeparator]
}

func NewLineSeparator(env *foreign.Env, drawer kernel.LineDrawer) (*LineSeparator, error) {
	h, err := env.NewObject(classLineSeparator, "(Lcom/itextpdf/kernel/pdf/canvas/draw/ILineDrawer;)V", foreign.Obj(drawer))
	if err != nil {
		return nil, err
	}
	l := &LineSeparator{Handle: h}
	l.PropertyContainer = PropertyContainer[*LineSeparator]{l}
	l.BlockElement = BlockElement[*LineSeparator]{l}
	return l, nil
}

// Image places image data or a form XObject. It is a leaf, not a block, so
// roots and containers take it through AddImage.
type Image struct {
	foreign.Handle
	PropertyContainer[*Image]
}

func (*Image) element()     {}
func (*Image) leafElement() {}

func wrapImage(h foreign.Handle) *Image {
	img := &Image{Handle: h}
	img.PropertyContainer = PropertyContainer[*Image]{img}
	return img
}

func NewImage(env *foreign.Env, data *iodata.ImageData) (*Image, error) {
	h, err := env.NewObject(classImage, "(Lcom/itextpdf/io/image/ImageData;)V", foreign.Obj(data))
	if err != nil {
		return nil, err
	}
	return wrapImage(h), nil
}

// NewImageFromXObject wraps a form, e.g. a rendered barcode.
func NewImageFromXObject(env *foreign.Env, x *kernel.PdfFormXObject) (*Image, error) {
	h, err := env.NewObject(classImage, "(Lcom/itextpdf/kernel/pdf/xobject/PdfFormXObject;)V", foreign.Obj(x))
	if err != nil {
		return nil, err
	}
	return wrapImage(h), nil
}

func (img *Image) SetWidth(env *foreign.Env, width float32) (*Image, error) {
	return ret(img, call(env, img, "setWidth", "(F)"+descImage, foreign.Float(width)))
}

func (img *Image) SetHeight(env *foreign.Env, height float32) (*Image, error) {
	return ret(img, call(env, img, "setHeight", "(F)"+descImage, foreign.Float(height)))
}

// ScaleToFit scales the image to fit inside width x height, keeping its
// aspect ratio.
func (img *Image) ScaleToFit(env *foreign.Env, width, height float32) (*Image, error) {
	return ret(img, call(env, img, "scaleToFit", "(FF)"+descImage, foreign.Float(width), foreign.Float(height)))
}

func (img *Image) SetAutoScale(env *foreign.Env, auto bool) (*Image, error) {
	return ret(img, call(env, img, "setAutoScale", "(Z)"+descImage, foreign.Bool(auto)))
}

// ImageWidth returns the intrinsic width.
func (img *Image) ImageWidth(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(img, "getImageWidth", "()F"))
}

func (img *Image) ImageHeight(env *foreign.Env) (float32, error) {
	return floatResult(env.CallMethod(img, "getImageHeight", "()F"))
}
