package kernel

import "github.com/wippyai/docbridge/foreign"

const (
	classDeviceRgb      = "com/itextpdf/kernel/colors/DeviceRgb"
	classColorConstants = "com/itextpdf/kernel/colors/ColorConstants"
	descColor           = "Lcom/itextpdf/kernel/colors/Color;"
)

// Color is any iText color.
type Color struct{ foreign.Handle }

// NewRGB builds a DeviceRgb color from components in [0, 1].
func NewRGB(env *foreign.Env, r, g, b float32) (*Color, error) {
	h, err := env.NewObject(classDeviceRgb, "(FFF)V", foreign.Float(r), foreign.Float(g), foreign.Float(b))
	if err != nil {
		return nil, err
	}
	return &Color{h}, nil
}

// ColorFromConstant resolves one of the ColorConstants.
func ColorFromConstant(env *foreign.Env, c ColorConstant) (*Color, error) {
	h, err := foreign.ResolveObject(env, c)
	if err != nil {
		return nil, err
	}
	return &Color{h}, nil
}

// ColorConstant names a ColorConstants field.
type ColorConstant int

const (
	Black ColorConstant = iota
	Blue
	Cyan
	DarkGray
	Gray
	Green
	LightGray
	Magenta
	Orange
	Pink
	Red
	White
	Yellow
)

var colorNames = [...]string{
	"Black", "Blue", "Cyan", "DarkGray", "Gray", "Green", "LightGray",
	"Magenta", "Orange", "Pink", "Red", "White", "Yellow",
}

// ColorConstants lists every ColorConstant in declaration order.
func ColorConstants() []ColorConstant {
	out := make([]ColorConstant, len(colorNames))
	for i := range out {
		out[i] = ColorConstant(i)
	}
	return out
}

func (c ColorConstant) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "ColorConstant(?)"
	}
	return colorNames[c]
}

func (ColorConstant) ConstantClass() string      { return classColorConstants }
func (ColorConstant) ConstantDescriptor() string { return descColor }

const (
	classSolidLine  = "com/itextpdf/kernel/pdf/canvas/draw/SolidLine"
	classDashedLine = "com/itextpdf/kernel/pdf/canvas/draw/DashedLine"
	classDottedLine = "com/itextpdf/kernel/pdf/canvas/draw/DottedLine"
)

// LineDrawer is implemented by the line styles a LineSeparator accepts.
type LineDrawer interface {
	foreign.Referent
	lineDrawer()
}

type line struct{ foreign.Handle }

func (line) lineDrawer() {}

func newLine(env *foreign.Env, class string, width float32) (line, error) {
	h, err := env.NewObject(class, "(F)V", foreign.Float(width))
	if err != nil {
		return line{}, err
	}
	return line{h}, nil
}

// SetColor sets the stroke color from a constant.
func (l line) SetColor(env *foreign.Env, c ColorConstant) error {
	color, err := foreign.ResolveConstant(env, c)
	if err != nil {
		return err
	}
	_, err = env.CallMethod(l, "setColor", "("+descColor+")V", color)
	return err
}

// SetRGB sets the stroke color.
func (l line) SetRGB(env *foreign.Env, c *Color) error {
	_, err := env.CallMethod(l, "setColor", "("+descColor+")V", foreign.Obj(c))
	return err
}

func (l line) LineWidth(env *foreign.Env) (float32, error) {
	return float(env.CallMethod(l, "getLineWidth", "()F"))
}

func (l line) SetLineWidth(env *foreign.Env, width float32) error {
	_, err := env.CallMethod(l, "setLineWidth", "(F)V", foreign.Float(width))
	return err
}

// SolidLine draws a continuous rule.
type SolidLine struct{ line }

func NewSolidLine(env *foreign.Env, width float32) (*SolidLine, error) {
	l, err := newLine(env, classSolidLine, width)
	if err != nil {
		return nil, err
	}
	return &SolidLine{l}, nil
}

type DashedLine struct{ line }

func NewDashedLine(env *foreign.Env, width float32) (*DashedLine, error) {
	l, err := newLine(env, classDashedLine, width)
	if err != nil {
		return nil, err
	}
	return &DashedLine{l}, nil
}

type DottedLine struct{ line }

func NewDottedLine(env *foreign.Env, width float32) (*DottedLine, error) {
	l, err := newLine(env, classDottedLine, width)
	if err != nil {
		return nil, err
	}
	return &DottedLine{l}, nil
}
