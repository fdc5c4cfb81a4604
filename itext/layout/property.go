package layout

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/kernel"
)

const (
	classHAlignment = "com/itextpdf/layout/property/HorizontalAlignment"
	classVAlignment = "com/itextpdf/layout/property/VerticalAlignment"
	classTAlignment = "com/itextpdf/layout/property/TextAlignment"
)

type HorizontalAlignment int

const (
	HorizontalAlignmentLeft HorizontalAlignment = iota
	HorizontalAlignmentCenter
	HorizontalAlignmentRight
)

func (a HorizontalAlignment) String() string {
	switch a {
	case HorizontalAlignmentLeft:
		return "Left"
	case HorizontalAlignmentCenter:
		return "Center"
	case HorizontalAlignmentRight:
		return "Right"
	}
	return "HorizontalAlignment(?)"
}

func (HorizontalAlignment) ConstantClass() string      { return classHAlignment }
func (HorizontalAlignment) ConstantDescriptor() string { return descHAlignment }

type VerticalAlignment int

const (
	VerticalAlignmentTop VerticalAlignment = iota
	VerticalAlignmentMiddle
	VerticalAlignmentBottom
)

func (a VerticalAlignment) String() string {
	switch a {
	case VerticalAlignmentTop:
		return "Top"
	case VerticalAlignmentMiddle:
		return "Middle"
	case VerticalAlignmentBottom:
		return "Bottom"
	}
	return "VerticalAlignment(?)"
}

func (VerticalAlignment) ConstantClass() string      { return classVAlignment }
func (VerticalAlignment) ConstantDescriptor() string { return descVAlignment }

type TextAlignment int

const (
	TextAlignmentLeft TextAlignment = iota
	TextAlignmentCenter
	TextAlignmentRight
	TextAlignmentJustified
	TextAlignmentJustifiedAll
)

func (a TextAlignment) String() string {
	switch a {
	case TextAlignmentLeft:
		return "Left"
	case TextAlignmentCenter:
		return "Center"
	case TextAlignmentRight:
		return "Right"
	case TextAlignmentJustified:
		return "Justified"
	case TextAlignmentJustifiedAll:
		return "JustifiedAll"
	}
	return "TextAlignment(?)"
}

func (TextAlignment) ConstantClass() string      { return classTAlignment }
func (TextAlignment) ConstantDescriptor() string { return descTAlignment }

// Border describes a border to construct at the point of use. A nil Border
// is treated as NoBorder.
type Border interface {
	border(env *foreign.Env) (foreign.Value, error)
}

type noBorder struct{}

func (noBorder) border(*foreign.Env) (foreign.Value, error) { return foreign.Null, nil }

// NoBorder removes a border. It is passed as null without any foreign lookup.
var NoBorder Border = noBorder{}

// Solid is a continuous border. The zero Color is black.
type Solid struct {
	Width float32
	Color kernel.ColorConstant
}

func (b Solid) border(env *foreign.Env) (foreign.Value, error) {
	return newBorder(env, "com/itextpdf/layout/borders/SolidBorder", b.Width, b.Color)
}

type Dashed struct {
	Width float32
	Color kernel.ColorConstant
}

func (b Dashed) border(env *foreign.Env) (foreign.Value, error) {
	return newBorder(env, "com/itextpdf/layout/borders/DashedBorder", b.Width, b.Color)
}

type Dotted struct {
	Width float32
	Color kernel.ColorConstant
}

func (b Dotted) border(env *foreign.Env) (foreign.Value, error) {
	return newBorder(env, "com/itextpdf/layout/borders/DottedBorder", b.Width, b.Color)
}

type Double struct {
	Width float32
	Color kernel.ColorConstant
}

func (b Double) border(env *foreign.Env) (foreign.Value, error) {
	return newBorder(env, "com/itextpdf/layout/borders/DoubleBorder", b.Width, b.Color)
}

func newBorder(env *foreign.Env, class string, width float32, c kernel.ColorConstant) (foreign.Value, error) {
	color, err := foreign.ResolveConstant(env, c)
	if err != nil {
		return foreign.Value{}, err
	}
	h, err := env.NewObject(class, "("+descColor+"F)V", color, foreign.Float(width))
	if err != nil {
		return foreign.Value{}, err
	}
	return foreign.Obj(h), nil
}

func borderValue(env *foreign.Env, b Border) (foreign.Value, error) {
	if b == nil {
		return foreign.Null, nil
	}
	return b.border(env)
}
