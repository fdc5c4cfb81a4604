package layout

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/kernel"
)

// StyleChain applies property setters in order and stops at the first error.
type StyleChain[T Stylable] struct {
	env *foreign.Env
	x   T
	err error
}

// Style starts a chain of property setters on x.
func Style[T Stylable](env *foreign.Env, x T) *StyleChain[T] {
	return &StyleChain[T]{env: env, x: x}
}

func (c *StyleChain[T]) do(fn func() error) *StyleChain[T] {
	if c.err == nil {
		c.err = fn()
	}
	return c
}

func (c *StyleChain[T]) FixedPosition(left, bottom, width float32) *StyleChain[T] {
	return c.do(func() error { return setFixedPosition(c.env, c.x, left, bottom, width) })
}

func (c *StyleChain[T]) Border(b Border) *StyleChain[T] {
	return c.do(func() error { return setBorder(c.env, c.x, "", b) })
}

func (c *StyleChain[T]) BorderTop(b Border) *StyleChain[T] {
	return c.do(func() error { return setBorder(c.env, c.x, "Top", b) })
}

func (c *StyleChain[T]) BorderRight(b Border) *StyleChain[T] {
	return c.do(func() error { return setBorder(c.env, c.x, "Right", b) })
}

func (c *StyleChain[T]) BorderBottom(b Border) *StyleChain[T] {
	return c.do(func() error { return setBorder(c.env, c.x, "Bottom", b) })
}

func (c *StyleChain[T]) BorderLeft(b Border) *StyleChain[T] {
	return c.do(func() error { return setBorder(c.env, c.x, "Left", b) })
}

func (c *StyleChain[T]) HorizontalAlignment(a HorizontalAlignment) *StyleChain[T] {
	return c.do(func() error {
		return setConstant(c.env, c.x, "setHorizontalAlignment", descHAlignment, descContainer, a)
	})
}

func (c *StyleChain[T]) TextAlignment(a TextAlignment) *StyleChain[T] {
	return c.do(func() error {
		return setConstant(c.env, c.x, "setTextAlignment", descTAlignment, descContainer, a)
	})
}

func (c *StyleChain[T]) Bold() *StyleChain[T] {
	return c.do(func() error { return call(c.env, c.x, "setBold", "()"+descContainer) })
}

func (c *StyleChain[T]) Italic() *StyleChain[T] {
	return c.do(func() error { return call(c.env, c.x, "setItalic", "()"+descContainer) })
}

func (c *StyleChain[T]) Underline() *StyleChain[T] {
	return c.do(func() error { return call(c.env, c.x, "setUnderline", "()"+descContainer) })
}

func (c *StyleChain[T]) FontSize(size float32) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setFontSize", "(F)"+descContainer, foreign.Float(size))
	})
}

func (c *StyleChain[T]) FontColor(color *kernel.Color) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setFontColor", "("+descColor+")"+descContainer, foreign.Obj(color))
	})
}

func (c *StyleChain[T]) FontColorWithOpacity(color *kernel.Color, opacity float32) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setFontColor", "("+descColor+"F)"+descContainer, foreign.Obj(color), foreign.Float(opacity))
	})
}

func (c *StyleChain[T]) Font(f *kernel.PdfFont) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setFont", "("+descPdfFont+")"+descContainer, foreign.Obj(f))
	})
}

func (c *StyleChain[T]) BackgroundColor(color *kernel.Color) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setBackgroundColor", "("+descColor+")"+descContainer, foreign.Obj(color))
	})
}

func (c *StyleChain[T]) CharacterSpacing(spacing float32) *StyleChain[T] {
	return c.do(func() error {
		return call(c.env, c.x, "setCharacterSpacing", "(F)"+descContainer, foreign.Float(spacing))
	})
}

// Err returns the first failure, if any.
func (c *StyleChain[T]) Err() error { return c.err }

// Done returns the styled element, or the first failure.
func (c *StyleChain[T]) Done() (T, error) { return ret(c.x, c.err) }

// SizeChain applies block sizing setters in order and stops at the first error.
type SizeChain[T Block] struct {
	env *foreign.Env
	x   T
	err error
}

// Size starts a chain of sizing setters on a block element.
func Size[T Block](env *foreign.Env, x T) *SizeChain[T] {
	return &SizeChain[T]{env: env, x: x}
}

func (c *SizeChain[T]) float(name string, v float32) *SizeChain[T] {
	if c.err == nil {
		c.err = call(c.env, c.x, name, "(F)"+descElement, foreign.Float(v))
	}
	return c
}

func (c *SizeChain[T]) Width(w float32) *SizeChain[T]  { return c.float("setWidth", w) }
func (c *SizeChain[T]) Height(h float32) *SizeChain[T] { return c.float("setHeight", h) }

func (c *SizeChain[T]) MarginTop(m float32) *SizeChain[T]    { return c.float("setMarginTop", m) }
func (c *SizeChain[T]) MarginRight(m float32) *SizeChain[T]  { return c.float("setMarginRight", m) }
func (c *SizeChain[T]) MarginBottom(m float32) *SizeChain[T] { return c.float("setMarginBottom", m) }
func (c *SizeChain[T]) MarginLeft(m float32) *SizeChain[T]   { return c.float("setMarginLeft", m) }
func (c *SizeChain[T]) Padding(p float32) *SizeChain[T]      { return c.float("setPadding", p) }

func (c *SizeChain[T]) Margins(top, right, bottom, left float32) *SizeChain[T] {
	if c.err == nil {
		c.err = call(c.env, c.x, "setMargins", "(FFFF)"+descElement,
			foreign.Float(top), foreign.Float(right), foreign.Float(bottom), foreign.Float(left))
	}
	return c
}

func (c *SizeChain[T]) VerticalAlignment(a VerticalAlignment) *SizeChain[T] {
	if c.err == nil {
		c.err = setConstant(c.env, c.x, "setVerticalAlignment", descVAlignment, descElement, a)
	}
	return c
}

func (c *SizeChain[T]) Err() error { return c.err }

func (c *SizeChain[T]) Done() (T, error) { return ret(c.x, c.err) }

// Theme is a reusable set of text properties. Zero fields are left alone.
type Theme struct {
	Font       *kernel.PdfFont
	FontColor  *kernel.Color
	Background *kernel.Color
	Align      *TextAlignment
	Border     Border
	FontSize   float32
	Bold       bool
	Italic     bool
}

// ApplyTheme styles any element with the property capability.
func ApplyTheme[T Stylable](env *foreign.Env, x T, th Theme) (T, error) {
	c := Style(env, x)
	if th.Font != nil {
		c.Font(th.Font)
	}
	if th.FontSize > 0 {
		c.FontSize(th.FontSize)
	}
	if th.FontColor != nil {
		c.FontColor(th.FontColor)
	}
	if th.Background != nil {
		c.BackgroundColor(th.Background)
	}
	if th.Bold {
		c.Bold()
	}
	if th.Italic {
		c.Italic()
	}
	if th.Align != nil {
		c.TextAlignment(*th.Align)
	}
	if th.Border != nil {
		c.Border(th.Border)
	}
	return c.Done()
}
