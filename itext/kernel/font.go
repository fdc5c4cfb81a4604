package kernel

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/iodata"
)

const (
	classPdfFontFactory = "com/itextpdf/kernel/font/PdfFontFactory"
	descPdfFont         = "Lcom/itextpdf/kernel/font/PdfFont;"
	descFontProgram     = "Lcom/itextpdf/io/font/FontProgram;"
)

// PdfFont is a font bound to a document.
type PdfFont struct{ foreign.Handle }

func (f *PdfFont) IsEmbedded(env *foreign.Env) (bool, error) {
	v, err := env.CallMethod(f, "isEmbedded", "()Z")
	if err != nil {
		return false, err
	}
	return v.Boolean()
}

func (f *PdfFont) FontProgram(env *foreign.Env) (*iodata.FontProgram, error) {
	h, err := object(env.CallMethod(f, "getFontProgram", "()"+descFontProgram))
	if err != nil {
		return nil, err
	}
	return &iodata.FontProgram{Handle: h}, nil
}

// PdfFontFactory groups the static PdfFontFactory.createFont overloads.
type PdfFontFactory struct{}

// CreateFont returns the default font, Helvetica.
func (PdfFontFactory) CreateFont(env *foreign.Env) (*PdfFont, error) {
	return createPdfFont(env, "()"+descPdfFont)
}

// CreateStandardFont returns one of the 14 built-in fonts.
func (PdfFontFactory) CreateStandardFont(env *foreign.Env, f iodata.StandardFont) (*PdfFont, error) {
	name, err := foreign.ResolveConstant(env, f)
	if err != nil {
		return nil, err
	}
	return createPdfFont(env, "(Ljava/lang/String;)"+descPdfFont, name)
}

// CreateFromProgram binds a parsed font program.
func (PdfFontFactory) CreateFromProgram(env *foreign.Env, p *iodata.FontProgram) (*PdfFont, error) {
	return createPdfFont(env, "("+descFontProgram+")"+descPdfFont, foreign.Obj(p))
}

// CreateFromProgramEncoding binds p with an explicit encoding.
func (PdfFontFactory) CreateFromProgramEncoding(env *foreign.Env, p *iodata.FontProgram, enc iodata.PdfEncoding) (*PdfFont, error) {
	e, err := foreign.ResolveConstant(env, enc)
	if err != nil {
		return nil, err
	}
	return createPdfFont(env, "("+descFontProgram+"Ljava/lang/String;)"+descPdfFont, foreign.Obj(p), e)
}

// CreateFromProgramEncodingEmbedded binds p with an encoding and an explicit
// embedding choice. Identity encodings are always embedded.
func (PdfFontFactory) CreateFromProgramEncodingEmbedded(env *foreign.Env, p *iodata.FontProgram, enc iodata.PdfEncoding, embedded bool) (*PdfFont, error) {
	e, err := foreign.ResolveConstant(env, enc)
	if err != nil {
		return nil, err
	}
	return createPdfFont(env, "("+descFontProgram+"Ljava/lang/String;Z)"+descPdfFont, foreign.Obj(p), e, foreign.Bool(embedded))
}

func createPdfFont(env *foreign.Env, sig string, args ...foreign.Value) (*PdfFont, error) {
	h, err := object(env.CallStaticMethod(classPdfFontFactory, "createFont", sig, args...))
	if err != nil {
		return nil, err
	}
	return &PdfFont{h}, nil
}
