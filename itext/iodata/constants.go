package iodata

import "github.com/wippyai/docbridge/foreign"

const (
	classStandardFonts = "com/itextpdf/io/font/constants/StandardFonts"
	classPdfEncodings  = "com/itextpdf/io/font/PdfEncodings"
	descString         = "Ljava/lang/String;"
)

// StandardFont names one of the 14 fonts every PDF reader provides.
type StandardFont int

const (
	Courier StandardFont = iota
	CourierBold
	CourierBoldoblique
	CourierOblique
	Helvetica
	HelveticaBold
	HelveticaBoldoblique
	HelveticaOblique
	Symbol
	TimesBold
	TimesBolditalic
	TimesItalic
	TimesRoman
	Zapfdingbats
)

var standardFontNames = [...]string{
	Courier:              "Courier",
	CourierBold:          "CourierBold",
	CourierBoldoblique:   "CourierBoldoblique",
	CourierOblique:       "CourierOblique",
	Helvetica:            "Helvetica",
	HelveticaBold:        "HelveticaBold",
	HelveticaBoldoblique: "HelveticaBoldoblique",
	HelveticaOblique:     "HelveticaOblique",
	Symbol:               "Symbol",
	TimesBold:            "TimesBold",
	TimesBolditalic:      "TimesBolditalic",
	TimesItalic:          "TimesItalic",
	TimesRoman:           "TimesRoman",
	Zapfdingbats:         "Zapfdingbats",
}

// StandardFonts lists every StandardFont in declaration order.
func StandardFonts() []StandardFont {
	out := make([]StandardFont, len(standardFontNames))
	for i := range out {
		out[i] = StandardFont(i)
	}
	return out
}

func (f StandardFont) String() string {
	if f < 0 || int(f) >= len(standardFontNames) {
		return "StandardFont(?)"
	}
	return standardFontNames[f]
}

func (StandardFont) ConstantClass() string      { return classStandardFonts }
func (StandardFont) ConstantDescriptor() string { return descString }

// Name resolves the font name, e.g. "Helvetica-Bold".
func (f StandardFont) Name(env *foreign.Env) (string, error) {
	return foreign.ResolveString(env, f)
}

// PdfEncoding names a text encoding understood by PdfFontFactory.
type PdfEncoding int

const (
	Cp1250 PdfEncoding = iota
	Cp1252
	Cp1253
	Cp1257
	IdentityH
	IdentityV
	Macroman
	PdfDocEncoding
	SymbolEncoding
	UnicodeBig
	UnicodeBigUnmarked
	Utf8
	Winansi
	ZapfdingbatsEncoding
)

var encodingNames = [...]string{
	Cp1250:               "Cp1250",
	Cp1252:               "Cp1252",
	Cp1253:               "Cp1253",
	Cp1257:               "Cp1257",
	IdentityH:            "IdentityH",
	IdentityV:            "IdentityV",
	Macroman:             "Macroman",
	PdfDocEncoding:       "PdfDocEncoding",
	SymbolEncoding:       "Symbol",
	UnicodeBig:           "UnicodeBig",
	UnicodeBigUnmarked:   "UnicodeBigUnmarked",
	Utf8:                 "Utf8",
	Winansi:              "Winansi",
	ZapfdingbatsEncoding: "Zapfdingbats",
}

// PdfEncodings lists every PdfEncoding in declaration order.
func PdfEncodings() []PdfEncoding {
	out := make([]PdfEncoding, len(encodingNames))
	for i := range out {
		out[i] = PdfEncoding(i)
	}
	return out
}

func (e PdfEncoding) String() string {
	if e < 0 || int(e) >= len(encodingNames) {
		return "PdfEncoding(?)"
	}
	return encodingNames[e]
}

func (PdfEncoding) ConstantClass() string      { return classPdfEncodings }
func (PdfEncoding) ConstantDescriptor() string { return descString }

// Name resolves the encoding name, e.g. "Identity-H".
func (e PdfEncoding) Name(env *foreign.Env) (string, error) {
	return foreign.ResolveString(env, e)
}
