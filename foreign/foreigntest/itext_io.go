package foreigntest

import (
	"bytes"
	"image"

	"github.com/wippyai/docbridge/foreign"
)

const (
	classImageData        = "com/itextpdf/io/image/ImageData"
	classImageDataFactory = "com/itextpdf/io/image/ImageDataFactory"
	classFontProgram      = "com/itextpdf/io/font/FontProgram"
	classTrueTypeFont     = "com/itextpdf/io/font/TrueTypeFont"
	classType1Font        = "com/itextpdf/io/font/Type1Font"
	classFontFactory      = "com/itextpdf/io/font/FontProgramFactory"
	classStandardFonts    = "com/itextpdf/io/font/constants/StandardFonts"
	classPdfEncodings     = "com/itextpdf/io/font/PdfEncodings"
	exIO                  = "com/itextpdf/io/IOException"
)

type imageData struct {
	format        string
	width, height float32
}

type fontProgram struct {
	name     string
	standard bool
}

// standardFonts maps StandardFonts field names to font names.
var standardFonts = map[string]string{
	"COURIER":               "Courier",
	"COURIER_BOLD":          "Courier-Bold",
	"COURIER_BOLDOBLIQUE":   "Courier-BoldOblique",
	"COURIER_OBLIQUE":       "Courier-Oblique",
	"HELVETICA":             "Helvetica",
	"HELVETICA_BOLD":        "Helvetica-Bold",
	"HELVETICA_BOLDOBLIQUE": "Helvetica-BoldOblique",
	"HELVETICA_OBLIQUE":     "Helvetica-Oblique",
	"SYMBOL":                "Symbol",
	"TIMES_BOLD":            "Times-Bold",
	"TIMES_BOLDITALIC":      "Times-BoldItalic",
	"TIMES_ITALIC":          "Times-Italic",
	"TIMES_ROMAN":           "Times-Roman",
	"ZAPFDINGBATS":          "ZapfDingbats",
}

// pdfEncodings maps PdfEncodings field names to encoding names.
var pdfEncodings = map[string]string{
	"CP1250":               "Cp1250",
	"CP1252":               "Cp1252",
	"CP1253":               "Cp1253",
	"CP1257":               "Cp1257",
	"IDENTITY_H":           "Identity-H",
	"IDENTITY_V":           "Identity-V",
	"MACROMAN":             "MacRoman",
	"PDF_DOC_ENCODING":     "PDF",
	"SYMBOL":               "Symbol",
	"UNICODE_BIG":          "UnicodeBig",
	"UNICODE_BIG_UNMARKED": "UnicodeBigUnmarked",
	"UTF8":                 "UTF-8",
	"WINANSI":              "Cp1252",
	"ZAPFDINGBATS":         "ZapfDingbats",
}

func isStandardFont(name string) bool {
	for _, n := range standardFonts {
		if n == name {
			return true
		}
	}
	return false
}

func isKnownEncoding(name string) bool {
	if name == "" {
		return true
	}
	for _, n := range pdfEncodings {
		if n == name {
			return true
		}
	}
	return false
}

// sfnt reports whether b starts with a TrueType or OpenType header.
func sfnt(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	switch string(b[:4]) {
	case "\x00\x01\x00\x00", "OTTO", "true", "ttcf":
		return true
	}
	return false
}

func defineFonts(r *Runtime) {
	r.classes[classImageData] = NewClass(classImageData, "").AbstractClass().
		Method("getWidth", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*imageData).width), nil
		}).
		Method("getHeight", "()F", func(c *Call) (foreign.Value, error) {
			return foreign.Float(c.This.(*imageData).height), nil
		})
	r.classes["com/itextpdf/io/image/RawImageData"] = NewClass("com/itextpdf/io/image/RawImageData", classImageData)

	r.classes[classImageDataFactory] = NewClass(classImageDataFactory, "").
		Static("create", "([B)Lcom/itextpdf/io/image/ImageData;", func(c *Call) (foreign.Value, error) {
			b, ok := c.Bytes(0)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
			if err != nil {
				return foreign.Value{}, c.Throw(exIO, "Image format cannot be recognized.")
			}
			return c.New("com/itextpdf/io/image/RawImageData", &imageData{
				format: format,
				width:  float32(cfg.Width),
				height: float32(cfg.Height),
			}), nil
		})

	r.classes[classFontProgram] = NewClass(classFontProgram, "").AbstractClass().
		Method("isBuiltWith", "(Ljava/lang/String;)Z", func(c *Call) (foreign.Value, error) {
			name, _ := c.String(0)
			return foreign.Bool(c.This.(*fontProgram).name == name), nil
		})
	r.classes[classTrueTypeFont] = NewClass(classTrueTypeFont, classFontProgram)
	r.classes[classType1Font] = NewClass(classType1Font, classFontProgram)

	r.classes[classFontFactory] = NewClass(classFontFactory, "").
		Static("createFont", "([B)Lcom/itextpdf/io/font/FontProgram;", func(c *Call) (foreign.Value, error) {
			b, ok := c.Bytes(0)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			if !sfnt(b) {
				return foreign.Value{}, c.Throw(exIO, "Type of font is not recognized.")
			}
			return c.New(classTrueTypeFont, &fontProgram{name: "TrueType"}), nil
		}).
		Static("createFont", "(Ljava/lang/String;)Lcom/itextpdf/io/font/FontProgram;", func(c *Call) (foreign.Value, error) {
			name, _ := c.String(0)
			if !isStandardFont(name) {
				return foreign.Value{}, c.Throw(exIO, "Font file %s not found.", name)
			}
			return c.New(classType1Font, &fontProgram{name: name, standard: true}), nil
		})

	fonts := NewClass(classStandardFonts, "")
	for field, name := range standardFonts {
		fonts.StaticField(field, "Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(name), nil
		})
	}
	r.classes[classStandardFonts] = fonts

	encodings := NewClass(classPdfEncodings, "")
	for field, name := range pdfEncodings {
		encodings.StaticField(field, "Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(name), nil
		})
	}
	r.classes[classPdfEncodings] = encodings
}
