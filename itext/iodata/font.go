package iodata

import "github.com/wippyai/docbridge/foreign"

const classFontProgramFactory = "com/itextpdf/io/font/FontProgramFactory"

// FontProgram is a parsed font file.
type FontProgram struct{ foreign.Handle }

// IsBuiltWith reports whether the program was created from the named font.
func (p *FontProgram) IsBuiltWith(env *foreign.Env, name string) (bool, error) {
	s, err := foreign.NewStringValue(env, name)
	if err != nil {
		return false, err
	}
	v, err := env.CallMethod(p, "isBuiltWith", "(Ljava/lang/String;)Z", s)
	if err != nil {
		return false, err
	}
	return v.Boolean()
}

// FontProgramFactory groups the static FontProgramFactory entry points.
type FontProgramFactory struct{}

// CreateFont parses a TrueType or OpenType font from b.
func (FontProgramFactory) CreateFont(env *foreign.Env, b []byte) (*FontProgram, error) {
	arr, err := foreign.NewByteArray(env, b)
	if err != nil {
		return nil, err
	}
	return createFont(env, "([B)Lcom/itextpdf/io/font/FontProgram;", foreign.Obj(arr))
}

// CreateStandardFont loads one of the 14 built-in fonts.
func (FontProgramFactory) CreateStandardFont(env *foreign.Env, f StandardFont) (*FontProgram, error) {
	name, err := foreign.ResolveConstant(env, f)
	if err != nil {
		return nil, err
	}
	return createFont(env, "(Ljava/lang/String;)Lcom/itextpdf/io/font/FontProgram;", name)
}

func createFont(env *foreign.Env, sig string, arg foreign.Value) (*FontProgram, error) {
	v, err := env.CallStaticMethod(classFontProgramFactory, "createFont", sig, arg)
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return &FontProgram{h}, nil
}
