package iodata

import "github.com/wippyai/docbridge/foreign"

const classImageDataFactory = "com/itextpdf/io/image/ImageDataFactory"

// ImageData is an encoded image iText can place on a page.
type ImageData struct{ foreign.Handle }

// NewImageData copies b into the foreign runtime and lets ImageDataFactory
// detect the format.
func NewImageData(env *foreign.Env, b []byte) (*ImageData, error) {
	arr, err := foreign.NewByteArray(env, b)
	if err != nil {
		return nil, err
	}
	v, err := env.CallStaticMethod(classImageDataFactory, "create",
		"([B)Lcom/itextpdf/io/image/ImageData;", foreign.Obj(arr))
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	return &ImageData{h}, nil
}

// Width returns the intrinsic width in pixels.
func (d *ImageData) Width(env *foreign.Env) (float32, error) {
	v, err := env.CallMethod(d, "getWidth", "()F")
	if err != nil {
		return 0, err
	}
	return v.Float()
}

// Height returns the intrinsic height in pixels.
func (d *ImageData) Height(env *foreign.Env) (float32, error) {
	v, err := env.CallMethod(d, "getHeight", "()F")
	if err != nil {
		return 0, err
	}
	return v.Float()
}
