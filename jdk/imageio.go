package jdk

import (
	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
)

const (
	classImageIO       = "javax/imageio/ImageIO"
	classBufferedImage = "java/awt/image/BufferedImage"
)

// ImageInputStream is the javax.imageio stream abstraction.
type ImageInputStream struct{ foreign.Handle }

// BufferedImage is a decoded raster.
type BufferedImage struct{ foreign.Handle }

// Width returns the width in pixels.
func (b *BufferedImage) Width(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(b, "getWidth", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Height returns the height in pixels.
func (b *BufferedImage) Height(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(b, "getHeight", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// ImageIO groups the static javax.imageio.ImageIO entry points.
type ImageIO struct{}

// CreateImageInputStream opens an image stream over input. ImageIO answers
// null when no provider accepts the input; that is reported as KindNotFound.
func (ImageIO) CreateImageInputStream(env *foreign.Env, input foreign.Referent) (*ImageInputStream, error) {
	v, err := env.CallStaticMethod(classImageIO, "createImageInputStream",
		"(Ljava/lang/Object;)Ljavax/imageio/stream/ImageInputStream;", foreign.Obj(input))
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	if h.IsNull() {
		return nil, errors.NotFound(errors.PhaseInvoke, "image input stream provider", "ImageIO.createImageInputStream")
	}
	return &ImageInputStream{h}, nil
}

// Read decodes an image. A null result (no reader claims the stream) is
// reported as KindNotFound.
func (ImageIO) Read(env *foreign.Env, in *ImageInputStream) (*BufferedImage, error) {
	v, err := env.CallStaticMethod(classImageIO, "read",
		"(Ljavax/imageio/stream/ImageInputStream;)Ljava/awt/image/BufferedImage;", foreign.Obj(in))
	if err != nil {
		return nil, err
	}
	h, err := v.Object()
	if err != nil {
		return nil, err
	}
	if h.IsNull() {
		return nil, errors.NotFound(errors.PhaseInvoke, "image reader", "ImageIO.read")
	}
	return &BufferedImage{h}, nil
}

// ReadImage decodes b through a ByteArrayInputStream and an image stream.
func ReadImage(env *foreign.Env, b []byte) (*BufferedImage, error) {
	in, err := NewByteArrayInputStream(env, b)
	if err != nil {
		return nil, err
	}
	iis, err := ImageIO{}.CreateImageInputStream(env, in)
	if err != nil {
		return nil, err
	}
	return ImageIO{}.Read(env, iis)
}
