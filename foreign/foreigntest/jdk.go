package foreigntest

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/wippyai/docbridge/foreign"
)

const (
	classObject       = "java/lang/Object"
	classString       = "java/lang/String"
	classEnum         = "java/lang/Enum"
	classOutputStream = "java/io/OutputStream"
	classInputStream  = "java/io/InputStream"
	classBAOS         = "java/io/ByteArrayOutputStream"
	classBAIS         = "java/io/ByteArrayInputStream"
	classImageIO      = "javax/imageio/ImageIO"
	classIIS          = "javax/imageio/stream/ImageInputStream"
	classIISImpl      = "javax/imageio/stream/MemoryCacheImageInputStream"
	classBufImage     = "java/awt/image/BufferedImage"
)

// OutputStream is the state of a java/io/ByteArrayOutputStream.
type OutputStream struct {
	buf bytes.Buffer
}

// Bytes returns what has been written so far.
func (o *OutputStream) Bytes() []byte { return o.buf.Bytes() }

type inputStream struct {
	data []byte
	pos  int
}

type imageStream struct {
	data []byte
}

type bufferedImage struct {
	width, height int
}

// enumConstant is the state of a java/lang/Enum constant.
type enumConstant struct {
	name    string
	ordinal int32
}

func defineLang(r *Runtime) {
	r.classes[classObject] = NewClass(classObject, "").
		Ctor("()V", func(*Call) (any, error) { return struct{}{}, nil }).
		Method("toString", "()Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(fmt.Sprintf("%s@%x", c.Class, uint32(c.Self))), nil
		}).
		Method("hashCode", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.Self)), nil
		})

	r.classes[classString] = NewClass(classString, "", "java/lang/CharSequence").
		Method("length", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(len([]rune(c.This.(string))))), nil
		}).
		Method("toString", "()Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.Return(), nil
		})
	r.classes["java/lang/CharSequence"] = Interface("java/lang/CharSequence")

	r.classes[classEnum] = NewClass(classEnum, "").AbstractClass().
		Method("name", "()Ljava/lang/String;", func(c *Call) (foreign.Value, error) {
			return c.NewString(c.This.(*enumConstant).name), nil
		}).
		Method("ordinal", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(c.This.(*enumConstant).ordinal), nil
		})
}

// defineEnum registers an enum class whose constants are the given names.
func defineEnum(r *Runtime, class string, names ...string) {
	c := NewClass(class, classEnum)
	for i, n := range names {
		constant := &enumConstant{name: n, ordinal: int32(i)}
		c.StaticField(n, "L"+class+";", func(call *Call) (foreign.Value, error) {
			return call.New(class, constant), nil
		})
	}
	r.classes[class] = c
}

func defineIO(r *Runtime) {
	r.classes[classOutputStream] = NewClass(classOutputStream, "").AbstractClass()
	r.classes[classInputStream] = NewClass(classInputStream, "").AbstractClass()

	r.classes[classBAOS] = NewClass(classBAOS, classOutputStream).
		Ctor("()V", func(*Call) (any, error) { return &OutputStream{}, nil }).
		Ctor("(I)V", func(c *Call) (any, error) {
			if c.Int(0) < 0 {
				return nil, c.Throw("java/lang/IllegalArgumentException", "Negative initial size: %d", c.Int(0))
			}
			o := &OutputStream{}
			o.buf.Grow(int(c.Int(0)))
			return o, nil
		}).
		Method("toByteArray", "()[B", func(c *Call) (foreign.Value, error) {
			return c.NewBytes(c.This.(*OutputStream).Bytes()), nil
		}).
		Method("size", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.This.(*OutputStream).buf.Len())), nil
		}).
		Method("reset", "()V", func(c *Call) (foreign.Value, error) {
			c.This.(*OutputStream).buf.Reset()
			return foreign.Void, nil
		}).
		Method("write", "([B)V", func(c *Call) (foreign.Value, error) {
			b, ok := c.Bytes(0)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/NullPointerException", "")
			}
			c.This.(*OutputStream).buf.Write(b)
			return foreign.Void, nil
		})

	r.classes[classBAIS] = NewClass(classBAIS, classInputStream).
		Ctor("([B)V", func(c *Call) (any, error) {
			b, ok := c.Bytes(0)
			if !ok {
				return nil, c.Throw("java/lang/NullPointerException", "")
			}
			return &inputStream{data: b}, nil
		}).
		Method("available", "()I", func(c *Call) (foreign.Value, error) {
			in := c.This.(*inputStream)
			return foreign.Int(int32(len(in.data) - in.pos)), nil
		}).
		Method("read", "()I", func(c *Call) (foreign.Value, error) {
			in := c.This.(*inputStream)
			if in.pos >= len(in.data) {
				return foreign.Int(-1), nil
			}
			b := in.data[in.pos]
			in.pos++
			return foreign.Int(int32(b)), nil
		})
}

func defineImageIO(r *Runtime) {
	r.classes[classIIS] = Interface(classIIS)
	r.classes[classIISImpl] = NewClass(classIISImpl, "", classIIS).
		Method("length", "()J", func(c *Call) (foreign.Value, error) {
			return foreign.Long(int64(len(c.This.(*imageStream).data))), nil
		})

	r.classes[classBufImage] = NewClass(classBufImage, "").
		Method("getWidth", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.This.(*bufferedImage).width)), nil
		}).
		Method("getHeight", "()I", func(c *Call) (foreign.Value, error) {
			return foreign.Int(int32(c.This.(*bufferedImage).height)), nil
		})

	r.classes[classImageIO] = NewClass(classImageIO, "").
		Static("createImageInputStream", "(Ljava/lang/Object;)Ljavax/imageio/stream/ImageInputStream;", func(c *Call) (foreign.Value, error) {
			switch in := c.Obj(0).(type) {
			case nil:
				return foreign.Value{}, c.Throw("java/lang/IllegalArgumentException", "input == null!")
			case *inputStream:
				data := append([]byte(nil), in.data[in.pos:]...)
				in.pos = len(in.data)
				return c.New(classIISImpl, &imageStream{data: data}), nil
			default:
				// no provider for this input type
				return foreign.Null, nil
			}
		}).
		Static("read", "(Ljavax/imageio/stream/ImageInputStream;)Ljava/awt/image/BufferedImage;", func(c *Call) (foreign.Value, error) {
			in, ok := c.Obj(0).(*imageStream)
			if !ok {
				return foreign.Value{}, c.Throw("java/lang/IllegalArgumentException", "stream == null!")
			}
			cfg, _, err := image.DecodeConfig(bytes.NewReader(in.data))
			if err != nil {
				// no registered reader claims the stream
				return foreign.Null, nil
			}
			return c.New(classBufImage, &bufferedImage{width: cfg.Width, height: cfg.Height}), nil
		})
}
