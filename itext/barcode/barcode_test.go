package barcode_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/foreign/foreigntest"
	"github.com/wippyai/docbridge/itext/barcode"
	"github.com/wippyai/docbridge/itext/kernel"
	"github.com/wippyai/docbridge/itext/layout"
	"github.com/wippyai/docbridge/jdk"
)

func newDocument(t *testing.T) (*foreign.Env, *kernel.PdfDocument) {
	t.Helper()
	rt := foreigntest.New()
	t.Cleanup(func() { _ = rt.Close() })
	env := foreign.NewEnv(context.Background(), rt)

	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)
	w, err := kernel.NewPdfWriter(env, out)
	require.NoError(t, err)
	pdf, err := kernel.NewPdfDocument(env, w)
	require.NoError(t, err)
	return env, pdf
}

func TestTypeFieldNames(t *testing.T) {
	want := map[barcode.BarcodeType]string{
		barcode.Ean13: "EAN13", barcode.Ean8: "EAN8", barcode.Upca: "UPCA",
		barcode.Upce: "UPCE", barcode.Supp2: "SUPP2", barcode.Supp5: "SUPP5",
	}
	for typ, field := range want {
		assert.Equal(t, field, foreign.FieldName(typ))
	}
}

func TestRenderEAN8(t *testing.T) {
	env, pdf := newDocument(t)

	bc, err := barcode.New(env, pdf)
	require.NoError(t, err)
	_, err = bc.SetCodeType(env, barcode.Ean8)
	require.NoError(t, err)
	_, err = bc.SetCode(env, "12345670")
	require.NoError(t, err)

	code, err := bc.Code(env)
	require.NoError(t, err)
	assert.Equal(t, "12345670", code)

	typ, err := bc.CodeType(env)
	require.NoError(t, err)
	want, err := foreign.ResolveInt(env, barcode.Ean8)
	require.NoError(t, err)
	assert.Equal(t, want, typ)

	require.NoError(t, bc.SetX(env, 1))
	require.NoError(t, bc.SetBarHeight(env, 20))
	size, err := bc.Size(env)
	require.NoError(t, err)
	w, err := size.Width(env)
	require.NoError(t, err)
	assert.Equal(t, float32(67), w)

	black, err := kernel.ColorFromConstant(env, kernel.Black)
	require.NoError(t, err)
	x, err := bc.CreateFormXObject(env, black, nil, pdf)
	require.NoError(t, err)
	h, err := x.Height(env)
	require.NoError(t, err)
	assert.Equal(t, float32(20), h)

	img, err := layout.NewImageFromXObject(env, x)
	require.NoError(t, err)
	iw, err := img.ImageWidth(env)
	require.NoError(t, err)
	assert.Equal(t, float32(67), iw)
}

func TestInvalidCode(t *testing.T) {
	env, pdf := newDocument(t)

	bc, err := barcode.New(env, pdf)
	require.NoError(t, err)
	_, err = bc.SetCode(env, "12AB")
	require.NoError(t, err)

	_, err = bc.CreateFormXObject(env, nil, nil, pdf)
	var fe *errors.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "java/lang/IllegalArgumentException", fe.Exception)
}

func TestOtherDocumentRejected(t *testing.T) {
	env, pdf := newDocument(t)

	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)
	w, err := kernel.NewPdfWriter(env, out)
	require.NoError(t, err)
	other, err := kernel.NewPdfDocument(env, w)
	require.NoError(t, err)

	bc, err := barcode.New(env, pdf)
	require.NoError(t, err)
	_, err = bc.SetCode(env, "4006381333931")
	require.NoError(t, err)

	_, err = bc.CreateFormXObject(env, nil, nil, other)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))
}
