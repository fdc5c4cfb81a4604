package iodata_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/foreign/foreigntest"
	"github.com/wippyai/docbridge/itext/iodata"
)

func newEnv(t *testing.T) (*foreigntest.Runtime, *foreign.Env) {
	t.Helper()
	rt := foreigntest.New()
	t.Cleanup(func() { _ = rt.Close() })
	return rt, foreign.NewEnv(context.Background(), rt)
}

func TestImageData(t *testing.T) {
	_, env := newEnv(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 25))))

	d, err := iodata.NewImageData(env, buf.Bytes())
	require.NoError(t, err)
	w, err := d.Width(env)
	require.NoError(t, err)
	h, err := d.Height(env)
	require.NoError(t, err)
	assert.Equal(t, float32(40), w)
	assert.Equal(t, float32(25), h)
}

func TestImageDataUnrecognized(t *testing.T) {
	_, env := newEnv(t)

	d, err := iodata.NewImageData(env, []byte{1, 2, 3})
	assert.Nil(t, d)
	var fe *errors.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, errors.KindException, fe.Kind)
	assert.Equal(t, "com/itextpdf/io/IOException", fe.Exception)
}

func TestStandardFontFieldNames(t *testing.T) {
	want := []string{
		"COURIER", "COURIER_BOLD", "COURIER_BOLDOBLIQUE", "COURIER_OBLIQUE",
		"HELVETICA", "HELVETICA_BOLD", "HELVETICA_BOLDOBLIQUE", "HELVETICA_OBLIQUE",
		"SYMBOL", "TIMES_BOLD", "TIMES_BOLDITALIC", "TIMES_ITALIC", "TIMES_ROMAN",
		"ZAPFDINGBATS",
	}
	fonts := iodata.StandardFonts()
	require.Len(t, fonts, len(want))
	for i, f := range fonts {
		assert.Equal(t, want[i], foreign.FieldName(f), f.String())
	}
}

func TestPdfEncodingFieldNames(t *testing.T) {
	want := []string{
		"CP1250", "CP1252", "CP1253", "CP1257", "IDENTITY_H", "IDENTITY_V",
		"MACROMAN", "PDF_DOC_ENCODING", "SYMBOL", "UNICODE_BIG",
		"UNICODE_BIG_UNMARKED", "UTF8", "WINANSI", "ZAPFDINGBATS",
	}
	encs := iodata.PdfEncodings()
	require.Len(t, encs, len(want))
	for i, e := range encs {
		assert.Equal(t, want[i], foreign.FieldName(e), e.String())
	}
}

func TestResolveEveryConstant(t *testing.T) {
	_, env := newEnv(t)

	for _, f := range iodata.StandardFonts() {
		name, err := f.Name(env)
		require.NoError(t, err, f.String())
		assert.NotEmpty(t, name)
	}
	for _, e := range iodata.PdfEncodings() {
		name, err := e.Name(env)
		require.NoError(t, err, e.String())
		assert.NotEmpty(t, name)
	}

	name, err := iodata.IdentityH.Name(env)
	require.NoError(t, err)
	assert.Equal(t, "Identity-H", name)
}

func TestCreateFont(t *testing.T) {
	_, env := newEnv(t)
	f := iodata.FontProgramFactory{}

	ttf := append([]byte{0, 1, 0, 0}, make([]byte, 60)...)
	p, err := f.CreateFont(env, ttf)
	require.NoError(t, err)
	assert.False(t, p.IsNull())

	_, err = f.CreateFont(env, []byte("nope"))
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))

	std, err := f.CreateStandardFont(env, iodata.TimesBold)
	require.NoError(t, err)
	ok, err := std.IsBuiltWith(env, "Times-Bold")
	require.NoError(t, err)
	assert.True(t, ok)
}
