package kernel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/foreign/foreigntest"
	"github.com/wippyai/docbridge/itext/iodata"
	"github.com/wippyai/docbridge/itext/kernel"
	"github.com/wippyai/docbridge/jdk"
)

func newEnv(t *testing.T) (*foreigntest.Runtime, *foreign.Env) {
	t.Helper()
	rt := foreigntest.New()
	t.Cleanup(func() { _ = rt.Close() })
	return rt, foreign.NewEnv(context.Background(), rt)
}

func newDocument(t *testing.T, env *foreign.Env) (*jdk.ByteArrayOutputStream, *kernel.PdfDocument) {
	t.Helper()
	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)
	w, err := kernel.NewPdfWriter(env, out)
	require.NoError(t, err)
	pdf, err := kernel.NewPdfDocument(env, w)
	require.NoError(t, err)
	return out, pdf
}

func size(t *testing.T, env *foreign.Env, r *kernel.Rectangle) (float32, float32) {
	t.Helper()
	w, err := r.Width(env)
	require.NoError(t, err)
	h, err := r.Height(env)
	require.NoError(t, err)
	return w, h
}

func TestA4(t *testing.T) {
	_, env := newEnv(t)

	a4, err := kernel.A4.Get(env)
	require.NoError(t, err)
	w, h := size(t, env, &a4.Rectangle)
	assert.Equal(t, float32(595), w)
	assert.Equal(t, float32(842), h)

	landscape, err := a4.Rotate(env)
	require.NoError(t, err)
	w, h = size(t, env, &landscape.Rectangle)
	assert.Equal(t, float32(842), w)
	assert.Equal(t, float32(595), h)
}

func TestEveryPresetResolves(t *testing.T) {
	_, env := newEnv(t)

	presets := kernel.PageSizePresets()
	require.Len(t, presets, 27)
	for _, p := range presets {
		ps, err := p.Get(env)
		require.NoError(t, err, p.String())
		w, h := size(t, env, &ps.Rectangle)
		assert.Positive(t, w, p.String())
		assert.Positive(t, h, p.String())
	}
}

func TestParsePageSizePreset(t *testing.T) {
	p, ok := kernel.ParsePageSizePreset("letter")
	require.True(t, ok)
	assert.Equal(t, kernel.Letter, p)

	p, ok = kernel.ParsePageSizePreset("A10")
	require.True(t, ok)
	assert.Equal(t, kernel.A10, p)

	_, ok = kernel.ParsePageSizePreset("A11")
	assert.False(t, ok)
}

func TestRectangleEdges(t *testing.T) {
	_, env := newEnv(t)

	r, err := kernel.NewRectangle(env, 10, 20, 100, 50)
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		get  func(*foreign.Env) (float32, error)
		want float32
	}{
		"x":      {r.X, 10},
		"y":      {r.Y, 20},
		"left":   {r.Left, 10},
		"bottom": {r.Bottom, 20},
		"right":  {r.Right, 110},
		"top":    {r.Top, 70},
	} {
		got, err := tc.get(env)
		require.NoError(t, err, name)
		assert.Equal(t, tc.want, got, name)
	}

	ps, err := kernel.PageSizeFromRectangle(env, r)
	require.NoError(t, err)
	w, h := size(t, env, &ps.Rectangle)
	assert.Equal(t, float32(100), w)
	assert.Equal(t, float32(50), h)
}

func TestDocumentPages(t *testing.T) {
	_, env := newEnv(t)
	_, pdf := newDocument(t, env)

	def, err := pdf.DefaultPageSize(env)
	require.NoError(t, err)
	w, _ := size(t, env, &def.Rectangle)
	assert.Equal(t, float32(595), w)

	letter, err := kernel.Letter.Get(env)
	require.NoError(t, err)
	require.NoError(t, pdf.SetDefaultPageSize(env, letter))

	_, err = pdf.AddNewPage(env)
	require.NoError(t, err)
	custom, err := kernel.NewPageSize(env, 200, 300)
	require.NoError(t, err)
	_, err = pdf.AddNewPageSized(env, custom)
	require.NoError(t, err)

	n, err := pdf.NumberOfPages(env)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	first, err := pdf.Page(env, 1)
	require.NoError(t, err)
	box, err := first.PageSize(env)
	require.NoError(t, err)
	w, h := size(t, env, box)
	assert.Equal(t, float32(612), w)
	assert.Equal(t, float32(792), h)

	_, err = pdf.Page(env, 3)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))

	owner, err := first.Document(env)
	require.NoError(t, err)
	assert.Equal(t, pdf.Ref(), owner.Ref())

	_, err = kernel.NewPdfCanvas(env, first)
	require.NoError(t, err)
}

func TestCloseBeforeRead(t *testing.T) {
	_, env := newEnv(t)
	out, pdf := newDocument(t, env)
	_, err := pdf.AddNewPage(env)
	require.NoError(t, err)

	partial, err := out.ToByteArray(env)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(partial, []byte("%PDF-")))
	assert.NotContains(t, string(partial), "%%EOF")

	require.NoError(t, pdf.Close(env))
	closed, err := pdf.IsClosed(env)
	require.NoError(t, err)
	assert.True(t, closed)

	full, err := out.ToByteArray(env)
	require.NoError(t, err)
	assert.Contains(t, string(full), "%%EOF")
}

func TestCloseTwice(t *testing.T) {
	rt, env := newEnv(t)
	_, pdf := newDocument(t, env)
	require.NoError(t, pdf.Close(env))

	before := rt.Len()
	err := pdf.Close(env)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindClosed}))
	assert.Equal(t, before, rt.Len())
}

func TestWriterServesOneDocument(t *testing.T) {
	_, env := newEnv(t)
	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)
	w, err := kernel.NewPdfWriter(env, out)
	require.NoError(t, err)
	_, err = kernel.NewPdfDocument(env, w)
	require.NoError(t, err)

	second, err := kernel.NewPdfDocument(env, w)
	assert.Nil(t, second)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))
}

func TestColors(t *testing.T) {
	_, env := newEnv(t)

	require.Len(t, kernel.ColorConstants(), 13)
	for _, c := range kernel.ColorConstants() {
		got, err := kernel.ColorFromConstant(env, c)
		require.NoError(t, err, c.String())
		assert.False(t, got.IsNull())
	}
	assert.Equal(t, "DARK_GRAY", foreign.FieldName(kernel.DarkGray))
	assert.Equal(t, "LIGHT_GRAY", foreign.FieldName(kernel.LightGray))

	_, err := kernel.NewRGB(env, 0.2, 0.4, 0.6)
	require.NoError(t, err)
}

func TestLines(t *testing.T) {
	_, env := newEnv(t)

	solid, err := kernel.NewSolidLine(env, 2)
	require.NoError(t, err)
	require.NoError(t, solid.SetColor(env, kernel.Red))
	require.NoError(t, solid.SetLineWidth(env, 3))
	w, err := solid.LineWidth(env)
	require.NoError(t, err)
	assert.Equal(t, float32(3), w)

	var drawers []kernel.LineDrawer
	dashed, err := kernel.NewDashedLine(env, 1)
	require.NoError(t, err)
	dotted, err := kernel.NewDottedLine(env, 1)
	require.NoError(t, err)
	drawers = append(drawers, solid, dashed, dotted)
	assert.Len(t, drawers, 3)
}

func TestFonts(t *testing.T) {
	_, env := newEnv(t)
	f := kernel.PdfFontFactory{}

	def, err := f.CreateFont(env)
	require.NoError(t, err)
	embedded, err := def.IsEmbedded(env)
	require.NoError(t, err)
	assert.False(t, embedded)

	std, err := f.CreateStandardFont(env, iodata.CourierBold)
	require.NoError(t, err)
	p, err := std.FontProgram(env)
	require.NoError(t, err)
	ok, err := p.IsBuiltWith(env, "Courier-Bold")
	require.NoError(t, err)
	assert.True(t, ok)

	ttf := append([]byte{0, 1, 0, 0}, make([]byte, 60)...)
	prog, err := iodata.FontProgramFactory{}.CreateFont(env, ttf)
	require.NoError(t, err)

	_, err = f.CreateFromProgram(env, prog)
	require.NoError(t, err)

	identity, err := f.CreateFromProgramEncoding(env, prog, iodata.IdentityH)
	require.NoError(t, err)
	embedded, err = identity.IsEmbedded(env)
	require.NoError(t, err)
	assert.True(t, embedded)

	winansi, err := f.CreateFromProgramEncodingEmbedded(env, prog, iodata.Winansi, true)
	require.NoError(t, err)
	embedded, err = winansi.IsEmbedded(env)
	require.NoError(t, err)
	assert.True(t, embedded)

	stdProg, err := iodata.FontProgramFactory{}.CreateStandardFont(env, iodata.Helvetica)
	require.NoError(t, err)
	_, err = f.CreateFromProgramEncoding(env, stdProg, iodata.IdentityH)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))
}

func TestFormXObject(t *testing.T) {
	_, env := newEnv(t)

	bbox, err := kernel.NewRectangle(env, 0, 0, 80, 40)
	require.NoError(t, err)
	x, err := kernel.NewPdfFormXObject(env, bbox)
	require.NoError(t, err)
	w, err := x.Width(env)
	require.NoError(t, err)
	h, err := x.Height(env)
	require.NoError(t, err)
	assert.Equal(t, float32(80), w)
	assert.Equal(t, float32(40), h)
}
