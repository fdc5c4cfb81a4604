package jdk_test

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
	"github.com/wippyai/docbridge/jdk"
)

func newEnv(t *testing.T) *foreign.Env {
	t.Helper()
	rt := foreigntest.New()
	t.Cleanup(func() { _ = rt.Close() })
	return foreign.NewEnv(context.Background(), rt)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestByteArrayOutputStream(t *testing.T) {
	env := newEnv(t)

	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)

	n, err := out.Size(env)
	require.NoError(t, err)
	assert.Zero(t, n)

	data := []byte{0, 1, 127, 128, 200, 255}
	arr, err := foreign.NewByteArray(env, data)
	require.NoError(t, err)
	_, err = env.CallMethod(out, "write", "([B)V", foreign.Obj(arr))
	require.NoError(t, err)

	got, err := out.ToByteArray(env)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	n, err = out.Size(env)
	require.NoError(t, err)
	assert.EqualValues(t, len(data), n)

	require.NoError(t, out.Reset(env))
	got, err = out.ToByteArray(env)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestByteArrayInputStream(t *testing.T) {
	env := newEnv(t)

	in, err := jdk.NewByteArrayInputStream(env, []byte("hello"))
	require.NoError(t, err)
	n, err := in.Available(env)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	empty, err := jdk.NewByteArrayInputStream(env, nil)
	require.NoError(t, err)
	n, err = empty.Available(env)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReadImage(t *testing.T) {
	env := newEnv(t)

	img, err := jdk.ReadImage(env, pngBytes(t, 7, 3))
	require.NoError(t, err)

	w, err := img.Width(env)
	require.NoError(t, err)
	h, err := img.Height(env)
	require.NoError(t, err)
	assert.EqualValues(t, 7, w)
	assert.EqualValues(t, 3, h)
}

func TestReadImageUnrecognized(t *testing.T) {
	env := newEnv(t)

	_, err := jdk.ReadImage(env, []byte("not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindNotFound}))
}

func TestCreateImageInputStreamNoProvider(t *testing.T) {
	env := newEnv(t)

	out, err := jdk.NewByteArrayOutputStream(env)
	require.NoError(t, err)
	_, err = jdk.ImageIO{}.CreateImageInputStream(env, out)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindNotFound}))
}

func TestCreateImageInputStreamNull(t *testing.T) {
	env := newEnv(t)

	_, err := jdk.ImageIO{}.CreateImageInputStream(env, foreign.Handle{})
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindException}))
}
