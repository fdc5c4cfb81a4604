package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/foreign/foreigntest"
)

func loopbackEnv(t *testing.T) (*foreigntest.Runtime, *foreign.Env) {
	t.Helper()
	rt := foreigntest.New()
	t.Cleanup(func() { _ = rt.Close() })
	return rt, foreign.NewEnv(context.Background(), Loopback(rt))
}

func TestValueEncoding(t *testing.T) {
	for _, v := range []foreign.Value{
		foreign.Bool(true),
		foreign.Byte(-1),
		foreign.Int(-42),
		foreign.Long(1 << 40),
		foreign.Float(595),
		foreign.Double(-0.5),
		foreign.Void,
		foreign.Null,
		foreign.RefValue(7),
	} {
		got := FromValue(v).Decode()
		assert.Equal(t, v.Kind(), got.Kind(), v.String())
		assert.Equal(t, v.Bits(), got.Bits(), v.String())
		assert.Equal(t, v.Ref(), got.Ref(), v.String())
	}
}

func TestFaultRoundTrip(t *testing.T) {
	orig := errors.MethodNotFound(errors.PhaseInvoke, "com/example/Thing", "frob", "()V")

	b, err := Marshal(&Response{Fault: NewFault(orig)})
	require.NoError(t, err)

	var resp Response
	require.NoError(t, Unmarshal(b, &resp))
	require.NotNil(t, resp.Fault)

	got := resp.Fault.Err()
	assert.True(t, errors.Is(got, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindMethodNotFound}))
	assert.Equal(t, "com/example/Thing", got.Class)
	assert.Equal(t, "frob", got.Member)
	assert.Equal(t, "()V", got.Signature)
}

func TestPlainErrorBecomesException(t *testing.T) {
	f := NewFault(assert.AnError)
	assert.Equal(t, string(errors.KindException), f.Kind)
	assert.Equal(t, assert.AnError.Error(), f.Message)
}

func TestLoopbackObjects(t *testing.T) {
	rt, env := loopbackEnv(t)

	rect, err := env.NewObject("com/itextpdf/kernel/geom/Rectangle", "(FF)V", foreign.Float(595), foreign.Float(842))
	require.NoError(t, err)
	assert.True(t, env.Owns(rect))
	assert.Equal(t, "com/itextpdf/kernel/geom/Rectangle", rt.ClassOf(rect.Ref()))

	w, err := env.CallMethod(rect, "getWidth", "()F")
	require.NoError(t, err)
	width, err := w.Float()
	require.NoError(t, err)
	assert.Equal(t, float32(595), width)

	v, err := env.GetStaticField("com/itextpdf/io/font/constants/StandardFonts", "HELVETICA", "Ljava/lang/String;")
	require.NoError(t, err)
	name, err := foreign.StringResult(env, v)
	require.NoError(t, err)
	assert.Equal(t, "Helvetica", name)
}

func TestLoopbackArrays(t *testing.T) {
	_, env := loopbackEnv(t)

	data := []byte{0, 1, 127, 128, 200, 255}
	arr, err := foreign.NewByteArray(env, data)
	require.NoError(t, err)

	back, err := foreign.ReadByteArray(env, arr)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	widths, err := foreign.NewFloatArray(env, []float32{1, 2, 3})
	require.NoError(t, err)
	n, err := env.ArrayLength(widths)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = env.NewArray(foreign.KindByte, -1)
	require.Error(t, err)
}

func TestLoopbackFaults(t *testing.T) {
	rt, env := loopbackEnv(t)
	before := rt.Len()

	_, err := env.NewObject("com/itextpdf/kernel/geom/Rectangle", "(Ljava/lang/String;)V", foreign.Null)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindMethodNotFound}))
	assert.Equal(t, before, rt.Len())

	_, err = env.NewObject("com/example/Missing", "()V")
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindClassNotFound}))
}

func TestTransportFailure(t *testing.T) {
	broken := ExchangerFunc(func(context.Context, []byte) ([]byte, error) {
		return nil, assert.AnError
	})
	env := foreign.NewEnv(context.Background(), NewClient(broken))

	_, err := env.NewString("x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindTransport}))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGarbageResponse(t *testing.T) {
	garbage := ExchangerFunc(func(context.Context, []byte) ([]byte, error) {
		return []byte{0xff, 0x00, 0x13}, nil
	})
	_, err := NewClient(garbage).NewString(context.Background(), "x")
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseTransport, Kind: errors.KindInvalidData}))
}

func TestUnknownOp(t *testing.T) {
	srv := NewServer(foreigntest.New())
	b, err := Marshal(&Request{Op: Op(99)})
	require.NoError(t, err)

	out, err := srv.Exchange(context.Background(), b)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, Unmarshal(out, &resp))
	require.NotNil(t, resp.Fault)
	assert.Equal(t, string(errors.KindInvalidInput), resp.Fault.Kind)
}
