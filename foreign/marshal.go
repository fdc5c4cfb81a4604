package foreign

// SignedBytes reinterprets b as the foreign runtime's signed bytes.
// Values >= 128 become negative; no information is lost.
func SignedBytes(b []byte) []int8 {
	out := make([]int8, len(b))
	for i, v := range b {
		out[i] = int8(v)
	}
	return out
}

// UnsignedBytes is the inverse of SignedBytes.
func UnsignedBytes(b []int8) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = byte(v)
	}
	return out
}

// NewByteArray allocates a foreign byte[] of len(b) and copies b into it.
// The foreign array is an independent copy; later changes to b are not seen.
func NewByteArray(env *Env, b []byte) (Handle, error) {
	arr, err := env.NewArray(KindByte, int32(len(b)))
	if err != nil {
		return Handle{}, err
	}
	if len(b) == 0 {
		return arr, nil
	}
	if err := env.SetByteArrayRegion(arr, 0, SignedBytes(b)); err != nil {
		return Handle{}, err
	}
	return arr, nil
}

// ReadByteArray copies a whole foreign byte[] back into Go memory.
func ReadByteArray(env *Env, arr Referent) ([]byte, error) {
	n, err := env.ArrayLength(arr)
	if err != nil {
		return nil, err
	}
	buf := make([]int8, n)
	if n > 0 {
		if err := env.GetByteArrayRegion(arr, 0, buf); err != nil {
			return nil, err
		}
	}
	return UnsignedBytes(buf), nil
}

// NewFloatArray allocates a foreign float[] holding a copy of f.
func NewFloatArray(env *Env, f []float32) (Handle, error) {
	arr, err := env.NewArray(KindFloat, int32(len(f)))
	if err != nil {
		return Handle{}, err
	}
	if len(f) == 0 {
		return arr, nil
	}
	if err := env.SetFloatArrayRegion(arr, 0, f); err != nil {
		return Handle{}, err
	}
	return arr, nil
}

// NewStringValue allocates a foreign string and returns it as an argument value.
func NewStringValue(env *Env, s string) (Value, error) {
	h, err := env.NewString(s)
	if err != nil {
		return Value{}, err
	}
	return Obj(h), nil
}

// StringResult reads a string returned by a call. A null result reads as "".
func StringResult(env *Env, v Value) (string, error) {
	h, err := v.Object()
	if err != nil {
		return "", err
	}
	if h.IsNull() {
		return "", nil
	}
	return env.GetString(h)
}
