package jdk

import "github.com/wippyai/docbridge/foreign"

const (
	classByteArrayOutputStream = "java/io/ByteArrayOutputStream"
	classByteArrayInputStream  = "java/io/ByteArrayInputStream"
)

// ByteArrayOutputStream is a growable in-memory sink.
type ByteArrayOutputStream struct{ foreign.Handle }

// NewByteArrayOutputStream creates an empty stream.
func NewByteArrayOutputStream(env *foreign.Env) (*ByteArrayOutputStream, error) {
	h, err := env.NewObject(classByteArrayOutputStream, "()V")
	if err != nil {
		return nil, err
	}
	return &ByteArrayOutputStream{h}, nil
}

// ToByteArray copies everything written so far into Go memory.
func (s *ByteArrayOutputStream) ToByteArray(env *foreign.Env) ([]byte, error) {
	v, err := env.CallMethod(s, "toByteArray", "()[B")
	if err != nil {
		return nil, err
	}
	arr, err := v.Object()
	if err != nil {
		return nil, err
	}
	if arr.IsNull() {
		return nil, nil
	}
	return foreign.ReadByteArray(env, arr)
}

// Size returns the number of bytes written.
func (s *ByteArrayOutputStream) Size(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(s, "size", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Reset discards the contents.
func (s *ByteArrayOutputStream) Reset(env *foreign.Env) error {
	_, err := env.CallMethod(s, "reset", "()V")
	return err
}

// ByteArrayInputStream reads from a copy of a Go buffer.
type ByteArrayInputStream struct{ foreign.Handle }

// NewByteArrayInputStream copies b into a foreign byte[] and opens a stream
// over it. The two foreign calls are not atomic: if the second fails the
// array is left for the foreign collector.
func NewByteArrayInputStream(env *foreign.Env, b []byte) (*ByteArrayInputStream, error) {
	arr, err := foreign.NewByteArray(env, b)
	if err != nil {
		return nil, err
	}
	h, err := env.NewObject(classByteArrayInputStream, "([B)V", foreign.Obj(arr))
	if err != nil {
		return nil, err
	}
	return &ByteArrayInputStream{h}, nil
}

// Available returns the number of unread bytes.
func (s *ByteArrayInputStream) Available(env *foreign.Env) (int32, error) {
	v, err := env.CallMethod(s, "available", "()I")
	if err != nil {
		return 0, err
	}
	return v.Int()
}
