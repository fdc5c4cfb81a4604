package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/bundle"
)

func TestRunPacksAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "guest.wasm")
	out := filepath.Join(dir, "out", "dependencies.bin")
	payload := []byte("\x00asm\x01\x00\x00\x00 guest payload guest payload")
	require.NoError(t, os.WriteFile(in, payload, 0o644))

	require.NoError(t, run(in, out, "lz4", false))
	first, err := os.ReadFile(out)
	require.NoError(t, err)
	got, err := bundle.Unpack(first)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.NoError(t, run(in, out, "brotli", false))
	again, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())

	require.NoError(t, run(in, out, "brotli", true))
	h, err := bundle.ReadHeader(mustRead(t, out))
	require.NoError(t, err)
	assert.Equal(t, bundle.CodecBrotli, h.Codec)
}

func TestRunRejectsUnknownCodec(t *testing.T) {
	assert.Error(t, run("missing", filepath.Join(t.TempDir(), "x.bin"), "gzip", false))
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
