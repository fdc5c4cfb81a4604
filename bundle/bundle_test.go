package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
)

var payload = bytes.Repeat([]byte("com/itextpdf/layout/Document.class\x00\xca\xfe\xba\xbe"), 512)

func TestPackUnpack(t *testing.T) {
	for _, c := range []Codec{CodecNone, CodecZstd, CodecLZ4, CodecBrotli} {
		t.Run(c.String(), func(t *testing.T) {
			archive, err := Pack(payload, c)
			require.NoError(t, err)
			if c != CodecNone {
				assert.Less(t, len(archive), len(payload))
			}

			h, err := ReadHeader(archive)
			require.NoError(t, err)
			assert.Equal(t, c, h.Codec)
			assert.EqualValues(t, len(payload), h.Length)

			out, err := Unpack(archive)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestPackEmpty(t *testing.T) {
	archive, err := Pack(nil, CodecZstd)
	require.NoError(t, err)
	out, err := Unpack(archive)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("brotli")
	require.NoError(t, err)
	assert.Equal(t, CodecBrotli, c)

	_, err = ParseCodec("gzip")
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseBundle, Kind: errors.KindInvalidInput}))
}

func TestUnpackRejectsCorruption(t *testing.T) {
	archive, err := Pack(payload, CodecNone)
	require.NoError(t, err)

	flipped := append([]byte(nil), archive...)
	flipped[len(flipped)-1] ^= 0xff
	_, err = Unpack(flipped)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	badMagic := append([]byte(nil), archive...)
	badMagic[0] = 'X'
	_, err = Unpack(badMagic)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindInvalidData}))

	_, err = Unpack(archive[:10])
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindInvalidData}))

	truncated, err := Pack(payload, CodecLZ4)
	require.NoError(t, err)
	_, err = Unpack(truncated[:len(truncated)/2])
	assert.Error(t, err)
}

func TestInstall(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deps")
	archive, err := Pack(payload, CodecZstd)
	require.NoError(t, err)

	path, err := Install(archive, dir, "itext.jar")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-itext.jar"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	info, err := os.Stat(path)
	require.NoError(t, err)

	again, err := Install(archive, dir, "itext.jar")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	info2, err := os.Stat(again)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), info2.ModTime())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestInstallReplacesDamagedFile(t *testing.T) {
	dir := t.TempDir()
	archive, err := Pack(payload, CodecNone)
	require.NoError(t, err)

	path, err := Install(archive, dir, "itext.jar")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("damaged"), 0o644))

	_, err = Install(archive, dir, "itext.jar")
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestClassPathOption(t *testing.T) {
	opt := ClassPathOption("a.jar", "b.jar")
	assert.Equal(t, "-Djava.class.path=a.jar"+string(os.PathListSeparator)+"b.jar", opt)
}

func TestSame(t *testing.T) {
	a, err := Pack(payload, CodecZstd)
	require.NoError(t, err)
	b, err := Pack(payload, CodecBrotli)
	require.NoError(t, err)
	c, err := Pack([]byte("other"), CodecZstd)
	require.NoError(t, err)

	assert.True(t, Same(a, b))
	assert.False(t, Same(a, c))
	assert.False(t, Same(a, nil))
}

func TestLoadWithoutBundle(t *testing.T) {
	if Available() {
		t.Skip("built with embedded dependencies")
	}
	_, err := Load()
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindNotFound}))
}
