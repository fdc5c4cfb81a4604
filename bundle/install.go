package bundle

import (
	"bytes"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
)

// Available reports whether dependencies were embedded at build time.
func Available() bool {
	return len(Dependencies) > 0
}

// Install unpacks archive into dir under a content-addressed name and
// returns the file path. An existing file with the same digest is reused;
// new files are written to a temporary name and renamed into place.
func Install(archive []byte, dir, name string) (string, error) {
	h, err := ReadHeader(archive)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, h.DigestHex()[:16]+"-"+name)

	if existing, err := os.ReadFile(path); err == nil && sha256.Sum256(existing) == h.Digest {
		Logger().Debug("bundle already installed", zap.String("path", path))
		return path, nil
	}

	payload, err := Unpack(archive)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "create install dir")
	}
	tmp, err := os.CreateTemp(dir, ".install-*")
	if err != nil {
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "write payload")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "sync payload")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "close payload")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrap(errors.PhaseBundle, errors.KindInvalidInput, err, "rename payload")
	}

	Logger().Info("bundle installed", zap.String("path", path), zap.Uint64("bytes", h.Length), zap.Stringer("codec", h.Codec))
	return path, nil
}

// ClassPathOption formats installed paths as a JVM class path option.
func ClassPathOption(paths ...string) string {
	return "-Djava.class.path=" + strings.Join(paths, string(os.PathListSeparator))
}

// Load returns the embedded payload, verified.
func Load() ([]byte, error) {
	if !Available() {
		return nil, errors.NotFound(errors.PhaseBundle, "bundle", "dependencies")
	}
	return Unpack(Dependencies)
}

// Same reports whether two archives carry the same payload.
func Same(a, b []byte) bool {
	ha, err := ReadHeader(a)
	if err != nil {
		return false
	}
	hb, err := ReadHeader(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ha.Digest[:], hb.Digest[:])
}
