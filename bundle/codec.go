package bundle

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/wippyai/docbridge/errors"
)

// Codec selects the compression applied to a bundle payload.
type Codec uint16

const (
	CodecNone Codec = iota
	CodecZstd
	CodecLZ4
	CodecBrotli
)

var codecNames = map[Codec]string{
	CodecNone:   "none",
	CodecZstd:   "zstd",
	CodecLZ4:    "lz4",
	CodecBrotli: "brotli",
}

func (c Codec) String() string {
	if n, ok := codecNames[c]; ok {
		return n
	}
	return "unknown"
}

// ParseCodec maps a codec name to its Codec.
func ParseCodec(name string) (Codec, error) {
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return 0, errors.InvalidInput(errors.PhaseBundle, "unknown codec "+name)
}

func compress(c Codec, in []byte) ([]byte, error) {
	switch c {
	case CodecNone:
		return in, nil
	case CodecZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(in, nil), nil
	case CodecLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(in); err != nil {
			_ = w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CodecBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
		if _, err := w.Write(in); err != nil {
			_ = w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.InvalidInput(errors.PhaseBundle, "unknown codec "+c.String())
}

// decompress expands in and rejects output longer than expected.
func decompress(c Codec, in []byte, expected uint64) ([]byte, error) {
	var r io.Reader
	switch c {
	case CodecNone:
		return in, nil
	case CodecZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(expected+1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(in, nil)
		if err != nil {
			return nil, err
		}
		if uint64(len(out)) > expected {
			return nil, errors.InvalidData(errors.PhaseBundle, "zstd expanded beyond expected size")
		}
		return out, nil
	case CodecLZ4:
		r = lz4.NewReader(bytes.NewReader(in))
	case CodecBrotli:
		r = brotli.NewReader(bytes.NewReader(in))
	default:
		return nil, errors.InvalidData(errors.PhaseBundle, "unknown codec "+c.String())
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, errors.InvalidData(errors.PhaseBundle, c.String()+" expanded beyond expected size")
	}
	return out, nil
}
