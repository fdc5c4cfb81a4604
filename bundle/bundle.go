package bundle

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/wippyai/docbridge/errors"
)

// Version is the archive format version written by Pack.
const Version = 1

// MaxSize bounds the unpacked payload.
const MaxSize = 1 << 30

const headerSize = 56

var magic = [8]byte{'D', 'O', 'C', 'B', 'N', 'D', 'L', 0}

// Header is the fixed archive prefix. Integers are little-endian.
//
//	0   magic    [8]byte
//	8   version  u16
//	10  codec    u16
//	12  reserved u32
//	16  length   u64  unpacked payload size
//	24  digest   [32]byte  sha256 of the unpacked payload
type Header struct {
	Digest  [32]byte
	Length  uint64
	Version uint16
	Codec   Codec
}

// DigestHex returns the payload digest in hex.
func (h Header) DigestHex() string {
	return hex.EncodeToString(h.Digest[:])
}

func (h Header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:8], magic[:])
	binary.LittleEndian.PutUint16(buf[8:10], h.Version)
	binary.LittleEndian.PutUint16(buf[10:12], uint16(h.Codec))
	binary.LittleEndian.PutUint64(buf[16:24], h.Length)
	copy(buf[24:56], h.Digest[:])
	return buf
}

// ReadHeader parses the header at the start of archive.
func ReadHeader(archive []byte) (Header, error) {
	if len(archive) < headerSize {
		return Header{}, errors.InvalidData(errors.PhaseBundle, "archive too short")
	}
	if !bytes.Equal(archive[0:8], magic[:]) {
		return Header{}, errors.InvalidData(errors.PhaseBundle, "bad magic")
	}
	h := Header{
		Version: binary.LittleEndian.Uint16(archive[8:10]),
		Codec:   Codec(binary.LittleEndian.Uint16(archive[10:12])),
		Length:  binary.LittleEndian.Uint64(archive[16:24]),
	}
	copy(h.Digest[:], archive[24:56])
	if h.Version != Version {
		return Header{}, errors.InvalidData(errors.PhaseBundle, "unsupported version")
	}
	if h.Length > MaxSize {
		return Header{}, errors.InvalidData(errors.PhaseBundle, "payload exceeds size limit")
	}
	return h, nil
}

// Pack compresses payload with codec and prefixes the header.
func Pack(payload []byte, codec Codec) ([]byte, error) {
	if len(payload) > MaxSize {
		return nil, errors.InvalidInput(errors.PhaseBundle, "payload exceeds size limit")
	}
	body, err := compress(codec, payload)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBundle, errors.KindInvalidData, err, "compress")
	}
	h := Header{
		Version: Version,
		Codec:   codec,
		Length:  uint64(len(payload)),
		Digest:  sha256.Sum256(payload),
	}
	return append(h.encode(), body...), nil
}

// Unpack verifies and expands an archive produced by Pack.
func Unpack(archive []byte) ([]byte, error) {
	h, err := ReadHeader(archive)
	if err != nil {
		return nil, err
	}
	out, err := decompress(h.Codec, archive[headerSize:], h.Length)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, errors.Wrap(errors.PhaseBundle, errors.KindInvalidData, err, "decompress")
	}
	if uint64(len(out)) != h.Length {
		return nil, errors.InvalidData(errors.PhaseBundle, "payload length does not match header")
	}
	if sha256.Sum256(out) != h.Digest {
		return nil, errors.InvalidData(errors.PhaseBundle, "checksum mismatch")
	}
	return out, nil
}
