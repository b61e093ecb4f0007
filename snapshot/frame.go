package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/clusterkit/codec"
	"github.com/hupe1980/clusterkit/internal/hash"
)

const (
	// Magic opens every snapshot frame.
	Magic = "CKS1"
	// Version is the current frame format version.
	Version uint16 = 1

	// magic + version + compression + codec length
	fixedHeaderSize = 4 + 2 + 1 + 1
	// raw length + checksum
	trailerHeaderSize = 4 + 4
)

// Header describes a decoded frame.
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	RawLength   uint32
	Checksum    uint32
}

// Marshal encodes m into a frame. A nil codec selects codec.Default.
func Marshal(m *Model, c codec.Codec, comp Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	name := c.Name()
	if len(name) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: name too long", ErrUnknownCodec)
	}

	raw, err := c.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode model: %w", err)
	}
	if len(raw) > MaxRawLength {
		return nil, fmt.Errorf("%w: model encodes to %d bytes", ErrTooLarge, len(raw))
	}
	payload, applied, err := compress(raw, comp)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, fixedHeaderSize+len(name)+trailerHeaderSize+len(payload))
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint16(buf, Version)
	buf = append(buf, byte(applied), byte(len(name)))
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(raw)))
	buf = binary.LittleEndian.AppendUint32(buf, hash.CRC32C(raw))
	buf = append(buf, payload...)
	return buf, nil
}

// Encode writes the frame of m to w.
func Encode(w io.Writer, m *Model, c codec.Codec, comp Compression) error {
	data, err := Marshal(m, c, comp)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Unmarshal decodes a frame produced by Marshal.
func Unmarshal(data []byte) (*Model, error) {
	m, _, err := UnmarshalWithHeader(data)
	return m, err
}

// UnmarshalWithHeader decodes a frame and also returns its header.
func UnmarshalWithHeader(data []byte) (*Model, Header, error) {
	h, payload, err := parseHeader(data)
	if err != nil {
		return nil, h, err
	}
	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, h, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	raw, err := decompress(payload, h.Compression, int(h.RawLength))
	if err != nil {
		return nil, h, err
	}
	if len(raw) != int(h.RawLength) {
		return nil, h, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrTruncated, len(raw), h.RawLength)
	}
	if sum := hash.CRC32C(raw); sum != h.Checksum {
		return nil, h, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, sum, h.Checksum)
	}

	m := new(Model)
	if err := c.Unmarshal(raw, m); err != nil {
		return nil, h, fmt.Errorf("snapshot: decode model: %w", err)
	}
	return m, h, nil
}

// Decode reads a whole frame from r.
func Decode(r io.Reader) (*Model, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Unmarshal(buf.Bytes())
}

func parseHeader(data []byte) (Header, []byte, error) {
	var h Header
	if len(data) < fixedHeaderSize {
		if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
			return h, nil, ErrInvalidMagic
		}
		return h, nil, ErrTruncated
	}
	if string(data[:4]) != Magic {
		return h, nil, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint16(data[4:6])
	if h.Version == 0 || h.Version > Version {
		return h, nil, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	h.Compression = Compression(data[6])
	nameLen := int(data[7])

	rest := data[fixedHeaderSize:]
	if len(rest) < nameLen+trailerHeaderSize {
		return h, nil, ErrTruncated
	}
	h.Codec = string(rest[:nameLen])
	rest = rest[nameLen:]
	h.RawLength = binary.LittleEndian.Uint32(rest[0:4])
	h.Checksum = binary.LittleEndian.Uint32(rest[4:8])
	return h, rest[trailerHeaderSize:], nil
}
