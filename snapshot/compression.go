package snapshot

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the payload compression of a frame.
type Compression uint8

const (
	CompressionNone Compression = 0
	// CompressionLZ4 is fast block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD trades speed for a better ratio.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// MaxRawLength bounds the uncompressed payload of a frame.
const MaxRawLength = 1 << 30

// maxLZ4Ratio is an upper bound on the expansion of an LZ4 block: every
// extra match-length byte adds at most 255 output bytes.
const maxLZ4Ratio = 255

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxRawLength))
	return dec
}

// compress returns the compressed payload and the compression actually
// applied. Incompressible LZ4 input is stored uncompressed.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if len(raw) == 0 {
		return raw, CompressionNone, nil
	}
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, c, err
		}
		if n == 0 {
			return raw, CompressionNone, nil
		}
		return buf[:n], CompressionLZ4, nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(raw, nil), CompressionZSTD, nil
	default:
		return nil, c, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

// decompress expands payload. rawLen comes from an untrusted header and is
// checked against MaxRawLength and the LZ4 expansion bound before any
// allocation.
func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	if rawLen < 0 || rawLen > MaxRawLength {
		return nil, fmt.Errorf("%w: header declares %d bytes", ErrTooLarge, rawLen)
	}
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		if rawLen > len(payload)*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: %d lz4 bytes cannot expand to %d", ErrTooLarge, len(payload), rawLen)
		}
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("snapshot: lz4: %w", err)
		}
		return out[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}
