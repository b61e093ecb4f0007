package snapshot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clusterkit/codec"
	"github.com/hupe1980/clusterkit/testutil"
)

func testModel() *Model {
	points := testutil.NewRNG(1).Blobs([][]float64{{0, 0}, {10, 10}}, 40, 0.5)
	resp := make([][]float64, len(points))
	assign := make([]int, len(points))
	for i := range points {
		assign[i] = i / 40
		resp[i] = []float64{0, 0}
		resp[i][assign[i]] = 1
	}
	return &Model{
		Mode:             "gmm",
		Beta:             1,
		Power:            2,
		PlusPlus:         true,
		MaxSweeps:        1000,
		Dim:              2,
		K:                2,
		Points:           points,
		Means:            [][]float64{{0.1, -0.05}, {9.9, 10.02}},
		Responsibilities: resp,
		Assignments:      assign,
		Priors:           []float64{0.5, 0.5},
		Covariances:      [][3]float64{{0.25, 0, 0.25}, {0.24, 0.01, 0.26}},
		Meta:             map[string]string{"run_id": "test"},
	}
}

func TestRoundTrip(t *testing.T) {
	m := testModel()
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			data, err := Marshal(m, c, comp)
			require.NoError(t, err)

			got, h, err := UnmarshalWithHeader(data)
			require.NoError(t, err, "%s/%s", c.Name(), comp)
			assert.Equal(t, m, got)
			assert.Equal(t, c.Name(), h.Codec)
			assert.Equal(t, Version, h.Version)
			assert.Equal(t, comp, h.Compression)
		}
	}
}

func TestCompressionShrinksPayload(t *testing.T) {
	m := testModel()
	plain, err := Marshal(m, nil, CompressionNone)
	require.NoError(t, err)
	zst, err := Marshal(m, nil, CompressionZSTD)
	require.NoError(t, err)
	assert.Less(t, len(zst), len(plain))
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testModel(), codec.GoJSON{}, CompressionLZ4))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, testModel(), got)
}

func TestUnmarshal_Errors(t *testing.T) {
	data, err := Marshal(testModel(), codec.JSON{}, CompressionNone)
	require.NoError(t, err)

	t.Run("magic", func(t *testing.T) {
		_, err := Unmarshal([]byte("nope, not a snapshot"))
		assert.ErrorIs(t, err, ErrInvalidMagic)
		_, err = Unmarshal(nil)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		binary.LittleEndian.PutUint16(bad[4:], Version+1)
		_, err := Unmarshal(bad)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Unmarshal(data[:6])
		assert.ErrorIs(t, err, ErrTruncated)
		_, err = Unmarshal(data[:12])
		assert.ErrorIs(t, err, ErrTruncated)
		_, err = Unmarshal(data[:len(data)-3])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("checksum", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-2] ^= 0x01
		_, err := Unmarshal(bad)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("codec", func(t *testing.T) {
		bad := bytes.Clone(data)
		copy(bad[8:12], "xson")
		_, err := Unmarshal(bad)
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("too large", func(t *testing.T) {
		frame := func(comp Compression, rawLen uint32, payload []byte) []byte {
			var b bytes.Buffer
			b.WriteString(Magic)
			b.Write(binary.LittleEndian.AppendUint16(nil, Version))
			b.WriteByte(byte(comp))
			b.WriteByte(4)
			b.WriteString("json")
			b.Write(binary.LittleEndian.AppendUint32(nil, rawLen))
			b.Write(binary.LittleEndian.AppendUint32(nil, 0))
			b.Write(payload)
			return b.Bytes()
		}

		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			_, err := Unmarshal(frame(comp, 0xFFFFFFFF, []byte{1, 2, 3, 4}))
			assert.ErrorIs(t, err, ErrTooLarge, comp.String())
		}

		_, err := Unmarshal(frame(CompressionLZ4, 1<<20, []byte{1, 2, 3, 4}))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("compression", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[6] = 9
		_, err := Unmarshal(bad)
		assert.ErrorIs(t, err, ErrUnknownCompression)

		_, err = Marshal(testModel(), nil, Compression(9))
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionNone, "none": CompressionNone, "LZ4": CompressionLZ4, "zstd": CompressionZSTD} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "compression(7)", Compression(7).String())
}
