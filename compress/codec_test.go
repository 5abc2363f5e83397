package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqlabs/seqarc/format"
)

// samplePayload builds a payload resembling packed blob bases: long
// repetitive stretches with interspersed adapter runs.
func samplePayload(n int) []byte {
	const bases = "ACGT"

	out := make([]byte, 0, n)
	for i := 0; len(out) < n; i++ {
		if i%7 == 0 {
			out = append(out, "AGATCGGAAGAG"...)
			continue
		}
		out = append(out, bases[i%4], bases[(i*3)%4], bases[(i*5)%4])
	}

	return out[:n]
}

func TestCodecRoundTrip(t *testing.T) {
	payload := samplePayload(64 * 1024)

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "payload")
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestCodecRoundTripEmpty(t *testing.T) {
	for ct := range builtinCodecs {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Empty(t, decompressed)
		})
	}
}

func TestCompressionReducesRepetitivePayload(t *testing.T) {
	payload := samplePayload(256 * 1024)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload))
		})
	}
}

func TestLZ4IncompressibleInput(t *testing.T) {
	codec := NewLZ4Compressor()

	// too short and too mixed for LZ4 to find a match
	payload := []byte("ACGTGCATTGCA")

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}

func TestDecompressCorruptedInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress([]byte("definitely not a compressed frame"))
			assert.Error(t, err)
		})
	}
}

func TestCreateCodecInvalidType(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xF), "payload")
	require.Error(t, err)

	_, err = GetCodec(format.CompressionType(0xF))
	require.Error(t, err)
}

func TestNoOpPassthrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := samplePayload(128)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	assert.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}
