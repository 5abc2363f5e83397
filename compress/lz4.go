package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block compression cannot represent incompressible input:
// CompressBlock reports n == 0 for it. Payloads therefore carry a one-byte
// marker so raw storage stays distinguishable from an LZ4 block.
const (
	lz4RawMarker   = 0x0
	lz4BlockMarker = 0x1
)

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
// Incompressible input is stored raw behind the marker byte.
//
// Uses a pooled lz4.Compressor for better performance.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data))+1)
	dst[0] = lz4BlockMarker

	// Get compressor from pool
	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}

	if n == 0 || n >= len(data) {
		// incompressible, store raw
		out := make([]byte, len(data)+1)
		out[0] = lz4RawMarker
		copy(out[1:], data)

		return out, nil
	}

	return dst[:n+1], nil
}

// Decompress decompresses the input data using LZ4 decompression.
//
// For LZ4 blocks the decompressed size is unknown up front, so an adaptive
// buffer sizing strategy is used:
//  1. Start with a buffer 4x the compressed size (common expansion ratio)
//  2. On ErrInvalidSourceShortBuffer, double the buffer size (up to maxSize)
//  3. Return error if buffer exceeds reasonable limits (prevents memory exhaustion)
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4RawMarker:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	case lz4BlockMarker:
		// handled below
	default:
		return nil, fmt.Errorf("lz4: invalid payload marker 0x%02x", data[0])
	}

	block := data[1:]

	bufSize := len(block) * 4
	const maxSize = 128 * 1024 * 1024 // 128MB safety limit

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2 // Double buffer size and retry
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	// Buffer exceeded maxSize - likely corrupted data or unreasonable compression ratio
	return nil, lz4.ErrInvalidSourceShortBuffer
}
