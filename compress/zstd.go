package compress

// ZstdCompressor provides Zstandard compression for seqarc blob payloads.
//
// Nucleotide payloads compress well under Zstd (small alphabet, long repeats
// from adapter and primer sequence), making it the default codec for archives
// built by this module.
//
// Two implementations are provided and selected at build time:
//   - pure Go (klauspost/compress/zstd), the default
//   - cgo (valyala/gozstd) under the "gozstd" build tag, for deployments that
//     accept cgo in exchange for faster compression
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
