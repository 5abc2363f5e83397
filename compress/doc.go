// Package compress provides compression and decompression codecs for seqarc
// blob payloads.
//
// Archive blobs pack many reads' bases into one contiguous payload. Payload
// compression is applied per blob, after packing, so a blob can be fetched and
// decompressed independently of the rest of the archive.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): passthrough, for already-compressed or
//     latency-critical archives.
//   - Zstd (format.CompressionZstd): best ratio on nucleotide payloads
//     (a 4-letter alphabet compresses well), moderate speed. Default for
//     archives built by this module.
//   - S2 (format.CompressionS2): balanced ratio and speed.
//   - LZ4 (format.CompressionLZ4): fastest decompression, for query-heavy
//     workloads where blobs are scanned far more often than written.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use. Pooled encoder and
// decoder state is confined to the individual Compress/Decompress call.
//
// # Integration with the Archive Package
//
// The archive package uses this package internally. Configure compression via
// encoder options:
//
//	enc, _ := archive.NewEncoder("SRR000001",
//	    archive.WithCompression(format.CompressionZstd),
//	)
//
// Readers detect the codec from the archive header; no configuration is
// needed on the read side.
package compress
