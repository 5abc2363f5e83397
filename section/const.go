package section

import "github.com/arqlabs/seqarc/format"

const (
	// Bit masks for the header Options field
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic number (bits 4-15)
	MagicArchiveV1Opt = 0xAC10 // MagicArchiveV1Opt is the version 1 magic number for the archive format.

	// Payload compression (low nibble of the compression byte)
	PayloadCompressionNone = uint8(format.CompressionNone) // PayloadCompressionNone represents no payload compression.
	PayloadCompressionZstd = uint8(format.CompressionZstd) // PayloadCompressionZstd represents Zstandard payload compression.
	PayloadCompressionS2   = uint8(format.CompressionS2)   // PayloadCompressionS2 represents S2 payload compression.
	PayloadCompressionLZ4  = uint8(format.CompressionLZ4)  // PayloadCompressionLZ4 represents LZ4 payload compression.

	// Fragment entry flags
	FragmentFlagBiological = 0x0001 // 0=technical, 1=biological
)

// Offsets and section sizes in the archive file
const (
	HeaderSize        = 32 // fixed header size in bytes
	BlobEntrySize     = 48 // fixed blob directory entry size in bytes
	FragmentEntrySize = 24 // fixed fragment index entry size in bytes

	AccessionOffset = HeaderSize // byte offset where the accession name starts
	MaxAccessionLen = 1024       // sanity bound for the accession name length
)
