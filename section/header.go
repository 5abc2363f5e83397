package section

import (
	"unsafe"

	"github.com/arqlabs/seqarc/errs"
)

// Header represents the fixed-size header section at the start of an archive.
type Header struct {
	// BlobCount is the number of blobs stored in the archive.
	BlobCount uint32 // byte offset 4-7
	// DirectoryOffset is the byte offset to the start of the blob directory.
	DirectoryOffset uint64 // byte offset 8-15
	// TotalRows is the total number of fragment rows across all blobs.
	TotalRows uint64 // byte offset 16-23
	// AccessionLength is the byte length of the accession name that
	// immediately follows the header.
	AccessionLength uint16 // byte offset 24-25

	// Flag is a packed field for various flags and the magic number.
	Flag Flag // byte offset 0-3

	// Bytes 26-31 are reserved and must be zero.
}

// NewHeader creates a new Header for an accession name of the given length.
// The blob count, directory offset and total rows are set by the encoder in
// Finish.
func NewHeader(accessionLength int) Header {
	return Header{
		Flag:            NewFlag(),
		AccessionLength: uint16(accessionLength), //nolint: gosec
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse the flag word first to determine endianness (the Options field
	// itself is always little-endian)
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()

	h.BlobCount = engine.Uint32(data[4:8])
	h.DirectoryOffset = engine.Uint64(data[8:16])
	h.TotalRows = engine.Uint64(data[16:24])
	h.AccessionLength = engine.Uint16(data[24:26])

	return h.Flag.Validate()
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// The flag word is always written little-endian so readers can bootstrap
	// the byte order from it.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Reserved

	engine.PutUint32(b[4:8], h.BlobCount)
	engine.PutUint64(b[8:16], h.DirectoryOffset)
	engine.PutUint64(b[16:24], h.TotalRows)
	engine.PutUint16(b[24:26], h.AccessionLength)

	return b
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// rowID reinterprets an unsigned 64-bit field as a signed row id.
// Row ids are stored as-is in binary; negative values are legal in VDB-style
// row spaces.
func rowID(v uint64) int64 {
	return *(*int64)(unsafe.Pointer(&v))
}

// rowIDBits reinterprets a signed row id as its unsigned binary form.
func rowIDBits(v int64) uint64 {
	return *(*uint64)(unsafe.Pointer(&v))
}
