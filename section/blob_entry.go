package section

import (
	"github.com/arqlabs/seqarc/endian"
	"github.com/arqlabs/seqarc/errs"
)

// BlobEntry records information about a single blob in the blob directory.
// It is a fixed size of 48 bytes.
//
// All offsets are absolute byte offsets from the start of the archive, so a
// reader can seek straight to a blob's fragment index or payload without
// scanning preceding blobs.
type BlobEntry struct {
	// FirstRow is the row id of the first fragment in the blob.
	//
	// Offset: 0, Size: 8 bytes (stored as raw binary, signed)
	FirstRow int64

	// RowCount is the number of fragment rows covered by the blob.
	// Together with FirstRow it forms the blob's external identity.
	//
	// Offset: 8, Size: 4 bytes
	RowCount uint32

	// FragmentCount is the number of fragment index entries for this blob.
	// It equals RowCount in the current format but is stored separately so a
	// future format revision can pack multiple reads per row.
	//
	// Offset: 12, Size: 4 bytes
	FragmentCount uint32

	// FragmentIndexOffset is the absolute byte offset of this blob's fragment
	// index entries.
	//
	// Offset: 16, Size: 8 bytes
	FragmentIndexOffset uint64

	// PayloadOffset is the absolute byte offset of this blob's compressed
	// payload.
	//
	// Offset: 24, Size: 8 bytes
	PayloadOffset uint64

	// PayloadLength is the compressed payload length in bytes.
	//
	// Offset: 32, Size: 4 bytes
	PayloadLength uint32

	// RawLength is the decompressed payload length in bytes (total packed
	// bases of the blob).
	//
	// Offset: 36, Size: 4 bytes
	RawLength uint32

	// Checksum is the xxHash64 of the raw (decompressed) payload.
	//
	// Offset: 40, Size: 8 bytes
	Checksum uint64
}

// Bytes returns the blob entry as a byte slice using the specified endian engine.
func (e *BlobEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [BlobEntrySize]byte // stack allocation, it's faster than heap allocation
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// This is the most efficient method when writing multiple entries sequentially.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 48 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 48)
func (e *BlobEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], rowIDBits(e.FirstRow))
	engine.PutUint32(data[offset+8:offset+12], e.RowCount)
	engine.PutUint32(data[offset+12:offset+16], e.FragmentCount)
	engine.PutUint64(data[offset+16:offset+24], e.FragmentIndexOffset)
	engine.PutUint64(data[offset+24:offset+32], e.PayloadOffset)
	engine.PutUint32(data[offset+32:offset+36], e.PayloadLength)
	engine.PutUint32(data[offset+36:offset+40], e.RawLength)
	engine.PutUint64(data[offset+40:offset+48], e.Checksum)

	return offset + BlobEntrySize
}

// ParseBlobEntry parses a BlobEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 48 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - BlobEntry: Parsed blob directory entry
//   - error: ErrInvalidBlobEntrySize if data is too short
func ParseBlobEntry(data []byte, engine endian.EndianEngine) (BlobEntry, error) {
	if len(data) < BlobEntrySize {
		return BlobEntry{}, errs.ErrInvalidBlobEntrySize
	}

	return BlobEntry{
		FirstRow:            rowID(engine.Uint64(data[0:8])),
		RowCount:            engine.Uint32(data[8:12]),
		FragmentCount:       engine.Uint32(data[12:16]),
		FragmentIndexOffset: engine.Uint64(data[16:24]),
		PayloadOffset:       engine.Uint64(data[24:32]),
		PayloadLength:       engine.Uint32(data[32:36]),
		RawLength:           engine.Uint32(data[36:40]),
		Checksum:            engine.Uint64(data[40:48]),
	}, nil
}

// LastRow returns the row id of the last fragment in the blob.
func (e BlobEntry) LastRow() int64 {
	return e.FirstRow + int64(e.RowCount) - 1
}
