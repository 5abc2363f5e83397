package section

import (
	"github.com/arqlabs/seqarc/endian"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/format"
)

// FragmentEntry records one fragment of a blob in the fragment index.
// It is a fixed size of 24 bytes.
//
// Entries of one blob are stored contiguously, sorted by Start, so a byte
// offset into the blob payload can be resolved to its owning fragment with a
// binary search (or a forward scan when lookups are monotonic).
type FragmentEntry struct {
	// RowID is the archive row id of the fragment.
	//
	// Offset: 0, Size: 8 bytes (stored as raw binary, signed)
	RowID int64

	// Start is the byte offset of the fragment's first base within the blob
	// payload.
	//
	// Offset: 8, Size: 4 bytes
	Start uint32

	// Length is the fragment length in bases.
	//
	// Offset: 12, Size: 4 bytes
	Length uint32

	// ReadNo is the ordinal of the read within its spot (0-based). Used to
	// derive the fragment id string.
	//
	// Offset: 16, Size: 2 bytes
	ReadNo uint16

	// Flags is a packed field; bit 0 marks the fragment as biological.
	//
	// Offset: 18, Size: 2 bytes
	Flags uint16

	// Bytes 20-23 are reserved and must be zero.
}

// IsBiological reports whether the fragment holds sequenced genetic material
// rather than technical (adapter/barcode) sequence.
func (e FragmentEntry) IsBiological() bool {
	return (e.Flags & FragmentFlagBiological) != 0
}

// SetBiological marks the fragment as biological or technical.
func (e *FragmentEntry) SetBiological(biological bool) {
	if biological {
		e.Flags |= FragmentFlagBiological
	} else {
		e.Flags &^= FragmentFlagBiological
	}
}

// Class returns the fragment class encoded in the flags.
func (e FragmentEntry) Class() format.FragmentClass {
	if e.IsBiological() {
		return format.ClassBiological
	}

	return format.ClassTechnical
}

// End returns the byte offset one past the fragment's last base within the
// blob payload.
func (e FragmentEntry) End() uint32 {
	return e.Start + e.Length
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 24 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 24)
func (e *FragmentEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], rowIDBits(e.RowID))
	engine.PutUint32(data[offset+8:offset+12], e.Start)
	engine.PutUint32(data[offset+12:offset+16], e.Length)
	engine.PutUint16(data[offset+16:offset+18], e.ReadNo)
	engine.PutUint16(data[offset+18:offset+20], e.Flags)
	engine.PutUint32(data[offset+20:offset+24], 0)

	return offset + FragmentEntrySize
}

// ParseFragmentEntry parses a FragmentEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 24 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - FragmentEntry: Parsed fragment index entry
//   - error: ErrInvalidFragmentEntrySize if data is too short
func ParseFragmentEntry(data []byte, engine endian.EndianEngine) (FragmentEntry, error) {
	if len(data) < FragmentEntrySize {
		return FragmentEntry{}, errs.ErrInvalidFragmentEntrySize
	}

	return FragmentEntry{
		RowID:  rowID(engine.Uint64(data[0:8])),
		Start:  engine.Uint32(data[8:12]),
		Length: engine.Uint32(data[12:16]),
		ReadNo: engine.Uint16(data[16:18]),
		Flags:  engine.Uint16(data[18:20]),
	}, nil
}
