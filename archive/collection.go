package archive

import (
	"fmt"
	"os"

	"github.com/arqlabs/seqarc/compress"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/search"
	"github.com/arqlabs/seqarc/section"
)

// Collection is an open, fully verified accession. It implements
// search.ReadCollection.
//
// All blob payloads are decompressed and held in memory; reads after open
// never fail. The embedded fragment-resolution cursor is shared by all blobs
// of the collection and is not safe for concurrent use; the search engine
// serializes access with the accession lock.
type Collection struct {
	accession string
	blobs     []search.Blob
	res       resolver
}

var _ search.ReadCollection = (*Collection)(nil)

// Open reads and verifies an archive file.
func Open(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	return OpenBytes(data)
}

// OpenBytes parses and verifies an archive held in memory.
//
// Verification covers the magic number and header flags, all section
// offsets, fragment index tiling, and per-blob payload checksums. The data
// slice is retained; callers must not modify it afterwards.
//
// Returns:
//   - *Collection: Open collection
//   - error: Header, offset, compression or checksum error
func OpenBytes(data []byte) (*Collection, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	engine := header.Flag.GetEndianEngine()

	nameLen := int(header.AccessionLength)
	if nameLen == 0 || nameLen > section.MaxAccessionLen ||
		len(data) < section.AccessionOffset+nameLen {
		return nil, errs.ErrInvalidSectionOffsets
	}
	accession := string(data[section.AccessionOffset : section.AccessionOffset+nameLen])

	if header.DirectoryOffset != uint64(section.AccessionOffset+nameLen) {
		return nil, errs.ErrInvalidSectionOffsets
	}
	dirEnd := header.DirectoryOffset + uint64(header.BlobCount)*section.BlobEntrySize
	if dirEnd > uint64(len(data)) {
		return nil, errs.ErrInvalidSectionOffsets
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	coll := &Collection{accession: accession}

	var totalRows uint64

	pos := header.DirectoryOffset
	for i := 0; i < int(header.BlobCount); i++ {
		entry, err := section.ParseBlobEntry(data[pos:], engine)
		if err != nil {
			return nil, err
		}
		pos += section.BlobEntrySize

		b, err := openBlob(coll, i, entry, data, engine, codec)
		if err != nil {
			return nil, err
		}

		totalRows += uint64(entry.RowCount)
		coll.blobs = append(coll.blobs, b)
	}

	if totalRows != header.TotalRows {
		return nil, errs.ErrInvalidSectionOffsets
	}

	return coll, nil
}

// Accession returns the accession name stored in the archive.
func (c *Collection) Accession() string {
	return c.accession
}

// Blobs returns the collection's blobs in directory order.
func (c *Collection) Blobs() []search.Blob {
	return c.blobs
}

// fragmentID derives the external fragment id. Fragment ids are not stored;
// they are a pure function of accession, read number and row id.
func (c *Collection) fragmentID(f section.FragmentEntry) string {
	return fmt.Sprintf("%s.FR%d.%d", c.accession, f.ReadNo, f.RowID)
}

// verifyFragmentTiling checks that the fragment entries tile the raw payload
// exactly: contiguous, non-empty, sorted by start, with sequential row ids.
// The cursor runs in 64 bits so stored 32-bit lengths cannot wrap it; every
// fragment end must stay within the raw payload.
func verifyFragmentTiling(entry section.BlobEntry, frags []section.FragmentEntry, rawLen int) error {
	var cursor uint64

	row := entry.FirstRow
	for _, f := range frags {
		if uint64(f.Start) != cursor || f.Length == 0 || f.RowID != row {
			return errs.ErrInvalidSectionOffsets
		}
		cursor += uint64(f.Length)
		if cursor > uint64(rawLen) {
			return errs.ErrInvalidSectionOffsets
		}
		row++
	}

	if cursor != uint64(rawLen) {
		return errs.ErrInvalidSectionOffsets
	}

	return nil
}
