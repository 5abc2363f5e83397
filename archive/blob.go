package archive

import (
	"fmt"

	"github.com/arqlabs/seqarc/compress"
	"github.com/arqlabs/seqarc/endian"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/internal/hash"
	"github.com/arqlabs/seqarc/search"
	"github.com/arqlabs/seqarc/section"
)

// blob is one decompressed blob of a collection. It implements search.Blob.
type blob struct {
	coll  *Collection
	index int
	entry section.BlobEntry
	frags []section.FragmentEntry
	data  []byte
}

var _ search.Blob = (*blob)(nil)

// openBlob parses one blob's fragment index, decompresses its payload and
// verifies integrity.
func openBlob(coll *Collection, index int, entry section.BlobEntry, data []byte,
	engine endian.EndianEngine, codec compress.Codec,
) (*blob, error) {
	if entry.FragmentCount == 0 || entry.RowCount != entry.FragmentCount {
		return nil, errs.ErrInvalidSectionOffsets
	}

	// bounds are checked as offset plus remaining space so that stored
	// offsets near MaxUint64 cannot wrap past the length check
	size := uint64(len(data))

	fiLen := uint64(entry.FragmentCount) * section.FragmentEntrySize
	if entry.FragmentIndexOffset < section.HeaderSize ||
		entry.FragmentIndexOffset > size || fiLen > size-entry.FragmentIndexOffset {
		return nil, errs.ErrInvalidSectionOffsets
	}
	fiEnd := entry.FragmentIndexOffset + fiLen

	frags := make([]section.FragmentEntry, entry.FragmentCount)

	fp := entry.FragmentIndexOffset
	for j := range frags {
		f, err := section.ParseFragmentEntry(data[fp:], engine)
		if err != nil {
			return nil, err
		}
		frags[j] = f
		fp += section.FragmentEntrySize
	}

	if entry.PayloadOffset < fiEnd || entry.PayloadOffset > size ||
		uint64(entry.PayloadLength) > size-entry.PayloadOffset {
		return nil, errs.ErrInvalidSectionOffsets
	}
	pEnd := entry.PayloadOffset + uint64(entry.PayloadLength)

	raw, err := codec.Decompress(data[entry.PayloadOffset:pEnd])
	if err != nil {
		return nil, fmt.Errorf("decompress blob %d-%d: %w", entry.FirstRow, entry.LastRow(), err)
	}

	if uint64(len(raw)) != uint64(entry.RawLength) || hash.Checksum(raw) != entry.Checksum {
		return nil, fmt.Errorf("blob %d-%d: %w", entry.FirstRow, entry.LastRow(), errs.ErrChecksumMismatch)
	}

	if err := verifyFragmentTiling(entry, frags, len(raw)); err != nil {
		return nil, err
	}

	return &blob{coll: coll, index: index, entry: entry, frags: frags, data: raw}, nil
}

// Data returns the decompressed blob payload. Callers must not modify it.
func (b *blob) Data() []byte {
	return b.data
}

// RowRange returns the blob's first row id and row count.
func (b *blob) RowRange() (int64, uint64) {
	return b.entry.FirstRow, uint64(b.entry.RowCount)
}

// ResolveFragment maps a payload byte offset to its owning fragment through
// the collection's shared resolution cursor. Callers serialize access; the
// search engine does so with the accession lock.
func (b *blob) ResolveFragment(offset uint64) (search.Fragment, error) {
	return b.coll.res.resolve(b, offset)
}
