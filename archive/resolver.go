package archive

import (
	"sort"

	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/search"
)

// resolver is the collection-wide fragment-resolution cursor.
//
// It remembers the blob and entry of the previous lookup. Lookups within one
// blob are typically monotonically increasing (the scan moves forward), so
// the common case is a short forward walk from the cursor; when the cursor
// does not apply (different blob, or an offset behind it) the lookup falls
// back to a binary search over the fragment index.
//
// The cursor is shared mutable state and NOT safe for concurrent use. The
// search engine serializes all calls with the accession lock.
type resolver struct {
	blobIndex  int
	entryIndex int
}

// resolve returns the fragment owning the given payload offset of b.
func (r *resolver) resolve(b *blob, offset uint64) (search.Fragment, error) {
	if offset >= uint64(len(b.data)) {
		return search.Fragment{}, errs.ErrOffsetOutOfRange
	}

	frags := b.frags

	var i int
	if r.blobIndex == b.index && r.entryIndex < len(frags) &&
		uint64(frags[r.entryIndex].Start) <= offset {
		// forward walk; terminates because the entries tile the payload
		i = r.entryIndex
		for uint64(frags[i].End()) <= offset {
			i++
		}
	} else {
		i = sort.Search(len(frags), func(j int) bool {
			return uint64(frags[j].End()) > offset
		})
	}

	r.blobIndex = b.index
	r.entryIndex = i

	f := frags[i]

	return search.Fragment{
		ID:         b.coll.fragmentID(f),
		Start:      uint64(f.Start),
		Length:     uint64(f.Length),
		Biological: f.IsBiological(),
	}, nil
}
