package search

import (
	"fmt"
	"sync"

	"github.com/arqlabs/seqarc/pattern"
)

// SearchBuffer yields the matches of one blob, one at a time.
//
// NextMatch returns the next match, or (nil, nil) once the blob is
// exhausted. Exhaustion rewinds the resume position, so a later call starts
// the scan over from the beginning of the blob. BufferID identifies the blob
// by its row range and is stable across calls.
//
// A buffer is owned by a single goroutine; buffers of the same accession may
// be drained concurrently.
type SearchBuffer interface {
	NextMatch() (*Match, error)
	BufferID() string
}

// blobSearchBuffer drains one blob. It keeps a resume position so that the
// scan continues after the fragment of the previous hit, and it shares the
// accession lock of the iterator that issued it.
type blobSearchBuffer struct {
	sb        pattern.SearchBlock
	accession string
	mu        *sync.Mutex
	blob      Blob
	position  uint64
}

var _ SearchBuffer = (*blobSearchBuffer)(nil)

// NextMatch scans forward from the resume position until a hit survives
// boundary reconciliation or the blob runs out of bytes.
func (b *blobSearchBuffer) NextMatch() (*Match, error) {
	data := b.blob.Data()

	for b.position < uint64(len(data)) {
		hitStart, hitEnd, found := b.sb.FirstMatch(data[b.position:])
		if !found {
			break
		}

		// translate to offsets from the start of the blob
		hitStart += b.position
		hitEnd += b.position

		frag, err := b.resolveFragment(hitStart)
		if err != nil {
			return nil, err
		}
		fragEnd := frag.End()

		// whatever happens to this hit, the scan resumes after the fragment
		b.position = fragEnd

		if !frag.Biological {
			continue
		}
		if hitEnd < fragEnd || b.refind(data, frag) {
			return &Match{
				Accession:  b.accession,
				FragmentID: frag.ID,
				Sequence:   string(data[frag.Start:fragEnd]),
			}, nil
		}
	}

	b.position = 0

	return nil, nil
}

// resolveFragment looks up the fragment owning offset under the accession
// lock. The lookup mutates the collection's shared resolution cursor, so the
// lock must cover it even on the error path.
func (b *blobSearchBuffer) resolveFragment(offset uint64) (Fragment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.blob.ResolveFragment(offset)
}

// refind re-runs the pattern confined to the fragment's own bytes. A hit
// that straddled the fragment end may still occur wholly inside the
// fragment, and a confined hit cannot cross a boundary.
func (b *blobSearchBuffer) refind(data []byte, frag Fragment) bool {
	_, _, found := b.sb.FirstMatch(data[frag.Start:frag.End()])
	return found
}

// BufferID returns "<firstRow>-<lastRow>" for the blob's row range.
func (b *blobSearchBuffer) BufferID() string {
	first, count := b.blob.RowRange()
	return fmt.Sprintf("%d-%d", first, first+int64(count)-1)
}
