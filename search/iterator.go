package search

import (
	"fmt"
	"sync"

	"github.com/arqlabs/seqarc/pattern"
)

// MatchIterator issues search buffers for an accession.
//
// NextBuffer returns the next unsearched buffer, or nil when every buffer
// has been issued. It is safe to call from multiple goroutines; each buffer
// is issued exactly once.
type MatchIterator interface {
	NextBuffer() SearchBuffer
}

// BlobMatchIterator iterates the blobs of one accession, issuing one
// SearchBuffer per blob.
//
// The iterator owns the accession lock. Every buffer it issues shares that
// lock for fragment resolution, and buffer issuance itself is serialized
// under it, so any number of workers can pull buffers from one iterator.
type BlobMatchIterator struct {
	accession string
	factory   pattern.Factory
	mu        sync.Mutex
	blobs     []Blob
	next      int
}

var _ MatchIterator = (*BlobMatchIterator)(nil)

// NewBlobMatchIterator opens the accession through the opener and returns an
// iterator over its blobs. The collection is fully verified at open time, so
// iteration itself cannot fail.
func NewBlobMatchIterator(op Opener, factory pattern.Factory, accession string) (*BlobMatchIterator, error) {
	coll, err := op.OpenAccession(accession)
	if err != nil {
		return nil, fmt.Errorf("open accession %q: %w", accession, err)
	}

	return &BlobMatchIterator{
		accession: coll.Accession(),
		factory:   factory,
		blobs:     coll.Blobs(),
	}, nil
}

// NextBuffer issues the next blob as a search buffer, or nil when all blobs
// have been issued.
func (it *BlobMatchIterator) NextBuffer() SearchBuffer {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.next >= len(it.blobs) {
		return nil
	}
	blob := it.blobs[it.next]
	it.next++

	return &blobSearchBuffer{
		sb:        it.factory.MakeSearchBlock(),
		accession: it.accession,
		mu:        &it.mu,
		blob:      blob,
	}
}

// Accession returns the name of the accession being searched.
func (it *BlobMatchIterator) Accession() string {
	return it.accession
}
