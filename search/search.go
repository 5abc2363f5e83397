// Package search implements the concurrent blob-search engine.
//
// The engine walks an accession blob by blob. A MatchIterator issues one
// SearchBuffer per blob; workers drain buffers in parallel by calling
// NextMatch until it reports exhaustion. Raw byte hits found by a
// pattern.SearchBlock are reconciled against fragment boundaries before they
// are surfaced: a hit is only a match when it lies inside a single
// biological fragment, and the reported match covers that whole fragment.
//
// Blob payloads are immutable and read lock-free. The accession's
// fragment-resolution cursor is the one piece of shared mutable state; every
// buffer issued by an iterator shares the iterator's lock and takes it only
// around fragment lookups, so the lock is never held while scanning bytes.
package search

// Fragment describes the fragment of a blob payload that owns a byte offset.
// Start and Length are in bases relative to the start of the blob payload.
type Fragment struct {
	ID         string
	Start      uint64
	Length     uint64
	Biological bool
}

// End returns the offset one past the fragment's last base.
func (f Fragment) End() uint64 {
	return f.Start + f.Length
}

// Blob is one searchable unit of an accession: a contiguous payload of
// packed bases covering a run of consecutive rows.
//
// Data returns the payload; callers must not modify it. ResolveFragment maps
// a payload byte offset to its owning fragment; it touches the accession's
// shared resolution cursor and must only be called while holding the
// accession lock (the engine does this).
type Blob interface {
	Data() []byte
	RowRange() (first int64, count uint64)
	ResolveFragment(offset uint64) (Fragment, error)
}

// ReadCollection is an open accession: a name and its blobs.
type ReadCollection interface {
	Accession() string
	Blobs() []Blob
}

// Opener resolves accession names to open collections.
type Opener interface {
	OpenAccession(accession string) (ReadCollection, error)
}

// Match is one accepted hit. Sequence holds the bases of the entire matched
// fragment, not just the hit span, so downstream tools see full reads.
type Match struct {
	Accession  string
	FragmentID string
	Sequence   string
}
