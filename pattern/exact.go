package pattern

import (
	"bytes"

	"github.com/arqlabs/seqarc/errs"
)

// Exact matches a literal subsequence.
//
// The scan delegates to bytes.Index, which uses SIMD-accelerated search on
// the platforms that support it, so exact matching is by far the fastest
// block and the right default for plain ACGT queries.
type Exact struct {
	pattern []byte
}

var _ SearchBlock = (*Exact)(nil)

// NewExact creates an exact matcher for the given query.
// The query is upper-cased; it must be non-empty.
func NewExact(query string) (*Exact, error) {
	q := normalizeQuery(query)
	if len(q) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	return &Exact{pattern: q}, nil
}

// NewExactFactory validates the query once and returns a factory producing
// one Exact block per buffer.
func NewExactFactory(query string) (Factory, error) {
	if _, err := NewExact(query); err != nil {
		return nil, err
	}

	return FactoryFunc(func() SearchBlock {
		sb, _ := NewExact(query)
		return sb
	}), nil
}

// FirstMatch reports the first occurrence of the pattern in buf.
func (e *Exact) FirstMatch(buf []byte) (uint64, uint64, bool) {
	i := bytes.Index(buf, e.pattern)
	if i < 0 {
		return 0, 0, false
	}

	return uint64(i), uint64(i) + uint64(len(e.pattern)), true
}
