package pattern

import "github.com/arqlabs/seqarc/errs"

// Fuzzy matches a literal subsequence allowing up to a fixed number of
// mismatched positions (Hamming distance, no indels).
//
// The scan slides a window over the subject and abandons a position as soon
// as the mismatch budget is exceeded, which keeps the common no-hit case
// cheap. Any subject byte outside A/C/G/T counts as a mismatch, so runs of N
// padding cannot produce spurious hits.
type Fuzzy struct {
	pattern     []byte
	maxMismatch int
}

var _ SearchBlock = (*Fuzzy)(nil)

// NewFuzzy creates a mismatch-tolerant matcher for the given query.
// The query is upper-cased and must consist of A/C/G/T; maxMismatch must be
// smaller than the query length.
func NewFuzzy(query string, maxMismatch int) (*Fuzzy, error) {
	q := normalizeQuery(query)
	if len(q) == 0 {
		return nil, errs.ErrEmptyPattern
	}
	if maxMismatch < 0 || maxMismatch >= len(q) {
		return nil, errs.ErrInvalidPattern
	}
	for _, c := range q {
		if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
			return nil, errs.ErrInvalidPattern
		}
	}

	return &Fuzzy{pattern: q, maxMismatch: maxMismatch}, nil
}

// NewFuzzyFactory validates the query once and returns a factory producing
// one Fuzzy block per buffer.
func NewFuzzyFactory(query string, maxMismatch int) (Factory, error) {
	if _, err := NewFuzzy(query, maxMismatch); err != nil {
		return nil, err
	}

	return FactoryFunc(func() SearchBlock {
		sb, _ := NewFuzzy(query, maxMismatch)
		return sb
	}), nil
}

// FirstMatch reports the first window of buf within the mismatch budget.
func (f *Fuzzy) FirstMatch(buf []byte) (uint64, uint64, bool) {
	pl := len(f.pattern)
	if len(buf) < pl {
		return 0, 0, false
	}

	end := len(buf) - pl

window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		for j := 0; j < pl; j++ {
			c := buf[pos+j]
			if c != f.pattern[j] || (c != 'A' && c != 'C' && c != 'G' && c != 'T') {
				mm++
				if mm > f.maxMismatch {
					continue window
				}
			}
		}

		return uint64(pos), uint64(pos + pl), true
	}

	return 0, 0, false
}
