package pattern

import "github.com/arqlabs/seqarc/errs"

// iupacMask maps a base to its 4-bit compatibility mask: bit0=A bit1=C bit2=G bit3=T.
var iupacMask [256]byte

func init() {
	set := func(c byte, bits byte) { iupacMask[c] = bits }
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('U', 8)       // RNA uracil pairs like T
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any (query side only)
}

// IUPAC matches a query that may contain nucleotide ambiguity codes
// (R, Y, S, W, K, M, B, D, H, V, N).
//
// Ambiguity is honored on the query side only: a subject base outside
// A/C/G/T is a hard mismatch, so N-blocks in the archive never pair with
// anything. This mirrors how primer-matching tools treat genome Ns and
// prevents padding from producing thousands of spurious hits.
type IUPAC struct {
	masks []byte
}

var _ SearchBlock = (*IUPAC)(nil)

// NewIUPAC creates an ambiguity-aware matcher for the given query.
// The query is upper-cased; every byte must be a valid IUPAC code.
func NewIUPAC(query string) (*IUPAC, error) {
	q := normalizeQuery(query)
	if len(q) == 0 {
		return nil, errs.ErrEmptyPattern
	}

	masks := make([]byte, len(q))
	for i, c := range q {
		m := iupacMask[c]
		if m == 0 {
			return nil, errs.ErrInvalidPattern
		}
		masks[i] = m
	}

	return &IUPAC{masks: masks}, nil
}

// NewIUPACFactory validates the query once and returns a factory producing
// one IUPAC block per buffer.
func NewIUPACFactory(query string) (Factory, error) {
	if _, err := NewIUPAC(query); err != nil {
		return nil, err
	}

	return FactoryFunc(func() SearchBlock {
		sb, _ := NewIUPAC(query)
		return sb
	}), nil
}

// FirstMatch reports the first window of buf compatible with every query
// position.
func (p *IUPAC) FirstMatch(buf []byte) (uint64, uint64, bool) {
	pl := len(p.masks)
	if len(buf) < pl {
		return 0, 0, false
	}

	end := len(buf) - pl

window:
	for pos := 0; pos <= end; pos++ {
		for j := 0; j < pl; j++ {
			c := buf[pos+j]
			if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
				continue window // subject N or unknown char is a hard mismatch
			}
			if p.masks[j]&iupacMask[c] == 0 {
				continue window
			}
		}

		return uint64(pos), uint64(pos + pl), true
	}

	return 0, 0, false
}
