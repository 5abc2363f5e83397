// Package pattern provides the search-block contract consumed by the search
// engine, together with the built-in matchers.
//
// A SearchBlock locates candidate hit spans in raw blob bytes; the search
// engine is responsible for reconciling those spans against fragment
// boundaries. Matchers know nothing about blobs, fragments or archives.
//
// One SearchBlock instance is created per search buffer through a Factory, so
// implementations never need to be safe for concurrent use.
package pattern

// SearchBlock locates the next candidate hit in a byte range.
//
// FirstMatch reports the first hit span [hitStart, hitEnd) within buf, or
// found=false when buf contains no hit. Results are deterministic: the same
// buf always yields the same span.
//
// Implementations are stateless across calls; resuming a scan is the
// caller's job (pass a sub-slice).
type SearchBlock interface {
	FirstMatch(buf []byte) (hitStart, hitEnd uint64, found bool)
}

// Factory produces one SearchBlock per search buffer.
//
// The engine calls MakeSearchBlock once for every buffer it issues, so each
// worker scans with its own instance and instances are never shared across
// goroutines.
type Factory interface {
	MakeSearchBlock() SearchBlock
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func() SearchBlock

// MakeSearchBlock calls f.
func (f FactoryFunc) MakeSearchBlock() SearchBlock {
	return f()
}

// normalizeQuery upper-cases a query in place-safe fashion and returns it as
// bytes. Subject bytes are never normalized; archives store bases upper-case.
func normalizeQuery(query string) []byte {
	q := make([]byte, len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		q[i] = c
	}

	return q
}
