// Package seqarc provides a compact binary archive format for genomic
// sequence fragments and a concurrent pattern-search engine over it.
//
// An archive holds one accession: its fragments (biological reads and
// technical adapters) packed into compressed blobs, each blob covering a run
// of consecutive rows. The search engine scans blob payloads with a pattern
// matcher and reconciles raw byte hits against fragment boundaries, so only
// hits lying inside a single biological fragment are reported.
//
// # Core Features
//
//   - Blob-packed fragment storage with per-blob xxHash64 checksums
//   - Optional payload compression (None, Zstd, S2, LZ4)
//   - Exact, mismatch-tolerant and IUPAC-ambiguity pattern matching
//   - Two-level iteration (buffers, then matches) for parallel draining
//   - Shared per-accession lock confined to fragment resolution
//
// # Basic Usage
//
// Building an archive:
//
//	import "github.com/arqlabs/seqarc"
//
//	encoder, _ := seqarc.NewEncoder("SRR000001")
//	encoder.BeginBlob()
//	encoder.AddFragment(0, []byte("ACGTACGTACGT"), true)
//	encoder.AddFragment(1, []byte("AGATCGGAAGAG"), false)
//	encoder.EndBlob()
//	data, _ := encoder.Finish()
//	os.WriteFile("SRR000001.sqa", data, 0o644)
//
// Searching:
//
//	factory, _ := seqarc.NewExactFactory("ACGTACGT")
//	matches, err := seqarc.Search(ctx, seqarc.NewDirOpener("."),
//	    factory, []string{"SRR000001"}, 4)
//	for _, m := range matches {
//	    fmt.Printf("%s\t%s\t%s\n", m.Accession, m.FragmentID, m.Sequence)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the archive,
// pattern, search and scan packages, simplifying the most common use cases.
// For fine-grained control (streaming matches, custom openers, custom
// search blocks), use those packages directly.
package seqarc

import (
	"context"

	"github.com/arqlabs/seqarc/archive"
	"github.com/arqlabs/seqarc/pattern"
	"github.com/arqlabs/seqarc/scan"
	"github.com/arqlabs/seqarc/search"
)

// Match is one accepted hit. See search.Match.
type Match = search.Match

// NewEncoder creates an archive encoder for the accession with default
// settings (little-endian, Zstd payload compression).
// See archive.NewEncoder for options.
func NewEncoder(accession string, opts ...archive.EncoderOption) (*archive.Encoder, error) {
	return archive.NewEncoder(accession, opts...)
}

// OpenArchive opens and verifies an archive file.
func OpenArchive(path string) (*archive.Collection, error) {
	return archive.Open(path)
}

// NewDirOpener returns an opener serving "<accession>.sqa" files from dir.
func NewDirOpener(dir string) archive.Dir {
	return archive.NewDir(dir)
}

// NewExactFactory returns a search-block factory for exact matching.
func NewExactFactory(query string) (pattern.Factory, error) {
	return pattern.NewExactFactory(query)
}

// NewFuzzyFactory returns a search-block factory tolerating up to
// maxMismatch mismatched positions.
func NewFuzzyFactory(query string, maxMismatch int) (pattern.Factory, error) {
	return pattern.NewFuzzyFactory(query, maxMismatch)
}

// NewIUPACFactory returns a search-block factory honoring IUPAC nucleotide
// ambiguity codes in the query.
func NewIUPACFactory(query string) (pattern.Factory, error) {
	return pattern.NewIUPACFactory(query)
}

// Search runs the pattern over the accessions with the given number of
// worker threads and returns all matches.
//
// Matches from one accession are grouped together but their order within the
// accession depends on worker scheduling. For streaming results, use
// scan.Runner directly.
func Search(ctx context.Context, opener search.Opener, factory pattern.Factory,
	accessions []string, threads int,
) ([]Match, error) {
	runner, err := scan.NewRunner(opener, factory, scan.WithThreads(threads))
	if err != nil {
		return nil, err
	}

	// Handler calls are serialized by the runner's collector.
	var matches []Match

	err = runner.Run(ctx, accessions, func(m *search.Match) {
		matches = append(matches, *m)
	})

	return matches, err
}
