package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/search"
)

// FileExt is the conventional archive file extension.
const FileExt = ".sqa"

// Dir serves accessions from a directory of archive files named
// "<accession>.sqa". It implements search.Opener.
type Dir struct {
	path string
}

var _ search.Opener = Dir{}

// NewDir creates an opener rooted at the given directory.
func NewDir(path string) Dir {
	return Dir{path: path}
}

// OpenAccession opens and verifies the accession's archive file.
// A missing file maps to ErrUnknownAccession.
func (d Dir) OpenAccession(accession string) (search.ReadCollection, error) {
	if accession == "" || strings.ContainsAny(accession, `/\`) {
		return nil, fmt.Errorf("%q: %w", accession, errs.ErrUnknownAccession)
	}

	data, err := os.ReadFile(filepath.Join(d.path, accession+FileExt))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", accession, errs.ErrUnknownAccession)
	}
	if err != nil {
		return nil, fmt.Errorf("read accession %q: %w", accession, err)
	}

	coll, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("accession %q: %w", accession, err)
	}
	if coll.Accession() != accession {
		return nil, fmt.Errorf("accession %q: archive holds %q", accession, coll.Accession())
	}

	return coll, nil
}

// MemOpener serves archives held in memory, keyed by accession name.
// It is primarily useful in tests. It implements search.Opener.
type MemOpener map[string][]byte

var _ search.Opener = MemOpener(nil)

// OpenAccession opens and verifies the in-memory archive for the accession.
func (m MemOpener) OpenAccession(accession string) (search.ReadCollection, error) {
	data, ok := m[accession]
	if !ok {
		return nil, fmt.Errorf("%q: %w", accession, errs.ErrUnknownAccession)
	}

	coll, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("accession %q: %w", accession, err)
	}

	return coll, nil
}
