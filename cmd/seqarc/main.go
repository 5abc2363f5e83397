// Command seqarc builds and searches seqarc archives.
//
// Usage:
//
//	seqarc build -acc <accession> [-dir DIR] [-rows-per-blob N] [-compression TYPE] <fragments.tsv>
//	seqarc search -query <pattern> [-dir DIR] [-threads N] [-mismatches N] [-iupac] <accession>...
//
// The build input is a tab-separated file with one fragment per line:
// read number, "bio" or "tech", then the bases. Search output is one match
// per line: accession, fragment id, and the full fragment sequence,
// tab-separated.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/arqlabs/seqarc"
	"github.com/arqlabs/seqarc/archive"
	"github.com/arqlabs/seqarc/format"
	"github.com/arqlabs/seqarc/pattern"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "seqarc: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  seqarc build -acc <accession> [-dir DIR] [-rows-per-blob N] [-compression none|zstd|s2|lz4] <fragments.tsv>
  seqarc search -query <pattern> [-dir DIR] [-threads N] [-mismatches N] [-iupac] <accession>...`)
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	acc := fs.String("acc", "", "accession name (required)")
	dir := fs.String("dir", ".", "output directory")
	rowsPerBlob := fs.Int("rows-per-blob", 1000, "fragments per blob")
	compression := fs.String("compression", "zstd", "payload compression: none, zstd, s2 or lz4")
	_ = fs.Parse(args)

	if *acc == "" || fs.NArg() != 1 || *rowsPerBlob < 1 {
		fs.Usage()
		return fmt.Errorf("build: missing accession or input file")
	}

	comp, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	enc, err := seqarc.NewEncoder(*acc, archive.WithCompression(comp))
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	rows := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return fmt.Errorf("line %d: want 3 tab-separated fields, got %d", line, len(fields))
		}

		readNo, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: bad read number: %w", line, err)
		}

		var biological bool
		switch fields[1] {
		case "bio":
			biological = true
		case "tech":
			biological = false
		default:
			return fmt.Errorf("line %d: fragment class must be bio or tech, got %q", line, fields[1])
		}

		if rows%*rowsPerBlob == 0 {
			if rows > 0 {
				if err := enc.EndBlob(); err != nil {
					return err
				}
			}
			if err := enc.BeginBlob(); err != nil {
				return err
			}
		}

		if err := enc.AddFragment(readNo, []byte(strings.ToUpper(fields[2])), biological); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if rows > 0 {
		if err := enc.EndBlob(); err != nil {
			return err
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return err
	}

	out := filepath.Join(*dir, *acc+archive.FileExt)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %s: %d fragments, %d bytes\n", out, rows, len(data))

	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "pattern to search for (required)")
	dir := fs.String("dir", ".", "archive directory")
	threads := fs.Int("threads", 2, "worker threads per accession")
	mismatches := fs.Int("mismatches", 0, "allowed mismatches (exact matching when 0)")
	iupac := fs.Bool("iupac", false, "treat the query as an IUPAC ambiguity pattern")
	_ = fs.Parse(args)

	if *query == "" || fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("search: missing query or accessions")
	}

	factory, err := makeFactory(*query, *mismatches, *iupac)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	matches, err := seqarc.Search(ctx, seqarc.NewDirOpener(*dir), factory, fs.Args(), *threads)

	w := bufio.NewWriter(os.Stdout)
	for i := range matches {
		m := &matches[i]
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Accession, m.FragmentID, m.Sequence)
	}
	w.Flush()

	return err
}

func makeFactory(query string, mismatches int, iupac bool) (pattern.Factory, error) {
	switch {
	case iupac && mismatches > 0:
		return nil, fmt.Errorf("search: -iupac and -mismatches are mutually exclusive")
	case iupac:
		return pattern.NewIUPACFactory(query)
	case mismatches > 0:
		return pattern.NewFuzzyFactory(query, mismatches)
	default:
		return pattern.NewExactFactory(query)
	}
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
