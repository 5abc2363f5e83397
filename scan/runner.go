// Package scan drives searches across one or more accessions with a pool of
// worker goroutines.
//
// Workers pull search buffers from a shared per-accession iterator and drain
// them independently, so the blobs of a single accession are searched in
// parallel. Matches are funneled through a single collector goroutine, which
// keeps the caller's handler free of locking.
package scan

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arqlabs/seqarc/internal/options"
	"github.com/arqlabs/seqarc/pattern"
	"github.com/arqlabs/seqarc/search"
)

const matchChanCap = 64

// Handler receives matches as they are found. Calls are serialized; the
// handler never runs concurrently with itself.
type Handler func(m *search.Match)

// RunnerOption is a functional option for configuring a Runner.
type RunnerOption = options.Option[*Runner]

// WithThreads sets the number of worker goroutines per accession.
// Defaults to GOMAXPROCS.
func WithThreads(n int) RunnerOption {
	return options.New(func(r *Runner) error {
		if n < 1 {
			return fmt.Errorf("invalid thread count: %d", n)
		}
		r.threads = n

		return nil
	})
}

// Runner searches accessions for a pattern using a worker pool.
type Runner struct {
	opener  search.Opener
	factory pattern.Factory
	threads int
}

// NewRunner creates a Runner.
//
// Parameters:
//   - opener: Resolves accession names to read collections
//   - factory: Produces one search block per buffer
//   - opts: Optional configuration (thread count)
func NewRunner(opener search.Opener, factory pattern.Factory, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		opener:  opener,
		factory: factory,
		threads: runtime.GOMAXPROCS(0),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Run searches the accessions in order, invoking handle for every match.
//
// Accessions are isolated from each other: a failure in one is recorded and
// the remaining accessions are still searched. The joined per-accession
// errors are returned at the end. Cancelling the context stops the search.
func (r *Runner) Run(ctx context.Context, accessions []string, handle Handler) error {
	var failures []error

	for _, accession := range accessions {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		if err := r.runAccession(ctx, accession, handle); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

// runAccession drains one accession with the configured number of workers.
func (r *Runner) runAccession(ctx context.Context, accession string, handle Handler) error {
	it, err := search.NewBlobMatchIterator(r.opener, r.factory, accession)
	if err != nil {
		return err
	}

	matches := make(chan *search.Match, matchChanCap)
	collectDone := make(chan struct{})

	go func() {
		defer close(collectDone)

		for m := range matches {
			handle(m)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.threads; i++ {
		g.Go(func() error {
			return drain(gctx, it, matches)
		})
	}

	err = g.Wait()
	close(matches)
	<-collectDone

	if err != nil {
		return fmt.Errorf("accession %q: %w", accession, err)
	}

	return nil
}

// drain pulls buffers from the iterator until it is exhausted, forwarding
// every match. The context is checked between buffers and between matches so
// cancellation does not wait for a blob to finish.
func drain(ctx context.Context, it search.MatchIterator, matches chan<- *search.Match) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf := it.NextBuffer()
		if buf == nil {
			return nil
		}

		for {
			m, err := buf.NextMatch()
			if err != nil {
				return fmt.Errorf("buffer %s: %w", buf.BufferID(), err)
			}
			if m == nil {
				break
			}

			select {
			case matches <- m:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
