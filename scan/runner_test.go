package scan

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqlabs/seqarc/archive"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/pattern"
	"github.com/arqlabs/seqarc/search"
)

// encodeAccession builds an in-memory archive with one blob per fragment
// group.
func encodeAccession(t *testing.T, accession string, blobs ...[]string) []byte {
	t.Helper()

	enc, err := archive.NewEncoder(accession)
	require.NoError(t, err)

	for _, frags := range blobs {
		require.NoError(t, enc.BeginBlob())
		for _, bases := range frags {
			require.NoError(t, enc.AddFragment(0, []byte(bases), true))
		}
		require.NoError(t, enc.EndBlob())
	}

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func exactFactory(t *testing.T, query string) pattern.Factory {
	t.Helper()

	factory, err := pattern.NewExactFactory(query)
	require.NoError(t, err)

	return factory
}

func collectIDs(matches []*search.Match) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.FragmentID)
	}
	sort.Strings(ids)

	return ids
}

func TestRunnerRun(t *testing.T) {
	opener := archive.MemOpener{
		"ACC1": encodeAccession(t, "ACC1",
			[]string{"TTGATTACATT", "CCCCCCCC"},
			[]string{"GATTACAGGGG"},
		),
		"ACC2": encodeAccession(t, "ACC2",
			[]string{"AAAAAAA", "TTTGATTACA"},
		),
	}

	runner, err := NewRunner(opener, exactFactory(t, "GATTACA"), WithThreads(3))
	require.NoError(t, err)

	var matches []*search.Match
	err = runner.Run(context.Background(), []string{"ACC1", "ACC2"}, func(m *search.Match) {
		matches = append(matches, m)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ACC1.FR0.1", "ACC1.FR0.3", "ACC2.FR0.2"}, collectIDs(matches))
}

func TestRunnerAccessionIsolation(t *testing.T) {
	opener := archive.MemOpener{
		"GOOD": encodeAccession(t, "GOOD", []string{"TTGATTACATT"}),
	}

	runner, err := NewRunner(opener, exactFactory(t, "GATTACA"), WithThreads(2))
	require.NoError(t, err)

	var matches []*search.Match
	err = runner.Run(context.Background(), []string{"MISSING", "GOOD"}, func(m *search.Match) {
		matches = append(matches, m)
	})

	require.ErrorIs(t, err, errs.ErrUnknownAccession)
	assert.Equal(t, []string{"GOOD.FR0.1"}, collectIDs(matches),
		"a failing accession must not stop the others")
}

func TestRunnerCancelled(t *testing.T) {
	opener := archive.MemOpener{
		"ACC1": encodeAccession(t, "ACC1", []string{"TTGATTACATT"}),
	}

	runner, err := NewRunner(opener, exactFactory(t, "GATTACA"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = runner.Run(ctx, []string{"ACC1"}, func(m *search.Match) {
		t.Errorf("unexpected match %s after cancellation", m.FragmentID)
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerNoAccessions(t *testing.T) {
	runner, err := NewRunner(archive.MemOpener{}, exactFactory(t, "ACGT"))
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background(), nil, func(*search.Match) {
		t.Error("no matches expected")
	}))
}

func TestWithThreadsValidation(t *testing.T) {
	_, err := NewRunner(archive.MemOpener{}, exactFactory(t, "ACGT"), WithThreads(0))
	require.Error(t, err)

	_, err = NewRunner(archive.MemOpener{}, exactFactory(t, "ACGT"), WithThreads(-3))
	require.Error(t, err)
}

func TestRunnerZeroBlobAccession(t *testing.T) {
	opener := archive.MemOpener{
		"EMPTY": encodeAccession(t, "EMPTY"),
	}

	runner, err := NewRunner(opener, exactFactory(t, "ACGT"), WithThreads(2))
	require.NoError(t, err)

	require.NoError(t, runner.Run(context.Background(), []string{"EMPTY"}, func(*search.Match) {
		t.Error("no matches expected for an empty accession")
	}))
}
