package archive

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/format"
	"github.com/arqlabs/seqarc/section"
)

type testFragment struct {
	readNo     int
	bases      string
	biological bool
}

// buildArchive encodes the fragments into one archive, one blob per outer
// slice element.
func buildArchive(t *testing.T, accession string, blobs [][]testFragment, opts ...EncoderOption) []byte {
	t.Helper()

	enc, err := NewEncoder(accession, opts...)
	require.NoError(t, err)

	for _, frags := range blobs {
		require.NoError(t, enc.BeginBlob())
		for _, f := range frags {
			require.NoError(t, enc.AddFragment(f.readNo, []byte(f.bases), f.biological))
		}
		require.NoError(t, enc.EndBlob())
	}

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func TestRoundTrip(t *testing.T) {
	blobs := [][]testFragment{
		{
			{0, "ACGTACGTACGTACGTACGT", true},
			{1, "AGATCGGAAGAG", false},
			{0, "TTTTGGGGCCCCAAAA", true},
		},
		{
			{0, "GATTACAGATTACA", true},
			{1, "CCCCCCCCCC", false},
		},
	}

	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			data := buildArchive(t, "SRR000001", blobs, WithCompression(ct))

			coll, err := OpenBytes(data)
			require.NoError(t, err)
			assert.Equal(t, "SRR000001", coll.Accession())
			require.Len(t, coll.Blobs(), 2)

			b0 := coll.Blobs()[0]
			first, count := b0.RowRange()
			assert.Equal(t, int64(1), first)
			assert.Equal(t, uint64(3), count)
			assert.Equal(t, "ACGTACGTACGTACGTACGTAGATCGGAAGAGTTTTGGGGCCCCAAAA", string(b0.Data()))

			b1 := coll.Blobs()[1]
			first, count = b1.RowRange()
			assert.Equal(t, int64(4), first)
			assert.Equal(t, uint64(2), count)
			assert.Equal(t, "GATTACAGATTACACCCCCCCCCC", string(b1.Data()))
		})
	}
}

func TestRoundTripBigEndian(t *testing.T) {
	blobs := [][]testFragment{{{0, "ACGTACGT", true}}}
	data := buildArchive(t, "SRR000002", blobs, WithBigEndian())

	coll, err := OpenBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "SRR000002", coll.Accession())
	assert.Equal(t, "ACGTACGT", string(coll.Blobs()[0].Data()))
}

func TestResolveFragment(t *testing.T) {
	blobs := [][]testFragment{
		{
			{0, "ACGTACGTAC", true},   // rows start at 1, bytes [0,10)
			{1, "AGATCG", false},      // row 2, bytes [10,16)
			{0, "TTTTGGGGCCCC", true}, // row 3, bytes [16,28)
		},
	}
	data := buildArchive(t, "SRR000003", blobs)

	coll, err := OpenBytes(data)
	require.NoError(t, err)
	b := coll.Blobs()[0]

	frag, err := b.ResolveFragment(0)
	require.NoError(t, err)
	assert.Equal(t, "SRR000003.FR0.1", frag.ID)
	assert.Equal(t, uint64(0), frag.Start)
	assert.Equal(t, uint64(10), frag.Length)
	assert.True(t, frag.Biological)

	frag, err = b.ResolveFragment(12)
	require.NoError(t, err)
	assert.Equal(t, "SRR000003.FR1.2", frag.ID)
	assert.False(t, frag.Biological)

	frag, err = b.ResolveFragment(27)
	require.NoError(t, err)
	assert.Equal(t, "SRR000003.FR0.3", frag.ID)
	assert.Equal(t, uint64(16), frag.Start)

	// behind the cursor, exercises the binary-search fallback
	frag, err = b.ResolveFragment(5)
	require.NoError(t, err)
	assert.Equal(t, "SRR000003.FR0.1", frag.ID)

	_, err = b.ResolveFragment(28)
	assert.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
}

func TestResolveFragmentAcrossBlobs(t *testing.T) {
	blobs := [][]testFragment{
		{{0, "AAAACCCC", true}},
		{{0, "GGGGTTTT", true}},
	}
	data := buildArchive(t, "SRR000004", blobs)

	coll, err := OpenBytes(data)
	require.NoError(t, err)

	// alternate between blobs so the cursor has to re-seat itself
	f0, err := coll.Blobs()[0].ResolveFragment(3)
	require.NoError(t, err)
	f1, err := coll.Blobs()[1].ResolveFragment(3)
	require.NoError(t, err)
	f0again, err := coll.Blobs()[0].ResolveFragment(7)
	require.NoError(t, err)

	assert.Equal(t, "SRR000004.FR0.1", f0.ID)
	assert.Equal(t, "SRR000004.FR0.2", f1.ID)
	assert.Equal(t, "SRR000004.FR0.1", f0again.ID)
}

func TestZeroBlobArchive(t *testing.T) {
	data := buildArchive(t, "SRR000005", nil)

	coll, err := OpenBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "SRR000005", coll.Accession())
	assert.Empty(t, coll.Blobs())
}

func TestEncoderLifecycle(t *testing.T) {
	enc, err := NewEncoder("SRR000006")
	require.NoError(t, err)

	require.ErrorIs(t, enc.AddFragment(0, []byte("ACGT"), true), errs.ErrNoBlobStarted)
	require.ErrorIs(t, enc.EndBlob(), errs.ErrNoBlobStarted)

	require.NoError(t, enc.BeginBlob())
	require.ErrorIs(t, enc.BeginBlob(), errs.ErrBlobAlreadyStarted)

	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrBlobAlreadyStarted)

	require.NoError(t, enc.AddFragment(0, []byte("ACGT"), true))
	require.Error(t, enc.AddFragment(0, nil, true), "empty fragment must be rejected")
	require.NoError(t, enc.EndBlob())

	_, err = enc.Finish()
	require.NoError(t, err)

	require.ErrorIs(t, enc.BeginBlob(), errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.AddFragment(0, []byte("ACGT"), true), errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.EndBlob(), errs.ErrEncoderFinished)
	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
}

func TestEncoderEmptyBlob(t *testing.T) {
	enc, err := NewEncoder("SRR000007")
	require.NoError(t, err)

	require.NoError(t, enc.BeginBlob())
	require.ErrorIs(t, enc.EndBlob(), errs.ErrNoFragmentsAdded)

	// the aborted blob leaves no trace
	data, err := enc.Finish()
	require.NoError(t, err)

	coll, err := OpenBytes(data)
	require.NoError(t, err)
	assert.Empty(t, coll.Blobs())
}

func TestEncoderInvalidInputs(t *testing.T) {
	_, err := NewEncoder("")
	require.Error(t, err)

	_, err = NewEncoder(strings.Repeat("x", 2000))
	require.Error(t, err)

	enc, err := NewEncoder("SRR000008")
	require.NoError(t, err)
	require.NoError(t, enc.BeginBlob())
	require.Error(t, enc.AddFragment(-1, []byte("ACGT"), true))
	require.Error(t, enc.AddFragment(1<<16, []byte("ACGT"), true))
}

func TestWithFirstRow(t *testing.T) {
	blobs := [][]testFragment{{{0, "ACGT", true}, {0, "TTTT", true}}}
	data := buildArchive(t, "SRR000009", blobs, WithFirstRow(1000))

	coll, err := OpenBytes(data)
	require.NoError(t, err)

	first, count := coll.Blobs()[0].RowRange()
	assert.Equal(t, int64(1000), first)
	assert.Equal(t, uint64(2), count)

	frag, err := coll.Blobs()[0].ResolveFragment(5)
	require.NoError(t, err)
	assert.Equal(t, "SRR000009.FR0.1001", frag.ID)
}

func TestOpenBytesErrors(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, err := OpenBytes([]byte{0x10, 0xAC})
		assert.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := buildArchive(t, "SRR000010", nil)
		data[1] ^= 0xFF
		_, err := OpenBytes(data)
		assert.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("truncated accession", func(t *testing.T) {
		data := buildArchive(t, "SRR000010", nil)
		_, err := OpenBytes(data[:len(data)-2])
		assert.ErrorIs(t, err, errs.ErrInvalidSectionOffsets)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		blobs := [][]testFragment{{{0, "ACGTACGTACGT", true}}}
		data := buildArchive(t, "SRR000010", blobs, WithCompression(format.CompressionNone))
		data[len(data)-1] ^= 0xFF
		_, err := OpenBytes(data)
		assert.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated payload", func(t *testing.T) {
		blobs := [][]testFragment{{{0, "ACGTACGTACGT", true}}}
		data := buildArchive(t, "SRR000010", blobs, WithCompression(format.CompressionNone))
		_, err := OpenBytes(data[:len(data)-4])
		assert.ErrorIs(t, err, errs.ErrInvalidSectionOffsets)
	})

	t.Run("fragment index offset near MaxUint64", func(t *testing.T) {
		blobs := [][]testFragment{{{0, "ACGTACGTACGT", true}}}
		data := buildArchive(t, "SRR000010", blobs, WithCompression(format.CompressionNone))

		dir := section.HeaderSize + len("SRR000010")
		binary.LittleEndian.PutUint64(data[dir+16:dir+24], 0xFFFFFFFFFFFFFFF0)

		_, err := OpenBytes(data)
		assert.ErrorIs(t, err, errs.ErrInvalidSectionOffsets)
	})

	t.Run("payload offset near MaxUint64", func(t *testing.T) {
		blobs := [][]testFragment{{{0, "ACGTACGTACGT", true}}}
		data := buildArchive(t, "SRR000010", blobs, WithCompression(format.CompressionNone))

		dir := section.HeaderSize + len("SRR000010")
		binary.LittleEndian.PutUint64(data[dir+24:dir+32], 0xFFFFFFFFFFFFFFF0)

		_, err := OpenBytes(data)
		assert.ErrorIs(t, err, errs.ErrInvalidSectionOffsets)
	})

	t.Run("fragment lengths wrapping 32 bits", func(t *testing.T) {
		blobs := [][]testFragment{{
			{0, "ACGTACGTAC", true},
			{1, "GGGGTT", false},
		}}
		data := buildArchive(t, "SRR000010", blobs, WithCompression(format.CompressionNone))

		// stretch the first fragment to 0xFFFFFFFF bases and pick a second
		// length whose 32-bit sum lands back on the raw payload length
		dir := section.HeaderSize + len("SRR000010")
		fi := int(binary.LittleEndian.Uint64(data[dir+16 : dir+24]))
		rawLen := binary.LittleEndian.Uint32(data[dir+36 : dir+40])

		binary.LittleEndian.PutUint32(data[fi+12:fi+16], 0xFFFFFFFF)
		second := fi + section.FragmentEntrySize
		binary.LittleEndian.PutUint32(data[second+8:second+12], 0xFFFFFFFF)
		binary.LittleEndian.PutUint32(data[second+12:second+16], rawLen+1)

		_, err := OpenBytes(data)
		assert.ErrorIs(t, err, errs.ErrInvalidSectionOffsets)
	})
}

func TestDirOpener(t *testing.T) {
	dir := t.TempDir()
	blobs := [][]testFragment{{{0, "ACGTACGT", true}}}
	data := buildArchive(t, "SRR000011", blobs)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SRR000011"+FileExt), data, 0o644))

	opener := NewDir(dir)

	coll, err := opener.OpenAccession("SRR000011")
	require.NoError(t, err)
	assert.Equal(t, "SRR000011", coll.Accession())

	_, err = opener.OpenAccession("SRR999999")
	assert.ErrorIs(t, err, errs.ErrUnknownAccession)

	_, err = opener.OpenAccession("../escape")
	assert.ErrorIs(t, err, errs.ErrUnknownAccession)

	// file name and stored accession must agree
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SRR000012"+FileExt), data, 0o644))
	_, err = opener.OpenAccession("SRR000012")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrUnknownAccession)
}

func TestMemOpener(t *testing.T) {
	blobs := [][]testFragment{{{0, "ACGTACGT", true}}}
	opener := MemOpener{"SRR000013": buildArchive(t, "SRR000013", blobs)}

	coll, err := opener.OpenAccession("SRR000013")
	require.NoError(t, err)
	assert.Equal(t, "SRR000013", coll.Accession())

	_, err = opener.OpenAccession("SRR999999")
	assert.ErrorIs(t, err, errs.ErrUnknownAccession)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SRR000014"+FileExt)
	blobs := [][]testFragment{{{0, "GATTACA", true}}}
	require.NoError(t, os.WriteFile(path, buildArchive(t, "SRR000014", blobs), 0o644))

	coll, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "SRR000014", coll.Accession())

	_, err = Open(filepath.Join(dir, "missing.sqa"))
	require.Error(t, err)
}
