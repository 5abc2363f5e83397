package archive

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arqlabs/seqarc/compress"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/format"
	"github.com/arqlabs/seqarc/internal/hash"
	"github.com/arqlabs/seqarc/internal/options"
	"github.com/arqlabs/seqarc/internal/pool"
	"github.com/arqlabs/seqarc/section"
)

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression sets the payload compression for every blob in the archive.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		e.header.Flag.SetCompression(compression)
		if !e.header.Flag.IsValidCompression() {
			return fmt.Errorf("invalid payload compression: %s", compression)
		}

		return nil
	})
}

// WithBigEndian writes all multi-byte fields in big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithBigEndian()
	})
}

// WithLittleEndian writes all multi-byte fields in little-endian byte order.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithLittleEndian()
	})
}

// WithFirstRow sets the row id assigned to the first fragment added.
// Rows default to starting at 1.
func WithFirstRow(row int64) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.nextRow = row
	})
}

// Encoder builds a seqarc archive for one accession.
//
// Usage follows a strict lifecycle: BeginBlob opens a blob, AddFragment
// appends fragments to it, EndBlob seals and compresses it, and Finish
// assembles the final archive bytes. Row ids are assigned sequentially
// across blobs in the order fragments are added.
//
// The encoder is NOT thread-safe and NOT reusable after Finish.
type Encoder struct {
	header    section.Header
	accession string
	codec     compress.Codec

	entries  []section.BlobEntry
	frags    [][]section.FragmentEntry
	payloads [][]byte

	staging  *pool.ByteBuffer
	curFrags []section.FragmentEntry
	firstRow int64
	nextRow  int64
	inBlob   bool
	finished bool
}

// NewEncoder creates an Encoder for the given accession.
//
// Parameters:
//   - accession: Accession name, stored verbatim in the archive
//   - opts: Optional configuration (compression, byte order, first row)
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Invalid accession name or option error
func NewEncoder(accession string, opts ...EncoderOption) (*Encoder, error) {
	if len(accession) == 0 || len(accession) > section.MaxAccessionLen {
		return nil, fmt.Errorf("invalid accession name: %q", accession)
	}

	enc := &Encoder{
		header:    section.NewHeader(len(accession)),
		accession: accession,
		nextRow:   1,
	}

	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(enc.header.Flag.Compression(), "payload")
	if err != nil {
		return nil, err
	}
	enc.codec = codec

	return enc, nil
}

// BeginBlob opens a new blob. The blob's first row is the next unassigned
// row id.
//
// Returns:
//   - error: ErrEncoderFinished or ErrBlobAlreadyStarted
func (e *Encoder) BeginBlob() error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if e.inBlob {
		return errs.ErrBlobAlreadyStarted
	}

	e.staging = pool.GetArchiveBuffer()
	e.curFrags = e.curFrags[:0]
	e.firstRow = e.nextRow
	e.inBlob = true

	return nil
}

// AddFragment appends one fragment to the open blob and assigns it the next
// row id. The bases are copied; the caller keeps ownership of the slice.
//
// Parameters:
//   - readNo: Ordinal of the read within its spot (0-based)
//   - bases: Fragment bases, must be non-empty
//   - biological: Whether the fragment is biological (true) or technical (false)
//
// Returns:
//   - error: Lifecycle error or fragment/blob size limit exceeded
func (e *Encoder) AddFragment(readNo int, bases []byte, biological bool) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if !e.inBlob {
		return errs.ErrNoBlobStarted
	}
	if len(bases) == 0 {
		return fmt.Errorf("empty fragment for row %d", e.nextRow)
	}
	if readNo < 0 || readNo > math.MaxUint16 {
		return fmt.Errorf("read number %d out of range for row %d", readNo, e.nextRow)
	}
	if uint64(e.staging.Len())+uint64(len(bases)) > math.MaxUint32 {
		return fmt.Errorf("blob payload exceeds %d bytes", uint32(math.MaxUint32))
	}

	entry := section.FragmentEntry{
		RowID:  e.nextRow,
		Start:  uint32(e.staging.Len()), //nolint: gosec
		Length: uint32(len(bases)),      //nolint: gosec
		ReadNo: uint16(readNo),          //nolint: gosec
	}
	entry.SetBiological(biological)

	_, _ = e.staging.Write(bases)
	e.curFrags = append(e.curFrags, entry)
	e.nextRow++

	return nil
}

// EndBlob seals the open blob: the staged bases are checksummed, compressed
// and queued for Finish.
//
// Returns:
//   - error: Lifecycle error, ErrNoFragmentsAdded, or compression error
func (e *Encoder) EndBlob() error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if !e.inBlob {
		return errs.ErrNoBlobStarted
	}
	if len(e.curFrags) == 0 {
		e.releaseStaging()
		e.inBlob = false

		return errs.ErrNoFragmentsAdded
	}

	raw := e.staging.Bytes()

	payload, err := e.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress blob payload: %w", err)
	}
	// NoOp compression hands back the staging buffer itself; copy it before
	// the buffer goes back to the pool.
	if len(payload) > 0 && &payload[0] == &raw[0] {
		payload = bytes.Clone(payload)
	}

	entry := section.BlobEntry{
		FirstRow:      e.firstRow,
		RowCount:      uint32(len(e.curFrags)), //nolint: gosec
		FragmentCount: uint32(len(e.curFrags)), //nolint: gosec
		PayloadLength: uint32(len(payload)),    //nolint: gosec
		RawLength:     uint32(len(raw)),        //nolint: gosec
		Checksum:      hash.Checksum(raw),
	}

	frags := make([]section.FragmentEntry, len(e.curFrags))
	copy(frags, e.curFrags)

	e.entries = append(e.entries, entry)
	e.frags = append(e.frags, frags)
	e.payloads = append(e.payloads, payload)

	e.releaseStaging()
	e.curFrags = e.curFrags[:0]
	e.inBlob = false

	return nil
}

// Finish assembles and returns the archive bytes. The encoder cannot be
// used afterwards. An archive with zero blobs is legal.
//
// Returns:
//   - []byte: Complete archive (header, accession, directory, indexes, payloads)
//   - error: ErrEncoderFinished, or ErrBlobAlreadyStarted if a blob is still open
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	if e.inBlob {
		return nil, errs.ErrBlobAlreadyStarted
	}
	e.finished = true

	engine := e.header.Flag.GetEndianEngine()

	dirOffset := uint64(section.HeaderSize + len(e.accession))
	cursor := dirOffset + uint64(len(e.entries))*section.BlobEntrySize

	for i := range e.entries {
		e.entries[i].FragmentIndexOffset = cursor
		cursor += uint64(len(e.frags[i])) * section.FragmentEntrySize
	}

	var totalRows uint64
	for i := range e.entries {
		e.entries[i].PayloadOffset = cursor
		cursor += uint64(len(e.payloads[i]))
		totalRows += uint64(e.entries[i].RowCount)
	}

	e.header.BlobCount = uint32(len(e.entries)) //nolint: gosec
	e.header.DirectoryOffset = dirOffset
	e.header.TotalRows = totalRows

	out := make([]byte, cursor)
	copy(out[:section.HeaderSize], e.header.Bytes())
	copy(out[section.AccessionOffset:], e.accession)

	pos := int(dirOffset) //nolint: gosec
	for i := range e.entries {
		pos = e.entries[i].WriteToSlice(out, pos, engine)
	}
	for i := range e.frags {
		for j := range e.frags[i] {
			pos = e.frags[i][j].WriteToSlice(out, pos, engine)
		}
	}
	for i := range e.payloads {
		pos += copy(out[pos:], e.payloads[i])
	}

	return out, nil
}

func (e *Encoder) releaseStaging() {
	if e.staging != nil {
		pool.PutArchiveBuffer(e.staging)
		e.staging = nil
	}
}
