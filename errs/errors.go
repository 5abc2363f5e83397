// Package errs defines the sentinel errors shared across seqarc packages.
//
// All errors are compared with errors.Is; call sites wrap them with
// fmt.Errorf("...: %w", err) to add context without losing identity.
package errs

import "errors"

// Archive format errors, returned while parsing or verifying an archive.
var (
	// ErrInvalidHeaderSize is returned when the header section is truncated.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber is returned when the header magic does not
	// identify a seqarc archive.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderFlags is returned when the header flag word carries an
	// unknown compression type or reserved bits are set.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidBlobEntrySize is returned when a blob directory entry is
	// truncated.
	ErrInvalidBlobEntrySize = errors.New("invalid blob directory entry size")

	// ErrInvalidFragmentEntrySize is returned when a fragment index entry is
	// truncated.
	ErrInvalidFragmentEntrySize = errors.New("invalid fragment index entry size")

	// ErrInvalidSectionOffsets is returned when section offsets in the header
	// or directory point outside the archive.
	ErrInvalidSectionOffsets = errors.New("invalid section offsets")

	// ErrChecksumMismatch is returned when a blob payload fails checksum
	// verification after decompression.
	ErrChecksumMismatch = errors.New("blob payload checksum mismatch")
)

// Encoder state errors.
var (
	// ErrBlobAlreadyStarted is returned by BeginBlob when the previous blob
	// was not ended.
	ErrBlobAlreadyStarted = errors.New("blob already started")

	// ErrNoBlobStarted is returned by AddFragment or EndBlob outside a
	// BeginBlob/EndBlob pair.
	ErrNoBlobStarted = errors.New("no blob started")

	// ErrNoFragmentsAdded is returned by EndBlob when the blob is empty.
	ErrNoFragmentsAdded = errors.New("no fragments added to blob")

	// ErrEncoderFinished is returned when an encoder is used after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
)

// Lookup errors.
var (
	// ErrOffsetOutOfRange is returned when a byte offset resolves to no
	// fragment of a blob.
	ErrOffsetOutOfRange = errors.New("offset out of blob range")

	// ErrUnknownAccession is returned by an Opener when the accession does
	// not name a known archive.
	ErrUnknownAccession = errors.New("unknown accession")

	// ErrEmptyPattern is returned by matcher constructors for an empty query.
	ErrEmptyPattern = errors.New("empty search pattern")

	// ErrInvalidPattern is returned by matcher constructors when the query
	// contains bytes outside the supported alphabet.
	ErrInvalidPattern = errors.New("invalid search pattern")
)
