package section

import (
	"github.com/arqlabs/seqarc/endian"
	"github.com/arqlabs/seqarc/errs"
	"github.com/arqlabs/seqarc/format"
)

// Flag represents the packed field for various flags in the archive header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the archive format:
	//   - 0xAC10 (0b1010_1100_0001_0000): seqarc archive format v1
	Options uint16

	// CompressionType is an enum indicating the payload compression used for
	// every blob in this archive. Only the low nibble is used.
	CompressionType uint8

	// Reserved is an unused byte, must be set to 0.
	Reserved uint8
}

var validPayloadCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFlag creates a new Flag with default settings: little-endian byte order
// and Zstd payload compression.
func NewFlag() Flag {
	flag := Flag{
		Options:         MagicArchiveV1Opt,
		CompressionType: PayloadCompressionZstd,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the archive data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the archive data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicArchiveV1Opt
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

// SetCompression sets the payload compression type.
func (f *Flag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression) & 0x0F
}

// IsValidCompression checks if the compression type is valid.
func (f Flag) IsValidCompression() bool {
	_, ok := validPayloadCompressions[f.CompressionType&0x0F]
	return ok
}

// Validate checks if the flag header contains valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	if f.Options&ReservedBitsMask != 0 || f.Reserved != 0 || f.CompressionType&0xF0 != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidCompression() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
