package format

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// FragmentClass distinguishes biological reads from technical sequence
// (adapters, barcodes, controls) inside an archive blob.
type FragmentClass uint8

const (
	ClassTechnical  FragmentClass = 0x0 // ClassTechnical represents adapter/barcode/control sequence.
	ClassBiological FragmentClass = 0x1 // ClassBiological represents sequenced genetic material.
)

func (f FragmentClass) String() string {
	switch f {
	case ClassBiological:
		return "Biological"
	case ClassTechnical:
		return "Technical"
	default:
		return "Unknown"
	}
}
