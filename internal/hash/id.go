package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of the given bytes.
//
// Used by the archive layer to verify blob payloads after decompression.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
