// Package section defines the fixed-size binary sections of the seqarc
// archive format.
//
// An archive file is laid out as:
//
//	+--------------------+ offset 0
//	| Header (32 bytes)  |
//	+--------------------+ offset 32
//	| Accession name     | length given by the header
//	+--------------------+
//	| Blob directory     | BlobCount x 48-byte entries
//	+--------------------+
//	| Fragment indexes   | per blob, FragmentCount x 24-byte entries
//	+--------------------+
//	| Blob payloads      | per blob, compressed packed bases
//	+--------------------+
//
// All multi-byte fields use the byte order recorded in the header flag word;
// the flag word itself is always read little-endian first so the order can be
// determined.
package section
