// Package archive implements the seqarc archive format: a single-accession
// container packing fragment bases into compressed blobs.
//
// An archive is laid out as a fixed 32-byte header, the accession name, a
// blob directory of fixed-size entries, the per-blob fragment indexes, and
// finally the compressed blob payloads. See package section for the exact
// binary layout.
//
// Encoder builds archives blob by blob (BeginBlob, AddFragment, EndBlob,
// Finish). Open and OpenBytes parse and fully verify an archive up front
// (magic number, section offsets, payload checksums, fragment tiling) and
// materialize the decompressed payloads, so everything after open is
// infallible reads over immutable memory. Collection implements the
// search package's ReadCollection contract.
package archive
