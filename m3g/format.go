// Package m3g implements a decoder for the JSR-184 "M3G" binary file format.
//
// A file starts with a 12-byte signature, followed by any number of sections.
// Each section has a 9-byte header, a payload, and an Adler-32 checksum over
// the header and payload. A payload is a sequence of records, each made of a
// type tag, a length, and a body that decodes to one m3gfile.Object.
//
// Problems that affect only a single record, such as an unknown type tag or
// unread bytes at the end of a body, are returned as warnings, and decoding
// continues with the next record. Problems with the structure of the file,
// such as a bad signature, a checksum mismatch, or a short read, stop
// decoding. In that case, the objects decoded before the failure are still
// returned.
package m3g

// Signature is the magic number at the start of every M3G file.
const Signature = "\xAB\x4A\x53\x52\x31\x38\x34\xBB\x0D\x0A\x1A\x0A"

const (
	// Size of a section header: compression flag, total length, and
	// uncompressed length.
	sectionHeaderSize = 9

	// Size of the checksum that follows a section payload.
	checksumSize = 4

	// Bytes of a section that are not payload.
	sectionOverhead = sectionHeaderSize + checksumSize

	// Size of a record header: type tag and body length.
	recordHeaderSize = 5
)

// DefaultMaxSectionSize is the largest section accepted by a Decoder whose
// MaxSectionSize is zero.
const DefaultMaxSectionSize = 64 << 20

// Compression schemes of a section.
const (
	CompressionNone = 0
	CompressionZlib = 1
)
