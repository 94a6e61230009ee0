package m3g

import (
	"bytes"
	"hash/adler32"

	"github.com/anaminus/parse"
)

// rawSection is a section as it appears in the file, before its records are
// decoded.
type rawSection struct {
	compression        uint8
	totalLength        uint32
	uncompressedLength uint32
	header             []byte
	payload            []byte
	checksum           uint32
}

// ReadFrom reads a section from fr. limit is the largest total length that is
// accepted; the payload is not allocated if the total length exceeds it. The
// checksum is read but not verified.
func (s *rawSection) ReadFrom(fr *parse.BinaryReader, limit uint32) bool {
	s.header = make([]byte, sectionHeaderSize)
	if fr.Bytes(s.header) {
		return true
	}

	hr := parse.NewBinaryReader(bytes.NewReader(s.header))
	hr.Number(&s.compression)
	hr.Number(&s.totalLength)
	hr.Number(&s.uncompressedLength)
	if _, err := hr.End(); err != nil {
		return fr.Add(0, err)
	}

	if s.compression != CompressionNone {
		return fr.Add(0, ErrCompressedSection)
	}
	if s.totalLength < sectionOverhead || s.totalLength > limit {
		return fr.Add(0, ErrSectionLength)
	}

	s.payload = make([]byte, s.totalLength-sectionOverhead)
	if fr.Bytes(s.payload) {
		return true
	}

	return fr.Number(&s.checksum)
}

// Verify returns a ChecksumError if the stored checksum does not match the
// header and payload.
func (s *rawSection) Verify() error {
	if sum := Checksum(s.header, s.payload); sum != s.checksum {
		return ChecksumError{Stored: s.checksum, Computed: sum}
	}
	return nil
}

// Checksum returns the Adler-32 checksum of a section header followed by its
// payload.
func Checksum(header, payload []byte) uint32 {
	h := adler32.New()
	h.Write(header)
	h.Write(payload)
	return h.Sum32()
}
