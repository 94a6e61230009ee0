package m3g

import (
	"bytes"

	"github.com/anaminus/parse"
	"github.com/jsr184/m3gfile"
)

// Record is a single tagged record of a section payload.
type Record struct {
	Type m3gfile.ObjectType
	Body []byte
}

// recordScanner reads the records of a section payload.
type recordScanner struct {
	fr   *parse.BinaryReader
	size int64
}

func newRecordScanner(payload []byte) *recordScanner {
	return &recordScanner{
		fr:   parse.NewBinaryReader(bytes.NewReader(payload)),
		size: int64(len(payload)),
	}
}

// Offset returns the position of the scanner within the payload.
func (s *recordScanner) Offset() int64 {
	return s.fr.N()
}

// Next reads the next record into rec. Returns false when the payload has
// been consumed, or when reading failed, in which case Err returns the cause.
func (s *recordScanner) Next(rec *Record) bool {
	if s.fr.Err() != nil || s.fr.N() >= s.size {
		return false
	}

	var tag uint8
	if s.fr.Number(&tag) {
		return false
	}
	var length uint32
	if s.fr.Number(&length) {
		return false
	}
	if rem := s.size - s.fr.N(); int64(length) > rem {
		s.fr.Add(0, LengthError{Field: "record length", Length: int64(length), Remaining: rem})
		return false
	}

	rec.Type = m3gfile.ObjectType(tag)
	rec.Body = make([]byte, length)
	return !s.fr.Bytes(rec.Body)
}

// Err returns the error that stopped the scanner, if any.
func (s *recordScanner) Err() error {
	return s.fr.Err()
}
