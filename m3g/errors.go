package m3g

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsr184/m3gfile"
)

var (
	// Indicates that the data does not start with the M3G signature.
	ErrInvalidSignature = errors.New("invalid signature")
	// Indicates a section with a nonzero compression flag. Compressed
	// sections are not decoded.
	ErrCompressedSection = errors.New("compressed sections are not supported")
	// Indicates a section whose total length is too small to hold its header
	// and checksum, or larger than the decoder allows.
	ErrSectionLength = errors.New("invalid section length")
	// Indicates a string field that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
	// Indicates a file whose first object is not a Header.
	ErrMissingHeader = errors.New("first object is not a header")
)

// ChecksumError indicates that the checksum stored after a section does not
// match the checksum computed over the section.
type ChecksumError struct {
	Stored   uint32
	Computed uint32
}

func (err ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: stored %08X, computed %08X", err.Stored, err.Computed)
}

// SizeMismatchError indicates an uncompressed section whose uncompressed
// length field does not match the length of its payload.
type SizeMismatchError struct {
	Declared uint32
	Actual   uint32
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("uncompressed length %d does not match payload length %d", err.Declared, err.Actual)
}

// UnknownTypeError indicates a record type tag not known by the decoder.
type UnknownTypeError m3gfile.ObjectType

func (err UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown record type %d", byte(err))
}

// TrailingBytesError indicates the number of bytes that remained unread after
// a record was decoded.
type TrailingBytesError int

func (err TrailingBytesError) Error() string {
	return fmt.Sprintf("%d bytes left unread", int(err))
}

// EnumError indicates a mode field with a value outside the known set.
type EnumError struct {
	Field string
	Value uint8
}

func (err EnumError) Error() string {
	return fmt.Sprintf("invalid %s %d", err.Field, err.Value)
}

// BoolError indicates a boolean field holding a value other than 0 or 1. It is
// only produced when booleans are decoded strictly.
type BoolError struct {
	Offset int64
	Value  uint8
}

func (err BoolError) Error() string {
	return fmt.Sprintf("invalid boolean value %d at %d", err.Value, err.Offset)
}

// LengthError indicates a count or length field that declares more data than
// remains in the enclosing record or section.
type LengthError struct {
	Field     string
	Length    int64
	Remaining int64
}

func (err LengthError) Error() string {
	return fmt.Sprintf("%s declares %d bytes, but only %d remain", err.Field, err.Length, err.Remaining)
}

// DataError wraps an error that occurred while decoding byte data.
type DataError struct {
	// Offset is the byte offset within the file where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// SectionError indicates an error that occurred within a section.
type SectionError struct {
	// Index is the position of the section within the file.
	Index int
	// Offset is the byte offset of the section header within the file.
	Offset int64

	Cause error
}

func (err SectionError) Error() string {
	return fmt.Sprintf("section #%d at %d: %s", err.Index, err.Offset, err.Cause.Error())
}

func (err SectionError) Unwrap() error {
	return err.Cause
}

// RecordError indicates an error that occurred within a record.
type RecordError struct {
	// Section is the position of the enclosing section within the file.
	Section int
	// Index is the position of the record within its section.
	Index int
	// Tag is the type tag of the record.
	Tag m3gfile.ObjectType

	Cause error
}

func (err RecordError) Error() string {
	return fmt.Sprintf("section #%d record #%d (%s): %s", err.Section, err.Index, err.Tag, err.Cause.Error())
}

func (err RecordError) Unwrap() error {
	return err.Cause
}
