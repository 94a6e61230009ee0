package m3g

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/anaminus/parse"
	"github.com/jsr184/m3gfile/errors"
)

// Primitive sizes.
const (
	zu8  = 1
	zu16 = 2
	zu32 = 4
	zf32 = 4
)

// reader reads the fields of a single record body. Every method returns true
// if reading failed, in which case the error is held by fr.
type reader struct {
	fr *parse.BinaryReader

	// Length of the body.
	size int64

	// Offset of the body within the file.
	offset int64

	// Whether booleans other than 0 and 1 are reported.
	strict bool

	// Problems that do not prevent the record from being decoded.
	warns errors.Errors
}

func newReader(body []byte, offset int64, strict bool) *reader {
	return &reader{
		fr:     parse.NewBinaryReader(bytes.NewReader(body)),
		size:   int64(len(body)),
		offset: offset,
		strict: strict,
	}
}

// remaining returns the number of unread bytes of the body.
func (r *reader) remaining() int64 {
	return r.size - r.fr.N()
}

func (r *reader) fail(err error) bool {
	r.fr.Add(0, err)
	return true
}

func (r *reader) warn(err error) {
	r.warns = r.warns.Append(err)
}

func (r *reader) u8(v *uint8) bool {
	return r.fr.Number(v)
}

func (r *reader) u16(v *uint16) bool {
	return r.fr.Number(v)
}

func (r *reader) u32(v *uint32) bool {
	return r.fr.Number(v)
}

func (r *reader) i32(v *int32) bool {
	return r.fr.Number(v)
}

func (r *reader) f32(v *float32) bool {
	return r.fr.Number(v)
}

// bool reads a one-byte boolean. Any nonzero byte is true, unless the reader
// is strict, in which case only 1 is true, and other nonzero values are
// reported.
func (r *reader) bool(v *bool) bool {
	off := r.offset + r.fr.N()
	var b uint8
	if r.fr.Number(&b) {
		return true
	}
	if r.strict && b > 1 {
		r.warn(BoolError{Offset: off, Value: b})
		*v = false
		return false
	}
	*v = b != 0
	return false
}

func (r *reader) u8s(v []uint8) bool {
	return r.fr.Bytes(v)
}

func (r *reader) f32s(v []float32) bool {
	for i := range v {
		if r.fr.Number(&v[i]) {
			return true
		}
	}
	return false
}

func (r *reader) u32s(v []uint32) bool {
	for i := range v {
		if r.fr.Number(&v[i]) {
			return true
		}
	}
	return false
}

// count reads a 32-bit element count, and fails if count elements of size
// bytes each cannot fit in the rest of the body. This is checked before
// anything is allocated for the elements.
func (r *reader) count(field string, n *uint32, size int64) bool {
	if r.fr.Number(n) {
		return true
	}
	return r.fitsEach(field, int64(*n), size)
}

// fitsEach fails if n elements of size bytes each cannot fit in the rest of
// the body. The total is never computed when it would overflow.
func (r *reader) fitsEach(field string, n, size int64) bool {
	rem := r.remaining()
	if size <= 0 || n <= rem/size {
		return false
	}
	length := int64(math.MaxInt64)
	if n <= math.MaxInt64/size {
		length = n * size
	}
	return r.fail(LengthError{Field: field, Length: length, Remaining: rem})
}

// str reads the rest of the body as a string, with trailing NUL padding
// removed.
func (r *reader) str(v *string) bool {
	b, failed := r.fr.All()
	if failed {
		return true
	}
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		r.warn(ErrInvalidUTF8)
	}
	*v = string(b)
	return false
}

// enum reports v if it is not one of valid.
func (r *reader) enum(field string, v uint8, valid ...uint8) {
	for _, x := range valid {
		if v == x {
			return
		}
	}
	r.warn(EnumError{Field: field, Value: v})
}
