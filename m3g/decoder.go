package m3g

import (
	"bufio"
	"io"

	"github.com/anaminus/parse"
	"github.com/jsr184/m3gfile"
	"github.com/jsr184/m3gfile/errors"
	"go.uber.org/zap"
)

// Decoder decodes a stream of bytes into an m3gfile.Graph.
type Decoder struct {
	// If StrictBools is true, then only a byte value of 1 decodes to true.
	// Other nonzero values decode to false and produce a BoolError warning.
	// Otherwise, any nonzero value decodes to true.
	StrictBools bool

	// MaxSectionSize is the largest total section length that is accepted.
	// If zero, DefaultMaxSectionSize is used.
	MaxSectionSize uint32

	// Logger receives debug messages about the structure of the file, and a
	// message for each warning. If nil, nothing is logged.
	Logger *zap.Logger

	// Stats, if not nil, is filled in with statistics about the decoded file.
	Stats *DecoderStats
}

// DecoderStats contains statistics generated while decoding the format.
type DecoderStats struct {
	// Sections describes each section that was read, including a section
	// that failed verification.
	Sections []SectionStats

	// Records is the number of records that were decoded.
	Records int

	// TypeCount is the number of records per type name. Unknown record types
	// are counted as "Invalid".
	TypeCount map[string]int

	// Warnings is the number of warnings that were produced.
	Warnings int
}

// SectionStats describes a single section.
type SectionStats struct {
	Offset             int64
	Compression        uint8
	TotalLength        uint32
	UncompressedLength uint32
	Checksum           uint32
	Verified           bool
	Records            int
}

// Decode decodes data from r with a default Decoder.
func Decode(r io.Reader) (g *m3gfile.Graph, warn, err error) {
	return Decoder{}.Decode(r)
}

// Decode reads data from r and decodes it into a Graph. warn contains
// problems that did not stop decoding, as an errors.Errors. If err is not
// nil, then decoding stopped early, and g contains the objects decoded up to
// that point. g is nil only when the signature could not be verified.
func (d Decoder) Decode(r io.Reader) (g *m3gfile.Graph, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}

	s := d.newSession()
	g, err = s.decode(r)
	return g, s.warns.Return(), err
}

// Sections reads the sections of r without decoding their records. Each
// element of sections holds the records of one section that passed
// verification. Only problems with the framing of the file are reported; if
// err is not nil, then sections contains the complete sections read before the
// failing one.
func (d Decoder) Sections(r io.Reader) (sections [][]Record, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}

	s := d.newSession()
	_, err = s.frame(r, func(section int, offset int64, payload []byte) (int, error) {
		var records []Record
		n, err := s.scanRecords(section, offset, payload, func(_ int, _ int64, rec Record) error {
			records = append(records, rec)
			return nil
		})
		if err == nil {
			sections = append(sections, records)
		}
		return n, err
	})
	return sections, s.warns.Return(), err
}

func (d Decoder) newSession() *session {
	s := &session{
		dec:   d,
		log:   d.Logger,
		stats: d.Stats,
		limit: d.MaxSectionSize,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.stats == nil {
		s.stats = new(DecoderStats)
	}
	*s.stats = DecoderStats{TypeCount: map[string]int{}}
	if s.limit == 0 {
		s.limit = DefaultMaxSectionSize
	}
	return s
}

func decodeError(fr *parse.BinaryReader, err error) error {
	fr.Add(0, err)
	err = fr.Err()
	if err != nil {
		return DataError{Offset: fr.N(), Cause: err}
	}
	return nil
}

// session holds the state of a single call to Decode.
type session struct {
	dec   Decoder
	log   *zap.Logger
	stats *DecoderStats
	limit uint32
	warns errors.Errors
}

func (s *session) warn(err error) {
	s.warns = s.warns.Append(err)
	s.stats.Warnings++
	s.log.Warn("decode warning", zap.Error(err))
}

func (s *session) decode(r io.Reader) (*m3gfile.Graph, error) {
	g := new(m3gfile.Graph)
	signed, err := s.frame(r, func(section int, offset int64, payload []byte) (int, error) {
		return s.decodeRecords(g, section, offset, payload)
	})
	if !signed {
		return nil, err
	}
	if err != nil {
		return g, err
	}

	if g.Len() > 0 && g.Header() == nil {
		s.warn(ErrMissingHeader)
	}
	return g, nil
}

// frame reads the signature and each section of r. fn is called with the
// payload of each section that passes verification, along with the position
// of the payload within the file, and returns the number of records it read.
// signed is false if the signature could not be read or verified.
func (s *session) frame(r io.Reader, fn func(section int, offset int64, payload []byte) (int, error)) (signed bool, err error) {
	br := bufio.NewReader(r)
	fr := parse.NewBinaryReader(br)

	sig := make([]byte, len(Signature))
	if fr.Bytes(sig) {
		return false, decodeError(fr, nil)
	}
	if string(sig) != Signature {
		return false, decodeError(fr, ErrInvalidSignature)
	}

	for i := 0; ; i++ {
		// Running out of data between sections is the normal end of the
		// file.
		if _, err := br.Peek(1); err == io.EOF {
			break
		}

		offset := fr.N()
		var sec rawSection
		if sec.ReadFrom(fr, s.limit) {
			return true, SectionError{Index: i, Offset: offset, Cause: decodeError(fr, nil)}
		}

		st := SectionStats{
			Offset:             offset,
			Compression:        sec.compression,
			TotalLength:        sec.totalLength,
			UncompressedLength: sec.uncompressedLength,
			Checksum:           sec.checksum,
		}
		s.log.Debug("section",
			zap.Int("index", i),
			zap.Int64("offset", offset),
			zap.Uint8("compression", sec.compression),
			zap.Uint32("totalLength", sec.totalLength),
			zap.Uint32("uncompressedLength", sec.uncompressedLength),
		)

		if err := sec.Verify(); err != nil {
			s.stats.Sections = append(s.stats.Sections, st)
			return true, SectionError{Index: i, Offset: offset, Cause: err}
		}
		st.Verified = true

		if int64(sec.uncompressedLength) != int64(len(sec.payload)) {
			s.warn(SectionError{Index: i, Offset: offset, Cause: SizeMismatchError{
				Declared: sec.uncompressedLength,
				Actual:   uint32(len(sec.payload)),
			}})
		}

		n, err := fn(i, offset+sectionHeaderSize, sec.payload)
		st.Records = n
		s.stats.Sections = append(s.stats.Sections, st)
		if err != nil {
			return true, err
		}
	}
	return true, nil
}

// scanRecords calls fn with each record of a section payload. offset is the
// position of the payload within the file.
func (s *session) scanRecords(section int, offset int64, payload []byte, fn func(index int, start int64, rec Record) error) (n int, err error) {
	scanner := newRecordScanner(payload)
	for i := 0; ; i++ {
		start := offset + scanner.Offset()
		var rec Record
		if !scanner.Next(&rec) {
			if err := scanner.Err(); err != nil {
				return n, RecordError{
					Section: section,
					Index:   i,
					Tag:     rec.Type,
					Cause:   DataError{Offset: offset + scanner.Offset(), Cause: err},
				}
			}
			return n, nil
		}

		s.log.Debug("record",
			zap.Int("section", section),
			zap.Int("index", i),
			zap.Stringer("type", rec.Type),
			zap.Int("length", len(rec.Body)),
		)

		if err := fn(i, start, rec); err != nil {
			return n, err
		}
		n++
		s.stats.Records++
		s.stats.TypeCount[rec.Type.String()]++
	}
}

// decodeRecords decodes each record of a section payload into g.
func (s *session) decodeRecords(g *m3gfile.Graph, section int, offset int64, payload []byte) (n int, err error) {
	return s.scanRecords(section, offset, payload, func(i int, start int64, rec Record) error {
		obj, warns, err := s.dec.decodeRecord(rec, start+recordHeaderSize)
		for _, w := range warns {
			s.warn(RecordError{Section: section, Index: i, Tag: rec.Type, Cause: w})
		}
		if err != nil {
			return RecordError{Section: section, Index: i, Tag: rec.Type, Cause: err}
		}
		g.Append(obj)
		return nil
	})
}

// decodeRecord decodes the body of a single record. offset is the position of
// the body within the file. An unknown type produces an *m3gfile.Unknown
// along with an UnknownTypeError warning.
func (d Decoder) decodeRecord(rec Record, offset int64) (obj m3gfile.Object, warn errors.Errors, err error) {
	decode, ok := objectDecoders[rec.Type]
	if !ok {
		return &m3gfile.Unknown{Tag: rec.Type, Bytes: rec.Body}, errors.Errors{UnknownTypeError(rec.Type)}, nil
	}

	r := newReader(rec.Body, offset, d.StrictBools)
	obj, failed := decode(r)
	if failed {
		return nil, r.warns, DataError{Offset: offset + r.fr.N(), Cause: r.fr.Err()}
	}
	if n := r.remaining(); n > 0 {
		r.warn(TrailingBytesError(n))
	}
	return obj, r.warns, nil
}
