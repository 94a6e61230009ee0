package m3g

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/jsr184/m3gfile"
	"github.com/jsr184/m3gfile/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func groupRecord(children ...uint32) Record {
	return Record{
		Type: m3gfile.TypeGroup,
		Body: app(defaultNode(), uint32(len(children)), children),
	}
}

// findWarning returns the first warning whose cause matches target.
func findWarning(warn error, target interface{}) bool {
	for _, w := range errors.List(warn) {
		if errors.As(w, target) {
			return true
		}
	}
	return false
}

func TestDecodeMinimal(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord(), groupRecord()})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warn != nil {
		t.Fatalf("unexpected warnings: %v", warn)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", g.Len())
	}

	wantHeader := &m3gfile.Header{
		VersionMajor:           1,
		VersionMinor:           0,
		HasExternalReferences:  false,
		TotalFileSize:          100,
		ApproximateContentSize: 50,
		AuthoringField:         "tool",
	}
	if h := g.Header(); !reflect.DeepEqual(h, wantHeader) {
		t.Errorf("header: expected %+v, got %+v", wantHeader, h)
	}

	obj, err := g.Get(2)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	group, ok := obj.(*m3gfile.Group)
	if !ok {
		t.Fatalf("expected *Group, got %T", obj)
	}
	wantGroup := &m3gfile.Group{Node: defaultNodeValue(), Children: []uint32{}}
	if !reflect.DeepEqual(group, wantGroup) {
		t.Errorf("group: expected %+v, got %+v", wantGroup, group)
	}
	if group.Children == nil {
		t.Error("expected non-nil empty children")
	}
}

func TestDecodeEmpty(t *testing.T) {
	g, warn, err := decodeBytes(t, Decoder{}, []byte(Signature))
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	if g == nil || g.Len() != 0 {
		t.Fatalf("expected empty graph, got %v", g)
	}
}

func TestDecodeSignature(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord()})
	b[1] = 'X'
	g, _, err := decodeBytes(t, Decoder{}, b)
	if g != nil {
		t.Errorf("expected nil graph, got %v", g)
	}
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}

	g, _, err = decodeBytes(t, Decoder{}, []byte(Signature[:5]))
	if g != nil {
		t.Errorf("expected nil graph, got %v", g)
	}
	var data DataError
	if !errors.As(err, &data) {
		t.Errorf("expected DataError, got %v", err)
	}
}

func TestDecodeFog(t *testing.T) {
	color := []float32{0.25, 0.5, 0.75}

	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeFog, Body: app(emptyObject3D(), color, uint8(m3gfile.FogExponential), float32(0.5))},
		{Type: m3gfile.TypeFog, Body: app(emptyObject3D(), color, uint8(m3gfile.FogLinear), float32(1), float32(10))},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	exp, err := m3gfile.Resolve[*m3gfile.Fog](g, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := (&m3gfile.Fog{Color: [3]float32{0.25, 0.5, 0.75}, Mode: m3gfile.FogExponential, Density: 0.5}); !reflect.DeepEqual(exp, want) {
		t.Errorf("exponential fog: expected %+v, got %+v", want, exp)
	}
	lin, err := m3gfile.Resolve[*m3gfile.Fog](g, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := (&m3gfile.Fog{Color: [3]float32{0.25, 0.5, 0.75}, Mode: m3gfile.FogLinear, Near: 1, Far: 10}); !reflect.DeepEqual(lin, want) {
		t.Errorf("linear fog: expected %+v, got %+v", want, lin)
	}
}

func TestDecodeFogInvalidMode(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeFog, Body: app(emptyObject3D(), []float32{0, 0, 0}, uint8(200))},
		groupRecord(),
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 objects, got %d", g.Len())
	}
	var enum EnumError
	if !findWarning(warn, &enum) {
		t.Fatalf("expected EnumError warning, got %v", warn)
	}
	if enum.Value != 200 {
		t.Errorf("expected value 200, got %d", enum.Value)
	}
	var rec RecordError
	if !findWarning(warn, &rec) || rec.Index != 1 || rec.Tag != m3gfile.TypeFog {
		t.Errorf("unexpected record error %+v", rec)
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	b := encodeFile(t,
		[]Record{headerRecord(), groupRecord()},
		[]Record{groupRecord(2)},
	)
	for i := len(b) - 4; i < len(b); i++ {
		b[i] = ^b[i]
	}

	g, _, err := decodeBytes(t, Decoder{}, b)
	if g == nil || g.Len() != 2 {
		t.Fatalf("expected objects from the first section, got %v", g)
	}
	var sec SectionError
	if !errors.As(err, &sec) {
		t.Fatalf("expected SectionError, got %v", err)
	}
	if sec.Index != 1 {
		t.Errorf("expected section 1, got %d", sec.Index)
	}
	var sum ChecksumError
	if !errors.As(err, &sum) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if sum.Stored == sum.Computed {
		t.Errorf("expected differing checksums, got %+v", sum)
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord()})
	// First byte of the header record body.
	b[len(Signature)+sectionHeaderSize+recordHeaderSize] ^= 0xFF

	_, _, err := decodeBytes(t, Decoder{}, b)
	var sum ChecksumError
	if !errors.As(err, &sum) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
}

func TestDecodeTriangleStripArray(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(129), uint32(3), []byte{2, 5, 9}, uint32(1), uint32(3))},
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(130), uint32(2), uint16(300), uint16(7), uint32(0))},
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(1), uint8(4), uint32(2), uint32(3), uint32(4))},
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(2), uint16(1000), uint32(0))},
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(0), uint32(70000), uint32(1), uint32(3))},
		{Type: m3gfile.TypeTriangleStripArray, Body: app(emptyObject3D(), uint8(128), uint32(1), uint32(70000), uint32(1), uint32(3))},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}

	want := []*m3gfile.TriangleStripArray{
		{Encoding: 129, StartIndex: 0, Indices: []uint32{2, 5, 9}, StripLengths: []uint32{3}},
		{Encoding: 130, Indices: []uint32{300, 7}, StripLengths: []uint32{}},
		{Encoding: 1, StartIndex: 4, StripLengths: []uint32{3, 4}},
		{Encoding: 2, StartIndex: 1000, StripLengths: []uint32{}},
		{Encoding: 0, StartIndex: 70000, StripLengths: []uint32{3}},
		{Encoding: 128, Indices: []uint32{70000}, StripLengths: []uint32{3}},
	}
	for i, w := range want {
		id := uint32(i + 2)
		got, err := m3gfile.Resolve[*m3gfile.TriangleStripArray](g, id)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, w) {
			t.Errorf("object %d: expected %+v, got %+v", id, w, got)
		}
	}
}

func TestDecodeVertexArrayDelta(t *testing.T) {
	abs16 := [][]int32{{1, 2, 3}, {4, -5, 6}, {10, 10, 10}}
	abs8 := [][]int32{{-1, 5}, {0, 7}}

	var deltas16 []interface{}
	prev := []int32{0, 0, 0}
	for _, v := range abs16 {
		for j := range v {
			deltas16 = append(deltas16, uint16(int16(v[j]-prev[j])))
		}
		prev = v
	}
	var deltas8 []interface{}
	prev = []int32{0, 0}
	for _, v := range abs8 {
		for j := range v {
			deltas8 = append(deltas8, uint8(int8(v[j]-prev[j])))
		}
		prev = v
	}

	body16 := app(append([]interface{}{emptyObject3D(), uint8(2), uint8(3), uint8(1), uint16(len(abs16))}, deltas16...)...)
	body8 := app(append([]interface{}{emptyObject3D(), uint8(1), uint8(2), uint8(1), uint16(len(abs8))}, deltas8...)...)
	bodyF := app(emptyObject3D(), uint8(4), uint8(2), uint8(1), uint16(2), float32(1), float32(2), float32(0.5), float32(-1))

	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeVertexArray, Body: body16},
		{Type: m3gfile.TypeVertexArray, Body: body8},
		{Type: m3gfile.TypeVertexArray, Body: bodyF},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}

	a16, err := m3gfile.Resolve[*m3gfile.VertexArray](g, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a16.Ints, abs16) {
		t.Errorf("16-bit: expected %v, got %v", abs16, a16.Ints)
	}
	a8, err := m3gfile.Resolve[*m3gfile.VertexArray](g, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a8.Ints, abs8) {
		t.Errorf("8-bit: expected %v, got %v", abs8, a8.Ints)
	}
	aF, err := m3gfile.Resolve[*m3gfile.VertexArray](g, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]float32{{1, 2}, {1.5, 1}}; !reflect.DeepEqual(aF.Floats, want) {
		t.Errorf("float: expected %v, got %v", want, aF.Floats)
	}
}

func TestDecodeVertexArrayRaw(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeVertexArray, Body: app(emptyObject3D(), uint8(1), uint8(2), uint8(0), uint16(2), uint8(0xFF), uint8(2), uint8(3), uint8(0x80))},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	a, err := m3gfile.Resolve[*m3gfile.VertexArray](g, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]int32{{-1, 2}, {3, -128}}; !reflect.DeepEqual(a.Ints, want) {
		t.Errorf("expected %v, got %v", want, a.Ints)
	}
}

func TestDecodeKeyframeSequence(t *testing.T) {
	prefix := func(encoding uint8) []byte {
		return app(emptyObject3D(), uint8(m3gfile.InterpolateLinear), uint8(m3gfile.RepeatLoop), encoding,
			float32(2000), uint32(0), uint32(1), uint32(2), uint32(2))
	}
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeKeyframeSequence, Body: app(prefix(0),
			uint32(0), float32(1), float32(2),
			uint32(1000), float32(3), float32(4))},
		{Type: m3gfile.TypeKeyframeSequence, Body: app(prefix(1),
			[]float32{0, 1}, []float32{1, 2},
			uint32(0), uint8(0), uint8(255),
			uint32(1000), uint8(51), uint8(0))},
		{Type: m3gfile.TypeKeyframeSequence, Body: app(prefix(2),
			[]float32{0, 0}, []float32{1, 1},
			uint32(0), uint16(0), uint16(65535),
			uint32(1000), uint16(65535), uint16(0))},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}

	raw, _ := m3gfile.Resolve[*m3gfile.KeyframeSequence](g, 2)
	if want := [][]float32{{1, 2}, {3, 4}}; !reflect.DeepEqual(raw.Values, want) {
		t.Errorf("raw values: expected %v, got %v", want, raw.Values)
	}
	if want := []uint32{0, 1000}; !reflect.DeepEqual(raw.Times, want) {
		t.Errorf("times: expected %v, got %v", want, raw.Times)
	}
	if raw.Duration != 2000 || raw.ValidRangeLast != 1 {
		t.Errorf("unexpected header fields %+v", raw)
	}

	q8, _ := m3gfile.Resolve[*m3gfile.KeyframeSequence](g, 3)
	if want := [][]uint16{{0, 255}, {51, 0}}; !reflect.DeepEqual(q8.Quantized, want) {
		t.Errorf("8-bit quantized: expected %v, got %v", want, q8.Quantized)
	}
	if want := []float32{0, 3}; !reflect.DeepEqual(q8.Value(0), want) {
		t.Errorf("8-bit value 0: expected %v, got %v", want, q8.Value(0))
	}
	if want := []float32{0.2, 1}; !reflect.DeepEqual(q8.Value(1), want) {
		t.Errorf("8-bit value 1: expected %v, got %v", want, q8.Value(1))
	}

	q16, _ := m3gfile.Resolve[*m3gfile.KeyframeSequence](g, 4)
	if want := []float32{1, 0}; !reflect.DeepEqual(q16.Value(1), want) {
		t.Errorf("16-bit value 1: expected %v, got %v", want, q16.Value(1))
	}
	if q16.Value(2) != nil {
		t.Error("expected nil for out of range keyframe")
	}
}

func TestDecodeCamera(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeCamera, Body: app(defaultNode(), uint8(m3gfile.ProjectionGeneric), m)},
		{Type: m3gfile.TypeCamera, Body: app(defaultNode(), uint8(m3gfile.ProjectionPerspective), []float32{60, 1.5, 0.1, 100})},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}

	gen, _ := m3gfile.Resolve[*m3gfile.Camera](g, 2)
	if gen.Projection == nil || gen.Projection[15] != 15 {
		t.Errorf("expected generic projection matrix, got %v", gen.Projection)
	}
	per, _ := m3gfile.Resolve[*m3gfile.Camera](g, 3)
	want := &m3gfile.Camera{
		Node:           defaultNodeValue(),
		ProjectionType: m3gfile.ProjectionPerspective,
		FieldOfView:    60,
		AspectRatio:    1.5,
		Near:           0.1,
		Far:            100,
	}
	if !reflect.DeepEqual(per, want) {
		t.Errorf("perspective: expected %+v, got %+v", want, per)
	}
}

func TestDecodeImage2D(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeImage2D, Body: app(emptyObject3D(), uint8(m3gfile.FormatRGB), true, uint32(4), uint32(4))},
		{Type: m3gfile.TypeImage2D, Body: app(emptyObject3D(), uint8(m3gfile.FormatLuminance), false, uint32(2), uint32(1), uint32(0), uint32(2), []byte{7, 8})},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	mut, _ := m3gfile.Resolve[*m3gfile.Image2D](g, 2)
	if !mut.Mutable || mut.Pixels != nil || mut.Palette != nil {
		t.Errorf("unexpected mutable image %+v", mut)
	}
	img, _ := m3gfile.Resolve[*m3gfile.Image2D](g, 3)
	want := &m3gfile.Image2D{Format: m3gfile.FormatLuminance, Width: 2, Height: 1, Palette: []byte{}, Pixels: []byte{7, 8}}
	if !reflect.DeepEqual(img, want) {
		t.Errorf("expected %+v, got %+v", want, img)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: 99, Body: []byte{1, 2, 3}},
		groupRecord(),
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 objects, got %d", g.Len())
	}
	obj, _ := g.Get(2)
	if want := (&m3gfile.Unknown{Tag: 99, Bytes: []byte{1, 2, 3}}); !reflect.DeepEqual(obj, want) {
		t.Errorf("expected %+v, got %+v", want, obj)
	}
	var unk UnknownTypeError
	if !findWarning(warn, &unk) || unk != 99 {
		t.Errorf("expected UnknownTypeError(99), got %v", warn)
	}
	if _, err := m3gfile.Resolve[*m3gfile.Group](g, 3); err != nil {
		t.Errorf("expected group after unknown record: %v", err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeFog, Body: app(emptyObject3D(), []float32{0, 0, 0}, uint8(m3gfile.FogExponential), float32(1), uint16(0))},
	})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", g.Len())
	}
	var trail TrailingBytesError
	if !findWarning(warn, &trail) || trail != 2 {
		t.Errorf("expected TrailingBytesError(2), got %v", warn)
	}
}

func TestDecodeShortRecord(t *testing.T) {
	group := groupRecord(5, 6)
	group.Body = group.Body[:len(group.Body)-2]
	b := encodeFile(t, []Record{headerRecord(), group})

	g, _, err := decodeBytes(t, Decoder{}, b)
	if g.Len() != 1 {
		t.Fatalf("expected only the header, got %d objects", g.Len())
	}
	var rec RecordError
	if !errors.As(err, &rec) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if rec.Index != 1 || rec.Tag != m3gfile.TypeGroup {
		t.Errorf("unexpected record error %+v", rec)
	}
	var data DataError
	if !errors.As(err, &data) {
		t.Errorf("expected DataError, got %v", err)
	}
}

func TestDecodeAbsurdCount(t *testing.T) {
	b := encodeFile(t, []Record{
		headerRecord(),
		{Type: m3gfile.TypeGroup, Body: app(defaultNode(), uint32(0xFFFFFFFF))},
	})
	g, _, err := decodeBytes(t, Decoder{}, b)
	if g.Len() != 1 {
		t.Fatalf("expected only the header, got %d objects", g.Len())
	}
	var length LengthError
	if !errors.As(err, &length) {
		t.Fatalf("expected LengthError, got %v", err)
	}
	if length.Field != "child count" || length.Remaining != 0 {
		t.Errorf("unexpected length error %+v", length)
	}
}

func TestDecodeRecordLength(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord()})
	// Record length of the header record.
	off := len(Signature) + sectionHeaderSize + 1
	b[off+3] = 0x7F
	// Rewrite the checksum so that the section verifies.
	payload := b[len(Signature)+sectionHeaderSize : len(b)-checksumSize]
	sum := Checksum(b[len(Signature):len(Signature)+sectionHeaderSize], payload)
	copy(b[len(b)-checksumSize:], app(sum))

	_, _, err := decodeBytes(t, Decoder{}, b)
	var length LengthError
	if !errors.As(err, &length) {
		t.Fatalf("expected LengthError, got %v", err)
	}
}

func TestDecodeCompressedSection(t *testing.T) {
	b := app(Signature, uint8(CompressionZlib), uint32(sectionOverhead), uint32(0), uint32(0))
	g, _, err := decodeBytes(t, Decoder{}, b)
	if g == nil || g.Len() != 0 {
		t.Fatalf("expected empty graph, got %v", g)
	}
	if !errors.Is(err, ErrCompressedSection) {
		t.Errorf("expected ErrCompressedSection, got %v", err)
	}
	var sec SectionError
	if !errors.As(err, &sec) || sec.Index != 0 {
		t.Errorf("expected SectionError for section 0, got %v", err)
	}
}

func TestDecodeSectionLimit(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord(), groupRecord()})
	_, _, err := decodeBytes(t, Decoder{MaxSectionSize: 20}, b)
	if !errors.Is(err, ErrSectionLength) {
		t.Errorf("expected ErrSectionLength, got %v", err)
	}

	b = app(Signature, uint8(0), uint32(4), uint32(0), uint32(0))
	_, _, err = decodeBytes(t, Decoder{}, b)
	if !errors.Is(err, ErrSectionLength) {
		t.Errorf("expected ErrSectionLength, got %v", err)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	hdr := headerRecord()
	payload := app(uint8(hdr.Type), uint32(len(hdr.Body)), hdr.Body)
	header := app(uint8(0), uint32(len(payload)+sectionOverhead), uint32(len(payload)+1))
	b := app(Signature, header, payload, Checksum(header, payload))

	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", g.Len())
	}
	var mismatch SizeMismatchError
	if !findWarning(warn, &mismatch) {
		t.Fatalf("expected SizeMismatchError, got %v", warn)
	}
	if mismatch.Declared != mismatch.Actual+1 {
		t.Errorf("unexpected mismatch %+v", mismatch)
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	b := encodeFile(t, []Record{groupRecord()})
	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", g.Len())
	}
	if !errors.Is(errors.List(warn)[0], ErrMissingHeader) {
		t.Errorf("expected ErrMissingHeader, got %v", warn)
	}
}

func TestDecodeBools(t *testing.T) {
	b := encodeFile(t, []Record{{
		Type: m3gfile.TypeHeader,
		Body: app(uint8(1), uint8(0), uint8(2), uint32(0), uint32(0)),
	}})

	g, warn, err := decodeBytes(t, Decoder{}, b)
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	if !g.Header().HasExternalReferences {
		t.Error("expected nonzero byte to decode as true")
	}

	g, warn, err = decodeBytes(t, Decoder{StrictBools: true}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Header().HasExternalReferences {
		t.Error("expected strict decoding of 2 to be false")
	}
	var boolErr BoolError
	if !findWarning(warn, &boolErr) {
		t.Fatalf("expected BoolError, got %v", warn)
	}
	if want := int64(len(Signature) + sectionHeaderSize + recordHeaderSize + 2); boolErr.Offset != want || boolErr.Value != 2 {
		t.Errorf("expected BoolError at %d with value 2, got %+v", want, boolErr)
	}
}

func TestDecodeStats(t *testing.T) {
	b := encodeFile(t,
		[]Record{headerRecord(), groupRecord()},
		[]Record{groupRecord(2), {Type: 99}},
	)
	var stats DecoderStats
	_, _, err := decodeBytes(t, Decoder{Stats: &stats}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(stats.Sections))
	}
	if s := stats.Sections[0]; s.Offset != int64(len(Signature)) || !s.Verified || s.Records != 2 {
		t.Errorf("unexpected first section %+v", s)
	}
	if s := stats.Sections[1]; s.Offset != int64(len(Signature))+int64(stats.Sections[0].TotalLength) || s.Records != 2 {
		t.Errorf("unexpected second section %+v", s)
	}
	if stats.Records != 4 {
		t.Errorf("expected 4 records, got %d", stats.Records)
	}
	want := map[string]int{"Header": 1, "Group": 2, "Invalid": 1}
	if !reflect.DeepEqual(stats.TypeCount, want) {
		t.Errorf("expected type count %v, got %v", want, stats.TypeCount)
	}
	if stats.Warnings != 1 {
		t.Errorf("expected 1 warning, got %d", stats.Warnings)
	}
}

func TestDecodeLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := encodeFile(t, []Record{headerRecord(), {Type: 99}})
	if _, _, err := decodeBytes(t, Decoder{Logger: zap.New(core)}, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := logs.FilterMessage("section").Len(); n != 1 {
		t.Errorf("expected 1 section message, got %d", n)
	}
	if n := logs.FilterMessage("record").Len(); n != 2 {
		t.Errorf("expected 2 record messages, got %d", n)
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warns))
	}
	if warns[0].Message != "decode warning" {
		t.Errorf("unexpected warning message %q", warns[0].Message)
	}
}

func TestDecodeNilReader(t *testing.T) {
	if _, _, err := (Decoder{}).Decode(nil); err == nil {
		t.Error("expected error for nil reader")
	}
}

func TestEncodeLayout(t *testing.T) {
	b := encodeFile(t, []Record{{Type: m3gfile.TypeExternalReference, Body: []byte("a.m3g")}})
	body := app(uint8(255), uint32(5), "a.m3g")
	header := app(uint8(0), uint32(len(body)+13), uint32(len(body)))
	want := app(Signature, header, body, Checksum(header, body))
	if !bytes.Equal(b, want) {
		t.Errorf("expected %x, got %x", want, b)
	}
}

func TestSections(t *testing.T) {
	want := [][]Record{
		{headerRecord(), groupRecord()},
		{{Type: 99, Body: []byte{1}}, groupRecord(3)},
	}
	b := encodeFile(t, want...)

	var stats DecoderStats
	got, warn, err := (Decoder{Stats: &stats}).Sections(bytes.NewReader(b))
	if err != nil || warn != nil {
		t.Fatalf("unexpected errors: %v, %v", warn, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if stats.Records != 4 || len(stats.Sections) != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	// Sections encoded again are identical to the input.
	if re := encodeFile(t, got...); !bytes.Equal(re, b) {
		t.Errorf("expected re-encoded file to match")
	}
}

func TestSectionsChecksumMismatch(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord()}, []Record{groupRecord()})
	b[len(b)-1] ^= 1
	got, _, err := (Decoder{}).Sections(bytes.NewReader(b))
	var sum ChecksumError
	if !errors.As(err, &sum) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 verified section, got %d", len(got))
	}
}

func TestSectionsBadRecord(t *testing.T) {
	b := encodeFile(t, []Record{headerRecord()}, []Record{groupRecord(), {Type: 99, Body: []byte{1}}})
	// Record length of the last record, which overruns the section.
	off := len(b) - checksumSize - 1 - 4
	copy(b[off:], app(uint32(2)))
	// Rewrite the checksum of the second section so that it verifies.
	start := len(encodeFile(t, []Record{headerRecord()}))
	end := len(b) - checksumSize
	sum := Checksum(b[start:start+sectionHeaderSize], b[start+sectionHeaderSize:end])
	copy(b[end:], app(sum))

	got, _, err := (Decoder{}).Sections(bytes.NewReader(b))
	if err == nil {
		t.Fatal("expected error for overrunning record")
	}
	if !reflect.DeepEqual(got, [][]Record{{headerRecord()}}) {
		t.Errorf("expected only the first section, got %v", got)
	}
}

func TestDecodeKeyframeCountOverflow(t *testing.T) {
	tests := []struct {
		components uint32
		keyframes  uint32
		field      string
	}{
		// The total size of the keyframes wraps to zero in 64 bits.
		{0xFFFFFFFF, 1 << 30, "keyframe components"},
		{1, 1 << 30, "keyframes"},
		{0xFFFFFFFF, 0xFFFFFFFF, "keyframe components"},
	}
	for _, tt := range tests {
		body := app(emptyObject3D(), uint8(m3gfile.InterpolateLinear), uint8(m3gfile.RepeatConstant), uint8(0),
			float32(1000), uint32(0), uint32(0), tt.components, tt.keyframes, uint32(0), float32(1))
		b := encodeFile(t, []Record{headerRecord(), {Type: m3gfile.TypeKeyframeSequence, Body: body}})

		g, _, err := decodeBytes(t, Decoder{}, b)
		if g.Len() != 1 {
			t.Errorf("%dx%d: expected only the header, got %d objects", tt.components, tt.keyframes, g.Len())
		}
		var length LengthError
		if !errors.As(err, &length) {
			t.Errorf("%dx%d: expected LengthError, got %v", tt.components, tt.keyframes, err)
			continue
		}
		if length.Field != tt.field || length.Remaining != 8 || length.Length <= length.Remaining {
			t.Errorf("%dx%d: unexpected length error %+v", tt.components, tt.keyframes, length)
		}
	}
}

func TestReaderFitsEach(t *testing.T) {
	r := newReader(make([]byte, 8), 0, false)
	if r.fitsEach("ok", 2, 4) {
		t.Fatalf("expected 2 4-byte elements to fit: %v", r.fr.Err())
	}
	if !r.fitsEach("huge", 1<<62, 1<<10) {
		t.Fatal("expected overflowing total to be rejected")
	}
	var length LengthError
	if !errors.As(r.fr.Err(), &length) {
		t.Fatalf("expected LengthError, got %v", r.fr.Err())
	}
	if length.Length != math.MaxInt64 || length.Remaining != 8 {
		t.Errorf("unexpected length error %+v", length)
	}
}
