package m3g

import (
	"bytes"
	"io"
	"sort"

	"github.com/anaminus/parse"
	"github.com/jsr184/m3gfile"
	"github.com/jsr184/m3gfile/errors"
)

// Encoder writes records into the M3G container format. Records are written
// as given; Encoder does not encode objects.
type Encoder struct{}

// Encode writes the signature to w, followed by one uncompressed section for
// each element of sections.
func (e Encoder) Encode(w io.Writer, sections ...[]Record) error {
	if w == nil {
		return errors.New("nil writer")
	}

	fw := parse.NewBinaryWriter(w)
	if fw.Bytes([]byte(Signature)) {
		_, err := fw.End()
		return err
	}
	for _, records := range sections {
		if writeSection(fw, records) {
			break
		}
	}
	_, err := fw.End()
	return err
}

func writeSection(fw *parse.BinaryWriter, records []Record) bool {
	var payload bytes.Buffer
	pw := parse.NewBinaryWriter(&payload)
	for _, rec := range records {
		if pw.Number(uint8(rec.Type)) {
			break
		}
		if pw.Number(uint32(len(rec.Body))) {
			break
		}
		if pw.Bytes(rec.Body) {
			break
		}
	}
	if _, err := pw.End(); err != nil {
		return fw.Add(0, err)
	}

	var header bytes.Buffer
	hw := parse.NewBinaryWriter(&header)
	hw.Number(uint8(CompressionNone))
	hw.Number(uint32(payload.Len() + sectionOverhead))
	hw.Number(uint32(payload.Len()))
	if _, err := hw.End(); err != nil {
		return fw.Add(0, err)
	}

	if fw.Bytes(header.Bytes()) {
		return true
	}
	if fw.Bytes(payload.Bytes()) {
		return true
	}
	return fw.Number(Checksum(header.Bytes(), payload.Bytes()))
}

////////////////////////////////////////////////////////////////

// writer writes the fields of a record body. Every method returns true if
// writing failed.
type writer struct {
	fw *parse.BinaryWriter
}

func (w writer) u8(v uint8) bool    { return w.fw.Number(v) }
func (w writer) u16(v uint16) bool  { return w.fw.Number(v) }
func (w writer) u32(v uint32) bool  { return w.fw.Number(v) }
func (w writer) i32(v int32) bool   { return w.fw.Number(v) }
func (w writer) f32(v float32) bool { return w.fw.Number(v) }

func (w writer) bool(v bool) bool {
	if v {
		return w.u8(1)
	}
	return w.u8(0)
}

func (w writer) f32s(v []float32) bool {
	for _, f := range v {
		if w.f32(f) {
			return true
		}
	}
	return false
}

func (w writer) object3D(o *m3gfile.Object3D) bool {
	if w.u32(o.UserID) {
		return true
	}
	if w.u32(uint32(len(o.AnimationTracks))) {
		return true
	}
	for _, id := range o.AnimationTracks {
		if w.u32(id) {
			return true
		}
	}

	ids := make([]uint32, 0, len(o.UserParameters))
	for id := range o.UserParameters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if w.u32(uint32(len(ids))) {
		return true
	}
	for _, id := range ids {
		value := o.UserParameters[id]
		if w.u32(id) {
			return true
		}
		if w.u32(uint32(len(value))) {
			return true
		}
		if w.fw.Bytes(value) {
			return true
		}
	}
	return false
}

func (w writer) transformable(t *m3gfile.Transformable) bool {
	if w.object3D(&t.Object3D) {
		return true
	}
	if w.bool(t.Component != nil) {
		return true
	}
	if c := t.Component; c != nil {
		if w.f32s(c.Translation[:]) {
			return true
		}
		if w.f32s(c.Scale[:]) {
			return true
		}
		if w.f32(c.OrientationAngle) {
			return true
		}
		if w.f32s(c.OrientationAxis[:]) {
			return true
		}
	}
	if w.bool(t.Transform != nil) {
		return true
	}
	if t.Transform != nil {
		return w.f32s(t.Transform[:])
	}
	return false
}

func (w writer) node(n *m3gfile.Node) bool {
	if w.transformable(&n.Transformable) {
		return true
	}
	if w.bool(n.RenderingEnabled) {
		return true
	}
	if w.bool(n.PickingEnabled) {
		return true
	}
	if w.u8(n.Alpha) {
		return true
	}
	if w.u32(n.Scope) {
		return true
	}
	if w.bool(n.Alignment != nil) {
		return true
	}
	if a := n.Alignment; a != nil {
		if w.u8(a.ZTarget) {
			return true
		}
		if w.u8(a.YTarget) {
			return true
		}
		if w.u32(a.ZReference) {
			return true
		}
		return w.u32(a.YReference)
	}
	return false
}

// WriteObject3D writes the fields shared by all objects to w. User parameters
// are written in ascending order of their IDs.
func WriteObject3D(w io.Writer, o *m3gfile.Object3D) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	writer{fw}.object3D(o)
	return fw.End()
}

// WriteTransformable writes the fields of a Transformable to w, starting with
// its Object3D fields.
func WriteTransformable(w io.Writer, t *m3gfile.Transformable) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	writer{fw}.transformable(t)
	return fw.End()
}

// WriteNode writes the fields of a Node to w, starting with its Transformable
// fields.
func WriteNode(w io.Writer, nd *m3gfile.Node) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)
	writer{fw}.node(nd)
	return fw.End()
}
