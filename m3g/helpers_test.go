package m3g

import (
	"bytes"
	"testing"

	"github.com/anaminus/parse"
	"github.com/jsr184/m3gfile"
)

// app concatenates values in little-endian order. Untyped integer constants
// must be converted to a sized type.
func app(bs ...interface{}) []byte {
	var buf bytes.Buffer
	fw := parse.NewBinaryWriter(&buf)
	for _, b := range bs {
		switch b := b.(type) {
		case string:
			fw.Bytes([]byte(b))
		case []byte:
			fw.Bytes(b)
		case bool:
			if b {
				fw.Number(uint8(1))
			} else {
				fw.Number(uint8(0))
			}
		case uint8:
			fw.Number(b)
		case uint16:
			fw.Number(b)
		case uint32:
			fw.Number(b)
		case int32:
			fw.Number(b)
		case float32:
			fw.Number(b)
		case []float32:
			for _, f := range b {
				fw.Number(f)
			}
		case []uint32:
			for _, u := range b {
				fw.Number(u)
			}
		default:
			panic("app: unsupported type")
		}
	}
	if _, err := fw.End(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// emptyObject3D is an Object3D prefix with no animation tracks or user
// parameters.
func emptyObject3D() []byte {
	return app(uint32(0), uint32(0), uint32(0))
}

// defaultNode is a Node prefix with no transforms or alignment.
func defaultNode() []byte {
	return app(emptyObject3D(), false, false, true, true, uint8(255), uint32(0xFFFFFFFF), false)
}

func defaultNodeValue() m3gfile.Node {
	return m3gfile.Node{
		RenderingEnabled: true,
		PickingEnabled:   true,
		Alpha:            255,
		Scope:            0xFFFFFFFF,
	}
}

func headerRecord() Record {
	return Record{
		Type: m3gfile.TypeHeader,
		Body: app(uint8(1), uint8(0), false, uint32(100), uint32(50), "tool\x00"),
	}
}

func encodeFile(t *testing.T, sections ...[]Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, sections...); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func decodeBytes(t *testing.T, dec Decoder, b []byte) (*m3gfile.Graph, error, error) {
	t.Helper()
	return dec.Decode(bytes.NewReader(b))
}
