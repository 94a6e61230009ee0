package m3gfile

// ObjectType is the type tag that precedes each record in a file.
type ObjectType byte

const (
	TypeHeader              ObjectType = 0
	TypeAnimationController ObjectType = 1
	TypeAnimationTrack      ObjectType = 2
	TypeAppearance          ObjectType = 3
	TypeBackground          ObjectType = 4
	TypeCamera              ObjectType = 5
	TypeCompositingMode     ObjectType = 6
	TypeFog                 ObjectType = 7
	TypePolygonMode         ObjectType = 8
	TypeGroup               ObjectType = 9
	TypeImage2D             ObjectType = 10
	TypeTriangleStripArray  ObjectType = 11
	TypeLight               ObjectType = 12
	TypeMaterial            ObjectType = 13
	TypeMesh                ObjectType = 14
	TypeMorphingMesh        ObjectType = 15
	TypeSkinnedMesh         ObjectType = 16
	TypeTexture2D           ObjectType = 17
	TypeSprite              ObjectType = 18
	TypeKeyframeSequence    ObjectType = 19
	TypeVertexArray         ObjectType = 20
	TypeVertexBuffer        ObjectType = 21
	TypeWorld               ObjectType = 22
	TypeExternalReference   ObjectType = 255
)

var typeStrings = map[ObjectType]string{
	TypeHeader:              "Header",
	TypeAnimationController: "AnimationController",
	TypeAnimationTrack:      "AnimationTrack",
	TypeAppearance:          "Appearance",
	TypeBackground:          "Background",
	TypeCamera:              "Camera",
	TypeCompositingMode:     "CompositingMode",
	TypeFog:                 "Fog",
	TypePolygonMode:         "PolygonMode",
	TypeGroup:               "Group",
	TypeImage2D:             "Image2D",
	TypeTriangleStripArray:  "TriangleStripArray",
	TypeLight:               "Light",
	TypeMaterial:            "Material",
	TypeMesh:                "Mesh",
	TypeMorphingMesh:        "MorphingMesh",
	TypeSkinnedMesh:         "SkinnedMesh",
	TypeTexture2D:           "Texture2D",
	TypeSprite:              "Sprite",
	TypeKeyframeSequence:    "KeyframeSequence",
	TypeVertexArray:         "VertexArray",
	TypeVertexBuffer:        "VertexBuffer",
	TypeWorld:               "World",
	TypeExternalReference:   "ExternalReference",
}

// String returns the name of the type. If the type is not valid, then the
// returned value will be "Invalid".
func (t ObjectType) String() string {
	s, ok := typeStrings[t]
	if !ok {
		return "Invalid"
	}
	return s
}

// Valid returns whether the type is a known record type.
func (t ObjectType) Valid() bool {
	_, ok := typeStrings[t]
	return ok
}

// TypeFromString returns the ObjectType with the given name. The second
// value is false if no type has the name.
func TypeFromString(s string) (ObjectType, bool) {
	for t, name := range typeStrings {
		if name == s {
			return t, true
		}
	}
	return 0, false
}
