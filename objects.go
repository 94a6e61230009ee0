package m3gfile

////////////////////////////////////////////////////////////////

// Object3D holds the fields shared by every object except Header and
// ExternalReference.
type Object3D struct {
	// UserID is the identifier assigned by the authoring tool. It is unrelated
	// to the position-based ID used for references, and may be 0.
	UserID uint32

	// AnimationTracks lists the IDs of AnimationTrack objects that animate
	// properties of the object.
	AnimationTracks []uint32

	// UserParameters maps a parameter ID to an opaque value. When a file
	// repeats an ID, the later value is kept.
	UserParameters map[uint32][]byte
}

// Base returns the shared fields of the object.
func (o *Object3D) Base() *Object3D {
	return o
}

// Based is implemented by every object that carries Object3D fields.
type Based interface {
	Object
	Base() *Object3D
}

// ComponentTransform is a transformation split into translation, scale and
// orientation.
type ComponentTransform struct {
	Translation      [3]float32
	Scale            [3]float32
	OrientationAngle float32
	OrientationAxis  [3]float32
}

// Transformable holds the transformation fields of Node and Texture2D.
type Transformable struct {
	Object3D

	// Component is nil when the file has no component transform.
	Component *ComponentTransform

	// Transform is a general 4x4 matrix, in stored order. It is nil when the
	// file has no general transform.
	Transform *[16]float32
}

// Alignment describes how a node is aligned relative to target nodes.
type Alignment struct {
	ZTarget    uint8
	YTarget    uint8
	ZReference uint32
	YReference uint32
}

// Node holds the fields shared by all scene graph nodes.
type Node struct {
	Transformable

	RenderingEnabled bool
	PickingEnabled   bool

	// Alpha is the alpha factor as stored, from 0 to 255.
	Alpha uint8

	Scope uint32

	// Alignment is nil when the node has no alignment.
	Alignment *Alignment
}

// AlphaFactor returns Alpha normalized to the range [0, 1].
func (n *Node) AlphaFactor() float32 {
	return float32(n.Alpha) / 255
}

////////////////////////////////////////////////////////////////

// Header contains metadata about the file. It is expected to be the first
// object.
type Header struct {
	VersionMajor           uint8
	VersionMinor           uint8
	HasExternalReferences  bool
	TotalFileSize          uint32
	ApproximateContentSize uint32
	AuthoringField         string
}

func (*Header) Type() ObjectType { return TypeHeader }

// ExternalReference names another file whose root object is included in place
// of this record.
type ExternalReference struct {
	URI string
}

func (*ExternalReference) Type() ObjectType { return TypeExternalReference }

// Unknown holds the body of a record whose type tag is not known. It keeps the
// place of the record so that the IDs of later objects are not shifted.
type Unknown struct {
	Tag   ObjectType
	Bytes []byte
}

func (u *Unknown) Type() ObjectType { return u.Tag }

////////////////////////////////////////////////////////////////

type AnimationController struct {
	Object3D
	Speed                 float32
	Weight                float32
	ActiveIntervalStart   uint32
	ActiveIntervalEnd     uint32
	ReferenceSequenceTime float32
	ReferenceWorldTime    uint32
}

func (*AnimationController) Type() ObjectType { return TypeAnimationController }

type AnimationTrack struct {
	Object3D
	KeyframeSequence    uint32
	AnimationController uint32
	PropertyID          uint32
}

func (*AnimationTrack) Type() ObjectType { return TypeAnimationTrack }

// Appearance groups the components that define how a Mesh or Sprite is
// rendered.
type Appearance struct {
	Object3D
	Layer           uint8
	CompositingMode uint32
	Fog             uint32
	PolygonMode     uint32
	Material        uint32
	Textures        []uint32
}

func (*Appearance) Type() ObjectType { return TypeAppearance }

type Background struct {
	Object3D
	Color             [4]float32
	Image             uint32
	ImageModeX        uint8
	ImageModeY        uint8
	CropX             uint32
	CropY             uint32
	CropWidth         uint32
	CropHeight        uint32
	DepthClearEnabled bool
	ColorClearEnabled bool
}

func (*Background) Type() ObjectType { return TypeBackground }

// Camera is a node that defines a projection. Projection is set when
// ProjectionType is ProjectionGeneric; otherwise the four parameters are set.
type Camera struct {
	Node
	ProjectionType uint8
	Projection     *[16]float32
	FieldOfView    float32
	AspectRatio    float32
	Near           float32
	Far            float32
}

func (*Camera) Type() ObjectType { return TypeCamera }

type CompositingMode struct {
	Object3D
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	ColorWriteEnabled bool
	AlphaWriteEnabled bool
	Blending          uint8
	AlphaThreshold    uint8
	DepthOffsetFactor float32
	DepthOffsetUnits  float32
}

func (*CompositingMode) Type() ObjectType { return TypeCompositingMode }

// Fog holds fogging attributes. Density is used by FogExponential, Near and
// Far by FogLinear.
type Fog struct {
	Object3D
	Color   [3]float32
	Mode    uint8
	Density float32
	Near    float32
	Far     float32
}

func (*Fog) Type() ObjectType { return TypeFog }

type PolygonMode struct {
	Object3D
	Culling                      uint8
	Shading                      uint8
	Winding                      uint8
	TwoSidedLightingEnabled      bool
	LocalCameraLightingEnabled   bool
	PerspectiveCorrectionEnabled bool
}

func (*PolygonMode) Type() ObjectType { return TypePolygonMode }

type Group struct {
	Node
	Children []uint32
}

func (*Group) Type() ObjectType { return TypeGroup }

// Image2D is a two-dimensional image. Mutable images carry no pixel data.
type Image2D struct {
	Object3D
	Format  uint8
	Mutable bool
	Width   uint32
	Height  uint32
	Palette []byte
	Pixels  []byte
}

func (*Image2D) Type() ObjectType { return TypeImage2D }

// TriangleStripArray is an index buffer made of triangle strips. Implicit
// encodings (0, 1 and 2) set StartIndex; explicit encodings (128, 129 and 130)
// set Indices.
type TriangleStripArray struct {
	Object3D
	Encoding     uint8
	StartIndex   uint32
	Indices      []uint32
	StripLengths []uint32
}

func (*TriangleStripArray) Type() ObjectType { return TypeTriangleStripArray }

type Light struct {
	Node
	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
	Color                [3]float32
	Intensity            float32
	SpotAngle            float32
	SpotExponent         float32
}

func (*Light) Type() ObjectType { return TypeLight }

type Material struct {
	Object3D
	AmbientColor               [3]uint8
	DiffuseColor               [4]uint8
	EmissiveColor              [3]uint8
	SpecularColor              [3]uint8
	Shininess                  float32
	VertexColorTrackingEnabled bool
}

func (*Material) Type() ObjectType { return TypeMaterial }

// Submesh pairs an index buffer with the appearance used to render it.
type Submesh struct {
	IndexBuffer uint32
	Appearance  uint32
}

type Mesh struct {
	Node
	VertexBuffer uint32
	Submeshes    []Submesh
}

func (*Mesh) Type() ObjectType { return TypeMesh }

type MorphTarget struct {
	Target        uint32
	InitialWeight float32
}

type MorphingMesh struct {
	Mesh
	Targets []MorphTarget
}

func (*MorphingMesh) Type() ObjectType { return TypeMorphingMesh }

type TransformReference struct {
	TransformNode uint32
	FirstVertex   uint32
	VertexCount   uint32
	Weight        int32
}

type SkinnedMesh struct {
	Mesh
	Skeleton   uint32
	References []TransformReference
}

func (*SkinnedMesh) Type() ObjectType { return TypeSkinnedMesh }

type Sprite struct {
	Node
	Image      uint32
	Appearance uint32
	Scaled     bool
	CropX      int32
	CropY      int32
	CropWidth  int32
	CropHeight int32
}

func (*Sprite) Type() ObjectType { return TypeSprite }

type Texture2D struct {
	Transformable
	Image       uint32
	BlendColor  [3]uint8
	Blending    uint8
	WrappingS   uint8
	WrappingT   uint8
	LevelFilter uint8
	ImageFilter uint8
}

func (*Texture2D) Type() ObjectType { return TypeTexture2D }

////////////////////////////////////////////////////////////////

// KeyframeSequence holds time-stamped vector values. For encoding 0, Values
// contains one vector per keyframe. For encodings 1 and 2, Quantized contains
// one vector per keyframe, to be reconstructed with Bias and Scale.
type KeyframeSequence struct {
	Object3D
	Interpolation   uint8
	RepeatMode      uint8
	Encoding        uint8
	Duration        float32
	ValidRangeFirst uint32
	ValidRangeLast  uint32
	ComponentCount  uint32
	KeyframeCount   uint32
	Times           []uint32
	Values          [][]float32
	Bias            []float32
	Scale           []float32
	Quantized       [][]uint16
}

func (*KeyframeSequence) Type() ObjectType { return TypeKeyframeSequence }

// Value returns the vector of keyframe i. Quantized vectors are reconstructed
// as bias + q/max*scale, where max is 255 for encoding 1 and 65535 for
// encoding 2. Returns nil if i is out of range.
func (k *KeyframeSequence) Value(i int) []float32 {
	switch k.Encoding {
	case 0:
		if i < 0 || i >= len(k.Values) {
			return nil
		}
		return k.Values[i]
	case 1, 2:
		if i < 0 || i >= len(k.Quantized) {
			return nil
		}
		div := float32(255)
		if k.Encoding == 2 {
			div = 65535
		}
		q := k.Quantized[i]
		v := make([]float32, len(q))
		for j := range q {
			var bias, scale float32
			if j < len(k.Bias) {
				bias = k.Bias[j]
			}
			if j < len(k.Scale) {
				scale = k.Scale[j]
			}
			v[j] = bias + float32(q[j])/div*scale
		}
		return v
	}
	return nil
}

// VertexArray holds per-vertex vectors. Arrays with a component size of 1 or 2
// store their vectors in Ints, and arrays with a component size of 4 store
// them in Floats. Delta-encoded arrays are stored already reconstructed.
type VertexArray struct {
	Object3D
	ComponentSize  uint8
	ComponentCount uint8
	Encoding       uint8
	VertexCount    uint16
	Ints           [][]int32
	Floats         [][]float32
}

func (*VertexArray) Type() ObjectType { return TypeVertexArray }

// TexCoords refers to a texture coordinate VertexArray along with its bias and
// scale.
type TexCoords struct {
	Array uint32
	Bias  [3]float32
	Scale float32
}

type VertexBuffer struct {
	Object3D
	DefaultColor  [4]uint8
	Positions     uint32
	PositionBias  [3]float32
	PositionScale float32
	Normals       uint32
	Colors        uint32
	TexCoords     []TexCoords
}

func (*VertexBuffer) Type() ObjectType { return TypeVertexBuffer }

// World is the top-level Group of a scene.
type World struct {
	Group
	ActiveCamera uint32
	Background   uint32
}

func (*World) Type() ObjectType { return TypeWorld }
