package m3g

import (
	"github.com/jsr184/m3gfile"
)

////////////////////////////////////////////////////////////////

// objectDecoder decodes a record body into an object. The returned object is
// non-nil even when failed is true, and holds the fields read so far.
type objectDecoder func(r *reader) (obj m3gfile.Object, failed bool)

// objectDecoders maps each known type tag to its decoder.
var objectDecoders = map[m3gfile.ObjectType]objectDecoder{
	m3gfile.TypeHeader:              decodeHeader,
	m3gfile.TypeAnimationController: decodeAnimationController,
	m3gfile.TypeAnimationTrack:      decodeAnimationTrack,
	m3gfile.TypeAppearance:          decodeAppearance,
	m3gfile.TypeBackground:          decodeBackground,
	m3gfile.TypeCamera:              decodeCamera,
	m3gfile.TypeCompositingMode:     decodeCompositingMode,
	m3gfile.TypeFog:                 decodeFog,
	m3gfile.TypePolygonMode:         decodePolygonMode,
	m3gfile.TypeGroup:               decodeGroup,
	m3gfile.TypeImage2D:             decodeImage2D,
	m3gfile.TypeTriangleStripArray:  decodeTriangleStripArray,
	m3gfile.TypeLight:               decodeLight,
	m3gfile.TypeMaterial:            decodeMaterial,
	m3gfile.TypeMesh:                decodeMesh,
	m3gfile.TypeMorphingMesh:        decodeMorphingMesh,
	m3gfile.TypeSkinnedMesh:         decodeSkinnedMesh,
	m3gfile.TypeTexture2D:           decodeTexture2D,
	m3gfile.TypeSprite:              decodeSprite,
	m3gfile.TypeKeyframeSequence:    decodeKeyframeSequence,
	m3gfile.TypeVertexArray:         decodeVertexArray,
	m3gfile.TypeVertexBuffer:        decodeVertexBuffer,
	m3gfile.TypeWorld:               decodeWorld,
	m3gfile.TypeExternalReference:   decodeExternalReference,
}

////////////////////////////////////////////////////////////////

func (r *reader) object3D(o *m3gfile.Object3D) bool {
	if r.u32(&o.UserID) {
		return true
	}

	var trackCount uint32
	if r.count("animation track count", &trackCount, zu32) {
		return true
	}
	if trackCount > 0 {
		o.AnimationTracks = make([]uint32, trackCount)
		if r.u32s(o.AnimationTracks) {
			return true
		}
	}

	var paramCount uint32
	if r.count("user parameter count", &paramCount, 2*zu32) {
		return true
	}
	if paramCount > 0 {
		o.UserParameters = make(map[uint32][]byte, paramCount)
	}
	for i := uint32(0); i < paramCount; i++ {
		var id, size uint32
		if r.u32(&id) {
			return true
		}
		if r.count("user parameter size", &size, zu8) {
			return true
		}
		value := make([]byte, size)
		if r.u8s(value) {
			return true
		}
		o.UserParameters[id] = value
	}

	return false
}

func (r *reader) transformable(t *m3gfile.Transformable) bool {
	if r.object3D(&t.Object3D) {
		return true
	}

	var hasComponent bool
	if r.bool(&hasComponent) {
		return true
	}
	if hasComponent {
		c := new(m3gfile.ComponentTransform)
		if r.f32s(c.Translation[:]) {
			return true
		}
		if r.f32s(c.Scale[:]) {
			return true
		}
		if r.f32(&c.OrientationAngle) {
			return true
		}
		if r.f32s(c.OrientationAxis[:]) {
			return true
		}
		t.Component = c
	}

	var hasGeneral bool
	if r.bool(&hasGeneral) {
		return true
	}
	if hasGeneral {
		m := new([16]float32)
		if r.f32s(m[:]) {
			return true
		}
		t.Transform = m
	}

	return false
}

func (r *reader) node(n *m3gfile.Node) bool {
	if r.transformable(&n.Transformable) {
		return true
	}
	if r.bool(&n.RenderingEnabled) {
		return true
	}
	if r.bool(&n.PickingEnabled) {
		return true
	}
	if r.u8(&n.Alpha) {
		return true
	}
	if r.u32(&n.Scope) {
		return true
	}

	var hasAlignment bool
	if r.bool(&hasAlignment) {
		return true
	}
	if hasAlignment {
		a := new(m3gfile.Alignment)
		if r.u8(&a.ZTarget) {
			return true
		}
		if r.u8(&a.YTarget) {
			return true
		}
		if r.u32(&a.ZReference) {
			return true
		}
		if r.u32(&a.YReference) {
			return true
		}
		n.Alignment = a
	}

	return false
}

////////////////////////////////////////////////////////////////

func decodeHeader(r *reader) (m3gfile.Object, bool) {
	h := new(m3gfile.Header)
	if r.u8(&h.VersionMajor) {
		return h, true
	}
	if r.u8(&h.VersionMinor) {
		return h, true
	}
	if r.bool(&h.HasExternalReferences) {
		return h, true
	}
	if r.u32(&h.TotalFileSize) {
		return h, true
	}
	if r.u32(&h.ApproximateContentSize) {
		return h, true
	}
	return h, r.str(&h.AuthoringField)
}

func decodeExternalReference(r *reader) (m3gfile.Object, bool) {
	e := new(m3gfile.ExternalReference)
	return e, r.str(&e.URI)
}

func decodeAnimationController(r *reader) (m3gfile.Object, bool) {
	c := new(m3gfile.AnimationController)
	if r.object3D(&c.Object3D) {
		return c, true
	}
	if r.f32(&c.Speed) {
		return c, true
	}
	if r.f32(&c.Weight) {
		return c, true
	}
	if r.u32(&c.ActiveIntervalStart) {
		return c, true
	}
	if r.u32(&c.ActiveIntervalEnd) {
		return c, true
	}
	if r.f32(&c.ReferenceSequenceTime) {
		return c, true
	}
	return c, r.u32(&c.ReferenceWorldTime)
}

func decodeAnimationTrack(r *reader) (m3gfile.Object, bool) {
	t := new(m3gfile.AnimationTrack)
	if r.object3D(&t.Object3D) {
		return t, true
	}
	if r.u32(&t.KeyframeSequence) {
		return t, true
	}
	if r.u32(&t.AnimationController) {
		return t, true
	}
	return t, r.u32(&t.PropertyID)
}

func decodeAppearance(r *reader) (m3gfile.Object, bool) {
	a := new(m3gfile.Appearance)
	if r.object3D(&a.Object3D) {
		return a, true
	}
	if r.u8(&a.Layer) {
		return a, true
	}
	if r.u32(&a.CompositingMode) {
		return a, true
	}
	if r.u32(&a.Fog) {
		return a, true
	}
	if r.u32(&a.PolygonMode) {
		return a, true
	}
	if r.u32(&a.Material) {
		return a, true
	}
	var n uint32
	if r.count("texture count", &n, zu32) {
		return a, true
	}
	a.Textures = make([]uint32, n)
	return a, r.u32s(a.Textures)
}

func decodeBackground(r *reader) (m3gfile.Object, bool) {
	b := new(m3gfile.Background)
	if r.object3D(&b.Object3D) {
		return b, true
	}
	if r.f32s(b.Color[:]) {
		return b, true
	}
	if r.u32(&b.Image) {
		return b, true
	}
	if r.u8(&b.ImageModeX) {
		return b, true
	}
	if r.u8(&b.ImageModeY) {
		return b, true
	}
	if r.u32(&b.CropX) {
		return b, true
	}
	if r.u32(&b.CropY) {
		return b, true
	}
	if r.u32(&b.CropWidth) {
		return b, true
	}
	if r.u32(&b.CropHeight) {
		return b, true
	}
	if r.bool(&b.DepthClearEnabled) {
		return b, true
	}
	return b, r.bool(&b.ColorClearEnabled)
}

func decodeCamera(r *reader) (m3gfile.Object, bool) {
	c := new(m3gfile.Camera)
	if r.node(&c.Node) {
		return c, true
	}
	if r.u8(&c.ProjectionType) {
		return c, true
	}
	if c.ProjectionType == m3gfile.ProjectionGeneric {
		m := new([16]float32)
		if r.f32s(m[:]) {
			return c, true
		}
		c.Projection = m
		return c, false
	}
	r.enum("projection type", c.ProjectionType, m3gfile.ProjectionParallel, m3gfile.ProjectionPerspective)
	if r.f32(&c.FieldOfView) {
		return c, true
	}
	if r.f32(&c.AspectRatio) {
		return c, true
	}
	if r.f32(&c.Near) {
		return c, true
	}
	return c, r.f32(&c.Far)
}

func decodeCompositingMode(r *reader) (m3gfile.Object, bool) {
	c := new(m3gfile.CompositingMode)
	if r.object3D(&c.Object3D) {
		return c, true
	}
	if r.bool(&c.DepthTestEnabled) {
		return c, true
	}
	if r.bool(&c.DepthWriteEnabled) {
		return c, true
	}
	if r.bool(&c.ColorWriteEnabled) {
		return c, true
	}
	if r.bool(&c.AlphaWriteEnabled) {
		return c, true
	}
	if r.u8(&c.Blending) {
		return c, true
	}
	if r.u8(&c.AlphaThreshold) {
		return c, true
	}
	if r.f32(&c.DepthOffsetFactor) {
		return c, true
	}
	return c, r.f32(&c.DepthOffsetUnits)
}

func decodeFog(r *reader) (m3gfile.Object, bool) {
	f := new(m3gfile.Fog)
	if r.object3D(&f.Object3D) {
		return f, true
	}
	if r.f32s(f.Color[:]) {
		return f, true
	}
	if r.u8(&f.Mode) {
		return f, true
	}
	switch f.Mode {
	case m3gfile.FogExponential:
		return f, r.f32(&f.Density)
	case m3gfile.FogLinear:
		if r.f32(&f.Near) {
			return f, true
		}
		return f, r.f32(&f.Far)
	default:
		r.warn(EnumError{Field: "fog mode", Value: f.Mode})
		return f, false
	}
}

func decodePolygonMode(r *reader) (m3gfile.Object, bool) {
	p := new(m3gfile.PolygonMode)
	if r.object3D(&p.Object3D) {
		return p, true
	}
	if r.u8(&p.Culling) {
		return p, true
	}
	if r.u8(&p.Shading) {
		return p, true
	}
	if r.u8(&p.Winding) {
		return p, true
	}
	if r.bool(&p.TwoSidedLightingEnabled) {
		return p, true
	}
	if r.bool(&p.LocalCameraLightingEnabled) {
		return p, true
	}
	return p, r.bool(&p.PerspectiveCorrectionEnabled)
}

func (r *reader) group(g *m3gfile.Group) bool {
	if r.node(&g.Node) {
		return true
	}
	var n uint32
	if r.count("child count", &n, zu32) {
		return true
	}
	g.Children = make([]uint32, n)
	return r.u32s(g.Children)
}

func decodeGroup(r *reader) (m3gfile.Object, bool) {
	g := new(m3gfile.Group)
	return g, r.group(g)
}

func decodeWorld(r *reader) (m3gfile.Object, bool) {
	w := new(m3gfile.World)
	if r.group(&w.Group) {
		return w, true
	}
	if r.u32(&w.ActiveCamera) {
		return w, true
	}
	return w, r.u32(&w.Background)
}

func decodeImage2D(r *reader) (m3gfile.Object, bool) {
	img := new(m3gfile.Image2D)
	if r.object3D(&img.Object3D) {
		return img, true
	}
	if r.u8(&img.Format) {
		return img, true
	}
	if r.bool(&img.Mutable) {
		return img, true
	}
	if r.u32(&img.Width) {
		return img, true
	}
	if r.u32(&img.Height) {
		return img, true
	}
	if img.Mutable {
		return img, false
	}

	var n uint32
	if r.count("palette size", &n, zu8) {
		return img, true
	}
	img.Palette = make([]byte, n)
	if r.u8s(img.Palette) {
		return img, true
	}
	if r.count("pixel size", &n, zu8) {
		return img, true
	}
	img.Pixels = make([]byte, n)
	return img, r.u8s(img.Pixels)
}

func decodeTriangleStripArray(r *reader) (m3gfile.Object, bool) {
	t := new(m3gfile.TriangleStripArray)
	if r.object3D(&t.Object3D) {
		return t, true
	}
	if r.u8(&t.Encoding) {
		return t, true
	}

	switch t.Encoding {
	case 0:
		if r.u32(&t.StartIndex) {
			return t, true
		}
	case 1:
		var v uint8
		if r.u8(&v) {
			return t, true
		}
		t.StartIndex = uint32(v)
	case 2:
		var v uint16
		if r.u16(&v) {
			return t, true
		}
		t.StartIndex = uint32(v)
	case 128, 129, 130:
		size := map[uint8]int64{128: zu32, 129: zu8, 130: zu16}[t.Encoding]
		var n uint32
		if r.count("index count", &n, size) {
			return t, true
		}
		t.Indices = make([]uint32, n)
		for i := range t.Indices {
			switch size {
			case zu32:
				if r.u32(&t.Indices[i]) {
					return t, true
				}
			case zu8:
				var v uint8
				if r.u8(&v) {
					return t, true
				}
				t.Indices[i] = uint32(v)
			case zu16:
				var v uint16
				if r.u16(&v) {
					return t, true
				}
				t.Indices[i] = uint32(v)
			}
		}
	default:
		r.warn(EnumError{Field: "index encoding", Value: t.Encoding})
	}

	var n uint32
	if r.count("strip count", &n, zu32) {
		return t, true
	}
	t.StripLengths = make([]uint32, n)
	return t, r.u32s(t.StripLengths)
}

func decodeLight(r *reader) (m3gfile.Object, bool) {
	l := new(m3gfile.Light)
	if r.node(&l.Node) {
		return l, true
	}
	if r.f32(&l.AttenuationConstant) {
		return l, true
	}
	if r.f32(&l.AttenuationLinear) {
		return l, true
	}
	if r.f32(&l.AttenuationQuadratic) {
		return l, true
	}
	if r.f32s(l.Color[:]) {
		return l, true
	}
	if r.f32(&l.Intensity) {
		return l, true
	}
	if r.f32(&l.SpotAngle) {
		return l, true
	}
	return l, r.f32(&l.SpotExponent)
}

func decodeMaterial(r *reader) (m3gfile.Object, bool) {
	m := new(m3gfile.Material)
	if r.object3D(&m.Object3D) {
		return m, true
	}
	if r.u8s(m.AmbientColor[:]) {
		return m, true
	}
	if r.u8s(m.DiffuseColor[:]) {
		return m, true
	}
	if r.u8s(m.EmissiveColor[:]) {
		return m, true
	}
	if r.u8s(m.SpecularColor[:]) {
		return m, true
	}
	if r.f32(&m.Shininess) {
		return m, true
	}
	return m, r.bool(&m.VertexColorTrackingEnabled)
}

func (r *reader) mesh(m *m3gfile.Mesh) bool {
	if r.node(&m.Node) {
		return true
	}
	if r.u32(&m.VertexBuffer) {
		return true
	}
	var n uint32
	if r.count("submesh count", &n, 2*zu32) {
		return true
	}
	m.Submeshes = make([]m3gfile.Submesh, n)
	for i := range m.Submeshes {
		if r.u32(&m.Submeshes[i].IndexBuffer) {
			return true
		}
		if r.u32(&m.Submeshes[i].Appearance) {
			return true
		}
	}
	return false
}

func decodeMesh(r *reader) (m3gfile.Object, bool) {
	m := new(m3gfile.Mesh)
	return m, r.mesh(m)
}

func decodeMorphingMesh(r *reader) (m3gfile.Object, bool) {
	m := new(m3gfile.MorphingMesh)
	if r.mesh(&m.Mesh) {
		return m, true
	}
	var n uint32
	if r.count("morph target count", &n, zu32+zf32) {
		return m, true
	}
	m.Targets = make([]m3gfile.MorphTarget, n)
	for i := range m.Targets {
		if r.u32(&m.Targets[i].Target) {
			return m, true
		}
		if r.f32(&m.Targets[i].InitialWeight) {
			return m, true
		}
	}
	return m, false
}

func decodeSkinnedMesh(r *reader) (m3gfile.Object, bool) {
	m := new(m3gfile.SkinnedMesh)
	if r.mesh(&m.Mesh) {
		return m, true
	}
	if r.u32(&m.Skeleton) {
		return m, true
	}
	var n uint32
	if r.count("transform reference count", &n, 4*zu32) {
		return m, true
	}
	m.References = make([]m3gfile.TransformReference, n)
	for i := range m.References {
		ref := &m.References[i]
		if r.u32(&ref.TransformNode) {
			return m, true
		}
		if r.u32(&ref.FirstVertex) {
			return m, true
		}
		if r.u32(&ref.VertexCount) {
			return m, true
		}
		if r.i32(&ref.Weight) {
			return m, true
		}
	}
	return m, false
}

func decodeSprite(r *reader) (m3gfile.Object, bool) {
	s := new(m3gfile.Sprite)
	if r.node(&s.Node) {
		return s, true
	}
	if r.u32(&s.Image) {
		return s, true
	}
	if r.u32(&s.Appearance) {
		return s, true
	}
	if r.bool(&s.Scaled) {
		return s, true
	}
	if r.i32(&s.CropX) {
		return s, true
	}
	if r.i32(&s.CropY) {
		return s, true
	}
	if r.i32(&s.CropWidth) {
		return s, true
	}
	return s, r.i32(&s.CropHeight)
}

func decodeTexture2D(r *reader) (m3gfile.Object, bool) {
	t := new(m3gfile.Texture2D)
	if r.transformable(&t.Transformable) {
		return t, true
	}
	if r.u32(&t.Image) {
		return t, true
	}
	if r.u8s(t.BlendColor[:]) {
		return t, true
	}
	if r.u8(&t.Blending) {
		return t, true
	}
	if r.u8(&t.WrappingS) {
		return t, true
	}
	if r.u8(&t.WrappingT) {
		return t, true
	}
	if r.u8(&t.LevelFilter) {
		return t, true
	}
	return t, r.u8(&t.ImageFilter)
}

////////////////////////////////////////////////////////////////

func decodeKeyframeSequence(r *reader) (m3gfile.Object, bool) {
	k := new(m3gfile.KeyframeSequence)
	if r.object3D(&k.Object3D) {
		return k, true
	}
	if r.u8(&k.Interpolation) {
		return k, true
	}
	if r.u8(&k.RepeatMode) {
		return k, true
	}
	if r.u8(&k.Encoding) {
		return k, true
	}
	if r.f32(&k.Duration) {
		return k, true
	}
	if r.u32(&k.ValidRangeFirst) {
		return k, true
	}
	if r.u32(&k.ValidRangeLast) {
		return k, true
	}
	if r.u32(&k.ComponentCount) {
		return k, true
	}
	if r.u32(&k.KeyframeCount) {
		return k, true
	}

	var size int64
	switch k.Encoding {
	case 0:
		size = zf32
	case 1:
		size = zu8
	case 2:
		size = zu16
	default:
		r.warn(EnumError{Field: "keyframe encoding", Value: k.Encoding})
		return k, false
	}

	cc := int64(k.ComponentCount)
	if k.Encoding != 0 {
		if r.fitsEach("keyframe bias and scale", 2*cc, zf32) {
			return k, true
		}
		k.Bias = make([]float32, cc)
		k.Scale = make([]float32, cc)
		if r.f32s(k.Bias) {
			return k, true
		}
		if r.f32s(k.Scale) {
			return k, true
		}
	}

	if k.KeyframeCount > 0 {
		if r.fitsEach("keyframe components", cc, size) {
			return k, true
		}
		if r.fitsEach("keyframes", int64(k.KeyframeCount), zu32+cc*size) {
			return k, true
		}
	}
	k.Times = make([]uint32, k.KeyframeCount)
	if k.Encoding == 0 {
		k.Values = make([][]float32, k.KeyframeCount)
	} else {
		k.Quantized = make([][]uint16, k.KeyframeCount)
	}
	for i := range k.Times {
		if r.u32(&k.Times[i]) {
			return k, true
		}
		switch k.Encoding {
		case 0:
			v := make([]float32, cc)
			if r.f32s(v) {
				return k, true
			}
			k.Values[i] = v
		case 1:
			b := make([]byte, cc)
			if r.u8s(b) {
				return k, true
			}
			q := make([]uint16, cc)
			for j, c := range b {
				q[j] = uint16(c)
			}
			k.Quantized[i] = q
		case 2:
			q := make([]uint16, cc)
			for j := range q {
				if r.u16(&q[j]) {
					return k, true
				}
			}
			k.Quantized[i] = q
		}
	}
	return k, false
}

func decodeVertexArray(r *reader) (m3gfile.Object, bool) {
	a := new(m3gfile.VertexArray)
	if r.object3D(&a.Object3D) {
		return a, true
	}
	if r.u8(&a.ComponentSize) {
		return a, true
	}
	if r.u8(&a.ComponentCount) {
		return a, true
	}
	if r.u8(&a.Encoding) {
		return a, true
	}
	if r.u16(&a.VertexCount) {
		return a, true
	}

	switch a.ComponentSize {
	case 1, 2, 4:
	default:
		r.warn(EnumError{Field: "component size", Value: a.ComponentSize})
		return a, false
	}
	if a.Encoding > 1 {
		r.warn(EnumError{Field: "vertex encoding", Value: a.Encoding})
		return a, false
	}

	cc := int(a.ComponentCount)
	if r.fitsEach("vertices", int64(a.VertexCount), int64(cc)*int64(a.ComponentSize)) {
		return a, true
	}
	delta := a.Encoding == 1

	if a.ComponentSize == 4 {
		a.Floats = make([][]float32, a.VertexCount)
		prev := make([]float32, cc)
		for i := range a.Floats {
			v := make([]float32, cc)
			if r.f32s(v) {
				return a, true
			}
			if delta {
				for j := range v {
					v[j] += prev[j]
				}
				prev = v
			}
			a.Floats[i] = v
		}
		return a, false
	}

	a.Ints = make([][]int32, a.VertexCount)
	prev := make([]int32, cc)
	for i := range a.Ints {
		v := make([]int32, cc)
		for j := range v {
			if a.ComponentSize == 1 {
				var c uint8
				if r.u8(&c) {
					return a, true
				}
				v[j] = int32(int8(c))
			} else {
				var c uint16
				if r.u16(&c) {
					return a, true
				}
				v[j] = int32(int16(c))
			}
		}
		if delta {
			for j := range v {
				v[j] += prev[j]
			}
			prev = v
		}
		a.Ints[i] = v
	}
	return a, false
}

func decodeVertexBuffer(r *reader) (m3gfile.Object, bool) {
	b := new(m3gfile.VertexBuffer)
	if r.object3D(&b.Object3D) {
		return b, true
	}
	if r.u8s(b.DefaultColor[:]) {
		return b, true
	}
	if r.u32(&b.Positions) {
		return b, true
	}
	if r.f32s(b.PositionBias[:]) {
		return b, true
	}
	if r.f32(&b.PositionScale) {
		return b, true
	}
	if r.u32(&b.Normals) {
		return b, true
	}
	if r.u32(&b.Colors) {
		return b, true
	}
	var n uint32
	if r.count("texture coordinate count", &n, zu32+4*zf32) {
		return b, true
	}
	b.TexCoords = make([]m3gfile.TexCoords, n)
	for i := range b.TexCoords {
		tc := &b.TexCoords[i]
		if r.u32(&tc.Array) {
			return b, true
		}
		if r.f32s(tc.Bias[:]) {
			return b, true
		}
		if r.f32(&tc.Scale) {
			return b, true
		}
	}
	return b, false
}
