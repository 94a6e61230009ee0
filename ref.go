package m3gfile

import (
	"fmt"
	"strconv"
)

// Reference is a field of an object that refers to another object by ID.
type Reference struct {
	// Field names the referring field. Fields that hold a list of references
	// are suffixed with the index of the element, such as "Children[2]".
	Field string

	// ID is the 1-based ID of the referent. It is never 0.
	ID uint32
}

// LookupError indicates an ID that does not name an object in a Graph.
type LookupError struct {
	ID    uint32
	Count int
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("object %d out of range (graph has %d objects)", err.ID, err.Count)
}

// TypeError indicates that a referenced object is not of the expected type.
type TypeError struct {
	ID   uint32
	Want string
	Got  ObjectType
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("object %d is %s, expected %s", err.ID, err.Got, err.Want)
}

// Resolve returns the object with the given ID as a T. Returns a *LookupError
// if the ID is out of range, and a *TypeError if the object is not a T.
func Resolve[T Object](g *Graph, id uint32) (T, error) {
	var zero T
	obj, err := g.Get(id)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, &TypeError{ID: id, Want: fmt.Sprintf("%T", zero), Got: obj.Type()}
	}
	return v, nil
}

type refs []Reference

func (r *refs) add(field string, id uint32) {
	if id != 0 {
		*r = append(*r, Reference{Field: field, ID: id})
	}
}

func (r *refs) list(field string, ids []uint32) {
	for i, id := range ids {
		r.add(field+"["+strconv.Itoa(i)+"]", id)
	}
}

func (r *refs) object3D(o *Object3D) {
	r.list("AnimationTracks", o.AnimationTracks)
}

func (r *refs) node(n *Node) {
	r.object3D(&n.Object3D)
	if n.Alignment != nil {
		r.add("Alignment.ZReference", n.Alignment.ZReference)
		r.add("Alignment.YReference", n.Alignment.YReference)
	}
}

func (r *refs) mesh(m *Mesh) {
	r.node(&m.Node)
	r.add("VertexBuffer", m.VertexBuffer)
	for i, s := range m.Submeshes {
		r.add("Submeshes["+strconv.Itoa(i)+"].IndexBuffer", s.IndexBuffer)
		r.add("Submeshes["+strconv.Itoa(i)+"].Appearance", s.Appearance)
	}
}

func (r *refs) group(g *Group) {
	r.node(&g.Node)
	r.list("Children", g.Children)
}

// ReferencesOf returns every non-null reference held by obj, in field order.
// The references are not checked against any Graph.
func ReferencesOf(obj Object) []Reference {
	var r refs
	switch obj := obj.(type) {
	case *AnimationController:
		r.object3D(&obj.Object3D)
	case *AnimationTrack:
		r.object3D(&obj.Object3D)
		r.add("KeyframeSequence", obj.KeyframeSequence)
		r.add("AnimationController", obj.AnimationController)
	case *Appearance:
		r.object3D(&obj.Object3D)
		r.add("CompositingMode", obj.CompositingMode)
		r.add("Fog", obj.Fog)
		r.add("PolygonMode", obj.PolygonMode)
		r.add("Material", obj.Material)
		r.list("Textures", obj.Textures)
	case *Background:
		r.object3D(&obj.Object3D)
		r.add("Image", obj.Image)
	case *Camera:
		r.node(&obj.Node)
	case *CompositingMode:
		r.object3D(&obj.Object3D)
	case *Fog:
		r.object3D(&obj.Object3D)
	case *PolygonMode:
		r.object3D(&obj.Object3D)
	case *Group:
		r.group(obj)
	case *Image2D:
		r.object3D(&obj.Object3D)
	case *TriangleStripArray:
		r.object3D(&obj.Object3D)
	case *Light:
		r.node(&obj.Node)
	case *Material:
		r.object3D(&obj.Object3D)
	case *Mesh:
		r.mesh(obj)
	case *MorphingMesh:
		r.mesh(&obj.Mesh)
		for i, t := range obj.Targets {
			r.add("Targets["+strconv.Itoa(i)+"]", t.Target)
		}
	case *SkinnedMesh:
		r.mesh(&obj.Mesh)
		r.add("Skeleton", obj.Skeleton)
		for i, t := range obj.References {
			r.add("References["+strconv.Itoa(i)+"]", t.TransformNode)
		}
	case *Sprite:
		r.node(&obj.Node)
		r.add("Image", obj.Image)
		r.add("Appearance", obj.Appearance)
	case *Texture2D:
		r.object3D(&obj.Object3D)
		r.add("Image", obj.Image)
	case *KeyframeSequence:
		r.object3D(&obj.Object3D)
	case *VertexArray:
		r.object3D(&obj.Object3D)
	case *VertexBuffer:
		r.object3D(&obj.Object3D)
		r.add("Positions", obj.Positions)
		r.add("Normals", obj.Normals)
		r.add("Colors", obj.Colors)
		for i, t := range obj.TexCoords {
			r.add("TexCoords["+strconv.Itoa(i)+"]", t.Array)
		}
	case *World:
		r.group(&obj.Group)
		r.add("ActiveCamera", obj.ActiveCamera)
		r.add("Background", obj.Background)
	}
	return r
}

// Dangling returns the references of every object in g that do not resolve
// to an object. The map is keyed by the ID of the referring object.
func (g *Graph) Dangling() map[uint32][]Reference {
	out := map[uint32][]Reference{}
	n := g.Len()
	g.Each(func(id uint32, obj Object) bool {
		for _, ref := range ReferencesOf(obj) {
			if uint64(ref.ID) > uint64(n) {
				out[id] = append(out[id], ref)
			}
		}
		return true
	})
	return out
}
