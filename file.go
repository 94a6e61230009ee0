// The m3gfile package holds the object graph decoded from JSR-184 "M3G"
// files.
//
// An M3G file is a flat list of objects. Objects refer to each other by
// their position in the file: the first object, which is always the Header,
// has the ID 1, the next has the ID 2, and so on. An ID of 0 is a null
// reference. Decoded references are kept as plain integers; a Graph is used
// to turn them into the objects they name.
//
// Graphs are produced by the decoder in the "m3g" sub-package.
package m3gfile

////////////////////////////////////////////////////////////////

// Object is a single decoded record. Every concrete object type in this
// package implements Object.
type Object interface {
	// Type returns the record type tag of the object.
	Type() ObjectType
}

// Graph is the ordered list of objects decoded from a file.
type Graph struct {
	// Objects contains each object in the order it appeared in the file.
	Objects []Object
}

// Len returns the number of objects in the graph.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Objects)
}

// Append adds objects to the end of the graph.
func (g *Graph) Append(objs ...Object) {
	g.Objects = append(g.Objects, objs...)
}

// Get returns the object with the given 1-based ID. Returns a *LookupError if
// id is 0 or greater than the number of objects. Get does not check whether
// the references held by the returned object are valid.
func (g *Graph) Get(id uint32) (Object, error) {
	n := g.Len()
	if id == 0 || uint64(id) > uint64(n) {
		return nil, &LookupError{ID: id, Count: n}
	}
	return g.Objects[id-1], nil
}

// Header returns the first object of the graph if it is a Header.
func (g *Graph) Header() *Header {
	if g.Len() == 0 {
		return nil
	}
	h, _ := g.Objects[0].(*Header)
	return h
}

// Each calls fn for every object of the graph along with its ID. Iteration
// stops if fn returns false.
func (g *Graph) Each(fn func(id uint32, obj Object) bool) {
	if g == nil {
		return
	}
	for i, obj := range g.Objects {
		if !fn(uint32(i+1), obj) {
			return
		}
	}
}
