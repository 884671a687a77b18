package hemesh

import (
	"fmt"
	"iter"
	"slices"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/tidwall/btree"
)

// Mesh owns every vertex, half-edge and face of a surface. Elements are kept
// in key-ordered arenas and reference each other by key, so a structural edit
// is a key reassignment and never leaves a dangling pointer.
//
// A Mesh is not safe for concurrent mutation. Operators may transiently break
// the topology invariants while they run; the mesh setters perform no checks.
type Mesh struct {
	vertices  btree.Map[Key, *Vertex]
	halfedges btree.Map[Key, *Halfedge]
	faces     btree.Map[Key, *Face]
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex attaches v to the mesh. Identity was assigned at construction;
// adding only transfers ownership.
func (m *Mesh) AddVertex(v *Vertex) error {
	if v.owner != nil && v.owner != m {
		return fmt.Errorf("adding vertex %d: %w", v.key, ErrForeignElement)
	}
	v.owner = m
	m.vertices.Set(v.key, v)
	return nil
}

// AddHalfedge attaches h to the mesh.
func (m *Mesh) AddHalfedge(h *Halfedge) error {
	if h.owner != nil && h.owner != m {
		return fmt.Errorf("adding half-edge %d: %w", h.key, ErrForeignElement)
	}
	h.owner = m
	m.halfedges.Set(h.key, h)
	return nil
}

// AddFace attaches f to the mesh.
func (m *Mesh) AddFace(f *Face) error {
	if f.owner != nil && f.owner != m {
		return fmt.Errorf("adding face %d: %w", f.key, ErrForeignElement)
	}
	f.owner = m
	m.faces.Set(f.key, f)
	return nil
}

// RemoveVertex detaches the vertex with key k. References to it held by other
// elements are left for the caller to fix.
func (m *Mesh) RemoveVertex(k Key) bool {
	v, ok := m.vertices.Delete(k)
	if ok {
		v.owner = nil
	}
	return ok
}

// RemoveHalfedge detaches the half-edge with key k.
func (m *Mesh) RemoveHalfedge(k Key) bool {
	h, ok := m.halfedges.Delete(k)
	if ok {
		h.owner = nil
	}
	return ok
}

// RemoveFace detaches the face with key k.
func (m *Mesh) RemoveFace(k Key) bool {
	f, ok := m.faces.Delete(k)
	if ok {
		f.owner = nil
	}
	return ok
}

// Remove detaches whichever element has key k.
func (m *Mesh) Remove(k Key) bool {
	return m.RemoveVertex(k) || m.RemoveHalfedge(k) || m.RemoveFace(k)
}

// Vertex returns the vertex with key k, or nil.
func (m *Mesh) Vertex(k Key) *Vertex {
	v, _ := m.vertices.Get(k)
	return v
}

// Halfedge returns the half-edge with key k, or nil.
func (m *Mesh) Halfedge(k Key) *Halfedge {
	h, _ := m.halfedges.Get(k)
	return h
}

// Face returns the face with key k, or nil.
func (m *Mesh) Face(k Key) *Face {
	f, _ := m.faces.Get(k)
	return f
}

// Contains reports whether any arena holds key k.
func (m *Mesh) Contains(k Key) bool {
	if _, ok := m.vertices.Get(k); ok {
		return true
	}
	if _, ok := m.halfedges.Get(k); ok {
		return true
	}
	_, ok := m.faces.Get(k)
	return ok
}

// NumberOfVertices returns the vertex count.
func (m *Mesh) NumberOfVertices() int { return m.vertices.Len() }

// NumberOfHalfedges returns the half-edge count.
func (m *Mesh) NumberOfHalfedges() int { return m.halfedges.Len() }

// NumberOfFaces returns the face count.
func (m *Mesh) NumberOfFaces() int { return m.faces.Len() }

// Adjacency setters. Each one writes exactly the named field.

// SetNext sets h.next. A nil next clears the link.
func (m *Mesh) SetNext(h, next *Halfedge) {
	h.next = keyOfHalfedge(next)
}

// SetVertex sets the origin of h.
func (m *Mesh) SetVertex(h *Halfedge, v *Vertex) {
	if v == nil {
		h.vertex = NilKey
		return
	}
	h.vertex = v.key
}

// SetFace sets the incident face of h.
func (m *Mesh) SetFace(h *Halfedge, f *Face) {
	if f == nil {
		h.face = NilKey
		return
	}
	h.face = f.key
}

// SetPair links a and b as opposites of each other.
func (m *Mesh) SetPair(a, b *Halfedge) {
	a.pair = b.key
	b.pair = a.key
}

// ClearPair unlinks h and, if still symmetric, its opposite.
func (m *Mesh) ClearPair(h *Halfedge) {
	if p := m.Halfedge(h.pair); p != nil && p.pair == h.key {
		p.pair = NilKey
	}
	h.pair = NilKey
}

// SetVertexHalfedge sets the anchor half-edge of v.
func (m *Mesh) SetVertexHalfedge(v *Vertex, h *Halfedge) {
	v.halfedge = keyOfHalfedge(h)
}

// SetFaceHalfedge sets the anchor half-edge of f.
func (m *Mesh) SetFaceHalfedge(f *Face, h *Halfedge) {
	f.halfedge = keyOfHalfedge(h)
}

func keyOfHalfedge(h *Halfedge) Key {
	if h == nil {
		return NilKey
	}
	return h.key
}

// Snapshots. These copy the arena at call time, so the mesh may be mutated
// while the result is being iterated.

// VerticesAsArray returns all vertices in key order.
func (m *Mesh) VerticesAsArray() []*Vertex {
	out := make([]*Vertex, 0, m.vertices.Len())
	m.vertices.Scan(func(_ Key, v *Vertex) bool {
		out = append(out, v)
		return true
	})
	return out
}

// HalfedgesAsArray returns all half-edges in key order.
func (m *Mesh) HalfedgesAsArray() []*Halfedge {
	out := make([]*Halfedge, 0, m.halfedges.Len())
	m.halfedges.Scan(func(_ Key, h *Halfedge) bool {
		out = append(out, h)
		return true
	})
	return out
}

// FacesAsArray returns all faces in key order.
func (m *Mesh) FacesAsArray() []*Face {
	out := make([]*Face, 0, m.faces.Len())
	m.faces.Scan(func(_ Key, f *Face) bool {
		out = append(out, f)
		return true
	})
	return out
}

// Vertices iterates over a snapshot of the vertices.
func (m *Mesh) Vertices() iter.Seq[*Vertex] {
	return sliceSeq(m.VerticesAsArray())
}

// Halfedges iterates over a snapshot of the half-edges.
func (m *Mesh) Halfedges() iter.Seq[*Halfedge] {
	return sliceSeq(m.HalfedgesAsArray())
}

// Faces iterates over a snapshot of the faces.
func (m *Mesh) Faces() iter.Seq[*Face] {
	return sliceSeq(m.FacesAsArray())
}

func sliceSeq[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s {
			if !yield(e) {
				return
			}
		}
	}
}

// Navigation

// Next returns the half-edge following h in its face loop, or nil.
func (m *Mesh) Next(h *Halfedge) *Halfedge {
	return m.Halfedge(h.next)
}

// PairOf returns the opposite of h, or nil on the boundary.
func (m *Mesh) PairOf(h *Halfedge) *Halfedge {
	return m.Halfedge(h.pair)
}

// Origin returns the origin vertex of h.
func (m *Mesh) Origin(h *Halfedge) *Vertex {
	return m.Vertex(h.vertex)
}

// EndVertex returns the vertex h points to, i.e. the origin of h.next.
func (m *Mesh) EndVertex(h *Halfedge) *Vertex {
	next := m.Next(h)
	if next == nil {
		return nil
	}
	return m.Vertex(next.vertex)
}

// FaceOf returns the incident face of h, or nil on the boundary.
func (m *Mesh) FaceOf(h *Halfedge) *Face {
	return m.Face(h.face)
}

// IsBoundary reports whether h has no opposite.
func (m *Mesh) IsBoundary(h *Halfedge) bool {
	return m.Halfedge(h.pair) == nil
}

// Prev returns the half-edge whose next is h, found by walking the loop.
func (m *Mesh) Prev(h *Halfedge) *Halfedge {
	limit := m.halfedges.Len()
	e := h
	for i := 0; i < limit; i++ {
		next := m.Next(e)
		if next == nil {
			return nil
		}
		if next == h {
			return e
		}
		e = next
	}
	return nil
}

// FaceHalfedges walks the loop of f from its anchor. The walk stops early
// on a missing next link or after visiting every half-edge of the mesh, so a
// broken loop never spins forever; Validate reports those cases.
func (m *Mesh) FaceHalfedges(f *Face) []*Halfedge {
	start := m.Halfedge(f.halfedge)
	if start == nil {
		return nil
	}
	var out []*Halfedge
	limit := m.halfedges.Len()
	e := start
	for {
		out = append(out, e)
		e = m.Next(e)
		if e == nil || e == start || len(out) > limit {
			break
		}
	}
	return out
}

// FaceOrder returns the number of edges of f.
func (m *Mesh) FaceOrder(f *Face) int {
	return len(m.FaceHalfedges(f))
}

// FaceVertices returns the corners of f in loop order.
func (m *Mesh) FaceVertices(f *Face) []*Vertex {
	hes := m.FaceHalfedges(f)
	out := make([]*Vertex, 0, len(hes))
	for _, h := range hes {
		out = append(out, m.Origin(h))
	}
	return out
}

// HalfedgeInFace returns the half-edge of f whose origin is v, or nil.
func (m *Mesh) HalfedgeInFace(f *Face, v *Vertex) *Halfedge {
	for _, h := range m.FaceHalfedges(f) {
		if h.vertex == v.key {
			return h
		}
	}
	return nil
}

// VertexHalfedges returns the outgoing half-edges of v, starting at its
// anchor and turning with pair.next. On a boundary vertex the fan is open;
// the part behind the anchor is then collected by walking prev.pair.
func (m *Mesh) VertexHalfedges(v *Vertex) []*Halfedge {
	start := m.Halfedge(v.halfedge)
	if start == nil {
		return nil
	}
	limit := m.halfedges.Len()
	out := []*Halfedge{start}
	e := start
	for len(out) <= limit {
		p := m.PairOf(e)
		if p == nil {
			break
		}
		e = m.Next(p)
		if e == nil || e == start {
			return out
		}
		out = append(out, e)
	}

	// open fan: walk backwards from the anchor
	var behind []*Halfedge
	e = start
	for len(out)+len(behind) <= limit {
		prev := m.Prev(e)
		if prev == nil {
			break
		}
		e = m.PairOf(prev)
		if e == nil || e == start {
			break
		}
		behind = append(behind, e)
	}
	slices.Reverse(behind)
	return append(behind, out...)
}

// VertexFaces returns the distinct faces around v.
func (m *Mesh) VertexFaces(v *Vertex) []*Face {
	var out []*Face
	seen := make(map[Key]bool)
	for _, h := range m.VertexHalfedges(v) {
		if f := m.FaceOf(h); f != nil && !seen[f.key] {
			seen[f.key] = true
			out = append(out, f)
		}
	}
	return out
}

// Geometry queries

// FaceCenter returns the centroid of the corners of f.
func (m *Mesh) FaceCenter(f *Face) geom.Vec3 {
	return geom.Centroid(m.facePositions(f))
}

// FaceNormal returns the unit normal of f.
func (m *Mesh) FaceNormal(f *Face) geom.Vec3 {
	return geom.Normal(m.facePositions(f))
}

func (m *Mesh) facePositions(f *Face) []geom.Vec3 {
	vs := m.FaceVertices(f)
	ps := make([]geom.Vec3, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			ps = append(ps, v.Position)
		}
	}
	return ps
}

// UVW resolves the surface parameter of v inside f: the corner value on the
// half-edge of f leaving v wins over the vertex-wide value.
func (m *Mesh) UVW(v *Vertex, f *Face) (geom.Vec3, bool) {
	if f != nil {
		if h := m.HalfedgeInFace(f, v); h != nil && h.uvw != nil {
			return *h.uvw, true
		}
	}
	return v.UVW()
}

// Stats summarizes element counts.
type Stats struct {
	Vertices          int
	Halfedges         int
	Faces             int
	BoundaryHalfedges int
	// FaceOrders maps face order to the number of faces with that order.
	FaceOrders map[int]int
}

// Stats counts the elements of the mesh.
func (m *Mesh) Stats() Stats {
	s := Stats{
		Vertices:   m.vertices.Len(),
		Halfedges:  m.halfedges.Len(),
		Faces:      m.faces.Len(),
		FaceOrders: make(map[int]int),
	}
	m.halfedges.Scan(func(_ Key, h *Halfedge) bool {
		if m.IsBoundary(h) {
			s.BoundaryHalfedges++
		}
		return true
	})
	m.faces.Scan(func(_ Key, f *Face) bool {
		s.FaceOrders[m.FaceOrder(f)]++
		return true
	})
	return s
}
