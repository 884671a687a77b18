package hemesh

import (
	"github.com/bloodmagesoftware/hemesh/geom"
)

// Vertex is a mesh corner. It references one outgoing half-edge (any
// half-edge that has this vertex as its origin); the rest of its star is
// reached by walking pair.next.
type Vertex struct {
	Element
	Position geom.Vec3

	owner    *Mesh
	halfedge Key
	uvw      *geom.Vec3
}

// NewVertex creates a detached vertex at p.
func NewVertex(p geom.Vec3) *Vertex {
	return &Vertex{Element: newElement(), Position: p}
}

// Halfedge returns the key of the vertex's anchor half-edge.
func (v *Vertex) Halfedge() Key {
	return v.halfedge
}

// UVW returns the vertex-wide surface parameter, if any.
func (v *Vertex) UVW() (geom.Vec3, bool) {
	if v.uvw == nil {
		return geom.Vec3{}, false
	}
	return *v.uvw, true
}

// SetUVW sets the vertex-wide surface parameter.
func (v *Vertex) SetUVW(uvw geom.Vec3) {
	v.uvw = &uvw
}

// ClearUVW drops the vertex-wide surface parameter.
func (v *Vertex) ClearUVW() {
	v.uvw = nil
}

// Halfedge is one directed traversal of an edge. Face and pair are NilKey on
// the mesh boundary.
type Halfedge struct {
	Element

	owner  *Mesh
	vertex Key
	next   Key
	pair   Key
	face   Key
	uvw    *geom.Vec3
}

// NewHalfedge creates a detached half-edge with no adjacency.
func NewHalfedge() *Halfedge {
	return &Halfedge{Element: newElement()}
}

// Vertex returns the key of the origin vertex.
func (h *Halfedge) Vertex() Key { return h.vertex }

// Next returns the key of the following half-edge in the face loop.
func (h *Halfedge) Next() Key { return h.next }

// Pair returns the key of the opposite half-edge.
func (h *Halfedge) Pair() Key { return h.pair }

// Face returns the key of the incident face.
func (h *Halfedge) Face() Key { return h.face }

// UVW returns the surface parameter of the origin corner inside the
// incident face, if any.
func (h *Halfedge) UVW() (geom.Vec3, bool) {
	if h.uvw == nil {
		return geom.Vec3{}, false
	}
	return *h.uvw, true
}

// SetUVW sets the corner surface parameter.
func (h *Halfedge) SetUVW(uvw geom.Vec3) {
	h.uvw = &uvw
}

// ClearUVW drops the corner surface parameter.
func (h *Halfedge) ClearUVW() {
	h.uvw = nil
}

// Face is a closed loop of half-edges reached from its anchor.
type Face struct {
	Element

	owner    *Mesh
	halfedge Key
}

// NewFace creates a detached face without an anchor.
func NewFace() *Face {
	return &Face{Element: newElement()}
}

// Halfedge returns the key of the face's anchor half-edge.
func (f *Face) Halfedge() Key {
	return f.halfedge
}
