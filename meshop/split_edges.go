package meshop

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/bloodmagesoftware/hemesh/hemesh"
	mapset "github.com/deckarep/golang-set/v2"
)

// MidpointLabel is the internal label given to vertices inserted by SplitEdges.
const MidpointLabel int32 = 1

// SplitAllEdges inserts a midpoint vertex into every edge of m.
func SplitAllEdges(m *hemesh.Mesh) (*hemesh.Selection, error) {
	return SplitEdges(hemesh.SelectAllFaces(m))
}

// SplitEdges inserts one vertex at the midpoint of every edge bordering a
// selected face and returns a selection of the new vertices. Faces on the
// other side of a split edge gain the same midpoint, so the mesh stays
// conforming. The mesh is re-paired before returning.
func SplitEdges(sel *hemesh.Selection) (*hemesh.Selection, error) {
	m := sel.Parent()
	faces, err := sel.FacesAsArray()
	if err != nil {
		return nil, fmt.Errorf("splitting edges: %w", err)
	}

	// Collect each undirected edge once, before anything is modified
	visited := mapset.NewThreadUnsafeSet[hemesh.Key]()
	var edges []*hemesh.Halfedge
	for _, f := range faces {
		for _, h := range m.FaceHalfedges(f) {
			if !visited.Add(h.Key()) {
				continue
			}
			if p := m.PairOf(h); p != nil {
				visited.Add(p.Key())
			}
			edges = append(edges, h)
		}
	}

	out := hemesh.NewSelection(m)
	for _, h := range edges {
		v, err := splitEdge(m, h)
		if err != nil {
			return nil, err
		}
		if err := out.AddVertices(v); err != nil {
			return nil, err
		}
	}

	if err := m.PairHalfedges(); err != nil {
		return nil, fmt.Errorf("splitting edges: %w", err)
	}
	return out, nil
}

// splitEdge splits h and its pair at their midpoint. h keeps its origin and
// now ends at the new vertex; a new half-edge continues from the new vertex to
// the old end. The same happens on the pair side, and the four half-edges are
// paired crosswise.
func splitEdge(m *hemesh.Mesh, h *hemesh.Halfedge) (*hemesh.Vertex, error) {
	a := m.Origin(h)
	b := m.EndVertex(h)
	if a == nil || b == nil {
		return nil, fmt.Errorf("splitting half-edge %d: %w", h.Key(), hemesh.ErrInvalidMesh)
	}
	p := m.PairOf(h)

	mid := hemesh.NewVertex(geom.Mid(a.Position, b.Position))
	mid.SetInternalLabel(MidpointLabel)
	if uvw, ok := midUVW(a, b); ok {
		mid.SetUVW(uvw)
	}
	if err := m.AddVertex(mid); err != nil {
		return nil, err
	}

	hNew, err := insertAfter(m, h, mid)
	if err != nil {
		return nil, err
	}
	m.SetVertexHalfedge(mid, hNew)

	if p != nil {
		pNew, err := insertAfter(m, p, mid)
		if err != nil {
			return nil, err
		}
		// h: a->mid, pNew: mid->a, p: b->mid, hNew: mid->b
		m.SetPair(h, pNew)
		m.SetPair(p, hNew)
	}
	return mid, nil
}

// insertAfter creates a half-edge from mid to the end of h, in h's face,
// and shortens h to end at mid.
func insertAfter(m *hemesh.Mesh, h *hemesh.Halfedge, mid *hemesh.Vertex) (*hemesh.Halfedge, error) {
	next := m.Next(h)
	n := hemesh.NewHalfedge()
	n.CopyProperties(h)
	if err := m.AddHalfedge(n); err != nil {
		return nil, err
	}
	m.SetVertex(n, mid)
	m.SetFace(n, m.FaceOf(h))
	m.SetNext(n, next)
	m.SetNext(h, n)

	// corner parameter halfway between the two corners of this face
	u0, ok0 := cornerUVW(m, h)
	u1, ok1 := cornerUVW(m, next)
	if ok0 && ok1 {
		n.SetUVW(geom.Mid(u0, u1))
	}
	return n, nil
}

func cornerUVW(m *hemesh.Mesh, h *hemesh.Halfedge) (geom.Vec3, bool) {
	if uvw, ok := h.UVW(); ok {
		return uvw, true
	}
	if v := m.Origin(h); v != nil {
		return v.UVW()
	}
	return geom.Vec3{}, false
}

func midUVW(a, b *hemesh.Vertex) (geom.Vec3, bool) {
	ua, okA := a.UVW()
	ub, okB := b.UVW()
	if !okA || !okB {
		return geom.Vec3{}, false
	}
	return geom.Mid(ua, ub), true
}
