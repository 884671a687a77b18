package hemesh

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Validate checks the topology invariants that must hold between operator
// calls:
//   - every half-edge has an origin and a next that resolve in this mesh
//   - pairing is symmetric and paired half-edges run between the same vertices
//   - walking next from a face anchor closes the loop, and every visited
//     half-edge belongs to that face
//   - every vertex anchor leaves that vertex
//   - no key is used twice
//
// It returns nil or a *ValidationError listing every violation.
func (m *Mesh) Validate() error {
	verr := &ValidationError{}
	seen := mapset.NewThreadUnsafeSet[Key]()
	claim := func(kind string, k Key) {
		if !seen.Add(k) {
			verr.add("%s %d reuses a key", kind, k)
		}
	}

	m.vertices.Scan(func(k Key, v *Vertex) bool {
		claim("vertex", k)
		if v.halfedge == NilKey {
			return true
		}
		h := m.Halfedge(v.halfedge)
		if h == nil {
			verr.add("vertex %d anchors missing half-edge %d", k, v.halfedge)
		} else if h.vertex != k {
			verr.add("vertex %d anchors half-edge %d which leaves vertex %d", k, h.key, h.vertex)
		}
		return true
	})

	m.halfedges.Scan(func(k Key, h *Halfedge) bool {
		claim("half-edge", k)
		if m.Vertex(h.vertex) == nil {
			verr.add("half-edge %d has no origin vertex", k)
		}
		next := m.Halfedge(h.next)
		if next == nil {
			verr.add("half-edge %d has no next", k)
		}
		if h.face != NilKey && m.Face(h.face) == nil {
			verr.add("half-edge %d refers to missing face %d", k, h.face)
		}
		if h.pair == NilKey {
			return true
		}
		p := m.Halfedge(h.pair)
		switch {
		case p == nil:
			verr.add("half-edge %d pairs with missing half-edge %d", k, h.pair)
		case p.pair != k:
			verr.add("half-edge %d pairs with %d, which pairs with %d", k, p.key, p.pair)
		case next != nil && p.vertex != next.vertex:
			verr.add("half-edge %d and its pair %d do not share endpoints", k, p.key)
		}
		return true
	})

	limit := m.halfedges.Len()
	m.faces.Scan(func(k Key, f *Face) bool {
		claim("face", k)
		start := m.Halfedge(f.halfedge)
		if start == nil {
			verr.add("face %d has no anchor half-edge", k)
			return true
		}
		e := start
		order := 0
		for {
			if e.face != k {
				verr.add("half-edge %d in loop of face %d belongs to face %d", e.key, k, e.face)
			}
			order++
			e = m.Halfedge(e.next)
			if e == nil {
				verr.add("loop of face %d is open", k)
				return true
			}
			if e == start {
				break
			}
			if order > limit {
				verr.add("loop of face %d does not return to its anchor", k)
				return true
			}
		}
		if order < 3 {
			verr.add("face %d has order %d", k, order)
		}
		return true
	})

	if len(verr.Problems) == 0 {
		return nil
	}
	return verr
}
