package hemesh

import (
	"fmt"
)

// edgeKey identifies an undirected edge by its two endpoint keys, smaller first.
type edgeKey struct {
	lo, hi Key
}

func newEdgeKey(a, b Key) edgeKey {
	if a < b {
		return edgeKey{lo: a, hi: b}
	}
	return edgeKey{lo: b, hi: a}
}

// pairing is the plan computed before any link is written.
type pairing struct {
	matches [][2]*Halfedge
}

// planPairing buckets every unpaired half-edge by the undirected edge it
// traverses and checks that each bucket can be matched unambiguously.
// Nothing is mutated.
func (m *Mesh) planPairing() (*pairing, error) {
	buckets := make(map[edgeKey][]*Halfedge)
	var order []edgeKey

	var scanErr error
	m.halfedges.Scan(func(_ Key, h *Halfedge) bool {
		if h.pair != NilKey && m.Halfedge(h.pair) != nil {
			return true
		}
		end := m.EndVertex(h)
		if end == nil || m.Vertex(h.vertex) == nil {
			scanErr = fmt.Errorf("half-edge %d has no origin or no next: %w", h.key, ErrInvalidMesh)
			return false
		}
		if end.key == h.vertex {
			scanErr = fmt.Errorf("half-edge %d starts and ends at vertex %d: %w", h.key, h.vertex, ErrDegenerateFace)
			return false
		}
		k := newEdgeKey(h.vertex, end.key)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], h)
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}

	p := &pairing{}
	for _, k := range order {
		bucket := buckets[k]
		switch len(bucket) {
		case 1:
			// boundary edge, stays unpaired
		case 2:
			a, b := bucket[0], bucket[1]
			if a.vertex == b.vertex {
				return nil, fmt.Errorf("half-edges %d and %d both run from vertex %d to %d: %w",
					a.key, b.key, a.vertex, otherEnd(k, a.vertex), ErrNonManifold)
			}
			p.matches = append(p.matches, [2]*Halfedge{a, b})
		default:
			return nil, fmt.Errorf("%d unpaired half-edges between vertices %d and %d: %w",
				len(bucket), k.lo, k.hi, ErrNonManifold)
		}
	}
	return p, nil
}

func otherEnd(k edgeKey, v Key) Key {
	if k.lo == v {
		return k.hi
	}
	return k.lo
}

// PairHalfedges links every unpaired half-edge with the unpaired half-edge
// running the opposite way between the same two vertices. Half-edges without
// a partner stay on the boundary. When an edge is shared by more than two
// unpaired half-edges, or two of them run the same way, ErrNonManifold is
// returned and no link is written.
//
// Half-edges whose pair points to a removed element count as unpaired.
func (m *Mesh) PairHalfedges() error {
	p, err := m.planPairing()
	if err != nil {
		return err
	}
	for _, match := range p.matches {
		m.SetPair(match[0], match[1])
	}
	return nil
}

// CheckPairing reports the error PairHalfedges would return, without
// linking anything.
func (m *Mesh) CheckPairing() error {
	_, err := m.planPairing()
	return err
}
