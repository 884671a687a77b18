package hemesh

import (
	"cmp"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Selection is a non-owning subset of the elements of one parent mesh. It
// stores keys only, so it never keeps removed elements alive; a stale key is
// reported as ErrNotFound when the selection is resolved.
type Selection struct {
	parent    *Mesh
	faces     mapset.Set[Key]
	vertices  mapset.Set[Key]
	halfedges mapset.Set[Key]
}

// NewSelection creates an empty selection of parent.
func NewSelection(parent *Mesh) *Selection {
	return &Selection{
		parent:    parent,
		faces:     mapset.NewThreadUnsafeSet[Key](),
		vertices:  mapset.NewThreadUnsafeSet[Key](),
		halfedges: mapset.NewThreadUnsafeSet[Key](),
	}
}

// SelectAllFaces returns a selection holding every current face of m.
func SelectAllFaces(m *Mesh) *Selection {
	sel := NewSelection(m)
	m.faces.Scan(func(k Key, _ *Face) bool {
		sel.faces.Add(k)
		return true
	})
	return sel
}

// SelectFacesByLabel returns a selection of the faces of m whose user label
// equals label.
func SelectFacesByLabel(m *Mesh, label int32) *Selection {
	sel := NewSelection(m)
	m.faces.Scan(func(k Key, f *Face) bool {
		if f.Label() == label {
			sel.faces.Add(k)
		}
		return true
	})
	return sel
}

// Parent returns the mesh the selection refers to.
func (s *Selection) Parent() *Mesh {
	return s.parent
}

// AddFaces adds faces owned by the parent mesh.
func (s *Selection) AddFaces(faces ...*Face) error {
	for _, f := range faces {
		if f.owner != s.parent {
			return fmt.Errorf("selecting face %d: %w", f.key, ErrForeignElement)
		}
		s.faces.Add(f.key)
	}
	return nil
}

// AddVertices adds vertices owned by the parent mesh.
func (s *Selection) AddVertices(vertices ...*Vertex) error {
	for _, v := range vertices {
		if v.owner != s.parent {
			return fmt.Errorf("selecting vertex %d: %w", v.key, ErrForeignElement)
		}
		s.vertices.Add(v.key)
	}
	return nil
}

// AddHalfedges adds half-edges owned by the parent mesh.
func (s *Selection) AddHalfedges(halfedges ...*Halfedge) error {
	for _, h := range halfedges {
		if h.owner != s.parent {
			return fmt.Errorf("selecting half-edge %d: %w", h.key, ErrForeignElement)
		}
		s.halfedges.Add(h.key)
	}
	return nil
}

// Union adds every element of other. Both selections must share a parent.
func (s *Selection) Union(other *Selection) error {
	if other.parent != s.parent {
		return fmt.Errorf("merging selections: %w", ErrForeignElement)
	}
	s.faces.Append(other.faces.ToSlice()...)
	s.vertices.Append(other.vertices.ToSlice()...)
	s.halfedges.Append(other.halfedges.ToSlice()...)
	return nil
}

// ContainsVertex reports whether the vertex with key k is selected.
func (s *Selection) ContainsVertex(k Key) bool { return s.vertices.Contains(k) }

// ContainsFace reports whether the face with key k is selected.
func (s *Selection) ContainsFace(k Key) bool { return s.faces.Contains(k) }

// ContainsHalfedge reports whether the half-edge with key k is selected.
func (s *Selection) ContainsHalfedge(k Key) bool { return s.halfedges.Contains(k) }

// NumberOfFaces returns the number of selected faces.
func (s *Selection) NumberOfFaces() int { return s.faces.Cardinality() }

// NumberOfVertices returns the number of selected vertices.
func (s *Selection) NumberOfVertices() int { return s.vertices.Cardinality() }

// NumberOfHalfedges returns the number of selected half-edges.
func (s *Selection) NumberOfHalfedges() int { return s.halfedges.Cardinality() }

func sortedKeys(set mapset.Set[Key]) []Key {
	keys := set.ToSlice()
	slices.Sort(keys)
	return keys
}

// FacesAsArray resolves the selected faces in key order.
func (s *Selection) FacesAsArray() ([]*Face, error) {
	return resolve(sortedKeys(s.faces), s.parent.Face, "face")
}

// VerticesAsArray resolves the selected vertices in key order.
func (s *Selection) VerticesAsArray() ([]*Vertex, error) {
	return resolve(sortedKeys(s.vertices), s.parent.Vertex, "vertex")
}

// HalfedgesAsArray resolves the selected half-edges in key order.
func (s *Selection) HalfedgesAsArray() ([]*Halfedge, error) {
	return resolve(sortedKeys(s.halfedges), s.parent.Halfedge, "half-edge")
}

func resolve[T any](keys []Key, lookup func(Key) *T, kind string) ([]*T, error) {
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		e := lookup(k)
		if e == nil {
			return nil, fmt.Errorf("selected %s %d: %w", kind, k, ErrNotFound)
		}
		out = append(out, e)
	}
	return out, nil
}

// Check verifies that every selected key still resolves in the parent mesh.
func (s *Selection) Check() error {
	if _, err := s.FacesAsArray(); err != nil {
		return err
	}
	if _, err := s.VerticesAsArray(); err != nil {
		return err
	}
	_, err := s.HalfedgesAsArray()
	return err
}

// CollectVertices adds every corner of the selected faces to the vertex set.
func (s *Selection) CollectVertices() error {
	faces, err := s.FacesAsArray()
	if err != nil {
		return err
	}
	for _, f := range faces {
		for _, h := range s.parent.FaceHalfedges(f) {
			s.vertices.Add(h.vertex)
		}
	}
	return nil
}

// CollectEdgesByFace adds every half-edge of the selected faces to the
// half-edge set.
func (s *Selection) CollectEdgesByFace() error {
	faces, err := s.FacesAsArray()
	if err != nil {
		return err
	}
	for _, f := range faces {
		for _, h := range s.parent.FaceHalfedges(f) {
			s.halfedges.Add(h.key)
		}
	}
	return nil
}

// OuterHalfedges returns the half-edges of selected faces that border an
// unselected face or the mesh boundary, in key order.
func (s *Selection) OuterHalfedges() ([]*Halfedge, error) {
	faces, err := s.FacesAsArray()
	if err != nil {
		return nil, err
	}
	var out []*Halfedge
	for _, f := range faces {
		for _, h := range s.parent.FaceHalfedges(f) {
			p := s.parent.PairOf(h)
			if p == nil || !s.faces.Contains(p.face) {
				out = append(out, h)
			}
		}
	}
	slices.SortFunc(out, func(a, b *Halfedge) int {
		return cmp.Compare(a.key, b.key)
	})
	return out, nil
}
