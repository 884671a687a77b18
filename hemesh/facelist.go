package hemesh

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/geom"
)

// FromFacelist builds a mesh from vertex positions and faces given as loops
// of position indices. Faces must have at least three distinct corners.
// Shared edges are paired; edges used by a single face stay on the boundary.
func FromFacelist(positions []geom.Vec3, faces [][]int) (*Mesh, error) {
	m, err := buildFacelist(positions, faces)
	if err != nil {
		return nil, err
	}
	if err := m.PairHalfedges(); err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	return m, nil
}

// buildFacelist creates the face loops without pairing them.
func buildFacelist(positions []geom.Vec3, faces [][]int) (*Mesh, error) {
	// Validate everything up front so no half-built mesh escapes
	for fi, loop := range faces {
		if len(loop) < 3 {
			return nil, fmt.Errorf("face %d has %d corners: %w", fi, len(loop), ErrDegenerateFace)
		}
		corners := make(map[int]bool, len(loop))
		for _, idx := range loop {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d): %w", fi, idx, len(positions), ErrNotFound)
			}
			if corners[idx] {
				return nil, fmt.Errorf("face %d repeats vertex %d: %w", fi, idx, ErrDegenerateFace)
			}
			corners[idx] = true
		}
	}

	m := New()
	vertices := make([]*Vertex, len(positions))
	for i, p := range positions {
		vertices[i] = NewVertex(p)
		_ = m.AddVertex(vertices[i])
	}

	for _, loop := range faces {
		f := NewFace()
		_ = m.AddFace(f)
		hes := make([]*Halfedge, len(loop))
		for i, idx := range loop {
			h := NewHalfedge()
			_ = m.AddHalfedge(h)
			m.SetVertex(h, vertices[idx])
			m.SetFace(h, f)
			if vertices[idx].halfedge == NilKey {
				m.SetVertexHalfedge(vertices[idx], h)
			}
			hes[i] = h
		}
		for i, h := range hes {
			m.SetNext(h, hes[(i+1)%len(hes)])
		}
		m.SetFaceHalfedge(f, hes[0])
	}
	return m, nil
}
