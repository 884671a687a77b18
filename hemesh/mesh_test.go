package hemesh

import (
	"testing"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFacelist(t *testing.T) {
	t.Run("Single square", func(t *testing.T) {
		m, err := FromFacelist(unitSquare(), [][]int{{0, 1, 2, 3}})
		require.NoError(t, err)
		requireValid(t, m)

		assert.Equal(t, 4, m.NumberOfVertices())
		assert.Equal(t, 4, m.NumberOfHalfedges())
		assert.Equal(t, 1, m.NumberOfFaces())

		f := m.FacesAsArray()[0]
		assert.Equal(t, 4, m.FaceOrder(f))
		assert.Equal(t, geom.Vec3{X: 0.5, Y: 0.5}, m.FaceCenter(f))
		assert.InDelta(t, 1, m.FaceNormal(f).Z, 1e-12)
	})

	t.Run("Face with two corners", func(t *testing.T) {
		_, err := FromFacelist(unitSquare(), [][]int{{0, 1}})
		require.ErrorIs(t, err, ErrDegenerateFace)
	})

	t.Run("Repeated corner", func(t *testing.T) {
		_, err := FromFacelist(unitSquare(), [][]int{{0, 1, 1, 2}})
		require.ErrorIs(t, err, ErrDegenerateFace)
	})

	t.Run("Index out of range", func(t *testing.T) {
		_, err := FromFacelist(unitSquare(), [][]int{{0, 1, 7}})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFaceLoops(t *testing.T) {
	m := tetrahedron(t)
	for f := range m.Faces() {
		hes := m.FaceHalfedges(f)
		require.Len(t, hes, 3)
		for _, h := range hes {
			assert.Equal(t, f.Key(), h.Face())
		}
		// walking next order times returns to the anchor
		e := m.Halfedge(f.Halfedge())
		for i := 0; i < m.FaceOrder(f); i++ {
			e = m.Next(e)
		}
		assert.Equal(t, f.Halfedge(), e.Key())
		assert.Equal(t, hes[len(hes)-1], m.Prev(hes[0]))
	}
}

func TestVertexHalfedges(t *testing.T) {
	t.Run("Interior vertex of a closed mesh", func(t *testing.T) {
		m := tetrahedron(t)
		for v := range m.Vertices() {
			star := m.VertexHalfedges(v)
			assert.Len(t, star, 3)
			for _, h := range star {
				assert.Equal(t, v.Key(), h.Vertex())
			}
			assert.Len(t, m.VertexFaces(v), 3)
		}
	})

	t.Run("Boundary vertex fan is completed backwards", func(t *testing.T) {
		m := twoSquares(t)
		// vertex 1 and 4 are shared by both quads
		for v := range m.Vertices() {
			faces := m.VertexFaces(v)
			if v.Position.X == 1 {
				assert.Len(t, faces, 2)
			} else {
				assert.Len(t, faces, 1)
			}
		}
	})
}

func TestSnapshotsAreDetached(t *testing.T) {
	m := twoSquares(t)
	faces := m.FacesAsArray()
	count := 0
	for f := range m.Faces() {
		// adding while iterating does not extend the iteration
		nf := NewFace()
		nf.CopyProperties(f)
		require.NoError(t, m.AddFace(nf))
		count++
	}
	assert.Equal(t, len(faces), count)
	assert.Equal(t, 4, m.NumberOfFaces())
}

func TestSnapshotOrderFollowsCreation(t *testing.T) {
	m := New()
	var keys []Key
	for i := 0; i < 10; i++ {
		v := NewVertex(geom.Vec3{X: float64(i)})
		require.NoError(t, m.AddVertex(v))
		keys = append(keys, v.Key())
	}
	for i, v := range m.VerticesAsArray() {
		assert.Equal(t, keys[i], v.Key())
	}
}

func TestForeignElement(t *testing.T) {
	a := New()
	b := New()
	v := NewVertex(geom.Vec3{})
	require.NoError(t, a.AddVertex(v))
	require.NoError(t, a.AddVertex(v), "re-adding to the owner is allowed")
	require.ErrorIs(t, b.AddVertex(v), ErrForeignElement)

	require.True(t, a.RemoveVertex(v.Key()))
	require.False(t, a.RemoveVertex(v.Key()))
	require.NoError(t, b.AddVertex(v), "a removed element can move to another mesh")
}

func TestRemove(t *testing.T) {
	m := twoSquares(t)
	f := m.FacesAsArray()[0]
	h := m.HalfedgesAsArray()[0]
	v := m.VerticesAsArray()[0]

	require.True(t, m.Remove(f.Key()))
	require.True(t, m.Remove(h.Key()))
	require.True(t, m.Remove(v.Key()))
	require.False(t, m.Remove(v.Key()))
	require.False(t, m.Remove(NilKey))

	assert.False(t, m.Contains(f.Key()))
	assert.Equal(t, 5, m.NumberOfVertices())
	assert.Equal(t, 7, m.NumberOfHalfedges())
	assert.Equal(t, 1, m.NumberOfFaces())
	require.Error(t, m.Validate())
}

func TestUVWLookup(t *testing.T) {
	m, err := FromFacelist(unitSquare(), [][]int{{0, 1, 2, 3}})
	require.NoError(t, err)
	f := m.FacesAsArray()[0]
	vs := m.FaceVertices(f)

	_, ok := m.UVW(vs[0], f)
	assert.False(t, ok)

	vs[0].SetUVW(geom.Vec3{X: 0.25})
	uvw, ok := m.UVW(vs[0], f)
	require.True(t, ok)
	assert.Equal(t, geom.Vec3{X: 0.25}, uvw)

	// the corner value wins over the vertex value
	m.HalfedgeInFace(f, vs[0]).SetUVW(geom.Vec3{Y: 0.75})
	uvw, ok = m.UVW(vs[0], f)
	require.True(t, ok)
	assert.Equal(t, geom.Vec3{Y: 0.75}, uvw)
}

func TestStats(t *testing.T) {
	m := twoSquares(t)
	stats := m.Stats()
	assert.Equal(t, 6, stats.Vertices)
	assert.Equal(t, 2, stats.Faces)
	assert.Equal(t, map[int]int{4: 2}, stats.FaceOrders)
}
