package meshop

import (
	"testing"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T) *hemesh.Mesh {
	t.Helper()
	m, err := hemesh.FromFacelist(
		[]geom.Vec3{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
		[][]int{{0, 1, 2, 3}},
	)
	require.NoError(t, err)
	return m
}

// strip returns two quads sharing one edge.
func strip(t *testing.T) *hemesh.Mesh {
	t.Helper()
	m, err := hemesh.FromFacelist(
		[]geom.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
		},
		[][]int{{0, 1, 4, 3}, {1, 2, 5, 4}},
	)
	require.NoError(t, err)
	return m
}

func TestSplitAllEdges(t *testing.T) {
	t.Run("Single square", func(t *testing.T) {
		m := square(t)
		mids, err := SplitAllEdges(m)
		require.NoError(t, err)
		require.NoError(t, m.Validate())

		assert.Equal(t, 4, mids.NumberOfVertices())
		assert.Equal(t, 8, m.NumberOfVertices())
		f := m.FacesAsArray()[0]
		assert.Equal(t, 8, m.FaceOrder(f))

		vs, err := mids.VerticesAsArray()
		require.NoError(t, err)
		expected := map[geom.Vec3]bool{{X: 1}: true, {X: 2, Y: 1}: true, {X: 1, Y: 2}: true, {Y: 1}: true}
		for _, v := range vs {
			assert.True(t, expected[v.Position], "unexpected midpoint %v", v.Position)
			assert.Equal(t, MidpointLabel, v.InternalLabel())
		}
	})

	t.Run("Corners and midpoints alternate", func(t *testing.T) {
		m := square(t)
		mids, err := SplitAllEdges(m)
		require.NoError(t, err)
		f := m.FacesAsArray()[0]
		hes := m.FaceHalfedges(f)
		for i, h := range hes {
			next := hes[(i+1)%len(hes)]
			assert.NotEqual(t, mids.ContainsVertex(h.Vertex()), mids.ContainsVertex(next.Vertex()))
		}
	})

	t.Run("Shared edge is split once", func(t *testing.T) {
		m := strip(t)
		mids, err := SplitAllEdges(m)
		require.NoError(t, err)
		require.NoError(t, m.Validate())

		assert.Equal(t, 7, mids.NumberOfVertices())
		assert.Equal(t, 13, m.NumberOfVertices())
		assert.Equal(t, 16, m.NumberOfHalfedges())
		assert.Equal(t, 12, m.Stats().BoundaryHalfedges)
	})
}

func TestSplitEdgesSelection(t *testing.T) {
	m := strip(t)
	faces := m.FacesAsArray()
	sel := hemesh.NewSelection(m)
	require.NoError(t, sel.AddFaces(faces[0]))

	mids, err := SplitEdges(sel)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 4, mids.NumberOfVertices())
	assert.Equal(t, 8, m.FaceOrder(faces[0]))
	// the neighbour shares the split edge and gains its midpoint
	assert.Equal(t, 5, m.FaceOrder(faces[1]))
}

func TestSplitEdgesUVW(t *testing.T) {
	m := square(t)
	f := m.FacesAsArray()[0]
	for _, h := range m.FaceHalfedges(f) {
		p := m.Origin(h).Position
		h.SetUVW(geom.Vec3{X: p.X / 2, Y: p.Y / 2})
	}

	mids, err := SplitAllEdges(m)
	require.NoError(t, err)

	for _, h := range m.FaceHalfedges(f) {
		v := m.Origin(h)
		uvw, ok := m.UVW(v, f)
		require.True(t, ok)
		if mids.ContainsVertex(v.Key()) {
			// interpolated from the corners
			assert.Equal(t, geom.Vec3{X: v.Position.X / 2, Y: v.Position.Y / 2}, uvw)
		}
	}
}

func TestSplitEdgesStaleSelection(t *testing.T) {
	m := strip(t)
	sel := hemesh.SelectAllFaces(m)
	require.True(t, m.RemoveFace(m.FacesAsArray()[0].Key()))
	_, err := SplitEdges(sel)
	require.ErrorIs(t, err, hemesh.ErrNotFound)
}
