package hemesh

import (
	"errors"
	"testing"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairHalfedges(t *testing.T) {
	t.Run("Shared edge is paired", func(t *testing.T) {
		m := twoSquares(t)
		requireValid(t, m)

		stats := m.Stats()
		assert.Equal(t, 8, stats.Halfedges)
		assert.Equal(t, 6, stats.BoundaryHalfedges)
	})

	t.Run("Closed mesh has no boundary", func(t *testing.T) {
		m := tetrahedron(t)
		requireValid(t, m)
		assert.Equal(t, 0, m.Stats().BoundaryHalfedges)
	})

	t.Run("Pairing is symmetric and reversed", func(t *testing.T) {
		m := tetrahedron(t)
		for h := range m.Halfedges() {
			p := m.PairOf(h)
			require.NotNil(t, p)
			assert.Equal(t, h.Key(), p.Pair())
			assert.Equal(t, m.Origin(h), m.EndVertex(p))
			assert.Equal(t, m.EndVertex(h), m.Origin(p))
		}
	})

	t.Run("Repairing is a no-op", func(t *testing.T) {
		m := tetrahedron(t)
		before := pairsOf(m)
		require.NoError(t, m.PairHalfedges())
		assert.Equal(t, before, pairsOf(m))
	})

	t.Run("Cleared pairs are restored", func(t *testing.T) {
		m := twoSquares(t)
		before := pairsOf(m)
		for h := range m.Halfedges() {
			m.ClearPair(h)
		}
		assert.Equal(t, 8, m.Stats().BoundaryHalfedges)
		require.NoError(t, m.PairHalfedges())
		assert.Equal(t, before, pairsOf(m))
	})
}

func TestPairHalfedgesNonManifold(t *testing.T) {
	positions := []geom.Vec3{{X: 0}, {X: 1}, {Y: 1}, {Y: -1}, {Z: 1}}

	t.Run("Three half-edges on one edge", func(t *testing.T) {
		m, err := buildFacelist(positions, [][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
		require.NoError(t, err)

		err = m.PairHalfedges()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonManifold))

		// nothing was linked
		for h := range m.Halfedges() {
			assert.Equal(t, NilKey, h.Pair())
		}
	})

	t.Run("Two half-edges running the same way", func(t *testing.T) {
		m, err := buildFacelist(positions, [][]int{{0, 1, 2}, {0, 1, 3}})
		require.NoError(t, err)
		require.ErrorIs(t, m.CheckPairing(), ErrNonManifold)
		require.ErrorIs(t, m.PairHalfedges(), ErrNonManifold)
	})

	t.Run("FromFacelist surfaces the condition", func(t *testing.T) {
		_, err := FromFacelist(positions, [][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
		require.ErrorIs(t, err, ErrNonManifold)
	})
}

func TestPairHalfedgesBrokenLoop(t *testing.T) {
	m := New()
	v := NewVertex(geom.Vec3{})
	require.NoError(t, m.AddVertex(v))
	h := NewHalfedge()
	require.NoError(t, m.AddHalfedge(h))
	m.SetVertex(h, v)

	require.ErrorIs(t, m.PairHalfedges(), ErrInvalidMesh)
}

func pairsOf(m *Mesh) map[Key]Key {
	out := make(map[Key]Key)
	for h := range m.Halfedges() {
		out[h.Key()] = h.Pair()
	}
	return out
}
