package hemesh

import (
	"testing"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/stretchr/testify/require"
)

// unitSquare returns the corners of the unit square in the XY plane.
func unitSquare() []geom.Vec3 {
	return []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// twoSquares returns a 2x1 strip of quads sharing the edge 1-4.
//
//	3 --- 4 --- 5
//	|     |     |
//	0 --- 1 --- 2
func twoSquares(t *testing.T) *Mesh {
	t.Helper()
	positions := []geom.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}
	m, err := FromFacelist(positions, [][]int{{0, 1, 4, 3}, {1, 2, 5, 4}})
	require.NoError(t, err)
	return m
}

// tetrahedron returns a closed mesh with four triangles.
func tetrahedron(t *testing.T) *Mesh {
	t.Helper()
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	m, err := FromFacelist(positions, [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}})
	require.NoError(t, err)
	return m
}

func requireValid(t *testing.T, m *Mesh) {
	t.Helper()
	require.NoError(t, m.Validate())
}
