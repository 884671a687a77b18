package hemesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("Valid meshes", func(t *testing.T) {
		requireValid(t, twoSquares(t))
		requireValid(t, tetrahedron(t))
		requireValid(t, New())
	})

	t.Run("Asymmetric pair", func(t *testing.T) {
		m := twoSquares(t)
		hes := m.HalfedgesAsArray()
		hes[0].pair = hes[2].Key()
		requireProblem(t, m.Validate())
	})

	t.Run("Wrong vertex anchor", func(t *testing.T) {
		m := tetrahedron(t)
		vs := m.VerticesAsArray()
		m.SetVertexHalfedge(vs[0], m.Halfedge(vs[1].Halfedge()))
		requireProblem(t, m.Validate())
	})

	t.Run("Half-edge of another face in the loop", func(t *testing.T) {
		m := twoSquares(t)
		faces := m.FacesAsArray()
		h := m.Halfedge(faces[0].Halfedge())
		m.SetFace(h, faces[1])
		requireProblem(t, m.Validate())
	})

	t.Run("Open loop", func(t *testing.T) {
		m := twoSquares(t)
		h := m.HalfedgesAsArray()[0]
		m.SetNext(h, nil)
		requireProblem(t, m.Validate())
	})

	t.Run("Loop that misses its anchor", func(t *testing.T) {
		m := twoSquares(t)
		f := m.FacesAsArray()[0]
		hes := m.FaceHalfedges(f)
		// short-circuit the loop past the anchor
		m.SetNext(hes[3], hes[1])
		verr := requireProblem(t, m.Validate())
		assert.NotEmpty(t, verr.Problems)
	})
}

func requireProblem(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidMesh)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	return verr
}
