package modifier

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/hemesh"
)

// Modifier transforms a mesh in place. Apply works on every face of a mesh;
// ApplySelection works on the selected faces only, writing new elements into
// the selection's parent mesh. Both return the mutated mesh.
//
// Invariants may be broken while a modifier runs but hold again when it
// returns. A modifier must not run concurrently with any other mutation of
// the same mesh.
type Modifier interface {
	Apply(m *hemesh.Mesh) (*hemesh.Mesh, error)
	ApplySelection(sel *hemesh.Selection) (*hemesh.Mesh, error)
}

// target is the face set an operator works on plus the mesh owning it. Both
// modifier entry points reduce to one target, so the operator body exists once.
type target struct {
	mesh  *hemesh.Mesh
	faces []*hemesh.Face
	// input is the caller's selection, nil for whole-mesh calls. New faces
	// are appended to it.
	input *hemesh.Selection
}

func wholeMesh(m *hemesh.Mesh) target {
	return target{mesh: m, faces: m.FacesAsArray()}
}

func selected(sel *hemesh.Selection) (target, error) {
	faces, err := sel.FacesAsArray()
	if err != nil {
		return target{}, err
	}
	return target{mesh: sel.Parent(), faces: faces, input: sel}, nil
}

// selection returns a fresh selection of the target faces.
func (t target) selection() (*hemesh.Selection, error) {
	sel := hemesh.NewSelection(t.mesh)
	if err := sel.AddFaces(t.faces...); err != nil {
		return nil, err
	}
	return sel, nil
}

// checkFaceOrders rejects faces the operator cannot split.
func (t target) checkFaceOrders(name string, min int) error {
	for _, f := range t.faces {
		if order := t.mesh.FaceOrder(f); order < min {
			return fmt.Errorf("%s: face %d has order %d: %w: %w",
				name, f.Key(), order, hemesh.ErrUnsupported, hemesh.ErrDegenerateFace)
		}
	}
	return nil
}
