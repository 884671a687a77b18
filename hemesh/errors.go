package hemesh

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for mesh operations. Wrapped errors carry the offending
// keys; test for the condition with errors.Is.
var (
	// ErrNotFound is returned when a key does not resolve to an element of
	// the mesh it is looked up in, e.g. a stale selection entry.
	ErrNotFound = errors.New("element not found")

	// ErrNonManifold is returned by pairing when the unpaired half-edges
	// between two vertices cannot be matched one to one.
	ErrNonManifold = errors.New("non-manifold edge")

	// ErrDegenerateFace is returned for faces with fewer than three edges
	// or a repeated corner.
	ErrDegenerateFace = errors.New("degenerate face")

	// ErrForeignElement is returned when an element owned by another mesh
	// is passed to a mesh or selection.
	ErrForeignElement = errors.New("element belongs to another mesh")

	// ErrInvalidMesh is the umbrella condition for broken topology.
	ErrInvalidMesh = errors.New("invalid mesh")

	// ErrUnsupported is returned when an operator is asked to handle input
	// it does not support.
	ErrUnsupported = errors.New("unsupported operation")
)

// ValidationError lists every invariant violation found by Mesh.Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid mesh: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid mesh: %d problems:\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Unwrap lets errors.Is match ErrInvalidMesh.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidMesh
}
