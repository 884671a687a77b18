// Package primitive creates simple procedural meshes. Every primitive carries
// vertex-wide UVWs, and each face is labeled with its index in creation
// order.
package primitive

import (
	"fmt"
	"math"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/bloodmagesoftware/hemesh/hemesh"
)

// Polygon returns a single regular polygon in the XY plane, centered on the
// origin, with its first corner on the positive X axis.
func Polygon(sides int, radius float64) (*hemesh.Mesh, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon with %d sides: %w", sides, hemesh.ErrDegenerateFace)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("polygon radius must be positive, got %g", radius)
	}

	positions := make([]geom.Vec3, sides)
	uvws := make([]geom.Vec3, sides)
	loop := make([]int, sides)
	for i := range sides {
		a := 2 * math.Pi * float64(i) / float64(sides)
		cos, sin := math.Cos(a), math.Sin(a)
		positions[i] = geom.Vec3{X: radius * cos, Y: radius * sin}
		uvws[i] = geom.Vec3{X: 0.5 + 0.5*cos, Y: 0.5 + 0.5*sin}
		loop[i] = i
	}
	return build(positions, uvws, [][]int{loop})
}

// Grid returns rows x cols square quads of edge length size in the XY plane,
// starting at the origin.
func Grid(rows, cols int, size float64) (*hemesh.Mesh, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid needs at least one row and column, got %dx%d", rows, cols)
	}
	if size <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %g", size)
	}

	stride := cols + 1
	positions := make([]geom.Vec3, 0, (rows+1)*stride)
	uvws := make([]geom.Vec3, 0, (rows+1)*stride)
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			positions = append(positions, geom.Vec3{X: float64(c) * size, Y: float64(r) * size})
			uvws = append(uvws, geom.Vec3{X: float64(c) / float64(cols), Y: float64(r) / float64(rows)})
		}
	}

	faces := make([][]int, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*stride + c
			faces = append(faces, []int{i, i + 1, i + stride + 1, i + stride})
		}
	}
	return build(positions, uvws, faces)
}

// Box returns a closed axis-aligned cube of edge length size centered on the
// origin. Faces wind counter-clockwise seen from outside.
func Box(size float64) (*hemesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("box size must be positive, got %g", size)
	}

	d := size / 2
	positions := []geom.Vec3{
		{X: -d, Y: -d, Z: -d}, {X: d, Y: -d, Z: -d}, {X: d, Y: d, Z: -d}, {X: -d, Y: d, Z: -d},
		{X: -d, Y: -d, Z: d}, {X: d, Y: -d, Z: d}, {X: d, Y: d, Z: d}, {X: -d, Y: d, Z: d},
	}
	uvws := make([]geom.Vec3, len(positions))
	for i, p := range positions {
		uvws[i] = geom.Vec3{X: p.X/size + 0.5, Y: p.Y/size + 0.5, Z: p.Z/size + 0.5}
	}
	faces := [][]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	return build(positions, uvws, faces)
}

func build(positions, uvws []geom.Vec3, faces [][]int) (*hemesh.Mesh, error) {
	m, err := hemesh.FromFacelist(positions, faces)
	if err != nil {
		return nil, err
	}
	// vertices are created in position order, so key order matches
	for i, v := range m.VerticesAsArray() {
		v.SetUVW(uvws[i])
	}
	for i, f := range m.FacesAsArray() {
		f.SetLabel(int32(i))
	}
	return m, nil
}
