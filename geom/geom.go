package geom

import (
	"math"
)

// Epsilon is the tolerance used when classifying points against planes.
const Epsilon = 1e-9

// Vec3 represents a 3D point or vector
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// AddMul returns v + s*o
func (v Vec3) AddMul(s float64, o Vec3) Vec3 {
	return Vec3{X: v.X + s*o.X, Y: v.Y + s*o.Y, Z: v.Z + s*o.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the euclidean length of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a normalized copy of the vector
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Mid returns the point halfway between a and b
func Mid(a, b Vec3) Vec3 {
	return Vec3{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

// Centroid returns the arithmetic mean of the given points
func Centroid(points []Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	var c Vec3
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}

// Normal computes the unit normal of a polygon with Newell's method.
// It is robust for non-planar and concave loops; a degenerate loop returns
// the zero vector.
func Normal(points []Vec3) Vec3 {
	var n Vec3
	count := len(points)
	for i := 0; i < count; i++ {
		a := points[i]
		b := points[(i+1)%count]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// Plane represents a plane using the equation: Normal · Point = Distance
type Plane struct {
	Normal   Vec3
	Distance float64
}

// NewPlane returns the plane through origin with the given normal
func NewPlane(origin, normal Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Distance: n.Dot(origin)}
}

// PointSide returns the signed distance of p to the plane
// Returns: > 0 for front, < 0 for back, 0 for on the plane
func (pl Plane) PointSide(p Vec3) float64 {
	return pl.Normal.Dot(p) - pl.Distance
}

// ClassifyPoint returns 1 for front, -1 for back, 0 for on the plane
func (pl Plane) ClassifyPoint(p Vec3) int {
	side := pl.PointSide(p)
	if side > Epsilon {
		return 1 // Front
	} else if side < -Epsilon {
		return -1 // Back
	}
	return 0 // On plane
}

// Offset returns the plane shifted by d along its normal
func (pl Plane) Offset(d float64) Plane {
	return Plane{Normal: pl.Normal, Distance: pl.Distance + d}
}
