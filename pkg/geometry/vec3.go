// Package geometry provides the small amount of 3D vector math meshwalk needs.
package geometry

import "math"

// Vec3 is a point or direction in 3D space.
//
// Components are float32 to match the binary STL encoding's native precision.
// Text-decoded coordinates are narrowed to float32 as well, so values compare
// identically regardless of the source encoding. The array representation is
// comparable, which lets a Vec3 serve directly as a map key when interning
// vertices.
type Vec3 [3]float32

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(x*x + y*y + z*z)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Centroid returns the mean point of a, b and c.
func Centroid(a, b, c Vec3) Vec3 {
	return Vec3{
		(a[0] + b[0] + c[0]) / 3,
		(a[1] + b[1] + c[1]) / 3,
		(a[2] + b[2] + c[2]) / 3,
	}
}
