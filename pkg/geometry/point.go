// Package geometry defines the 3D primitives used by the Voronoi
// tessellation and the fuzzy color polytopes: points, lines, planes,
// planar faces and convex polyhedra. Coordinates live in color space,
// so the reference domain is [0,255] per axis, but nothing here
// depends on those bounds.
package geometry

import "github.com/golang/geo/r3"

// Point3D is a point in 3D color space.
type Point3D = r3.Vector

// Vector3D is a direction in 3D color space.
type Vector3D = r3.Vector

// Line3D is the infinite line through two points.
type Line3D struct {
	P, Q Point3D
}

// NewLine3D returns the line through p and q.
func NewLine3D(p, q Point3D) Line3D {
	return Line3D{P: p, Q: q}
}

// Direction returns the (unnormalized) direction vector from P to Q.
func (l Line3D) Direction() Vector3D {
	return l.Q.Sub(l.P)
}

// At returns the point P + t*(Q-P).
func (l Line3D) At(t float64) Point3D {
	return l.P.Add(l.Direction().Mul(t))
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point3D) Point3D {
	return Point3D{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2, Z: (p.Z + q.Z) / 2}
}
