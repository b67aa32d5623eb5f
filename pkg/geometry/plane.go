package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by on-plane and containment predicates.
// It is expressed in distance units, so comparisons normalize by the
// plane normal's length first.
const Epsilon = 1e-7

// GeometryError reports a degenerate geometric construction, such as
// intersecting a line with a plane it is parallel to.
type GeometryError struct {
	Op      string
	Message string
}

func (e GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: %s", e.Op, e.Message)
}

// Plane is the plane A*x + B*y + C*z + D = 0. Each side of the plane
// is a half-space; which side counts as "inside" is decided by the
// polyhedron owning the face, not by the plane itself.
type Plane struct {
	A, B, C, D float64
}

// NewPlane returns the plane with coefficients (a, b, c, d).
func NewPlane(a, b, c, d float64) Plane {
	return Plane{A: a, B: b, C: c, D: d}
}

// PlaneThrough returns the plane with normal n passing through p.
func PlaneThrough(n Vector3D, p Point3D) Plane {
	return Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(p)}
}

// Normal returns the plane's (unnormalized) normal vector.
func (pl Plane) Normal() Vector3D {
	return Vector3D{X: pl.A, Y: pl.B, Z: pl.C}
}

// Eval returns A*x + B*y + C*z + D for the point p. The sign tells
// which side of the plane p lies on.
func (pl Plane) Eval(p Point3D) float64 {
	return pl.A*p.X + pl.B*p.Y + pl.C*p.Z + pl.D
}

// SignedDistance returns the signed euclidean distance from p to the
// plane, positive on the side the normal points to.
func (pl Plane) SignedDistance(p Point3D) float64 {
	return pl.Eval(p) / pl.Normal().Norm()
}

// Distance returns the euclidean distance from p to the plane.
func (pl Plane) Distance(p Point3D) float64 {
	return math.Abs(pl.SignedDistance(p))
}

// ParallelAt returns the plane parallel to pl shifted by the given
// signed distance along the normal direction.
func (pl Plane) ParallelAt(offset float64) Plane {
	return Plane{A: pl.A, B: pl.B, C: pl.C, D: pl.D - offset*pl.Normal().Norm()}
}

// Through re-anchors the plane so that it passes through p while
// keeping the same normal.
func (pl Plane) Through(p Point3D) Plane {
	return PlaneThrough(pl.Normal(), p)
}

// IntersectLine returns the intersection point of the line with the
// plane. It fails with a GeometryError when the line is parallel to
// the plane (including the line-in-plane case).
func (pl Plane) IntersectLine(l Line3D) (Point3D, error) {
	dir := l.Direction()
	denom := pl.Normal().Dot(dir)
	if math.Abs(denom) <= Epsilon*pl.Normal().Norm()*dir.Norm() {
		return Point3D{}, GeometryError{Op: "IntersectLine", Message: "line is parallel to plane"}
	}
	t := -pl.Eval(l.P) / denom
	return l.At(t), nil
}
