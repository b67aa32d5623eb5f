package geometry

import "math"

// Polyhedron is a convex cell: the intersection of the half-spaces of
// its faces. The inner point selects the inside half-space of every
// face; it is the cell's centroid for Voronoi cells.
//
// Faces are mutated in place by the repair passes (planes re-anchored,
// vertex rings replaced, synthetic faces appended), so they are held
// by pointer.
type Polyhedron struct {
	Faces      []*Face
	InnerPoint Point3D
}

// NewPolyhedron returns a polyhedron with the given faces and inner point.
func NewPolyhedron(faces []*Face, inner Point3D) *Polyhedron {
	return &Polyhedron{Faces: faces, InnerPoint: inner}
}

// AddFace appends a face to the polyhedron.
func (ph *Polyhedron) AddFace(f *Face) {
	ph.Faces = append(ph.Faces, f)
}

// Contains reports whether p satisfies every face's half-space, i.e.
// lies on the same side as the inner point or on the plane itself
// (within tolerance).
func (ph *Polyhedron) Contains(p Point3D) bool {
	for _, f := range ph.Faces {
		sd := f.Plane.SignedDistance(p)
		ref := f.Plane.SignedDistance(ph.InnerPoint)
		if ref >= 0 {
			if sd < -Epsilon {
				return false
			}
		} else {
			if sd > Epsilon {
				return false
			}
		}
	}
	return true
}

// OnFace reports whether p is contained in the polyhedron and lies on
// at least one face's plane within tolerance.
func (ph *Polyhedron) OnFace(p Point3D) bool {
	if !ph.Contains(p) {
		return false
	}
	for _, f := range ph.Faces {
		if f.Plane.Distance(p) <= Epsilon {
			return true
		}
	}
	return false
}

// StrictlyContains reports whether p is inside the polyhedron and off
// all of its faces. Single pass: the cell-repair lattice scan calls
// this for every point of the color cube.
func (ph *Polyhedron) StrictlyContains(p Point3D) bool {
	onFace := false
	for _, f := range ph.Faces {
		sd := f.Plane.SignedDistance(p)
		ref := f.Plane.SignedDistance(ph.InnerPoint)
		if ref >= 0 {
			if sd < -Epsilon {
				return false
			}
		} else {
			if sd > Epsilon {
				return false
			}
		}
		if math.Abs(sd) <= Epsilon {
			onFace = true
		}
	}
	return !onFace
}

// IntersectLine returns the point where the segment from l.P to l.Q
// crosses the polyhedron's boundary. When the segment crosses the
// boundary more than once, the crossing closest to l.P wins. The
// second return value is false when no crossing exists within the
// segment.
func (ph *Polyhedron) IntersectLine(l Line3D) (Point3D, bool) {
	dir := l.Direction()
	var best Point3D
	bestT := -1.0
	for _, f := range ph.Faces {
		denom := f.Plane.Normal().Dot(dir)
		if math.Abs(denom) <= Epsilon*f.Plane.Normal().Norm()*dir.Norm() {
			continue // parallel face, no crossing
		}
		t := -f.Plane.Eval(l.P) / denom
		if t < -Epsilon || t > 1+Epsilon {
			continue
		}
		ip := l.At(t)
		if !ph.Contains(ip) {
			continue
		}
		if bestT < 0 || t < bestT {
			best, bestT = ip, t
		}
	}
	return best, bestT >= 0
}

// Clone returns a deep copy of the polyhedron.
func (ph *Polyhedron) Clone() *Polyhedron {
	faces := make([]*Face, len(ph.Faces))
	for i, f := range ph.Faces {
		faces[i] = f.Clone()
	}
	return &Polyhedron{Faces: faces, InnerPoint: ph.InnerPoint}
}
