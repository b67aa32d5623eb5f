package geometry

// Face is a plane restricted to an ordered vertex ring. An open face
// has no finite ring (or an incomplete one) and extends to infinity.
//
// A Face belongs to exactly one Polyhedron. When two adjacent Voronoi
// cells share a geometric facet, each cell holds its own Face copy;
// the repair passes mutate them independently and are allowed to
// diverge them.
type Face struct {
	Plane    Plane
	Vertices []Point3D
	Open     bool
}

// NewFace returns a face on the given plane with the given vertex ring.
func NewFace(plane Plane, vertices []Point3D, open bool) *Face {
	return &Face{Plane: plane, Vertices: vertices, Open: open}
}

// Clone returns an independent copy of the face.
func (f *Face) Clone() *Face {
	vs := make([]Point3D, len(f.Vertices))
	copy(vs, f.Vertices)
	return &Face{Plane: f.Plane, Vertices: vs, Open: f.Open}
}
