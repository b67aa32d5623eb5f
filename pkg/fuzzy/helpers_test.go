package fuzzy_test

import (
	"math"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

const tol = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func pointsClose(a, b geometry.Point3D) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

// cube builds an axis-aligned cube volume of half-extent h around
// center, with closed faces and 4-vertex rings.
func cube(center geometry.Point3D, h float64) *geometry.Polyhedron {
	type axis struct {
		normal geometry.Vector3D
		u, v   geometry.Vector3D
	}
	axes := []axis{
		{geometry.Vector3D{X: 1}, geometry.Vector3D{Y: 1}, geometry.Vector3D{Z: 1}},
		{geometry.Vector3D{X: -1}, geometry.Vector3D{Y: 1}, geometry.Vector3D{Z: 1}},
		{geometry.Vector3D{Y: 1}, geometry.Vector3D{X: 1}, geometry.Vector3D{Z: 1}},
		{geometry.Vector3D{Y: -1}, geometry.Vector3D{X: 1}, geometry.Vector3D{Z: 1}},
		{geometry.Vector3D{Z: 1}, geometry.Vector3D{X: 1}, geometry.Vector3D{Y: 1}},
		{geometry.Vector3D{Z: -1}, geometry.Vector3D{X: 1}, geometry.Vector3D{Y: 1}},
	}

	faces := make([]*geometry.Face, 0, 6)
	for _, ax := range axes {
		mid := center.Add(ax.normal.Mul(h))
		plane := geometry.PlaneThrough(ax.normal, mid)
		ring := []geometry.Point3D{
			mid.Add(ax.u.Mul(h)).Add(ax.v.Mul(h)),
			mid.Add(ax.u.Mul(h)).Add(ax.v.Mul(-h)),
			mid.Add(ax.u.Mul(-h)).Add(ax.v.Mul(-h)),
			mid.Add(ax.u.Mul(-h)).Add(ax.v.Mul(h)),
		}
		faces = append(faces, geometry.NewFace(plane, ring, false))
	}
	return geometry.NewPolyhedron(faces, center)
}

// bisectorEngine computes exact Voronoi facets in-process: the
// perpendicular bisector of every centroid pair, as an open facet with
// no vertex ring.
type bisectorEngine struct{}

func (bisectorEngine) Compute(points []geometry.Point3D) (*voronoi.RawTessellation, error) {
	raw := &voronoi.RawTessellation{}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			normal := points[i].Sub(points[j])
			mid := geometry.Midpoint(points[i], points[j])
			raw.Facets = append(raw.Facets, voronoi.RawFacet{
				I:     i,
				J:     j,
				Plane: geometry.PlaneThrough(normal, mid),
				Open:  true,
			})
		}
	}
	return raw, nil
}
