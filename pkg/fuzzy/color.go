// Package fuzzy builds fuzzy color spaces on top of a Voronoi
// tessellation. Each color is modeled by three nested convex
// polytopes: the kernel ("definitely this color"), the Voronoi cell
// itself, and the support ("possibly this color"). Membership grades
// linearly between the kernel and support boundaries.
package fuzzy

import (
	"math"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// FuzzyColor is anything that grades color-space points: a polyhedral
// color or a granule of them.
type FuzzyColor interface {
	Name() string
	Membership(p geometry.Point3D) float64
}

// Color is a polyhedral fuzzy color. Kernel, Volume and Support are
// index-aligned: face i of each polytope derives from the same
// original Voronoi facet.
type Color struct {
	Label     string
	Prototype geometry.Point3D
	Negatives []geometry.Point3D
	Sample    bool

	Kernel  *geometry.Polyhedron
	Volume  *geometry.Polyhedron
	Support *geometry.Polyhedron
}

// Name returns the color label.
func (c *Color) Name() string {
	return c.Label
}

// Membership returns the membership grade of p: 1 inside the kernel,
// 0 outside the support, and a linear ramp between the two boundaries
// along the ray from the prototype through p.
func (c *Color) Membership(p geometry.Point3D) float64 {
	if c.Kernel.Contains(p) {
		return 1
	}
	if !c.Support.Contains(p) {
		return 0
	}

	ray := geometry.NewLine3D(c.Prototype, p)
	dk, okK := boundaryDistance(c.Kernel, ray)
	ds, okS := boundaryDistance(c.Support, ray)
	if !okK || !okS || ds-dk <= geometry.Epsilon {
		// Degenerate geometry (open polytope along this ray, or
		// lambda=1 where kernel and support coincide).
		return 0.5
	}
	dp := p.Sub(c.Prototype).Norm()
	m := (ds - dp) / (ds - dk)
	return math.Max(0, math.Min(1, m))
}

// boundaryDistance returns the distance from the ray origin to the
// polytope boundary in the ray's forward direction.
func boundaryDistance(ph *geometry.Polyhedron, ray geometry.Line3D) (float64, bool) {
	dir := ray.Direction()
	best := -1.0
	for _, f := range ph.Faces {
		ip, err := f.Plane.IntersectLine(ray)
		if err != nil {
			continue
		}
		if ip.Sub(ray.P).Dot(dir) <= 0 {
			continue // behind the origin
		}
		if !ph.Contains(ip) {
			continue
		}
		if d := ip.Sub(ray.P).Norm(); best < 0 || d < best {
			best = d
		}
	}
	return best, best >= 0
}

// GranularColor is a fuzzy color made of several polyhedral granules,
// one per positive prototype. Its membership is the maximum over the
// granules.
type GranularColor struct {
	Label   string
	Members []*Color
}

// Name returns the granular color label.
func (g *GranularColor) Name() string {
	return g.Label
}

// Membership returns the maximum membership over the member granules.
func (g *GranularColor) Membership(p geometry.Point3D) float64 {
	var max float64
	for _, m := range g.Members {
		if v := m.Membership(p); v > max {
			max = v
		}
	}
	return max
}
