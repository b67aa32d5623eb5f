// Package mesh turns the convex polytopes of a fuzzy color into
// triangle meshes for visualization. A polytope is exposed to the
// sdfx renderer as a signed distance field (the max over its face
// half-space distances) and tessellated with marching cubes.
package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/fuzzy"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 128

// Mesh is a flat triangle mesh: 3 floats per vertex, 3 floats per
// normal, 3 indices per triangle.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
	Name     string
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Region selects which polytope of a fuzzy color to mesh.
type Region int

const (
	Kernel Region = iota
	Volume
	Support
)

func (r Region) String() string {
	switch r {
	case Kernel:
		return "kernel"
	case Volume:
		return "volume"
	case Support:
		return "support"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// Compile-time interface check.
var _ sdf.SDF3 = (*polytopeSDF)(nil)

// polytopeSDF adapts a convex polyhedron to sdf.SDF3. The distance is
// the maximum of the outward-signed face distances: negative inside,
// positive outside, exact up to edge and corner rounding.
type polytopeSDF struct {
	ph *geometry.Polyhedron
	bb sdf.Box3
}

// colorCubePad bounds open polytopes to the color cube plus margin.
const colorCubePad = 16

func newPolytopeSDF(ph *geometry.Polyhedron) *polytopeSDF {
	min := v3.Vec{X: -colorCubePad, Y: -colorCubePad, Z: -colorCubePad}
	max := v3.Vec{X: 255 + colorCubePad, Y: 255 + colorCubePad, Z: 255 + colorCubePad}

	// Tighten the box around the vertex rings when the polytope is
	// closed; open polytopes keep the padded color cube.
	closed := len(ph.Faces) > 0
	for _, f := range ph.Faces {
		if f.Open || len(f.Vertices) == 0 {
			closed = false
			break
		}
	}
	if closed {
		first := ph.Faces[0].Vertices[0]
		lo, hi := first, first
		for _, f := range ph.Faces {
			for _, v := range f.Vertices {
				lo.X, lo.Y, lo.Z = fmin(lo.X, v.X), fmin(lo.Y, v.Y), fmin(lo.Z, v.Z)
				hi.X, hi.Y, hi.Z = fmax(hi.X, v.X), fmax(hi.Y, v.Y), fmax(hi.Z, v.Z)
			}
		}
		min = v3.Vec{X: lo.X - 1, Y: lo.Y - 1, Z: lo.Z - 1}
		max = v3.Vec{X: hi.X + 1, Y: hi.Y + 1, Z: hi.Z + 1}
	}

	return &polytopeSDF{ph: ph, bb: sdf.Box3{Min: min, Max: max}}
}

func fmin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Evaluate returns the signed distance from p to the polytope surface.
func (s *polytopeSDF) Evaluate(p v3.Vec) float64 {
	pt := geometry.Point3D{X: p.X, Y: p.Y, Z: p.Z}
	first := true
	var d float64
	for _, f := range s.ph.Faces {
		sd := f.Plane.SignedDistance(pt)
		if f.Plane.SignedDistance(s.ph.InnerPoint) >= 0 {
			sd = -sd // orient outward: positive away from the inner point
		}
		if first || sd > d {
			d = sd
			first = false
		}
	}
	return d
}

// BoundingBox returns the axis-aligned bounding box.
func (s *polytopeSDF) BoundingBox() sdf.Box3 {
	return s.bb
}

// FromColor meshes one region of a fuzzy color with marching cubes.
// cells <= 0 selects the default resolution.
func FromColor(c *fuzzy.Color, region Region, cells int) (*Mesh, error) {
	var ph *geometry.Polyhedron
	switch region {
	case Kernel:
		ph = c.Kernel
	case Volume:
		ph = c.Volume
	case Support:
		ph = c.Support
	default:
		return nil, fmt.Errorf("mesh: unknown region %v", region)
	}
	if ph == nil || len(ph.Faces) == 0 {
		return nil, fmt.Errorf("mesh: color %q has no %s polytope", c.Label, region)
	}
	if cells <= 0 {
		cells = defaultMeshCells
	}

	s := newPolytopeSDF(ph)
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m := &Mesh{Name: fmt.Sprintf("%s-%s", c.Label, region)}
	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m, nil
}
