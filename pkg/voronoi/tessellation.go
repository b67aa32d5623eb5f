// Package voronoi builds 3D Voronoi tessellations of color space. The
// convex-hull computation itself is delegated to an external engine
// (qhull's qvoronoi run as a subprocess); this package drives it,
// turns its facet data into one convex Polyhedron per centroid, and
// repairs numerically degenerate cells.
package voronoi

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// MinPoints is the minimum centroid count the external engine accepts.
const MinPoints = 5

// Tessellation is a Voronoi tessellation of 3D color space: a fixed
// centroid list plus one convex cell per centroid, index-aligned.
// Cells are mutated in place by the repair passes; centroids never
// change.
type Tessellation struct {
	points []geometry.Point3D
	cells  []*geometry.Polyhedron
}

// Option configures tessellation construction.
type Option func(*config)

type config struct {
	log *zap.SugaredLogger
}

// WithLogger routes repair diagnostics to the given logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *config) { c.log = log }
}

// New computes the Voronoi tessellation of the given centroids using
// the engine and repairs non-terminated cells. It fails with a
// ConfigurationError before invoking the engine when fewer than
// MinPoints centroids are given.
func New(points []geometry.Point3D, engine Engine, opts ...Option) (*Tessellation, error) {
	cfg := config{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(points) < MinPoints {
		return nil, ConfigurationError{
			Message: fmt.Sprintf("got %d points, the engine requires at least %d", len(points), MinPoints),
		}
	}

	raw, err := engine.Compute(points)
	if err != nil {
		return nil, err
	}

	t := build(points, raw)
	t.repairNonTerminated(cfg.log)
	return t, nil
}

// build groups the engine facets by the centroids they touch. Facet
// (i,j) contributes a face to cell i and an independent copy to cell
// j: the two cells never share a Face value, so later repairs may
// diverge them.
func build(points []geometry.Point3D, raw *RawTessellation) *Tessellation {
	cells := make([]*geometry.Polyhedron, len(points))
	for i, p := range points {
		cells[i] = geometry.NewPolyhedron(nil, p)
	}
	for _, facet := range raw.Facets {
		f := geometry.NewFace(facet.Plane, facet.Vertices, facet.Open)
		if facet.I >= 0 && facet.I < len(cells) {
			cells[facet.I].AddFace(f.Clone())
		}
		if facet.J >= 0 && facet.J < len(cells) {
			cells[facet.J].AddFace(f.Clone())
		}
	}
	return &Tessellation{points: points, cells: cells}
}

// Points returns the centroid list.
func (t *Tessellation) Points() []geometry.Point3D {
	return t.points
}

// Cells returns the cell list, index-aligned with Points.
func (t *Tessellation) Cells() []*geometry.Polyhedron {
	return t.cells
}

// Cell returns the cell of the i-th centroid.
func (t *Tessellation) Cell(i int) *geometry.Polyhedron {
	return t.cells[i]
}
