package fuzzy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

// Option configures fuzzy color space construction.
type Option func(*config)

type config struct {
	log *zap.SugaredLogger
}

// WithLogger routes construction and repair diagnostics to the given
// logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *config) { c.log = log }
}

func newConfig(opts []Option) config {
	cfg := config{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewVoronoiSpace builds a fuzzy color space from labeled centroids: one
// Voronoi cell per centroid, scaled by lambda into kernel and support
// polytopes, followed by the cross-color consistency repair.
//
// A color whose scaling fails is logged and left out of the space; the
// space itself is only nil when the tessellation cannot be built.
func NewVoronoiSpace(centroids []geometry.Point3D, labels []string, lambda float64, engine voronoi.Engine, opts ...Option) (*Space, error) {
	cfg := newConfig(opts)
	if len(labels) != len(centroids) {
		return nil, voronoi.ConfigurationError{
			Message: fmt.Sprintf("got %d labels for %d centroids", len(labels), len(centroids)),
		}
	}

	tess, err := voronoi.New(centroids, engine, voronoi.WithLogger(cfg.log))
	if err != nil {
		return nil, err
	}
	return FromTessellation(tess, labels, lambda, opts...)
}

// FromTessellation builds the fuzzy color space for an already
// computed (and repaired) tessellation.
func FromTessellation(t *voronoi.Tessellation, labels []string, lambda float64, opts ...Option) (*Space, error) {
	cfg := newConfig(opts)
	if len(labels) != len(t.Points()) {
		return nil, voronoi.ConfigurationError{
			Message: fmt.Sprintf("got %d labels for %d centroids", len(labels), len(t.Points())),
		}
	}

	space := NewSpace()
	for i, centroid := range t.Points() {
		c, err := ScaledColor(labels[i], t.Cell(i), centroid, lambda)
		if err != nil {
			cfg.log.Errorw("skipping color: scaling failed", "label", labels[i], "error", err)
			continue
		}
		space.Add(c)
	}

	repairConsistency(space.polyhedral(), cfg.log)
	return space, nil
}

// newSelectedSpace tessellates all centroids but keeps fuzzy colors
// only for the selected prototypes. Used by granular colors, where the
// negative prototypes shape the cells but get no color of their own.
func newSelectedSpace(centroids, selected []geometry.Point3D, lambda float64, engine voronoi.Engine, cfg config) (*Space, error) {
	tess, err := voronoi.New(centroids, engine, voronoi.WithLogger(cfg.log))
	if err != nil {
		return nil, err
	}

	keep := make(map[geometry.Point3D]bool, len(selected))
	for _, p := range selected {
		keep[p] = true
	}

	space := NewSpace()
	for i, centroid := range tess.Points() {
		if !keep[centroid] {
			continue
		}
		c, err := ScaledColor(fmt.Sprintf("Color %d", i), tess.Cell(i), centroid, lambda)
		if err != nil {
			cfg.log.Errorw("skipping granule: scaling failed", "index", i, "error", err)
			continue
		}
		space.Add(c)
	}

	repairConsistency(space.polyhedral(), cfg.log)
	return space, nil
}
