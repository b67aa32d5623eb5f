package fuzzy

import (
	"runtime"
	"sync"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

// GranularSpec describes one granular color to build: its label and
// the positive and negative prototypes shaping its granules.
type GranularSpec struct {
	Label     string
	Positives []geometry.Point3D
	Negatives []geometry.Point3D
}

// NewGranularColor builds a granular fuzzy color. The union of the
// positive and negative prototypes is tessellated; only the cells of
// positive prototypes become granules.
func NewGranularColor(label string, positives, negatives []geometry.Point3D, lambda float64, engine voronoi.Engine, opts ...Option) (*GranularColor, error) {
	cfg := newConfig(opts)

	centroids := make([]geometry.Point3D, 0, len(positives)+len(negatives))
	centroids = append(centroids, positives...)
	centroids = append(centroids, negatives...)

	sub, err := newSelectedSpace(centroids, positives, lambda, engine, cfg)
	if err != nil {
		return nil, err
	}

	g := &GranularColor{Label: label}
	for _, c := range sub.polyhedral() {
		c.Negatives = append([]geometry.Point3D(nil), negatives...)
		g.Members = append(g.Members, c)
	}
	return g, nil
}

// NewGranularSpace builds one granular color per spec concurrently.
// Each task runs its own sub-tessellation; appends into the shared
// space are serialized. The call blocks until every task has finished.
// A task that fails (or panics) is logged and its color is simply
// absent from the result.
func NewGranularSpace(specs []GranularSpec, lambda float64, engine voronoi.Engine, opts ...Option) *Space {
	cfg := newConfig(opts)
	space := NewSpace()

	workers := runtime.NumCPU()
	if workers > len(specs) {
		workers = len(specs)
	}
	if workers < 1 {
		return space
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	tasks := make(chan GranularSpec)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range tasks {
				buildGranular(spec, lambda, engine, cfg, space, &mu)
			}
		}()
	}

	for _, spec := range specs {
		tasks <- spec
	}
	close(tasks)
	wg.Wait()

	return space
}

// buildGranular runs one granular task, recovering panics so a single
// degenerate color never takes the whole space down.
func buildGranular(spec GranularSpec, lambda float64, engine voronoi.Engine, cfg config, space *Space, mu *sync.Mutex) {
	defer func() {
		if r := recover(); r != nil {
			cfg.log.Errorw("granular color panicked", "label", spec.Label, "panic", r)
		}
	}()

	cfg.log.Infow("creating granular color", "label", spec.Label)
	g, err := NewGranularColor(spec.Label, spec.Positives, spec.Negatives, lambda, engine, WithLogger(cfg.log))
	if err != nil {
		cfg.log.Errorw("granular color failed", "label", spec.Label, "error", err)
		return
	}

	mu.Lock()
	space.Add(g)
	mu.Unlock()
}
