// Command jfivoronoi builds a Voronoi fuzzy color space from a color
// palette and writes it in the .fcs text format. The qhull qvoronoi
// binary must be installed (or pointed at with -qvoronoi).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/fuzzy"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/iscc"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/mesh"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

func main() {
	var (
		lambda      = flag.Float64("lambda", 0.75, "kernel scale in [0,1]; support scale is 2-lambda")
		out         = flag.String("out", "voronoi.fcs", "output fuzzy color space file")
		palettePath = flag.String("palette", "", "palette file (label\\tR\\tG\\tB per line); default is the ISCC basic palette")
		qvoronoi    = flag.String("qvoronoi", "", "explicit path to the qvoronoi binary")
		meshDir     = flag.String("mesh", "", "directory for per-color STL meshes (optional)")
		meshCells   = flag.Int("cells", 0, "marching cubes resolution for -mesh (0 = default)")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()
	sugar := logger.Sugar()

	labels, points, err := loadPalette(*palettePath)
	if err != nil {
		sugar.Fatalw("loading palette", "error", err)
	}

	rm, err := voronoi.NewResourceManager()
	if err != nil {
		sugar.Fatalw("resource manager", "error", err)
	}
	defer rm.Close()
	if *qvoronoi != "" {
		rm.SetEnginePath(*qvoronoi)
	}
	engine := voronoi.NewQhullEngine(rm)

	space, err := fuzzy.NewVoronoiSpace(points, labels, *lambda, engine, fuzzy.WithLogger(sugar))
	if err != nil {
		sugar.Fatalw("building fuzzy color space", "error", err)
	}

	if err := fuzzy.WriteFile(*out, space, *lambda); err != nil {
		sugar.Fatalw("writing color space", "path", *out, "error", err)
	}
	sugar.Infow("fuzzy color space written", "path", *out, "colors", space.Len())

	if *meshDir != "" {
		if err := exportMeshes(space, *meshDir, *meshCells, sugar); err != nil {
			sugar.Fatalw("exporting meshes", "error", err)
		}
	}
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	return logger
}

// loadPalette reads a palette file of "label\tR\tG\tB" lines, or
// returns the ISCC basic palette when path is empty.
func loadPalette(path string) ([]string, []geometry.Point3D, error) {
	if path == "" {
		m := iscc.Basic()
		return m.Labels(), m.Points(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var labels []string
	var points []geometry.Point3D
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Split(s, "\t")
		if len(fields) < 4 {
			return nil, nil, fmt.Errorf("%s:%d: need label\\tR\\tG\\tB, got %q", path, line, s)
		}
		var c [3]float64
		for k := 0; k < 3; k++ {
			c[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		labels = append(labels, fields[0])
		points = append(points, geometry.Point3D{X: c[0], Y: c[1], Z: c[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return labels, points, nil
}

// exportMeshes writes one STL per color and region into dir. Colors
// whose polytopes cannot be meshed are logged and skipped.
func exportMeshes(space *fuzzy.Space, dir string, cells int, sugar *zap.SugaredLogger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, fc := range space.Colors() {
		pc, ok := fc.(*fuzzy.Color)
		if !ok {
			sugar.Infow("skipping non-polyhedral color", "label", fc.Name())
			continue
		}
		for _, region := range []mesh.Region{mesh.Kernel, mesh.Volume, mesh.Support} {
			m, err := mesh.FromColor(pc, region, cells)
			if err != nil {
				sugar.Warnw("mesh skipped", "label", pc.Label, "region", region.String(), "error", err)
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf("%s-%s.stl", sanitize(pc.Label), region))
			if err := m.SaveSTL(path); err != nil {
				return err
			}
			sugar.Infow("mesh written", "path", path, "triangles", m.TriangleCount())
		}
	}
	return nil
}

func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, label)
}
