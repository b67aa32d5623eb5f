package voronoi

import (
	"go.uber.org/zap"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// The repair scan covers the 8-bit color cube at integer steps. The
// bound is a property of the color domain, not of the tessellation
// resolution.
const (
	latticeMin = 0
	latticeMax = 255
)

// repairNonTerminated scans the color cube for points that test
// strictly inside two distinct cells. Facet tolerance in the engine
// output can leave such ambiguous regions; each one is closed by a
// synthetic bisector face appended to both cells.
func (t *Tessellation) repairNonTerminated(log *zap.SugaredLogger) {
	repairLattice(t.cells, latticeMin, latticeMax, log)
}

// repairLattice is the scan over [min,max]^3 at integer steps. It is
// deliberately brute force: the tessellation is built offline for a
// few tens of centroids.
//
// Once a cell pair has been separated, the pair is skipped for the
// rest of the scan; the inserted bisector already resolves every
// remaining ambiguous point between the two cells.
func repairLattice(cells []*geometry.Polyhedron, min, max int, log *zap.SugaredLogger) {
	separated := make(map[pairKey]bool)

	for i := min; i <= max; i++ {
		for j := min; j <= max; j++ {
			for k := min; k <= max; k++ {
				p := geometry.Point3D{X: float64(i), Y: float64(j), Z: float64(k)}

				for x := 0; x < len(cells); x++ {
					v1 := cells[x]
					if !v1.StrictlyContains(p) {
						continue
					}
					for y := 0; y < len(cells); y++ {
						if y == x || separated[newPairKey(x, y)] {
							continue
						}
						v2 := cells[y]
						if !v2.StrictlyContains(p) {
							continue
						}
						separateCells(v1, v2)
						separated[newPairKey(x, y)] = true
						log.Infow("separated non-terminated cells",
							"cellA", x, "cellB", y,
							"point", [3]int{i, j, k})
					}
				}
			}
		}
	}
}

// separateCells appends the perpendicular bisector of the two cells'
// inner points to both face lists, as an open face with no vertex
// ring.
func separateCells(v1, v2 *geometry.Polyhedron) {
	normal := v1.InnerPoint.Sub(v2.InnerPoint)
	mid := geometry.Midpoint(v1.InnerPoint, v2.InnerPoint)
	plane := geometry.PlaneThrough(normal, mid)

	v1.AddFace(geometry.NewFace(plane, nil, true))
	v2.AddFace(geometry.NewFace(plane, nil, true))
}
