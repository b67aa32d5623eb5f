package voronoi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// RawFacet is one separating facet from the engine output, resolved
// against the shared vertex table. I and J are the indices of the two
// centroids the facet separates.
type RawFacet struct {
	I, J     int
	Plane    geometry.Plane
	Vertices []geometry.Point3D
	Open     bool
}

// RawTessellation is the engine output after parsing: one resolved
// facet per centroid pair.
type RawTessellation struct {
	Facets []RawFacet
}

// WriteInput encodes a centroid set in the engine's input format:
// the dimension, the point count, then one x\ty\tz line per point.
func WriteInput(w io.Writer, points []geometry.Point3D) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "3\n%d\n", len(points))
	for _, p := range points {
		fmt.Fprintf(bw, "%v\t%v\t%v\n", p.X, p.Y, p.Z)
	}
	return bw.Flush()
}

// lineReader reads non-nil lines from engine output and keeps track of
// position for error reporting.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unexpected end of engine output at line %d", lr.line)
	}
	lr.line++
	return lr.sc.Text(), nil
}

// tokens splits a line on spaces, dropping the stray empty fields the
// engine emits between right-aligned numeric columns.
func tokens(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func (lr *lineReader) nextInt() (int, error) {
	s, err := lr.next()
	if err != nil {
		return 0, err
	}
	toks := tokens(s)
	if len(toks) == 0 {
		return 0, fmt.Errorf("line %d: expected an integer, got empty line", lr.line)
	}
	n, err := strconv.Atoi(toks[0])
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", lr.line, err)
	}
	return n, nil
}

// pairKey identifies an unordered centroid index pair. Facet geometry
// is stored once per pair and looked up via either order.
type pairKey struct {
	lo, hi int
}

func newPairKey(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{lo: i, hi: j}
}

// ParseOutput parses the engine's output: a bounded-facet section, an
// unbounded-facet section, the shared vertex table, and the per-facet
// vertex rings. Vertex index 0 is the point-at-infinity sentinel; it
// forces the facet open and is excluded from the ring.
func ParseOutput(r io.Reader) (*RawTessellation, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	lr.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	planes := make(map[pairKey]geometry.Plane)
	open := make(map[pairKey]bool)

	// Bounded facets, then unbounded facets; same line shape.
	for _, unbounded := range []bool{false, true} {
		count, err := lr.nextInt()
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			s, err := lr.next()
			if err != nil {
				return nil, err
			}
			toks := tokens(s)
			if len(toks) < 7 {
				return nil, fmt.Errorf("line %d: facet line needs 7 fields, got %d", lr.line, len(toks))
			}
			i1, err := strconv.Atoi(toks[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.line, err)
			}
			i2, err := strconv.Atoi(toks[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.line, err)
			}
			// The trailing four numbers are the plane coefficients.
			var coef [4]float64
			for k := 0; k < 4; k++ {
				coef[k], err = strconv.ParseFloat(toks[len(toks)-4+k], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lr.line, err)
				}
			}
			key := newPairKey(i1, i2)
			planes[key] = geometry.NewPlane(coef[0], coef[1], coef[2], coef[3])
			open[key] = unbounded
		}
	}

	// Shared vertex table. The first line is the vertex dimension,
	// which is always 3 and only checked for presence.
	if _, err := lr.nextInt(); err != nil {
		return nil, err
	}
	vertexCount, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	vertices := make([]geometry.Point3D, vertexCount)
	for i := 0; i < vertexCount; i++ {
		s, err := lr.next()
		if err != nil {
			return nil, err
		}
		toks := tokens(s)
		if len(toks) < 3 {
			return nil, fmt.Errorf("line %d: vertex line needs 3 fields, got %d", lr.line, len(toks))
		}
		var c [3]float64
		for k := 0; k < 3; k++ {
			c[k], err = strconv.ParseFloat(toks[k], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.line, err)
			}
		}
		vertices[i] = geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}
	}

	// Per-facet vertex rings: "<n> <i> <j> <v1..vk>" where n counts
	// the index pair plus the ring entries.
	faceCount, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	raw := &RawTessellation{Facets: make([]RawFacet, 0, faceCount)}
	for i := 0; i < faceCount; i++ {
		s, err := lr.next()
		if err != nil {
			return nil, err
		}
		toks := tokens(s)
		if len(toks) < 3 {
			return nil, fmt.Errorf("line %d: face line needs at least 3 fields, got %d", lr.line, len(toks))
		}
		n, err := strconv.Atoi(toks[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lr.line, err)
		}
		i1, err := strconv.Atoi(toks[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lr.line, err)
		}
		i2, err := strconv.Atoi(toks[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lr.line, err)
		}
		if n+1 > len(toks) {
			return nil, fmt.Errorf("line %d: face line declares %d entries but has %d fields", lr.line, n, len(toks))
		}

		key := newPairKey(i1, i2)
		plane, ok := planes[key]
		if !ok {
			return nil, fmt.Errorf("line %d: face references unknown centroid pair (%d,%d)", lr.line, i1, i2)
		}
		facet := RawFacet{I: i1, J: i2, Plane: plane, Open: open[key]}
		for k := 3; k <= n; k++ {
			idx, err := strconv.Atoi(toks[k])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.line, err)
			}
			if idx == 0 {
				// Point at infinity: the ring is not closed.
				facet.Open = true
				continue
			}
			if idx < 1 || idx > len(vertices) {
				return nil, fmt.Errorf("line %d: vertex index %d out of range", lr.line, idx)
			}
			facet.Vertices = append(facet.Vertices, vertices[idx-1])
		}
		raw.Facets = append(raw.Facets, facet)
	}

	return raw, nil
}
