package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

// Metadata is the header block of a persisted fuzzy color space file.
type Metadata struct {
	Name                string
	Description         string
	FuzzyColorSpaceType int
	CrispColorSpaceType int
	Reference           [6]float64 // minX maxX minY maxY minZ maxZ
	Lambda1             float64
	Lambda2             float64
	Partition           bool
	Disjoint            bool
	Covering            bool
	Samples             int
}

// DefaultMetadata returns the metadata block written for a Voronoi
// partition of the 8-bit RGB cube with the given kernel scale.
func DefaultMetadata(lambda float64) Metadata {
	return Metadata{
		Name:                "FCS",
		Description:         "PARTITION",
		FuzzyColorSpaceType: 0,
		CrispColorSpaceType: 1000,
		Reference:           [6]float64{0, 255, 0, 255, 0, 255},
		Lambda1:             lambda,
		Lambda2:             2 - lambda,
		Partition:           true,
		Disjoint:            true,
		Covering:            true,
		Samples:             500,
	}
}

// ftoa formats a float the shortest way that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var headerComment = []string{
	"##################################################################################",
	"#",
	"#  FILE THAT CONTAINS CHECKED ATOMIC FUZZY COLOR SPACE with VORONOI PARTITION",
	"#  Metadata lines start with a fixed @tag followed immediately by the value.",
	"#  Per color: label/centroid line, negative prototypes, face count, then per",
	"#  face the @core, @voronoi and @support blocks (plane, vertex count, vertices).",
	"#",
	"##################################################################################",
}

// Write serializes the space in the .fcs text format: '#' comment
// header, @tag metadata lines, then one block per color. Lines end
// with CRLF. Only polyhedral colors can be persisted.
func Write(w io.Writer, s *Space, meta Metadata) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteString("\r\n")
	}

	for _, c := range headerComment {
		line("%s", c)
	}
	line("@name%s", meta.Name)
	line("@description%s", meta.Description)
	line("@fuzzyColorSpaceType%d", meta.FuzzyColorSpaceType)
	line("@crispColorSpaceType%d", meta.CrispColorSpaceType)
	line("@reference%s\t%s\t%s\t%s\t%s\t%s",
		ftoa(meta.Reference[0]), ftoa(meta.Reference[1]), ftoa(meta.Reference[2]),
		ftoa(meta.Reference[3]), ftoa(meta.Reference[4]), ftoa(meta.Reference[5]))
	line("@lambda1%s", ftoa(meta.Lambda1))
	line("@lambda2%s", ftoa(meta.Lambda2))
	line("@partition%t", meta.Partition)
	line("@disjoint%t", meta.Disjoint)
	line("@covering%t", meta.Covering)
	line("@samples%d", meta.Samples)
	line("@numberOfColors%d", s.Len())

	for i := 0; i < s.Len(); i++ {
		fc, ok := s.Get(i).(*Color)
		if !ok {
			return fmt.Errorf("fuzzy: color %q is not polyhedral and cannot be persisted", s.Get(i).Name())
		}

		line("%s\t%s\t%s\t%s\t%t", fc.Label,
			ftoa(fc.Prototype.X), ftoa(fc.Prototype.Y), ftoa(fc.Prototype.Z), fc.Sample)
		line("@numberOfNegatives%d", len(fc.Negatives))
		for _, n := range fc.Negatives {
			line("%s\t%s\t%s", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
		}

		line("%d", len(fc.Kernel.Faces))
		for j := range fc.Kernel.Faces {
			line("@core")
			writeFace(line, fc.Kernel.Faces[j])
			line("@voronoi")
			writeFace(line, fc.Volume.Faces[j])
			line("@support")
			writeFace(line, fc.Support.Faces[j])
		}
	}
	return bw.Flush()
}

func writeFace(line func(string, ...interface{}), f *geometry.Face) {
	line("%s\t%s\t%s\t%s\t%t",
		ftoa(f.Plane.A), ftoa(f.Plane.B), ftoa(f.Plane.C), ftoa(f.Plane.D), f.Open)
	line("%d", len(f.Vertices))
	for _, v := range f.Vertices {
		line("%s\t%s\t%s", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
}

// WriteFile writes the space to path with the default metadata for
// the given lambda.
func WriteFile(path string, s *Space, lambda float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fuzzy: %w", err)
	}
	if err := Write(f, s, DefaultMetadata(lambda)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fcsReader parses the .fcs format line by line.
type fcsReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *fcsReader) next() (string, error) {
	for r.sc.Scan() {
		r.line++
		s := r.sc.Text()
		if strings.HasPrefix(s, "#") {
			continue
		}
		return s, nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("unexpected end of file at line %d", r.line)
}

// tagged reads the next line and strips the fixed tag prefix,
// failing with a ConfigurationError when the tag does not match.
func (r *fcsReader) tagged(tag string) (string, error) {
	s, err := r.next()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(s, tag) {
		return "", voronoi.ConfigurationError{
			Message: fmt.Sprintf("line %d: expected tag %s, got %q", r.line, tag, s),
		}
	}
	return s[len(tag):], nil
}

func (r *fcsReader) taggedInt(tag string) (int, error) {
	s, err := r.tagged(tag)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
	}
	return n, nil
}

func (r *fcsReader) taggedFloat(tag string) (float64, error) {
	s, err := r.tagged(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
	}
	return v, nil
}

func (r *fcsReader) taggedBool(tag string) (bool, error) {
	s, err := r.tagged(tag)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(s) == "true", nil
}

func (r *fcsReader) intLine() (int, error) {
	s, err := r.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
	}
	return n, nil
}

func (r *fcsReader) pointLine() (geometry.Point3D, error) {
	s, err := r.next()
	if err != nil {
		return geometry.Point3D{}, err
	}
	fields := strings.Split(s, "\t")
	if len(fields) < 3 {
		return geometry.Point3D{}, fmt.Errorf("fuzzy: line %d: point line needs 3 fields, got %d", r.line, len(fields))
	}
	var c [3]float64
	for k := 0; k < 3; k++ {
		c[k], err = strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return geometry.Point3D{}, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
		}
	}
	return geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}, nil
}

// readFace reads one face block: the plane line (normal, offset, open
// flag) then the vertex ring.
func (r *fcsReader) readFace() (*geometry.Face, error) {
	s, err := r.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Split(s, "\t")
	if len(fields) < 5 {
		return nil, fmt.Errorf("fuzzy: line %d: plane line needs 5 fields, got %d", r.line, len(fields))
	}
	var coef [4]float64
	for k := 0; k < 4; k++ {
		coef[k], err = strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return nil, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
		}
	}
	open := fields[4] == "true"

	count, err := r.intLine()
	if err != nil {
		return nil, err
	}
	vertices := make([]geometry.Point3D, 0, count)
	for k := 0; k < count; k++ {
		v, err := r.pointLine()
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}
	return geometry.NewFace(geometry.NewPlane(coef[0], coef[1], coef[2], coef[3]), vertices, open), nil
}

// Read parses a .fcs file back into a space and its metadata.
func Read(rd io.Reader) (*Space, Metadata, error) {
	r := &fcsReader{sc: bufio.NewScanner(rd)}
	r.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var meta Metadata
	var err error
	if meta.Name, err = r.tagged("@name"); err != nil {
		return nil, meta, err
	}
	if meta.Description, err = r.tagged("@description"); err != nil {
		return nil, meta, err
	}
	if meta.FuzzyColorSpaceType, err = r.taggedInt("@fuzzyColorSpaceType"); err != nil {
		return nil, meta, err
	}
	if meta.CrispColorSpaceType, err = r.taggedInt("@crispColorSpaceType"); err != nil {
		return nil, meta, err
	}
	ref, err := r.tagged("@reference")
	if err != nil {
		return nil, meta, err
	}
	refFields := strings.Split(ref, "\t")
	if len(refFields) >= 6 {
		for k := 0; k < 6; k++ {
			meta.Reference[k], _ = strconv.ParseFloat(refFields[k], 64)
		}
	}
	if meta.Lambda1, err = r.taggedFloat("@lambda1"); err != nil {
		return nil, meta, err
	}
	if meta.Lambda2, err = r.taggedFloat("@lambda2"); err != nil {
		return nil, meta, err
	}
	if meta.Partition, err = r.taggedBool("@partition"); err != nil {
		return nil, meta, err
	}
	if meta.Disjoint, err = r.taggedBool("@disjoint"); err != nil {
		return nil, meta, err
	}
	if meta.Covering, err = r.taggedBool("@covering"); err != nil {
		return nil, meta, err
	}
	if meta.Samples, err = r.taggedInt("@samples"); err != nil {
		return nil, meta, err
	}
	numColors, err := r.taggedInt("@numberOfColors")
	if err != nil {
		return nil, meta, err
	}

	space := NewSpace()
	for i := 0; i < numColors; i++ {
		s, err := r.next()
		if err != nil {
			return nil, meta, err
		}
		fields := strings.Split(s, "\t")
		if len(fields) < 5 {
			return nil, meta, fmt.Errorf("fuzzy: line %d: color line needs 5 fields, got %d", r.line, len(fields))
		}
		label := fields[0]
		var c [3]float64
		for k := 0; k < 3; k++ {
			c[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, meta, fmt.Errorf("fuzzy: line %d: %w", r.line, err)
			}
		}
		centroid := geometry.Point3D{X: c[0], Y: c[1], Z: c[2]}
		sample := fields[4] == "true"

		numNegatives, err := r.taggedInt("@numberOfNegatives")
		if err != nil {
			return nil, meta, err
		}
		negatives := make([]geometry.Point3D, 0, numNegatives)
		for k := 0; k < numNegatives; k++ {
			n, err := r.pointLine()
			if err != nil {
				return nil, meta, err
			}
			negatives = append(negatives, n)
		}

		numFaces, err := r.intLine()
		if err != nil {
			return nil, meta, err
		}
		var kernelFaces, volumeFaces, supportFaces []*geometry.Face
		for j := 0; j < numFaces; j++ {
			for _, block := range []struct {
				tag   string
				faces *[]*geometry.Face
			}{
				{"@core", &kernelFaces},
				{"@voronoi", &volumeFaces},
				{"@support", &supportFaces},
			} {
				if _, err := r.tagged(block.tag); err != nil {
					return nil, meta, err
				}
				f, err := r.readFace()
				if err != nil {
					return nil, meta, err
				}
				*block.faces = append(*block.faces, f)
			}
		}

		space.Add(&Color{
			Label:     label,
			Prototype: centroid,
			Negatives: negatives,
			Sample:    sample,
			Kernel:    geometry.NewPolyhedron(kernelFaces, centroid),
			Volume:    geometry.NewPolyhedron(volumeFaces, centroid),
			Support:   geometry.NewPolyhedron(supportFaces, centroid),
		})
	}

	return space, meta, nil
}

// ReadFile parses the .fcs file at path.
func ReadFile(path string) (*Space, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("fuzzy: %w", err)
	}
	defer f.Close()
	return Read(f)
}
