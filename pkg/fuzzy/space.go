package fuzzy

import "github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"

// Space is an ordered collection of fuzzy colors.
type Space struct {
	colors []FuzzyColor
}

// NewSpace returns an empty space.
func NewSpace() *Space {
	return &Space{}
}

// Add appends a color to the space.
func (s *Space) Add(c FuzzyColor) {
	s.colors = append(s.colors, c)
}

// Len returns the number of colors.
func (s *Space) Len() int {
	return len(s.colors)
}

// Get returns the i-th color.
func (s *Space) Get(i int) FuzzyColor {
	return s.colors[i]
}

// Find returns the color with the given label, or nil.
func (s *Space) Find(label string) FuzzyColor {
	for _, c := range s.colors {
		if c.Name() == label {
			return c
		}
	}
	return nil
}

// Colors returns the underlying color list.
func (s *Space) Colors() []FuzzyColor {
	return s.colors
}

// Classify returns the label of the color with the highest membership
// for p and that membership. The empty label means no color claims p.
func (s *Space) Classify(p geometry.Point3D) (string, float64) {
	var label string
	var best float64
	for _, c := range s.colors {
		if v := c.Membership(p); v > best {
			label, best = c.Name(), v
		}
	}
	return label, best
}

// polyhedral returns the polyhedral colors in order, skipping any
// granular entries.
func (s *Space) polyhedral() []*Color {
	var out []*Color
	for _, c := range s.colors {
		if pc, ok := c.(*Color); ok {
			out = append(out, pc)
		}
	}
	return out
}
