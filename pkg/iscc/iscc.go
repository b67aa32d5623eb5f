// Package iscc provides the ISCC-NBS basic color categories as
// labeled prototypes in 8-bit RGB space, the usual seed palette for a
// Voronoi fuzzy color space.
package iscc

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// Map is an ordered set of labeled color prototypes.
type Map struct {
	labels []string
	points map[string]geometry.Point3D
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{points: make(map[string]geometry.Point3D)}
}

// Set adds or replaces the prototype for a label, keeping insertion
// order for new labels.
func (m *Map) Set(label string, p geometry.Point3D) {
	if _, exists := m.points[label]; !exists {
		m.labels = append(m.labels, label)
	}
	m.points[label] = p
}

// SetHex adds a prototype given as a hex color like "#BE0032".
func (m *Map) SetHex(label, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("iscc: %q: %w", label, err)
	}
	r, g, b := c.RGB255()
	m.Set(label, geometry.Point3D{X: float64(r), Y: float64(g), Z: float64(b)})
	return nil
}

// Len returns the number of prototypes.
func (m *Map) Len() int {
	return len(m.labels)
}

// Labels returns the labels in insertion order.
func (m *Map) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Points returns the prototypes in label order.
func (m *Map) Points() []geometry.Point3D {
	out := make([]geometry.Point3D, len(m.labels))
	for i, l := range m.labels {
		out[i] = m.points[l]
	}
	return out
}

// Get returns the prototype for a label.
func (m *Map) Get(label string) (geometry.Point3D, bool) {
	p, ok := m.points[label]
	return p, ok
}

// Subset returns the prototypes whose labels match the regular
// expression pattern, keeping order.
func (m *Map) Subset(pattern string) (*Map, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("iscc: subset pattern: %w", err)
	}
	out := NewMap()
	for _, l := range m.labels {
		if re.MatchString(l) {
			out.Set(l, m.points[l])
		}
	}
	return out, nil
}

// basicCentroids are the Kelly centroid colors of the 13 ISCC-NBS
// basic categories.
var basicCentroids = []struct {
	label string
	hex   string
}{
	{"pink", "#FFB5BA"},
	{"red", "#BE0032"},
	{"orange", "#F38400"},
	{"brown", "#80461B"},
	{"yellow", "#F3C300"},
	{"olive", "#665D1E"},
	{"yellow-green", "#8DB600"},
	{"green", "#008856"},
	{"blue", "#0067A5"},
	{"purple", "#9A4EAE"},
	{"white", "#F2F3F4"},
	{"gray", "#848482"},
	{"black", "#222222"},
}

// Basic returns the 13 basic ISCC-NBS categories with their centroid
// prototypes.
func Basic() *Map {
	m := NewMap()
	for _, c := range basicCentroids {
		if err := m.SetHex(c.label, c.hex); err != nil {
			panic(err) // static palette, parse cannot fail
		}
	}
	return m
}
