package fuzzy_test

import (
	"testing"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/fuzzy"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

func TestColorMembership(t *testing.T) {
	center := geometry.Point3D{X: 128, Y: 128, Z: 128}
	c, err := fuzzy.ScaledColor("gray", cube(center, 50), center, 0.5)
	if err != nil {
		t.Fatalf("ScaledColor failed: %v", err)
	}

	// Kernel half-extent 25, support half-extent 75: along +x the
	// membership ramps from 1 at x=153 down to 0 at x=203.
	tests := []struct {
		name string
		p    geometry.Point3D
		want float64
	}{
		{"prototype", center, 1},
		{"inside kernel", geometry.Point3D{X: 140, Y: 128, Z: 128}, 1},
		{"kernel boundary", geometry.Point3D{X: 153, Y: 128, Z: 128}, 1},
		{"volume boundary", geometry.Point3D{X: 178, Y: 128, Z: 128}, 0.5},
		{"three quarters", geometry.Point3D{X: 165.5, Y: 128, Z: 128}, 0.75},
		{"outside support", geometry.Point3D{X: 210, Y: 128, Z: 128}, 0},
		{"far away", geometry.Point3D{X: 0, Y: 0, Z: 0}, 0},
	}
	for _, tc := range tests {
		if got := c.Membership(tc.p); !approx(got, tc.want) {
			t.Errorf("%s: Membership(%v) = %g, want %g", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestGranularColorMembershipIsMax(t *testing.T) {
	c1Center := geometry.Point3D{X: 60, Y: 60, Z: 60}
	c2Center := geometry.Point3D{X: 200, Y: 200, Z: 200}
	c1, err := fuzzy.ScaledColor("a", cube(c1Center, 40), c1Center, 0.5)
	if err != nil {
		t.Fatalf("ScaledColor failed: %v", err)
	}
	c2, err := fuzzy.ScaledColor("b", cube(c2Center, 40), c2Center, 0.5)
	if err != nil {
		t.Fatalf("ScaledColor failed: %v", err)
	}
	g := &fuzzy.GranularColor{Label: "pair", Members: []*fuzzy.Color{c1, c2}}

	if got := g.Membership(c1Center); !approx(got, 1) {
		t.Errorf("membership at first granule prototype = %g, want 1", got)
	}
	if got := g.Membership(c2Center); !approx(got, 1) {
		t.Errorf("membership at second granule prototype = %g, want 1", got)
	}
	if got := g.Membership(geometry.Point3D{X: 128, Y: 60, Z: 60}); got != 0 {
		t.Errorf("membership outside both supports = %g, want 0", got)
	}
}

func TestSpaceClassify(t *testing.T) {
	s := fuzzy.NewSpace()
	for _, spec := range []struct {
		label  string
		center geometry.Point3D
	}{
		{"dark", geometry.Point3D{X: 50, Y: 50, Z: 50}},
		{"light", geometry.Point3D{X: 200, Y: 200, Z: 200}},
	} {
		c, err := fuzzy.ScaledColor(spec.label, cube(spec.center, 40), spec.center, 0.5)
		if err != nil {
			t.Fatalf("ScaledColor failed: %v", err)
		}
		s.Add(c)
	}

	label, grade := s.Classify(geometry.Point3D{X: 55, Y: 52, Z: 48})
	if label != "dark" || !approx(grade, 1) {
		t.Errorf("Classify = (%q, %g), want (\"dark\", 1)", label, grade)
	}
	label, grade = s.Classify(geometry.Point3D{X: 128, Y: 50, Z: 50})
	if label != "" || grade != 0 {
		t.Errorf("Classify in no-man's-land = (%q, %g), want (\"\", 0)", label, grade)
	}
	if s.Find("light") == nil {
		t.Error("Find(\"light\") returned nil")
	}
	if s.Find("missing") != nil {
		t.Error("Find of unknown label should return nil")
	}
}
