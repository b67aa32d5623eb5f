package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

const tol = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func pointsClose(a, b geometry.Point3D) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestPlaneEvalAndDistance(t *testing.T) {
	// x = 10, unnormalized normal (2,0,0).
	pl := geometry.NewPlane(2, 0, 0, -20)

	p := geometry.Point3D{X: 13, Y: 5, Z: -2}
	if got := pl.Eval(p); !approx(got, 6) {
		t.Errorf("Eval = %v, want 6", got)
	}
	if got := pl.SignedDistance(p); !approx(got, 3) {
		t.Errorf("SignedDistance = %v, want 3", got)
	}
	if got := pl.Distance(geometry.Point3D{X: 7, Y: 0, Z: 0}); !approx(got, 3) {
		t.Errorf("Distance = %v, want 3", got)
	}
}

func TestPlaneParallelAt(t *testing.T) {
	pl := geometry.NewPlane(0, 3, 0, -30) // y = 10
	p := geometry.Point3D{X: 0, Y: 10, Z: 0}

	shifted := pl.ParallelAt(4)
	if got := shifted.SignedDistance(p); !approx(got, -4) {
		t.Errorf("point on original plane is at signed distance %v from shifted plane, want -4", got)
	}
	if shifted.Normal() != pl.Normal() {
		t.Errorf("ParallelAt changed the normal: %v -> %v", pl.Normal(), shifted.Normal())
	}
}

func TestPlaneThrough(t *testing.T) {
	pl := geometry.NewPlane(1, 1, 0, 7)
	anchor := geometry.Point3D{X: 2, Y: 3, Z: 9}

	moved := pl.Through(anchor)
	if got := moved.Eval(anchor); !approx(got, 0) {
		t.Errorf("anchor not on re-anchored plane, Eval = %v", got)
	}
	if moved.Normal() != pl.Normal() {
		t.Errorf("Through changed the normal: %v -> %v", pl.Normal(), moved.Normal())
	}
}

func TestPlaneThroughVector(t *testing.T) {
	n := geometry.Vector3D{X: 0, Y: 0, Z: 5}
	p := geometry.Point3D{X: 1, Y: 2, Z: 3}
	pl := geometry.PlaneThrough(n, p)
	if got := pl.Eval(p); !approx(got, 0) {
		t.Errorf("anchor not on plane, Eval = %v", got)
	}
}

func TestIntersectLine(t *testing.T) {
	pl := geometry.NewPlane(1, 0, 0, -10) // x = 10
	l := geometry.NewLine3D(geometry.Point3D{X: 0, Y: 2, Z: 2}, geometry.Point3D{X: 20, Y: 2, Z: 2})

	ip, err := pl.IntersectLine(l)
	if err != nil {
		t.Fatalf("IntersectLine failed: %v", err)
	}
	if want := (geometry.Point3D{X: 10, Y: 2, Z: 2}); !pointsClose(ip, want) {
		t.Errorf("intersection = %v, want %v", ip, want)
	}
}

func TestIntersectLineParallel(t *testing.T) {
	pl := geometry.NewPlane(1, 0, 0, -10)
	l := geometry.NewLine3D(geometry.Point3D{X: 0, Y: 0, Z: 0}, geometry.Point3D{X: 0, Y: 5, Z: 0})

	_, err := pl.IntersectLine(l)
	if err == nil {
		t.Fatal("expected error for line parallel to plane")
	}
	var gerr geometry.GeometryError
	if !errors.As(err, &gerr) {
		t.Errorf("expected GeometryError, got %T", err)
	}
}

func TestMidpoint(t *testing.T) {
	m := geometry.Midpoint(geometry.Point3D{X: 0, Y: 2, Z: 4}, geometry.Point3D{X: 10, Y: 4, Z: 0})
	if want := (geometry.Point3D{X: 5, Y: 3, Z: 2}); !pointsClose(m, want) {
		t.Errorf("Midpoint = %v, want %v", m, want)
	}
}
