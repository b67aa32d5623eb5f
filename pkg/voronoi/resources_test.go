package voronoi_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
	"github.com/jesuschamorro/JFI.ColorExtension/pkg/voronoi"
)

func newManager(t *testing.T) *voronoi.ResourceManager {
	t.Helper()
	rm, err := voronoi.NewResourceManager()
	if err != nil {
		t.Fatalf("NewResourceManager failed: %v", err)
	}
	t.Cleanup(func() { rm.Close() })
	return rm
}

func TestScratchFilesAreDistinct(t *testing.T) {
	rm := newManager(t)

	a, err := rm.ScratchFile("inVoronoi.fcp")
	if err != nil {
		t.Fatalf("ScratchFile failed: %v", err)
	}
	b, err := rm.ScratchFile("inVoronoi.fcp")
	if err != nil {
		t.Fatalf("ScratchFile failed: %v", err)
	}

	if a == b {
		t.Fatal("two scratch files share the same path")
	}
	if !strings.HasPrefix(filepath.Base(a), "inVoronoi.fcp-") {
		t.Errorf("scratch file %q does not carry the name prefix", a)
	}
	for _, p := range []string{a, b} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("scratch file %q not created: %v", p, err)
		}
	}
}

func TestCloseRemovesScratchFiles(t *testing.T) {
	rm, err := voronoi.NewResourceManager()
	if err != nil {
		t.Fatalf("NewResourceManager failed: %v", err)
	}
	p, err := rm.ScratchFile("outVoronoi.fcv")
	if err != nil {
		t.Fatalf("ScratchFile failed: %v", err)
	}
	if err := rm.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("scratch file %q still exists after Close", p)
	}
}

func TestEnginePathOverride(t *testing.T) {
	rm := newManager(t)
	rm.SetEnginePath("/opt/qhull/bin/qvoronoi")

	p, err := rm.EnginePath()
	if err != nil {
		t.Fatalf("EnginePath failed: %v", err)
	}
	if p != "/opt/qhull/bin/qvoronoi" {
		t.Errorf("EnginePath = %q", p)
	}
}

func TestQhullEngineMissingBinary(t *testing.T) {
	rm := newManager(t)
	rm.SetEnginePath(filepath.Join(t.TempDir(), "no-such-qvoronoi"))

	points := make([]geometry.Point3D, voronoi.MinPoints)
	for i := range points {
		points[i] = geometry.Point3D{X: float64(40 * (i + 1)), Y: 128, Z: 128}
	}

	_, err := voronoi.NewQhullEngine(rm).Compute(points)

	var perr voronoi.ExternalProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ExternalProcessError, got %v", err)
	}
	if perr.Op != "run" {
		t.Errorf("error op = %q, want \"run\"", perr.Op)
	}
}
