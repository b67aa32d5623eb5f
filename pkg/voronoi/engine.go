package voronoi

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// Engine computes the Voronoi tessellation facet data for a point set.
// The production implementation shells out to qhull; tests substitute
// synthetic engines.
type Engine interface {
	Compute(points []geometry.Point3D) (*RawTessellation, error)
}

// QhullEngine runs the packaged qvoronoi binary ("Fi Fo p Fv") as a
// subprocess, wiring its stdin and stdout to scratch files obtained
// from a ResourceManager.
type QhullEngine struct {
	resources *ResourceManager
}

// NewQhullEngine returns an engine backed by the given resource manager.
func NewQhullEngine(rm *ResourceManager) *QhullEngine {
	return &QhullEngine{resources: rm}
}

// Compute writes the points in the engine input format, runs qvoronoi
// and parses its output. All failures are reported as
// ExternalProcessError.
func (e *QhullEngine) Compute(points []geometry.Point3D) (*RawTessellation, error) {
	binPath, err := e.resources.EnginePath()
	if err != nil {
		return nil, err
	}

	inPath, err := e.resources.ScratchFile("inVoronoi.fcp")
	if err != nil {
		return nil, ExternalProcessError{Op: "scratch", Err: err}
	}
	outPath, err := e.resources.ScratchFile("outVoronoi.fcv")
	if err != nil {
		return nil, ExternalProcessError{Op: "scratch", Err: err}
	}

	in, err := os.Create(inPath)
	if err != nil {
		return nil, ExternalProcessError{Op: "input", Err: err}
	}
	if err := WriteInput(in, points); err != nil {
		in.Close()
		return nil, ExternalProcessError{Op: "input", Err: err}
	}
	if err := in.Close(); err != nil {
		return nil, ExternalProcessError{Op: "input", Err: err}
	}

	stdin, err := os.Open(inPath)
	if err != nil {
		return nil, ExternalProcessError{Op: "input", Err: err}
	}
	defer stdin.Close()
	stdout, err := os.Create(outPath)
	if err != nil {
		return nil, ExternalProcessError{Op: "output", Err: err}
	}

	var stderr bytes.Buffer
	cmd := exec.Command(binPath, "Fi", "Fo", "p", "Fv")
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		stdout.Close()
		return nil, ExternalProcessError{
			Op:  "run",
			Err: fmt.Errorf("%w: %s", err, stderr.String()),
		}
	}
	if err := stdout.Close(); err != nil {
		return nil, ExternalProcessError{Op: "output", Err: err}
	}

	out, err := os.Open(outPath)
	if err != nil {
		return nil, ExternalProcessError{Op: "output", Err: err}
	}
	defer out.Close()

	raw, err := ParseOutput(out)
	if err != nil {
		return nil, ExternalProcessError{Op: "parse", Err: err}
	}
	return raw, nil
}
