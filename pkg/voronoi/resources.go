package voronoi

import (
	"fmt"
	"os"
	"os/exec"
)

// engineBinary is the name of the packaged qhull Voronoi executable.
const engineBinary = "qvoronoi"

// ResourceManager hands out scratch-file paths and the path to the
// external engine binary. The tessellation code only reads and writes
// the file contents; directory lifecycle belongs to the manager's
// owner, which should call Close when done.
type ResourceManager struct {
	dir        string
	enginePath string
}

// NewResourceManager creates a manager backed by a fresh temporary
// directory.
func NewResourceManager() (*ResourceManager, error) {
	dir, err := os.MkdirTemp("", "voronoi-*")
	if err != nil {
		return nil, fmt.Errorf("voronoi: creating scratch dir: %w", err)
	}
	return &ResourceManager{dir: dir}, nil
}

// SetEnginePath overrides engine binary resolution with an explicit path.
func (rm *ResourceManager) SetEnginePath(path string) {
	rm.enginePath = path
}

// ScratchFile creates an empty scratch file and returns its absolute
// path. The name is used as a prefix; every call yields a distinct
// file, so concurrent engine runs sharing one manager never collide.
func (rm *ResourceManager) ScratchFile(name string) (string, error) {
	f, err := os.CreateTemp(rm.dir, name+"-*")
	if err != nil {
		return "", fmt.Errorf("voronoi: creating scratch file %s: %w", name, err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("voronoi: closing scratch file %s: %w", name, err)
	}
	return path, nil
}

// EnginePath resolves the path to the qvoronoi binary. An explicit
// path set with SetEnginePath wins; otherwise the binary is looked up
// on PATH.
func (rm *ResourceManager) EnginePath() (string, error) {
	if rm.enginePath != "" {
		return rm.enginePath, nil
	}
	path, err := exec.LookPath(engineBinary)
	if err != nil {
		return "", ExternalProcessError{Op: "lookup", Err: err}
	}
	return path, nil
}

// Close removes the scratch directory and everything in it.
func (rm *ResourceManager) Close() error {
	return os.RemoveAll(rm.dir)
}
