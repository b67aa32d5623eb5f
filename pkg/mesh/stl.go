package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteSTL serializes the mesh in binary STL. The renderer used by
// this package only produces full meshes with face normals, which is
// exactly what STL carries.
func (m *Mesh) WriteSTL(w io.Writer) error {
	var header [80]byte
	copy(header[:], m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("mesh: stl header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("mesh: stl count: %w", err)
	}

	for t := 0; t < m.TriangleCount(); t++ {
		var rec [12]float32
		i0 := m.Indices[t*3]
		copy(rec[0:3], m.Normals[i0*3:i0*3+3])
		for j := 0; j < 3; j++ {
			vi := m.Indices[t*3+j]
			copy(rec[3+j*3:6+j*3], m.Vertices[vi*3:vi*3+3])
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("mesh: stl triangle %d: %w", t, err)
		}
		// Attribute byte count, always zero.
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("mesh: stl triangle %d: %w", t, err)
		}
	}
	return nil
}

// SaveSTL writes the mesh to a binary STL file at path.
func (m *Mesh) SaveSTL(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mesh: %w", err)
	}
	if err := m.WriteSTL(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
