package fuzzy

import (
	"fmt"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// ScaledColor derives a polyhedral fuzzy color from a Voronoi cell
// (the 0.5 alpha-cut volume). Every face is offset toward and away
// from the centroid by distance(centroid, face) * (1-lambda); the
// nearer offset becomes the kernel face, the farther the support
// face. Face order is preserved, so the three polytopes stay
// index-aligned.
//
// For lambda = 1 both offsets coincide with the original face and
// kernel = volume = support.
func ScaledColor(label string, volume *geometry.Polyhedron, centroid geometry.Point3D, lambda float64) (*Color, error) {
	kernelFaces := make([]*geometry.Face, 0, len(volume.Faces))
	supportFaces := make([]*geometry.Face, 0, len(volume.Faces))

	for i, face := range volume.Faces {
		dist := face.Plane.Distance(centroid) * (1 - lambda)
		positive := face.Plane.ParallelAt(dist)
		negative := face.Plane.ParallelAt(-dist)

		var positiveRing, negativeRing []geometry.Point3D
		for _, v := range face.Vertices {
			ray := geometry.NewLine3D(centroid, v)
			pv, err := positive.IntersectLine(ray)
			if err != nil {
				return nil, fmt.Errorf("fuzzy: scaling face %d of %q: %w", i, label, err)
			}
			nv, err := negative.IntersectLine(ray)
			if err != nil {
				return nil, fmt.Errorf("fuzzy: scaling face %d of %q: %w", i, label, err)
			}
			positiveRing = append(positiveRing, pv)
			negativeRing = append(negativeRing, nv)
		}

		positiveFace := geometry.NewFace(positive, positiveRing, face.Open)
		negativeFace := geometry.NewFace(negative, negativeRing, face.Open)

		// The offset closer to the centroid is the kernel side.
		if positive.Distance(centroid) < negative.Distance(centroid) {
			kernelFaces = append(kernelFaces, positiveFace)
			supportFaces = append(supportFaces, negativeFace)
		} else {
			kernelFaces = append(kernelFaces, negativeFace)
			supportFaces = append(supportFaces, positiveFace)
		}
	}

	return &Color{
		Label:     label,
		Prototype: centroid,
		Kernel:    geometry.NewPolyhedron(kernelFaces, centroid),
		Volume:    volume,
		Support:   geometry.NewPolyhedron(supportFaces, centroid),
	}, nil
}
