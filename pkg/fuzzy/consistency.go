package fuzzy

import (
	"math"

	"go.uber.org/zap"

	"github.com/jesuschamorro/JFI.ColorExtension/pkg/geometry"
)

// repairConsistency fixes cross-color overlaps after independent
// scaling: kernels must stay mutually exclusive, but one color's
// support can bleed into a neighbor's kernel. The pass visits every
// ordered color pair exactly once; a fix made for (c1,c2) is not
// re-validated against a third color in the same invocation.
func repairConsistency(colors []*Color, log *zap.SugaredLogger) {
	for i, c1 := range colors {
		for j, c2 := range colors {
			if i == j {
				continue
			}
			pullSupportOutOfKernel(c1, c2, log)
			pushSupportBehindKernel(c1, c2, log)
		}
	}
}

// pullSupportOutOfKernel handles support vertices of c1 that landed
// strictly inside c2's kernel: the offending support face is
// re-anchored through the point where the vertex-to-prototype line
// leaves c2's kernel, and its ring is rebuilt on the new plane.
func pullSupportOutOfKernel(c1, c2 *Color, log *zap.SugaredLogger) {
	for _, face := range c1.Support.Faces {
		// Snapshot the ring: re-anchoring replaces it, but the scan
		// continues over the original vertices.
		ring := append([]geometry.Point3D(nil), face.Vertices...)
		for _, v := range ring {
			if !c2.Kernel.StrictlyContains(v) {
				continue
			}
			exit, ok := c2.Kernel.IntersectLine(geometry.NewLine3D(v, c1.Prototype))
			if !ok {
				log.Errorw("cannot move support face: no kernel boundary intersection",
					"color", c1.Label, "neighbor", c2.Label)
				continue
			}
			reanchorFace(face, exit, c1.Prototype, log)
			log.Infow("support face moved", "color", c1.Label, "neighbor", c2.Label)
		}
	}
}

// pushSupportBehindKernel handles kernel vertices of c2 that landed
// strictly inside c1's support: the support face of c1 nearest to the
// vertex is re-anchored through it.
func pushSupportBehindKernel(c1, c2 *Color, log *zap.SugaredLogger) {
	for _, face := range c2.Kernel.Faces {
		ring := append([]geometry.Point3D(nil), face.Vertices...)
		for _, v := range ring {
			if !c1.Support.StrictlyContains(v) {
				continue
			}
			nearest := nearestFace(c1.Support, v)
			if nearest == nil {
				continue
			}

			// Sanity check only: the moved plane is expected to end up
			// closer to the prototype than the old one.
			oldDist := nearest.Plane.Distance(c1.Prototype)
			newDist := nearest.Plane.Through(v).Distance(c1.Prototype)
			if oldDist < newDist {
				log.Warnw("moved support plane is farther from prototype than the old one",
					"color", c1.Label, "oldDist", oldDist, "newDist", newDist)
			}

			reanchorFace(nearest, v, c1.Prototype, log)
			log.Infow("support face moved", "color", c1.Label, "neighbor", c2.Label,
				"cause", "kernel vertex inside support")
		}
	}
}

// nearestFace returns the face of ph whose plane is closest to p.
func nearestFace(ph *geometry.Polyhedron, p geometry.Point3D) *geometry.Face {
	var nearest *geometry.Face
	minDist := math.MaxFloat64
	for _, f := range ph.Faces {
		if d := f.Plane.Distance(p); d < minDist {
			minDist = d
			nearest = f
		}
	}
	return nearest
}

// reanchorFace moves the face's plane so it passes through anchor
// (same normal) and rebuilds each ring vertex as the intersection of
// the prototype-to-old-vertex line with the new plane. A vertex whose
// line is parallel to the new plane is kept as is; the failure is
// logged and never aborts the pass.
func reanchorFace(face *geometry.Face, anchor, prototype geometry.Point3D, log *zap.SugaredLogger) {
	oldRing := append([]geometry.Point3D(nil), face.Vertices...)
	face.Plane = face.Plane.Through(anchor)

	if len(oldRing) == 0 {
		return
	}
	newRing := make([]geometry.Point3D, 0, len(oldRing))
	for _, v := range oldRing {
		ip, err := face.Plane.IntersectLine(geometry.NewLine3D(prototype, v))
		if err != nil {
			log.Warnw("keeping original vertex after re-anchoring", "error", err)
			newRing = append(newRing, v)
			continue
		}
		newRing = append(newRing, ip)
	}
	face.Vertices = newRing
}
