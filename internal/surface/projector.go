// Package surface anchors strokes to a model surface. It turns raycast hits
// into offset surface points, captures 3D strokes and prepares them for
// drawing.
package surface

import "github.com/philipparndt/gosketch/pkg/geometry"

// Hit is a raycast result from the host's picking subsystem. FaceNormal is
// in the hit object's local space.
type Hit struct {
	Point       geometry.Vector3
	FaceNormal  geometry.Vector3
	Orientation geometry.Orientation
	HasPoint    bool
	HasFace     bool
}

// NewHit builds a complete hit
func NewHit(point, faceNormal geometry.Vector3, orientation geometry.Orientation) Hit {
	return Hit{
		Point:       point,
		FaceNormal:  faceNormal,
		Orientation: orientation,
		HasPoint:    true,
		HasFace:     true,
	}
}

// Config holds the surface tuning constants
type Config struct {
	NormalOffset         float64
	MinSpacing           float64
	DepthBias            float64
	PencilIndicatorScale float64
	EraserIndicatorScale float64
}

// DefaultConfig returns the built-in surface constants
func DefaultConfig() Config {
	return Config{
		NormalOffset:         0.015,
		MinSpacing:           0.02,
		DepthBias:            0.01,
		PencilIndicatorScale: 200,
		EraserIndicatorScale: 400,
	}
}

// Projector maps hits to points floating just above the surface
type Projector struct {
	Offset float64
}

// Project rotates the face normal into world space and moves the hit point
// along it by the projector offset. Hits without a point or face yield
// nothing.
func (p Projector) Project(h Hit) (geometry.Vector3, bool) {
	if !h.HasPoint || !h.HasFace {
		return geometry.Vector3{}, false
	}
	normal := h.Orientation.Rotate(h.FaceNormal).Normalize()
	return h.Point.Add(normal.Mul(p.Offset)), true
}
