// Package picking casts rays against a loaded model. It stands in for the
// scene raycaster of a GPU host when running headless.
package picking

import (
	"math"

	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
)

// Picker finds the nearest model triangle along a ray. The model may be
// rotated by an orientation and moved by a position.
type Picker struct {
	triangles   []geometry.Triangle
	bounds      geometry.BoundingBox
	orientation geometry.Orientation
	position    geometry.Vector3
}

// New creates a picker for model placed with the given orientation
func New(model *stl.Model, orientation geometry.Orientation) *Picker {
	return &Picker{
		triangles:   model.Triangles,
		bounds:      model.BoundingBox(),
		orientation: orientation,
	}
}

// SetPosition moves the model in world space
func (p *Picker) SetPosition(pos geometry.Vector3) {
	p.position = pos
}

// Orientation returns the model rotation
func (p *Picker) Orientation() geometry.Orientation {
	return p.orientation
}

// Pick returns the nearest hit in world space with the face normal in
// model space. A miss returns an empty Hit.
func (p *Picker) Pick(origin, dir geometry.Vector3) surface.Hit {
	inv := p.orientation.Inverse()
	localOrigin := inv.Rotate(origin.Sub(p.position))
	localDir := inv.Rotate(dir)

	if p.bounds.Empty() || !p.bounds.IntersectsRay(localOrigin, localDir) {
		return surface.Hit{}
	}

	nearest := math.Inf(1)
	index := -1
	for i, tri := range p.triangles {
		if t, ok := tri.IntersectRay(localOrigin, localDir); ok && t < nearest {
			nearest = t
			index = i
		}
	}
	if index < 0 {
		return surface.Hit{}
	}

	local := localOrigin.Add(localDir.Mul(nearest))
	world := p.orientation.Rotate(local).Add(p.position)
	return surface.NewHit(world, p.triangles[index].FaceNormal(), p.orientation)
}
