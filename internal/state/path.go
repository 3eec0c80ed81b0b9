package state

import (
	"image/color"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

// EraserColor is recorded on 2D eraser paths. Only its alpha matters when
// compositing.
var EraserColor = color.NRGBA{A: 0xff}

// Path is a committed 2D overlay stroke in surface-local coordinates.
// Stored paths are never modified.
type Path struct {
	Points   []geometry.Point
	Color    color.NRGBA
	Width    float64
	IsEraser bool
}

// Path3D is a committed stroke anchored to a model surface. It is the unit
// of removal for the 3D eraser.
type Path3D struct {
	ID     string
	Points []geometry.Vector3
	Color  color.NRGBA
	Width  float64
}

func (p Path) clone() Path {
	p.Points = append([]geometry.Point(nil), p.Points...)
	return p
}

func (p Path3D) clone() Path3D {
	p.Points = append([]geometry.Vector3(nil), p.Points...)
	return p
}
