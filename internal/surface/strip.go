package surface

import (
	"image/color"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Strip is a world-space polyline ready for drawing
type Strip struct {
	ID      string
	Points  []geometry.Vector3
	Color   color.NRGBA
	Width   float64
	Pending bool
}

// Strips converts committed paths and the stroke in progress into line
// strips pulled toward eye by bias, so they win the depth test against the
// surface they lie on. The pending stroke is included once it has two
// points.
func Strips(paths []state.Path3D, pending []geometry.Vector3, style state.Style, eye geometry.Vector3, bias float64) []Strip {
	strips := make([]Strip, 0, len(paths)+1)
	for _, p := range paths {
		strips = append(strips, Strip{
			ID:     p.ID,
			Points: biased(p.Points, eye, bias),
			Color:  p.Color,
			Width:  p.Width,
		})
	}
	if len(pending) >= 2 {
		strips = append(strips, Strip{
			Points:  biased(pending, eye, bias),
			Color:   style.Color,
			Width:   style.PencilWidth,
			Pending: true,
		})
	}
	return strips
}

func biased(points []geometry.Vector3, eye geometry.Vector3, bias float64) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[i] = p.Add(eye.Sub(p).Normalize().Mul(bias))
	}
	return out
}
