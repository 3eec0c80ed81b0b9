package state

import (
	"image/color"
	"math"
)

// Width limits for the two tool families
const (
	MinPencilWidth = 1
	MaxPencilWidth = 30
	MinEraserWidth = 10
	MaxEraserWidth = 120
)

// Style is the drawing style applied to the next committed stroke
type Style struct {
	Color       color.NRGBA
	PencilWidth float64
	EraserWidth float64
}

// DefaultStyle returns red, pencil width 4 and eraser width 40
func DefaultStyle() Style {
	return Style{
		Color:       color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
		PencilWidth: 4,
		EraserWidth: 40,
	}
}

// Width returns the width used by tool t
func (s Style) Width(t Tool) float64 {
	if t.IsEraser() {
		return s.EraserWidth
	}
	return s.PencilWidth
}

// Clamp limits both widths to their ranges
func (s Style) Clamp() Style {
	s.PencilWidth = clamp(s.PencilWidth, MinPencilWidth, MaxPencilWidth)
	s.EraserWidth = clamp(s.EraserWidth, MinEraserWidth, MaxEraserWidth)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
