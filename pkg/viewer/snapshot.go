package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
)

// Polyline is a world-space line drawn on top of the model
type Polyline struct {
	Points []geometry.Vector3
	Color  color.NRGBA
	Width  float64 // pixels
}

// Scene is everything a snapshot draws
type Scene struct {
	Model       *stl.Model
	Orientation geometry.Orientation
	Lines       []Polyline
	Background  color.RGBA
	ModelColor  color.RGBA
}

const nearPlane = 0.01

// Snapshot renders scene from cam into a new image. Triangles are flat
// shaded against the view direction and lines are depth tested against the
// model.
func Snapshot(scene Scene, cam *Camera, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(scene.Background), image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	w, h := float64(width), float64(height)
	base := scene.ModelColor
	if base == (color.RGBA{}) {
		base = color.RGBA{R: 0xb0, G: 0xb4, B: 0xbc, A: 0xff}
	}

	if scene.Model != nil {
		for _, tri := range scene.Model.Triangles {
			v1 := scene.Orientation.Rotate(tri.V1)
			v2 := scene.Orientation.Rotate(tri.V2)
			v3 := scene.Orientation.Rotate(tri.V3)

			x1, y1, z1 := cam.Project(v1, w, h)
			x2, y2, z2 := cam.Project(v2, w, h)
			x3, y3, z3 := cam.Project(v3, w, h)
			if z1 <= nearPlane || z2 <= nearPlane || z3 <= nearPlane {
				continue
			}

			normal := scene.Orientation.Rotate(tri.FaceNormal())
			view := cam.Position.Sub(v1.Add(v2).Add(v3).Mul(1.0 / 3)).Normalize()
			light := 0.25 + 0.75*math.Abs(normal.Dot(view))
			fillTriangleWithDepth(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, shade(base, light))
		}
	}

	for _, line := range scene.Lines {
		col := color.RGBA{R: line.Color.R, G: line.Color.G, B: line.Color.B, A: 0xff}
		radius := math.Max(0.5, line.Width/2)
		for i := 1; i < len(line.Points); i++ {
			x1, y1, z1 := cam.Project(line.Points[i-1], w, h)
			x2, y2, z2 := cam.Project(line.Points[i], w, h)
			if z1 <= nearPlane || z2 <= nearPlane {
				continue
			}
			drawLineWithDepth(img, zbuffer, x1, y1, z1, x2, y2, z2, radius, col)
		}
	}

	return img
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Composite draws overlay over dst, both anchored at their top-left corners
func Composite(dst *image.RGBA, overlay image.Image) {
	draw.Draw(dst, dst.Bounds(), overlay, overlay.Bounds().Min, draw.Over)
}

// SavePNG writes img to path
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	// Convert to integers for pixel operations
	vertices := [][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Max.X

	// Scanline algorithm with depth interpolation
	for y := int(math.Max(0, y1)); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var xStart, xEnd, zStart, zEnd float64
		foundStart := false
		foundEnd := false

		// Find intersections with triangle edges
		// Edge 1-2
		if y1 != y2 && fy >= y1 && fy <= y2 {
			t := (fy - y1) / (y2 - y1)
			x := x1 + t*(x2-x1)
			z := z1 + t*(z2-z1)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		// Edge 2-3
		if y2 != y3 && fy >= y2 && fy <= y3 {
			t := (fy - y2) / (y3 - y2)
			x := x2 + t*(x3-x2)
			z := z2 + t*(z3-z2)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		// Edge 1-3
		if y1 != y3 && fy >= y1 && fy <= y3 {
			t := (fy - y1) / (y3 - y1)
			x := x1 + t*(x3-x1)
			z := z1 + t*(z3-z1)
			if !foundStart {
				xStart, zStart = x, z
				foundStart = true
			} else {
				xEnd, zEnd = x, z
				foundEnd = true
			}
		}

		if foundStart && foundEnd {
			// Ensure xStart < xEnd
			if xStart > xEnd {
				xStart, xEnd = xEnd, xStart
				zStart, zEnd = zEnd, zStart
			}

			// Clamp to image bounds
			xStartInt := int(math.Max(0, xStart))
			xEndInt := int(math.Min(float64(bounds.Max.X-1), xEnd))

			// Draw horizontal line with depth testing
			for x := xStartInt; x <= xEndInt; x++ {
				// Interpolate depth
				t := 0.0
				if xEnd != xStart {
					t = (float64(x) - xStart) / (xEnd - xStart)
				}
				z := zStart + t*(zEnd-zStart)

				// Depth test - draw if closer (smaller z)
				idx := y*width + x
				if idx >= 0 && idx < len(zbuffer) {
					if z < zbuffer[idx] {
						zbuffer[idx] = z
						img.SetRGBA(x, y, col)
					}
				}
			}
		}
	}
}

// drawLineWithDepth stamps discs of the given radius along a segment,
// keeping pixels that are not hidden behind the model
func drawLineWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, radius float64, col color.RGBA) {
	bounds := img.Bounds()
	width := bounds.Max.X

	steps := int(math.Ceil(math.Max(math.Abs(x2-x1), math.Abs(y2-y1))))
	if steps < 1 {
		steps = 1
	}
	r := int(math.Ceil(radius))
	r2 := radius * radius

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := x1 + t*(x2-x1)
		cy := y1 + t*(y2-y1)
		z := z1 + t*(z2-z1)

		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if float64(dx*dx+dy*dy) > r2 {
					continue
				}
				x, y := int(cx)+dx, int(cy)+dy
				if x < 0 || y < 0 || x >= bounds.Max.X || y >= bounds.Max.Y {
					continue
				}
				idx := y*width + x
				if z <= zbuffer[idx] {
					zbuffer[idx] = z
					img.SetRGBA(x, y, col)
				}
			}
		}
	}
}
