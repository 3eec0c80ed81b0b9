package app

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
)

// stlToRaylibMesh converts an STL model to a Raylib mesh with baked lighting
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	// Allocate arrays
	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4) // Add vertex colors for baked lighting

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Calculate lighting intensity (diffuse lighting)
		lightIntensity := math.Max(0.3, -normal.Dot(lightDir)) // Min 30% ambient, max 100% diffuse
		baseColor := 200.0
		r := uint8(baseColor * lightIntensity * 0.5)
		g := uint8(baseColor * lightIntensity * 0.6)
		b := uint8(baseColor * lightIntensity)

		// Vertex 1
		vertices[idx*3+0] = float32(triangle.V1.X)
		vertices[idx*3+1] = float32(triangle.V1.Y)
		vertices[idx*3+2] = float32(triangle.V1.Z)
		normals[idx*3+0] = float32(normal.X)
		normals[idx*3+1] = float32(normal.Y)
		normals[idx*3+2] = float32(normal.Z)
		texcoords[idx*2+0] = 0
		texcoords[idx*2+1] = 0
		colors[idx*4+0] = r
		colors[idx*4+1] = g
		colors[idx*4+2] = b
		colors[idx*4+3] = 255
		idx++

		// Vertex 2
		vertices[idx*3+0] = float32(triangle.V2.X)
		vertices[idx*3+1] = float32(triangle.V2.Y)
		vertices[idx*3+2] = float32(triangle.V2.Z)
		normals[idx*3+0] = float32(normal.X)
		normals[idx*3+1] = float32(normal.Y)
		normals[idx*3+2] = float32(normal.Z)
		texcoords[idx*2+0] = 1
		texcoords[idx*2+1] = 0
		colors[idx*4+0] = r
		colors[idx*4+1] = g
		colors[idx*4+2] = b
		colors[idx*4+3] = 255
		idx++

		// Vertex 3
		vertices[idx*3+0] = float32(triangle.V3.X)
		vertices[idx*3+1] = float32(triangle.V3.Y)
		vertices[idx*3+2] = float32(triangle.V3.Z)
		normals[idx*3+0] = float32(normal.X)
		normals[idx*3+1] = float32(normal.Y)
		normals[idx*3+2] = float32(normal.Z)
		texcoords[idx*2+0] = 0
		texcoords[idx*2+1] = 1
		colors[idx*4+0] = r
		colors[idx*4+1] = g
		colors[idx*4+2] = b
		colors[idx*4+3] = 255
		idx++
	}

	// Assign mesh data
	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
	}
	if len(normals) > 0 {
		mesh.Normals = &normals[0]
	}
	if len(texcoords) > 0 {
		mesh.Texcoords = &texcoords[0]
	}
	if len(colors) > 0 {
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

func toColor(c color.NRGBA) color.RGBA {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// drawStrokes3D draws committed surface strokes and the one in progress as
// tubes pulled toward the camera
func (app *App) drawStrokes3D() {
	s := app.Annotation.session
	eye := toVector3(app.Camera.camera.Position)
	for _, strip := range s.Strokes3D(eye) {
		radius := float32(strip.Width / app.Annotation.tubeScale)
		col := toColor(strip.Color)
		for i := 1; i < len(strip.Points); i++ {
			rl.DrawCylinderEx(toRaylib(strip.Points[i-1]), toRaylib(strip.Points[i]), radius, radius, 6, col)
		}
	}
}

// drawIndicator draws the hover marker of the 3D tools
func (app *App) drawIndicator() {
	ind, ok := app.Annotation.session.Indicator()
	if !ok {
		return
	}
	center := toRaylib(ind.Center)
	if ind.Eraser {
		rl.DrawSphereWires(center, float32(ind.Radius), 8, 8, rl.NewColor(220, 220, 220, 200))
		return
	}
	col := toColor(ind.Color)
	col.A = 160
	rl.DrawSphere(center, float32(ind.Radius), col)
}

// syncOverlay uploads the 2D overlay to its texture when it changed
func (app *App) syncOverlay() {
	a := &app.Annotation
	img, changed := a.session.Overlay()
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())

	if a.overlaySize != [2]int32{w, h} {
		if a.overlaySize[0] > 0 {
			rl.UnloadTexture(a.overlay)
		}
		blank := rl.GenImageColor(int(w), int(h), rl.Blank)
		a.overlay = rl.LoadTextureFromImage(blank)
		rl.UnloadImage(blank)
		a.overlaySize = [2]int32{w, h}
		a.pixels = make([]color.RGBA, int(w)*int(h))
		changed = true
	}
	if !changed {
		return
	}

	for i := range a.pixels {
		o := i * 4
		a.pixels[i] = color.RGBA{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: img.Pix[o+3]}
	}
	rl.UpdateTexture(a.overlay, a.pixels)
}

// drawOverlay draws the 2D annotation layer over the scene. The overlay
// holds premultiplied colors.
func (app *App) drawOverlay() {
	if app.Annotation.overlaySize[0] == 0 {
		return
	}
	rl.BeginBlendMode(rl.BlendAlphaPremultiply)
	rl.DrawTexture(app.Annotation.overlay, 0, 0, rl.White)
	rl.EndBlendMode()
}

// drawCursor outlines the 2D brush under the pointer
func (app *App) drawCursor() {
	c, ok := app.Annotation.session.Cursor()
	if !ok {
		return
	}
	center := rl.Vector2{X: float32(c.Position.X), Y: float32(c.Position.Y)}
	col := rl.NewColor(220, 220, 220, 200)
	if !c.Eraser {
		col = toColor(app.Annotation.session.State().Style().Color)
	}
	rl.DrawCircleLinesV(center, float32(c.Width/2), col)
}
