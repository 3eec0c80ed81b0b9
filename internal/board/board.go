// Package board is a fyne widget hosting an annotation session. It shows an
// optional model rendered in software with the 2D overlay on top and turns
// mouse input into session events.
package board

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosketch/internal/picking"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/pkg/viewer"
	xdraw "golang.org/x/image/draw"
)

var background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}

// Board renders a session and forwards mouse input to it
type Board struct {
	widget.BaseWidget
	session   *session.Session
	model     *stl.Model
	camera    *viewer.Camera
	picker    *picking.Picker
	raster    *canvas.Raster
	cursor    *canvas.Circle
	width     float64
	height    float64
	last      geometry.Point
	orbiting  bool
	onSurface bool
	onChange  func()
}

var (
	_ desktop.Mouseable = (*Board)(nil)
	_ desktop.Hoverable = (*Board)(nil)
	_ fyne.Draggable    = (*Board)(nil)
	_ fyne.Scrollable   = (*Board)(nil)
)

// New creates a board for s. The model may be nil, in which case only the
// 2D tools have an effect.
func New(s *session.Session, model *stl.Model) *Board {
	b := &Board{session: s}
	b.ExtendBaseWidget(b)
	b.SetModel(model)
	return b
}

// SetModel replaces the displayed model and resets the camera
func (b *Board) SetModel(model *stl.Model) {
	b.model = model
	b.camera = nil
	b.picker = nil
	if model != nil {
		b.camera = viewer.NewCamera(model.BoundingBox())
		b.picker = picking.New(model, geometry.IdentityOrientation())
	}
	b.onSurface = false
	b.Refresh()
}

// SetOnChange sets a callback run after every input that may have changed
// the session
func (b *Board) SetOnChange(fn func()) {
	b.onChange = fn
}

// Camera returns the orbit camera, or nil without a model
func (b *Board) Camera() *viewer.Camera {
	return b.camera
}

// CreateRenderer creates the renderer for the widget
func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	b.raster = canvas.NewRaster(b.render)
	b.cursor = canvas.NewCircle(color.Transparent)
	b.cursor.StrokeWidth = 1.5
	b.cursor.Hide()
	return &boardRenderer{board: b, objects: []fyne.CanvasObject{b.raster, b.cursor}}
}

// render draws the scene at pixel size w×h. The overlay is kept in widget
// units and scaled when the canvas is scaled.
func (b *Board) render(w, h int) image.Image {
	var img *image.RGBA
	if b.camera != nil {
		scene := viewer.Scene{Model: b.model, Background: background}
		for _, strip := range b.session.Strokes3D(b.camera.Position) {
			scene.Lines = append(scene.Lines, viewer.Polyline{Points: strip.Points, Color: strip.Color, Width: strip.Width})
		}
		img = viewer.Snapshot(scene, b.camera, w, h)
	} else {
		img = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}

	overlay, _ := b.session.Overlay()
	if overlay.Bounds().Size() == img.Bounds().Size() {
		viewer.Composite(img, overlay)
	} else {
		xdraw.BiLinear.Scale(img, img.Bounds(), overlay, overlay.Bounds(), xdraw.Over, nil)
	}
	return img
}

// updateCursor places the brush outline or the 3D hover marker
func (b *Board) updateCursor() {
	if b.cursor == nil {
		return
	}
	var (
		center geometry.Point
		size   float32
		col    color.Color
	)
	if c, ok := b.session.Cursor(); ok {
		center = c.Position
		size = float32(c.Width)
		col = color.NRGBA{R: 220, G: 220, B: 220, A: 200}
		if !c.Eraser {
			col = b.session.State().Style().Color
		}
	} else if ind, ok := b.session.Indicator(); ok && b.camera != nil {
		x, y, _ := b.camera.Project(ind.Center, b.width, b.height)
		center = geometry.NewPoint(x, y)
		size = 10
		col = ind.Color
		if ind.Eraser {
			col = color.NRGBA{R: 220, G: 220, B: 220, A: 200}
		}
	} else {
		b.cursor.Hide()
		return
	}

	b.cursor.StrokeColor = col
	b.cursor.Resize(fyne.NewSize(size, size))
	b.cursor.Move(fyne.NewPos(float32(center.X)-size/2, float32(center.Y)-size/2))
	b.cursor.Show()
}

func (b *Board) changed() {
	b.updateCursor()
	b.Refresh()
	if b.onChange != nil {
		b.onChange()
	}
}

func toPoint(pos fyne.Position) geometry.Point {
	return geometry.NewPoint(float64(pos.X), float64(pos.Y))
}

// pick casts a ray through widget point p
func (b *Board) pick(p geometry.Point) surface.Hit {
	if b.camera == nil || b.width == 0 || b.height == 0 {
		return surface.Hit{}
	}
	origin, dir := b.camera.Unproject(p.X, p.Y, b.width, b.height)
	return b.picker.Pick(origin, dir)
}

// MouseDown starts a stroke, an erase or an orbit
func (b *Board) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := toPoint(ev.Position)
	b.last = p
	tool := b.session.Tool()
	b.orbiting = tool == state.View || ev.Modifier&fyne.KeyModifierShift != 0

	switch {
	case b.orbiting:
	case tool.Is2D():
		b.session.OnPointerDown(p)
	case tool.Is3D():
		if hit := b.pick(p); hit.HasPoint {
			b.session.OnSurfaceDown(hit)
			b.onSurface = true
		}
	}
	b.changed()
}

// MouseUp ends the gesture
func (b *Board) MouseUp(ev *desktop.MouseEvent) {
	b.release(toPoint(ev.Position))
}

func (b *Board) release(p geometry.Point) {
	b.orbiting = false
	tool := b.session.Tool()
	switch {
	case tool.Is2D():
		b.session.OnPointerUp(p)
	case tool.Is3D():
		b.session.OnGlobalUp()
	}
	b.changed()
}

// Dragged extends the gesture or rotates the camera
func (b *Board) Dragged(ev *fyne.DragEvent) {
	if b.orbiting {
		if b.camera != nil {
			b.camera.Rotate(float64(-ev.Dragged.DY)*0.01, float64(ev.Dragged.DX)*0.01)
			b.changed()
		}
		return
	}
	b.move(toPoint(ev.Position))
}

// DragEnd ends the gesture at the last pointer position
func (b *Board) DragEnd() {
	b.release(b.last)
}

// MouseIn starts hover tracking
func (b *Board) MouseIn(ev *desktop.MouseEvent) {
	b.move(toPoint(ev.Position))
}

// MouseMoved tracks the pointer while no button is held
func (b *Board) MouseMoved(ev *desktop.MouseEvent) {
	b.move(toPoint(ev.Position))
}

// MouseOut ends 2D strokes and hides the hover marker
func (b *Board) MouseOut() {
	b.session.OnPointerLeave()
	if b.onSurface {
		b.session.OnSurfaceLeave()
		b.onSurface = false
	}
	b.changed()
}

func (b *Board) move(p geometry.Point) {
	b.last = p
	tool := b.session.Tool()
	switch {
	case tool.Is2D():
		b.session.OnPointerMove(p)
	case tool.Is3D():
		hit := b.pick(p)
		switch {
		case hit.HasPoint:
			b.session.OnSurfaceMove(hit)
			b.onSurface = true
		case b.onSurface:
			b.session.OnSurfaceLeave()
			b.onSurface = false
		}
	}
	b.changed()
}

// Scrolled handles scroll events for zooming
func (b *Board) Scrolled(ev *fyne.ScrollEvent) {
	if b.camera == nil {
		return
	}
	b.camera.Zoom(-float64(ev.Scrolled.DY) * 0.001)
	b.changed()
}

// boardRenderer implements fyne.WidgetRenderer
type boardRenderer struct {
	board   *Board
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.board.width = float64(size.Width)
	r.board.height = float64(size.Height)
	r.board.session.Resize(int(size.Width), int(size.Height))
	r.board.raster.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board.raster)
	canvas.Refresh(r.board.cursor)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}
