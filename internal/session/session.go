// Package session wires the annotation engines to one state container and
// exposes them to hosts as pointer sinks plus render queries.
package session

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/philipparndt/gosketch/internal/eraser"
	"github.com/philipparndt/gosketch/internal/overlay"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Config collects the settings of every engine
type Config struct {
	Style         state.Style
	Surface       surface.Config
	Eraser        eraser.Config
	OverlayWidth  int
	OverlayHeight int
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Style:         state.DefaultStyle(),
		Surface:       surface.DefaultConfig(),
		Eraser:        eraser.DefaultConfig(),
		OverlayWidth:  1280,
		OverlayHeight: 720,
	}
}

// Session is the host-facing annotation core. It is not safe for
// concurrent use; hosts call it from their event loop.
type Session struct {
	cfg      Config
	state    *state.State
	overlay  *overlay.Engine
	renderer *overlay.Renderer
	capture  *surface.Capture
	eraser   *eraser.Engine

	canvas    *image.RGBA
	canvasKey canvasKey
	rendered  bool
}

type canvasKey struct {
	paths   uint64
	pending uint64
}

var (
	_ overlay.PointerSink = (*Session)(nil)
	_ surface.Sink        = (*Session)(nil)
)

// New creates a session in view mode with empty collections
func New(cfg Config, opts ...surface.Option) *Session {
	st := state.New(cfg.Style)
	s := &Session{
		cfg:      cfg,
		state:    st,
		overlay:  overlay.NewEngine(st),
		renderer: overlay.NewRenderer(),
		capture:  surface.NewCapture(st, cfg.Surface, opts...),
		eraser:   eraser.New(st, cfg.Eraser),
	}
	s.Resize(cfg.OverlayWidth, cfg.OverlayHeight)
	return s
}

// State returns the underlying state container
func (s *Session) State() *state.State {
	return s.state
}

// Store returns the committed paths
func (s *Session) Store() *state.Store {
	return s.state.Store()
}

// Eraser returns the 3D eraser engine
func (s *Session) Eraser() *eraser.Engine {
	return s.eraser
}

// Tool returns the active tool
func (s *Session) Tool() state.Tool {
	return s.state.Tool()
}

// SetTool switches tools, discarding any stroke in progress
func (s *Session) SetTool(t state.Tool) {
	s.state.SetTool(t)
}

// SetColor changes the stroke color
func (s *Session) SetColor(c color.NRGBA) {
	s.state.SetColor(c)
}

// SetPencilWidth changes the pencil width and returns the clamped value
func (s *Session) SetPencilWidth(w float64) float64 {
	return s.state.SetPencilWidth(w)
}

// SetEraserWidth changes the eraser width and returns the clamped value
func (s *Session) SetEraserWidth(w float64) float64 {
	return s.state.SetEraserWidth(w)
}

// Undo removes the latest path of the active tool's collection
func (s *Session) Undo() bool {
	return s.state.Undo()
}

// Clear removes every path
func (s *Session) Clear() {
	s.state.Clear()
}

// SetOrigin sets the on-screen origin of the overlay surface
func (s *Session) SetOrigin(p geometry.Point) {
	s.overlay.SetOrigin(p)
}

// OnPointerDown forwards to the overlay engine
func (s *Session) OnPointerDown(p geometry.Point) { s.overlay.OnPointerDown(p) }

// OnPointerMove forwards to the overlay engine
func (s *Session) OnPointerMove(p geometry.Point) { s.overlay.OnPointerMove(p) }

// OnPointerUp forwards to the overlay engine
func (s *Session) OnPointerUp(p geometry.Point) { s.overlay.OnPointerUp(p) }

// OnPointerLeave forwards to the overlay engine
func (s *Session) OnPointerLeave() { s.overlay.OnPointerLeave() }

// OnSurfaceDown starts a 3D stroke or an erase, depending on the tool
func (s *Session) OnSurfaceDown(h surface.Hit) {
	s.capture.OnSurfaceDown(h)
	s.eraser.OnSurfaceDown(h)
}

// OnSurfaceMove extends a 3D stroke or erases along the way
func (s *Session) OnSurfaceMove(h surface.Hit) {
	s.capture.OnSurfaceMove(h)
	s.eraser.OnSurfaceMove(h)
}

// OnSurfaceLeave hides the hover indicator
func (s *Session) OnSurfaceLeave() {
	s.capture.OnSurfaceLeave()
	s.eraser.OnSurfaceLeave()
}

// OnGlobalUp commits the 3D stroke and releases the eraser
func (s *Session) OnGlobalUp() {
	s.capture.OnGlobalUp()
	s.eraser.OnGlobalUp()
}

// OverlayPaths returns the committed 2D paths followed by the stroke in
// progress, in drawing order
func (s *Session) OverlayPaths() []state.Path {
	paths := s.state.Store().Paths()
	if pending, ok := s.overlay.PendingPath(); ok {
		paths = append(paths, pending)
	}
	return paths
}

// RenderOverlay replays every 2D path onto dst
func (s *Session) RenderOverlay(dst draw.Image) {
	s.renderer.Render(dst, s.OverlayPaths())
}

// Resize changes the size of the cached overlay image
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	if s.canvas != nil && s.canvas.Rect.Dx() == width && s.canvas.Rect.Dy() == height {
		return
	}
	s.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	s.rendered = false
}

// Overlay returns the cached overlay image, re-rendering it when paths or
// the stroke in progress changed since the last call. The second result
// reports whether the image was redrawn.
func (s *Session) Overlay() (*image.RGBA, bool) {
	key := canvasKey{paths: s.state.Store().Revision2D(), pending: s.overlay.Revision()}
	if s.rendered && key == s.canvasKey {
		return s.canvas, false
	}
	s.RenderOverlay(s.canvas)
	s.canvasKey = key
	s.rendered = true
	return s.canvas, true
}

// Strokes3D returns every 3D path and the stroke in progress as line strips
// pulled toward eye
func (s *Session) Strokes3D(eye geometry.Vector3) []surface.Strip {
	return surface.Strips(s.state.Store().Paths3D(), s.capture.Pending(), s.state.Style(), eye, s.cfg.Surface.DepthBias)
}

// Indicator returns the 3D hover marker
func (s *Session) Indicator() (surface.Indicator, bool) {
	return s.capture.Indicator()
}

// Cursor returns the 2D brush outline
func (s *Session) Cursor() (overlay.Cursor, bool) {
	return s.overlay.Cursor()
}

// Projector returns the projector used for 3D hits
func (s *Session) Projector() surface.Projector {
	return s.capture.Projector()
}
