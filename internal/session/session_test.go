package session

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OverlayWidth, cfg.OverlayHeight = 100, 100
	n := 0
	return New(cfg, surface.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))
}

func draw2D(s *Session, points ...geometry.Point) {
	s.OnPointerDown(points[0])
	for _, p := range points[1:] {
		s.OnPointerMove(p)
	}
	s.OnPointerUp(points[len(points)-1])
}

func floor(x, y float64) surface.Hit {
	return surface.NewHit(geometry.NewVector3(x, y, 0), geometry.NewVector3(0, 0, 1), geometry.IdentityOrientation())
}

func draw3D(s *Session, hits ...surface.Hit) {
	s.OnSurfaceDown(hits[0])
	for _, h := range hits[1:] {
		s.OnSurfaceMove(h)
	}
	s.OnGlobalUp()
}

func TestUndoPopsActiveCollection(t *testing.T) {
	s := newSession(t)

	s.SetTool(state.Pencil)
	draw2D(s, geometry.NewPoint(10, 10), geometry.NewPoint(20, 20))
	draw2D(s, geometry.NewPoint(30, 30), geometry.NewPoint(40, 40))
	s.SetTool(state.Pencil3D)
	draw3D(s, floor(0, 0), floor(1, 0))
	draw3D(s, floor(0, 1), floor(1, 1))

	require.True(t, s.Undo())
	assert.Equal(t, 2, s.Store().Len())
	assert.Equal(t, 1, s.Store().Len3D())
	_, ok := s.Store().Lookup3D("s1")
	assert.True(t, ok)

	s.SetTool(state.View)
	require.True(t, s.Undo())
	assert.Equal(t, 1, s.Store().Len())
	assert.Equal(t, 1, s.Store().Len3D())
}

func TestClearEmptiesEverything(t *testing.T) {
	s := newSession(t)
	s.SetTool(state.Pencil)
	draw2D(s, geometry.NewPoint(10, 10), geometry.NewPoint(20, 20))
	s.SetTool(state.Pencil3D)
	draw3D(s, floor(0, 0), floor(1, 0))

	s.SetTool(state.Eraser)
	s.Clear()
	assert.Equal(t, 0, s.Store().Len())
	assert.Equal(t, 0, s.Store().Len3D())
}

func TestSurfaceEventsRouteByTool(t *testing.T) {
	s := newSession(t)
	s.SetTool(state.Pencil3D)
	draw3D(s, floor(0, 0), floor(1, 0))
	draw3D(s, floor(0, 5), floor(1, 5))

	s.SetTool(state.Eraser3D)
	draw3D(s, floor(0.5, 5.2))

	paths := s.Store().Paths3D()
	require.Len(t, paths, 1)
	assert.Equal(t, "s1", paths[0].ID)
}

func TestToolSwitchDiscardsBothBuffers(t *testing.T) {
	s := newSession(t)

	s.SetTool(state.Pencil)
	s.OnPointerDown(geometry.NewPoint(0, 0))
	s.OnPointerMove(geometry.NewPoint(5, 5))
	s.SetTool(state.Pencil3D)
	s.OnPointerUp(geometry.NewPoint(5, 5))

	s.OnSurfaceDown(floor(0, 0))
	s.OnSurfaceMove(floor(1, 0))
	s.SetTool(state.View)
	s.OnGlobalUp()

	assert.Equal(t, 0, s.Store().Len())
	assert.Equal(t, 0, s.Store().Len3D())
}

func TestOverlayIsCachedUntilChange(t *testing.T) {
	s := newSession(t)

	_, changed := s.Overlay()
	assert.True(t, changed)
	_, changed = s.Overlay()
	assert.False(t, changed)

	s.SetTool(state.Pencil)
	s.OnPointerDown(geometry.NewPoint(10, 50))
	s.OnPointerMove(geometry.NewPoint(90, 50))
	img, changed := s.Overlay()
	assert.True(t, changed)
	assert.NotZero(t, img.RGBAAt(50, 50).A, "stroke in progress is drawn")

	s.OnPointerUp(geometry.NewPoint(90, 50))
	img, changed = s.Overlay()
	assert.True(t, changed)
	assert.NotZero(t, img.RGBAAt(50, 50).A)

	s.SetColor(color.NRGBA{B: 0xff, A: 0xff})
	_, changed = s.Overlay()
	assert.False(t, changed, "committed paths keep their color")

	s.Undo()
	img, changed = s.Overlay()
	assert.True(t, changed)
	assert.Zero(t, img.RGBAAt(50, 50).A)
}

func TestRenderOverlayMatchesCachedImage(t *testing.T) {
	s := newSession(t)
	s.SetTool(state.Pencil)
	draw2D(s, geometry.NewPoint(10, 10), geometry.NewPoint(90, 90))
	s.SetTool(state.Eraser)
	draw2D(s, geometry.NewPoint(10, 90), geometry.NewPoint(90, 10))

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	s.RenderOverlay(dst)
	cached, _ := s.Overlay()
	assert.Equal(t, dst.Pix, cached.Pix)
}

func TestStrokes3DIncludesPending(t *testing.T) {
	s := newSession(t)
	s.SetTool(state.Pencil3D)
	draw3D(s, floor(0, 0), floor(1, 0))

	s.OnSurfaceDown(floor(0, 2))
	s.OnSurfaceMove(floor(1, 2))

	strips := s.Strokes3D(geometry.NewVector3(0, 0, 10))
	require.Len(t, strips, 2)
	assert.Equal(t, "s1", strips[0].ID)
	assert.True(t, strips[1].Pending)
	assert.Greater(t, strips[0].Points[0].Z, 0.015)
}

func TestIndicatorAndCursor(t *testing.T) {
	s := newSession(t)

	s.SetTool(state.Eraser3D)
	s.OnSurfaceMove(floor(1, 1))
	ind, ok := s.Indicator()
	require.True(t, ok)
	assert.InDelta(t, 0.1, ind.Radius, 1e-12)

	s.OnSurfaceLeave()
	_, ok = s.Indicator()
	assert.False(t, ok)

	s.SetTool(state.Eraser)
	s.SetOrigin(geometry.NewPoint(10, 10))
	s.OnPointerMove(geometry.NewPoint(15, 20))
	c, ok := s.Cursor()
	require.True(t, ok)
	assert.Equal(t, geometry.NewPoint(5, 10), c.Position)
	assert.Equal(t, 40.0, c.Width)
	assert.True(t, c.Eraser)
}
