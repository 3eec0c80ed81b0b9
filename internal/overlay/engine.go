// Package overlay captures freehand strokes on the screen-space drawing
// surface and renders them with order-sensitive erase compositing.
package overlay

import (
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// PointerSink receives pointer events from a host in device coordinates.
// Calls must come from a single goroutine in arrival order.
type PointerSink interface {
	OnPointerDown(p geometry.Point)
	OnPointerMove(p geometry.Point)
	OnPointerUp(p geometry.Point)
	OnPointerLeave()
}

// Cursor is the brush outline shown under the pointer
type Cursor struct {
	Position geometry.Point
	Width    float64
	Eraser   bool
}

// Engine turns pointer gestures into committed paths
type Engine struct {
	state     *state.State
	origin    geometry.Point
	buffer    []geometry.Point
	capturing bool
	pointer   geometry.Point
	hovering  bool
	revision  uint64
}

var _ PointerSink = (*Engine)(nil)

// NewEngine creates an engine committing into st. A tool change discards
// any stroke in progress.
func NewEngine(st *state.State) *Engine {
	e := &Engine{state: st}
	st.Subscribe(func(ev state.Event) {
		switch ev.Kind {
		case state.ToolChanged:
			e.Discard()
		case state.StyleChanged:
			if e.capturing {
				e.revision++
			}
		}
	})
	return e
}

// SetOrigin sets the on-screen position of the drawing surface's top-left
// corner. Device coordinates are made local by subtracting it.
func (e *Engine) SetOrigin(origin geometry.Point) {
	e.origin = origin
}

func (e *Engine) local(p geometry.Point) geometry.Point {
	return p.Sub(e.origin)
}

// Begin starts a stroke at local point p. It is ignored unless a 2D tool is
// active and no stroke is in progress.
func (e *Engine) Begin(p geometry.Point) {
	if !e.state.Tool().Is2D() || e.capturing {
		return
	}
	e.capturing = true
	e.buffer = append(e.buffer[:0], p)
	e.revision++
}

// Extend appends local point p to the stroke in progress
func (e *Engine) Extend(p geometry.Point) {
	if !e.capturing || !e.state.Tool().Is2D() {
		return
	}
	e.buffer = append(e.buffer, p)
	e.revision++
}

// End commits the stroke in progress when it has at least two points.
// The buffer is cleared either way.
func (e *Engine) End() {
	if !e.capturing {
		return
	}
	if path, ok := e.pendingPath(); ok {
		e.state.Store().Append(path)
		logging.Logger().Debug("committed 2D path", "points", len(path.Points), "eraser", path.IsEraser)
	} else {
		logging.Logger().Debug("discarded 2D gesture", "points", len(e.buffer))
	}
	e.reset()
}

// Discard drops the stroke in progress without committing it
func (e *Engine) Discard() {
	if !e.capturing {
		return
	}
	logging.Logger().Debug("discarded 2D stroke", "points", len(e.buffer))
	e.reset()
}

func (e *Engine) reset() {
	e.capturing = false
	e.buffer = e.buffer[:0]
	e.revision++
}

// Capturing reports whether a stroke is in progress
func (e *Engine) Capturing() bool {
	return e.capturing
}

// Pending returns a copy of the points captured so far
func (e *Engine) Pending() []geometry.Point {
	return append([]geometry.Point(nil), e.buffer...)
}

// PendingPath returns the stroke in progress styled as it would be
// committed now. It is only available once two points are buffered.
func (e *Engine) PendingPath() (state.Path, bool) {
	p, ok := e.pendingPath()
	if ok {
		p.Points = append([]geometry.Point(nil), p.Points...)
	}
	return p, ok
}

func (e *Engine) pendingPath() (state.Path, bool) {
	if !e.capturing || len(e.buffer) < 2 {
		return state.Path{}, false
	}
	tool := e.state.Tool()
	style := e.state.Style()
	path := state.Path{
		Points:   e.buffer,
		Color:    style.Color,
		Width:    style.Width(tool),
		IsEraser: tool.IsEraser(),
	}
	if path.IsEraser {
		path.Color = state.EraserColor
	}
	return path, true
}

// Cursor returns the brush outline at the last pointer position. It is
// hidden outside the surface and for tools other than the 2D ones.
func (e *Engine) Cursor() (Cursor, bool) {
	tool := e.state.Tool()
	if !e.hovering || !tool.Is2D() {
		return Cursor{}, false
	}
	return Cursor{
		Position: e.pointer,
		Width:    e.state.ActiveWidth(),
		Eraser:   tool.IsEraser(),
	}, true
}

// Revision increases whenever the stroke in progress changes
func (e *Engine) Revision() uint64 {
	return e.revision
}

// OnPointerDown begins a stroke
func (e *Engine) OnPointerDown(p geometry.Point) {
	e.track(p)
	e.Begin(e.local(p))
}

// OnPointerMove extends the stroke in progress
func (e *Engine) OnPointerMove(p geometry.Point) {
	e.track(p)
	e.Extend(e.local(p))
}

// OnPointerUp commits the stroke in progress
func (e *Engine) OnPointerUp(p geometry.Point) {
	e.track(p)
	e.End()
}

// OnPointerLeave ends the stroke in progress and hides the cursor
func (e *Engine) OnPointerLeave() {
	e.hovering = false
	e.End()
}

func (e *Engine) track(p geometry.Point) {
	e.pointer = e.local(p)
	e.hovering = true
}
