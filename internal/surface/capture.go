package surface

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Sink receives pointer events over the model. Down, move and leave are
// local to the mesh; GlobalUp is the release anywhere in the window.
type Sink interface {
	OnSurfaceDown(h Hit)
	OnSurfaceMove(h Hit)
	OnSurfaceLeave()
	OnGlobalUp()
}

// Indicator is the hover marker drawn at the last surface point
type Indicator struct {
	Center geometry.Vector3
	Radius float64
	Color  color.NRGBA
	Eraser bool
}

// Option configures a Capture
type Option func(*Capture)

// WithIDGenerator replaces the uuid generator for committed path ids
func WithIDGenerator(fn func() string) Option {
	return func(c *Capture) {
		c.newID = fn
	}
}

// Capture records 3D pencil strokes on the model surface
type Capture struct {
	state     *state.State
	cfg       Config
	projector Projector
	newID     func() string
	buffer    []geometry.Vector3
	capturing bool
	hover     geometry.Vector3
	hovering  bool
	revision  uint64
}

var _ Sink = (*Capture)(nil)

// NewCapture creates a capture engine committing into st. A tool change
// discards any stroke in progress.
func NewCapture(st *state.State, cfg Config, opts ...Option) *Capture {
	c := &Capture{
		state:     st,
		cfg:       cfg,
		projector: Projector{Offset: cfg.NormalOffset},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	st.Subscribe(func(ev state.Event) {
		if ev.Kind == state.ToolChanged {
			c.Discard()
		}
	})
	return c
}

// Projector returns the projector used for incoming hits
func (c *Capture) Projector() Projector {
	return c.projector
}

// Begin starts a stroke at surface point p. It is ignored unless the 3D
// pencil is active and no stroke is in progress.
func (c *Capture) Begin(p geometry.Vector3) {
	if c.state.Tool() != state.Pencil3D || c.capturing {
		return
	}
	c.capturing = true
	c.buffer = append(c.buffer[:0], p)
	c.revision++
}

// Extend appends p when it lies farther than the minimum spacing from the
// last buffered point
func (c *Capture) Extend(p geometry.Vector3) {
	if !c.capturing || c.state.Tool() != state.Pencil3D {
		return
	}
	last := c.buffer[len(c.buffer)-1]
	if last.Distance(p) <= c.cfg.MinSpacing {
		return
	}
	c.buffer = append(c.buffer, p)
	c.revision++
}

// Commit stores the stroke in progress under a fresh id when it has at least
// two points. The buffer is cleared either way.
func (c *Capture) Commit() (state.Path3D, bool) {
	if !c.capturing {
		return state.Path3D{}, false
	}
	defer c.reset()

	if len(c.buffer) < 2 {
		logging.Logger().Debug("discarded 3D gesture", "points", len(c.buffer))
		return state.Path3D{}, false
	}
	style := c.state.Style()
	path := state.Path3D{
		ID:     c.newID(),
		Points: c.buffer,
		Color:  style.Color,
		Width:  style.PencilWidth,
	}
	if !c.state.Store().Append3D(path) {
		return state.Path3D{}, false
	}
	logging.Logger().Debug("committed 3D path", "id", path.ID, "points", len(path.Points))
	stored, _ := c.state.Store().Lookup3D(path.ID)
	return stored, true
}

// Discard drops the stroke in progress
func (c *Capture) Discard() {
	if !c.capturing {
		return
	}
	logging.Logger().Debug("discarded 3D stroke", "points", len(c.buffer))
	c.reset()
}

func (c *Capture) reset() {
	c.capturing = false
	c.buffer = nil
	c.revision++
}

// Capturing reports whether a stroke is in progress
func (c *Capture) Capturing() bool {
	return c.capturing
}

// Pending returns a copy of the buffered points
func (c *Capture) Pending() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), c.buffer...)
}

// Revision increases whenever the stroke in progress changes
func (c *Capture) Revision() uint64 {
	return c.revision
}

// Hover returns the last surface point under the pointer
func (c *Capture) Hover() (geometry.Vector3, bool) {
	return c.hover, c.hovering
}

// Indicator sizes the hover marker for the active 3D tool
func (c *Capture) Indicator() (Indicator, bool) {
	tool := c.state.Tool()
	if !c.hovering || !tool.Is3D() {
		return Indicator{}, false
	}
	style := c.state.Style()
	ind := Indicator{Center: c.hover, Color: style.Color}
	if tool.IsEraser() {
		ind.Radius = style.EraserWidth / c.cfg.EraserIndicatorScale
		ind.Eraser = true
	} else {
		ind.Radius = style.PencilWidth / c.cfg.PencilIndicatorScale
	}
	return ind, true
}

// track updates the hover point. Incomplete hits leave it unchanged.
func (c *Capture) track(h Hit) (geometry.Vector3, bool) {
	p, ok := c.projector.Project(h)
	if !ok {
		return geometry.Vector3{}, false
	}
	c.hover = p
	c.hovering = true
	return p, true
}

// OnSurfaceDown begins a stroke at the hit
func (c *Capture) OnSurfaceDown(h Hit) {
	if p, ok := c.track(h); ok {
		c.Begin(p)
	}
}

// OnSurfaceMove extends the stroke in progress
func (c *Capture) OnSurfaceMove(h Hit) {
	if p, ok := c.track(h); ok {
		c.Extend(p)
	}
}

// OnSurfaceLeave hides the hover marker. A stroke in progress stays open
// until the global release.
func (c *Capture) OnSurfaceLeave() {
	c.hovering = false
}

// OnGlobalUp commits the stroke in progress
func (c *Capture) OnGlobalUp() {
	c.Commit()
}
