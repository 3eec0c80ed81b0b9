// Package eraser removes whole 3D strokes that come close to a probe point.
//
// Each committed stroke is summarized by a bounding sphere around its
// centroid. A probe only inspects the points of strokes whose sphere it can
// reach, and the first point within the eraser radius removes the stroke.
package eraser

import (
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

// Config holds the eraser tuning constants
type Config struct {
	// RadiusScale converts the eraser width into a world-space radius
	RadiusScale float64
}

// DefaultConfig returns the built-in eraser constants
func DefaultConfig() Config {
	return Config{RadiusScale: 40}
}

// Stats counts work done by probes, for diagnostics and tests
type Stats struct {
	Probes     int
	Candidates int
	PointTests int
	Removed    int
}

// Engine erases 3D paths from a state's store
type Engine struct {
	state   *state.State
	cfg     Config
	spheres map[string]geometry.Sphere
	held    bool
	stats   Stats
}

var _ surface.Sink = (*Engine)(nil)

// New creates an engine for st. Bounding spheres are kept current by
// observing the store. A non-positive RadiusScale falls back to the default.
func New(st *state.State, cfg Config) *Engine {
	if cfg.RadiusScale <= 0 {
		cfg.RadiusScale = DefaultConfig().RadiusScale
	}
	e := &Engine{
		state:   st,
		cfg:     cfg,
		spheres: make(map[string]geometry.Sphere),
	}
	for _, p := range st.Store().Paths3D() {
		e.spheres[p.ID] = geometry.BoundingSphere(p.Points)
	}
	st.Store().Observe(e.pathsChanged)
	st.Subscribe(func(ev state.Event) {
		if ev.Kind == state.ToolChanged {
			e.held = false
		}
	})
	return e
}

func (e *Engine) pathsChanged(c state.Change) {
	switch c.Kind {
	case state.Committed3D:
		e.spheres[c.Path3D.ID] = geometry.BoundingSphere(c.Path3D.Points)
	case state.Removed3D:
		delete(e.spheres, c.Path3D.ID)
	case state.Cleared3D:
		clear(e.spheres)
	}
}

// Radius returns the world-space eraser radius for the current width
func (e *Engine) Radius() float64 {
	return e.state.Style().EraserWidth / e.cfg.RadiusScale
}

// Stats returns the accumulated probe counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// EraseAt removes every path having a point closer than radius to probe
// and returns their ids in store order
func (e *Engine) EraseAt(probe geometry.Vector3, radius float64) []string {
	e.stats.Probes++

	var hits []string
	for _, p := range e.state.Store().Paths3D() {
		sphere, ok := e.spheres[p.ID]
		if ok && !sphere.Reaches(probe, radius) {
			continue
		}
		e.stats.Candidates++
		for _, q := range p.Points {
			e.stats.PointTests++
			if q.Distance(probe) < radius {
				hits = append(hits, p.ID)
				break
			}
		}
	}

	for _, id := range hits {
		if e.state.Store().Remove3D(id) {
			e.stats.Removed++
		}
	}
	if len(hits) > 0 {
		logging.Logger().Debug("erased 3D paths", "ids", hits, "radius", radius)
	}
	return hits
}

// Press starts erasing at probe when the 3D eraser is active
func (e *Engine) Press(probe geometry.Vector3) []string {
	if e.state.Tool() != state.Eraser3D {
		return nil
	}
	e.held = true
	return e.EraseAt(probe, e.Radius())
}

// Drag erases at probe while the eraser is held
func (e *Engine) Drag(probe geometry.Vector3) []string {
	if !e.held || e.state.Tool() != state.Eraser3D {
		return nil
	}
	return e.EraseAt(probe, e.Radius())
}

// Release ends the erase gesture
func (e *Engine) Release() {
	e.held = false
}

// Held reports whether an erase gesture is in progress
func (e *Engine) Held() bool {
	return e.held
}

// OnSurfaceDown presses at the raw hit point
func (e *Engine) OnSurfaceDown(h surface.Hit) {
	if h.HasPoint {
		e.Press(h.Point)
	}
}

// OnSurfaceMove drags to the raw hit point. Hits without a face are ignored.
func (e *Engine) OnSurfaceMove(h surface.Hit) {
	if h.HasPoint && h.HasFace {
		e.Drag(h.Point)
	}
}

// OnSurfaceLeave keeps the gesture alive until the global release
func (e *Engine) OnSurfaceLeave() {}

// OnGlobalUp releases the eraser
func (e *Engine) OnGlobalUp() {
	e.Release()
}
