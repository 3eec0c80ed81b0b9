package script

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// ErrNoPicker is returned when surface events are replayed without a model
var ErrNoPicker = errors.New("surface event without a model")

// Picker casts a world-space ray onto the scene
type Picker interface {
	Pick(origin, dir geometry.Vector3) surface.Hit
}

// Replayer feeds events into a session
type Replayer struct {
	Session *session.Session
	Picker  Picker
	Camera  *viewer.Camera
	Width   float64
	Height  float64

	onMesh bool
}

// NewReplayer prepares a replayer. The camera may be nil when the script has
// no surface events.
func NewReplayer(s *session.Session, picker Picker, cam *viewer.Camera, view Camera) *Replayer {
	return &Replayer{
		Session: s,
		Picker:  picker,
		Camera:  cam,
		Width:   float64(view.Width),
		Height:  float64(view.Height),
	}
}

// PlaceCamera applies the script's rotation and zoom to cam
func PlaceCamera(cam *viewer.Camera, view Camera) {
	cam.Rotate(view.RotateX, view.RotateY)
	if view.Zoom != 0 {
		cam.Zoom(view.Zoom)
	}
}

// Run replays events in order and stops at the first failing one
func (r *Replayer) Run(events []Event) error {
	for i, e := range events {
		if err := r.apply(e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Kind, err)
		}
	}
	return nil
}

func (r *Replayer) apply(e Event) error {
	s := r.Session
	switch e.Kind {
	case Down:
		s.OnPointerDown(e.Point)
	case Move:
		s.OnPointerMove(e.Point)
	case Up:
		s.OnPointerUp(e.Point)
	case Leave:
		s.OnPointerLeave()
	case SurfaceDown, SurfaceMove:
		hit, err := r.cast(e.Point)
		if err != nil {
			return err
		}
		r.surface(e.Kind, hit)
	case SurfaceLeave:
		r.onMesh = false
		s.OnSurfaceLeave()
	case GlobalUp:
		s.OnGlobalUp()
	case SetTool:
		s.SetTool(e.Tool)
	case SetColor:
		c, err := config.ParseColor(e.Color)
		if err != nil {
			return err
		}
		s.SetColor(c)
	case PencilWidth:
		s.SetPencilWidth(e.Width)
	case EraserWidth:
		s.SetEraserWidth(e.Width)
	case Undo:
		s.Undo()
	case Clear:
		s.Clear()
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, e.Kind)
	}
	return nil
}

func (r *Replayer) cast(p geometry.Point) (surface.Hit, error) {
	if r.Picker == nil || r.Camera == nil {
		return surface.Hit{}, ErrNoPicker
	}
	origin, dir := r.Camera.Unproject(p.X, p.Y, r.Width, r.Height)
	return r.Picker.Pick(origin, dir), nil
}

// surface mimics a mesh event target: events only arrive while the pointer
// is over the model, and moving off it produces a single leave
func (r *Replayer) surface(kind Kind, hit surface.Hit) {
	if !hit.HasPoint {
		if r.onMesh {
			r.onMesh = false
			r.Session.OnSurfaceLeave()
		}
		return
	}
	r.onMesh = true
	if kind == SurfaceDown {
		r.Session.OnSurfaceDown(hit)
	} else {
		r.Session.OnSurfaceMove(hit)
	}
}
