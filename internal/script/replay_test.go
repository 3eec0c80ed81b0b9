package script

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/philipparndt/gosketch/internal/picking"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// board is a 4x4 quad at z=0 facing the default camera
func board() *stl.Model {
	m := stl.NewModel("board")
	n := geometry.NewVector3(0, 0, 1)
	a := geometry.NewVector3(-2, -2, 0)
	b := geometry.NewVector3(2, -2, 0)
	c := geometry.NewVector3(2, 2, 0)
	d := geometry.NewVector3(-2, 2, 0)
	m.AddTriangle(geometry.NewTriangle(n, a, b, c))
	m.AddTriangle(geometry.NewTriangle(n, a, c, d))
	return m
}

func newReplayer(t *testing.T, view Camera) *Replayer {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.OverlayWidth, cfg.OverlayHeight = view.Width, view.Height
	n := 0
	s := session.New(cfg, surface.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("r%d", n)
	}))

	model := board()
	cam := viewer.NewCamera(model.BoundingBox())
	PlaceCamera(cam, view)
	return NewReplayer(s, picking.New(model, geometry.IdentityOrientation()), cam, view)
}

func run(t *testing.T, r *Replayer, data string) {
	t.Helper()
	s, err := Parse([]byte(data))
	require.NoError(t, err)
	require.NoError(t, r.Run(s.Events))
}

func TestReplay2D(t *testing.T) {
	r := newReplayer(t, Camera{Width: 200, Height: 100})
	run(t, r, `
events:
  - tool: pencil
  - color: "#3b82f6"
  - down: [10, 10]
  - move: [50, 50]
  - move: [60, 50]
  - up: [60, 50]
  - tool: eraser
  - down: [0, 0]
  - up: [0, 0]
`)
	paths := r.Session.Store().Paths()
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Points, 3)
	assert.Equal(t, color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}, paths[0].Color)
}

func TestReplay3DDrawAndErase(t *testing.T) {
	r := newReplayer(t, Camera{Width: 200, Height: 200})
	run(t, r, `
events:
  - tool: pencil3d
  - surface_down: [100, 100]
  - surface_move: [110, 100]
  - surface_move: [120, 100]
  - global_up: {}
  - surface_down: [100, 150]
  - surface_move: [120, 150]
  - global_up: {}
`)
	require.Equal(t, 2, r.Session.Store().Len3D())
	first := r.Session.Store().Paths3D()[0]
	assert.Len(t, first.Points, 3)
	assert.InDelta(t, 0.015, first.Points[0].Z, 1e-9)

	run(t, r, `
events:
  - tool: eraser3d
  - surface_down: [100, 100]
  - global_up: {}
`)
	paths := r.Session.Store().Paths3D()
	require.Len(t, paths, 1)
	assert.Equal(t, "r2", paths[0].ID)
}

func TestReplayStrokeContinuesOffMesh(t *testing.T) {
	r := newReplayer(t, Camera{Width: 200, Height: 200})
	run(t, r, `
events:
  - tool: pencil3d
  - surface_move: [100, 100]
  - surface_down: [100, 100]
  - surface_move: [0, 0]
  - surface_move: [130, 100]
  - global_up: {}
`)
	paths := r.Session.Store().Paths3D()
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Points, 2)
}

func TestReplayUndoClear(t *testing.T) {
	r := newReplayer(t, Camera{Width: 200, Height: 100})
	run(t, r, `
events:
  - tool: pencil
  - down: [10, 10]
  - move: [50, 50]
  - up: [50, 50]
  - down: [10, 60]
  - move: [50, 60]
  - up: [50, 60]
  - undo: {}
`)
	assert.Equal(t, 1, r.Session.Store().Len())

	run(t, r, "events:\n  - clear: {}\n")
	assert.Equal(t, 0, r.Session.Store().Len())
	assert.Equal(t, state.Pencil, r.Session.Tool())
}

func TestReplaySurfaceWithoutModel(t *testing.T) {
	s := session.New(session.DefaultConfig())
	r := NewReplayer(s, nil, nil, Camera{Width: 10, Height: 10})

	err := r.Run([]Event{{Kind: SurfaceDown, Point: geometry.NewPoint(1, 1)}})
	assert.ErrorIs(t, err, ErrNoPicker)

	err = r.Run([]Event{{Kind: SetColor, Color: "nope"}})
	assert.Error(t, err)
}
