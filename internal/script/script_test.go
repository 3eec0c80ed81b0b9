package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
camera: {rotate_x: 0.2, width: 640, height: 480}
events:
  - tool: pencil
  - color: "#22c55e"
  - pencil_width: 8
  - down: [10, 20]
  - move: [30, 40]
  - up: [30, 40]
  - leave: {}
  - tool: eraser3d
  - eraser_width: 60
  - surface_down: [320, 240]
  - surface_move: [330, 240]
  - surface_leave:
  - global_up: {}
  - undo: {}
  - clear: {}
`

func TestParseSample(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, Camera{RotateX: 0.2, Width: 640, Height: 480}, s.Camera)
	require.Len(t, s.Events, 15)
	assert.Equal(t, Event{Kind: SetTool, Tool: state.Pencil}, s.Events[0])
	assert.Equal(t, Event{Kind: SetColor, Color: "#22c55e"}, s.Events[1])
	assert.Equal(t, Event{Kind: PencilWidth, Width: 8}, s.Events[2])
	assert.Equal(t, Event{Kind: Down, Point: geometry.NewPoint(10, 20)}, s.Events[3])
	assert.Equal(t, Event{Kind: SetTool, Tool: state.Eraser3D}, s.Events[7])
	assert.Equal(t, SurfaceLeave, s.Events[11].Kind)
	assert.True(t, s.Needs3D())
}

func TestParseDefaultsCameraSize(t *testing.T) {
	s, err := Parse([]byte("events: []\n"))
	require.NoError(t, err)
	assert.Equal(t, 1280, s.Camera.Width)
	assert.Equal(t, 720, s.Camera.Height)
	assert.False(t, s.Needs3D())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown event": "events:\n  - jump: [1, 2]\n",
		"bad point":     "events:\n  - down: [1]\n",
		"bad tool":      "events:\n  - tool: brush\n",
		"two keys":      "events:\n  - {down: [1, 2], up: [1, 2]}\n",
		"scalar":        "events:\n  - down\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("events:\n  - jump: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrUnknownEvent)
	_, err = Parse([]byte("events:\n  - tool: brush\n"))
	assert.ErrorIs(t, err, state.ErrUnknownTool)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Events, 15)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
