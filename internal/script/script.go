// Package script reads recorded annotation sessions from YAML and replays
// them against a session.
//
// A script lists one event per item:
//
//	camera: {rotate_x: 0.4, rotate_y: 0.6, zoom: 0, width: 1280, height: 720}
//	events:
//	  - tool: pencil
//	  - down: [100, 100]
//	  - move: [140, 120]
//	  - up: [140, 120]
//	  - tool: pencil3d
//	  - surface_down: [640, 360]
//	  - surface_move: [660, 360]
//	  - global_up: {}
//	  - undo: {}
//
// Pointer positions are screen pixels. Surface events are cast through the
// script camera onto the model.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// ErrUnknownEvent is returned for event names the replayer does not know
var ErrUnknownEvent = errors.New("unknown event")

// Kind names an event
type Kind string

const (
	Down         Kind = "down"
	Move         Kind = "move"
	Up           Kind = "up"
	Leave        Kind = "leave"
	SurfaceDown  Kind = "surface_down"
	SurfaceMove  Kind = "surface_move"
	SurfaceLeave Kind = "surface_leave"
	GlobalUp     Kind = "global_up"
	SetTool      Kind = "tool"
	SetColor     Kind = "color"
	PencilWidth  Kind = "pencil_width"
	EraserWidth  Kind = "eraser_width"
	Undo         Kind = "undo"
	Clear        Kind = "clear"
)

// Event is one recorded input
type Event struct {
	Kind  Kind
	Point geometry.Point
	Tool  state.Tool
	Color string
	Width float64
}

// Camera places the viewpoint used for surface events and snapshots
type Camera struct {
	RotateX float64 `yaml:"rotate_x"`
	RotateY float64 `yaml:"rotate_y"`
	Zoom    float64 `yaml:"zoom"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
}

// Script is a camera plus an ordered event list
type Script struct {
	Camera Camera  `yaml:"camera"`
	Events []Event `yaml:"events"`
}

// Load reads a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Camera.Width <= 0 {
		s.Camera.Width = 1280
	}
	if s.Camera.Height <= 0 {
		s.Camera.Height = 720
	}
	return &s, nil
}

// UnmarshalYAML decodes a single-key mapping such as {down: [1, 2]}
func (e *Event) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: event must be a mapping with one key", value.Line)
	}
	key, payload := value.Content[0].Value, value.Content[1]
	e.Kind = Kind(key)

	switch e.Kind {
	case Down, Move, Up, SurfaceDown, SurfaceMove:
		var xy []float64
		if err := payload.Decode(&xy); err != nil || len(xy) != 2 {
			return fmt.Errorf("line %d: %s needs [x, y]", payload.Line, key)
		}
		e.Point = geometry.NewPoint(xy[0], xy[1])
	case SetTool:
		var name string
		if err := payload.Decode(&name); err != nil {
			return fmt.Errorf("line %d: %w", payload.Line, err)
		}
		tool, err := state.ParseTool(name)
		if err != nil {
			return fmt.Errorf("line %d: %w", payload.Line, err)
		}
		e.Tool = tool
	case SetColor:
		if err := payload.Decode(&e.Color); err != nil {
			return fmt.Errorf("line %d: %w", payload.Line, err)
		}
	case PencilWidth, EraserWidth:
		if err := payload.Decode(&e.Width); err != nil {
			return fmt.Errorf("line %d: %w", payload.Line, err)
		}
	case Leave, SurfaceLeave, GlobalUp, Undo, Clear:
	default:
		return fmt.Errorf("line %d: %w %q", value.Line, ErrUnknownEvent, key)
	}
	return nil
}

// Needs3D reports whether any event requires a model
func (s *Script) Needs3D() bool {
	for _, e := range s.Events {
		switch e.Kind {
		case SurfaceDown, SurfaceMove:
			return true
		}
	}
	return false
}
