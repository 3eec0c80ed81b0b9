package state

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when parsing an unrecognized tool name
var ErrUnknownTool = errors.New("unknown tool")

// Tool is the active interaction mode
type Tool int

const (
	View Tool = iota
	Pencil
	Eraser
	Pencil3D
	Eraser3D
)

var toolNames = [...]string{"view", "pencil", "eraser", "pencil3d", "eraser3d"}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool converts a tool name into a Tool
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return View, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// MarshalText implements encoding.TextMarshaler
func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tool) UnmarshalText(text []byte) error {
	parsed, err := ParseTool(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Is2D reports whether the tool captures overlay strokes
func (t Tool) Is2D() bool {
	return t == Pencil || t == Eraser
}

// Is3D reports whether the tool works on the model surface
func (t Tool) Is3D() bool {
	return t == Pencil3D || t == Eraser3D
}

// IsEraser reports whether the tool removes annotations
func (t Tool) IsEraser() bool {
	return t == Eraser || t == Eraser3D
}

// Draws reports whether the tool adds strokes
func (t Tool) Draws() bool {
	return t == Pencil || t == Pencil3D
}
