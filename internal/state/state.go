// Package state holds the annotation session: committed paths, the active
// tool and the drawing style. Everything runs on the caller's goroutine.
package state

import (
	"image/color"

	"github.com/philipparndt/gosketch/internal/logging"
)

// EventKind identifies a change of tool or style
type EventKind int

const (
	ToolChanged EventKind = iota
	StyleChanged
)

// Event is delivered to subscribers after the tool or style changed
type Event struct {
	Kind     EventKind
	Previous Tool
	Tool     Tool
	Style    Style
}

// State is the explicit container passed to capture engines and renderers
type State struct {
	store     *Store
	tool      Tool
	style     Style
	listeners []func(Event)
}

// New creates a state with an empty store in view mode
func New(style Style) *State {
	return &State{
		store: NewStore(),
		tool:  View,
		style: style.Clamp(),
	}
}

// Store returns the path collections
func (s *State) Store() *Store {
	return s.store
}

// Subscribe registers fn for tool and style changes
func (s *State) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *State) notify(e Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// Tool returns the active tool
func (s *State) Tool() Tool {
	return s.tool
}

// SetTool switches the active tool. Subscribers are only notified when the
// tool actually changes.
func (s *State) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	prev := s.tool
	s.tool = t
	logging.Logger().Debug("tool changed", "from", prev, "to", t)
	s.notify(Event{Kind: ToolChanged, Previous: prev, Tool: t, Style: s.style})
}

// Style returns the current drawing style
func (s *State) Style() Style {
	return s.style
}

// ActiveWidth returns the width of the active tool
func (s *State) ActiveWidth() float64 {
	return s.style.Width(s.tool)
}

// SetColor changes the stroke color
func (s *State) SetColor(c color.NRGBA) {
	st := s.style
	st.Color = c
	s.setStyle(st)
}

// SetPencilWidth changes the pencil width, clamped to its range
func (s *State) SetPencilWidth(w float64) float64 {
	st := s.style
	st.PencilWidth = w
	s.setStyle(st)
	return s.style.PencilWidth
}

// SetEraserWidth changes the eraser width, clamped to its range
func (s *State) SetEraserWidth(w float64) float64 {
	st := s.style
	st.EraserWidth = w
	s.setStyle(st)
	return s.style.EraserWidth
}

func (s *State) setStyle(st Style) {
	st = st.Clamp()
	if st == s.style {
		return
	}
	s.style = st
	s.notify(Event{Kind: StyleChanged, Previous: s.tool, Tool: s.tool, Style: st})
}

// Undo removes the most recent path of the collection matching the active
// tool: 3D paths for 3D tools, 2D paths otherwise.
func (s *State) Undo() bool {
	if s.tool.Is3D() {
		p, ok := s.store.Pop3D()
		if ok {
			logging.Logger().Debug("undo 3D path", "id", p.ID)
		}
		return ok
	}
	_, ok := s.store.Pop()
	if ok {
		logging.Logger().Debug("undo 2D path", "remaining", s.store.Len())
	}
	return ok
}

// Clear empties both collections
func (s *State) Clear() {
	s.store.Clear2D()
	s.store.Clear3D()
	logging.Logger().Debug("cleared all paths")
}
