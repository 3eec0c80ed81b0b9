package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

var toolKeys = map[int32]state.Tool{
	rl.KeyZero:  state.View,
	rl.KeyOne:   state.Pencil,
	rl.KeyTwo:   state.Eraser,
	rl.KeyThree: state.Pencil3D,
	rl.KeyFour:  state.Eraser3D,
}

// handleInput processes user input
func (app *App) handleInput() {
	s := app.Annotation.session

	if rl.IsWindowResized() {
		s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	app.handleKeys()

	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	moved := delta.X != 0 || delta.Y != 0
	app.Interaction.lastMousePos = mouse

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		// Pan if Shift is pressed (works in any mode)
		app.Interaction.isPanning = shiftPressed
		app.Interaction.isOrbiting = !shiftPressed && s.Tool() == state.View
	}

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		if moved {
			app.doPan(delta)
		}
	}

	// Orbit with the left button in view mode, with the right button in any mode
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isOrbiting) || rl.IsMouseButtonDown(rl.MouseRightButton) {
		if moved {
			app.orbit(delta)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.zoom(wheel)
	}

	drawing := !app.Interaction.isPanning && !app.Interaction.isOrbiting
	switch {
	case s.Tool().Is2D():
		app.handlePointer(mouse, moved, drawing)
	case s.Tool().Is3D():
		app.handleSurface(mouse, moved, drawing)
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.isPanning = false
		app.Interaction.isOrbiting = false
	}
}

// handlePointer feeds the window pointer into the 2D sink
func (app *App) handlePointer(mouse rl.Vector2, moved, drawing bool) {
	s := app.Annotation.session
	p := geometry.NewPoint(float64(mouse.X), float64(mouse.Y))

	if !rl.IsCursorOnScreen() {
		if app.Interaction.pointerIn {
			s.OnPointerLeave()
			app.Interaction.pointerIn = false
		}
		return
	}
	app.Interaction.pointerIn = true

	switch {
	case drawing && rl.IsMouseButtonPressed(rl.MouseLeftButton):
		s.OnPointerDown(p)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		s.OnPointerUp(p)
	case moved:
		s.OnPointerMove(p)
	}
}

// handleSurface casts the pointer into the scene and feeds the 3D sink
func (app *App) handleSurface(mouse rl.Vector2, moved, drawing bool) {
	s := app.Annotation.session
	pressed := drawing && rl.IsMouseButtonPressed(rl.MouseLeftButton)

	if moved || pressed {
		ray := rl.GetScreenToWorldRay(mouse, app.Camera.camera)
		hit := app.Model.picker.Pick(toVector3(ray.Position), toVector3(ray.Direction))
		switch {
		case hit.HasPoint && pressed:
			s.OnSurfaceDown(hit)
			app.Interaction.onSurface = true
		case hit.HasPoint:
			s.OnSurfaceMove(hit)
			app.Interaction.onSurface = true
		case app.Interaction.onSurface:
			s.OnSurfaceLeave()
			app.Interaction.onSurface = false
		}
	}

	// A release anywhere ends the stroke
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		s.OnGlobalUp()
	}
}

// handleKeys processes keyboard shortcuts
func (app *App) handleKeys() {
	s := app.Annotation.session

	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		app.setCameraRightView()
	}

	for key, tool := range toolKeys {
		if rl.IsKeyPressed(key) {
			app.switchTool(tool)
		}
	}

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyZ) {
		if s.Undo() {
			app.setStatus("Undo")
		}
	}
	if !ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
		s.Clear()
		app.setStatus("Cleared all annotations")
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		app.nextColor()
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		app.changeWidth(-1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		app.changeWidth(1)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.UI.showHelp = !app.UI.showHelp
	}
}

// switchTool changes the active tool and resets the sinks' pointer tracking
func (app *App) switchTool(tool state.Tool) {
	s := app.Annotation.session
	if s.Tool() == tool {
		return
	}
	if app.Interaction.onSurface {
		s.OnSurfaceLeave()
		app.Interaction.onSurface = false
	}
	s.SetTool(tool)
	app.setStatus(fmt.Sprintf("Tool: %s", tool))
}

// nextColor cycles through the palette
func (app *App) nextColor() {
	a := &app.Annotation
	if len(a.palette) == 0 {
		return
	}
	a.paletteIndex = (a.paletteIndex + 1) % len(a.palette)
	a.session.SetColor(a.palette[a.paletteIndex])
}

// changeWidth steps the width of the active tool
func (app *App) changeWidth(direction float64) {
	s := app.Annotation.session
	style := s.State().Style()
	if s.Tool().IsEraser() {
		w := s.SetEraserWidth(style.EraserWidth + direction*5)
		app.setStatus(fmt.Sprintf("Eraser width: %.0f", w))
		return
	}
	w := s.SetPencilWidth(style.PencilWidth + direction)
	app.setStatus(fmt.Sprintf("Pencil width: %.0f", w))
}
