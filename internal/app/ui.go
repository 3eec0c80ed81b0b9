package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/version"
)

const statusDuration = 2 * time.Second

// setStatus shows a short message in the bottom-right corner
func (app *App) setStatus(text string) {
	app.UI.status = text
	app.UI.statusAt = time.Now()
	fmt.Println(text)
}

// drawUI draws the user interface
func (app *App) drawUI() {
	s := app.Annotation.session
	style := s.State().Style()
	font := rl.GetFontDefault()
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// Tool and style
	rl.DrawTextEx(font, fmt.Sprintf("Tool: %s", s.Tool()), rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.White)
	y += lineHeight
	rl.DrawRectangle(10, int32(y)+2, 12, 12, toColor(style.Color))
	rl.DrawTextEx(font, fmt.Sprintf("Pencil: %.0f  Eraser: %.0f", style.PencilWidth, style.EraserWidth), rl.Vector2{X: 28, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(font, fmt.Sprintf("Overlay paths: %d  Surface paths: %d", s.Store().Len(), s.Store().Len3D()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(100, 200, 255, 255))
	y += lineHeight

	if app.FileWatch.isLoadingNow() {
		rl.DrawTextEx(font, "Reloading model...", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Yellow)
		y += lineHeight
	}

	y += lineHeight / 2
	if app.UI.showHelp {
		help := []string{
			"0: View  1: Pencil  2: Eraser",
			"3: Pencil on model  4: Eraser on model",
			"Left Drag: Draw / orbit in view mode",
			"Right Drag: Orbit  Shift/Middle Drag: Pan",
			"Wheel: Zoom  Home/T/B/F1-F4: Views",
			"Tab: Next color  [ ]: Width",
			"Ctrl+Z: Undo  C: Clear all",
			"H: Hide help",
		}
		for _, line := range help {
			rl.DrawTextEx(font, line, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(144, 238, 144, 255))
			y += lineHeight
		}
	} else {
		rl.DrawTextEx(font, "H: Show help", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Gray)
	}

	// Status message (bottom-right corner)
	if app.UI.status != "" && time.Since(app.UI.statusAt) < statusDuration {
		boxPadding := float32(10)
		textSize := rl.MeasureTextEx(font, app.UI.status, fontSize16, 1)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := screenWidth - boxWidth - 20
		boxY := screenHeight - boxHeight - 20

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		rl.DrawTextEx(font, app.UI.status, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, rl.Yellow)
	}

	// Version and FPS in bottom-left corner
	bottomY := screenHeight - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(font, versionText, fontSize12, 1).X
	rl.DrawTextEx(font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}
