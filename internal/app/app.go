// Package app is the interactive raylib host. It shows an STL model with an
// orbit camera and feeds pointer input into an annotation session, both as
// screen-space overlay strokes and as strokes on the model surface.
package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/geometry"
)

type App struct {
	Camera      CameraState
	Model       ModelData
	Interaction InteractionState
	Annotation  AnnotationState
	FileWatch   FileWatchState
	UI          UIState
}

// Run opens the viewer window for the model at path and blocks until it is
// closed
func Run(path string, cfg config.Config) error {
	model, err := loadModel(path)
	if err != nil {
		return fmt.Errorf("error loading file: %w", err)
	}

	sessionCfg, err := cfg.Session()
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "GoSketch")
	rl.SetTargetFPS(60)

	sessionCfg.OverlayWidth = rl.GetScreenWidth()
	sessionCfg.OverlayHeight = rl.GetScreenHeight()

	app := &App{
		Annotation: AnnotationState{
			session:   session.New(sessionCfg),
			palette:   palette,
			tubeScale: sessionCfg.Surface.PencilIndicatorScale * 2,
		},
		FileWatch: FileWatchState{
			sourceFile: path,
		},
	}

	// Set up file watching
	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	app.applyModel(model)
	app.Model.material = rl.LoadMaterialDefault()
	// Vertex colors are baked into the mesh, material will use them

	distance := float32(model.Extent() * 2.0)
	if distance <= 0 {
		distance = 1
	}

	app.Camera.target = app.Model.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3

	// Save default camera settings for reset
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()

	logging.Logger().Info("viewer started", "file", path, "triangles", len(model.Triangles))

	// Main loop
	for !rl.WindowShouldClose() {
		// Check if model needs reloading (file changed)
		if app.takeReloadRequest() {
			app.reloadModel()
		}

		// Apply loaded model if ready (must be on main thread)
		app.applyLoadedModel()

		// Update
		app.handleInput()
		app.updateCamera()
		app.syncOverlay()

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		app.drawStrokes3D()
		app.drawIndicator()
		rl.EndMode3D()

		app.drawOverlay()
		app.drawCursor()
		app.drawUI()

		rl.EndDrawing()
	}

	// Cleanup
	if app.Annotation.overlaySize[0] > 0 {
		rl.UnloadTexture(app.Annotation.overlay)
	}
	rl.UnloadMesh(&app.Model.mesh)
	rl.CloseWindow()
	return nil
}

func toVector3(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
