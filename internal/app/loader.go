package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/internal/picking"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/pkg/watcher"
)

// loadModel loads an STL model
func loadModel(filePath string) (*stl.Model, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".stl" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl)", ext)
	}
	model, err := stl.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	return model, nil
}

// setupFileWatcher watches the model file for changes
func (app *App) setupFileWatcher() error {
	// Create file watcher with 500ms debounce
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.sourceFile)

	callback := func(changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		app.FileWatch.mu.Lock()
		app.FileWatch.needsReload = true
		app.FileWatch.mu.Unlock()
	}

	if err := fw.Watch([]string{app.FileWatch.sourceFile}, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw

	return nil
}

// takeReloadRequest reports and clears a pending reload request. It
// returns false while a reload is already running.
func (app *App) takeReloadRequest() bool {
	app.FileWatch.mu.Lock()
	defer app.FileWatch.mu.Unlock()
	if !app.FileWatch.needsReload || app.FileWatch.isLoading {
		return false
	}
	app.FileWatch.needsReload = false
	return true
}

// reloadModel reloads the model from the source file in the background
func (app *App) reloadModel() {
	app.FileWatch.mu.Lock()
	if app.FileWatch.isLoading {
		app.FileWatch.mu.Unlock()
		return
	}
	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	app.FileWatch.mu.Unlock()
	fmt.Println("Reloading model...")

	// Load in background (but don't create mesh - that must be on main thread)
	go func() {
		model, err := loadModel(app.FileWatch.sourceFile)

		app.FileWatch.mu.Lock()
		defer app.FileWatch.mu.Unlock()
		if err != nil {
			fmt.Printf("Error reloading model: %v\n", err)
			app.FileWatch.isLoading = false
			return
		}
		app.FileWatch.loadedModel = model
	}()
}

// applyLoadedModel swaps in a model loaded in the background. It must be
// called on the main thread.
func (app *App) applyLoadedModel() {
	app.FileWatch.mu.Lock()
	model := app.FileWatch.loadedModel
	started := app.FileWatch.loadingStartTime
	app.FileWatch.loadedModel = nil
	app.FileWatch.mu.Unlock()
	if model == nil {
		return
	}

	oldCenter := app.Model.center
	oldMesh := app.Model.mesh

	app.applyModel(model)

	// Keep the camera where it was relative to the model
	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Subtract(app.Model.center, oldCenter))

	// Unload old mesh after switching
	rl.UnloadMesh(&oldMesh)

	// Annotations on the old surface no longer lie on the model
	app.Annotation.session.Store().Clear3D()

	elapsed := time.Since(started)
	fmt.Printf("Model reloaded successfully in %.2fs!\n", elapsed.Seconds())
	logging.Logger().Debug("model reloaded", "triangles", len(model.Triangles))

	app.FileWatch.mu.Lock()
	app.FileWatch.isLoading = false
	app.FileWatch.mu.Unlock()
}

// applyModel uploads model to the GPU and rebuilds the picker
func (app *App) applyModel(model *stl.Model) {
	app.Model.model = model
	app.Model.mesh = stlToRaylibMesh(model)
	app.Model.picker = picking.New(model, geometry.IdentityOrientation())
	app.Model.center = toRaylib(model.BoundingBox().Center())
	app.Model.size = float32(model.Extent())
}

func (fw *FileWatchState) isLoadingNow() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.isLoading
}
