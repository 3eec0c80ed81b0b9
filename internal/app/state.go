package app

import (
	"image/color"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/picking"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/philipparndt/gosketch/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// ModelData holds all model-related data
type ModelData struct {
	model    *stl.Model
	mesh     rl.Mesh
	material rl.Material
	picker   *picking.Picker
	center   rl.Vector3 // Model center
	size     float32    // Model size (max dimension)
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	lastMousePos rl.Vector2
	isPanning    bool
	isOrbiting   bool
	pointerIn    bool // Pointer is inside the window (2D sink)
	onSurface    bool // Pointer is over the model (3D sink)
}

// AnnotationState holds the annotation core and its GPU-side overlay
type AnnotationState struct {
	session      *session.Session
	palette      []color.NRGBA
	paletteIndex int
	tubeScale    float64 // 3D stroke radius is width / tubeScale
	overlay      rl.Texture2D
	overlaySize  [2]int32
	pixels       []color.RGBA
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string               // STL file path
	fileWatcher      *watcher.FileWatcher // File watcher for auto-reload
	mu               sync.Mutex           // Guards the fields written by the watcher and loader goroutines
	needsReload      bool                 // Flag to indicate model needs reloading
	isLoading        bool                 // Flag to indicate a reload is in progress
	loadingStartTime time.Time            // When loading started
	loadedModel      *stl.Model           // Model loaded in background
}

// UIState holds UI-related state
type UIState struct {
	showHelp bool
	status   string
	statusAt time.Time
}
