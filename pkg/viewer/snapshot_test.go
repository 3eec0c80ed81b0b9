package viewer

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns a 2x2 quad in the XY plane facing +Z
func square() *stl.Model {
	m := stl.NewModel("square")
	n := geometry.NewVector3(0, 0, 1)
	a := geometry.NewVector3(-1, -1, 0)
	b := geometry.NewVector3(1, -1, 0)
	c := geometry.NewVector3(1, 1, 0)
	d := geometry.NewVector3(-1, 1, 0)
	m.AddTriangle(geometry.NewTriangle(n, a, b, c))
	m.AddTriangle(geometry.NewTriangle(n, a, c, d))
	return m
}

func frontCamera() *Camera {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, -1, -1))
	bbox.Extend(geometry.NewVector3(1, 1, 1))
	return NewCamera(bbox)
}

func TestSnapshotDrawsModel(t *testing.T) {
	bg := color.RGBA{A: 0xff}
	img := Snapshot(Scene{Model: square(), Background: bg}, frontCamera(), 64, 64)

	assert.NotEqual(t, bg, img.RGBAAt(32, 32), "center shows the model")
	assert.Equal(t, bg, img.RGBAAt(1, 1), "corner shows the background")
}

func TestSnapshotLinesInFrontOfModel(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	scene := Scene{
		Model: square(),
		Lines: []Polyline{{
			Points: []geometry.Vector3{geometry.NewVector3(-0.5, 0, 0.05), geometry.NewVector3(0.5, 0, 0.05)},
			Color:  red,
			Width:  3,
		}},
	}
	img := Snapshot(scene, frontCamera(), 64, 64)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(32, 32))

	// Behind the quad the line is hidden
	scene.Lines[0].Points = []geometry.Vector3{geometry.NewVector3(-0.5, 0, -0.5), geometry.NewVector3(0.5, 0, -0.5)}
	img = Snapshot(scene, frontCamera(), 64, 64)
	assert.NotEqual(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(32, 32))
}

func TestCompositeAndSavePNG(t *testing.T) {
	img := Snapshot(Scene{Background: color.RGBA{A: 0xff}}, frontCamera(), 8, 8)
	over := image.NewRGBA(img.Bounds())
	over.SetRGBA(2, 2, color.RGBA{G: 0xff, A: 0xff})
	Composite(img, over)
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(3, 3))

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, img))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SavePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img))
}

func TestUnprojectCenterLooksAtTarget(t *testing.T) {
	cam := frontCamera()
	origin, dir := cam.Unproject(50, 50, 100, 100)

	assert.Equal(t, cam.Position, origin)
	want := cam.Target.Sub(cam.Position).Normalize()
	assert.InDelta(t, 0, want.Distance(dir), 1e-9)
}

func TestProjectUnprojectAgree(t *testing.T) {
	cam := frontCamera()
	cam.Rotate(0.3, 0.7)
	p := geometry.NewVector3(0.4, -0.2, 0.3)

	sx, sy, _ := cam.Project(p, 200, 100)
	origin, dir := cam.Unproject(sx, sy, 200, 100)

	toPoint := p.Sub(origin).Normalize()
	assert.InDelta(t, 0, toPoint.Distance(dir), 1e-9)
}

func TestNewCameraHandlesEmptyBox(t *testing.T) {
	cam := NewCamera(geometry.NewBoundingBox())
	assert.Equal(t, 1.0, cam.Distance)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), cam.Position)

	origin, dir := cam.Unproject(50, 50, 100, 100)
	assert.Equal(t, cam.Position, origin)
	assert.InDelta(t, -1, dir.Z, 1e-9)
}
