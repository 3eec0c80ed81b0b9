package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Model.center
}

// setCameraTopView sets the camera to look straight down
func (app *App) setCameraTopView() {
	app.setCameraAngles(math.Pi/2-0.01, 0)
}

// setCameraBottomView sets the camera to look straight up
func (app *App) setCameraBottomView() {
	app.setCameraAngles(-math.Pi/2+0.01, 0)
}

// setCameraFrontView sets the camera to look from the front
func (app *App) setCameraFrontView() {
	app.setCameraAngles(0, 0)
}

// setCameraBackView sets the camera to look from the back
func (app *App) setCameraBackView() {
	app.setCameraAngles(0, math.Pi)
}

// setCameraLeftView sets the camera to look from the left
func (app *App) setCameraLeftView() {
	app.setCameraAngles(0, -math.Pi/2)
}

// setCameraRightView sets the camera to look from the right
func (app *App) setCameraRightView() {
	app.setCameraAngles(0, math.Pi/2)
}

func (app *App) setCameraAngles(x, y float32) {
	app.Camera.angleX = x
	app.Camera.angleY = y
	app.Camera.target = app.Model.center
}

// orbit rotates the camera around its target by a mouse delta
func (app *App) orbit(delta rl.Vector2) {
	app.Camera.angleY += delta.X * 0.01
	app.Camera.angleX -= delta.Y * 0.01

	// Clamp vertical rotation
	if app.Camera.angleX > 1.5 {
		app.Camera.angleX = 1.5
	}
	if app.Camera.angleX < -1.5 {
		app.Camera.angleX = -1.5
	}
}

// zoom moves the camera toward or away from its target
func (app *App) zoom(wheel float32) {
	app.Camera.distance *= 1.0 - wheel*0.03
	minDist := app.Model.size * 0.05
	if minDist <= 0 {
		minDist = 0.1
	}
	if app.Camera.distance < minDist {
		app.Camera.distance = minDist
	}
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	// Calculate camera right and up vectors for panning
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}
