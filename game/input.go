package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
		return
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.opts.StepsPerUpdate > 1 {
		g.opts.StepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.opts.StepsPerUpdate < 10 {
		g.opts.StepsPerUpdate++
	}

	g.handleCameraInput()
	g.handleRootInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = w, h
	if g.camera != nil {
		g.camera.Resize(w, h)
	}
}

// handleCameraInput scrolls the camera between the deepest soil and the
// canopy top, and zooms with the mouse wheel.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}
	step := float32(g.cfg.Screen.ScrollStep)
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyZ) {
		g.camera.Scroll(step)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		g.camera.Scroll(-step)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleRootInput previews the root extension under the mouse and commits it
// on click.
func (g *Game) handleRootInput() {
	if g.camera == nil || g.paused || g.outcome.Terminal() {
		g.hoverValid = false
		return
	}
	mouse := rl.GetMousePosition()
	if g.hud != nil && g.hud.Contains(mouse.X, mouse.Y) {
		g.hoverValid = false
		return
	}
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	target := r2.Vec{X: float64(wx), Y: float64(wy)}

	g.hover, g.hoverRej = g.extender.Find(target)
	g.hoverValid = true

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.ExtendRoot(target)
	}
}
