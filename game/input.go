package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/scene"
)

// handleInput processes keyboard input and window changes.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.scene.HandleAction(scene.ActionRandomize)
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.scene.HandleAction(scene.ActionCycleMode)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.scene.HandleAction(scene.ActionTogglePause)
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.stats.Toggle()
	}
}

// handleResize propagates new window dimensions. Sizes are polled rather
// than relying on rl.IsWindowResized so fullscreen toggles are caught too.
func (g *Game) handleResize() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.scene.Resize(int(w), int(h))
}
