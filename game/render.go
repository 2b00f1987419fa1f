package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/scene"
	"github.com/pthm-cable/numerals/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.palette.Clear()

	s := g.scene
	mode := s.Mode()
	water := s.Water()
	fg := g.palette.Foreground(mode, water.Ripple())

	// The ghost cross-fades on its own spring, so it is drawn in every mode
	g.ghost.Sync(s.Raster())
	g.ghost.Draw(fg, s.GhostAlpha())

	switch mode {
	case config.ModeSnow:
		g.flakes.DrawGround(s.Flakes().Ground(), g.screenWidth, fg)
		g.flakes.Draw(s.Flakes(), fg)
	case config.ModeWater:
		g.glyphs.DrawWater(s.Particles(), water, fg)
		g.shimmer.Draw(water, g.screenWidth, g.screenHeight, s.Elapsed(), fg)
	default:
		g.glyphs.DrawDots(s.Particles(), fg, s.Zen().Alpha())
	}

	g.drawUI()
	if g.overlay != nil {
		g.overlay()
	}

	rl.EndDrawing()
}

// drawUI renders the HUD, the mode button and the stats panel.
func (g *Game) drawUI() {
	s := g.scene
	remaining, show := s.Remaining()

	g.hud.Draw(ui.HUDData{
		Mode:          s.Mode(),
		Remaining:     remaining,
		ShowCountdown: show,
		Paused:        s.Paused(),
		ScreenWidth:   g.screenWidth,
		ScreenHeight:  g.screenHeight,
	})

	if g.button.Draw(s.Mode()) {
		g.pending = scene.ActionCycleMode
	}

	if g.stats.Visible() {
		air, melting := s.Flakes().Counts()
		g.stats.Draw(ui.StatsData{
			FPS:           rl.GetFPS(),
			Tick:          s.Tick(),
			Text:          s.Text(),
			Modes:         s.Modes(),
			Particles:     len(s.Particles()),
			FlakesAir:     air,
			FlakesMelting: melting,
			Rebuilds:      s.Rebuilds(),
			AvgTickUS:     float64(s.Perf().Stats().AvgTickDuration.Microseconds()),
		})
	}
}
