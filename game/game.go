// Package game is the raylib frontend: it feeds input and frame time into a
// scene.Scene and draws it.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/renderer"
	"github.com/pthm-cable/numerals/scene"
	"github.com/pthm-cable/numerals/ui"
)

// maxFrameDT caps the time fed to the scene for a single frame, so a
// stalled window (drag, suspend) does not jump the animation.
const maxFrameDT = 0.25

// Game holds the scene and everything needed to draw it.
type Game struct {
	cfg   *config.Config
	opts  scene.Options
	scene *scene.Scene

	palette renderer.Palette
	ghost   *renderer.GhostRenderer
	glyphs  *renderer.GlyphRenderer
	flakes  *renderer.FlakeRenderer
	shimmer *renderer.ShimmerRenderer

	hud    *ui.HUD
	button *ui.ModeButton
	stats  *ui.StatsPanel

	screenWidth  int32
	screenHeight int32

	// Set by the button during Draw, applied on the next Update
	pending scene.Action

	// Drawn after the HUD, inside the frame
	overlay func()
}

// NewGame creates a game sized to the current window. Must be called after
// rl.InitWindow.
func NewGame(cfg *config.Config, opts scene.Options) (*Game, error) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	opts.Width, opts.Height = int(w), int(h)

	s, err := scene.New(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	g := &Game{
		cfg:          cfg,
		opts:         opts,
		scene:        s,
		palette:      renderer.DefaultPalette(),
		ghost:        renderer.NewGhostRenderer(),
		glyphs:       renderer.NewGlyphRenderer(),
		flakes:       renderer.NewFlakeRenderer(cfg.Snow),
		shimmer:      renderer.NewShimmerRenderer(cfg.Water),
		hud:          ui.NewHUD(cfg.HUD.Fade, cfg.HUD.FontSize),
		button:       ui.NewModeButton(cfg.Scene.Variant),
		stats:        ui.NewStatsPanel(12, 60, 240),
		screenWidth:  w,
		screenHeight: h,
	}
	g.flakes.Init()
	return g, nil
}

// Update processes input and advances the scene by the last frame time.
func (g *Game) Update() {
	g.handleInput()

	if g.pending != scene.ActionNone {
		g.scene.HandleAction(g.pending)
		g.pending = scene.ActionNone
	}

	g.scene.Update(min(float64(rl.GetFrameTime()), maxFrameDT))
	g.scene.Perf().RecordFrame()
}

// Restart replaces the scene with a fresh one built from the current
// config, carrying over the text and mode. Used after tuning changes.
func (g *Game) Restart() error {
	sc := g.scene.Config()
	g.cfg.Scene.Text = sc.Text
	g.cfg.Scene.Mode = sc.Mode

	g.opts.Width, g.opts.Height = int(g.screenWidth), int(g.screenHeight)
	s, err := scene.New(g.cfg, g.opts)
	if err != nil {
		return fmt.Errorf("restarting scene: %w", err)
	}
	if err := g.scene.Close(); err != nil {
		slog.Error("closing previous scene", "error", err)
	}
	g.scene = s
	g.flakes.Unload()
	g.flakes = renderer.NewFlakeRenderer(g.cfg.Snow)
	g.flakes.Init()
	g.shimmer = renderer.NewShimmerRenderer(g.cfg.Water)
	slog.Info("scene restarted", "text", s.Text(), "mode", s.Mode())
	return nil
}

// SetOverlay registers a function drawn on top of the HUD every frame.
func (g *Game) SetOverlay(fn func()) { g.overlay = fn }

// Scene returns the driven scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Tick returns the number of scene ticks run so far.
func (g *Game) Tick() int32 { return g.scene.Tick() }

// Unload releases GPU resources and closes telemetry output.
func (g *Game) Unload() error {
	g.ghost.Unload()
	g.flakes.Unload()
	return g.scene.Close()
}
