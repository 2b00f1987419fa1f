// Motion tuning tool - runs the scene with a slider panel for the main
// motion constants and saves the result as a config file.
//
// Usage: go run ./cmd/tuner [-config base.yaml] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/game"
	"github.com/pthm-cable/numerals/scene"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	panelWidth   = 320
)

// slider binds a config value to a raygui slider.
type slider struct {
	label    string
	min, max float32
	format   string
	value    *float64
}

func sliders(cfg *config.Config) []slider {
	return []slider{
		{"Breath (s)", 1, 20, "%.1f", &cfg.Scene.BreathSeconds},
		{"Exhale spread", 0, 80, "%.0f", &cfg.Zen.ExhaleSpread},
		{"Drift strength", 0, 3, "%.2f", &cfg.Zen.DriftStrength},
		{"Tide (s)", 2, 20, "%.1f", &cfg.Water.TideSeconds},
		{"Wave amplitude", 0, 40, "%.0f", &cfg.Water.WaveAmp},
		{"Chop strength", 0, 20, "%.1f", &cfg.Water.ChopStrength},
		{"Wind strength", 0, 4, "%.2f", &cfg.Snow.WindStrength},
		{"Fall max", 0.5, 4, "%.2f", &cfg.Snow.FallMax},
		{"Melt rate", 0.002, 0.05, "%.3f", &cfg.Snow.MeltRate},
	}
}

type tuner struct {
	game    *game.Game
	cfg     *config.Config
	sliders []slider
	outPath string
	visible bool
	dirty   bool
	status  string
}

func main() {
	configPath := flag.String("config", "", "Base config.yaml (empty = use defaults)")
	outPath := flag.String("out", "tuned.yaml", "Where Save writes the tuned config")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "Numerals Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, scene.Options{Seed: rngSeed})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	t := &tuner{game: g, cfg: cfg, sliders: sliders(cfg), outPath: *outPath, visible: true}
	g.SetOverlay(t.draw)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyTab) {
			t.visible = !t.visible
		}
		// Restart once the slider is released rather than on every drag step
		if t.dirty && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			t.restart()
		}
		g.Update()
		g.Draw()
	}
}

func (t *tuner) restart() {
	t.dirty = false
	if err := t.game.Restart(); err != nil {
		slog.Error("restart failed", "error", err)
		t.status = "restart failed"
	}
}

func (t *tuner) draw() {
	if !t.visible {
		return
	}

	panelX := float32(rl.GetScreenWidth() - panelWidth - 10)
	panelY := float32(60)
	height := int32(len(t.sliders))*42 + 120
	rl.DrawRectangle(int32(panelX)-10, int32(panelY)-10, panelWidth+10, height, rl.Color{R: 20, G: 25, B: 30, A: 220})

	rl.DrawText("Motion Parameters (Tab)", int32(panelX), int32(panelY), 16, rl.LightGray)
	panelY += 26

	for _, s := range t.sliders {
		rl.DrawText(s.label, int32(panelX), int32(panelY), 12, rl.Gray)
		panelY += 14
		cur := float32(*s.value)
		next := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 18},
			"", "",
			cur, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX)+panelWidth-70, int32(panelY)+2, 14, rl.LightGray)
		if next != cur {
			*s.value = float64(next)
			t.dirty = true
		}
		panelY += 28
	}

	panelY += 6
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, "Save") {
		t.save()
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 28}, "Reset All") {
		t.reset()
	}
	panelY += 36

	if t.status != "" {
		rl.DrawText(t.status, int32(panelX), int32(panelY), 12, rl.Gray)
	}
}

func (t *tuner) save() {
	if err := t.cfg.WriteYAML(t.outPath); err != nil {
		slog.Error("save failed", "path", t.outPath, "error", err)
		t.status = "save failed"
		return
	}
	slog.Info("config saved", "path", t.outPath)
	t.status = "saved " + t.outPath
}

func (t *tuner) reset() {
	defaults, err := config.Load("")
	if err != nil {
		slog.Error("loading defaults", "error", err)
		return
	}
	for i, s := range sliders(defaults) {
		*t.sliders[i].value = *s.value
	}
	t.dirty = true
	t.status = "defaults restored"
}
