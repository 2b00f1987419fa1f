package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/game"
	"github.com/pthm-cable/numerals/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	// Sketch parameters
	variant := flag.String("variant", "", "Sketch variant: snowfall | tides (empty = use config)")
	params := flag.String("params", "", `URL-style parameters, e.g. "num=2025&dur=600&breath=8&mode=snow"`)
	num := flag.String("num", "", "Text to display")
	dur := flag.String("dur", "", "Countdown duration in seconds")
	breath := flag.String("breath", "", "Breath cycle in seconds (> 0.5)")
	mode := flag.String("mode", "", "Initial mode: zen | snow | water")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *variant != "" {
		cfg.SetVariant(*variant)
	}
	// Flags win over --params
	cfg.ApplyParams(config.ParseQuery(*params).Merge(config.Params{
		Num:    *num,
		Dur:    *dur,
		Breath: *breath,
		Mode:   *mode,
	}))

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := scene.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	slog.Info("starting",
		"headless", *headless,
		"seed", rngSeed,
		"text", cfg.Scene.Text,
		"mode", cfg.Scene.Mode,
		"variant", cfg.Scene.Variant,
		"run_seconds", cfg.Scene.RunSeconds,
		"breath_seconds", cfg.Scene.BreathSeconds,
		"max_ticks", *maxTicks,
	)

	if *headless {
		// Headless mode - fixed timestep at the configured screen size, no raylib needed
		opts.Width, opts.Height = cfg.Screen.Width, cfg.Screen.Height
		s, err := scene.New(cfg, opts)
		if err != nil {
			slog.Error("failed to create scene", "error", err)
			os.Exit(1)
		}
		defer closeLogged(s.Close)

		for {
			s.UpdateHeadless()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.Tick())
				return
			}
		}
	}

	// Graphical mode
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Numerals")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		// os.Exit skips deferred calls
		rl.CloseWindow()
		os.Exit(1)
	}
	defer closeLogged(g.Unload)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}

// closeLogged runs a deferred close and logs its error.
func closeLogged(fn func() error) {
	if err := fn(); err != nil {
		slog.Error("close failed", "error", err)
	}
}
