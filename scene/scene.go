// Package scene drives the numeral animation: it owns the engine state,
// rebuilds it when text or viewport change, and routes time to the active
// motion model. It has no graphics dependencies.
package scene

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/systems"
	"github.com/pthm-cable/numerals/telemetry"
)

// Config is the per-run sketch configuration.
type Config struct {
	Text          string
	Mode          string
	Variant       string
	RunSeconds    float64 // 0 = no countdown
	BreathSeconds float64
	TideSeconds   float64
}

// ConfigFrom extracts the scene settings from a loaded config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Text:          cfg.Scene.Text,
		Mode:          cfg.Scene.Mode,
		Variant:       cfg.Scene.Variant,
		RunSeconds:    cfg.Scene.RunSeconds,
		BreathSeconds: cfg.Scene.BreathSeconds,
		TideSeconds:   cfg.Water.TideSeconds,
	}
}

// BuildKey identifies the inputs that determine particle homes and the
// flake population. A change in any field forces a full rebuild.
type BuildKey struct {
	Text string
	W, H int
}

// Options configures a new Scene.
type Options struct {
	Seed           int64
	Width, Height  int
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
}

// Scene holds the complete animation state.
type Scene struct {
	cfg   *config.Config
	sc    Config
	modes []string

	rng        *rand.Rand
	noise      *systems.NoiseField
	rasterizer *systems.TextRasterizer
	raster     *systems.Raster
	field      *systems.ParticleField
	pool       *systems.FlakePool

	zen   *systems.ZenModel
	water *systems.WaterModel
	snow  systems.SnowModel

	width, height int
	built         BuildKey
	hasBuilt      bool
	rebuilds      int

	tick    int32
	elapsed float64
	paused  bool

	// Ghost overlay alpha eases toward the mode's target. The spring is
	// stepped at the fixed physics DT from an accumulator of frame time.
	ghostSpring harmonica.Spring
	ghost       float64
	ghostVel    float64
	ghostAcc    float64

	logStats      bool
	perf          *telemetry.PerfCollector
	collector     *telemetry.SceneCollector
	outputManager *telemetry.OutputManager
}

// New creates a scene from cfg. The scene is built lazily on the first step.
func New(cfg *config.Config, opts Options) (*Scene, error) {
	rasterizer, err := systems.NewTextRasterizer(cfg.Raster)
	if err != nil {
		return nil, fmt.Errorf("creating rasterizer: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	sc := ConfigFrom(cfg)
	rng := rand.New(rand.NewSource(opts.Seed))
	noise := systems.NewNoiseField(opts.Seed)

	waterCfg := cfg.Water
	waterCfg.TideSeconds = sc.TideSeconds

	s := &Scene{
		cfg:        cfg,
		sc:         sc,
		modes:      config.SupportedModes(sc.Variant),
		rng:        rng,
		noise:      noise,
		rasterizer: rasterizer,
		field:      systems.NewParticleField(cfg.Particle, rng),
		pool:       systems.NewFlakePool(cfg.Snow, cfg.Raster.MarginFrac, noise, rng),
		zen:        systems.NewZenModel(cfg.Zen, sc.BreathSeconds, noise),
		water:      systems.NewWaterModel(waterCfg, noise),
		width:      max(opts.Width, 0),
		height:     max(opts.Height, 0),

		logStats:      opts.LogStats,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewSceneCollector(statsWindow),
		outputManager: om,
	}
	s.ghostSpring = harmonica.NewSpring(cfg.Physics.DT, cfg.HUD.GhostSpring, cfg.HUD.GhostDamping)
	return s, nil
}

// Key returns the build key for the current text and viewport.
func (s *Scene) Key() BuildKey {
	return BuildKey{Text: s.sc.Text, W: s.width, H: s.height}
}

// Stale reports whether the engine state no longer matches Key.
func (s *Scene) Stale() bool {
	return !s.hasBuilt || s.built != s.Key()
}

// rebuild replaces the raster, particles and flakes for the current key.
func (s *Scene) rebuild() {
	key := s.Key()

	raster, err := s.rasterizer.Rasterize(key.Text, key.W, key.H)
	if err != nil {
		// Keep animating the previous state; the next key change retries
		slog.Error("rasterize failed", "text", key.Text, "error", err)
		s.built, s.hasBuilt = key, true
		return
	}

	s.raster = raster
	s.field.Rebuild(raster.Homes)
	s.pool.Rebuild(key.W, key.H, key.Text)
	s.built, s.hasBuilt = key, true
	s.rebuilds++
	s.collector.RecordRebuild()

	slog.Info("scene rebuilt",
		"text", key.Text,
		"width", key.W,
		"height", key.H,
		"particles", s.field.Len(),
		"flakes", s.pool.Len(),
	)
}

// Model returns the motion model for the active mode.
func (s *Scene) Model() systems.MotionModel {
	switch s.sc.Mode {
	case config.ModeSnow:
		return s.snow
	case config.ModeWater:
		return s.water
	default:
		return s.zen
	}
}

// Update advances the scene by dt seconds of wall-clock time.
func (s *Scene) Update(dt float64) {
	if s.paused {
		return
	}
	dt = max(dt, 0)
	s.elapsed += dt
	s.step(dt)
}

// UpdateHeadless advances the scene by one fixed timestep.
func (s *Scene) UpdateHeadless() {
	s.Update(s.cfg.Physics.DT)
}

// step runs a single tick at the current elapsed time. dt is the time the
// tick covers.
func (s *Scene) step(dt float64) {
	s.perf.StartTick()

	if s.Stale() {
		s.perf.StartPhase(telemetry.PhaseRebuild)
		s.rebuild()
	}

	t := s.elapsed
	model := s.Model()

	s.perf.StartPhase(telemetry.PhaseParticles)
	s.field.Tick(model, t)

	s.perf.StartPhase(telemetry.PhaseFlakes)
	s.pool.Tick(t)
	s.collector.RecordFlakeEvents(s.pool.TickStats())

	s.perf.StartPhase(telemetry.PhaseGhost)
	s.updateGhost(dt)

	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// ghostTarget is the overlay alpha the active mode wants.
func (s *Scene) ghostTarget() float64 {
	switch s.sc.Mode {
	case config.ModeSnow:
		return s.cfg.Snow.GhostAlpha
	case config.ModeWater:
		return s.cfg.Water.GhostAlpha + s.cfg.Water.GhostPulse*s.water.Ripple()
	default:
		return 0
	}
}

// maxGhostSteps bounds catch-up after a long frame.
const maxGhostSteps = 30

// updateGhost advances the ghost spring by dt seconds in fixed steps, so the
// cross-fade takes the same time at any frame rate.
func (s *Scene) updateGhost(dt float64) {
	step := s.cfg.Physics.DT
	if step <= 0 {
		return
	}
	s.ghostAcc += dt
	target := s.ghostTarget()
	for n := 0; s.ghostAcc >= step-ghostEpsilon; n++ {
		if n == maxGhostSteps {
			s.ghostAcc = 0
			break
		}
		s.ghost, s.ghostVel = s.ghostSpring.Update(s.ghost, s.ghostVel, target)
		s.ghostAcc -= step
	}
}

// ghostEpsilon absorbs float drift when frame times are multiples of DT.
const ghostEpsilon = 1e-9

// HandleAction applies a user action.
func (s *Scene) HandleAction(a Action) {
	slog.Debug("action", "action", a.String(), "tick", s.tick)
	switch a {
	case ActionRandomize:
		s.randomizeText()
	case ActionCycleMode:
		s.SetMode(NextMode(s.modes, s.sc.Mode))
	case ActionTogglePause:
		s.paused = !s.paused
		slog.Info("pause toggled", "paused", s.paused)
	}
}

// randomizeText picks a new integer in [1, 9999) different from the current
// text. The change of key forces a rebuild on the next step.
func (s *Scene) randomizeText() {
	prev := s.sc.Text
	for s.sc.Text == prev {
		s.sc.Text = strconv.Itoa(1 + s.rng.Intn(9998))
	}
	slog.Info("text randomized", "from", prev, "to", s.sc.Text)
}

// SetMode switches to mode if the variant supports it.
func (s *Scene) SetMode(mode string) bool {
	if !s.cfg.Supports(mode) || mode == s.sc.Mode {
		return false
	}
	slog.Info("mode changed", "from", s.sc.Mode, "to", mode)
	s.sc.Mode = mode
	s.collector.RecordModeChange()
	return true
}

// SetText replaces the display text and reports whether it changed. Text
// is trimmed; blank text is ignored like a blank num parameter.
func (s *Scene) SetText(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || text == s.sc.Text {
		return false
	}
	slog.Info("text set", "from", s.sc.Text, "to", text)
	s.sc.Text = text
	return true
}

// Resize sets the viewport size. Negative sizes are treated as zero.
func (s *Scene) Resize(w, h int) {
	s.width, s.height = max(w, 0), max(h, 0)
}

// Remaining returns seconds left on the countdown and whether one is shown.
func (s *Scene) Remaining() (float64, bool) {
	if s.sc.RunSeconds <= 0 {
		return 0, false
	}
	return math.Max(0, s.sc.RunSeconds-s.elapsed), true
}

// Accessors for frontends.

func (s *Scene) Config() Config { return s.sc }
func (s *Scene) Mode() string { return s.sc.Mode }
func (s *Scene) Modes() []string { return s.modes }
func (s *Scene) Text() string { return s.sc.Text }
func (s *Scene) Size() (int, int) { return s.width, s.height }
func (s *Scene) Particles() []systems.Particle { return s.field.Particles }
func (s *Scene) Flakes() *systems.FlakePool { return s.pool }
func (s *Scene) Raster() *systems.Raster { return s.raster }
func (s *Scene) Zen() *systems.ZenModel { return s.zen }
func (s *Scene) Water() *systems.WaterModel { return s.water }
func (s *Scene) GhostAlpha() float64 { return max(0, s.ghost) }
func (s *Scene) Paused() bool { return s.paused }
func (s *Scene) Tick() int32 { return s.tick }
func (s *Scene) Elapsed() float64 { return s.elapsed }
func (s *Scene) Rebuilds() int { return s.rebuilds }
func (s *Scene) Perf() *telemetry.PerfCollector { return s.perf }
func (s *Scene) Settings() *config.Config { return s.cfg }

// Close flushes and closes telemetry output.
func (s *Scene) Close() error {
	return s.outputManager.Close()
}
