// Package config provides configuration loading and access for the sketches.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Scene     SceneConfig     `yaml:"scene"`
	Raster    RasterConfig    `yaml:"raster"`
	Particle  ParticleConfig  `yaml:"particle"`
	Zen       ZenConfig       `yaml:"zen"`
	Snow      SnowConfig      `yaml:"snow"`
	Water     WaterConfig     `yaml:"water"`
	HUD       HUDConfig       `yaml:"hud"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// PhysicsConfig holds the fixed timestep used by headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// SceneConfig holds the sketch parameters. Values here are the defaults that
// command-line flags and URL-style params override.
type SceneConfig struct {
	Text          string  `yaml:"text"`
	Mode          string  `yaml:"mode"`        // zen | snow | water
	Variant       string  `yaml:"variant"`     // snowfall | tides
	RunSeconds    float64 `yaml:"run_seconds"` // 0 = unbounded
	BreathSeconds float64 `yaml:"breath_seconds"`
	MinBreath     float64 `yaml:"min_breath"` // Breath values at or below this are ignored
}

// RasterConfig holds text rasterization parameters.
type RasterConfig struct {
	SampleStep      int     `yaml:"sample_step"`      // Grid stride in pixels
	TargetScale     float64 `yaml:"target_scale"`     // Font size as fraction of min(w, h)
	MarginFrac      float64 `yaml:"margin_frac"`      // Side margin as fraction of min(w, h)
	MinFontSize     float64 `yaml:"min_font_size"`    // Hard floor after fitting
	AlphaThreshold  uint8   `yaml:"alpha_threshold"`  // Pixel alpha must exceed this
	BrightThreshold int     `yaml:"bright_threshold"` // r+g+b must exceed this
}

// ParticleConfig holds per-particle initialization ranges.
type ParticleConfig struct {
	Jitter  float64 `yaml:"jitter"` // Initial offset from home, per axis
	SizeMin float64 `yaml:"size_min"`
	SizeMax float64 `yaml:"size_max"`
	SeedMax float64 `yaml:"seed_max"`
}

// ZenConfig holds the breathing dissolve tuning.
type ZenConfig struct {
	ExhaleSpread     float64 `yaml:"exhale_spread"`      // Max outward drift in pixels
	ExhaleJitter     float64 `yaml:"exhale_jitter"`      // Weight of per-particle randomness in spread
	BaseSpread       float64 `yaml:"base_spread"`        // Spread floor before jitter
	InhaleTightness  float64 `yaml:"inhale_tightness"`   // Easing at rest = 1 - this
	ExhaleEasing     float64 `yaml:"exhale_easing"`      // Easing at full exhale
	DriftNoiseScale  float64 `yaml:"drift_noise_scale"`  // Spatial frequency of the direction noise
	DriftNoiseTime   float64 `yaml:"drift_noise_time"`   // Time frequency of the direction noise
	DriftStrength    float64 `yaml:"drift_strength"`     // Global flow contribution
	FlowNoiseScale   float64 `yaml:"flow_noise_scale"`   // Spatial frequency of the flow field
	FlowNoiseTime    float64 `yaml:"flow_noise_time"`    // Time frequency of the flow field
	FlowMagnitudeMin float64 `yaml:"flow_magnitude_min"` // Flow magnitude at noise 0
	FlowMagnitudeMax float64 `yaml:"flow_magnitude_max"` // Flow magnitude at noise 1
	FlowOffsetX      float64 `yaml:"flow_offset_x"`      // Decorrelation offset of the magnitude channel
	FlowOffsetY      float64 `yaml:"flow_offset_y"`
	AlphaBase        float64 `yaml:"alpha_base"`
	AlphaPulse       float64 `yaml:"alpha_pulse"`
}

// SnowConfig holds flake population and lifecycle tuning.
type SnowConfig struct {
	CountMin     int     `yaml:"count_min"`
	CountMax     int     `yaml:"count_max"`
	RefAreaMin   float64 `yaml:"ref_area_min"` // Viewport area mapped to CountMin
	RefAreaMax   float64 `yaml:"ref_area_max"` // Viewport area mapped to CountMax
	WindNoise    float64 `yaml:"wind_noise"`   // Spatial frequency of the wind field
	WindTime     float64 `yaml:"wind_time"`    // Time frequency of the wind field
	WindStrength float64 `yaml:"wind_strength"`
	WobbleAmp    float64 `yaml:"wobble_amp"`
	WobbleFreq   float64 `yaml:"wobble_freq"`
	WrapMargin   float64 `yaml:"wrap_margin"`
	FallMin      float64 `yaml:"fall_min"`
	FallMax      float64 `yaml:"fall_max"`
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	SeedMax      float64 `yaml:"seed_max"`
	MeltRate     float64 `yaml:"melt_rate"`   // Life lost per tick while melting
	MeltFade     float64 `yaml:"melt_fade"`   // Alpha falloff multiplier while melting
	GroundSoften float64 `yaml:"ground_soften"`
	GroundSink   float64 `yaml:"ground_sink"` // Melting flakes settle this far below ground
	GroundFrac   float64 `yaml:"ground_frac"` // Ground height as fraction of raster margin
	ResetLife    float64 `yaml:"reset_life"`  // Respawn when life drops to this
	ResetSize    float64 `yaml:"reset_size"`  // Respawn when size drops to this
	AirAlpha     float64 `yaml:"air_alpha"`
	MeltAlpha    float64 `yaml:"melt_alpha"`
	GhostAlpha   float64 `yaml:"ghost_alpha"`
	GroundBands  int     `yaml:"ground_bands"`
	GroundAlpha  float64 `yaml:"ground_alpha"`
}

// WaterConfig holds the ripple dissolve tuning.
type WaterConfig struct {
	TideSeconds    float64 `yaml:"tide_seconds"` // Half-cycle; full cycle = 2 * this
	WaveAmp        float64 `yaml:"wave_amp"`
	WaveLen        float64 `yaml:"wave_len"`
	WaveSpeed      float64 `yaml:"wave_speed"`
	WaveFloor      float64 `yaml:"wave_floor"` // Amplitude fraction at slack tide
	ChopNoiseScale float64 `yaml:"chop_noise_scale"`
	ChopNoiseTime  float64 `yaml:"chop_noise_time"`
	ChopStrength   float64 `yaml:"chop_strength"`
	Bob            float64 `yaml:"bob"`
	BobFreq        float64 `yaml:"bob_freq"`
	BobFloor       float64 `yaml:"bob_floor"`
	EasingMin      float64 `yaml:"easing_min"`
	EasingMax      float64 `yaml:"easing_max"`
	Stretch        float64 `yaml:"stretch"`
	Squash         float64 `yaml:"squash"`
	AlphaBase      float64 `yaml:"alpha_base"`
	Fade           float64 `yaml:"fade"`
	GhostAlpha     float64 `yaml:"ghost_alpha"`
	GhostPulse     float64 `yaml:"ghost_pulse"`
	ShimmerLines   int     `yaml:"shimmer_lines"`
	ShimmerSegs    int     `yaml:"shimmer_segs"`
	ShimmerMin     float64 `yaml:"shimmer_min"` // Ripple below this skips shimmer
	ShimmerAmp     float64 `yaml:"shimmer_amp"`
	ShimmerPulse   float64 `yaml:"shimmer_pulse"` // Extra amplitude at full tide
	ShimmerScale   float64 `yaml:"shimmer_scale"`
	ShimmerFreq    float64 `yaml:"shimmer_freq"`  // Spatial frequency along x
	ShimmerSpeed   float64 `yaml:"shimmer_speed"` // Radians per second
	ShimmerAlpha   float64 `yaml:"shimmer_alpha"`
}

// HUDConfig holds overlay settings.
type HUDConfig struct {
	Fade         uint8   `yaml:"fade"`
	FontSize     int32   `yaml:"font_size"`
	GhostSpring  float64 `yaml:"ghost_spring"` // Angular frequency of the ghost cross-fade
	GhostDamping float64 `yaml:"ghost_damping"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Modes []string // Modes supported by Scene.Variant, in cycle order
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Scene.Variant != VariantSnowfall && c.Scene.Variant != VariantTides {
		c.Scene.Variant = VariantTides
	}
	c.Derived.Modes = SupportedModes(c.Scene.Variant)

	// A mode the variant cannot show falls back to the first one
	if !c.Supports(c.Scene.Mode) {
		c.Scene.Mode = c.Derived.Modes[0]
	}
}

// Supports reports whether the configured variant can show mode.
func (c *Config) Supports(mode string) bool {
	for _, m := range c.Derived.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// SetVariant switches the sketch variant and recomputes the supported modes.
// Unknown variants fall back to tides.
func (c *Config) SetVariant(variant string) {
	c.Scene.Variant = variant
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
