package systems

import (
	"math"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
)

// MotionModel moves particles toward a time-dependent target.
// Frame is called once per tick before Step is called for each particle.
type MotionModel interface {
	Frame(t float64)
	Step(p *Particle, t float64)
}

// Triangle is a tent wave over period: 0 at the start of each cycle,
// 1 at the midpoint, back to 0 at the end.
func Triangle(t, period float64) float64 {
	if period <= 0 {
		return 0
	}
	ph := mod(t, period) / period
	if ph < 0.5 {
		return ph * 2
	}
	return 2 - ph*2
}

// ZenModel disperses particles on the exhale and gathers them on the inhale.
type ZenModel struct {
	cfg    config.ZenConfig
	period float64
	dir    Sampler // Perturbs each particle's outward direction
	flowA  Sampler // Flow angle
	flowM  Sampler // Flow magnitude, decorrelated from flowA

	// Per-frame state
	tri    float64
	exhale float64
	easing float64
}

// NewZenModel creates a breathing model with a full cycle of 2*breathSeconds.
func NewZenModel(cfg config.ZenConfig, breathSeconds float64, noise *NoiseField) *ZenModel {
	s := cfg.FlowNoiseScale
	return &ZenModel{
		cfg:    cfg,
		period: breathSeconds * 2,
		dir:    noise,
		flowA:  noise,
		flowM:  noise.Channel(cfg.FlowOffsetX*s, cfg.FlowOffsetY*s),
	}
}

// Frame computes the breath phase for t.
func (z *ZenModel) Frame(t float64) {
	z.tri = Triangle(t, z.period)
	z.exhale = 1 - z.tri
	z.easing = lerp(1-z.cfg.InhaleTightness, z.cfg.ExhaleEasing, z.exhale)
}

// Step eases p toward its home plus the exhale drift.
func (z *ZenModel) Step(p *Particle, t float64) {
	hx, hy := float64(p.Home.X), float64(p.Home.Y)

	n := z.dir.Sample(hx*z.cfg.DriftNoiseScale, hy*z.cfg.DriftNoiseScale, t*z.cfg.DriftNoiseTime)
	ang := float64(p.Theta) + n*twoPi
	spread := z.cfg.ExhaleSpread * (z.cfg.BaseSpread + z.cfg.ExhaleJitter*float64(p.Rand))
	dx := math.Cos(ang) * spread * z.exhale
	dy := math.Sin(ang) * spread * z.exhale

	fx, fy := z.flow(hx, hy, t)
	dx += fx * z.cfg.DriftStrength * z.exhale
	dy += fy * z.cfg.DriftStrength * z.exhale

	p.Pos.X = lerp32(p.Pos.X, p.Home.X+float32(dx), z.easing)
	p.Pos.Y = lerp32(p.Pos.Y, p.Home.Y+float32(dy), z.easing)
}

// flow returns the global drift vector at a home position.
func (z *ZenModel) flow(x, y, t float64) (float64, float64) {
	s := z.cfg.FlowNoiseScale
	tt := t * z.cfg.FlowNoiseTime
	ang := mapRange(z.flowA.Sample(x*s, y*s, tt), 0, 1, -math.Pi, math.Pi)
	mag := mapRange(z.flowM.Sample(x*s, y*s, tt), 0, 1, z.cfg.FlowMagnitudeMin, z.cfg.FlowMagnitudeMax)
	return math.Cos(ang) * mag, math.Sin(ang) * mag
}

// Tri returns the current breath value, 1 when fully gathered.
func (z *ZenModel) Tri() float64 { return z.tri }

// Exhale returns 1 - Tri.
func (z *ZenModel) Exhale() float64 { return z.exhale }

// Alpha returns the particle alpha for the current frame.
func (z *ZenModel) Alpha() float64 {
	return z.cfg.AlphaBase + z.cfg.AlphaPulse*z.tri
}

// SnowModel leaves particles where they are; only the flake pool animates.
type SnowModel struct{}

// Frame does nothing.
func (SnowModel) Frame(float64) {}

// Step does nothing.
func (SnowModel) Step(*Particle, float64) {}

// WaterModel sends a traveling wave through the glyph on a tidal cycle.
type WaterModel struct {
	cfg    config.WaterConfig
	period float64
	chop   Sampler

	// Per-frame state
	ripple float64
	easing float64
	amp    float64
	bobAmp float64
}

// NewWaterModel creates a tidal model with a full cycle of 2*cfg.TideSeconds.
func NewWaterModel(cfg config.WaterConfig, noise *NoiseField) *WaterModel {
	return &WaterModel{
		cfg:    cfg,
		period: cfg.TideSeconds * 2,
		chop:   noise,
	}
}

// Frame computes the tide for t.
func (w *WaterModel) Frame(t float64) {
	w.ripple = Triangle(t, w.period)
	w.easing = lerp(w.cfg.EasingMin, w.cfg.EasingMax, w.ripple)
	w.amp = w.cfg.WaveAmp * (w.cfg.WaveFloor + (1-w.cfg.WaveFloor)*w.ripple)
	w.bobAmp = w.cfg.Bob * (w.cfg.BobFloor + (1-w.cfg.BobFloor)*w.ripple)
}

// Step eases p toward its home shifted by wave, chop and bob.
func (w *WaterModel) Step(p *Particle, t float64) {
	hx, hy := float64(p.Home.X), float64(p.Home.Y)

	phase := hy/w.cfg.WaveLen + t*w.cfg.WaveSpeed
	waveX := math.Sin(twoPi*phase) * w.amp

	s := w.cfg.ChopNoiseScale
	n := w.chop.Sample(hx*s, hy*s, t*w.cfg.ChopNoiseTime)
	chop := (n - 0.5) * 2 * w.cfg.ChopStrength * w.ripple

	bob := math.Sin((t+float64(p.Seed))*w.cfg.BobFreq) * w.bobAmp

	p.Pos.X = lerp32(p.Pos.X, p.Home.X+float32(waveX+chop), w.easing)
	p.Pos.Y = lerp32(p.Pos.Y, p.Home.Y+float32(bob), w.easing)
}

// Ripple returns the current tide value in [0, 1].
func (w *WaterModel) Ripple() float64 { return w.ripple }

// Ellipse returns the render width and height for a particle of size.
func (w *WaterModel) Ellipse(size float32) (float32, float32) {
	r := float32(w.ripple)
	return size * (1 + float32(w.cfg.Stretch)*r), size * (1 - float32(w.cfg.Squash)*r)
}

// Alpha returns the particle alpha for the current frame.
func (w *WaterModel) Alpha() float64 {
	return w.cfg.AlphaBase - w.ripple*w.cfg.Fade
}

// ShimmerVisible reports whether the surface shimmer is drawn this frame.
func (w *WaterModel) ShimmerVisible() bool {
	return w.ripple > w.cfg.ShimmerMin
}

// ShimmerLine appends the vertices of shimmer line i (0-based) across a
// width x height viewport at time t to dst. Lines are spaced evenly down
// the viewport and each has ShimmerSegs+1 vertices.
func (w *WaterModel) ShimmerLine(dst []components.Position, i int, width, height, t float64) []components.Position {
	n := w.cfg.ShimmerLines
	segs := max(w.cfg.ShimmerSegs, 1)
	y := height * float64(i+1) / float64(n+1)
	amp := (w.cfg.ShimmerAmp + w.cfg.ShimmerPulse*w.ripple) * w.cfg.ShimmerScale

	for s := 0; s <= segs; s++ {
		x := width * float64(s) / float64(segs)
		off := math.Sin(x*w.cfg.ShimmerFreq+t*w.cfg.ShimmerSpeed+float64(i)) * amp
		dst = append(dst, components.Position{X: float32(x), Y: float32(y + off)})
	}
	return dst
}
