package systems

import (
	"math/rand"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
)

// Particle is one sampled glyph pixel.
type Particle struct {
	Home components.Position // Fixed anchor until the next rebuild
	Pos  components.Position // Current render position
	Size float32             // Render diameter

	// Per-particle randomization consumed by motion models; never mutated
	Theta float32 // Outward direction in [0, 2*Pi)
	Rand  float32 // Weight in [0, 1)
	Seed  float32 // Phase offset in [0, SeedMax)
}

// ParticleField owns the particles sampled from the current raster.
type ParticleField struct {
	Particles []Particle
	cfg       config.ParticleConfig
	rng       *rand.Rand
}

// NewParticleField creates an empty field drawing randomness from rng.
func NewParticleField(cfg config.ParticleConfig, rng *rand.Rand) *ParticleField {
	return &ParticleField{cfg: cfg, rng: rng}
}

// Rebuild discards every particle and creates one per home position.
func (f *ParticleField) Rebuild(homes []components.Position) {
	particles := make([]Particle, len(homes))
	j := f.cfg.Jitter
	for i, h := range homes {
		particles[i] = Particle{
			Home: h,
			Pos: components.Position{
				X: h.X + float32(randRange(f.rng, -j, j)),
				Y: h.Y + float32(randRange(f.rng, -j, j)),
			},
			Size:  float32(randRange(f.rng, f.cfg.SizeMin, f.cfg.SizeMax)),
			Theta: float32(f.rng.Float64() * twoPi),
			Rand:  float32(f.rng.Float64()),
			Seed:  float32(f.rng.Float64() * f.cfg.SeedMax),
		}
	}
	f.Particles = particles
}

// Tick advances every particle under model at time t (seconds).
// Each update reads only the particle's own state.
func (f *ParticleField) Tick(model MotionModel, t float64) {
	model.Frame(t)
	for i := range f.Particles {
		model.Step(&f.Particles[i], t)
	}
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.Particles)
}
