package systems

import "github.com/ojrac/opensimplex-go"

// Sampler provides coherent noise in [0, 1] at a point in space and time.
type Sampler interface {
	Sample(x, y, t float64) float64
}

// NoiseField samples smooth 3D simplex noise normalized to [0, 1].
// Output is deterministic for a given seed.
type NoiseField struct {
	noise opensimplex.Noise
}

// NewNoiseField creates a noise field from a seed.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{noise: opensimplex.NewNormalized(seed)}
}

// Sample returns the noise value at (x, y, t).
func (n *NoiseField) Sample(x, y, t float64) float64 {
	return clamp01(n.noise.Eval3(x, y, t))
}

// Channel returns a view of the field shifted by (dx, dy). Two channels with
// offsets far apart are visibly uncorrelated, which lets one field drive
// several independent quantities.
func (n *NoiseField) Channel(dx, dy float64) Sampler {
	return noiseChannel{field: n, dx: dx, dy: dy}
}

type noiseChannel struct {
	field  *NoiseField
	dx, dy float64
}

func (c noiseChannel) Sample(x, y, t float64) float64 {
	return c.field.Sample(x+c.dx, y+c.dy, t)
}
