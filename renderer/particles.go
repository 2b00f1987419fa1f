package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/numerals/systems"
)

// GlyphRenderer draws the particles sampled from the text.
type GlyphRenderer struct{}

// NewGlyphRenderer creates a new glyph renderer.
func NewGlyphRenderer() *GlyphRenderer {
	return &GlyphRenderer{}
}

// DrawDots renders each particle as a circle of its own diameter.
func (r *GlyphRenderer) DrawDots(particles []systems.Particle, c colorful.Color, alpha float64) {
	color := toRL(c, alpha)
	for i := range particles {
		p := &particles[i]
		rl.DrawCircleV(rl.Vector2{X: p.Pos.X, Y: p.Pos.Y}, p.Size/2, color)
	}
}

// DrawWater renders each particle as an ellipse stretched by the tide.
func (r *GlyphRenderer) DrawWater(particles []systems.Particle, water *systems.WaterModel, c colorful.Color) {
	color := toRL(c, water.Alpha())
	for i := range particles {
		p := &particles[i]
		w, h := water.Ellipse(p.Size)
		rl.DrawEllipse(int32(p.Pos.X), int32(p.Pos.Y), w/2, h/2, color)
	}
}
