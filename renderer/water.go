package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/systems"
)

// ShimmerRenderer draws the faint horizontal wave lines of the water mode.
type ShimmerRenderer struct {
	cfg    config.WaterConfig
	verts  []components.Position
	points []rl.Vector2
}

// NewShimmerRenderer creates a new shimmer renderer.
func NewShimmerRenderer(cfg config.WaterConfig) *ShimmerRenderer {
	return &ShimmerRenderer{cfg: cfg}
}

// Draw renders the shimmer lines for the current tide, if visible.
func (r *ShimmerRenderer) Draw(water *systems.WaterModel, width, height int32, t float64, c colorful.Color) {
	if !water.ShimmerVisible() {
		return
	}
	color := toRL(c, r.cfg.ShimmerAlpha)

	for i := 0; i < r.cfg.ShimmerLines; i++ {
		r.verts = water.ShimmerLine(r.verts[:0], i, float64(width), float64(height), t)
		r.points = r.points[:0]
		for _, v := range r.verts {
			r.points = append(r.points, rl.Vector2{X: v.X, Y: v.Y})
		}
		rl.DrawLineStrip(r.points, color)
	}
}
