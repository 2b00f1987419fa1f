package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/numerals/systems"
)

// GhostRenderer draws the rasterized text as a faint full-screen overlay.
// The texture is re-uploaded whenever the scene hands over a new raster.
type GhostRenderer struct {
	source *systems.Raster
	tex    rl.Texture2D
	loaded bool
}

// NewGhostRenderer creates a ghost renderer with no texture.
func NewGhostRenderer() *GhostRenderer {
	return &GhostRenderer{}
}

// Sync uploads r if it differs from the current source. Must be called
// after the raylib window is created.
func (g *GhostRenderer) Sync(r *systems.Raster) {
	if r == g.source {
		return
	}
	g.Unload()
	g.source = r
	if r == nil || r.Image == nil {
		return
	}

	img := rl.NewImageFromImage(r.Image)
	g.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	g.loaded = true
}

// Draw renders the overlay tinted with c at alpha in [0, 255].
func (g *GhostRenderer) Draw(c colorful.Color, alpha float64) {
	if !g.loaded || alpha8(alpha) == 0 {
		return
	}
	rl.DrawTexture(g.tex, 0, 0, toRL(c, alpha))
}

// Unload frees the texture.
func (g *GhostRenderer) Unload() {
	if g.loaded {
		rl.UnloadTexture(g.tex)
		g.loaded = false
	}
	g.source = nil
}
