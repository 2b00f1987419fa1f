package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/systems"
)

// flakeFontSize is the size glyphs are baked at; flakes scale down from it.
const flakeFontSize = 48

// FlakeRenderer draws falling glyph flakes and the ground they melt into.
type FlakeRenderer struct {
	cfg         config.SnowConfig
	font        rl.Font
	text        string
	initialized bool
}

// NewFlakeRenderer creates a new flake renderer.
func NewFlakeRenderer(cfg config.SnowConfig) *FlakeRenderer {
	return &FlakeRenderer{cfg: cfg}
}

// Init loads the glyph font (must be called after raylib window is created).
func (r *FlakeRenderer) Init() {
	if r.initialized {
		return
	}
	r.load()
}

// load bakes exactly the glyphs flakes can spawn for the current text.
func (r *FlakeRenderer) load() {
	r.font = rl.LoadFontFromMemory(".ttf", gomono.TTF, flakeFontSize, systems.FlakeGlyphs(r.text))
	rl.SetTextureFilter(r.font.Texture, rl.FilterBilinear)
	r.initialized = true
}

// Sync reloads the font when the flakes were rebuilt from different text.
func (r *FlakeRenderer) Sync(text string) {
	if r.initialized && text == r.text {
		return
	}
	r.Unload()
	r.text = text
	r.load()
}

// Draw renders every flake centered on its position.
func (r *FlakeRenderer) Draw(pool *systems.FlakePool, c colorful.Color) {
	r.Sync(pool.Text())

	pool.Each(func(body *components.FlakeBody, flake *components.Flake) {
		size := max(body.Size, 0.01)
		text := string(flake.Char)
		dim := rl.MeasureTextEx(r.font, text, size, 0)
		pos := rl.Vector2{X: body.Pos.X - dim.X/2, Y: body.Pos.Y - dim.Y/2}
		rl.DrawTextEx(r.font, text, pos, size, 0, toRL(c, float64(systems.FlakeAlpha(r.cfg, body, flake))))
	})
}

// DrawGround renders the ground as horizontal bands fading downward.
func (r *FlakeRenderer) DrawGround(ground float32, width int32, c colorful.Color) {
	n := r.cfg.GroundBands
	for i := 0; i < n; i++ {
		a := r.cfg.GroundAlpha
		if n > 1 {
			a *= 1 - float64(i)/float64(n-1)
		}
		y := int32(ground) + int32(i)
		rl.DrawLine(0, y, width, y, toRL(c, a))
	}
}

// Unload frees the font.
func (r *FlakeRenderer) Unload() {
	if r.initialized {
		rl.UnloadFont(r.font)
		r.initialized = false
	}
}
