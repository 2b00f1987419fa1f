// Package renderer draws the scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/numerals/config"
)

// Palette holds the scene colors. Each mode has its own foreground; water
// blends from the zen white toward its own tint as the tide rises.
type Palette struct {
	Background colorful.Color
	Zen        colorful.Color
	Snow       colorful.Color
	Water      colorful.Color
}

// DefaultPalette is white glyphs on black, tinted slightly per mode.
func DefaultPalette() Palette {
	return Palette{
		Background: colorful.MustParseHex("#000000"),
		Zen:        colorful.MustParseHex("#ffffff"),
		Snow:       colorful.MustParseHex("#eef4ff"),
		Water:      colorful.MustParseHex("#d8f4ff"),
	}
}

// Foreground returns the glyph color for mode. ripple only affects water.
func (p Palette) Foreground(mode string, ripple float64) colorful.Color {
	switch mode {
	case config.ModeSnow:
		return p.Snow
	case config.ModeWater:
		return p.Zen.BlendLab(p.Water, ripple).Clamped()
	default:
		return p.Zen
	}
}

// toRL converts c to a raylib color with the given alpha in [0, 255].
func toRL(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha8(alpha)}
}

// alpha8 clamps alpha into a byte.
func alpha8(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 255:
		return 255
	default:
		return uint8(a)
	}
}

// Clear fills the screen with the background color.
func (p Palette) Clear() {
	rl.ClearBackground(toRL(p.Background, 255))
}
