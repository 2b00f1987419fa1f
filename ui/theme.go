// Package ui draws the overlay text, the mode button and the stats panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds colors and sizes for UI elements.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color

	Padding    int32
	LineHeight int32
	LabelWidth int32
	FontSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,

		Padding:    10,
		LineHeight: 16,
		LabelWidth: 90,
		FontSize:   12,
	}
}
