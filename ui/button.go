package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/config"
)

// ModeButtonRect returns the on-screen mode toggle bounds for variant.
func ModeButtonRect(variant string) rl.Rectangle {
	if variant == config.VariantSnowfall {
		return rl.Rectangle{X: 12, Y: 12, Width: 170, Height: 32}
	}
	return rl.Rectangle{X: 12, Y: 12, Width: 200, Height: 36}
}

// ModeButtonLabel is the caption shown on the mode toggle.
func ModeButtonLabel(mode string) string {
	return "Mode: " + mode + "  (tap/click)"
}

// ModeButton draws the mode toggle and reports whether it was clicked.
type ModeButton struct {
	rect rl.Rectangle
}

// NewModeButton creates the toggle for variant.
func NewModeButton(variant string) *ModeButton {
	return &ModeButton{rect: ModeButtonRect(variant)}
}

// Draw renders the button and returns true on click.
func (b *ModeButton) Draw(mode string) bool {
	return gui.Button(b.rect, ModeButtonLabel(mode))
}
