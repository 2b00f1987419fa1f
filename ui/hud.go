package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numerals/scene"
)

// HUDData holds all the data needed to render the overlay text.
type HUDData struct {
	Mode          string
	Remaining     float64
	ShowCountdown bool
	Paused        bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the faint mode label, countdown and touch hint.
type HUD struct {
	fade     uint8
	fontSize int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(fade uint8, fontSize int32) *HUD {
	return &HUD{fade: fade, fontSize: fontSize}
}

// Draw renders the HUD. The mode label sits bottom-left and the countdown
// bottom-right, both baseline-aligned 12px above the bottom edge.
func (h *HUD) Draw(data HUDData) {
	color := rl.Color{R: 255, G: 255, B: 255, A: h.fade}
	baseline := data.ScreenHeight - 12 - h.fontSize

	label := scene.ModeLabel(data.Mode)
	if data.Paused {
		label += "  [paused]"
	}
	rl.DrawText(label, 14, baseline, h.fontSize, color)

	if data.ShowCountdown {
		text := scene.FormatCountdown(data.Remaining)
		w := rl.MeasureText(text, h.fontSize)
		rl.DrawText(text, data.ScreenWidth-14-w, baseline, h.fontSize, color)
	}

	if rl.GetTouchPointCount() > 0 {
		hint := "Tap the button to toggle"
		w := rl.MeasureText(hint, 12)
		rl.DrawText(hint, data.ScreenWidth-14-w, 14, 12, rl.Color{R: 255, G: 255, B: 255, A: h.fade / 2})
	}
}
