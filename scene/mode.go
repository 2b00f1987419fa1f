package scene

import (
	"fmt"
	"math"
	"slices"

	"github.com/pthm-cable/numerals/config"
)

// Action is a discrete user intent, independent of the input device.
type Action uint8

const (
	ActionNone Action = iota
	ActionRandomize
	ActionCycleMode
	ActionTogglePause
)

func (a Action) String() string {
	switch a {
	case ActionRandomize:
		return "randomize"
	case ActionCycleMode:
		return "cycle_mode"
	case ActionTogglePause:
		return "toggle_pause"
	default:
		return "none"
	}
}

// NextMode returns the mode after current in modes, wrapping around.
// An unknown current yields the first mode.
func NextMode(modes []string, current string) string {
	if len(modes) == 0 {
		return current
	}
	i := slices.Index(modes, current)
	return modes[(i+1)%len(modes)]
}

// ModeLabel is the short HUD caption for a mode.
func ModeLabel(mode string) string {
	switch mode {
	case config.ModeZen:
		return "ZEN (breathe dissolve)"
	case config.ModeSnow:
		return "SNOW (silent snowfall)"
	case config.ModeWater:
		return "WATER (ripple dissolve)"
	default:
		return mode
	}
}

// FormatCountdown renders remaining seconds as mm:ss, truncating partial
// seconds and clamping at 00:00.
func FormatCountdown(remaining float64) string {
	if remaining <= 0 || math.IsNaN(remaining) {
		return "00:00"
	}
	secs := int(math.Floor(remaining))
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
