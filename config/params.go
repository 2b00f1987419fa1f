package config

import (
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Sketch modes.
const (
	ModeZen   = "zen"
	ModeSnow  = "snow"
	ModeWater = "water"
)

// Sketch variants. Snowfall predates the water mode.
const (
	VariantSnowfall = "snowfall"
	VariantTides    = "tides"
)

// SupportedModes returns the modes a variant can show, in cycle order.
func SupportedModes(variant string) []string {
	if variant == VariantSnowfall {
		return []string{ModeZen, ModeSnow}
	}
	return []string{ModeZen, ModeSnow, ModeWater}
}

// Params holds raw sketch parameters as typed by a user. Empty means absent.
type Params struct {
	Num    string
	Dur    string
	Breath string
	Mode   string
}

// ParseQuery extracts params from a URL, a query string or a fragment, e.g.
// "?num=2025&mode=snow", "#breath=8" or "num=7". A value in the query wins
// over the same key in the fragment.
func ParseQuery(raw string) Params {
	query, fragment, _ := strings.Cut(raw, "#")
	if i := strings.IndexByte(query, '?'); i >= 0 {
		query = query[i+1:]
	} else if strings.Contains(query, "://") {
		query = ""
	}

	// ParseQuery keeps every well-formed pair even when it reports an error.
	qs, _ := url.ParseQuery(query)
	hs, _ := url.ParseQuery(strings.TrimPrefix(fragment, "?"))

	pick := func(name string) string {
		if qs.Has(name) {
			return qs.Get(name)
		}
		return hs.Get(name)
	}

	return Params{
		Num:    pick("num"),
		Dur:    pick("dur"),
		Breath: pick("breath"),
		Mode:   pick("mode"),
	}
}

// Merge returns p with every non-empty field of over applied on top.
func (p Params) Merge(over Params) Params {
	if over.Num != "" {
		p.Num = over.Num
	}
	if over.Dur != "" {
		p.Dur = over.Dur
	}
	if over.Breath != "" {
		p.Breath = over.Breath
	}
	if over.Mode != "" {
		p.Mode = over.Mode
	}
	return p
}

// ApplyParams validates p and writes accepted values into c.Scene.
// Malformed or out-of-range values are dropped and the previous value kept.
func (c *Config) ApplyParams(p Params) {
	if n := strings.TrimSpace(p.Num); n != "" {
		c.Scene.Text = n
	}

	if p.Dur != "" {
		if d, ok := leadingInt(p.Dur); ok && d > 0 {
			c.Scene.RunSeconds = float64(d)
		} else {
			slog.Debug("ignoring param", "name", "dur", "value", p.Dur)
		}
	}

	if p.Breath != "" {
		if b, ok := leadingFloat(p.Breath); ok && b > c.Scene.MinBreath {
			c.Scene.BreathSeconds = b
		} else {
			slog.Debug("ignoring param", "name", "breath", "value", p.Breath)
		}
	}

	if p.Mode != "" {
		m := strings.ToLower(strings.TrimSpace(p.Mode))
		if c.Supports(m) {
			c.Scene.Mode = m
		} else {
			slog.Debug("ignoring param", "name", "mode", "value", p.Mode, "variant", c.Scene.Variant)
		}
	}
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// leadingInt parses the integer prefix of s, so "600s" reads as 600.
func leadingInt(s string) (int, bool) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// leadingFloat parses the decimal prefix of s, so "8.5sec" reads as 8.5.
func leadingFloat(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
