package systems

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
)

func newTestPool(seed int64) *FlakePool {
	cfg := config.Cfg()
	return NewFlakePool(cfg.Snow, cfg.Raster.MarginFrac, NewNoiseField(seed), rand.New(rand.NewSource(seed)))
}

func TestFlakeCountEndpoints(t *testing.T) {
	cfg := config.Cfg().Snow

	tests := []struct {
		name string
		w, h int
		want int
	}{
		{"reference minimum", 320, 568, cfg.CountMin},
		{"reference maximum", 1920, 1080, cfg.CountMax},
		{"below range", 100, 100, cfg.CountMin},
		{"zero area", 0, 0, cfg.CountMin},
		{"above range", 4000, 3000, cfg.CountMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlakeCount(tt.w, tt.h, cfg); got != tt.want {
				t.Errorf("FlakeCount(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestFlakeCountMonotone(t *testing.T) {
	cfg := config.Cfg().Snow
	prev := 0
	for side := 0; side <= 2500; side += 10 {
		n := FlakeCount(side, side, cfg)
		if n < prev {
			t.Fatalf("count decreased from %d to %d at side %d", prev, n, side)
		}
		if n < cfg.CountMin || n > cfg.CountMax {
			t.Fatalf("count %d outside [%d, %d]", n, cfg.CountMin, cfg.CountMax)
		}
		prev = n
	}
}

func TestFlakePoolRebuild(t *testing.T) {
	cfg := config.Cfg().Snow
	pool := newTestPool(1)

	pool.Rebuild(800, 600, "42")
	if got, want := pool.Len(), FlakeCount(800, 600, cfg); got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}

	pool.Each(func(b *components.FlakeBody, f *components.Flake) {
		if f.State != components.FlakeAir {
			t.Fatalf("new flake in state %v", f.State)
		}
		if b.Pos.Y >= 0 || b.Pos.Y < -600 {
			t.Fatalf("new flake y = %v, want in [-600, 0)", b.Pos.Y)
		}
		if b.Pos.X < 0 || b.Pos.X >= 800 {
			t.Fatalf("new flake x = %v, want in [0, 800)", b.Pos.X)
		}
		if !strings.ContainsRune("42", f.Char) {
			t.Fatalf("glyph %q not from text", f.Char)
		}
		if b.Life != 1 || b.Size != b.BaseSize {
			t.Fatalf("new flake life=%v size=%v base=%v", b.Life, b.Size, b.BaseSize)
		}
	})

	// Rebuilding at a larger size replaces the whole population
	pool.Rebuild(1920, 1080, "42")
	if got := pool.Len(); got != cfg.CountMax {
		t.Fatalf("Len after resize = %d, want %d", got, cfg.CountMax)
	}
	air, melting := pool.Counts()
	if air != cfg.CountMax || melting != 0 {
		t.Errorf("counts after rebuild = (%d, %d)", air, melting)
	}
}

func TestFlakePoolEmptyTextUsesZero(t *testing.T) {
	pool := newTestPool(2)
	pool.Rebuild(320, 240, "")
	pool.Each(func(_ *components.FlakeBody, f *components.Flake) {
		if f.Char != '0' {
			t.Fatalf("glyph = %q, want '0'", f.Char)
		}
	})
}

func TestFlakeLandsAndReincarnates(t *testing.T) {
	pool := newTestPool(3)
	pool.Rebuild(800, 600, "42")

	pool.Each(func(b *components.FlakeBody, f *components.Flake) {
		b.Pos.Y = -100
		b.FallSpeed = 1
		f.Ground = 500
	})

	for i := 1; i < 600; i++ {
		pool.Tick(float64(i) / 60)
	}
	air, _ := pool.Counts()
	if air != pool.Len() {
		t.Fatalf("%d flakes landed before tick 600", pool.Len()-air)
	}

	pool.Tick(600.0 / 60)
	_, melting := pool.Counts()
	if melting != pool.Len() {
		t.Fatalf("%d of %d flakes melting after 600 ticks", melting, pool.Len())
	}
	landings, _ := pool.TickStats()
	if landings != pool.Len() {
		t.Errorf("landings = %d, want %d", landings, pool.Len())
	}
	pool.Each(func(b *components.FlakeBody, _ *components.Flake) {
		if b.Pos.Y != 500 {
			t.Fatalf("landed flake y = %v, want 500", b.Pos.Y)
		}
	})

	// Life decays by MeltRate per tick, so 70 ticks is enough to recycle
	for i := 601; i <= 670; i++ {
		pool.Tick(float64(i) / 60)
	}
	_, respawns := pool.TickStats()
	if respawns != pool.Len() {
		t.Errorf("respawns = %d, want %d", respawns, pool.Len())
	}
	pool.Each(func(b *components.FlakeBody, f *components.Flake) {
		if f.State != components.FlakeAir {
			t.Fatalf("flake still %v after melting", f.State)
		}
		if f.Incarnation != 1 {
			t.Fatalf("incarnation = %d, want 1", f.Incarnation)
		}
		if b.Pos.Y >= 0 {
			t.Fatalf("reincarnated flake y = %v, want above the viewport", b.Pos.Y)
		}
		if b.Life != 1 {
			t.Fatalf("reincarnated life = %v", b.Life)
		}
	})
}

func TestFlakeMeltingLiveness(t *testing.T) {
	pool := newTestPool(4)
	pool.Rebuild(320, 240, "131")

	for i := 1; i <= 2200; i++ {
		pool.Tick(float64(i) / 60)
	}

	pool.Each(func(_ *components.FlakeBody, f *components.Flake) {
		if f.Incarnation == 0 {
			t.Fatal("flake never recycled")
		}
	})
}

func TestFlakeWrapsHorizontally(t *testing.T) {
	cfg := config.Cfg().Snow
	pool := newTestPool(5)
	pool.Rebuild(400, 300, "1")

	margin := float32(cfg.WrapMargin)
	for i := 1; i <= 600; i++ {
		pool.Tick(float64(i) / 60)
		pool.Each(func(b *components.FlakeBody, _ *components.Flake) {
			// One tick of wind and wobble can overshoot the margin slightly
			if b.Pos.X < -margin-2 || b.Pos.X > 400+margin+2 {
				t.Fatalf("flake x = %v escaped the wrap band", b.Pos.X)
			}
		})
	}
}

func TestFlakeAlpha(t *testing.T) {
	cfg := config.Cfg().Snow
	body := &components.FlakeBody{Life: 1}
	flake := &components.Flake{State: components.FlakeAir}

	if got := FlakeAlpha(cfg, body, flake); got != float32(cfg.AirAlpha) {
		t.Errorf("air alpha = %v, want %v", got, cfg.AirAlpha)
	}

	flake.State = components.FlakeMelting
	if got := FlakeAlpha(cfg, body, flake); got != float32(cfg.MeltAlpha) {
		t.Errorf("fresh melt alpha = %v, want %v", got, cfg.MeltAlpha)
	}

	body.Life = 0.1
	if got := FlakeAlpha(cfg, body, flake); got != 0 {
		t.Errorf("late melt alpha = %v, want 0", got)
	}
}

func TestFlakeGlyphs(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", "0"},
		{"2025", "205"},
		{"7", "7"},
		{"新年2026", "新年206"},
	}
	for _, tt := range tests {
		if got := string(FlakeGlyphs(tt.text)); got != tt.want {
			t.Errorf("FlakeGlyphs(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFlakePoolGlyphsCoveredByFont(t *testing.T) {
	p := newTestPool(3)
	p.Rebuild(800, 600, "新年2026")
	if p.Text() != "新年2026" {
		t.Fatalf("Text() = %q", p.Text())
	}

	font := make(map[rune]bool)
	for _, r := range FlakeGlyphs(p.Text()) {
		font[r] = true
	}
	p.Each(func(_ *components.FlakeBody, flake *components.Flake) {
		if !font[flake.Char] {
			t.Errorf("flake glyph %q missing from font codepoints", flake.Char)
		}
	})
}
