package scene

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/systems"
)

func init() {
	config.MustInit("")
}

// newTestScene builds a scene over a fresh config so tests can mutate it.
func newTestScene(t *testing.T, w, h int, mutate func(*config.Config)) *Scene {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, Options{Seed: 42, Width: w, Height: h})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSceneBuildsOnFirstStep(t *testing.T) {
	s := newTestScene(t, 800, 600, nil)

	if !s.Stale() {
		t.Fatal("new scene should be stale")
	}
	s.UpdateHeadless()

	if s.Stale() {
		t.Fatal("scene still stale after first step")
	}
	if s.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, want 1", s.Rebuilds())
	}
	if len(s.Particles()) == 0 {
		t.Error("no particles for default text")
	}
	if got, want := s.Flakes().Len(), systems.FlakeCount(800, 600, s.Settings().Snow); got != want {
		t.Errorf("flakes = %d, want %d", got, want)
	}
	if s.Raster() == nil || s.Raster().Text != "131" {
		t.Error("raster not retained")
	}

	// Steady state does not rebuild
	for i := 0; i < 30; i++ {
		s.UpdateHeadless()
	}
	if s.Rebuilds() != 1 {
		t.Errorf("rebuilds after steady steps = %d, want 1", s.Rebuilds())
	}
	if s.Tick() != 31 {
		t.Errorf("tick = %d, want 31", s.Tick())
	}
}

func TestRandomizeChangesTextAndKey(t *testing.T) {
	s := newTestScene(t, 640, 480, nil)
	s.UpdateHeadless()

	for i := 0; i < 20; i++ {
		before := s.Key()
		s.HandleAction(ActionRandomize)

		if s.Text() == before.Text {
			t.Fatalf("text unchanged: %q", s.Text())
		}
		n, err := strconv.Atoi(s.Text())
		if err != nil || n < 1 || n >= 9999 {
			t.Fatalf("randomized text %q not an integer in [1, 9999)", s.Text())
		}
		if s.Key() == before || !s.Stale() {
			t.Fatal("randomize did not invalidate the build key")
		}

		s.UpdateHeadless()
		if s.Stale() {
			t.Fatal("scene not rebuilt after randomize")
		}
	}
	if s.Rebuilds() != 21 {
		t.Errorf("rebuilds = %d, want 21", s.Rebuilds())
	}
}

func TestCycleModeVisitsEveryMode(t *testing.T) {
	tests := []struct {
		variant string
		want    []string
	}{
		{config.VariantTides, []string{config.ModeSnow, config.ModeWater, config.ModeZen}},
		{config.VariantSnowfall, []string{config.ModeSnow, config.ModeZen}},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			s := newTestScene(t, 400, 300, func(c *config.Config) { c.SetVariant(tt.variant) })
			if s.Mode() != config.ModeZen {
				t.Fatalf("initial mode = %q", s.Mode())
			}
			for i, want := range tt.want {
				s.HandleAction(ActionCycleMode)
				if s.Mode() != want {
					t.Fatalf("cycle %d: mode = %q, want %q", i, s.Mode(), want)
				}
				s.UpdateHeadless()
			}
			if s.Rebuilds() != 1 {
				t.Errorf("mode changes rebuilt the scene: %d rebuilds", s.Rebuilds())
			}
		})
	}
}

func TestSetModeRejectsUnsupported(t *testing.T) {
	s := newTestScene(t, 400, 300, func(c *config.Config) { c.SetVariant(config.VariantSnowfall) })

	if s.SetMode(config.ModeWater) {
		t.Error("snowfall accepted water")
	}
	if s.SetMode("lava") {
		t.Error("accepted unknown mode")
	}
	if s.SetMode(config.ModeZen) {
		t.Error("setting the current mode reported a change")
	}
	if !s.SetMode(config.ModeSnow) || s.Mode() != config.ModeSnow {
		t.Error("snow not accepted")
	}
}

func TestResizeForcesRebuild(t *testing.T) {
	s := newTestScene(t, 800, 600, nil)
	s.UpdateHeadless()

	s.Resize(800, 600)
	if s.Stale() {
		t.Error("same size marked stale")
	}

	s.Resize(1920, 1080)
	if !s.Stale() {
		t.Fatal("resize did not mark scene stale")
	}
	s.UpdateHeadless()
	if got := s.Flakes().Len(); got != s.Settings().Snow.CountMax {
		t.Errorf("flakes after resize = %d, want %d", got, s.Settings().Snow.CountMax)
	}
	if w, h := s.Size(); w != 1920 || h != 1080 {
		t.Errorf("size = %dx%d", w, h)
	}
	for _, p := range s.Particles() {
		if p.Home.X >= 1920 || p.Home.Y >= 1080 {
			t.Fatalf("home %+v outside resized viewport", p.Home)
		}
	}
}

func TestZeroViewportKeepsRunning(t *testing.T) {
	s := newTestScene(t, 0, 0, nil)
	for i := 0; i < 120; i++ {
		s.UpdateHeadless()
	}
	if len(s.Particles()) != 0 {
		t.Errorf("particles = %d, want 0", len(s.Particles()))
	}
	if got := s.Flakes().Len(); got != s.Settings().Snow.CountMin {
		t.Errorf("flakes = %d, want %d", got, s.Settings().Snow.CountMin)
	}

	s.Resize(-10, 300)
	if w, _ := s.Size(); w != 0 {
		t.Errorf("negative width stored as %d", w)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	s := newTestScene(t, 400, 300, nil)
	s.UpdateHeadless()

	s.HandleAction(ActionTogglePause)
	if !s.Paused() {
		t.Fatal("not paused")
	}
	tick, elapsed := s.Tick(), s.Elapsed()
	before := append([]systems.Particle(nil), s.Particles()...)
	for i := 0; i < 30; i++ {
		s.UpdateHeadless()
	}
	if s.Tick() != tick || s.Elapsed() != elapsed {
		t.Error("clock advanced while paused")
	}
	for i := range before {
		if before[i] != s.Particles()[i] {
			t.Fatal("particles moved while paused")
		}
	}

	s.HandleAction(ActionTogglePause)
	s.UpdateHeadless()
	if s.Tick() != tick+1 {
		t.Error("clock did not resume")
	}
}

func TestCountdown(t *testing.T) {
	s := newTestScene(t, 400, 300, nil)
	if _, ok := s.Remaining(); ok {
		t.Error("countdown shown without a run duration")
	}

	s = newTestScene(t, 400, 300, func(c *config.Config) {
		c.ApplyParams(config.Params{Dur: "2"})
	})
	for i := 0; i < 60; i++ {
		s.UpdateHeadless()
	}
	rem, ok := s.Remaining()
	if !ok || math.Abs(rem-1) > 1e-6 {
		t.Errorf("remaining = %v, %v; want 1, true", rem, ok)
	}

	// The animation keeps going past the end of the countdown
	for i := 0; i < 120; i++ {
		s.UpdateHeadless()
	}
	if rem, _ := s.Remaining(); rem != 0 {
		t.Errorf("remaining after expiry = %v, want 0", rem)
	}
	if s.Tick() != 180 {
		t.Errorf("tick = %d, want 180", s.Tick())
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		remaining float64
		want      string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{math.NaN(), "00:00"},
		{0.9, "00:00"},
		{59.99, "00:59"},
		{60, "01:00"},
		{600, "10:00"},
		{3599, "59:59"},
		{6000, "100:00"},
	}

	for _, tt := range tests {
		if got := FormatCountdown(tt.remaining); got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.remaining, got, tt.want)
		}
	}
}

func TestNextMode(t *testing.T) {
	modes := config.SupportedModes(config.VariantTides)
	tests := []struct {
		current, want string
	}{
		{config.ModeZen, config.ModeSnow},
		{config.ModeSnow, config.ModeWater},
		{config.ModeWater, config.ModeZen},
		{"unknown", config.ModeZen},
	}
	for _, tt := range tests {
		if got := NextMode(modes, tt.current); got != tt.want {
			t.Errorf("NextMode(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := NextMode(nil, "zen"); got != "zen" {
		t.Errorf("NextMode on empty list = %q", got)
	}
}

func TestGhostFollowsMode(t *testing.T) {
	s := newTestScene(t, 400, 300, nil)
	for i := 0; i < 60; i++ {
		s.UpdateHeadless()
	}
	if s.GhostAlpha() > 1e-6 {
		t.Errorf("zen ghost alpha = %v, want 0", s.GhostAlpha())
	}

	s.SetMode(config.ModeSnow)
	s.UpdateHeadless()
	first := s.GhostAlpha()
	if first <= 0 || first >= s.Settings().Snow.GhostAlpha {
		t.Errorf("ghost jumped to %v instead of easing", first)
	}
	for i := 0; i < 600; i++ {
		s.UpdateHeadless()
	}
	if math.Abs(s.GhostAlpha()-s.Settings().Snow.GhostAlpha) > 0.5 {
		t.Errorf("snow ghost alpha = %v, want ~%v", s.GhostAlpha(), s.Settings().Snow.GhostAlpha)
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(cfg, Options{Seed: 1, Width: 320, Height: 240, StatsWindowSec: 1, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 150; i++ {
		s.UpdateHeadless()
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "scene.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("scene.csv has %d lines, want header + 2 windows", len(lines))
	}
	if !strings.Contains(lines[1], ",zen,131,") {
		t.Errorf("first row = %q", lines[1])
	}
	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestTelemetryWindowsFollowSceneTime(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(cfg, Options{Seed: 1, Width: 320, Height: 240, StatsWindowSec: 10, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	// 20 fps for 30 s of scene time
	for i := 0; i < 600; i++ {
		s.Update(0.05)
	}
	if math.Abs(s.Elapsed()-30) > 1e-6 {
		t.Fatalf("elapsed = %v, want 30", s.Elapsed())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "scene.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("scene.csv has %d lines, want header + 3 windows:\n%s", len(lines), data)
	}

	header := strings.Split(lines[0], ",")
	col := -1
	for i, h := range header {
		if h == "sim_time" {
			col = i
		}
	}
	if col < 0 {
		t.Fatalf("no sim_time column in %q", lines[0])
	}
	for i, line := range lines[1:] {
		got, err := strconv.ParseFloat(strings.Split(line, ",")[col], 64)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		if want := float64(i+1) * 10; math.Abs(got-want) > 1e-6 {
			t.Errorf("row %d sim_time = %v, want %v", i, got, want)
		}
	}
}

func TestGhostFadeIndependentOfFrameRate(t *testing.T) {
	fixed := newTestScene(t, 400, 300, nil)
	slow := newTestScene(t, 400, 300, nil)

	fixed.SetMode(config.ModeSnow)
	slow.SetMode(config.ModeSnow)

	// Half a second of scene time either way
	for i := 0; i < 30; i++ {
		fixed.UpdateHeadless()
	}
	for i := 0; i < 10; i++ {
		slow.Update(0.05)
	}

	if fixed.GhostAlpha() <= 0 {
		t.Fatal("ghost did not start fading in")
	}
	if math.Abs(fixed.GhostAlpha()-slow.GhostAlpha()) > 1e-3 {
		t.Errorf("ghost alpha at 20 fps = %v, at 60 fps = %v", slow.GhostAlpha(), fixed.GhostAlpha())
	}
}

func TestSetText(t *testing.T) {
	s := newTestScene(t, 400, 300, nil)
	s.UpdateHeadless()

	tests := []struct {
		name    string
		text    string
		changed bool
		want    string
	}{
		{"new text", "2025", true, "2025"},
		{"trimmed", "  7 ", true, "7"},
		{"same text", "7", false, "7"},
		{"blank ignored", "   ", false, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Rebuilds()
			if got := s.SetText(tt.text); got != tt.changed {
				t.Errorf("SetText(%q) = %v, want %v", tt.text, got, tt.changed)
			}
			if s.Text() != tt.want || s.Config().Text != tt.want {
				t.Errorf("text = %q, want %q", s.Text(), tt.want)
			}
			s.UpdateHeadless()
			wantRebuilds := before
			if tt.changed {
				wantRebuilds++
			}
			if s.Rebuilds() != wantRebuilds {
				t.Errorf("rebuilds = %d, want %d", s.Rebuilds(), wantRebuilds)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "none"},
		{ActionRandomize, "randomize"},
		{ActionCycleMode, "cycle_mode"},
		{ActionTogglePause, "toggle_pause"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
