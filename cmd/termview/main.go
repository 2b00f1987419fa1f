// Command termview renders the numeral scene into terminal cells.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
	"github.com/pthm-cable/numerals/scene"
	"github.com/pthm-cable/numerals/systems"
)

// Each cell stands for this many scene pixels; roughly the aspect of a
// terminal character.
const (
	cellW = 8
	cellH = 16
)

var (
	zenColor   = colorful.MustParseHex("#ffffff")
	snowColor  = colorful.MustParseHex("#eef4ff")
	waterColor = colorful.MustParseHex("#d8f4ff")
)

type viewer struct {
	screen tcell.Screen
	scene  *scene.Scene
	canvas *Canvas
	verts  []components.Position
	last   time.Time
	entry  textEntry
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logFile := flag.String("log-file", "", "Write JSON logs to this file (empty = discard)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	variant := flag.String("variant", "", "Sketch variant: snowfall | tides (empty = use config)")
	params := flag.String("params", "", `URL-style parameters, e.g. "num=2025&mode=snow"`)
	num := flag.String("num", "", "Text to display")
	dur := flag.String("dur", "", "Countdown duration in seconds")
	breath := flag.String("breath", "", "Breath cycle in seconds (> 0.5)")
	mode := flag.String("mode", "", "Initial mode: zen | snow | water")
	flag.Parse()

	// The terminal is the display, so logs go to a file or nowhere
	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variant != "" {
		cfg.SetVariant(*variant)
	}
	cfg.ApplyParams(config.ParseQuery(*params).Merge(config.Params{
		Num:    *num,
		Dur:    *dur,
		Breath: *breath,
		Mode:   *mode,
	}))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	v, err := newViewer(cfg, rngSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.close()

	v.run(time.Second / time.Duration(max(*fps, 1)))
}

func newViewer(cfg *config.Config, seed int64) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	// Dots per cell at the raster sample stride
	step := float64(max(cfg.Raster.SampleStep, 1))
	perCell := (cellW / step) * (cellH / step)

	cols, rows := screen.Size()
	canvas := NewCanvas(cols, rows, cellW, cellH, perCell)
	vw, vh := canvas.Viewport()

	s, err := scene.New(cfg, scene.Options{Seed: seed, Width: vw, Height: vh})
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	return &viewer{screen: screen, scene: s, canvas: canvas, last: time.Now()}, nil
}

func (v *viewer) close() {
	v.screen.Fini()
	if err := v.scene.Close(); err != nil {
		slog.Error("close failed", "error", err)
	}
}

func (v *viewer) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			v.scene.Update(min(now.Sub(v.last).Seconds(), 0.25))
			v.last = now
			v.draw()
		}
	}
}

// handleEvent applies input and reports whether to keep running.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if v.entry.Active() {
			v.handleEntryKey(ev)
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.scene.HandleAction(scene.ActionRandomize)
			case 'm':
				v.scene.HandleAction(scene.ActionCycleMode)
			case ' ':
				v.scene.HandleAction(scene.ActionTogglePause)
			case 't':
				v.entry.Start()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
		cols, rows := v.screen.Size()
		v.canvas.Resize(cols, rows)
		v.scene.Resize(v.canvas.Viewport())
	}
	return true
}

// handleEntryKey edits the text prompt; Enter applies it, Esc cancels.
func (v *viewer) handleEntryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		v.scene.SetText(v.entry.Commit())
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.entry.Cancel()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.entry.Backspace()
	case tcell.KeyRune:
		v.entry.Type(ev.Rune())
	}
}

func (v *viewer) draw() {
	s := v.scene
	c := v.canvas
	c.Clear()

	fg := zenColor
	switch s.Mode() {
	case config.ModeSnow:
		fg = snowColor
		cfg := s.Settings().Snow
		s.Flakes().Each(func(body *components.FlakeBody, flake *components.Flake) {
			c.SetGlyph(float64(body.Pos.X), float64(body.Pos.Y), flake.Char, float64(systems.FlakeAlpha(cfg, body, flake)))
		})
	case config.ModeWater:
		water := s.Water()
		fg = zenColor.BlendLab(waterColor, water.Ripple()).Clamped()
		for _, p := range s.Particles() {
			c.AddDot(float64(p.Pos.X), float64(p.Pos.Y), water.Alpha())
		}
		if water.ShimmerVisible() {
			w, h := c.Viewport()
			for i := 0; i < s.Settings().Water.ShimmerLines; i++ {
				v.verts = water.ShimmerLine(v.verts[:0], i, float64(w), float64(h), s.Elapsed())
				for _, p := range v.verts {
					// Shimmer only fills open water, never covers the text
					if !c.Empty(float64(p.X), float64(p.Y)) {
						continue
					}
					c.SetGlyph(float64(p.X), float64(p.Y), '~', s.Settings().Water.ShimmerAlpha)
				}
			}
		}
	default:
		alpha := s.Zen().Alpha()
		for _, p := range s.Particles() {
			c.AddDot(float64(p.Pos.X), float64(p.Pos.Y), alpha)
		}
	}

	v.screen.Clear()
	cols, rows := c.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, intensity := c.At(col, row)
			if r == ' ' {
				continue
			}
			v.screen.SetContent(col, row, r, nil, styleFor(fg, intensity))
		}
	}
	v.drawHUD(cols, rows)
	v.screen.Show()
}

// drawHUD writes the mode label bottom-left and the countdown bottom-right.
func (v *viewer) drawHUD(cols, rows int) {
	if rows == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	label := scene.ModeLabel(v.scene.Mode())
	if v.scene.Paused() {
		label += "  [paused]"
	}
	if v.entry.Active() {
		label = v.entry.String()
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	putString(v.screen, 1, rows-1, label, style)

	if remaining, ok := v.scene.Remaining(); ok {
		text := scene.FormatCountdown(remaining)
		putString(v.screen, cols-1-len(text), rows-1, text, style)
	}
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i >= 0 {
			screen.SetContent(x+i, y, r, nil, style)
		}
	}
}

// styleFor scales fg by intensity, keeping faint cells visible.
func styleFor(fg colorful.Color, intensity float64) tcell.Style {
	c := colorful.Color{}.BlendRgb(fg, 0.25+0.75*intensity)
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
