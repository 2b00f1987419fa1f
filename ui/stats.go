package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatsData holds data for the stats panel.
type StatsData struct {
	FPS           int32
	Tick          int32
	Text          string
	Modes         []string
	Particles     int
	FlakesAir     int
	FlakesMelting int
	Rebuilds      int
	AvgTickUS     float64
}

// StatsPanel renders live scene statistics.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewStatsPanel creates a new hidden stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle shows or hides the panel.
func (p *StatsPanel) Toggle() { p.visible = !p.visible }

// Visible reports whether the panel is shown.
func (p *StatsPanel) Visible() bool { return p.visible }

// Draw renders the stats panel if visible.
func (p *StatsPanel) Draw(data StatsData) {
	if !p.visible {
		return
	}
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*9 + padding*2 + 2
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	y := p.y + padding
	rl.DrawText("Stats", p.x+padding, y, 14, r.Theme.SectionHeader)
	y += lineHeight + 2

	x := p.x + padding
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Text", data.Text)
	y = r.DrawLabelValue(x, y, "Modes", strings.Join(data.Modes, " / "))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Flakes", fmt.Sprintf("%d air, %d melting", data.FlakesAir, data.FlakesMelting))
	y = r.DrawLabelValue(x, y, "Rebuilds", fmt.Sprintf("%d", data.Rebuilds))
	r.DrawLabelValue(x, y, "Tick time", fmt.Sprintf("%.0f us", data.AvgTickUS))
}
