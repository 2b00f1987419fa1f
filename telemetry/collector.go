// Package telemetry provides tick timing, scene window statistics and CSV output.
package telemetry

// SceneSnapshot is the scene state sampled when a window closes.
type SceneSnapshot struct {
	Mode          string
	Text          string
	Particles     int
	FlakesAir     int
	FlakesMelting int
	Displacements []float64 // Per-particle distance from home
}

// SceneCollector accumulates scene events within windows of scene time and
// produces WindowStats. Windows are measured in seconds, not ticks, so they
// stay correct when frames have varying length.
type SceneCollector struct {
	windowSec float64

	windowStartTick int32
	windowStartSec  float64

	landings    int
	respawns    int
	rebuilds    int
	modeChanges int
}

// windowEpsilon absorbs float drift from summing frame times.
const windowEpsilon = 1e-9

// NewSceneCollector creates a collector whose windows last windowSec of
// scene time. A non-positive window flushes on every call.
func NewSceneCollector(windowSec float64) *SceneCollector {
	return &SceneCollector{windowSec: max(windowSec, 0)}
}

// RecordFlakeEvents adds flake landings and respawns to the window.
func (c *SceneCollector) RecordFlakeEvents(landings, respawns int) {
	c.landings += landings
	c.respawns += respawns
}

// RecordRebuild records a full scene rebuild.
func (c *SceneCollector) RecordRebuild() {
	c.rebuilds++
}

// RecordModeChange records a mode switch.
func (c *SceneCollector) RecordModeChange() {
	c.modeChanges++
}

// ShouldFlush reports whether the window is complete at simTime seconds.
func (c *SceneCollector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartSec >= c.windowSec-windowEpsilon
}

// Flush produces the stats for the window ending at currentTick and simTime
// seconds, and resets the counters.
func (c *SceneCollector) Flush(currentTick int32, simTime float64, snap SceneSnapshot) WindowStats {
	disp := Summarize(snap.Displacements)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Mode:          snap.Mode,
		Text:          snap.Text,
		Particles:     snap.Particles,
		FlakesAir:     snap.FlakesAir,
		FlakesMelting: snap.FlakesMelting,

		Landings:    c.landings,
		Respawns:    c.respawns,
		Rebuilds:    c.rebuilds,
		ModeChanges: c.modeChanges,

		DispMean: disp.Mean,
		DispStd:  disp.Std,
		DispP50:  disp.P50,
		DispP90:  disp.P90,
		DispMax:  disp.Max,
	}

	c.windowStartTick = currentTick
	c.windowStartSec = simTime
	c.landings = 0
	c.respawns = 0
	c.rebuilds = 0
	c.modeChanges = 0

	return stats
}

// WindowSec returns the window length in seconds.
func (c *SceneCollector) WindowSec() float64 {
	return c.windowSec
}
