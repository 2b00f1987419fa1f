package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated scene statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Scene state at window end
	Mode          string `csv:"mode"`
	Text          string `csv:"text"`
	Particles     int    `csv:"particles"`
	FlakesAir     int    `csv:"flakes_air"`
	FlakesMelting int    `csv:"flakes_melting"`

	// Events during window
	Landings    int `csv:"landings"`
	Respawns    int `csv:"respawns"`
	Rebuilds    int `csv:"rebuilds"`
	ModeChanges int `csv:"mode_changes"`

	// Particle distance from home, sampled at window end
	DispMean float64 `csv:"disp_mean"`
	DispStd  float64 `csv:"disp_std"`
	DispP50  float64 `csv:"disp_p50"`
	DispP90  float64 `csv:"disp_p90"`
	DispMax  float64 `csv:"disp_max"`
}

// Summary is the distribution summary of a sample.
type Summary struct {
	Mean, Std, P50, P90, Max float64
}

// Summarize computes mean, standard deviation and quantiles of values.
// Returns the zero Summary for an empty slice. values is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Summary{
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("mode", s.Mode),
		slog.String("text", s.Text),
		slog.Int("particles", s.Particles),
		slog.Int("flakes_air", s.FlakesAir),
		slog.Int("flakes_melting", s.FlakesMelting),
		slog.Int("landings", s.Landings),
		slog.Int("respawns", s.Respawns),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int("mode_changes", s.ModeChanges),
		slog.Float64("disp_mean", s.DispMean),
		slog.Float64("disp_std", s.DispStd),
		slog.Float64("disp_p50", s.DispP50),
		slog.Float64("disp_p90", s.DispP90),
		slog.Float64("disp_max", s.DispMax),
	)
}

// LogStats logs the window stats.
func (s WindowStats) LogStats() {
	slog.Info("window stats", "stats", s)
}
