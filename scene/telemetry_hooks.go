package scene

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/numerals/telemetry"
)

// flushTelemetry closes the stats window when it is due.
func (s *Scene) flushTelemetry() {
	if !s.collector.ShouldFlush(s.elapsed) {
		return
	}

	air, melting := s.pool.Counts()
	stats := s.collector.Flush(s.tick, s.elapsed, telemetry.SceneSnapshot{
		Mode:          s.sc.Mode,
		Text:          s.sc.Text,
		Particles:     s.field.Len(),
		FlakesAir:     air,
		FlakesMelting: melting,
		Displacements: s.sampleDisplacements(),
	})
	perfStats := s.perf.Stats()

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteScene(stats); err != nil {
		slog.Error("failed to write scene stats", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleDisplacements returns each particle's distance from its home.
func (s *Scene) sampleDisplacements() []float64 {
	ps := s.field.Particles
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = math.Hypot(float64(p.Pos.X-p.Home.X), float64(p.Pos.Y-p.Home.Y))
	}
	return out
}
