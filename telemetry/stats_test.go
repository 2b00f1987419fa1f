package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []float64{5}, Summary{Mean: 5, Std: 0, P50: 5, P90: 5, Max: 5}},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, Summary{Mean: 5.5, Std: 3.0277, P50: 5, P90: 9, Max: 10}},
		{"constant", []float64{2, 2, 2, 2}, Summary{Mean: 2, Std: 0, P50: 2, P90: 2, Max: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			for _, c := range []struct {
				field     string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std", got.Std, tt.want.Std},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
				{"max", got.Max, tt.want.Max},
			} {
				if math.Abs(c.got-c.want) > 0.001 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestSummarizeLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input modified: %v", values)
	}
}

func TestSceneCollectorWindows(t *testing.T) {
	c := NewSceneCollector(1)
	if c.WindowSec() != 1 {
		t.Fatalf("window = %v s, want 1", c.WindowSec())
	}
	if c.ShouldFlush(59.0 / 60) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(1) {
		t.Error("did not flush at window end")
	}

	c.RecordFlakeEvents(3, 1)
	c.RecordFlakeEvents(2, 0)
	c.RecordRebuild()
	c.RecordModeChange()

	stats := c.Flush(60, 1, SceneSnapshot{
		Mode:          "snow",
		Text:          "42",
		Particles:     4,
		FlakesAir:     200,
		FlakesMelting: 20,
		Displacements: []float64{1, 2, 3, 4},
	})

	if stats.Landings != 5 || stats.Respawns != 1 || stats.Rebuilds != 1 || stats.ModeChanges != 1 {
		t.Errorf("event counts = %+v", stats)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 60 {
		t.Errorf("window = [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-9 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.DispMean != 2.5 || stats.DispMax != 4 {
		t.Errorf("displacement mean=%v max=%v", stats.DispMean, stats.DispMax)
	}
	if stats.Mode != "snow" || stats.FlakesMelting != 20 {
		t.Errorf("snapshot not copied: %+v", stats)
	}

	// Counters reset and the next window starts where this one ended
	next := c.Flush(120, 2, SceneSnapshot{})
	if next.Landings != 0 || next.Rebuilds != 0 || next.WindowStartTick != 60 {
		t.Errorf("second window = %+v", next)
	}
	if c.ShouldFlush(2.5) {
		t.Error("flushed mid-window")
	}
}

func TestSceneCollectorVariableFrames(t *testing.T) {
	tests := []struct {
		name     string
		frameSec float64
		frames   int
		wantRows int
	}{
		{"60 fps", 1.0 / 60, 600, 1},
		{"20 fps", 0.05, 600, 3},
		{"144 fps", 1.0 / 144, 1440, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSceneCollector(10)
			var simTime float64
			var rows []WindowStats
			for i := 1; i <= tt.frames; i++ {
				simTime += tt.frameSec
				if c.ShouldFlush(simTime) {
					rows = append(rows, c.Flush(int32(i), simTime, SceneSnapshot{}))
				}
			}
			if len(rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(rows), tt.wantRows)
			}
			for i, r := range rows {
				want := float64(i+1) * 10
				if math.Abs(r.SimTimeSec-want) > 1e-6 {
					t.Errorf("row %d sim time = %v, want %v", i, r.SimTimeSec, want)
				}
			}
		})
	}
}

func TestSceneCollectorZeroWindow(t *testing.T) {
	c := NewSceneCollector(-1)
	if !c.ShouldFlush(0) {
		t.Error("zero-length window should always flush")
	}
}
