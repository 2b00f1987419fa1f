package config

import "testing"

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Params
	}{
		{"bare", "num=2025&mode=snow", Params{Num: "2025", Mode: "snow"}},
		{"url", "https://example.com/viewer?num=7&dur=600", Params{Num: "7", Dur: "600"}},
		{"fragment only", "https://example.com/viewer#breath=8&mode=water", Params{Breath: "8", Mode: "water"}},
		{"query wins", "?num=1#num=2&mode=snow", Params{Num: "1", Mode: "snow"}},
		{"empty", "", Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Params{Num: "1", Mode: "snow"}
	got := base.Merge(Params{Num: "9", Breath: "4"})
	want := Params{Num: "9", Breath: "4", Mode: "snow"}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestApplyParams(t *testing.T) {
	tests := []struct {
		name       string
		variant    string
		params     Params
		wantText   string
		wantRun    float64
		wantBreath float64
		wantMode   string
	}{
		{"defaults untouched", VariantTides, Params{}, "131", 0, 6, ModeZen},
		{"all valid", VariantTides, Params{Num: " 2025 ", Dur: "600", Breath: "8", Mode: " WATER "}, "2025", 600, 8, ModeWater},
		{"lenient prefixes", VariantTides, Params{Dur: "90s", Breath: "7.5sec"}, "131", 90, 7.5, ModeZen},
		{"blank num ignored", VariantTides, Params{Num: "   "}, "131", 0, 6, ModeZen},
		{"non-positive dur ignored", VariantTides, Params{Dur: "0"}, "131", 0, 6, ModeZen},
		{"garbage dur ignored", VariantTides, Params{Dur: "soon"}, "131", 0, 6, ModeZen},
		{"short breath ignored", VariantTides, Params{Breath: "0.5"}, "131", 0, 6, ModeZen},
		{"garbage breath ignored", VariantTides, Params{Breath: "deep"}, "131", 0, 6, ModeZen},
		{"unknown mode ignored", VariantTides, Params{Mode: "fire"}, "131", 0, 6, ModeZen},
		{"water unsupported in snowfall", VariantSnowfall, Params{Mode: "water"}, "131", 0, 6, ModeZen},
		{"snow supported in snowfall", VariantSnowfall, Params{Mode: "snow"}, "131", 0, 6, ModeSnow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			cfg.Scene.Variant = tt.variant
			cfg.computeDerived()

			cfg.ApplyParams(tt.params)

			if cfg.Scene.Text != tt.wantText {
				t.Errorf("text = %q, want %q", cfg.Scene.Text, tt.wantText)
			}
			if cfg.Scene.RunSeconds != tt.wantRun {
				t.Errorf("run seconds = %v, want %v", cfg.Scene.RunSeconds, tt.wantRun)
			}
			if cfg.Scene.BreathSeconds != tt.wantBreath {
				t.Errorf("breath = %v, want %v", cfg.Scene.BreathSeconds, tt.wantBreath)
			}
			if cfg.Scene.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", cfg.Scene.Mode, tt.wantMode)
			}
		})
	}
}
