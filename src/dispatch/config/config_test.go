package config

import (
	"errors"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
}

func TestWeightsValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Weights)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(*Weights) {}},
		{name: "sum above one", mutate: func(w *Weights) { w.Expertise = 0.9 }, wantErr: true},
		{name: "sum below one", mutate: func(w *Weights) { w.Workload = 0 }, wantErr: true},
		{name: "negative weight", mutate: func(w *Weights) { w.Context = -0.15; w.Expertise = 0.60 }, wantErr: true},
		{
			name: "rebalanced still sums to one",
			mutate: func(w *Weights) {
				w.Expertise = 0.40
				w.Performance = 0.15
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := DefaultWeights()
			tc.mutate(&w)
			err := w.Validate()
			if tc.wantErr && !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("want ErrInvalidInput, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISPATCH_AI_HOURLY_RATE", "7.5")
	t.Setenv("DISPATCH_PERFORMANCE_WINDOW", "168h")
	t.Setenv("DISPATCH_MAX_CONCURRENCY", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIHourlyRate != 7.5 {
		t.Errorf("AIHourlyRate = %v, want 7.5", cfg.AIHourlyRate)
	}
	if cfg.PerformanceWindow != 168*time.Hour {
		t.Errorf("PerformanceWindow = %v, want 168h", cfg.PerformanceWindow)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %v, want 4", cfg.MaxConcurrency)
	}
}

func TestLoadRejectsBrokenWeights(t *testing.T) {
	t.Setenv("DISPATCH_WEIGHT_EXPERTISE", "0.9")
	if _, err := Load(); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	old := settingValue
	settingValue = func(name string) string {
		if name == "dispatch_ai_hourly_rate" {
			return "6.5"
		}
		return ""
	}
	t.Cleanup(func() { settingValue = old })

	t.Setenv("DISPATCH_AI_HOURLY_RATE", "9")
	t.Setenv("DISPATCH_HUMAN_HOURLY_RATE", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIHourlyRate != 6.5 {
		t.Errorf("AIHourlyRate = %v, want 6.5 (setting over env)", cfg.AIHourlyRate)
	}
	if cfg.HumanHourlyRate != 60 {
		t.Errorf("HumanHourlyRate = %v, want 60 (env when no setting)", cfg.HumanHourlyRate)
	}
	if cfg.PerformanceWindow != Default().PerformanceWindow {
		t.Errorf("PerformanceWindow = %v, want default", cfg.PerformanceWindow)
	}
}

func TestExpectedDuration(t *testing.T) {
	cfg := Default()
	testCases := []struct {
		c    core.Complexity
		want time.Duration
	}{
		{core.ComplexityLow, 2 * time.Hour},
		{core.ComplexityMedium, 8 * time.Hour},
		{core.ComplexityHigh, 24 * time.Hour},
		{core.Complexity(""), 8 * time.Hour},
	}
	for _, tc := range testCases {
		if got := cfg.ExpectedDuration(tc.c); got != tc.want {
			t.Errorf("ExpectedDuration(%q) = %v, want %v", tc.c, got, tc.want)
		}
	}
}
