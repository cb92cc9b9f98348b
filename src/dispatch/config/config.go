package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/shared/data"
)

// Weights holds the five scoring factor weights. They must sum to 1.0.
type Weights struct {
	Expertise    float64
	Performance  float64
	Availability float64
	Context      float64
	Workload     float64
}

// DefaultWeights returns the production weighting scheme.
func DefaultWeights() Weights {
	return Weights{
		Expertise:    0.30,
		Performance:  0.25,
		Availability: 0.20,
		Context:      0.15,
		Workload:     0.10,
	}
}

// Validate rejects negative weights and sums that drift from 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"expertise":    w.Expertise,
		"performance":  w.Performance,
		"availability": w.Availability,
		"context":      w.Context,
		"workload":     w.Workload,
	} {
		if v < 0 {
			return fmt.Errorf("%w: weight %s is negative", core.ErrInvalidInput, name)
		}
	}
	sum := w.Expertise + w.Performance + w.Availability + w.Context + w.Workload
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: weights sum to %.4f, want 1.0", core.ErrInvalidInput, sum)
	}
	return nil
}

// Config collects every tunable of the dispatch core.
type Config struct {
	Weights Weights

	// Hourly rates used for cost/ROI derivations.
	AIHourlyRate    float64
	HumanHourlyRate float64
	HumanWorkday    float64

	// Performance lookback window for the scoring engine.
	PerformanceWindow time.Duration

	// Expected mission durations by complexity.
	ExpectedLow     time.Duration
	ExpectedMedium  time.Duration
	ExpectedHigh    time.Duration
	ExpectedDefault time.Duration

	// Concurrency controls for history fan-out.
	FetchTimeout    time.Duration
	MaxConcurrency  int
	PerformanceFill float64 // neutral default when history is missing
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Weights:           DefaultWeights(),
		AIHourlyRate:      5,
		HumanHourlyRate:   50,
		HumanWorkday:      8,
		PerformanceWindow: 30 * 24 * time.Hour,
		ExpectedLow:       2 * time.Hour,
		ExpectedMedium:    8 * time.Hour,
		ExpectedHigh:      24 * time.Hour,
		ExpectedDefault:   8 * time.Hour,
		FetchTimeout:      3 * time.Second,
		MaxConcurrency:    8,
		PerformanceFill:   0.7,
	}
}

// settingValue reads the DB-backed settings cache that services populate at
// boot via data.LoadSettings. Swapped out in tests.
var settingValue = data.GetSetting

// lookup resolves a tunable by its env key. An admin-managed setting under
// the same key, lowercased, takes precedence over the environment.
func lookup(key string) string {
	if v := settingValue(strings.ToLower(key)); v != "" {
		return v
	}
	return os.Getenv(key)
}

// Load builds a Config from the settings cache and environment variables,
// falling back to defaults.
func Load() (Config, error) {
	cfg := Default()

	cfg.Weights.Expertise = getfloat("DISPATCH_WEIGHT_EXPERTISE", cfg.Weights.Expertise)
	cfg.Weights.Performance = getfloat("DISPATCH_WEIGHT_PERFORMANCE", cfg.Weights.Performance)
	cfg.Weights.Availability = getfloat("DISPATCH_WEIGHT_AVAILABILITY", cfg.Weights.Availability)
	cfg.Weights.Context = getfloat("DISPATCH_WEIGHT_CONTEXT", cfg.Weights.Context)
	cfg.Weights.Workload = getfloat("DISPATCH_WEIGHT_WORKLOAD", cfg.Weights.Workload)

	cfg.AIHourlyRate = getfloat("DISPATCH_AI_HOURLY_RATE", cfg.AIHourlyRate)
	cfg.HumanHourlyRate = getfloat("DISPATCH_HUMAN_HOURLY_RATE", cfg.HumanHourlyRate)

	cfg.PerformanceWindow = getduration("DISPATCH_PERFORMANCE_WINDOW", cfg.PerformanceWindow)
	cfg.ExpectedLow = getduration("DISPATCH_EXPECTED_LOW", cfg.ExpectedLow)
	cfg.ExpectedMedium = getduration("DISPATCH_EXPECTED_MEDIUM", cfg.ExpectedMedium)
	cfg.ExpectedHigh = getduration("DISPATCH_EXPECTED_HIGH", cfg.ExpectedHigh)
	cfg.ExpectedDefault = getduration("DISPATCH_EXPECTED_DEFAULT", cfg.ExpectedDefault)
	cfg.FetchTimeout = getduration("DISPATCH_FETCH_TIMEOUT", cfg.FetchTimeout)

	if n, err := strconv.Atoi(lookup("DISPATCH_MAX_CONCURRENCY")); err == nil && n > 0 {
		cfg.MaxConcurrency = n
	}

	if err := cfg.Weights.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ExpectedDuration maps a complexity bucket to its expected mission duration.
func (c Config) ExpectedDuration(complexity core.Complexity) time.Duration {
	switch complexity {
	case core.ComplexityLow:
		return c.ExpectedLow
	case core.ComplexityHigh:
		return c.ExpectedHigh
	default:
		return c.ExpectedMedium
	}
}

func getfloat(key string, def float64) float64 {
	v := lookup(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getduration(key string, def time.Duration) time.Duration {
	v := lookup(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
