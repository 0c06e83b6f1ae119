// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the scoring engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Scores holds the base scores and bonuses applied to each candidate.
	Scores ScoreConfig `json:"scores"`

	// Model contains model fusion parameters.
	Model ModelConfig `json:"model"`

	// Native contains native-emphasis parameters.
	Native NativeConfig `json:"native"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request asks for zero or fewer results.
	DefaultK int `json:"default_k"`

	// MaxK caps the number of results per request.
	MaxK int `json:"max_k"`
}

// ScoreConfig holds the additive score components.
type ScoreConfig struct {
	IdealBase    float64 `json:"ideal_base"`
	SuitableBase float64 `json:"suitable_base"`
	Regional     float64 `json:"regional"`
	Historical   float64 `json:"historical"`

	// Yield efficiency tiers: High when efficiency > HighThreshold, Medium
	// when > MediumThreshold, Low for any other recorded value.
	YieldHigh            float64 `json:"yield_high"`
	YieldMedium          float64 `json:"yield_medium"`
	YieldLow             float64 `json:"yield_low"`
	YieldHighThreshold   float64 `json:"yield_high_threshold"`
	YieldMediumThreshold float64 `json:"yield_medium_threshold"`

	// AvgYield is added when the average yield exceeds AvgYieldThreshold.
	AvgYield          float64 `json:"avg_yield"`
	AvgYieldThreshold float64 `json:"avg_yield_threshold"`

	// Cap is the maximum probability.
	Cap float64 `json:"cap"`
}

// ModelConfig contains model fusion parameters.
type ModelConfig struct {
	// BlendWeight is the share of the model probability in a merged score.
	// Zero keeps the knowledge-based list unchanged.
	BlendWeight float64 `json:"blend_weight"`

	// Timeout bounds a single model call.
	Timeout time.Duration `json:"timeout"`
}

// NativeConfig contains native-emphasis parameters.
type NativeConfig struct {
	// Boost is added to recommendations whose crop is in the native set.
	Boost float64 `json:"boost"`

	// SetMultiplier and MinSetSize size the native set as
	// max(SetMultiplier*k, MinSetSize).
	SetMultiplier int `json:"set_multiplier"`
	MinSetSize    int `json:"min_set_size"`

	// HistoricalScore, YieldScore and SeasonalScore weight the nativeness
	// signals.
	HistoricalScore float64 `json:"historical_score"`
	YieldScore      float64 `json:"yield_score"`
	SeasonalScore   float64 `json:"seasonal_score"`
}

// DefaultConfig returns a configuration with the agronomic defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Scores: ScoreConfig{
			IdealBase:            0.8,
			SuitableBase:         0.6,
			Regional:             0.1,
			Historical:           0.15,
			YieldHigh:            0.2,
			YieldMedium:          0.1,
			YieldLow:             0.05,
			YieldHighThreshold:   0.5,
			YieldMediumThreshold: 0.3,
			AvgYield:             0.1,
			AvgYieldThreshold:    1.0,
			Cap:                  1.0,
		},
		Model: ModelConfig{
			BlendWeight: 0,
			Timeout:     2 * time.Second,
		},
		Native: NativeConfig{
			Boost:           0.15,
			SetMultiplier:   3,
			MinSetSize:      10,
			HistoricalScore: 1.0,
			YieldScore:      0.6,
			SeasonalScore:   0.3,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= limits.default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Scores.Cap <= 0 {
		return fmt.Errorf("scores.cap must be positive, got %f", c.Scores.Cap)
	}
	if c.Scores.IdealBase < 0 || c.Scores.SuitableBase < 0 {
		return fmt.Errorf("scores base values must be non-negative, got ideal=%f suitable=%f",
			c.Scores.IdealBase, c.Scores.SuitableBase)
	}
	if c.Scores.YieldMediumThreshold > c.Scores.YieldHighThreshold {
		return fmt.Errorf("scores.yield_medium_threshold (%f) must be <= scores.yield_high_threshold (%f)",
			c.Scores.YieldMediumThreshold, c.Scores.YieldHighThreshold)
	}

	if c.Model.BlendWeight < 0 || c.Model.BlendWeight > 1 {
		return fmt.Errorf("model.blend_weight must be in [0, 1], got %f", c.Model.BlendWeight)
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("model.timeout must be positive, got %v", c.Model.Timeout)
	}

	if c.Native.Boost < 0 {
		return fmt.Errorf("native.boost must be non-negative, got %f", c.Native.Boost)
	}
	if c.Native.SetMultiplier < 1 {
		return fmt.Errorf("native.set_multiplier must be positive, got %d", c.Native.SetMultiplier)
	}
	if c.Native.MinSetSize < 1 {
		return fmt.Errorf("native.min_set_size must be positive, got %d", c.Native.MinSetSize)
	}

	return nil
}

// NativeSetSize returns how many native crops count as the native set for k.
func (c *Config) NativeSetSize(k int) int {
	return max(c.Native.SetMultiplier*k, c.Native.MinSetSize)
}
