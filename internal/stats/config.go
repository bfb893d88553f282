package stats

import (
	"fmt"
	"time"
)

// Stat bounds
const (
	MinValue = 0.0
	MaxValue = 100.0
)

// TrackConfig holds the tuning for one stat.
type TrackConfig struct {
	Initial        float64 `yaml:"initial"`
	DrainPerSecond float64 `yaml:"drain_per_second"`
	AlertThreshold float64 `yaml:"alert_threshold"` // alert when value <= this
	ResetThreshold float64 `yaml:"reset_threshold"` // alert re-arms when value > this
}

// RecoveryStep maps a sleep-onset energy band to a recovery duration.
type RecoveryStep struct {
	Below    float64       `yaml:"below"`
	Duration time.Duration `yaml:"duration"`
}

// Config tunes the stat engine.
type Config struct {
	TickInterval     time.Duration  `yaml:"tick_interval"`
	Energy           TrackConfig    `yaml:"energy"`
	Anger            TrackConfig    `yaml:"anger"`
	Happiness        TrackConfig    `yaml:"happiness"`
	RecoverySteps    []RecoveryStep `yaml:"recovery_steps"`
	RecoveryFallback time.Duration  `yaml:"recovery_fallback"`
}

// DefaultConfig returns the stock tuning: energy empties in ~20 minutes,
// anger in 16, happiness in 17.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		Energy: TrackConfig{
			Initial:        MaxValue,
			DrainPerSecond: 100.0 / 1200,
			AlertThreshold: 1,
			ResetThreshold: 20,
		},
		Anger: TrackConfig{
			Initial:        MaxValue,
			DrainPerSecond: 100.0 / 960,
			AlertThreshold: 20,
			ResetThreshold: 20,
		},
		Happiness: TrackConfig{
			Initial:        MaxValue,
			DrainPerSecond: 100.0 / 1020,
			AlertThreshold: 10,
			ResetThreshold: 10,
		},
		RecoverySteps: []RecoveryStep{
			{Below: 15, Duration: 30 * time.Second},
			{Below: 30, Duration: 45 * time.Second},
			{Below: 60, Duration: 60 * time.Second},
		},
		RecoveryFallback: 80 * time.Second,
	}
}

// Track returns the tuning for k.
func (c Config) Track(k Kind) TrackConfig {
	switch k {
	case Energy:
		return c.Energy
	case Anger:
		return c.Anger
	default:
		return c.Happiness
	}
}

// RecoveryDuration returns how long sleep takes to refill energy from start.
// More depleted pets sleep for less time.
func (c Config) RecoveryDuration(start float64) time.Duration {
	for _, step := range c.RecoverySteps {
		if start < step.Below {
			return step.Duration
		}
	}
	return c.RecoveryFallback
}

// Validate checks the tuning for values the engine cannot run with.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	for _, k := range Kinds {
		tc := c.Track(k)
		if tc.Initial < MinValue || tc.Initial > MaxValue {
			return fmt.Errorf("%s: initial value %.2f outside [0,100]", k, tc.Initial)
		}
		if tc.DrainPerSecond < 0 {
			return fmt.Errorf("%s: negative drain rate %.4f", k, tc.DrainPerSecond)
		}
		if tc.ResetThreshold < tc.AlertThreshold {
			return fmt.Errorf("%s: reset threshold %.2f below alert threshold %.2f", k, tc.ResetThreshold, tc.AlertThreshold)
		}
	}
	prev := MinValue
	for i, step := range c.RecoverySteps {
		if step.Duration <= 0 {
			return fmt.Errorf("recovery step %d: duration must be positive", i)
		}
		if step.Below <= prev {
			return fmt.Errorf("recovery step %d: bands must increase", i)
		}
		prev = step.Below
	}
	if c.RecoveryFallback <= 0 {
		return fmt.Errorf("recovery fallback must be positive, got %v", c.RecoveryFallback)
	}
	return nil
}
