package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"vpet/internal/pet"
)

// DefaultFrameInterval is how often the UI advances animation and timers.
const DefaultFrameInterval = 100 * time.Millisecond

// Config is everything the program can be told before it starts.
type Config struct {
	LogPath       string        `yaml:"log_path"`
	Manifest      string        `yaml:"manifest"` // creature manifest; empty uses the built-in one
	Creature      int           `yaml:"creature"` // skip selection when set
	FrameInterval time.Duration `yaml:"frame_interval"`
	Pet           pet.Rules     `yaml:"pet"`
}

// envOverrides are the settings that can come from the environment.
type envOverrides struct {
	LogPath          string        `env:"VPET_LOG"`
	Manifest         string        `env:"VPET_MANIFEST"`
	Creature         int           `env:"VPET_CREATURE"`
	FrameInterval    time.Duration `env:"VPET_FRAME_INTERVAL"`
	TickInterval     time.Duration `env:"VPET_TICK_INTERVAL"`
	AlertDuration    time.Duration `env:"VPET_ALERT_DURATION"`
	InitialEnergy    float64       `env:"VPET_INITIAL_ENERGY"`
	InitialAnger     float64       `env:"VPET_INITIAL_ANGER"`
	InitialHappiness float64       `env:"VPET_INITIAL_HAPPINESS"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		FrameInterval: DefaultFrameInterval,
		Pet:           pet.DefaultRules(),
	}
}

// DefaultPath returns ~/.config/vpet/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vpet", "config.yaml"), nil
}

// Load builds the configuration: defaults, then the YAML file at path if it
// exists, then VPET_* environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults and env only
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays environment variables. Unset variables leave the
// current value alone.
func applyEnv(cfg *Config) error {
	o := envOverrides{
		LogPath:          cfg.LogPath,
		Manifest:         cfg.Manifest,
		Creature:         cfg.Creature,
		FrameInterval:    cfg.FrameInterval,
		TickInterval:     cfg.Pet.Stats.TickInterval,
		AlertDuration:    cfg.Pet.AlertDuration,
		InitialEnergy:    cfg.Pet.Stats.Energy.Initial,
		InitialAnger:     cfg.Pet.Stats.Anger.Initial,
		InitialHappiness: cfg.Pet.Stats.Happiness.Initial,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.LogPath = o.LogPath
	cfg.Manifest = o.Manifest
	cfg.Creature = o.Creature
	cfg.FrameInterval = o.FrameInterval
	cfg.Pet.Stats.TickInterval = o.TickInterval
	cfg.Pet.AlertDuration = o.AlertDuration
	cfg.Pet.Stats.Energy.Initial = o.InitialEnergy
	cfg.Pet.Stats.Anger.Initial = o.InitialAnger
	cfg.Pet.Stats.Happiness.Initial = o.InitialHappiness
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %v", c.FrameInterval)
	}
	if c.Creature < 0 {
		return fmt.Errorf("creature id must not be negative, got %d", c.Creature)
	}
	if err := c.Pet.Validate(); err != nil {
		return fmt.Errorf("pet: %w", err)
	}
	return nil
}
