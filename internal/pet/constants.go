package pet

import (
	"fmt"
	"time"

	"vpet/internal/stats"
)

// Game constants
const (
	DefaultAlertDuration = 2500 * time.Millisecond

	PunchDuration  = 3 * time.Second        // punch clip before returning to idle
	PlayDuration   = 3 * time.Second        // play clip before returning to idle
	SleepSettle    = 500 * time.Millisecond // sleep clip settle before recovery starts
	WakeupDuration = 4900 * time.Millisecond

	CrossfadeBlend = 300 * time.Millisecond
	MicroBlend     = time.Millisecond // only used to stop a stray clip without snapping

	PunchEnergyCost = 1.5
	PlayEnergyCost  = 2.0
	PunchAngerGain  = 25 // the one recovery amount for punch
	PlayHappyGain   = 25

	TiredEnergy       = 1  // punch/play refused at or below this
	SleepyEnergy      = 15 // sleep refused at or above this
	FullEnergyWarning = 99

	// Energy bar colour bands
	HighEnergyBand   = 60
	MediumEnergyBand = 30
)

// Rules is the full tuning of a session.
type Rules struct {
	Stats stats.Config `yaml:"stats"`

	PunchDuration  time.Duration `yaml:"punch_duration"`
	PlayDuration   time.Duration `yaml:"play_duration"`
	SleepSettle    time.Duration `yaml:"sleep_settle"`
	WakeupDuration time.Duration `yaml:"wakeup_duration"`
	CrossfadeBlend time.Duration `yaml:"crossfade_blend"`
	MicroBlend     time.Duration `yaml:"micro_blend"`
	AlertDuration  time.Duration `yaml:"alert_duration"`

	PunchEnergyCost float64 `yaml:"punch_energy_cost"`
	PlayEnergyCost  float64 `yaml:"play_energy_cost"`
	PunchAngerGain  float64 `yaml:"punch_anger_gain"`
	PlayHappyGain   float64 `yaml:"play_happiness_gain"`
	TiredEnergy     float64 `yaml:"tired_energy"`
	SleepyEnergy    float64 `yaml:"sleepy_energy"`
}

// DefaultRules returns the stock tuning.
func DefaultRules() Rules {
	return Rules{
		Stats:           stats.DefaultConfig(),
		PunchDuration:   PunchDuration,
		PlayDuration:    PlayDuration,
		SleepSettle:     SleepSettle,
		WakeupDuration:  WakeupDuration,
		CrossfadeBlend:  CrossfadeBlend,
		MicroBlend:      MicroBlend,
		AlertDuration:   DefaultAlertDuration,
		PunchEnergyCost: PunchEnergyCost,
		PlayEnergyCost:  PlayEnergyCost,
		PunchAngerGain:  PunchAngerGain,
		PlayHappyGain:   PlayHappyGain,
		TiredEnergy:     TiredEnergy,
		SleepyEnergy:    SleepyEnergy,
	}
}

// Validate checks the rules for values that would stall or corrupt a
// session.
func (r Rules) Validate() error {
	if err := r.Stats.Validate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	phases := []struct {
		name string
		d    time.Duration
	}{
		{"punch_duration", r.PunchDuration},
		{"play_duration", r.PlayDuration},
		{"sleep_settle", r.SleepSettle},
		{"wakeup_duration", r.WakeupDuration},
		{"alert_duration", r.AlertDuration},
	}
	for _, p := range phases {
		if p.d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.d)
		}
	}
	if r.CrossfadeBlend < 0 || r.MicroBlend < 0 {
		return fmt.Errorf("blend durations must not be negative")
	}
	if r.PunchEnergyCost < 0 || r.PlayEnergyCost < 0 {
		return fmt.Errorf("energy costs must not be negative")
	}
	if r.PunchAngerGain < 0 || r.PlayHappyGain < 0 {
		return fmt.Errorf("recovery gains must not be negative")
	}
	if r.TiredEnergy >= r.SleepyEnergy {
		return fmt.Errorf("tired_energy (%v) must be below sleepy_energy (%v)", r.TiredEnergy, r.SleepyEnergy)
	}
	return nil
}

// Status emojis
const (
	StatusEmojiHappy    = "😸"
	StatusEmojiSleeping = "😴"
	StatusEmojiWaking   = "🥱"
	StatusEmojiBusy     = "😼"
	StatusEmojiAngry    = "😾"
	StatusEmojiSad      = "😿"
	StatusEmojiTired    = "🙀"

	// LowStatThreshold is where a stat starts to show in the status line.
	LowStatThreshold = 30
)
