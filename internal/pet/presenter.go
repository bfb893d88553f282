package pet

import (
	"time"

	"vpet/internal/creature"
)

// Band is the colour band of the energy bar.
type Band int

const (
	BandSleeping Band = iota
	BandHigh
	BandMedium
	BandLow
)

func (b Band) String() string {
	switch b {
	case BandSleeping:
		return "sleeping"
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

// Severity of a user-facing alert.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityDanger
)

// PlayOptions describe how a clip starts.
type PlayOptions struct {
	Loop  creature.Loop
	From  creature.Clip // clip to crossfade from, empty for a cold start
	Blend time.Duration
	Hold  bool // freeze on the first frame (stray-clip stop)
}

// Warnings are the small indicator icons next to the action buttons.
type Warnings struct {
	AngerLow     bool
	EnergyLow    bool
	EnergyFull   bool
	HappinessLow bool
}

// Snapshot is a read-only copy of session state for display.
type Snapshot struct {
	ID        string
	State     State
	Busy      bool
	Energy    float64
	Anger     float64
	Happiness float64
	Warnings  Warnings
}

// Presenter is the write-only sink for everything the session wants shown.
// It never calls back into the session except through ClipFinished.
type Presenter interface {
	PlayClip(clip creature.Clip, opts PlayOptions)
	SetEnergyBar(fraction float64, band Band)
	ShowAlert(message string, d time.Duration, sev Severity)
	SetControlVisibility(sleepVisible, wakeupVisible bool)
	ShowStats(s Snapshot)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) PlayClip(creature.Clip, PlayOptions) {}
func (NopPresenter) SetEnergyBar(float64, Band) {}
func (NopPresenter) ShowAlert(string, time.Duration, Severity) {}
func (NopPresenter) SetControlVisibility(bool, bool) {}
func (NopPresenter) ShowStats(Snapshot) {}
