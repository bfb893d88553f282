package ui

import (
	"log"
	"time"

	"vpet/internal/clock"
	"vpet/internal/creature"
	"vpet/internal/pet"
)

// stage is the terminal side of a session: it records what the session
// asked to show and the View draws it.
type stage struct {
	creature *creature.Creature
	sched    *clock.Scheduler

	anim Animation

	energy float64
	band   pet.Band

	alert        string
	alertSev     pet.Severity
	alertExpires time.Time

	sleepVisible  bool
	wakeupVisible bool

	snapshot pet.Snapshot
}

func newStage(c *creature.Creature, sched *clock.Scheduler) *stage {
	return &stage{creature: c, sched: sched, energy: 1, sleepVisible: true}
}

// PlayClip implements pet.Presenter.
func (s *stage) PlayClip(clip creature.Clip, opts pet.PlayOptions) {
	spec, ok := s.creature.Clips[clip]
	if !ok {
		log.Printf("[ui] %s has no %s clip", s.creature.Name, clip)
		return
	}
	loop := opts.Loop
	if loop == "" {
		loop = spec.Loop
	}

	now := s.sched.Now()
	var from string
	if opts.From != "" {
		from = s.anim.Render(now)
	}
	s.anim = StartAnimation(clip, spec, loop, now).WithBlend(from, opts.Blend)
	s.anim.Held = opts.Hold
}

// SetEnergyBar implements pet.Presenter.
func (s *stage) SetEnergyBar(fraction float64, band pet.Band) {
	s.energy = fraction
	s.band = band
}

// ShowAlert implements pet.Presenter.
func (s *stage) ShowAlert(message string, d time.Duration, sev pet.Severity) {
	s.alert = message
	s.alertSev = sev
	s.alertExpires = s.sched.Now().Add(d)
}

// SetControlVisibility implements pet.Presenter.
func (s *stage) SetControlVisibility(sleepVisible, wakeupVisible bool) {
	s.sleepVisible = sleepVisible
	s.wakeupVisible = wakeupVisible
}

// ShowStats implements pet.Presenter.
func (s *stage) ShowStats(snap pet.Snapshot) {
	s.snapshot = snap
}

// step advances the animation. It returns the clip that just finished, if
// a play-once clip ended on this step.
func (s *stage) step(now time.Time) (creature.Clip, bool) {
	if s.anim.Step(now) {
		return s.anim.Clip, true
	}
	return "", false
}

// activeAlert returns the alert still on screen at now.
func (s *stage) activeAlert(now time.Time) (string, pet.Severity, bool) {
	if s.alert == "" || !now.Before(s.alertExpires) {
		return "", 0, false
	}
	return s.alert, s.alertSev, true
}
