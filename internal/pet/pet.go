package pet

import (
	"log"
	"time"

	"github.com/google/uuid"

	"vpet/internal/clock"
	"vpet/internal/creature"
	"vpet/internal/stats"
)

// Session is one pet and everything that changes it: the state machine, the
// stat engine and the timers both of them own. A session is driven from a
// single goroutine through Request, ClipFinished and Advance.
type Session struct {
	ID    string
	rules Rules
	sched *clock.Scheduler
	stats *stats.Engine
	out   Presenter

	state   State
	busy    bool
	started bool

	// phase is the animation-phase channel: the timer that ends the clip
	// currently standing in for a transition.
	phase      clock.Slot
	phaseClip  creature.Clip
	phaseState State
	phaseDone  func()

	currentClip creature.Clip
	suppressBar bool
}

// NewSession creates an idle pet. Nothing ticks until Start.
func NewSession(sched *clock.Scheduler, rules Rules, out Presenter) *Session {
	if out == nil {
		out = NopPresenter{}
	}
	s := &Session{
		ID:    uuid.NewString(),
		rules: rules,
		sched: sched,
		out:   out,
		state: StateIdle,
		phase: clock.NewSlot(sched, "phase"),
	}
	s.stats = stats.NewEngine(sched, rules.Stats, stats.Hooks{
		Paused:  s.drainPaused,
		Changed: s.statChanged,
		Alert:   s.statAlert,
		Rested:  s.rested,
	})
	return s
}

func (s *Session) logf(format string, args ...any) {
	log.Printf("[pet %s] "+format, append([]any{s.ID[:8]}, args...)...)
}

// Start shows the pet in its idle pose and starts every drain. Calling it
// again is a no-op.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.playClip(creature.ClipIdle, creature.LoopRepeat, 0)
	for _, k := range stats.Kinds {
		s.stats.StartDrain(k)
	}
	s.updateControls()
	s.updateEnergyBar()
	s.setState(StateIdle, false)
	s.logf("ready, drains active")
}

// Close stops every timer the session owns.
func (s *Session) Close() {
	s.phase.Stop()
	s.phaseDone = nil
	s.stats.StopAll()
}

// Advance moves session time forward, firing due timers.
func (s *Session) Advance(now time.Time) {
	s.sched.Advance(now)
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Busy reports whether a timed phase is in flight.
func (s *Session) Busy() bool {
	return s.busy
}

// Stats exposes the stat engine for read-only queries.
func (s *Session) Stats() *stats.Engine {
	return s.stats
}

// Snapshot returns a copy of the current state for display.
func (s *Session) Snapshot() Snapshot {
	energy := s.stats.Value(stats.Energy)
	anger := s.stats.Value(stats.Anger)
	happiness := s.stats.Value(stats.Happiness)
	return Snapshot{
		ID:        s.ID,
		State:     s.state,
		Busy:      s.busy,
		Energy:    energy,
		Anger:     anger,
		Happiness: happiness,
		Warnings: Warnings{
			AngerLow:     anger <= s.rules.Stats.Anger.AlertThreshold,
			EnergyLow:    energy <= s.rules.Stats.Energy.AlertThreshold,
			EnergyFull:   energy >= FullEnergyWarning,
			HappinessLow: happiness <= s.rules.Stats.Happiness.AlertThreshold,
		},
	}
}

// Request asks for a transition. It returns nil when the transition was
// accepted and a *TransitionError otherwise; a rejected request changes
// nothing except possibly showing an alert.
func (s *Session) Request(a Action) error {
	s.logf("transition request: %s -> %s (busy=%t)", s.state, a, s.busy)
	energy := s.stats.Value(stats.Energy)

	switch {
	case a == ActionWakeup && s.state != StateSleeping && s.state != StateSleepingTransition:
		return s.reject(a, ErrInvalidTransition)

	case (a == ActionPunch || a == ActionPlay) && (s.state == StateSleeping || s.state == StateSleepingTransition):
		s.alert(AlertSleeping)
		return s.reject(a, ErrSleeping)

	case a == ActionWakeup:
		// waking is allowed even while the sleep settle is in flight

	case s.busy:
		return s.reject(a, ErrBusy)

	case s.state != StateIdle:
		return s.reject(a, ErrInvalidTransition)

	case (a == ActionPunch || a == ActionPlay) && energy <= s.rules.TiredEnergy:
		s.alert(AlertTired)
		s.stopCurrentAction()
		return s.reject(a, ErrTired)

	case a == ActionSleep && energy >= s.rules.SleepyEnergy:
		s.alert(AlertNotTired)
		return s.reject(a, ErrNotTired)
	}

	switch a {
	case ActionPunch:
		s.beginAction(StatePunching, creature.ClipPunch, s.rules.PunchEnergyCost, stats.Anger, s.rules.PunchAngerGain, s.rules.PunchDuration)
	case ActionPlay:
		s.beginAction(StatePlaying, creature.ClipPlay, s.rules.PlayEnergyCost, stats.Happiness, s.rules.PlayHappyGain, s.rules.PlayDuration)
	case ActionSleep:
		s.beginSleep()
	case ActionWakeup:
		s.beginWakeup()
	}
	return nil
}

func (s *Session) reject(a Action, err error) error {
	s.logf("rejected %s from %s: %v", a, s.state, err)
	return &TransitionError{From: s.state, Action: a, Err: err}
}

// beginAction runs punch or play: pay the energy cost, hold the reward stat's
// drain, play the clip for its duration, then grant the reward.
func (s *Session) beginAction(state State, clip creature.Clip, cost float64, reward stats.Kind, gain float64, d time.Duration) {
	s.setState(state, true)
	s.stats.Adjust(stats.Energy, -cost)
	s.stats.StopDrain(reward)
	s.playClip(clip, creature.LoopRepeat, s.rules.CrossfadeBlend)

	s.beginPhase(clip, state, d, func() {
		s.playClip(creature.ClipIdle, creature.LoopRepeat, s.rules.CrossfadeBlend)
		s.setState(StateIdle, false)
		s.stats.Recover(reward, gain)
		s.updateControls()
		s.updateEnergyBar()
		s.logf("%s finished, back to idle", clip)
	})
}

func (s *Session) beginSleep() {
	s.stats.StopDrain(stats.Energy)
	s.logf("energy snapshot before sleep: %.2f%%", s.stats.Value(stats.Energy))

	s.playClip(creature.ClipSleep, creature.LoopOnce, s.rules.CrossfadeBlend)
	s.setState(StateSleepingTransition, true)
	s.updateControls()

	s.beginPhase(creature.ClipSleep, StateSleepingTransition, s.rules.SleepSettle, func() {
		s.setState(StateSleeping, false)
		s.stats.StartSleepRecovery()
		s.updateEnergyBar()
		s.updateControls()
	})
}

func (s *Session) beginWakeup() {
	s.cancelPhase()
	s.stats.StopSleepRecovery()
	s.stats.StopDrain(stats.Energy)

	s.setState(StateWakeup, true)
	s.updateControls()
	s.playClip(creature.ClipWakeup, creature.LoopOnce, s.rules.CrossfadeBlend)

	// The bar holds still while the wakeup clip plays.
	s.suppressBar = true

	s.beginPhase(creature.ClipWakeup, StateWakeup, s.rules.WakeupDuration, func() {
		s.suppressBar = false
		s.updateEnergyBar()
		s.playClip(creature.ClipIdle, creature.LoopRepeat, s.rules.CrossfadeBlend)
		s.setState(StateIdle, false)
		s.updateControls()
		s.stats.StartDrain(stats.Energy)
		s.logf("wakeup complete, energy %.2f%%", s.stats.Value(stats.Energy))
	})
}

// beginPhase arms the phase channel. When it fires the session must still
// be in want; otherwise a newer transition has taken over and the callback
// is dropped.
func (s *Session) beginPhase(clip creature.Clip, want State, d time.Duration, done func()) {
	s.phaseClip = clip
	s.phaseState = want
	s.phaseDone = done
	s.phase.After(d, s.finishPhase)
}

func (s *Session) finishPhase() {
	done, want := s.phaseDone, s.phaseState
	s.phaseDone = nil
	s.phaseClip = ""
	if done == nil {
		return
	}
	if s.state != want {
		s.logf("stale %s phase ignored, state is %s", want, s.state)
		return
	}
	done()
}

func (s *Session) cancelPhase() {
	s.phase.Stop()
	s.phaseDone = nil
	s.phaseClip = ""
}

// ClipFinished reports that a clip actually finished playing. If it is the
// clip the current phase is waiting on, the phase ends now instead of at its
// fixed deadline.
func (s *Session) ClipFinished(clip creature.Clip) {
	if s.phaseDone == nil || clip != s.phaseClip {
		return
	}
	s.phase.Stop()
	s.finishPhase()
}

// stopCurrentAction cuts whatever clip is playing and holds the idle pose.
func (s *Session) stopCurrentAction() {
	s.out.PlayClip(creature.ClipIdle, PlayOptions{
		Loop:  creature.LoopRepeat,
		From:  s.currentClip,
		Blend: s.rules.MicroBlend,
		Hold:  true,
	})
	s.currentClip = creature.ClipIdle
	s.setState(StateIdle, s.busy)
}

// setState moves the state machine and republishes the snapshot, since the
// status line reads state from it.
func (s *Session) setState(state State, busy bool) {
	s.state = state
	s.busy = busy
	s.out.ShowStats(s.Snapshot())
}

func (s *Session) playClip(clip creature.Clip, loop creature.Loop, blend time.Duration) {
	opts := PlayOptions{Loop: loop, Blend: blend}
	if s.currentClip != "" && s.currentClip != clip {
		opts.From = s.currentClip
	} else {
		opts.Blend = 0
	}
	s.out.PlayClip(clip, opts)
	s.currentClip = clip
}

func (s *Session) alert(kind AlertKind) {
	def := GetAlertDefinition(kind)
	s.out.ShowAlert(def.Message, s.rules.AlertDuration, def.Severity)
}

func (s *Session) drainPaused(k stats.Kind) bool {
	if s.state.Asleep() {
		return true
	}
	return k == stats.Energy && s.busy
}

func (s *Session) statChanged(k stats.Kind, _ float64) {
	if k == stats.Energy {
		s.updateEnergyBar()
	}
	s.out.ShowStats(s.Snapshot())
}

func (s *Session) statAlert(k stats.Kind) {
	s.alert(thresholdAlert(k))
	if k == stats.Energy {
		s.stopCurrentAction()
	}
}

func (s *Session) rested() {
	if err := s.Request(ActionWakeup); err != nil {
		s.logf("automatic wakeup failed: %v", err)
	}
}

func (s *Session) updateEnergyBar() {
	if s.suppressBar {
		return
	}
	v := s.stats.Value(stats.Energy)
	s.out.SetEnergyBar(v/stats.MaxValue, s.energyBand(v))
}

func (s *Session) energyBand(v float64) Band {
	switch {
	case s.state == StateSleeping:
		return BandSleeping
	case v > HighEnergyBand:
		return BandHigh
	case v > MediumEnergyBand:
		return BandMedium
	default:
		return BandLow
	}
}

func (s *Session) updateControls() {
	switch s.state {
	case StateSleeping:
		s.out.SetControlVisibility(false, true)
	case StateWakeup:
		s.out.SetControlVisibility(false, false)
	default:
		s.out.SetControlVisibility(true, false)
	}
}
