package stats

import (
	"log"
	"math"
	"time"

	"vpet/internal/clock"
)

// Kind names one of the three stats.
type Kind int

const (
	Energy Kind = iota
	Anger
	Happiness
)

// Kinds lists every stat in display order.
var Kinds = []Kind{Energy, Anger, Happiness}

func (k Kind) String() string {
	switch k {
	case Energy:
		return "energy"
	case Anger:
		return "anger"
	case Happiness:
		return "happiness"
	default:
		return "unknown"
	}
}

// Track is one decaying stat.
type Track struct {
	Kind           Kind
	Value          float64
	DrainPerSecond float64
	AlertThreshold float64
	ResetThreshold float64
	AlertShown     bool

	// ticker carries the drain ticker, and for energy also the sleep
	// recovery ticker, so the two can never run together.
	ticker clock.Slot
}

// Hooks connect the engine to its owner. All hooks are optional.
type Hooks struct {
	// Paused reports whether a drain tick for k should be skipped.
	Paused func(k Kind) bool
	// Changed runs after every mutation of k.
	Changed func(k Kind, value float64)
	// Alert runs once per threshold-crossing episode.
	Alert func(k Kind)
	// Rested runs when sleep recovery has refilled energy.
	Rested func()
}

// SleepSession is the state of an in-progress sleep recovery.
type SleepSession struct {
	StartEnergy float64
	Duration    time.Duration
	PerTick     float64
	StartedAt   time.Time
	Ticks       int
	TotalTicks  int
}

// Engine owns the three stat tracks and their timers.
type Engine struct {
	sched  *clock.Scheduler
	cfg    Config
	hooks  Hooks
	tracks [3]*Track
	sleep  *SleepSession
}

// NewEngine creates an engine with every ticker stopped.
func NewEngine(s *clock.Scheduler, cfg Config, hooks Hooks) *Engine {
	e := &Engine{sched: s, cfg: cfg, hooks: hooks}
	for _, k := range Kinds {
		tc := cfg.Track(k)
		e.tracks[k] = &Track{
			Kind:           k,
			Value:          clamp(tc.Initial),
			DrainPerSecond: tc.DrainPerSecond,
			AlertThreshold: tc.AlertThreshold,
			ResetThreshold: tc.ResetThreshold,
			ticker:         clock.NewSlot(s, k.String()),
		}
	}
	return e
}

// Value returns the current value of k.
func (e *Engine) Value(k Kind) float64 {
	return e.tracks[k].Value
}

// AlertShown reports whether k's alert latch is set.
func (e *Engine) AlertShown(k Kind) bool {
	return e.tracks[k].AlertShown
}

// Draining reports whether k's drain ticker is live.
func (e *Engine) Draining(k Kind) bool {
	if k == Energy && e.sleep != nil {
		return false
	}
	return e.tracks[k].ticker.Active()
}

// Recovering reports whether sleep recovery is running.
func (e *Engine) Recovering() bool {
	return e.sleep != nil
}

// Sleep returns a copy of the current sleep session, if any.
func (e *Engine) Sleep() (SleepSession, bool) {
	if e.sleep == nil {
		return SleepSession{}, false
	}
	return *e.sleep, true
}

// StartDrain arms k's drain ticker, replacing whatever held the slot. For
// energy this also ends any sleep recovery.
func (e *Engine) StartDrain(k Kind) {
	t := e.tracks[k]
	if k == Energy {
		e.sleep = nil
	}
	step := t.DrainPerSecond * e.cfg.TickInterval.Seconds()
	t.ticker.Every(e.cfg.TickInterval, func() { e.drainTick(t, step) })
}

// StopDrain stops k's drain ticker. Stopping energy drain leaves a running
// sleep recovery alone.
func (e *Engine) StopDrain(k Kind) {
	if k == Energy && e.sleep != nil {
		return
	}
	if e.tracks[k].ticker.Stop() {
		log.Printf("[%s] drain stopped", k)
	}
}

// StopAll stops every ticker and drops any sleep session.
func (e *Engine) StopAll() {
	for _, t := range e.tracks {
		t.ticker.Stop()
	}
	e.sleep = nil
}

func (e *Engine) drainTick(t *Track, step float64) {
	if e.hooks.Paused != nil && e.hooks.Paused(t.Kind) {
		return
	}

	e.set(t, t.Value-step)

	if t.Value <= t.AlertThreshold && !t.AlertShown {
		t.AlertShown = true
		t.ticker.Stop()
		log.Printf("[%s] alert threshold reached at %.2f", t.Kind, t.Value)
		if e.hooks.Alert != nil {
			e.hooks.Alert(t.Kind)
		}
	}
}

// Adjust adds delta to k, clamping to [0,100].
func (e *Engine) Adjust(k Kind, delta float64) float64 {
	t := e.tracks[k]
	e.set(t, t.Value+delta)
	return t.Value
}

// Recover grants a one-off bonus to k and restarts its drain if it had
// stopped.
func (e *Engine) Recover(k Kind, amount float64) float64 {
	t := e.tracks[k]
	before := t.Value
	e.set(t, t.Value+amount)
	log.Printf("[%s] recovered %.2f -> %.2f", k, before, t.Value)

	if k == Energy && e.sleep != nil {
		return t.Value
	}
	if !t.ticker.Active() {
		e.StartDrain(k)
	}
	return t.Value
}

// set is the single mutation point: clamp, re-arm the alert latch, notify.
func (e *Engine) set(t *Track, v float64) {
	t.Value = clamp(v)
	if t.AlertShown && t.Value > t.ResetThreshold {
		t.AlertShown = false
	}
	if e.hooks.Changed != nil {
		e.hooks.Changed(t.Kind, t.Value)
	}
}

// StartSleepRecovery replaces energy drain with the sleep recovery ticker.
func (e *Engine) StartSleepRecovery() SleepSession {
	t := e.tracks[Energy]
	start := t.Value
	duration := e.cfg.RecoveryDuration(start)
	total := int(math.Ceil(float64(duration) / float64(e.cfg.TickInterval)))
	if total < 1 {
		total = 1
	}

	e.sleep = &SleepSession{
		StartEnergy: start,
		Duration:    duration,
		PerTick:     (MaxValue - start) / float64(total),
		StartedAt:   e.sched.Now(),
		TotalTicks:  total,
	}
	log.Printf("[sleep] recovering from %.2f%% to 100%% over %v", start, duration)

	t.ticker.Every(e.cfg.TickInterval, e.recoveryTick)
	return *e.sleep
}

func (e *Engine) recoveryTick() {
	s := e.sleep
	if s == nil {
		return
	}
	t := e.tracks[Energy]
	s.Ticks++

	// The last tick lands exactly on 100 whatever the float drift.
	if s.Ticks >= s.TotalTicks {
		e.set(t, MaxValue)
	} else {
		e.set(t, t.Value+s.PerTick)
	}

	if t.Value >= MaxValue {
		t.ticker.Stop()
		e.sleep = nil
		log.Printf("[sleep] full energy reached")
		if e.hooks.Rested != nil {
			e.hooks.Rested()
		}
	}
}

// StopSleepRecovery ends an early sleep. Energy is caught up to where the
// linear recovery curve would be at this moment, covering the part of a tick
// that had not fired yet. It returns the catch-up amount applied.
func (e *Engine) StopSleepRecovery() float64 {
	s := e.sleep
	if s == nil {
		return 0
	}
	t := e.tracks[Energy]
	t.ticker.Stop()
	e.sleep = nil

	elapsed := e.sched.Now().Sub(s.StartedAt)
	fraction := math.Min(float64(elapsed)/float64(s.Duration), 1)
	target := s.StartEnergy + (MaxValue-s.StartEnergy)*fraction

	bump := 0.0
	if target > t.Value {
		bump = target - t.Value
		e.set(t, target)
	}
	log.Printf("[sleep] recovery interrupted after %v, caught up %.2f -> energy %.2f", elapsed, bump, t.Value)
	return bump
}

func clamp(v float64) float64 {
	return math.Max(MinValue, math.Min(v, MaxValue))
}
