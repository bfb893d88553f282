package clock

import "time"

// Slot owns at most one live timer for a named channel (a stat ticker, an
// animation phase). Arming a slot always vacates its previous timer first, so
// a superseded callback can never fire after a newer one was armed.
type Slot struct {
	name  string
	sched *Scheduler
	h     Handle
}

// NewSlot binds a slot to a scheduler.
func NewSlot(s *Scheduler, name string) Slot {
	return Slot{name: name, sched: s}
}

// Name returns the channel name.
func (sl *Slot) Name() string {
	return sl.name
}

// After arms a one-shot timer. The slot is vacated before fn runs, so fn may
// re-arm it.
func (sl *Slot) After(d time.Duration, fn func()) {
	sl.Stop()
	var h Handle
	h = sl.sched.After(d, func() {
		if sl.h == h {
			sl.h = 0
		}
		fn()
	})
	sl.h = h
}

// Every arms a periodic timer.
func (sl *Slot) Every(interval time.Duration, fn func()) {
	sl.Stop()
	sl.h = sl.sched.Every(interval, fn)
}

// Stop cancels the live timer, if any, and reports whether there was one.
func (sl *Slot) Stop() bool {
	if sl.h == 0 {
		return false
	}
	h := sl.h
	sl.h = 0
	return sl.sched.Cancel(h)
}

// Active reports whether the slot holds a live timer.
func (sl *Slot) Active() bool {
	return sl.h != 0 && sl.sched.Active(sl.h)
}
