package clock

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle   Handle
	at       time.Time
	every    time.Duration
	fn       func()
	seq      uint64
	canceled bool
	index    int
}

type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler is a virtual-time timer queue. Callbacks only run inside Advance,
// on the caller's goroutine, so a Scheduler must be used from one goroutine.
type Scheduler struct {
	now     time.Time
	seq     uint64
	nextID  Handle
	pending queue
	live    map[Handle]*entry
}

// New creates a scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		now:  start,
		live: make(map[Handle]*entry),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.schedule(d, 0, fn)
}

// Every runs fn each interval until canceled. The first run is one interval
// from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic("clock: non-positive interval")
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(d, every time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	e := &entry{
		handle: s.nextID,
		at:     s.now.Add(d),
		every:  every,
		fn:     fn,
		seq:    s.seq,
	}
	heap.Push(&s.pending, e)
	s.live[e.handle] = e
	return e.handle
}

// Cancel stops the timer identified by h. It reports whether the timer was
// still live.
func (s *Scheduler) Cancel(h Handle) bool {
	e, ok := s.live[h]
	if !ok {
		return false
	}
	e.canceled = true
	delete(s.live, h)
	if e.index >= 0 {
		heap.Remove(&s.pending, e.index)
	}
	return true
}

// Active reports whether h is scheduled and not canceled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Advance moves the clock to `to`, running every callback that falls due on
// the way in time order. Callbacks may schedule or cancel timers; new timers
// due before `to` run in the same call. It returns the number of callbacks run.
func (s *Scheduler) Advance(to time.Time) int {
	ran := 0
	for len(s.pending) > 0 {
		next := s.pending[0]
		if next.at.After(to) {
			break
		}
		heap.Pop(&s.pending)
		s.now = next.at

		if next.every > 0 {
			next.at = next.at.Add(next.every)
			s.seq++
			next.seq = s.seq
			heap.Push(&s.pending, next)
		} else {
			delete(s.live, next.handle)
		}

		next.fn()
		ran++
	}
	if to.After(s.now) {
		s.now = to
	}
	return ran
}

// AdvanceBy is Advance relative to the current time.
func (s *Scheduler) AdvanceBy(d time.Duration) int {
	return s.Advance(s.now.Add(d))
}

// CancelAll drops every live timer.
func (s *Scheduler) CancelAll() {
	for h := range s.live {
		s.Cancel(h)
	}
}
