// Package clock provides the time sources that drive a game session: a
// deterministic timer scheduler for spawn triggers and delayed actions, and a
// frame clock that turns refresh timestamps into normalized delta times.
//
// Nothing in this package starts goroutines. Time only moves when the owner
// calls Advance, so every callback runs on the owner's goroutine in due-time
// order.
package clock

import (
	"time"
)

// Handle identifies a scheduled timer. The zero Handle never refers to a
// live timer, so it is safe to Cancel.
type Handle uint64

type timer struct {
	handle   Handle
	due      time.Time
	interval time.Duration // zero for one-shot timers
	fn       func()
}

// Scheduler fires one-shot and periodic callbacks against a virtual clock.
type Scheduler struct {
	now    time.Time
	next   Handle
	timers map[Handle]*timer
}

// NewScheduler creates a scheduler whose clock starts at the given time.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{
		now:    start,
		timers: make(map[Handle]*timer),
	}
}

// Now returns the scheduler's current time. While a callback runs this is
// the callback's due time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once, delay after the current time.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	return s.add(delay, 0, fn)
}

// Every schedules fn to run every interval, first after one interval.
// Non-positive intervals are treated as one nanosecond so Advance terminates.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) Handle {
	s.next++
	h := s.next
	s.timers[h] = &timer{
		handle:   h,
		due:      s.now.Add(delay),
		interval: interval,
		fn:       fn,
	}
	return h
}

// Cancel stops the timer. Cancelling an unknown, fired or already cancelled
// handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	delete(s.timers, h)
}

// Active reports whether the handle still refers to a pending timer.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock forward to now, firing every timer that falls due
// on the way. Timers fire in due order; ties fire in scheduling order.
// A periodic timer that missed several periods fires once and resumes on
// its first slot after now. Callbacks may schedule or cancel timers,
// including themselves. A time in the past leaves the clock where it is.
func (s *Scheduler) Advance(now time.Time) {
	for {
		t := s.earliest(now)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
			if !t.due.After(now) {
				missed := now.Sub(t.due)/t.interval + 1
				t.due = t.due.Add(missed * t.interval)
			}
		} else {
			delete(s.timers, t.handle)
		}
		t.fn()
	}
	if now.After(s.now) {
		s.now = now
	}
}

// earliest returns the next timer due at or before limit.
func (s *Scheduler) earliest(limit time.Time) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.handle < best.handle) {
			best = t
		}
	}
	return best
}
