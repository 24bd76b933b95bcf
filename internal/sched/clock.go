// Package sched models the widget's delays as schedulable tasks.
// Every timed transition in the engine and the selectors goes through
// a Clock so tests can drive time deterministically instead of
// sleeping.
package sched

import "time"

// Timer is a scheduled one-shot task.
type Timer interface {
	// Stop cancels the task and reports whether it was still pending.
	Stop() bool
}

// Clock abstracts time for components with delayed transitions.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn to run once after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Dispatch serializes deferred work onto the owner's logical thread.
// Timer callbacks go through it so that delayed transitions and direct
// calls never interleave.
type Dispatch func(fn func())

// Do runs fn through the dispatcher, or directly when none is set.
func (d Dispatch) Do(fn func()) {
	if d == nil {
		fn()
		return
	}
	d(fn)
}

// RealClock is the wall-clock implementation.
type RealClock struct{}

// Now returns the current wall time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on a real timer.
func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() bool {
	return r.t.Stop()
}

var _ Clock = RealClock{}
