package sched

import (
	"sync"
	"time"
)

// VirtualClock is a manually advanced Clock for tests. Timers fire
// synchronously inside Advance, ordered by deadline and then by
// scheduling order, with Now reflecting each timer's own deadline
// while it runs.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*virtualTimer
}

// NewVirtualClock creates a virtual clock starting at the given time.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the current virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to fire once the clock advances past d.
func (c *VirtualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &virtualTimer{
		clock: c,
		when:  c.now.Add(d),
		seq:   c.seq,
		fn:    fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose
// deadline falls within the window. Callbacks may schedule further
// timers; those fire too if they land inside the same window.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.popDueLocked(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.when
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
}

// popDueLocked removes and returns the next timer due at or before
// target, or nil.
func (c *VirtualClock) popDueLocked(target time.Time) *virtualTimer {
	best := -1
	for i, t := range c.timers {
		if t.when.After(target) {
			continue
		}
		if best == -1 || t.before(c.timers[best]) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := c.timers[best]
	c.timers = append(c.timers[:best], c.timers[best+1:]...)
	return t
}

func (c *VirtualClock) remove(t *virtualTimer) bool {
	for i, cand := range c.timers {
		if cand == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

type virtualTimer struct {
	clock *VirtualClock
	when  time.Time
	seq   int
	fn    func()
}

func (t *virtualTimer) before(o *virtualTimer) bool {
	if !t.when.Equal(o.when) {
		return t.when.Before(o.when)
	}
	return t.seq < o.seq
}

// Stop cancels the timer if it has not fired yet.
func (t *virtualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.remove(t)
}

var _ Clock = (*VirtualClock)(nil)
