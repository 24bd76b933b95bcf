// Package selector governs the two currency dropdowns. Each side is
// a small Closed/Open/Closing machine; the pair enforces that at most
// one side is ever away from Closed, and that opening one side first
// queues the other side's close.
package selector

import (
	"time"

	"currency-swap/internal/domain"
	"currency-swap/internal/sched"
)

// Config holds the selector delay intervals.
type Config struct {
	// CloseDelay is how long a side stays in Closing so the display
	// layer can run its exit animation.
	CloseDelay time.Duration
}

// DefaultConfig returns the stock close delay.
func DefaultConfig() Config {
	return Config{CloseDelay: 300 * time.Millisecond}
}

// Pair tracks both selector sides. Like the engine it is not
// self-locking; the owning controller serializes calls and timer
// callbacks run through the dispatcher.
//
// Every delayed "finalize close" carries the generation it was
// scheduled under and no-ops if the side has moved on since, so a
// reopen racing an in-flight close timer is safe.
type Pair struct {
	clock    sched.Clock
	dispatch sched.Dispatch
	cfg      Config
	onOpen   func(domain.Side)
	onClose  func(domain.Side)

	phase       map[domain.Side]domain.SelectorPhase
	gen         map[domain.Side]int
	pendingOpen domain.Side
}

// NewPair creates a pair with both sides closed. onOpen, if non-nil,
// runs whenever a side enters Open (the controller uses it to reset
// the search session).
func NewPair(clock sched.Clock, dispatch sched.Dispatch, config *Config, onOpen func(domain.Side)) *Pair {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	return &Pair{
		clock:    clock,
		dispatch: dispatch,
		cfg:      cfg,
		onOpen:   onOpen,
		phase: map[domain.Side]domain.SelectorPhase{
			domain.SideFrom: domain.SelectorClosed,
			domain.SideTo:   domain.SelectorClosed,
		},
		gen: map[domain.Side]int{},
	}
}

// OnClose registers fn to run whenever a side leaves Open, whether by
// toggle, pick or dismiss.
func (p *Pair) OnClose(fn func(domain.Side)) {
	p.onClose = fn
}

// Phase returns the given side's phase.
func (p *Pair) Phase(side domain.Side) domain.SelectorPhase {
	return p.phase[side]
}

// AnyActive reports whether either side is Open or Closing.
func (p *Pair) AnyActive() bool {
	return p.phase[domain.SideFrom] != domain.SelectorClosed ||
		p.phase[domain.SideTo] != domain.SelectorClosed
}

// OpenSide returns the side currently Open, if any.
func (p *Pair) OpenSide() (domain.Side, bool) {
	for _, side := range []domain.Side{domain.SideFrom, domain.SideTo} {
		if p.phase[side] == domain.SelectorOpen {
			return side, true
		}
	}
	return "", false
}

// Toggle handles an activation click on a side: an Open side starts
// closing, a Closing side reopens, and a Closed side opens, first
// queuing the other side's close when that one is still up.
func (p *Pair) Toggle(side domain.Side) {
	switch p.phase[side] {
	case domain.SelectorOpen:
		p.pendingOpen = ""
		p.BeginClose(side)
	case domain.SelectorClosing:
		// Reopen before the close timer fires; bumping the generation
		// turns the in-flight finalize into a no-op.
		p.pendingOpen = ""
		p.open(side)
	default:
		other := side.Other()
		if p.phase[other] == domain.SelectorClosed {
			p.open(side)
			return
		}
		if p.phase[other] == domain.SelectorOpen {
			p.BeginClose(other)
		}
		p.pendingOpen = side
	}
}

// BeginClose moves an Open side into Closing and schedules the
// finalize. No-op unless the side is Open.
func (p *Pair) BeginClose(side domain.Side) {
	if p.phase[side] != domain.SelectorOpen {
		return
	}
	p.phase[side] = domain.SelectorClosing
	p.gen[side]++
	gen := p.gen[side]
	if p.onClose != nil {
		p.onClose(side)
	}

	p.clock.AfterFunc(p.cfg.CloseDelay, func() {
		p.dispatch.Do(func() {
			p.finalizeClose(side, gen)
		})
	})
}

// Dismiss closes whichever side is open (outside interaction) and
// drops any queued open.
func (p *Pair) Dismiss() {
	p.pendingOpen = ""
	if side, ok := p.OpenSide(); ok {
		p.BeginClose(side)
	}
}

func (p *Pair) open(side domain.Side) {
	p.phase[side] = domain.SelectorOpen
	p.gen[side]++
	if p.onOpen != nil {
		p.onOpen(side)
	}
}

func (p *Pair) finalizeClose(side domain.Side, gen int) {
	if p.gen[side] != gen || p.phase[side] != domain.SelectorClosing {
		return
	}
	p.phase[side] = domain.SelectorClosed
	if p.pendingOpen != "" {
		next := p.pendingOpen
		p.pendingOpen = ""
		p.open(next)
	}
}
