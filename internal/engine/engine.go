// Package engine runs the conversion round trip: a single
// Idle→Pending→Idle cycle per submit or reversal, with the processing
// delay modeled as an explicit scheduled task.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"currency-swap/internal/domain"
	"currency-swap/internal/rates"
	"currency-swap/internal/sched"
)

// Phase is the engine's lifecycle phase.
type Phase string

// Engine phases. There is no queue: a submit while Pending is ignored.
const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
)

// Config holds the engine's delay intervals.
type Config struct {
	// ConvertDelay is the simulated processing interval for a submit.
	ConvertDelay time.Duration
	// ReverseStepDelay is the length of each of the two reversal
	// phases: commit the swap, then recompute.
	ReverseStepDelay time.Duration
}

// DefaultConfig returns the stock delay intervals.
func DefaultConfig() Config {
	return Config{
		ConvertDelay:     1000 * time.Millisecond,
		ReverseStepDelay: 250 * time.Millisecond,
	}
}

// Engine owns the published ConversionResult and the pending phase.
// It is not self-locking: the owning controller serializes direct
// calls and routes timer callbacks through the dispatcher.
type Engine struct {
	clock    sched.Clock
	dispatch sched.Dispatch
	cfg      Config

	phase  Phase
	gen    int
	result domain.ConversionResult
}

// New creates an idle engine publishing the zero placeholder.
func New(clock sched.Clock, dispatch sched.Dispatch, config *Config) *Engine {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	return &Engine{
		clock:    clock,
		dispatch: dispatch,
		cfg:      cfg,
		phase:    PhaseIdle,
		result:   domain.EmptyResult(),
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Pending reports whether a round trip is in flight.
func (e *Engine) Pending() bool {
	return e.phase == PhasePending
}

// Result returns the currently published result.
func (e *Engine) Result() domain.ConversionResult {
	return e.result
}

// Convert starts a conversion round trip for an already validated
// amount and derived rate. It reports false without touching any
// state when a round trip is already pending; the duplicate submit is
// dropped, not queued.
func (e *Engine) Convert(normalized, rate decimal.Decimal) bool {
	if e.phase == PhasePending {
		return false
	}
	e.phase = PhasePending
	e.result.IsPending = true
	e.gen++
	gen := e.gen

	e.clock.AfterFunc(e.cfg.ConvertDelay, func() {
		e.dispatch.Do(func() {
			if gen != e.gen || e.phase != PhasePending {
				return
			}
			e.result = domain.ConversionResult{
				OutputAmount: rates.Format(normalized.Mul(rate)),
			}
			e.phase = PhaseIdle
		})
	})
	return true
}

// Reverse runs the two-phase currency swap. After the first phase
// delay, swap commits the pair exchange and the amount move and
// returns the new input amount plus the rate for the reversed pair;
// after the second, the result is recomputed from those and
// published. When swap reports no usable rate the previous output is
// kept. Reports false while a round trip is pending.
func (e *Engine) Reverse(swap func() (newInput, rate decimal.Decimal, ok bool)) bool {
	if e.phase == PhasePending {
		return false
	}
	e.phase = PhasePending
	e.result.IsPending = true
	e.gen++
	gen := e.gen

	e.clock.AfterFunc(e.cfg.ReverseStepDelay, func() {
		e.dispatch.Do(func() {
			if gen != e.gen || e.phase != PhasePending {
				return
			}
			newInput, rate, ok := swap()
			e.clock.AfterFunc(e.cfg.ReverseStepDelay, func() {
				e.dispatch.Do(func() {
					if gen != e.gen || e.phase != PhasePending {
						return
					}
					if ok {
						e.result = domain.ConversionResult{
							OutputAmount: rates.Format(newInput.Mul(rate)),
						}
					} else {
						e.result.IsPending = false
					}
					e.phase = PhaseIdle
				})
			})
		})
	})
	return true
}

// Recompute synchronously replaces the published output, used when a
// currency pick re-derives it without a pending interval. No-op while
// a round trip is in flight.
func (e *Engine) Recompute(normalized, rate decimal.Decimal) {
	if e.phase == PhasePending {
		return
	}
	e.result = domain.ConversionResult{
		OutputAmount: rates.Format(normalized.Mul(rate)),
	}
}

// Reset returns the published result to the zero placeholder, for
// when the inputs become empty or invalid. No-op while pending.
func (e *Engine) Reset() {
	if e.phase == PhasePending {
		return
	}
	e.result = domain.EmptyResult()
}
