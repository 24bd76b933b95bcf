package selector

import (
	"time"

	"currency-swap/internal/sched"
)

// DefaultSearchDebounce is how long after the last keystroke the
// filter query is applied.
const DefaultSearchDebounce = 300 * time.Millisecond

// SearchSession is the debounced filter shared by whichever selector
// is open. A new keystroke resets the timer; while a keystroke is
// outstanding the list is in its Searching display state. The session
// never touches the committed selection.
type SearchSession struct {
	clock    sched.Clock
	dispatch sched.Dispatch
	debounce time.Duration

	applied   string
	pending   string
	searching bool
	gen       int
}

// NewSearchSession creates an idle session.
func NewSearchSession(clock sched.Clock, dispatch sched.Dispatch, debounce time.Duration) *SearchSession {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &SearchSession{clock: clock, dispatch: dispatch, debounce: debounce}
}

// Query returns the applied filter query.
func (s *SearchSession) Query() string {
	return s.applied
}

// Searching reports whether a keystroke is waiting out the debounce.
func (s *SearchSession) Searching() bool {
	return s.searching
}

// SetQuery records a keystroke and restarts the debounce window.
func (s *SearchSession) SetQuery(query string) {
	s.pending = query
	s.searching = true
	s.gen++
	gen := s.gen

	s.clock.AfterFunc(s.debounce, func() {
		s.dispatch.Do(func() {
			if gen != s.gen {
				return
			}
			s.applied = s.pending
			s.searching = false
		})
	})
}

// Reset clears the session, invalidating any outstanding debounce.
// Runs on every selector open so each session starts unfiltered.
func (s *SearchSession) Reset() {
	s.gen++
	s.applied = ""
	s.pending = ""
	s.searching = false
}
