package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"currency-swap/internal/sched"
)

func newTestSearch() (*SearchSession, *sched.VirtualClock) {
	clock := sched.NewVirtualClock(epoch)
	return NewSearchSession(clock, nil, 0), clock
}

func TestSearch_DebouncedApply(t *testing.T) {
	s, clock := newTestSearch()

	s.SetQuery("et")
	assert.True(t, s.Searching())
	assert.Empty(t, s.Query(), "query applies only after the debounce")

	clock.Advance(300 * time.Millisecond)
	assert.False(t, s.Searching())
	assert.Equal(t, "et", s.Query())
}

func TestSearch_KeystrokeResetsTimer(t *testing.T) {
	s, clock := newTestSearch()

	s.SetQuery("e")
	clock.Advance(200 * time.Millisecond)
	s.SetQuery("et")
	clock.Advance(200 * time.Millisecond)

	// 400ms elapsed but only 200ms since the last keystroke.
	assert.True(t, s.Searching())
	assert.Empty(t, s.Query())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, "et", s.Query())
}

func TestSearch_ResetInvalidatesPendingKeystroke(t *testing.T) {
	s, clock := newTestSearch()

	s.SetQuery("btc")
	s.Reset()
	assert.False(t, s.Searching())

	clock.Advance(time.Second)
	assert.Empty(t, s.Query(), "a keystroke from before the reset must not apply")
}
