// Package controller composes the widget core: it owns the selection
// pair, the amount state, the conversion engine and both selectors,
// and publishes an immutable snapshot to the render sink after every
// observable transition.
package controller

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"currency-swap/internal/amount"
	"currency-swap/internal/domain"
	"currency-swap/internal/engine"
	"currency-swap/internal/observability"
	"currency-swap/internal/pricefeed"
	"currency-swap/internal/rates"
	"currency-swap/internal/render"
	"currency-swap/internal/sched"
	"currency-swap/internal/selector"
)

// Options for creating a Controller.
type Options struct {
	// Source provides the upstream price feed. Required.
	Source pricefeed.Source
	// Sink receives published snapshots. Defaults to NopSink.
	Sink render.Sink
	// Clock drives the modeled delays. Defaults to the wall clock.
	Clock sched.Clock
	// Logger for recoverable conditions. Defaults to stderr.
	Logger *log.Logger

	// Engine and Selector override the stock delay intervals.
	Engine   *engine.Config
	Selector *selector.Config
	// SearchDebounce overrides the search debounce interval.
	SearchDebounce time.Duration
}

// Controller is the single owner of all mutable widget state. All
// work, direct calls and timer callbacks alike, runs serialized under
// one mutex, giving the same guarantees as a single-threaded event
// loop; the price table is shared read-only and only ever replaced
// wholesale.
type Controller struct {
	mu sync.Mutex

	source pricefeed.Source
	sink   render.Sink
	clock  sched.Clock
	logger *log.Logger

	store     *pricefeed.Store
	engine    *engine.Engine
	selectors *selector.Pair
	search    *selector.SearchSession

	pair domain.SelectionPair
	amt  domain.AmountState
}

// New creates a Controller. The initial state is empty: no table, no
// selection, placeholder output.
func New(opts Options) *Controller {
	c := &Controller{
		source: opts.Source,
		sink:   opts.Sink,
		clock:  opts.Clock,
		logger: opts.Logger,
		store:  pricefeed.NewStore(),
	}
	if c.sink == nil {
		c.sink = render.NopSink{}
	}
	if c.clock == nil {
		c.clock = sched.RealClock{}
	}
	if c.logger == nil {
		c.logger = log.New(os.Stderr, "[widget] ", log.LstdFlags)
	}

	dispatch := sched.Dispatch(c.run)

	c.engine = engine.New(c.clock, dispatch, opts.Engine)
	c.search = selector.NewSearchSession(c.clock, dispatch, opts.SearchDebounce)
	c.selectors = selector.NewPair(c.clock, dispatch, opts.Selector, func(domain.Side) {
		// Every selector open starts an unfiltered list.
		c.search.Reset()
	})
	c.selectors.OnClose(func(domain.Side) {
		// A close invalidates any debounce still in flight, so a stale
		// query cannot apply after the list is gone.
		c.search.Reset()
	})
	return c
}

// run serializes a state transition and publishes the resulting
// snapshot. Timer callbacks are dispatched through here too, so
// delayed transitions and direct calls never interleave; the publish
// itself happens outside the lock so a slow sink cannot stall one.
func (c *Controller) run(fn func()) {
	c.mu.Lock()
	fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.sink.Publish(snap)
}

// Refresh fetches the feed and replaces the price table. A fetch
// failure is logged and swallowed: the previous table (possibly
// empty) is retained and nothing is published. On success the default
// selection is applied to any side the user has not set yet.
func (c *Controller) Refresh(ctx context.Context) error {
	entries, err := c.source.Fetch(ctx)
	if err != nil {
		c.logger.Printf("feed refresh failed: %v", err)
		observability.RecordFeedFailure()
		return err
	}
	c.run(func() {
		table := pricefeed.Ingest(entries)
		c.store.Replace(table)
		observability.RecordFeedRefresh(table.Len())
		defaults := table.DefaultPair()
		if c.pair.From == "" {
			c.pair.From = defaults.From
		}
		if c.pair.To == "" {
			c.pair.To = defaults.To
		}
	})
	return nil
}

// EditAmount runs the amount text through the validator. Input that
// fails the decimal pattern leaves the previous state in place; an
// empty or flagged amount resets the output to the placeholder.
func (c *Controller) EditAmount(raw string) {
	c.run(func() {
		c.amt = amount.Validate(c.amt, raw)
		if c.amt.ErrorKind != domain.AmountErrNone {
			observability.RecordValidationError(string(c.amt.ErrorKind))
		}
		if !c.amt.Valid() {
			c.engine.Reset()
		}
	})
}

// ToggleSelector handles an activation click on a selector.
func (c *Controller) ToggleSelector(side domain.Side) {
	if !side.Valid() {
		return
	}
	c.run(func() {
		c.selectors.Toggle(side)
	})
}

// Pick commits a currency from an open selector list. The selection
// lands before the selector starts closing; when a validated amount
// is present the output is re-derived immediately, without a pending
// interval.
func (c *Controller) Pick(side domain.Side, currency string) {
	if !side.Valid() {
		return
	}
	c.run(func() {
		if c.selectors.Phase(side) != domain.SelectorOpen {
			return
		}
		table := c.store.Snapshot()
		if !table.Has(currency) {
			return
		}
		c.pair = c.pair.Set(side, currency)
		if c.amt.Valid() && !c.engine.Pending() {
			if rate, ok := rates.Rate(table, c.pair.From, c.pair.To); ok {
				c.engine.Recompute(c.amt.Normalized, rate)
			}
		}
		c.selectors.BeginClose(side)
	})
}

// Reverse swaps the selected currencies. The old output becomes the
// new input as a programmatic set, outside the typed-input bounds, and
// the output is recomputed against the reversed rate. A no-op while a
// conversion is pending or a selector is up.
func (c *Controller) Reverse() {
	c.run(func() {
		if c.engine.Pending() || c.selectors.AnyActive() {
			return
		}
		started := c.engine.Reverse(func() (decimal.Decimal, decimal.Decimal, bool) {
			c.pair = c.pair.Swapped()
			c.amt = amount.FromDisplay(c.engine.Result().OutputAmount)
			rate, ok := rates.Rate(c.store.Snapshot(), c.pair.From, c.pair.To)
			return c.amt.Normalized, rate, ok && c.amt.HasValue
		})
		if started {
			observability.RecordReversal()
		}
	})
}

// Submit triggers a conversion round trip. A no-op when a round trip
// is already pending, the amount is absent or flagged, either side is
// unselected, or the pair has no derivable rate.
func (c *Controller) Submit() {
	c.run(func() {
		if c.engine.Pending() || !c.amt.Valid() || !c.pair.Complete() {
			return
		}
		rate, ok := rates.Rate(c.store.Snapshot(), c.pair.From, c.pair.To)
		if !ok {
			return
		}
		if c.engine.Convert(c.amt.Normalized, rate) {
			observability.RecordConversion()
		}
	})
}

// Search records a filter keystroke for the open selector.
func (c *Controller) Search(query string) {
	c.run(func() {
		if _, ok := c.selectors.OpenSide(); !ok {
			return
		}
		c.search.SetQuery(query)
	})
}

// DismissSelectors closes any open selector, for interactions outside
// the activation region.
func (c *Controller) DismissSelectors() {
	c.run(func() {
		c.selectors.Dismiss()
	})
}

// Snapshot returns the current externally visible state without
// publishing it.
func (c *Controller) Snapshot() render.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked builds the published view. Caller holds mu.
func (c *Controller) snapshotLocked() render.Snapshot {
	table := c.store.Snapshot()
	snap := render.Snapshot{
		Pair:         c.pair,
		Amount:       c.amt,
		Result:       c.engine.Result(),
		FromSelector: c.selectors.Phase(domain.SideFrom),
		ToSelector:   c.selectors.Phase(domain.SideTo),
		Currencies:   table.Filter(c.search.Query()),
		Searching:    c.search.Searching(),
	}
	if rate, ok := rates.Rate(table, c.pair.From, c.pair.To); ok {
		snap.Rate = rates.Format(rate)
	}
	return snap
}

var _ render.Ops = (*Controller)(nil)
