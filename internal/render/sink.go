// Package render defines the outbound boundary: immutable state
// snapshots pushed to a display layer, and the operation surface the
// display layer may call back through.
package render

import "currency-swap/internal/domain"

// Snapshot is the complete externally visible widget state. The
// display layer diffs and renders it; nothing in here is mutable
// shared state.
type Snapshot struct {
	Pair         domain.SelectionPair    `json:"pair"`
	Amount       domain.AmountState      `json:"amount"`
	Result       domain.ConversionResult `json:"result"`
	FromSelector domain.SelectorPhase    `json:"fromSelector"`
	ToSelector   domain.SelectorPhase    `json:"toSelector"`
	// Currencies is the selector list after the applied search filter,
	// in feed discovery order.
	Currencies []string `json:"currencies"`
	Searching  bool     `json:"searching"`
	// Rate is the display rate for the info line ("1 FROM = Rate TO"),
	// empty when either side is unselected or missing from the table.
	Rate string `json:"rate,omitempty"`
}

// Sink consumes published snapshots.
type Sink interface {
	Publish(snapshot Snapshot)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Snapshot)

// Publish calls f.
func (f SinkFunc) Publish(snapshot Snapshot) {
	f(snapshot)
}

// NopSink discards snapshots.
type NopSink struct{}

// Publish does nothing.
func (NopSink) Publish(Snapshot) {}

// Ops is the operation surface the display layer calls back through.
// Every call is a complete user action; invalid or ill-timed calls
// are no-ops on the other side.
type Ops interface {
	EditAmount(raw string)
	ToggleSelector(side domain.Side)
	Pick(side domain.Side, currency string)
	Reverse()
	Submit()
	Search(query string)
	DismissSelectors()
}
