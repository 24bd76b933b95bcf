package domain

// Side identifies one of the two currency selectors.
type Side string

// Selector sides.
const (
	SideFrom Side = "from"
	SideTo   Side = "to"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideFrom {
		return SideTo
	}
	return SideFrom
}

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideFrom || s == SideTo
}

// SelectionPair holds the currently selected source and target
// currencies. Empty strings mean "not yet selected".
type SelectionPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Get returns the currency selected on the given side.
func (p SelectionPair) Get(side Side) string {
	if side == SideFrom {
		return p.From
	}
	return p.To
}

// Set returns a copy of the pair with the given side replaced.
func (p SelectionPair) Set(side Side, currency string) SelectionPair {
	if side == SideFrom {
		p.From = currency
	} else {
		p.To = currency
	}
	return p
}

// Swapped returns the pair with from and to exchanged.
func (p SelectionPair) Swapped() SelectionPair {
	return SelectionPair{From: p.To, To: p.From}
}

// Complete reports whether both sides are selected.
func (p SelectionPair) Complete() bool {
	return p.From != "" && p.To != ""
}

// SelectorPhase is the lifecycle phase of a dropdown selector.
// Closing is a timed transient that exists only so the display layer
// can run an exit animation; for all decision logic it is equivalent
// to Closed with the selected value already committed.
type SelectorPhase string

// Selector phases.
const (
	SelectorClosed  SelectorPhase = "closed"
	SelectorOpen    SelectorPhase = "open"
	SelectorClosing SelectorPhase = "closing"
)
