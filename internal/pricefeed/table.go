package pricefeed

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"currency-swap/internal/domain"
)

// Table is an immutable-per-fetch mapping of currency to its latest
// price observation. Keys are unique; iteration order is the order
// currencies were first seen in the feed, which also drives the
// default selection.
type Table struct {
	entries map[string]domain.PriceEntry
	order   []string
}

// dateLayouts are the timestamp formats the feed has been observed to
// use. Entries whose date parses with none of them sort as
// earliest-possible and never displace a valid observation.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Ingest builds a table from raw feed entries. For each currency the
// entry with the strictly latest date wins; ties keep the earlier
// arrival. Entries with an empty currency or a non-positive price are
// dropped.
func Ingest(raw []RawEntry) *Table {
	t := &Table{entries: make(map[string]domain.PriceEntry, len(raw))}
	for _, r := range raw {
		if r.Currency == "" || r.Price <= 0 {
			continue
		}
		observed := parseDate(r.Date)
		existing, seen := t.entries[r.Currency]
		if !seen {
			t.order = append(t.order, r.Currency)
		} else if !observed.After(existing.ObservedAt) {
			continue
		}
		t.entries[r.Currency] = domain.PriceEntry{
			Currency:   r.Currency,
			Price:      decimal.NewFromFloat(r.Price),
			ObservedAt: observed,
		}
	}
	return t
}

// parseDate returns the zero time for unparseable dates.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Lookup returns the entry for a currency.
func (t *Table) Lookup(currency string) (domain.PriceEntry, bool) {
	e, ok := t.entries[currency]
	return e, ok
}

// Has reports whether the currency is present.
func (t *Table) Has(currency string) bool {
	_, ok := t.entries[currency]
	return ok
}

// Len returns the number of distinct currencies.
func (t *Table) Len() int {
	return len(t.order)
}

// Currencies returns all currencies in first-seen order.
func (t *Table) Currencies() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Filter returns currencies containing query as a case-insensitive
// substring, in first-seen order. An empty query returns everything.
func (t *Table) Filter(query string) []string {
	if query == "" {
		return t.Currencies()
	}
	q := strings.ToLower(query)
	var out []string
	for _, c := range t.order {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

// DefaultPair returns the first and second currencies in discovery
// order. With a single currency both sides get it; with none the pair
// is empty.
func (t *Table) DefaultPair() domain.SelectionPair {
	switch len(t.order) {
	case 0:
		return domain.SelectionPair{}
	case 1:
		return domain.SelectionPair{From: t.order[0], To: t.order[0]}
	default:
		return domain.SelectionPair{From: t.order[0], To: t.order[1]}
	}
}
