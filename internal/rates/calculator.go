// Package rates derives display-ready exchange rates from the price
// table.
package rates

import (
	"github.com/shopspring/decimal"

	"currency-swap/internal/domain"
	"currency-swap/internal/pricefeed"
)

// rateScale bounds the internal division precision. Display rounding
// happens later in Format; the extra digits keep the reciprocal
// product rate(a,b)*rate(b,a) at 1 inside display rounding.
const rateScale = 16

// Rate returns how many units of to are obtained per unit of from.
// The second return value is false when either currency is empty or
// absent from the table; no rate can be derived then.
func Rate(table *pricefeed.Table, from, to string) (decimal.Decimal, bool) {
	if from == "" || to == "" {
		return decimal.Decimal{}, false
	}
	fromEntry, ok := table.Lookup(from)
	if !ok {
		return decimal.Decimal{}, false
	}
	toEntry, ok := table.Lookup(to)
	if !ok {
		return decimal.Decimal{}, false
	}
	return toEntry.Price.DivRound(fromEntry.Price, rateScale), true
}

// Format renders a value at the fixed display precision. Zero values
// collapse to the canonical placeholder.
func Format(v decimal.Decimal) string {
	if v.IsZero() {
		return domain.ZeroDisplay
	}
	return v.StringFixed(domain.DisplayPrecision)
}
