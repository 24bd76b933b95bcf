// Package amount normalizes and validates raw text typed into the
// amount field.
package amount

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"currency-swap/internal/domain"
)

// inputPattern is the only shape the field ever holds: digits, at
// most one dot, or nothing.
var inputPattern = regexp.MustCompile(`^\d*\.?\d*$`)

var maxAmount = decimal.NewFromInt(domain.MaxAmount)

// Validate filters and validates the next raw value. Input that does
// not match the pattern is rejected by returning the previous state
// unchanged, so a stray character simply does not land in the field.
//
// Accepted input is never truncated. An integer part above the
// maximum or a fractional part above the decimal limit keeps the raw
// text editable and flags the error; submission stays disabled until
// the user fixes it.
func Validate(prev domain.AmountState, raw string) domain.AmountState {
	if !inputPattern.MatchString(raw) {
		return prev
	}
	if raw == "" {
		return domain.AmountState{}
	}

	next := domain.AmountState{Raw: raw}

	intPart, fracPart, _ := strings.Cut(raw, ".")
	if intPart != "" {
		if v, err := decimal.NewFromString(intPart); err == nil && v.GreaterThan(maxAmount) {
			next.ErrorKind = domain.AmountErrMaxValue
			return next
		}
	}
	if len(fracPart) > domain.MaxDecimalPlaces {
		next.ErrorKind = domain.AmountErrTooManyDecimals
		return next
	}

	// A lone "." matches the pattern but carries no value yet.
	if v, err := decimal.NewFromString(raw); err == nil {
		next.Normalized = v
		next.HasValue = true
	}
	return next
}

// FromDisplay installs a programmatically derived amount, such as the
// old output becoming the new input during a reversal. The keystroke
// filter and the input bounds apply only to typed text; a value the
// widget itself produced is taken as-is.
func FromDisplay(raw string) domain.AmountState {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.AmountState{}
	}
	return domain.AmountState{Raw: raw, Normalized: v, HasValue: true}
}
