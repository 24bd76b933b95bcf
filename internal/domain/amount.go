package domain

import "github.com/shopspring/decimal"

// Input bounds for user-entered amounts.
const (
	// MaxAmount is the largest accepted integer part.
	MaxAmount = 10000

	// MaxDecimalPlaces is the largest accepted fractional length.
	MaxDecimalPlaces = 8
)

// AmountErrorKind classifies a validation failure on the entered
// amount. Validation outcomes are values, not errors: the raw text is
// kept for editing and the kind disables submission.
type AmountErrorKind string

// Amount error kinds.
const (
	AmountErrNone            AmountErrorKind = ""
	AmountErrMaxValue        AmountErrorKind = "MAX_VALUE_EXCEEDED"
	AmountErrTooManyDecimals AmountErrorKind = "TOO_MANY_DECIMALS"
)

// AmountState is the validated form of the raw amount input.
// Raw always matches ^\d*\.?\d*$. Normalized is set only when
// ErrorKind is AmountErrNone and the raw text parses to a value;
// an empty raw string is the "not yet entered" state, distinct from
// an explicit zero.
type AmountState struct {
	Raw        string          `json:"raw"`
	Normalized decimal.Decimal `json:"-"`
	HasValue   bool            `json:"hasValue"`
	ErrorKind  AmountErrorKind `json:"errorKind,omitempty"`
}

// Valid reports whether the amount can feed a conversion.
func (a AmountState) Valid() bool {
	return a.ErrorKind == AmountErrNone && a.HasValue
}
