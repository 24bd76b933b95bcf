package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry is the latest observed price for a single currency.
// For a given currency only the entry with the most recent ObservedAt
// is retained by the table.
type PriceEntry struct {
	Currency   string          // ticker symbol, e.g. "ETH"
	Price      decimal.Decimal // strictly positive
	ObservedAt time.Time       // feed observation timestamp
}

// Display formatting constants shared by every component that renders
// an amount or a rate.
const (
	// DisplayPrecision is the fixed number of decimal places for
	// rendered amounts and rates.
	DisplayPrecision = 3

	// ZeroDisplay is the canonical placeholder for a zero or absent
	// output amount.
	ZeroDisplay = "0.0"
)
