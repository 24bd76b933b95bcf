package domain

// ConversionResult is the published outcome of a conversion round
// trip. OutputAmount is a fixed-precision display string; it resets
// to ZeroDisplay whenever the inputs become empty or invalid.
type ConversionResult struct {
	OutputAmount string `json:"outputAmount"`
	IsPending    bool   `json:"isPending"`
}

// EmptyResult is the placeholder result shown before any conversion.
func EmptyResult() ConversionResult {
	return ConversionResult{OutputAmount: ZeroDisplay}
}
