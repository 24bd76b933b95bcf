package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"currency-swap/internal/domain"
)

func TestValidate_RejectsNonDecimalInput(t *testing.T) {
	prev := Validate(domain.AmountState{}, "12")

	for _, raw := range []string{"12a", "1.2.3", "-5", "1,5", " 12", "12 "} {
		got := Validate(prev, raw)
		assert.Equal(t, prev, got, "input %q must leave prior state unchanged", raw)
	}
	assert.Equal(t, "12", prev.Raw)
}

func TestValidate_EmptyIsNotYetEntered(t *testing.T) {
	got := Validate(Validate(domain.AmountState{}, "12"), "")

	assert.Equal(t, domain.AmountErrNone, got.ErrorKind)
	assert.Empty(t, got.Raw)
	assert.False(t, got.HasValue)
	assert.False(t, got.Valid())
}

func TestValidate_MaxValueExceeded(t *testing.T) {
	got := Validate(domain.AmountState{}, "10001")

	assert.Equal(t, domain.AmountErrMaxValue, got.ErrorKind)
	// Accept-and-flag: the raw text is kept for editing, never truncated.
	assert.Equal(t, "10001", got.Raw)
	assert.False(t, got.Valid())

	atLimit := Validate(domain.AmountState{}, "10000")
	assert.Equal(t, domain.AmountErrNone, atLimit.ErrorKind)
	assert.True(t, atLimit.Valid())
}

func TestValidate_MaxValueExceeded_HugeInteger(t *testing.T) {
	got := Validate(domain.AmountState{}, "99999999999999999999")
	assert.Equal(t, domain.AmountErrMaxValue, got.ErrorKind)
}

func TestValidate_TooManyDecimals(t *testing.T) {
	got := Validate(domain.AmountState{}, "1.123456789")

	assert.Equal(t, domain.AmountErrTooManyDecimals, got.ErrorKind)
	assert.Equal(t, "1.123456789", got.Raw)
	assert.False(t, got.Valid())

	atLimit := Validate(domain.AmountState{}, "1.12345678")
	assert.Equal(t, domain.AmountErrNone, atLimit.ErrorKind)
	assert.True(t, atLimit.Valid())
}

func TestValidate_ErrorOrder(t *testing.T) {
	// Both bounds violated: the max-value check runs first.
	got := Validate(domain.AmountState{}, "10001.123456789")
	assert.Equal(t, domain.AmountErrMaxValue, got.ErrorKind)
}

func TestValidate_PartialDecimals(t *testing.T) {
	dot := Validate(domain.AmountState{}, ".")
	assert.Equal(t, domain.AmountErrNone, dot.ErrorKind)
	assert.False(t, dot.HasValue, "a lone dot has no value yet")

	leading := Validate(domain.AmountState{}, ".5")
	assert.True(t, leading.Valid())
	assert.Equal(t, "0.5", leading.Normalized.String())

	trailing := Validate(domain.AmountState{}, "5.")
	assert.True(t, trailing.Valid())
	assert.Equal(t, "5", trailing.Normalized.String())
}

func TestValidate_NormalizedOnlyWhenClean(t *testing.T) {
	got := Validate(domain.AmountState{}, "10001")
	assert.False(t, got.HasValue, "normalized must not be set while an error is flagged")
}

func TestFromDisplay_BypassesTypedBounds(t *testing.T) {
	got := FromDisplay("82296.500")
	assert.True(t, got.Valid(), "a widget-produced value is not bounded like typed input")
	assert.Equal(t, domain.AmountErrNone, got.ErrorKind)
	assert.Equal(t, "82296.5", got.Normalized.String())

	assert.False(t, FromDisplay("not-a-number").HasValue)
}
