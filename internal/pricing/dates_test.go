package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireReason(t *testing.T, err error, reason Reason) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, reason, verr.Reason)
}

func TestValidateStayDateOrder(t *testing.T) {
	s := DefaultSchedule()

	_, err := ValidateStay(s, testNow, date(2025, time.May, 12), date(2025, time.May, 10))
	requireReason(t, err, ReasonInvalidDateOrder)

	_, err = ValidateStay(s, testNow, date(2025, time.May, 10), date(2025, time.May, 10))
	requireReason(t, err, ReasonInvalidDateOrder)
}

func TestValidateStayMinNightsBoundary(t *testing.T) {
	s := DefaultSchedule() // MinNights 2

	_, err := ValidateStay(s, testNow, date(2025, time.May, 10), date(2025, time.May, 11))
	requireReason(t, err, ReasonBelowMinNights)

	stay, err := ValidateStay(s, testNow, date(2025, time.May, 10), date(2025, time.May, 12))
	require.NoError(t, err)
	assert.Equal(t, 2, stay.Nights)
}

func TestValidateStayMinAdvance(t *testing.T) {
	s := DefaultSchedule() // MinAdvanceDays 1, cutoff 18:00

	morning := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)

	// Same-day check-in is always too late.
	_, err := ValidateStay(s, morning, date(2025, time.May, 1), date(2025, time.May, 3))
	requireReason(t, err, ReasonBelowMinAdvance)

	// Tomorrow is fine before the cutoff hour.
	_, err = ValidateStay(s, morning, date(2025, time.May, 2), date(2025, time.May, 4))
	require.NoError(t, err)

	// At or after the cutoff hour "today" rolls forward, so tomorrow is too late.
	evening := time.Date(2025, time.May, 1, 18, 0, 0, 0, time.UTC)
	_, err = ValidateStay(s, evening, date(2025, time.May, 2), date(2025, time.May, 4))
	requireReason(t, err, ReasonBelowMinAdvance)

	_, err = ValidateStay(s, evening, date(2025, time.May, 3), date(2025, time.May, 5))
	require.NoError(t, err)
}

func TestValidateStaySpecialPeriod(t *testing.T) {
	s := DefaultSchedule() // Aug 11-25, Sunday turnover

	// 2025-08-17 is a Sunday inside the window; a Sunday-to-Wednesday stay
	// breaks the whole-week rule.
	_, err := ValidateStay(s, testNow, date(2025, time.August, 17), date(2025, time.August, 20))
	requireReason(t, err, ReasonSpecialPeriodViolation)

	// Sunday to Sunday, 7 nights: accepted.
	stay, err := ValidateStay(s, testNow, date(2025, time.August, 17), date(2025, time.August, 24))
	require.NoError(t, err)
	assert.Equal(t, 7, stay.Nights)

	// Two whole weeks are fine too.
	stay, err = ValidateStay(s, testNow, date(2025, time.August, 17), date(2025, time.August, 31))
	require.NoError(t, err)
	assert.Equal(t, 14, stay.Nights)

	// Right weekday but not a whole-week multiple.
	_, err = ValidateStay(s, testNow, date(2025, time.August, 17), date(2025, time.August, 21))
	requireReason(t, err, ReasonSpecialPeriodViolation)

	// Check-ins before the window are not constrained.
	_, err = ValidateStay(s, testNow, date(2025, time.August, 5), date(2025, time.August, 8))
	require.NoError(t, err)

	// The window is half-open: a check-in on Aug 25 itself is outside it.
	_, err = ValidateStay(s, testNow, date(2025, time.August, 25), date(2025, time.August, 28))
	require.NoError(t, err)
}

func TestValidateStayChecksRunInOrder(t *testing.T) {
	s := DefaultSchedule()

	// Inverted dates inside the special period report the date-order problem,
	// not the special-period one.
	_, err := ValidateStay(s, testNow, date(2025, time.August, 17), date(2025, time.August, 10))
	requireReason(t, err, ReasonInvalidDateOrder)
}

func TestNormalizeDateStripsTimeAndZone(t *testing.T) {
	zone := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2025, time.August, 17, 23, 45, 0, 0, zone)
	assert.Equal(t, date(2025, time.August, 17), NormalizeDate(in))
}

func TestValidationErrorUnwrapsWithAs(t *testing.T) {
	_, err := ValidateStay(DefaultSchedule(), testNow, date(2025, time.May, 12), date(2025, time.May, 10))
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
