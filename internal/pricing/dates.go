package pricing

import (
	"fmt"
	"time"
)

// NormalizeDate strips the time-of-day and location from t. All date
// arithmetic in this package works on midnight-UTC calendar days, so a
// check-in parsed in one timezone and re-parsed in another still lands on the
// same day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Stay is a validated half-open date range [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// ValidateStay checks a requested check-in/check-out pair against the
// schedule's calendar rules. Checks run in a fixed order and fail fast, each
// with its own reason. now is passed in by the caller; this function never
// reads the clock.
func ValidateStay(s RateSchedule, now, checkIn, checkOut time.Time) (Stay, error) {
	ci := NormalizeDate(checkIn)
	co := NormalizeDate(checkOut)

	if !co.After(ci) {
		return Stay{}, reject(ReasonInvalidDateOrder, "check-out must be after check-in")
	}

	// "Today" rolls forward past the cutoff hour so the host always has a
	// full day between a request landing and the guest arriving.
	today := NormalizeDate(now)
	if now.Hour() >= s.BookingCutoffHour {
		today = today.AddDate(0, 0, 1)
	}
	earliest := today.AddDate(0, 0, s.MinAdvanceDays)
	if ci.Before(earliest) {
		return Stay{}, reject(ReasonBelowMinAdvance,
			fmt.Sprintf("check-in must be at least %d day(s) from now", s.MinAdvanceDays))
	}

	nights := int(co.Sub(ci).Hours() / 24)
	if nights < s.MinNights {
		return Stay{}, reject(ReasonBelowMinNights,
			fmt.Sprintf("minimum stay is %d nights", s.MinNights))
	}

	if s.inSpecialPeriod(ci) {
		if ci.Weekday() != s.SpecialPeriodWeekday ||
			co.Weekday() != s.SpecialPeriodWeekday ||
			nights%7 != 0 {
			return Stay{}, reject(ReasonSpecialPeriodViolation,
				fmt.Sprintf("stays starting between %d %s and %d %s must run %s to %s in whole weeks",
					s.SpecialPeriodStart.Day, s.SpecialPeriodStart.Month,
					s.SpecialPeriodEnd.Day, s.SpecialPeriodEnd.Month,
					s.SpecialPeriodWeekday, s.SpecialPeriodWeekday))
		}
	}

	return Stay{CheckIn: ci, CheckOut: co, Nights: nights}, nil
}

// inSpecialPeriod reports whether d falls inside [start, end) of the
// whole-week window for d's own year.
func (s RateSchedule) inSpecialPeriod(d time.Time) bool {
	if s.SpecialPeriodStart == (MonthDay{}) {
		return false
	}
	start := s.SpecialPeriodStart.inYear(d.Year())
	end := s.SpecialPeriodEnd.inYear(d.Year())
	return !d.Before(start) && d.Before(end)
}
