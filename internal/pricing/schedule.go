package pricing

import (
	"fmt"
	"time"
)

// Cents is a money amount in integer euro cents. All pricing math is done in
// cents so the quote shown on the site and the amount persisted with a
// reservation can never diverge through float rounding.
type Cents int64

// Euros renders a cent amount as a decimal string, e.g. 17100 -> "171.00".
func (c Cents) Euros() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

type ParkingOption string

const (
	ParkingNone    ParkingOption = "none"
	ParkingPrivate ParkingOption = "private"
)

func ParseParkingOption(s string) (ParkingOption, bool) {
	switch ParkingOption(s) {
	case ParkingNone, ParkingPrivate:
		return ParkingOption(s), true
	case "":
		return ParkingNone, true
	default:
		return "", false
	}
}

// RateTier is one band of the tiered nightly rate: the first Capacity paying
// guests not covered by earlier tiers pay NightlyRate each. Capacity 0 means
// the tier absorbs all remaining guests.
type RateTier struct {
	Capacity    int
	NightlyRate Cents
}

// MonthDay is a calendar day that recurs every year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) inYear(year int) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}

// RateSchedule holds every pricing and calendar policy constant in one place.
// It is loaded once at startup and passed explicitly into every calculation;
// nothing in this package reads ambient state.
type RateSchedule struct {
	Tiers []RateTier

	// OneNightFlatRate replaces the tiered nightly rate for single-night
	// stays: every paying guest pays this amount once. The rule has drifted
	// across revisions of the old site, so it is a named schedule field
	// rather than an inline special case.
	OneNightFlatRate Cents

	CleaningFee              Cents
	TouristTaxPerPersonNight Cents

	// ChildTaxExemptAge: guests strictly younger are exempt from tourist tax.
	ChildTaxExemptAge int
	// ChildFreeAge: guests this age or younger do not count as paying guests.
	ChildFreeAge int

	ParkingLowSeason  Cents
	ParkingHighSeason Cents
	HighSeasonMonths  map[time.Month]bool

	// DepositPercent is the upfront portion of the total, 0 < p < 100.
	DepositPercent int64

	MinNights int

	// Special period: check-ins falling inside [start, end) of any year must
	// book whole weeks turning over on SpecialPeriodWeekday.
	SpecialPeriodStart   MonthDay
	SpecialPeriodEnd     MonthDay
	SpecialPeriodWeekday time.Weekday

	// MinAdvanceDays is the minimum number of days between "today" and
	// check-in. BookingCutoffHour rolls "today" forward by one day for
	// requests received at or after that hour, so the host always has a full
	// day of turnaround.
	MinAdvanceDays    int
	BookingCutoffHour int
}

// DefaultSchedule is the current Vincanto policy.
func DefaultSchedule() RateSchedule {
	return RateSchedule{
		Tiers: []RateTier{
			{Capacity: 2, NightlyRate: 5000},
			{Capacity: 2, NightlyRate: 4000},
			{Capacity: 0, NightlyRate: 3000},
		},
		OneNightFlatRate:         5000,
		CleaningFee:              3000,
		TouristTaxPerPersonNight: 200,
		ChildTaxExemptAge:        14,
		ChildFreeAge:             2,
		ParkingLowSeason:         1500,
		ParkingHighSeason:        2500,
		HighSeasonMonths: map[time.Month]bool{
			time.June:   true,
			time.July:   true,
			time.August: true,
		},
		DepositPercent:       50,
		MinNights:            2,
		SpecialPeriodStart:   MonthDay{time.August, 11},
		SpecialPeriodEnd:     MonthDay{time.August, 25},
		SpecialPeriodWeekday: time.Sunday,
		MinAdvanceDays:       1,
		BookingCutoffHour:    18,
	}
}
