package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testNow = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

func TestQuoteTwoAdultsThreeNights(t *testing.T) {
	// 2 adults, 3 nights, no parking: 2*50*3 + 30 cleaning + 2*2*3 tax.
	got, err := Quote(DefaultSchedule(), testNow, StayRequest{
		CheckIn:  date(2025, time.May, 10),
		CheckOut: date(2025, time.May, 13),
		Adults:   2,
		Parking:  ParkingNone,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Nights)
	assert.Equal(t, Cents(30000), got.BasePrice)
	assert.Equal(t, Cents(3000), got.CleaningFee)
	assert.Equal(t, Cents(0), got.ParkingCost)
	assert.Equal(t, Cents(1200), got.TouristTax)
	assert.Equal(t, Cents(34200), got.TotalAmount)
	assert.Equal(t, Cents(17100), got.DepositAmount)
}

func TestNightlyRateTiers(t *testing.T) {
	s := DefaultSchedule()
	tests := []struct {
		guests int
		want   Cents
	}{
		{1, 5000},
		{2, 10000},
		{3, 14000},
		{4, 18000},
		{5, 21000},
		{7, 27000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nightlyRate(s, tt.guests), "guests=%d", tt.guests)
	}
}

func TestBasePriceMonotonicInGuestCount(t *testing.T) {
	s := DefaultSchedule()
	stay := Stay{CheckIn: date(2025, time.May, 10), CheckOut: date(2025, time.May, 13), Nights: 3}

	var prev Cents
	for g := 1; g <= 10; g++ {
		cb := Calculate(s, stay, Occupancy{PayingGuests: g, TaxableGuests: g}, ParkingNone)
		assert.GreaterOrEqual(t, cb.BasePrice, prev, "guests=%d", g)
		prev = cb.BasePrice
	}
}

func TestCalculateTotalsInvariant(t *testing.T) {
	s := DefaultSchedule()
	for _, nights := range []int{2, 3, 7, 14} {
		for g := 1; g <= 8; g++ {
			for _, parking := range []ParkingOption{ParkingNone, ParkingPrivate} {
				stay := Stay{
					CheckIn:  date(2025, time.July, 1),
					CheckOut: date(2025, time.July, 1+nights),
					Nights:   nights,
				}
				cb := Calculate(s, stay, Occupancy{PayingGuests: g, TaxableGuests: g}, parking)

				assert.Equal(t, cb.BasePrice+cb.CleaningFee+cb.ParkingCost+cb.TouristTax, cb.TotalAmount)
				assert.Equal(t, cb.TotalAmount*Cents(s.DepositPercent)/100, cb.DepositAmount)
			}
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	s := DefaultSchedule()
	req := StayRequest{
		CheckIn:   date(2025, time.June, 6),
		CheckOut:  date(2025, time.June, 10),
		Adults:    2,
		ChildAges: []int{5, 15},
		Parking:   ParkingPrivate,
	}
	first, err := Quote(s, testNow, req)
	require.NoError(t, err)
	second, err := Quote(s, testNow, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParkingSeasonalRate(t *testing.T) {
	s := DefaultSchedule()
	occ := Occupancy{PayingGuests: 2, TaxableGuests: 2}

	low := Calculate(s, Stay{CheckIn: date(2025, time.March, 10), CheckOut: date(2025, time.March, 12), Nights: 2}, occ, ParkingPrivate)
	assert.Equal(t, Cents(3000), low.ParkingCost)

	high := Calculate(s, Stay{CheckIn: date(2025, time.July, 10), CheckOut: date(2025, time.July, 12), Nights: 2}, occ, ParkingPrivate)
	assert.Equal(t, Cents(5000), high.ParkingCost)
}

func TestOneNightFlatRate(t *testing.T) {
	s := DefaultSchedule()
	s.MinNights = 1

	got, err := Quote(s, testNow, StayRequest{
		CheckIn:  date(2025, time.May, 10),
		CheckOut: date(2025, time.May, 11),
		Adults:   3,
		Parking:  ParkingNone,
	})
	require.NoError(t, err)

	// 3 guests at the flat per-guest rate, not the tiered nightly rate.
	assert.Equal(t, Cents(15000), got.BasePrice)
	assert.Equal(t, 1, got.Nights)
}
