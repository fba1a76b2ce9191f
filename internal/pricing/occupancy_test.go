package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOccupancy(t *testing.T) {
	s := DefaultSchedule() // ChildFreeAge 2, ChildTaxExemptAge 14

	tests := []struct {
		name      string
		adults    int
		childAges []int
		want      Occupancy
	}{
		{"adults only", 2, nil, Occupancy{PayingGuests: 2, TaxableGuests: 2}},
		{"infant stays free and untaxed", 2, []int{1}, Occupancy{PayingGuests: 2, TaxableGuests: 2}},
		{"free-age boundary is inclusive", 2, []int{2}, Occupancy{PayingGuests: 2, TaxableGuests: 2}},
		{"young child pays but is tax-exempt", 2, []int{3}, Occupancy{PayingGuests: 3, TaxableGuests: 2}},
		{"tax-exempt boundary: 13 is exempt", 2, []int{13}, Occupancy{PayingGuests: 3, TaxableGuests: 2}},
		{"tax-exempt boundary: 14 is taxed", 2, []int{14}, Occupancy{PayingGuests: 3, TaxableGuests: 3}},
		{"mixed ages", 1, []int{1, 3, 14, 17}, Occupancy{PayingGuests: 4, TaxableGuests: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyOccupancy(s, tt.adults, tt.childAges)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyOccupancyRejectsNonPositive(t *testing.T) {
	s := DefaultSchedule()

	_, err := ClassifyOccupancy(s, 0, nil)
	requireReason(t, err, ReasonNonPositiveOccupancy)

	// Only free-age children on board still means nobody pays.
	_, err = ClassifyOccupancy(s, 0, []int{1, 2})
	requireReason(t, err, ReasonNonPositiveOccupancy)
}
