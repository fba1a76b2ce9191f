package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{
			"identical",
			DateRange{day(2025, 8, 10), day(2025, 8, 12)},
			DateRange{day(2025, 8, 10), day(2025, 8, 12)},
			true,
		},
		{
			"partial overlap",
			DateRange{day(2025, 8, 10), day(2025, 8, 14)},
			DateRange{day(2025, 8, 12), day(2025, 8, 16)},
			true,
		},
		{
			"containment",
			DateRange{day(2025, 8, 10), day(2025, 8, 20)},
			DateRange{day(2025, 8, 12), day(2025, 8, 14)},
			true,
		},
		{
			"adjacent ranges do not overlap",
			DateRange{day(2025, 8, 10), day(2025, 8, 12)},
			DateRange{day(2025, 8, 12), day(2025, 8, 14)},
			false,
		},
		{
			"disjoint",
			DateRange{day(2025, 8, 1), day(2025, 8, 5)},
			DateRange{day(2025, 8, 20), day(2025, 8, 25)},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestReservationBlocking(t *testing.T) {
	r := Reservation{Status: ReservationPending}
	assert.True(t, r.Blocking())
	r.Status = ReservationConfirmed
	assert.True(t, r.Blocking())
	r.Status = ReservationCancelled
	assert.False(t, r.Blocking())
}
