package domain

import (
	"time"

	"github.com/vincanto/bookings/internal/pricing"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

type PaymentChoice string

const (
	PayDeposit PaymentChoice = "deposit"
	PayFull    PaymentChoice = "full"
)

// ParsePaymentChoice accepts the current values plus the Italian form values
// the old site submitted.
func ParsePaymentChoice(s string) (PaymentChoice, bool) {
	switch s {
	case string(PayDeposit), "acconto":
		return PayDeposit, true
	case string(PayFull), "totale":
		return PayFull, true
	default:
		return "", false
	}
}

// DateRange is the half-open window [Start, End) a reservation occupies.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open ranges intersect. Adjacent ranges
// (one ends the day the other starts) do not overlap, so back-to-back
// check-out/check-in days stay bookable.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Reservation is one booking request that passed validation. The engine
// creates records in pending state and reads date ranges back for
// availability; status transitions belong to the reservation-management side
// and records are never deleted.
type Reservation struct {
	ID          int64             `json:"id"`
	ManageToken string            `json:"manage_token,omitempty"`
	Status      ReservationStatus `json:"status"`

	GuestName    string `json:"guest_name"`
	GuestSurname string `json:"guest_surname"`
	GuestEmail   string `json:"guest_email"`
	GuestPhone   string `json:"guest_phone"`

	CheckIn   time.Time             `json:"check_in"`
	CheckOut  time.Time             `json:"check_out"`
	Adults    int                   `json:"adults"`
	ChildAges []int                 `json:"child_ages"`
	Parking   pricing.ParkingOption `json:"parking_option"`

	// Cost figures as computed by the server at submission time. Snapshotted
	// so old reservations keep their price if the schedule changes later.
	Cost pricing.CostBreakdown `json:"cost"`

	// PaymentAmount is what the guest chose to pay now: the deposit or the
	// full total.
	PaymentChoice PaymentChoice `json:"payment_choice"`
	PaymentMethod string        `json:"payment_method"`
	PaymentAmount pricing.Cents `json:"payment_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Range returns the availability window this reservation occupies.
func (b *Reservation) Range() DateRange {
	return DateRange{Start: b.CheckIn, End: b.CheckOut}
}

// Blocking reports whether the reservation still counts against availability.
func (b *Reservation) Blocking() bool {
	return b.Status != ReservationCancelled
}
