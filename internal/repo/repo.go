// Package repo defines the storage contract for reservations. Two
// implementations exist: postgres for production and memory for tests and
// database-less local runs.
package repo

import (
	"context"
	"errors"

	"github.com/vincanto/bookings/internal/domain"
)

// ErrDateConflict is returned by CreateIfAvailable when the requested range
// overlaps a non-cancelled reservation. The availability check and the insert
// are one atomic operation in every implementation; callers never get to
// observe a window between them.
var ErrDateConflict = errors.New("requested dates overlap an existing reservation")

type ReservationRepo interface {
	// CreateIfAvailable persists r in pending state unless its date range
	// overlaps an existing non-cancelled reservation, in which case it
	// returns ErrDateConflict and writes nothing.
	CreateIfAvailable(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)

	// BookedRanges returns the occupied windows of all non-cancelled
	// reservations, ordered by start date.
	BookedRanges(ctx context.Context) ([]domain.DateRange, error)

	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDWithToken(ctx context.Context, id int64, token string) (*domain.Reservation, error)
	List(ctx context.Context, limit, offset int) ([]domain.Reservation, error)
}
