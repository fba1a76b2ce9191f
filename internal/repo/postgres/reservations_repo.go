package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincanto/bookings/internal/domain"
	"github.com/vincanto/bookings/internal/repo"
)

// pgExclusionViolation is raised by the reservations_no_overlap EXCLUDE
// constraint; it is what makes check-and-insert a single atomic step.
const pgExclusionViolation = "23P01"

type ReservationRepo struct{ pool *pgxpool.Pool }

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

var _ repo.ReservationRepo = (*ReservationRepo)(nil)

const reservationCols = `id, manage_token, status,
guest_name, guest_surname, guest_email, guest_phone,
check_in, check_out, adults, child_ages, parking_option,
nights, base_price, cleaning_fee, parking_cost, tourist_tax,
total_amount, deposit_amount, paying_guests, taxable_guests,
payment_choice, payment_method, payment_amount,
created_at, updated_at`

func (r *ReservationRepo) CreateIfAvailable(ctx context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	const q = `INSERT INTO reservations (
		manage_token, status,
		guest_name, guest_surname, guest_email, guest_phone,
		check_in, check_out, adults, child_ages, parking_option,
		nights, base_price, cleaning_fee, parking_cost, tourist_tax,
		total_amount, deposit_amount, paying_guests, taxable_guests,
		payment_choice, payment_method, payment_amount
	) VALUES ($1,'pending',$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	RETURNING ` + reservationCols

	token := uuid.NewString()
	ages, err := json.Marshal(childAgesOrEmpty(in.ChildAges))
	if err != nil {
		return nil, fmt.Errorf("marshal child ages: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.pool.QueryRow(ctx, q, token,
		in.GuestName, in.GuestSurname, in.GuestEmail, in.GuestPhone,
		in.CheckIn, in.CheckOut, in.Adults, ages, in.Parking,
		in.Cost.Nights, in.Cost.BasePrice, in.Cost.CleaningFee,
		in.Cost.ParkingCost, in.Cost.TouristTax,
		in.Cost.TotalAmount, in.Cost.DepositAmount,
		in.Cost.PayingGuests, in.Cost.TaxableGuests,
		in.PaymentChoice, in.PaymentMethod, in.PaymentAmount,
	)

	out, err := scanReservation(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return nil, repo.ErrDateConflict
		}
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepo) BookedRanges(ctx context.Context) ([]domain.DateRange, error) {
	const q = `SELECT check_in, check_out FROM reservations
		WHERE status <> 'cancelled' ORDER BY check_in`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []domain.DateRange
	for rows.Next() {
		var dr domain.DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, err
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanReservation(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return out, err
}

func (r *ReservationRepo) GetByIDWithToken(ctx context.Context, id int64, token string) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id=$1 AND manage_token=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanReservation(r.pool.QueryRow(ctx, q, id, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return out, err
}

func (r *ReservationRepo) List(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + reservationCols + ` FROM reservations
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Reservation, 0, limit)
	for rows.Next() {
		b, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var b domain.Reservation
	var ages []byte
	err := row.Scan(
		&b.ID, &b.ManageToken, &b.Status,
		&b.GuestName, &b.GuestSurname, &b.GuestEmail, &b.GuestPhone,
		&b.CheckIn, &b.CheckOut, &b.Adults, &ages, &b.Parking,
		&b.Cost.Nights, &b.Cost.BasePrice, &b.Cost.CleaningFee,
		&b.Cost.ParkingCost, &b.Cost.TouristTax,
		&b.Cost.TotalAmount, &b.Cost.DepositAmount,
		&b.Cost.PayingGuests, &b.Cost.TaxableGuests,
		&b.PaymentChoice, &b.PaymentMethod, &b.PaymentAmount,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ages, &b.ChildAges); err != nil {
		return nil, fmt.Errorf("unmarshal child ages: %w", err)
	}
	return &b, nil
}

func childAgesOrEmpty(ages []int) []int {
	if ages == nil {
		return []int{}
	}
	return ages
}
