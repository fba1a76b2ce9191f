package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vincanto/bookings/internal/domain"
	"github.com/vincanto/bookings/internal/platform/mailer"
	"github.com/vincanto/bookings/internal/pricing"
	"github.com/vincanto/bookings/internal/repo"
	"github.com/vincanto/bookings/pkg/events"
	"github.com/vincanto/bookings/pkg/logger"
)

// ErrDepositUnavailable rejects the deposit payment choice for single-night
// stays; the remainder would be too small to settle on arrival.
var ErrDepositUnavailable = errors.New("deposit payment is not available for one-night stays")

// SubmitRequest is a guest's booking submission: identity fields plus the raw
// stay request and payment choice. Any cost figures the client computed are
// display-only and are not part of this type; the server always recomputes.
type SubmitRequest struct {
	GuestName    string
	GuestSurname string
	GuestEmail   string
	GuestPhone   string

	Stay pricing.StayRequest

	PaymentChoice domain.PaymentChoice
	PaymentMethod string
}

type BookingService interface {
	// Quote runs the pure pricing pipeline with no store access. It is the
	// same evaluation Submit performs before persisting.
	Quote(ctx context.Context, stay pricing.StayRequest) (pricing.CostBreakdown, error)

	// BookedRanges returns the occupied windows the site uses to grey out
	// calendar days.
	BookedRanges(ctx context.Context) ([]domain.DateRange, error)

	// Submit is the authoritative evaluation: validate, classify, price,
	// then atomically insert unless the range is taken.
	Submit(ctx context.Context, req SubmitRequest) (*domain.Reservation, error)

	GetReservation(ctx context.Context, id int64, token string) (*domain.Reservation, error)
}

type bookingService struct {
	schedule pricing.RateSchedule
	repo     repo.ReservationRepo
	events   events.Publisher
	mailer   mailer.Service
	now      func() time.Time
}

func NewBookingService(
	schedule pricing.RateSchedule,
	reservations repo.ReservationRepo,
	publisher events.Publisher,
	mail mailer.Service,
) BookingService {
	return &bookingService{
		schedule: schedule,
		repo:     reservations,
		events:   publisher,
		mailer:   mail,
		now:      time.Now,
	}
}

func (s *bookingService) Quote(_ context.Context, stay pricing.StayRequest) (pricing.CostBreakdown, error) {
	return pricing.Quote(s.schedule, s.now(), stay)
}

func (s *bookingService) BookedRanges(ctx context.Context) ([]domain.DateRange, error) {
	return s.repo.BookedRanges(ctx)
}

func (s *bookingService) Submit(ctx context.Context, req SubmitRequest) (*domain.Reservation, error) {
	stay, err := pricing.ValidateStay(s.schedule, s.now(), req.Stay.CheckIn, req.Stay.CheckOut)
	if err != nil {
		return nil, err
	}
	occ, err := pricing.ClassifyOccupancy(s.schedule, req.Stay.Adults, req.Stay.ChildAges)
	if err != nil {
		return nil, err
	}
	cost := pricing.Calculate(s.schedule, stay, occ, req.Stay.Parking)

	if req.PaymentChoice == domain.PayDeposit && stay.Nights == 1 {
		return nil, ErrDepositUnavailable
	}

	paymentAmount := cost.TotalAmount
	if req.PaymentChoice == domain.PayDeposit {
		paymentAmount = cost.DepositAmount
	}

	reservation := &domain.Reservation{
		GuestName:     req.GuestName,
		GuestSurname:  req.GuestSurname,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		CheckIn:       stay.CheckIn,
		CheckOut:      stay.CheckOut,
		Adults:        req.Stay.Adults,
		ChildAges:     req.Stay.ChildAges,
		Parking:       req.Stay.Parking,
		Cost:          cost,
		PaymentChoice: req.PaymentChoice,
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: paymentAmount,
	}

	// The overlap check and the insert are one atomic storage operation;
	// concurrent submissions for overlapping ranges cannot both pass.
	created, err := s.repo.CreateIfAvailable(ctx, reservation)
	if err != nil {
		if errors.Is(err, repo.ErrDateConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("persist reservation: %w", err)
	}

	s.notify(ctx, created)
	return created, nil
}

// notify hands the accepted reservation to the out-of-band collaborators.
// Neither a dead event bus nor a failed email rolls the booking back; the
// reservation is accepted the moment it is persisted.
func (s *bookingService) notify(ctx context.Context, b *domain.Reservation) {
	if s.events != nil {
		event := events.ReservationCreatedEvent{
			ReservationID: b.ID,
			GuestEmail:    b.GuestEmail,
			GuestName:     b.GuestName,
			CheckIn:       b.CheckIn,
			CheckOut:      b.CheckOut,
			TotalAmount:   int64(b.Cost.TotalAmount),
			CreatedAt:     b.CreatedAt,
		}
		if err := s.events.Publish(ctx, events.ReservationCreated, event); err != nil {
			logger.ErrorContext(ctx, "failed to publish reservation created event",
				"error", err, "reservation_id", b.ID)
		}
	}

	if s.mailer != nil {
		if err := s.mailer.SendBookingConfirmation(b); err != nil {
			logger.ErrorContext(ctx, "failed to send confirmation email",
				"error", err, "reservation_id", b.ID, "guest_email", b.GuestEmail)
		}
	}
}

func (s *bookingService) GetReservation(ctx context.Context, id int64, token string) (*domain.Reservation, error) {
	return s.repo.GetByIDWithToken(ctx, id, token)
}
