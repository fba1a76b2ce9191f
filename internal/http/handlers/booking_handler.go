package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vincanto/bookings/internal/domain"
	"github.com/vincanto/bookings/internal/http/response"
	"github.com/vincanto/bookings/internal/pricing"
	"github.com/vincanto/bookings/internal/repo"
	"github.com/vincanto/bookings/internal/service"
	"github.com/vincanto/bookings/internal/utils"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// stayPayload is the raw stay portion of a quote or submission body.
type stayPayload struct {
	CheckIn       string `json:"checkin"`
	CheckOut      string `json:"checkout"`
	Adults        int    `json:"adults"`
	ChildrenAges  []int  `json:"children_ages"`
	ParkingOption string `json:"parking_option"`
}

func (p *stayPayload) toStayRequest() (pricing.StayRequest, string) {
	checkIn, err := time.Parse(dateLayout, p.CheckIn)
	if err != nil {
		return pricing.StayRequest{}, "checkin must be a YYYY-MM-DD date"
	}
	checkOut, err := time.Parse(dateLayout, p.CheckOut)
	if err != nil {
		return pricing.StayRequest{}, "checkout must be a YYYY-MM-DD date"
	}
	parking, ok := pricing.ParseParkingOption(p.ParkingOption)
	if !ok {
		return pricing.StayRequest{}, "parking_option must be none or private"
	}
	if p.Adults < 0 {
		return pricing.StayRequest{}, "adults must not be negative"
	}
	for _, age := range p.ChildrenAges {
		if age < 0 {
			return pricing.StayRequest{}, "children_ages must not be negative"
		}
	}
	return pricing.StayRequest{
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    p.Adults,
		ChildAges: p.ChildrenAges,
		Parking:   parking,
	}, ""
}

// Quote returns the cost breakdown for a prospective stay. The same pricing
// code runs again on submission, so the number shown here is the number
// charged.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var payload stayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	stay, msg := payload.toStayRequest()
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	breakdown, err := h.bookings.Quote(r.Context(), stay)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

type bookedRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookedDates returns the occupied windows of all non-cancelled reservations
// so the site can grey out calendar days before a quote is attempted.
func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.bookings.BookedRanges(r.Context())
	if err != nil {
		response.InternalError(w, "failed to load booked dates")
		return
	}

	out := make([]bookedRange, 0, len(ranges))
	for _, dr := range ranges {
		out = append(out, bookedRange{
			Start: dr.Start.Format(dateLayout),
			End:   dr.End.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type bookingRequestPayload struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`

	stayPayload

	PaymentChoice string `json:"payment_choice"`
	PaymentMethod string `json:"payment_method"`

	// Costs the client computed for display. Decoded and discarded: the
	// server always recomputes from the raw request.
	Costs json.RawMessage `json:"costs,omitempty"`
}

type bookingRequestResponse struct {
	ID          int64                 `json:"id"`
	ManageToken string                `json:"manage_token"`
	Status      string                `json:"status"`
	CheckIn     string                `json:"check_in"`
	CheckOut    string                `json:"check_out"`
	Cost        pricing.CostBreakdown `json:"cost"`
}

// CreateBookingRequest handles a booking submission. The response carries the
// server-computed breakdown, whatever the client sent.
func (h *BookingHandler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	var payload bookingRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	payload.Name = utils.NormalizeString(payload.Name)
	payload.Surname = utils.NormalizeString(payload.Surname)
	payload.Email = utils.NormalizeEmail(payload.Email)
	payload.Phone = utils.NormalizePhone(payload.Phone)

	switch {
	case payload.Name == "":
		response.BadRequest(w, "name is required")
		return
	case payload.Surname == "":
		response.BadRequest(w, "surname is required")
		return
	case !utils.IsValidEmail(payload.Email):
		response.BadRequest(w, "a valid email is required")
		return
	case payload.Phone != "" && !utils.IsValidPhone(payload.Phone):
		response.BadRequest(w, "phone number is not valid")
		return
	}

	stay, msg := payload.stayPayload.toStayRequest()
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	choice, ok := domain.ParsePaymentChoice(payload.PaymentChoice)
	if !ok {
		response.BadRequest(w, "payment_choice must be deposit or full")
		return
	}

	created, err := h.bookings.Submit(r.Context(), service.SubmitRequest{
		GuestName:     payload.Name,
		GuestSurname:  payload.Surname,
		GuestEmail:    payload.Email,
		GuestPhone:    payload.Phone,
		Stay:          stay,
		PaymentChoice: choice,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingRequestResponse{
		ID:          created.ID,
		ManageToken: created.ManageToken,
		Status:      string(created.Status),
		CheckIn:     created.CheckIn.Format(dateLayout),
		CheckOut:    created.CheckOut.Format(dateLayout),
		Cost:        created.Cost,
	})
}

// GetBookingRequest lets a guest re-fetch their own submission with the
// manage token from the confirmation email.
func (h *BookingHandler) GetBookingRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid reservation ID")
		return
	}

	token := r.URL.Query().Get("manage_token")
	if token == "" {
		response.BadRequest(w, "manage_token is required")
		return
	}

	reservation, err := h.bookings.GetReservation(r.Context(), id, token)
	if err != nil {
		response.InternalError(w, "failed to load reservation")
		return
	}
	if reservation == nil {
		response.NotFound(w, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

// writeBookingError maps engine rejections onto the stable reason-code set.
// Conflict responses deliberately say nothing about which reservation is in
// the way.
func writeBookingError(w http.ResponseWriter, err error) {
	var verr *pricing.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteError(w, http.StatusUnprocessableEntity, verr.Message, validationCode(verr.Reason))
	case errors.Is(err, service.ErrDepositUnavailable):
		response.WriteError(w, http.StatusUnprocessableEntity,
			"deposit payment is not available for one-night stays", response.CodeDepositUnavailable)
	case errors.Is(err, repo.ErrDateConflict):
		response.WriteError(w, http.StatusConflict,
			"the selected dates are unavailable", response.CodeDateRangeConflict)
	default:
		response.InternalError(w, "failed to process booking request")
	}
}

func validationCode(reason pricing.Reason) string {
	switch reason {
	case pricing.ReasonInvalidDateOrder:
		return response.CodeInvalidDateOrder
	case pricing.ReasonBelowMinAdvance:
		return response.CodeBelowMinAdvance
	case pricing.ReasonBelowMinNights:
		return response.CodeBelowMinNights
	case pricing.ReasonSpecialPeriodViolation:
		return response.CodeSpecialPeriodViolation
	case pricing.ReasonNonPositiveOccupancy:
		return response.CodeNonPositiveOccupancy
	default:
		return response.CodeInvalidInput
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
