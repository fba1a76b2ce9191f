package response

import (
	"encoding/json"
	"net/http"

	"github.com/vincanto/bookings/pkg/logger"
)

// ErrorResponse is the JSON error body every guest-facing failure reduces
// to: a stable machine-readable code plus a human-readable message. Internal
// errors (storage drivers and the like) are never exposed raw.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Reason codes. The set is part of the public API contract with the site;
// additions are fine, renames are not.
const (
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidDateOrder       = "INVALID_DATE_ORDER"
	CodeBelowMinAdvance        = "BELOW_MIN_ADVANCE"
	CodeBelowMinNights         = "BELOW_MIN_NIGHTS"
	CodeSpecialPeriodViolation = "SPECIAL_PERIOD_VIOLATION"
	CodeNonPositiveOccupancy   = "NON_POSITIVE_OCCUPANCY"
	CodeDateRangeConflict      = "DATE_RANGE_CONFLICT"
	CodeDepositUnavailable     = "DEPOSIT_UNAVAILABLE"
	CodeNotFound               = "NOT_FOUND"
	CodeRateLimit              = "RATE_LIMIT_EXCEEDED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}
