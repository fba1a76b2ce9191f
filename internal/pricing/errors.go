package pricing

// Reason is a stable machine-readable rejection code. The HTTP layer maps
// these one-to-one onto response codes; the set must not grow ad hoc.
type Reason string

const (
	ReasonInvalidDateOrder       Reason = "invalid_date_order"
	ReasonBelowMinAdvance        Reason = "below_min_advance"
	ReasonBelowMinNights         Reason = "below_min_nights"
	ReasonSpecialPeriodViolation Reason = "special_period_violation"
	ReasonNonPositiveOccupancy   Reason = "non_positive_occupancy"
)

// ValidationError is a rejection of the guest's input. Always recoverable by
// correcting the request; never retried automatically.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Reason) + ": " + e.Message
}

func reject(reason Reason, msg string) *ValidationError {
	return &ValidationError{Reason: reason, Message: msg}
}
