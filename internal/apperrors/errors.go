package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUpstream indicates a failure in an external collaborator (the rate
// provider). Handlers map this class to a gateway-style status, never to a
// client error.
var ErrUpstream = errors.New("upstream error")

// Reason is a stable, machine-readable rejection code surfaced alongside the
// human-readable message.
type Reason string

const (
	ReasonMissingField           Reason = "MISSING_FIELD"
	ReasonInvalidAmount          Reason = "INVALID_AMOUNT"
	ReasonCurrencyNotSubscribed  Reason = "CURRENCY_NOT_SUBSCRIBED"
	ReasonPrecisionLimitExceeded Reason = "PRECISION_LIMIT_EXCEEDED"
	ReasonSelectionCount         Reason = "SELECTION_COUNT"
	ReasonInvalidSelection       Reason = "INVALID_SELECTION"
	ReasonPrecisionOutOfRange    Reason = "PRECISION_OUT_OF_RANGE"
	ReasonRateUnavailable        Reason = "RATE_UNAVAILABLE"
	ReasonProviderUnavailable    Reason = "PROVIDER_UNAVAILABLE"
	ReasonProviderDataInvalid    Reason = "PROVIDER_DATA_INVALID"
)

// Rejection carries a reason code plus a message, wrapping one of the base
// error classes above so callers can dispatch with errors.Is.
type Rejection struct {
	Reason  Reason
	Message string
	class   error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

func (r *Rejection) Unwrap() error {
	return r.class
}

// NewValidationRejection builds a client-caused rejection.
func NewValidationRejection(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message, class: ErrValidation}
}

// NewUpstreamRejection builds a rejection caused by the external rate source.
func NewUpstreamRejection(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message, class: ErrUpstream}
}

// ReasonOf extracts the rejection reason from err, if it carries one.
func ReasonOf(err error) (Reason, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
