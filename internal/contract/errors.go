package contract

import "errors"

// Sentinel kinds for contract errors.
var (
	ErrRouteNotFound = errors.New("route not found")
	ErrValidation    = errors.New("invalid payload")
	ErrBadTemplate   = errors.New("bad route template")
)

// FieldError reports a validation failure for a single named field. It
// unwraps to ErrValidation so callers can classify with errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
