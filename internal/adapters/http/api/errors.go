package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// Error codes surfaced in responses.
const (
	codeRouteNotFound = "route_not_found"
	codeValidation    = "validation_error"
	codeAuthRequired  = "auth_required"
	codeRateLimited   = "rate_limit_exceeded"
	codeInternal      = "internal_error"
)
