package policy

import "errors"

// Sentinel kinds for policy errors.
var (
	ErrDanglingPattern = errors.New("policy pattern matches no registered route")
	ErrInvalidPolicy   = errors.New("invalid security policy")
)
