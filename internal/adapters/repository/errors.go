package repository

import "errors"

// Sentinel kinds for match store errors.
var (
	ErrNotFound  = errors.New("match not found")
	ErrDuplicate = errors.New("match already stored")
)
