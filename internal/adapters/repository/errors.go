package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("batter not found")
	ErrInvalidFilter = errors.New("invalid delivery filter")
	ErrDriver        = errors.New("unsupported store driver")
)
