package utils

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrVenueNotFound = errors.New("venue not found")
	ErrUpstreamFetch = errors.New("upstream venue fetch failed")
	ErrDatabaseError = errors.New("database error")
)
