package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoSession       = errors.New("no active flow session")
	ErrUnknownFlow     = errors.New("unknown flow")
)
