package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrMissingContentID    = errors.New("missing content id")
	ErrInvalidSubscription = errors.New("invalid subscription")
	ErrUnknownLeague       = errors.New("unknown league")
)
