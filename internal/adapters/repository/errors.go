package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrStoreClosed = errors.New("store closed")
)
