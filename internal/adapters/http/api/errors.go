package api

import (
	"errors"
	"net/http"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/refresh"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// classify maps domain errors onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrMissingContentID),
		errors.Is(err, model.ErrInvalidSubscription),
		errors.Is(err, model.ErrUnknownLeague):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, refresh.ErrCycleInProgress):
		return http.StatusConflict, "cycle_in_progress"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
