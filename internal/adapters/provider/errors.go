package provider

import (
	"errors"
	"fmt"
)

// Sentinel kinds for provider errors.
var (
	ErrNoData    = errors.New("provider returned no data")
	ErrNoFetcher = errors.New("no fetcher configured")
)

// APIError is returned for non-2xx provider responses.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}
