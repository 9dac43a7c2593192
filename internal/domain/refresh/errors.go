package refresh

import "errors"

// ErrCycleInProgress is returned when a cycle is triggered while another one is running.
var ErrCycleInProgress = errors.New("refresh cycle already in progress")

// errEmptyResult marks a fetcher that returned neither data nor an error.
var errEmptyResult = errors.New("fetcher returned no snapshot")
