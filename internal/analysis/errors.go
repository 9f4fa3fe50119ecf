package analysis

import "errors"

var (
	// ErrTimeout and ErrUnavailable are network failures; the caller may retry.
	ErrTimeout     = errors.New("analysis timed out")
	ErrUnavailable = errors.New("analysis service unavailable")
	// ErrIncompleteData means the service answered with something unusable.
	ErrIncompleteData = errors.New("analysis returned incomplete data")
)
