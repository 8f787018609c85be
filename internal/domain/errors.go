package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSearchInput is returned when a search is submitted without a file or URL
	ErrNoSearchInput = errors.New("no image file or image URL provided")

	// ErrSearchInProgress is returned when a search is triggered while another is in flight
	ErrSearchInProgress = errors.New("a search is already in progress")

	// ErrUnknownFacet is returned for filter names outside category/brand/color/gender
	ErrUnknownFacet = errors.New("unknown filter facet")

	// ErrNotAnImage is returned when an uploaded file is not an image
	ErrNotAnImage = errors.New("uploaded file is not an image")

	// ErrBackendUnavailable is returned when the matching service cannot be reached
	ErrBackendUnavailable = errors.New("matching service unavailable")

	// ErrMalformedResponse is returned when the matching service answers with an unreadable body
	ErrMalformedResponse = errors.New("malformed response from matching service")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// BackendError is an error reported by the matching service itself,
// either through a non-2xx status or an explicit error field.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("matching service returned status %d", e.Status)
	}
	return e.Message
}
