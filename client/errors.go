package client

import (
	"errors"
	"fmt"
)

// Configuration errors, raised before any network call is attempted.
var (
	ErrMissingBaseURL = errors.New("renderjet: base URL is not configured")
	ErrMissingAPIKey  = errors.New("renderjet: API key is not configured")
)

// Input errors.
var (
	// ErrNoFiles is returned by multipart operations called without any
	// file parts.
	ErrNoFiles = errors.New("at least one file part is required")

	// ErrNoDownloadURL is returned when a download was requested but the
	// response carried neither a url nor a non-empty results[].url.
	ErrNoDownloadURL = errors.New("no URL to download")
)

// APIError is a non-2xx response from the API. Message carries the
// server's `error` field when the body could be decoded.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("renderjet: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("renderjet: status %d", e.StatusCode)
}

// IsAPIError reports whether err is an *APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
