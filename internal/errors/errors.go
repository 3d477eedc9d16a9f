package errors

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingAPIKey = errors.New("DD_API_KEY is not set")
	ErrMissingAppKey = errors.New("DD_APP_KEY is not set")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Platform API errors
	ErrInventoryFetch    = errors.New("metric inventory fetch failed")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrDecodeResponse    = errors.New("response decode failed")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// StatusError is returned by the query endpoint client for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned error status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
