package model

import (
	"fmt"
	"time"
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// InvalidFragmentError signals an extractor contract violation: a fragment
// arrived without a class or without text. Unlike orphaned or unknown-class
// fragments (which are silently dropped), this is surfaced to the caller.
type InvalidFragmentError struct {
	Field string // "class" or "text"
}

func (e *InvalidFragmentError) Error() string {
	return fmt.Sprintf("invalid fragment: missing %s", e.Field)
}
