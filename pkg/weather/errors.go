package weather

import (
	"errors"
	"fmt"
)

// InputError reports a request rejected before any network call was made
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FetchError reports a transport failure or a non-2xx response from the provider
type FetchError struct {
	Op         string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to fetch %s", e.Op)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Op, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError reports a response body that is not valid JSON or lacks a required field
type ParseError struct {
	Field string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to decode response: %v", e.Cause)
	}
	return fmt.Sprintf("failed to decode response: %s: %v", e.Field, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Error kinds reported by Kind
const (
	KindInput   = "input"
	KindFetch   = "fetch"
	KindParse   = "parse"
	KindUnknown = "unknown"
)

// Kind classifies err into one of the three outcome kinds a presentation layer handles
func Kind(err error) string {
	var inputErr *InputError
	var fetchErr *FetchError
	var parseErr *ParseError

	switch {
	case errors.As(err, &inputErr):
		return KindInput
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &fetchErr):
		return KindFetch
	default:
		return KindUnknown
	}
}

var (
	errMissing   = errors.New("required field is missing")
	errEmpty     = errors.New("array is empty")
	errNotInt    = errors.New("expected an integer")
	errBadLayout = errors.New("expected HH:MM")
)
