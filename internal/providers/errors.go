package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable is returned when a fetcher is not wired.
var ErrProviderUnavailable = errors.New("schedule provider unavailable")

// FetchError captures transport failures, timeouts, and non-2xx responses from the venue.
type FetchError struct {
	Provider   string
	URL        string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *FetchError) Error() string {
	prefix := e.Provider
	if prefix == "" {
		prefix = "provider"
	}
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: fetch timed out: %v", prefix, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: unexpected status %d", prefix, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: fetch failed: %v", prefix, e.Err)
	default:
		return prefix + ": fetch failed"
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that the response lacked the expected grid structure entirely.
type ParseError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	prefix := e.Provider
	if prefix == "" {
		prefix = "provider"
	}
	msg := e.Reason
	if msg == "" {
		msg = "unreadable schedule"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.Err)
	}
	return prefix + ": " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
