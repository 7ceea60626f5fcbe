package domain

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRequiredInterval is the minimum free run a request asks for by default.
const DefaultRequiredInterval = time.Hour

// MaxSamples bounds the number of instants a single request may sample.
const MaxSamples = 20_000

// ErrInvalidRequest wraps every validation failure of a CourtRequest.
var ErrInvalidRequest = errors.New("invalid court request")

// CourtRequest is one watch query: a scan window, a court, and the run length wanted.
type CourtRequest struct {
	DateRange        DateRange
	Court            Court
	RequiredInterval time.Duration
	NonOverlapping   bool
}

// NewCourtRequest applies the default required interval.
func NewCourtRequest(window DateRange, court Court) CourtRequest {
	return CourtRequest{
		DateRange:        window,
		Court:            court,
		RequiredInterval: DefaultRequiredInterval,
	}
}

// RequiredSteps is RequiredInterval / Step with integer truncation.
func (r CourtRequest) RequiredSteps() int {
	if r.DateRange.Step <= 0 {
		return 0
	}
	return int(r.RequiredInterval / r.DateRange.Step)
}

// Validate checks the window, the court, the sample count, and that at least one step is required.
func (r CourtRequest) Validate() error {
	if err := r.DateRange.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := r.Court.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if n := r.DateRange.Duration() / r.DateRange.Step; n >= MaxSamples {
		return fmt.Errorf("%w: window %s at step %s needs more than %d samples", ErrInvalidRequest, r.DateRange, r.DateRange.Step, MaxSamples)
	}
	if r.RequiredSteps() < 1 {
		return fmt.Errorf("%w: required interval %s shorter than step %s", ErrInvalidRequest, r.RequiredInterval, r.DateRange.Step)
	}
	return nil
}
