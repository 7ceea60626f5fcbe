package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

// DefaultStep is the sampling granularity used when none is given.
const DefaultStep = 30 * time.Minute

// ErrInvalidRange is returned for ranges whose start is after their end or whose step is not positive.
var ErrInvalidRange = errors.New("invalid date range")

// DateRange is either a sampling window walked in Step increments or a concrete
// availability interval (Step is irrelevant then).
type DateRange struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
}

// NewDateRange builds a range with the default step.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end, Step: DefaultStep}
}

// WithStep returns a copy of the range using the given step.
func (r DateRange) WithStep(step time.Duration) DateRange {
	r.Step = step
	return r
}

// Validate reports whether the range can be sampled.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %s", ErrInvalidRange, r.Step)
	}
	return nil
}

// Instants yields start, start+step, ... up to and including values <= end.
// The sequence is lazy and can be ranged over any number of times.
func (r DateRange) Instants() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if r.Start.After(r.End) {
			return
		}
		if r.Step <= 0 {
			yield(r.Start)
			return
		}
		for t := r.Start; !t.After(r.End); t = t.Add(r.Step) {
			if !yield(t) {
				return
			}
		}
	}
}

// Slice materializes Instants.
func (r DateRange) Slice() []time.Time {
	return slices.Collect(r.Instants())
}

// Contains reports half-open membership: start <= t < end.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration is End - Start.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r DateRange) String() string {
	const layout = "2006-01-02 15:04"
	return "[" + r.Start.Format(layout) + "," + r.End.Format(layout) + "]"
}

// Compare orders ranges by start.
func Compare(a, b DateRange) int {
	return a.Start.Compare(b.Start)
}

// SortRanges sorts ranges in place by start, keeping the input order for equal starts.
func SortRanges(ranges []DateRange) {
	slices.SortStableFunc(ranges, Compare)
}

type dateRangeJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MarshalJSON renders result intervals; the step is a sampling detail and is omitted.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{Start: r.Start, End: r.End})
}

// UnmarshalJSON accepts the shape produced by MarshalJSON and applies the default step.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewDateRange(raw.Start, raw.End)
	return nil
}
