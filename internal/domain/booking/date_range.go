package booking

import (
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is an immutable value object covering the calendar days from
// Start through End, both inclusive. End is the last occupied day of a
// rental, so back-to-back bookings must leave at least one day between an
// existing End and a new Start.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange parses two YYYY-MM-DD dates into a DateRange. Any time-of-day
// component is absent by construction; dates are anchored at UTC midnight.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	if s.After(e) {
		return DateRange{}, domain.NewValidationError(
			fmt.Sprintf("start date %s is after end date %s", start, end))
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDate parses a single YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError(
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	return t, nil
}

// Days returns the number of calendar days the range spans, inclusive of
// both endpoints. A single-day range counts as one day.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Overlaps reports whether the two closed intervals share at least one
// calendar day. Boundary days count: a range ending on the day another
// starts overlaps it.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// StartString returns the start date in YYYY-MM-DD form.
func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }

// EndString returns the end date in YYYY-MM-DD form.
func (r DateRange) EndString() string { return r.End.Format(DateLayout) }

// String returns the range in "YYYY-MM-DD..YYYY-MM-DD" form.
func (r DateRange) String() string {
	return r.StartString() + ".." + r.EndString()
}
