package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AvailabilityChecker decides whether a candidate date range conflicts with
// any existing blocking booking for an item.
//
// The check is advisory only. It is a read with no lock or reservation:
// between this read and a subsequent booking creation, a concurrent caller
// can pass the same check for overlapping dates, so two confirmed bookings
// may end up overlapping. Callers must tolerate that race; it is surfaced
// here rather than closed.
type AvailabilityChecker struct {
	repo BookingRepository
}

// NewAvailabilityChecker creates an AvailabilityChecker over the given repository.
func NewAvailabilityChecker(repo BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo}
}

// IsAvailable returns true if no confirmed or in_use booking for the item
// overlaps the candidate range. Requested, denied, returned and canceled
// bookings never block. Zero existing bookings means always available.
// Intervals are closed on both ends, so a candidate identical to a blocking
// range conflicts, while a candidate starting the day after a blocking
// range's end does not.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, itemID uuid.UUID, candidate DateRange) (bool, error) {
	blocking, err := c.repo.FindBlocking(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to load blocking bookings: %w", err)
	}

	for _, b := range blocking {
		if candidate.Overlaps(b.Dates()) {
			return false, nil
		}
	}
	return true, nil
}
