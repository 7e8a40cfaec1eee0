package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	BookingRepository
	blocking []*Booking
}

func (f *fakeBookingRepo) FindBlocking(ctx context.Context, itemID uuid.UUID) ([]*Booking, error) {
	return f.blocking, nil
}

func blockingBooking(t *testing.T, start, end string) *Booking {
	t.Helper()
	dates, err := NewDateRange(start, end)
	require.NoError(t, err)

	now := time.Now().UTC()
	return ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		dates, 15000, 0, "USD",
		StatusConfirmed, PaymentPending,
		"", ItemSnapshot{},
		nil, nil, nil, nil, "",
		1, now, now,
	)
}

func TestAvailabilityChecker(t *testing.T) {
	ctx := context.Background()
	itemID := uuid.New()

	t.Run("no bookings means available", func(t *testing.T) {
		checker := NewAvailabilityChecker(&fakeBookingRepo{})
		dates, err := NewDateRange("2025-07-10", "2025-07-15")
		require.NoError(t, err)

		available, err := checker.IsAvailable(ctx, itemID, dates)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("overlapping booking blocks", func(t *testing.T) {
		checker := NewAvailabilityChecker(&fakeBookingRepo{
			blocking: []*Booking{blockingBooking(t, "2025-07-10", "2025-07-15")},
		})

		dates, err := NewDateRange("2025-07-12", "2025-07-20")
		require.NoError(t, err)

		available, err := checker.IsAvailable(ctx, itemID, dates)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("adjacent dates do not block", func(t *testing.T) {
		checker := NewAvailabilityChecker(&fakeBookingRepo{
			blocking: []*Booking{blockingBooking(t, "2025-07-10", "2025-07-15")},
		})

		dates, err := NewDateRange("2025-07-16", "2025-07-20")
		require.NoError(t, err)

		available, err := checker.IsAvailable(ctx, itemID, dates)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("shared boundary day blocks", func(t *testing.T) {
		checker := NewAvailabilityChecker(&fakeBookingRepo{
			blocking: []*Booking{blockingBooking(t, "2025-07-10", "2025-07-15")},
		})

		dates, err := NewDateRange("2025-07-15", "2025-07-18")
		require.NoError(t, err)

		available, err := checker.IsAvailable(ctx, itemID, dates)
		require.NoError(t, err)
		assert.False(t, available)
	})
}
