package booking

import (
	"testing"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	dates, err := NewDateRange("2025-07-10", "2025-07-12")
	require.NoError(t, err)

	b, err := NewBooking(
		uuid.New(), uuid.New(), uuid.New(),
		dates, 15000, 5000, "USD",
		"picking up Saturday morning",
		ItemSnapshot{Title: "Canon EOS R6", CoverImage: "https://img.example.com/r6.jpg"},
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("valid booking", func(t *testing.T) {
		b := newTestBooking(t)
		assert.Equal(t, StatusRequested, b.Status())
		assert.Equal(t, PaymentPending, b.PaymentStatus())
		assert.Equal(t, int64(1), b.Version())
		assert.Equal(t, "Canon EOS R6", b.ItemSnapshot().Title)
	})

	t.Run("renter cannot equal host", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		sameID := uuid.New()
		_, err = NewBooking(uuid.New(), sameID, sameID, dates, 15000, 0, "USD", "", ItemSnapshot{})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("total price must be positive", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		_, err = NewBooking(uuid.New(), uuid.New(), uuid.New(), dates, 0, 0, "USD", "", ItemSnapshot{})
		assert.Error(t, err)
	})

	t.Run("deposit cannot be negative", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		_, err = NewBooking(uuid.New(), uuid.New(), uuid.New(), dates, 15000, -1, "USD", "", ItemSnapshot{})
		assert.Error(t, err)
	})

	t.Run("missing item ID", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		_, err = NewBooking(uuid.Nil, uuid.New(), uuid.New(), dates, 15000, 0, "USD", "", ItemSnapshot{})
		assert.Error(t, err)
	})
}

func TestBookingConfirm(t *testing.T) {
	t.Run("host confirms requested booking", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Confirm(b.HostID()))
		assert.Equal(t, StatusConfirmed, b.Status())
		assert.NotNil(t, b.RespondedAt())
	})

	t.Run("renter cannot confirm", func(t *testing.T) {
		b := newTestBooking(t)
		err := b.Confirm(b.RenterID())
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
		assert.Equal(t, StatusRequested, b.Status())
	})

	t.Run("cannot confirm a denied booking", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Deny(b.HostID()))

		err := b.Confirm(b.HostID())
		var sErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &sErr)
		assert.Equal(t, StatusDenied, b.Status())
	})
}

func TestBookingPickupAndReturn(t *testing.T) {
	b := newTestBooking(t)
	require.NoError(t, b.Confirm(b.HostID()))

	t.Run("renter cannot mark pickup", func(t *testing.T) {
		err := b.MarkPickedUp(b.RenterID())
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
	})

	require.NoError(t, b.MarkPickedUp(b.HostID()))
	assert.Equal(t, StatusInUse, b.Status())
	assert.NotNil(t, b.PickedUpAt())

	require.NoError(t, b.MarkReturned(b.HostID()))
	assert.Equal(t, StatusReturned, b.Status())
	assert.NotNil(t, b.ReturnedAt())

	t.Run("returned is terminal", func(t *testing.T) {
		err := b.MarkPickedUp(b.HostID())
		assert.Error(t, err)
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("renter cancels requested booking", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel(b.RenterID(), "changed my plans"))
		assert.Equal(t, StatusCanceled, b.Status())
		assert.Equal(t, "changed my plans", b.CancelNote())
		assert.NotNil(t, b.CanceledAt())
	})

	t.Run("host cancels confirmed booking", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Confirm(b.HostID()))
		require.NoError(t, b.Cancel(b.HostID(), ""))
		assert.Equal(t, StatusCanceled, b.Status())
	})

	t.Run("third party cannot cancel", func(t *testing.T) {
		b := newTestBooking(t)
		err := b.Cancel(uuid.New(), "")
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
	})

	t.Run("cannot cancel a returned booking", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Confirm(b.HostID()))
		require.NoError(t, b.MarkPickedUp(b.HostID()))
		require.NoError(t, b.MarkReturned(b.HostID()))

		err := b.Cancel(b.RenterID(), "")
		assert.Error(t, err)
	})
}

func TestBookingIsParty(t *testing.T) {
	b := newTestBooking(t)
	assert.True(t, b.IsParty(b.RenterID()))
	assert.True(t, b.IsParty(b.HostID()))
	assert.False(t, b.IsParty(uuid.New()))
}
