package application

import (
	"context"
	"testing"

	"github.com/gearshare/service-rental/internal/domain"
	reviewDomain "github.com/gearshare/service-rental/internal/domain/review"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReviewRepo struct {
	reviews []*reviewDomain.Review
}

func (f *fakeReviewRepo) Save(ctx context.Context, r *reviewDomain.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeReviewRepo) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*reviewDomain.Review, error) {
	var result []*reviewDomain.Review
	for _, r := range f.reviews {
		if r.ItemID() == itemID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*reviewDomain.Review, error) {
	var result []*reviewDomain.Review
	for _, r := range f.reviews {
		if r.RevieweeID() == revieweeID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) ExistsForBooking(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error) {
	for _, r := range f.reviews {
		if r.BookingID() == bookingID && r.ReviewerID() == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

// returnedBooking drives a booking through the full lifecycle so it is
// reviewable.
func returnedBooking(t *testing.T, bookings *fakeBookingRepo, items *fakeItemRepo) *BookingDTO {
	t.Helper()
	ctx := context.Background()
	it := seedPublishedItem(t, items, uuid.New())
	svc := newTestBookingService(bookings, items)

	dto, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		ItemID: it.ID(), StartDate: "2025-07-10", EndDate: "2025-07-12",
	})
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(ctx, dto.HostID, dto.ID)
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, dto.HostID, dto.ID)
	require.NoError(t, err)
	returned, err := svc.MarkReturned(ctx, dto.HostID, dto.ID)
	require.NoError(t, err)
	return returned
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("renter reviews host", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		reviews := &fakeReviewRepo{}
		bk := returnedBooking(t, bookings, newFakeItemRepo())
		svc := NewReviewService(reviews, bookings, zap.NewNop())

		dto, err := svc.CreateReview(ctx, bk.RenterID, bk.ID, CreateReviewRequest{
			Rating: 5, Comment: "great gear, easy handoff",
		})
		require.NoError(t, err)
		assert.Equal(t, "renter_to_host", dto.Role)
		assert.Equal(t, bk.HostID, dto.RevieweeID)
		assert.Equal(t, 5, dto.Rating)
	})

	t.Run("host reviews renter", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		reviews := &fakeReviewRepo{}
		bk := returnedBooking(t, bookings, newFakeItemRepo())
		svc := NewReviewService(reviews, bookings, zap.NewNop())

		dto, err := svc.CreateReview(ctx, bk.HostID, bk.ID, CreateReviewRequest{
			Rating: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "host_to_renter", dto.Role)
		assert.Equal(t, bk.RenterID, dto.RevieweeID)
	})

	t.Run("stranger cannot review", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		bk := returnedBooking(t, bookings, newFakeItemRepo())
		svc := NewReviewService(&fakeReviewRepo{}, bookings, zap.NewNop())

		_, err := svc.CreateReview(ctx, uuid.New(), bk.ID, CreateReviewRequest{Rating: 5})
		var fErr *domain.ForbiddenError
		assert.ErrorAs(t, err, &fErr)
	})

	t.Run("booking must be returned", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		items := newFakeItemRepo()
		it := seedPublishedItem(t, items, uuid.New())
		bookingSvc := newTestBookingService(bookings, items)
		bk, err := bookingSvc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
			ItemID: it.ID(), StartDate: "2025-07-10", EndDate: "2025-07-12",
		})
		require.NoError(t, err)

		svc := NewReviewService(&fakeReviewRepo{}, bookings, zap.NewNop())
		_, err = svc.CreateReview(ctx, bk.RenterID, bk.ID, CreateReviewRequest{Rating: 5})
		var cErr *domain.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})

	t.Run("duplicate review rejected", func(t *testing.T) {
		bookings := newFakeBookingRepo()
		reviews := &fakeReviewRepo{}
		bk := returnedBooking(t, bookings, newFakeItemRepo())
		svc := NewReviewService(reviews, bookings, zap.NewNop())

		_, err := svc.CreateReview(ctx, bk.RenterID, bk.ID, CreateReviewRequest{Rating: 5})
		require.NoError(t, err)

		_, err = svc.CreateReview(ctx, bk.RenterID, bk.ID, CreateReviewRequest{Rating: 4})
		var cErr *domain.ConflictError
		assert.ErrorAs(t, err, &cErr)

		// The counterparty may still review.
		_, err = svc.CreateReview(ctx, bk.HostID, bk.ID, CreateReviewRequest{Rating: 5})
		assert.NoError(t, err)
	})
}

func TestListReviews(t *testing.T) {
	ctx := context.Background()
	bookings := newFakeBookingRepo()
	reviews := &fakeReviewRepo{}
	bk := returnedBooking(t, bookings, newFakeItemRepo())
	svc := NewReviewService(reviews, bookings, zap.NewNop())

	_, err := svc.CreateReview(ctx, bk.RenterID, bk.ID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	byItem, err := svc.ListItemReviews(ctx, bk.ItemID)
	require.NoError(t, err)
	assert.Len(t, byItem, 1)

	byUser, err := svc.ListUserReviews(ctx, bk.HostID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	none, err := svc.ListUserReviews(ctx, bk.RenterID)
	require.NoError(t, err)
	assert.Len(t, none, 0)
}
