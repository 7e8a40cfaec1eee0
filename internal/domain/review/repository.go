package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Save persists a new review.
	Save(ctx context.Context, review *Review) error

	// FindByItemID returns all reviews for an item, newest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Review, error)

	// FindByRevieweeID returns all reviews about a user, newest first.
	FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*Review, error)

	// ExistsForBooking reports whether the reviewer already reviewed the booking.
	ExistsForBooking(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error)
}
