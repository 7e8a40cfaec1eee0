package review

import (
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// ReviewRole identifies which party of a booking wrote the review.
type ReviewRole string

const (
	RoleRenterToHost ReviewRole = "renter_to_host"
	RoleHostToRenter ReviewRole = "host_to_renter"
)

// IsValid returns true if the role is recognized.
func (r ReviewRole) IsValid() bool {
	return r == RoleRenterToHost || r == RoleHostToRenter
}

// Review is a rating left by one party of a returned booking about the
// other. Rating aggregates on users and items are maintained externally;
// this service only stores and lists reviews.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	itemID     uuid.UUID
	reviewerID uuid.UUID
	revieweeID uuid.UUID
	role       ReviewRole
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview creates a new Review with a rating between 1 and 5.
func NewReview(bookingID, itemID, reviewerID, revieweeID uuid.UUID, role ReviewRole, rating int, comment string) (*Review, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid review role: %s", role))
	}
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}
	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		itemID:     itemID,
		reviewerID: reviewerID,
		revieweeID: revieweeID,
		role:       role,
		rating:     rating,
		comment:    comment,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence data.
func Reconstruct(id, bookingID, itemID, reviewerID, revieweeID uuid.UUID, role ReviewRole, rating int, comment string, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		itemID:     itemID,
		reviewerID: reviewerID,
		revieweeID: revieweeID,
		role:       role,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

// Getters.
func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) ItemID() uuid.UUID     { return r.itemID }
func (r *Review) ReviewerID() uuid.UUID { return r.reviewerID }
func (r *Review) RevieweeID() uuid.UUID { return r.revieweeID }
func (r *Review) Role() ReviewRole      { return r.role }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }
