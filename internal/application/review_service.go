package application

import (
	"context"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	reviewDomain "github.com/gearshare/service-rental/internal/domain/review"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewRequest holds the data needed to leave a review. The booking
// it refers to comes from the URL, not the body.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewDTO is the response representation of a review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id"`
	Role       string    `json:"role"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewService handles post-rental reviews. A review is tied to a completed
// booking: each party can leave exactly one about the other.
type ReviewService struct {
	reviews  reviewDomain.ReviewRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews reviewDomain.ReviewRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		logger:   logger,
	}
}

// CreateReview records a review for a returned booking. The reviewer must be
// a party to the booking; the counterparty is derived rather than trusted
// from the request.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerID, bookingID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !b.IsParty(reviewerID) {
		return nil, domain.NewForbiddenError("only a party to the booking can review it")
	}
	if b.Status() != bookingDomain.StatusReturned {
		return nil, domain.NewConflictError("only returned bookings can be reviewed")
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID(), reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("you have already reviewed this booking")
	}

	role := reviewDomain.RoleRenterToHost
	revieweeID := b.HostID()
	if reviewerID == b.HostID() {
		role = reviewDomain.RoleHostToRenter
		revieweeID = b.RenterID()
	}

	r, err := reviewDomain.NewReview(b.ID(), b.ItemID(), reviewerID, revieweeID, role, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", r.ID().String()),
		zap.String("booking_id", b.ID().String()),
	)

	result := toReviewDTO(r)
	return &result, nil
}

// ListItemReviews returns the reviews left on an item, newest first.
func (s *ReviewService) ListItemReviews(ctx context.Context, itemID uuid.UUID) ([]ReviewDTO, error) {
	reviews, err := s.reviews.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

// ListUserReviews returns the reviews received by a user, newest first.
func (s *ReviewService) ListUserReviews(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error) {
	reviews, err := s.reviews.FindByRevieweeID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

func toReviewDTO(r *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID(),
		BookingID:  r.BookingID(),
		ItemID:     r.ItemID(),
		ReviewerID: r.ReviewerID(),
		RevieweeID: r.RevieweeID(),
		Role:       string(r.Role()),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toReviewDTOs(reviews []*reviewDomain.Review) []ReviewDTO {
	result := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, toReviewDTO(r))
	}
	return result
}
