package repository

import (
	"context"
	"fmt"
	"time"

	reviewDomain "github.com/gearshare/service-rental/internal/domain/review"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"`
	RevieweeID uuid.UUID `gorm:"type:uuid;index;not null"`
	Role       string    `gorm:"not null;size:20"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"size:2000"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of ReviewRepository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := toReviewModel(rv)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// FindByItemID returns all reviews for an item, newest first.
func (r *GormReviewRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews by item: %w", err)
	}
	return toDomainReviews(models), nil
}

// FindByRevieweeID returns all reviews about a user, newest first.
func (r *GormReviewRepository) FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews by reviewee: %w", err)
	}
	return toDomainReviews(models), nil
}

// ExistsForBooking reports whether the reviewer already reviewed the booking.
func (r *GormReviewRepository) ExistsForBooking(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("booking_id = ? AND reviewer_id = ?", bookingID, reviewerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check for existing review: %w", err)
	}
	return count > 0, nil
}

// --- Conversion Helpers ---

func toReviewModel(rv *reviewDomain.Review) *ReviewModel {
	return &ReviewModel{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		ItemID:     rv.ItemID(),
		ReviewerID: rv.ReviewerID(),
		RevieweeID: rv.RevieweeID(),
		Role:       string(rv.Role()),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}

func toDomainReviews(models []ReviewModel) []*reviewDomain.Review {
	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = reviewDomain.Reconstruct(
			m.ID,
			m.BookingID,
			m.ItemID,
			m.ReviewerID,
			m.RevieweeID,
			reviewDomain.ReviewRole(m.Role),
			m.Rating,
			m.Comment,
			m.CreatedAt,
		)
	}
	return reviews
}
