package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ItemID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	RenterID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	HostID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	StartDate       time.Time  `gorm:"type:date;not null"`
	EndDate         time.Time  `gorm:"type:date;not null"`
	TotalPriceCents int64      `gorm:"not null"`
	DepositCents    int64      `gorm:"not null"`
	Currency        string     `gorm:"not null;size:3;default:'USD'"`
	Status          string     `gorm:"not null;size:20;index"`
	PaymentStatus   string     `gorm:"not null;size:20;default:'pending'"`
	RenterMessage   string     `gorm:"size:1000"`
	ItemTitle       string     `gorm:"not null;size:200"`
	ItemImage       string     `gorm:"type:text"`
	RespondedAt     *time.Time `gorm:""`
	PickedUpAt      *time.Time `gorm:""`
	ReturnedAt      *time.Time `gorm:""`
	CanceledAt      *time.Time `gorm:""`
	CancelNote      string     `gorm:"size:500"`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindBlocking retrieves all confirmed and in_use bookings for an item.
// These are the only statuses that make dates unavailable to new requests.
func (r *GormBookingRepository) FindBlocking(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND status IN ?", itemID,
			[]string{string(bookingDomain.StatusConfirmed), string(bookingDomain.StatusInUse)}).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find blocking bookings: %w", err)
	}
	return toDomainBookings(models)
}

// FindByRenterID retrieves bookings made by a specific renter with pagination.
func (r *GormBookingRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "renter_id = ?", renterID, page, limit)
}

// FindByHostID retrieves bookings received by a specific host with pagination.
func (r *GormBookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "host_id = ?", hostID, page, limit)
}

func (r *GormBookingRepository) findPage(ctx context.Context, cond string, arg interface{}, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before Update).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"payment_status": model.PaymentStatus,
			"responded_at":   model.RespondedAt,
			"picked_up_at":   model.PickedUpAt,
			"returned_at":    model.ReturnedAt,
			"canceled_at":    model.CanceledAt,
			"cancel_note":    model.CancelNote,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:              bk.ID(),
		ItemID:          bk.ItemID(),
		RenterID:        bk.RenterID(),
		HostID:          bk.HostID(),
		StartDate:       bk.Dates().Start,
		EndDate:         bk.Dates().End,
		TotalPriceCents: bk.TotalPriceCents(),
		DepositCents:    bk.DepositCents(),
		Currency:        bk.Currency(),
		Status:          string(bk.Status()),
		PaymentStatus:   string(bk.PaymentStatus()),
		RenterMessage:   bk.RenterMessage(),
		ItemTitle:       bk.ItemSnapshot().Title,
		ItemImage:       bk.ItemSnapshot().CoverImage,
		RespondedAt:     bk.RespondedAt(),
		PickedUpAt:      bk.PickedUpAt(),
		ReturnedAt:      bk.ReturnedAt(),
		CanceledAt:      bk.CanceledAt(),
		CancelNote:      bk.CancelNote(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	// DATE columns come back as midnight timestamps; normalize to UTC so
	// calendar comparisons stay pure.
	dates := bookingDomain.DateRange{
		Start: m.StartDate.UTC().Truncate(24 * time.Hour),
		End:   m.EndDate.UTC().Truncate(24 * time.Hour),
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.RenterID,
		m.HostID,
		dates,
		m.TotalPriceCents,
		m.DepositCents,
		m.Currency,
		status,
		bookingDomain.PaymentStatus(m.PaymentStatus),
		m.RenterMessage,
		bookingDomain.ItemSnapshot{Title: m.ItemTitle, CoverImage: m.ItemImage},
		m.RespondedAt,
		m.PickedUpAt,
		m.ReturnedAt,
		m.CanceledAt,
		m.CancelNote,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
