package application

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/platform/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to request a booking. Total
// price, deposit, host and item snapshot are derived server-side from the
// item, never trusted from the client.
type CreateBookingRequest struct {
	ItemID        uuid.UUID `json:"item_id" binding:"required"`
	StartDate     string    `json:"start_date" binding:"required"`
	EndDate       string    `json:"end_date" binding:"required"`
	RenterMessage string    `json:"renter_message"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	ItemID          uuid.UUID  `json:"item_id"`
	RenterID        uuid.UUID  `json:"renter_id"`
	HostID          uuid.UUID  `json:"host_id"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Days            int        `json:"days"`
	TotalPriceCents int64      `json:"total_price_cents"`
	DepositCents    int64      `json:"deposit_cents"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	RenterMessage   string     `json:"renter_message,omitempty"`
	ItemTitle       string     `json:"item_title"`
	ItemImage       string     `json:"item_image,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	PickedUpAt      *time.Time `json:"picked_up_at,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	CanceledAt      *time.Time `json:"canceled_at,omitempty"`
	CancelNote      string     `json:"cancel_note,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings     bookingDomain.BookingRepository
	items        itemDomain.ItemRepository
	availability *bookingDomain.AvailabilityChecker
	pricing      bookingDomain.PricingStrategy
	producer     *kafka.Producer
	logger       *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	pricing bookingDomain.PricingStrategy,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		items:        items,
		availability: bookingDomain.NewAvailabilityChecker(bookings),
		pricing:      pricing,
		producer:     producer,
		logger:       logger,
	}
}

// CheckAvailability reports whether the item can be booked for the range.
// Advisory only: a concurrent request may still book the same dates between
// this check and a later create.
func (s *BookingService) CheckAvailability(ctx context.Context, itemID uuid.UUID, startDate, endDate string) (bool, error) {
	dates, err := bookingDomain.NewDateRange(startDate, endDate)
	if err != nil {
		return false, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return false, err
	}
	return s.availability.IsAvailable(ctx, itemID, dates)
}

// CreateBooking requests a booking for the renter. The availability check
// and the create are two independent round trips; callers must tolerate the
// race where two overlapping bookings both pass the check.
func (s *BookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	dates, err := bookingDomain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.IsPublished() {
		return nil, domain.NewValidationError("item is not published")
	}
	if it.IsOwnedBy(renterID) {
		return nil, domain.NewValidationError("a host cannot book their own item")
	}

	available, err := s.availability.IsAvailable(ctx, req.ItemID, dates)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.NewConflictError("the requested dates are not available")
	}

	totalPrice, err := s.pricing.TotalPriceCents(it.PricePerDayCents(), dates)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(
		it.ID(),
		renterID,
		it.HostID(),
		dates,
		totalPrice,
		it.DepositCents(),
		it.Currency(),
		req.RenterMessage,
		bookingDomain.ItemSnapshot{Title: it.Title(), CoverImage: it.CoverImage()},
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishRequested(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Only the renter or host may view it.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParty(actorID) {
		return nil, domain.NewForbiddenError("booking is only visible to its renter and host")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking lets the host accept a requested booking.
func (s *BookingService) ConfirmBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, events.BookingConfirmed, actorID, "", func(bk *bookingDomain.Booking) error {
		return bk.Confirm(actorID)
	})
}

// DenyBooking lets the host reject a requested booking.
func (s *BookingService) DenyBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, events.BookingDenied, actorID, "", func(bk *bookingDomain.Booking) error {
		return bk.Deny(actorID)
	})
}

// MarkPickedUp lets the host record that the item was handed over.
func (s *BookingService) MarkPickedUp(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, events.BookingPickedUp, actorID, "", func(bk *bookingDomain.Booking) error {
		return bk.MarkPickedUp(actorID)
	})
}

// MarkReturned lets the host record that the item came back.
func (s *BookingService) MarkReturned(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, events.BookingReturned, actorID, "", func(bk *bookingDomain.Booking) error {
		return bk.MarkReturned(actorID)
	})
}

// CancelBooking lets either party cancel a pre-terminal booking.
func (s *BookingService) CancelBooking(ctx context.Context, actorID, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	return s.transition(ctx, bookingID, events.BookingCanceled, actorID, reason, func(bk *bookingDomain.Booking) error {
		return bk.Cancel(actorID, reason)
	})
}

// transition loads the booking, applies the aggregate mutation, persists it
// with optimistic locking and publishes the lifecycle event.
func (s *BookingService) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	eventType string,
	actorID uuid.UUID,
	reason string,
	mutate func(*bookingDomain.Booking) error,
) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := mutate(bk); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingStatusChangedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		RenterID:   bk.RenterID(),
		HostID:     bk.HostID(),
		Status:     string(bk.Status()),
		ActorID:    actorID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, eventType, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// ListRenterBookings retrieves paginated bookings the user has requested.
func (s *BookingService) ListRenterBookings(ctx context.Context, renterID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByRenterID(ctx, renterID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// ListHostBookings retrieves paginated bookings received for the user's items.
func (s *BookingService) ListHostBookings(ctx context.Context, hostID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByHostID(ctx, hostID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		ItemID:          bk.ItemID(),
		RenterID:        bk.RenterID(),
		HostID:          bk.HostID(),
		StartDate:       bk.Dates().StartString(),
		EndDate:         bk.Dates().EndString(),
		Days:            bk.Dates().Days(),
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
		CreatedAt:       bk.CreatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:       bk.ID(),
		ItemID:          bk.ItemID(),
		RenterID:        bk.RenterID(),
		HostID:          bk.HostID(),
		StartDate:       bk.Dates().StartString(),
		EndDate:         bk.Dates().EndString(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicRentalEvents, events.BookingRequested, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
