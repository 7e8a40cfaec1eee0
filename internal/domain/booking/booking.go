package booking

import (
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// ItemSnapshot carries the denormalized item fields copied onto a booking at
// creation time for list rendering. It is a historical snapshot: later edits
// to the item do not propagate here.
type ItemSnapshot struct {
	Title      string `json:"title"`
	CoverImage string `json:"cover_image"`
}

// Booking is the aggregate root for the booking domain. It links one item,
// one renter and one host, and is owned by none of them: deleting the item
// does not delete its bookings.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	renterID uuid.UUID
	hostID   uuid.UUID

	dates DateRange

	totalPriceCents int64
	depositCents    int64
	currency        string

	status        BookingStatus
	paymentStatus PaymentStatus

	renterMessage string
	itemSnapshot  ItemSnapshot

	respondedAt *time.Time
	pickedUpAt  *time.Time
	returnedAt  *time.Time
	canceledAt  *time.Time
	cancelNote  string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=requested and
// paymentStatus=pending. The total price, deposit and item snapshot are
// derived by the caller from the item at this moment and never recomputed,
// even if the item's price later changes.
func NewBooking(
	itemID, renterID, hostID uuid.UUID,
	dates DateRange,
	totalPriceCents, depositCents int64,
	currency string,
	renterMessage string,
	snapshot ItemSnapshot,
) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if renterID == uuid.Nil {
		return nil, domain.NewValidationError("renter ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if renterID == hostID {
		return nil, domain.NewValidationError("a host cannot book their own item")
	}
	if totalPriceCents <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}
	if depositCents < 0 {
		return nil, domain.NewValidationError("deposit cannot be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		itemID:          itemID,
		renterID:        renterID,
		hostID:          hostID,
		dates:           dates,
		totalPriceCents: totalPriceCents,
		depositCents:    depositCents,
		currency:        currency,
		status:          StatusRequested,
		paymentStatus:   PaymentPending,
		renterMessage:   renterMessage,
		itemSnapshot:    snapshot,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, renterID, hostID uuid.UUID,
	dates DateRange,
	totalPriceCents, depositCents int64,
	currency string,
	status BookingStatus,
	paymentStatus PaymentStatus,
	renterMessage string,
	snapshot ItemSnapshot,
	respondedAt, pickedUpAt, returnedAt, canceledAt *time.Time,
	cancelNote string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		itemID:          itemID,
		renterID:        renterID,
		hostID:          hostID,
		dates:           dates,
		totalPriceCents: totalPriceCents,
		depositCents:    depositCents,
		currency:        currency,
		status:          status,
		paymentStatus:   paymentStatus,
		renterMessage:   renterMessage,
		itemSnapshot:    snapshot,
		respondedAt:     respondedAt,
		pickedUpAt:      pickedUpAt,
		returnedAt:      returnedAt,
		canceledAt:      canceledAt,
		cancelNote:      cancelNote,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// RenterID returns the renter's user ID.
func (b *Booking) RenterID() uuid.UUID { return b.renterID }

// HostID returns the host's user ID, denormalized from the item at creation.
func (b *Booking) HostID() uuid.UUID { return b.hostID }

// Dates returns the booked date range.
func (b *Booking) Dates() DateRange { return b.dates }

// TotalPriceCents returns the total price fixed at creation time.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// DepositCents returns the deposit copied from the item at creation time.
func (b *Booking) DepositCents() int64 { return b.depositCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentStatus returns the stored payment label.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// RenterMessage returns the optional message the renter attached.
func (b *Booking) RenterMessage() string { return b.renterMessage }

// ItemSnapshot returns the denormalized item title and cover image.
func (b *Booking) ItemSnapshot() ItemSnapshot { return b.itemSnapshot }

// RespondedAt returns the time the host confirmed or denied, or nil.
func (b *Booking) RespondedAt() *time.Time { return b.respondedAt }

// PickedUpAt returns the time the item was picked up, or nil.
func (b *Booking) PickedUpAt() *time.Time { return b.pickedUpAt }

// ReturnedAt returns the time the item was returned, or nil.
func (b *Booking) ReturnedAt() *time.Time { return b.returnedAt }

// CanceledAt returns the time the booking was canceled, or nil.
func (b *Booking) CanceledAt() *time.Time { return b.canceledAt }

// CancelNote returns the cancellation reason.
func (b *Booking) CancelNote() string { return b.cancelNote }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsParty returns true if the given user is the renter or the host.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return userID == b.renterID || userID == b.hostID
}

// --- Behavior ---

// Confirm transitions the booking from requested to confirmed. Only the host
// may resolve a request.
func (b *Booking) Confirm(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host can confirm a booking")
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	b.status = StatusConfirmed
	b.respondedAt = &now
	b.updatedAt = now
	return nil
}

// Deny transitions the booking from requested to denied. Only the host may
// resolve a request.
func (b *Booking) Deny(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host can deny a booking")
	}
	if !b.status.CanTransitionTo(StatusDenied) {
		return domain.NewInvalidStateError(string(b.status), string(StatusDenied))
	}
	now := time.Now().UTC()
	b.status = StatusDenied
	b.respondedAt = &now
	b.updatedAt = now
	return nil
}

// MarkPickedUp transitions the booking from confirmed to in_use when the
// host hands the item over.
func (b *Booking) MarkPickedUp(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host can mark a booking picked up")
	}
	if !b.status.CanTransitionTo(StatusInUse) {
		return domain.NewInvalidStateError(string(b.status), string(StatusInUse))
	}
	now := time.Now().UTC()
	b.status = StatusInUse
	b.pickedUpAt = &now
	b.updatedAt = now
	return nil
}

// MarkReturned transitions the booking from in_use to returned when the host
// receives the item back.
func (b *Booking) MarkReturned(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host can mark a booking returned")
	}
	if !b.status.CanTransitionTo(StatusReturned) {
		return domain.NewInvalidStateError(string(b.status), string(StatusReturned))
	}
	now := time.Now().UTC()
	b.status = StatusReturned
	b.returnedAt = &now
	b.updatedAt = now
	return nil
}

// Cancel transitions the booking to canceled. Either party may cancel while
// the booking is not in a terminal state.
func (b *Booking) Cancel(actorID uuid.UUID, reason string) error {
	if !b.IsParty(actorID) {
		return domain.NewForbiddenError("only the renter or host can cancel a booking")
	}
	if !b.status.CanBeCanceled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCanceled))
	}
	now := time.Now().UTC()
	b.status = StatusCanceled
	b.cancelNote = reason
	b.canceledAt = &now
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
