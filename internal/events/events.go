package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicRentalEvents = "rental.events"
	TopicUserEvents   = "user.events"
)

// Event types.
const (
	BookingRequested = "rental.booking.requested"
	BookingConfirmed = "rental.booking.confirmed"
	BookingDenied    = "rental.booking.denied"
	BookingPickedUp  = "rental.booking.picked_up"
	BookingReturned  = "rental.booking.returned"
	BookingCanceled  = "rental.booking.canceled"

	UserProfileUpdated = "user.profile_updated"
)

// BookingRequestedEvent announces a new booking request to the host.
type BookingRequestedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	ItemID          uuid.UUID `json:"item_id"`
	RenterID        uuid.UUID `json:"renter_id"`
	HostID          uuid.UUID `json:"host_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent announces any lifecycle transition after the
// initial request; the event type distinguishes which one.
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	HostID     uuid.UUID `json:"host_id"`
	Status     string    `json:"status"`
	ActorID    uuid.UUID `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserProfileUpdatedEvent announces a profile edit so denormalized host
// fields on items can be refreshed.
type UserProfileUpdatedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url"`
	OccurredAt time.Time `json:"occurred_at"`
}
