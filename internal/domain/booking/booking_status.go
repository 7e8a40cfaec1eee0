package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusConfirmed BookingStatus = "confirmed"
	StatusDenied    BookingStatus = "denied"
	StatusInUse     BookingStatus = "in_use"
	StatusReturned  BookingStatus = "returned"
	StatusCanceled  BookingStatus = "canceled"
)

// validTransitions defines the state machine for booking status transitions.
// The host resolves a requested booking to confirmed or denied; fulfillment
// progresses confirmed -> in_use -> returned; any pre-terminal state may be
// canceled. denied, returned and canceled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested: {StatusConfirmed, StatusDenied, StatusCanceled},
	StatusConfirmed: {StatusInUse, StatusCanceled},
	StatusInUse:     {StatusReturned, StatusCanceled},
	StatusDenied:    {},
	StatusReturned:  {},
	StatusCanceled:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// Blocks returns true if a booking in this status makes its date range
// unavailable to new requests. Only confirmed and in_use bookings block;
// requested, denied, returned and canceled never do.
func (s BookingStatus) Blocks() bool {
	return s == StatusConfirmed || s == StatusInUse
}

// CanBeCanceled returns true if the booking can be canceled from this status.
func (s BookingStatus) CanBeCanceled() bool {
	return s.CanTransitionTo(StatusCanceled)
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// PaymentStatus is the stored payment label on a booking. It is set to
// pending at creation and never transitioned by this service; reconciling it
// with a real payment gateway is out of scope.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// IsValid returns true if the payment status is recognized.
func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid
}
