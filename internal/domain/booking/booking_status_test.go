package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusRequested, StatusConfirmed, true},
		{StatusRequested, StatusDenied, true},
		{StatusRequested, StatusCanceled, true},
		{StatusRequested, StatusInUse, false},
		{StatusRequested, StatusReturned, false},

		{StatusConfirmed, StatusInUse, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusDenied, false},
		{StatusConfirmed, StatusRequested, false},

		{StatusInUse, StatusReturned, true},
		{StatusInUse, StatusCanceled, true},
		{StatusInUse, StatusConfirmed, false},

		{StatusDenied, StatusConfirmed, false},
		{StatusReturned, StatusInUse, false},
		{StatusCanceled, StatusRequested, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusRequested.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInUse.IsTerminal())
	assert.True(t, StatusDenied.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}

func TestBookingStatusBlocks(t *testing.T) {
	assert.True(t, StatusConfirmed.Blocks())
	assert.True(t, StatusInUse.Blocks())

	assert.False(t, StatusRequested.Blocks())
	assert.False(t, StatusDenied.Blocks())
	assert.False(t, StatusReturned.Blocks())
	assert.False(t, StatusCanceled.Blocks())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("shipped")
	assert.Error(t, err)
}
