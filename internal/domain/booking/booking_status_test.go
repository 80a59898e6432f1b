package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "rejected", "cancel_request", "cancelled", "completed", "deleted"} {
		status, err := ParseBookingStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := ParseBookingStatus("shipped")
	assert.Error(t, err)
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelRequest, true},
		{StatusPending, StatusDeleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelRequest, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusDeleted, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusCancelRequest, StatusCancelled, true},
		{StatusCancelRequest, StatusConfirmed, true},
		{StatusCancelRequest, StatusDeleted, true},
		{StatusCancelRequest, StatusCompleted, false},
		{StatusRejected, StatusDeleted, true},
		{StatusRejected, StatusPending, false},
		{StatusCancelled, StatusDeleted, true},
		{StatusCompleted, StatusDeleted, true},
		{StatusDeleted, StatusPending, false},
		{StatusDeleted, StatusDeleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusDeleted.IsTerminal())
	assert.True(t, BookingStatus("bogus").IsTerminal())

	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusRejected, StatusCancelRequest, StatusCancelled, StatusCompleted} {
		assert.False(t, s.IsTerminal(), "%s still admits soft delete or further transitions", s)
	}
}

func TestCanRequestCancel(t *testing.T) {
	assert.True(t, StatusPending.CanRequestCancel())
	assert.True(t, StatusConfirmed.CanRequestCancel())

	for _, s := range []BookingStatus{StatusRejected, StatusCancelRequest, StatusCancelled, StatusCompleted, StatusDeleted} {
		assert.False(t, s.CanRequestCancel(), "%s", s)
	}
}
