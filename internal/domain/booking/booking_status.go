package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusRejected      BookingStatus = "rejected"
	StatusCancelRequest BookingStatus = "cancel_request"
	StatusCancelled     BookingStatus = "cancelled"
	StatusCompleted     BookingStatus = "completed"
	StatusDeleted       BookingStatus = "deleted"
)

// validTransitions defines the state machine for booking status transitions.
// Soft delete (-> deleted) is permitted from every state except confirmed;
// a confirmed booking must go through cancellation first. Rejection of a
// cancel request returns the booking to confirmed.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:       {StatusConfirmed, StatusRejected, StatusCancelRequest, StatusDeleted},
	StatusConfirmed:     {StatusCancelRequest, StatusCompleted},
	StatusCancelRequest: {StatusCancelled, StatusConfirmed, StatusDeleted},
	StatusRejected:      {StatusDeleted},
	StatusCancelled:     {StatusDeleted},
	StatusCompleted:     {StatusDeleted},
	StatusDeleted:       {},
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

// CanRequestCancel returns true if a cancellation request may be raised from
// this status. Only pending and confirmed bookings qualify.
func (s BookingStatus) CanRequestCancel() bool {
	return s == StatusPending || s == StatusConfirmed
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
