package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vivutravel/service-booking/internal/domain"
)

// Default reason texts applied when a privileged actor supplies none.
const (
	DefaultRejectReason       = "rejected by operator"
	DefaultRejectCancelReason = "cancellation request rejected"
)

// Booking is the aggregate root for one reservation request against a tour.
//
// The original request note (userNote) is immutable once set; transition
// reasons land in statusReason so a rejection never clobbers what the
// customer wrote.
type Booking struct {
	id             uuid.UUID
	tourID         uuid.UUID
	userID         *uuid.UUID
	numberOfPeople int
	totalPrice     decimal.Decimal
	startDate      time.Time
	bookingDate    time.Time
	status         BookingStatus
	userNote       string
	statusReason   string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in pending status. A nil userID denotes a
// guest booking. totalPrice is computed once by the caller (tour price times
// headcount) and never recomputed.
func NewBooking(
	tourID uuid.UUID,
	userID *uuid.UUID,
	numberOfPeople int,
	totalPrice decimal.Decimal,
	startDate time.Time,
	note string,
) (*Booking, error) {
	if tourID == uuid.Nil {
		return nil, domain.NewValidationError("tour ID is required")
	}
	if numberOfPeople < 1 {
		return nil, domain.NewValidationError("number of people must be at least 1")
	}
	if startDate.IsZero() {
		return nil, domain.NewValidationError("start date is required")
	}
	if totalPrice.IsNegative() || totalPrice.IsZero() {
		return nil, domain.NewValidationError("total price must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		tourID:         tourID,
		userID:         userID,
		numberOfPeople: numberOfPeople,
		totalPrice:     totalPrice,
		startDate:      startDate,
		bookingDate:    now,
		status:         StatusPending,
		userNote:       note,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	tourID uuid.UUID,
	userID *uuid.UUID,
	numberOfPeople int,
	totalPrice decimal.Decimal,
	startDate time.Time,
	bookingDate time.Time,
	status BookingStatus,
	userNote string,
	statusReason string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		tourID:         tourID,
		userID:         userID,
		numberOfPeople: numberOfPeople,
		totalPrice:     totalPrice,
		startDate:      startDate,
		bookingDate:    bookingDate,
		status:         status,
		userNote:       userNote,
		statusReason:   statusReason,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// TourID returns the booked tour's identifier.
func (b *Booking) TourID() uuid.UUID { return b.tourID }

// UserID returns the requester's user ID, or nil for a guest booking.
func (b *Booking) UserID() *uuid.UUID { return b.userID }

// NumberOfPeople returns the requested headcount.
func (b *Booking) NumberOfPeople() int { return b.numberOfPeople }

// TotalPrice returns the total price computed at creation.
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }

// StartDate returns the caller-supplied proposed departure date.
func (b *Booking) StartDate() time.Time { return b.startDate }

// BookingDate returns the server-clock creation time.
func (b *Booking) BookingDate() time.Time { return b.bookingDate }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// UserNote returns the customer's original request note.
func (b *Booking) UserNote() string { return b.userNote }

// StatusReason returns the reason attached to the latest transition.
func (b *Booking) StatusReason() string { return b.statusReason }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy reports whether the booking belongs to the given user. Guest
// bookings have no owner.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID != nil && *b.userID == userID
}

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed. The capacity
// check happens in the service layer against the authoritative confirmed sum
// before this is called.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) || b.status != StatusPending {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reject transitions the booking from pending to rejected.
func (b *Booking) Reject(reason string) error {
	if b.status != StatusPending || !b.status.CanTransitionTo(StatusRejected) {
		return domain.NewInvalidStateError(string(b.status), string(StatusRejected))
	}
	if reason == "" {
		reason = DefaultRejectReason
	}
	b.status = StatusRejected
	b.statusReason = reason
	b.updatedAt = time.Now().UTC()
	return nil
}

// RequestCancel raises a cancellation request from pending or confirmed.
func (b *Booking) RequestCancel(reason string) error {
	if !b.status.CanRequestCancel() || !b.status.CanTransitionTo(StatusCancelRequest) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelRequest))
	}
	b.status = StatusCancelRequest
	if reason != "" {
		b.statusReason = reason
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

// ApproveCancel transitions the booking from cancel_request to cancelled.
func (b *Booking) ApproveCancel() error {
	if b.status != StatusCancelRequest || !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// RejectCancel denies a cancellation request and returns the booking to
// confirmed.
func (b *Booking) RejectCancel(reason string) error {
	if b.status != StatusCancelRequest || !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	if reason == "" {
		reason = DefaultRejectCancelReason
	}
	b.status = StatusConfirmed
	b.statusReason = reason
	b.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the booking from confirmed to completed. A tour that
// has not yet departed cannot be marked complete.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed || !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	if b.startDate.After(now) {
		return domain.NewValidationError("booking cannot be completed before its start date")
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// SoftDelete marks the booking deleted. Confirmed bookings must be cancelled
// first; deleted rows stay queryable by id but drop out of all listings.
func (b *Booking) SoftDelete() error {
	if !b.status.CanTransitionTo(StatusDeleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusDeleted))
	}
	b.status = StatusDeleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
