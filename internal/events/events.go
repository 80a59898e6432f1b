package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types.
const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"

	PaymentSucceeded = "payment.succeeded"
)

// BookingCreatedEvent is published when a new booking enters pending.
type BookingCreatedEvent struct {
	BookingID      uuid.UUID       `json:"booking_id"`
	TourID         uuid.UUID       `json:"tour_id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	NumberOfPeople int             `json:"number_of_people"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	StartDate      time.Time       `json:"start_date"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// BookingConfirmedEvent is published after a successful capacity check.
type BookingConfirmedEvent struct {
	BookingID      uuid.UUID `json:"booking_id"`
	TourID         uuid.UUID `json:"tour_id"`
	NumberOfPeople int       `json:"number_of_people"`
	ConfirmedSum   int64     `json:"confirmed_sum"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingRejectedEvent is published when an operator rejects a pending booking.
type BookingRejectedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	TourID     uuid.UUID `json:"tour_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a cancellation is approved.
type BookingCancelledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	TourID     uuid.UUID `json:"tour_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published when a booking is marked complete.
type BookingCompletedEvent struct {
	BookingID  uuid.UUID       `json:"booking_id"`
	TourID     uuid.UUID       `json:"tour_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// PaymentSucceededEvent arrives from the payment service when a gateway
// payment for a booking settles. The gateway itself is out of scope; this
// event is the interface.
type PaymentSucceededEvent struct {
	PaymentID  uuid.UUID       `json:"payment_id"`
	BookingID  uuid.UUID       `json:"booking_id"`
	Amount     decimal.Decimal `json:"amount"`
	Provider   string          `json:"provider"`
	OccurredAt time.Time       `json:"occurred_at"`
}
