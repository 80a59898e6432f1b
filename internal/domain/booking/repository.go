package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows listing queries to a caller-supplied status set.
// Deleted bookings are always excluded from listings regardless of filter.
type ListFilter struct {
	Statuses []BookingStatus
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier, including
	// soft-deleted rows.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByOwner retrieves bookings belonging to an owner with pagination,
	// excluding deleted rows, newest booking date first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// FindAll retrieves bookings across all owners with pagination, excluding
	// deleted rows, oldest booking date first (operator triage queue).
	FindAll(ctx context.Context, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// FindStalePending retrieves pending bookings whose booking date is
	// older than the cutoff.
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*Booking, error)

	// SumConfirmedParticipants returns the authoritative confirmed sum for a
	// tour: total headcount across all confirmed bookings, computed at the
	// moment of the call.
	SumConfirmedParticipants(ctx context.Context, tourID uuid.UUID) (int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, b *Booking) error
}
