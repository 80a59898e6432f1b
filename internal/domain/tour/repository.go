package tour

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for tour aggregates.
type Repository interface {
	// FindByID retrieves a tour by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Tour, error)

	// FindByIDForUpdate retrieves a tour with a row lock so a capacity
	// decision and the counter refresh serialize against concurrent confirms.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Tour, error)

	// List retrieves non-deleted tours with pagination.
	List(ctx context.Context, page, limit int) ([]*Tour, int64, error)

	// Save persists a new tour.
	Save(ctx context.Context, t *Tour) error

	// UpdateStatus persists a tour status change.
	UpdateStatus(ctx context.Context, id uuid.UUID, status TourStatus) error

	// RefreshParticipantCount overwrites the stored participant cache with
	// the recomputed confirmed sum.
	RefreshParticipantCount(ctx context.Context, id uuid.UUID, confirmedSum int64) error
}
