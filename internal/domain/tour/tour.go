package tour

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vivutravel/service-booking/internal/domain"
)

// DefaultMaxParticipants is applied when a tour is created without a valid
// seat cap.
const DefaultMaxParticipants = 50

// Tour is the aggregate root for a bookable travel product.
type Tour struct {
	id                  uuid.UUID
	name                string
	description         string
	startLocation       string
	price               decimal.Decimal
	maxParticipants     int
	currentParticipants int64
	status              TourStatus

	createdAt time.Time
	updatedAt time.Time
}

// NewTour creates a new Tour in active status. A non-positive maxParticipants
// falls back to DefaultMaxParticipants.
func NewTour(name, description, startLocation string, price decimal.Decimal, maxParticipants int) (*Tour, error) {
	if name == "" {
		return nil, domain.NewValidationError("tour name is required")
	}
	if !price.IsPositive() {
		return nil, domain.NewValidationError("tour price must be positive")
	}
	if maxParticipants <= 0 {
		maxParticipants = DefaultMaxParticipants
	}

	now := time.Now().UTC()
	return &Tour{
		id:              uuid.New(),
		name:            name,
		description:     description,
		startLocation:   startLocation,
		price:           price,
		maxParticipants: maxParticipants,
		status:          StatusActive,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructTour rebuilds a Tour from persistence data (no validation).
func ReconstructTour(
	id uuid.UUID,
	name, description, startLocation string,
	price decimal.Decimal,
	maxParticipants int,
	currentParticipants int64,
	status TourStatus,
	createdAt, updatedAt time.Time,
) *Tour {
	return &Tour{
		id:                  id,
		name:                name,
		description:         description,
		startLocation:       startLocation,
		price:               price,
		maxParticipants:     maxParticipants,
		currentParticipants: currentParticipants,
		status:              status,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ID returns the tour's unique identifier.
func (t *Tour) ID() uuid.UUID { return t.id }

// Name returns the tour name.
func (t *Tour) Name() string { return t.name }

// Description returns the tour description.
func (t *Tour) Description() string { return t.description }

// StartLocation returns the departure location.
func (t *Tour) StartLocation() string { return t.startLocation }

// Price returns the per-person price.
func (t *Tour) Price() decimal.Decimal { return t.price }

// MaxParticipants returns the seat cap.
func (t *Tour) MaxParticipants() int { return t.maxParticipants }

// CurrentParticipants returns the write-after participant cache. It is
// refreshed for display after transitions and must never gate a capacity
// decision.
func (t *Tour) CurrentParticipants() int64 { return t.currentParticipants }

// Status returns the current tour status.
func (t *Tour) Status() TourStatus { return t.status }

// CreatedAt returns the creation timestamp.
func (t *Tour) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (t *Tour) UpdatedAt() time.Time { return t.updatedAt }

// IsBookable reports whether bookings may be created or confirmed against
// this tour.
func (t *Tour) IsBookable() bool {
	return t.status == StatusActive
}

// RemainingSeats returns how many seats are left given the authoritative
// confirmed sum.
func (t *Tour) RemainingSeats(confirmedSum int64) int64 {
	remaining := int64(t.maxParticipants) - confirmedSum
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetStatus changes the tour lifecycle status.
func (t *Tour) SetStatus(status TourStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("invalid tour status: " + string(status))
	}
	t.status = status
	t.updatedAt = time.Now().UTC()
	return nil
}

// RefreshParticipants overwrites the display cache with the recomputed
// confirmed sum.
func (t *Tour) RefreshParticipants(confirmedSum int64) {
	t.currentParticipants = confirmedSum
	t.updatedAt = time.Now().UTC()
}
