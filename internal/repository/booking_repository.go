package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vivutravel/service-booking/internal/domain"
	bookingDomain "github.com/vivutravel/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TourID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	UserID         *uuid.UUID      `gorm:"type:uuid;index"`
	NumberOfPeople int             `gorm:"not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	StartDate      time.Time       `gorm:"not null"`
	BookingDate    time.Time       `gorm:"not null;index"`
	Status         string          `gorm:"not null;size:20;index"`
	UserNote       string          `gorm:"size:1000"`
	StatusReason   string          `gorm:"size:500"`
	Version        int64           `gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier. Soft-deleted rows
// are still reachable here; listings exclude them.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByOwner retrieves an owner's bookings with pagination, excluding
// deleted rows, newest booking date first.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filter).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.listQuery(ctx, filter).
		Where("user_id = ?", ownerID).
		Order("booking_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// FindAll retrieves bookings across all owners with pagination, excluding
// deleted rows, oldest booking date first so operators triage the
// longest-waiting requests.
func (r *GormBookingRepository) FindAll(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.listQuery(ctx, filter).
		Order("booking_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// FindStalePending retrieves pending bookings older than the cutoff.
func (r *GormBookingRepository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := dbFrom(ctx, r.db).
		Where("status = ? AND booking_date < ?", string(bookingDomain.StatusPending), cutoff).
		Order("booking_date ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find stale pending bookings: %w", err)
	}

	bookings, _, err := toDomainBookings(models, 0)
	return bookings, err
}

// SumConfirmedParticipants recomputes the confirmed sum for a tour from the
// bookings table. Always an aggregate query at the moment of check, never a
// cached counter.
func (r *GormBookingRepository) SumConfirmedParticipants(ctx context.Context, tourID uuid.UUID) (int64, error) {
	var sum int64
	err := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("tour_id = ? AND status = ?", tourID, string(bookingDomain.StatusConfirmed)).
		Select("COALESCE(SUM(number_of_people), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum confirmed participants: %w", err)
	}
	return sum, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := dbFrom(ctx, r.db).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before Update).
	expectedVersion := b.Version() - 1
	result := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"user_note":     model.UserNote,
			"status_reason": model.StatusReason,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// listQuery builds the base listing query: deleted rows excluded, optional
// status-set filter applied.
func (r *GormBookingRepository) listQuery(ctx context.Context, filter bookingDomain.ListFilter) *gorm.DB {
	query := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("status <> ?", string(bookingDomain.StatusDeleted))

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	return query
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             b.ID(),
		TourID:         b.TourID(),
		UserID:         b.UserID(),
		NumberOfPeople: b.NumberOfPeople(),
		TotalPrice:     b.TotalPrice(),
		StartDate:      b.StartDate(),
		BookingDate:    b.BookingDate(),
		Status:         string(b.Status()),
		UserNote:       b.UserNote(),
		StatusReason:   b.StatusReason(),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.TourID,
		m.UserID,
		m.NumberOfPeople,
		m.TotalPrice,
		m.StartDate,
		m.BookingDate,
		status,
		m.UserNote,
		m.StatusReason,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}
	return bookings, total, nil
}
