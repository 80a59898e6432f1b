package repository

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vivutravel/service-booking/internal/domain"
	tourDomain "github.com/vivutravel/service-booking/internal/domain/tour"
)

// TourModel is the GORM model for the tours table.
type TourModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                string          `gorm:"not null;size:255"`
	Description         string          `gorm:"type:text"`
	StartLocation       string          `gorm:"size:255"`
	Price               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MaxParticipants     int             `gorm:"not null;default:50"`
	CurrentParticipants int64           `gorm:"not null;default:0"`
	Status              string          `gorm:"not null;size:20;index"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TourModel) TableName() string {
	return "tours"
}

// GormTourRepository is the GORM-based implementation of tour.Repository.
type GormTourRepository struct {
	db *gorm.DB
}

// NewGormTourRepository creates a new GormTourRepository.
func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

// FindByID retrieves a tour by its unique identifier.
func (r *GormTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*tourDomain.Tour, error) {
	var model TourModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Tour", id.String())
		}
		return nil, fmt.Errorf("failed to find tour by ID: %w", err)
	}
	return toDomainTour(&model)
}

// FindByIDForUpdate retrieves a tour with a FOR UPDATE row lock. Capacity
// decisions serialize on this lock.
func (r *GormTourRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*tourDomain.Tour, error) {
	var model TourModel
	if err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Tour", id.String())
		}
		return nil, fmt.Errorf("failed to lock tour row: %w", err)
	}
	return toDomainTour(&model)
}

// List retrieves non-deleted tours with pagination.
func (r *GormTourRepository) List(ctx context.Context, page, limit int) ([]*tourDomain.Tour, int64, error) {
	db := dbFrom(ctx, r.db)

	var total int64
	if err := db.Model(&TourModel{}).Where("status <> ?", string(tourDomain.StatusDeleted)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	var models []TourModel
	offset := (page - 1) * limit
	if err := db.
		Where("status <> ?", string(tourDomain.StatusDeleted)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tours: %w", err)
	}

	tours := make([]*tourDomain.Tour, len(models))
	for i, m := range models {
		t, err := toDomainTour(&m)
		if err != nil {
			return nil, 0, err
		}
		tours[i] = t
	}
	return tours, total, nil
}

// Save persists a new tour.
func (r *GormTourRepository) Save(ctx context.Context, t *tourDomain.Tour) error {
	model := toTourModel(t)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save tour: %w", err)
	}
	return nil
}

// UpdateStatus persists a tour status change.
func (r *GormTourRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status tourDomain.TourStatus) error {
	result := dbFrom(ctx, r.db).
		Model(&TourModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tour status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Tour", id.String())
	}
	return nil
}

// RefreshParticipantCount overwrites the stored participant cache with the
// recomputed confirmed sum. Display only; never read for capacity decisions.
func (r *GormTourRepository) RefreshParticipantCount(ctx context.Context, id uuid.UUID, confirmedSum int64) error {
	result := dbFrom(ctx, r.db).
		Model(&TourModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_participants": confirmedSum,
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to refresh participant count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Tour", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toTourModel(t *tourDomain.Tour) *TourModel {
	return &TourModel{
		ID:                  t.ID(),
		Name:                t.Name(),
		Description:         t.Description(),
		StartLocation:       t.StartLocation(),
		Price:               t.Price(),
		MaxParticipants:     t.MaxParticipants(),
		CurrentParticipants: t.CurrentParticipants(),
		Status:              string(t.Status()),
		CreatedAt:           t.CreatedAt(),
		UpdatedAt:           t.UpdatedAt(),
	}
}

func toDomainTour(m *TourModel) (*tourDomain.Tour, error) {
	status, err := tourDomain.ParseTourStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return tourDomain.ReconstructTour(
		m.ID,
		m.Name,
		m.Description,
		m.StartLocation,
		m.Price,
		m.MaxParticipants,
		m.CurrentParticipants,
		status,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
