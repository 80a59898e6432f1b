package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vivutravel/service-booking/internal/domain"
	tourDomain "github.com/vivutravel/service-booking/internal/domain/tour"
)

// CreateTourRequest holds the data needed to create a tour.
type CreateTourRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	StartLocation   string          `json:"start_location"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	MaxParticipants int             `json:"max_participants"`
}

// TourDTO is the response representation of a tour.
type TourDTO struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	StartLocation       string          `json:"start_location,omitempty"`
	Price               decimal.Decimal `json:"price"`
	MaxParticipants     int             `json:"max_participants"`
	CurrentParticipants int64           `json:"current_participants"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TourService handles catalog use cases for tours.
type TourService struct {
	tours  tourDomain.Repository
	logger *zap.Logger
}

// NewTourService creates a new TourService.
func NewTourService(tours tourDomain.Repository, logger *zap.Logger) *TourService {
	return &TourService{tours: tours, logger: logger}
}

// CreateTour creates a new active tour.
func (s *TourService) CreateTour(ctx context.Context, req CreateTourRequest) (*TourDTO, error) {
	t, err := tourDomain.NewTour(req.Name, req.Description, req.StartLocation, req.Price, req.MaxParticipants)
	if err != nil {
		return nil, err
	}
	if err := s.tours.Save(ctx, t); err != nil {
		return nil, err
	}
	result := toTourDTO(t)
	return &result, nil
}

// GetTour retrieves a tour by ID. Deleted tours are reported as not found.
func (s *TourService) GetTour(ctx context.Context, tourID uuid.UUID) (*TourDTO, error) {
	t, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if t.Status() == tourDomain.StatusDeleted {
		return nil, domain.NewNotFoundError("Tour", tourID.String())
	}
	result := toTourDTO(t)
	return &result, nil
}

// ListTours retrieves non-deleted tours with pagination.
func (s *TourService) ListTours(ctx context.Context, page, limit int) (*domain.PaginatedResult[TourDTO], error) {
	tours, total, err := s.tours.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]TourDTO, len(tours))
	for i, t := range tours {
		dtos[i] = toTourDTO(t)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateTourStatus changes a tour's lifecycle status (admin). Deletion is
// status-based; tour rows are never removed physically.
func (s *TourService) UpdateTourStatus(ctx context.Context, tourID uuid.UUID, status string) error {
	parsed, err := tourDomain.ParseTourStatus(status)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	return s.tours.UpdateStatus(ctx, tourID, parsed)
}

func toTourDTO(t *tourDomain.Tour) TourDTO {
	return TourDTO{
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
