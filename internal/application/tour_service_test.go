package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vivutravel/service-booking/internal/domain"
	tourDomain "github.com/vivutravel/service-booking/internal/domain/tour"
)

func newTourService() (*TourService, *fakeTourRepo) {
	repo := newFakeTourRepo()
	return NewTourService(repo, zap.NewNop()), repo
}

func TestCreateTour(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTourService()

	dto, err := svc.CreateTour(ctx, CreateTourRequest{
		Name:            "Hoi An Lantern Festival",
		Description:     "Evening boat ride on the Thu Bon river",
		StartLocation:   "Da Nang",
		Price:           decimal.NewFromInt(35),
		MaxParticipants: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "active", dto.Status)
	assert.Equal(t, tourDomain.DefaultMaxParticipants, dto.MaxParticipants)
	assert.Equal(t, int64(0), dto.CurrentParticipants)
}

func TestCreateTour_Validation(t *testing.T) {
	svc, _ := newTourService()

	_, err := svc.CreateTour(context.Background(), CreateTourRequest{
		Name:  "",
		Price: decimal.NewFromInt(35),
	})
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestGetTour(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTourService()

	created, err := svc.CreateTour(ctx, CreateTourRequest{
		Name:  "Ban Gioc Waterfall",
		Price: decimal.NewFromInt(70),
	})
	require.NoError(t, err)

	dto, err := svc.GetTour(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ban Gioc Waterfall", dto.Name)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetTour(ctx, uuid.New())
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})

	t.Run("deleted tour reads as not found", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, created.ID, tourDomain.StatusDeleted))
		_, err := svc.GetTour(ctx, created.ID)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}

func TestListTours_ExcludesDeleted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTourService()

	kept, err := svc.CreateTour(ctx, CreateTourRequest{Name: "Cat Ba Island", Price: decimal.NewFromInt(55)})
	require.NoError(t, err)
	gone, err := svc.CreateTour(ctx, CreateTourRequest{Name: "Discontinued", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateTourStatus(ctx, gone.ID, "deleted"))

	page, err := svc.ListTours(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, kept.ID, page.Items[0].ID)
}

func TestUpdateTourStatus_Invalid(t *testing.T) {
	svc, _ := newTourService()
	err := svc.UpdateTourStatus(context.Background(), uuid.New(), "archived")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}
