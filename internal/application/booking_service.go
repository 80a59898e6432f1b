package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vivutravel/service-booking/internal/domain"
	bookingDomain "github.com/vivutravel/service-booking/internal/domain/booking"
	tourDomain "github.com/vivutravel/service-booking/internal/domain/tour"
	"github.com/vivutravel/service-booking/internal/events"
	"github.com/vivutravel/service-booking/internal/kafka"
)

// EventPublisher publishes domain events after a transition commits.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	TourID         uuid.UUID `json:"tour_id" binding:"required"`
	NumberOfPeople int       `json:"number_of_people" binding:"required"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	Note           string    `json:"note"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID       `json:"id"`
	TourID         uuid.UUID       `json:"tour_id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	NumberOfPeople int             `json:"number_of_people"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	StartDate      time.Time       `json:"start_date"`
	BookingDate    time.Time       `json:"booking_date"`
	Status         string          `json:"status"`
	UserNote       string          `json:"user_note,omitempty"`
	StatusReason   string          `json:"status_reason,omitempty"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BookingService is the lifecycle engine for bookings. Every transition runs
// inside a single transaction spanning the read of current state, the
// precondition checks, and the write; the tour row lock serializes
// concurrent capacity decisions.
type BookingService struct {
	bookings bookingDomain.Repository
	tours    tourDomain.Repository
	tx       domain.TxManager
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	tours tourDomain.Repository,
	tx domain.TxManager,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		tours:    tours,
		tx:       tx,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a pending booking against an active tour. A nil
// requesterID denotes a guest booking. Pending bookings do not count against
// capacity; the check here guards against requests that could never be
// confirmed given the current confirmed sum.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID *uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := s.tours.FindByID(ctx, req.TourID)
		if err != nil {
			return err
		}
		if t.Status() == tourDomain.StatusDeleted {
			return domain.NewNotFoundError("Tour", req.TourID.String())
		}
		if !t.IsBookable() {
			return domain.NewValidationError("tour is not open for booking")
		}
		if req.NumberOfPeople < 1 {
			return domain.NewValidationError("number of people must be at least 1")
		}

		confirmedSum, err := s.bookings.SumConfirmedParticipants(ctx, t.ID())
		if err != nil {
			return err
		}
		if confirmedSum+int64(req.NumberOfPeople) > int64(t.MaxParticipants()) {
			return domain.NewCapacityExceededError(t.RemainingSeats(confirmedSum))
		}

		totalPrice := t.Price().Mul(decimal.NewFromInt(int64(req.NumberOfPeople)))
		bk, err = bookingDomain.NewBooking(t.ID(), requesterID, req.NumberOfPeople, totalPrice, req.StartDate, req.Note)
		if err != nil {
			return err
		}
		return s.bookings.Save(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:      bk.ID(),
		TourID:         bk.TourID(),
		UserID:         bk.UserID(),
		NumberOfPeople: bk.NumberOfPeople(),
		TotalPrice:     bk.TotalPrice(),
		StartDate:      bk.StartDate(),
		OccurredAt:     time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking transitions a pending booking to confirmed after the
// capacity check. The tour row is locked for the duration so two concurrent
// confirms that would jointly exceed capacity cannot both succeed. The
// tour's participant counter is refreshed from the authoritative confirmed
// sum, never incremented.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var (
		bk           *bookingDomain.Booking
		confirmedSum int64
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		t, err := s.tours.FindByIDForUpdate(ctx, bk.TourID())
		if err != nil {
			return err
		}
		if !t.IsBookable() {
			return domain.NewValidationError("tour is not open for booking")
		}

		sum, err := s.bookings.SumConfirmedParticipants(ctx, t.ID())
		if err != nil {
			return err
		}
		if sum+int64(bk.NumberOfPeople()) > int64(t.MaxParticipants()) {
			return domain.NewCapacityExceededError(t.RemainingSeats(sum))
		}

		if err := bk.Confirm(); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			return err
		}

		// Re-derive the display counter from the aggregate query, which now
		// includes this booking.
		confirmedSum, err = s.bookings.SumConfirmedParticipants(ctx, t.ID())
		if err != nil {
			return err
		}
		return s.tours.RefreshParticipantCount(ctx, t.ID(), confirmedSum)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, events.BookingConfirmedEvent{
		BookingID:      bk.ID(),
		TourID:         bk.TourID(),
		NumberOfPeople: bk.NumberOfPeople(),
		ConfirmedSum:   confirmedSum,
		OccurredAt:     time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RejectBooking transitions a pending booking to rejected.
func (s *BookingService) RejectBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := bk.Reject(reason); err != nil {
			return err
		}
		bk.IncrementVersion()
		return s.bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRejected, events.BookingRejectedEvent{
		BookingID:  bk.ID(),
		TourID:     bk.TourID(),
		Reason:     bk.StatusReason(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RequestCancel raises a cancellation request on the requester's own
// booking. An ownership mismatch is reported as not-found so existence is
// not leaked to non-owners.
func (s *BookingService) RequestCancel(ctx context.Context, bookingID, requesterID uuid.UUID, reason string) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !bk.IsOwnedBy(requesterID) {
			return domain.NewNotFoundError("Booking", bookingID.String())
		}
		if err := bk.RequestCancel(reason); err != nil {
			return err
		}
		bk.IncrementVersion()
		return s.bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveCancellation transitions a cancel_request booking to cancelled and
// re-derives the tour's participant counter, since the cancellation may free
// a previously counted seat.
func (s *BookingService) ApproveCancellation(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		t, err := s.tours.FindByIDForUpdate(ctx, bk.TourID())
		if err != nil {
			return err
		}

		if err := bk.ApproveCancel(); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			return err
		}

		confirmedSum, err := s.bookings.SumConfirmedParticipants(ctx, t.ID())
		if err != nil {
			return err
		}
		return s.tours.RefreshParticipantCount(ctx, t.ID(), confirmedSum)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, events.BookingCancelledEvent{
		BookingID:  bk.ID(),
		TourID:     bk.TourID(),
		Reason:     bk.StatusReason(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RejectCancellation denies a cancellation request, returning the booking to
// confirmed.
func (s *BookingService) RejectCancellation(ctx context.Context, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := bk.RejectCancel(reason); err != nil {
			return err
		}
		bk.IncrementVersion()
		return s.bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// CompleteBooking marks a confirmed booking completed once the tour has
// departed.
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := bk.Complete(time.Now().UTC()); err != nil {
			return err
		}
		bk.IncrementVersion()
		return s.bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCompleted, events.BookingCompletedEvent{
		BookingID:  bk.ID(),
		TourID:     bk.TourID(),
		TotalPrice: bk.TotalPrice(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// SoftDeleteBooking marks a booking deleted. Confirmed bookings must be
// cancelled first.
func (s *BookingService) SoftDeleteBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := bk.SoftDelete(); err != nil {
			return err
		}
		bk.IncrementVersion()
		return s.bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetMyBookings retrieves an owner's bookings, newest first, excluding
// deleted rows, optionally restricted to a status set.
func (s *BookingService) GetMyBookings(ctx context.Context, ownerID uuid.UUID, page, limit int, statusFilter []string) (*domain.PaginatedResult[BookingDTO], error) {
	filter, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.FindByOwner(ctx, ownerID, filter, page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetPendingBookings retrieves bookings across all owners, oldest first, so
// operators triage the longest-waiting requests.
func (s *BookingService) GetPendingBookings(ctx context.Context, page, limit int, statusFilter []string) (*domain.PaginatedResult[BookingDTO], error) {
	filter, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.FindAll(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the operator dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func parseStatusFilter(statuses []string) (bookingDomain.ListFilter, error) {
	var filter bookingDomain.ListFilter
	for _, s := range statuses {
		status, err := bookingDomain.ParseBookingStatus(s)
		if err != nil {
			return filter, domain.NewValidationError(err.Error())
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	return filter, nil
}

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
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

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
