package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vivutravel/service-booking/internal/application"
	bookingDomain "github.com/vivutravel/service-booking/internal/domain/booking"
)

const sweepBatchSize = 100

// PendingSweeper periodically rejects pending bookings that were never
// confirmed within the TTL. Expiry is an explicit capability, not something
// the lifecycle engine does implicitly: each stale booking goes through the
// ordinary pending -> rejected transition.
type PendingSweeper struct {
	cron     *cron.Cron
	bookings bookingDomain.Repository
	service  *application.BookingService
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

// NewPendingSweeper creates a sweeper with the given cron schedule and TTL.
func NewPendingSweeper(
	bookings bookingDomain.Repository,
	service *application.BookingService,
	schedule string,
	ttl time.Duration,
	logger *zap.Logger,
) *PendingSweeper {
	return &PendingSweeper{
		cron:     cron.New(),
		bookings: bookings,
		service:  service,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the cron scheduler.
func (s *PendingSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("pending-booking sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("ttl", s.ttl),
	)
	return nil
}

// Stop stops the cron scheduler and waits for a running sweep to finish.
func (s *PendingSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep rejects one batch of stale pending bookings.
func (s *PendingSweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.ttl)
	stale, err := s.bookings.FindStalePending(ctx, cutoff, sweepBatchSize)
	if err != nil {
		s.logger.Error("failed to list stale pending bookings", zap.Error(err))
		return
	}

	for _, b := range stale {
		if _, err := s.service.RejectBooking(ctx, b.ID(), "expired: not confirmed in time"); err != nil {
			s.logger.Warn("failed to expire pending booking",
				zap.String("booking_id", b.ID().String()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("expired stale pending booking",
			zap.String("booking_id", b.ID().String()),
			zap.Time("booked_at", b.BookingDate()),
		)
	}
}
