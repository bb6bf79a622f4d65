package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/middleware"
)

// Sweeper runs the periodic maintenance passes: forfeiting bookings that
// expired past the grace window and auto-acknowledging stale refunds. One
// goroutine, stopped via Stop or context cancellation.
type Sweeper struct {
	booking    portssvc.BookingSvcFacade
	refund     portssvc.RefundSvcFacade
	logger     *slog.Logger
	interval   time.Duration
	grace      time.Duration
	ackTimeout time.Duration
	stopChan   chan struct{}
}

// NewSweeper creates a sweeper. interval is the tick period, grace the
// booking expiry grace window, ackTimeout the refund acknowledgement timeout.
func NewSweeper(booking portssvc.BookingSvcFacade, refund portssvc.RefundSvcFacade, logger *slog.Logger, interval, grace, ackTimeout time.Duration) *Sweeper {
	return &Sweeper{
		booking:    booking,
		refund:     refund,
		logger:     logger.With(slog.String("component", "sweeper")),
		interval:   interval,
		grace:      grace,
		ackTimeout: ackTimeout,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the sweep loop. The first pass runs immediately.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper context cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	sweepCtx := middleware.WithUserID(middleware.WithLogger(ctx, s.logger), SystemUserID)

	forfeited, err := s.booking.ForfeitExpiredBookings(sweepCtx, s.grace)
	if err != nil {
		s.logger.Error("Forfeit sweep failed", slog.String("error", err.Error()))
	} else if forfeited > 0 {
		s.logger.Info("Forfeited expired bookings", slog.Int("count", forfeited))
	}

	acknowledged, err := s.refund.AcknowledgeStaleRefunds(sweepCtx, s.ackTimeout)
	if err != nil {
		s.logger.Error("Refund acknowledgement sweep failed", slog.String("error", err.Error()))
	} else if acknowledged > 0 {
		s.logger.Info("Auto-acknowledged stale refunds", slog.Int("count", acknowledged))
	}
}
