package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/store"
	"github.com/jonboulle/clockwork"
)

// HousekeepingService periodically drops revocation records for tokens
// that can no longer be presented, keeping the revoked_tokens table
// bounded.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Clock    clockwork.Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Clock:    clockwork.NewRealClock(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := s.Clock.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.Chan():
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	n, err := s.Store.RevokedTokens().DeleteExpiredRevokedTokens(context.Background(), s.Clock.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", "err", err)
		return
	}
	s.Logger.Debug("housekeeping cleanup completed", "revoked_tokens_deleted", n)
}
