package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

// DefaultAuditRetention is how long login audit rows are kept.
const DefaultAuditRetention = 90 * 24 * time.Hour

// HousekeepingService periodically prunes login audit rows older than the
// retention window.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	AuditRetention time.Duration
	Now            func() time.Time

	// Internal channels for lifecycle management
	stopCh  chan struct{}
	doneCh  chan struct{}
	started atomic.Bool
}

// NewHousekeepingService creates a new housekeeping service.
// A non-positive interval defaults to 1 hour, a non-positive retention to
// DefaultAuditRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultAuditRetention
	}

	return &HousekeepingService{
		Store:          store,
		Logger:         logger,
		Interval:       interval,
		AuditRetention: retention,
		Now:            time.Now,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to shut it down.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"audit_retention", s.AuditRetention,
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup. Stop is a
// no-op if Start was never called.
func (s *HousekeepingService) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes expired rows and reports how many went.
func (s *HousekeepingService) cleanup(ctx context.Context) int64 {
	cutoff := s.Now().UTC().Add(-s.AuditRetention)

	n, err := s.Store.AuthAudits().DeleteAuthAuditsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired auth audits", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "auth_audits_deleted", n, "cutoff", cutoff)
	return n
}
