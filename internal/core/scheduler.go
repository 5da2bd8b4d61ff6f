package core

import (
	"context"
	"log/slog"
	"time"
)

// minInterval keeps a misconfigured interval from hammering the source.
const minInterval = 30 * time.Second

// Scheduler triggers a sync on a fixed interval. Runs within the loop are
// strictly sequential; it is the only serialization the system provides.
type Scheduler struct {
	sync     *SyncService
	interval time.Duration
}

func NewScheduler(sync *SyncService, interval time.Duration) *Scheduler {
	if interval < minInterval {
		interval = minInterval
	}
	return &Scheduler{sync: sync, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	// Run immediately on startup
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result := s.sync.Run(ctx)
	switch result.Status {
	case StatusSuccess:
		slog.Info("scheduled donor sync succeeded", "count", result.Count)
	case StatusNoData:
		slog.Warn("scheduled donor sync found no data")
	default:
		slog.Error("scheduled donor sync failed", "detail", result.Detail)
	}
}
