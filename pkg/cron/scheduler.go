// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okushnir/kopiyka/pkg/storage"
)

// Scheduler runs the audit retention sweep on a daily schedule.
type Scheduler struct {
	cron      *cron.Cron
	store     storage.Storage
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewScheduler creates a scheduler that purges audit payloads older than
// the retention window.
func NewScheduler(store storage.Storage, retention time.Duration, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		store:     store,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Retention sweep: runs daily at 2:00 AM
	_, err := s.cron.AddFunc("0 2 * * *", s.sweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow triggers the retention sweep immediately and waits for it.
func (s *Scheduler) RunNow() {
	s.sweep()
}

// sweep deletes every audit payload older than the retention window.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.logger.Info("starting audit retention sweep",
		slog.Duration("retention", s.retention))

	files, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list audit payloads", slog.Any("error", err))
		return
	}

	cutoff := s.now().Add(-s.retention)
	deleted := 0
	failed := 0
	for _, info := range files {
		if !info.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, info.JobID); err != nil {
			s.logger.Warn("failed to delete audit payload",
				slog.String("job_id", info.JobID.String()),
				slog.Any("error", err),
			)
			failed++
			continue
		}
		deleted++
	}

	s.logger.Info("audit retention sweep completed",
		slog.Int("deleted", deleted),
		slog.Int("failed", failed),
		slog.Int("kept", len(files)-deleted-failed),
	)
}
