package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/models"
)

// StatusCounter counts documents in a lifecycle state
type StatusCounter interface {
	CountByStatus(ctx context.Context, status models.DocumentStatus) (int64, error)
}

// Scheduler handles periodic background jobs for the document review queue
type Scheduler struct {
	cron     *cron.Cron
	Counter  StatusCounter
	Schedule string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(counter StatusCounter, schedule string) *Scheduler {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		Counter:  counter,
		Schedule: schedule,
	}
}

// Start registers the jobs and begins the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Schedule, func() { s.PendingDigest() }); err != nil {
		zap.S().Errorw("failed to register pending digest job", "schedule", s.Schedule, "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Infow("Document scheduler started", "schedule", s.Schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Document scheduler stopped")
}

// PendingDigest counts documents still awaiting review and publishes the
// number on the pending gauge
func (s *Scheduler) PendingDigest() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pending, err := s.Counter.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		zap.S().Errorw("failed to count pending documents", "error", err)
		return 0, err
	}
	api.PendingDocuments.Set(float64(pending))
	zap.S().Infow("pending document digest", "pending", pending)
	return pending, nil
}
