// Package jobs runs the scheduled background work: the nightly program-day
// rollover that advances every user's counter and rewrites habit targets.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/workers"
)

type Scheduler struct {
	cron     *cron.Cron
	progress domain.ProgressRepository
	worker   *workers.StreakWorker
}

// NewScheduler builds the rollover scheduler. All program-day math is
// UTC-based, so the cron clock is too.
func NewScheduler(progress domain.ProgressRepository, worker *workers.StreakWorker) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		progress: progress,
		worker:   worker,
	}
}

// Start schedules the nightly rollover at 00:05 UTC. The five-minute offset
// keeps the recompute clear of midnight-boundary toggles still in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		log.Info("Nightly rollover: refreshing program day for all users")

		ids, err := s.progress.ListUserIDs(ctx)
		if err != nil {
			log.WithError(err).Error("Nightly rollover: failed to list users")
			return
		}

		for _, id := range ids {
			s.worker.Enqueue(id)
		}

		log.WithField("users", len(ids)).Info("Nightly rollover enqueued")
	})
	if err != nil {
		return fmt.Errorf("scheduler: failed to register rollover job: %w", err)
	}

	s.cron.Start()
	log.Info("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
