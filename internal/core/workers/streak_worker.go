package workers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type HabitRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error)
	UpdateTarget(ctx context.Context, habitID, target string) error
}

type ProgressRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserProgress, error)
	UpdateDay(ctx context.Context, userID string, day int) error
	UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error
}

type CompletionRepository interface {
	DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCount, error)
}

type StreakJob struct {
	UserID string
}

// StreakWorker keeps the program-level state fresh in the background: the
// whole-program streak (a day counts when every habit was done), the
// completed-day total, the persisted day counter and each habit's stored
// target. Jobs arrive after every toggle and from the nightly rollover.
type StreakWorker struct {
	habitRepo    HabitRepository
	progressRepo ProgressRepository
	entryRepo    CompletionRepository
	jobs         chan StreakJob
}

func NewStreakWorker(hRepo HabitRepository, pRepo ProgressRepository, cRepo CompletionRepository) *StreakWorker {
	return &StreakWorker{
		habitRepo:    hRepo,
		progressRepo: pRepo,
		entryRepo:    cRepo,
		jobs:         make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Info("Streak worker started in background")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Info("Streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		log.WithField("user_id", userID).Warn("Streak worker queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	logger := log.WithField("user_id", job.UserID)

	progress, err := w.progressRepo.Get(ctx, job.UserID)
	if err != nil {
		logger.WithError(err).Error("Worker failed to fetch progress")
		return
	}

	now := time.Now().UTC()
	day := domain.ProgramDay(progress.StartDate, now)
	if day != progress.CurrentDay {
		if err := w.progressRepo.UpdateDay(ctx, job.UserID, day); err != nil {
			logger.WithError(err).Error("Worker failed to advance program day")
		}
	}

	habits, err := w.habitRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		logger.WithError(err).Error("Worker failed to fetch habits")
		return
	}

	for _, h := range habits {
		target := domain.ComputeTarget(h.Kind, day)
		if target == h.CurrentTarget {
			continue
		}
		if err := w.habitRepo.UpdateTarget(ctx, h.ID, target); err != nil {
			logger.WithError(err).WithField("habit", h.Kind).Error("Worker failed to refresh target")
		}
	}

	counts, err := w.entryRepo.DailyCounts(ctx, job.UserID, domain.Midnight(progress.StartDate), domain.Midnight(now))
	if err != nil {
		logger.WithError(err).Error("Worker failed to fetch daily counts")
		return
	}

	current, total := programStreak(counts, len(habits), now)

	if current != progress.CurrentStreak || total != progress.TotalDaysCompleted {
		if err := w.progressRepo.UpdateStreak(ctx, job.UserID, current, total); err != nil {
			logger.WithError(err).Error("Worker failed to update program streak")
			return
		}
		logger.WithField("streak", current).WithField("days_completed", total).Info("Program streak updated")
	}
}

// programStreak reduces the per-day counts to the current full-day streak
// (all habits completed, consecutive days ending at ref) and the lifetime
// count of full days. Same strict walk as the per-habit streak: a day with a
// partial checklist breaks it.
func programStreak(counts []*domain.DailyCount, totalHabits int, ref time.Time) (int, int) {
	if totalHabits == 0 {
		return 0, 0
	}

	fullDays := make(map[string]bool, len(counts))
	total := 0
	for _, c := range counts {
		if c.CompletedCount >= totalHabits {
			fullDays[c.Date] = true
			total++
		}
	}

	streak := 0
	day := domain.Midnight(ref)
	for fullDays[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak, total
}
