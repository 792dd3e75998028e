package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

const chartPointLimit = 30

type ProgressService struct {
	progressRepo domain.ProgressRepository
	streakRepo   domain.StreakRepository
	completions  domain.CompletionRepository
	habits       domain.HabitRepository
}

func NewProgressService(
	progressRepo domain.ProgressRepository,
	streakRepo domain.StreakRepository,
	completions domain.CompletionRepository,
	habits domain.HabitRepository,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		streakRepo:   streakRepo,
		completions:  completions,
		habits:       habits,
	}
}

// Overview is the payload behind the progress screen: the program counter,
// per-habit streaks, and today's completion summary.
type Overview struct {
	Progress     *domain.UserProgress  `json:"progress"`
	HabitStreaks []*domain.HabitStreak `json:"streaks"`
	ProgramDay   int                   `json:"program_day"`
	TodayPercent int                   `json:"today_percent"`
	Message      string                `json:"message"`
	StreakEmoji  string                `json:"streak_emoji"`
	TotalProgram int                   `json:"total_program_days"`
}

func (s *ProgressService) Overview(ctx context.Context, userID string) (*Overview, error) {
	progress, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	streaks, err := s.streakRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress service: failed to load streaks: %w", err)
	}

	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress service: failed to load habits: %w", err)
	}

	now := time.Now().UTC()
	completions, err := s.completions.ListByDate(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("progress service: failed to load today's completions: %w", err)
	}

	completedCount := 0
	for _, c := range completions {
		if c.Completed {
			completedCount++
		}
	}

	return &Overview{
		Progress:     progress,
		HabitStreaks: streaks,
		ProgramDay:   domain.ProgramDay(progress.StartDate, now),
		TodayPercent: domain.CompletionPercentage(completions, len(habits)),
		Message:      domain.MotivationalMessage(completedCount, len(habits)),
		StreakEmoji:  domain.StreakEmoji(progress.CurrentStreak),
		TotalProgram: domain.TotalProgramDays,
	}, nil
}

// Weekly aggregates completed-vs-total counts for the 7 days starting at
// weekStart.
func (s *ProgressService) Weekly(ctx context.Context, userID string, weekStart time.Time) ([]*domain.DailyCount, error) {
	from := domain.Midnight(weekStart)
	to := from.AddDate(0, 0, 6)

	return s.completions.DailyCounts(ctx, userID, from, to)
}

// HabitChart returns the last 30 recorded days for one habit kind, oldest
// first, for the per-habit progress chart.
func (s *ProgressService) HabitChart(ctx context.Context, userID string, kind domain.HabitKind) ([]*domain.ChartPoint, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownHabitKind
	}

	return s.completions.Chart(ctx, userID, kind, chartPointLimit)
}

// Day derives the user's current program day from their start date.
func (s *ProgressService) Day(ctx context.Context, userID string) (int, error) {
	progress, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.ProgramDay(progress.StartDate, time.Now().UTC()), nil
}
