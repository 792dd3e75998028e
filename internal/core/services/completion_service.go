package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/workers"
)

// streakHistoryWindow bounds how far back a streak recompute reads. Streaks
// longer than the program itself are impossible, so 66+ days is enough.
const streakHistoryWindow = 90

type CompletionService struct {
	completions domain.CompletionRepository
	streaks     domain.StreakRepository
	habits      domain.HabitRepository
	tx          domain.Transactor
	worker      *workers.StreakWorker
}

func NewCompletionService(
	completions domain.CompletionRepository,
	streaks domain.StreakRepository,
	habits domain.HabitRepository,
	tx domain.Transactor,
	worker *workers.StreakWorker,
) *CompletionService {
	return &CompletionService{
		completions: completions,
		streaks:     streaks,
		habits:      habits,
		tx:          tx,
		worker:      worker,
	}
}

type ToggleInput struct {
	UserID      string
	HabitID     string
	Date        time.Time
	Completed   bool
	ActualValue string
	Notes       string
}

// Toggle upserts the day's completion and rewrites the habit's streak pair.
// Both writes run in one transaction: the streak recompute reads the
// just-written completion, and no reader can see one without the other.
// Toggling to the same value twice is a no-op beyond the first write.
func (s *CompletionService) Toggle(ctx context.Context, input ToggleInput) (*domain.Completion, error) {
	habit, err := s.habits.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	completion := domain.NewCompletion(input.UserID, input.HabitID, input.Date, input.Completed, input.ActualValue)
	completion.Notes = input.Notes

	if err := completion.Validate(); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.completions.Upsert(ctx, completion); err != nil {
			return fmt.Errorf("failed to upsert completion: %w", err)
		}

		history, err := s.completions.History(ctx, input.UserID, input.HabitID, streakHistoryWindow)
		if err != nil {
			return fmt.Errorf("failed to load completion history: %w", err)
		}

		current := domain.CurrentStreak(history, completion.Date)

		var lastCompleted *time.Time
		for _, c := range history {
			if c.Completed {
				d := domain.Midnight(c.Date)
				if lastCompleted == nil || d.After(*lastCompleted) {
					lastCompleted = &d
				}
			}
		}

		if err := s.streaks.Upsert(ctx, input.UserID, input.HabitID, current, lastCompleted); err != nil {
			return fmt.Errorf("failed to upsert streak: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.worker.Enqueue(input.UserID)

	return completion, nil
}

// Today lists the user's completions for the current date.
func (s *CompletionService) Today(ctx context.Context, userID string) ([]*domain.Completion, error) {
	return s.completions.ListByDate(ctx, userID, time.Now().UTC())
}

func (s *CompletionService) History(ctx context.Context, userID, habitID string, windowDays int) ([]*domain.Completion, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.completions.History(ctx, userID, habitID, windowDays)
}
