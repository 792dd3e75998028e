package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type HabitService struct {
	repo         domain.HabitRepository
	progressRepo domain.ProgressRepository
}

func NewHabitService(repo domain.HabitRepository, progressRepo domain.ProgressRepository) *HabitService {
	return &HabitService{
		repo:         repo,
		progressRepo: progressRepo,
	}
}

// Initialize seeds the nine program habits and a day-1 progress row for a
// fresh user. Calling it again is a no-op returning the existing state.
func (s *HabitService) Initialize(ctx context.Context, userID string) ([]*domain.Habit, *domain.UserProgress, error) {
	existing, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("habit service: failed to list habits: %w", err)
	}

	if len(existing) > 0 {
		progress, err := s.progressRepo.Get(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("habit service: failed to load progress: %w", err)
		}
		return existing, progress, nil
	}

	habits, err := domain.DefaultHabits(userID)
	if err != nil {
		return nil, nil, err
	}

	for _, h := range habits {
		if err := s.repo.Create(ctx, h); err != nil {
			return nil, nil, fmt.Errorf("habit service: failed to seed habit %s: %w", h.Kind, err)
		}
	}

	progress := domain.NewUserProgress(userID, time.Now().UTC())
	if err := s.progressRepo.Create(ctx, progress); err != nil {
		return nil, nil, fmt.Errorf("habit service: failed to create progress: %w", err)
	}

	log.WithField("user_id", userID).Info("Seeded default habits for new user")

	return habits, progress, nil
}

// List returns the user's habits with current targets computed for their
// program day. The persisted target column lags behind until the worker
// refreshes it; the response never does.
func (s *HabitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := 1
	progress, err := s.progressRepo.Get(ctx, userID)
	switch {
	case err == nil:
		day = domain.ProgramDay(progress.StartDate, time.Now().UTC())
	case errors.Is(err, domain.ErrProgressNotFound):
		// Not initialized yet; day-1 targets.
	default:
		return nil, err
	}

	domain.RefreshTargets(habits, day)

	return habits, nil
}

func (s *HabitService) GetByID(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}
