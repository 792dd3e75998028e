package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

const defaultRecentLimit = 5

type JournalService struct {
	repo domain.JournalRepository
}

func NewJournalService(repo domain.JournalRepository) *JournalService {
	return &JournalService{
		repo: repo,
	}
}

// Today returns the user's entry for the current date, or nil when none
// exists yet. A missing entry is not an error: the UI shows an empty editor.
func (s *JournalService) Today(ctx context.Context, userID string) (*domain.JournalEntry, error) {
	entry, err := s.repo.GetByDate(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrJournalNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

type SaveJournalInput struct {
	UserID        string
	Mood          domain.Mood
	Content       string
	AIAffirmation string
}

// Save upserts today's entry; re-saving the same date overwrites mood,
// content and affirmation in place.
func (s *JournalService) Save(ctx context.Context, input SaveJournalInput) (*domain.JournalEntry, error) {
	entry, err := domain.NewJournalEntry(input.UserID, time.Now().UTC(), input.Mood, input.Content)
	if err != nil {
		return nil, err
	}
	entry.AIAffirmation = input.AIAffirmation

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("journal service: failed to save entry: %w", err)
	}

	return entry, nil
}

func (s *JournalService) Recent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.Recent(ctx, userID, limit)
}
