package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJournalNotFound = errors.New("journal entry not found")
	ErrInvalidMood     = errors.New("invalid mood")
)

type Mood string

const (
	MoodAmazing  Mood = "amazing"
	MoodGreat    Mood = "great"
	MoodOkay     Mood = "okay"
	MoodMeh      Mood = "meh"
	MoodTerrible Mood = "terrible"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodAmazing, MoodGreat, MoodOkay, MoodMeh, MoodTerrible:
		return true
	}
	return false
}

// JournalEntry is one per user per day, upserted in place on re-save.
type JournalEntry struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Date          time.Time `json:"date" db:"date"`
	Mood          Mood      `json:"mood" db:"mood"`
	Content       string    `json:"content" db:"content"`
	AIAffirmation string    `json:"ai_affirmation" db:"ai_affirmation"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewJournalEntry(userID string, date time.Time, mood Mood, content string) (*JournalEntry, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if !mood.Valid() {
		return nil, ErrInvalidMood
	}

	now := time.Now().UTC()

	return &JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      Midnight(date),
		Mood:      mood,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
