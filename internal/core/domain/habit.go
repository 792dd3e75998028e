package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrUnknownHabitKind   = errors.New("unknown habit kind")
	ErrUnauthorized       = errors.New("unauthorized")
)

// HabitKind identifies one of the nine fixed habits of the 66-day program.
type HabitKind string

const (
	KindWakeup      HabitKind = "wakeup"
	KindRunning     HabitKind = "running"
	KindWorkout     HabitKind = "workout"
	KindPushups     HabitKind = "pushups"
	KindMeditation  HabitKind = "meditation"
	KindWater       HabitKind = "water"
	KindSocialMedia HabitKind = "socialmedia"
	KindReading     HabitKind = "reading"
	KindSitups      HabitKind = "situps"
)

// AllHabitKinds lists every kind in seeding order.
var AllHabitKinds = []HabitKind{
	KindWakeup, KindRunning, KindWorkout, KindPushups, KindMeditation,
	KindWater, KindSocialMedia, KindReading, KindSitups,
}

// TotalProgramDays is the fixed length of the habit-reset program.
const TotalProgramDays = 66

type KindInfo struct {
	DisplayName   string
	Emoji         string
	InitialTarget string
	Unit          string
}

var kindCatalog = map[HabitKind]KindInfo{
	KindWakeup:      {DisplayName: "Wake Up Early", Emoji: "🛏️", InitialTarget: "7:30 AM", Unit: "time"},
	KindRunning:     {DisplayName: "Morning Run", Emoji: "🏃‍♂️", InitialTarget: "2 KM", Unit: "distance"},
	KindWorkout:     {DisplayName: "Strength Training", Emoji: "💪", InitialTarget: "30 mins", Unit: "duration"},
	KindPushups:     {DisplayName: "Push-ups", Emoji: "🔥", InitialTarget: "10 reps", Unit: "reps"},
	KindMeditation:  {DisplayName: "Mindfulness", Emoji: "🧘", InitialTarget: "5 mins", Unit: "duration"},
	KindWater:       {DisplayName: "Hydration", Emoji: "💧", InitialTarget: "2L", Unit: "volume"},
	KindSocialMedia: {DisplayName: "Digital Detox", Emoji: "📵", InitialTarget: "1.5 hrs", Unit: "limit"},
	KindReading:     {DisplayName: "Daily Reading", Emoji: "📚", InitialTarget: "10 pages", Unit: "pages"},
	KindSitups:      {DisplayName: "Core Training", Emoji: "🔁", InitialTarget: "10 reps", Unit: "reps"},
}

// Info returns the static catalog entry for the kind.
// The second return is false for kinds outside the fixed set.
func (k HabitKind) Info() (KindInfo, bool) {
	info, ok := kindCatalog[k]
	return info, ok
}

func (k HabitKind) Valid() bool {
	_, ok := kindCatalog[k]
	return ok
}

type Habit struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Kind          HabitKind `json:"name" db:"kind"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	Emoji         string    `json:"emoji" db:"emoji"`
	InitialTarget string    `json:"initial_target" db:"initial_target"`
	CurrentTarget string    `json:"current_target" db:"current_target"`
	Unit          string    `json:"unit" db:"unit"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewHabit(userID string, kind HabitKind) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	info, ok := kind.Info()
	if !ok {
		return nil, ErrUnknownHabitKind
	}

	now := time.Now().UTC()

	return &Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Kind:          kind,
		DisplayName:   info.DisplayName,
		Emoji:         info.Emoji,
		InitialTarget: info.InitialTarget,
		CurrentTarget: info.InitialTarget,
		Unit:          info.Unit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// DefaultHabits builds the nine program habits for a fresh user.
func DefaultHabits(userID string) ([]*Habit, error) {
	habits := make([]*Habit, 0, len(AllHabitKinds))
	for _, kind := range AllHabitKinds {
		h, err := NewHabit(userID, kind)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}
