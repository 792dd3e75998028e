package domain

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// GetByKind retrieves one of a user's nine habits by kind.
	GetByKind(ctx context.Context, userID string, kind HabitKind) (*Habit, error)

	// ListByUserID retrieves all habits owned by a user, in seeding order.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// UpdateTarget overwrites the persisted current target of a habit.
	UpdateTarget(ctx context.Context, habitID, target string) error
}
