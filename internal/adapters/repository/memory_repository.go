package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

// In-memory implementations of every storage port, used by handler tests and
// local development without Postgres. Each guards its map with a RWMutex and
// hands out clones so callers cannot mutate the store behind its back.

type MemoryTransactor struct {
	mu sync.Mutex
}

func NewMemoryTransactor() *MemoryTransactor {
	return &MemoryTransactor{}
}

// InTx serializes callbacks, which is all the atomicity a single-process map
// store needs.
func (t *MemoryTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type InMemoryUserRepository struct {
	store map[string]*domain.User
	mu    sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{store: make(map[string]*domain.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit
	mu    sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{store: make(map[string]*domain.Habit)}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *InMemoryHabitRepository) GetByKind(ctx context.Context, userID string, kind domain.HabitKind) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.store {
		if h.UserID == userID && h.Kind == kind {
			clone := *h
			return &clone, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) UpdateTarget(ctx context.Context, habitID, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.CurrentTarget = target
	h.UpdatedAt = time.Now().UTC()
	return nil
}

type completionKey struct {
	userID  string
	habitID string
	date    time.Time
}

type InMemoryCompletionRepository struct {
	store  map[completionKey]*domain.Completion
	habits *InMemoryHabitRepository
	mu     sync.RWMutex
}

// NewInMemoryCompletionRepository needs the habit store to resolve kinds for
// the chart query, mirroring the SQL join.
func NewInMemoryCompletionRepository(habits *InMemoryHabitRepository) *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store:  make(map[completionKey]*domain.Completion),
		habits: habits,
	}
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey{userID: c.UserID, habitID: c.HabitID, date: domain.Midnight(c.Date)}

	if existing, ok := r.store[key]; ok {
		existing.Completed = c.Completed
		existing.ActualValue = c.ActualValue
		existing.Notes = c.Notes
		existing.UpdatedAt = time.Now().UTC()
		c.ID = existing.ID
		return nil
	}

	clone := *c
	r.store[key] = &clone
	return nil
}

func (r *InMemoryCompletionRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := domain.Midnight(date)
	var list []*domain.Completion
	for key, c := range r.store {
		if key.userID == userID && key.date.Equal(day) {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *InMemoryCompletionRepository) History(ctx context.Context, userID, habitID string, windowDays int) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from := domain.Midnight(time.Now().UTC()).AddDate(0, 0, -windowDays)

	var list []*domain.Completion
	for key, c := range r.store {
		if key.userID == userID && key.habitID == habitID && !key.date.Before(from) {
			clone := *c
			list = append(list, &clone)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})

	return list, nil
}

func (r *InMemoryCompletionRepository) DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := make(map[string]*domain.DailyCount)
	for key, c := range r.store {
		if key.userID != userID || key.date.Before(from) || key.date.After(to) {
			continue
		}
		dateKey := key.date.Format("2006-01-02")
		count, ok := byDate[dateKey]
		if !ok {
			count = &domain.DailyCount{Date: dateKey}
			byDate[dateKey] = count
		}
		count.TotalHabits++
		if c.Completed {
			count.CompletedCount++
		}
	}

	counts := make([]*domain.DailyCount, 0, len(byDate))
	for _, c := range byDate {
		counts = append(counts, c)
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Date < counts[j].Date
	})

	return counts, nil
}

func (r *InMemoryCompletionRepository) Chart(ctx context.Context, userID string, kind domain.HabitKind, limit int) ([]*domain.ChartPoint, error) {
	habit, err := r.habits.GetByKind(ctx, userID, kind)
	if err != nil {
		return []*domain.ChartPoint{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var points []*domain.ChartPoint
	for key, c := range r.store {
		if key.userID == userID && key.habitID == habit.ID {
			points = append(points, &domain.ChartPoint{
				Date:        key.date.Format("2006-01-02"),
				Completed:   c.Completed,
				ActualValue: c.ActualValue,
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	if len(points) > limit {
		points = points[:limit]
	}

	return points, nil
}

type streakKey struct {
	userID  string
	habitID string
}

type InMemoryStreakRepository struct {
	store map[streakKey]*domain.HabitStreak
	mu    sync.RWMutex
}

func NewInMemoryStreakRepository() *InMemoryStreakRepository {
	return &InMemoryStreakRepository{store: make(map[streakKey]*domain.HabitStreak)}
}

func (r *InMemoryStreakRepository) Upsert(ctx context.Context, userID, habitID string, current int, lastCompleted *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := streakKey{userID: userID, habitID: habitID}
	now := time.Now().UTC()

	s, ok := r.store[key]
	if !ok {
		s = &domain.HabitStreak{
			ID:        uuid.NewString(),
			UserID:    userID,
			HabitID:   habitID,
			CreatedAt: now,
		}
		r.store[key] = s
	}

	s.CurrentStreak = current
	s.BestStreak = domain.UpdateBestStreak(current, s.BestStreak)
	s.LastCompletedDate = lastCompleted
	s.UpdatedAt = now
	return nil
}

func (r *InMemoryStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitStreak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var streaks []*domain.HabitStreak
	for key, s := range r.store {
		if key.userID == userID {
			clone := *s
			streaks = append(streaks, &clone)
		}
	}
	return streaks, nil
}

type journalKey struct {
	userID string
	date   time.Time
}

type InMemoryJournalRepository struct {
	store map[journalKey]*domain.JournalEntry
	mu    sync.RWMutex
}

func NewInMemoryJournalRepository() *InMemoryJournalRepository {
	return &InMemoryJournalRepository{store: make(map[journalKey]*domain.JournalEntry)}
}

func (r *InMemoryJournalRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.store[journalKey{userID: userID, date: domain.Midnight(date)}]
	if !ok {
		return nil, domain.ErrJournalNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *InMemoryJournalRepository) Upsert(ctx context.Context, entry *domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := journalKey{userID: entry.UserID, date: domain.Midnight(entry.Date)}

	if existing, ok := r.store[key]; ok {
		existing.Mood = entry.Mood
		existing.Content = entry.Content
		existing.AIAffirmation = entry.AIAffirmation
		existing.UpdatedAt = time.Now().UTC()
		entry.ID = existing.ID
		return nil
	}

	clone := *entry
	r.store[key] = &clone
	return nil
}

func (r *InMemoryJournalRepository) Recent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.JournalEntry
	for key, e := range r.store {
		if key.userID == userID {
			clone := *e
			entries = append(entries, &clone)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

type InMemoryProgressRepository struct {
	store map[string]*domain.UserProgress
	mu    sync.RWMutex
}

func NewInMemoryProgressRepository() *InMemoryProgressRepository {
	return &InMemoryProgressRepository{store: make(map[string]*domain.UserProgress)}
}

func (r *InMemoryProgressRepository) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *InMemoryProgressRepository) Create(ctx context.Context, p *domain.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	r.store[p.UserID] = &clone
	return nil
}

func (r *InMemoryProgressRepository) UpdateDay(ctx context.Context, userID string, day int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProgressNotFound
	}
	p.CurrentDay = day
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryProgressRepository) UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[userID]
	if !ok {
		return domain.ErrProgressNotFound
	}
	p.CurrentStreak = current
	p.BestStreak = domain.UpdateBestStreak(current, p.BestStreak)
	p.TotalDaysCompleted = totalDaysCompleted
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryProgressRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
