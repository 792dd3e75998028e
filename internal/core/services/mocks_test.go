package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/workers"
)

// Hand-rolled mocks shared across the service tests. Each supports
// simulateError to force the failure paths.

type mockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *mockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *mockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *mockHabitRepo) GetByKind(ctx context.Context, userID string, kind domain.HabitKind) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, h := range m.store {
		if h.UserID == userID && h.Kind == kind {
			clone := *h
			return &clone, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (m *mockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID {
			clone := *h
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (m *mockHabitRepo) UpdateTarget(ctx context.Context, habitID, target string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	h, ok := m.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.CurrentTarget = target
	return nil
}

type mockProgressRepo struct {
	store         map[string]*domain.UserProgress
	simulateError error
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{store: make(map[string]*domain.UserProgress)}
}

func (m *mockProgressRepo) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProgressRepo) Create(ctx context.Context, p *domain.UserProgress) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *p
	m.store[p.UserID] = &clone
	return nil
}

func (m *mockProgressRepo) UpdateDay(ctx context.Context, userID string, day int) error {
	if p, ok := m.store[userID]; ok {
		p.CurrentDay = day
	}
	return nil
}

func (m *mockProgressRepo) UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error {
	if p, ok := m.store[userID]; ok {
		p.CurrentStreak = current
		p.BestStreak = domain.UpdateBestStreak(current, p.BestStreak)
		p.TotalDaysCompleted = totalDaysCompleted
	}
	return nil
}

func (m *mockProgressRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.store))
	for id := range m.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type completionKey struct {
	habitID string
	date    time.Time
}

type mockCompletionRepo struct {
	store         map[completionKey]*domain.Completion
	simulateError error
}

func newMockCompletionRepo() *mockCompletionRepo {
	return &mockCompletionRepo{store: make(map[completionKey]*domain.Completion)}
}

func (m *mockCompletionRepo) Upsert(ctx context.Context, c *domain.Completion) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *c
	m.store[completionKey{habitID: c.HabitID, date: domain.Midnight(c.Date)}] = &clone
	return nil
}

func (m *mockCompletionRepo) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Completion, error) {
	day := domain.Midnight(date)
	var list []*domain.Completion
	for key, c := range m.store {
		if c.UserID == userID && key.date.Equal(day) {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockCompletionRepo) History(ctx context.Context, userID, habitID string, windowDays int) ([]*domain.Completion, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Completion
	for key, c := range m.store {
		if c.UserID == userID && key.habitID == habitID {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockCompletionRepo) DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCount, error) {
	byDate := make(map[string]*domain.DailyCount)
	for key, c := range m.store {
		if c.UserID != userID || key.date.Before(from) || key.date.After(to) {
			continue
		}
		k := key.date.Format("2006-01-02")
		count, ok := byDate[k]
		if !ok {
			count = &domain.DailyCount{Date: k}
			byDate[k] = count
		}
		count.TotalHabits++
		if c.Completed {
			count.CompletedCount++
		}
	}
	var counts []*domain.DailyCount
	for _, c := range byDate {
		counts = append(counts, c)
	}
	return counts, nil
}

func (m *mockCompletionRepo) Chart(ctx context.Context, userID string, kind domain.HabitKind, limit int) ([]*domain.ChartPoint, error) {
	return nil, nil
}

type mockStreakRepo struct {
	store         map[string]*domain.HabitStreak
	simulateError error
}

func newMockStreakRepo() *mockStreakRepo {
	return &mockStreakRepo{store: make(map[string]*domain.HabitStreak)}
}

func (m *mockStreakRepo) Upsert(ctx context.Context, userID, habitID string, current int, lastCompleted *time.Time) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	s, ok := m.store[habitID]
	if !ok {
		s = &domain.HabitStreak{UserID: userID, HabitID: habitID}
		m.store[habitID] = s
	}
	s.CurrentStreak = current
	s.BestStreak = domain.UpdateBestStreak(current, s.BestStreak)
	s.LastCompletedDate = lastCompleted
	return nil
}

func (m *mockStreakRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitStreak, error) {
	var list []*domain.HabitStreak
	for _, s := range m.store {
		if s.UserID == userID {
			clone := *s
			list = append(list, &clone)
		}
	}
	return list, nil
}

type mockJournalRepo struct {
	store         map[string]*domain.JournalEntry
	simulateError error
}

func newMockJournalRepo() *mockJournalRepo {
	return &mockJournalRepo{store: make(map[string]*domain.JournalEntry)}
}

func (m *mockJournalRepo) key(userID string, date time.Time) string {
	return userID + "|" + domain.Midnight(date).Format("2006-01-02")
}

func (m *mockJournalRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.JournalEntry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	e, ok := m.store[m.key(userID, date)]
	if !ok {
		return nil, domain.ErrJournalNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *mockJournalRepo) Upsert(ctx context.Context, entry *domain.JournalEntry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *entry
	m.store[m.key(entry.UserID, entry.Date)] = &clone
	return nil
}

func (m *mockJournalRepo) Recent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	var list []*domain.JournalEntry
	for _, e := range m.store {
		if e.UserID == userID {
			clone := *e
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type mockUserRepo struct {
	store         map[string]*domain.User
	simulateError error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// mockTransactor records how many transactions ran; the callback executes
// inline so repository state is shared with the test.
type mockTransactor struct {
	calls         int
	simulateError error
}

func (m *mockTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.calls++
	return fn(ctx)
}

func newIdleWorker(habits *mockHabitRepo, progress *mockProgressRepo, completions *mockCompletionRepo) *workers.StreakWorker {
	return workers.NewStreakWorker(habits, progress, completions)
}

func timeDaysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}
