// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/hydrate/models"
)

// MemoryStore keeps everything in process memory. Data is lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User
	logs  []models.WaterLog
	now   func() time.Time
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		users: make(map[string]models.User),
		now:   o.now,
	}
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sortedUsers(), nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) CreateUser(ctx context.Context, name string, dailyGoal int, color string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Name == name {
			return models.User{}, fmt.Errorf("user %q: %w", name, ErrConflict)
		}
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		DailyGoal: dailyGoal,
		Color:     color,
		CreatedAt: stamp(m.now()),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) UpdateUserGoal(ctx context.Context, id string, dailyGoal int) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	user.DailyGoal = dailyGoal
	m.users[id] = user
	return user, nil
}

func (m *MemoryStore) CountUsers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users), nil
}

func (m *MemoryStore) ListLogs(ctx context.Context, filter models.LogFilter) ([]models.WaterLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := []models.WaterLog{}
	for _, l := range m.logs {
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Start != nil && l.Timestamp.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && l.Timestamp.After(*filter.End) {
			continue
		}
		logs = append(logs, l)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].Timestamp.After(logs[j].Timestamp)
		}
		return logs[i].ID < logs[j].ID
	})
	return logs, nil
}

func (m *MemoryStore) CreateLog(ctx context.Context, userID string, amount int) (models.WaterLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := models.WaterLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Timestamp: stamp(m.now()),
	}
	m.logs = append(m.logs, log)
	return log, nil
}

func (m *MemoryStore) TodayIntake(ctx context.Context, start, end time.Time) ([]models.UserIntake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]int)
	for _, l := range m.logs {
		if l.Timestamp.Before(start) || !l.Timestamp.Before(end) {
			continue
		}
		totals[l.UserID] += l.Amount
	}

	return mergeIntake(m.sortedUsers(), totals), nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// sortedUsers must be called with mu held.
func (m *MemoryStore) sortedUsers() []models.User {
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].Name < users[j].Name
	})
	return users
}
