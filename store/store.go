// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/hydrate/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrNotConfigured = errors.New("database URL not configured")
)

// Store is the persistence surface for users and water logs.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, name string, dailyGoal int, color string) (models.User, error)
	UpdateUserGoal(ctx context.Context, id string, dailyGoal int) (models.User, error)
	CountUsers(ctx context.Context) (int, error)

	ListLogs(ctx context.Context, filter models.LogFilter) ([]models.WaterLog, error)
	CreateLog(ctx context.Context, userID string, amount int) (models.WaterLog, error)

	// TodayIntake sums each user's logs in [start, end). Every user is
	// present in the result, with 0 when nothing was logged.
	TodayIntake(ctx context.Context, start, end time.Time) ([]models.UserIntake, error)

	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for server-side timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp normalizes a server timestamp to what every backend can store.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
