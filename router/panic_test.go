// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"time"

	"github.com/danielhkuo/hydrate/models"
	"github.com/danielhkuo/hydrate/store"
)

// panicStore fails loudly on every call.
type panicStore struct{}

var _ store.Store = panicStore{}

func (panicStore) ListUsers(context.Context) ([]models.User, error) { panic("list users") }
func (panicStore) GetUser(context.Context, string) (models.User, error) { panic("get user") }
func (panicStore) CountUsers(context.Context) (int, error) { panic("count users") }
func (panicStore) Close() error { return nil }
func (panicStore) CreateLog(context.Context, string, int) (models.WaterLog, error) {
	panic("create log")
}
func (panicStore) CreateUser(context.Context, string, int, string) (models.User, error) {
	panic("create user")
}
func (panicStore) UpdateUserGoal(context.Context, string, int) (models.User, error) {
	panic("update goal")
}
func (panicStore) ListLogs(context.Context, models.LogFilter) ([]models.WaterLog, error) {
	panic("list logs")
}
func (panicStore) TodayIntake(context.Context, time.Time, time.Time) ([]models.UserIntake, error) {
	panic("today intake")
}
