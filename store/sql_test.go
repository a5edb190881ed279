// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/hydrate/models"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewSQLStore(sqlx.NewDb(conn, "postgres")), mock
}

func TestSQLStorePostgresPlaceholders(t *testing.T) {
	s, mock := newMockStore(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT id, user_id, amount, logged_at FROM water_logs WHERE user_id = \$1 AND logged_at >= \$2 AND logged_at <= \$3 ORDER BY logged_at DESC, id`).
		WithArgs("u1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "logged_at"}).
			AddRow("l1", "u1", 500, start.Add(time.Hour)))

	logs, err := s.ListLogs(context.Background(), models.LogFilter{UserID: "u1", Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 500, logs[0].Amount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreListLogsWithoutFilters(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, user_id, amount, logged_at FROM water_logs ORDER BY logged_at DESC, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "logged_at"}))

	logs, err := s.ListLogs(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreUpdateGoalNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE users SET daily_goal = \$1 WHERE id = \$2`).
		WithArgs(2000, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateUserGoal(context.Background(), "missing", 2000)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreWrapsQueryErrors(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, daily_goal, color, created_at FROM users`).
		WillReturnError(errors.New("connection refused"))

	_, err := s.ListUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list users")
	assert.Contains(t, err.Error(), "connection refused")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreCreateUserConflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := s.CreateUser(context.Background(), "Nikhil", 3000, "#3B82F6")
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreTodayIntakeGroupsByUser(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT id, name, daily_goal, color, created_at FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "daily_goal", "color", "created_at"}).
			AddRow("u1", "A", 3000, "#fff", now).
			AddRow("u2", "B", 3000, "#000", now))

	mock.ExpectQuery(`SELECT user_id, COALESCE\(SUM\(amount\), 0\) AS total FROM water_logs WHERE logged_at >= \$1 AND logged_at < \$2 GROUP BY user_id`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total"}).AddRow("u1", 750))

	rows, err := s.TodayIntake(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 750, rows[0].TodayIntake)
	assert.Equal(t, 0, rows[1].TodayIntake)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.name (2067)")))
}
