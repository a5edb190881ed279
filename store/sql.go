// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/hydrate/models"
)

const userColumns = "id, name, daily_goal, color, created_at"

// SQLStore implements Store on sqlite or postgres through sqlx.
type SQLStore struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

// NewSQLStore wraps conn. A nil conn yields a store whose every call
// fails with ErrNotConfigured.
func NewSQLStore(conn *sqlx.DB, opts ...Option) *SQLStore {
	o := buildOptions(opts)

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	if conn != nil && conn.DriverName() == "postgres" {
		builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return &SQLStore{db: conn, builder: builder, now: o.now}
}

func (s *SQLStore) ready() error {
	if s.db == nil {
		return ErrNotConfigured
	}
	return nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := s.ready(); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`
		SELECT `+userColumns+`
		FROM users
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, name string, dailyGoal int, color string) (models.User, error) {
	if err := s.ready(); err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		DailyGoal: dailyGoal,
		Color:     color,
		CreatedAt: stamp(s.now()),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (id, name, daily_goal, color, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), user.ID, user.Name, user.DailyGoal, user.Color, user.CreatedAt)
	if isUniqueViolation(err) {
		return models.User{}, fmt.Errorf("user %q: %w", name, ErrConflict)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *SQLStore) UpdateUserGoal(ctx context.Context, id string, dailyGoal int) (models.User, error) {
	if err := s.ready(); err != nil {
		return models.User{}, err
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users SET daily_goal = ? WHERE id = ?
	`), dailyGoal, id)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update goal: %w", err)
	}
	if n == 0 {
		return models.User{}, ErrNotFound
	}

	return s.GetUser(ctx, id)
}

func (s *SQLStore) CountUsers(ctx context.Context) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (s *SQLStore) ListLogs(ctx context.Context, filter models.LogFilter) ([]models.WaterLog, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	q := s.builder.
		Select("id", "user_id", "amount", "logged_at").
		From("water_logs").
		OrderBy("logged_at DESC", "id")

	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Start != nil {
		q = q.Where(squirrel.GtOrEq{"logged_at": filter.Start.UTC()})
	}
	if filter.End != nil {
		q = q.Where(squirrel.LtOrEq{"logged_at": filter.End.UTC()})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build log query: %w", err)
	}

	logs := []models.WaterLog{}
	if err := s.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, nil
}

func (s *SQLStore) CreateLog(ctx context.Context, userID string, amount int) (models.WaterLog, error) {
	if err := s.ready(); err != nil {
		return models.WaterLog{}, err
	}

	log := models.WaterLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Timestamp: stamp(s.now()),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO water_logs (id, user_id, amount, logged_at)
		VALUES (?, ?, ?, ?)
	`), log.ID, log.UserID, log.Amount, log.Timestamp)
	if err != nil {
		return models.WaterLog{}, fmt.Errorf("failed to insert log: %w", err)
	}
	return log, nil
}

func (s *SQLStore) TodayIntake(ctx context.Context, start, end time.Time) ([]models.UserIntake, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := s.builder.
		Select("user_id", "COALESCE(SUM(amount), 0) AS total").
		From("water_logs").
		Where(squirrel.GtOrEq{"logged_at": start.UTC()}).
		Where(squirrel.Lt{"logged_at": end.UTC()}).
		GroupBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build intake query: %w", err)
	}

	var totals []struct {
		UserID string `db:"user_id"`
		Total  int64  `db:"total"`
	}
	if err := s.db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to sum intake: %w", err)
	}

	byUser := make(map[string]int, len(totals))
	for _, t := range totals {
		byUser[t.UserID] = int(t.Total)
	}

	return mergeIntake(users, byUser), nil
}

func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func mergeIntake(users []models.User, totals map[string]int) []models.UserIntake {
	out := make([]models.UserIntake, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserIntake{User: u, TodayIntake: totals[u.ID]})
	}
	return out
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
