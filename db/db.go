// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed migrations
var migrations embed.FS

// Open returns a lazily connected handle for the given database type.
// Nothing is dialed until the first query.
func Open(dbType, url string) (*sqlx.DB, error) {
	switch dbType {
	case TypeSQLite:
		conn, err := sqlx.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// A single connection serializes writers and keeps :memory: databases shared.
		conn.SetMaxOpenConns(1)
		return conn, nil
	case TypePostgres:
		conn, err := sqlx.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// Migrate applies every pending migration for the given database type.
// Safe to call multiple times.
func Migrate(ctx context.Context, conn *sqlx.DB, dbType string) error {
	dialect, err := gooseDialect(dbType)
	if err != nil {
		return err
	}

	dir, err := fs.Sub(migrations, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, conn.DB, dir)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}

	return nil
}

func gooseDialect(dbType string) (goose.Dialect, error) {
	switch dbType {
	case TypeSQLite:
		return goose.DialectSQLite3, nil
	case TypePostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

func sqliteDSN(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
