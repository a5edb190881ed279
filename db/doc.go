// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database handles and applies schema migrations.

# Opening

Open picks the driver for the configured database type:

	conn, err := db.Open("sqlite", "hydrate.db")          // modernc.org/sqlite
	conn, err := db.Open("postgres", "postgres://...")    // github.com/lib/pq

The handle is lazy: nothing connects until the first query. SQLite handles
enable foreign keys, set a busy timeout and are limited to one open
connection.

# Migrations

Migrate runs the goose migrations embedded for the dialect:

	if err := db.Migrate(ctx, conn, "sqlite"); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - goose records applied versions.

	migrations/sqlite/    TIMESTAMP columns (parsed by the sqlite driver)
	migrations/postgres/  TIMESTAMPTZ columns

# Tables

  - users: id, name (unique), daily_goal, color, created_at
  - water_logs: id, user_id, amount, logged_at

# Relationships

	users 1──* water_logs

No cascade: users and logs are never deleted.

# Indexes

  - users.created_at
  - water_logs.(user_id, logged_at)
  - water_logs.logged_at
*/
package db
