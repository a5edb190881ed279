// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists users and water logs.

# Implementations

Store has two implementations with identical behavior:

	conn, _ := db.Open("sqlite", "hydrate.db")
	s := store.NewSQLStore(conn)    // sqlite or postgres via sqlx

	s := store.NewMemoryStore()     // process memory, for demos and tests

The handle is built once at startup, injected into handlers and pages, and
closed on shutdown. NewSQLStore(nil) gives a store that starts fine and
fails every call with ErrNotConfigured.

# Queries

	ListUsers      newest first (created_at DESC, then name)
	GetUser        ErrNotFound when absent
	CreateUser     ErrConflict when the name is taken
	UpdateUserGoal ErrNotFound when absent
	ListLogs       optional user/start/end filters, inclusive, newest first
	CreateLog      timestamp set by the server clock
	TodayIntake    per-user sum over [start, end), zero for idle users

TodayIntake runs one grouped aggregation and merges it onto the full
roster, so a user with no logs reports 0 instead of disappearing.

# Seeding

Seed inserts the fixed six-user roster (goal 3000 ml, one color each)
when the store is empty:

	res, err := store.Seed(ctx, s)
	// res.Message: "Users seeded successfully" or "Users already exist"

User names are unique, so two concurrent seeders cannot create a second
roster.

# Time

Timestamps are stored in UTC with microsecond precision. Callers choose
the day window; WithClock replaces the server clock in tests.
*/
package store
