// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/db"
	"github.com/danielhkuo/hydrate/models"
	"github.com/danielhkuo/hydrate/store"
)

// TestTimezone is the zone test configs use to define "today"
const TestTimezone = "Asia/Kolkata"

// Clock is a settable time source for store.WithClock
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock returns a clock stopped at t
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// SetupTestStore creates a fresh sqlite database with migrations applied.
// It is closed when the test ends.
func SetupTestStore(t *testing.T, opts ...store.Option) *store.SQLStore {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "hydrate.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(context.Background(), conn, db.TypeSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	s := store.NewSQLStore(conn, opts...)
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    cliparse.DatabaseSQLite,
		Timezone:        TestTimezone,
		RefreshInterval: 30 * time.Second,
		RateLimit:       "off",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// TestLocation is the loaded TestTimezone
func TestLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(TestTimezone)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", TestTimezone, err)
	}
	return loc
}

// CreateTestUser inserts a user and returns it
func CreateTestUser(t *testing.T, s store.Store, name string, dailyGoal int) models.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), name, dailyGoal, "#3B82F6")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestLogAt inserts a log stamped at the given time.
// The clock must be the one the store was built with; it is restored afterwards.
func CreateTestLogAt(t *testing.T, s store.Store, clock *Clock, userID string, amount int, at time.Time) models.WaterLog {
	t.Helper()

	prev := clock.Now()
	clock.Set(at)
	defer clock.Set(prev)

	entry, err := s.CreateLog(context.Background(), userID, amount)
	if err != nil {
		t.Fatalf("Failed to create test log: %v", err)
	}
	return entry
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
