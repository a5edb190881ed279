// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/hydrate/models"
	"github.com/danielhkuo/hydrate/store"
	"github.com/danielhkuo/hydrate/testutil"
)

// newTestAPI returns a handler over a fresh sqlite store whose clock and
// "today" both read from the returned clock.
func newTestAPI(t *testing.T) (*APIHandler, *store.SQLStore, *testutil.Clock) {
	t.Helper()

	loc := testutil.TestLocation(t)
	clock := testutil.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, loc))
	s := testutil.SetupTestStore(t, store.WithClock(clock.Now))

	h := NewAPIHandler(s, testutil.GetTestConfig())
	h.now = clock.Now
	return h, s, clock
}

// do routes a request through the entry point matching its method.
func do(h *APIHandler, method, path string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, nil)
	w := httptest.NewRecorder()

	switch method {
	case http.MethodGet:
		h.Get(w, req)
	case http.MethodPost:
		h.Post(w, req)
	case http.MethodPut:
		h.Put(w, req)
	}
	return w
}

func TestSeedEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)

	w := do(h, "GET", "/api/seed", nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var first models.SeedResponse
	testutil.AssertJSON(t, w, &first)
	assert.Equal(t, models.MessageSeeded, first.Message)
	assert.Equal(t, 6, first.Count)

	w = do(h, "GET", "/api/seed", nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var second models.SeedResponse
	testutil.AssertJSON(t, w, &second)
	assert.Equal(t, models.MessageAlreadySeeded, second.Message)
	assert.Equal(t, 6, second.Count)

	w = do(h, "GET", "/api/users", nil)
	var users []models.User
	testutil.AssertJSON(t, w, &users)
	assert.Len(t, users, 6, "seeding twice must not duplicate the roster")
}

func TestListUsersEmpty(t *testing.T) {
	h, _, _ := newTestAPI(t)

	w := do(h, "GET", "/api/users", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetUser(t *testing.T) {
	h, s, _ := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Nikhil", 3000)

	testCases := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing user", "/api/users/" + user.ID, http.StatusOK},
		{"unknown id", "/api/users/00000000-0000-0000-0000-000000000000", http.StatusNotFound},
		{"malformed id", "/api/users/not-an-id", http.StatusNotFound},
		{"empty id", "/api/users/", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(h, "GET", tc.path, nil)
			testutil.AssertStatus(t, w, tc.wantStatus)

			if tc.wantStatus == http.StatusOK {
				var got models.User
				testutil.AssertJSON(t, w, &got)
				assert.Equal(t, user.ID, got.ID)
				assert.Equal(t, "Nikhil", got.Name)
				assert.Equal(t, 3000, got.DailyGoal)
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "User not found", resp.Message)
		})
	}
}

func TestCreateLogThenList(t *testing.T) {
	h, s, clock := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Karthik", 3000)
	requested := clock.Now()

	w := do(h, "POST", "/api/water-logs", map[string]interface{}{"userId": user.ID, "amount": 500})
	testutil.AssertStatus(t, w, http.StatusOK)

	var created models.WaterLog
	testutil.AssertJSON(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, 500, created.Amount)
	assert.False(t, created.Timestamp.Before(requested.Truncate(time.Microsecond)))

	w = do(h, "GET", "/api/water-logs?userId="+user.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var logs []models.WaterLog
	testutil.AssertJSON(t, w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, created.ID, logs[0].ID)
}

func TestCreateLogAmountForms(t *testing.T) {
	h, s, _ := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Samson", 3000)

	testCases := []struct {
		name string
		body string
		want int
	}{
		{"number", `{"userId":"` + user.ID + `","amount":250}`, 250},
		{"numeric string", `{"userId":"` + user.ID + `","amount":"300"}`, 300},
		{"fraction truncated", `{"userId":"` + user.ID + `","amount":120.9}`, 120},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(h, "POST", "/api/water-logs", tc.body)
			testutil.AssertStatus(t, w, http.StatusOK)

			var created models.WaterLog
			testutil.AssertJSON(t, w, &created)
			assert.Equal(t, tc.want, created.Amount)
		})
	}
}

func TestCreateLogValidation(t *testing.T) {
	h, s, _ := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Chakri", 3000)

	testCases := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"missing amount", `{"userId":"` + user.ID + `"}`, "amount must be a positive number"},
		{"zero amount", `{"userId":"` + user.ID + `","amount":0}`, "amount must be a positive number"},
		{"negative amount", `{"userId":"` + user.ID + `","amount":-250}`, "amount must be a positive number"},
		{"null amount", `{"userId":"` + user.ID + `","amount":null}`, "amount must be a positive number"},
		{"missing userId", `{"amount":250}`, "userId is required"},
		{"empty userId", `{"userId":"","amount":250}`, "userId is required"},
		{"invalid JSON", `{"userId":`, "Invalid JSON"},
		{"non-numeric amount", `{"userId":"` + user.ID + `","amount":"lots"}`, "Invalid JSON"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(h, "POST", "/api/water-logs", tc.body)
			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "Bad Request", resp.Error)
			assert.Equal(t, tc.wantMessage, resp.Message)
		})
	}

	logs, err := s.ListLogs(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs, "rejected requests must not write")
}

func TestCreateLogUnknownUser(t *testing.T) {
	h, s, _ := newTestAPI(t)

	w := do(h, "POST", "/api/water-logs", map[string]interface{}{"userId": "ghost", "amount": 250})
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.NotEmpty(t, resp.Message)

	logs, err := s.ListLogs(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestUpdateGoal(t *testing.T) {
	h, s, _ := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Praveen", 3000)

	w := do(h, "PUT", "/api/users/"+user.ID, map[string]interface{}{"dailyGoal": 2000})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SuccessResponse
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.Success)

	got, err := s.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000, got.DailyGoal)
}

func TestUpdateGoalUnknownUser(t *testing.T) {
	h, s, _ := newTestAPI(t)
	testutil.CreateTestUser(t, s, "Prabhath", 3000)

	w := do(h, "PUT", "/api/users/missing-id", map[string]interface{}{"dailyGoal": 2000})
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "User not found", resp.Message)

	count, err := s.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count, "an unknown id must not create a user")
}

func TestUpdateGoalValidation(t *testing.T) {
	h, s, _ := newTestAPI(t)
	user := testutil.CreateTestUser(t, s, "Nikhil", 3000)

	for _, body := range []string{`{}`, `{"dailyGoal":0}`, `{"dailyGoal":-1}`, `{"dailyGoal":`} {
		w := do(h, "PUT", "/api/users/"+user.ID, body)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}

	got, err := s.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000, got.DailyGoal, "rejected updates must not write")
}

func TestListLogsDateFilters(t *testing.T) {
	h, s, clock := newTestAPI(t)
	loc := testutil.TestLocation(t)
	user := testutil.CreateTestUser(t, s, "Karthik", 3000)

	testutil.CreateTestLogAt(t, s, clock, user.ID, 100, time.Date(2025, 3, 8, 12, 0, 0, 0, loc))
	testutil.CreateTestLogAt(t, s, clock, user.ID, 200, time.Date(2025, 3, 9, 23, 59, 0, 0, loc))
	testutil.CreateTestLogAt(t, s, clock, user.ID, 300, time.Date(2025, 3, 10, 8, 0, 0, 0, loc))

	testCases := []struct {
		name  string
		query string
		want  []int
	}{
		{"no filters", "", []int{300, 200, 100}},
		{"bare dates cover whole days", "&startDate=2025-03-09&endDate=2025-03-09", []int{200}},
		{"start only", "&startDate=2025-03-09", []int{300, 200}},
		{"rfc3339 end", "&endDate=2025-03-09T18:29:00Z", []int{200, 100}},
		{"rfc3339 with fraction", "&startDate=2025-03-10T00:00:00.000%2B05:30", []int{300}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(h, "GET", "/api/water-logs?userId="+user.ID+tc.query, nil)
			testutil.AssertStatus(t, w, http.StatusOK)

			var logs []models.WaterLog
			testutil.AssertJSON(t, w, &logs)

			amounts := make([]int, len(logs))
			for i, l := range logs {
				amounts[i] = l.Amount
			}
			assert.Equal(t, tc.want, amounts)
		})
	}
}

func TestListLogsInvalidDate(t *testing.T) {
	h, _, _ := newTestAPI(t)

	for _, q := range []string{"startDate=yesterday", "endDate=2025-13-45"} {
		w := do(h, "GET", "/api/water-logs?"+q, nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestTodayIntakeDayBoundary(t *testing.T) {
	h, s, clock := newTestAPI(t)
	loc := testutil.TestLocation(t)

	active := testutil.CreateTestUser(t, s, "Nikhil", 3000)
	idle := testutil.CreateTestUser(t, s, "Karthik", 3000)

	testutil.CreateTestLogAt(t, s, clock, active.ID, 400, time.Date(2025, 3, 9, 23, 59, 0, 0, loc))
	testutil.CreateTestLogAt(t, s, clock, active.ID, 250, time.Date(2025, 3, 10, 0, 1, 0, 0, loc))
	testutil.CreateTestLogAt(t, s, clock, active.ID, 900, time.Date(2025, 3, 11, 0, 0, 0, 0, loc))

	w := do(h, "GET", "/api/today-intake", nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var rows []models.UserIntake
	testutil.AssertJSON(t, w, &rows)
	require.Len(t, rows, 2)

	byID := map[string]int{}
	for _, r := range rows {
		byID[r.ID] = r.TodayIntake
	}
	assert.Equal(t, 250, byID[active.ID], "only logs inside today's local window count")
	assert.Equal(t, 0, byID[idle.ID], "users with no logs still appear with 0")
}

func TestTodayIntakeEmpty(t *testing.T) {
	h, _, _ := newTestAPI(t)

	w := do(h, "GET", "/api/today-intake", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestUnknownRoutes(t *testing.T) {
	h, _, _ := newTestAPI(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/nope"},
		{"GET", "/api/"},
		{"GET", "/api/water-logs/extra"},
		{"POST", "/api/users"},
		{"POST", "/api/seed"},
		{"PUT", "/api/water-logs"},
		{"PUT", "/api/users"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(h, tc.method, tc.path, `{}`)
			testutil.AssertStatus(t, w, http.StatusNotFound)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "Not found", resp.Message)
		})
	}
}

func TestUnconfiguredDatabase(t *testing.T) {
	h := NewAPIHandler(store.NewSQLStore(nil), testutil.GetTestConfig())

	for _, path := range []string{"/api/users", "/api/seed", "/api/today-intake"} {
		w := do(h, "GET", path, nil)
		testutil.AssertStatus(t, w, http.StatusInternalServerError)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, store.ErrNotConfigured.Error(), resp.Message)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	testCases := []struct {
		input    string
		endOfDay bool
		want     time.Time
	}{
		{"2025-03-10", false, time.Date(2025, 3, 10, 0, 0, 0, 0, loc)},
		{"2025-03-10", true, time.Date(2025, 3, 10, 23, 59, 59, 999999000, loc)},
		{"2025-03-10T08:30:00Z", false, time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)},
		{"2025-03-10T08:30:00.123Z", true, time.Date(2025, 3, 10, 8, 30, 0, 123000000, time.UTC)},
		{"2025-03-10T08:30:00", false, time.Date(2025, 3, 10, 8, 30, 0, 0, loc)},
	}

	for _, tc := range testCases {
		got, err := parseDate(tc.input, loc, tc.endOfDay)
		require.NoError(t, err, tc.input)
		assert.True(t, tc.want.Equal(got), "%s: want %v, got %v", tc.input, tc.want, got)
	}

	_, err := parseDate("10/03/2025", loc, false)
	assert.Error(t, err)
}
