// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/intake"
	"github.com/danielhkuo/hydrate/middleware"
	"github.com/danielhkuo/hydrate/models"
	"github.com/danielhkuo/hydrate/store"
)

// httpError is a client-facing failure with a fixed status.
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

var errRouteNotFound = &httpError{status: http.StatusNotFound, message: "Not found"}

// APIHandler serves the JSON API under /api/
type APIHandler struct {
	store    store.Store
	loc      *time.Location
	now      func() time.Time
	validate *validator.Validate
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(st store.Store, cfg cliparse.Config) *APIHandler {
	return &APIHandler{
		store:    st,
		loc:      cfg.Location(),
		now:      time.Now,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Get handles GET /api/...
func (h *APIHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.dispatchGet)
}

// Post handles POST /api/...
func (h *APIHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.dispatchPost)
}

// Put handles PUT /api/...
func (h *APIHandler) Put(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.dispatchPut)
}

type dispatchFunc func(w http.ResponseWriter, r *http.Request, path string) error

func (h *APIHandler) serve(w http.ResponseWriter, r *http.Request, dispatch dispatchFunc) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	if err := dispatch(w, r, path); err != nil {
		h.writeError(w, r, err)
	}
}

// First match wins, in the order listed.
func (h *APIHandler) dispatchGet(w http.ResponseWriter, r *http.Request, path string) error {
	switch {
	case path == "seed":
		return h.seed(w, r)
	case path == "users":
		return h.listUsers(w, r)
	case strings.HasPrefix(path, "users/"):
		return h.getUser(w, r, pathID(path))
	case path == "water-logs":
		return h.listLogs(w, r)
	case path == "today-intake":
		return h.todayIntake(w, r)
	}
	return errRouteNotFound
}

func (h *APIHandler) dispatchPost(w http.ResponseWriter, r *http.Request, path string) error {
	if path == "water-logs" {
		return h.createLog(w, r)
	}
	return errRouteNotFound
}

func (h *APIHandler) dispatchPut(w http.ResponseWriter, r *http.Request, path string) error {
	if strings.HasPrefix(path, "users/") {
		return h.updateGoal(w, r, pathID(path))
	}
	return errRouteNotFound
}

// pathID returns the segment after "users/".
func pathID(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpError
	switch {
	case errors.As(err, &he):
		middleware.ErrorResponse(w, he.status, he.message)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
	default:
		slog.Error("failed to handle API request",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// seed handles GET /api/seed
func (h *APIHandler) seed(w http.ResponseWriter, r *http.Request) error {
	res, err := store.Seed(r.Context(), h.store)
	if err != nil {
		return err
	}
	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}

// listUsers handles GET /api/users
func (h *APIHandler) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}
	middleware.JSONResponse(w, http.StatusOK, users)
	return nil
}

// getUser handles GET /api/users/{id}
func (h *APIHandler) getUser(w http.ResponseWriter, r *http.Request, id string) error {
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		return err
	}
	middleware.JSONResponse(w, http.StatusOK, user)
	return nil
}

// listLogs handles GET /api/water-logs?userId=&startDate=&endDate=
func (h *APIHandler) listLogs(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := models.LogFilter{UserID: q.Get("userId")}

	if s := q.Get("startDate"); s != "" {
		start, err := parseDate(s, h.loc, false)
		if err != nil {
			return badRequest("Invalid startDate: %s", s)
		}
		filter.Start = &start
	}
	if s := q.Get("endDate"); s != "" {
		end, err := parseDate(s, h.loc, true)
		if err != nil {
			return badRequest("Invalid endDate: %s", s)
		}
		filter.End = &end
	}

	logs, err := h.store.ListLogs(r.Context(), filter)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []models.WaterLog{}
	}
	middleware.JSONResponse(w, http.StatusOK, logs)
	return nil
}

// todayIntake handles GET /api/today-intake
func (h *APIHandler) todayIntake(w http.ResponseWriter, r *http.Request) error {
	start, end := intake.DayWindow(h.now(), h.loc)

	rows, err := h.store.TodayIntake(r.Context(), start, end)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []models.UserIntake{}
	}
	middleware.JSONResponse(w, http.StatusOK, rows)
	return nil
}

// createLog handles POST /api/water-logs
func (h *APIHandler) createLog(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateLogRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return badRequest("Invalid JSON")
	}
	if err := h.check(req); err != nil {
		return err
	}

	entry, err := h.store.CreateLog(r.Context(), req.UserID, req.Amount.Int())
	if err != nil {
		return err
	}

	middleware.RecordWaterLogged(entry.Amount)
	slog.Info("water logged", "user_id", entry.UserID, "amount", entry.Amount, "log_id", entry.ID)

	middleware.JSONResponse(w, http.StatusOK, entry)
	return nil
}

// updateGoal handles PUT /api/users/{id}
func (h *APIHandler) updateGoal(w http.ResponseWriter, r *http.Request, id string) error {
	var req models.UpdateGoalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return badRequest("Invalid JSON")
	}
	if err := h.check(req); err != nil {
		return err
	}

	if _, err := h.store.UpdateUserGoal(r.Context(), id, req.DailyGoal.Int()); err != nil {
		return err
	}

	slog.Info("daily goal updated", "user_id", id, "daily_goal", req.DailyGoal.Int())

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
	return nil
}

// check runs struct validation and reports the first failing field.
func (h *APIHandler) check(req any) error {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return badRequest("%s is required", fe.Field())
		}
		return badRequest("%s must be a positive number", fe.Field())
	case "gt":
		return badRequest("%s must be a positive number", fe.Field())
	}
	return badRequest("%s is invalid", fe.Field())
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// parseDate accepts RFC 3339 timestamps, zone-less local timestamps and bare
// dates in loc. A bare end date covers its whole day.
func parseDate(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" && endOfDay {
			t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
