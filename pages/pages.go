// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/intake"
	"github.com/danielhkuo/hydrate/middleware"
	"github.com/danielhkuo/hydrate/models"
	"github.com/danielhkuo/hydrate/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type PageHandler struct {
	store     store.Store
	loc       *time.Location
	now       func() time.Time
	refresh   time.Duration
	templates *template.Template
}

func NewPageHandler(st store.Store, cfg cliparse.Config) *PageHandler {
	funcs := template.FuncMap{
		"percent": func(v float64) int { return int(math.Round(v)) },
		"width":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
	return &PageHandler{
		store:     st,
		loc:       cfg.Location(),
		now:       time.Now,
		refresh:   cfg.RefreshInterval,
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Static serves the embedded stylesheet and script under /static/
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

type progressRow struct {
	models.UserIntake
	Percent float64
}

type landingData struct {
	Title string
	Users []models.User
}

type dashboardData struct {
	Title     string
	Today     string
	Rows      []progressRow
	RefreshMS int64
}

type bar struct {
	models.DayPoint
	Height float64
}

type userData struct {
	Title       string
	User        models.User
	Today       string
	TodayIntake int
	Percent     float64
	SliderMax   int
	SnapStep    int
	Roster      []models.User
	View        string
	Chart       []bar
}

type loadingData struct {
	Title string
}

type errorData struct {
	Title   string
	Status  int
	Message string
}

// Landing handles GET /
// Seeding and listing run in order; any failure leaves an empty roster.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users := []models.User{}

	if _, err := store.Seed(ctx, h.store); err != nil {
		slog.Error("failed to seed users", "error", err)
	} else if listed, err := h.store.ListUsers(ctx); err != nil {
		slog.Error("failed to list users", "error", err)
	} else {
		users = listed
	}

	h.render(w, http.StatusOK, "landing.html", landingData{Title: "Water Tracker", Users: users})
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)
	start, end := intake.DayWindow(now, h.loc)

	rows, err := h.store.TodayIntake(r.Context(), start, end)
	if err != nil {
		slog.Error("failed to load today intake", "error", err)
		rows = []models.UserIntake{}
	}

	data := dashboardData{
		Title:     "Dashboard",
		Today:     now.Format("Monday, January 2, 2006"),
		Rows:      make([]progressRow, 0, len(rows)),
		RefreshMS: h.refresh.Milliseconds(),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, progressRow{
			UserIntake: row,
			Percent:    intake.Progress(row.TodayIntake, row.DailyGoal),
		})
	}

	h.render(w, http.StatusOK, "dashboard.html", data)
}

// UserDetail handles GET /user/{id}?view=7days|month
func (h *PageHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	view := intake.NormalizeView(r.URL.Query().Get("view"))
	now := h.now().In(h.loc)

	user, err := h.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		slog.Error("failed to load user", "user_id", id, "error", err)
		h.render(w, http.StatusOK, "loading.html", loadingData{Title: "Water Intake"})
		return
	}

	// Timestamps are stored with microsecond precision
	dayStart, dayEnd := intake.DayWindow(now, h.loc)
	todayEnd := dayEnd.Add(-time.Microsecond)
	todayLogs, err := h.store.ListLogs(ctx, models.LogFilter{UserID: id, Start: &dayStart, End: &todayEnd})
	if err != nil {
		slog.Error("failed to load today logs", "user_id", id, "error", err)
		todayLogs = nil
	}

	roster, err := h.store.ListUsers(ctx)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		roster = []models.User{}
	}

	points, err := h.chart(r, id, view, now)
	if err != nil {
		slog.Error("failed to load chart logs", "user_id", id, "error", err)
	}

	today := intake.Total(todayLogs)
	h.render(w, http.StatusOK, "user.html", userData{
		Title:       user.Name,
		User:        user,
		Today:       now.Format("Monday, January 2"),
		TodayIntake: today,
		Percent:     intake.Progress(today, user.DailyGoal),
		SliderMax:   intake.SliderMax(user.DailyGoal),
		SnapStep:    intake.SnapStep,
		Roster:      roster,
		View:        view,
		Chart:       bars(points, user.DailyGoal),
	})
}

// Chart handles GET /user/{id}/chart?view=7days|month and returns the
// day points as JSON for in-page refreshes.
func (h *PageHandler) Chart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view := intake.NormalizeView(r.URL.Query().Get("view"))

	points, err := h.chart(r, id, view, h.now().In(h.loc))
	if err != nil {
		slog.Error("failed to load chart logs", "user_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, points)
}

func (h *PageHandler) chart(r *http.Request, userID, view string, now time.Time) ([]models.DayPoint, error) {
	start, end := intake.ChartRange(view, now, h.loc)
	logs, err := h.store.ListLogs(r.Context(), models.LogFilter{UserID: userID, Start: &start, End: &end})
	if err != nil {
		return nil, err
	}
	return intake.Buckets(logs, start, end, h.loc), nil
}

// bars scales points against the larger of the goal and the busiest day.
func bars(points []models.DayPoint, goal int) []bar {
	top := goal
	for _, p := range points {
		top = max(top, p.Intake)
	}

	out := make([]bar, 0, len(points))
	for _, p := range points {
		height := 0.0
		if top > 0 {
			height = float64(p.Intake) / float64(top) * 100
		}
		out = append(out, bar{DayPoint: p, Height: height})
	}
	return out
}

func (h *PageHandler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error.html", errorData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

// render executes into a buffer first so a template failure never leaves a
// half-written page behind.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "template", name, "error", err)
	}
}
