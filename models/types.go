// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Seed status messages
const (
	MessageSeeded        = "Users seeded successfully"
	MessageAlreadySeeded = "Users already exist"
)

// Chart view modes
const (
	View7Days = "7days"
	ViewMonth = "month"
)

// Request types

type CreateLogRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Amount FlexInt `json:"amount" validate:"required,gt=0"`
}

type UpdateGoalRequest struct {
	DailyGoal FlexInt `json:"dailyGoal" validate:"required,gt=0"`
}

// Response types

type SeedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Domain types

type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DailyGoal int       `json:"dailyGoal" db:"daily_goal"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type WaterLog struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Amount    int       `json:"amount" db:"amount"`
	Timestamp time.Time `json:"timestamp" db:"logged_at"`
}

// UserIntake is a user plus the sum of their logs for the current day.
// The embedded User flattens into the same JSON object.
type UserIntake struct {
	User
	TodayIntake int `json:"todayIntake"`
}

// LogFilter selects water logs. Zero fields are ignored; Start and End are inclusive.
type LogFilter struct {
	UserID string
	Start  *time.Time
	End    *time.Time
}

// DayPoint is one bar of the history chart.
type DayPoint struct {
	Date   time.Time `json:"-"`
	Label  string    `json:"date"`
	Intake int       `json:"intake"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
