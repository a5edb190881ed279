// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - User: id, name, dailyGoal (ml), color, createdAt
  - WaterLog: id, userId, amount (ml), timestamp
  - UserIntake: a User with todayIntake flattened into the same object
  - LogFilter: optional userId / start / end predicates for log queries
  - DayPoint: one labelled bar of the history chart

Struct tags carry both the JSON name and the database column (db tag, used by sqlx).

# Request Types

  - CreateLogRequest: userId, amount
  - UpdateGoalRequest: dailyGoal

Both carry validator tags. Amounts and goals use FlexInt, so clients may send
500, 500.0 or "500":

	var req models.CreateLogRequest
	json.Unmarshal([]byte(`{"userId":"u1","amount":"250"}`), &req)
	req.Amount.Int() // 250

Zero and missing values are indistinguishable after decoding; the handlers
reject both.

# Response Types

  - SeedResponse: message, count
  - SuccessResponse: success
  - ErrorResponse: error (status text), message

# Constants

Seed messages:

	MessageSeeded        = "Users seeded successfully"
	MessageAlreadySeeded = "Users already exist"

Chart views:

	View7Days = "7days"
	ViewMonth = "month"
*/
package models
