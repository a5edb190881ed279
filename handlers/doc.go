// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the JSON API for Hydrate.

# Dispatch

APIHandler is mounted once per method under /api/ and dispatches on the
remaining path, first match wins:

	GET  /api/seed          → seed the roster when empty
	GET  /api/users         → all users, newest first
	GET  /api/users/{id}    → one user
	GET  /api/water-logs    → logs, filtered by userId, startDate, endDate
	GET  /api/today-intake  → every user with today's total
	POST /api/water-logs    → log water {userId, amount}
	PUT  /api/users/{id}    → change goal {dailyGoal}

Anything else is 404 "Not found".

# Validation

amount and dailyGoal accept numbers or numeric strings and must be
positive; userId must be present. Failures are 400 and write nothing.

Dates accept RFC 3339 or YYYY-MM-DD in the configured zone. A bare
endDate covers its whole day.

# Errors

Dispatch functions return errors and the entry point maps them:

	*httpError           → its status
	store.ErrNotFound    → 404 "User not found"
	anything else        → 500 with the error text

All error bodies are {"error": <status text>, "message": ...}.

# Today

"Today" is [local midnight, next local midnight) in the configured
timezone, computed with intake.DayWindow.
*/
package handlers
