// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path, status, bytes and duration_ms.

# Stack

The router wraps the whole mux, outermost first:

	handler := middleware.Chain(mux,
		middleware.Recover,
		middleware.NewSecure(middleware.SecureOptions()),
		middleware.CORS,
		middleware.Metrics,
	)

Recover turns panics into a JSON 500. NewSecure sets nosniff, frame-deny
and a same-origin content security policy. CORS allows GET, POST, PUT and
OPTIONS. Metrics observes hydrate_http_request_duration_seconds labelled by
route pattern.

# Rate Limiting

API calls are limited per client IP:

	limit, err := middleware.NewIPRateLimiter("100-M")

Rates use limiter syntax ("10-S", "100-M", "1000-H"); "off" disables.
Over the limit the client gets a JSON 429.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateLogRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as the rate limit key.
*/
package middleware
