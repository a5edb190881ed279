// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for Hydrate.

# Route Registration

NewRouter builds the mux and wraps it in the middleware stack:

	handler, err := router.NewRouter(st, cfg)

It fails only when cfg.RateLimit is malformed.

# Endpoints

Operations:

	GET /health   - "OK"
	GET /metrics  - Prometheus exposition

JSON API (rate limited per client IP):

	GET  /api/...  - handlers.APIHandler.Get
	POST /api/...  - handlers.APIHandler.Post
	PUT  /api/...  - handlers.APIHandler.Put

The API handler dispatches on the rest of the path itself.

Pages:

	GET /                 - Landing
	GET /dashboard        - Dashboard
	GET /user/{id}        - User detail
	GET /user/{id}/chart  - Chart points (JSON)
	GET /static/...       - Embedded assets

# Middleware

Outermost first: Recover, security headers, CORS, metrics. Each route
also logs its completion with WithLogging.

# Handler Initialization

Both handler types share the store and config:

	apiHandler := handlers.NewAPIHandler(st, cfg)
	pageHandler := pages.NewPageHandler(st, cfg)
*/
package router
