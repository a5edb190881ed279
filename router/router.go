// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/handlers"
	"github.com/danielhkuo/hydrate/middleware"
	"github.com/danielhkuo/hydrate/pages"
	"github.com/danielhkuo/hydrate/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) (http.Handler, error) {
	mux := http.NewServeMux()

	limit, err := middleware.NewIPRateLimiter(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(st, cfg)
	pageHandler := pages.NewPageHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// JSON API, dispatched on the path inside each entry point
	mux.Handle("GET /api/", limit(middleware.WithLogging(apiHandler.Get)))
	mux.Handle("POST /api/", limit(middleware.WithLogging(apiHandler.Post)))
	mux.Handle("PUT /api/", limit(middleware.WithLogging(apiHandler.Put)))

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Landing))
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(pageHandler.Dashboard))
	mux.HandleFunc("GET /user/{id}", middleware.WithLogging(pageHandler.UserDetail))
	mux.HandleFunc("GET /user/{id}/chart", middleware.WithLogging(pageHandler.Chart))
	mux.Handle("GET /static/", pages.Static())

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.NewSecure(middleware.SecureOptions()),
		middleware.CORS,
		middleware.Metrics,
	), nil
}
