// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hydrate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	waterLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hydrate_water_logged_ml_total",
			Help: "Total millilitres of water logged",
		},
	)
	waterLogs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hydrate_water_logs_total",
			Help: "Total water log entries created",
		},
	)
)

// Metrics records request duration labelled by the matched route pattern
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		// ServeMux fills in Pattern on match; raw paths would explode cardinality
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

// RecordWaterLogged counts a newly created water log
func RecordWaterLogged(amount int) {
	waterLogs.Inc()
	waterLogged.Add(float64(amount))
}
