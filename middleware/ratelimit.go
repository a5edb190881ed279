// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter returns middleware that limits requests per client IP.
// rateFormatted uses limiter syntax ("100-M", "10-S"); "" or "off" disables it.
func NewIPRateLimiter(rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" || strings.EqualFold(rateFormatted, "off") {
		return noopMiddleware, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(GetClientIP),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded", "ip", GetClientIP(r), "path", r.URL.Path)
			ErrorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
		}),
	)
	return mw.Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
