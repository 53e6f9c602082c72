// Package ratelimit provides a per-client request rate limiter backed by an
// in-process sliding window.
package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Config tunes the limiter.
type Config struct {
	Enabled bool
	// RPS is the sustained per-client request budget.
	RPS int
}

// Middleware throttles requests per client IP.
type Middleware struct {
	cfg     Config
	limiter *limiter.Limiter
}

// New builds a middleware with an in-memory store.
func New(cfg Config) *Middleware {
	if cfg.RPS <= 0 {
		cfg.RPS = 50
	}
	rate := limiter.Rate{Period: time.Second, Limit: int64(cfg.RPS)}
	return &Middleware{
		cfg:     cfg,
		limiter: limiter.New(memory.NewStore(), rate),
	}
}

// Handler enforces the limit and sets the standard X-RateLimit headers.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		ctx, err := m.limiter.Get(r.Context(), common.ClientIP(r))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
