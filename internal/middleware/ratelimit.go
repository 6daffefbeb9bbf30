// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map. Prune resets it when idle
// eviction alone cannot bring it under the bound.
const maxTrackedClients = 10000

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds drops all entries when the cache holds more than maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// pruneIdle drops limiters whose bucket has refilled completely by now.
// Such a limiter behaves exactly like a new one, so no client gains burst.
func (lc *limiterCache[K]) pruneIdle(now time.Time) int {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	removed := 0
	for key, limiter := range lc.limiters {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(lc.limiters, key)
			removed++
		}
	}
	return removed
}

func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// RateLimiter is a per-client token bucket limiter keyed by IP.
type RateLimiter struct {
	cache *limiterCache[string]
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Middleware returns the rate limiting middleware. Rejected requests get a
// 429 JSON error with a Retry-After hint.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := rl.cache.get(ip)
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter.Limit())))
				writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Rate limit exceeded. Please slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Prune drops idle client buckets. If the map is still past its bound
// afterwards it is reset. Called periodically by the scheduler.
func (rl *RateLimiter) Prune() {
	if n := rl.cache.pruneIdle(time.Now()); n > 0 {
		slog.Debug("rate limiter idle clients dropped", "count", n)
	}
	if rl.cache.clearIfExceeds(maxTrackedClients) {
		slog.Warn("rate limiter client map reset", "category", "system", "max", maxTrackedClients)
	}
}

func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 || math.IsInf(float64(limit), 1) {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(limit))))
}

// clientIP returns the request's client address without the port. chi's
// RealIP middleware has already applied X-Real-IP / X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
