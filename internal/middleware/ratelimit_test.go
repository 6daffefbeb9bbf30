// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter(t *testing.T) {
	handler := NewRateLimiter(1, 2).Middleware()(okHandler())

	for i := range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRateLimiterDifferentClients(t *testing.T) {
	handler := NewRateLimiter(1, 1).Middleware()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:1111"))
	if rec.Code != http.StatusOK {
		t.Fatalf("first client: Status = %d", rec.Code)
	}

	// same IP on a different port shares the bucket
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:2222"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("same IP: Status = %d, want 429", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.2:1111"))
	if rec.Code != http.StatusOK {
		t.Errorf("second client: Status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(0.01, 2)

	busy := rl.cache.get("busy")
	if !busy.Allow() {
		t.Fatal("first request should be allowed")
	}
	rl.cache.get("idle")

	rl.Prune()

	if n := rl.cache.size(); n != 1 {
		t.Fatalf("size after prune = %d, want 1 (idle dropped)", n)
	}
	if rl.cache.get("busy") != busy {
		t.Error("active client must keep its bucket")
	}
	if tokens := busy.Tokens(); tokens >= 2 {
		t.Errorf("active client tokens = %v, burst was refilled", tokens)
	}
}

func TestRateLimiterPruneResetsPastBound(t *testing.T) {
	rl := NewRateLimiter(0.01, 1)
	for i := range maxTrackedClients + 1 {
		rl.cache.get(fmt.Sprintf("ip-%d", i)).Allow()
	}

	rl.Prune()
	if n := rl.cache.size(); n != 0 {
		t.Errorf("size after prune = %d, want 0", n)
	}
}

func TestLimiterCachePruneIdle(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a").Allow()
	lc.get("b")

	if n := lc.pruneIdle(time.Now()); n != 1 {
		t.Errorf("pruneIdle removed %d, want 1", n)
	}
	// Once a has refilled it is idle too.
	if n := lc.pruneIdle(time.Now().Add(time.Hour)); n != 1 {
		t.Errorf("pruneIdle later removed %d, want 1", n)
	}
	if n := lc.size(); n != 0 {
		t.Errorf("size = %d, want 0", n)
	}
}

func TestLimiterCacheReturnsSameLimiter(t *testing.T) {
	lc := newLimiterCache[string](5, 5)
	if lc.get("x") != lc.get("x") {
		t.Error("get should return the cached limiter")
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		limit rate.Limit
		want  int
	}{
		{0, 1},
		{rate.Inf, 1},
		{10, 1},
		{1, 1},
		{0.5, 2},
		{0.1, 10},
	}

	for _, tt := range tests {
		if got := retryAfterSeconds(tt.limit); got != tt.want {
			t.Errorf("retryAfterSeconds(%v) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.168.1.1:80", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
