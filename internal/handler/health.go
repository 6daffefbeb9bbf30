// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/scholarcms/internal/cache"
)

const healthCheckTimeout = 2 * time.Second

// Health check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// pinger is implemented by cache backends with a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cacher
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(db *sql.DB, c cache.Cacher, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		version:   version,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutines"`
	NumCPU       int    `json:"numCpus"`
	MemAlloc     string `json:"memAlloc"`
	MemSys       string `json:"memSys"`
}

// Health handles GET /health requests.
// The database must be reachable; a failing cache only degrades the status
// because menu reads fall back to the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	cacheCheck := h.checkCache(r.Context())

	overall := StatusHealthy
	code := http.StatusOK
	switch {
	case dbCheck.Status != StatusHealthy:
		overall = StatusUnhealthy
		code = http.StatusServiceUnavailable
	case cacheCheck.Status != StatusHealthy:
		overall = StatusDegraded
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks: map[string]Check{
			"database": dbCheck,
			"cache":    cacheCheck,
		},
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	if dbCheck.Status != StatusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": dbCheck.Message,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  StatusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	return Check{
		Status:  StatusHealthy,
		Message: "Connected",
		Latency: latency.String(),
	}
}

// checkCache pings remote cache backends and probes local ones.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: StatusHealthy, Message: "Disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	var err error
	if p, ok := h.cache.(pinger); ok {
		err = p.Ping(ctx)
	} else {
		_, err = h.cache.Has(ctx, "health:probe")
	}
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  StatusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	msg := "OK"
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		st := sp.Stats()
		msg = fmt.Sprintf("%s, %d items", st.Backend, st.Items)
	}
	return Check{Status: StatusHealthy, Message: msg, Latency: latency.String()}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
