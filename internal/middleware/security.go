// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS.
	IsDevelopment bool

	// ContentSecurityPolicy is the CSP header value. JSON responses are
	// never rendered as documents, so the default denies everything.
	ContentSecurityPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// Set to 0 to disable HSTS.
	HSTSMaxAge int

	HSTSIncludeSubDomains bool

	// FrameOptions controls the X-Frame-Options header ("DENY",
	// "SAMEORIGIN" or empty to omit).
	FrameOptions string

	ReferrerPolicy string

	// ExcludePaths are path prefixes that skip security headers.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the configuration used for the API.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	return SecurityHeadersConfig{
		IsDevelopment: isDev,
		ContentSecurityPolicy: buildCSP(map[string]string{
			"default-src":     "'none'",
			"frame-ancestors": "'none'",
			"base-uri":        "'none'",
			"form-action":     "'none'",
		}),
		HSTSMaxAge:            31536000, // 1 year
		HSTSIncludeSubDomains: !isDev,
		FrameOptions:          "DENY",
		ReferrerPolicy:        "no-referrer",
	}
}

// buildCSP builds a Content-Security-Policy string from a map of directives.
// Known directives come first in a fixed order, the rest sorted by name.
func buildCSP(directives map[string]string) string {
	order := []string{"default-src", "frame-ancestors", "base-uri", "form-action"}

	var parts []string
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		seen[key] = true
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
		}
	}

	var rest []string
	for key := range directives {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		parts = append(parts, key+" "+directives[key])
	}

	return strings.Join(parts, "; ")
}

// SecurityHeaders returns a middleware that adds security headers to responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var hsts string
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			h.Set("Cross-Origin-Resource-Policy", "same-site")

			next.ServeHTTP(w, r)
		})
	}
}
