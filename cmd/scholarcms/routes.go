// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/scholarcms/internal/config"
	"github.com/olegiv/scholarcms/internal/handler"
	"github.com/olegiv/scholarcms/internal/handler/api"
	"github.com/olegiv/scholarcms/internal/middleware"
)

// routerDeps holds everything the HTTP router dispatches to.
type routerDeps struct {
	cfg     *config.Config
	api     *api.Handler
	health  *handler.HealthHandler
	limiter *middleware.RateLimiter
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(d.cfg.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(d.cfg.IsDevelopment())
	securityConfig.ExcludePaths = []string{handler.RouteHealth}
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	// Probes stay outside the rate limiter.
	r.Get(handler.RouteHealth, d.health.Health)
	r.Get(handler.RouteHealthLive, d.health.Liveness)
	r.Get(handler.RouteHealthReady, d.health.Readiness)

	r.Route(handler.RouteAPIPrefix, func(r chi.Router) {
		r.Use(d.limiter.Middleware())

		// Storefront navigation may be cached by browsers and CDNs.
		r.With(middleware.PublicCache(d.cfg.NavigationMaxAge)).
			Get(handler.RouteNavigationLocation, d.api.GetNavigation)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get(handler.RouteMenus, d.api.ListMenus)
			r.Post(handler.RouteMenus, d.api.CreateMenu)
			r.Get(handler.RouteMenusID, d.api.GetMenu)
			r.Patch(handler.RouteMenusID, d.api.UpdateMenu)
			r.Delete(handler.RouteMenusID, d.api.DeleteMenu)
			r.Get(handler.RouteMenusIDTree, d.api.GetMenuTree)

			r.Get(handler.RouteMenuItems, d.api.ListMenuItems)
			r.Post(handler.RouteMenuItems, d.api.CreateMenuItem)
			r.Post(handler.RouteMenuItemsReorder, d.api.ReorderMenuItems)
			r.Get(handler.RouteMenuItemsID, d.api.GetMenuItem)
			r.Patch(handler.RouteMenuItemsID, d.api.UpdateMenuItem)
			r.Delete(handler.RouteMenuItemsID, d.api.DeleteMenuItem)

			r.Post(handler.RouteSEOScore, d.api.ScoreContent)

			r.Get(handler.RouteEvents, d.api.ListEvents)
			r.Get(handler.RouteCacheStats, d.api.CacheStats)
		})
	})

	return r
}
