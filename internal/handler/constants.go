// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAPIPrefix is the versioned API mount point.
	RouteAPIPrefix = "/api/v1"

	// RouteSuffixReorder is the suffix for reorder routes.
	RouteSuffixReorder = "/reorder"
	// RouteSuffixTree is the suffix for menu tree routes.
	RouteSuffixTree = "/tree"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamLocation is the menu location parameter pattern.
	RouteParamLocation = "/{location}"

	// RouteMenus is the menus route.
	RouteMenus = "/menus"
	// RouteMenuItems is the menu items route.
	RouteMenuItems = "/menu-items"
	// RouteNavigation is the storefront navigation route.
	RouteNavigation = "/navigation"
	// RouteSEOScore is the SEO scoring route.
	RouteSEOScore = "/seo/score"
	// RouteEvents is the audit event log route.
	RouteEvents = "/events"
	// RouteCacheStats is the menu cache statistics route.
	RouteCacheStats = "/cache/stats"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe route.
	RouteHealthReady = "/health/ready"

	// RouteMenusID is the menus ID route pattern.
	RouteMenusID = RouteMenus + RouteParamID
	// RouteMenusIDTree is the menu tree route pattern.
	RouteMenusIDTree = RouteMenusID + RouteSuffixTree
	// RouteMenuItemsID is the menu items ID route pattern.
	RouteMenuItemsID = RouteMenuItems + RouteParamID
	// RouteMenuItemsReorder is the menu item reorder route.
	RouteMenuItemsReorder = RouteMenuItems + RouteSuffixReorder
	// RouteNavigationLocation is the navigation location route pattern.
	RouteNavigationLocation = RouteNavigation + RouteParamLocation
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
