// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
)

// Job names.
const (
	JobOrphanAudit     = "orphan_audit"
	JobEventRetention  = "event_retention"
	JobRateLimiterTrim = "rate_limiter_trim"
)

// OrphanFinder reports menu items whose parent no longer exists.
type OrphanFinder interface {
	FindOrphans(ctx context.Context) ([]service.OrphanReport, error)
}

// EventPruner deletes old audit events.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) error
}

// OrphanAudit logs one warning per menu that holds items no built tree can
// reach: dangling parents, their descendants and parent cycles.
func OrphanAudit(finder OrphanFinder, logger *slog.Logger) JobFunc {
	return func(ctx context.Context) error {
		reports, err := finder.FindOrphans(ctx)
		if err != nil {
			return fmt.Errorf("finding orphaned menu items: %w", err)
		}

		for _, r := range reports {
			logger.WarnContext(ctx, "orphaned menu items found",
				"category", model.EventCategoryMenu,
				"menu_id", r.MenuID,
				"menu_slug", r.MenuSlug,
				"item_ids", r.ItemIDs,
				"dangling_ids", r.DanglingIDs,
				"count", len(r.ItemIDs),
			)
		}
		logger.DebugContext(ctx, "orphan audit finished", "menus_affected", len(reports))
		return nil
	}
}

// EventRetention deletes events older than retention.
func EventRetention(pruner EventPruner, retention time.Duration, logger *slog.Logger) JobFunc {
	return func(ctx context.Context) error {
		if err := pruner.DeleteOldEvents(ctx, retention); err != nil {
			return fmt.Errorf("deleting events older than %s: %w", retention, err)
		}
		logger.DebugContext(ctx, "old events deleted", "retention", retention)
		return nil
	}
}

// Func wraps a job body that cannot fail.
func Func(fn func()) JobFunc {
	return func(context.Context) error {
		fn()
		return nil
	}
}
