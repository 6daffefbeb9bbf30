// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts standard five-field expressions and descriptors
// such as @hourly or @every 15m.
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// minInterval is the shortest @every interval accepted.
const minInterval = time.Minute

// ValidateSchedule checks that a cron expression parses and, for @every
// schedules, that the interval is not shorter than a minute.
func ValidateSchedule(schedule string) error {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return fmt.Errorf("empty cron expression")
	}
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}
	if rest, ok := strings.CutPrefix(schedule, "@every "); ok {
		d, err := time.ParseDuration(strings.TrimSpace(rest))
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", rest, err)
		}
		if d < minInterval {
			return fmt.Errorf("interval %s is shorter than %s", d, minInterval)
		}
	}
	return nil
}

// Every returns the @every expression for an interval.
func Every(d time.Duration) string {
	return "@every " + d.String()
}
