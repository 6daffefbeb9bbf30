// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"testing"
	"time"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"*/5 * * * *", false},
		{"0 3 * * *", false},
		{"@hourly", false},
		{"@daily", false},
		{"@every 1h", false},
		{"@every 1m", false},
		{"@every 30s", true},
		{"@every soon", true},
		{"", true},
		{"* * *", true},
		{"0 0 0 * * *", true}, // seconds field not accepted
		{"61 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestEvery(t *testing.T) {
	if got := Every(90 * time.Minute); got != "@every 1h30m0s" {
		t.Errorf("Every() = %q", got)
	}
	if err := ValidateSchedule(Every(time.Hour)); err != nil {
		t.Errorf("Every(1h) should validate: %v", err)
	}
}
