// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Placeholder values used when ldflags were not set.
const (
	DevVersion = "dev"
	Unknown    = "unknown"
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// New returns Info with empty fields replaced by placeholders. A missing
// commit or build time is filled from the VCS stamp of the binary when
// the Go toolchain recorded one.
func New(ver, commit, buildTime string) Info {
	info := Info{Version: ver, GitCommit: commit, BuildTime: buildTime}
	if info.GitCommit == "" || info.GitCommit == Unknown || info.BuildTime == "" || info.BuildTime == Unknown {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info = info.withBuildSettings(bi.Settings)
		}
	}
	return info.withDefaults()
}

func (i Info) withBuildSettings(settings []debug.BuildSetting) Info {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" || i.GitCommit == Unknown {
				i.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if i.BuildTime == "" || i.BuildTime == Unknown {
				i.BuildTime = s.Value
			}
		}
	}
	return i
}

func (i Info) withDefaults() Info {
	if i.Version == "" {
		i.Version = DevVersion
	}
	if i.GitCommit == "" {
		i.GitCommit = Unknown
	}
	if i.BuildTime == "" {
		i.BuildTime = Unknown
	}
	return i
}

// String formats the info the way -version prints it.
func (i Info) String() string {
	return fmt.Sprintf("scholarcms %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
