// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers: URL slugs and
// conversions between pointers and sql null types.
package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches runs of anything that is not a lowercase letter or digit
	slugRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a string to a URL-friendly slug. Non-Latin scripts are
// transliterated, so "Стипендии 2026" becomes "stipendii-2026".
func Slugify(s string) string {
	result := norm.NFKC.String(s)
	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, "'", "")
	result = slugRegex.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

// UniqueSlug returns base, or base-2, base-3 ... for the first candidate
// that taken reports as free.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		if n > 1000 {
			return "", fmt.Errorf("no free slug for %q", base)
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
