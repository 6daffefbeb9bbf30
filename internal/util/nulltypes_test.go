// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
)

func TestNullInt64FromPtr(t *testing.T) {
	v := int64(42)
	if got := NullInt64FromPtr(&v); !got.Valid || got.Int64 != 42 {
		t.Errorf("NullInt64FromPtr(&42) = %+v", got)
	}
	if got := NullInt64FromPtr(nil); got.Valid {
		t.Errorf("NullInt64FromPtr(nil) = %+v, want invalid", got)
	}
}

func TestNullInt64FromPositive(t *testing.T) {
	tests := []struct {
		in   int64
		want sql.NullInt64
	}{
		{5, sql.NullInt64{Int64: 5, Valid: true}},
		{0, sql.NullInt64{Int64: 0, Valid: false}},
		{-3, sql.NullInt64{Int64: -3, Valid: false}},
	}
	for _, tt := range tests {
		if got := NullInt64FromPositive(tt.in); got.Valid != tt.want.Valid {
			t.Errorf("NullInt64FromPositive(%d) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPtrFromNullInt64(t *testing.T) {
	if got := PtrFromNullInt64(sql.NullInt64{}); got != nil {
		t.Errorf("PtrFromNullInt64(NULL) = %v, want nil", *got)
	}
	n := sql.NullInt64{Int64: 9, Valid: true}
	got := PtrFromNullInt64(n)
	if got == nil || *got != 9 {
		t.Fatalf("PtrFromNullInt64 = %v, want 9", got)
	}
	*got = 10
	if n.Int64 != 9 {
		t.Error("returned pointer must not alias the input")
	}
}

func TestNullStringFromValue(t *testing.T) {
	if got := NullStringFromValue(""); got.Valid {
		t.Errorf("NullStringFromValue(\"\") = %+v, want invalid", got)
	}
	if got := NullStringFromValue("/about"); !got.Valid || got.String != "/about" {
		t.Errorf("NullStringFromValue(/about) = %+v", got)
	}
}
