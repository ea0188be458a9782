// Nexta - Local Marketplace Discovery Backend
// Copyright 2026 Akbarizadeh
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Akbarizadeh/nexta-api

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string", "normal value", "normal value"},
		{"newline injection", "line1\nFAKE LOG", "line1\\x0aFAKE LOG"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete char", "a\x7fb", "a\\x7fb"},
		{"unicode kept", "çağrı", "çağrı"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETagDeterministic(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a != b {
		t.Errorf("same payload produced different ETags: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different payloads produced the same ETag %q", a)
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"present", "page=3", 3},
		{"absent", "", 7},
		{"unparsable", "page=three", 7},
		{"negative", "page=-2", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := getIntParam(r, "page", 7); got != tt.want {
				t.Errorf("getIntParam = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetFloatPtrParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?min_price=12.5&bad=abc", nil)

	if got := getFloatPtrParam(r, "min_price"); got == nil || *got != 12.5 {
		t.Errorf("min_price = %v, want 12.5", got)
	}
	if got := getFloatPtrParam(r, "absent"); got != nil {
		t.Errorf("absent param = %v, want nil", got)
	}
	if got := getFloatPtrParam(r, "bad"); got != nil {
		t.Errorf("unparsable param = %v, want nil", got)
	}
}
