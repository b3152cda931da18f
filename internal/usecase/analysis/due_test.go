package analysis

import (
	"testing"
	"time"
)

// Wednesday
var base = time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

func TestNormalizeDue(t *testing.T) {
	cases := []struct {
		raw  string
		want string // empty means nil
	}{
		{"", ""},
		{"TBD", ""},
		{"unknown", ""},
		{"sometime soon", ""},
		{"today", "2025-11-05"},
		{"Tomorrow", "2025-11-06"},
		{"day after tomorrow", "2025-11-07"},
		{"2025-12-01", "2025-12-01"},
		{"friday", "2025-11-07"},
		{"this friday", "2025-11-07"},
		{"by friday", "2025-11-07"},
		{"next friday", "2025-11-14"},
		{"next wednesday", "2025-11-12"},
		{"monday", "2025-11-10"},
		{"wednesday", "2025-11-05"},
	}

	for _, tc := range cases {
		got := NormalizeDue(tc.raw, base)
		if tc.want == "" {
			if got != nil {
				t.Errorf("NormalizeDue(%q): expected nil, got %q", tc.raw, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("NormalizeDue(%q): expected %q, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestNormalizeDue_BumpsPastYear(t *testing.T) {
	got := NormalizeDue("2023-05-01", base)
	if got == nil || *got != "2025-05-01" {
		t.Fatalf("expected past year bumped to meeting year, got %v", got)
	}
}
