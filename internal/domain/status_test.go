package domain

import (
	"testing"

	appErrors "civiceye/internal/errors"
)

func TestStatusTextAndColor(t *testing.T) {
	if got := StatusText(true); got != "Resolved" {
		t.Fatalf("StatusText(true) = %q", got)
	}
	if got := StatusText(false); got != "Pending" {
		t.Fatalf("StatusText(false) = %q", got)
	}
	if got := StatusColor(true); got != "#10b981" {
		t.Fatalf("StatusColor(true) = %q", got)
	}
	if got := StatusColor(false); got != "#f59e0b" {
		t.Fatalf("StatusColor(false) = %q", got)
	}
}

func TestParseStatusFilter(t *testing.T) {
	cases := map[string]StatusFilter{
		"":           FilterAll,
		"all":        FilterAll,
		" Resolved ": FilterResolved,
		"PENDING":    FilterPending,
		"unresolved": FilterPending,
	}
	for raw, want := range cases {
		got, err := ParseStatusFilter(raw)
		if err != nil {
			t.Fatalf("ParseStatusFilter(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseStatusFilter(%q) = %q, want %q", raw, got, want)
		}
	}

	_, err := ParseStatusFilter("archived")
	if !appErrors.IsCode(err, appErrors.CodeValidationFailed) {
		t.Fatalf("expected validation_failed for unknown filter, got %v", err)
	}
}

func TestStatusFilterNextCycles(t *testing.T) {
	f := FilterAll
	seen := []StatusFilter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []StatusFilter{FilterAll, FilterResolved, FilterPending, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
	if FilterPending.Label() != "Pending" || StatusFilter("bogus").Label() != "All" {
		t.Fatalf("unexpected labels")
	}
}
