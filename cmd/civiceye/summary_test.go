package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"civiceye/internal/domain"
)

func TestPrintExitSummary(t *testing.T) {
	tests := []struct {
		name     string
		summary  ExitSummary
		wantVer  string
		wantStat string
	}{
		{
			name: "with issues",
			summary: ExitSummary{
				Version:  "1.0.0",
				Stats:    domain.Stats{Total: 3, Resolved: 1, Pending: 2},
				Duration: 5 * time.Minute,
			},
			wantVer:  "v1.0.0 • 5m session",
			wantStat: "3 Issues: 1 Resolved, 2 Pending (33% resolved)",
		},
		{
			name:     "empty list",
			summary:  ExitSummary{Duration: 42 * time.Second},
			wantVer:  "• 42s session",
			wantStat: "0 Issues",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printExitSummary(&buf, tt.summary)
			out := buf.String()
			if !strings.Contains(out, "CivicEye") {
				t.Errorf("missing app name:\n%s", out)
			}
			if !strings.Contains(out, tt.wantVer) {
				t.Errorf("missing %q:\n%s", tt.wantVer, out)
			}
			if !strings.Contains(out, tt.wantStat) {
				t.Errorf("missing %q:\n%s", tt.wantStat, out)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 5*time.Second, "2m 5s"},
		{time.Hour, "1h"},
		{90 * time.Minute, "1h 30m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
