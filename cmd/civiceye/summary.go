package main

import (
	"fmt"
	"io"
	"time"

	"civiceye/internal/domain"
	"civiceye/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ExitSummary is printed once the TUI has left the alternate screen.
type ExitSummary struct {
	Version  string
	Stats    domain.Stats
	Duration time.Duration
}

func printExitSummary(w io.Writer, summary ExitSummary) {
	t := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary())
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted())
	resolvedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(domain.ColorResolved))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(domain.ColorPending))

	header := appStyle.Render("CivicEye")
	if summary.Version != "" {
		header += mutedStyle.Render(" v" + summary.Version)
	}
	header += mutedStyle.Render(fmt.Sprintf(" • %s session", formatDuration(summary.Duration)))

	stats := summary.Stats
	line := fmt.Sprintf("%d Issues", stats.Total)
	if stats.Total > 0 {
		line += ": " + resolvedStyle.Render(fmt.Sprintf("%d Resolved", stats.Resolved)) +
			", " + pendingStyle.Render(fmt.Sprintf("%d Pending", stats.Pending)) +
			mutedStyle.Render(fmt.Sprintf(" (%.0f%% resolved)", stats.ResolutionRate()*100))
	}

	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, line)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
