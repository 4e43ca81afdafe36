package ui

import (
	"fmt"
	"strings"

	"civiceye/internal/domain"
	"civiceye/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const dashboardTagline = "Making communities better, one report at a time"

func (m *App) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if !m.refresh.Allow() {
			return nil
		}
		return m.startFetch(TabDashboard)
	case key.Matches(msg, m.keys.NewIssue):
		return m.switchTab(TabReport)
	}
	return nil
}

func (m *App) dashboardView() string {
	if m.list.Phase == workflow.PhaseLoading {
		return m.spinner.View() + " Loading dashboard..."
	}
	dash := workflow.BuildDashboard(m.list.Issues())

	var b strings.Builder
	b.WriteString(styleMuted().Render("Welcome to CivicEye"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Italic(true).Render(dashboardTagline))
	b.WriteString("\n\n")

	cards := []string{
		statCard("Total Issues", dash.Stats.Total),
		statCard("Resolved", dash.Stats.Resolved),
		statCard("Pending", dash.Stats.Pending),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	rate := dash.Stats.ResolutionRate()
	b.WriteString(styleField().Render("Resolution rate "))
	b.WriteString(m.progress.ViewAs(rate))
	b.WriteString(fmt.Sprintf(" %.0f%%", rate*100))
	b.WriteString("\n\n")

	b.WriteString(styleSectionTitle().Render("Recent Issues"))
	b.WriteString("\n")
	if len(dash.Recent) == 0 {
		b.WriteString(styleMuted().Render(workflow.EmptyNoIssues))
		b.WriteString("\n")
		return b.String()
	}
	for _, issue := range dash.Recent {
		b.WriteString(m.issueRow(issue, m.width-2, false))
		b.WriteString("\n")
	}
	return b.String()
}

func statCard(title string, value int) string {
	content := styleStatValue().Render(fmt.Sprintf("%d", value)) + "\n" + styleMuted().Render(title)
	return styleStatCard().Render(content)
}

// issueRow renders one issue line: status badge, title, location and age.
func (m *App) issueRow(issue domain.Issue, width int, selected bool) string {
	badge := styleStatusBadge(issue.Resolved).Render(domain.StatusText(issue.Resolved))
	age := styleMuted().Render(formatDate(issue.CreatedAt))

	loc := ""
	if issue.Location != "" {
		loc = styleMuted().Render(" · " + issue.Location)
	}
	marker := ""
	if issue.HasImage() {
		marker = " 📷"
	}
	fixed := lipgloss.Width(badge) + lipgloss.Width(age) + 3
	titleWidth := width - fixed
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := styleText().Render(issue.Title) + marker + loc
	title = ansi.Truncate(title, titleWidth, "…")

	gap := width - lipgloss.Width(badge) - lipgloss.Width(title) - lipgloss.Width(age) - 2
	if gap < 1 {
		gap = 1
	}
	row := badge + " " + title + strings.Repeat(" ", gap) + age
	if selected {
		return styleSelected().Render(ansi.Strip(row))
	}
	return row
}
