package ui

import (
	"context"
	"time"

	"civiceye/internal/debug"
	"civiceye/internal/diagnostics"
	"civiceye/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	refreshTimeout  = 15 * time.Second
	deviceTimeout   = 30 * time.Second
	refreshThrottle = time.Second
	suggestDelay    = 300 * time.Millisecond
	historyLimit    = 5
)

// Error toasts shown when a list fetch fails, by the tab that asked for it.
const (
	msgDashboardLoadFailed = "Failed to load dashboard data"
	msgIssuesLoadFailed    = "Failed to load issues"
	msgResolveFailed       = "Failed to resolve issue"
	msgResolved            = "Issue marked as resolved"
)

func loadIssuesCmd(browser *workflow.Browser, ticket uint64, origin Tab) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		issues, err := browser.Load(ctx)
		return issuesLoadedMsg{ticket: ticket, origin: origin, issues: issues, err: err}
	}
}

func resolveCmd(browser *workflow.Browser, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		res, err := browser.Resolve(ctx, id)
		return resolveDoneMsg{id: id, result: res, err: err}
	}
}

func probeCmd(cfg Config, probe diagnostics.Probe) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		return probeDoneMsg{result: diagnostics.Run(ctx, cfg.Client, cfg.Journal, probe)}
	}
}

func historyCmd(journal *diagnostics.Journal) tea.Cmd {
	if journal == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		entries, err := journal.Recent(ctx, historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// startFetch re-fetches the full list for origin. A newer fetch supersedes any
// in flight.
func (m *App) startFetch(origin Tab) tea.Cmd {
	ticket := m.list.BeginFetch()
	debug.Logf("ui: fetching issues for %s (ticket %d)", origin, ticket)
	return tea.Batch(m.spinner.Tick, loadIssuesCmd(m.browser, ticket, origin))
}

func (m *App) applyIssues(msg issuesLoadedMsg) tea.Cmd {
	if !m.list.ApplyFetch(msg.ticket, msg.issues, msg.err) {
		debug.Logf("ui: dropped stale fetch %d", msg.ticket)
		return nil
	}
	if msg.err != nil {
		debug.Error("ui: load issues failed", msg.err)
		text := msgIssuesLoadFailed
		if msg.origin == TabDashboard {
			text = msgDashboardLoadFailed
		}
		return m.errorToast(text)
	}
	m.lastRefresh = timeNow()
	m.issues.clampCursor(len(m.list.Visible()))
	m.issues.refreshDetail(m)
	return nil
}

func (m *App) handleTick() tea.Cmd {
	var cmd tea.Cmd
	if m.active == TabDashboard || m.active == TabIssues {
		cmd = m.startFetch(m.active)
	}
	return tea.Batch(cmd, scheduleTick(m.cfg.RefreshInterval))
}
