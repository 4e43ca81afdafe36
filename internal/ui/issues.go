package ui

import (
	"fmt"
	"strings"

	"civiceye/internal/debug"
	"civiceye/internal/domain"
	"civiceye/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chipOrder is the display order of the filter chips.
var chipOrder = []domain.StatusFilter{domain.FilterAll, domain.FilterPending, domain.FilterResolved}

type issuesTab struct {
	search    textinput.Model
	searching bool

	cursor int
	offset int
	rows   int

	showDetail bool
	detailID   string
	viewport   viewport.Model

	// resolving holds the id of the issue whose resolve call is in flight.
	resolving string
}

func newIssuesTab() issuesTab {
	ti := textinput.New()
	ti.Placeholder = "Search issues..."
	ti.Prompt = "🔍 "
	return issuesTab{
		search:   ti,
		rows:     10,
		viewport: viewport.New(80, 10),
	}
}

func (t *issuesTab) resize(width, height int) {
	t.search.Width = clamp(width-6, 10, width)
	t.rows = clamp(height-6, 3, height)
	t.viewport.Width = width
	t.viewport.Height = clamp(height-2, 3, height)
}

func (t *issuesTab) clampCursor(n int) {
	if n == 0 {
		t.cursor, t.offset = 0, 0
		return
	}
	t.cursor = clamp(t.cursor, 0, n-1)
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.rows {
		t.offset = t.cursor - t.rows + 1
	}
}

func (t *issuesTab) stopSearch() {
	t.searching = false
	t.search.Blur()
}

func (t *issuesTab) selected(m *App) (domain.Issue, bool) {
	visible := m.list.Visible()
	if t.cursor < 0 || t.cursor >= len(visible) {
		return domain.Issue{}, false
	}
	return visible[t.cursor], true
}

func (t *issuesTab) handleSearchKey(m *App, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Enter) {
		t.stopSearch()
		return nil
	}
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	if q := t.search.Value(); q != m.list.Query {
		m.list.SetQuery(q)
		t.cursor = 0
		t.clampCursor(len(m.list.Visible()))
	}
	return cmd
}

func (t *issuesTab) handleKey(m *App, msg tea.KeyMsg) tea.Cmd {
	if t.showDetail {
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
			t.showDetail = false
			return nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return cmd
		}
	}

	visible := m.list.Visible()
	switch {
	case key.Matches(msg, m.keys.Up):
		t.cursor--
		t.clampCursor(len(visible))
	case key.Matches(msg, m.keys.Down):
		t.cursor++
		t.clampCursor(len(visible))
	case key.Matches(msg, m.keys.Enter):
		if _, ok := t.selected(m); ok {
			t.showDetail = true
			t.refreshDetail(m)
			t.viewport.GotoTop()
		}
	case key.Matches(msg, m.keys.Search):
		t.searching = true
		t.showDetail = false
		return t.search.Focus()
	case key.Matches(msg, m.keys.Escape):
		if m.list.Query != "" {
			t.search.SetValue("")
			m.list.SetQuery("")
			t.clampCursor(len(m.list.Visible()))
		}
	case key.Matches(msg, m.keys.Filter):
		m.list.SetFilter(m.list.Filter.Next())
		t.cursor = 0
		t.clampCursor(len(m.list.Visible()))
	case key.Matches(msg, m.keys.Refresh):
		if !m.refresh.Allow() {
			return nil
		}
		return m.startFetch(TabIssues)
	case key.Matches(msg, m.keys.Resolve):
		return t.resolveSelected(m)
	case key.Matches(msg, m.keys.CopyID):
		if issue, ok := t.selected(m); ok {
			return copyCmd("issue ID", issue.ID)
		}
	case key.Matches(msg, m.keys.CopyLocation):
		if issue, ok := t.selected(m); ok && issue.Location != "" {
			return copyCmd("location", issue.Location)
		}
	case key.Matches(msg, m.keys.NewIssue):
		return m.switchTab(TabReport)
	}
	return nil
}

func (t *issuesTab) resolveSelected(m *App) tea.Cmd {
	issue, ok := t.selected(m)
	if !ok || t.resolving != "" {
		return nil
	}
	if issue.Resolved {
		return m.showToast(toastInfo, titleInfo, "Issue is already resolved")
	}
	t.resolving = issue.ID
	return tea.Batch(m.spinner.Tick, resolveCmd(m.browser, issue.ID))
}

func (t *issuesTab) handleResolved(m *App, msg resolveDoneMsg) tea.Cmd {
	t.resolving = ""
	if msg.err != nil {
		debug.Error("ui: resolve failed", msg.err, "id", msg.id)
		return m.errorToast(msgResolveFailed)
	}
	if msg.result.RefreshErr != nil {
		debug.Error("ui: refresh after resolve failed", msg.result.RefreshErr, "id", msg.id)
	}
	m.list.ApplyResolve(msg.result)
	t.clampCursor(len(m.list.Visible()))
	t.refreshDetail(m)
	return m.successToast(msgResolved)
}

// refreshDetail re-renders the detail pane for the selected issue.
func (t *issuesTab) refreshDetail(m *App) {
	if !t.showDetail {
		return
	}
	issue, ok := t.selected(m)
	if !ok {
		t.showDetail = false
		t.detailID = ""
		return
	}
	t.detailID = issue.ID
	t.viewport.SetContent(m.markdown(issueMarkdown(issue)))
}

func issueMarkdown(issue domain.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", issue.Title)
	fmt.Fprintf(&b, "**Status:** %s  \n", domain.StatusText(issue.Resolved))
	fmt.Fprintf(&b, "**Location:** %s  \n", issue.Location)
	if !issue.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "**Reported:** %s (%s)  \n", formatDateTime(issue.CreatedAt), formatDate(issue.CreatedAt))
	}
	fmt.Fprintf(&b, "**ID:** `%s`  \n", issue.ID)
	if issue.HasImage() {
		fmt.Fprintf(&b, "**Image:** %s  \n", issue.Image)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(issue.Description)
	b.WriteString("\n")
	return b.String()
}

func (t *issuesTab) view(m *App) string {
	if t.showDetail {
		return stylePane().Render(t.viewport.View())
	}

	var b strings.Builder
	b.WriteString(styleInput(t.searching).Render(t.search.View()))
	b.WriteString("\n")

	stats := m.list.Stats()
	for _, f := range chipOrder {
		label := fmt.Sprintf("%s (%d)", f.Label(), stats.Count(f))
		b.WriteString(styleChip(m.list.Filter == f).Render(label))
	}
	b.WriteString("\n\n")

	switch {
	case m.list.Phase == workflow.PhaseLoading:
		b.WriteString(m.spinner.View() + " Loading issues...")
		return b.String()
	case m.list.Phase == workflow.PhaseError && len(m.list.Issues()) == 0:
		b.WriteString(styleErrorText().Render(msgIssuesLoadFailed))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("Press r to try again"))
		return b.String()
	}

	visible := m.list.Visible()
	if len(visible) == 0 {
		b.WriteString(styleSectionTitle().Render(m.list.EmptyMessage()))
		b.WriteString("\n")
		if m.list.EmptyMessage() == workflow.EmptyNoMatches {
			b.WriteString(styleMuted().Render("Try adjusting your search or filter criteria"))
		} else {
			b.WriteString(styleMuted().Render("Be the first to report a civic issue in your community. Press n to report."))
		}
		return b.String()
	}

	end := clamp(t.offset+t.rows, 0, len(visible))
	for i := t.offset; i < end; i++ {
		row := m.issueRow(visible[i], m.width-2, i == t.cursor)
		if visible[i].ID == t.resolving {
			row = m.spinner.View() + " " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(visible) > t.rows {
		b.WriteString(styleMuted().Render(fmt.Sprintf("%d–%d of %d", t.offset+1, end, len(visible))))
	}
	return b.String()
}
