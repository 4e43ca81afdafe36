package ui

import (
	"context"
	"strings"
	"time"

	"civiceye/internal/api"
	"civiceye/internal/debug"
	"civiceye/internal/diagnostics"
	"civiceye/internal/domain"
	appErrors "civiceye/internal/errors"
	"civiceye/internal/ui/theme"
	"civiceye/internal/workflow"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 12
)

// Tab identifies one of the four top-level screens.
type Tab int

const (
	TabDashboard Tab = iota
	TabReport
	TabIssues
	TabSettings
)

var tabNames = []string{"Home", "Report", "Issues", "Settings"}

func (t Tab) String() string {
	if int(t) >= 0 && int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "unknown"
}

// Config configures the Bubble Tea application.
type Config struct {
	Client    api.Client
	Locations workflow.LocationSource
	Images    workflow.ImageSource
	// Journal is optional; without it probes are not recorded.
	Journal *diagnostics.Journal
	Haptics Haptics

	RefreshInterval time.Duration
	AutoRefresh     bool
	OutputFormat    string
	// SaveTheme persists a theme choice; nil keeps it for the session only.
	SaveTheme func(name string) error

	InitialTab      Tab
	Version         string
	StartupReporter StartupReporter
}

// App is the root Bubble Tea model.
type App struct {
	cfg      Config
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	width  int
	height int
	active Tab

	list     *workflow.ListState
	browser  *workflow.Browser
	reporter *workflow.Reporter
	haptics  Haptics

	report   reportTab
	issues   issuesTab
	settings settingsTab

	toast       *toast
	refresh     throttle
	lastRefresh time.Time
	markdown    func(string) string
}

// NewApp builds the model and performs the first list fetch so the dashboard
// opens populated. A failed first fetch is reported as a toast, not an error.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "ui: an API client is required", nil)
	}
	reporter := cfg.StartupReporter
	if reporter == nil {
		reporter = StartupReporterFunc(nil)
	}
	if cfg.Haptics == nil {
		cfg.Haptics = noHaptics{}
	}
	if cfg.AutoRefresh && cfg.RefreshInterval <= 0 {
		cfg.AutoRefresh = false
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Current().Primary())

	m := &App{
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		progress: progress.New(progress.WithSolidFill(domain.ColorResolved), progress.WithoutPercentage()),
		width:    100,
		height:   30,
		active:   cfg.InitialTab,
		list:     workflow.NewListState(),
		browser:  workflow.NewBrowser(cfg.Client),
		haptics:  cfg.Haptics,
		refresh:  newThrottle(refreshThrottle),
		issues:   newIssuesTab(),
		settings: newSettingsTab(),
	}
	m.reporter = workflow.NewReporter(cfg.Client, cfg.Locations, cfg.Images)
	m.report = newReportTab()
	m.markdown = buildMarkdownRenderer(cfg.OutputFormat, m.detailWidth())

	reporter.Stage(StartupStageLoadingIssues, "")
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	issues, err := m.browser.Load(ctx)
	cancel()
	m.list.ApplyFetch(m.list.BeginFetch(), issues, err)
	if err != nil {
		debug.Error("ui: initial load failed", err)
		m.toast = &toast{kind: toastError, title: titleError, message: msgDashboardLoadFailed, start: timeNow()}
	} else {
		m.lastRefresh = timeNow()
	}
	reporter.Stage(StartupStageReady, "")
	return m, nil
}

// Init implements tea.Model. The list tabs skip their focus fetch because
// NewApp has just loaded the list.
func (m *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.active == TabReport || m.active == TabSettings {
		cmds = append(cmds, m.enterTab(m.active))
	}
	if m.toast != nil {
		cmds = append(cmds, scheduleToastTick())
	}
	if m.cfg.AutoRefresh {
		cmds = append(cmds, scheduleTick(m.cfg.RefreshInterval))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		return m, m.handleTick()
	case toastTickMsg:
		return m, m.handleToastTick()
	case issuesLoadedMsg:
		return m, m.applyIssues(msg)
	case resolveDoneMsg:
		return m, m.issues.handleResolved(m, msg)
	case copyDoneMsg:
		text := "Copied " + msg.what + " to clipboard"
		if msg.viaTerminal {
			text += " (via terminal)"
		}
		return m, m.successToast(text)
	case debounceMsg, suggestionsMsg, locationFilledMsg, imageAttachedMsg, submitDoneMsg:
		return m, m.report.handleMsg(m, msg)
	case probeDoneMsg, historyLoadedMsg, themeSavedMsg:
		return m, m.settings.handleMsg(m, msg)
	}

	// Cursor blink and other component messages go to whatever input is focused.
	if m.active == TabReport {
		return m, m.report.updateInputs(m, msg)
	}
	if m.active == TabIssues && m.issues.searching {
		var cmd tea.Cmd
		m.issues.search, cmd = m.issues.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.editing() {
		switch m.active {
		case TabReport:
			return m.report.handleEditKey(m, msg)
		case TabIssues:
			return m.issues.handleSearchKey(m, msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.active + 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.active + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.Dashboard):
		return m.switchTab(TabDashboard)
	case key.Matches(msg, m.keys.Report):
		return m.switchTab(TabReport)
	case key.Matches(msg, m.keys.Issues):
		return m.switchTab(TabIssues)
	case key.Matches(msg, m.keys.Settings):
		return m.switchTab(TabSettings)
	}

	switch m.active {
	case TabDashboard:
		return m.handleDashboardKey(msg)
	case TabReport:
		return m.report.handleCommandKey(m, msg)
	case TabIssues:
		return m.issues.handleKey(m, msg)
	case TabSettings:
		return m.settings.handleKey(m, msg)
	}
	return nil
}

// editing reports whether a text input owns the keyboard.
func (m *App) editing() bool {
	switch m.active {
	case TabReport:
		return m.report.focus != fieldNone
	case TabIssues:
		return m.issues.searching
	}
	return false
}

func (m *App) busy() bool {
	return m.list.Phase == workflow.PhaseLoading || m.list.Refreshing() ||
		m.issues.resolving != "" || m.report.busy() || m.settings.busy()
}

func (m *App) switchTab(tab Tab) tea.Cmd {
	if tab == m.active {
		return nil
	}
	m.leaveTab(m.active)
	m.active = tab
	return m.enterTab(tab)
}

func (m *App) leaveTab(tab Tab) {
	switch tab {
	case TabReport:
		m.report.blur()
	case TabIssues:
		m.issues.stopSearch()
	}
}

// enterTab runs the on-focus work of a tab. Dashboard and Issues re-fetch the
// full list every time they gain focus.
func (m *App) enterTab(tab Tab) tea.Cmd {
	switch tab {
	case TabDashboard, TabIssues:
		return m.startFetch(tab)
	case TabReport:
		return m.report.enter(m)
	case TabSettings:
		return historyCmd(m.cfg.Journal)
	}
	return nil
}

func (m *App) resize(width, height int) {
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	m.width, m.height = width, height
	m.help.Width = width
	m.progress.Width = clamp(width-20, 10, 60)
	m.report.resize(width)
	m.issues.resize(m.detailWidth(), m.bodyHeight())
	m.markdown = buildMarkdownRenderer(m.cfg.OutputFormat, m.detailWidth())
	m.issues.refreshDetail(m)
}

func (m *App) detailWidth() int {
	return clamp(m.width-4, 20, 100)
}

// bodyHeight is what remains after the header, tab bar and footer.
func (m *App) bodyHeight() int {
	return clamp(m.height-6, 4, m.height)
}

// View implements tea.Model.
func (m *App) View() string {
	header := m.headerView()
	tabs := m.tabBarView()

	var body string
	switch m.active {
	case TabDashboard:
		body = m.dashboardView()
	case TabReport:
		body = m.report.view(m)
	case TabIssues:
		body = m.issues.view(m)
	case TabSettings:
		body = m.settings.view(m)
	}

	parts := []string{header, tabs, body}
	if t := m.toastView(m.width); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.help.View(m.keys.helpFor(m.active, m.editing())))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *App) headerView() string {
	title := "CivicEye"
	if m.cfg.Version != "" {
		title += " v" + strings.TrimPrefix(m.cfg.Version, "v")
	}
	status := ""
	if m.busy() {
		status = " " + m.spinner.View()
	} else if !m.lastRefresh.IsZero() {
		status = "  updated " + strings.ToLower(formatDate(m.lastRefresh))
	}
	line := styleAppHeader().Render(title) + styleMuted().Render(status)
	return line
}

func (m *App) tabBarView() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		parts = append(parts, styleTab(Tab(i) == m.active).Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

// Stats returns the counts of the most recently loaded list.
func (m *App) Stats() domain.Stats {
	return m.list.Stats()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
