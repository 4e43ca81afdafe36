package ui

import (
	"fmt"
	"strings"

	"civiceye/internal/debug"
	"civiceye/internal/diagnostics"
	"civiceye/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// AboutText is shown under "About CivicEye".
const AboutText = "CivicEye is a community-driven platform for reporting and tracking civic issues. " +
	"Help make your community better by reporting problems and tracking their resolution."

type settingKind int

const (
	settingToggle settingKind = iota
	settingAction
	settingInfo
)

type settingItem struct {
	kind     settingKind
	title    string
	subtitle string
	run      func(m *App) tea.Cmd
	value    *bool
	probe    diagnostics.Probe
}

// settingsTab holds the preferences screen. The toggles are session-only
// state and do not change how other screens behave.
type settingsTab struct {
	cursor int

	notifications    bool
	locationServices bool
	autoLocation     bool

	probing    map[diagnostics.Probe]bool
	history    []diagnostics.Entry
	historyErr error
	showAbout  bool
}

func newSettingsTab() settingsTab {
	return settingsTab{
		notifications:    true,
		locationServices: true,
		autoLocation:     true,
		probing:          map[diagnostics.Probe]bool{},
	}
}

// entries builds the rows. Pointers into t keep toggles addressable, so the
// list is rebuilt on every use rather than stored across copies of the tab.
func (t *settingsTab) entries() []settingItem {
	return []settingItem{
		{kind: settingToggle, title: "Push Notifications", subtitle: "Get notified about issue updates", value: &t.notifications},
		{kind: settingToggle, title: "Location Services", subtitle: "Allow location access for better reporting", value: &t.locationServices},
		{kind: settingToggle, title: "Auto-detect Location", subtitle: "Automatically fill location when reporting", value: &t.autoLocation},
		{kind: settingAction, title: "Test Backend Connection", probe: diagnostics.ProbeBackend, run: func(m *App) tea.Cmd { return t.runProbe(m, diagnostics.ProbeBackend) }},
		{kind: settingAction, title: "Test Cloudinary", probe: diagnostics.ProbeStorage, run: func(m *App) tea.Cmd { return t.runProbe(m, diagnostics.ProbeStorage) }},
		{kind: settingAction, title: "Theme", subtitle: theme.CurrentName(), run: cycleTheme},
		{kind: settingAction, title: "About CivicEye", subtitle: "Learn more about the app", run: func(*App) tea.Cmd {
			t.showAbout = !t.showAbout
			return nil
		}},
		{kind: settingInfo, title: "Version"},
	}
}

func (t *settingsTab) busy() bool {
	for _, running := range t.probing {
		if running {
			return true
		}
	}
	return false
}

func (t *settingsTab) handleKey(m *App, msg tea.KeyMsg) tea.Cmd {
	items := t.entries()
	switch {
	case key.Matches(msg, m.keys.Up):
		t.cursor = clamp(t.cursor-1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Down):
		t.cursor = clamp(t.cursor+1, 0, len(items)-1)
	case key.Matches(msg, m.keys.Escape):
		t.showAbout = false
	case key.Matches(msg, m.keys.Toggle):
		item := items[t.cursor]
		switch item.kind {
		case settingToggle:
			*item.value = !*item.value
		case settingAction:
			return item.run(m)
		}
	}
	return nil
}

func (t *settingsTab) runProbe(m *App, probe diagnostics.Probe) tea.Cmd {
	if t.probing[probe] {
		return nil
	}
	t.probing[probe] = true
	return tea.Batch(m.spinner.Tick, probeCmd(m.cfg, probe))
}

func cycleTheme(m *App) tea.Cmd {
	name := theme.CycleTheme()
	m.spinner.Style = m.spinner.Style.Foreground(theme.Current().Primary())
	save := m.cfg.SaveTheme
	if save == nil {
		return m.showToast(toastInfo, "Theme", name)
	}
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: save(name)}
	}
}

func (t *settingsTab) handleMsg(m *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case probeDoneMsg:
		res := msg.result
		t.probing[res.Probe] = false
		var toastCmd tea.Cmd
		if res.OK {
			toastCmd = m.showToast(toastSuccess, titleSuccess, res.Title)
		} else {
			toastCmd = m.showToast(toastError, titleError, res.Title)
		}
		return tea.Batch(toastCmd, historyCmd(m.cfg.Journal))
	case historyLoadedMsg:
		t.history, t.historyErr = msg.entries, msg.err
		if msg.err != nil {
			debug.Error("ui: load probe history failed", msg.err)
		}
	case themeSavedMsg:
		if msg.err != nil {
			debug.Error("ui: save theme failed", msg.err, "theme", msg.name)
			return m.errorToast("Theme changed for this session only")
		}
		return m.showToast(toastInfo, "Theme", msg.name)
	}
	return nil
}

func (t *settingsTab) view(m *App) string {
	var b strings.Builder

	stats := m.list.Stats()
	b.WriteString(styleSectionTitle().Render("Your Impact"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s reported · %s resolved · %s pending\n\n",
		styleStatValue().Render(fmt.Sprint(stats.Total)),
		styleStatValue().Render(fmt.Sprint(stats.Resolved)),
		styleStatValue().Render(fmt.Sprint(stats.Pending)))

	b.WriteString(styleSectionTitle().Render("Settings"))
	b.WriteString("\n")
	for i, item := range t.entries() {
		b.WriteString(t.itemLine(m, i, item))
		b.WriteString("\n")
	}

	if t.showAbout {
		b.WriteString("\n")
		b.WriteString(styleSectionTitle().Render("About CivicEye"))
		b.WriteString("\n")
		about := AboutText + "\n\nVersion " + m.versionLabel()
		b.WriteString(styleText().Render(wordwrap.String(about, clamp(m.width-4, 20, 80))))
		b.WriteString("\n")
	}

	if m.cfg.Journal != nil {
		b.WriteString("\n")
		b.WriteString(styleSectionTitle().Render("Recent Checks"))
		b.WriteString("\n")
		switch {
		case t.historyErr != nil:
			b.WriteString(styleErrorText().Render("History unavailable"))
			b.WriteString("\n")
		case len(t.history) == 0:
			b.WriteString(styleMuted().Render("No checks run yet"))
			b.WriteString("\n")
		}
		for _, e := range t.history {
			mark := "✔"
			if !e.OK {
				mark = "✘"
			}
			fmt.Fprintf(&b, "%s %-8s %s  %s\n", mark, e.Probe, styleMuted().Render(formatDate(e.CheckedAt)), e.Message)
		}
	}
	return b.String()
}

func (t *settingsTab) itemLine(m *App, i int, item settingItem) string {
	prefix := "  "
	if i == t.cursor {
		prefix = "▶ "
	}
	var value string
	switch item.kind {
	case settingToggle:
		value = "[ ]"
		if *item.value {
			value = "[✔]"
		}
	case settingAction:
		if item.probe != "" && t.probing[item.probe] {
			value = m.spinner.View()
		}
	case settingInfo:
		value = m.versionLabel()
	}
	line := prefix + item.title
	if value != "" {
		line += "  " + value
	}
	if item.subtitle != "" {
		line += "  " + styleMuted().Render(item.subtitle)
	}
	if i == t.cursor {
		return styleSelected().Render(line)
	}
	return styleText().Render(line)
}

func (m *App) versionLabel() string {
	if m.cfg.Version == "" {
		return "dev"
	}
	return strings.TrimPrefix(m.cfg.Version, "v")
}
