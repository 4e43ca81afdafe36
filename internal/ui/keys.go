package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts for the application.
// Tab-specific bindings only fire on their own tab.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Dashboard key.Binding
	Report    key.Binding
	Issues    key.Binding
	Settings  key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding

	// Issues
	Search       key.Binding
	Filter       key.Binding
	Refresh      key.Binding
	Resolve      key.Binding
	CopyID       key.Binding
	CopyLocation key.Binding
	NewIssue     key.Binding

	// Report
	Edit        key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Locate      key.Binding
	Capture     key.Binding
	Pick        key.Binding
	RemoveImage key.Binding
	Submit      key.Binding

	// Settings
	Toggle key.Binding
}

// DefaultKeyMap returns the default keybindings for CivicEye.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Previous tab"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		Report: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Report"),
		),
		Issues: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Issues"),
		),
		Settings: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Back"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Mark resolved"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy ID"),
		),
		CopyLocation: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Copy location"),
		),
		NewIssue: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New issue"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "Edit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Previous field"),
		),
		Locate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "Use current location"),
		),
		Capture: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Take photo"),
		),
		Pick: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Choose image"),
		),
		RemoveImage: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove image"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "Submit"),
		),

		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("⏎/Space", "Toggle / run"),
		),
	}
}

// bindingSet adapts a list of bindings to help.KeyMap.
type bindingSet struct {
	short []key.Binding
	full  [][]key.Binding
}

var _ help.KeyMap = bindingSet{}

func (b bindingSet) ShortHelp() []key.Binding  { return b.short }
func (b bindingSet) FullHelp() [][]key.Binding { return b.full }

// helpFor returns the bindings shown in the footer for a tab and input state.
func (k KeyMap) helpFor(tab Tab, editing bool) bindingSet {
	global := []key.Binding{k.NextTab, k.Help, k.Quit}
	if editing {
		switch tab {
		case TabReport:
			fields := []key.Binding{k.NextField, k.PrevField, k.Locate, k.Submit, k.Escape}
			return bindingSet{short: fields, full: [][]key.Binding{fields, {k.ForceQuit}}}
		default:
			return bindingSet{short: []key.Binding{k.Enter, k.Escape}, full: [][]key.Binding{{k.Enter, k.Escape}}}
		}
	}
	var local []key.Binding
	switch tab {
	case TabDashboard:
		local = []key.Binding{k.Refresh, k.NewIssue, k.Issues}
	case TabReport:
		local = []key.Binding{k.Edit, k.Locate, k.Capture, k.Pick, k.RemoveImage, k.Submit}
	case TabIssues:
		local = []key.Binding{k.Up, k.Down, k.Enter, k.Search, k.Filter, k.Resolve, k.Refresh, k.CopyID, k.CopyLocation, k.NewIssue}
	case TabSettings:
		local = []key.Binding{k.Up, k.Down, k.Toggle}
	}
	nav := []key.Binding{k.Dashboard, k.Report, k.Issues, k.Settings, k.PrevTab}
	return bindingSet{
		short: append(append([]key.Binding{}, local...), global...),
		full:  [][]key.Binding{local, nav, global},
	}
}
