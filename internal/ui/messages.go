package ui

import (
	"time"

	"civiceye/internal/diagnostics"
	"civiceye/internal/domain"
	"civiceye/internal/location"
	"civiceye/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg struct{}

// issuesLoadedMsg carries a list fetch back to the loop. origin decides which
// error message the toast shows.
type issuesLoadedMsg struct {
	ticket uint64
	origin Tab
	issues []domain.Issue
	err    error
}

type resolveDoneMsg struct {
	id     string
	result workflow.ResolveResult
	err    error
}

type locationFilledMsg struct {
	address string
	auto    bool
	err     error
}

type suggestionsMsg struct {
	seq   uint64
	query string
	items []location.Suggestion
}

type imageSource int

const (
	imageFromCamera imageSource = iota
	imageFromGallery
)

type imageAttachedMsg struct {
	source imageSource
	image  *domain.Image
	err    error
}

type submitDoneMsg struct {
	issue domain.Issue
	err   error
}

type probeDoneMsg struct {
	result diagnostics.Result
}

type historyLoadedMsg struct {
	entries []diagnostics.Entry
	err     error
}

type themeSavedMsg struct {
	name string
	err  error
}

type copyDoneMsg struct {
	what        string
	viaTerminal bool
}

type toastTickMsg struct{}

func scheduleTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
