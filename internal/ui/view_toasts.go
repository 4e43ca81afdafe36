package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const toastDuration = 4 * time.Second

// Toast titles shared across screens.
const (
	titleSuccess         = "Success"
	titleError           = "Error"
	titleValidationError = "Validation Error"
	titleInfo            = "Info"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	kind    toastKind
	title   string
	message string
	start   time.Time
}

func (t *toast) remaining() time.Duration {
	if t == nil {
		return 0
	}
	left := toastDuration - timeNow().Sub(t.start)
	if left < 0 {
		return 0
	}
	return left
}

// showToast replaces any visible toast. The countdown tick only starts when no
// toast was already ticking.
func (m *App) showToast(kind toastKind, title, message string) tea.Cmd {
	ticking := m.toast != nil
	m.toast = &toast{kind: kind, title: title, message: message, start: timeNow()}
	if ticking {
		return nil
	}
	return scheduleToastTick()
}

func (m *App) successToast(message string) tea.Cmd {
	return m.showToast(toastSuccess, titleSuccess, message)
}

func (m *App) errorToast(message string) tea.Cmd {
	return m.showToast(toastError, titleError, message)
}

func (m *App) handleToastTick() tea.Cmd {
	if m.toast == nil {
		return nil
	}
	if m.toast.remaining() <= 0 {
		m.toast = nil
		return nil
	}
	return scheduleToastTick()
}

func toastIcon(kind toastKind) string {
	switch kind {
	case toastSuccess:
		return "✔"
	case toastError:
		return "⚠"
	default:
		return "ℹ"
	}
}

// toastView renders the visible toast right-aligned within width.
func (m *App) toastView(width int) string {
	if m.toast == nil {
		return ""
	}
	secs := int((m.toast.remaining() + time.Second - 1) / time.Second)
	titleLine := fmt.Sprintf("%s %s", toastIcon(m.toast.kind), m.toast.title)
	countdown := fmt.Sprintf("[%ds]", secs)

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	msgLine := ansi.Truncate(m.toast.message, maxWidth, "…")

	toastWidth := 30
	for _, line := range []string{titleLine, msgLine} {
		if w := lipgloss.Width(line); w > toastWidth {
			toastWidth = w
		}
	}
	padding := toastWidth - lipgloss.Width(titleLine) - len(countdown)
	if padding < 1 {
		padding = 1
	}
	content := titleLine + strings.Repeat(" ", padding) + styleMuted().Render(countdown)
	if msgLine != "" {
		content += "\n" + msgLine
	}
	box := styleToast(m.toast.kind).Render(content)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
}
