package ui

import (
	"os"

	"civiceye/internal/debug"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	clipboardWrite       = clipboard.WriteAll
	// osc52Copy asks the terminal to set the clipboard, which also works over SSH.
	osc52Copy = func(text string) {
		termenv.NewOutput(os.Stdout).Copy(text)
	}
)

// copyToClipboard reports whether the copy went through the terminal rather
// than the system clipboard.
func copyToClipboard(text string) (viaTerminal bool) {
	if clipboardUnsupported() {
		osc52Copy(text)
		return true
	}
	if err := clipboardWrite(text); err != nil {
		debug.Logf("clipboard: system copy failed, falling back to OSC52: %v", err)
		osc52Copy(text)
		return true
	}
	return false
}

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{what: what, viaTerminal: copyToClipboard(text)}
	}
}
