package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func hasBinding(bindings []key.Binding, want key.Binding) bool {
	for _, b := range bindings {
		if b.Help() == want.Help() {
			return true
		}
	}
	return false
}

func TestHelpForTabs(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name    string
		tab     Tab
		editing bool
		want    key.Binding
		absent  key.Binding
	}{
		{name: "issues", tab: TabIssues, want: k.Resolve, absent: k.Submit},
		{name: "report commands", tab: TabReport, want: k.Capture, absent: k.NextField},
		{name: "report editing", tab: TabReport, editing: true, want: k.Submit, absent: k.Quit},
		{name: "settings", tab: TabSettings, want: k.Toggle, absent: k.Resolve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short := k.helpFor(tt.tab, tt.editing).ShortHelp()
			if !hasBinding(short, tt.want) {
				t.Errorf("expected %q in help", tt.want.Help().Desc)
			}
			if hasBinding(short, tt.absent) {
				t.Errorf("did not expect %q in help", tt.absent.Help().Desc)
			}
		})
	}
}
