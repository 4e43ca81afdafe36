package ui

import (
	"bytes"
	"errors"
	"testing"
)

func TestBellHapticsPulseCountsByStrength(t *testing.T) {
	tests := []struct {
		style ImpactStyle
		want  string
	}{
		{ImpactLight, "\a"},
		{ImpactMedium, "\a\a"},
		{ImpactHeavy, "\a\a\a"},
		{ImpactStyle(7), ""},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewBellHaptics(&buf, true).Impact(tt.style)
		if got := buf.String(); got != tt.want {
			t.Errorf("Impact(%d) wrote %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestBellHapticsDisabled(t *testing.T) {
	var buf bytes.Buffer
	NewBellHaptics(&buf, false).Impact(ImpactHeavy)
	if buf.Len() != 0 {
		t.Fatalf("disabled haptics wrote %q", buf.String())
	}

	var nilHaptics *BellHaptics
	nilHaptics.Impact(ImpactHeavy)
}

func stubClipboard(t *testing.T, unsupported bool, writeErr error) (*string, *string) {
	t.Helper()
	prevUnsupported, prevWrite, prevOSC := clipboardUnsupported, clipboardWrite, osc52Copy
	t.Cleanup(func() {
		clipboardUnsupported, clipboardWrite, osc52Copy = prevUnsupported, prevWrite, prevOSC
	})

	var system, terminal string
	clipboardUnsupported = func() bool { return unsupported }
	clipboardWrite = func(text string) error {
		if writeErr != nil {
			return writeErr
		}
		system = text
		return nil
	}
	osc52Copy = func(text string) { terminal = text }
	return &system, &terminal
}

func TestCopyToClipboard(t *testing.T) {
	tests := []struct {
		name         string
		unsupported  bool
		writeErr     error
		wantTerminal bool
	}{
		{name: "system clipboard", wantTerminal: false},
		{name: "unsupported", unsupported: true, wantTerminal: true},
		{name: "write fails", writeErr: errors.New("no display"), wantTerminal: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, terminal := stubClipboard(t, tt.unsupported, tt.writeErr)

			via := copyToClipboard("i42")
			if via != tt.wantTerminal {
				t.Fatalf("viaTerminal = %v, want %v", via, tt.wantTerminal)
			}
			got := *system
			if tt.wantTerminal {
				got = *terminal
			}
			if got != "i42" {
				t.Fatalf("copied %q, want %q", got, "i42")
			}
		})
	}
}

func TestCopyCmdReportsWhat(t *testing.T) {
	stubClipboard(t, false, nil)

	msg := copyCmd("location", "MG Road")()
	done, ok := msg.(copyDoneMsg)
	if !ok {
		t.Fatalf("expected copyDoneMsg, got %T", msg)
	}
	if done.what != "location" || done.viaTerminal {
		t.Fatalf("unexpected message %+v", done)
	}
}
