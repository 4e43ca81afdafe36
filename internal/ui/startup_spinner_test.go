package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStageMessage(t *testing.T) {
	tests := []struct {
		stage  StartupStage
		detail string
		want   string
	}{
		{StartupStageLoadingIssues, "", "Loading community issues..."},
		{StartupStageLoadingConfig, " ~/.civiceye/config.yaml ", "Reading settings... - ~/.civiceye/config.yaml"},
		{StartupStage(99), "", "Working..."},
	}
	for _, tt := range tests {
		if got := StageMessage(tt.stage, tt.detail); got != tt.want {
			t.Errorf("StageMessage(%v, %q) = %q, want %q", tt.stage, tt.detail, got, tt.want)
		}
	}
}

func TestStartupSpinnerStaysHiddenDuringDelay(t *testing.T) {
	var out lockedBuffer
	sp := NewStartupSpinner(&out, time.Hour)
	sp.Stage(StartupStageLoadingIssues, "")
	sp.Stop()
	sp.Stop()
	sp.Stage(StartupStageReady, "")

	if got := out.String(); got != "" {
		t.Fatalf("expected no output before the delay, got %q", got)
	}
}

func TestStartupSpinnerDrawsStageAndClearsOnStop(t *testing.T) {
	var out lockedBuffer
	sp := newStartupSpinner(&out, 0, spinner.Spinner{Frames: []string{"*"}, FPS: time.Millisecond})
	sp.Stage(StartupStageLoadingIssues, "")

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "* Loading community issues...") {
		if time.Now().After(deadline) {
			sp.Stop()
			t.Fatalf("stage never drawn, output %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	sp.Stop()

	got := out.String()
	if !strings.HasSuffix(got, "\r"+ansi.EraseEntireLine) {
		t.Fatalf("expected the line cleared on stop, got %q", got)
	}
	sp.Stage(StartupStageReady, "")
	if out.String() != got {
		t.Fatal("stage after stop must not draw")
	}
}

func TestNilStartupSpinnerIsSafe(t *testing.T) {
	var sp *StartupSpinner
	sp.Stage(StartupStageInit, "")
	sp.Stop()
}
