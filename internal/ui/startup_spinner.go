package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"
)

var stageMessages = map[StartupStage]string{
	StartupStageInit:           "Starting CivicEye...",
	StartupStageLoadingConfig:  "Reading settings...",
	StartupStageOpeningJournal: "Opening connection history...",
	StartupStageLoadingIssues:  "Loading community issues...",
	StartupStageReady:          "Ready",
}

// StageMessage is the line shown for a startup stage.
func StageMessage(stage StartupStage, detail string) string {
	msg, ok := stageMessages[stage]
	if !ok {
		msg = "Working..."
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += " - " + detail
	}
	return msg
}

// StartupSpinner is a StartupReporter that animates the current stage on a
// single terminal line until the program takes over the screen. Nothing is
// drawn if Stop comes before the delay has passed.
type StartupSpinner struct {
	out   io.Writer
	delay time.Duration
	style spinner.Spinner

	mu      sync.Mutex
	line    string
	frame   int
	shown   bool
	stopped bool

	quit chan struct{}
	done chan struct{}
}

// NewStartupSpinner starts drawing to out once delay has passed.
func NewStartupSpinner(out io.Writer, delay time.Duration) *StartupSpinner {
	return newStartupSpinner(out, delay, spinner.MiniDot)
}

func newStartupSpinner(out io.Writer, delay time.Duration, style spinner.Spinner) *StartupSpinner {
	if out == nil {
		out = io.Discard
	}
	if style.FPS <= 0 {
		style.FPS = time.Second / 10
	}
	s := &StartupSpinner{
		out:   out,
		delay: delay,
		style: style,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.animate()
	return s
}

// Stage implements StartupReporter.
func (s *StartupSpinner) Stage(stage StartupStage, detail string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.line = StageMessage(stage, detail)
	s.drawLocked()
}

// Stop clears the line and waits for the animation to end. Later calls do nothing.
func (s *StartupSpinner) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.quit)
	s.mu.Unlock()

	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shown {
		_, _ = io.WriteString(s.out, "\r"+ansi.EraseEntireLine)
	}
}

func (s *StartupSpinner) animate() {
	defer close(s.done)

	wait := time.NewTimer(s.delay)
	defer wait.Stop()
	select {
	case <-s.quit:
		return
	case <-wait.C:
	}

	s.mu.Lock()
	s.shown = true
	s.drawLocked()
	s.mu.Unlock()

	tick := time.NewTicker(s.style.FPS)
	defer tick.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-tick.C:
			s.mu.Lock()
			s.frame++
			s.drawLocked()
			s.mu.Unlock()
		}
	}
}

func (s *StartupSpinner) drawLocked() {
	if !s.shown || s.stopped || s.line == "" || len(s.style.Frames) == 0 {
		return
	}
	frame := s.style.Frames[s.frame%len(s.style.Frames)]
	_, _ = fmt.Fprintf(s.out, "\r%s%s %s", ansi.EraseEntireLine, frame, s.line)
}
