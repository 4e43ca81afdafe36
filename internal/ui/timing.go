package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type debounceMsg struct {
	key string
	seq uint64
}

// debouncer fires only the most recent trigger once its delay has passed.
// Every trigger or cancel bumps the sequence, so earlier timers arrive stale.
type debouncer struct {
	key   string
	delay time.Duration
	seq   uint64
}

func newDebouncer(key string, delay time.Duration) debouncer {
	return debouncer{key: key, delay: delay}
}

func (d *debouncer) Trigger() tea.Cmd {
	d.seq++
	msg := debounceMsg{key: d.key, seq: d.seq}
	return tea.Tick(d.delay, func(time.Time) tea.Msg { return msg })
}

func (d *debouncer) Cancel() {
	d.seq++
}

// Fired reports whether msg belongs to this debouncer and is the latest trigger.
func (d debouncer) Fired(msg debounceMsg) bool {
	return msg.key == d.key && msg.seq == d.seq
}

// throttle admits at most one call per window.
type throttle struct {
	window time.Duration
	last   time.Time
	now    func() time.Time
}

func newThrottle(window time.Duration) throttle {
	return throttle{window: window, now: time.Now}
}

func (t *throttle) Allow() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		return false
	}
	t.last = now
	return true
}
