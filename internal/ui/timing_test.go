package ui

import (
	"testing"
	"time"
)

func TestDebouncerOnlyLatestFires(t *testing.T) {
	d := newDebouncer("search", 300*time.Millisecond)

	if d.Trigger() == nil {
		t.Fatal("expected tick command")
	}
	first := debounceMsg{key: "search", seq: d.seq}
	d.Trigger()
	second := debounceMsg{key: "search", seq: d.seq}

	if d.Fired(first) {
		t.Error("superseded trigger fired")
	}
	if !d.Fired(second) {
		t.Error("latest trigger did not fire")
	}
	if d.Fired(debounceMsg{key: "other", seq: d.seq}) {
		t.Error("message for another debouncer fired")
	}

	d.Cancel()
	if d.Fired(second) {
		t.Error("cancelled trigger fired")
	}
}

func TestThrottleWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	th := newThrottle(time.Second)
	th.now = func() time.Time { return now }

	if !th.Allow() {
		t.Fatal("first call should pass")
	}
	now = now.Add(500 * time.Millisecond)
	if th.Allow() {
		t.Fatal("call inside the window should be dropped")
	}
	now = now.Add(500 * time.Millisecond)
	if !th.Allow() {
		t.Fatal("call after the window should pass")
	}
}

func TestScheduleTickDisabled(t *testing.T) {
	if scheduleTick(0) != nil {
		t.Error("zero interval should not schedule")
	}
	if scheduleTick(time.Minute) == nil {
		t.Error("positive interval should schedule")
	}
}
