package ui

import (
	"io"
	"strings"
	"sync"
)

// ImpactStyle mirrors the three physical feedback strengths of a phone.
type ImpactStyle int

const (
	ImpactLight ImpactStyle = iota
	ImpactMedium
	ImpactHeavy
)

// Haptics gives tactile feedback for report actions.
type Haptics interface {
	Impact(style ImpactStyle)
}

// BellHaptics rings the terminal bell once for a light impact, twice for a
// medium one and three times for a heavy one.
type BellHaptics struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
}

// NewBellHaptics returns a bell-backed Haptics. A disabled one is silent.
func NewBellHaptics(out io.Writer, enabled bool) *BellHaptics {
	return &BellHaptics{out: out, enabled: enabled}
}

func (b *BellHaptics) Impact(style ImpactStyle) {
	if b == nil || !b.enabled || b.out == nil || style < ImpactLight || style > ImpactHeavy {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.out, strings.Repeat("\a", int(style)+1))
}

type noHaptics struct{}

func (noHaptics) Impact(ImpactStyle) {}
