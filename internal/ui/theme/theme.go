// Package theme provides the semantic color system for the CivicEye UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme exposes the semantic colors the UI renders with.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // header bar, active tab, focused borders
	Secondary() lipgloss.AdaptiveColor // field labels, links
	Accent() lipgloss.AdaptiveColor    // stat values, titles

	Error() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor
	Info() lipgloss.AdaptiveColor

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	BackgroundSecondary() lipgloss.AdaptiveColor // selected rows, chips
	BorderNormal() lipgloss.AdaptiveColor
}

// Palette is a Theme backed by plain light/dark hex pairs.
type Palette struct {
	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor
	AccentColor    lipgloss.AdaptiveColor
	ErrorColor     lipgloss.AdaptiveColor
	SuccessColor   lipgloss.AdaptiveColor
	InfoColor      lipgloss.AdaptiveColor
	TextColor      lipgloss.AdaptiveColor
	MutedColor     lipgloss.AdaptiveColor
	SelectedColor  lipgloss.AdaptiveColor
	BorderColor    lipgloss.AdaptiveColor
}

func (p Palette) Primary() lipgloss.AdaptiveColor             { return p.PrimaryColor }
func (p Palette) Secondary() lipgloss.AdaptiveColor           { return p.SecondaryColor }
func (p Palette) Accent() lipgloss.AdaptiveColor              { return p.AccentColor }
func (p Palette) Error() lipgloss.AdaptiveColor               { return p.ErrorColor }
func (p Palette) Success() lipgloss.AdaptiveColor             { return p.SuccessColor }
func (p Palette) Info() lipgloss.AdaptiveColor                { return p.InfoColor }
func (p Palette) Text() lipgloss.AdaptiveColor                { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor           { return p.MutedColor }
func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor { return p.SelectedColor }
func (p Palette) BorderNormal() lipgloss.AdaptiveColor        { return p.BorderColor }

func pair(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
