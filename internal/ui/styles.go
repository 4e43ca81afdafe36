package ui

import (
	"strings"

	"civiceye/internal/domain"
	"civiceye/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Styles are built on demand so a theme switch applies on the next render.

func styleAppHeader() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}).
		Background(t.Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleTab(active bool) lipgloss.Style {
	t := theme.Current()
	s := lipgloss.NewStyle().Padding(0, 2)
	if active {
		return s.Foreground(t.Primary()).Bold(true).Underline(true)
	}
	return s.Foreground(t.TextMuted())
}

func styleSectionTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleField() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

func styleErrorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error()).Bold(true)
}

func styleStatValue() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleStatCard() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal()).
		Padding(0, 2).
		MarginRight(1)
}

func styleSelected() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Background(t.BackgroundSecondary()).
		Foreground(t.Text()).
		Bold(true)
}

func styleChip(selected bool) lipgloss.Style {
	t := theme.Current()
	s := lipgloss.NewStyle().Padding(0, 1).MarginRight(1)
	if selected {
		return s.Background(t.Primary()).Foreground(lipgloss.Color("#ffffff")).Bold(true)
	}
	return s.Background(t.BackgroundSecondary()).Foreground(t.Text())
}

// styleStatusBadge uses the fixed status colors regardless of theme.
func styleStatusBadge(resolved bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(domain.StatusColor(resolved))).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1)
}

func styleInput(focused bool) lipgloss.Style {
	t := theme.Current()
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if focused {
		return s.BorderForeground(t.Primary())
	}
	return s.BorderForeground(t.BorderNormal())
}

func stylePane() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Current().BorderNormal())
}

func styleToast(kind toastKind) lipgloss.Style {
	t := theme.Current()
	border := t.Info()
	switch kind {
	case toastSuccess:
		border = t.Success()
	case toastError:
		border = t.Error()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(t.Text()).
		Padding(0, 1)
}

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().Primary()).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1)
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
