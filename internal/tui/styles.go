package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// palette holds the theme colors
type palette struct {
	primary, secondary, accent, danger, muted, fg, bar lipgloss.Color
}

var defaultPalette = palette{
	primary:   "#7C3AED",
	secondary: "#10B981",
	accent:    "#F59E0B",
	danger:    "#EF4444",
	muted:     "#6B7280",
	fg:        "#F9FAFB",
	bar:       "#374151",
}

// theme is every style the TUI renders with
type theme struct {
	title, subtitle lipgloss.Style
	canvas          lipgloss.Style
	prompt, gui     lipgloss.Style
	output, failure lipgloss.Style
	status          lipgloss.Style
	input, busy     lipgloss.Style
	spinner         lipgloss.Style
}

func newTheme(p palette) theme {
	bold := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	boxed := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(c).Padding(0, 1)
	}
	return theme{
		title:    bold(p.primary),
		subtitle: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		canvas:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent),
		prompt:   bold(p.secondary),
		gui:      bold(p.accent),
		output:   lipgloss.NewStyle().Foreground(p.fg),
		failure:  lipgloss.NewStyle().Foreground(p.danger),
		status:   lipgloss.NewStyle().Background(p.bar).Foreground(p.fg).Padding(0, 1),
		input:    boxed(p.primary),
		busy:     boxed(p.muted),
		spinner:  lipgloss.NewStyle().Foreground(p.primary),
	}
}

var styles = newTheme(defaultPalette)

// RenderError renders a console error line
func RenderError(err string) string {
	return styles.failure.Render("Error: " + err)
}

func renderPrompt(prompt string, gui bool) string {
	if gui {
		return styles.gui.Render(prompt)
	}
	return styles.prompt.Render(prompt)
}
