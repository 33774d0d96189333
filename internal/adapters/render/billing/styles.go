package billing

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	detail     lipgloss.Style
	faint      lipgloss.Style
	empty      lipgloss.Style
	warning    lipgloss.Style
	banner     lipgloss.Style
	badge      lipgloss.Style
	defaultTag lipgloss.Style
	metricKey  lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
	nominal    lipgloss.Style
	warnTier   lipgloss.Style
	critical   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		faint:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:      lipgloss.NewStyle().Faint(true),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		banner:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		badge:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		defaultTag: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		metricKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		nominal:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		warnTier:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		critical:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
