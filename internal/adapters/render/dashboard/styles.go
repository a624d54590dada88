package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	sourceKey   lipgloss.Style
	count       lipgloss.Style
	unavailable lipgloss.Style
	section     lipgloss.Style
	sectionName lipgloss.Style
	caption     lipgloss.Style
	eta         lipgloss.Style
	status      lipgloss.Style
	empty       lipgloss.Style
	hint        lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		sourceKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		count:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		unavailable: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		sectionName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		caption:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		eta:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		empty:       lipgloss.NewStyle().Faint(true),
		hint:        lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
