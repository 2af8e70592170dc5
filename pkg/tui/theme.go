package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/memo/pkg/app"
)

// Styles centralizes Lip Gloss styles for the Bubble Tea UI.
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Overdue   lipgloss.Style
	Faint     lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
	Frame     lipgloss.Style
	Label     lipgloss.Style
}

// StylesFor returns the styles for the light or dark theme.
func StylesFor(t app.Theme) Styles {
	var (
		accent = lipgloss.Color("25")
		text   = lipgloss.Color("235")
		faint  = lipgloss.Color("244")
		alert  = lipgloss.Color("160")
		selBg  = lipgloss.Color("254")
	)
	if t == app.ThemeDark {
		accent = lipgloss.Color("212")
		text = lipgloss.Color("252")
		faint = lipgloss.Color("241")
		alert = lipgloss.Color("203")
		selBg = lipgloss.Color("237")
	}

	tab := lipgloss.NewStyle().Foreground(faint).Padding(0, 1)
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tab:       tab,
		ActiveTab: tab.Foreground(accent).Bold(true).Underline(true),
		Item:      lipgloss.NewStyle().Foreground(text),
		Selected:  lipgloss.NewStyle().Foreground(text).Background(selBg).Bold(true),
		Done:      lipgloss.NewStyle().Foreground(faint).Strikethrough(true),
		Overdue:   lipgloss.NewStyle().Foreground(alert).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(faint),
		Status:    lipgloss.NewStyle().Foreground(faint).Italic(true),
		Help:      lipgloss.NewStyle().Foreground(faint),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Bold(true),
	}
}
