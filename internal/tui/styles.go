package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Faint(true)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	unreadStyle   = lipgloss.NewStyle().Bold(true)
	readStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	followTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	helpStyle = lipgloss.NewStyle().Faint(true).MarginTop(1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)

	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	modalHintStyle  = lipgloss.NewStyle().Faint(true)
)
