package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkorchagin/logbook/internal/confirm"
)

// modalView renders the visible acknowledgement request centered on the
// screen. While a request is pending the modal owns the whole surface; the
// feed and forms resume when it is dismissed.
func (a App) modalView(req *confirm.Request) string {
	width := a.width / 2
	if width < 30 {
		width = a.width - 4
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(req.Title()),
		"",
		lipgloss.NewStyle().Width(width).Render(req.Message()),
		"",
		modalHintStyle.Render("press enter to dismiss"),
	)

	box := modalStyle.Render(body)
	if a.broker.Pending() > 1 {
		box = lipgloss.JoinVertical(lipgloss.Right,
			box,
			modalHintStyle.Render("more pending…"),
		)
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
