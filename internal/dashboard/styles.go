package dashboard

import "github.com/charmbracelet/lipgloss"

// Status line colors use the 8-color ANSI palette so the dashboard looks
// the same as the charts on basic industrial terminals.
const (
	colorOK      lipgloss.Color = "2" // Green
	colorPending lipgloss.Color = "3" // Yellow
	colorDown    lipgloss.Color = "1" // Red
	colorAccent  lipgloss.Color = "6" // Cyan
	colorMuted   lipgloss.Color = "8" // Gray (bright black)
	colorText    lipgloss.Color = "7" // White
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText)

	sceneStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	linkStyles = map[LinkState]lipgloss.Style{
		LinkConnecting: lipgloss.NewStyle().Foreground(colorPending),
		LinkConnected:  lipgloss.NewStyle().Foreground(colorOK),
		LinkDown:       lipgloss.NewStyle().Foreground(colorDown),
	}

	staleStyle = lipgloss.NewStyle().
			Foreground(colorPending)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginBottom(1)
)
