package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	switch m.phase {
	case PhaseStopped:
		return ""
	case PhaseIdle:
		return m.spinner.View() + " starting"
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.canvas.String() + "\n" + m.statusLine()
}

// statusLine shows the scene, the link, and how fresh the data is.
func (m Model) statusLine() string {
	sep := mutedStyle.Render(" │ ")
	var parts []string

	if len(m.scenes) > 0 {
		parts = append(parts, sceneStyle.Render(
			fmt.Sprintf("[%d/%d] %s", m.active+1, len(m.scenes), m.scenes[m.active].Name)))
	}

	link := "● " + m.link.String()
	if m.endpoint != "" {
		link += " " + m.endpoint
	}
	parts = append(parts, linkStyles[m.link].Render(link))

	switch {
	case m.waiting():
		parts = append(parts, m.spinner.View()+statusStyle.Render(" waiting for data"))
	case m.age > m.stale:
		parts = append(parts, staleStyle.Render(fmt.Sprintf("data %.1fs old", m.age.Seconds())))
	default:
		parts = append(parts, statusStyle.Render(fmt.Sprintf("data %.1fs old", m.age.Seconds())))
	}

	if m.link == LinkDown && m.linkErr != "" {
		parts = append(parts, mutedStyle.Render(firstLine(m.linkErr)))
	}

	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))

	line := strings.Join(parts, sep)
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	content := helpTitleStyle.Render("Keyboard Shortcuts") + "\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		mutedStyle.Render("Press ? to close")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBoxStyle.Render(content),
	)
}

// firstLine trims structured error text to its headline.
func firstLine(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "✗"))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
