package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the dashboard's keyboard shortcuts. It satisfies
// help.KeyMap so the footer and the help overlay stay in sync with it.
type keyMap struct {
	Quit      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Redraw    key.Binding
	Help      key.Binding
	Close     key.Binding
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	NextScene: key.NewBinding(
		key.WithKeys("tab", "right", "l", "n"),
		key.WithHelp("tab", "next scene"),
	),
	PrevScene: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h", "p"),
		key.WithHelp("shift+tab", "previous scene"),
	),
	Redraw: key.NewBinding(
		key.WithKeys("r", "ctrl+l"),
		key.WithHelp("r", "redraw"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close help"),
	),
}

// ShortHelp is shown in the status line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScene, k.PrevScene, k.Redraw},
		{k.Help, k.Close, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		return true, tea.Quit

	case key.Matches(msg, m.keys.NextScene):
		m.switchScene(1)
		return true, nil

	case key.Matches(msg, m.keys.PrevScene):
		m.switchScene(-1)
		return true, nil

	case key.Matches(msg, m.keys.Redraw):
		if m.phase == PhaseRunning {
			m.renderPass()
		}
		return true, tea.ClearScreen
	}

	return false, nil
}
