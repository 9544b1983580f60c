package app

import tea "github.com/charmbracelet/bubbletea"

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applyLayout(m.calculateLayout())
	if m.showHelp && m.help.Width != m.helpWidth {
		m.refreshHelp()
	}
	return m, nil
}
