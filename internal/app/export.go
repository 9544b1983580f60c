package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/codec"
	"github.com/treykane/cli-sheets/internal/grid"
)

type exportResultMsg struct {
	path   string
	sheets int
	err    error
}

// exportWorkbook encodes a snapshot of every sheet and writes it to the
// export path.
func (m *Model) exportWorkbook() tea.Cmd {
	if !m.session.Loaded() {
		m.status = "Nothing to export: " + m.noWorkbookStatus()
		return nil
	}
	sheets := make([]*grid.Sheet, 0, len(m.session.Sheets()))
	for _, sheet := range m.session.Sheets() {
		sheets = append(sheets, sheet.Clone())
	}
	path := m.exportPath
	m.status = "Exporting to " + path
	return func() tea.Msg {
		err := codec.WriteFile(path, sheets)
		return exportResultMsg{path: path, sheets: len(sheets), err: err}
	}
}

func (m *Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Export failed: %v", msg.err), msg.err, "path", msg.path)
		return m, nil
	}
	if samePath(msg.path, m.filePath) {
		m.rememberFileState(m.filePath)
	}
	m.status = fmt.Sprintf("Exported %d %s to %s", msg.sheets, plural(msg.sheets, "sheet"), msg.path)
	return m, nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
