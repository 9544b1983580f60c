package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/codec"
	"github.com/treykane/cli-sheets/internal/config"
	"github.com/treykane/cli-sheets/internal/grid"
)

// decodeResultMsg carries a finished decode back to the update loop. Exactly
// one of sheets and err is set.
type decodeResultMsg struct {
	path   string
	sheets []*grid.Sheet
	err    error
}

// decodeFileCmd reads and decodes path off the update loop. There is no
// cancellation: the result is applied whenever it arrives.
func decodeFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		sheets, err := codec.ReadFile(path)
		return decodeResultMsg{path: path, sheets: sheets, err: err}
	}
}

// openFile starts loading path. Files that do not look like workbooks are
// ignored without a message.
func (m *Model) openFile(path string) tea.Cmd {
	if m.loading {
		m.status = "Still loading " + filepath.Base(m.loadingPath)
		return nil
	}
	resolved, err := config.NormalizePath(path)
	if err != nil {
		m.setStatusError("Invalid path", err, "path", path)
		return nil
	}
	if !codec.IsWorkbookFile(resolved, "") {
		appLog.Debug("ignore unsupported file", "path", resolved)
		return nil
	}
	m.loading = true
	m.loadingPath = resolved
	m.status = "Loading " + filepath.Base(resolved)
	return tea.Batch(m.spinner.Tick, decodeFileCmd(resolved))
}

// handleDecodeResult commits a decoded workbook. A failed decode leaves the
// current workbook untouched.
func (m *Model) handleDecodeResult(msg decodeResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadingPath = ""
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Failed to read file: %v", msg.err), msg.err, "path", msg.path)
		return m, nil
	}

	m.session.Load(msg.sheets)
	m.filePath = msg.path
	m.rememberFileState(msg.path)
	m.mouseDrag = 0
	m.resetCursor()
	if sheet := m.restoreSheet(msg.path); sheet > 0 {
		m.session.SwitchSheet(sheet)
	}
	m.initialSheet = 0
	m.recordRecentFile(msg.path)
	m.rememberSheet()

	appLog.Info("loaded workbook", "path", msg.path, "sheets", len(msg.sheets))
	m.status = fmt.Sprintf("Loaded %s (%d %s)", filepath.Base(msg.path), len(msg.sheets), plural(len(msg.sheets), "sheet"))
	return m, nil
}

// handleSpinnerTick advances the spinner while a decode is pending.
func (m *Model) handleSpinnerTick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
