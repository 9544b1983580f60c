package app

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/treykane/cli-sheets/internal/layout"
)

// System clipboard access, replaced in tests.
var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

// copyCellToClipboard copies the cursor cell value.
func (m *Model) copyCellToClipboard() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	value := m.session.Current().Cell(row, col)
	if err := clipboardWrite(value); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = "Copied " + layout.CellRef(row, col)
}

// copyRowToClipboard copies the cursor row across the display columns as
// tab-separated text.
func (m *Model) copyRowToClipboard() {
	row, _, ok := m.requireCell()
	if !ok {
		return
	}
	sheet := m.session.Current()
	cols := m.table().cols
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = sheet.Cell(row, col)
	}
	if err := clipboardWrite(strings.Join(cells, "\t")); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied row %s (%d cells)", m.rowLabel(row), len(cells))
}

// pasteFromClipboard writes clipboard text at the cursor. Lines fill
// successive rows and tabs successive columns, so text copied from another
// spreadsheet lands as a block.
func (m *Model) pasteFromClipboard() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	value, err := clipboardRead()
	if err != nil {
		m.setStatusError("Clipboard paste failed", err)
		return
	}
	value = strings.TrimRight(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	if value == "" {
		m.status = "Clipboard is empty"
		return
	}

	cells := 0
	for i, line := range strings.Split(value, "\n") {
		for j, cell := range strings.Split(line, "\t") {
			if err := m.session.EditCell(row+i, col+j, cell); err != nil {
				m.setStatusError("Clipboard paste failed", err)
				return
			}
			cells++
		}
	}
	m.focusCell(row, col)
	if cells == 1 {
		m.status = "Pasted into " + layout.CellRef(row, col)
		return
	}
	m.status = fmt.Sprintf("Pasted %d cells at %s", cells, layout.CellRef(row, col))
}
