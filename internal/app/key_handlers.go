package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/layout"
	"github.com/treykane/cli-sheets/internal/session"
)

// handleBrowseKey routes key presses in browse mode.
func (m *Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	if !m.workbookLoaded() {
		if path, ok := m.recentFileForKey(key); ok {
			return m, m.openFile(path)
		}
	}
	switch m.actionForKey(key) {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		return m.toggleHelp()
	case actionCursorUp:
		m.moveCursor(-1, 0)
	case actionCursorDown:
		m.moveCursor(1, 0)
	case actionCursorLeft:
		m.moveCursor(0, -1)
	case actionCursorRight:
		m.moveCursor(0, 1)
	case actionJumpTop:
		m.cursorRow = 0
	case actionJumpBottom:
		m.cursorRow = len(m.table().rows) - 1
	case actionRowStart:
		m.cursorCol = 0
	case actionRowEnd:
		m.cursorCol = len(m.table().cols) - 1
	case actionPageUp:
		m.moveCursor(-max(1, m.calculateLayout().BodyRows), 0)
	case actionPageDown:
		m.moveCursor(max(1, m.calculateLayout().BodyRows), 0)
	case actionNextSheet:
		m.cycleSheet(1)
	case actionPrevSheet:
		m.cycleSheet(-1)
	case actionEditCell:
		m.startEditCell()
	case actionClearCell:
		m.clearCell()
	case actionAddRow:
		m.addRow()
	case actionAddColumn:
		m.addColumn()
	case actionMoveRow:
		m.moveRow()
	case actionMoveColumn:
		m.moveColumn()
	case actionCancel:
		m.cancelMove()
	case actionShrinkColumn:
		m.resizeColumn(-ResizeStep)
	case actionGrowColumn:
		m.resizeColumn(ResizeStep)
	case actionToggleRow:
		m.toggleRow()
	case actionToggleAllRows:
		m.toggleAllRows()
	case actionCopyCell:
		m.copyCellToClipboard()
	case actionCopyRow:
		m.copyRowToClipboard()
	case actionPaste:
		m.pasteFromClipboard()
	case actionOpen:
		m.startOpenFile()
	case actionExport:
		return m, m.exportWorkbook()
	case actionReset:
		m.startReset()
	}
	return m, nil
}

// handleEditCellKey routes key presses while the cell editor is open.
func (m *Model) handleEditCellKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if m.commitEdit() {
			m.moveCursor(1, 0)
		}
		return m, nil
	case "tab":
		if m.commitEdit() {
			m.advanceCursor()
		}
		return m, nil
	case "esc":
		m.closeInput()
		m.status = "Edit cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleOpenFileKey routes key presses while the open-file prompt is shown.
func (m *Model) handleOpenFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if path == "" {
			m.status = "Open cancelled"
			return m, nil
		}
		return m, m.openFile(path)
	case "esc":
		m.closeInput()
		m.status = "Open cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmResetKey handles the discard-workbook confirmation.
func (m *Model) handleConfirmResetKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "shift+y":
		m.session.Reset()
		m.filePath = ""
		m.fileWatch = fileWatchEntry{}
		m.mouseDrag = 0
		m.resetCursor()
		m.mode = modeBrowse
		m.status = "Workbook closed"
	case "n", "N", "esc":
		m.mode = modeBrowse
		m.status = "Reset cancelled"
	}
	return m, nil
}

// handleHelpKey scrolls or closes the help screen.
func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if action := m.actionForKey(key); key == "esc" || action == actionHelp || action == actionQuit {
		m.showHelp = false
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

// toggleHelp shows or hides the help screen.
func (m *Model) toggleHelp() (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	if m.showHelp {
		m.refreshHelp()
		m.status = ""
	}
	return m, nil
}

func (m *Model) requireCell() (row, col int, ok bool) {
	row, col, ok = m.cursorCell()
	if ok {
		return row, col, true
	}
	if m.session.Loaded() {
		m.status = fmt.Sprintf("This sheet is empty, press %s to add a column", m.primaryActionKey(actionAddColumn, "c"))
	} else {
		m.status = m.noWorkbookStatus()
	}
	return 0, 0, false
}

func (m *Model) noWorkbookStatus() string {
	return fmt.Sprintf("Open a workbook first (%s)", m.primaryActionKey(actionOpen, "Ctrl+O"))
}

// startEditCell opens the editor on the cursor cell.
func (m *Model) startEditCell() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	m.editRow, m.editCol = row, col
	m.input.Placeholder = ""
	m.input.CharLimit = CellCharLimit
	m.input.ShowSuggestions = false
	m.input.SetValue(m.session.Current().Cell(row, col))
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeEditCell
	m.status = ""
}

// commitEdit writes the editor value back into the sheet and reports whether
// the cell changed.
func (m *Model) commitEdit() bool {
	value := m.input.Value()
	m.closeInput()

	var err error
	if m.editRow == layout.HeaderRow {
		err = m.session.EditHeader(m.editCol, value)
	} else {
		err = m.session.EditCell(m.editRow, m.editCol, value)
	}
	if err != nil {
		m.setStatusError("Edit failed", err, "row", m.editRow, "col", m.editCol)
		return false
	}
	// Filling a blank column reorders the display columns.
	m.focusCell(m.editRow, m.editCol)
	m.status = "Saved " + layout.CellRef(m.editRow, m.editCol)
	return true
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeBrowse
}

func (m *Model) clearCell() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	if err := m.session.EditCell(row, col, ""); err != nil {
		m.setStatusError("Clear failed", err)
		return
	}
	m.focusCell(row, col)
	m.status = "Cleared " + layout.CellRef(row, col)
}

func (m *Model) addRow() {
	row, err := m.session.AddRow()
	if err != nil {
		m.reportEditError("Add row failed", err)
		return
	}
	_, col, _ := m.cursorCell()
	m.focusCell(row, col)
	m.status = fmt.Sprintf("Added row %d", len(m.table().rows)-1)
}

func (m *Model) addColumn() {
	row, _, _ := m.cursorCell()
	col, err := m.session.AddColumn()
	if err != nil {
		m.reportEditError("Add column failed", err)
		return
	}
	m.focusCell(row, col)
	m.status = "Added column " + layout.ColumnName(col)
}

// reportEditError shows the open-a-workbook hint for ErrNoWorkbook and logs
// anything else.
func (m *Model) reportEditError(status string, err error) {
	if errors.Is(err, session.ErrNoWorkbook) {
		m.status = m.noWorkbookStatus()
		return
	}
	m.setStatusError(status, err)
}

func (m *Model) cycleSheet(delta int) {
	sheets := m.session.Sheets()
	if len(sheets) < 2 {
		return
	}
	next := (m.session.CurrentIndex() + delta + len(sheets)) % len(sheets)
	m.switchSheet(next)
}

func (m *Model) switchSheet(index int) {
	if !m.session.SwitchSheet(index) {
		return
	}
	m.mouseDrag = 0
	m.resetCursor()
	m.rememberSheet()
	m.status = ""
}

// moveRow picks up the cursor row or drops the picked-up row on it.
func (m *Model) moveRow() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	drag := m.session.Dragging()
	switch {
	case drag.Kind == session.DragRow:
		from := drag.From
		if !m.session.Drop(session.DragRow, row) {
			m.status = "Row move cancelled"
			return
		}
		m.focusCell(row, col)
		m.status = fmt.Sprintf("Moved row %s to %s", m.rowLabel(from), m.rowLabel(row))
	case drag.Active():
		m.status = fmt.Sprintf("Finish the %s move first (%s cancels)", drag.Kind, m.primaryActionKey(actionCancel, "Esc"))
	default:
		if !m.session.BeginDrag(session.DragRow, row) {
			m.status = "The header row cannot be moved"
			return
		}
		m.status = fmt.Sprintf("Moving row %s: go to the target row and press %s",
			m.rowLabel(row), m.primaryActionKey(actionMoveRow, "x"))
	}
}

// moveColumn picks up the cursor column or drops the picked-up column on it.
func (m *Model) moveColumn() {
	row, col, ok := m.requireCell()
	if !ok {
		return
	}
	drag := m.session.Dragging()
	switch {
	case drag.Kind == session.DragColumn:
		from := drag.From
		if !m.session.Drop(session.DragColumn, col) {
			m.status = "Column move cancelled"
			return
		}
		m.focusCell(row, col)
		m.status = fmt.Sprintf("Moved column %s to %s", layout.ColumnName(from), layout.ColumnName(col))
	case drag.Active():
		m.status = fmt.Sprintf("Finish the %s move first (%s cancels)", drag.Kind, m.primaryActionKey(actionCancel, "Esc"))
	default:
		m.session.BeginDrag(session.DragColumn, col)
		m.status = fmt.Sprintf("Moving column %s: go to the target column and press %s",
			layout.ColumnName(col), m.primaryActionKey(actionMoveColumn, "Shift+X"))
	}
}

func (m *Model) cancelMove() {
	if !m.session.Dragging().Active() {
		return
	}
	m.session.CancelDrag()
	m.mouseDrag = 0
	m.status = "Move cancelled"
}

// rowLabel is the 1-based position of a physical data row on screen.
func (m *Model) rowLabel(row int) string {
	for pos, r := range m.table().rows {
		if r == row {
			return fmt.Sprint(pos)
		}
	}
	return fmt.Sprint(row)
}

func (m *Model) resizeColumn(delta int) {
	t := m.table()
	if t.empty() {
		return
	}
	pos := clamp(m.cursorCol, 0, len(t.cols)-1)
	widths := m.columnWidths(t)
	width := m.session.ResizeColumn(t.cols[pos], widths[pos]+delta)
	m.status = fmt.Sprintf("Column %s width %d", layout.ColumnName(t.cols[pos]), width)
}

// toggleRow flips the cursor row. On the header row it toggles all rows.
func (m *Model) toggleRow() {
	row, _, ok := m.requireCell()
	if !ok {
		return
	}
	if row == layout.HeaderRow {
		m.toggleAllRows()
		return
	}
	m.session.ToggleRow(row)
	m.status = m.selectionStatus()
}

func (m *Model) toggleAllRows() {
	if !m.session.ToggleAllRows() {
		return
	}
	m.status = m.selectionStatus()
}

func (m *Model) selectionStatus() string {
	n := len(m.session.SelectedRows())
	if n == 1 {
		return "1 row selected"
	}
	return fmt.Sprintf("%d rows selected", n)
}

// startReset asks before discarding the workbook.
func (m *Model) startReset() {
	if !m.session.Loaded() {
		m.status = m.noWorkbookStatus()
		return
	}
	m.mode = modeConfirmReset
	m.status = fmt.Sprintf("Discard %s and start over? (y/n)", m.fileLabel())
}

// startOpenFile shows the path prompt.
func (m *Model) startOpenFile() {
	if m.loading {
		m.status = "Still loading " + filepath.Base(m.loadingPath)
		return
	}
	m.input.Placeholder = "path/to/workbook.xlsx"
	m.input.CharLimit = PathCharLimit
	m.input.ShowSuggestions = len(m.recentFiles) > 0
	m.input.SetSuggestions(m.recentFiles)
	m.input.SetValue("")
	m.input.Focus()
	m.mode = modeOpenFile
	m.status = ""
}

func (m *Model) fileLabel() string {
	if m.filePath == "" {
		return "the workbook"
	}
	return filepath.Base(m.filePath)
}

// recentFileForKey maps the digits 1-9 to the recent workbook list shown on
// the welcome screen.
func (m *Model) recentFileForKey(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	index := int(key[0] - '1')
	if index >= len(m.recentFiles) {
		return "", false
	}
	return m.recentFiles[index], true
}
