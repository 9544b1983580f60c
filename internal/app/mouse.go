package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-sheets/internal/layout"
	"github.com/treykane/cli-sheets/internal/session"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitTab
	hitHeaderMarker
	hitHeader
	hitRowMarker
	hitGutter
	hitCell
)

// hit is a screen position resolved against the sheet view. rowPos and
// colPos are display positions, tab a sheet index.
type hit struct {
	kind   hitKind
	tab    int
	rowPos int
	colPos int
}

// hitTest maps a terminal cell to the part of the sheet view drawn there.
func (m *Model) hitTest(x, y int) hit {
	if y < 0 || x < 0 || !m.workbookLoaded() {
		return hit{}
	}
	if y < TabLineRows {
		if tab, ok := m.tabAt(x); ok {
			return hit{kind: hitTab, tab: tab}
		}
		return hit{}
	}

	t := m.table()
	if t.empty() {
		return hit{}
	}
	dims := m.calculateLayout()

	var rowPos int
	switch line := y - TabLineRows; {
	case line == 0:
		rowPos = 0
	case line < HeaderLineRows:
		return hit{}
	default:
		body := line - HeaderLineRows
		if body >= dims.BodyRows {
			return hit{}
		}
		rowPos = 1 + m.rowOffset + body
		if rowPos >= len(t.rows) {
			return hit{}
		}
	}

	if x < dims.GutterWidth {
		switch {
		case rowPos == 0 && x < MarkerWidth:
			return hit{kind: hitHeaderMarker}
		case rowPos == 0:
			return hit{}
		case x < MarkerWidth:
			return hit{kind: hitRowMarker, rowPos: rowPos}
		default:
			return hit{kind: hitGutter, rowPos: rowPos}
		}
	}

	widths := m.columnWidths(t)
	left := dims.GutterWidth
	for _, pos := range m.visibleColumns(widths, dims.TableWidth) {
		right := left + widths[pos] + 1
		if x < right {
			if rowPos == 0 {
				return hit{kind: hitHeader, colPos: pos}
			}
			return hit{kind: hitCell, rowPos: rowPos, colPos: pos}
		}
		left = right
	}
	return hit{}
}

// tabAt returns the sheet whose tab covers column x of the tab strip.
func (m *Model) tabAt(x int) (int, bool) {
	left := 0
	for i, sheet := range m.session.Sheets() {
		right := left + lipgloss.Width(renderTab(sheet.Name, false))
		if x < right {
			return i, true
		}
		left = right
	}
	return 0, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBrowse || m.showHelp {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1, 0)
		case tea.MouseButtonWheelDown:
			m.moveCursor(1, 0)
		case tea.MouseButtonLeft:
			m.handleMousePress(m.hitTest(msg.X, msg.Y))
		}
	case tea.MouseActionRelease:
		m.handleMouseRelease(m.hitTest(msg.X, msg.Y))
	}
	return m, nil
}

func (m *Model) handleMousePress(h hit) {
	t := m.table()
	switch h.kind {
	case hitTab:
		m.switchSheet(h.tab)
	case hitHeaderMarker:
		m.toggleAllRows()
	case hitRowMarker:
		m.session.ToggleRow(t.rows[h.rowPos])
		m.status = m.selectionStatus()
	case hitHeader:
		if m.cursorRow == 0 && m.cursorCol == h.colPos {
			m.startEditCell()
			return
		}
		m.cursorRow, m.cursorCol = 0, h.colPos
		if m.session.BeginDrag(session.DragColumn, t.cols[h.colPos]) {
			m.mouseDrag = session.DragColumn
		}
	case hitGutter:
		m.cursorRow = h.rowPos
		if m.session.BeginDrag(session.DragRow, t.rows[h.rowPos]) {
			m.mouseDrag = session.DragRow
		}
	case hitCell:
		if m.cursorRow == h.rowPos && m.cursorCol == h.colPos {
			m.startEditCell()
			return
		}
		m.cursorRow, m.cursorCol = h.rowPos, h.colPos
	}
}

// handleMouseRelease drops a mouse drag on the row or column under the
// pointer. Releasing anywhere else cancels it.
func (m *Model) handleMouseRelease(h hit) {
	kind := m.mouseDrag
	if kind == 0 {
		return
	}
	m.mouseDrag = 0
	from := m.session.Dragging().From

	t := m.table()
	target := -1
	switch {
	case kind == session.DragColumn && (h.kind == hitHeader || h.kind == hitCell):
		target = t.cols[h.colPos]
	case kind == session.DragRow && (h.kind == hitGutter || h.kind == hitRowMarker || h.kind == hitCell):
		target = t.rows[h.rowPos]
	}
	if target < 0 {
		m.session.CancelDrag()
		return
	}
	fromLabel := m.rowLabel(from)
	if !m.session.Drop(kind, target) {
		return
	}

	row, col, _ := m.cursorCell()
	if kind == session.DragColumn {
		m.focusCell(row, target)
		m.status = fmt.Sprintf("Moved column %s to %s", layout.ColumnName(from), layout.ColumnName(target))
		return
	}
	m.focusCell(target, col)
	m.status = fmt.Sprintf("Moved row %s to %s", fromLabel, m.rowLabel(target))
}
