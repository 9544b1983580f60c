package app

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-sheets/internal/layout"
)

// tableView is the table shown for the active sheet: the header row followed
// by the data rows, across the display columns. Entries are physical
// indices into the sheet.
type tableView struct {
	rows []int
	cols []int
}

func (t tableView) empty() bool {
	return len(t.rows) == 0 || len(t.cols) == 0
}

var cellMeasurer = layout.MeasureFunc(func(text string) int {
	return lipgloss.Width(flattenCell(text))
})

// table resolves the active sheet into display order. An empty or missing
// sheet yields an empty view.
func (m *Model) table() tableView {
	if m.session == nil {
		return tableView{}
	}
	sheet := m.session.Current()
	if sheet == nil || sheet.Rows() == 0 {
		return tableView{}
	}
	lay := m.session.Layout()
	rows := make([]int, 0, len(lay.DataRows)+1)
	rows = append(rows, layout.HeaderRow)
	rows = append(rows, lay.DataRows...)
	return tableView{rows: rows, cols: lay.Columns}
}

// columnWidths returns the rendered width of every display column, a user
// override winning over the width computed from content.
func (m *Model) columnWidths(t tableView) []int {
	computed := layout.DefaultColumnWidths(m.session.Current(), t.cols, cellMeasurer, m.session.Rule())
	widths := make([]int, len(t.cols))
	for i, col := range t.cols {
		widths[i] = m.session.ColumnWidth(col, computed[i])
	}
	return widths
}

// cursorCell returns the physical row and column under the cursor.
func (m *Model) cursorCell() (row, col int, ok bool) {
	t := m.table()
	if t.empty() {
		return 0, 0, false
	}
	return t.rows[clamp(m.cursorRow, 0, len(t.rows)-1)], t.cols[clamp(m.cursorCol, 0, len(t.cols)-1)], true
}

func (m *Model) moveCursor(dRow, dCol int) {
	t := m.table()
	if t.empty() {
		return
	}
	m.cursorRow = clamp(m.cursorRow+dRow, 0, len(t.rows)-1)
	m.cursorCol = clamp(m.cursorCol+dCol, 0, len(t.cols)-1)
}

// advanceCursor moves one column right, wrapping to the first column of the
// next row. It stays put on the last cell.
func (m *Model) advanceCursor() {
	t := m.table()
	if t.empty() {
		return
	}
	switch {
	case m.cursorCol < len(t.cols)-1:
		m.cursorCol++
	case m.cursorRow < len(t.rows)-1:
		m.cursorRow++
		m.cursorCol = 0
	}
}

// focusCell puts the cursor on a physical cell. Cells not on screen leave
// the cursor where it is.
func (m *Model) focusCell(row, col int) {
	t := m.table()
	if pos := slices.Index(t.rows, row); pos >= 0 {
		m.cursorRow = pos
	}
	if pos := slices.Index(t.cols, col); pos >= 0 {
		m.cursorCol = pos
	}
}

func (m *Model) resetCursor() {
	m.cursorRow, m.cursorCol = 0, 0
	m.rowOffset, m.colOffset = 0, 0
}

// scrollToCursor clamps the cursor to the table and moves the row and column
// offsets so the cursor cell is on screen.
func (m *Model) scrollToCursor() {
	t := m.table()
	if t.empty() {
		m.resetCursor()
		return
	}
	m.cursorRow = clamp(m.cursorRow, 0, len(t.rows)-1)
	m.cursorCol = clamp(m.cursorCol, 0, len(t.cols)-1)
	dims := m.calculateLayout()

	// The header is pinned, so only data rows scroll.
	if m.cursorRow > 0 {
		pos := m.cursorRow - 1
		visible := max(1, dims.BodyRows)
		if pos < m.rowOffset {
			m.rowOffset = pos
		}
		if pos >= m.rowOffset+visible {
			m.rowOffset = pos - visible + 1
		}
	}
	m.rowOffset = clamp(m.rowOffset, 0, max(0, len(t.rows)-2))

	widths := m.columnWidths(t)
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	}
	for m.colOffset < m.cursorCol && spanWidth(widths[m.colOffset:m.cursorCol+1]) > dims.TableWidth {
		m.colOffset++
	}
	m.colOffset = clamp(m.colOffset, 0, len(t.cols)-1)
}

// spanWidth is the screen width of consecutive columns, each followed by a
// one-cell separator.
func spanWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	return total
}

// visibleColumns returns the display positions, starting at colOffset, that
// fit in width. At least one column is always returned.
func (m *Model) visibleColumns(widths []int, width int) []int {
	positions := []int{}
	used := 0
	for pos := m.colOffset; pos < len(widths); pos++ {
		if len(positions) > 0 && used+widths[pos]+1 > width {
			break
		}
		positions = append(positions, pos)
		used += widths[pos] + 1
	}
	return positions
}
