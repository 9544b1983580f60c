package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-sheets/internal/layout"
	"github.com/treykane/cli-sheets/internal/session"
)

// View draws the full UI (tabs, table and status footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	dims := m.calculateLayout()
	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp(m.width, dims.ContentHeight)
	case !m.workbookLoaded():
		body = m.renderWelcome(m.width)
	default:
		body = m.renderSheet(dims)
	}
	body = padBlock(body, m.width, dims.ContentHeight)

	view := body + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

func (m *Model) renderWelcome(width int) string {
	lines := []string{m.renderTopLine(width), ""}
	if m.loading {
		lines = append(lines, m.spinner.View()+" Loading "+filepath.Base(m.loadingPath))
	} else {
		lines = append(lines,
			titleStyle.Render("CLI Sheets"),
			"",
			fmt.Sprintf("Press %s to open an .xlsx or .xls workbook.", m.primaryActionKey(actionOpen, "Ctrl+O")),
			mutedStyle.Render("Or start with: sheets path/to/workbook.xlsx"),
		)
		if len(m.recentFiles) > 0 {
			lines = append(lines, "", "Recent workbooks:")
			for i, path := range m.recentFiles {
				lines = append(lines, fmt.Sprintf("  %d  %s  %s", i+1, filepath.Base(path), mutedStyle.Render(filepath.Dir(path))))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderTopLine shows the open-file prompt when active, else the sheet tabs.
func (m *Model) renderTopLine(width int) string {
	if m.mode == modeOpenFile {
		return truncate("Open: "+m.input.View(), width)
	}
	sheets := m.session.Sheets()
	tabs := make([]string, 0, len(sheets))
	for i, sheet := range sheets {
		tabs = append(tabs, renderTab(sheet.Name, i == m.session.CurrentIndex()))
	}
	return truncate(strings.Join(tabs, ""), width)
}

// renderTab draws one sheet tab. Active and inactive tabs have equal width.
func renderTab(name string, active bool) string {
	if active {
		return activeTabStyle.Render(flattenCell(name))
	}
	return tabStyle.Render(flattenCell(name))
}

// renderSheet draws the tab strip, the pinned header and the visible rows.
func (m *Model) renderSheet(dims LayoutDimensions) string {
	lines := []string{m.renderTopLine(m.width)}

	t := m.table()
	if t.empty() {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf(
			"This sheet is empty. Press %s to add a column.", m.primaryActionKey(actionAddColumn, "c"))))
		return strings.Join(lines, "\n")
	}

	widths := m.columnWidths(t)
	visible := m.visibleColumns(widths, dims.TableWidth)
	lines = append(lines,
		m.renderRowLine(t, 0, widths, visible, dims.GutterWidth),
		renderRule(widths, visible, dims.GutterWidth),
	)
	end := min(len(t.rows), 1+m.rowOffset+dims.BodyRows)
	for pos := 1 + m.rowOffset; pos < end; pos++ {
		lines = append(lines, m.renderRowLine(t, pos, widths, visible, dims.GutterWidth))
	}
	return strings.Join(lines, "\n")
}

// renderRowLine draws the gutter and visible cells of display row pos. Row 0
// is the header.
func (m *Model) renderRowLine(t tableView, pos int, widths, visible []int, gutterWidth int) string {
	row := t.rows[pos]
	sheet := m.session.Current()
	drag := m.session.Dragging()
	marked := pos > 0 && m.session.IsSelected(row)

	var b strings.Builder
	b.WriteString(m.renderGutter(pos, row, gutterWidth))
	sep := ruleStyle.Render("│")
	for _, colPos := range visible {
		col := t.cols[colPos]
		width := widths[colPos]

		var cell string
		switch {
		case m.mode == modeEditCell && row == m.editRow && col == m.editCol:
			cell = editCellStyle.Render(padANSI(m.input.View(), width))
		case pos == m.cursorRow && colPos == m.cursorCol:
			cell = selectedStyle.Render(fitCell(sheet.Cell(row, col), width))
		case isDragSource(drag, row, col, pos):
			cell = dragStyle.Render(fitCell(sheet.Cell(row, col), width))
		case pos == 0:
			cell = headerStyle.Render(fitCell(sheet.Cell(row, col), width))
		case marked:
			cell = markedRowStyle.Render(fitCell(sheet.Cell(row, col), width))
		default:
			cell = fitCell(sheet.Cell(row, col), width)
		}
		b.WriteString(cell)
		b.WriteString(sep)
	}
	return b.String()
}

func isDragSource(drag session.Drag, row, col, pos int) bool {
	switch drag.Kind {
	case session.DragRow:
		return pos > 0 && row == drag.From
	case session.DragColumn:
		return col == drag.From
	}
	return false
}

// renderGutter draws the selection marker and the 1-based row label. The
// header gutter shows whether all, some or none of the rows are selected.
func (m *Model) renderGutter(pos, row, width int) string {
	var marker, label string
	if pos == 0 {
		switch m.session.SelectionState() {
		case session.SelectAll:
			marker = markerSelected
		case session.SelectPartial:
			marker = markerPartial
		default:
			marker = markerNone
		}
	} else {
		marker = markerNone
		if m.session.IsSelected(row) {
			marker = markerSelected
		}
		label = fmt.Sprint(pos)
	}
	labelWidth := max(0, width-MarkerWidth-1)
	return markerStyle.Render(marker) + " " + gutterStyle.Render(fmt.Sprintf("%*s", labelWidth, label)) + " "
}

func renderRule(widths, visible []int, gutterWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("─", gutterWidth))
	for _, pos := range visible {
		b.WriteString(strings.Repeat("─", widths[pos]))
		b.WriteString("┼")
	}
	return ruleStyle.Render(b.String())
}

// padANSI fits styled text to exactly width cells.
func padANSI(s string, width int) string {
	s = truncate(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// cellContext describes the cursor cell for the footer.
func (m *Model) cellContext() string {
	if m.mode == modeEditCell {
		return m.session.CellInfo(m.editRow, m.editCol, true)
	}
	row, col, ok := m.cursorCell()
	if !ok {
		return ""
	}
	return m.session.CellInfo(row, col, false)
}

// dragContext describes a pending move for the footer.
func (m *Model) dragContext() string {
	drag := m.session.Dragging()
	switch drag.Kind {
	case session.DragRow:
		return "Moving row " + m.rowLabel(drag.From)
	case session.DragColumn:
		return "Moving column " + layout.ColumnName(drag.From)
	}
	return ""
}
