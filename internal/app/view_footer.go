package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := statusStyle
	if m.mode == modeEditCell {
		style = editStatus
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the help, context and status segments into at most
// rowLimit rows of width cells. fit is false when content had to be cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	switch m.mode {
	case modeEditCell:
		return []string{"Enter save ↓", "Tab save →", "Esc cancel"}
	case modeOpenFile:
		return []string{"Enter open", "Esc cancel"}
	case modeConfirmReset:
		return []string{"y discard workbook", "n/Esc cancel"}
	}
	if m.showHelp {
		return []string{"↑/↓ scroll", m.primaryActionKey(actionHelp, "?") + "/Esc close"}
	}

	key := m.primaryActionKey
	if !m.workbookLoaded() {
		help := []string{key(actionOpen, "Ctrl+O") + " open"}
		if n := len(m.recentFiles); n > 0 {
			help = append(help, fmt.Sprintf("1-%d recent", n))
		}
		return append(help, key(actionHelp, "?")+" help", key(actionQuit, "Q")+" quit")
	}
	return []string{
		"↑/↓/←/→ move",
		key(actionEditCell, "Enter") + " edit",
		key(actionNextSheet, "Tab") + " next sheet",
		key(actionAddRow, "R") + " add row",
		key(actionAddColumn, "C") + " add column",
		key(actionMoveRow, "X") + "/" + key(actionMoveColumn, "Shift+X") + " move",
		key(actionShrinkColumn, "<") + "/" + key(actionGrowColumn, ">") + " width",
		key(actionToggleRow, "Space") + " select",
		key(actionCopyCell, "Y") + " copy",
		key(actionPaste, "P") + " paste",
		key(actionExport, "Ctrl+S") + " export",
		key(actionOpen, "Ctrl+O") + " open",
		key(actionReset, "Ctrl+N") + " new",
		key(actionHelp, "?") + " help",
		key(actionQuit, "Q") + " quit",
	}
}

// statusContextSegments describes the loading file, the cursor cell, the
// active sheet and any pending move.
func (m *Model) statusContextSegments() []string {
	parts := make([]string, 0, 4)
	if m.loading {
		parts = append(parts, m.spinner.View()+" Loading "+filepath.Base(m.loadingPath))
	}
	if !m.workbookLoaded() {
		return parts
	}
	if cell := m.cellContext(); cell != "" {
		parts = append(parts, cell)
	}
	if info := m.session.SheetInfo(); info != "" {
		parts = append(parts, info)
	}
	if drag := m.dragContext(); drag != "" {
		parts = append(parts, drag)
	}
	if m.filePath != "" {
		parts = append(parts, filepath.Base(m.filePath))
	}
	return parts
}

func (m *Model) statusMessageSegment() string {
	return strings.TrimSpace(m.status)
}

// workbookLoaded reports whether a workbook is active.
func (m *Model) workbookLoaded() bool {
	return m.session != nil && m.session.Loaded()
}
