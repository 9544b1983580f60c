package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpSection groups keyboard reference rows under one heading.
type helpSection struct {
	title string
	rows  [][2]string
}

// helpMarkdown builds the keyboard reference from the active keybindings.
func (m *Model) helpMarkdown() string {
	k := m.allActionKeys
	sections := []helpSection{
		{"Navigate", [][2]string{
			{k(actionCursorUp, "↑") + " / " + k(actionCursorDown, "↓"), "Move up / down"},
			{k(actionCursorLeft, "←") + " / " + k(actionCursorRight, "→"), "Move left / right"},
			{k(actionJumpTop, "g") + " / " + k(actionJumpBottom, "G"), "Header row / last row"},
			{k(actionRowStart, "Home") + " / " + k(actionRowEnd, "End"), "First / last column"},
			{k(actionPageUp, "PgUp") + " / " + k(actionPageDown, "PgDn"), "Page up / down"},
			{k(actionNextSheet, "Tab") + " / " + k(actionPrevSheet, "Shift+Tab"), "Next / previous sheet"},
		}},
		{"Edit", [][2]string{
			{k(actionEditCell, "Enter"), "Edit cell (header row edits the header)"},
			{"Enter / Tab / Esc", "In the editor: save and go down / save and go right / cancel"},
			{k(actionClearCell, "Delete"), "Clear cell"},
			{k(actionAddRow, "r"), "Add row"},
			{k(actionAddColumn, "c"), "Add column"},
			{k(actionMoveRow, "x"), "Pick up / drop row"},
			{k(actionMoveColumn, "Shift+X"), "Pick up / drop column"},
			{k(actionCancel, "Esc"), "Cancel move"},
			{k(actionShrinkColumn, "<") + " / " + k(actionGrowColumn, ">"), "Narrow / widen column"},
		}},
		{"Select and copy", [][2]string{
			{k(actionToggleRow, "Space"), "Select row (header row: all rows)"},
			{k(actionToggleAllRows, "a"), "Select all rows"},
			{k(actionCopyCell, "y"), "Copy cell"},
			{k(actionCopyRow, "Shift+Y"), "Copy row as tab-separated text"},
			{k(actionPaste, "p"), "Paste at cursor"},
		}},
		{"Workbook", [][2]string{
			{k(actionOpen, "Ctrl+O"), "Open .xlsx or .xls file"},
			{k(actionExport, "Ctrl+S"), "Export to " + m.exportPath},
			{k(actionReset, "Ctrl+N"), "Close workbook"},
			{k(actionHelp, "?"), "Toggle help"},
			{k(actionQuit, "q"), "Quit"},
		}},
		{"Mouse", [][2]string{
			{"Click", "Move cursor, click again to edit"},
			{"Drag header", "Move column"},
			{"Drag row number", "Move row"},
			{"Click ○", "Select row"},
		}},
	}

	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n")
	for _, section := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n| Keys | Action |\n| --- | --- |\n", section.title)
		for _, row := range section.rows {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeTableCell(row[0]), escapeTableCell(row[1]))
		}
	}
	b.WriteString("\nPress ? to return.\n")
	return b.String()
}

func escapeTableCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}

// refreshHelp renders the help markdown at the current viewport width.
func (m *Model) refreshHelp() {
	width := max(HelpMinWidth, m.help.Width)
	source := m.helpMarkdown()
	content, err := renderMarkdown(source, width)
	if err != nil {
		appLog.Warn("render help", "error", err)
		content = source
	}
	m.help.SetContent(content)
	m.help.GotoTop()
	m.helpWidth = m.help.Width
}

func renderMarkdown(source string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(source)
}

// glamourStyleOption picks the style from CLI_SHEETS_GLAMOUR_STYLE, then
// GLAMOUR_STYLE, then "dark". "auto" queries the terminal background, which
// is why text inputs filter OSC replies.
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("CLI_SHEETS_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}

// renderHelp draws the help viewport in a bordered pane.
func (m *Model) renderHelp(width, height int) string {
	return helpPane.Width(max(0, width-2)).Height(max(0, height-2)).Render(m.help.View())
}
