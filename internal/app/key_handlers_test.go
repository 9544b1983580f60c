package app

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/config"
	"github.com/treykane/cli-sheets/internal/grid"
	"github.com/treykane/cli-sheets/internal/session"
)

func peopleSheet() *grid.Sheet {
	return grid.NewSheet("People", 0, [][]string{
		{"Name", "Age"},
		{"Ann", "31"},
		{"Bob", "42"},
	})
}

// newLoadedModel returns a sized model with sheets loaded from people.xlsx.
func newLoadedModel(t *testing.T, sheets ...*grid.Sheet) *Model {
	t.Helper()
	m := New(Options{Config: config.Config{}})
	m.width, m.height = 80, 20
	if len(sheets) == 0 {
		sheets = []*grid.Sheet{peopleSheet()}
	}
	m.session.Load(sheets)
	m.filePath = "/tmp/people.xlsx"
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestHandleBrowseKeyWithoutWorkbookShowsHint(t *testing.T) {
	m := New(Options{Config: config.Config{}})

	for _, key := range []string{"enter", "x", "y", "ctrl+n"} {
		m.status = ""
		_, _ = m.handleBrowseKey(key)
		if m.status != "Open a workbook first (Ctrl+O)" {
			t.Fatalf("key %q: expected open hint, got %q", key, m.status)
		}
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
}

func TestHandleBrowseKeyQuit(t *testing.T) {
	m := newLoadedModel(t)

	_, cmd := m.handleBrowseKey("q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestEditCellEnterSavesAndMovesDown(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 1, 0

	_, _ = m.handleBrowseKey("enter")
	if m.mode != modeEditCell {
		t.Fatalf("expected edit mode, got %v", m.mode)
	}
	if got := m.input.Value(); got != "Ann" {
		t.Fatalf("expected editor to start with %q, got %q", "Ann", got)
	}

	m.input.SetValue("Amy")
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.session.Current().Cell(1, 0); got != "Amy" {
		t.Fatalf("expected cell to be saved, got %q", got)
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after save, got %v", m.mode)
	}
	if m.cursorRow != 2 || m.cursorCol != 0 {
		t.Fatalf("expected cursor to move down to (2,0), got (%d,%d)", m.cursorRow, m.cursorCol)
	}
	if m.status != "Saved A2" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestEditCellTabSavesAndWrapsToNextRow(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 1, 1

	_, _ = m.handleBrowseKey("e")
	m.input.SetValue("32")
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.session.Current().Cell(1, 1); got != "32" {
		t.Fatalf("expected cell to be saved, got %q", got)
	}
	if m.cursorRow != 2 || m.cursorCol != 0 {
		t.Fatalf("expected cursor to wrap to (2,0), got (%d,%d)", m.cursorRow, m.cursorCol)
	}
}

func TestEditCellEscKeepsValue(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 2, 0

	_, _ = m.handleBrowseKey("enter")
	m.input.SetValue("Zed")
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

	if got := m.session.Current().Cell(2, 0); got != "Bob" {
		t.Fatalf("expected cell to be unchanged, got %q", got)
	}
	if m.status != "Edit cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestEditHeaderCell(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 0, 1

	_, _ = m.handleBrowseKey("enter")
	m.input.SetValue("Years")
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.session.Current().Header(); !slices.Equal(got, []string{"Name", "Years"}) {
		t.Fatalf("unexpected header %v", got)
	}
	if m.status != "Saved B1" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestClearCell(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 1, 1

	_, _ = m.handleBrowseKey("delete")
	if got := m.session.Current().Cell(1, 1); got != "" {
		t.Fatalf("expected cleared cell, got %q", got)
	}
	if m.status != "Cleared B2" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAddRowAndColumnFocusNewCells(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.handleBrowseKey("r")
	if got := m.session.Current().Rows(); got != 4 {
		t.Fatalf("expected 4 rows, got %d", got)
	}
	if m.cursorRow != 3 {
		t.Fatalf("expected cursor on the new row, got %d", m.cursorRow)
	}
	if m.status != "Added row 3" {
		t.Fatalf("unexpected status %q", m.status)
	}

	_, _ = m.handleBrowseKey("c")
	if got := m.session.Current().MaxCols(); got != 3 {
		t.Fatalf("expected 3 columns, got %d", got)
	}
	if m.cursorCol != 2 {
		t.Fatalf("expected cursor on the new column, got %d", m.cursorCol)
	}
	if m.status != "Added column C" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestMoveRowWithKeyboard(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow = 1

	_, _ = m.handleBrowseKey("x")
	if !strings.HasPrefix(m.status, "Moving row 1") {
		t.Fatalf("unexpected pick-up status %q", m.status)
	}
	if got := m.session.Dragging(); got.Kind != session.DragRow || got.From != 1 {
		t.Fatalf("unexpected drag %+v", got)
	}

	_, _ = m.handleBrowseKey("j")
	_, _ = m.handleBrowseKey("x")

	sheet := m.session.Current()
	if sheet.Cell(1, 0) != "Bob" || sheet.Cell(2, 0) != "Ann" {
		t.Fatalf("expected rows swapped, got %v", sheet.Data)
	}
	if m.status != "Moved row 1 to 2" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.cursorRow != 2 {
		t.Fatalf("expected cursor to follow the moved row, got %d", m.cursorRow)
	}
	if m.session.Dragging().Active() {
		t.Fatal("expected drag to be finished")
	}
}

func TestMoveRowRefusesHeader(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow = 0

	_, _ = m.handleBrowseKey("x")
	if m.status != "The header row cannot be moved" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.session.Dragging().Active() {
		t.Fatal("expected no drag")
	}
}

func TestMoveColumnWithKeyboard(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.handleBrowseKey("X")
	_, _ = m.handleBrowseKey("l")
	_, _ = m.handleBrowseKey("X")

	if got := m.session.Current().Header(); !slices.Equal(got, []string{"Age", "Name"}) {
		t.Fatalf("unexpected header %v", got)
	}
	if m.status != "Moved column A to B" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPendingMoveBlocksOtherKindAndCancels(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow = 1

	_, _ = m.handleBrowseKey("x")
	_, _ = m.handleBrowseKey("X")
	if m.status != "Finish the row move first (Esc cancels)" {
		t.Fatalf("unexpected status %q", m.status)
	}

	_, _ = m.handleBrowseKey("esc")
	if m.session.Dragging().Active() {
		t.Fatal("expected drag to be cancelled")
	}
	if m.status != "Move cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestResizeColumnClampsToMinimum(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.handleBrowseKey(">")
	if m.status != "Column A width 10" {
		t.Fatalf("unexpected status %q", m.status)
	}
	for i := 0; i < 5; i++ {
		_, _ = m.handleBrowseKey("<")
	}
	if m.status != "Column A width 4" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestToggleRowSelection(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow = 1

	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.session.IsSelected(1) {
		t.Fatal("expected row 1 to be selected")
	}
	if m.status != "1 row selected" {
		t.Fatalf("unexpected status %q", m.status)
	}

	// Space on the header row toggles every row.
	m.cursorRow = 0
	_, _ = m.handleBrowseKey("space")
	if got := m.session.SelectedRows(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("expected all rows selected, got %v", got)
	}
	if m.status != "2 rows selected" {
		t.Fatalf("unexpected status %q", m.status)
	}

	_, _ = m.handleBrowseKey("a")
	if got := m.session.SelectedRows(); len(got) != 0 {
		t.Fatalf("expected selection cleared, got %v", got)
	}
}

func TestCycleSheetWraps(t *testing.T) {
	second := grid.NewSheet("Pets", 1, [][]string{{"Pet"}, {"Cat"}})
	m := newLoadedModel(t, peopleSheet(), second)
	m.cursorRow, m.cursorCol = 2, 1

	_, _ = m.handleBrowseKey("tab")
	if got := m.session.CurrentIndex(); got != 1 {
		t.Fatalf("expected sheet 1, got %d", got)
	}
	if m.cursorRow != 0 || m.cursorCol != 0 {
		t.Fatalf("expected cursor reset, got (%d,%d)", m.cursorRow, m.cursorCol)
	}

	_, _ = m.handleBrowseKey("]")
	if got := m.session.CurrentIndex(); got != 0 {
		t.Fatalf("expected wrap to sheet 0, got %d", got)
	}

	_, _ = m.handleBrowseKey("shift+tab")
	if got := m.session.CurrentIndex(); got != 1 {
		t.Fatalf("expected wrap back to sheet 1, got %d", got)
	}
}

func TestResetAsksForConfirmation(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.handleBrowseKey("ctrl+n")
	if m.mode != modeConfirmReset {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if m.status != "Discard people.xlsx and start over? (y/n)" {
		t.Fatalf("unexpected status %q", m.status)
	}

	_, _ = m.handleKey(runeKey('n'))
	if !m.session.Loaded() || m.mode != modeBrowse {
		t.Fatal("expected workbook kept after n")
	}

	_, _ = m.handleBrowseKey("ctrl+n")
	_, _ = m.handleKey(runeKey('y'))
	if m.session.Loaded() {
		t.Fatal("expected workbook closed after y")
	}
	if m.filePath != "" {
		t.Fatalf("expected file path cleared, got %q", m.filePath)
	}
	if m.status != "Workbook closed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestOpenFilePromptCancels(t *testing.T) {
	m := New(Options{Config: config.Config{}})

	_, _ = m.handleBrowseKey("ctrl+o")
	if m.mode != modeOpenFile {
		t.Fatalf("expected open mode, got %v", m.mode)
	}
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse || m.status != "Open cancelled" {
		t.Fatalf("expected cancelled prompt, got mode %v status %q", m.mode, m.status)
	}

	_, _ = m.handleBrowseKey("ctrl+o")
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.status != "Open cancelled" {
		t.Fatalf("expected empty path to cancel, got status %q", m.status)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.handleBrowseKey("?")
	if !m.showHelp {
		t.Fatal("expected help to be shown")
	}
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatal("expected esc to close help")
	}
}

func TestReportEditError(t *testing.T) {
	m := &Model{}

	m.reportEditError("Add row failed", session.ErrNoWorkbook)
	if m.status != "Open a workbook first (Ctrl+O)" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.reportEditError("Add row failed", errors.New("boom"))
	if m.status != "Add row failed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestClipboardCopyAndPaste(t *testing.T) {
	var written string
	clipboardText := ""
	origWrite, origRead := clipboardWrite, clipboardRead
	clipboardWrite = func(text string) error {
		written = text
		return nil
	}
	clipboardRead = func() (string, error) {
		return clipboardText, nil
	}
	t.Cleanup(func() {
		clipboardWrite, clipboardRead = origWrite, origRead
	})

	m := newLoadedModel(t)
	m.cursorRow, m.cursorCol = 1, 1

	_, _ = m.handleBrowseKey("y")
	if written != "31" || m.status != "Copied B2" {
		t.Fatalf("unexpected copy %q status %q", written, m.status)
	}

	_, _ = m.handleBrowseKey("Y")
	if written != "Ann\t31" || m.status != "Copied row 1 (2 cells)" {
		t.Fatalf("unexpected row copy %q status %q", written, m.status)
	}

	m.cursorRow, m.cursorCol = 1, 0
	clipboardText = "Cy\t7\r\nDee\t8\n"
	_, _ = m.handleBrowseKey("p")
	sheet := m.session.Current()
	want := [][]string{{"Name", "Age"}, {"Cy", "7"}, {"Dee", "8"}}
	for row := range want {
		for col := range want[row] {
			if got := sheet.Cell(row, col); got != want[row][col] {
				t.Fatalf("cell (%d,%d) = %q, want %q", row, col, got, want[row][col])
			}
		}
	}
	if m.status != "Pasted 4 cells at A2" {
		t.Fatalf("unexpected status %q", m.status)
	}

	clipboardText = "\n"
	_, _ = m.handleBrowseKey("p")
	if m.status != "Clipboard is empty" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestClipboardErrorsReachStatus(t *testing.T) {
	origRead := clipboardRead
	clipboardRead = func() (string, error) {
		return "", errors.New("no clipboard")
	}
	t.Cleanup(func() { clipboardRead = origRead })

	m := newLoadedModel(t)
	m.cursorRow = 1
	_, _ = m.handleBrowseKey("p")
	if m.status != "Clipboard paste failed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
