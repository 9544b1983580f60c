// Package session owns the editing state of one loaded workbook: the sheets,
// the active sheet, row selections, the pending drag and the column width
// overrides. All grid mutations requested by the UI go through a Session so
// that every change is followed by the same bookkeeping.
//
// A Session is not safe for concurrent use. The UI applies every event on a
// single goroutine.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/treykane/cli-sheets/internal/grid"
	"github.com/treykane/cli-sheets/internal/layout"
)

// ErrNoWorkbook is returned by edits attempted before a workbook is loaded.
var ErrNoWorkbook = errors.New("no workbook loaded")

// Session is the state of one editing session.
type Session struct {
	sheets  []*grid.Sheet
	current int

	// selected maps sheet index to the selected data rows of that sheet.
	selected map[int]map[int]bool
	drag     Drag
	widths   *grid.ColumnWidths
	rule     layout.WidthRule
}

// New returns an empty session that sizes columns with rule.
func New(rule layout.WidthRule) *Session {
	return &Session{
		selected: map[int]map[int]bool{},
		widths:   grid.NewColumnWidths(),
		rule:     rule,
	}
}

// Load replaces the workbook with sheets and resets every piece of
// per-workbook state. It is only called with a fully decoded workbook, so a
// failed decode never disturbs the active one.
func (s *Session) Load(sheets []*grid.Sheet) {
	s.sheets = sheets
	s.current = 0
	s.selected = map[int]map[int]bool{}
	s.drag = Drag{}
	s.widths.Reset()
	for _, sheet := range s.sheets {
		sheet.EnsureDataRow()
	}
}

// Reset discards the workbook.
func (s *Session) Reset() {
	s.Load(nil)
}

// Loaded reports whether a workbook is active.
func (s *Session) Loaded() bool {
	return s.sheets != nil
}

// Sheets returns the workbook sheets in load order.
func (s *Session) Sheets() []*grid.Sheet {
	return s.sheets
}

// Current returns the active sheet, or nil when nothing is loaded.
func (s *Session) Current() *grid.Sheet {
	if s.current < 0 || s.current >= len(s.sheets) {
		return nil
	}
	return s.sheets[s.current]
}

// CurrentIndex returns the index of the active sheet.
func (s *Session) CurrentIndex() int {
	return s.current
}

// SwitchSheet activates sheet index. Out-of-range indices are ignored.
func (s *Session) SwitchSheet(index int) bool {
	if index < 0 || index >= len(s.sheets) || index == s.current {
		return false
	}
	s.current = index
	s.drag = Drag{}
	s.sheets[index].EnsureDataRow()
	return true
}

// Layout resolves the displayed rows and columns of the active sheet.
func (s *Session) Layout() layout.Layout {
	return layout.Resolve(s.Current())
}

// Rule returns the width rule used for column sizing.
func (s *Session) Rule() layout.WidthRule {
	return s.rule
}

// EditCell writes value into the active sheet.
func (s *Session) EditCell(row, col int, value string) error {
	sheet := s.Current()
	if sheet == nil {
		return ErrNoWorkbook
	}
	sheet.SetCell(row, col, value)
	return nil
}

// EditHeader writes value into the header row of the active sheet.
func (s *Session) EditHeader(col int, value string) error {
	return s.EditCell(layout.HeaderRow, col, value)
}

// AddRow appends a blank row to the active sheet and returns its index.
func (s *Session) AddRow() (int, error) {
	sheet := s.Current()
	if sheet == nil {
		return 0, ErrNoWorkbook
	}
	return sheet.InsertRow(), nil
}

// AddColumn appends a blank column to the active sheet and returns its index.
func (s *Session) AddColumn() (int, error) {
	sheet := s.Current()
	if sheet == nil {
		return 0, ErrNoWorkbook
	}
	col := sheet.InsertColumn()
	sheet.EnsureDataRow()
	return col, nil
}

// ResizeColumn stores a width override for col on the active sheet and
// returns the width actually stored.
func (s *Session) ResizeColumn(col, width int) int {
	width = layout.ClampResize(width, s.rule)
	s.widths.Set(s.current, col, width)
	return width
}

// ColumnWidth returns the width to render for col of the active sheet given
// its computed default.
func (s *Session) ColumnWidth(col, computed int) int {
	return layout.ColumnWidth(s.widths, s.current, col, computed, s.rule)
}

// SheetInfo summarizes the active sheet as "<name> | R rows × C cols",
// counting only rows and columns that hold data.
func (s *Session) SheetInfo() string {
	sheet := s.Current()
	if sheet == nil {
		return ""
	}
	return fmt.Sprintf("%s | %d rows × %d cols",
		sheet.Name, len(layout.ValidRows(sheet)), len(layout.ValidColumns(sheet)))
}

// CellInfo describes the cell at (row, col) for the status line.
func (s *Session) CellInfo(row, col int, editing bool) string {
	ref := layout.CellRef(row, col)
	header := row == layout.HeaderRow
	switch {
	case editing && header:
		return "Editing header: " + layout.ColumnName(col) + "1"
	case editing:
		return "Editing: " + ref
	case header:
		return "Selected header: " + layout.ColumnName(col) + "1"
	default:
		return "Selected: " + ref
	}
}

// SelectedRows returns the selected data rows of the active sheet in
// ascending order.
func (s *Session) SelectedRows() []int {
	rows := make([]int, 0, len(s.selected[s.current]))
	for row, ok := range s.selected[s.current] {
		if ok {
			rows = append(rows, row)
		}
	}
	slices.Sort(rows)
	return rows
}
