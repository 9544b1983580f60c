package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/treykane/cli-sheets/internal/grid"
	"github.com/treykane/cli-sheets/internal/layout"
)

func loaded(t *testing.T, sheets ...*grid.Sheet) *Session {
	t.Helper()
	s := New(layout.CellRule)
	s.Load(sheets)
	return s
}

func people() *grid.Sheet {
	return grid.NewSheet("People", 0, [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "41"},
		{"", ""},
	})
}

func TestLoadEnsuresDataRow(t *testing.T) {
	header := grid.NewSheet("Header", 0, [][]string{{"a", "b", "c"}})
	empty := grid.NewSheet("Empty", 1, nil)
	s := loaded(t, header, empty)

	if header.Rows() != 2 || len(header.Data[1]) != 3 {
		t.Fatalf("expected a blank data row of width 3, got %#v", header.Data)
	}
	if empty.Rows() != 0 {
		t.Fatalf("expected empty sheet to stay empty, got %#v", empty.Data)
	}
	if !s.Loaded() || s.CurrentIndex() != 0 || s.Current() != header {
		t.Fatal("expected first sheet active after load")
	}
}

func TestEditsRequireWorkbook(t *testing.T) {
	s := New(layout.CellRule)
	if err := s.EditCell(1, 1, "x"); !errors.Is(err, ErrNoWorkbook) {
		t.Fatalf("EditCell: expected ErrNoWorkbook, got %v", err)
	}
	if _, err := s.AddRow(); !errors.Is(err, ErrNoWorkbook) {
		t.Fatalf("AddRow: expected ErrNoWorkbook, got %v", err)
	}
	if _, err := s.AddColumn(); !errors.Is(err, ErrNoWorkbook) {
		t.Fatalf("AddColumn: expected ErrNoWorkbook, got %v", err)
	}
	if s.Loaded() || s.Current() != nil {
		t.Fatal("expected nothing loaded")
	}
}

func TestEditCellAndHeader(t *testing.T) {
	sheet := people()
	s := loaded(t, sheet)

	if err := s.EditCell(2, 3, "far"); err != nil {
		t.Fatalf("edit cell: %v", err)
	}
	if err := s.EditHeader(1, "Years"); err != nil {
		t.Fatalf("edit header: %v", err)
	}
	if sheet.Cell(2, 3) != "far" || sheet.Cell(0, 1) != "Years" {
		t.Fatalf("unexpected data %#v", sheet.Data)
	}
	if got := s.Layout().ValidColumns; got != 3 {
		t.Fatalf("expected 3 valid columns after edit, got %d", got)
	}
}

func TestAddRowAndColumn(t *testing.T) {
	sheet := people()
	s := loaded(t, sheet)

	row, err := s.AddRow()
	if err != nil || row != 4 {
		t.Fatalf("AddRow = %d, %v", row, err)
	}
	col, err := s.AddColumn()
	if err != nil || col != 2 {
		t.Fatalf("AddColumn = %d, %v", col, err)
	}
	for i, r := range sheet.Data {
		if len(r) != 3 {
			t.Fatalf("row %d has width %d, want 3", i, len(r))
		}
	}
}

func TestAddColumnOnEmptySheetCreatesDataRow(t *testing.T) {
	sheet := grid.NewSheet("Empty", 0, nil)
	s := loaded(t, sheet)

	if _, err := s.AddColumn(); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if sheet.Rows() != 2 {
		t.Fatalf("expected header and data row, got %#v", sheet.Data)
	}
}

func TestSwitchSheet(t *testing.T) {
	first := people()
	second := grid.NewSheet("Other", 1, [][]string{{"x"}})
	s := loaded(t, first, second)

	if s.SwitchSheet(5) || s.SwitchSheet(-1) || s.SwitchSheet(0) {
		t.Fatal("expected out-of-range and same-sheet switches to be ignored")
	}
	if !s.SwitchSheet(1) || s.Current() != second {
		t.Fatal("expected second sheet active")
	}
}

func TestSelectionIsScopedPerSheet(t *testing.T) {
	s := loaded(t, people(), grid.NewSheet("Other", 1, [][]string{{"h"}, {"v"}, {"w"}}))

	s.ToggleRow(1)
	if !s.IsSelected(1) {
		t.Fatal("expected row 1 selected")
	}
	s.SwitchSheet(1)
	if s.IsSelected(1) {
		t.Fatal("selection leaked into another sheet")
	}
	s.SwitchSheet(0)
	if !s.IsSelected(1) {
		t.Fatal("expected selection restored on switching back")
	}
}

func TestToggleRowIgnoresHeader(t *testing.T) {
	s := loaded(t, people())
	if s.ToggleRow(layout.HeaderRow) {
		t.Fatal("header row must not be selectable")
	}
	if !s.ToggleRow(2) || !s.ToggleRow(2) || s.IsSelected(2) {
		t.Fatal("expected double toggle to clear the row")
	}
}

func TestSelectionState(t *testing.T) {
	s := loaded(t, people())

	if got := s.SelectionState(); got != SelectNone {
		t.Fatalf("expected SelectNone, got %v", got)
	}
	s.ToggleRow(1)
	if got := s.SelectionState(); got != SelectPartial {
		t.Fatalf("expected SelectPartial, got %v", got)
	}
	s.ToggleRow(2)
	s.ToggleRow(3)
	if got := s.SelectionState(); got != SelectAll {
		t.Fatalf("expected SelectAll, got %v", got)
	}
}

func TestToggleAllRows(t *testing.T) {
	s := loaded(t, people())

	if !s.ToggleAllRows() {
		t.Fatal("expected toggle all to act")
	}
	// Only rows holding data are selected; the blank row 3 is left alone.
	if got := s.SelectedRows(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("SelectedRows = %v, want [1 2]", got)
	}
	s.ToggleAllRows()
	if got := s.SelectedRows(); len(got) != 0 {
		t.Fatalf("expected selection cleared, got %v", got)
	}

	s.ToggleRow(1)
	s.ToggleAllRows()
	if got := s.SelectedRows(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("partial selection should complete, got %v", got)
	}
}

func TestToggleAllRowsHeaderOnly(t *testing.T) {
	s := loaded(t, grid.NewSheet("H", 0, [][]string{{"only"}}))
	if s.ToggleAllRows() {
		t.Fatal("expected no data rows to toggle")
	}
}

func TestDragRow(t *testing.T) {
	sheet := people()
	s := loaded(t, sheet)

	if s.BeginDrag(DragRow, layout.HeaderRow) {
		t.Fatal("header row must not be draggable")
	}
	if !s.BeginDrag(DragRow, 1) || s.Dragging().Kind != DragRow {
		t.Fatal("expected row drag pending")
	}
	if s.Drop(DragColumn, 0) {
		t.Fatal("column drop must not complete a row drag")
	}
	if !s.Dragging().Active() {
		t.Fatal("mismatched drop should leave the drag pending")
	}
	if !s.Drop(DragRow, 2) {
		t.Fatal("expected row moved")
	}
	if sheet.Cell(1, 0) != "Bob" || sheet.Cell(2, 0) != "Alice" {
		t.Fatalf("unexpected order %#v", sheet.Data)
	}
	if s.Dragging().Active() {
		t.Fatal("drop should clear the drag")
	}
}

func TestDropOntoHeaderIsIgnored(t *testing.T) {
	sheet := people()
	s := loaded(t, sheet)
	s.BeginDrag(DragRow, 2)
	if s.Drop(DragRow, layout.HeaderRow) {
		t.Fatal("expected drop onto header ignored")
	}
	if sheet.Cell(0, 0) != "Name" {
		t.Fatalf("header moved: %#v", sheet.Data)
	}
}

func TestDragColumnKeepsWidthByIndex(t *testing.T) {
	sheet := grid.NewSheet("S", 0, [][]string{{"A", "B", "C"}, {"1", "2", "3"}})
	s := loaded(t, sheet)
	s.ResizeColumn(0, 20)

	s.BeginDrag(DragColumn, 0)
	if !s.Drop(DragColumn, 2) {
		t.Fatal("expected column moved")
	}
	if got := sheet.Header(); !reflect.DeepEqual(got, []string{"B", "C", "A"}) {
		t.Fatalf("header = %v", got)
	}
	if got := s.ColumnWidth(0, 9); got != 20 {
		t.Fatalf("expected override to stay on index 0, got %d", got)
	}
}

func TestCancelDrag(t *testing.T) {
	s := loaded(t, people())
	s.BeginDrag(DragColumn, 1)
	s.CancelDrag()
	if s.Dragging().Active() || s.Drop(DragColumn, 0) {
		t.Fatal("expected no pending drag")
	}
}

func TestResizeColumn(t *testing.T) {
	s := loaded(t, people(), people())

	if got := s.ResizeColumn(1, 1); got != layout.CellRule.ResizeMin {
		t.Fatalf("expected clamp to %d, got %d", layout.CellRule.ResizeMin, got)
	}
	if got := s.ColumnWidth(1, 15); got != layout.CellRule.ResizeMin {
		t.Fatalf("override should win, got %d", got)
	}
	if got := s.ColumnWidth(0, 15); got != 15 {
		t.Fatalf("computed width expected, got %d", got)
	}
	s.SwitchSheet(1)
	if got := s.ColumnWidth(1, 15); got != 15 {
		t.Fatalf("override leaked across sheets, got %d", got)
	}
}

func TestLoadResetsState(t *testing.T) {
	s := loaded(t, people())
	s.ToggleRow(1)
	s.ResizeColumn(0, 30)
	s.BeginDrag(DragRow, 1)

	s.Load([]*grid.Sheet{people()})
	if len(s.SelectedRows()) != 0 || s.Dragging().Active() {
		t.Fatal("expected selection and drag cleared on load")
	}
	if got := s.ColumnWidth(0, 11); got != 11 {
		t.Fatalf("expected width overrides cleared, got %d", got)
	}

	s.Reset()
	if s.Loaded() {
		t.Fatal("expected reset to unload the workbook")
	}
}

func TestSheetInfo(t *testing.T) {
	s := loaded(t, people())
	if got, want := s.SheetInfo(), "People | 3 rows × 2 cols"; got != want {
		t.Fatalf("SheetInfo = %q, want %q", got, want)
	}
	if got := New(layout.CellRule).SheetInfo(); got != "" {
		t.Fatalf("expected empty info without workbook, got %q", got)
	}
}

func TestCellInfo(t *testing.T) {
	s := loaded(t, people())
	tests := []struct {
		row, col int
		editing  bool
		want     string
	}{
		{0, 0, true, "Editing header: A1"},
		{2, 1, true, "Editing: B3"},
		{0, 27, false, "Selected header: AB1"},
		{2, 1, false, "Selected: B3"},
	}
	for _, tt := range tests {
		if got := s.CellInfo(tt.row, tt.col, tt.editing); got != tt.want {
			t.Fatalf("CellInfo(%d, %d, %v) = %q, want %q", tt.row, tt.col, tt.editing, got, tt.want)
		}
	}
}
