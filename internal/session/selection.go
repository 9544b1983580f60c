package session

import "github.com/treykane/cli-sheets/internal/layout"

// SelectionState summarizes how many data rows of the active sheet are
// selected.
type SelectionState int

const (
	SelectNone SelectionState = iota
	SelectPartial
	SelectAll
)

// IsSelected reports whether a data row of the active sheet is selected.
func (s *Session) IsSelected(row int) bool {
	return s.selected[s.current][row]
}

// ToggleRow flips the selection of a data row. The header row cannot be
// selected.
func (s *Session) ToggleRow(row int) bool {
	if s.Current() == nil || row == layout.HeaderRow || row < 0 {
		return false
	}
	rows := s.sheetSelection()
	if rows[row] {
		delete(rows, row)
	} else {
		rows[row] = true
	}
	return true
}

// ToggleAllRows selects every data row holding data, or clears them all when
// they are already selected.
func (s *Session) ToggleAllRows() bool {
	sheet := s.Current()
	if sheet == nil {
		return false
	}
	rows := dataRowsWithData(layout.ValidRows(sheet))
	if len(rows) == 0 {
		return false
	}

	selection := s.sheetSelection()
	allSelected := true
	for _, row := range rows {
		if !selection[row] {
			allSelected = false
			break
		}
	}
	for _, row := range rows {
		if allSelected {
			delete(selection, row)
		} else {
			selection[row] = true
		}
	}
	return true
}

// SelectionState reports the header marker state over the displayed data
// rows of the active sheet.
func (s *Session) SelectionState() SelectionState {
	rows := s.Layout().DataRows
	if len(rows) == 0 {
		return SelectNone
	}
	selected := 0
	for _, row := range rows {
		if s.IsSelected(row) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return SelectNone
	case selected == len(rows):
		return SelectAll
	default:
		return SelectPartial
	}
}

func (s *Session) sheetSelection() map[int]bool {
	rows, ok := s.selected[s.current]
	if !ok {
		rows = map[int]bool{}
		s.selected[s.current] = rows
	}
	return rows
}

func dataRowsWithData(valid []int) []int {
	rows := make([]int, 0, len(valid))
	for _, row := range valid {
		if row != layout.HeaderRow {
			rows = append(rows, row)
		}
	}
	return rows
}
