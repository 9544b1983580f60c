// Package grid holds the mutable sheet contents of a loaded workbook.
//
// A sheet is a jagged 2-D array of strings: rows may have different lengths
// and a missing trailing cell reads the same as an empty string. Row 0 is
// always the header row. Every structural edit goes through the methods in
// this package so that encoding the workbook always reflects the latest
// state.
package grid

import "strings"

// Sheet is one named tab of a workbook.
type Sheet struct {
	// Name is the tab name as read from the source file.
	Name string
	// Index is the sheet position at load time. It stays stable for the
	// session and keys the column width cache.
	Index int
	// Data holds the rows; Data[0] is the header row.
	Data [][]string
}

// NewSheet returns a sheet that owns a copy of rows.
func NewSheet(name string, index int, rows [][]string) *Sheet {
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = append([]string(nil), row...)
	}
	return &Sheet{Name: name, Index: index, Data: data}
}

// IsBlank reports whether a cell value carries no data.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Rows returns the number of physical rows.
func (s *Sheet) Rows() int {
	return len(s.Data)
}

// MaxCols returns the length of the longest row, or 0 for an empty sheet.
func (s *Sheet) MaxCols() int {
	maxCols := 0
	for _, row := range s.Data {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return maxCols
}

// Cell returns the value at (row, col); cells outside the jagged array read
// as "".
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Data) || col < 0 || col >= len(s.Data[row]) {
		return ""
	}
	return s.Data[row][col]
}

// Header returns the header row, or nil when the sheet has no rows.
func (s *Sheet) Header() []string {
	if len(s.Data) == 0 {
		return nil
	}
	return s.Data[0]
}

// HasColumnData reports whether any row has a non-blank value at col.
func (s *Sheet) HasColumnData(col int) bool {
	for row := range s.Data {
		if !IsBlank(s.Cell(row, col)) {
			return true
		}
	}
	return false
}

// HasRowData reports whether the row has at least one non-blank value.
func (s *Sheet) HasRowData(row int) bool {
	if row < 0 || row >= len(s.Data) {
		return false
	}
	for _, value := range s.Data[row] {
		if !IsBlank(value) {
			return true
		}
	}
	return false
}

// lastDataColumn returns the highest column index holding data, or -1.
func (s *Sheet) lastDataColumn() int {
	for col := s.MaxCols() - 1; col >= 0; col-- {
		if s.HasColumnData(col) {
			return col
		}
	}
	return -1
}

// Clone returns a deep copy of the sheet.
func (s *Sheet) Clone() *Sheet {
	return NewSheet(s.Name, s.Index, s.Data)
}

func blankRow(width int) []string {
	return make([]string, width)
}
