// Package layout decides which rows and columns of a sheet are shown and in
// what order.
//
// A sheet's data is jagged and sparse, so the displayed set is computed in
// two steps: the "valid" indices (rows/columns holding at least one non-blank
// cell) come first, then every remaining structural index is appended so that
// freshly inserted blank rows and columns stay visible. Nothing here mutates
// the sheet; the results are recomputed from the current data on every call.
package layout

import (
	"slices"

	"github.com/treykane/cli-sheets/internal/grid"
)

// HeaderRow is the data index of the header row.
const HeaderRow = 0

// Layout is the resolved view of a single sheet.
type Layout struct {
	// Rows lists every displayed row index in ascending order, header included.
	Rows []int
	// Columns lists every displayed column index in display order.
	Columns []int
	// DataRows is Rows without the header row.
	DataRows []int
	// ValidRows is the number of rows holding data.
	ValidRows int
	// ValidColumns is the number of columns holding data.
	ValidColumns int
}

// Resolve computes the full layout for s. An empty sheet resolves to an
// empty Layout.
func Resolve(s *grid.Sheet) Layout {
	if s == nil || s.Rows() == 0 {
		return Layout{}
	}
	rows := DisplayRows(s)
	return Layout{
		Rows:         rows,
		Columns:      DisplayColumns(s),
		DataRows:     DataRows(s, rows),
		ValidRows:    len(ValidRows(s)),
		ValidColumns: len(ValidColumns(s)),
	}
}

// ValidColumns returns the ascending indices of columns holding data. When no
// column holds data but the sheet has at least one column, it returns [0].
func ValidColumns(s *grid.Sheet) []int {
	maxCols := s.MaxCols()
	cols := []int{}
	for col := 0; col < maxCols; col++ {
		if s.HasColumnData(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 && maxCols > 0 {
		cols = append(cols, 0)
	}
	return cols
}

// ValidRows returns the ascending indices of rows holding data. When no row
// holds data but the sheet has at least one row, it returns [0].
func ValidRows(s *grid.Sheet) []int {
	rows := []int{}
	for row := 0; row < s.Rows(); row++ {
		if s.HasRowData(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 && s.Rows() > 0 {
		rows = append(rows, 0)
	}
	return rows
}

// DisplayColumns returns the valid columns in their original order followed
// by every other index in [0, MaxCols), each exactly once. Unlike
// DisplayRows the result is not re-sorted.
func DisplayColumns(s *grid.Sheet) []int {
	cols := union(ValidColumns(s), s.MaxCols())
	if len(cols) == 0 {
		cols = append(cols, 0)
	}
	return cols
}

// DisplayRows returns the valid rows merged with every physical row index,
// sorted ascending.
func DisplayRows(s *grid.Sheet) []int {
	rows := union(ValidRows(s), s.Rows())
	slices.Sort(rows)
	if len(rows) == 0 {
		rows = append(rows, 0)
	}
	return rows
}

// DataRows returns the editable rows among displayRows: every row except the
// header. When that leaves nothing but the sheet has rows below the header,
// all physical rows from 1 on are returned.
func DataRows(s *grid.Sheet, displayRows []int) []int {
	rows := make([]int, 0, len(displayRows))
	for _, row := range displayRows {
		if row != HeaderRow {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		for row := 1; row < s.Rows(); row++ {
			rows = append(rows, row)
		}
	}
	return rows
}

// union appends every index in [0, n) missing from first, preserving the
// order of first.
func union(first []int, n int) []int {
	seen := make(map[int]bool, n)
	out := make([]int, 0, max(n, len(first)))
	for _, idx := range first {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	for idx := 0; idx < n; idx++ {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out
}
