package grid

// SetCell assigns value at (row, col), growing the sheet with empty rows and
// the row with empty cells as needed. It never fails.
func (s *Sheet) SetCell(row, col int, value string) {
	if row < 0 || col < 0 {
		return
	}
	for len(s.Data) <= row {
		s.Data = append(s.Data, []string{})
	}
	for len(s.Data[row]) <= col {
		s.Data[row] = append(s.Data[row], "")
	}
	s.Data[row][col] = value
}

// SetHeader assigns value to the header cell of col.
func (s *Sheet) SetHeader(col int, value string) {
	s.SetCell(0, col, value)
}

// InsertRow appends a blank row and returns its index.
//
// The row is as wide as the highest column holding data (one cell when no
// column has data), widened to the header row when the header is longer. An
// empty sheet gets a blank header row first.
func (s *Sheet) InsertRow() int {
	width := 1
	switch last := s.lastDataColumn(); {
	case last >= 0:
		width = last + 1
	case s.MaxCols() > 0:
		width = 1
	case len(s.Data) > 0:
		width = 0
	}

	if len(s.Data) == 0 {
		s.Data = append(s.Data, blankRow(width))
	}
	if header := len(s.Data[0]); header > width {
		width = header
	}

	s.Data = append(s.Data, blankRow(width))
	return len(s.Data) - 1
}

// InsertColumn pads every row to a uniform width one past the current
// longest row and returns the new column index. An empty sheet gets a single
// header cell.
func (s *Sheet) InsertColumn() int {
	col := s.MaxCols()
	if len(s.Data) == 0 {
		s.Data = append(s.Data, []string{""})
	}
	for i := range s.Data {
		for len(s.Data[i]) <= col {
			s.Data[i] = append(s.Data[i], "")
		}
	}
	return col
}

// MoveRow removes the row at from and reinserts it so that it ends up at
// index to of the resulting slice. Equal, negative or out-of-range indices
// leave the sheet untouched and return false.
func (s *Sheet) MoveRow(from, to int) bool {
	if from == to || from < 0 || to < 0 {
		return false
	}
	if from >= len(s.Data) || to >= len(s.Data) {
		return false
	}
	s.Data = splice(s.Data, from, to)
	return true
}

// MoveColumn moves the cell at from to to in every row. Rows shorter than
// max(from, to)+1 are padded with empty cells first, so the move applies to
// each row independently. Equal or negative indices return false.
func (s *Sheet) MoveColumn(from, to int) bool {
	if from == to || from < 0 || to < 0 {
		return false
	}
	width := max(from, to) + 1
	for i, row := range s.Data {
		for len(row) < width {
			row = append(row, "")
		}
		s.Data[i] = splice(row, from, to)
	}
	return true
}

// EnsureDataRow guarantees an editable row below the header. When the sheet
// holds only its header row, a blank row 1 is appended and true is returned.
// A sheet with no rows at all is left alone.
func (s *Sheet) EnsureDataRow() bool {
	if len(s.Data) != 1 {
		return false
	}
	s.Data = append(s.Data, blankRow(max(s.MaxCols(), 1)))
	return true
}

// splice moves items[from] to position to, shifting the items in between.
func splice[T any](items []T, from, to int) []T {
	item := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items, item)
	copy(items[to+1:], items[to:len(items)-1])
	items[to] = item
	return items
}
