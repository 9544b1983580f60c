package layout

import "strconv"

// ColumnName converts a 0-based column index to spreadsheet letters
// (0 → A, 25 → Z, 26 → AA) using bijective base-26. Negative indices
// return "".
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}
	var buf [16]byte
	pos := len(buf)
	for n := index; n >= 0; n = n/26 - 1 {
		pos--
		buf[pos] = byte('A' + n%26)
	}
	return string(buf[pos:])
}

// CellRef returns the A1-style reference of a 0-based (row, col) pair.
func CellRef(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}
