package grid

// ColumnWidths caches user-resized column widths keyed by sheet index and
// column index. Entries only exist for explicit resizes; the unit is
// whatever the renderer measures in.
//
// Widths follow the column index, not the column content: moving a column
// does not move its override.
type ColumnWidths struct {
	widths map[int]map[int]int
}

// NewColumnWidths returns an empty cache.
func NewColumnWidths() *ColumnWidths {
	return &ColumnWidths{widths: map[int]map[int]int{}}
}

// Set records a width override.
func (c *ColumnWidths) Set(sheet, col, width int) {
	if c.widths == nil {
		c.widths = map[int]map[int]int{}
	}
	cols, ok := c.widths[sheet]
	if !ok {
		cols = map[int]int{}
		c.widths[sheet] = cols
	}
	cols[col] = width
}

// Get returns the override for (sheet, col) and whether one exists.
func (c *ColumnWidths) Get(sheet, col int) (int, bool) {
	if c == nil {
		return 0, false
	}
	width, ok := c.widths[sheet][col]
	if !ok || width <= 0 {
		return 0, false
	}
	return width, true
}

// Reset drops every override.
func (c *ColumnWidths) Reset() {
	c.widths = map[int]map[int]int{}
}
