package layout

import "github.com/treykane/cli-sheets/internal/grid"

// Measurer returns the rendered width of a cell value. Text measurement is a
// rendering concern, so the renderer supplies it.
type Measurer interface {
	Measure(text string) int
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) int

// Measure implements Measurer.
func (f MeasureFunc) Measure(text string) int {
	return f(text)
}

// WidthRule holds the constants used to size columns.
type WidthRule struct {
	// Min is the narrowest computed width.
	Min int
	// Padding is added to every measured value.
	Padding int
	// Max caps computed widths.
	Max int
	// Fallback is used when neither an override nor a computed width exists.
	Fallback int
	// ResizeMin is the narrowest width a user resize may set.
	ResizeMin int
	// SampleRows bounds how many physical rows are measured.
	SampleRows int
}

var (
	// PixelRule sizes columns in browser pixels.
	PixelRule = WidthRule{Min: 80, Padding: 30, Max: 500, Fallback: 120, ResizeMin: 50, SampleRows: 100}
	// CellRule sizes columns in terminal cells.
	CellRule = WidthRule{Min: 8, Padding: 2, Max: 40, Fallback: 12, ResizeMin: 4, SampleRows: 100}
)

// DefaultColumnWidths returns one computed width per entry of cols.
//
// Each width starts at rule.Min and grows to fit the padded header cell and
// the padded cells of the first rule.SampleRows physical rows, then is
// clamped to rule.Max.
func DefaultColumnWidths(s *grid.Sheet, cols []int, m Measurer, rule WidthRule) []int {
	widths := make([]int, len(cols))
	sample := min(s.Rows(), rule.SampleRows)
	for i, col := range cols {
		width := rule.Min
		if s.Rows() > 0 {
			width = max(width, m.Measure(s.Cell(HeaderRow, col))+rule.Padding)
		}
		for row := 1; row < sample; row++ {
			width = max(width, m.Measure(s.Cell(row, col))+rule.Padding)
		}
		widths[i] = min(width, rule.Max)
	}
	return widths
}

// ColumnWidth picks the width to render: a cached user override wins, then
// the computed width, then rule.Fallback.
func ColumnWidth(cache *grid.ColumnWidths, sheet, col, computed int, rule WidthRule) int {
	if width, ok := cache.Get(sheet, col); ok {
		return width
	}
	if computed > 0 {
		return computed
	}
	return rule.Fallback
}

// ClampResize bounds a user-requested width to rule.ResizeMin.
func ClampResize(width int, rule WidthRule) int {
	return max(width, rule.ResizeMin)
}
