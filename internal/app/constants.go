package app

import "time"

// Layout constants define the fixed rows and spacing of the sheet view
const (
	// TabLineRows is the height of the sheet tab strip at the top.
	TabLineRows = 1

	// HeaderLineRows covers the header cells and the rule below them.
	HeaderLineRows = 2

	// GutterMinWidth is the narrowest row gutter (marker, space, label).
	GutterMinWidth = 5

	// MarkerWidth is the width of the selection marker at the start of the
	// gutter. Clicks inside it toggle selection instead of starting a drag.
	MarkerWidth = 2

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// HelpMinWidth keeps glamour from wrapping the help text into a sliver.
	HelpMinWidth = 40
)

// Input limits define maximum sizes for user input
const (
	// CellCharLimit caps a single cell value typed into the editor.
	CellCharLimit = 4096

	// PathCharLimit caps the open-file prompt.
	PathCharLimit = 1024
)

// DefaultFileWatchInterval is how often the open workbook is polled for
// changes on disk when the config does not set an interval.
const DefaultFileWatchInterval = 2 * time.Second

// ResizeStep is how many terminal cells one shrink or grow keypress changes
// a column width by.
const ResizeStep = 2

// Selection markers drawn in the row gutter.
const (
	markerSelected = "●"
	markerPartial  = "◐"
	markerNone     = "○"
)
