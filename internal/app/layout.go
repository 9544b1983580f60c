// layout.go centralizes the terminal layout of the sheet view.
//
// From the top the screen holds the sheet tab strip, the header line and
// its rule, the visible data rows, and a footer of two or three rows. The
// row gutter on the left is sized to the widest row label.
package app

import "strconv"

// LayoutDimensions holds the calculated dimensions of the UI.
type LayoutDimensions struct {
	ContentHeight int // terminal height minus footer
	BodyRows      int // data rows that fit below the header rule
	GutterWidth   int // selection marker plus row label
	TableWidth    int // width left for cells after the gutter
}

// calculateLayout computes all UI dimensions from the terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	contentHeight := max(0, m.height-m.footerHeightForWidth(m.width))
	gutter := m.gutterWidth()
	return LayoutDimensions{
		ContentHeight: contentHeight,
		BodyRows:      max(0, contentHeight-TabLineRows-HeaderLineRows),
		GutterWidth:   gutter,
		TableWidth:    max(0, m.width-gutter),
	}
}

// gutterWidth fits the marker, the widest 1-based row label and a space.
func (m *Model) gutterWidth() int {
	labels := max(1, len(m.table().rows)-1)
	return max(GutterMinWidth, MarkerWidth+len(strconv.Itoa(labels))+1)
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout sizes the help viewport to the content area.
func (m *Model) applyLayout(dims LayoutDimensions) {
	m.help.Width = max(0, m.width-helpPane.GetHorizontalFrameSize())
	m.help.Height = max(0, dims.ContentHeight-helpPane.GetVerticalFrameSize())
}
