package session

import "github.com/treykane/cli-sheets/internal/layout"

// DragKind names what a drag gesture carries.
type DragKind int

const (
	DragRow DragKind = iota + 1
	DragColumn
)

func (k DragKind) String() string {
	switch k {
	case DragRow:
		return "row"
	case DragColumn:
		return "column"
	default:
		return "none"
	}
}

// Drag is a pending row or column move. The zero value is no drag.
type Drag struct {
	Kind DragKind
	From int
}

// Active reports whether a drag is pending.
func (d Drag) Active() bool {
	return d.Kind != 0
}

// BeginDrag picks up row or column from on the active sheet. The header row
// is not draggable.
func (s *Session) BeginDrag(kind DragKind, from int) bool {
	if s.Current() == nil || from < 0 {
		return false
	}
	if kind == DragRow && from == layout.HeaderRow {
		return false
	}
	if kind != DragRow && kind != DragColumn {
		return false
	}
	s.drag = Drag{Kind: kind, From: from}
	return true
}

// Drop completes a pending drag at to and reports whether the sheet changed.
// A drop of the other kind leaves the drag pending. Selections stay keyed by
// row index and do not follow the moved row.
func (s *Session) Drop(kind DragKind, to int) bool {
	if !s.drag.Active() || s.drag.Kind != kind {
		return false
	}
	from := s.drag.From
	s.drag = Drag{}

	sheet := s.Current()
	if sheet == nil {
		return false
	}
	switch kind {
	case DragRow:
		if to == layout.HeaderRow {
			return false
		}
		return sheet.MoveRow(from, to)
	case DragColumn:
		return sheet.MoveColumn(from, to)
	}
	return false
}

// CancelDrag drops any pending drag without moving anything.
func (s *Session) CancelDrag() {
	s.drag = Drag{}
}

// Dragging returns the pending drag.
func (s *Session) Dragging() Drag {
	return s.drag
}
