package app

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/grid"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// With the people sheet at 80x20 the gutter is 5 cells wide and both
// columns are 8 cells plus a separator: A spans x 5-13, B spans x 14-22.
func TestHitTest(t *testing.T) {
	m := newLoadedModel(t)

	cases := []struct {
		name string
		x, y int
		want hit
	}{
		{"tab", 2, 0, hit{kind: hitTab, tab: 0}},
		{"past tabs", 40, 0, hit{}},
		{"header marker", 0, 1, hit{kind: hitHeaderMarker}},
		{"header gutter", 3, 1, hit{}},
		{"header A", 6, 1, hit{kind: hitHeader, colPos: 0}},
		{"header B", 14, 1, hit{kind: hitHeader, colPos: 1}},
		{"rule", 6, 2, hit{}},
		{"row marker", 1, 3, hit{kind: hitRowMarker, rowPos: 1}},
		{"row label", 3, 3, hit{kind: hitGutter, rowPos: 1}},
		{"cell A3", 13, 4, hit{kind: hitCell, rowPos: 2, colPos: 0}},
		{"cell B2", 22, 3, hit{kind: hitCell, rowPos: 1, colPos: 1}},
		{"past columns", 40, 3, hit{}},
		{"past rows", 6, 5, hit{}},
	}
	for _, tc := range cases {
		if got := m.hitTest(tc.x, tc.y); got != tc.want {
			t.Fatalf("%s: hitTest(%d,%d) = %+v, want %+v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestHitTestWithoutWorkbook(t *testing.T) {
	m := &Model{width: 80, height: 20}
	if got := m.hitTest(6, 3); got != (hit{}) {
		t.Fatalf("expected no hit, got %+v", got)
	}
}

func TestMouseDragMovesRow(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.Update(press(3, 3))
	if !m.session.Dragging().Active() {
		t.Fatal("expected row drag to start")
	}
	_, _ = m.Update(release(3, 4))

	sheet := m.session.Current()
	if sheet.Cell(1, 0) != "Bob" || sheet.Cell(2, 0) != "Ann" {
		t.Fatalf("expected rows swapped, got %v", sheet.Data)
	}
	if m.status != "Moved row 1 to 2" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.mouseDrag != 0 || m.session.Dragging().Active() {
		t.Fatal("expected drag finished")
	}
}

func TestMouseDragMovesColumn(t *testing.T) {
	m := newLoadedModel(t)
	m.cursorRow = 1

	_, _ = m.Update(press(6, 1))
	_, _ = m.Update(release(15, 1))

	if got := m.session.Current().Header(); !slices.Equal(got, []string{"Age", "Name"}) {
		t.Fatalf("unexpected header %v", got)
	}
	if m.status != "Moved column A to B" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestMouseReleaseOutsideCancelsDrag(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.Update(press(3, 3))
	_, _ = m.Update(release(70, 10))

	if m.session.Dragging().Active() {
		t.Fatal("expected drag cancelled")
	}
	if got := m.session.Current().Cell(1, 0); got != "Ann" {
		t.Fatalf("expected rows unchanged, got %q", got)
	}
}

func TestMouseClickFocusedCellStartsEdit(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.Update(press(6, 3))
	_, _ = m.Update(release(6, 3))
	if m.cursorRow != 1 || m.cursorCol != 0 || m.mode != modeBrowse {
		t.Fatalf("expected first click to move the cursor, got (%d,%d) mode %v", m.cursorRow, m.cursorCol, m.mode)
	}

	_, _ = m.Update(press(6, 3))
	if m.mode != modeEditCell || m.input.Value() != "Ann" {
		t.Fatalf("expected second click to edit, got mode %v value %q", m.mode, m.input.Value())
	}

	// Mouse input is ignored while editing.
	_, _ = m.Update(press(15, 4))
	if m.cursorRow != 1 || m.cursorCol != 0 {
		t.Fatalf("expected cursor unchanged while editing, got (%d,%d)", m.cursorRow, m.cursorCol)
	}
}

func TestMouseMarkersToggleSelection(t *testing.T) {
	m := newLoadedModel(t)

	_, _ = m.Update(press(0, 4))
	if got := m.session.SelectedRows(); !slices.Equal(got, []int{2}) {
		t.Fatalf("expected row 2 selected, got %v", got)
	}

	_, _ = m.Update(press(0, 1))
	if got := m.session.SelectedRows(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("expected all rows selected, got %v", got)
	}
	if m.status != "2 rows selected" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestMouseTabAndWheel(t *testing.T) {
	m := newLoadedModel(t, peopleSheet(), grid.NewSheet("Pets", 1, [][]string{{"Pet"}, {"Cat"}}))

	_, _ = m.Update(tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.cursorRow != 1 {
		t.Fatalf("expected wheel to move the cursor, got %d", m.cursorRow)
	}

	// "People" renders as an 8-cell tab.
	_, _ = m.Update(press(9, 0))
	if got := m.session.CurrentIndex(); got != 1 {
		t.Fatalf("expected second sheet, got %d", got)
	}
	if m.cursorRow != 0 {
		t.Fatalf("expected cursor reset, got %d", m.cursorRow)
	}
}
