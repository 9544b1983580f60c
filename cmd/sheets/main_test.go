package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treykane/cli-sheets/internal/codec"
	"github.com/treykane/cli-sheets/internal/grid"
)

func writeBook(t *testing.T, path string) {
	t.Helper()
	sheets := []*grid.Sheet{
		grid.NewSheet("People", 0, [][]string{{"Name", "Age"}, {"Ann", "31"}, {"Bob", "42"}}),
		grid.NewSheet("Pets", 1, [][]string{{"Pet"}, {"Cat"}}),
	}
	if err := codec.WriteFile(path, sheets); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
}

func TestPrintInfoListsEverySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeBook(t, path)

	var out bytes.Buffer
	if err := printInfo(&out, path); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{"book.xlsx: 2 sheet(s)", "0  People | 3 rows × 2 cols", "1  Pets | 2 rows × 1 cols"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestExportWorkbookCopiesCells(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	out := filepath.Join(dir, "out.xlsx")
	writeBook(t, in)

	var buf bytes.Buffer
	if err := exportWorkbook(&buf, in, out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "Exported 2 sheet(s)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	sheets, err := codec.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(sheets) != 2 || sheets[0].Cell(2, 0) != "Bob" {
		t.Fatalf("unexpected exported sheets")
	}
}

func TestExportWorkbookMissingInput(t *testing.T) {
	err := exportWorkbook(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.xlsx"), "out.xlsx")
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found, got %v", err)
	}
}

func TestTuiOptionsRejectsNegativeSheet(t *testing.T) {
	if _, err := tuiOptions(nil, "", -1); err == nil {
		t.Fatal("expected error for negative sheet")
	}
}

func TestRootCommandArgs(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Args(cmd, []string{"a.xlsx", "b.xlsx"}); err == nil {
		t.Fatal("expected error for two positional files")
	}
	if info, _, err := cmd.Find([]string{"info"}); err != nil || info.Name() != "info" {
		t.Fatalf("expected info subcommand, got %v", err)
	}
}
