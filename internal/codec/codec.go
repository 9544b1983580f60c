// Package codec converts workbook files to and from grid sheets.
//
// Decoding flattens every cell to its display string, so numbers and dates
// arrive as the text the source application shows. Encoding always produces
// an xlsx workbook with every cell written as a string.
package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-sheets/internal/grid"
	"github.com/treykane/cli-sheets/internal/logging"
)

var log = logging.New("codec")

// DefaultExportName is the file name used when no export path is configured.
const DefaultExportName = "edited_excel.xlsx"

// Format identifies a supported workbook container.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Accepted MIME types for workbook files.
const (
	MIMETypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypeXLS  = "application/vnd.ms-excel"
)

// IsWorkbookFile reports whether a file looks like a workbook, either by its
// MIME type or by its .xlsx/.xls suffix.
func IsWorkbookFile(name, mimeType string) bool {
	switch mimeType {
	case MIMETypeXLSX, MIMETypeXLS:
		return true
	}
	_, ok := FormatOf(name)
	return ok
}

// FormatOf returns the workbook format implied by the file name suffix.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, true
	case ".xls":
		return FormatXLS, true
	}
	return "", false
}

// Decode parses file bytes into sheets. The file name selects the format;
// names without a known suffix are tried as xlsx.
func Decode(name string, data []byte) ([]*grid.Sheet, error) {
	format, ok := FormatOf(name)
	if !ok {
		format = FormatXLSX
	}

	var (
		sheets []*grid.Sheet
		err    error
	)
	switch format {
	case FormatXLS:
		sheets, err = decodeXLS(data)
	default:
		sheets, err = decodeXLSX(data)
	}
	if err != nil {
		return nil, &DecodeError{Name: filepath.Base(name), Err: err}
	}
	log.Debug("decoded workbook", "file", filepath.Base(name), "format", format, "sheets", len(sheets))
	return sheets, nil
}

// Encode writes sheets into an xlsx workbook and returns its bytes.
func Encode(sheets []*grid.Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return encodeXLSX(sheets)
}

// ReadFile reads and decodes the workbook at path.
func ReadFile(path string) ([]*grid.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// WriteFile encodes sheets and writes them to path.
func WriteFile(path string, sheets []*grid.Sheet) error {
	data, err := Encode(sheets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook %q: %w", path, err)
	}
	log.Info("wrote workbook", "path", path, "sheets", len(sheets), "bytes", len(data))
	return nil
}

// trimTrailingBlankRows drops all-blank rows from the end of rows.
func trimTrailingBlankRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && blankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

// trimTrailingBlankCells drops empty cells from the end of row.
func trimTrailingBlankCells(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func blankRow(row []string) bool {
	for _, value := range row {
		if value != "" {
			return false
		}
	}
	return true
}
