package codec

import (
	"bytes"

	"github.com/treykane/cli-sheets/internal/grid"
	"github.com/xuri/excelize/v2"
)

// decodeXLSX reads every sheet in workbook order.
func decodeXLSX(data []byte) ([]*grid.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]*grid.Sheet, 0, len(names))
	for index, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, grid.NewSheet(name, index, trimTrailingBlankRows(rows)))
	}
	return sheets, nil
}

// encodeXLSX builds a workbook with one worksheet per sheet, in order. Every
// cell is written as a string; blank trailing cells are skipped.
func encodeXLSX(sheets []*grid.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if sheet.Name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
					return nil, &EncodeError{SheetName: sheet.Name, Err: err}
				}
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, &EncodeError{SheetName: sheet.Name, Err: err}
		}

		for rowIdx, row := range sheet.Data {
			row = trimTrailingBlankCells(row)
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return nil, &EncodeError{SheetName: sheet.Name, Err: err}
			}
			values := make([]interface{}, len(row))
			for col, value := range row {
				values[col] = value
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, &EncodeError{SheetName: sheet.Name, Err: err}
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
