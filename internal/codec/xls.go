package codec

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/treykane/cli-sheets/internal/grid"
)

const xlsCharset = "utf-8"

// decodeXLS reads a legacy BIFF workbook. The xls reader panics on some
// malformed inputs, so panics are reported as errors.
func decodeXLS(data []byte) (sheets []*grid.Sheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheets = nil
			err = fmt.Errorf("malformed xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, err
	}

	for index := 0; index < wb.NumSheets(); index++ {
		ws := wb.GetSheet(index)
		if ws == nil {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, []string{})
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, trimTrailingBlankCells(cells))
		}
		sheets = append(sheets, grid.NewSheet(ws.Name, len(sheets), trimTrailingBlankRows(rows)))
	}
	return sheets, nil
}
