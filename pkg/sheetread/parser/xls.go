package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
)

// DefaultCharset is the code page hint used for BIFF5 strings.
const DefaultCharset = "utf-8"

// ReadXLS decodes a legacy BIFF workbook (xls) held in memory.
// The codec renders every cell as its display string.
func ReadXLS(buf []byte, charset string) (sheets []models.Sheet, err error) {
	// the codec panics on some malformed records
	defer func() {
		if r := recover(); r != nil {
			sheets = nil
			err = errors.Errorf("malformed xls record: %v", r)
		}
	}()

	if charset == "" {
		charset = DefaultCharset
	}

	wb, err := xls.OpenReader(bytes.NewReader(buf), charset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, ErrNoWorkbookStream
	}

	numSheets := wb.NumSheets()
	if numSheets == 0 {
		return nil, ErrNoSheets
	}

	sheets = make([]models.Sheet, 0, numSheets)
	for i := 0; i < numSheets; i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			return nil, NewExtractionError(fmt.Sprintf("#%d", i), "rows", errors.New("sheet not found"))
		}

		rows := xlsRows(ws)
		sheets = append(sheets, models.Sheet{
			Name:      ws.Name,
			Rows:      rows,
			Dimension: BoundsRef(rows),
		})
	}

	return sheets, nil
}

// xlsRows reads rows 0..MaxRow. Missing rows become empty rows, trailing
// empty cells and trailing empty rows are dropped.
func xlsRows(ws *xls.WorkSheet) []models.Row {
	rows := make([]models.Row, 0, int(ws.MaxRow)+1)
	last := -1

	for i := 0; i <= int(ws.MaxRow); i++ {
		row := xlsRow(ws, i)
		if row == nil {
			rows = append(rows, models.Row{})
			continue
		}

		values := make([]string, row.LastCol())
		for col := range values {
			values[col] = row.Col(col)
		}

		cells := trimRow(values)
		if len(cells) > 0 {
			last = i
		}
		rows = append(rows, cells)
	}

	return rows[:last+1]
}

// xlsRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences the missing entry instead of returning nil.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// trimRow converts display strings to cells, dropping trailing empty ones.
func trimRow(values []string) models.Row {
	width := 0
	for col, value := range values {
		if value != "" {
			width = col + 1
		}
	}

	cells := make(models.Row, width)
	for col := 0; col < width; col++ {
		cells[col] = values[col]
	}
	return cells
}
