// Package parser adapts third-party spreadsheet codecs to the row model.
package parser

import (
	"bytes"

	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/xuri/excelize/v2"
)

// XLSXOptions configures the OOXML reader.
type XLSXOptions struct {
	// Password opens encrypted workbooks.
	Password string
	// Formatted returns display strings instead of typed values.
	Formatted bool
}

// ReadXLSX decodes an OOXML workbook (xlsx, xlsm, xltx, xltm) held in memory.
// Sheets are returned in declaration order.
func ReadXLSX(buf []byte, opts XLSXOptions) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf), excelize.Options{Password: opts.Password})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrNoSheets
	}

	sheets := make([]models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		sheet, err := ExtractSheet(f, sheetName, opts.Formatted)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}

// ExtractSheet reads one sheet of an open workbook.
func ExtractSheet(f *excelize.File, sheetName string, formatted bool) (models.Sheet, error) {
	rows, err := ExtractRows(f, sheetName, formatted)
	if err != nil {
		return models.Sheet{}, NewExtractionError(sheetName, "rows", err)
	}

	visible, err := f.GetSheetVisible(sheetName)
	if err != nil {
		return models.Sheet{}, NewExtractionError(sheetName, "visibility", err)
	}

	dimension, err := sheetDimension(f, sheetName, rows)
	if err != nil {
		return models.Sheet{}, NewExtractionError(sheetName, "dimension", err)
	}

	return models.Sheet{
		Name:      sheetName,
		Rows:      rows,
		Dimension: dimension,
		Hidden:    !visible,
	}, nil
}

// ExtractRows extracts every row of a sheet, including empty rows between
// populated ones. Gaps inside a row are filled with the empty string.
func ExtractRows(f *excelize.File, sheetName string, formatted bool) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: !formatted})
	if err != nil {
		return nil, err
	}

	result := make([]models.Row, 0, len(rows))
	for rowIdx, row := range rows {
		cells := make(models.Row, len(row))
		for colIdx, cellValueStr := range row {
			if formatted || cellValueStr == "" {
				cells[colIdx] = cellValueStr
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = cellValue(cellValueStr, typ)
		}
		result = append(result, cells)
	}

	return result, nil
}

// sheetDimension returns the used range recorded in the worksheet, falling
// back to the bounds of the extracted rows when the record is missing, stale
// or malformed.
func sheetDimension(f *excelize.File, sheetName string, rows []models.Row) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	ref, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return "", err
	}
	return resolveDimension(ref, rows), nil
}
