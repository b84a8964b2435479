package sheetread

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/parser"
)

// Read decodes an in-memory spreadsheet and returns its sheets in workbook
// order. Rows start at the top-left corner of each sheet's used range (see
// Sheet.Dimension); each row lists cell values by column position and empty
// cells inside a row are the empty string. A buffer that is not a spreadsheet yields a
// *DecodeError and no sheets.
func Read(buf []byte) ([]models.Sheet, error) {
	return ReadWithOptions(buf, DefaultOptions())
}

// ReadWithOptions is Read with explicit options.
func ReadWithOptions(buf []byte, opts Options) ([]models.Sheet, error) {
	_, sheets, err := decode(buf, opts)
	if err != nil {
		return nil, err
	}
	return sheets, nil
}

// ReadWorkbook decodes buf and wraps the sheets with the detected format.
func ReadWorkbook(buf []byte, opts Options) (*models.WorkbookData, error) {
	format, sheets, err := decode(buf, opts)
	if err != nil {
		return nil, err
	}

	return &models.WorkbookData{
		Format: string(format),
		Sheets: sheets,
	}, nil
}

// ReadFile reads a spreadsheet from disk.
func ReadFile(path string, opts Options) (*models.WorkbookData, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	wb, err := ReadWorkbook(buf, opts)
	if err != nil {
		return nil, err
	}
	wb.BookName = filepath.Base(path)
	return wb, nil
}

func decode(buf []byte, opts Options) (Format, []models.Sheet, error) {
	format, err := resolveFormat(buf, opts.Format)
	if err != nil {
		return "", nil, err
	}

	var sheets []models.Sheet
	switch format {
	case FormatXLSX:
		sheets, err = parser.ReadXLSX(buf, parser.XLSXOptions{
			Password:  opts.Password,
			Formatted: opts.Formatted,
		})
	case FormatXLS:
		sheets, err = parser.ReadXLS(buf, opts.charset())
	}
	if err != nil {
		return "", nil, newDecodeError(format, err)
	}

	for i := range sheets {
		sheets[i].Rows = shapeRows(sheets[i], opts)
	}

	return format, sheets, nil
}

// shapeRows re-bases rows on the used range unless AnchorA1 is set, then
// applies padding.
func shapeRows(sheet models.Sheet, opts Options) []models.Row {
	rows := sheet.Rows
	width := 0
	if !opts.AnchorA1 {
		rows = parser.CropToRange(rows, sheet.Dimension)
		width = parser.RangeWidth(sheet.Dimension)
	}
	if opts.PadRows {
		rows = parser.PadRows(rows, width)
	}
	return rows
}

func resolveFormat(buf []byte, requested Format) (Format, error) {
	switch requested {
	case "", FormatAuto:
		return DetectFormat(buf)
	case FormatXLSX, FormatXLS:
		return requested, nil
	default:
		return "", errors.Errorf("unsupported format %q", requested)
	}
}
