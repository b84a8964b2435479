package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/xuri/excelize/v2"
)

// BoundsRef returns the A1 reference of the bounding box of non-empty cells,
// e.g. "A1:D10". A single cell yields its own name; no data yields "".
func BoundsRef(rows []models.Row) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return ""
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if minRow == maxRow && minCol == maxCol {
		return startCell
	}
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows []models.Row) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if isEmpty(cell) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// cellRect is a 1-based inclusive cell rectangle.
type cellRect struct {
	c1, r1, c2, r2 int
}

func (r cellRect) covers(o cellRect) bool {
	return r.c1 <= o.c1 && r.r1 <= o.r1 && r.c2 >= o.c2 && r.r2 >= o.r2
}

// parseRef strips absolute markers from a range like $A$1:$D$10 and
// returns it upper-cased together with its corners.
func parseRef(ref string) (string, cellRect, bool) {
	ref = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	if ref == "" {
		return "", cellRect{}, false
	}

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return "", cellRect{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", cellRect{}, false
	}
	rect := cellRect{c1: startCol, r1: startRow, c2: startCol, r2: startRow}

	if len(parts) == 2 {
		endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return "", cellRect{}, false
		}
		rect.c2, rect.r2 = endCol, endRow
	}

	return ref, rect, true
}

// resolveDimension prefers the recorded range when it covers every
// non-empty cell of rows, and otherwise reports the data bounds.
func resolveDimension(recorded string, rows []models.Row) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return ""
	}

	bounds := cellRect{c1: minCol + 1, r1: minRow + 1, c2: maxCol + 1, r2: maxRow + 1}
	if ref, rect, ok := parseRef(recorded); ok && rect.covers(bounds) {
		return ref
	}
	return BoundsRef(rows)
}

// CropToRange re-bases rows on the top-left corner of ref, so the first row
// and first cell of the result are the range origin. Rows are extended with
// empty rows down to the last row of the range. Rows are returned unchanged
// when ref is empty or malformed.
func CropToRange(rows []models.Row, ref string) []models.Row {
	_, rect, ok := parseRef(ref)
	if !ok {
		return rows
	}

	height := rect.r2 - rect.r1 + 1
	width := rect.c2 - rect.c1 + 1
	cropped := make([]models.Row, height)
	for i := range cropped {
		cells := models.Row{}
		if src := rect.r1 - 1 + i; src < len(rows) {
			row := rows[src]
			if start := rect.c1 - 1; start < len(row) {
				end := min(len(row), start+width)
				cells = append(cells, row[start:end]...)
			}
		}
		cropped[i] = cells
	}
	return cropped
}

// RangeWidth returns the number of columns spanned by ref, or 0 when ref is
// empty or malformed.
func RangeWidth(ref string) int {
	_, rect, ok := parseRef(ref)
	if !ok {
		return 0
	}
	return rect.c2 - rect.c1 + 1
}

// PadRows pads every row with empty cells up to width or the widest row,
// whichever is larger. Rows are extended in place and the same slice is
// returned.
func PadRows(rows []models.Row, width int) []models.Row {
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	for i, row := range rows {
		for len(row) < width {
			row = append(row, models.EmptyCell)
		}
		rows[i] = row
	}
	return rows
}
