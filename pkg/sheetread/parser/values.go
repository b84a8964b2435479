package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/xuri/excelize/v2"
)

// cellValue converts a raw cell string into a typed value according to the
// cell type stored in the worksheet.
// Strings are never reinterpreted, so "0123" held as text stays a string.
func cellValue(raw string, typ excelize.CellType) models.Cell {
	if raw == "" {
		return models.EmptyCell
	}

	switch typ {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
		return raw
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return parseNumber(raw)
	default:
		return raw
	}
}

// parseNumber attempts to parse a string value as a float64.
// Returns the original string when it is not a finite number.
func parseNumber(s string) models.Cell {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return f
}

// isEmpty reports whether a cell holds the missing-value sentinel.
func isEmpty(c models.Cell) bool {
	return c == nil || c == models.EmptyCell
}
