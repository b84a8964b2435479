// Package output serializes workbooks and sheets.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
)

// ToJSON serializes a workbook. pretty indents with two spaces.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// SheetsToJSON serializes bare sheet records as a JSON array.
func SheetsToJSON(sheets []models.Sheet, pretty bool) ([]byte, error) {
	if sheets == nil {
		sheets = []models.Sheet{}
	}
	return marshal(sheets, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ErrorJSON serializes an error message as {"error": msg}.
func ErrorJSON(msg string) ([]byte, error) {
	return json.Marshal(struct {
		Error string `json:"error"`
	}{Error: msg})
}
