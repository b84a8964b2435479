package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
)

func TestToJSON(t *testing.T) {
	wb := &models.WorkbookData{
		BookName: "book.xlsx",
		Format:   "xlsx",
		Sheets: []models.Sheet{
			{Name: "Sheet1", Rows: []models.Row{{"a", 1.5, true}, {"", "x"}}, Dimension: "A1:C2"},
			{Name: "Empty", Rows: []models.Row{}},
		},
	}

	data, err := ToJSON(wb, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"book_name": "book.xlsx",
		"format": "xlsx",
		"sheets": [
			{"name": "Sheet1", "rows": [["a", 1.5, true], ["", "x"]], "dimension": "A1:C2"},
			{"name": "Empty", "rows": []}
		]
	}`, string(data))
}

func TestToJSONPretty(t *testing.T) {
	wb := &models.WorkbookData{Format: "xls", Sheets: []models.Sheet{{Name: "S", Rows: []models.Row{}}}}

	data, err := ToJSON(wb, true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"format\": \"xls\"")
	assert.NotContains(t, string(data), "book_name")
}

func TestSheetToJSON(t *testing.T) {
	sheet := &models.Sheet{Name: "Hidden", Rows: []models.Row{{"x"}}, Hidden: true}

	data, err := SheetToJSON(sheet, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Hidden", "rows": [["x"]], "hidden": true}`, string(data))
}

func TestSheetsToJSON(t *testing.T) {
	data, err := SheetsToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = SheetsToJSON([]models.Sheet{{Name: "Sheet1", Rows: []models.Row{{"a", "b"}, {"1", "2"}}}}, false)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "Sheet1", "rows": [["a", "b"], ["1", "2"]]}]`, string(data))
}
