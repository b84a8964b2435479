package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/models"
	"github.com/xuri/excelize/v2"
)

func TestReadXLSX(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "Header1",
			"B1": "Header2",
			"A2": 100,
			"B2": 200.5,
			"A3": "Text",
			"C3": true,
		})
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.False(t, sheet.Hidden)
	assert.Equal(t, []models.Row{
		{"Header1", "Header2"},
		{float64(100), 200.5},
		{"Text", "", true},
	}, sheet.Rows)
	assert.Equal(t, "A1:C3", sheet.Dimension)
}

func TestReadXLSXSheetOrder(t *testing.T) {
	names := []string{"Sheet1", "Zeta", "Alpha", "Middle"}
	buf := buildWorkbook(t, func(f *excelize.File) {
		for _, name := range names[1:] {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(name, "A1", name))
		}
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, sheets, len(names))
	for i, name := range names {
		assert.Equal(t, name, sheets[i].Name)
	}
	assert.Empty(t, sheets[0].Rows)
	assert.Equal(t, []models.Row{{"Alpha"}}, sheets[2].Rows)
}

func TestReadXLSXEmptySheet(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{"A1": "x"})
		_, err := f.NewSheet("Empty")
		require.NoError(t, err)
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, "Empty", sheets[1].Name)
	assert.NotNil(t, sheets[1].Rows)
	assert.Len(t, sheets[1].Rows, 0)
	assert.Equal(t, "", sheets[1].Dimension)
}

func TestExtractRowsKeepsGapsAndBlankRows(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "a",
			"B1": "b",
			"C1": "c",
			"A2": "x",
			"C2": "z",
			"B4": "late",
		})
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)

	rows := sheets[0].Rows
	require.Len(t, rows, 4)
	assert.Equal(t, models.Row{"x", "", "z"}, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, models.Row{"", "late"}, rows[3])
}

func TestExtractRowsNumericText(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": "0123",
			"B1": "TRUE",
			"C1": 7,
		})
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.Row{"0123", "TRUE", float64(7)}, sheets[0].Rows[0])
}

func TestReadXLSXFormatted(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{
			"A1": 100,
			"B1": true,
			"C1": "text",
		})
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{Formatted: true})
	require.NoError(t, err)

	row := sheets[0].Rows[0]
	require.Len(t, row, 3)
	for _, cell := range row {
		assert.IsType(t, "", cell)
	}
	assert.Equal(t, "100", row[0])
	assert.Equal(t, "TRUE", row[1])
}

func TestReadXLSXHiddenSheet(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		_, err := f.NewSheet("Secret")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Secret", "A1", "hidden"))
		require.NoError(t, f.SetSheetVisible("Secret", false))
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.False(t, sheets[0].Hidden)
	assert.True(t, sheets[1].Hidden)
	assert.Equal(t, []models.Row{{"hidden"}}, sheets[1].Rows)
}

func TestReadXLSXRecordedDimension(t *testing.T) {
	buf := buildWorkbook(t, func(f *excelize.File) {
		setCells(t, f, "Sheet1", map[string]interface{}{"A1": 1, "B2": 2})
		require.NoError(t, f.SetSheetDimension("Sheet1", "A1:D5"))
	})

	sheets, err := ReadXLSX(buf, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A1:D5", sheets[0].Dimension)
}

func TestReadXLSXPassword(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "secret"))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf, excelize.Options{Password: "pass"})
	require.NoError(t, err)

	sheets, err := ReadXLSX(buf.Bytes(), XLSXOptions{Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, []models.Row{{"secret"}}, sheets[0].Rows)

	_, err = ReadXLSX(buf.Bytes(), XLSXOptions{Password: "wrong"})
	assert.Error(t, err)
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := ReadXLSX([]byte("definitely not a workbook"), XLSXOptions{})
	assert.Error(t, err)
}
