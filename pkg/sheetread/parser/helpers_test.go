package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates an in-memory xlsx and returns its bytes.
func buildWorkbook(t *testing.T, fill func(f *excelize.File)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	fill(f)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// setCells writes cell values keyed by A1 reference.
func setCells(t *testing.T, f *excelize.File, sheetName string, cells map[string]interface{}) {
	t.Helper()

	for ref, value := range cells {
		require.NoError(t, f.SetCellValue(sheetName, ref, value))
	}
}
