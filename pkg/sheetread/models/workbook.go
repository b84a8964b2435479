package models

// WorkbookData represents the workbook-level envelope around the sheets.
type WorkbookData struct {
	// BookName is the workbook file name (no path), empty for anonymous uploads.
	BookName string `json:"book_name,omitempty"`
	// Format is the detected container format ("xlsx" or "xls").
	Format string `json:"format"`
	// Sheets lists the sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}

// SheetNames returns the sheet names in workbook order.
func (w *WorkbookData) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, sheet := range w.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}
