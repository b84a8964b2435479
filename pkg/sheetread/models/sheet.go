package models

// Sheet represents the rows of a single worksheet.
type Sheet struct {
	// Name is the sheet name as declared in the workbook.
	Name string `json:"name"`
	// Rows contains every row of the sheet in source order.
	Rows []Row `json:"rows"`
	// Dimension is the A1 reference of the used range (e.g. "A1:C4").
	Dimension string `json:"dimension,omitempty"`
	// Hidden reports whether the sheet is hidden in the workbook.
	Hidden bool `json:"hidden,omitempty"`
}
