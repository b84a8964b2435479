package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoSheets indicates a workbook that declares no worksheets.
var ErrNoSheets = errors.New("workbook contains no sheets")

// ErrNoWorkbookStream indicates an OLE2 container without a Workbook or Book stream.
var ErrNoWorkbookStream = errors.New("no Workbook or Book stream found")

// ExtractionError represents an error while reading one sheet.
type ExtractionError struct {
	SheetName string
	Component string // "rows", "dimension", "visibility"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
