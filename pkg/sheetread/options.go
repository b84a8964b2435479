// Package sheetread converts in-memory spreadsheet files into ordered
// per-sheet rows of cell values.
package sheetread

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/parser"
)

// Format identifies a spreadsheet container format.
type Format string

const (
	// FormatAuto detects the format from the buffer signature.
	FormatAuto Format = "auto"
	// FormatXLSX is an Office Open XML workbook (xlsx, xlsm, xltx, xltm), optionally encrypted.
	FormatXLSX Format = "xlsx"
	// FormatXLS is a legacy BIFF workbook stored in an OLE2 container.
	FormatXLS Format = "xls"
)

// ParseFormat parses a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatXLS:
		return FormatXLS, nil
	default:
		return "", errors.Errorf("invalid format: %s (must be auto, xlsx, or xls)", s)
	}
}

// Options configures reading behavior.
type Options struct {
	// Format forces a codec. FormatAuto (or empty) sniffs the buffer.
	Format Format
	// Password opens encrypted OOXML workbooks.
	Password string
	// Formatted returns every cell as its display string with number formats
	// applied. When false, numbers are float64 and booleans are bool.
	Formatted bool
	// PadRows pads every row with empty strings up to the width of the sheet's
	// used range, or up to its widest row when AnchorA1 is set.
	PadRows bool
	// AnchorA1 counts rows and columns from cell A1 instead of from the
	// top-left corner of the sheet's used range, so leading empty rows and
	// columns are kept.
	AnchorA1 bool
	// Charset is the code page hint for BIFF5 strings. Defaults to utf-8.
	Charset string
}

// DefaultOptions returns default reading options.
func DefaultOptions() Options {
	return Options{
		Format:  FormatAuto,
		Charset: parser.DefaultCharset,
	}
}

func (o Options) charset() string {
	if o.Charset == "" {
		return parser.DefaultCharset
	}
	return o.Charset
}
