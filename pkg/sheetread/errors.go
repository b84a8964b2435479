package sheetread

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat is matched by every DecodeError.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrUnknownFormat indicates the buffer carries no known spreadsheet signature.
var ErrUnknownFormat = errors.New("unrecognized spreadsheet container")

// ExtractionError reports a failure while reading one sheet.
type ExtractionError = parser.ExtractionError

// DecodeError is returned when a buffer cannot be interpreted as a
// spreadsheet. Err is whatever the codec reported.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" || e.Format == FormatAuto {
		return fmt.Sprintf("decode workbook: %v", e.Err)
	}
	return fmt.Sprintf("decode %s workbook: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidFormat.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func newDecodeError(format Format, err error) *DecodeError {
	return &DecodeError{Format: format, Err: err}
}

// IsDecodeError reports whether err is, or wraps, a DecodeError.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
