package errors

import (
	"errors"
	"fmt"
)

// RowError points at a single cell of a workbook sheet.
// Row is the 1-based sheet row number (the header is row 1).
type RowError struct {
	Sheet  string
	Row    int
	Column string
	Err    error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s row %d, column %s: %v", e.Sheet, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RowError) Unwrap() error { return e.Err }

// AsRowError returns the first *RowError in err's chain.
func AsRowError(err error) (*RowError, bool) {
	var re *RowError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// InvalidField builds the error returned for a required cell that is missing
// or malformed.
func InvalidField(sheet string, row int, column string, cause error) *Error {
	return Wrap(ErrCodeInvalidField, &RowError{Sheet: sheet, Row: row, Column: column, Err: cause},
		"invalid %s value in sheet %s", column, sheet)
}
