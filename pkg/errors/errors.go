// Package errors defines the coded errors shared by railsheet's packages.
//
// An *Error carries a Code that callers switch on: the CLI maps codes to
// exit statuses (see ExitCode) and the HTTP server maps them to response
// statuses. A *RowError names the sheet, row and column a workbook failure
// came from, and is usually the Cause of an *Error:
//
//	return errors.Wrap(errors.ErrCodeInvalidField,
//		&errors.RowError{Sheet: "Stations", Row: 4, Column: "x", Err: cause},
//		"invalid workbook")
//
// Codes read as categories: INVALID_* for rejected input, MISSING_SHEET
// and EMPTY_SHEET for workbook structure, FILE_NOT_FOUND, UNSUPPORTED for
// a format or feature that is not available, and INTERNAL_ERROR.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidField    Code = "INVALID_FIELD"
	ErrCodeInvalidWorkbook Code = "INVALID_WORKBOOK"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeMissingSheet Code = "MISSING_SHEET"
	ErrCodeEmptySheet   Code = "EMPTY_SHEET"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error. Message is shown to users; Cause may be nil.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an *Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, followed by the
// row reference when the chain holds a *RowError. Uncoded errors are
// returned as their Error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if row, ok := AsRowError(err); ok {
			return fmt.Sprintf("%s: %s", e.Message, row.Error())
		}
		return e.Message
	}
	return err.Error()
}

// Process exit statuses returned by [ExitCode].
const (
	ExitFailure  = 1 // unexpected failure
	ExitUsage    = 2 // bad flags, unsupported format, invalid config
	ExitWorkbook = 3 // the input could not be read as a workbook or graph
	ExitNoInput  = 4 // the input path does not exist
)

// ExitCode maps err to a process exit status. Errors without a code are
// unexpected failures.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeUnsupported:
		return ExitUsage
	case ErrCodeInvalidField, ErrCodeInvalidWorkbook, ErrCodeInvalidGraph,
		ErrCodeMissingSheet, ErrCodeEmptySheet:
		return ExitWorkbook
	case ErrCodeFileNotFound:
		return ExitNoInput
	}
	return ExitFailure
}
