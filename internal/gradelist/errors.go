package gradelist

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeOutOfRange indicates an index outside [0, Len()).
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeEmptyCollection indicates a query that needs at least one record.
	ErrCodeEmptyCollection ErrorCode = "EMPTY_COLLECTION"

	// ErrCodeIO indicates the underlying file could not be opened, read or written.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeFormat indicates persisted content is not a valid grade document.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"
)

// Error is returned by every failing List operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed, e.g. "delete" or "deserialize".
	Op string

	// Index and Len describe the rejected access for OUT_OF_RANGE.
	Index int
	Len   int

	// Path is the file involved, if any.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Code == ErrCodeOutOfRange:
		return fmt.Sprintf("%s: %s: index %d not in [0, %d)", e.Code, e.Op, e.Index, e.Len)
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s %s: %v", e.Code, e.Op, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsOutOfRange reports whether err is an OUT_OF_RANGE store error.
func IsOutOfRange(err error) bool { return hasCode(err, ErrCodeOutOfRange) }

// IsEmptyCollection reports whether err is an EMPTY_COLLECTION store error.
func IsEmptyCollection(err error) bool { return hasCode(err, ErrCodeEmptyCollection) }

// IsIOError reports whether err is an IO_ERROR store error.
func IsIOError(err error) bool { return hasCode(err, ErrCodeIO) }

// IsFormatError reports whether err is a FORMAT_ERROR store error.
func IsFormatError(err error) bool { return hasCode(err, ErrCodeFormat) }

func outOfRange(op string, index, length int) *Error {
	return &Error{Code: ErrCodeOutOfRange, Op: op, Index: index, Len: length}
}

func formatError(op string, err error) *Error {
	return &Error{Code: ErrCodeFormat, Op: op, Err: err}
}

func ioError(op, path string, err error) *Error {
	return &Error{Code: ErrCodeIO, Op: op, Path: path, Err: err}
}
