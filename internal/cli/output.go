package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/gradebook/internal/archive"
	"github.com/roach88/gradebook/internal/grade"
	"github.com/roach88/gradebook/internal/gradelist"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected operation (bad index, empty workbook, invalid input)
	ExitCommandError = 2 // Command error (unreadable workbook, archive unavailable, etc.)
)

// Error code constants reported in CLI output.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeOutOfRange   = "E201" // Index outside the workbook
	ErrCodeEmpty        = "E202" // Query needs at least one grade
	ErrCodeIO           = "E203" // Workbook file unreadable or unwritable
	ErrCodeFormat       = "E204" // Workbook file is not a valid grade document
	ErrCodeInvalidInput = "E205" // Bad subject, score or index argument
	ErrCodeArchive      = "E206" // Snapshot archive failure
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// inputError marks a malformed command-line argument.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func invalidInput(format string, args ...any) error {
	return &inputError{err: fmt.Errorf(format, args...)}
}

// archiveError marks a failure in the snapshot archive.
type archiveError struct {
	err error
}

func (e *archiveError) Error() string { return e.err.Error() }
func (e *archiveError) Unwrap() error { return e.err }

// classify maps an error to its output code and exit code.
func classify(err error) (string, int) {
	var (
		inErr  *inputError
		arcErr *archiveError
	)
	switch {
	case gradelist.IsOutOfRange(err):
		return ErrCodeOutOfRange, ExitFailure
	case gradelist.IsEmptyCollection(err):
		return ErrCodeEmpty, ExitFailure
	case gradelist.IsFormatError(err):
		return ErrCodeFormat, ExitCommandError
	case gradelist.IsIOError(err):
		return ErrCodeIO, ExitCommandError
	case errors.As(err, &inErr):
		return ErrCodeInvalidInput, ExitFailure
	case errors.Is(err, archive.ErrNotFound):
		return ErrCodeArchive, ExitFailure
	case errors.As(err, &arcErr):
		return ErrCodeArchive, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E201", "E202", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err in the configured format and returns the ExitError the
// command should return.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// RecordView is the JSON shape of a grade in command output.
type RecordView struct {
	Index   int     `json:"index"`
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

func newRecordView(index int, r grade.Record) RecordView {
	return RecordView{Index: index, Subject: r.Subject.String(), Score: r.Score, Passed: r.Passed()}
}

// formatScore prints the shortest form that round-trips, so a score just
// under the pass threshold never displays as the threshold itself.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

const tableRule = "+-------+--------------+-------+--------+"

// writeTable renders records as a fixed-width text table followed by a
// total line.
func writeTable(w io.Writer, rows []RecordView, totalLabel string) {
	fmt.Fprintln(w, tableRule)
	fmt.Fprintln(w, "| Index | Subject      | Score | Passed |")
	fmt.Fprintln(w, tableRule)
	for _, r := range rows {
		fmt.Fprintf(w, "| %5d | %-12s | %5s | %-6t |\n", r.Index, r.Subject, formatScore(r.Score), r.Passed)
	}
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "%s: %d\n", totalLabel, len(rows))
}
