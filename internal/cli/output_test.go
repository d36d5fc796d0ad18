package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/archive"
	"github.com/roach88/gradebook/internal/grade"
	"github.com/roach88/gradebook/internal/gradelist"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeOutOfRange, "index 7 out of range", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E201", resp.Error.Code)
	assert.Equal(t, "index 7 out of range", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Added Physics 82.0 at index 0 (1 grades)")
	require.NoError(t, err)
	assert.Equal(t, "Added Physics 82.0 at index 0 (1 grades)\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("E001", "something broke", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "something broke")
	assert.NotContains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error("E001", "something broke", map[string]string{"file": "grades.json"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loading %s", "grades.json")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Contains(t, errOut.String(), "Loading grades.json")
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestClassify(t *testing.T) {
	l := gradelist.New()
	_, rangeErr := l.Get(0)
	_, _, emptyErr := l.MinMaxScore()
	formatErr := l.Deserialize(bytes.NewBufferString("{"), gradelist.FormatJSON)
	ioErr := l.LoadFile("/nonexistent/dir/grades.json", gradelist.FormatJSON)

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"out_of_range", rangeErr, ErrCodeOutOfRange, ExitFailure},
		{"empty", emptyErr, ErrCodeEmpty, ExitFailure},
		{"format", formatErr, ErrCodeFormat, ExitCommandError},
		{"io", ioErr, ErrCodeIO, ExitCommandError},
		{"input", invalidInput("invalid index %q", "x"), ErrCodeInvalidInput, ExitFailure},
		{"snapshot_not_found", &archiveError{err: fmt.Errorf("load: %w", archive.ErrNotFound)}, ErrCodeArchive, ExitFailure},
		{"archive", &archiveError{err: errors.New("disk I/O error")}, ErrCodeArchive, ExitCommandError},
		{"generic", errors.New("boom"), ErrCodeGeneric, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			code, exit := classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantExit, exit)
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	_, err := gradelist.New().DeleteAt(3)
	got := formatter.Fail(err)

	assert.Equal(t, ExitFailure, GetExitCode(got))
	assert.True(t, gradelist.IsOutOfRange(got))
	assert.Contains(t, buf.String(), "Error [E201]")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", WrapExitError(ExitCommandError, "E203", errors.New("x")))))
}

func TestWriteTable(t *testing.T) {
	buf := &bytes.Buffer{}
	rows := []RecordView{
		newRecordView(0, grade.New(grade.Chemistry, 59.5)),
		newRecordView(1, grade.New(grade.Physics, 59.95)),
		newRecordView(2, grade.New(grade.Biology, 100)),
	}

	writeTable(buf, rows, "Total items")

	want := tableRule + "\n" +
		"| Index | Subject      | Score | Passed |\n" +
		tableRule + "\n" +
		"|     0 | Chemistry    |  59.5 | false  |\n" +
		"|     1 | Physics      | 59.95 | false  |\n" +
		"|     2 | Biology      |   100 | true   |\n" +
		tableRule + "\n" +
		"Total items: 3\n"
	assert.Equal(t, want, buf.String())
}

func TestEditResult_String(t *testing.T) {
	old := newRecordView(1, grade.New(grade.Physics, 50))
	tests := []struct {
		res  EditResult
		want string
	}{
		{EditResult{Action: "added", Record: newRecordView(0, grade.New(grade.Biology, 70)), Count: 2}, "Added Biology 70.0 at index 0 (2 grades)"},
		{EditResult{Action: "removed", Record: old, Count: 1}, "Removed Physics 50.0 from index 1 (1 grades)"},
		{EditResult{Action: "updated", Record: newRecordView(1, grade.New(grade.Physics, 64)), Old: &old, Count: 2}, "Updated index 1: Physics 50.0 -> Physics 64.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.res.String())
	}
}
